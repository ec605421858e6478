package symcalc

import (
	"math/big"
	"strconv"

	"github.com/pkg/errors"
)

// ============================================================
// Rational — 64-bit exact fraction
// ============================================================

// Rational is a sign plus an unsigned numerator/denominator pair, always
// kept in lowest terms. Zero is stored as +0/1, so every zero compares equal
// regardless of how it was produced.
type Rational struct {
	neg bool
	num uint64
	den uint64
}

// NewRational builds sign*num/den. sign must be +1 or -1 and den must be
// positive.
func NewRational(sign int, num, den uint64) (Rational, error) {
	if sign != 1 && sign != -1 {
		return Rational{}, errors.Errorf("symcalc: rational sign must be +1 or -1, got %d", sign)
	}
	if den == 0 {
		return Rational{}, ErrDivisionByZero
	}
	n := new(big.Int).SetUint64(num)
	if sign < 0 {
		n.Neg(n)
	}
	q, _ := ratFromBig(new(big.Rat).SetFrac(n, new(big.Int).SetUint64(den)))
	return q, nil
}

func (q Rational) Sign() int {
	switch {
	case q.num == 0:
		return 0
	case q.neg:
		return -1
	}
	return 1
}

func (q Rational) Num() uint64  { return q.num }
func (q Rational) Den() uint64  { return q.denom() }
func (q Rational) IsZero() bool { return q.num == 0 }
func (q Rational) IsOne() bool  { return !q.neg && q.num == 1 && q.denom() == 1 }

func (q Rational) Equal(o Rational) bool {
	if q.num == 0 && o.num == 0 {
		return true
	}
	return q == o
}

// denom reads the zero value Rational{} as 0/1.
func (q Rational) denom() uint64 {
	if q.den == 0 {
		return 1
	}
	return q.den
}

func (q Rational) Float64() float64 {
	f := float64(q.num) / float64(q.denom())
	if q.neg {
		return -f
	}
	return f
}

// String omits a unit denominator.
func (q Rational) String() string {
	s := strconv.FormatUint(q.num, 10)
	if d := q.denom(); d != 1 {
		s += "/" + strconv.FormatUint(d, 10)
	}
	if q.neg && q.num != 0 {
		return "-" + s
	}
	return s
}

func (q Rational) big() *big.Rat {
	den := q.denom()
	n := new(big.Int).SetUint64(q.num)
	if q.neg {
		n.Neg(n)
	}
	return new(big.Rat).SetFrac(n, new(big.Int).SetUint64(den))
}

// ratFromBig narrows a big.Rat to 64-bit parts; ok is false on overflow.
func ratFromBig(v *big.Rat) (Rational, bool) {
	num := new(big.Int).Abs(v.Num())
	den := v.Denom()
	if !num.IsUint64() || !den.IsUint64() {
		return Rational{}, false
	}
	return Rational{neg: v.Sign() < 0, num: num.Uint64(), den: den.Uint64()}, true
}
