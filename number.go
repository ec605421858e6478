// Package symcalc is a symbolic calculus kernel for Go.
//
// Expressions are immutable trees of operators (neg, add, sub, mul, div,
// sin, cos, exp, ln, pow) over numbers and named variables. The package
// folds constants, differentiates, substitutes, classifies limits with
// L'Hôpital fallback and computes Taylor coefficients. Numbers are exact
// (64-bit integers and rationals) until a real operand forces IEEE-754.
package symcalc

import (
	"math"
	"math/big"
	"strconv"

	"github.com/pkg/errors"
	"golang.org/x/exp/constraints"
	"gonum.org/v1/gonum/floats/scalar"
)

// ============================================================
// Number — Integer / Rational / Real with identity tag
// ============================================================

// Kind orders representations by exactness. Arithmetic returns the larger
// kind of its operands.
type Kind uint8

const (
	KindInteger Kind = iota
	KindRational
	KindReal
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindRational:
		return "rational"
	case KindReal:
		return "real"
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Const marks numbers that simplification rules recognise by identity.
type Const uint8

const (
	ConstNothing Const = iota
	ConstZero
	ConstOne
	ConstPi
	ConstE
)

func (c Const) String() string {
	switch c {
	case ConstZero:
		return "0"
	case ConstOne:
		return "1"
	case ConstPi:
		return "pi"
	case ConstE:
		return "e"
	}
	return ""
}

// Number is a value type; the zero value is the integer 0 (untagged until it
// passes through a constructor or an operation).
type Number struct {
	kind Kind
	i    int64
	q    Rational
	f    float64
	tag  Const
}

// IntegerOf converts any integer type. Unsigned values above MaxInt64
// become reals.
func IntegerOf[T constraints.Integer](v T) Number {
	if v >= 0 && uint64(v) > math.MaxInt64 {
		return RealOf(float64(v))
	}
	return newInteger(int64(v))
}

// RealOf converts any float type.
func RealOf[T constraints.Float](v T) Number { return newReal(float64(v)) }

// RationalOf builds sign*num/den as an exact rational number.
func RationalOf(sign int, num, den uint64) (Number, error) {
	q, err := NewRational(sign, num, den)
	if err != nil {
		return Number{}, err
	}
	return newRational(q), nil
}

func PiNumber() Number { return Number{kind: KindReal, f: math.Pi, tag: ConstPi} }
func ENumber() Number  { return Number{kind: KindReal, f: math.E, tag: ConstE} }

func newInteger(v int64) Number {
	n := Number{kind: KindInteger, i: v}
	n.tag = n.deriveTag()
	return n
}

func newRational(q Rational) Number {
	n := Number{kind: KindRational, q: q}
	n.tag = n.deriveTag()
	return n
}

func newReal(f float64) Number {
	n := Number{kind: KindReal, f: f}
	n.tag = n.deriveTag()
	return n
}

// deriveTag recomputes the identity tag from the value alone.
func (n Number) deriveTag() Const {
	switch n.kind {
	case KindInteger:
		switch n.i {
		case 0:
			return ConstZero
		case 1:
			return ConstOne
		}
	case KindRational:
		if n.q.IsZero() {
			return ConstZero
		}
		if n.q.IsOne() {
			return ConstOne
		}
	case KindReal:
		switch n.f {
		case math.Pi:
			return ConstPi
		case math.E:
			return ConstE
		}
	}
	return ConstNothing
}

func (n Number) Kind() Kind   { return n.kind }
func (n Number) Tag() Const   { return n.tag }
func (n Number) IsZero() bool { return n.tag == ConstZero }
func (n Number) IsOne() bool  { return n.tag == ConstOne }
func (n Number) IsPi() bool   { return n.tag == ConstPi }
func (n Number) IsE() bool    { return n.tag == ConstE }
func (n Number) IsExact() bool {
	return n.kind != KindReal
}

// Int64 succeeds only for the Integer representation.
func (n Number) Int64() (int64, bool) {
	if n.kind != KindInteger {
		return 0, false
	}
	return n.i, true
}

func (n Number) Float64() float64 {
	switch n.kind {
	case KindInteger:
		return float64(n.i)
	case KindRational:
		return n.q.Float64()
	}
	return n.f
}

// Rat returns the exact value of an Integer or Rational. Reals never convert,
// so callers that need an exact zero test cannot be fooled by rounding.
func (n Number) Rat() (Rational, bool) {
	switch n.kind {
	case KindInteger:
		q, ok := ratFromBig(new(big.Rat).SetInt64(n.i))
		return q, ok
	case KindRational:
		return n.q, true
	}
	return Rational{}, false
}

// IsClose compares float64 projections within an absolute tolerance.
func (n Number) IsClose(m Number, eps float64) bool {
	return scalar.EqualWithinAbs(n.Float64(), m.Float64(), eps)
}

// Equal is exact when both sides are exact and IEEE equality otherwise.
func (n Number) Equal(m Number) bool {
	if n.IsExact() && m.IsExact() {
		return n.rat().Cmp(m.rat()) == 0
	}
	return n.Float64() == m.Float64()
}

func (n Number) String() string {
	if n.tag != ConstNothing {
		return n.tag.String()
	}
	switch n.kind {
	case KindInteger:
		return strconv.FormatInt(n.i, 10)
	case KindRational:
		return n.q.String()
	}
	return strconv.FormatFloat(n.f, 'f', 3, 64)
}

func (n Number) rat() *big.Rat {
	if n.kind == KindInteger {
		return new(big.Rat).SetInt64(n.i)
	}
	return n.q.big()
}

// fromRat narrows an exact result to the requested kind, widening to
// Rational and then Real when 64-bit parts overflow.
func fromRat(z *big.Rat, k Kind) Number {
	if k == KindInteger && z.IsInt() && z.Num().IsInt64() {
		return newInteger(z.Num().Int64())
	}
	if q, ok := ratFromBig(z); ok {
		return newRational(q)
	}
	f, _ := z.Float64()
	return newReal(f)
}

func maxKind(a, b Kind) Kind {
	if a > b {
		return a
	}
	return b
}

func (n Number) Add(m Number) Number {
	k := maxKind(n.kind, m.kind)
	if k == KindReal {
		return newReal(n.Float64() + m.Float64())
	}
	return fromRat(new(big.Rat).Add(n.rat(), m.rat()), k)
}

func (n Number) Sub(m Number) Number {
	k := maxKind(n.kind, m.kind)
	if k == KindReal {
		return newReal(n.Float64() - m.Float64())
	}
	return fromRat(new(big.Rat).Sub(n.rat(), m.rat()), k)
}

// Mul returns exact zero when either side is zero, even against a real.
func (n Number) Mul(m Number) Number {
	if n.IsZero() || m.IsZero() {
		return newInteger(0)
	}
	k := maxKind(n.kind, m.kind)
	if k == KindReal {
		return newReal(n.Float64() * m.Float64())
	}
	return fromRat(new(big.Rat).Mul(n.rat(), m.rat()), k)
}

// Div never truncates: two integers give a rational. An exact zero divisor
// is ErrDivisionByZero; a real zero divisor follows IEEE-754.
func (n Number) Div(m Number) (Number, error) {
	if m.IsExact() && m.IsZero() {
		return Number{}, errors.WithMessagef(ErrDivisionByZero, "%s / %s", n, m)
	}
	if n.IsZero() {
		return newInteger(0), nil
	}
	k := maxKind(maxKind(n.kind, m.kind), KindRational)
	if k == KindReal {
		return newReal(n.Float64() / m.Float64()), nil
	}
	return fromRat(new(big.Rat).Quo(n.rat(), m.rat()), k), nil
}

func (n Number) Neg() Number {
	if n.kind == KindReal {
		return newReal(-n.f)
	}
	return fromRat(new(big.Rat).Neg(n.rat()), n.kind)
}

// Pow folds b^x. Integer exponents are exact on exact bases; a real on
// either side uses math.Pow. ok is false when no value should be folded:
// irrational results of exact operands, 0 to a negative power, or NaN.
func (n Number) Pow(x Number) (Number, bool) {
	if k, isInt := x.Int64(); isInt && n.IsExact() {
		mag := uint64(k)
		if k < 0 {
			mag = uint64(-(k + 1)) + 1
		}
		acc, base := newInteger(1), n
		for ; mag > 0; mag >>= 1 {
			if mag&1 == 1 {
				acc = acc.Mul(base)
			}
			base = base.Mul(base)
		}
		if k >= 0 {
			return acc, true
		}
		inv, err := newInteger(1).Div(acc)
		return inv, err == nil
	}
	if n.IsExact() && x.IsExact() {
		return Number{}, false
	}
	f := math.Pow(n.Float64(), x.Float64())
	if math.IsNaN(f) {
		return Number{}, false
	}
	return newReal(f), true
}
