package symcalc_test

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/symcalc"
)

// ============================================================
// Number tests
// ============================================================

func mustRational(t *testing.T, sign int, num, den uint64) symcalc.Number {
	t.Helper()
	n, err := symcalc.RationalOf(sign, num, den)
	require.NoError(t, err)
	return n
}

func mustDiv(t *testing.T, a, b symcalc.Number) symcalc.Number {
	t.Helper()
	q, err := a.Div(b)
	require.NoError(t, err)
	return q
}

func TestNumber_String(t *testing.T) {
	cases := []struct {
		n    symcalc.Number
		want string
	}{
		{symcalc.IntegerOf(42), "42"},
		{symcalc.IntegerOf(-7), "-7"},
		{mustRational(t, 1, 1, 3), "1/3"},
		{mustRational(t, -1, 6, 10), "-3/5"},
		{symcalc.RealOf(2.5), "2.500"},
		{symcalc.RealOf(-0.125), "-0.125"},
		{symcalc.PiNumber(), "pi"},
		{symcalc.ENumber(), "e"},
		{symcalc.IntegerOf(0), "0"},
		{mustRational(t, 1, 4, 4), "1"},
	}
	for _, c := range cases {
		if got := c.n.String(); got != c.want {
			t.Errorf("want %s, got %s", c.want, got)
		}
	}
}

func TestNumber_GenericConstructors(t *testing.T) {
	assert.Equal(t, symcalc.KindInteger, symcalc.IntegerOf(uint8(7)).Kind())
	assert.Equal(t, symcalc.KindInteger, symcalc.IntegerOf(int32(-3)).Kind())
	assert.Equal(t, symcalc.KindReal, symcalc.IntegerOf(uint64(math.MaxUint64)).Kind())
	assert.Equal(t, 0.5, symcalc.RealOf(float32(0.5)).Float64())
}

func TestNumber_IntegerExactness(t *testing.T) {
	for i := int64(-20); i <= 20; i++ {
		for j := int64(-20); j <= 20; j++ {
			a, b := symcalc.IntegerOf(i), symcalc.IntegerOf(j)
			if got, ok := a.Add(b).Int64(); !ok || got != i+j {
				t.Fatalf("%d + %d: want %d, got %d (%v)", i, j, i+j, got, ok)
			}
			if got, ok := a.Mul(b).Int64(); !ok || got != i*j {
				t.Fatalf("%d * %d: want %d, got %d (%v)", i, j, i*j, got, ok)
			}
			if j == 0 {
				continue
			}
			q := mustDiv(t, a, b)
			if !q.Mul(b).Equal(a) {
				t.Fatalf("(%d / %d) * %d != %d", i, j, j, i)
			}
			assert.InDelta(t, float64(i)/float64(j), q.Float64(), 1e-9)
		}
	}
}

func TestNumber_DivisionIsExactRational(t *testing.T) {
	q := mustDiv(t, symcalc.IntegerOf(6), symcalc.IntegerOf(4))
	assert.Equal(t, symcalc.KindRational, q.Kind())
	assert.Equal(t, "3/2", q.String())

	two := mustDiv(t, symcalc.IntegerOf(4), symcalc.IntegerOf(2))
	assert.Equal(t, symcalc.KindRational, two.Kind())
	assert.True(t, two.Equal(symcalc.IntegerOf(2)))
}

func TestNumber_DivisionByZero(t *testing.T) {
	_, err := symcalc.IntegerOf(1).Div(symcalc.IntegerOf(0))
	assert.True(t, errors.Is(err, symcalc.ErrDivisionByZero), "got %v", err)

	_, err = mustRational(t, 1, 1, 2).Div(mustRational(t, 1, 0, 3))
	assert.ErrorIs(t, err, symcalc.ErrDivisionByZero)

	_, err = symcalc.RationalOf(1, 1, 0)
	assert.ErrorIs(t, err, symcalc.ErrDivisionByZero)

	inf, err := symcalc.RealOf(1.0).Div(symcalc.RealOf(0.0))
	require.NoError(t, err)
	assert.True(t, math.IsInf(inf.Float64(), 1))
}

func TestNumber_RationalSign(t *testing.T) {
	_, err := symcalc.RationalOf(0, 1, 2)
	assert.Error(t, err)

	q := mustRational(t, -1, 0, 5)
	assert.True(t, q.IsZero())
	assert.Equal(t, "0", q.String())
}

func TestNumber_TagsFollowValue(t *testing.T) {
	zero := symcalc.IntegerOf(1).Sub(symcalc.IntegerOf(1))
	assert.True(t, zero.IsZero())
	assert.Equal(t, symcalc.ConstZero, zero.Tag())

	one := mustDiv(t, mustRational(t, 1, 1, 2), mustRational(t, 1, 1, 2))
	assert.True(t, one.IsOne())

	assert.True(t, symcalc.PiNumber().IsPi())
	assert.False(t, symcalc.PiNumber().IsExact())
	assert.True(t, symcalc.RealOf(math.E).IsE())
	assert.Equal(t, symcalc.ConstNothing, symcalc.IntegerOf(2).Tag())
}

func TestNumber_Promotion(t *testing.T) {
	half := mustRational(t, 1, 1, 2)
	sum := symcalc.IntegerOf(1).Add(half)
	assert.Equal(t, symcalc.KindRational, sum.Kind())
	assert.Equal(t, "3/2", sum.String())

	r := half.Add(symcalc.RealOf(0.25))
	assert.Equal(t, symcalc.KindReal, r.Kind())
	assert.Equal(t, 0.75, r.Float64())

	// Zero absorbs even a real factor.
	z := symcalc.IntegerOf(0).Mul(symcalc.RealOf(3.5))
	assert.True(t, z.IsZero())
	assert.True(t, z.IsExact())
}

func TestNumber_OverflowWidens(t *testing.T) {
	big := symcalc.IntegerOf(int64(math.MaxInt64))
	sum := big.Add(symcalc.IntegerOf(1))
	assert.NotEqual(t, symcalc.KindInteger, sum.Kind())
	assert.InEpsilon(t, 9.223372036854775808e18, sum.Float64(), 1e-12)

	sq := big.Mul(big)
	assert.Equal(t, symcalc.KindReal, sq.Kind())
	assert.InEpsilon(t, math.Pow(math.MaxInt64, 2), sq.Float64(), 1e-12)
}

func TestNumber_Pow(t *testing.T) {
	p, ok := symcalc.IntegerOf(2).Pow(symcalc.IntegerOf(10))
	require.True(t, ok)
	assert.Equal(t, "1024", p.String())

	p, ok = symcalc.IntegerOf(2).Pow(symcalc.IntegerOf(-2))
	require.True(t, ok)
	assert.Equal(t, "1/4", p.String())

	p, ok = mustRational(t, -1, 2, 3).Pow(symcalc.IntegerOf(3))
	require.True(t, ok)
	assert.Equal(t, "-8/27", p.String())

	_, ok = symcalc.IntegerOf(2).Pow(mustRational(t, 1, 1, 2))
	assert.False(t, ok, "sqrt 2 is not exact")

	_, ok = symcalc.IntegerOf(0).Pow(symcalc.IntegerOf(-1))
	assert.False(t, ok)

	p, ok = symcalc.RealOf(4.0).Pow(mustRational(t, 1, 1, 2))
	require.True(t, ok)
	assert.Equal(t, 2.0, p.Float64())

	_, ok = symcalc.RealOf(-4.0).Pow(symcalc.RealOf(0.5))
	assert.False(t, ok)
}

func TestNumber_IsCloseAndEqual(t *testing.T) {
	a := symcalc.RealOf(0.1).Add(symcalc.RealOf(0.2))
	assert.True(t, a.IsClose(symcalc.RealOf(0.3), 1e-9))
	assert.False(t, a.Equal(symcalc.RealOf(0.3)))
	assert.True(t, mustRational(t, 1, 3, 4).IsClose(symcalc.RealOf(0.75), 0))
	assert.True(t, mustRational(t, 1, 2, 4).Equal(mustRational(t, 1, 1, 2)))
}

func TestRational_ZeroValue(t *testing.T) {
	var q symcalc.Rational
	assert.Equal(t, "0", q.String())
	assert.Equal(t, 0.0, q.Float64())
	assert.Equal(t, uint64(1), q.Den())
	assert.True(t, q.IsZero())

	zero, err := symcalc.NewRational(1, 0, 5)
	require.NoError(t, err)
	assert.True(t, q.Equal(zero))
}
