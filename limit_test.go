package symcalc_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/symcalc"
)

// ============================================================
// LimitClass algebra
// ============================================================

var (
	inf0 = symcalc.LimitClass{Kind: symcalc.Infinitesimal}
	infy = symcalc.LimitClass{Kind: symcalc.Infinity}
	fluc = symcalc.LimitClass{Kind: symcalc.BoundedFluctuation}
)

func normal(v int64) symcalc.LimitClass {
	return symcalc.LimitClass{Kind: symcalc.Normal, Value: symcalc.Int(v)}
}

type classCase struct {
	a, b symcalc.LimitClass
	want string // "" means undefined
}

func checkClassOp(t *testing.T, name string, op func(a, b symcalc.LimitClass) (symcalc.LimitClass, error), cases []classCase) {
	t.Helper()
	for _, c := range cases {
		got, err := op(c.a, c.b)
		if c.want == "" {
			assert.ErrorIs(t, err, symcalc.ErrNoValidLimit, "%s %s %s", c.a, name, c.b)
			continue
		}
		if assert.NoError(t, err, "%s %s %s", c.a, name, c.b) {
			assert.Equal(t, c.want, got.String(), "%s %s %s", c.a, name, c.b)
		}
	}
}

func TestLimitClass_Add(t *testing.T) {
	checkClassOp(t, "+", symcalc.LimitClass.Add, []classCase{
		{inf0, inf0, "0"},
		{inf0, infy, ""},
		{infy, inf0, ""},
		{infy, infy, ""},
		{inf0, normal(2), "2"},
		{normal(2), inf0, "2"},
		{fluc, inf0, "~"},
		{fluc, fluc, "~"},
		{fluc, normal(2), "~"},
		{fluc, infy, "infinity"},
		{infy, fluc, "infinity"},
		{infy, normal(2), "infinity"},
		{normal(2), infy, "infinity"},
		{normal(2), fluc, "~"},
		{normal(2), normal(3), "5"},
		{normal(2), normal(-2), "0"},
	})
}

func TestLimitClass_Mul(t *testing.T) {
	checkClassOp(t, "*", symcalc.LimitClass.Mul, []classCase{
		{inf0, inf0, "0"},
		{inf0, infy, ""},
		{infy, inf0, ""},
		{infy, infy, "infinity"},
		{infy, fluc, ""},
		{fluc, infy, ""},
		{fluc, inf0, "0"},
		{inf0, fluc, "0"},
		{fluc, fluc, "~"},
		{inf0, normal(5), "0"},
		{normal(5), infy, "infinity"},
		{normal(5), fluc, "~"},
		{normal(2), normal(3), "6"},
	})
}

func TestLimitClass_Div(t *testing.T) {
	checkClassOp(t, "/", symcalc.LimitClass.Div, []classCase{
		{inf0, inf0, ""},
		{inf0, infy, "0"},
		{inf0, fluc, ""},
		{inf0, normal(2), "0"},
		{infy, inf0, "infinity"},
		{infy, infy, ""},
		{infy, fluc, ""},
		{infy, normal(2), "infinity"},
		{fluc, inf0, ""},
		{fluc, infy, "0"},
		{fluc, fluc, ""},
		{fluc, normal(2), "~"},
		{normal(2), inf0, "infinity"},
		{normal(2), infy, "0"},
		{normal(2), fluc, ""},
		{normal(2), normal(4), "1/2"},
	})
}

func TestLimitClass_NegAndSub(t *testing.T) {
	assert.Equal(t, "-2", normal(2).Neg().String())
	assert.Equal(t, symcalc.Infinity, infy.Neg().Kind)

	got, err := normal(2).Sub(normal(2))
	require.NoError(t, err)
	assert.Equal(t, symcalc.Infinitesimal, got.Kind)

	_, err = infy.Sub(infy)
	assert.ErrorIs(t, err, symcalc.ErrNoValidLimit)
}

// ============================================================
// Limit evaluation
// ============================================================

func TestLimit_Scenarios(t *testing.T) {
	one := symcalc.One()
	cases := []struct {
		name     string
		e        *symcalc.Expr
		maxOrder uint64
		want     string
	}{
		{"sin x / x", symcalc.Sin(x).Div(x), 1, "1"},
		{"sin x / x^2", symcalc.Sin(x).Div(x.Mul(x)), 4, "infinity"},
		{"sin^2 x / x", symcalc.Sin(x).Mul(symcalc.Sin(x)).Div(x), 4, "0"},
		{"(exp x - 1) / x", symcalc.Exp(x).Sub(one).Div(x), 4, "1"},
		{"(1 - cos x) / x^2", one.Sub(symcalc.Cos(x)).Div(x.Mul(x)), 2, "1/2"},
		{"x sin(1/x)", x.Mul(symcalc.Sin(one.Div(x))), 4, "0"},
		{"sin(1/x)", symcalc.Sin(one.Div(x)), 4, "~"},
		{"x + y", x.Add(y), 0, "y"},
		{"cos x", symcalc.Cos(x), 0, "1"},
		{"ln x", symcalc.Ln(x), 0, "infinity"},
		{"x^2", x.Pow(symcalc.Int(2)), 0, "0"},
		{"x^-1", x.Pow(symcalc.Int(1).Neg()), 0, "infinity"},
		{"2^x", symcalc.Int(2).Pow(x), 0, "1"},
	}
	for _, c := range cases {
		got, err := c.e.Limit(vx, symcalc.Zero(), c.maxOrder)
		if assert.NoError(t, err, c.name) {
			assert.Equal(t, c.want, got.String(), c.name)
		}
	}
}

func TestLimit_Operands(t *testing.T) {
	got, err := x.Limit(vx, symcalc.Zero(), 0)
	require.NoError(t, err)
	assert.Equal(t, symcalc.Infinitesimal, got.Kind)

	got, err = x.Limit(vx, symcalc.Int(3), 0)
	require.NoError(t, err)
	assert.Equal(t, "3", got.String())

	got, err = y.Limit(vx, symcalc.Zero(), 0)
	require.NoError(t, err)
	assert.Same(t, y, got.Value)

	got, err = symcalc.Zero().Limit(vx, symcalc.Int(3), 0)
	require.NoError(t, err)
	assert.Equal(t, symcalc.Infinitesimal, got.Kind)
}

func TestLimit_RealZeroTarget(t *testing.T) {
	got, err := symcalc.Sin(x).Div(x).Limit(vx, symcalc.Real(0.0), 2)
	require.NoError(t, err)
	assert.Equal(t, "1", got.String())

	got, err = x.Limit(vx, symcalc.Real(0.0), 0)
	require.NoError(t, err)
	assert.Equal(t, symcalc.Infinitesimal, got.Kind)
}

func TestLimit_NaNHasNoLimit(t *testing.T) {
	_, err := x.Add(symcalc.One()).Limit(vx, symcalc.Real(math.NaN()), 0)
	assert.ErrorIs(t, err, symcalc.ErrNoValidLimit)

	got, err := symcalc.One().Div(x).Limit(vx, symcalc.Real(math.Inf(1)), 0)
	require.NoError(t, err)
	assert.Equal(t, symcalc.Infinitesimal, got.Kind)
}

func TestLimit_NormalValueIsAggregated(t *testing.T) {
	got, err := x.Mul(x).Add(symcalc.One()).Limit(vx, symcalc.Int(2), 0)
	require.NoError(t, err)
	assert.Equal(t, symcalc.Normal, got.Kind)
	assert.Equal(t, "5", got.Value.String())

	got, err = symcalc.Sin(x).Limit(vx, symcalc.Pi(), 0)
	require.NoError(t, err)
	assert.Equal(t, symcalc.Infinitesimal, got.Kind)
}

func TestLimit_OrderBudget(t *testing.T) {
	e := symcalc.One().Sub(symcalc.Cos(x)).Div(x.Mul(x))
	_, err := e.Limit(vx, symcalc.Zero(), 1)
	assert.ErrorIs(t, err, symcalc.ErrNoValidLimit)

	_, err = symcalc.Sin(x).Div(x).Limit(vx, symcalc.Zero(), 0)
	assert.ErrorIs(t, err, symcalc.ErrNoValidLimit)
}

func TestLimit_Undetermined(t *testing.T) {
	for _, e := range []*symcalc.Expr{
		symcalc.Exp(symcalc.One().Div(x)),
		symcalc.Ln(symcalc.Sin(symcalc.One().Div(x))),
	} {
		_, err := e.Limit(vx, symcalc.Zero(), 4)
		assert.ErrorIs(t, err, symcalc.ErrNoValidLimit, "%s", e)
	}
}

func TestLimit_ExprTarget(t *testing.T) {
	got, err := symcalc.Limit(symcalc.Sin(x).Div(x), x, symcalc.Zero(), 1)
	require.NoError(t, err)
	assert.Equal(t, "1", got.String())

	_, err = symcalc.Limit(x, symcalc.Int(3), symcalc.Zero(), 1)
	assert.ErrorIs(t, err, symcalc.ErrNoValidLimit)
}
