package symcalc_test

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/symcalc"
)

// ============================================================
// JSON codec tests
// ============================================================

func TestJSON_Encode(t *testing.T) {
	s, err := symcalc.ToJSON(x.Add(symcalc.One()))
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"type":"op","op":"add","args":[{"type":"var","name":"x"},{"type":"num","value":"1"}]}`,
		s)
}

func TestJSON_RoundTrip(t *testing.T) {
	two, err := symcalc.IntegerOf(4).Div(symcalc.IntegerOf(2))
	require.NoError(t, err)
	corpus := []*symcalc.Expr{
		symcalc.Sin(x).Mul(symcalc.Sin(u).Neg()),
		frac(t, -3, 5).Pow(x),
		symcalc.Real(2.5).Add(symcalc.Pi()).Sub(symcalc.E()),
		symcalc.Real(1.0).Mul(symcalc.Real(1e21)).Div(symcalc.Real(1e-7)),
		symcalc.FromNumber(two),
		symcalc.Ln(symcalc.Exp(symcalc.Cos(x))),
	}
	for _, e := range corpus {
		s, err := symcalc.ToJSON(e)
		require.NoError(t, err)
		back, err := symcalc.FromJSON([]byte(s))
		require.NoError(t, err, s)
		assert.True(t, e.Equal(back), "%s != %s", e, back)
		assert.Equal(t, kinds(e), kinds(back), s)
	}
}

// kinds lists the numeric kinds of every number operand in pre-order.
func kinds(e *symcalc.Expr) []symcalc.Kind {
	if n, err := e.Number(); err == nil {
		return []symcalc.Kind{n.Kind()}
	}
	var out []symcalc.Kind
	for _, a := range e.Args() {
		out = append(out, kinds(a)...)
	}
	return out
}

func TestJSON_ParseNumber(t *testing.T) {
	cases := []struct {
		in   string
		kind symcalc.Kind
		want string
	}{
		{"12", symcalc.KindInteger, "12"},
		{"-12", symcalc.KindInteger, "-12"},
		{"1e3", symcalc.KindInteger, "1000"},
		{"2.5", symcalc.KindReal, "2.500"},
		{"1.0", symcalc.KindReal, "1.000"},
		{"-3/5", symcalc.KindRational, "-3/5"},
		{"4/2", symcalc.KindRational, "2"},
		{"99999999999999999999", symcalc.KindReal, "100000000000000000000.000"},
		{"pi", symcalc.KindReal, "pi"},
		{"e", symcalc.KindReal, "e"},
	}
	for _, c := range cases {
		n, err := symcalc.ParseNumber(c.in)
		if !assert.NoError(t, err, c.in) {
			continue
		}
		assert.Equal(t, c.kind, n.Kind(), c.in)
		assert.Equal(t, c.want, n.String(), c.in)
	}

	_, err := symcalc.ParseNumber("1/0")
	assert.ErrorIs(t, err, symcalc.ErrDivisionByZero)
	for _, bad := range []string{"", "x", "1/x", "1.2.3"} {
		_, err := symcalc.ParseNumber(bad)
		assert.Error(t, err, bad)
	}
}

func TestJSON_DecodeErrors(t *testing.T) {
	for _, in := range []string{
		`[]`,
		`{}`,
		`{"type":"lambda"}`,
		`{"type":"var"}`,
		`{"type":"num"}`,
		`{"type":"op","op":"tan","args":[{"type":"var","name":"x"}]}`,
		`{"type":"op","op":"add","args":[{"type":"var","name":"x"}]}`,
		`{"type":"op","op":"neg","args":[{"type":"num","value":"x"}]}`,
	} {
		_, err := symcalc.FromJSON([]byte(in))
		assert.Error(t, err, in)
	}
}

func TestJSON_EmbeddedExpr(t *testing.T) {
	var req struct {
		Expr *symcalc.Expr `json:"expr"`
	}
	in := `{"expr":{"type":"op","op":"pow","args":[{"type":"var","name":"x"},{"type":"num","value":"2"}]}}`
	require.NoError(t, json.Unmarshal([]byte(in), &req))
	assert.Equal(t, "x ^ 2", req.Expr.String())

	out, err := json.Marshal(req)
	require.NoError(t, err)
	if diff := cmp.Diff(in, string(out)); diff != "" {
		t.Errorf("re-encoded request mismatch (-want +got):\n%s", diff)
	}
}
