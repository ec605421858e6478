package symcalc

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/cockroachdb/apd/v3"
	"github.com/pkg/errors"
)

// ============================================================
// JSON Serialization
// ============================================================

// jsonExpr is the wire form of an expression:
//
//	{"type":"num","value":"1/3"}
//	{"type":"var","name":"x"}
//	{"type":"op","op":"mul","args":[...]}
type jsonExpr struct {
	Type  string      `json:"type"`
	Value string      `json:"value,omitempty"`
	Name  string      `json:"name,omitempty"`
	Op    string      `json:"op,omitempty"`
	Args  []*jsonExpr `json:"args,omitempty"`
}

func ToJSON(e *Expr) (string, error) {
	b, err := json.Marshal(e.toJSON())
	return string(b), err
}

// FromJSON decodes a single expression object.
func FromJSON(data []byte) (*Expr, error) {
	var j jsonExpr
	if err := json.Unmarshal(data, &j); err != nil {
		return nil, errors.Wrap(err, "decode expression")
	}
	return j.expr()
}

func (e *Expr) MarshalJSON() ([]byte, error) { return json.Marshal(e.toJSON()) }

// UnmarshalJSON decodes into a zero Expr; it exists so request structs can
// embed expressions directly.
func (e *Expr) UnmarshalJSON(data []byte) error {
	d, err := FromJSON(data)
	if err != nil {
		return err
	}
	*e = *d
	return nil
}

func (e *Expr) toJSON() *jsonExpr {
	switch e.kind {
	case nodeNum:
		return &jsonExpr{Type: "num", Value: formatNumber(e.num)}
	case nodeVar:
		return &jsonExpr{Type: "var", Name: e.v.Name}
	}
	args := make([]*jsonExpr, len(e.args))
	for i, a := range e.args {
		args[i] = a.toJSON()
	}
	return &jsonExpr{Type: "op", Op: e.op.Name(), Args: args}
}

func (j *jsonExpr) expr() (*Expr, error) {
	if j == nil {
		return nil, errors.New("expression must be an object")
	}
	switch j.Type {
	case "num":
		n, err := ParseNumber(j.Value)
		if err != nil {
			return nil, err
		}
		return FromNumber(n), nil
	case "var":
		if j.Name == "" {
			return nil, errors.New("var: missing \"name\"")
		}
		return NewVariable(j.Name), nil
	case "op":
		op, ok := opByName(j.Op)
		if !ok {
			return nil, errors.Errorf("op: unknown operator %q", j.Op)
		}
		if len(j.Args) != op.Arity() {
			return nil, errors.Errorf("op %s: want %d args, got %d", op, op.Arity(), len(j.Args))
		}
		args := make([]*Expr, len(j.Args))
		for i, a := range j.Args {
			x, err := a.expr()
			if err != nil {
				return nil, errors.WithMessagef(err, "op %s: arg %d", op, i)
			}
			args[i] = x
		}
		return newOp(op, args...), nil
	case "":
		return nil, errors.New("missing 'type' field")
	}
	return nil, errors.Errorf("unknown expression type: %s", j.Type)
}

// formatNumber writes a literal that ParseNumber reads back as the same
// kind: reals always carry a decimal point or an exponent sign.
func formatNumber(n Number) string {
	switch {
	case n.IsPi():
		return "pi"
	case n.IsE():
		return "e"
	}
	switch n.Kind() {
	case KindInteger:
		return strconv.FormatInt(n.i, 10)
	case KindRational:
		if n.q.Den() == 1 {
			return n.q.String() + "/1"
		}
		return n.q.String()
	}
	s := strconv.FormatFloat(n.f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	} else if i := strings.IndexAny(s, "eE"); i >= 0 && !strings.Contains(s[:i], ".") {
		s = s[:i] + ".0" + s[i:]
	}
	return s
}

// ParseNumber reads "pi", "e", an exact fraction "p/q", or a decimal
// literal. Decimals without a fractional point that fit in 64 bits are
// Integers; everything else becomes a Real.
func ParseNumber(s string) (Number, error) {
	s = strings.TrimSpace(s)
	switch s {
	case "pi":
		return PiNumber(), nil
	case "e":
		return ENumber(), nil
	case "":
		return Number{}, errors.New("num: missing \"value\"")
	}
	if p, q, ok := strings.Cut(s, "/"); ok {
		return parseFraction(p, q)
	}
	d, _, err := apd.NewFromString(s)
	if err != nil {
		return Number{}, errors.Wrapf(err, "num: bad literal %q", s)
	}
	if !strings.Contains(s, ".") && d.Form == apd.Finite && d.Exponent >= 0 {
		if i, err := d.Int64(); err == nil {
			return newInteger(i), nil
		}
	}
	f, err := d.Float64()
	if err != nil {
		return Number{}, errors.Wrapf(err, "num: literal %q out of range", s)
	}
	return newReal(f), nil
}

func parseFraction(p, q string) (Number, error) {
	sign := 1
	p = strings.TrimSpace(p)
	if strings.HasPrefix(p, "-") {
		sign, p = -1, p[1:]
	}
	num, err := strconv.ParseUint(p, 10, 64)
	if err != nil {
		return Number{}, errors.Wrapf(err, "num: bad numerator %q", p)
	}
	den, err := strconv.ParseUint(strings.TrimSpace(q), 10, 64)
	if err != nil {
		return Number{}, errors.Wrapf(err, "num: bad denominator %q", q)
	}
	n, err := RationalOf(sign, num, den)
	if err != nil {
		return Number{}, errors.WithMessagef(err, "num: %s/%s", p, q)
	}
	return n, nil
}
