package symcalc

import (
	"fmt"
	"strings"

	"golang.org/x/exp/constraints"
)

// ============================================================
// Expr — immutable expression tree
// ============================================================

// Variable is a free symbol; two variables are the same symbol when their
// names match.
type Variable struct {
	Name string
}

func (v Variable) String() string { return v.Name }

// Expr returns the variable as an operand node.
func (v Variable) Expr() *Expr { return &Expr{kind: nodeVar, v: v} }

type nodeKind uint8

const (
	nodeNum nodeKind = iota
	nodeVar
	nodeOp
)

// Expr is either an operator with an ordered argument list or an operand
// holding a Number or a Variable. Nodes are never mutated after
// construction, so subtrees are shared freely between trees.
type Expr struct {
	kind nodeKind
	op   Op
	num  Number
	v    Variable
	args []*Expr
}

func FromNumber(n Number) *Expr { return &Expr{kind: nodeNum, num: n} }

// Int builds an integer operand from any integer type.
func Int[T constraints.Integer](v T) *Expr { return FromNumber(IntegerOf(v)) }

// Real builds a real operand from any float type.
func Real[T constraints.Float](v T) *Expr { return FromNumber(RealOf(v)) }

// Frac builds the exact rational p/q; q must be nonzero.
func Frac(p, q int64) (*Expr, error) {
	n, err := newInteger(p).Div(newInteger(q))
	if err != nil {
		return nil, err
	}
	return FromNumber(n), nil
}

func NewVariable(name string) *Expr { return Variable{Name: name}.Expr() }

func Zero() *Expr { return Int(0) }
func One() *Expr  { return Int(1) }
func Pi() *Expr   { return FromNumber(PiNumber()) }
func E() *Expr    { return FromNumber(ENumber()) }

func newOp(op Op, args ...*Expr) *Expr {
	if len(args) != op.Arity() {
		panic(fmt.Sprintf("symcalc: %s takes %d arguments, got %d", op, op.Arity(), len(args)))
	}
	return &Expr{kind: nodeOp, op: op, args: args}
}

// Node builds an operator node from an explicit argument list. It panics
// when the argument count does not match the operator's arity.
func Node(op Op, args ...*Expr) *Expr {
	return newOp(op, append([]*Expr(nil), args...)...)
}

func (e *Expr) Neg() *Expr           { return newOp(OpNeg, e) }
func (e *Expr) Add(rhs *Expr) *Expr  { return newOp(OpAdd, e, rhs) }
func (e *Expr) Sub(rhs *Expr) *Expr  { return newOp(OpSub, e, rhs) }
func (e *Expr) Mul(rhs *Expr) *Expr  { return newOp(OpMul, e, rhs) }
func (e *Expr) Div(rhs *Expr) *Expr  { return newOp(OpDiv, e, rhs) }
func (e *Expr) Pow(expo *Expr) *Expr { return newOp(OpPow, e, expo) }
func (e *Expr) Sin() *Expr           { return newOp(OpSin, e) }
func (e *Expr) Cos() *Expr           { return newOp(OpCos, e) }
func (e *Expr) Exp() *Expr           { return newOp(OpExp, e) }
func (e *Expr) Ln() *Expr            { return newOp(OpLn, e) }

func Sin(x *Expr) *Expr { return x.Sin() }
func Cos(x *Expr) *Expr { return x.Cos() }
func Exp(x *Expr) *Expr { return x.Exp() }
func Ln(x *Expr) *Expr  { return x.Ln() }

// ============================================================
// Queries
// ============================================================

func (e *Expr) IsOperator() bool { return e.kind == nodeOp }
func (e *Expr) IsOperand() bool  { return e.kind != nodeOp }
func (e *Expr) IsNum() bool      { return e.kind == nodeNum }
func (e *Expr) IsVariable() bool { return e.kind == nodeVar }
func (e *Expr) IsZero() bool     { return e.kind == nodeNum && e.num.IsZero() }
func (e *Expr) IsOne() bool      { return e.kind == nodeNum && e.num.IsOne() }
func (e *Expr) IsPi() bool       { return e.kind == nodeNum && e.num.IsPi() }
func (e *Expr) IsE() bool        { return e.kind == nodeNum && e.num.IsE() }

// Op returns the operator of an operator node and 0 for operands.
func (e *Expr) Op() Op { return e.op }

// Args returns a copy of the argument list.
func (e *Expr) Args() []*Expr { return append([]*Expr(nil), e.args...) }

func (e *Expr) Arg(i int) *Expr { return e.args[i] }

// Number returns the held number, or a *NotANumberError for operator nodes
// and variables.
func (e *Expr) Number() (Number, error) {
	if e.kind != nodeNum {
		return Number{}, &NotANumberError{Expr: e}
	}
	return e.num, nil
}

func (e *Expr) Variable() (Variable, bool) {
	if e.kind != nodeVar {
		return Variable{}, false
	}
	return e.v, true
}

func (e *Expr) numeric() (Number, bool) {
	if e.kind != nodeNum {
		return Number{}, false
	}
	return e.num, true
}

// Equal reports structural equality; numbers compare by value.
func (e *Expr) Equal(other *Expr) bool {
	if e == other {
		return true
	}
	if other == nil || e.kind != other.kind {
		return false
	}
	switch e.kind {
	case nodeNum:
		return e.num.Equal(other.num)
	case nodeVar:
		return e.v == other.v
	}
	if e.op != other.op || len(e.args) != len(other.args) {
		return false
	}
	for i := range e.args {
		if !e.args[i].Equal(other.args[i]) {
			return false
		}
	}
	return true
}

// IsClose compares two numeric operands within eps. It fails with
// *NotANumberError when either side is not a number.
func (e *Expr) IsClose(other *Expr, eps float64) (bool, error) {
	a, err := e.Number()
	if err != nil {
		return false, err
	}
	b, err := other.Number()
	if err != nil {
		return false, err
	}
	return a.IsClose(b, eps), nil
}

// FreeVariables lists variable names in first-occurrence order.
func (e *Expr) FreeVariables() []string {
	var out []string
	seen := map[string]struct{}{}
	var walk func(*Expr)
	walk = func(x *Expr) {
		switch x.kind {
		case nodeVar:
			if _, ok := seen[x.v.Name]; !ok {
				seen[x.v.Name] = struct{}{}
				out = append(out, x.v.Name)
			}
		case nodeOp:
			for _, a := range x.args {
				walk(a)
			}
		}
	}
	walk(e)
	return out
}

// ============================================================
// Rendering
// ============================================================

// String renders infix text. A child is parenthesised only when its own
// operator binds strictly looser than its parent's.
func (e *Expr) String() string {
	var b strings.Builder
	e.write(&b, 0)
	return b.String()
}

func (e *Expr) write(b *strings.Builder, upper int) {
	switch e.kind {
	case nodeNum:
		b.WriteString(e.num.String())
		return
	case nodeVar:
		b.WriteString(e.v.Name)
		return
	}
	p := e.op.Priority()
	paren := p < upper
	if paren {
		b.WriteByte('(')
	}
	if len(e.args) == 2 {
		e.args[0].write(b, p)
		b.WriteByte(' ')
		b.WriteString(e.op.Symbol())
		b.WriteByte(' ')
		e.args[1].write(b, p)
	} else {
		b.WriteString(e.op.Symbol())
		e.args[0].write(b, p)
	}
	if paren {
		b.WriteByte(')')
	}
}
