package symcalc

import (
	"strconv"
	"strings"
)

// ============================================================
// LaTeX rendering
// ============================================================

// LaTeX renders e as a LaTeX math fragment. Unlike String it always
// parenthesises sums under negation, products and powers.
func (e *Expr) LaTeX() string {
	var b strings.Builder
	e.latex(&b)
	return b.String()
}

func LaTeX(e *Expr) string { return e.LaTeX() }

func numberLaTeX(n Number) string {
	switch {
	case n.IsPi():
		return `\pi`
	case n.IsE():
		return "e"
	}
	switch n.Kind() {
	case KindInteger:
		return strconv.FormatInt(n.i, 10)
	case KindRational:
		q := n.q
		if q.Den() == 1 {
			return q.String()
		}
		sign := ""
		if q.Sign() < 0 {
			sign = "-"
		}
		return sign + `\frac{` + strconv.FormatUint(q.Num(), 10) + "}{" + strconv.FormatUint(q.Den(), 10) + "}"
	}
	return strconv.FormatFloat(n.f, 'g', -1, 64)
}

func (e *Expr) isSum() bool { return e.op == OpAdd || e.op == OpSub }

func (e *Expr) isNegative() bool {
	return e.op == OpNeg || (e.kind == nodeNum && e.num.Float64() < 0)
}

func (e *Expr) latexParen(b *strings.Builder, paren bool) {
	if paren {
		b.WriteString(`\left(`)
	}
	e.latex(b)
	if paren {
		b.WriteString(`\right)`)
	}
}

func (e *Expr) latex(b *strings.Builder) {
	switch e.kind {
	case nodeNum:
		b.WriteString(numberLaTeX(e.num))
		return
	case nodeVar:
		b.WriteString(e.v.Name)
		return
	}
	switch e.op {
	case OpNeg:
		b.WriteByte('-')
		e.args[0].latexParen(b, e.args[0].isSum() || e.args[0].isNegative())
	case OpAdd:
		e.args[0].latex(b)
		b.WriteString(" + ")
		e.args[1].latexParen(b, e.args[1].isNegative())
	case OpSub:
		e.args[0].latex(b)
		b.WriteString(" - ")
		e.args[1].latexParen(b, e.args[1].isSum() || e.args[1].isNegative())
	case OpMul:
		e.args[0].latexParen(b, e.args[0].isSum())
		b.WriteString(` \cdot `)
		e.args[1].latexParen(b, e.args[1].isSum() || e.args[1].isNegative())
	case OpDiv:
		b.WriteString(`\frac{`)
		e.args[0].latex(b)
		b.WriteString("}{")
		e.args[1].latex(b)
		b.WriteString("}")
	case OpPow:
		base := e.args[0]
		base.latexParen(b, base.kind == nodeOp || base.isNegative())
		b.WriteString("^{")
		e.args[1].latex(b)
		b.WriteString("}")
	case OpSin, OpCos, OpExp, OpLn:
		b.WriteString(`\` + e.op.Symbol() + `\left(`)
		e.args[0].latex(b)
		b.WriteString(`\right)`)
	}
}
