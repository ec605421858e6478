package symcalc

import (
	"fmt"
	"math"
)

// ============================================================
// Numeric aggregation
// ============================================================

// Aggregate folds constant subtrees and applies identity rules
// (x+0, x*1, x*0, exp(ln u), ln(exp u), sin 0, ...). Symbolic subtrees are
// rebuilt, never expanded. The pass is total and idempotent.
func Aggregate(e *Expr) *Expr { return e.Aggregate() }

func (e *Expr) Aggregate() *Expr {
	if e.kind != nodeOp {
		return e
	}
	args := make([]*Expr, len(e.args))
	for i, a := range e.args {
		args[i] = a.Aggregate()
	}
	switch e.op {
	case OpNeg:
		return negate(args[0])
	case OpAdd:
		return aggregateAdd(args[0], args[1])
	case OpSub:
		return aggregateSub(args[0], args[1])
	case OpMul:
		return aggregateMul(args[0], args[1])
	case OpDiv:
		return aggregateDiv(args[0], args[1])
	case OpSin:
		return aggregateSin(args[0])
	case OpCos:
		return aggregateCos(args[0])
	case OpExp:
		return aggregateExp(args[0])
	case OpLn:
		return aggregateLn(args[0])
	case OpPow:
		return aggregatePow(args[0], args[1])
	}
	panic(fmt.Sprintf("symcalc: aggregate: unknown operator %s", e.op))
}

// negate expects an aggregated argument.
func negate(u *Expr) *Expr {
	if n, ok := u.numeric(); ok {
		return FromNumber(n.Neg())
	}
	if u.op == OpNeg {
		return u.args[0]
	}
	return u.Neg()
}

func aggregateAdd(l, r *Expr) *Expr {
	if a, ok := l.numeric(); ok {
		if b, ok := r.numeric(); ok {
			return FromNumber(a.Add(b))
		}
	}
	switch {
	case l.IsZero():
		return r
	case r.IsZero():
		return l
	}
	return l.Add(r)
}

func aggregateSub(l, r *Expr) *Expr {
	if a, ok := l.numeric(); ok {
		if b, ok := r.numeric(); ok {
			return FromNumber(a.Sub(b))
		}
	}
	switch {
	case r.IsZero():
		return l
	case l.IsZero():
		return negate(r)
	}
	return l.Sub(r)
}

func aggregateMul(l, r *Expr) *Expr {
	if a, ok := l.numeric(); ok {
		if b, ok := r.numeric(); ok {
			return FromNumber(a.Mul(b))
		}
	}
	switch {
	case l.IsZero() || r.IsZero():
		return Zero()
	case l.IsOne():
		return r
	case r.IsOne():
		return l
	}
	return l.Mul(r)
}

// aggregateDiv leaves division by exact zero unevaluated.
func aggregateDiv(l, r *Expr) *Expr {
	if a, ok := l.numeric(); ok {
		if b, ok := r.numeric(); ok {
			if q, err := a.Div(b); err == nil {
				return FromNumber(q)
			}
			return l.Div(r)
		}
	}
	if r.IsOne() {
		return l
	}
	return l.Div(r)
}

// foldReal evaluates f on an untagged real; pi and e stay symbolic.
func foldReal(u *Expr, f func(float64) float64) (*Expr, bool) {
	n, ok := u.numeric()
	if !ok || n.Kind() != KindReal || n.Tag() != ConstNothing {
		return nil, false
	}
	v := f(n.Float64())
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, false
	}
	return Real(v), true
}

func aggregateSin(u *Expr) *Expr {
	if u.IsZero() || u.IsPi() {
		return Zero()
	}
	if v, ok := foldReal(u, math.Sin); ok {
		return v
	}
	return u.Sin()
}

func aggregateCos(u *Expr) *Expr {
	switch {
	case u.IsZero():
		return One()
	case u.IsPi():
		return Int(-1)
	}
	if v, ok := foldReal(u, math.Cos); ok {
		return v
	}
	return u.Cos()
}

func aggregateExp(u *Expr) *Expr {
	switch {
	case u.op == OpLn:
		return u.args[0]
	case u.IsZero():
		return One()
	case u.IsOne():
		return E()
	}
	if v, ok := foldReal(u, math.Exp); ok {
		return v
	}
	return u.Exp()
}

func aggregateLn(u *Expr) *Expr {
	switch {
	case u.op == OpExp:
		return u.args[0]
	case u.IsOne():
		return Zero()
	case u.IsE():
		return One()
	}
	if v, ok := foldReal(u, math.Log); ok {
		return v
	}
	return u.Ln()
}

func aggregatePow(b, x *Expr) *Expr {
	switch {
	case x.IsZero():
		return One()
	case x.IsOne():
		return b
	case b.IsOne():
		return One()
	}
	if bn, ok := b.numeric(); ok {
		if xn, ok := x.numeric(); ok {
			if v, ok := bn.Pow(xn); ok {
				return FromNumber(v)
			}
		}
	}
	return b.Pow(x)
}
