package symcalc

import "fmt"

// ============================================================
// Differentiation
// ============================================================

// Derivative differentiates with respect to v. Every intermediate result is
// aggregated so repeated differentiation (limits, Taylor) stays compact.
func (e *Expr) Derivative(v Variable) *Expr {
	switch e.kind {
	case nodeNum:
		return Zero()
	case nodeVar:
		if e.v == v {
			return One()
		}
		return Zero()
	}
	return derivativeRule(e, v).Aggregate()
}

// Derivative resolves wrt to a variable and differentiates e. A
// non-variable target is a *DerivativeError.
func Derivative(e, wrt *Expr) (*Expr, error) {
	v, ok := wrt.Variable()
	if !ok {
		return nil, &DerivativeError{Target: wrt}
	}
	return e.Derivative(v), nil
}

// Gradient returns the partial derivative with respect to each variable.
func (e *Expr) Gradient(vars ...Variable) []*Expr {
	out := make([]*Expr, len(vars))
	for i, v := range vars {
		out[i] = e.Derivative(v)
	}
	return out
}

// DerivativeN differentiates n times.
func (e *Expr) DerivativeN(v Variable, n int) *Expr {
	for i := 0; i < n; i++ {
		e = e.Derivative(v)
	}
	return e
}

func derivativeRule(e *Expr, v Variable) *Expr {
	switch e.op {
	case OpNeg:
		return e.args[0].Derivative(v).Neg()
	case OpAdd:
		return e.args[0].Derivative(v).Add(e.args[1].Derivative(v))
	case OpSub:
		return e.args[0].Derivative(v).Sub(e.args[1].Derivative(v))
	case OpMul:
		// (uv)' = u'v + uv'
		u, w := e.args[0], e.args[1]
		return u.Derivative(v).Mul(w).Add(u.Mul(w.Derivative(v)))
	case OpDiv:
		// (u/w)' = (u'w - uw') / (w*w)
		u, w := e.args[0], e.args[1]
		return u.Derivative(v).Mul(w).Sub(u.Mul(w.Derivative(v))).Div(w.Mul(w))
	case OpSin:
		u := e.args[0]
		return u.Cos().Mul(u.Derivative(v))
	case OpCos:
		u := e.args[0]
		return u.Sin().Neg().Mul(u.Derivative(v))
	case OpExp:
		u := e.args[0]
		return u.Derivative(v).Mul(u.Exp())
	case OpLn:
		u := e.args[0]
		return u.Derivative(v).Div(u)
	case OpPow:
		return powDerivative(e.args[0], e.args[1], v)
	}
	panic(fmt.Sprintf("symcalc: derivative: unknown operator %s", e.op))
}

// powDerivative uses u^r = exp(r ln u):
// (u^r)' = u^r * (r' ln u + r u'/u).
// A constant exponent takes the power rule r * u^(r-1) * u' instead.
func powDerivative(u, r *Expr, v Variable) *Expr {
	rd := r.Derivative(v)
	ud := u.Derivative(v)
	if rd.IsZero() {
		return r.Mul(u.Pow(r.Sub(One()))).Mul(ud)
	}
	return u.Pow(r).Mul(rd.Mul(u.Ln()).Add(r.Mul(ud).Div(u)))
}
