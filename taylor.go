package symcalc

import (
	"strings"

	"k8s.io/klog/v2"
)

// ============================================================
// Taylor expansion
// ============================================================

// PartialExpansion is a truncated Taylor series of an expression about At.
// Coefficients[k] is f^(k)(At) / k!. Residual is the (Order+1)-th
// derivative, not yet evaluated or divided by a factorial.
type PartialExpansion struct {
	Order        uint64
	Of           *Expr
	At           *Expr
	Coefficients []*Expr
	Residual     *Expr
}

// TaylorExpansion expands e about of = at up to and including order.
func (e *Expr) TaylorExpansion(of Variable, at *Expr, order uint64) (*PartialExpansion, error) {
	return TaylorExpansion(e, of.Expr(), at, order)
}

// TaylorExpansion is the expression-argument form of Expr.TaylorExpansion.
// Failures are *TaylorExpansionError.
func TaylorExpansion(e, of, at *Expr, order uint64) (*PartialExpansion, error) {
	if !of.IsVariable() {
		return nil, &TaylorExpansionError{Expr: e, Reason: "not a variable", Err: &DerivativeError{Target: of}}
	}
	p := &PartialExpansion{
		Order:        order,
		Of:           of,
		At:           at,
		Coefficients: make([]*Expr, 0, order+1),
	}
	residual := e
	factorial := IntegerOf(1)
	for k := uint64(0); k <= order; k++ {
		factorial = factorial.Mul(IntegerOf(max(k, 1)))
		value, err := Substitute(residual, of, at)
		if err != nil {
			return nil, &TaylorExpansionError{Expr: residual, Reason: "substitute failure", Err: err}
		}
		coef := value.Aggregate().Div(FromNumber(factorial)).Aggregate()
		p.Coefficients = append(p.Coefficients, coef)
		klog.V(4).Infof("taylor %s at %s: order %d coefficient %s", of, at, k, coef)

		next, err := Derivative(residual, of)
		if err != nil {
			return nil, &TaylorExpansionError{Expr: residual, Reason: "derivative failure", Err: err}
		}
		residual = next
	}
	p.Residual = residual
	return p, nil
}

// base returns of - at, aggregated.
func (p *PartialExpansion) base() *Expr { return p.Of.Sub(p.At).Aggregate() }

func (p *PartialExpansion) term(k int, b *Expr) *Expr {
	return p.Coefficients[k].Mul(b.Pow(Int(k))).Aggregate()
}

// Polynomial sums the nonzero terms of the truncated series.
func (p *PartialExpansion) Polynomial() *Expr {
	b := p.base()
	var sum *Expr
	for k, c := range p.Coefficients {
		if c.IsZero() {
			continue
		}
		t := p.term(k, b)
		if sum == nil {
			sum = t
		} else {
			sum = sum.Add(t)
		}
	}
	if sum == nil {
		return Zero()
	}
	return sum
}

// String renders "c0 + c1 * b + ... + O(b ^ (n+1))" with zero terms omitted.
func (p *PartialExpansion) String() string {
	b := p.base()
	var parts []string
	for k, c := range p.Coefficients {
		if c.IsZero() {
			continue
		}
		parts = append(parts, p.term(k, b).String())
	}
	rest := "O(" + b.Pow(Int(p.Order+1)).Aggregate().String() + ")"
	return strings.Join(append(parts, rest), " + ")
}
