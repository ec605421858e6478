package symcalc

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// ============================================================
// Limit classes
// ============================================================

// LimitKind classifies how a subexpression behaves near the limit point.
// Approach direction is not tracked: an Infinity may be of either sign.
type LimitKind uint8

const (
	Infinitesimal LimitKind = iota
	Infinity
	BoundedFluctuation
	Normal
)

func (k LimitKind) String() string {
	switch k {
	case Infinitesimal:
		return "infinitesimal"
	case Infinity:
		return "infinity"
	case BoundedFluctuation:
		return "bounded_fluctuation"
	case Normal:
		return "normal"
	}
	return fmt.Sprintf("LimitKind(%d)", uint8(k))
}

// LimitClass is a LimitKind plus, for Normal, the aggregated nonzero value.
type LimitClass struct {
	Kind  LimitKind
	Value *Expr
}

var (
	classInfinitesimal = LimitClass{Kind: Infinitesimal}
	classInfinity      = LimitClass{Kind: Infinity}
	classFluctuation   = LimitClass{Kind: BoundedFluctuation}
)

// normalClass aggregates v and lifts a numeric zero to Infinitesimal and a
// numeric infinity to Infinity.
func normalClass(v *Expr) LimitClass {
	v = v.Aggregate()
	if n, ok := v.numeric(); ok {
		switch f := n.Float64(); {
		case f == 0:
			return classInfinitesimal
		case math.IsInf(f, 0):
			return classInfinity
		}
	}
	return LimitClass{Kind: Normal, Value: v}
}

func (c LimitClass) String() string {
	switch c.Kind {
	case Infinitesimal:
		return "0"
	case Infinity:
		return "infinity"
	case BoundedFluctuation:
		return "~"
	}
	return c.Value.String()
}

func indeterminate(a LimitClass, op string, b LimitClass) error {
	return errors.WithMessagef(ErrNoValidLimit, "indeterminate form %s %s %s", a.Kind, op, b.Kind)
}

func (c LimitClass) Neg() LimitClass {
	if c.Kind == Normal {
		return normalClass(c.Value.Neg())
	}
	return c
}

func (c LimitClass) Add(d LimitClass) (LimitClass, error) {
	switch c.Kind {
	case Infinitesimal:
		switch d.Kind {
		case Infinity:
			return LimitClass{}, indeterminate(c, "+", d)
		}
		return d, nil
	case Infinity:
		switch d.Kind {
		case Infinitesimal, Infinity:
			return LimitClass{}, indeterminate(c, "+", d)
		}
		return classInfinity, nil
	case BoundedFluctuation:
		switch d.Kind {
		case Infinity:
			return classInfinity, nil
		}
		return classFluctuation, nil
	}
	switch d.Kind {
	case Infinitesimal:
		return c, nil
	case Normal:
		return normalClass(c.Value.Add(d.Value)), nil
	}
	return d, nil
}

func (c LimitClass) Sub(d LimitClass) (LimitClass, error) { return c.Add(d.Neg()) }

func (c LimitClass) Mul(d LimitClass) (LimitClass, error) {
	switch c.Kind {
	case Infinitesimal:
		if d.Kind == Infinity {
			return LimitClass{}, indeterminate(c, "*", d)
		}
		return classInfinitesimal, nil
	case Infinity:
		switch d.Kind {
		case Infinitesimal, BoundedFluctuation:
			return LimitClass{}, indeterminate(c, "*", d)
		}
		return classInfinity, nil
	case BoundedFluctuation:
		switch d.Kind {
		case Infinitesimal:
			return classInfinitesimal, nil
		case Infinity:
			return LimitClass{}, indeterminate(c, "*", d)
		}
		return classFluctuation, nil
	}
	if d.Kind == Normal {
		return normalClass(c.Value.Mul(d.Value)), nil
	}
	return d, nil
}

func (c LimitClass) Div(d LimitClass) (LimitClass, error) {
	undefined := func() (LimitClass, error) { return LimitClass{}, indeterminate(c, "/", d) }
	switch c.Kind {
	case Infinitesimal:
		switch d.Kind {
		case Infinity, Normal:
			return classInfinitesimal, nil
		}
		return undefined()
	case Infinity:
		switch d.Kind {
		case Infinitesimal, Normal:
			return classInfinity, nil
		}
		return undefined()
	case BoundedFluctuation:
		switch d.Kind {
		case Infinity:
			return classInfinitesimal, nil
		case Normal:
			return classFluctuation, nil
		}
		return undefined()
	}
	switch d.Kind {
	case Infinitesimal:
		return classInfinity, nil
	case Infinity:
		return classInfinitesimal, nil
	case BoundedFluctuation:
		return undefined()
	}
	return normalClass(c.Value.Div(d.Value)), nil
}

// ============================================================
// Limit evaluation
// ============================================================

// maxLimitRewrites caps the total number of sum/product/power rewrites in
// one Limit call, shared by all subtrees; maxOrder bounds each L'Hôpital
// loop.
const maxLimitRewrites = 16

type limiter struct {
	of       Variable
	to       *Expr
	maxOrder uint64
	rewrites int
}

// Limit classifies e as of approaches to. Indeterminate quotients are
// retried after differentiating numerator and denominator, at most maxOrder
// times. Failure wraps ErrNoValidLimit.
func (e *Expr) Limit(of Variable, to *Expr, maxOrder uint64) (LimitClass, error) {
	l := &limiter{of: of, to: to.Aggregate(), maxOrder: maxOrder}
	return l.eval(e)
}

// Limit resolves of to a variable and evaluates the limit of e.
func Limit(e, of, to *Expr, maxOrder uint64) (LimitClass, error) {
	v, ok := of.Variable()
	if !ok {
		return LimitClass{}, errors.WithMessagef(ErrNoValidLimit, "%s is not a variable", of)
	}
	return e.Limit(v, to, maxOrder)
}

// eval classifies e. A numeric Normal that is NaN has no limit.
func (l *limiter) eval(e *Expr) (LimitClass, error) {
	c, err := l.classify(e)
	if err != nil || c.Kind != Normal {
		return c, err
	}
	if n, ok := c.Value.numeric(); ok && math.IsNaN(n.Float64()) {
		return LimitClass{}, errors.WithMessagef(ErrNoValidLimit, "%s is not a number", e)
	}
	return c, nil
}

func (l *limiter) classify(e *Expr) (LimitClass, error) {
	switch e.kind {
	case nodeNum:
		return normalClass(e), nil
	case nodeVar:
		if e.v == l.of {
			return normalClass(l.to), nil
		}
		return LimitClass{Kind: Normal, Value: e}, nil
	}
	switch e.op {
	case OpNeg:
		c, err := l.eval(e.args[0])
		if err != nil {
			return LimitClass{}, err
		}
		return c.Neg(), nil
	case OpAdd:
		return l.sum(e.args[0], e.args[1])
	case OpSub:
		return l.sum(e.args[0], e.args[1].Neg())
	case OpMul:
		return l.product(e.args[0], e.args[1])
	case OpDiv:
		return l.quotient(e.args[0], e.args[1])
	case OpSin, OpCos:
		return l.trig(e.op, e.args[0])
	case OpExp:
		return l.exp(e.args[0])
	case OpLn:
		return l.ln(e.args[0])
	case OpPow:
		return l.pow(e.args[0], e.args[1])
	}
	panic(fmt.Sprintf("symcalc: limit: unknown operator %s", e.op))
}

func (l *limiter) pair(a, b *Expr) (LimitClass, LimitClass, error) {
	ca, err := l.eval(a)
	if err != nil {
		return LimitClass{}, LimitClass{}, err
	}
	cb, err := l.eval(b)
	if err != nil {
		return LimitClass{}, LimitClass{}, err
	}
	return ca, cb, nil
}

// rewrite evaluates an equivalent form of an indeterminate node.
func (l *limiter) rewrite(why string, e *Expr) (LimitClass, error) {
	if l.rewrites >= maxLimitRewrites {
		return LimitClass{}, errors.WithMessagef(ErrNoValidLimit, "too many rewrites at %s", e)
	}
	l.rewrites++
	klog.V(4).Infof("limit %s -> %s: rewriting %s as %s", l.of, l.to, why, e)
	return l.eval(e)
}

func (l *limiter) sum(a, b *Expr) (LimitClass, error) {
	ca, cb, err := l.pair(a, b)
	if err != nil {
		return LimitClass{}, err
	}
	if c, err := ca.Add(cb); err == nil {
		return c, nil
	}
	// a + b = (a/b + 1) / (1/b)
	return l.rewrite("sum", a.Div(b).Add(One()).Div(One().Div(b)))
}

func (l *limiter) product(a, b *Expr) (LimitClass, error) {
	ca, cb, err := l.pair(a, b)
	if err != nil {
		return LimitClass{}, err
	}
	if c, err := ca.Mul(cb); err == nil {
		return c, nil
	}
	// Invert whichever factor does not vanish.
	if cb.Kind == Infinitesimal {
		return l.rewrite("product", b.Div(One().Div(a)))
	}
	return l.rewrite("product", a.Div(One().Div(b)))
}

func (l *limiter) quotient(a, b *Expr) (LimitClass, error) {
	var last error
	for k := uint64(0); ; k++ {
		ca, cb, err := l.pair(a, b)
		if err != nil {
			return LimitClass{}, err
		}
		c, err := ca.Div(cb)
		if err == nil {
			return c, nil
		}
		last = err
		if k >= l.maxOrder {
			break
		}
		a, b = a.Derivative(l.of), b.Derivative(l.of)
		klog.V(4).Infof("limit %s -> %s: L'Hopital step %d: %s / %s", l.of, l.to, k+1, a, b)
	}
	return LimitClass{}, errors.WithMessagef(last, "unresolved after %d derivatives", l.maxOrder)
}

func (l *limiter) trig(op Op, arg *Expr) (LimitClass, error) {
	c, err := l.eval(arg)
	if err != nil {
		return LimitClass{}, err
	}
	switch c.Kind {
	case Infinity, BoundedFluctuation:
		return classFluctuation, nil
	case Infinitesimal:
		if op == OpSin {
			return classInfinitesimal, nil
		}
		return normalClass(One()), nil
	}
	return normalClass(newOp(op, c.Value)), nil
}

func (l *limiter) exp(arg *Expr) (LimitClass, error) {
	c, err := l.eval(arg)
	if err != nil {
		return LimitClass{}, err
	}
	switch c.Kind {
	case Infinitesimal:
		return normalClass(One()), nil
	case Infinity:
		return LimitClass{}, errors.WithMessagef(ErrNoValidLimit, "exp of unsigned infinity in %s", arg.Exp())
	case BoundedFluctuation:
		return classFluctuation, nil
	}
	return normalClass(c.Value.Exp()), nil
}

func (l *limiter) ln(arg *Expr) (LimitClass, error) {
	c, err := l.eval(arg)
	if err != nil {
		return LimitClass{}, err
	}
	switch c.Kind {
	case Infinitesimal, Infinity:
		return classInfinity, nil
	case BoundedFluctuation:
		return LimitClass{}, errors.WithMessagef(ErrNoValidLimit, "ln of bounded fluctuation in %s", arg.Ln())
	}
	return normalClass(c.Value.Ln()), nil
}

func (l *limiter) pow(base, expo *Expr) (LimitClass, error) {
	cb, ce, err := l.pair(base, expo)
	if err != nil {
		return LimitClass{}, err
	}
	if ce.Kind == Normal {
		if cb.Kind == Normal {
			return normalClass(cb.Value.Pow(ce.Value)), nil
		}
		if n, ok := ce.Value.numeric(); ok && (cb.Kind == Infinitesimal || cb.Kind == Infinity) {
			positive := n.Float64() > 0
			if (cb.Kind == Infinitesimal) == positive {
				return classInfinitesimal, nil
			}
			return classInfinity, nil
		}
	}
	if ce.Kind == Infinitesimal && cb.Kind == Normal {
		return normalClass(One()), nil
	}
	// u^r = exp(r ln u)
	return l.rewrite("power", expo.Mul(base.Ln()).Exp())
}
