package symcalc

// Substitute replaces every occurrence of target with replacement. Subtrees
// without the target are returned as-is.
func (e *Expr) Substitute(target Variable, replacement *Expr) *Expr {
	switch e.kind {
	case nodeNum:
		return e
	case nodeVar:
		if e.v == target {
			return replacement
		}
		return e
	}
	var args []*Expr
	for i, a := range e.args {
		s := a.Substitute(target, replacement)
		if s != a && args == nil {
			args = make([]*Expr, len(e.args))
			copy(args, e.args[:i])
		}
		if args != nil {
			args[i] = s
		}
	}
	if args == nil {
		return e
	}
	return newOp(e.op, args...)
}

// Substitute resolves target to a variable and substitutes replacement for
// it. A non-variable target is a *SubstituteError.
func Substitute(e, target, replacement *Expr) (*Expr, error) {
	v, ok := target.Variable()
	if !ok {
		return nil, &SubstituteError{Target: target}
	}
	return e.Substitute(v, replacement), nil
}
