package symcalc

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrDivisionByZero is returned when an Integer or Rational is divided
	// by exact zero.
	ErrDivisionByZero = errors.New("symcalc: division by zero")

	// ErrNoValidLimit means neither the limit class algebra nor the
	// bounded derivative fallback could decide the limit.
	ErrNoValidLimit = errors.New("symcalc: no valid limit found")
)

// NotANumberError is returned when a numeric value is requested from an
// operator node or a variable.
type NotANumberError struct {
	Expr *Expr
}

func (e *NotANumberError) Error() string {
	return fmt.Sprintf("symcalc: %s is not a number", e.Expr)
}

// SubstituteError reports a substitution target that is not a variable.
type SubstituteError struct {
	Target *Expr
}

func (e *SubstituteError) Error() string {
	return fmt.Sprintf("symcalc: cannot substitute for %s: not a variable", e.Target)
}

// DerivativeError reports a differentiation target that is not a variable.
type DerivativeError struct {
	Target *Expr
}

func (e *DerivativeError) Error() string {
	return fmt.Sprintf("symcalc: cannot differentiate with respect to %s: not a variable", e.Target)
}

// TaylorExpansionError carries the expression that could not be expanded.
type TaylorExpansionError struct {
	Expr   *Expr
	Reason string
	Err    error
}

func (e *TaylorExpansionError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("symcalc: cannot expand %s due to %s", e.Expr, e.Reason)
	}
	return fmt.Sprintf("symcalc: cannot expand %s due to %s: %v", e.Expr, e.Reason, e.Err)
}

func (e *TaylorExpansionError) Unwrap() error { return e.Err }
