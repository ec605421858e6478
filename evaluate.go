package symcalc

import (
	"fmt"
	"math"
)

// Env binds variable names to float64 values for Evaluate.
type Env map[string]float64

// Evaluate computes e in float64 under env. Division by zero and domain
// errors follow IEEE-754. A variable missing from env is a
// *NotANumberError naming that variable.
func (e *Expr) Evaluate(env Env) (float64, error) {
	switch e.kind {
	case nodeNum:
		return e.num.Float64(), nil
	case nodeVar:
		v, ok := env[e.v.Name]
		if !ok {
			return 0, &NotANumberError{Expr: e}
		}
		return v, nil
	}
	a, err := e.args[0].Evaluate(env)
	if err != nil {
		return 0, err
	}
	var b float64
	if len(e.args) == 2 {
		if b, err = e.args[1].Evaluate(env); err != nil {
			return 0, err
		}
	}
	switch e.op {
	case OpNeg:
		return -a, nil
	case OpAdd:
		return a + b, nil
	case OpSub:
		return a - b, nil
	case OpMul:
		return a * b, nil
	case OpDiv:
		return a / b, nil
	case OpSin:
		return math.Sin(a), nil
	case OpCos:
		return math.Cos(a), nil
	case OpExp:
		return math.Exp(a), nil
	case OpLn:
		return math.Log(a), nil
	case OpPow:
		return math.Pow(a, b), nil
	}
	panic(fmt.Sprintf("symcalc: evaluate: unknown operator %s", e.op))
}
