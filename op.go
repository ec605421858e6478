package symcalc

import "strconv"

// Op identifies an operator node. The zero value marks an operand.
type Op uint8

const (
	OpNeg Op = iota + 1
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpSin
	OpCos
	OpExp
	OpLn
	OpPow
)

// Symbol is the rendering of the operator.
func (o Op) Symbol() string {
	switch o {
	case OpNeg, OpSub:
		return "-"
	case OpAdd:
		return "+"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpSin:
		return "sin"
	case OpCos:
		return "cos"
	case OpExp:
		return "exp"
	case OpLn:
		return "ln"
	case OpPow:
		return "^"
	}
	return "op(" + strconv.Itoa(int(o)) + ")"
}

// Name is the lower-case identifier used by the JSON codec.
func (o Op) Name() string {
	switch o {
	case OpNeg:
		return "neg"
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	case OpPow:
		return "pow"
	}
	return o.Symbol()
}

// Priority drives parenthesisation when rendering; it plays no part in
// evaluation order.
func (o Op) Priority() int {
	switch o {
	case OpNeg:
		return 1
	case OpAdd, OpSub:
		return 2
	case OpMul, OpDiv:
		return 3
	case OpExp, OpLn, OpPow:
		return 4
	case OpSin, OpCos:
		return 5
	}
	return 0
}

func (o Op) Arity() int {
	switch o {
	case OpNeg, OpSin, OpCos, OpExp, OpLn:
		return 1
	case OpAdd, OpSub, OpMul, OpDiv, OpPow:
		return 2
	}
	return 0
}

func (o Op) String() string { return o.Name() }

func opByName(name string) (Op, bool) {
	for o := OpNeg; o <= OpPow; o++ {
		if o.Name() == name {
			return o, true
		}
	}
	return 0, false
}
