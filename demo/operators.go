package demo

import (
	"fmt"

	"ashn.dev/daedalus"
)

// Operator semantics shared by constant folding and evaluation, so a folded
// program produces exactly the values the unfolded one would.

func operandError(operator string, operands ...daedalus.RuntimeValue) error {
	detail := operator
	switch len(operands) {
	case 1:
		detail = fmt.Sprintf("%s%s", operator, operands[0].String())
	case 2:
		detail = fmt.Sprintf("%s %s %s", operands[0].String(), operator, operands[1].String())
	}
	return daedalus.NewEvalError(daedalus.ErrOperandMismatch, "", detail)
}

func applyUnary(operator string, term daedalus.RuntimeValue) (daedalus.RuntimeValue, error) {
	switch operator {
	case "!":
		return daedalus.NewBoolean(!term.IsTrue()), nil
	case "-":
		number, ok := term.(*daedalus.Number)
		if !ok {
			return nil, operandError(operator, term)
		}
		return daedalus.NewNumber(-number.Get()), nil
	}
	return nil, daedalus.NewEvalError(daedalus.ErrUnknownOperator, NODE_UNARY_EXPRESSION, operator)
}

func applyBinary(operator string, left daedalus.RuntimeValue, right daedalus.RuntimeValue) (daedalus.RuntimeValue, error) {
	switch operator {
	case "&&":
		return daedalus.NewBoolean(left.IsTrue() && right.IsTrue()), nil
	case "||":
		return daedalus.NewBoolean(left.IsTrue() || right.IsTrue()), nil
	case "==":
		return daedalus.NewBoolean(left.Equal(right)), nil
	case "!=":
		return daedalus.NewBoolean(!left.Equal(right)), nil
	}

	l, lok := left.(*daedalus.Number)
	r, rok := right.(*daedalus.Number)
	if !lok || !rok {
		return nil, operandError(operator, left, right)
	}

	switch operator {
	case "+":
		return daedalus.NewNumber(l.Get() + r.Get()), nil
	case "-":
		return daedalus.NewNumber(l.Get() - r.Get()), nil
	case "*":
		return daedalus.NewNumber(l.Get() * r.Get()), nil
	case "/":
		if r.Get() == 0 {
			return nil, daedalus.NewEvalError(daedalus.ErrDivisionByZero, "", fmt.Sprintf("%s / %s", l, r))
		}
		return daedalus.NewNumber(l.Get() / r.Get()), nil
	case "<":
		return daedalus.NewBoolean(l.Get() < r.Get()), nil
	case "<=":
		return daedalus.NewBoolean(l.Get() <= r.Get()), nil
	case ">":
		return daedalus.NewBoolean(l.Get() > r.Get()), nil
	case ">=":
		return daedalus.NewBoolean(l.Get() >= r.Get()), nil
	}
	return nil, daedalus.NewEvalError(daedalus.ErrUnknownOperator, NODE_BINARY_EXPRESSION, operator)
}
