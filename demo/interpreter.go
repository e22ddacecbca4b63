package demo

import (
	"fmt"

	"ashn.dev/daedalus"
)

// FlagReturn is raised by return statements and absorbed by the enclosing
// block.
const FlagReturn daedalus.Flags = 1 << 0

// PROPERTY_MUTABLE is the only variable property of the demo language.
const PROPERTY_MUTABLE = "isMutable"

func nodeError(statement daedalus.Statement, expected string) error {
	return daedalus.NewEvalError(daedalus.ErrUnknownStatement, statement.Type(), fmt.Sprintf("expected %s", expected))
}

func evaluate(interpreter *daedalus.Interpreter, expression daedalus.Expression, env *daedalus.Environment) (daedalus.RuntimeValue, error) {
	result, err := interpreter.EvaluateStatement(expression, env)
	if err != nil {
		return nil, err
	}
	if result.Value == nil {
		return daedalus.NewNull(), nil
	}
	return result.Value, nil
}

func evaluateBoolean(interpreter *daedalus.Interpreter, statement daedalus.Statement, env *daedalus.Environment) (daedalus.RuntimeValueWrapper, error) {
	node, ok := statement.(*BooleanExpression)
	if !ok {
		return daedalus.RuntimeValueWrapper{}, nodeError(statement, NODE_BOOLEAN_EXPRESSION)
	}
	return daedalus.Wrap(daedalus.NewBoolean(node.Value)), nil
}

func evaluateNull(interpreter *daedalus.Interpreter, statement daedalus.Statement, env *daedalus.Environment) (daedalus.RuntimeValueWrapper, error) {
	return daedalus.Wrap(daedalus.NewNull()), nil
}

func evaluateIdentifier(interpreter *daedalus.Interpreter, statement daedalus.Statement, env *daedalus.Environment) (daedalus.RuntimeValueWrapper, error) {
	node, ok := statement.(*IdentifierExpression)
	if !ok {
		return daedalus.RuntimeValueWrapper{}, nodeError(statement, NODE_IDENTIFIER_EXPRESSION)
	}
	value, err := env.Get(node.Name)
	if err != nil {
		return daedalus.RuntimeValueWrapper{}, err
	}
	return daedalus.Wrap(value), nil
}

func evaluateUnary(interpreter *daedalus.Interpreter, statement daedalus.Statement, env *daedalus.Environment) (daedalus.RuntimeValueWrapper, error) {
	node, ok := statement.(*UnaryExpression)
	if !ok {
		return daedalus.RuntimeValueWrapper{}, nodeError(statement, NODE_UNARY_EXPRESSION)
	}
	term, err := evaluate(interpreter, node.Term, env)
	if err != nil {
		return daedalus.RuntimeValueWrapper{}, err
	}
	value, err := applyUnary(node.Operator, term)
	if err != nil {
		return daedalus.RuntimeValueWrapper{}, err
	}
	return daedalus.Wrap(value), nil
}

func evaluateBinary(interpreter *daedalus.Interpreter, statement daedalus.Statement, env *daedalus.Environment) (daedalus.RuntimeValueWrapper, error) {
	node, ok := statement.(*BinaryExpression)
	if !ok {
		return daedalus.RuntimeValueWrapper{}, nodeError(statement, NODE_BINARY_EXPRESSION)
	}
	left, err := evaluate(interpreter, node.Left, env)
	if err != nil {
		return daedalus.RuntimeValueWrapper{}, err
	}
	right, err := evaluate(interpreter, node.Right, env)
	if err != nil {
		return daedalus.RuntimeValueWrapper{}, err
	}
	value, err := applyBinary(node.Operator, left, right)
	if err != nil {
		return daedalus.RuntimeValueWrapper{}, err
	}
	return daedalus.Wrap(value), nil
}

func evaluateAssignment(interpreter *daedalus.Interpreter, statement daedalus.Statement, env *daedalus.Environment) (daedalus.RuntimeValueWrapper, error) {
	node, ok := statement.(*AssignmentExpression)
	if !ok {
		return daedalus.RuntimeValueWrapper{}, nodeError(statement, NODE_ASSIGNMENT_EXPRESSION)
	}
	value, err := evaluate(interpreter, node.Value, env)
	if err != nil {
		return daedalus.RuntimeValueWrapper{}, err
	}
	previous, err := env.Set(node.Name, value)
	if err != nil {
		return daedalus.RuntimeValueWrapper{}, err
	}
	return daedalus.Wrap(previous), nil
}

func evaluateDeclaration(interpreter *daedalus.Interpreter, statement daedalus.Statement, env *daedalus.Environment) (daedalus.RuntimeValueWrapper, error) {
	node, ok := statement.(*DeclarationExpression)
	if !ok {
		return daedalus.RuntimeValueWrapper{}, nodeError(statement, NODE_DECLARATION_EXPRESSION)
	}
	value, err := evaluate(interpreter, node.Value, env)
	if err != nil {
		return daedalus.RuntimeValueWrapper{}, err
	}
	mutable := "false"
	if node.Mutable {
		mutable = "true"
	}
	value, err = env.Init(node.Name, value, map[string]string{PROPERTY_MUTABLE: mutable})
	if err != nil {
		return daedalus.RuntimeValueWrapper{}, err
	}
	return daedalus.Wrap(value), nil
}

func evaluateReturn(interpreter *daedalus.Interpreter, statement daedalus.Statement, env *daedalus.Environment) (daedalus.RuntimeValueWrapper, error) {
	node, ok := statement.(*ReturnExpression)
	if !ok {
		return daedalus.RuntimeValueWrapper{}, nodeError(statement, NODE_RETURN_EXPRESSION)
	}
	if node.Value == nil {
		return daedalus.WrapFlags(daedalus.NewNull(), FlagReturn, true), nil
	}
	value, err := evaluate(interpreter, node.Value, env)
	if err != nil {
		return daedalus.RuntimeValueWrapper{}, err
	}
	return daedalus.WrapFlags(value, FlagReturn, false), nil
}

// A block runs in its own environment and yields its last value, or the
// value of a return inside it.
func evaluateBlock(interpreter *daedalus.Interpreter, statement daedalus.Statement, env *daedalus.Environment) (daedalus.RuntimeValueWrapper, error) {
	node, ok := statement.(*BlockExpression)
	if !ok {
		return daedalus.RuntimeValueWrapper{}, nodeError(statement, NODE_BLOCK_EXPRESSION)
	}
	result, err := interpreter.EvaluateScope(node.Scope, nil, nil, env, FlagReturn)
	if err != nil {
		return daedalus.RuntimeValueWrapper{}, err
	}
	result.Flags = daedalus.FlagRemove(result.Flags, FlagReturn)
	result.ReturnStatementBefore = false
	return result, nil
}

func Evaluators() map[string]daedalus.EvaluateFunc {
	return map[string]daedalus.EvaluateFunc{
		NODE_BOOLEAN_EXPRESSION:     evaluateBoolean,
		NODE_NULL_EXPRESSION:        evaluateNull,
		NODE_IDENTIFIER_EXPRESSION:  evaluateIdentifier,
		NODE_UNARY_EXPRESSION:       evaluateUnary,
		NODE_BINARY_EXPRESSION:      evaluateBinary,
		NODE_ASSIGNMENT_EXPRESSION:  evaluateAssignment,
		NODE_DECLARATION_EXPRESSION: evaluateDeclaration,
		NODE_RETURN_EXPRESSION:      evaluateReturn,
		NODE_BLOCK_EXPRESSION:       evaluateBlock,
	}
}

func Properties() []string {
	return []string{PROPERTY_MUTABLE}
}

func ValidationRules() []daedalus.ValidationRule {
	return []daedalus.ValidationRule{daedalus.MutabilityRule(PROPERTY_MUTABLE)}
}
