package demo

import (
	"fmt"
	"strings"

	"ashn.dev/daedalus"
)

// Node Types
const (
	NODE_BOOLEAN_EXPRESSION     = "BooleanExpression"
	NODE_NULL_EXPRESSION        = "NullExpression"
	NODE_IDENTIFIER_EXPRESSION  = "IdentifierExpression"
	NODE_UNARY_EXPRESSION       = "UnaryExpression"
	NODE_BINARY_EXPRESSION      = "BinaryExpression"
	NODE_ASSIGNMENT_EXPRESSION  = "AssignmentExpression"
	NODE_DECLARATION_EXPRESSION = "DeclarationExpression"
	NODE_RETURN_EXPRESSION      = "ReturnExpression"
	NODE_BLOCK_EXPRESSION       = "BlockExpression"
)

func tabs(indent int) string {
	return strings.Repeat("\t", indent)
}

// literalValue returns the constant value of a literal node.
func literalValue(expression daedalus.Expression) (daedalus.RuntimeValue, bool) {
	switch literal := expression.(type) {
	case *daedalus.NumberExpression:
		return daedalus.NewNumber(literal.Value), true
	case *BooleanExpression:
		return daedalus.NewBoolean(literal.Value), true
	case *NullExpression:
		return daedalus.NewNull(), true
	}
	return nil, false
}

// literalExpression is the inverse of literalValue.
func literalExpression(value daedalus.RuntimeValue) (daedalus.Expression, error) {
	switch constant := value.(type) {
	case *daedalus.Number:
		return daedalus.NewNumberExpression(constant.Get()), nil
	case *daedalus.Boolean:
		return &BooleanExpression{Value: constant.Get()}, nil
	case *daedalus.Null:
		return &NullExpression{}, nil
	}
	return nil, fmt.Errorf("no literal for %s value", value.Typename())
}

type BooleanExpression struct {
	Value bool
}

func (self *BooleanExpression) Type() string {
	return NODE_BOOLEAN_EXPRESSION
}

func (self *BooleanExpression) Repr(indent int) string {
	if self.Value {
		return tabs(indent) + "true"
	}
	return tabs(indent) + "false"
}

func (self *BooleanExpression) Reduce() (daedalus.Expression, error) {
	return self, nil
}

type NullExpression struct{}

func (self *NullExpression) Type() string {
	return NODE_NULL_EXPRESSION
}

func (self *NullExpression) Repr(indent int) string {
	return tabs(indent) + "null"
}

func (self *NullExpression) Reduce() (daedalus.Expression, error) {
	return self, nil
}

type IdentifierExpression struct {
	daedalus.NoReduce
	Name string
}

func (self *IdentifierExpression) Type() string {
	return NODE_IDENTIFIER_EXPRESSION
}

func (self *IdentifierExpression) Repr(indent int) string {
	return fmt.Sprintf("%sIdentifier(%s)", tabs(indent), self.Name)
}

type UnaryExpression struct {
	Operator string
	Term     daedalus.Expression
}

func (self *UnaryExpression) Type() string {
	return NODE_UNARY_EXPRESSION
}

func (self *UnaryExpression) Repr(indent int) string {
	return tabs(indent) + "(\n" +
		tabs(indent+1) + self.Operator + "\n" +
		self.Term.Repr(indent+1) + "\n" +
		tabs(indent) + ")"
}

func (self *UnaryExpression) Reduce() (daedalus.Expression, error) {
	term, err := daedalus.Fold(self.Term)
	if err != nil {
		return nil, err
	}
	self.Term = term

	value, ok := literalValue(term)
	if !ok {
		return self, nil
	}
	result, err := applyUnary(self.Operator, value)
	if err != nil {
		return nil, err
	}
	return literalExpression(result)
}

type BinaryExpression struct {
	Left     daedalus.Expression
	Operator string
	Right    daedalus.Expression
}

func (self *BinaryExpression) Type() string {
	return NODE_BINARY_EXPRESSION
}

func (self *BinaryExpression) Repr(indent int) string {
	return tabs(indent) + "(\n" +
		self.Left.Repr(indent+1) + "\n" +
		tabs(indent+1) + self.Operator + "\n" +
		self.Right.Repr(indent+1) + "\n" +
		tabs(indent) + ")"
}

func (self *BinaryExpression) Reduce() (daedalus.Expression, error) {
	left, err := daedalus.Fold(self.Left)
	if err != nil {
		return nil, err
	}
	right, err := daedalus.Fold(self.Right)
	if err != nil {
		return nil, err
	}
	self.Left, self.Right = left, right

	l, lok := literalValue(left)
	r, rok := literalValue(right)
	if !lok || !rok {
		return self, nil
	}
	result, err := applyBinary(self.Operator, l, r)
	if err != nil {
		return nil, err
	}
	return literalExpression(result)
}

// AssignmentExpression evaluates to the value it replaced.
type AssignmentExpression struct {
	Name  string
	Value daedalus.Expression
}

func (self *AssignmentExpression) Type() string {
	return NODE_ASSIGNMENT_EXPRESSION
}

func (self *AssignmentExpression) Repr(indent int) string {
	return fmt.Sprintf("%sAssignment(%s\n%s\n%s)", tabs(indent), self.Name, self.Value.Repr(indent+1), tabs(indent))
}

func (self *AssignmentExpression) Reduce() (daedalus.Expression, error) {
	value, err := daedalus.Fold(self.Value)
	if err != nil {
		return nil, err
	}
	self.Value = value
	return self, nil
}

type DeclarationExpression struct {
	Name    string
	Mutable bool
	Value   daedalus.Expression
}

func (self *DeclarationExpression) Type() string {
	return NODE_DECLARATION_EXPRESSION
}

func (self *DeclarationExpression) Repr(indent int) string {
	keyword := KEYWORD_LET
	if self.Mutable {
		keyword = KEYWORD_MUT
	}
	return fmt.Sprintf("%sDeclaration(%s %s\n%s\n%s)", tabs(indent), keyword, self.Name, self.Value.Repr(indent+1), tabs(indent))
}

func (self *DeclarationExpression) Reduce() (daedalus.Expression, error) {
	value, err := daedalus.Fold(self.Value)
	if err != nil {
		return nil, err
	}
	self.Value = value
	return self, nil
}

// ReturnExpression leaves the enclosing block. Without a value the block
// yields the value of the statement before the return.
type ReturnExpression struct {
	Value daedalus.Expression // Optional
}

func (self *ReturnExpression) Type() string {
	return NODE_RETURN_EXPRESSION
}

func (self *ReturnExpression) Repr(indent int) string {
	if self.Value == nil {
		return tabs(indent) + "Return()"
	}
	return fmt.Sprintf("%sReturn(\n%s\n%s)", tabs(indent), self.Value.Repr(indent+1), tabs(indent))
}

func (self *ReturnExpression) Reduce() (daedalus.Expression, error) {
	if self.Value == nil {
		return self, nil
	}
	value, err := daedalus.Fold(self.Value)
	if err != nil {
		return nil, err
	}
	self.Value = value
	return self, nil
}

type BlockExpression struct {
	Scope *daedalus.Scope
}

func (self *BlockExpression) Type() string {
	return NODE_BLOCK_EXPRESSION
}

func (self *BlockExpression) Repr(indent int) string {
	return self.Scope.Repr(indent)
}

func (self *BlockExpression) Reduce() (daedalus.Expression, error) {
	if _, err := self.Scope.Reduce(); err != nil {
		return nil, err
	}
	return self, nil
}
