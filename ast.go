package daedalus

import (
	"fmt"
	"strings"
)

// Node Types
const (
	NODE_SCOPE             = "Scope"
	NODE_NUMBER_EXPRESSION = "NumberExpression"
)

// Statement is any node of the AST. Type must be unique per concrete node
// kind since the parser and interpreter registries are keyed on it.
type Statement interface {
	Type() string
	Repr(indent int) string
}

// Expression is a statement which may be reduced to a constant at parse
// time. Reduce returns nil when no reduction is possible, otherwise the node
// replacing the receiver. Reduce must not evaluate anything that depends on
// an environment and reducing the result again must not change it.
type Expression interface {
	Statement
	Reduce() (Expression, error)
}

// NoReduce can be embedded by expressions that never reduce.
type NoReduce struct{}

func (NoReduce) Reduce() (Expression, error) {
	return nil, nil
}

// Fold reduces expression and falls back to expression itself if it could not
// be reduced.
func Fold(expression Expression) (Expression, error) {
	reduced, err := expression.Reduce()
	if err != nil {
		return nil, err
	}
	if reduced == nil {
		return expression, nil
	}
	return reduced, nil
}

// Scope is an ordered sequence of statements. It is used as the root of a
// parsed program and by client languages for blocks.
type Scope struct {
	Body []Statement
}

func NewScope(body []Statement) *Scope {
	if body == nil {
		body = []Statement{}
	}
	return &Scope{body}
}

func (self *Scope) Type() string {
	return NODE_SCOPE
}

func (self *Scope) Append(statement Statement) {
	self.Body = append(self.Body, statement)
}

func (self *Scope) Repr(indent int) string {
	var sb strings.Builder
	sb.WriteString(indentation(indent) + "{\n")
	for _, statement := range self.Body {
		sb.WriteString(statement.Repr(indent + 1))
		sb.WriteString("\n")
	}
	sb.WriteString(indentation(indent) + "}")
	return sb.String()
}

// Reduce folds every child expression in place and keeps the scope itself.
func (self *Scope) Reduce() (Expression, error) {
	for i, statement := range self.Body {
		expression, ok := statement.(Expression)
		if !ok {
			continue
		}
		reduced, err := Fold(expression)
		if err != nil {
			return nil, err
		}
		self.Body[i] = reduced
	}
	return self, nil
}

type NumberExpression struct {
	Value float64
}

func NewNumberExpression(value float64) *NumberExpression {
	return &NumberExpression{value}
}

func (self *NumberExpression) Type() string {
	return NODE_NUMBER_EXPRESSION
}

func (self *NumberExpression) Repr(indent int) string {
	return fmt.Sprintf("%sNumberExpression(%s)", indentation(indent), formatNumber(self.Value))
}

// Number literals are already fully reduced.
func (self *NumberExpression) Reduce() (Expression, error) {
	return self, nil
}
