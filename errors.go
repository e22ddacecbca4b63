package daedalus

import (
	"errors"
	"fmt"
)

type SourceLocation struct {
	File string
	Line int
}

func (self SourceLocation) String() string {
	return fmt.Sprintf("%s:%d", self.File, self.Line)
}

// Lexer related error types.
var (
	ErrUnknownToken        = errors.New("unknown token")
	ErrUnterminatedComment = errors.New("comment opened but not closed before end of input")
	ErrUnopenedComment     = errors.New("comment closed without being opened")
	ErrInvalidLexeme       = errors.New("invalid lexeme")
)

// Parser related error types.
var (
	ErrUnexpectedToken     = errors.New("unexpected token")
	ErrNoEntryPoint        = errors.New("no entry point rule registered")
	ErrAmbiguousEntryPoint = errors.New("more than one entry point rule registered")
	ErrUnknownRule         = errors.New("unknown grammar rule")
)

// Environment related error types.
var (
	ErrRedeclaration   = errors.New("redeclaration of an existing variable")
	ErrUndeclared      = errors.New("use of an undeclared variable")
	ErrInvalidProperty = errors.New("invalid variable property")
	ErrRuleRejected    = errors.New("rejected by validation rule")
)

// Interpreter related error types.
var (
	ErrUnknownStatement = errors.New("unknown statement")
	ErrOperandMismatch  = errors.New("invalid operands")
	ErrDivisionByZero   = errors.New("division by zero")
	ErrUnknownOperator  = errors.New("unknown operator")
)

func describe(kind error, detail string) string {
	if detail == "" {
		return kind.Error()
	}
	return fmt.Sprintf("%v (%s)", kind, detail)
}

type LexError struct {
	Location *SourceLocation // Optional
	Type     error           // One of the Err* lexer error types.
	Detail   string
}

func (self *LexError) Error() string {
	return describe(self.Type, self.Detail)
}

func (self *LexError) Unwrap() error {
	return self.Type
}

type ParseError struct {
	Location *SourceLocation // Optional
	Type     error
	Detail   string
	Token    Token
}

func NewParseError(kind error, token Token, detail string) *ParseError {
	return &ParseError{
		Location: token.Location,
		Type:     kind,
		Detail:   detail,
		Token:    token,
	}
}

func (self *ParseError) Error() string {
	return describe(self.Type, self.Detail)
}

func (self *ParseError) Unwrap() error {
	return self.Type
}

type EnvError struct {
	Type   error
	Key    string
	Detail string
}

func NewEnvError(kind error, key string, detail string) *EnvError {
	return &EnvError{kind, key, detail}
}

func (self *EnvError) Error() string {
	if self.Detail == "" {
		return fmt.Sprintf("%v %s", self.Type, quote(self.Key))
	}
	return fmt.Sprintf("%v %s (%s)", self.Type, quote(self.Key), self.Detail)
}

func (self *EnvError) Unwrap() error {
	return self.Type
}

type EvalError struct {
	Type     error
	NodeType string // Optional
	Detail   string
}

func NewEvalError(kind error, nodeType string, detail string) *EvalError {
	return &EvalError{kind, nodeType, detail}
}

func (self *EvalError) Error() string {
	if self.NodeType == "" {
		return describe(self.Type, self.Detail)
	}
	return fmt.Sprintf("%s: %s", self.NodeType, describe(self.Type, self.Detail))
}

func (self *EvalError) Unwrap() error {
	return self.Type
}
