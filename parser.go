package daedalus

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Token Kinds used by the built-in grammar rules.
const (
	TOKEN_NUMBER = "NUMBER"
)

type ParserFlags uint

const (
	// Reduce every parsed top-level expression to a constant where possible.
	OptimizeConstExpr ParserFlags = 1 << iota
)

// TokenStream is consumed by the parser. Eat never moves past the final EOF
// token so rules can always Peek safely.
type TokenStream struct {
	tokens   []Token
	position int
}

func NewTokenStream(tokens []Token) *TokenStream {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != TOKEN_EOF {
		tokens = append(append([]Token(nil), tokens...), Token{Kind: TOKEN_EOF})
	}
	return &TokenStream{tokens, 0}
}

func (self *TokenStream) Peek() Token {
	return self.tokens[self.position]
}

// PeekAt looks offset tokens ahead of the current one.
func (self *TokenStream) PeekAt(offset int) Token {
	index := self.position + offset
	if index >= len(self.tokens) {
		index = len(self.tokens) - 1
	}
	return self.tokens[index]
}

func (self *TokenStream) Eat() Token {
	current := self.tokens[self.position]
	if self.position < len(self.tokens)-1 {
		self.position += 1
	}
	return current
}

func (self *TokenStream) Check(kind string) bool {
	return self.Peek().Kind == kind
}

func (self *TokenStream) Expect(kind string) (Token, error) {
	current := self.Peek()
	if current.Kind != kind {
		return Token{}, NewParseError(
			ErrUnexpectedToken,
			current,
			fmt.Sprintf("expected %s, found %s", quote(kind), quote(current.String())),
		)
	}
	return self.Eat(), nil
}

// Len returns the number of tokens left, including the final EOF.
func (self *TokenStream) Len() int {
	return len(self.tokens) - self.position
}

type ParseFunc func(parser *Parser, tokens *TokenStream) (Statement, error)

// Node is a registered grammar rule. Only top nodes are entry points of
// ParseExpression; other rules are reached through Parser.ParseRule.
type Node struct {
	Parse     ParseFunc
	IsTopNode bool
}

func NewNode(parse ParseFunc, isTopNode bool) Node {
	return Node{parse, isTopNode}
}

type Parser struct {
	nodes      map[string]Node
	flags      ParserFlags
	terminator string // Optional token kind ending each top-level expression.
}

// NewParser registers the built-in NumberExpression rule as an entry point,
// then every rule of nodes.
func NewParser(nodes map[string]Node, flags ParserFlags) *Parser {
	self := &Parser{
		nodes: map[string]Node{},
		flags: flags,
	}
	self.Register(NODE_NUMBER_EXPRESSION, NewNode(ParseNumberExpression, true))
	for key, node := range nodes {
		self.Register(key, node)
	}
	return self
}

func (self *Parser) Register(key string, node Node) {
	self.nodes[key] = node
}

func (self *Parser) Demote(key string) error {
	node, ok := self.nodes[key]
	if !ok {
		return NewParseError(ErrUnknownRule, Token{}, quote(key))
	}
	node.IsTopNode = false
	self.nodes[key] = node
	return nil
}

func (self *Parser) HasFlag(flag ParserFlags) bool {
	return self.flags&flag != 0
}

func (self *Parser) SetTerminator(kind string) {
	self.terminator = kind
}

// EntryPoint returns the key of the single top node.
func (self *Parser) EntryPoint() (string, error) {
	keys := []string{}
	for key, node := range self.nodes {
		if node.IsTopNode {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	switch len(keys) {
	case 0:
		return "", NewParseError(ErrNoEntryPoint, Token{}, "")
	case 1:
		return keys[0], nil
	default:
		return "", NewParseError(ErrAmbiguousEntryPoint, Token{}, strings.Join(keys, ", "))
	}
}

// ParseRule runs the rule registered under key whether or not it is a top
// node.
func (self *Parser) ParseRule(key string, tokens *TokenStream) (Statement, error) {
	node, ok := self.nodes[key]
	if !ok {
		return nil, NewParseError(ErrUnknownRule, tokens.Peek(), quote(key))
	}

	start := tokens.position
	statement, err := node.Parse(self, tokens)
	if err != nil {
		return nil, err
	}
	if statement == nil || tokens.position == start {
		current := tokens.Peek()
		return nil, NewParseError(
			ErrUnexpectedToken,
			current,
			fmt.Sprintf("type: %s, value: %s", current.Kind, quote(current.Literal)),
		)
	}
	return statement, nil
}

func (self *Parser) ParseExpression(tokens *TokenStream) (Statement, error) {
	key, err := self.EntryPoint()
	if err != nil {
		return nil, err
	}

	statement, err := self.ParseRule(key, tokens)
	if err != nil {
		return nil, err
	}

	if !self.HasFlag(OptimizeConstExpr) {
		return statement, nil
	}
	if expression, ok := statement.(Expression); ok {
		return Fold(expression)
	}
	return statement, nil
}

func (self *Parser) Parse(tokens *TokenStream) (*Scope, error) {
	program := NewScope(nil)
	for !tokens.Check(TOKEN_EOF) {
		statement, err := self.ParseExpression(tokens)
		if err != nil {
			return nil, err
		}
		program.Append(statement)

		if self.terminator != "" {
			if _, err := tokens.Expect(self.terminator); err != nil {
				return nil, err
			}
		}
	}
	return program, nil
}

func ParseNumberExpression(parser *Parser, tokens *TokenStream) (Statement, error) {
	token, err := tokens.Expect(TOKEN_NUMBER)
	if err != nil {
		return nil, err
	}
	value, err := strconv.ParseFloat(token.Literal, 64)
	if err != nil {
		return nil, NewParseError(ErrUnexpectedToken, token, fmt.Sprintf("invalid number %s", quote(token.Literal)))
	}
	return NewNumberExpression(value), nil
}
