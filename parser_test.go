package daedalus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseTerm(parser *Parser, tokens *TokenStream) (Statement, error) {
	if tokens.Check("IDENT") {
		return &variableExpression{Name: tokens.Eat().Literal}, nil
	}
	return parser.ParseRule(NODE_NUMBER_EXPRESSION, tokens)
}

func parseSum(parser *Parser, tokens *TokenStream) (Statement, error) {
	statement, err := parser.ParseRule("Term", tokens)
	if err != nil {
		return nil, err
	}
	left := statement.(Expression)
	for tokens.Check("+") {
		tokens.Eat()
		statement, err := parser.ParseRule("Term", tokens)
		if err != nil {
			return nil, err
		}
		left = &sumExpression{left, statement.(Expression)}
	}
	return left, nil
}

func newTestParser(flags ParserFlags) *Parser {
	parser := NewParser(map[string]Node{
		"Sum":  NewNode(parseSum, true),
		"Term": NewNode(parseTerm, false),
	}, flags)
	parser.Demote(NODE_NUMBER_EXPRESSION)
	return parser
}

func number(literal string) Token {
	return NewToken(TOKEN_NUMBER, literal)
}

func plus() Token {
	return NewToken("+", "+")
}

func TestTokenStream(t *testing.T) {
	tokens := NewTokenStream([]Token{number("1"), plus()})
	assert.Equal(t, 3, tokens.Len())
	assert.Equal(t, "+", tokens.PeekAt(1).Kind)
	assert.Equal(t, TOKEN_EOF, tokens.PeekAt(10).Kind)

	assert.Equal(t, "1", tokens.Eat().Literal)
	assert.True(t, tokens.Check("+"))
	tokens.Eat()
	assert.Equal(t, TOKEN_EOF, tokens.Eat().Kind)
	assert.Equal(t, TOKEN_EOF, tokens.Eat().Kind)
	assert.Equal(t, 1, tokens.Len())

	_, err := tokens.Expect(TOKEN_NUMBER)
	assert.True(t, errors.Is(err, ErrUnexpectedToken))
}

func TestParseBuiltinNumber(t *testing.T) {
	parser := NewParser(nil, 0)
	program, err := parser.Parse(NewTokenStream([]Token{number("1"), number(".5")}))
	require.NoError(t, err)
	assert.Equal(t, "{\n\tNumberExpression(1.000000)\n\tNumberExpression(0.500000)\n}", program.Repr(0))
}

func TestParseEmpty(t *testing.T) {
	program, err := newTestParser(0).Parse(NewTokenStream(nil))
	require.NoError(t, err)
	assert.Empty(t, program.Body)
}

func TestParseWithoutFolding(t *testing.T) {
	tokens := NewTokenStream([]Token{number("1"), plus(), number("2")})
	program, err := newTestParser(0).Parse(tokens)
	require.NoError(t, err)
	require.Len(t, program.Body, 1)
	assert.Equal(t, "Sum(NumberExpression(1.000000), NumberExpression(2.000000))", program.Body[0].Repr(0))
}

func TestParseWithFolding(t *testing.T) {
	tokens := NewTokenStream([]Token{number("1"), plus(), number("2"), plus(), NewToken("IDENT", "x")})
	program, err := newTestParser(OptimizeConstExpr).Parse(tokens)
	require.NoError(t, err)
	require.Len(t, program.Body, 1)
	assert.Equal(t, "Sum(NumberExpression(3.000000), x)", program.Body[0].Repr(0))
}

func TestParseDemotedRuleByName(t *testing.T) {
	parser := newTestParser(0)
	statement, err := parser.ParseRule(NODE_NUMBER_EXPRESSION, NewTokenStream([]Token{number("7")}))
	require.NoError(t, err)
	assert.Equal(t, NODE_NUMBER_EXPRESSION, statement.Type())

	key, err := parser.EntryPoint()
	require.NoError(t, err)
	assert.Equal(t, "Sum", key)
}

func TestParseDemoteUnknown(t *testing.T) {
	err := NewParser(nil, 0).Demote("Missing")
	assert.True(t, errors.Is(err, ErrUnknownRule))
}

func TestParseUnknownRule(t *testing.T) {
	_, err := NewParser(nil, 0).ParseRule("Missing", NewTokenStream(nil))
	assert.True(t, errors.Is(err, ErrUnknownRule))
}

func TestParseNoEntryPoint(t *testing.T) {
	parser := NewParser(nil, 0)
	require.NoError(t, parser.Demote(NODE_NUMBER_EXPRESSION))
	_, err := parser.Parse(NewTokenStream([]Token{number("1")}))
	assert.True(t, errors.Is(err, ErrNoEntryPoint))
}

func TestParseAmbiguousEntryPoint(t *testing.T) {
	parser := NewParser(map[string]Node{
		"Sum":  NewNode(parseSum, true),
		"Term": NewNode(parseTerm, false),
	}, 0)
	_, err := parser.Parse(NewTokenStream([]Token{number("1")}))
	require.True(t, errors.Is(err, ErrAmbiguousEntryPoint))
	assert.Contains(t, err.Error(), "NumberExpression, Sum")
}

func TestParseUnexpectedToken(t *testing.T) {
	_, err := newTestParser(0).Parse(NewTokenStream([]Token{number("1"), plus(), plus()}))
	assert.True(t, errors.Is(err, ErrUnexpectedToken))
}

func TestParseRuleWithoutProgress(t *testing.T) {
	parser := NewParser(map[string]Node{
		"Lazy": NewNode(func(parser *Parser, tokens *TokenStream) (Statement, error) {
			return NewNumberExpression(0), nil
		}, true),
	}, 0)
	require.NoError(t, parser.Demote(NODE_NUMBER_EXPRESSION))

	_, err := parser.Parse(NewTokenStream([]Token{number("1")}))
	assert.True(t, errors.Is(err, ErrUnexpectedToken))
}

func TestParseTerminator(t *testing.T) {
	parser := newTestParser(0)
	parser.SetTerminator(";")

	program, err := parser.Parse(NewTokenStream([]Token{
		number("1"), NewToken(";", ";"),
		number("2"), plus(), number("3"), NewToken(";", ";"),
	}))
	require.NoError(t, err)
	assert.Len(t, program.Body, 2)

	_, err = parser.Parse(NewTokenStream([]Token{number("1"), number("2")}))
	assert.True(t, errors.Is(err, ErrUnexpectedToken))
}

func TestParseInvalidNumber(t *testing.T) {
	_, err := NewParser(nil, 0).Parse(NewTokenStream([]Token{number("1.2.3")}))
	assert.True(t, errors.Is(err, ErrUnexpectedToken))
}

func TestParseErrorLocation(t *testing.T) {
	token := NewToken("+", "+")
	token.Location = &SourceLocation{"test.dd", 4}
	_, err := newTestParser(0).Parse(NewTokenStream([]Token{token}))

	var parseError *ParseError
	require.True(t, errors.As(err, &parseError))
	assert.Equal(t, 4, parseError.Location.Line)
	assert.Equal(t, "+", parseError.Token.Kind)
}
