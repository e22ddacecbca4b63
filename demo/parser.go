package demo

import (
	"fmt"
	"strconv"

	"ashn.dev/daedalus"
)

// Grammar rule keys, from the entry point down to the primary expressions.
const (
	RULE_STATEMENT      = "Statement"
	RULE_ASSIGNMENT     = "Assignment"
	RULE_LOGICAL        = "Logical"
	RULE_COMPARISON     = "Comparison"
	RULE_ADDITIVE       = "Additive"
	RULE_MULTIPLICATIVE = "Multiplicative"
	RULE_UNARY          = "Unary"
	RULE_PRIMARY        = "Primary"
	RULE_BLOCK          = "Block"
)

func unexpected(token daedalus.Token, expected string) error {
	return daedalus.NewParseError(
		daedalus.ErrUnexpectedToken,
		token,
		fmt.Sprintf("expected %s, found type: %s, value: %s", expected, token.Kind, token.Literal),
	)
}

func parseExpression(parser *daedalus.Parser, tokens *daedalus.TokenStream, rule string) (daedalus.Expression, error) {
	statement, err := parser.ParseRule(rule, tokens)
	if err != nil {
		return nil, err
	}
	expression, ok := statement.(daedalus.Expression)
	if !ok {
		return nil, daedalus.NewParseError(daedalus.ErrUnexpectedToken, tokens.Peek(), fmt.Sprintf("%s is not an expression", statement.Type()))
	}
	return expression, nil
}

func checkOperator(tokens *daedalus.TokenStream, operators ...string) bool {
	token := tokens.Peek()
	if token.Kind != TOKEN_OPERATOR {
		return false
	}
	for _, operator := range operators {
		if token.Literal == operator {
			return true
		}
	}
	return false
}

// binaryRule parses a left-associative chain of operand rules joined by
// operators.
func binaryRule(operand string, operators ...string) daedalus.ParseFunc {
	return func(parser *daedalus.Parser, tokens *daedalus.TokenStream) (daedalus.Statement, error) {
		left, err := parseExpression(parser, tokens, operand)
		if err != nil {
			return nil, err
		}
		for checkOperator(tokens, operators...) {
			operator := tokens.Eat().Literal
			right, err := parseExpression(parser, tokens, operand)
			if err != nil {
				return nil, err
			}
			left = &BinaryExpression{left, operator, right}
		}
		return left, nil
	}
}

func parseStatement(parser *daedalus.Parser, tokens *daedalus.TokenStream) (daedalus.Statement, error) {
	if !tokens.Check(TOKEN_KEYWORD) {
		return parser.ParseRule(RULE_ASSIGNMENT, tokens)
	}

	keyword := tokens.Eat()
	switch keyword.Literal {
	case KEYWORD_LET, KEYWORD_MUT:
		name, err := tokens.Expect(TOKEN_IDENTIFIER)
		if err != nil {
			return nil, err
		}
		if _, err := tokens.Expect(TOKEN_ASSIGN); err != nil {
			return nil, err
		}
		value, err := parseExpression(parser, tokens, RULE_ASSIGNMENT)
		if err != nil {
			return nil, err
		}
		return &DeclarationExpression{
			Name:    name.Literal,
			Mutable: keyword.Literal == KEYWORD_MUT,
			Value:   value,
		}, nil
	case KEYWORD_RETURN:
		if tokens.Check(TOKEN_SEMICOLON) || tokens.Check(TOKEN_RBRACE) || tokens.Check(daedalus.TOKEN_EOF) {
			return &ReturnExpression{}, nil
		}
		value, err := parseExpression(parser, tokens, RULE_ASSIGNMENT)
		if err != nil {
			return nil, err
		}
		return &ReturnExpression{value}, nil
	}
	return nil, unexpected(keyword, "statement")
}

func parseAssignment(parser *daedalus.Parser, tokens *daedalus.TokenStream) (daedalus.Statement, error) {
	if !tokens.Check(TOKEN_IDENTIFIER) || tokens.PeekAt(1).Kind != TOKEN_ASSIGN {
		return parser.ParseRule(RULE_LOGICAL, tokens)
	}

	name := tokens.Eat()
	tokens.Eat()
	value, err := parseExpression(parser, tokens, RULE_ASSIGNMENT)
	if err != nil {
		return nil, err
	}
	return &AssignmentExpression{name.Literal, value}, nil
}

func parseUnary(parser *daedalus.Parser, tokens *daedalus.TokenStream) (daedalus.Statement, error) {
	if !tokens.Check(TOKEN_UNARY_OPERATOR) && !checkOperator(tokens, "-") {
		return parser.ParseRule(RULE_PRIMARY, tokens)
	}

	operator := tokens.Eat().Literal
	term, err := parseExpression(parser, tokens, RULE_UNARY)
	if err != nil {
		return nil, err
	}
	return &UnaryExpression{operator, term}, nil
}

func parsePrimary(parser *daedalus.Parser, tokens *daedalus.TokenStream) (daedalus.Statement, error) {
	token := tokens.Peek()
	switch token.Kind {
	case TOKEN_NUMBER:
		return parser.ParseRule(daedalus.NODE_NUMBER_EXPRESSION, tokens)
	case TOKEN_BOOL:
		tokens.Eat()
		return &BooleanExpression{Value: token.Literal == "true"}, nil
	case TOKEN_NULL:
		tokens.Eat()
		return &NullExpression{}, nil
	case TOKEN_IDENTIFIER:
		tokens.Eat()
		return &IdentifierExpression{Name: token.Literal}, nil
	case TOKEN_LPAREN:
		tokens.Eat()
		expression, err := parseExpression(parser, tokens, RULE_ASSIGNMENT)
		if err != nil {
			return nil, err
		}
		if _, err := tokens.Expect(TOKEN_RPAREN); err != nil {
			return nil, err
		}
		return expression, nil
	case TOKEN_LBRACE:
		return parser.ParseRule(RULE_BLOCK, tokens)
	}
	return nil, unexpected(token, "expression")
}

func parseBlock(parser *daedalus.Parser, tokens *daedalus.TokenStream) (daedalus.Statement, error) {
	if _, err := tokens.Expect(TOKEN_LBRACE); err != nil {
		return nil, err
	}
	scope := daedalus.NewScope(nil)
	for !tokens.Check(TOKEN_RBRACE) {
		if tokens.Check(daedalus.TOKEN_EOF) {
			return nil, unexpected(tokens.Peek(), quoteKind(TOKEN_RBRACE))
		}
		statement, err := parser.ParseRule(RULE_STATEMENT, tokens)
		if err != nil {
			return nil, err
		}
		scope.Append(statement)
		if tokens.Check(TOKEN_SEMICOLON) {
			tokens.Eat()
		}
	}
	tokens.Eat()
	return &BlockExpression{scope}, nil
}

func quoteKind(kind string) string {
	return "`" + kind + "`"
}

// parseNumber replaces the built-in number rule to honour the configured
// decimal separator.
func parseNumber(decimalSeparator rune) daedalus.ParseFunc {
	return func(parser *daedalus.Parser, tokens *daedalus.TokenStream) (daedalus.Statement, error) {
		token, err := tokens.Expect(TOKEN_NUMBER)
		if err != nil {
			return nil, err
		}
		value, err := strconv.ParseFloat(normalizeNumber(token.Literal, decimalSeparator), 64)
		if err != nil {
			return nil, daedalus.NewParseError(daedalus.ErrUnexpectedToken, token, fmt.Sprintf("invalid number %s", token.Literal))
		}
		return daedalus.NewNumberExpression(value), nil
	}
}

// Rules returns the grammar of the demo language. Every rule but the
// statement rule is registered demoted.
func Rules(decimalSeparator rune) map[string]daedalus.Node {
	rules := map[string]daedalus.Node{
		RULE_STATEMENT:      daedalus.NewNode(parseStatement, true),
		RULE_ASSIGNMENT:     daedalus.NewNode(parseAssignment, false),
		RULE_LOGICAL:        daedalus.NewNode(binaryRule(RULE_COMPARISON, "&&", "||"), false),
		RULE_COMPARISON:     daedalus.NewNode(binaryRule(RULE_ADDITIVE, "==", "!=", "<", "<=", ">", ">="), false),
		RULE_ADDITIVE:       daedalus.NewNode(binaryRule(RULE_MULTIPLICATIVE, "+", "-"), false),
		RULE_MULTIPLICATIVE: daedalus.NewNode(binaryRule(RULE_UNARY, "*", "/"), false),
		RULE_UNARY:          daedalus.NewNode(parseUnary, false),
		RULE_PRIMARY:        daedalus.NewNode(parsePrimary, false),
		RULE_BLOCK:          daedalus.NewNode(parseBlock, false),
	}
	if decimalSeparator != '.' {
		rules[daedalus.NODE_NUMBER_EXPRESSION] = daedalus.NewNode(parseNumber(decimalSeparator), false)
	}
	return rules
}
