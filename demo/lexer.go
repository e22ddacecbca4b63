package demo

import (
	"errors"
	"strings"
	"unicode"
	"unicode/utf8"

	"ashn.dev/daedalus"
)

// Token Kinds
const (
	TOKEN_NUMBER         = daedalus.TOKEN_NUMBER
	TOKEN_BOOL           = "BOOL"
	TOKEN_NULL           = "NULL"
	TOKEN_KEYWORD        = "KEYWORD"
	TOKEN_IDENTIFIER     = "IDENTIFIER"
	TOKEN_OPERATOR       = "OPERATOR"
	TOKEN_UNARY_OPERATOR = "UNARY_OPERATOR"
	TOKEN_ASSIGN         = "="
	TOKEN_LPAREN         = "("
	TOKEN_RPAREN         = ")"
	TOKEN_LBRACE         = "{"
	TOKEN_RBRACE         = "}"
	TOKEN_SEMICOLON      = ";"
)

// Keywords
const (
	KEYWORD_LET    = "let"
	KEYWORD_MUT    = "mut"
	KEYWORD_RETURN = "return"
)

var errInvalidNumber = errors.New("invalid number format")

// TokenTypes returns the recognizers of the demo language. Longer operators
// come before their prefixes and keywords before identifiers.
func TokenTypes(decimalSeparator rune) []daedalus.TokenType {
	return []daedalus.TokenType{
		daedalus.NewTokenType(TOKEN_LPAREN),
		daedalus.NewTokenType(TOKEN_RPAREN),
		daedalus.NewTokenType(TOKEN_LBRACE),
		daedalus.NewTokenType(TOKEN_RBRACE),
		daedalus.NewTokenType(TOKEN_SEMICOLON),
		daedalus.NewTokenTypeValue(TOKEN_OPERATOR, "=="),
		daedalus.NewTokenTypeValue(TOKEN_OPERATOR, "!="),
		daedalus.NewTokenTypeValue(TOKEN_OPERATOR, "<="),
		daedalus.NewTokenTypeValue(TOKEN_OPERATOR, ">="),
		daedalus.NewTokenTypeValue(TOKEN_OPERATOR, "<"),
		daedalus.NewTokenTypeValue(TOKEN_OPERATOR, ">"),
		daedalus.NewTokenTypeValue(TOKEN_OPERATOR, "+"),
		daedalus.NewTokenTypeValue(TOKEN_OPERATOR, "-"),
		daedalus.NewTokenTypeValue(TOKEN_OPERATOR, "*"),
		daedalus.NewTokenTypeValue(TOKEN_OPERATOR, "/"),
		daedalus.NewTokenTypeValue(TOKEN_OPERATOR, "&&"),
		daedalus.NewTokenTypeValue(TOKEN_OPERATOR, "||"),
		daedalus.NewTokenTypeValue(TOKEN_UNARY_OPERATOR, "!"),
		daedalus.NewTokenType(TOKEN_ASSIGN),
		daedalus.NewTokenTypeFunc(TOKEN_BOOL, matchWord("true", "false")),
		daedalus.NewTokenTypeFunc(TOKEN_NULL, matchWord("null")),
		daedalus.NewTokenTypeFunc(TOKEN_KEYWORD, matchWord(KEYWORD_LET, KEYWORD_MUT, KEYWORD_RETURN)),
		daedalus.NewTokenTypeFunc(TOKEN_IDENTIFIER, matchIdentifier),
		daedalus.NewTokenTypeFunc(TOKEN_NUMBER, matchNumber(decimalSeparator)),
	}
}

func isIdentifierStart(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}

func isIdentifierPart(r rune) bool {
	return isIdentifierStart(r) || unicode.IsDigit(r)
}

func matchIdentifier(source string) (string, error) {
	end := 0
	for end < len(source) {
		r, size := utf8.DecodeRuneInString(source[end:])
		if end == 0 && !isIdentifierStart(r) || !isIdentifierPart(r) {
			break
		}
		end += size
	}
	return source[:end], nil
}

// matchWord matches one of words if it is not the prefix of a longer
// identifier.
func matchWord(words ...string) daedalus.Matcher {
	return func(source string) (string, error) {
		identifier, _ := matchIdentifier(source)
		for _, word := range words {
			if identifier == word {
				return word, nil
			}
		}
		return "", nil
	}
}

func matchNumber(decimalSeparator rune) daedalus.Matcher {
	return func(source string) (string, error) {
		end := 0
		digits := 0
		separators := 0
		for end < len(source) {
			r, size := utf8.DecodeRuneInString(source[end:])
			if r == decimalSeparator {
				separators += 1
			} else if unicode.IsDigit(r) {
				digits += 1
			} else {
				break
			}
			end += size
		}
		if digits == 0 {
			return "", nil
		}
		if separators > 1 {
			return "", errInvalidNumber
		}
		return source[:end], nil
	}
}

// normalizeNumber rewrites a lexed number for strconv.
func normalizeNumber(literal string, decimalSeparator rune) string {
	if decimalSeparator == '.' {
		return literal
	}
	return strings.ReplaceAll(literal, string(decimalSeparator), ".")
}
