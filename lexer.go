package daedalus

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Token Kinds
const (
	// Meta
	TOKEN_EOF = "EOF"
)

type Token struct {
	Kind     string
	Literal  string
	Location *SourceLocation // Optional
}

func NewToken(kind string, literal string) Token {
	return Token{Kind: kind, Literal: literal}
}

func (self Token) String() string {
	if self.Literal == "" {
		return self.Kind
	}
	return fmt.Sprintf("%s(%s)", self.Kind, self.Literal)
}

// Matcher returns the prefix of source it recognizes, or the empty string if
// source does not start with its token. A non-nil error aborts lexing.
type Matcher func(source string) (string, error)

type TokenType struct {
	Name  string
	Match Matcher
}

// NewTokenType creates a token type matching its own name, e.g. "(".
func NewTokenType(name string) TokenType {
	return NewTokenTypeValue(name, name)
}

func NewTokenTypeValue(name string, value string) TokenType {
	return TokenType{
		Name: name,
		Match: func(source string) (string, error) {
			if value != "" && strings.HasPrefix(source, value) {
				return value, nil
			}
			return "", nil
		},
	}
}

func NewTokenTypeFunc(name string, match Matcher) TokenType {
	return TokenType{name, match}
}

type CommentDelimiters struct {
	Open  string
	Close string
}

type LexerConfig struct {
	// Recognizers are tried in order, the first non-empty match wins.
	TokenTypes        []TokenType
	Whitespaces       []rune
	SingleLineComment string // Empty disables single-line comments.
	MultiLineComment  CommentDelimiters
	DecimalSeparator  rune
	CharDelimiter     rune
	StringDelimiter   rune
	EscapeCharacter   rune
}

func DefaultLexerConfig(tokenTypes []TokenType) LexerConfig {
	return LexerConfig{
		TokenTypes:        tokenTypes,
		Whitespaces:       []rune{' ', '\t', '\n', '\r'},
		SingleLineComment: "//",
		MultiLineComment:  CommentDelimiters{"/*", "*/"},
		DecimalSeparator:  '.',
		CharDelimiter:     '\'',
		StringDelimiter:   '"',
		EscapeCharacter:   '\\',
	}
}

type Lexer struct {
	config LexerConfig
}

func NewLexer(config LexerConfig) *Lexer {
	// The lexer owns private copies so later edits of the caller's slices
	// cannot change its behaviour.
	config.TokenTypes = append([]TokenType(nil), config.TokenTypes...)
	config.Whitespaces = append([]rune(nil), config.Whitespaces...)
	return &Lexer{config}
}

func (self *Lexer) Config() LexerConfig {
	return self.config
}

// Lex turns source into a token sequence terminated by a single EOF token.
func (self *Lexer) Lex(source string, location *SourceLocation) ([]Token, error) {
	s := newScanner(&self.config, source, location)

	tokens := []Token{}
	for {
		token, err := s.NextToken()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, token)
		if token.Kind == TOKEN_EOF {
			return tokens, nil
		}
	}
}

// scanner is the cursor over one Lex call.
type scanner struct {
	config   *LexerConfig
	source   string
	position int // Byte offset into source.
	file     string
	line     int
}

func newScanner(config *LexerConfig, source string, location *SourceLocation) scanner {
	file, line := "<input>", 1
	if location != nil {
		file, line = location.File, location.Line
	}
	return scanner{
		config:   config,
		source:   source,
		position: 0,
		file:     file,
		line:     line,
	}
}

func (self *scanner) location() *SourceLocation {
	return &SourceLocation{self.file, self.line}
}

func (self *scanner) remaining() string {
	return self.source[self.position:]
}

func (self *scanner) isEof() bool {
	return self.position >= len(self.source)
}

func (self *scanner) currentRune() (rune, int) {
	if self.isEof() {
		return rune(0), 0
	}
	return utf8.DecodeRuneInString(self.remaining())
}

func (self *scanner) startsWith(prefix string) bool {
	return prefix != "" && strings.HasPrefix(self.remaining(), prefix)
}

func (self *scanner) advance(n int) {
	if self.position+n > len(self.source) {
		n = len(self.source) - self.position
	}
	self.line += strings.Count(self.source[self.position:self.position+n], "\n")
	self.position += n
}

func (self *scanner) isWhitespace(r rune) bool {
	for _, w := range self.config.Whitespaces {
		if r == w {
			return true
		}
	}
	return false
}

func (self *scanner) skipWhitespace() {
	for !self.isEof() {
		r, size := self.currentRune()
		if !self.isWhitespace(r) {
			return
		}
		self.advance(size)
	}
}

func (self *scanner) skipLineComment() {
	for !self.isEof() {
		r, size := self.currentRune()
		if r == '\n' {
			return
		}
		self.advance(size)
	}
}

func (self *scanner) skipBlockComment() error {
	location := self.location()
	delimiters := self.config.MultiLineComment
	self.advance(len(delimiters.Open))
	for !self.startsWith(delimiters.Close) {
		if self.isEof() {
			return &LexError{
				Location: location,
				Type:     ErrUnterminatedComment,
				Detail:   fmt.Sprintf("expected %s", quote(delimiters.Close)),
			}
		}
		_, size := self.currentRune()
		self.advance(size)
	}
	self.advance(len(delimiters.Close))
	return nil
}

func (self *scanner) skipWhiteSpaceAndComments() error {
	for {
		self.skipWhitespace()
		switch {
		case self.startsWith(self.config.SingleLineComment):
			self.skipLineComment()
		case self.startsWith(self.config.MultiLineComment.Open):
			if err := self.skipBlockComment(); err != nil {
				return err
			}
		case self.startsWith(self.config.MultiLineComment.Close):
			return &LexError{
				Location: self.location(),
				Type:     ErrUnopenedComment,
				Detail:   quote(self.config.MultiLineComment.Close),
			}
		default:
			return nil
		}
	}
}

func (self *scanner) NextToken() (Token, error) {
	if err := self.skipWhiteSpaceAndComments(); err != nil {
		return Token{}, err
	}
	if self.isEof() {
		return Token{
			Kind:     TOKEN_EOF,
			Literal:  "",
			Location: self.location(),
		}, nil
	}

	remaining := self.remaining()
	for _, tokenType := range self.config.TokenTypes {
		lexeme, err := tokenType.Match(remaining)
		if err != nil {
			return Token{}, &LexError{
				Location: self.location(),
				Type:     ErrInvalidLexeme,
				Detail:   fmt.Sprintf("%s: %v", tokenType.Name, err),
			}
		}
		if lexeme == "" {
			continue
		}
		if !strings.HasPrefix(remaining, lexeme) {
			return Token{}, &LexError{
				Location: self.location(),
				Type:     ErrInvalidLexeme,
				Detail:   fmt.Sprintf("%s matched %s which does not start the input", tokenType.Name, quote(lexeme)),
			}
		}

		token := Token{
			Kind:     tokenType.Name,
			Literal:  lexeme,
			Location: self.location(),
		}
		self.advance(len(lexeme))
		return token, nil
	}

	return Token{}, &LexError{
		Location: self.location(),
		Type:     ErrUnknownToken,
		Detail:   fmt.Sprintf("in %s", quote(excerpt(remaining))),
	}
}
