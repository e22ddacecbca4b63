package demo

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode"
	"unicode/utf8"

	"github.com/krotik/common/errorutil"
	"gopkg.in/yaml.v3"

	"ashn.dev/daedalus"
)

type CommentConfig struct {
	Open  string `yaml:"open"`
	Close string `yaml:"close"`
}

// Config selects the surface syntax of the demo language.
type Config struct {
	Whitespaces       string        `yaml:"whitespaces"`
	SingleLineComment string        `yaml:"single_line_comment"`
	MultiLineComment  CommentConfig `yaml:"multi_line_comment"`
	DecimalSeparator  string        `yaml:"decimal_separator"`
	FoldConstants     bool          `yaml:"fold_constants"`
	Terminator        string        `yaml:"terminator"` // Empty or ";".
}

func DefaultConfig() *Config {
	return &Config{
		Whitespaces:       " \t\n\r",
		SingleLineComment: "//",
		MultiLineComment:  CommentConfig{"/*", "*/"},
		DecimalSeparator:  ".",
		FoldConstants:     false,
		Terminator:        "",
	}
}

// ParseConfig decodes data over the default configuration. Keys not present
// in data keep their default.
func ParseConfig(data []byte) (*Config, error) {
	config := DefaultConfig()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(config); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}
	return ParseConfig(data)
}

// Validate reports every problem of the configuration at once.
func (self *Config) Validate() error {
	errs := errorutil.NewCompositeError()

	separator, size := utf8.DecodeRuneInString(self.DecimalSeparator)
	if size == 0 || size != len(self.DecimalSeparator) {
		errs.Add(fmt.Errorf("decimal_separator must be a single character, found %q", self.DecimalSeparator))
	} else if unicode.IsDigit(separator) || unicode.IsSpace(separator) {
		errs.Add(fmt.Errorf("decimal_separator must not be a digit or whitespace, found %q", self.DecimalSeparator))
	}

	if (self.MultiLineComment.Open == "") != (self.MultiLineComment.Close == "") {
		errs.Add(errors.New("multi_line_comment requires both open and close, or neither"))
	}

	if self.Terminator != "" && self.Terminator != TOKEN_SEMICOLON {
		errs.Add(fmt.Errorf("terminator must be empty or %q, found %q", TOKEN_SEMICOLON, self.Terminator))
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

// Separator returns the decimal separator rune. The config must be valid.
func (self *Config) Separator() rune {
	separator, _ := utf8.DecodeRuneInString(self.DecimalSeparator)
	return separator
}

func (self *Config) LexerConfig() daedalus.LexerConfig {
	config := daedalus.DefaultLexerConfig(TokenTypes(self.Separator()))
	config.Whitespaces = []rune(self.Whitespaces)
	config.SingleLineComment = self.SingleLineComment
	config.MultiLineComment = daedalus.CommentDelimiters{
		Open:  self.MultiLineComment.Open,
		Close: self.MultiLineComment.Close,
	}
	config.DecimalSeparator = self.Separator()
	return config
}
