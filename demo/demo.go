// Package demo is a small expression language assembled from the daedalus
// kernel. It has numbers, booleans and null, arithmetic and logical
// operators, immutable and mutable variables, and blocks with return.
package demo

import (
	"ashn.dev/daedalus"
)

func NewLexer(config *Config) (*daedalus.Lexer, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return daedalus.NewLexer(config.LexerConfig()), nil
}

// NewParser builds the grammar. The built-in number rule stays callable by
// name but is no longer an entry point.
func NewParser(config *Config) (*daedalus.Parser, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var flags daedalus.ParserFlags
	if config.FoldConstants {
		flags |= daedalus.OptimizeConstExpr
	}

	parser := daedalus.NewParser(Rules(config.Separator()), flags)
	if err := parser.Demote(daedalus.NODE_NUMBER_EXPRESSION); err != nil {
		return nil, err
	}
	parser.SetTerminator(config.Terminator)
	return parser, nil
}

func NewInterpreter() *daedalus.Interpreter {
	return daedalus.NewInterpreter(Evaluators(), Properties(), ValidationRules())
}

// New assembles the demo language for config.
func New(config *Config) (*daedalus.Daedalus, error) {
	return daedalus.Setup(
		func() (*daedalus.Lexer, error) {
			return NewLexer(config)
		},
		func() (*daedalus.Parser, error) {
			return NewParser(config)
		},
		func() (*daedalus.Interpreter, error) {
			return NewInterpreter(), nil
		},
	)
}
