// Package daedalus is a kernel for building small interpreted languages.
//
// A language is assembled from three configurable parts: a Lexer driven by
// an ordered list of token recognizers, a Parser driven by a registry of
// grammar rules, and an Interpreter driven by a registry of evaluators keyed
// by node type. Variables live in Environments whose bindings are checked by
// validation rules.
package daedalus

type Daedalus struct {
	Lexer       *Lexer
	Parser      *Parser
	Interpreter *Interpreter
}

type LexerConfigFunc func() (*Lexer, error)
type ParserConfigFunc func() (*Parser, error)
type InterpreterConfigFunc func() (*Interpreter, error)

func Setup(lexerFn LexerConfigFunc, parserFn ParserConfigFunc, interpreterFn InterpreterConfigFunc) (*Daedalus, error) {
	lexer, err := lexerFn()
	if err != nil {
		return nil, err
	}
	parser, err := parserFn()
	if err != nil {
		return nil, err
	}
	interpreter, err := interpreterFn()
	if err != nil {
		return nil, err
	}
	return &Daedalus{lexer, parser, interpreter}, nil
}

func (self *Daedalus) Parse(source string, location *SourceLocation) (*Scope, error) {
	tokens, err := self.Lexer.Lex(source, location)
	if err != nil {
		return nil, err
	}
	return self.Parser.Parse(NewTokenStream(tokens))
}

// Run lexes, parses, and interprets source. On error no trace is returned.
func (self *Daedalus) Run(source string, location *SourceLocation) ([]RuntimeResult, error) {
	program, err := self.Parse(source, location)
	if err != nil {
		return nil, err
	}
	return self.Interpreter.Interpret(program)
}
