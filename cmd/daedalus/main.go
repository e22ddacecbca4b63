package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/krotik/common/logutil"
	"github.com/olekukonko/tablewriter"
	"github.com/peterh/liner"
	"gopkg.in/urfave/cli.v1"

	"ashn.dev/daedalus"
	"ashn.dev/daedalus/demo"
)

const (
	historyFile = ".daedalus_history"
	promptMain  = "> "
	promptCont  = ". "
)

var logger = logutil.GetLogger("daedalus")

var errorColor = color.New(color.FgRed, color.Bold)

type options struct {
	dumpTokens bool
	dumpAst    bool
}

func setupLogging(verbose bool) {
	level := logutil.Level(logutil.Warning)
	if verbose {
		level = logutil.Debug
	}
	logger.AddLogSink(level, logutil.SimpleFormatter(), os.Stderr)
}

func loadConfig(path string) (*demo.Config, error) {
	if path == "" {
		logger.Debug("using default configuration")
		return demo.DefaultConfig(), nil
	}
	logger.Debug("loading configuration from ", path)
	return demo.LoadConfig(path)
}

func errorLocation(err error) *daedalus.SourceLocation {
	var lexError *daedalus.LexError
	if errors.As(err, &lexError) {
		return lexError.Location
	}
	var parseError *daedalus.ParseError
	if errors.As(err, &parseError) {
		return parseError.Location
	}
	return nil
}

func printError(w io.Writer, err error) {
	if location := errorLocation(err); location != nil {
		errorColor.Fprintf(w, "[%v:%v] %v\n", location.File, location.Line, err)
		return
	}
	errorColor.Fprintf(w, "%v\n", err)
}

func dumpTokens(w io.Writer, tokens []daedalus.Token) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Line", "Kind", "Literal"})
	for _, token := range tokens {
		line := ""
		if token.Location != nil {
			line = fmt.Sprint(token.Location.Line)
		}
		table.Append([]string{line, token.Kind, token.Literal})
	}
	table.Render()
}

func printTrace(w io.Writer, results []daedalus.RuntimeResult) {
	if len(results) == 0 {
		return
	}
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Expression", "Value"})
	table.SetAutoWrapText(false)
	for _, result := range results {
		table.Append([]string{result.ExpressionRepr, result.ValueRepr})
	}
	table.Render()
}

// run executes source inside env and prints its trace. A nil env runs the
// program in a fresh root environment.
func run(language *daedalus.Daedalus, opts options, source string, location *daedalus.SourceLocation, env *daedalus.Environment) error {
	tokens, err := language.Lexer.Lex(source, location)
	if err != nil {
		return err
	}
	logger.Debug("lexed ", len(tokens), " tokens")
	if opts.dumpTokens {
		dumpTokens(os.Stdout, tokens)
	}

	program, err := language.Parser.Parse(daedalus.NewTokenStream(tokens))
	if err != nil {
		return err
	}
	logger.Debug("parsed ", len(program.Body), " top-level statements")
	if opts.dumpAst {
		fmt.Println(program.Repr(0))
	}

	results := []daedalus.RuntimeResult{}
	if env == nil {
		env = language.Interpreter.NewEnvironment(nil)
	}
	if _, err := language.Interpreter.EvaluateScope(program, &results, env, nil, 0); err != nil {
		return err
	}
	printTrace(os.Stdout, results)
	return nil
}

func runFile(language *daedalus.Daedalus, opts options, path string) error {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return run(language, opts, string(bytes), &daedalus.SourceLocation{File: path, Line: 1}, nil)
}

// isIncomplete reports whether source failed to parse only because the
// input ended early, e.g. inside an open block.
func isIncomplete(language *daedalus.Daedalus, source string) bool {
	_, err := language.Parse(source, nil)
	var parseError *daedalus.ParseError
	return errors.As(err, &parseError) && parseError.Token.Kind == daedalus.TOKEN_EOF
}

func readInput(ln *liner.State, language *daedalus.Daedalus) (string, bool) {
	var sb strings.Builder
	for {
		prompt := promptMain
		if sb.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if sb.Len() > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(line)

		source := sb.String()
		if !isIncomplete(language, source) {
			return source, true
		}
	}
}

// repl evaluates every input in one root environment so variables persist
// between lines.
func repl(language *daedalus.Daedalus, opts options) error {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	histPath := ""
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
		defer func() {
			if f, err := os.Create(histPath); err == nil {
				_, _ = ln.WriteHistory(f)
				_ = f.Close()
			}
		}()
	}

	env := language.Interpreter.NewEnvironment(nil)
	line := 1
	for {
		source, ok := readInput(ln, language)
		if !ok {
			fmt.Println()
			return nil
		}

		trimmed := strings.TrimSpace(source)
		if trimmed == "" {
			continue
		}
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return nil
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}

		ln.AppendHistory(strings.ReplaceAll(source, "\n", " "))
		location := &daedalus.SourceLocation{File: "<repl>", Line: line}
		line += strings.Count(source, "\n") + 1
		if err := run(language, opts, source, location, env); err != nil {
			printError(os.Stderr, err)
		}
	}
}

func action(ctx *cli.Context) error {
	setupLogging(ctx.Bool("verbose"))

	config, err := loadConfig(ctx.String("config"))
	if err != nil {
		logger.Error("configuration rejected")
		return err
	}

	language, err := demo.New(config)
	if err != nil {
		return err
	}

	opts := options{
		dumpTokens: ctx.Bool("dump-tokens"),
		dumpAst:    ctx.Bool("dump-ast"),
	}

	if command := ctx.String("command"); command != "" {
		return run(language, opts, command, &daedalus.SourceLocation{File: "<command>", Line: 1}, nil)
	}
	if ctx.NArg() > 0 {
		return runFile(language, opts, ctx.Args().First())
	}
	return repl(language, opts)
}

func main() {
	app := cli.NewApp()
	app.Name = "daedalus"
	app.Usage = "run programs of the daedalus demo language"
	app.UsageText = "daedalus [options] [FILE]"
	app.HideVersion = true
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config",
			Usage: "YAML file selecting the language syntax",
		},
		cli.StringFlag{
			Name:  "command, c",
			Usage: "execute the provided command",
		},
		cli.BoolFlag{
			Name:  "dump-tokens",
			Usage: "print the lexed tokens before running",
		},
		cli.BoolFlag{
			Name:  "dump-ast",
			Usage: "print the parsed program before running",
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "log the progress of every phase",
		},
	}
	app.Action = action

	if err := app.Run(os.Args); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}
