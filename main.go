// Package main is the entry point for the faren-canon front end.
// It exposes the parsing pipeline as a small CLI:
//
//	faren-canon parse [file]   Parse a program and print its tree
//	faren-canon lex [file]     Print the token stream of a program
//	faren-canon repl           Interactive inspector
//
// Both parse and lex accept inline source with -e instead of a file.
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/knettia/faren-canon/ast"
	"github.com/knettia/faren-canon/file"
	"github.com/knettia/faren-canon/lexer"
	"github.com/knettia/faren-canon/parser"
	"github.com/knettia/faren-canon/repl"
)

// VERSION is the current version of the front end.
var VERSION = "v1.0.0"

// LICENSE is the software license.
var LICENSE = "MIT"

// PROMPT is the prompt shown in REPL mode.
var PROMPT = "faren >>> "

// BANNER is shown when the REPL starts.
var BANNER = `  __
 / _| __ _ _ __ ___ _ __         ___ __ _ _ __   ___  _ __
| |_ / _` + "`" + ` | '__/ _ \ '_ \ _____ / __/ _` + "`" + ` | '_ \ / _ \| '_ \
|  _| (_| | | |  __/ | | |_____| (_| (_| | | | | (_) | | | |
|_|  \__,_|_|  \___|_| |_|      \___\__,_|_| |_|\___/|_| |_|
`

// LINE is a separator used for visual formatting.
var LINE = "----------------------------------------------------------------"

// Color definitions for CLI output:
// - redColor: diagnostics and failures
// - yellowColor: trees and tokens
// - cyanColor: informational notes
var (
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	cyanColor   = color.New(color.FgCyan)
)

var evalExpr string
var showPos bool

var rootCmd = &cobra.Command{
	Use:           "faren-canon",
	Short:         "Front end for the faren language",
	Long:          "faren-canon parses faren source into a program tree and reports diagnostics.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a faren program and print its tree",
	Long: `Parse a faren program, print the resulting program tree, and render
any diagnostics with their source context.

Examples:
  # Parse a source file
  faren-canon parse program.frn

  # Parse inline source
  faren-canon parse -e "function square(x int) int;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a faren program and print the tokens",
	Long: `Tokenize a faren program and print the token stream, one token per
line. Useful for debugging the lexer.

Examples:
  # Tokenize a source file
  faren-canon lex program.frn

  # Tokenize inline source with spans
  faren-canon lex --show-pos -e "let x int = 10;"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Start the interactive inspector",
	Run: func(cmd *cobra.Command, args []string) {
		render := func(root *ast.Root) string {
			visitor := &PrintingVisitor{}
			visitor.VisitRoot(root)
			return visitor.String()
		}
		repler := repl.NewRepl(BANNER, VERSION, LINE, LICENSE, PROMPT, render)
		repler.Start(os.Stdout)
	},
}

func init() {
	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline source instead of reading from file")
	lexCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline source instead of reading from file")
	lexCmd.Flags().BoolVar(&showPos, "show-pos", false, "show token spans (line:colBegin-colEnd)")

	rootCmd.AddCommand(parseCmd)
	rootCmd.AddCommand(lexCmd)
	rootCmd.AddCommand(replCmd)
}

// loadSource resolves the input of parse/lex: inline source from -e, or
// the contents of the file argument.
func loadSource(args []string) (string, error) {
	if evalExpr != "" {
		return evalExpr, nil
	}
	if len(args) == 1 {
		if !file.HasExtension(args[0]) {
			cyanColor.Fprintf(os.Stderr, "note: %s does not have the %s extension\n", args[0], file.Extension)
		}
		return file.Read(args[0])
	}
	return "", fmt.Errorf("either provide a file path or use -e for inline source")
}

// printDiagnostics renders each diagnostic in red with its source
// context and caret span.
func printDiagnostics(diagnostics []parser.Diagnostic) {
	for _, d := range diagnostics {
		redColor.Fprintf(os.Stderr, "[%d:%d] %s\n", d.Line, d.ColumnBegin, d.Message)
		if caret := d.Caret(); caret != "" {
			redColor.Fprintf(os.Stderr, "%s\n", caret)
		}
	}
}

// runParse implements the parse subcommand.
func runParse(cmd *cobra.Command, args []string) error {
	source, err := loadSource(args)
	if err != nil {
		return err
	}

	root, diagnostics := parser.ParseRoot(source)

	visitor := &PrintingVisitor{}
	visitor.VisitRoot(root)
	yellowColor.Print(visitor.String())

	printDiagnostics(diagnostics)
	if len(diagnostics) > 0 {
		return fmt.Errorf("parsing produced %d diagnostic(s)", len(diagnostics))
	}
	return nil
}

// runLex implements the lex subcommand.
func runLex(cmd *cobra.Command, args []string) error {
	source, err := loadSource(args)
	if err != nil {
		return err
	}

	lx := lexer.NewLexer(source)
	for _, token := range lx.ConsumeTokens() {
		if showPos {
			yellowColor.Printf("%d:%d-%d\t%s\n", token.Info.Line, token.Info.ColumnBegin, token.Info.ColumnEnd, token)
		} else {
			yellowColor.Printf("%s\n", token)
		}
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		redColor.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}
