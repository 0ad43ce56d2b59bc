// Package repl implements the interactive front-end inspector. Each
// submitted form is parsed as a complete program; the REPL then prints
// the diagnostics, if any, followed by the tree of the statements that
// parsed, in color. Nothing is
// evaluated, so the REPL is a way to poke at the parser: feed it
// declarations and watch what the pipeline produces.
//
// The REPL uses the readline library for line editing and history.
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/knettia/faren-canon/ast"
	"github.com/knettia/faren-canon/parser"
)

// Color definitions for REPL output:
// - blueColor: separator lines
// - yellowColor: parse results
// - redColor: diagnostics
// - greenColor: banner
// - cyanColor: informational messages
var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl holds the configuration of an interactive session.
type Repl struct {
	Banner  string // ASCII banner displayed at startup
	Version string // Version string of the front end
	Line    string // Separator line for visual formatting
	License string // License information
	Prompt  string // Prompt shown to the user

	// Render turns a parsed tree into the text shown for a successful
	// form. The driver injects its tree printer here.
	Render func(root *ast.Root) string
}

// NewRepl creates a REPL with the given presentation configuration.
func NewRepl(banner, version, line, license, prompt string, render func(root *ast.Root) string) *Repl {
	return &Repl{
		Banner:  banner,
		Version: version,
		Line:    line,
		License: license,
		Prompt:  prompt,
		Render:  render,
	}
}

// PrintBannerInfo displays the welcome banner and usage instructions.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Type a form and press enter to see its tree")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate history")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the main loop: read a form, parse it, print the
// diagnostics and the tree, repeat. The loop ends on '.exit' or EOF.
func (r *Repl) Start(writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		redColor.Fprintf(writer, "failed to start readline: %v\n", err)
		return
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}

		if line == ".exit" {
			writer.Write([]byte("Good Bye!\n"))
			break
		}

		rl.SaveHistory(line)

		r.executeWithRecovery(writer, line)
	}
}

// executeWithRecovery parses one form and prints the outcome. A panic
// anywhere below is caught so the session survives.
func (r *Repl) executeWithRecovery(writer io.Writer, line string) {
	defer func() {
		if recovered := recover(); recovered != nil {
			redColor.Fprintf(writer, "[PARSER PANIC] %v\n", recovered)
		}
	}()

	root, diagnostics := parser.ParseRoot(line)

	for _, d := range diagnostics {
		redColor.Fprintf(writer, "[%d:%d] %s\n", d.Line, d.ColumnBegin, d.Message)
		if caret := d.Caret(); caret != "" {
			redColor.Fprintf(writer, "%s\n", caret)
		}
	}

	if len(root.Statements) == 0 {
		if len(diagnostics) == 0 {
			cyanColor.Fprintf(writer, "%s\n", "(no statements)")
		}
		return
	}

	if r.Render != nil {
		yellowColor.Fprintf(writer, "%s", r.Render(root))
	}
}
