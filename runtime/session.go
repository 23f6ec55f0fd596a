// Package runtime wires the lexer, parser, and evaluator into a single
// pipeline and owns the two error flags the rest of the host program
// inspects to decide its exit code.
package runtime

import (
	"fmt"
	"io"
	"os"

	"github.com/kjhallgren/lumen/lang"
	"github.com/kjhallgren/lumen/parser"
)

// Session runs Lumen source through Scan -> Parse -> Interpret and
// accumulates the two error flags that drive the CLI's exit code. Unlike
// the global booleans in the source this pipeline is modeled on, the
// flags live on the struct so a long-running REPL can hold many
// independent Sessions, or reset HadError between lines without ever
// touching HadRuntimeError.
type Session struct {
	Stderr io.Writer

	interp *lang.Interpreter

	HadError        bool
	HadRuntimeError bool
}

// NewSession creates a Session with a fresh global environment and
// diagnostics written to os.Stderr.
func NewSession() *Session {
	return &Session{
		Stderr: os.Stderr,
		interp: lang.NewInterpreter(),
	}
}

// SetStdout redirects the output of print statements.
func (s *Session) SetStdout(w io.Writer) {
	s.interp.Stdout = w
}

// Reset clears HadError so a REPL can keep accepting input after a line
// with a static error. HadRuntimeError is never cleared: once a line has
// caused a runtime failure, the flag stays set for the rest of the Session.
// The REPL in cmd/lumen does not turn it into an exit status; only RunFile
// maps the flags onto exit codes.
func (s *Session) Reset() {
	s.HadError = false
}

// Run scans, parses, and interprets source, reporting diagnostics through
// Stderr and setting HadError / HadRuntimeError as appropriate. A static
// error suppresses evaluation entirely; a runtime error stops evaluation
// at the failing statement but leaves prior side effects in place.
func (s *Session) Run(source string) {
	tokens := parser.Scan(source, func(line int, message string) {
		s.reportLine(line, message)
	})
	stmts := parser.Parse(tokens, func(tok parser.Token, message string) {
		s.reportToken(tok, message)
	})
	if s.HadError {
		return
	}
	if err := s.interp.Interpret(stmts); err != nil {
		s.reportRuntimeError(err)
	}
}

func (s *Session) reportLine(line int, message string) {
	fmt.Fprintf(s.Stderr, "[line %d] Error: %s\n", line, message)
	s.HadError = true
}

func (s *Session) reportToken(tok parser.Token, message string) {
	if tok.Type == parser.TokenEOF {
		fmt.Fprintf(s.Stderr, "[line %d] Error at end: %s\n", tok.Line, message)
	} else {
		fmt.Fprintf(s.Stderr, "[line %d] Error at '%s': %s\n", tok.Line, tok.Lexeme, message)
	}
	s.HadError = true
}

func (s *Session) reportRuntimeError(err error) {
	if rerr, ok := err.(*lang.RuntimeError); ok {
		fmt.Fprintf(s.Stderr, "%s\n[line %d]\n", rerr.Message, rerr.Token.Line)
	} else {
		fmt.Fprintf(s.Stderr, "%s\n", err)
	}
	s.HadRuntimeError = true
}

// Exit status codes, matching the sysexits.h convention. RunFile returns
// the first three; the CLI host exits with ExitUsageError when given more
// than one argument.
const (
	ExitOK         = 0
	ExitDataErr    = 65
	ExitSoftware   = 70
	ExitUsageError = 64
)

// RunFile reads path, interprets it as a single program, and returns the
// process exit code: a static error takes precedence over a runtime one
// since evaluation never ran.
func RunFile(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lumen: %v\n", err)
		return ExitDataErr
	}
	s := NewSession()
	s.Run(string(data))
	switch {
	case s.HadError:
		return ExitDataErr
	case s.HadRuntimeError:
		return ExitSoftware
	default:
		return ExitOK
	}
}
