package syntax

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/swiftkotlin/errors"
)

// ErrorKind categorizes parse errors for programmatic handling
type ErrorKind string

const (
	ErrorKindLexical ErrorKind = "lexical" // unterminated literal, stray character
	ErrorKindSyntax  ErrorKind = "syntax"  // token sequence the grammar does not accept
)

// ErrorContext selects how a ParseError is rendered
type ErrorContext int

const (
	ErrorContextPlain    ErrorContext = iota // logs, MCP tool results
	ErrorContextTerminal                     // colored CLI output
)

// ParseError is a structured Swift parse failure. It always wraps errors.ErrParse.
type ParseError struct {
	Kind        ErrorKind
	File        string
	Message     string
	Range       Range
	Token       string // offending token text, if any
	Suggestions []string
}

// NewParseError creates a syntax ParseError with the given message
func NewParseError(kind ErrorKind, message string) *ParseError {
	return &ParseError{Kind: kind, Message: message}
}

// WithRange sets the source range the error refers to
func (e *ParseError) WithRange(r Range) *ParseError {
	e.Range = r
	return e
}

// WithToken records the offending token text
func (e *ParseError) WithToken(tok string) *ParseError {
	e.Token = tok
	return e
}

// WithFile records the file name for the error location
func (e *ParseError) WithFile(name string) *ParseError {
	e.File = name
	return e
}

// WithSuggestion adds a suggestion for fixing the error
func (e *ParseError) WithSuggestion(s string) *ParseError {
	e.Suggestions = append(e.Suggestions, s)
	return e
}

// Error implements error interface
func (e *ParseError) Error() string {
	return e.FormatError(ErrorContextPlain)
}

// Unwrap for errors.Is compatibility with errors.ErrParse
func (e *ParseError) Unwrap() error {
	return errors.ErrParse
}

func (e *ParseError) location() string {
	loc := e.Range.Start.String()
	if e.File != "" {
		loc = e.File + ":" + loc
	}
	return loc
}

// FormatError generates a context-appropriate error message
func (e *ParseError) FormatError(ctx ErrorContext) string {
	if ctx == ErrorContextPlain {
		msg := fmt.Sprintf("%s: %s", e.location(), e.Message)
		if e.Token != "" {
			msg += fmt.Sprintf(" (found %q)", e.Token)
		}
		if len(e.Suggestions) > 0 {
			msg += fmt.Sprintf(". Suggestions: %s", strings.Join(e.Suggestions, ", "))
		}
		return msg
	}

	var b strings.Builder
	b.WriteString(pterm.LightCyan(e.location()))
	b.WriteString(": ")
	b.WriteString(pterm.Red(e.Message))
	if e.Token != "" {
		b.WriteString(fmt.Sprintf("\n  %s '%s'", pterm.Yellow("Token:"), e.Token))
	}
	if len(e.Suggestions) > 0 {
		b.WriteString(fmt.Sprintf("\n\n%s", pterm.Green("Suggestions:")))
		for _, s := range e.Suggestions {
			b.WriteString("\n  • " + s)
		}
	}
	return b.String()
}
