package commands

import (
	"strings"

	"github.com/pterm/pterm"

	"github.com/teranos/swiftkotlin/errors"
	"github.com/teranos/swiftkotlin/syntax"
)

// Exit codes returned by main.
const (
	ExitError      = 1
	ExitParseError = 2
	ExitOutOfDate  = 3
)

// errParseFailures is returned when a batch completed but some inputs did
// not parse. Each failure has already been printed.
var errParseFailures = errors.Wrap(errors.ErrParse, "some files failed to parse")

// FormatError renders err for the terminal with its details and hints.
func FormatError(err error) string {
	var pe *syntax.ParseError
	if errors.As(err, &pe) {
		return pe.FormatError(syntax.ErrorContextTerminal)
	}
	var b strings.Builder
	b.WriteString(pterm.Red("Error: "))
	b.WriteString(err.Error())
	for _, d := range errors.GetAllDetails(err) {
		b.WriteString("\n  ")
		b.WriteString(d)
	}
	for _, h := range errors.GetAllHints(err) {
		b.WriteString("\n")
		b.WriteString(pterm.Yellow("hint: "))
		b.WriteString(h)
	}
	return b.String()
}

// ExitCode maps err to the process exit status.
func ExitCode(err error) int {
	switch {
	case errors.Is(err, errors.ErrOutOfDate):
		return ExitOutOfDate
	case errors.IsParseError(err):
		return ExitParseError
	default:
		return ExitError
	}
}
