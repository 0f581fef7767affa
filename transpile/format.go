package transpile

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/teranos/swiftkotlin/errors"
)

// Formatter runs an external Kotlin formatter on written files. The file
// path is appended as the last argument.
type Formatter struct {
	argv []string
}

// NewFormatter splits command with shell quoting rules. An empty command
// yields a nil Formatter.
func NewFormatter(command string) (*Formatter, error) {
	if strings.TrimSpace(command) == "" {
		return nil, nil
	}
	argv, err := shellquote.Split(command)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid output.format_command %q", command)
	}
	if len(argv) == 0 {
		return nil, nil
	}
	return &Formatter{argv: argv}, nil
}

// Command returns the argv the formatter runs for path.
func (f *Formatter) Command(path string) []string {
	return append(append([]string(nil), f.argv...), path)
}

// Format runs the formatter on path.
func (f *Formatter) Format(ctx context.Context, path string) error {
	argv := f.Command(path)
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return errors.WithDetail(
			errors.Wrapf(err, "formatter %s failed on %s", shellquote.Join(f.argv...), path),
			strings.TrimSpace(stderr.String()),
		)
	}
	return nil
}
