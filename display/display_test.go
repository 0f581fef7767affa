package display

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldOutputJSON(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		caller string
		want   bool
	}{
		{"default", nil, "", false},
		{"flag", []string{"--json"}, "", true},
		{"tool caller", nil, "tool", true},
		{"flag overrides caller", []string{"--json=false"}, "tool", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(CallerEnv, tt.caller)
			cmd := &cobra.Command{Use: "x", Run: func(*cobra.Command, []string) {}}
			cmd.Flags().Bool("json", false, "")
			require.NoError(t, cmd.ParseFlags(tt.args))
			assert.Equal(t, tt.want, ShouldOutputJSON(cmd))
		})
	}
}

func TestOutputJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, OutputJSON(&buf, map[string]int{"files": 2}))
	assert.Equal(t, "{\n  \"files\": 2\n}\n", buf.String())
}
