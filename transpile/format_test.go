package transpile

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/swiftkotlin/kotlin"
)

func TestNewFormatter(t *testing.T) {
	tests := []struct {
		command string
		want    []string
		wantErr bool
	}{
		{"", nil, false},
		{"   ", nil, false},
		{"ktlint -F", []string{"ktlint", "-F", "x.kt"}, false},
		{`ktfmt --kotlinlang-style "--config=a b"`, []string{"ktfmt", "--kotlinlang-style", "--config=a b", "x.kt"}, false},
		{`ktlint "unterminated`, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.command, func(t *testing.T) {
			f, err := NewFormatter(tt.command)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, f)
				return
			}
			assert.Equal(t, tt.want, f.Command("x.kt"))
		})
	}
}

func TestFormatterFailureIsPerFile(t *testing.T) {
	if _, err := exec.LookPath("false"); err != nil {
		t.Skip("false not available")
	}
	f, err := NewFormatter("false")
	require.NoError(t, err)

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.swift"), "let v = 1\n")
	jobs, err := Discover([]string{dir}, "", ".kt")
	require.NoError(t, err)

	report, err := NewRunner(kotlin.New(), Options{Formatter: f}).Run(context.Background(), jobs)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed())
	assert.Contains(t, report.Results[0].Err.Error(), "formatter false failed")
	assert.FileExists(t, jobs[0].Output)
}

func TestFormatterRuns(t *testing.T) {
	if _, err := exec.LookPath("true"); err != nil {
		t.Skip("true not available")
	}
	f, err := NewFormatter("true")
	require.NoError(t, err)
	assert.NoError(t, f.Format(context.Background(), "x.kt"))
}
