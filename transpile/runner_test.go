package transpile

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/swiftkotlin/config"
	"github.com/teranos/swiftkotlin/errors"
	"github.com/teranos/swiftkotlin/kotlin"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRunWritesOutputs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.swift"), "let v = a ?? b\n")
	writeFile(t, filepath.Join(dir, "sub", "b.swift"), "let r = 0..<n\n")

	jobs, err := Discover([]string{dir}, "", ".kt")
	require.NoError(t, err)
	report, err := NewRunner(kotlin.New(), Options{Workers: 2}).Run(context.Background(), jobs)
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 0, report.Failed())
	assert.Equal(t, "val v = a ?: b\n", readFile(t, filepath.Join(dir, "a.kt")))
	assert.Equal(t, "val r = 0 until n\n", readFile(t, filepath.Join(dir, "sub", "b.kt")))
}

func TestRunHeader(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.swift"), "let v = 1\n")
	jobs, err := Discover([]string{dir}, "", ".kt")
	require.NoError(t, err)

	r := NewRunner(kotlin.New(), Options{Header: "// Generated from {source}"})
	_, err = r.Run(context.Background(), jobs)
	require.NoError(t, err)
	assert.Equal(t, "// Generated from a.swift\nval v = 1\n", readFile(t, filepath.Join(dir, "a.kt")))
}

func TestRunRecordsParseErrorsPerFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "bad.swift"), "func (\n")
	writeFile(t, filepath.Join(dir, "good.swift"), "let v = 1\n")
	jobs, err := Discover([]string{dir}, "", ".kt")
	require.NoError(t, err)

	report, err := NewRunner(kotlin.New(), Options{}).Run(context.Background(), jobs)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Failed())
	assert.True(t, errors.IsParseError(report.Results[0].Err))
	assert.NoFileExists(t, filepath.Join(dir, "bad.kt"))
	assert.FileExists(t, filepath.Join(dir, "good.kt"))
}

func TestRunCountsFixmes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "ext.swift"), "extension A: B {\n    func f() {}\n}\n")
	jobs, err := Discover([]string{dir}, "", ".kt")
	require.NoError(t, err)

	report, err := NewRunner(kotlin.New(), Options{}).Run(context.Background(), jobs)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Fixmes())
	assert.Contains(t, readFile(t, filepath.Join(dir, "ext.kt")), "// FIXME: ")
}

func TestRunStreamsToStdout(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.swift"), "let v = 1\n")
	writeFile(t, filepath.Join(dir, "b.swift"), "let w = 2\n")
	jobs, err := Discover([]string{dir}, "", ".kt")
	require.NoError(t, err)

	var out bytes.Buffer
	r := NewRunner(kotlin.New(), Options{}).WithStdout(&out)
	_, err = r.Run(context.Background(), jobs)
	require.NoError(t, err)

	want := "// " + jobs[0].Input + "\nval v = 1\n\n// " + jobs[1].Input + "\nval w = 2\n"
	assert.Equal(t, want, out.String())
	assert.NoFileExists(t, jobs[0].Output)

	// A single file is written without the separator comment.
	out.Reset()
	_, err = r.Run(context.Background(), jobs[:1])
	require.NoError(t, err)
	assert.Equal(t, "val v = 1\n", out.String())
}

func TestRunCancelled(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.swift"), "let v = 1\n")
	jobs, err := Discover([]string{dir}, "", ".kt")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = NewRunner(kotlin.New(), Options{}).Run(ctx, jobs)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewRunnerFromConfig(t *testing.T) {
	cfg := config.Defaults()
	cfg.Translate.IndentWidth = 2
	cfg.Translate.TypeMap = []string{"UIView=View"}
	cfg.Output.Header = "// {source}"

	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.swift"), "func f(v: UIView) {\n    g()\n}\n")
	jobs, err := Discover([]string{dir}, "", cfg.Output.Extension)
	require.NoError(t, err)

	r, err := NewRunnerFromConfig(cfg)
	require.NoError(t, err)
	_, err = r.Run(context.Background(), jobs)
	require.NoError(t, err)
	assert.Equal(t, "// a.swift\nfun f(v: View) {\n  g()\n}\n", readFile(t, filepath.Join(dir, "a.kt")))
}
