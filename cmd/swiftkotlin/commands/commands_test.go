package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/swiftkotlin/config"
	"github.com/teranos/swiftkotlin/errors"
	"github.com/teranos/swiftkotlin/internal/version"
)

var (
	rootOnce sync.Once
	testRoot *cobra.Command
)

// execute runs args against a root carrying every command. Commands are
// package globals, so tests pass every flag they rely on explicitly.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	rootOnce.Do(func() {
		pterm.DisableColor()
		testRoot = &cobra.Command{Use: "swiftkotlin", SilenceUsage: true, SilenceErrors: true}
		testRoot.PersistentFlags().String("config", "", "")
		testRoot.PersistentFlags().CountP("verbose", "v", "")
		testRoot.AddCommand(TranslateCmd, CheckCmd, ConfigCmd, CacheCmd, VersionCmd)
	})
	var out bytes.Buffer
	testRoot.SetOut(&out)
	testRoot.SetErr(io.Discard)
	testRoot.SetArgs(args)
	err := testRoot.ExecuteContext(context.Background())
	return out.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

// project lays out a config file and a source tree.
func project(t *testing.T, toml string) (cfgPath, src, out string) {
	t.Helper()
	dir := t.TempDir()
	cfgPath = filepath.Join(dir, "swiftkotlin.toml")
	writeFile(t, cfgPath, toml)
	src = filepath.Join(dir, "Sources")
	writeFile(t, filepath.Join(src, "Model", "a.swift"), "let v = a ?? b\n")
	return cfgPath, src, filepath.Join(dir, "kotlin")
}

func TestTranslateAndCheck(t *testing.T) {
	cfgPath, src, out := project(t, "[output]\nheader = \"// Generated from {source}\"\n")

	stdout, err := execute(t, "translate", src, "-o", out, "--config", cfgPath, "--json=false")
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 files, 0 failed, 0 FIXMEs")
	kt := filepath.Join(out, "Model", "a.kt")
	assert.Equal(t, "// Generated from a.swift\nval v = a ?: b\n", readFile(t, kt))

	stdout, err = execute(t, "check", src, "-o", out, "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "1 outputs up to date")

	writeFile(t, kt, "// Generated from a.swift\nval v = 0\n")
	stdout, err = execute(t, "check", src, "-o", out, "--config", cfgPath)
	require.Error(t, err)
	assert.Equal(t, ExitOutOfDate, ExitCode(err))
	assert.Contains(t, stdout, kt+" (differs)")
}

func TestTranslateReportsParseFailures(t *testing.T) {
	cfgPath, src, out := project(t, "")
	writeFile(t, filepath.Join(src, "bad.swift"), "func (\n")

	stdout, err := execute(t, "translate", src, "-o", out, "--config", cfgPath, "--json")
	require.Error(t, err)
	assert.Equal(t, ExitParseError, ExitCode(err))
	assert.FileExists(t, filepath.Join(out, "Model", "a.kt"))

	var summary struct {
		Files  int `json:"files"`
		Failed int `json:"failed"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &summary))
	assert.Equal(t, 2, summary.Files)
	assert.Equal(t, 1, summary.Failed)
}

func TestConfigCommands(t *testing.T) {
	cfgPath, _, _ := project(t, "[translate]\nindent_width = 2\n")

	stdout, err := execute(t, "config", "show", "--config", cfgPath, "--format", "json", "--sources=false")
	require.NoError(t, err)
	var cfg config.Config
	require.NoError(t, json.Unmarshal([]byte(stdout), &cfg))
	assert.Equal(t, 2, cfg.Translate.IndentWidth)
	assert.Equal(t, config.DefaultExtension, cfg.Output.Extension)

	stdout, err = execute(t, "config", "show", "--config", cfgPath, "--format", "toml", "--sources")
	require.NoError(t, err)
	assert.Contains(t, stdout, "translate.indent_width")
	assert.Contains(t, stdout, cfgPath)

	_, err = execute(t, "config", "show", "--config", cfgPath, "--format", "xml", "--sources=false")
	require.Error(t, err)
	assert.True(t, errors.IsInvalidRequestError(err))

	_, err = execute(t, "config", "validate", "--config", cfgPath)
	require.NoError(t, err)

	bad := filepath.Join(t.TempDir(), "bad.toml")
	writeFile(t, bad, "[output]\nextension = \"kt\"\n")
	_, err = execute(t, "config", "validate", "--config", bad)
	require.Error(t, err)
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "swiftkotlin.toml")
	stdout, err := execute(t, "config", "init", path, "--force=false")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote "+path)

	cfg, _, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultIndentWidth, cfg.Translate.IndentWidth)
	assert.Equal(t, config.DefaultFixmePrefix, cfg.Translate.FixmePrefix)
	assert.Equal(t, config.DefaultDebounceMS, cfg.Watch.DebounceMS)

	_, err = execute(t, "config", "init", path, "--force=false")
	require.Error(t, err)
	assert.NotEmpty(t, errors.GetAllHints(err))

	_, err = execute(t, "config", "init", path, "--force")
	require.NoError(t, err)
	assert.FileExists(t, path+".back1")
}

func TestVersionJSON(t *testing.T) {
	stdout, err := execute(t, "version", "--json")
	require.NoError(t, err)
	var info version.Info
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.Equal(t, version.Get(), info)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOutOfDate, ExitCode(errors.Wrap(errors.ErrOutOfDate, "x")))
	assert.Equal(t, ExitParseError, ExitCode(errParseFailures))
	assert.Equal(t, ExitError, ExitCode(errors.New("x")))
}

func TestCacheCommands(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "swiftkotlin.toml")
	dbPath := filepath.Join(dir, "cache.db")
	writeFile(t, cfgPath, "[cache]\nenabled = true\npath = \""+filepath.ToSlash(dbPath)+"\"\n")
	src := filepath.Join(dir, "Sources")
	writeFile(t, filepath.Join(src, "a.swift"), "let v = 1\n")

	_, err := execute(t, "translate", src, "-o", filepath.Join(dir, "out"), "--config", cfgPath, "--json=false")
	require.NoError(t, err)

	stdout, err := execute(t, "cache", "stats", "--config", cfgPath, "--json")
	require.NoError(t, err)
	var st struct {
		Entries int `json:"entries"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &st))
	assert.Equal(t, 1, st.Entries)

	stdout, err = execute(t, "cache", "prune", "--config", cfgPath, "--older-than", "1h")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Pruned 0 entries")

	stdout, err = execute(t, "cache", "clear", "--config", cfgPath)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Cleared 1 entries")
}

func TestTranslateRemoteNeedsOutputDir(t *testing.T) {
	cfgPath, _, _ := project(t, "")
	_, err := execute(t, "translate", "github.com/apple/swift-algorithms//Sources", "-o", "", "--stdout=false", "--config", cfgPath)
	require.Error(t, err)
	assert.True(t, errors.IsInvalidRequestError(err))
	assert.NotEmpty(t, errors.GetAllHints(err))
}
