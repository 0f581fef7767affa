package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	assert.Equal(t, DefaultIndentWidth, cfg.Translate.IndentWidth)
	assert.Equal(t, DefaultFixmePrefix, cfg.Translate.FixmePrefix)
	assert.Equal(t, ".kt", cfg.Output.Extension)
	assert.Equal(t, DefaultDebounceMS, cfg.Watch.DebounceMS)
	assert.Equal(t, "    ", cfg.Indent())
	require.NoError(t, cfg.Validate())
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	system := writeFile(t, dir, "etc/config.toml", `
[translate]
indent_width = 8
fixme_prefix = "// SYSTEM: "

[output]
workers = 2
`)
	user := writeFile(t, dir, "home/.swiftkotlin/config.toml", `
[translate]
indent_width = 2
`)
	project := writeFile(t, dir, "project/swiftkotlin.toml", `
[output]
workers = 6
header = "// generated"
`)

	cfg, sources, err := LoadFrom(Paths{System: system, User: user, Project: project})
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Translate.IndentWidth, "user beats system")
	assert.Equal(t, "// SYSTEM: ", cfg.Translate.FixmePrefix, "system beats defaults")
	assert.Equal(t, 6, cfg.Output.Workers, "project beats system")
	assert.Equal(t, "// generated", cfg.Output.Header)
	assert.Equal(t, ".kt", cfg.Output.Extension)

	assert.Equal(t, SourceInfo{Source: SourceUser, Path: user}, sources["translate.indent_width"])
	assert.Equal(t, SourceSystem, sources["translate.fixme_prefix"].Source)
	assert.Equal(t, SourceProject, sources["output.workers"].Source)
	assert.Equal(t, SourceDefault, sources["output.extension"].Source)
	assert.Empty(t, sources["output.extension"].Path)
}

func TestEnvironmentBeatsFiles(t *testing.T) {
	dir := t.TempDir()
	project := writeFile(t, dir, "swiftkotlin.toml", "[output]\nworkers = 6\n")
	t.Setenv("SWIFTKOTLIN_OUTPUT_WORKERS", "3")

	cfg, sources, err := LoadFrom(Paths{Project: project})
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Output.Workers)
	assert.Equal(t, SourceInfo{Source: SourceEnvironment, Path: "SWIFTKOTLIN_OUTPUT_WORKERS"}, sources["output.workers"])
}

func TestMissingFilesAreSkipped(t *testing.T) {
	dir := t.TempDir()
	cfg, sources, err := LoadFrom(Paths{System: filepath.Join(dir, "nope.toml")})
	require.NoError(t, err)
	assert.Equal(t, Defaults().Output, cfg.Output)
	assert.Zero(t, sources.Count()[SourceSystem])
}

func TestMalformedFileIsError(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "swiftkotlin.toml", "[output\nworkers = ")
	_, _, err := LoadFrom(Paths{Project: bad})
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)
}

func TestLoadFileRequiresExistingFile(t *testing.T) {
	_, _, err := LoadFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestFindProjectConfigWalksUp(t *testing.T) {
	dir := t.TempDir()
	want := writeFile(t, dir, ProjectFile, "")
	nested := filepath.Join(dir, "a", "b", "c")
	require.NoError(t, os.MkdirAll(nested, 0755))

	assert.Equal(t, want, FindProjectConfig(nested))
	assert.Equal(t, "", FindProjectConfig(t.TempDir()))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"zero indent", func(c *Config) { c.Translate.IndentWidth = 0 }, "translate.indent_width"},
		{"zero indent with tabs", func(c *Config) { c.Translate.IndentWidth = 0; c.Translate.UseTabs = true }, ""},
		{"bad extension", func(c *Config) { c.Output.Extension = "kt" }, "output.extension"},
		{"negative workers", func(c *Config) { c.Output.Workers = -1 }, "output.workers"},
		{"multiline header", func(c *Config) { c.Output.Header = "a\nb" }, "output.header"},
		{"negative debounce", func(c *Config) { c.Watch.DebounceMS = -5 }, "watch.debounce_ms"},
		{"negative rate", func(c *Config) { c.Watch.MaxPerSecond = -1 }, "watch.max_per_second"},
		{"bad type map entry", func(c *Config) { c.Translate.TypeMap = []string{"URL"} }, "Swift=Kotlin"},
		{"bad constraint", func(c *Config) { c.Requires = ">= banana" }, "requires"},
		{"good constraint", func(c *Config) { c.Requires = ">= 0.1.0" }, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestIndent(t *testing.T) {
	cfg := Defaults()
	cfg.Translate.IndentWidth = 2
	assert.Equal(t, "  ", cfg.Indent())
	cfg.Translate.UseTabs = true
	assert.Equal(t, "\t", cfg.Indent())
}

func TestTypeMap(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "types.toml", `
[types]
URL = "java.net.URI"
Data = "ByteArray"
`)
	cfg := Defaults()
	cfg.Translate.TypeMapFile = file
	cfg.Translate.TypeMap = []string{"Data = okio.ByteString", "UUID=java.util.UUID"}

	m, err := cfg.TypeMap()
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"URL":  "java.net.URI",
		"Data": "okio.ByteString",
		"UUID": "java.util.UUID",
	}, m)
}

func TestLoadTypeMapRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	file := writeFile(t, dir, "types.toml", "[typez]\nURL = \"java.net.URI\"\n")
	_, err := LoadTypeMap(file)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown key")
}

func TestSaveRoundTripAndBackups(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", ProjectFile)

	cfg := Defaults()
	cfg.Output.Workers = 5
	cfg.Translate.TypeMap = []string{"URL=java.net.URI"}
	require.NoError(t, Save(path, cfg))

	loaded, _, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 5, loaded.Output.Workers)
	assert.Equal(t, []string{"URL=java.net.URI"}, loaded.Translate.TypeMap)
	assert.Equal(t, cfg.Translate.FixmePrefix, loaded.Translate.FixmePrefix)

	cfg.Output.Workers = 7
	require.NoError(t, Save(path, cfg))
	cfg.Output.Workers = 9
	require.NoError(t, Save(path, cfg))

	back1, err := readFile(path + ".back1")
	require.NoError(t, err)
	assert.Contains(t, back1, "workers = 7")
	back2, err := readFile(path + ".back2")
	require.NoError(t, err)
	assert.Contains(t, back2, "workers = 5")
}

func readFile(path string) (string, error) {
	b, err := os.ReadFile(path)
	return string(b), err
}

func TestSourcesSettingsSorted(t *testing.T) {
	s := Sources{
		"b.x": {Source: SourceUser, Path: "/u"},
		"a.y": {Source: SourceDefault},
	}
	settings := s.Settings()
	require.Len(t, settings, 2)
	assert.Equal(t, "a.y", settings[0].Key)
	assert.Equal(t, "/u", settings[1].SourcePath)
	assert.Equal(t, map[Source]int{SourceUser: 1, SourceDefault: 1}, s.Count())
}
