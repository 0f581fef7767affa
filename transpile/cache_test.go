package transpile

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/swiftkotlin/cache"
	"github.com/teranos/swiftkotlin/config"
	"github.com/teranos/swiftkotlin/kotlin"
)

func TestRunUsesCache(t *testing.T) {
	ctx := context.Background()
	store, err := cache.Open(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)

	dir := t.TempDir()
	src := "let v = 1\n"
	writeFile(t, filepath.Join(dir, "a.swift"), src)
	jobs, err := Discover([]string{dir}, "", ".kt")
	require.NoError(t, err)

	r := NewRunner(kotlin.New(), Options{Cache: store, Fingerprint: "fp", Header: "// {source}"})
	defer r.Close()

	_, err = r.Run(ctx, jobs)
	require.NoError(t, err)
	e, ok, err := store.Get(ctx, cache.Key("fp", []byte(src)))
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "val v = 1\n", e.Kotlin, "cached text excludes the header")

	// A planted entry proves the second run reads from the cache.
	require.NoError(t, store.Put(ctx, cache.Entry{Key: e.Key, Input: e.Input, Kotlin: "val cached = 1\n", Fixmes: 3}))
	report, err := r.Run(ctx, jobs)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Fixmes())
	assert.Equal(t, "// a.swift\nval cached = 1\n", readFile(t, jobs[0].Output))
}

func TestFingerprint(t *testing.T) {
	base := config.Defaults()
	fp, err := Fingerprint(base)
	require.NoError(t, err)

	same := config.Defaults()
	again, err := Fingerprint(same)
	require.NoError(t, err)
	assert.Equal(t, fp, again)

	tests := []struct {
		name   string
		modify func(*config.Config)
	}{
		{"indent", func(c *config.Config) { c.Translate.IndentWidth = 2 }},
		{"tabs", func(c *config.Config) { c.Translate.UseTabs = true }},
		{"fixme prefix", func(c *config.Config) { c.Translate.FixmePrefix = "// TODO: " }},
		{"type map", func(c *config.Config) { c.Translate.TypeMap = []string{"URL=java.net.URI"} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Defaults()
			tt.modify(cfg)
			other, err := Fingerprint(cfg)
			require.NoError(t, err)
			assert.NotEqual(t, fp, other)
		})
	}

	// Output placement does not affect translations.
	cfg := config.Defaults()
	cfg.Output.Dir = "out"
	cfg.Output.Header = "// generated"
	other, err := Fingerprint(cfg)
	require.NoError(t, err)
	assert.Equal(t, fp, other)
}

func TestNewRunnerFromConfigOpensCache(t *testing.T) {
	cfg := config.Defaults()
	cfg.Cache.Enabled = true
	cfg.Cache.Path = filepath.Join(t.TempDir(), "c", "cache.db")

	r, err := NewRunnerFromConfig(cfg)
	require.NoError(t, err)
	require.NotNil(t, r.opts.Cache)
	assert.NotEmpty(t, r.opts.Fingerprint)
	assert.FileExists(t, cfg.Cache.Path)
	assert.NoError(t, r.Close())
}
