package transpile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/swiftkotlin/errors"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func sourceTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "top.swift"), "let a = 1\n")
	writeFile(t, filepath.Join(dir, "model", "user.swift"), "let b = 2\n")
	writeFile(t, filepath.Join(dir, "model", "notes.txt"), "not swift\n")
	writeFile(t, filepath.Join(dir, ".hidden", "x.swift"), "let c = 3\n")
	writeFile(t, filepath.Join(dir, "Pods", "dep.swift"), "let d = 4\n")
	return dir
}

func TestDiscoverNextToInputs(t *testing.T) {
	dir := sourceTree(t)
	jobs, err := Discover([]string{dir}, "", ".kt")
	require.NoError(t, err)
	assert.Equal(t, []Job{
		{Input: filepath.Join(dir, "model", "user.swift"), Output: filepath.Join(dir, "model", "user.kt")},
		{Input: filepath.Join(dir, "top.swift"), Output: filepath.Join(dir, "top.kt")},
	}, jobs)
}

func TestDiscoverMirrorsTreeUnderOutDir(t *testing.T) {
	dir := sourceTree(t)
	out := filepath.Join(t.TempDir(), "kt")
	jobs, err := Discover([]string{dir}, out, ".kt")
	require.NoError(t, err)
	require.Len(t, jobs, 2)
	assert.Equal(t, filepath.Join(out, "model", "user.kt"), jobs[0].Output)
	assert.Equal(t, filepath.Join(out, "top.kt"), jobs[1].Output)
}

func TestDiscoverExplicitFiles(t *testing.T) {
	dir := sourceTree(t)
	file := filepath.Join(dir, "model", "user.swift")
	out := t.TempDir()

	// An explicit file is placed relative to its own directory, and
	// listing it twice yields one job.
	jobs, err := Discover([]string{file, file}, out, ".kt")
	require.NoError(t, err)
	assert.Equal(t, []Job{{Input: file, Output: filepath.Join(out, "user.kt")}}, jobs)

	// Hidden directories are only skipped while walking.
	hidden := filepath.Join(dir, ".hidden", "x.swift")
	jobs, err = Discover([]string{hidden}, "", ".kt")
	require.NoError(t, err)
	assert.Len(t, jobs, 1)
}

func TestDiscoverMissingPath(t *testing.T) {
	_, err := Discover([]string{filepath.Join(t.TempDir(), "nope.swift")}, "", ".kt")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrNotFound))
}
