package transpile

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsRemote(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{".", false},
		{"./Sources", false},
		{"/abs/path/Model.swift", false},
		{"github.com/apple/swift-algorithms", true},
		{"git::https://example.com/repo.git", true},
		{"https://example.com/sources.tar.gz", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, IsRemote(tt.input))
		})
	}
}

func TestResolveLocalSource(t *testing.T) {
	dir := t.TempDir()
	src, err := ResolveSource(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, dir, src.LocalPath)
	assert.False(t, src.Remote)
	src.Cleanup()
	src.Cleanup()
	assert.DirExists(t, dir)
}

func TestSourceName(t *testing.T) {
	tests := map[string]string{
		"github.com/apple/swift-algorithms":          "swift-algorithms",
		"github.com/apple/swift-algorithms//Sources": "swift-algorithms",
		"git@github.com:user/repo.git":               "repo",
		"https://example.com/pkg.tar.gz":             "pkg.tar.gz",
		"":                                           "source",
	}
	for input, want := range tests {
		assert.Equal(t, want, sourceName(input), input)
	}
}
