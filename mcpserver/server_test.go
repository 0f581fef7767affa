package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/swiftkotlin/kotlin"
)

func call(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "got %T", res.Content[0])
	return tc.Text
}

func newServer(t *testing.T) (*Server, string) {
	t.Helper()
	root := t.TempDir()
	s, err := New(kotlin.New(), root)
	require.NoError(t, err)
	return s, root
}

func TestSwiftToKotlin(t *testing.T) {
	s, _ := newServer(t)
	tests := []struct {
		name    string
		args    map[string]any
		want    string
		isError bool
	}{
		{"translates", map[string]any{"source": "let v = a ?? b"}, "val v = a ?: b", false},
		{"missing source", map[string]any{}, "", true},
		{"parse error", map[string]any{"source": "func (", "file": "bad.swift"}, "bad.swift:1:", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.handleSource(context.Background(), call(tt.args))
			require.NoError(t, err)
			assert.Equal(t, tt.isError, res.IsError)
			if tt.isError {
				assert.Contains(t, text(t, res), tt.want)
				return
			}
			assert.Equal(t, tt.want, text(t, res))
		})
	}
}

func TestSwiftFileToKotlin(t *testing.T) {
	s, root := newServer(t)
	require.NoError(t, os.MkdirAll(filepath.Join(root, "src"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "src", "a.swift"), []byte("let r = 1...5\n"), 0644))

	res, err := s.handleFile(context.Background(), call(map[string]any{"path": "src/a.swift"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "val r = 1..5", text(t, res))

	for _, path := range []string{"../escape.swift", "src/missing.swift"} {
		res, err := s.handleFile(context.Background(), call(map[string]any{"path": path}))
		require.NoError(t, err)
		assert.True(t, res.IsError, path)
	}
}
