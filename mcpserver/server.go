// Package mcpserver exposes the translator to editors and agents over the
// Model Context Protocol.
package mcpserver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"

	"github.com/teranos/swiftkotlin/errors"
	"github.com/teranos/swiftkotlin/internal/version"
	"github.com/teranos/swiftkotlin/kotlin"
	"github.com/teranos/swiftkotlin/logger"
	"github.com/teranos/swiftkotlin/syntax"
	"github.com/teranos/swiftkotlin/tokens"
)

// Server wraps a translator in an MCP server.
type Server struct {
	translator    *kotlin.Translator
	workspaceRoot string
	server        *server.MCPServer
	logger        *zap.SugaredLogger
}

// New creates a server. Paths given to swift_file_to_kotlin are resolved
// against workspaceRoot and may not leave it.
func New(translator *kotlin.Translator, workspaceRoot string) (*Server, error) {
	root, err := filepath.Abs(workspaceRoot)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve workspace root %s", workspaceRoot)
	}
	s := &Server{
		translator:    translator,
		workspaceRoot: root,
		logger:        logger.ComponentLogger("mcp"),
	}
	s.server = server.NewMCPServer(
		"swiftkotlin",
		version.Get().Version,
		server.WithToolCapabilities(true),
	)
	s.registerTools()
	return s, nil
}

func (s *Server) registerTools() {
	sourceTool := mcp.NewTool("swift_to_kotlin",
		mcp.WithDescription("Translate Swift source text to Kotlin"),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("Swift source code"),
		),
		mcp.WithString("file",
			mcp.Description("File name used in error messages"),
		),
	)
	s.server.AddTool(sourceTool, s.handleSource)

	fileTool := mcp.NewTool("swift_file_to_kotlin",
		mcp.WithDescription("Translate a Swift file in the workspace to Kotlin"),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("File path relative to workspace root"),
		),
	)
	s.server.AddTool(fileTool, s.handleFile)
}

func (s *Server) handleSource(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source, err := request.RequireString("source")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	file := request.GetString("file", "input.swift")
	return s.translate(file, source)
}

func (s *Server) handleFile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := request.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	abs, err := s.resolve(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	src, err := os.ReadFile(abs)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Failed to read %s: %v", path, err)), nil
	}
	return s.translate(path, string(src))
}

// translate reports parse errors as tool errors. Invariant violations are
// returned as protocol errors.
func (s *Server) translate(file, source string) (*mcp.CallToolResult, error) {
	seq, err := s.translator.TranslateSource(file, source)
	if err != nil {
		var pe *syntax.ParseError
		if errors.As(err, &pe) {
			s.logger.Debugw("Tool input failed to parse", logger.FieldFile, file, logger.FieldError, err)
			return mcp.NewToolResultError(pe.FormatError(syntax.ErrorContextPlain)), nil
		}
		s.logger.Errorw("Translation failed", logger.FieldFile, file, logger.FieldError, err)
		return nil, err
	}
	s.logger.Debugw("Translated tool input", logger.FieldFile, file, logger.FieldFixmes, fixmes(seq))
	return mcp.NewToolResultText(seq.Text()), nil
}

func (s *Server) resolve(path string) (string, error) {
	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(s.workspaceRoot, path)
	}
	rel, err := filepath.Rel(s.workspaceRoot, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.NewInvalidRequestError("%s is outside the workspace", path)
	}
	return abs, nil
}

func fixmes(seq tokens.Sequence) int {
	n := 0
	for _, tok := range seq.Tokens() {
		if tok.Kind == tokens.Comment {
			n++
		}
	}
	return n
}

// Serve runs the server on stdin and stdout until the client disconnects.
func (s *Server) Serve() error {
	s.logger.Infow("Serving MCP over stdio", "root", s.workspaceRoot)
	return server.ServeStdio(s.server)
}
