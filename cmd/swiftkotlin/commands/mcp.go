package commands

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/swiftkotlin/mcpserver"
	"github.com/teranos/swiftkotlin/transpile"
)

// MCPCmd represents the mcp command
var MCPCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the translator over the Model Context Protocol",
	Long: `Run an MCP server on stdin/stdout exposing two tools:

  swift_to_kotlin       translate Swift source text
  swift_file_to_kotlin  translate a file under the workspace root

Logs go to stderr so they never corrupt the protocol stream.`,
	RunE: runMCP,
}

var mcpRoot string

func init() {
	MCPCmd.Flags().StringVar(&mcpRoot, "root", "", "Workspace root for file paths (default: current directory)")
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, _, err := LoadConfig(cmd)
	if err != nil {
		return err
	}
	tr, err := transpile.NewTranslator(cfg)
	if err != nil {
		return err
	}
	root := mcpRoot
	if root == "" {
		if root, err = os.Getwd(); err != nil {
			return err
		}
	}
	s, err := mcpserver.New(tr, root)
	if err != nil {
		return err
	}
	return s.Serve()
}
