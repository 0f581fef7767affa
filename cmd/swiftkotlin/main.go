package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/swiftkotlin/cmd/swiftkotlin/commands"
	"github.com/teranos/swiftkotlin/internal/version"
	"github.com/teranos/swiftkotlin/logger"
)

var rootCmd = &cobra.Command{
	Use:   "swiftkotlin",
	Short: "swiftkotlin - Translate Swift source to Kotlin",
	Long: `swiftkotlin translates Swift source files into equivalent Kotlin.

Constructs without a Kotlin counterpart are kept as FIXME comments so the
output always shows what still needs a human.

Available commands:
  translate - Translate files or directories
  check     - Report outputs that are missing or out of date
  watch     - Re-translate files as they change
  mcp       - Serve the translator over the Model Context Protocol
  cache     - Inspect and maintain the translation cache
  config    - Show, create and validate configuration
  version   - Show version information

Examples:
  swiftkotlin translate Sources/ -o kotlin/   # Translate a tree
  swiftkotlin translate Model.swift --stdout  # Print one translation
  swiftkotlin check Sources/ -o kotlin/       # Fail if outputs are stale
  swiftkotlin config show --sources           # Show where settings come from`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, _, err := commands.LoadConfig(cmd)
		if err != nil {
			return err
		}
		verbosity, _ := cmd.Flags().GetCount("verbose")
		if err := logger.Initialize(cfg.Log.JSON, verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return version.Check(cfg.Requires)
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Cleanup()
	},
}

func init() {
	rootCmd.PersistentFlags().CountP("verbose", "v", "Increase output verbosity (repeat for more detail: -v, -vv, -vvv)")
	rootCmd.PersistentFlags().String("config", "", "Use this config file instead of the standard locations")

	rootCmd.AddCommand(commands.TranslateCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.WatchCmd)
	rootCmd.AddCommand(commands.MCPCmd)
	rootCmd.AddCommand(commands.CacheCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, commands.FormatError(err))
		os.Exit(commands.ExitCode(err))
	}
}
