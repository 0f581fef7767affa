package commands

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/swiftkotlin/transpile"
)

// CheckCmd represents the check command
var CheckCmd = &cobra.Command{
	Use:   "check [paths...]",
	Short: "Report outputs that are missing or out of date",
	Long: `Translate every input in memory and compare with the Kotlin on disk.

Nothing is written. The command exits with status 3 when any output is
missing or differs, which makes it suitable for CI. The header line is
not compared.

Examples:
  swiftkotlin check Sources/ -o kotlin/`,
	RunE: runCheck,
}

var checkFlags outputFlags

func init() {
	checkFlags.register(CheckCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, jobs, cleanup, err := prepare(cmd, args, &checkFlags)
	defer cleanup()
	if err != nil {
		return err
	}
	runner, err := transpile.NewRunnerFromConfig(cfg)
	if err != nil {
		return err
	}
	defer runner.Close()

	stale, err := runner.Check(cmd.Context(), jobs)
	for _, s := range stale {
		reason := "differs"
		if s.Missing {
			reason = "missing"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", pterm.Red("✗"), s.Output, reason)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %d outputs up to date\n", len(jobs))
	return nil
}
