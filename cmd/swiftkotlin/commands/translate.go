package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/teranos/swiftkotlin/config"
	"github.com/teranos/swiftkotlin/display"
	"github.com/teranos/swiftkotlin/errors"
	"github.com/teranos/swiftkotlin/logger"
	"github.com/teranos/swiftkotlin/transpile"
)

// TranslateCmd represents the translate command
var TranslateCmd = &cobra.Command{
	Use:   "translate [paths...]",
	Short: "Translate Swift files to Kotlin",
	Long: `Translate Swift files and directories to Kotlin.

Inputs may also be remote: git URLs, github.com/user/repo//subdir
shorthand or archive URLs are fetched to a temporary directory first and
need --out-dir or --stdout.

Directories are searched recursively for .swift files; hidden directories
and build folders (.build, Pods, Carthage, DerivedData) are skipped. Each
output is written next to its input, or under --out-dir mirroring the
input tree.

A file that fails to parse is reported and skipped; the other files are
still written and the command exits with status 2.

Examples:
  swiftkotlin translate                      # Translate the current directory
  swiftkotlin translate Sources/ -o kotlin/  # Mirror Sources/ under kotlin/
  swiftkotlin translate A.swift --stdout     # Print the translation
  swiftkotlin translate --changed            # Only files changed since HEAD`,
	RunE: runTranslate,
}

// outputFlags are shared by translate, check and watch.
type outputFlags struct {
	outDir  string
	ext     string
	workers int
	stdout  bool
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.outDir, "out-dir", "o", "", "Write outputs under this directory (default: output.dir)")
	cmd.Flags().StringVar(&f.ext, "ext", "", "Output file extension (default: output.extension)")
	cmd.Flags().IntVarP(&f.workers, "workers", "w", 0, "Parallel translations (default: output.workers)")
}

// apply overlays flags that were set onto cfg and validates the result.
func (f *outputFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	if cmd.Flags().Changed("out-dir") {
		cfg.Output.Dir = f.outDir
	}
	if cmd.Flags().Changed("ext") {
		cfg.Output.Extension = f.ext
	}
	if cmd.Flags().Changed("workers") {
		cfg.Output.Workers = f.workers
	}
	return cfg.Validate()
}

var (
	translateFlags   outputFlags
	translateJSON    bool
	translateChanged bool
)

func init() {
	translateFlags.register(TranslateCmd)
	TranslateCmd.Flags().BoolVar(&translateFlags.stdout, "stdout", false, "Print translations instead of writing files")
	TranslateCmd.Flags().BoolVarP(&translateJSON, "json", "j", false, "Print the run report as JSON")
	TranslateCmd.Flags().BoolVar(&translateChanged, "changed", false, "Only translate files that differ from git HEAD")
}

// prepare loads config, applies flags, fetches remote inputs and
// discovers jobs for args. The returned cleanup removes fetched copies.
func prepare(cmd *cobra.Command, args []string, flags *outputFlags) (*config.Config, []transpile.Job, func(), error) {
	cleanup := func() {}
	cfg, _, err := LoadConfig(cmd)
	if err != nil {
		return nil, nil, cleanup, err
	}
	if err := flags.apply(cmd, cfg); err != nil {
		return nil, nil, cleanup, err
	}
	if len(args) == 0 {
		args = []string{"."}
	}

	var sources []*transpile.Source
	cleanup = func() {
		for _, s := range sources {
			s.Cleanup()
		}
	}
	paths := make([]string, 0, len(args))
	for _, arg := range args {
		if transpile.IsRemote(arg) && cfg.Output.Dir == "" && !flags.stdout {
			return nil, nil, cleanup, errors.WithHint(
				errors.NewInvalidRequestError("remote input %s needs an output directory", arg),
				"pass --out-dir or --stdout",
			)
		}
		src, err := transpile.ResolveSource(cmd.Context(), arg)
		if err != nil {
			return nil, nil, cleanup, err
		}
		sources = append(sources, src)
		paths = append(paths, src.LocalPath)
	}

	jobs, err := transpile.Discover(paths, cfg.Output.Dir, cfg.Output.Extension)
	if err != nil {
		return nil, nil, cleanup, err
	}
	return cfg, jobs, cleanup, nil
}

func runTranslate(cmd *cobra.Command, args []string) error {
	cfg, jobs, cleanup, err := prepare(cmd, args, &translateFlags)
	defer cleanup()
	if err != nil {
		return err
	}
	if translateChanged {
		dir := "."
		if len(args) > 0 && !transpile.IsRemote(args[0]) {
			dir = args[0]
		}
		changed, err := transpile.Changed(dir)
		if err != nil {
			return err
		}
		jobs = transpile.FilterChanged(jobs, changed)
	}
	if len(jobs) == 0 {
		logger.Logger.Warnw("No Swift files found", "paths", args)
		return nil
	}

	runner, err := transpile.NewRunnerFromConfig(cfg)
	if err != nil {
		return err
	}
	defer runner.Close()
	if translateFlags.stdout {
		runner = runner.WithStdout(cmd.OutOrStdout())
	}

	report, err := runner.Run(cmd.Context(), jobs)
	if err != nil {
		return err
	}
	return finish(cmd, report, translateFlags.stdout)
}

// finish prints per-file errors and the report, and turns failures into
// the command's error.
func finish(cmd *cobra.Command, report *transpile.Report, quiet bool) error {
	parseFailures := 0
	for _, res := range report.Results {
		if res.Err == nil {
			continue
		}
		if errors.IsParseError(res.Err) {
			parseFailures++
		}
		fmt.Fprintln(cmd.ErrOrStderr(), FormatError(res.Err))
	}

	switch {
	case display.ShouldOutputJSON(cmd):
		if err := display.OutputJSON(cmd.OutOrStdout(), report.Summary()); err != nil {
			return err
		}
	case !quiet:
		if err := report.Render(cmd.OutOrStdout()); err != nil {
			return err
		}
	}

	if parseFailures > 0 {
		return errParseFailures
	}
	if n := report.Failed(); n > 0 {
		return errors.Newf("%d files failed", n)
	}
	return nil
}
