package commands

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/teranos/swiftkotlin/errors"
	"github.com/teranos/swiftkotlin/transpile"
)

// WatchCmd represents the watch command
var WatchCmd = &cobra.Command{
	Use:   "watch [paths...]",
	Short: "Re-translate Swift files as they change",
	Long: `Translate every input once, then watch the given directories and
re-translate each .swift file shortly after it is written.

Rapid saves of one file are coalesced (watch.debounce_ms) and the total
rate of translations is capped (watch.max_per_second).

Examples:
  swiftkotlin watch Sources/ -o kotlin/`,
	RunE: runWatch,
}

var watchFlags outputFlags

func init() {
	watchFlags.register(WatchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	for _, arg := range args {
		if transpile.IsRemote(arg) {
			return errors.NewInvalidRequestError("cannot watch remote input %s", arg)
		}
	}
	cfg, jobs, cleanup, err := prepare(cmd, args, &watchFlags)
	defer cleanup()
	if err != nil {
		return err
	}
	runner, err := transpile.NewRunnerFromConfig(cfg)
	if err != nil {
		return err
	}
	defer runner.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := runner.Run(ctx, jobs)
	if err != nil {
		return err
	}
	// initial failures are reported but do not stop the watcher
	_ = finish(cmd, report, false)

	roots := args
	if len(roots) == 0 {
		roots = []string{"."}
	}
	w := transpile.NewWatcher(runner, dirs(roots), transpile.WatchOptions{
		OutDir:       cfg.Output.Dir,
		Ext:          cfg.Output.Extension,
		Debounce:     time.Duration(cfg.Watch.DebounceMS) * time.Millisecond,
		MaxPerSecond: cfg.Watch.MaxPerSecond,
	})
	w.OnResult = func(r *transpile.Report, err error) {
		if err != nil {
			return
		}
		for _, res := range r.Results {
			if res.Err != nil {
				cmd.PrintErrln(FormatError(res.Err))
			}
		}
	}
	return w.Run(ctx)
}

// dirs keeps directories as given and replaces files with their parent.
func dirs(paths []string) []string {
	out := make([]string, 0, len(paths))
	seen := map[string]bool{}
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			p = filepath.Dir(p)
		}
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	return out
}
