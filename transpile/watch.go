package transpile

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/teranos/swiftkotlin/errors"
	"github.com/teranos/swiftkotlin/logger"
)

// Watcher re-translates .swift files as they change. Events for one file
// are debounced; translations across all files are rate limited.
type Watcher struct {
	runner   *Runner
	roots    []string
	outDir   string
	ext      string
	debounce time.Duration
	limiter  *rate.Limiter
	logger   *zap.SugaredLogger

	// OnResult, when set, is called after every re-translation.
	OnResult func(*Report, error)

	mu     sync.Mutex
	timers map[string]*time.Timer
	wg     sync.WaitGroup
}

// WatchOptions configures a Watcher.
type WatchOptions struct {
	OutDir       string
	Ext          string
	Debounce     time.Duration
	MaxPerSecond float64 // 0 = unlimited
}

// NewWatcher creates a watcher over root directories.
func NewWatcher(runner *Runner, roots []string, opts WatchOptions) *Watcher {
	limit := rate.Inf
	if opts.MaxPerSecond > 0 {
		limit = rate.Limit(opts.MaxPerSecond)
	}
	return &Watcher{
		runner:   runner,
		roots:    roots,
		outDir:   opts.OutDir,
		ext:      opts.Ext,
		debounce: opts.Debounce,
		limiter:  rate.NewLimiter(limit, 1),
		logger:   logger.ComponentLogger("transpile.watch"),
		timers:   make(map[string]*time.Timer),
	}
}

// Run watches until ctx is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create fsnotify watcher")
	}
	defer fw.Close()

	for _, root := range w.roots {
		if err := w.addTree(fw, root); err != nil {
			return err
		}
	}
	w.logger.Infow("Watching for changes", "roots", w.roots)

	defer w.stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.handle(ctx, fw, event)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warnw("Watcher error", logger.FieldError, err)
		}
	}
}

func (w *Watcher) handle(ctx context.Context, fw *fsnotify.Watcher, event fsnotify.Event) {
	if event.Op&fsnotify.Create == fsnotify.Create {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(fw, event.Name); err != nil {
				w.logger.Warnw("Failed to watch new directory", logger.FieldFile, event.Name, logger.FieldError, err)
			}
			return
		}
	}
	if filepath.Ext(event.Name) != SourceExt {
		return
	}
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	w.schedule(ctx, event.Name)
}

// schedule restarts the debounce timer of path.
func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if t, ok := w.timers[path]; ok && t.Stop() {
		w.wg.Done()
	}
	w.wg.Add(1)
	var timer *time.Timer
	timer = time.AfterFunc(w.debounce, func() {
		defer w.wg.Done()
		w.mu.Lock()
		if w.timers[path] == timer {
			delete(w.timers, path)
		}
		w.mu.Unlock()
		w.translate(ctx, path)
	})
	w.timers[path] = timer
}

func (w *Watcher) translate(ctx context.Context, path string) {
	if err := w.limiter.Wait(ctx); err != nil {
		return
	}
	job, err := w.job(path)
	if err != nil {
		w.logger.Warnw("Cannot place output", logger.FieldFile, path, logger.FieldError, err)
		return
	}
	report, err := w.runner.Run(ctx, []Job{job})
	if err != nil {
		w.logger.Errorw("Re-translation failed", logger.FieldFile, path, logger.FieldError, err)
	} else {
		w.logger.Infow("Re-translated", logger.FieldFile, path, logger.FieldOutput, job.Output)
	}
	if w.OnResult != nil {
		w.OnResult(report, err)
	}
}

// job places path under the root it was found in, like Discover does.
func (w *Watcher) job(path string) (Job, error) {
	root := filepath.Dir(path)
	for _, r := range w.roots {
		if rel, err := filepath.Rel(r, path); err == nil && !outside(rel) {
			root = r
			break
		}
	}
	out, err := outputPath(root, path, w.outDir, w.ext)
	return Job{Input: path, Output: out}, err
}

// outside reports whether a relative path climbs out of its base.
func outside(rel string) bool {
	return rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

func (w *Watcher) addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && (skipDirs[d.Name()] || strings.HasPrefix(d.Name(), ".")) {
			return filepath.SkipDir
		}
		if err := fw.Add(path); err != nil {
			return errors.Wrapf(err, "failed to watch %s", path)
		}
		return nil
	})
}

// stop cancels pending timers and waits for running translations.
func (w *Watcher) stop() {
	w.mu.Lock()
	for path, t := range w.timers {
		if t.Stop() {
			w.wg.Done()
		}
		delete(w.timers, path)
	}
	w.mu.Unlock()
	w.wg.Wait()
}
