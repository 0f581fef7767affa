package transpile

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/teranos/swiftkotlin/cache"
	"github.com/teranos/swiftkotlin/config"
	"github.com/teranos/swiftkotlin/db"
	"github.com/teranos/swiftkotlin/errors"
	"github.com/teranos/swiftkotlin/internal/version"
	"github.com/teranos/swiftkotlin/kotlin"
	"github.com/teranos/swiftkotlin/logger"
	"github.com/teranos/swiftkotlin/tokens"
)

// Options configures a Runner.
type Options struct {
	// Workers bounds parallel translations; 0 means one per CPU.
	Workers int
	// Header is written as the first line of every output, with {source}
	// replaced by the input file name.
	Header    string
	Formatter *Formatter
	// Stdout, when set, receives the translations instead of output files.
	Stdout io.Writer
	// Cache, when set, is consulted before translating. Fingerprint must
	// change whenever translator settings change.
	Cache       *cache.Store
	Fingerprint string
}

// Runner translates batches of Swift files.
type Runner struct {
	translator *kotlin.Translator
	opts       Options
	logger     *zap.SugaredLogger
}

// NewRunner creates a runner around translator.
func NewRunner(translator *kotlin.Translator, opts Options) *Runner {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Runner{
		translator: translator,
		opts:       opts,
		logger:     logger.ComponentLogger("transpile.runner"),
	}
}

// Close releases the cache, if any.
func (r *Runner) Close() error {
	if r.opts.Cache == nil {
		return nil
	}
	return r.opts.Cache.Close()
}

// NewTranslator builds a translator from the translate section of cfg.
func NewTranslator(cfg *config.Config) (*kotlin.Translator, error) {
	types, err := cfg.TypeMap()
	if err != nil {
		return nil, err
	}
	return kotlin.New(
		kotlin.WithIndent(cfg.Indent()),
		kotlin.WithFixmePrefix(cfg.Translate.FixmePrefix),
		kotlin.WithTypeMap(types),
	), nil
}

// NewRunnerFromConfig wires translator, formatter and output options from cfg.
func NewRunnerFromConfig(cfg *config.Config) (*Runner, error) {
	tr, err := NewTranslator(cfg)
	if err != nil {
		return nil, err
	}
	f, err := NewFormatter(cfg.Output.FormatCommand)
	if err != nil {
		return nil, err
	}
	opts := Options{
		Workers:   cfg.Output.Workers,
		Header:    cfg.Output.Header,
		Formatter: f,
	}
	if cfg.Cache.Enabled {
		path := cfg.Cache.Path
		if path == "" {
			if path, err = cache.DefaultPath(); err != nil {
				return nil, err
			}
		}
		if opts.Cache, err = cache.Open(path); err != nil {
			return nil, errors.WithHint(err, "set cache.enabled = false to translate without a cache")
		}
		if opts.Fingerprint, err = Fingerprint(cfg); err != nil {
			opts.Cache.Close()
			return nil, err
		}
	}
	return NewRunner(tr, opts), nil
}

// Fingerprint describes everything in cfg that changes translator output,
// plus the tool version.
func Fingerprint(cfg *config.Config) (string, error) {
	types, err := cfg.TypeMap()
	if err != nil {
		return "", err
	}
	keys := make([]string, 0, len(types))
	for k := range types {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	info := version.Get()
	fmt.Fprintf(&b, "version=%s/%s\n", info.Version, info.CommitHash)
	fmt.Fprintf(&b, "indent=%q\nfixme=%q\n", cfg.Indent(), cfg.Translate.FixmePrefix)
	for _, k := range keys {
		fmt.Fprintf(&b, "type=%s=%s\n", k, types[k])
	}
	return b.String(), nil
}

// WithStdout returns a copy of r that streams translations to w.
func (r *Runner) WithStdout(w io.Writer) *Runner {
	cp := *r
	cp.opts.Stdout = w
	return &cp
}

// Run translates jobs in parallel. A file that fails to parse is recorded
// in the report and does not stop the batch; an invariant violation or an
// I/O failure cancels the run and is returned.
func (r *Runner) Run(ctx context.Context, jobs []Job) (*Report, error) {
	runID := uuid.New().String()
	ctx = logger.WithRunID(logger.WithComponent(ctx, "transpile.runner"), runID)
	log := r.logger.With(logger.FieldRunID, runID)
	start := time.Now()

	report := &Report{RunID: runID, Results: make([]Result, len(jobs))}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)
	for i, job := range jobs {
		g.Go(func() error {
			res, err := r.runJob(gctx, job)
			report.Results[i] = res
			return err
		})
	}
	err := g.Wait()
	report.Duration = time.Since(start)
	if err != nil {
		log.Errorw("Translation run aborted", logger.FieldError, err)
		return report, err
	}

	if r.opts.Stdout != nil {
		if err := r.stream(report.Results); err != nil {
			return report, err
		}
	}

	log.Infow("Translation run finished",
		logger.FieldCount, len(jobs),
		logger.FieldFailed, report.Failed(),
		logger.FieldFixmes, report.Fixmes(),
		logger.FieldDurationMS, report.Duration.Milliseconds())
	return report, nil
}

func (r *Runner) runJob(ctx context.Context, job Job) (res Result, err error) {
	res = Result{Job: job}
	if err := ctx.Err(); err != nil {
		return res, err
	}
	start := time.Now()
	defer func() { res.Duration = time.Since(start) }()

	text, fixmes, err := r.translate(ctx, job)
	res.Fixmes = fixmes
	switch {
	case errors.IsParseError(err):
		res.Err = err
		r.logger.Warnw("Skipping file that failed to parse", logger.FieldFile, job.Input, logger.FieldError, err)
		return res, nil
	case err != nil:
		return res, errors.Wrapf(err, "translating %s", job.Input)
	}

	if r.opts.Stdout != nil {
		res.Kotlin = text
		return res, nil
	}
	if err := writeOutput(job.Output, text); err != nil {
		return res, err
	}
	if r.opts.Formatter != nil {
		if err := r.opts.Formatter.Format(ctx, job.Output); err != nil {
			res.Err = err
			r.logger.Warnw("Formatter failed", logger.FieldFile, job.Output, logger.FieldError, err)
		}
	}
	r.logger.Debugw("Translated file",
		logger.FieldFile, job.Input,
		logger.FieldOutput, job.Output,
		logger.FieldFixmes, fixmes,
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return res, nil
}

// translate renders the complete output file for job: header, Kotlin text
// and a trailing newline.
func (r *Runner) translate(ctx context.Context, job Job) (string, int, error) {
	src, err := os.ReadFile(job.Input)
	if err != nil {
		return "", 0, errors.Wrapf(err, "failed to read %s", job.Input)
	}
	body, fixmes, err := r.body(ctx, job, src)
	if err != nil {
		return "", 0, err
	}
	if h := r.header(job); h != "" {
		body = h + "\n" + body
	}
	return body, fixmes, nil
}

// body is the translation of src without header, served from the cache
// when possible. Cache failures only cost a retranslation.
func (r *Runner) body(ctx context.Context, job Job, src []byte) (string, int, error) {
	var key string
	if r.opts.Cache != nil {
		key = cache.Key(r.opts.Fingerprint, src)
		e, ok, err := r.opts.Cache.Get(ctx, key)
		switch {
		case err != nil:
			r.logger.Warnw("Cache lookup failed", logger.FieldFile, job.Input, logger.FieldError, err)
		case ok:
			r.logger.Debugw("Cache hit", logger.FieldFile, job.Input)
			return e.Kotlin, e.Fixmes, nil
		}
	}

	seq, err := r.translator.TranslateSource(job.Input, string(src))
	if err != nil {
		return "", 0, err
	}
	text := seq.Text()
	if text != "" {
		text += "\n"
	}
	fixmes := countFixmes(seq)

	if r.opts.Cache != nil {
		e := cache.Entry{Key: key, Input: job.Input, Kotlin: text, Fixmes: fixmes}
		if err := r.opts.Cache.Put(ctx, e); err != nil && !db.IsDatabaseClosed(err) {
			r.logger.Warnw("Cache store failed", logger.FieldFile, job.Input, logger.FieldError, err)
		}
	}
	return text, fixmes, nil
}

func (r *Runner) header(job Job) string {
	if r.opts.Header == "" {
		return ""
	}
	return strings.ReplaceAll(r.opts.Header, "{source}", filepath.Base(job.Input))
}

func countFixmes(seq tokens.Sequence) int {
	n := 0
	for _, tok := range seq.Tokens() {
		if tok.Kind == tokens.Comment {
			n++
		}
	}
	return n
}

func writeOutput(path, text string) error {
	if err := os.MkdirAll(filepath.Dir(path), config.DefaultDirPermissions); err != nil {
		return errors.Wrapf(err, "failed to create directory for %s", path)
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

// stream writes translations in input order. Multiple files are separated
// by a comment naming their source.
func (r *Runner) stream(results []Result) error {
	for i, res := range results {
		if res.Err != nil {
			continue
		}
		if len(results) > 1 {
			if i > 0 {
				if _, err := io.WriteString(r.opts.Stdout, "\n"); err != nil {
					return err
				}
			}
			if _, err := io.WriteString(r.opts.Stdout, "// "+res.Input+"\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(r.opts.Stdout, res.Kotlin); err != nil {
			return errors.Wrap(err, "failed to write output")
		}
	}
	return nil
}
