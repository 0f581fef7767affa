package transpile

import (
	"context"
	"os"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/teranos/swiftkotlin/errors"
)

// Stale describes an output that does not match a fresh translation.
type Stale struct {
	Job
	Missing bool
}

// Check re-translates jobs in memory and lists outputs that are missing or
// differ from what Run would write. The header line is not compared. The
// returned error wraps errors.ErrOutOfDate when anything is stale.
func (r *Runner) Check(ctx context.Context, jobs []Job) ([]Stale, error) {
	stale := make([]*Stale, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)
	for i, job := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			want, _, err := r.translate(gctx, job)
			if err != nil {
				return errors.Wrapf(err, "translating %s", job.Input)
			}
			got, err := os.ReadFile(job.Output)
			if os.IsNotExist(err) {
				stale[i] = &Stale{Job: job, Missing: true}
				return nil
			}
			if err != nil {
				return errors.Wrapf(err, "failed to read %s", job.Output)
			}
			if r.withoutHeader(string(got)) != r.withoutHeader(want) {
				stale[i] = &Stale{Job: job}
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []Stale
	for _, s := range stale {
		if s != nil {
			out = append(out, *s)
		}
	}
	if len(out) > 0 {
		return out, errors.Wrapf(errors.ErrOutOfDate, "%d of %d outputs out of date", len(out), len(jobs))
	}
	return nil, nil
}

func (r *Runner) withoutHeader(text string) string {
	if r.opts.Header == "" {
		return text
	}
	if _, rest, ok := strings.Cut(text, "\n"); ok {
		return rest
	}
	return ""
}
