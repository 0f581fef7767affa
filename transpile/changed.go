package transpile

import (
	"path/filepath"

	"github.com/go-git/go-git/v5"

	"github.com/teranos/swiftkotlin/errors"
)

// Changed lists the .swift files that differ from HEAD in the git work
// tree containing dir: modified, staged, added or untracked. Paths are
// absolute.
func Changed(dir string) (map[string]bool, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrapf(err, "failed to open git repository at %s", dir),
			"--changed only works inside a git work tree",
		)
	}
	wt, err := repo.Worktree()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get worktree")
	}
	status, err := wt.Status()
	if err != nil {
		return nil, errors.Wrap(err, "failed to get worktree status")
	}

	root, err := filepath.Abs(wt.Filesystem.Root())
	if err != nil {
		return nil, err
	}
	changed := map[string]bool{}
	for path, st := range status {
		if st.Worktree == git.Deleted || (st.Worktree == git.Unmodified && st.Staging == git.Unmodified) {
			continue
		}
		if filepath.Ext(path) != SourceExt {
			continue
		}
		changed[filepath.Join(root, filepath.FromSlash(path))] = true
	}
	return changed, nil
}

// FilterChanged keeps the jobs whose input is in changed.
func FilterChanged(jobs []Job, changed map[string]bool) []Job {
	var out []Job
	for _, job := range jobs {
		abs, err := filepath.Abs(job.Input)
		if err == nil && changed[abs] {
			out = append(out, job)
		}
	}
	return out
}
