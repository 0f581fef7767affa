package transpile

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/teranos/swiftkotlin/errors"
)

// SourceExt is the extension of translated inputs.
const SourceExt = ".swift"

// Job is one input file and the path its translation is written to.
type Job struct {
	Input  string
	Output string
}

// skipDirs are never descended into while discovering inputs.
var skipDirs = map[string]bool{
	".build":      true,
	".git":        true,
	"Pods":        true,
	"Carthage":    true,
	"DerivedData": true,
}

// Discover expands files and directories into a sorted, de-duplicated list
// of jobs. Directories are walked recursively for .swift files. Outputs sit
// next to their input with ext replacing .swift, or mirror the input tree
// under outDir when set.
func Discover(paths []string, outDir, ext string) ([]Job, error) {
	seen := map[string]bool{}
	var jobs []Job
	add := func(root, input string) error {
		if seen[input] {
			return nil
		}
		seen[input] = true
		out, err := outputPath(root, input, outDir, ext)
		if err != nil {
			return err
		}
		jobs = append(jobs, Job{Input: input, Output: out})
		return nil
	}

	for _, p := range paths {
		p = filepath.Clean(p)
		info, err := os.Stat(p)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, errors.NewNotFoundError("input %s does not exist", p)
			}
			return nil, errors.Wrapf(err, "failed to stat %s", p)
		}
		if !info.IsDir() {
			if err := add(filepath.Dir(p), p); err != nil {
				return nil, err
			}
			continue
		}
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != p && (skipDirs[d.Name()] || strings.HasPrefix(d.Name(), ".")) {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) != SourceExt {
				return nil
			}
			return add(p, path)
		})
		if err != nil {
			return nil, errors.Wrapf(err, "failed to walk %s", p)
		}
	}

	sort.Slice(jobs, func(i, j int) bool { return jobs[i].Input < jobs[j].Input })
	return jobs, nil
}

func outputPath(root, input, outDir, ext string) (string, error) {
	base := strings.TrimSuffix(input, filepath.Ext(input)) + ext
	if outDir == "" {
		return base, nil
	}
	rel, err := filepath.Rel(root, base)
	if err != nil {
		return "", errors.Wrapf(err, "failed to place %s under %s", input, outDir)
	}
	return filepath.Join(outDir, rel), nil
}
