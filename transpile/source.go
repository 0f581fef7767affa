package transpile

// Input resolution. Besides local paths, inputs may be anything go-getter
// understands:
//   - Git URLs (https, ssh, git://)
//   - GitHub/GitLab shorthand (github.com/user/repo//Sources)
//   - Archives (zip, tar.gz) with auto-extraction

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter"
	"go.uber.org/zap"

	"github.com/teranos/swiftkotlin/errors"
	"github.com/teranos/swiftkotlin/logger"
)

// Source is a resolved input.
type Source struct {
	// LocalPath is the input itself, or where a remote input was fetched.
	LocalPath string
	Input     string
	Remote    bool
	cleanup   func()
}

// Cleanup removes a fetched copy. Safe to call multiple times.
func (s *Source) Cleanup() {
	if s.cleanup != nil {
		s.cleanup()
		s.cleanup = nil
	}
}

// ResolveSource returns local inputs unchanged and fetches remote ones
// into a temporary directory that Cleanup removes.
func ResolveSource(ctx context.Context, input string) (*Source, error) {
	log := logger.ComponentLogger("transpile.source")
	detected, remote, err := detect(input)
	if err != nil {
		return nil, err
	}
	if !remote {
		return &Source{LocalPath: input, Input: input}, nil
	}
	return fetch(ctx, input, detected, log)
}

// IsRemote reports whether input names something to download.
func IsRemote(input string) bool {
	_, remote, err := detect(input)
	return err == nil && remote
}

func detect(input string) (string, bool, error) {
	pwd, err := os.Getwd()
	if err != nil {
		pwd = "."
	}
	detected, err := getter.Detect(input, pwd, getter.Detectors)
	if err != nil {
		return "", false, errors.Wrapf(err, "failed to detect source type of %s", input)
	}
	u, err := url.Parse(detected)
	if err != nil {
		return "", false, errors.Wrapf(err, "failed to parse detected URL %s", detected)
	}
	return detected, u.Scheme != "" && u.Scheme != "file", nil
}

func fetch(ctx context.Context, input, detected string, log *zap.SugaredLogger) (*Source, error) {
	tempDir, err := os.MkdirTemp("", fmt.Sprintf("swiftkotlin-%s-*", sourceName(input)))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create temp directory")
	}
	// go-getter wants a destination that does not exist yet
	dst := filepath.Join(tempDir, "src")

	log.Infow("Fetching source", "input", input, "detected", detected, "destination", dst)
	client := &getter.Client{
		Ctx:     ctx,
		Src:     detected,
		Dst:     dst,
		Mode:    getter.ClientModeDir,
		Getters: getter.Getters,
	}
	if err := client.Get(); err != nil {
		os.RemoveAll(tempDir)
		return nil, errors.Wrapf(err, "failed to fetch %s", input)
	}

	return &Source{
		LocalPath: dst,
		Input:     input,
		Remote:    true,
		cleanup: func() {
			log.Debugw("Removing fetched source", "path", tempDir)
			os.RemoveAll(tempDir)
		},
	}, nil
}

// sourceName is a directory-safe name for input, used in temp paths.
func sourceName(input string) string {
	input = strings.TrimSuffix(input, "/")
	if i := strings.Index(input, "//"); i >= 0 && !strings.Contains(input[:i], ":") {
		input = input[:i]
	}
	input = strings.TrimSuffix(input, ".git")
	if i := strings.LastIndex(input, "/"); i >= 0 {
		input = input[i+1:]
	}
	name := strings.NewReplacer(":", "-", "@", "-", " ", "-", "?", "-").Replace(input)
	if len(name) > 50 {
		name = name[:50]
	}
	if name == "" {
		name = "source"
	}
	return name
}
