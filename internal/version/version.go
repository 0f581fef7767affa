package version

import (
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/swiftkotlin/errors"
)

// Build information. These variables are set at build time via ldflags.
var (
	// CommitHash is the git commit hash when the binary was built
	CommitHash = "dev"

	// BuildTime is when the binary was built
	BuildTime = "unknown"

	// Version is the semantic version (if tagged)
	Version = "dev"
)

// Info contains version and build information
type Info struct {
	CommitHash string `json:"commit_hash"`
	BuildTime  string `json:"build_time"`
	Version    string `json:"version"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

// Get returns the current version information
func Get() Info {
	return Info{
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		Version:    Version,
		GoVersion:  runtime.Version(),
		Platform:   fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// String returns a human-readable version string
func (i Info) String() string {
	if i.Version != "dev" {
		return fmt.Sprintf("swiftkotlin %s (commit %s, built %s)", i.Version, i.CommitHash, i.BuildTime)
	}
	return fmt.Sprintf("swiftkotlin dev (commit %s, built %s)", i.CommitHash, i.BuildTime)
}

// Short returns a short version string with just the commit hash
func (i Info) Short() string {
	if len(i.CommitHash) >= 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}

// Check reports whether the running version satisfies a config's
// requires constraint. Development builds satisfy every constraint.
func Check(constraint string) error {
	return check(Version, constraint)
}

func check(current, constraint string) error {
	if constraint == "" || current == "dev" {
		return nil
	}
	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return errors.Wrapf(err, "invalid version constraint %q", constraint)
	}
	v, err := semver.NewVersion(current)
	if err != nil {
		return errors.Wrapf(err, "invalid build version %q", current)
	}
	if ok, reasons := c.Validate(v); !ok {
		err := errors.Newf("swiftkotlin %s does not satisfy requires %q", v, constraint)
		for _, r := range reasons {
			err = errors.WithDetail(err, r.Error())
		}
		return errors.WithHint(err, "upgrade swiftkotlin or relax the requires constraint in the config")
	}
	return nil
}
