package config

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/teranos/swiftkotlin/errors"
)

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	// Indent width only matters for space indentation
	if !c.Translate.UseTabs && (c.Translate.IndentWidth <= 0 || c.Translate.IndentWidth > 16) {
		return errors.Newf("translate.indent_width must be between 1 and 16, got %d", c.Translate.IndentWidth)
	}
	for _, entry := range c.Translate.TypeMap {
		if _, _, err := parseTypeMapEntry(entry); err != nil {
			return err
		}
	}

	if !strings.HasPrefix(c.Output.Extension, ".") || len(c.Output.Extension) < 2 {
		return errors.Newf("output.extension must start with '.', got %q", c.Output.Extension)
	}
	// Workers: 0 = one per CPU, negative = invalid
	if c.Output.Workers < 0 {
		return errors.Newf("output.workers must be >= 0, got %d", c.Output.Workers)
	}
	if strings.Contains(c.Output.Header, "\n") {
		return errors.New("output.header must be a single line")
	}

	if c.Watch.DebounceMS < 0 {
		return errors.Newf("watch.debounce_ms must be >= 0, got %d", c.Watch.DebounceMS)
	}
	// 0 disables throttling
	if c.Watch.MaxPerSecond < 0 {
		return errors.Newf("watch.max_per_second must be >= 0, got %f", c.Watch.MaxPerSecond)
	}

	if c.Requires != "" {
		if _, err := semver.NewConstraint(c.Requires); err != nil {
			return errors.Wrapf(err, "requires: invalid version constraint %q", c.Requires)
		}
	}
	return nil
}
