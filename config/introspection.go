package config

import (
	"sort"
)

// Source represents where a configuration value came from
type Source string

const (
	SourceDefault     Source = "default"
	SourceSystem      Source = "system"      // /etc/swiftkotlin/config.toml
	SourceUser        Source = "user"        // ~/.swiftkotlin/config.toml
	SourceProject     Source = "project"     // nearest swiftkotlin.toml or --config
	SourceEnvironment Source = "environment" // SWIFTKOTLIN_* env vars
)

// SourceInfo tracks where a configuration value originated
type SourceInfo struct {
	Source Source
	Path   string // file path or environment variable name; empty for defaults
}

// Sources maps dotted config keys to their origin.
type Sources map[string]SourceInfo

// Setting is one effective key with its origin, for `config show --sources`.
type Setting struct {
	Key        string `json:"key"`
	Source     Source `json:"source"`
	SourcePath string `json:"source_path,omitempty"`
}

// Settings returns every tracked key sorted by name.
func (s Sources) Settings() []Setting {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]Setting, 0, len(keys))
	for _, k := range keys {
		out = append(out, Setting{Key: k, Source: s[k].Source, SourcePath: s[k].Path})
	}
	return out
}

// Count returns how many keys each source contributed.
func (s Sources) Count() map[Source]int {
	counts := map[Source]int{}
	for _, info := range s {
		counts[info.Source]++
	}
	return counts
}
