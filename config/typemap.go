package config

import (
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/teranos/swiftkotlin/errors"
)

// typeMapFile is the layout of translate.type_map_file:
//
//	[types]
//	URL = "java.net.URI"
type typeMapFile struct {
	Types map[string]string `toml:"types"`
}

// LoadTypeMap decodes the [types] table of a type-map override file.
func LoadTypeMap(path string) (map[string]string, error) {
	var f typeMapFile
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to decode type map %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.WithHint(
			errors.Newf("type map %s: unknown key %s", path, undecoded[0]),
			"only a [types] table of Swift name = \"Kotlin name\" entries is allowed",
		)
	}
	for swift, kotlin := range f.Types {
		if swift == "" || kotlin == "" {
			return nil, errors.Newf("type map %s: empty name in %q = %q", path, swift, kotlin)
		}
	}
	return f.Types, nil
}

// TypeMap returns the configured type-name overrides: entries of the
// type_map_file first, then inline type_map entries on top.
func (c *Config) TypeMap() (map[string]string, error) {
	m := map[string]string{}
	if c.Translate.TypeMapFile != "" {
		fromFile, err := LoadTypeMap(c.Translate.TypeMapFile)
		if err != nil {
			return nil, err
		}
		for k, v := range fromFile {
			m[k] = v
		}
	}
	for _, entry := range c.Translate.TypeMap {
		swift, kotlin, err := parseTypeMapEntry(entry)
		if err != nil {
			return nil, err
		}
		m[swift] = kotlin
	}
	return m, nil
}

func parseTypeMapEntry(entry string) (string, string, error) {
	swift, kotlin, ok := strings.Cut(entry, "=")
	swift, kotlin = strings.TrimSpace(swift), strings.TrimSpace(kotlin)
	if !ok || swift == "" || kotlin == "" {
		return "", "", errors.Newf("translate.type_map entry %q must look like Swift=Kotlin", entry)
	}
	return swift, kotlin, nil
}
