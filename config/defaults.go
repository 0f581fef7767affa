package config

import (
	"github.com/spf13/viper"
)

const (
	DefaultIndentWidth  = 4
	DefaultFixmePrefix  = "// FIXME: "
	DefaultExtension    = ".kt"
	DefaultDebounceMS   = 200
	DefaultMaxPerSecond = 20.0

	// DefaultDirPermissions for ~/.swiftkotlin and output directories
	DefaultDirPermissions = 0755
)

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	v.SetDefault("translate.indent_width", DefaultIndentWidth)
	v.SetDefault("translate.use_tabs", false)
	v.SetDefault("translate.fixme_prefix", DefaultFixmePrefix)
	v.SetDefault("translate.type_map", []string{})
	v.SetDefault("translate.type_map_file", "")

	v.SetDefault("output.extension", DefaultExtension)
	v.SetDefault("output.dir", "")
	v.SetDefault("output.header", "")
	v.SetDefault("output.workers", 0)
	v.SetDefault("output.format_command", "")

	v.SetDefault("watch.debounce_ms", DefaultDebounceMS)
	v.SetDefault("watch.max_per_second", DefaultMaxPerSecond)

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.path", "")

	v.SetDefault("log.json", false)
	v.SetDefault("requires", "")
}

// Defaults returns a configuration holding only built-in defaults.
func Defaults() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	// Unmarshal of defaults alone cannot fail
	_ = v.Unmarshal(&cfg)
	return &cfg
}
