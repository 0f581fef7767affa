package config

// Config is the swiftkotlin configuration
type Config struct {
	// Requires is a semver constraint the running tool version must satisfy
	Requires  string          `mapstructure:"requires" toml:"requires,omitempty" yaml:"requires,omitempty" json:"requires,omitempty"`
	Translate TranslateConfig `mapstructure:"translate" toml:"translate" yaml:"translate" json:"translate"`
	Output    OutputConfig    `mapstructure:"output" toml:"output" yaml:"output" json:"output"`
	Watch     WatchConfig     `mapstructure:"watch" toml:"watch" yaml:"watch" json:"watch"`
	Cache     CacheConfig     `mapstructure:"cache" toml:"cache" yaml:"cache" json:"cache"`
	Log       LogConfig       `mapstructure:"log" toml:"log" yaml:"log" json:"log"`
}

// TranslateConfig configures the translation engine
type TranslateConfig struct {
	IndentWidth int    `mapstructure:"indent_width" toml:"indent_width" yaml:"indent_width" json:"indent_width"` // spaces per level (default: 4)
	UseTabs     bool   `mapstructure:"use_tabs" toml:"use_tabs" yaml:"use_tabs" json:"use_tabs"`
	FixmePrefix string `mapstructure:"fixme_prefix" toml:"fixme_prefix" yaml:"fixme_prefix" json:"fixme_prefix"`

	// TypeMap entries are "Swift=Kotlin" pairs. A list rather than a table
	// because viper lowercases table keys.
	TypeMap     []string `mapstructure:"type_map" toml:"type_map,omitempty" yaml:"type_map,omitempty" json:"type_map,omitempty"`
	TypeMapFile string   `mapstructure:"type_map_file" toml:"type_map_file,omitempty" yaml:"type_map_file,omitempty" json:"type_map_file,omitempty"` // TOML file with a [types] table
}

// OutputConfig configures where and how Kotlin files are written
type OutputConfig struct {
	Extension     string `mapstructure:"extension" toml:"extension" yaml:"extension" json:"extension"`                                    // default: .kt
	Dir           string `mapstructure:"dir" toml:"dir,omitempty" yaml:"dir,omitempty" json:"dir,omitempty"`                               // empty = next to the input
	Header        string `mapstructure:"header" toml:"header,omitempty" yaml:"header,omitempty" json:"header,omitempty"`                   // first line of every generated file
	Workers       int    `mapstructure:"workers" toml:"workers" yaml:"workers" json:"workers"`                                            // 0 = one per CPU
	FormatCommand string `mapstructure:"format_command" toml:"format_command,omitempty" yaml:"format_command,omitempty" json:"format_command,omitempty"` // run on each written file, e.g. "ktlint -F"
}

// WatchConfig configures watch mode
type WatchConfig struct {
	DebounceMS   int     `mapstructure:"debounce_ms" toml:"debounce_ms" yaml:"debounce_ms" json:"debounce_ms"`
	MaxPerSecond float64 `mapstructure:"max_per_second" toml:"max_per_second" yaml:"max_per_second" json:"max_per_second"` // translations per second across all files
}

// CacheConfig configures the translation cache
type CacheConfig struct {
	Enabled bool   `mapstructure:"enabled" toml:"enabled" yaml:"enabled" json:"enabled"`
	Path    string `mapstructure:"path" toml:"path,omitempty" yaml:"path,omitempty" json:"path,omitempty"` // empty = user cache dir
}

// LogConfig configures logging output
type LogConfig struct {
	JSON bool `mapstructure:"json" toml:"json" yaml:"json" json:"json"`
}

// Indent returns the indentation unit for generated code.
func (c *Config) Indent() string {
	if c.Translate.UseTabs {
		return "\t"
	}
	width := c.Translate.IndentWidth
	if width <= 0 {
		width = DefaultIndentWidth
	}
	b := make([]byte, width)
	for i := range b {
		b[i] = ' '
	}
	return string(b)
}
