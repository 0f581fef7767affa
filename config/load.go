package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/swiftkotlin/errors"
)

// EnvPrefix prefixes environment overrides: SWIFTKOTLIN_OUTPUT_WORKERS=8
const EnvPrefix = "SWIFTKOTLIN"

// ProjectFile is the per-project config name searched for upwards from the
// working directory.
const ProjectFile = "swiftkotlin.toml"

// Paths lists the config files merged by LoadFrom, lowest precedence first.
// Empty entries and missing files are skipped.
type Paths struct {
	System  string
	User    string
	Project string
}

// DefaultPaths returns the standard config locations for the current user
// and working directory.
func DefaultPaths() Paths {
	p := Paths{System: "/etc/swiftkotlin/config.toml"}
	if home, err := os.UserHomeDir(); err == nil {
		p.User = filepath.Join(home, ".swiftkotlin", "config.toml")
	}
	if wd, err := os.Getwd(); err == nil {
		p.Project = FindProjectConfig(wd)
	}
	return p
}

// Load reads the configuration from the standard locations plus environment.
func Load() (*Config, error) {
	cfg, _, err := LoadFrom(DefaultPaths())
	return cfg, err
}

// LoadFile reads defaults, a single explicit config file, and environment
// overrides. Used for the --config flag.
func LoadFile(path string) (*Config, Sources, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil, errors.Wrapf(err, "config file %s", path)
	}
	return LoadFrom(Paths{Project: path})
}

// LoadFrom merges defaults < System < User < Project < environment and
// records which source set each key.
func LoadFrom(paths Paths) (*Config, Sources, error) {
	v := newViper()
	sources := Sources{}
	for _, key := range v.AllKeys() {
		sources[key] = SourceInfo{Source: SourceDefault}
	}

	for _, f := range []struct {
		path   string
		source Source
	}{
		{paths.System, SourceSystem},
		{paths.User, SourceUser},
		{paths.Project, SourceProject},
	} {
		if f.path == "" {
			continue
		}
		if err := mergeFile(v, f.path, f.source, sources); err != nil {
			return nil, nil, err
		}
	}

	for _, key := range v.AllKeys() {
		env := envName(key)
		if _, ok := os.LookupEnv(env); ok {
			sources[key] = SourceInfo{Source: SourceEnvironment, Path: env}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, nil, errors.Wrap(err, "failed to unmarshal config")
	}
	return &cfg, sources, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// mergeFile merges one TOML file into v. A missing file is not an error;
// a malformed one is.
func mergeFile(v *viper.Viper, path string, source Source, sources Sources) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	fv := viper.New()
	fv.SetConfigFile(path)
	fv.SetConfigType("toml")
	if err := fv.ReadInConfig(); err != nil {
		return errors.WithHint(
			errors.Wrapf(err, "failed to read config file %s", path),
			"check the file is valid TOML",
		)
	}
	// merged into the config layer so environment overrides still win
	if err := v.MergeConfigMap(fv.AllSettings()); err != nil {
		return errors.Wrapf(err, "failed to merge config file %s", path)
	}
	for _, key := range fv.AllKeys() {
		sources[key] = SourceInfo{Source: source, Path: path}
	}
	return nil
}

func envName(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// FindProjectConfig walks up from dir looking for swiftkotlin.toml and
// returns its path, or "" when none exists.
func FindProjectConfig(dir string) string {
	for {
		candidate := filepath.Join(dir, ProjectFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}
