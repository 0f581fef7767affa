package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/teranos/swiftkotlin/config"
	"github.com/teranos/swiftkotlin/errors"
)

// ConfigCmd represents the config command
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage swiftkotlin configuration",
	Long: `Display and manage swiftkotlin configuration.

Configuration sources (in order of precedence):
1. Environment variables (SWIFTKOTLIN_* prefix)
2. Project config (nearest swiftkotlin.toml, or --config)
3. User config (~/.swiftkotlin/config.toml)
4. System config (/etc/swiftkotlin/config.toml)
5. Default values

Examples:
  swiftkotlin config show                  # Show current configuration
  swiftkotlin config show --format json    # Show configuration in JSON format
  swiftkotlin config show --sources        # Show where each setting comes from
  swiftkotlin config init                  # Write swiftkotlin.toml with defaults
  swiftkotlin config validate              # Validate current configuration`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  "Display the effective configuration merged from all sources",
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a config file with default values",
	Long:  "Write the default configuration to ./swiftkotlin.toml or the given path. An existing file is backed up first.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runConfigInit,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate current configuration",
	Long:  "Validate the effective configuration, including the type map file",
	RunE:  runConfigValidate,
}

var (
	configFormat  string
	configSources bool
	configForce   bool
)

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")
	configShowCmd.Flags().BoolVar(&configSources, "sources", false, "Show the source of every setting instead of values")
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite an existing file")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configInitCmd)
	ConfigCmd.AddCommand(configValidateCmd)
}

// LoadConfig loads the configuration named by --config, or the standard
// locations when the flag is unset.
func LoadConfig(cmd *cobra.Command) (*config.Config, config.Sources, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		return config.LoadFile(path)
	}
	return config.LoadFrom(config.DefaultPaths())
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, sources, err := LoadConfig(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if configSources {
		data := pterm.TableData{{"Key", "Source", "Path"}}
		for _, s := range sources.Settings() {
			data = append(data, []string{s.Key, string(s.Source), s.SourcePath})
		}
		table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
		if err != nil {
			return err
		}
		fmt.Fprintln(out, table)
		return nil
	}

	switch configFormat {
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to JSON")
		}
		fmt.Fprintln(out, string(data))

	case "yaml":
		data, err := yaml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to YAML")
		}
		fmt.Fprintf(out, "# swiftkotlin configuration\n%s", string(data))

	case "toml":
		data, err := toml.Marshal(cfg)
		if err != nil {
			return errors.Wrap(err, "failed to marshal config to TOML")
		}
		fmt.Fprintf(out, "# swiftkotlin configuration\n%s", string(data))

	default:
		return errors.NewInvalidRequestError("unsupported format: %s (supported: toml, json, yaml)", configFormat)
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.ProjectFile
	if len(args) == 1 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil && !configForce {
		return errors.WithHint(
			errors.NewInvalidRequestError("%s already exists", path),
			"pass --force to overwrite it; the old file is kept as "+path+".back1",
		)
	}
	if err := config.Save(path, config.Defaults()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Wrote %s\n", path)
	return nil
}

func runConfigValidate(cmd *cobra.Command, args []string) error {
	cfg, _, err := LoadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}
	if _, err := cfg.TypeMap(); err != nil {
		return errors.Wrap(err, "configuration validation failed")
	}
	fmt.Fprintln(cmd.OutOrStdout(), "✓ Configuration is valid")
	return nil
}
