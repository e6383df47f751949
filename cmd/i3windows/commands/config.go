package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/bryanchriswhite/i3windows/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect i3windows configuration",
	Long:  `View the effective i3windows configuration and where it is read from.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long:  `Display the configuration after defaults, config file and environment are merged.`,
	Example: `  # Show configuration as YAML (default)
  i3windows config show

  # Show configuration as JSON
  i3windows config show --format json`,
	RunE: runConfigShow,
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Get a configuration value",
	Long:  `Get a specific configuration value.`,
	Example: `  # Get the maximum title length
  i3windows config get max_length

  # Get the accent color
  i3windows config get colors.accent`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show configuration file path",
	Long:  `Display the path of the configuration file in use, or where one would be read from.`,
	RunE:  runConfigPath,
}

var formatFlag string

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configPathCmd)

	configShowCmd.Flags().StringVarP(&formatFlag, "format", "f", "yaml", "output format (yaml or json)")
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	return writeConfig(cmd.OutOrStdout(), cfg, formatFlag)
}

func writeConfig(w io.Writer, cfg *config.Config, format string) error {
	switch format {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(cfg)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		defer encoder.Close()
		return encoder.Encode(cfg)
	default:
		return fmt.Errorf("unsupported format: %s (use 'yaml' or 'json')", format)
	}
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	value, err := lookupConfigKey(cfg, args[0])
	if err != nil {
		return err
	}

	switch value.(type) {
	case map[string]any, []any:
		encoder := yaml.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent(2)
		defer encoder.Close()
		return encoder.Encode(value)
	default:
		fmt.Fprintln(cmd.OutOrStdout(), value)
		return nil
	}
}

// lookupConfigKey resolves a dotted key such as "colors.accent" against the
// effective configuration, list values included.
func lookupConfigKey(cfg *config.Config, key string) (any, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}

	var current any
	if err := yaml.Unmarshal(data, &current); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	for _, part := range strings.Split(strings.ToLower(key), ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("configuration key not found: %s", key)
		}
		if current, ok = m[part]; !ok {
			return nil, fmt.Errorf("configuration key not found: %s", key)
		}
	}
	return current, nil
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	if initConfigErr != nil {
		return initConfigErr
	}

	path := viper.ConfigFileUsed()
	if path == "" {
		path = filepath.Join(config.ConfigDir(), "config.yaml")
	}
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
