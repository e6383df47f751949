package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bryanchriswhite/i3windows/internal/logger"
	"github.com/spf13/viper"
)

// DefaultClickCommand is the click handler looked up next to the running binary
const DefaultClickCommand = "i3windows-click"

// EnvPrefix is the prefix for environment overrides (I3WINDOWS_MAX_LENGTH, ...)
const EnvPrefix = "I3WINDOWS"

// ConfigDir returns the directory holding config.yaml
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "i3windows")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "i3windows")
	}
	return filepath.Join(home, ".config", "i3windows")
}

// SetDefaults registers scalar defaults with v so env and flag bindings
// resolve. List values stay on the struct returned by Default.
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("max_length", defaults.MaxLength)
	v.SetDefault("separator_offset", defaults.SeparatorOffset)
	v.SetDefault("click_command", defaults.ClickCommand)

	v.SetDefault("title.measure", string(defaults.Title.Measure))

	v.SetDefault("colors.accent", defaults.Colors.Accent)
	v.SetDefault("colors.alert", defaults.Colors.Alert)
	v.SetDefault("colors.neutral", defaults.Colors.Neutral)
	v.SetDefault("colors.focused_foreground", defaults.Colors.FocusedForeground)

	v.SetDefault("icons.enabled", defaults.Icons.Enabled)
	v.SetDefault("icons.font", defaults.Icons.Font)

	v.SetDefault("server.listen", defaults.Server.Listen)
}

// Prepare wires v to its config file and environment. An explicit cfgFile
// must exist; the default location is optional.
func Prepare(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(ConfigDir())
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			logger.WithComponent("config").Debug().
				Str("dir", ConfigDir()).
				Msg("No config file found, using defaults")
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}

	logger.WithComponent("config").Debug().
		Str("path", v.ConfigFileUsed()).
		Msg("Config loaded")
	return nil
}

// Load unmarshals v on top of the defaults and validates the result
func Load(v *viper.Viper) (*Config, error) {
	cfg := Default()
	// configured lists replace the defaults instead of merging element-wise
	if v.IsSet("title.formatters") {
		cfg.Title.Formatters = nil
	}
	if v.IsSet("icons.rules") {
		cfg.Icons.Rules = nil
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	return cfg, nil
}

// ResolveClickCommand returns the click handler path. A bare command name is
// looked up next to the executable first, then used as is so $PATH applies.
func (c *Config) ResolveClickCommand() string {
	cmd := c.ClickCommand
	if cmd == "" {
		cmd = DefaultClickCommand
	}
	if strings.ContainsRune(cmd, filepath.Separator) {
		return cmd
	}

	exe, err := os.Executable()
	if err != nil {
		return cmd
	}
	candidate := filepath.Join(filepath.Dir(exe), cmd)
	if _, err := os.Stat(candidate); err == nil {
		return candidate
	}
	return cmd
}
