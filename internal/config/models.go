package config

// TitleMeasure selects how title length is counted
type TitleMeasure string

const (
	MeasureRunes TitleMeasure = "runes" // Unicode code points
	MeasureCells TitleMeasure = "cells" // terminal display cells
)

// Config represents the application configuration
type Config struct {
	LogLevel        string       `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
	MaxLength       int          `json:"max_length" yaml:"max_length" mapstructure:"max_length"`
	SeparatorOffset int          `json:"separator_offset" yaml:"separator_offset" mapstructure:"separator_offset"`
	ClickCommand    string       `json:"click_command" yaml:"click_command" mapstructure:"click_command"`
	Title           TitleConfig  `json:"title" yaml:"title" mapstructure:"title"`
	Colors          ColorConfig  `json:"colors" yaml:"colors" mapstructure:"colors"`
	Icons           IconConfig   `json:"icons" yaml:"icons" mapstructure:"icons"`
	Server          ServerConfig `json:"server" yaml:"server" mapstructure:"server"`
}

// TitleConfig controls title normalization and truncation
type TitleConfig struct {
	Measure    TitleMeasure `json:"measure" yaml:"measure" mapstructure:"measure"`
	Formatters []TitleRule  `json:"formatters" yaml:"formatters" mapstructure:"formatters"`
}

// TitleRule lists the fragments removed from the titles of one window class.
// Fragments may contain {user} and {host}. A list is used instead of a map
// because viper folds map keys to lower case and classes are case sensitive.
type TitleRule struct {
	Class  string   `json:"class" yaml:"class" mapstructure:"class"`
	Remove []string `json:"remove" yaml:"remove" mapstructure:"remove"`
}

// ColorConfig holds the lemonbar colors used for entries
type ColorConfig struct {
	Accent            string `json:"accent" yaml:"accent" mapstructure:"accent"`
	Alert             string `json:"alert" yaml:"alert" mapstructure:"alert"`
	Neutral           string `json:"neutral" yaml:"neutral" mapstructure:"neutral"`
	FocusedForeground string `json:"focused_foreground" yaml:"focused_foreground" mapstructure:"focused_foreground"`
}

// IconRule pairs an icon resolver match expression with a glyph
type IconRule struct {
	Match string `json:"match" yaml:"match" mapstructure:"match"`
	Icon  string `json:"icon" yaml:"icon" mapstructure:"icon"`
}

// IconConfig controls the optional icon prefix
type IconConfig struct {
	Enabled bool       `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	Font    int        `json:"font" yaml:"font" mapstructure:"font"`
	Rules   []IconRule `json:"rules" yaml:"rules" mapstructure:"rules"`
}

// ServerConfig controls the optional HTTP mirror of the bar line
type ServerConfig struct {
	// Listen is a host:port address; empty disables the server
	Listen string `json:"listen" yaml:"listen" mapstructure:"listen"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		LogLevel:        "warn",
		MaxLength:       50,
		SeparatorOffset: 12,
		ClickCommand:    DefaultClickCommand,
		Title: TitleConfig{
			Measure: MeasureRunes,
			Formatters: []TitleRule{
				{Class: "Chromium", Remove: []string{" - Chromium"}},
				{Class: "Firefox", Remove: []string{" - Mozilla Firefox"}},
				{Class: "URxvt", Remove: []string{"{user}@{host}: "}},
				{Class: "Code", Remove: []string{" - Visual Studio Code"}},
			},
		},
		Colors: ColorConfig{
			Accent:            "#b4619a",
			Alert:             "#e84f4f",
			Neutral:           "#404040",
			FocusedForeground: "#fff",
		},
		Icons: IconConfig{
			Enabled: false,
			Font:    3,
			Rules: []IconRule{
				{Match: "class=*.slack.com", Icon: "\uf3ef"},
				{Match: "class=Chromium", Icon: "\ue743"},
				{Match: "class=Firefox", Icon: "\uf738"},
				{Match: "class=URxvt", Icon: "\ue795"},
				{Match: "class=Code", Icon: "\ue70c"},
				{Match: "class=code-oss-dev", Icon: "\ue70c"},
				{Match: "name=mutt", Icon: "\uf199"},
				{Match: "*", Icon: "\ufaae"},
			},
		},
	}
}
