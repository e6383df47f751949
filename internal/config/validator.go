package config

import (
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/bryanchriswhite/i3windows/internal/logger"
)

// ValidationError represents a single validation failure
type ValidationError struct {
	Field   string // config key, e.g. "colors.accent"
	Value   any
	Message string
}

// Error implements the error interface for ValidationError
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (got: %v)", e.Field, e.Message, e.Value)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for ValidationErrors
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d validation errors:\n", len(e))
	for i, err := range e {
		fmt.Fprintf(&sb, "  %d. %s\n", i+1, err.Error())
	}
	return sb.String()
}

// lemonbar accepts #rgb, #argb, #rrggbb and #aarrggbb
var colorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// ValidLogLevels returns the list of valid log levels
func ValidLogLevels() []string {
	levels := make([]string, 0, len(logger.Levels()))
	for _, level := range logger.Levels() {
		levels = append(levels, string(level))
	}
	return levels
}

// ValidTitleMeasures returns the accepted title.measure values
func ValidTitleMeasures() []TitleMeasure {
	return []TitleMeasure{MeasureRunes, MeasureCells}
}

// Validate checks the Config for invalid values and returns all validation errors found
func (c *Config) Validate() []ValidationError {
	var errors []ValidationError

	if !slices.Contains(ValidLogLevels(), strings.ToLower(c.LogLevel)) {
		errors = append(errors, ValidationError{
			Field:   "log_level",
			Value:   c.LogLevel,
			Message: fmt.Sprintf("must be one of %s", strings.Join(ValidLogLevels(), ", ")),
		})
	}

	// room for at least one character plus the ellipsis
	if c.MaxLength < 4 {
		errors = append(errors, ValidationError{
			Field:   "max_length",
			Value:   c.MaxLength,
			Message: "must be at least 4",
		})
	}

	if c.SeparatorOffset < 0 {
		errors = append(errors, ValidationError{
			Field:   "separator_offset",
			Value:   c.SeparatorOffset,
			Message: "must not be negative",
		})
	}

	if !slices.Contains(ValidTitleMeasures(), c.Title.Measure) {
		errors = append(errors, ValidationError{
			Field:   "title.measure",
			Value:   c.Title.Measure,
			Message: "must be runes or cells",
		})
	}

	for i, rule := range c.Title.Formatters {
		if rule.Class == "" {
			errors = append(errors, ValidationError{
				Field:   fmt.Sprintf("title.formatters[%d].class", i),
				Value:   rule.Class,
				Message: "must not be empty",
			})
		}
	}

	colors := []struct {
		field string
		value string
	}{
		{"colors.accent", c.Colors.Accent},
		{"colors.alert", c.Colors.Alert},
		{"colors.neutral", c.Colors.Neutral},
		{"colors.focused_foreground", c.Colors.FocusedForeground},
	}
	for _, col := range colors {
		if !colorRegex.MatchString(col.value) {
			errors = append(errors, ValidationError{
				Field:   col.field,
				Value:   col.value,
				Message: "must be a hex color like #rrggbb",
			})
		}
	}

	if c.Icons.Enabled {
		if c.Icons.Font < 1 {
			errors = append(errors, ValidationError{
				Field:   "icons.font",
				Value:   c.Icons.Font,
				Message: "must be a 1-based font index",
			})
		}
		if n := len(c.Icons.Rules); n == 0 || c.Icons.Rules[n-1].Match != "*" {
			errors = append(errors, ValidationError{
				Field:   "icons.rules",
				Value:   n,
				Message: "last rule must be the * fallback",
			})
		}
	}

	return errors
}
