package render

import (
	"strings"

	"github.com/bryanchriswhite/i3windows/internal/config"
	"github.com/mattn/go-runewidth"
)

// Ellipsis marks a truncated title
const Ellipsis = "..."

// Placeholders are substituted into formatter fragments once at startup
type Placeholders struct {
	User string
	Host string
}

func (p Placeholders) expand(fragment string) string {
	return strings.NewReplacer("{user}", p.User, "{host}", p.Host).Replace(fragment)
}

// TitleFormatter normalizes titles per window class and bounds their length
type TitleFormatter struct {
	rules     map[string][]string
	maxLength int
	measure   config.TitleMeasure
}

// NewTitleFormatter builds the class lookup table. Later rules for the same
// class add to earlier ones.
func NewTitleFormatter(rules []config.TitleRule, p Placeholders, maxLength int, measure config.TitleMeasure) *TitleFormatter {
	table := make(map[string][]string, len(rules))
	for _, rule := range rules {
		for _, fragment := range rule.Remove {
			if fragment = p.expand(fragment); fragment != "" {
				table[rule.Class] = append(table[rule.Class], fragment)
			}
		}
	}
	return &TitleFormatter{
		rules:     table,
		maxLength: maxLength,
		measure:   measure,
	}
}

// Normalize applies the class rule to title, or returns title unchanged
// when the class has none.
func (f *TitleFormatter) Normalize(class, title string) string {
	for _, fragment := range f.rules[class] {
		title = strings.ReplaceAll(title, fragment, "")
	}
	return title
}

// Format normalizes and truncates a title. An empty title stays empty.
func (f *TitleFormatter) Format(class, title string) string {
	return f.truncate(f.Normalize(class, title))
}

func (f *TitleFormatter) truncate(title string) string {
	if f.measure == config.MeasureCells {
		if runewidth.StringWidth(title) <= f.maxLength {
			return title
		}
		return runewidth.Truncate(title, f.maxLength, Ellipsis)
	}

	runes := []rune(title)
	if len(runes) <= f.maxLength {
		return title
	}
	return string(runes[:f.maxLength-len(Ellipsis)]) + Ellipsis
}
