// Package render turns a window manager snapshot into one lemonbar line.
package render

import (
	"fmt"
	"strings"

	"github.com/bryanchriswhite/i3windows/internal/config"
	"github.com/bryanchriswhite/i3windows/internal/icon"
	"github.com/bryanchriswhite/i3windows/internal/window"
)

// Renderer runs the filter, format and join steps of a render pass
type Renderer struct {
	titles    *TitleFormatter
	entries   *EntryRenderer
	separator string
}

// New wires a Renderer from its parts
func New(titles *TitleFormatter, entries *EntryRenderer, separatorOffset int) *Renderer {
	return &Renderer{
		titles:    titles,
		entries:   entries,
		separator: offset(separatorOffset),
	}
}

// NewFromConfig builds the lookup tables described by cfg. The tables are
// not modified afterwards.
func NewFromConfig(cfg *config.Config, p Placeholders) (*Renderer, error) {
	var icons *IconPrefix
	if cfg.Icons.Enabled {
		specs := make([]icon.Spec, 0, len(cfg.Icons.Rules))
		for _, rule := range cfg.Icons.Rules {
			specs = append(specs, icon.Spec{Match: rule.Match, Icon: rule.Icon})
		}
		resolver, err := icon.NewResolver(specs)
		if err != nil {
			return nil, fmt.Errorf("failed to build icon resolver: %w", err)
		}
		icons = &IconPrefix{Resolver: resolver, Font: cfg.Icons.Font}
	}

	titles := NewTitleFormatter(cfg.Title.Formatters, p, cfg.MaxLength, cfg.Title.Measure)
	entries := NewEntryRenderer(Palette{
		Accent:            cfg.Colors.Accent,
		Alert:             cfg.Colors.Alert,
		Neutral:           cfg.Colors.Neutral,
		FocusedForeground: cfg.Colors.FocusedForeground,
	}, cfg.ResolveClickCommand(), icons)

	return New(titles, entries, cfg.SeparatorOffset), nil
}

// Render produces the line for snap. Nothing is returned alongside an error,
// so a failed pass never yields a partial line.
func (r *Renderer) Render(snap *window.Snapshot, group *int) (string, error) {
	windows, err := Select(snap, group)
	if err != nil {
		return "", err
	}

	entries := make([]string, 0, len(windows))
	for _, w := range windows {
		entries = append(entries, r.entries.Render(w, r.titles.Format(w.Class, w.Title)))
	}
	return strings.Join(entries, r.separator), nil
}
