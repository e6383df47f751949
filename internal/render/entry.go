package render

import (
	"strconv"

	"github.com/bryanchriswhite/i3windows/internal/icon"
	"github.com/bryanchriswhite/i3windows/internal/window"
)

// Palette holds the entry colors
type Palette struct {
	Accent            string // underline of the focused window
	Alert             string // underline of urgent windows
	Neutral           string
	FocusedForeground string
}

// IconPrefix prepends a glyph rendered in a dedicated bar font
type IconPrefix struct {
	Resolver *icon.Resolver
	Font     int // 1-based lemonbar font index
}

// EntryRenderer composes the markup segment of one window
type EntryRenderer struct {
	palette      Palette
	clickCommand string
	icons        *IconPrefix
}

// NewEntryRenderer creates an entry renderer. icons may be nil.
func NewEntryRenderer(palette Palette, clickCommand string, icons *IconPrefix) *EntryRenderer {
	return &EntryRenderer{
		palette:      palette,
		clickCommand: clickCommand,
		icons:        icons,
	}
}

// UnderlineColor picks the underline by precedence: focused, urgent, neutral
func (r *EntryRenderer) UnderlineColor(w window.Window) string {
	switch {
	case w.Focused:
		return r.palette.Accent
	case w.Urgent:
		return r.palette.Alert
	default:
		return r.palette.Neutral
	}
}

// Render returns the segment for w showing the already formatted title
func (r *EntryRenderer) Render(w window.Window, title string) string {
	label := title
	if r.icons != nil {
		glyph := r.icons.Resolver.Resolve(icon.Attrs{
			"class": w.Class,
			"name":  w.Title,
		})
		label = font(r.icons.Font, glyph) + label
	}

	if w.Focused {
		label = foreground(r.palette.FocusedForeground, label)
	}

	label = clickLeft(r.clickCommand+" "+strconv.FormatInt(w.ID, 10), label)

	return underline(r.UnderlineColor(w), " "+label+" ")
}
