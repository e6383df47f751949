package window

import (
	"context"
	"errors"
)

// ErrConnectionLost is returned when the window manager event stream ends
var ErrConnectionLost = errors.New("window manager connection lost")

// Window is a read-only view of one leaf window
type Window struct {
	ID        int64  `json:"id"`
	Class     string `json:"class"`
	Title     string `json:"title"` // empty when the window has no title
	Workspace string `json:"workspace"`
	Focused   bool   `json:"focused"`
	Urgent    bool   `json:"urgent"`
}

// Workspace is a named container that may be visible on an output
type Workspace struct {
	Name    string `json:"name"`
	Visible bool   `json:"visible"`
}

// Snapshot is the window tree and workspace list read for one render pass
type Snapshot struct {
	Windows    []Window
	Workspaces []Workspace
}

// VisibleWorkspaces returns the set of visible workspace names
func (s *Snapshot) VisibleWorkspaces() map[string]bool {
	visible := make(map[string]bool, len(s.Workspaces))
	for _, ws := range s.Workspaces {
		if ws.Visible {
			visible[ws.Name] = true
		}
	}
	return visible
}

// EventKind classifies window manager notifications
type EventKind string

const (
	EventWorkspaceFocus EventKind = "workspace::focus"
	EventWindowFocus    EventKind = "window::focus"
	EventWindow         EventKind = "window"
	EventOther          EventKind = "other"
)

// Event is a window manager notification. Only its kind is inspected.
type Event struct {
	Kind   EventKind
	Change string
}

// Relevant reports whether the event should trigger a render pass
func (e Event) Relevant() bool {
	switch e.Kind {
	case EventWorkspaceFocus, EventWindowFocus, EventWindow:
		return true
	default:
		return false
	}
}

// EventStream delivers window manager events in order
type EventStream interface {
	// Next blocks until the next event arrives. It returns false once the
	// stream has ended, after which Err reports why.
	Next() bool

	// Event returns the event read by the last successful Next
	Event() Event

	// Err returns the error that ended the stream, nil if it was closed
	Err() error

	// Close unblocks Next and releases the subscription
	Close() error
}

// Backend defines the interface for window manager backends
type Backend interface {
	// Snapshot reads the current window tree and workspaces
	Snapshot(ctx context.Context) (*Snapshot, error)

	// Subscribe registers for workspace and window events
	Subscribe(ctx context.Context) (EventStream, error)

	// Name returns the backend name (e.g., "i3")
	Name() string
}
