package window

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/bryanchriswhite/i3windows/internal/logger"
	"go.i3wm.org/i3/v4"
)

// I3Backend implements the Backend interface over the i3 IPC socket
type I3Backend struct{}

// NewI3Backend creates a new i3 backend
func NewI3Backend() *I3Backend {
	installSocketPathHook()
	return &I3Backend{}
}

// Name returns the backend name
func (b *I3Backend) Name() string {
	return "i3"
}

// Snapshot reads the tree and then the workspaces. The two requests are not
// atomic; a workspace switch in between shows up as a window set that is
// corrected by the event that follows.
func (b *I3Backend) Snapshot(ctx context.Context) (*Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tree, err := i3.GetTree()
	if err != nil {
		return nil, fmt.Errorf("failed to get tree: %w", err)
	}

	workspaces, err := i3.GetWorkspaces()
	if err != nil {
		return nil, fmt.Errorf("failed to get workspaces: %w", err)
	}

	snap := &Snapshot{
		Windows:    leaves(tree.Root),
		Workspaces: make([]Workspace, 0, len(workspaces)),
	}
	for _, ws := range workspaces {
		snap.Workspaces = append(snap.Workspaces, Workspace{
			Name:    ws.Name,
			Visible: ws.Visible,
		})
	}

	logger.WithComponent("i3").Debug().
		Int("windows", len(snap.Windows)).
		Int("workspaces", len(snap.Workspaces)).
		Msg("Snapshot read")

	return snap, nil
}

// Subscribe registers for workspace and window events
func (b *I3Backend) Subscribe(ctx context.Context) (EventStream, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	recv := i3.Subscribe(i3.WorkspaceEventType, i3.WindowEventType)
	return &i3Stream{recv: recv}, nil
}

type queued struct {
	node       *i3.Node
	workspace  string
	parentType i3.NodeType
}

// leaves walks the tree breadth first, tiling children before floating ones,
// and returns every con without children that is not docked.
func leaves(root *i3.Node) []Window {
	if root == nil {
		return nil
	}

	var out []Window
	queue := make([]queued, 0, len(root.Nodes)+len(root.FloatingNodes))
	enqueue := func(parent *i3.Node, workspace string) {
		for _, child := range parent.Nodes {
			queue = append(queue, queued{node: child, workspace: workspace, parentType: parent.Type})
		}
		for _, child := range parent.FloatingNodes {
			queue = append(queue, queued{node: child, workspace: workspace, parentType: parent.Type})
		}
	}
	enqueue(root, "")

	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		n := item.node
		workspace := item.workspace
		if n.Type == i3.WorkspaceNode {
			workspace = n.Name
		}

		if len(n.Nodes) == 0 && n.Type == i3.Con && item.parentType != i3.DockareaNode {
			out = append(out, Window{
				ID:        int64(n.ID),
				Class:     n.WindowProperties.Class,
				Title:     n.Name,
				Workspace: workspace,
				Focused:   n.Focused,
				Urgent:    n.Urgent,
			})
		}

		enqueue(n, workspace)
	}

	return out
}

// i3Stream adapts an i3 EventReceiver to EventStream
type i3Stream struct {
	recv   *i3.EventReceiver
	event  Event
	err    error
	closed atomic.Bool
}

func (s *i3Stream) Next() bool {
	if s.recv.Next() {
		s.event = translateEvent(s.recv.Event())
		return true
	}
	if s.closed.Load() {
		return false
	}

	// after Next fails, Close reports the receiver's first error
	if err := s.recv.Close(); err != nil {
		s.err = fmt.Errorf("%w: %v", ErrConnectionLost, err)
	} else {
		s.err = ErrConnectionLost
	}
	return false
}

func (s *i3Stream) Event() Event {
	return s.event
}

func (s *i3Stream) Err() error {
	return s.err
}

func (s *i3Stream) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	return s.recv.Close()
}

func translateEvent(ev i3.Event) Event {
	switch e := ev.(type) {
	case *i3.WorkspaceEvent:
		if e.Change == "focus" {
			return Event{Kind: EventWorkspaceFocus, Change: e.Change}
		}
		return Event{Kind: EventOther, Change: e.Change}
	case *i3.WindowEvent:
		if e.Change == "focus" {
			return Event{Kind: EventWindowFocus, Change: e.Change}
		}
		return Event{Kind: EventWindow, Change: e.Change}
	default:
		return Event{Kind: EventOther}
	}
}
