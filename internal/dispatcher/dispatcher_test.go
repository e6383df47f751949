package dispatcher

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/bryanchriswhite/i3windows/internal/config"
	"github.com/bryanchriswhite/i3windows/internal/render"
	"github.com/bryanchriswhite/i3windows/internal/testutil"
	"github.com/bryanchriswhite/i3windows/internal/window"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingOutput struct {
	mu    sync.Mutex
	lines []string
}

func (r *recordingOutput) WriteLine(line string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, line)
	return nil
}

func (r *recordingOutput) Name() string { return "recording" }

func (r *recordingOutput) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.lines...)
}

// titleRenderer renders the titles of selected windows joined by '|'
type titleRenderer struct{}

func (titleRenderer) Render(snap *window.Snapshot, group *int) (string, error) {
	windows, err := render.Select(snap, group)
	if err != nil {
		return "", err
	}
	line := ""
	for i, w := range windows {
		if i > 0 {
			line += "|"
		}
		line += w.Title
	}
	return line, nil
}

func snapshot(titles ...string) *window.Snapshot {
	snap := &window.Snapshot{Workspaces: []window.Workspace{{Name: "1", Visible: true}}}
	for i, title := range titles {
		snap.Windows = append(snap.Windows, window.Window{ID: int64(i + 1), Title: title, Workspace: "1"})
	}
	return snap
}

func runAsync(t *testing.T, d *Dispatcher, ctx context.Context) <-chan error {
	t.Helper()
	done := make(chan error, 1)
	go func() { done <- d.Run(ctx) }()
	return done
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	require.Eventually(t, cond, 2*time.Second, 5*time.Millisecond)
}

func TestRun_RendersAtStartup(t *testing.T) {
	backend := testutil.NewFakeBackend(snapshot("a"))
	out := &recordingOutput{}
	d := New(backend, titleRenderer{}, out, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(t, d, ctx)

	waitFor(t, func() bool { return len(out.Lines()) == 1 })
	assert.Equal(t, []string{"a"}, out.Lines())

	cancel()
	require.NoError(t, <-done)
	assert.True(t, backend.Stream.Closed())
}

func TestRun_OnePassPerRelevantEvent(t *testing.T) {
	backend := testutil.NewFakeBackend(snapshot("a"))
	out := &recordingOutput{}
	d := New(backend, titleRenderer{}, out, nil)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := runAsync(t, d, ctx)
	waitFor(t, func() bool { return len(out.Lines()) == 1 })

	backend.SetSnapshot(snapshot("a", "b"), nil)
	backend.Stream.Events <- window.Event{Kind: window.EventWindow, Change: "new"}
	backend.Stream.Events <- window.Event{Kind: window.EventOther, Change: "rename"}
	backend.Stream.Events <- window.Event{Kind: window.EventWorkspaceFocus, Change: "focus"}
	backend.Stream.Events <- window.Event{Kind: window.EventWindowFocus, Change: "focus"}

	waitFor(t, func() bool { return len(out.Lines()) == 4 })
	assert.Equal(t, []string{"a", "a|b", "a|b", "a|b"}, out.Lines())
	assert.Equal(t, 4, backend.Snapshots())

	cancel()
	require.NoError(t, <-done)
}

func TestRun_ConnectionLossIsFatal(t *testing.T) {
	backend := testutil.NewFakeBackend(snapshot("a"))
	backend.Stream.EndErr = window.ErrConnectionLost
	out := &recordingOutput{}
	d := New(backend, titleRenderer{}, out, nil)

	done := runAsync(t, d, context.Background())
	waitFor(t, func() bool { return len(out.Lines()) == 1 })
	close(backend.Stream.Events)

	err := <-done
	assert.ErrorIs(t, err, window.ErrConnectionLost)
}

func TestRun_StreamEndWithoutErrorIsStillFatal(t *testing.T) {
	backend := testutil.NewFakeBackend(snapshot())
	close(backend.Stream.Events)
	d := New(backend, titleRenderer{}, &recordingOutput{}, nil)

	err := d.Run(context.Background())
	assert.ErrorIs(t, err, window.ErrConnectionLost)
}

func TestRun_FailedPassWritesNothing(t *testing.T) {
	backend := testutil.NewFakeBackend(snapshot("a"))
	out := &recordingOutput{}
	d := New(backend, titleRenderer{}, out, nil)

	done := runAsync(t, d, context.Background())
	waitFor(t, func() bool { return len(out.Lines()) == 1 })

	queryErr := errors.New("tree query failed")
	backend.SetSnapshot(nil, queryErr)
	backend.Stream.Events <- window.Event{Kind: window.EventWindow, Change: "title"}

	err := <-done
	assert.ErrorIs(t, err, queryErr)
	assert.Equal(t, []string{"a"}, out.Lines())
}

func TestRun_GroupSelectorAppliedToEveryPass(t *testing.T) {
	snap := &window.Snapshot{
		Windows: []window.Window{
			{ID: 1, Title: "one", Workspace: "1"},
			{ID: 2, Title: "two", Workspace: "2"},
			{ID: 4, Title: "four", Workspace: "4"},
		},
		Workspaces: []window.Workspace{
			{Name: "1", Visible: true},
			{Name: "2", Visible: true},
			{Name: "4", Visible: true},
		},
	}
	backend := testutil.NewFakeBackend(snap)
	out := &recordingOutput{}
	group := 0
	d := New(backend, titleRenderer{}, out, &group)

	ctx, cancel := context.WithCancel(context.Background())
	done := runAsync(t, d, ctx)
	backend.Stream.Events <- window.Event{Kind: window.EventWindowFocus, Change: "focus"}

	waitFor(t, func() bool { return len(out.Lines()) == 2 })
	assert.Equal(t, []string{"one|four", "one|four"}, out.Lines())

	cancel()
	require.NoError(t, <-done)
}

func TestRun_NonNumericWorkspaceWithGroupIsFatal(t *testing.T) {
	snap := &window.Snapshot{
		Windows:    []window.Window{{ID: 1, Title: "mail", Workspace: "mail"}},
		Workspaces: []window.Workspace{{Name: "mail", Visible: true}},
	}
	backend := testutil.NewFakeBackend(snap)
	out := &recordingOutput{}
	group := 1
	d := New(backend, titleRenderer{}, out, &group)

	err := d.Run(context.Background())
	assert.ErrorIs(t, err, render.ErrNonNumericWorkspace)
	assert.Empty(t, out.Lines())
}

func TestRun_SubscribeError(t *testing.T) {
	backend := testutil.NewFakeBackend(snapshot())
	backend.SubscribeErr = errors.New("no socket")
	d := New(backend, titleRenderer{}, &recordingOutput{}, nil)

	err := d.Run(context.Background())
	assert.ErrorContains(t, err, "no socket")
}

func TestRun_EmptySnapshotStillPrinted(t *testing.T) {
	backend := testutil.NewFakeBackend(snapshot())
	out := &recordingOutput{}

	cfg := config.Default()
	cfg.ClickCommand = "/bin/click"
	r, err := render.NewFromConfig(cfg, render.Placeholders{})
	require.NoError(t, err)

	d := New(backend, r, out, nil)
	require.NoError(t, d.RenderOnce(context.Background()))
	assert.Equal(t, []string{""}, out.Lines())
}
