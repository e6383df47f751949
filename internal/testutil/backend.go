// Package testutil provides an in-memory window backend for tests.
package testutil

import (
	"context"
	"sync"

	"github.com/bryanchriswhite/i3windows/internal/window"
)

// FakeStream is an EventStream fed from a channel. Closing Events ends the
// stream with EndErr, as a lost connection would.
type FakeStream struct {
	Events chan window.Event
	EndErr error

	event     window.Event
	err       error
	done      chan struct{}
	closeOnce sync.Once
}

// NewFakeStream creates a stream with a buffered event channel
func NewFakeStream() *FakeStream {
	return &FakeStream{
		Events: make(chan window.Event, 16),
		done:   make(chan struct{}),
	}
}

func (s *FakeStream) Next() bool {
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case ev, ok := <-s.Events:
		if !ok {
			s.err = s.EndErr
			return false
		}
		s.event = ev
		return true
	case <-s.done:
		return false
	}
}

func (s *FakeStream) Event() window.Event {
	return s.event
}

func (s *FakeStream) Err() error {
	return s.err
}

func (s *FakeStream) Close() error {
	s.closeOnce.Do(func() { close(s.done) })
	return nil
}

// Closed reports whether Close was called
func (s *FakeStream) Closed() bool {
	select {
	case <-s.done:
		return true
	default:
		return false
	}
}

// FakeBackend serves a replaceable snapshot and a FakeStream
type FakeBackend struct {
	mu           sync.Mutex
	snapshot     *window.Snapshot
	snapshotErr  error
	snapshots    int
	Stream       *FakeStream
	SubscribeErr error
}

// NewFakeBackend creates a backend serving snap
func NewFakeBackend(snap *window.Snapshot) *FakeBackend {
	return &FakeBackend{
		snapshot: snap,
		Stream:   NewFakeStream(),
	}
}

// SetSnapshot replaces the state returned by later passes
func (b *FakeBackend) SetSnapshot(snap *window.Snapshot, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snapshot = snap
	b.snapshotErr = err
}

// Snapshots returns how many snapshots were taken
func (b *FakeBackend) Snapshots() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.snapshots
}

func (b *FakeBackend) Snapshot(ctx context.Context) (*window.Snapshot, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.snapshots++
	if b.snapshotErr != nil {
		return nil, b.snapshotErr
	}
	return b.snapshot, nil
}

func (b *FakeBackend) Subscribe(ctx context.Context) (window.EventStream, error) {
	if b.SubscribeErr != nil {
		return nil, b.SubscribeErr
	}
	return b.Stream, nil
}

func (b *FakeBackend) Name() string {
	return "fake"
}
