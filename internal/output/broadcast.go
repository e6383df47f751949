package output

import (
	"sync"
	"time"
)

// Line is a rendered line and the time it was emitted
type Line struct {
	Text       string    `json:"line"`
	RenderedAt time.Time `json:"rendered_at"`
}

// Broadcaster remembers the last line and forwards new lines to subscribers
type Broadcaster struct {
	mu        sync.RWMutex
	last      *Line
	listeners []chan Line
	now       func() time.Time
}

// NewBroadcaster creates an empty broadcaster
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		listeners: make([]chan Line, 0),
		now:       time.Now,
	}
}

// WriteLine records line and notifies subscribers. It never blocks.
func (b *Broadcaster) WriteLine(text string) error {
	line := Line{Text: text, RenderedAt: b.now()}

	b.mu.Lock()
	b.last = &line
	b.mu.Unlock()

	b.notifyListeners(line)
	return nil
}

// Name returns "broadcast"
func (b *Broadcaster) Name() string {
	return "broadcast"
}

// Last returns the most recent line, false before the first render
func (b *Broadcaster) Last() (Line, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.last == nil {
		return Line{}, false
	}
	return *b.last, true
}

// Subscribe adds a listener for new lines
func (b *Broadcaster) Subscribe() chan Line {
	ch := make(chan Line, 1)
	b.mu.Lock()
	b.listeners = append(b.listeners, ch)
	b.mu.Unlock()
	return ch
}

// Unsubscribe removes a listener and closes its channel
func (b *Broadcaster) Unsubscribe(ch chan Line) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, listener := range b.listeners {
		if listener == ch {
			b.listeners = append(b.listeners[:i], b.listeners[i+1:]...)
			close(ch)
			break
		}
	}
}

// notifyListeners hands line to every listener. A listener that has not
// consumed the previous line gets it replaced, so slow readers only ever
// see the newest state.
func (b *Broadcaster) notifyListeners(line Line) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for _, listener := range b.listeners {
		select {
		case listener <- line:
		default:
			select {
			case <-listener:
			default:
			}
			select {
			case listener <- line:
			default:
			}
		}
	}
}
