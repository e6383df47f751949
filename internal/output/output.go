package output

import (
	"bufio"
	"fmt"
	"io"
	"sync"
)

// Output defines the interface for line sinks.
// This allows one render pass to feed several consumers:
// - the bar process on stdout
// - the HTTP/WebSocket mirror
type Output interface {
	// WriteLine delivers one rendered line. The line carries no newline.
	WriteLine(line string) error

	// Name returns a human-readable name for this output type
	Name() string
}

// LineWriter writes each line followed by a newline and flushes immediately
type LineWriter struct {
	mu   sync.Mutex
	w    *bufio.Writer
	name string
}

// NewLineWriter wraps w. name identifies the writer in logs.
func NewLineWriter(w io.Writer, name string) *LineWriter {
	return &LineWriter{
		w:    bufio.NewWriter(w),
		name: name,
	}
}

// WriteLine writes line and flushes so the bar sees it at once
func (l *LineWriter) WriteLine(line string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := l.w.WriteString(line); err != nil {
		return fmt.Errorf("write %s: %w", l.name, err)
	}
	if err := l.w.WriteByte('\n'); err != nil {
		return fmt.Errorf("write %s: %w", l.name, err)
	}
	if err := l.w.Flush(); err != nil {
		return fmt.Errorf("flush %s: %w", l.name, err)
	}
	return nil
}

// Name returns the writer name
func (l *LineWriter) Name() string {
	return l.name
}

// Multi writes each line to every output in order
type Multi []Output

// WriteLine stops at the first failing output
func (m Multi) WriteLine(line string) error {
	for _, out := range m {
		if err := out.WriteLine(line); err != nil {
			return err
		}
	}
	return nil
}

// Name returns "multi"
func (m Multi) Name() string {
	return "multi"
}
