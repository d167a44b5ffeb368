// Package scanner buffers keystroke bursts from USB barcode scanners.
//
// Scanners type a code as a rapid run of characters. Input fragments are
// collected until the stream goes quiet, then the assembled code is
// committed in one piece.
package scanner

import (
	"strings"
	"sync"
	"time"
)

// DefaultIdle is the inactivity window that ends a scan burst.
const DefaultIdle = 500 * time.Millisecond

// Debouncer assembles scanner input and commits a complete code after
// an idle period. Safe for concurrent use.
type Debouncer struct {
	idle   time.Duration
	commit func(code string)

	mu    sync.Mutex
	buf   strings.Builder
	timer *time.Timer
}

// NewDebouncer returns a debouncer that calls commit with each
// assembled code. A non-positive idle falls back to DefaultIdle.
func NewDebouncer(idle time.Duration, commit func(code string)) *Debouncer {
	if idle <= 0 {
		idle = DefaultIdle
	}
	return &Debouncer{idle: idle, commit: commit}
}

// Append adds an input fragment and restarts the idle countdown.
func (d *Debouncer) Append(fragment string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.buf.WriteString(fragment)
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.idle, d.Flush)
}

// Flush commits the buffered code immediately. Whitespace around the
// code is dropped; an empty buffer commits nothing.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	code := strings.TrimSpace(d.buf.String())
	d.buf.Reset()
	d.mu.Unlock()

	if code == "" {
		return
	}
	d.commit(code)
}

// Stop discards any buffered input and cancels the pending commit.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	d.buf.Reset()
}
