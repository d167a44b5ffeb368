package scanner

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu    sync.Mutex
	codes []string
}

func (r *recorder) commit(code string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes = append(r.codes, code)
}

func (r *recorder) snapshot() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.codes...)
}

func (r *recorder) waitFor(t *testing.T, n int) []string {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if codes := r.snapshot(); len(codes) >= n {
			return codes
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("timed out waiting for %d committed codes, have %v", n, r.snapshot())
	return nil
}

func TestDebouncer_CommitsAfterIdle(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(30*time.Millisecond, rec.commit)

	d.Append("890")
	d.Append("1234")
	d.Append("567890")

	codes := rec.waitFor(t, 1)
	assert.Equal(t, []string{"8901234567890"}, codes)
}

func TestDebouncer_GapSplitsCodes(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(30*time.Millisecond, rec.commit)

	d.Append("1111")
	rec.waitFor(t, 1)
	d.Append("2222")

	codes := rec.waitFor(t, 2)
	assert.Equal(t, []string{"1111", "2222"}, codes)
}

func TestDebouncer_FlushCommitsImmediately(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(time.Hour, rec.commit)

	d.Append("  4444\n")
	d.Flush()

	require.Equal(t, []string{"4444"}, rec.snapshot())

	// Nothing left to commit.
	d.Flush()
	assert.Equal(t, []string{"4444"}, rec.snapshot())
}

func TestDebouncer_StopDiscardsBuffer(t *testing.T) {
	rec := &recorder{}
	d := NewDebouncer(20*time.Millisecond, rec.commit)

	d.Append("5555")
	d.Stop()

	time.Sleep(80 * time.Millisecond)
	assert.Empty(t, rec.snapshot())
}
