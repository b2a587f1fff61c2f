package services

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Operation names reported by Tracker.Busy.
const (
	OpShorten = "shorten"
	OpRefresh = "refresh"
	OpUpdate  = "update"
	OpDelete  = "delete"
)

// Tracker keeps the in-flight backend calls. Calls sharing a key supersede each
// other: starting a new one cancels the older one, which then reports
// ErrSuperseded instead of a notice.
type Tracker struct {
	mu       sync.Mutex
	inflight map[string]*Flight
	busy     map[string]int
}

// NewTracker creates an empty Tracker.
func NewTracker() *Tracker {
	return &Tracker{
		inflight: make(map[string]*Flight),
		busy:     make(map[string]int),
	}
}

// Flight is one tracked call.
type Flight struct {
	tracker *Tracker
	op      string
	key     string
	token   string
	cancel  context.CancelFunc
	once    sync.Once
}

// Begin registers a call of op under key and returns the context it must use.
// An empty key never supersedes anything.
func (t *Tracker) Begin(ctx context.Context, op, key string) (context.Context, *Flight) {
	ctx, cancel := context.WithCancel(ctx)
	f := &Flight{tracker: t, op: op, key: key, token: uuid.NewString(), cancel: cancel}

	t.mu.Lock()
	defer t.mu.Unlock()

	if key != "" {
		if prev, ok := t.inflight[key]; ok {
			prev.cancel()
		}
		t.inflight[key] = f
	}
	t.busy[op]++
	return ctx, f
}

// Superseded reports whether a newer call with the same key has started.
func (f *Flight) Superseded() bool {
	if f.key == "" {
		return false
	}
	f.tracker.mu.Lock()
	defer f.tracker.mu.Unlock()

	current, ok := f.tracker.inflight[f.key]
	return !ok || current.token != f.token
}

// Done releases the call. It is safe to call more than once.
func (f *Flight) Done() {
	f.once.Do(func() {
		f.tracker.mu.Lock()
		if current, ok := f.tracker.inflight[f.key]; ok && current.token == f.token {
			delete(f.tracker.inflight, f.key)
		}
		f.tracker.busy[f.op]--
		if f.tracker.busy[f.op] <= 0 {
			delete(f.tracker.busy, f.op)
		}
		f.tracker.mu.Unlock()
		f.cancel()
	})
}

// Busy reports whether any call of op is in flight.
func (t *Tracker) Busy(op string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.busy[op] > 0
}
