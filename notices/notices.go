// Package notices keeps the transient messages shown in the console's alert area.
package notices

import (
	"sync"
	"time"

	"go-url-admin/types"
)

// DefaultTTL is how long a notice stays visible.
const DefaultTTL = 5 * time.Second

// Board is a thread-safe list of notices that expire after a fixed TTL.
type Board struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	nextID  uint64
	notices []types.Notice
}

// NewBoard creates a Board whose notices live for ttl.
func NewBoard(ttl time.Duration) *Board {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Board{ttl: ttl, now: time.Now}
}

// SetClock replaces the time source. Used by tests.
func (b *Board) SetClock(now func() time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.now = now
}

// Push adds a notice and returns it.
func (b *Board) Push(kind types.NoticeKind, message string) types.Notice {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	n := types.Notice{
		ID:        b.nextID,
		Kind:      kind,
		Message:   message,
		ExpiresAt: b.now().Add(b.ttl),
	}
	b.notices = append(b.pruneLocked(), n)
	return n
}

// Success is shorthand for Push(types.NoticeSuccess, message).
func (b *Board) Success(message string) types.Notice {
	return b.Push(types.NoticeSuccess, message)
}

// Error is shorthand for Push(types.NoticeError, message).
func (b *Board) Error(message string) types.Notice {
	return b.Push(types.NoticeError, message)
}

// Active returns the notices that have not expired, oldest first.
func (b *Board) Active() []types.Notice {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.notices = b.pruneLocked()
	out := make([]types.Notice, len(b.notices))
	copy(out, b.notices)
	return out
}

// Mark returns the id of the newest notice pushed so far.
func (b *Board) Mark() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.nextID
}

// Since returns the active notices pushed after mark, oldest first.
func (b *Board) Since(mark uint64) []types.Notice {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.notices = b.pruneLocked()
	var out []types.Notice
	for _, n := range b.notices {
		if n.ID > mark {
			out = append(out, n)
		}
	}
	return out
}

// TTL returns the lifetime of a notice.
func (b *Board) TTL() time.Duration {
	return b.ttl
}

func (b *Board) pruneLocked() []types.Notice {
	now := b.now()
	kept := b.notices[:0]
	for _, n := range b.notices {
		if now.Before(n.ExpiresAt) {
			kept = append(kept, n)
		}
	}
	return kept
}
