package session

import (
	"sync"
	"time"
)

// Locks serializes event handling per user so two messages from the same
// number cannot interleave session reads and writes. Different users run
// in parallel.
type Locks struct {
	mu    sync.Mutex
	locks map[string]*userLock
}

type userLock struct {
	mu       sync.Mutex
	lastUsed time.Time
}

func NewLocks() *Locks {
	return &Locks{locks: make(map[string]*userLock)}
}

// With executes fn while holding the per-user mutex.
func (l *Locks) With(userID string, fn func() error) error {
	l.mu.Lock()
	ul, ok := l.locks[userID]
	if !ok {
		ul = &userLock{}
		l.locks[userID] = ul
	}
	l.mu.Unlock()

	ul.mu.Lock()
	defer ul.mu.Unlock()

	ul.lastUsed = time.Now()
	return fn()
}

// Cleanup removes locks not used within maxAge to prevent memory leaks.
func (l *Locks) Cleanup(maxAge time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for userID, ul := range l.locks {
		if now.Sub(ul.lastUsed) > maxAge {
			delete(l.locks, userID)
		}
	}
}
