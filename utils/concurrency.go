package utils

import (
	"sync"
	"time"
)

// TargetLocks stops two moderators from acting on the same member at once. A lock
// older than ttl is considered abandoned.
type TargetLocks struct {
	mu    sync.Mutex
	locks map[string]time.Time
	ttl   time.Duration
}

func NewTargetLocks(ttl time.Duration) *TargetLocks {
	return &TargetLocks{locks: make(map[string]time.Time), ttl: ttl}
}

// TryLock takes the lock for guildID/userID. The returned release func must be called
// when ok is true.
func (l *TargetLocks) TryLock(guildID, userID string) (release func(), ok bool) {
	key := guildID + "/" + userID

	l.mu.Lock()
	defer l.mu.Unlock()

	if taken, exists := l.locks[key]; exists && time.Since(taken) < l.ttl {
		return nil, false
	}
	now := time.Now()
	l.locks[key] = now

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.locks[key].Equal(now) {
			delete(l.locks, key)
		}
	}, true
}
