package store

import "sync"

// ChannelLocker serializes load-mutate-save cycles per channel so two
// concurrent ingestions of the same channel cannot clobber each other's
// writes. Locks are created lazily and never released back; the set of
// tracked channels is small.
type ChannelLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewChannelLocker returns an empty locker.
func NewChannelLocker() *ChannelLocker {
	return &ChannelLocker{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the lock for channelID and returns the unlock function.
func (l *ChannelLocker) Lock(channelID string) func() {
	l.mu.Lock()
	m, ok := l.locks[channelID]
	if !ok {
		m = &sync.Mutex{}
		l.locks[channelID] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
