// Package keymutex provides per-key exclusive locks with a bounded wait.
// Locks for different keys are fully independent; a lock that cannot be
// acquired before the context expires fails instead of blocking forever.
package keymutex

import (
	"context"
	"sync"
)

type entry struct {
	sem  chan struct{}
	refs int
}

// KeyMutex is a set of exclusive locks addressed by string key. The zero
// value is not usable; call New.
type KeyMutex struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// New creates an empty KeyMutex.
func New() *KeyMutex {
	return &KeyMutex{entries: make(map[string]*entry)}
}

// Lock acquires the exclusive lock for key, waiting until acquisition or
// until ctx is done, whichever comes first. On ctx expiry the ctx error is
// returned and the lock is not held.
func (m *KeyMutex) Lock(ctx context.Context, key string) error {
	m.mu.Lock()
	e, ok := m.entries[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		m.entries[key] = e
	}
	e.refs++
	m.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		m.release(key, e)
		return ctx.Err()
	}
}

// Unlock releases the lock for key. Unlocking a key that is not held panics,
// same as sync.Mutex.
func (m *KeyMutex) Unlock(key string) {
	m.mu.Lock()
	e, ok := m.entries[key]
	m.mu.Unlock()
	if !ok {
		panic("keymutex: unlock of unlocked key " + key)
	}

	select {
	case <-e.sem:
	default:
		panic("keymutex: unlock of unlocked key " + key)
	}

	m.release(key, e)
}

// release drops one reference and deletes the entry once nobody holds or
// waits on it, so the map does not grow with one entry per key forever.
func (m *KeyMutex) release(key string, e *entry) {
	m.mu.Lock()
	e.refs--
	if e.refs == 0 {
		delete(m.entries, key)
	}
	m.mu.Unlock()
}
