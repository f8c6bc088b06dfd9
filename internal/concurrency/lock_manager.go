// Package concurrency provides in-process keyed locks. They order work for a
// single key inside one process only; cross-process ordering is left to the
// database.
package concurrency

import (
	"context"
	"sync"
)

// keyLock is a one-slot semaphore shared by everyone holding or waiting on
// the same key. refs counts both.
type keyLock struct {
	sem  chan struct{}
	refs int
}

// LockManager hands out one lock per key, e.g. per user ID. Entries are
// dropped once nobody holds or waits on them, so memory tracks active keys
// rather than every key ever seen.
type LockManager struct {
	mu    sync.Mutex
	locks map[string]*keyLock
}

// NewLockManager creates a new LockManager
func NewLockManager() *LockManager {
	return &LockManager{locks: make(map[string]*keyLock)}
}

func (lm *LockManager) acquireRef(key string) *keyLock {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	l, ok := lm.locks[key]
	if !ok {
		l = &keyLock{sem: make(chan struct{}, 1)}
		lm.locks[key] = l
	}
	l.refs++
	return l
}

func (lm *LockManager) releaseRef(key string, l *keyLock) {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	l.refs--
	if l.refs == 0 {
		delete(lm.locks, key)
	}
}

// Lock blocks until key is free and returns its unlock function
func (lm *LockManager) Lock(key string) func() {
	unlock, _ := lm.LockContext(context.Background(), key)
	return unlock
}

// LockContext is Lock that gives up when ctx ends, returning ctx.Err()
func (lm *LockManager) LockContext(ctx context.Context, key string) (func(), error) {
	l := lm.acquireRef(key)
	select {
	case l.sem <- struct{}{}:
	case <-ctx.Done():
		lm.releaseRef(key, l)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-l.sem
			lm.releaseRef(key, l)
		})
	}, nil
}

// Len reports how many keys are currently held or waited on
func (lm *LockManager) Len() int {
	lm.mu.Lock()
	defer lm.mu.Unlock()
	return len(lm.locks)
}
