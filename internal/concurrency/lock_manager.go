package concurrency

import (
	"sync"
)

// LockManager hands out one mutex per key. Locks are created on first use and kept for the
// life of the manager, which bounds memory by the number of distinct keys seen.
type LockManager[K comparable] struct {
	locks sync.Map
}

// NewLockManager creates a new LockManager
func NewLockManager[K comparable]() *LockManager[K] {
	return &LockManager[K]{}
}

// GetLock returns the mutex for the given key
func (lm *LockManager[K]) GetLock(key K) *sync.Mutex {
	if lock, ok := lm.locks.Load(key); ok {
		return lock.(*sync.Mutex)
	}
	lock, _ := lm.locks.LoadOrStore(key, &sync.Mutex{})
	return lock.(*sync.Mutex)
}

// WithLock runs fn while holding the key's mutex.
func (lm *LockManager[K]) WithLock(key K, fn func()) {
	mu := lm.GetLock(key)
	mu.Lock()
	defer mu.Unlock()
	fn()
}
