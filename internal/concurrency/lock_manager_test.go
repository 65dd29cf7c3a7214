package concurrency

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGetLockReturnsSameMutexPerKey(t *testing.T) {
	lm := NewLockManager[int64]()
	assert.Same(t, lm.GetLock(1), lm.GetLock(1))
	assert.NotSame(t, lm.GetLock(1), lm.GetLock(2))
}

func TestWithLockSerializesSameKey(t *testing.T) {
	lm := NewLockManager[int64]()
	var inside, maxInside int32

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			lm.WithLock(7, func() {
				n := atomic.AddInt32(&inside, 1)
				for {
					m := atomic.LoadInt32(&maxInside)
					if n <= m || atomic.CompareAndSwapInt32(&maxInside, m, n) {
						break
					}
				}
				time.Sleep(time.Millisecond)
				atomic.AddInt32(&inside, -1)
			})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
}

func TestWithLockDoesNotBlockOtherKeys(t *testing.T) {
	lm := NewLockManager[int64]()
	held := lm.GetLock(1)
	held.Lock()
	defer held.Unlock()

	done := make(chan struct{})
	go lm.WithLock(2, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock for key 2 blocked on key 1")
	}
}
