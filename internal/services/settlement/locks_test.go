package settlement

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStoreLocks_SerialisesSameStore(t *testing.T) {
	locks := newStoreLocks()

	var (
		wg      sync.WaitGroup
		active  int
		maxSeen int
		mu      sync.Mutex
	)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock(1)
			defer unlock()

			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Empty(t, locks.locks)
}

func TestStoreLocks_IndependentStores(t *testing.T) {
	locks := newStoreLocks()
	unlockA := locks.Lock(1)
	unlockB := locks.Lock(2)
	assert.Len(t, locks.locks, 2)
	unlockA()
	unlockB()
	assert.Empty(t, locks.locks)
}
