package settlement

import "sync"

// storeLocks hands out one mutex per store id and forgets it once no
// caller holds or waits for it.
type storeLocks struct {
	mu    sync.Mutex
	locks map[uint]*storeLock
}

type storeLock struct {
	mu   sync.Mutex
	refs int
}

func newStoreLocks() *storeLocks {
	return &storeLocks{locks: make(map[uint]*storeLock)}
}

// Lock blocks until the caller owns storeID and returns the release func.
func (l *storeLocks) Lock(storeID uint) func() {
	l.mu.Lock()
	lock, ok := l.locks[storeID]
	if !ok {
		lock = &storeLock{}
		l.locks[storeID] = lock
	}
	lock.refs++
	l.mu.Unlock()

	lock.mu.Lock()

	return func() {
		lock.mu.Unlock()

		l.mu.Lock()
		lock.refs--
		if lock.refs == 0 {
			delete(l.locks, storeID)
		}
		l.mu.Unlock()
	}
}
