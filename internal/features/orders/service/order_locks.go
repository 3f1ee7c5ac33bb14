package service

import "sync"

// orderLocks serializes shipment workflow runs per order id, so a manual
// retry and a duplicate payment confirmation can never interleave steps
// against the same order. Entries are dropped once the last holder releases,
// so the table only carries ids with a run in flight.
type orderLocks struct {
	mu    sync.Mutex
	locks map[string]*orderLock
}

type orderLock struct {
	sync.Mutex
	refs int
}

func newOrderLocks() *orderLocks {
	return &orderLocks{locks: make(map[string]*orderLock)}
}

// acquire blocks until the caller holds the lock for an order id.
func (l *orderLocks) acquire(orderID string) *orderLock {
	l.mu.Lock()
	entry, ok := l.locks[orderID]
	if !ok {
		entry = &orderLock{}
		l.locks[orderID] = entry
	}
	entry.refs++
	l.mu.Unlock()

	entry.Lock()
	return entry
}

// release unlocks the entry and evicts it when nobody else is waiting.
func (l *orderLocks) release(orderID string, entry *orderLock) {
	entry.Unlock()

	l.mu.Lock()
	entry.refs--
	if entry.refs == 0 {
		delete(l.locks, orderID)
	}
	l.mu.Unlock()
}

// size reports the number of live entries.
func (l *orderLocks) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
