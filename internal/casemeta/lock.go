package casemeta

import "sync"

// caseLocks serialises work per case id.
type caseLocks struct {
	mu    sync.Mutex
	locks map[int64]*caseLock
}

type caseLock struct {
	mu   sync.Mutex
	refs int
}

// lock blocks until the case is free and returns its unlock func.
func (c *caseLocks) lock(caseID int64) func() {
	c.mu.Lock()
	if c.locks == nil {
		c.locks = make(map[int64]*caseLock)
	}
	l, ok := c.locks[caseID]
	if !ok {
		l = &caseLock{}
		c.locks[caseID] = l
	}
	l.refs++
	c.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		c.mu.Lock()
		l.refs--
		if l.refs == 0 {
			delete(c.locks, caseID)
		}
		c.mu.Unlock()
	}
}
