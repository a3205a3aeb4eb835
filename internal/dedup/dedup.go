package dedup

import (
	"sync"
	"time"
)

const (
	DefaultTTL     = 5 * time.Minute
	DefaultMaxSize = 1000
)

type entry struct {
	id   string
	seen time.Time
}

// Deduplicator suppresses repeated signal ids inside a bounded window.
// Entries age out after ttl, oldest-first, and capacity pressure evicts from
// the front even before expiry, so suppression is best-effort only.
type Deduplicator struct {
	mu      sync.Mutex
	queue   []entry
	index   map[string]struct{}
	ttl     time.Duration
	maxSize int
	now     func() time.Time
}

// New allocates a deduplicator. Non-positive arguments fall back to the
// defaults.
func New(ttl time.Duration, maxSize int) *Deduplicator {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Deduplicator{
		index:   make(map[string]struct{}, maxSize),
		ttl:     ttl,
		maxSize: maxSize,
		now:     time.Now,
	}
}

// Observe reports whether id was already seen inside the window. A new id is
// recorded with the current time; a duplicate leaves the cache untouched.
func (d *Deduplicator) Observe(id string) bool {
	now := d.now()

	d.mu.Lock()
	defer d.mu.Unlock()

	for len(d.queue) > 0 && now.Sub(d.queue[0].seen) > d.ttl {
		d.popFront()
	}

	if _, ok := d.index[id]; ok {
		return true
	}

	d.queue = append(d.queue, entry{id: id, seen: now})
	d.index[id] = struct{}{}

	for len(d.queue) > d.maxSize {
		d.popFront()
	}

	return false
}

// Len returns the number of resident entries.
func (d *Deduplicator) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.queue)
}

func (d *Deduplicator) popFront() {
	delete(d.index, d.queue[0].id)
	d.queue[0] = entry{}
	d.queue = d.queue[1:]
}
