package dedup

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserve(t *testing.T) {
	d := New(time.Minute, 10)

	assert.False(t, d.Observe("a"))
	assert.True(t, d.Observe("a"))
	assert.False(t, d.Observe("b"))
	assert.Equal(t, 2, d.Len())
}

func TestObserveTTL(t *testing.T) {
	now := time.Now()
	d := New(time.Second, 10)
	d.now = func() time.Time { return now }

	assert.False(t, d.Observe("a"))
	assert.True(t, d.Observe("a"))

	now = now.Add(1500 * time.Millisecond)
	assert.False(t, d.Observe("a"), "expired entry should read as new")
	assert.Equal(t, 1, d.Len())
}

func TestObserveCapacity(t *testing.T) {
	d := New(time.Minute, 2)

	assert.False(t, d.Observe("a"))
	assert.False(t, d.Observe("b"))
	assert.False(t, d.Observe("c"))
	assert.Equal(t, 2, d.Len())

	// "a" was evicted under capacity pressure, "c" is still resident.
	assert.False(t, d.Observe("a"))
	assert.True(t, d.Observe("c"))
}

func TestObserveConcurrentSameID(t *testing.T) {
	d := New(time.Minute, 100)

	const workers = 32
	var fresh uint64
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			if !d.Observe("same") {
				atomic.AddUint64(&fresh, 1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, uint64(1), fresh, "exactly one observer should see a new id")
}
