package obs

import (
	"sync/atomic"
	"time"
)

// Metrics collects lightweight counters and latency stats for the signal
// pipeline.
type Metrics struct {
	received      uint64
	rejected      uint64
	duplicates    uint64
	badSymbols    uint64
	forwarded     uint64
	forwardFailed uint64

	forwardLatency LatencyStats
}

// LatencyStats aggregates duration samples in nanoseconds.
type LatencyStats struct {
	count uint64
	sum   uint64
	min   uint64
	max   uint64
}

// LatencySnapshot is a point-in-time view of latency stats.
type LatencySnapshot struct {
	Count uint64
	Min   time.Duration
	Max   time.Duration
	Avg   time.Duration
}

// Snapshot captures the current metrics values.
type Snapshot struct {
	Received       uint64
	Rejected       uint64
	Duplicates     uint64
	BadSymbols     uint64
	Forwarded      uint64
	ForwardFailed  uint64
	ForwardLatency LatencySnapshot
}

// NewMetrics allocates a metrics container.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// IncReceived counts an accepted request hitting the pipeline.
func (m *Metrics) IncReceived() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.received, 1)
}

// IncRejected counts a request rejected at the validation boundary.
func (m *Metrics) IncRejected() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.rejected, 1)
}

// IncDuplicate counts a suppressed duplicate signal.
func (m *Metrics) IncDuplicate() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.duplicates, 1)
}

// IncBadSymbol counts a signal dropped by symbol normalization.
func (m *Metrics) IncBadSymbol() {
	if m == nil {
		return
	}
	atomic.AddUint64(&m.badSymbols, 1)
}

// ObserveForward records the outcome and latency of a forwarding call.
func (m *Metrics) ObserveForward(d time.Duration, success bool) {
	if m == nil {
		return
	}
	if success {
		atomic.AddUint64(&m.forwarded, 1)
	} else {
		atomic.AddUint64(&m.forwardFailed, 1)
	}
	m.forwardLatency.Observe(d)
}

// Snapshot captures the current counter values.
func (m *Metrics) Snapshot() Snapshot {
	if m == nil {
		return Snapshot{}
	}
	return Snapshot{
		Received:       atomic.LoadUint64(&m.received),
		Rejected:       atomic.LoadUint64(&m.rejected),
		Duplicates:     atomic.LoadUint64(&m.duplicates),
		BadSymbols:     atomic.LoadUint64(&m.badSymbols),
		Forwarded:      atomic.LoadUint64(&m.forwarded),
		ForwardFailed:  atomic.LoadUint64(&m.forwardFailed),
		ForwardLatency: m.forwardLatency.Snapshot(),
	}
}

// Observe folds one duration sample into the stats.
func (s *LatencyStats) Observe(d time.Duration) {
	if s == nil || d < 0 {
		return
	}
	v := uint64(d)
	atomic.AddUint64(&s.count, 1)
	atomic.AddUint64(&s.sum, v)
	for {
		cur := atomic.LoadUint64(&s.min)
		if cur != 0 && cur <= v {
			break
		}
		if atomic.CompareAndSwapUint64(&s.min, cur, v) {
			break
		}
	}
	for {
		cur := atomic.LoadUint64(&s.max)
		if cur >= v {
			break
		}
		if atomic.CompareAndSwapUint64(&s.max, cur, v) {
			break
		}
	}
}

// Snapshot returns a point-in-time view of the stats.
func (s *LatencyStats) Snapshot() LatencySnapshot {
	if s == nil {
		return LatencySnapshot{}
	}
	count := atomic.LoadUint64(&s.count)
	sum := atomic.LoadUint64(&s.sum)
	snap := LatencySnapshot{
		Count: count,
		Min:   time.Duration(atomic.LoadUint64(&s.min)),
		Max:   time.Duration(atomic.LoadUint64(&s.max)),
	}
	if count > 0 {
		snap.Avg = time.Duration(sum / count)
	}
	return snap
}
