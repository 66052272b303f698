package power

import (
	"sync"
	"time"
)

// DefaultHistorySize is the default number of samples retained for graphs.
const DefaultHistorySize = 120

// History is a fixed-capacity ring buffer of metric samples. The sampler
// is the only writer; the renderer reads concurrently via Snapshot, which
// returns a consistent copy taken under the lock.
type History struct {
	mu    sync.RWMutex
	data  []Sample
	head  int
	count int
	size  int
}

// NewHistory creates a history ring with the specified capacity.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{
		data: make([]Sample, size),
		size: size,
	}
}

// Push appends a sample, overwriting the oldest once the ring is full.
func (h *History) Push(at time.Time, value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.data[h.head] = Sample{At: at, Value: value}
	h.head = (h.head + 1) % h.size
	if h.count < h.size {
		h.count++
	}
}

// Snapshot returns all stored samples in insertion order, oldest first.
func (h *History) Snapshot() []Sample {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.count == 0 {
		return nil
	}

	out := make([]Sample, h.count)
	start := (h.head - h.count + h.size) % h.size
	for i := 0; i < h.count; i++ {
		out[i] = h.data[(start+i)%h.size]
	}
	return out
}

// Values returns the last count sample values oldest first, for graphing.
// Returns fewer values if not enough history has accumulated.
func (h *History) Values(count int) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if count <= 0 || h.count == 0 {
		return nil
	}
	if count > h.count {
		count = h.count
	}

	out := make([]float64, count)
	start := (h.head - count + h.size) % h.size
	for i := 0; i < count; i++ {
		out[i] = h.data[(start+i)%h.size].Value
	}
	return out
}

// Len returns the number of samples currently stored.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

// Cap returns the ring capacity.
func (h *History) Cap() int {
	return h.size
}

// Latest returns the most recent sample, or false if the ring is empty.
func (h *History) Latest() (Sample, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if h.count == 0 {
		return Sample{}, false
	}
	idx := (h.head - 1 + h.size) % h.size
	return h.data[idx], true
}
