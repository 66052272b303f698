package power

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHistory(t *testing.T) {
	tests := []struct {
		name     string
		size     int
		expected int
	}{
		{"default size", 0, DefaultHistorySize},
		{"negative size", -1, DefaultHistorySize},
		{"custom size", 100, 100},
		{"small size", 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistory(tt.size)
			assert.NotNil(t, h)
			assert.Equal(t, tt.expected, h.Cap())
			assert.Equal(t, 0, h.Len())
		})
	}
}

func TestHistoryPush(t *testing.T) {
	h := NewHistory(10)
	now := time.Now()

	for i := 0; i < 5; i++ {
		h.Push(now.Add(time.Duration(i)*time.Second), float64(i*10))
	}

	assert.Equal(t, 5, h.Len())
	assert.Equal(t, []float64{0, 10, 20, 30, 40}, h.Values(5))
}

func TestHistoryRingBufferOverflow(t *testing.T) {
	h := NewHistory(5)
	now := time.Now()

	// Push more values than the ring holds
	for i := 0; i < 8; i++ {
		h.Push(now.Add(time.Duration(i)*time.Second), float64(i))
	}

	// Only the last 5 survive, oldest first
	assert.Equal(t, 5, h.Len())
	assert.Equal(t, []float64{3, 4, 5, 6, 7}, h.Values(5))

	samples := h.Snapshot()
	require.Len(t, samples, 5)
	assert.Equal(t, 3.0, samples[0].Value)
	assert.Equal(t, 7.0, samples[4].Value)
	assert.True(t, samples[0].At.Before(samples[4].At))
}

func TestHistoryValues(t *testing.T) {
	h := NewHistory(10)
	now := time.Now()
	for i := 0; i < 4; i++ {
		h.Push(now, float64(i))
	}

	tests := []struct {
		name     string
		count    int
		expected []float64
	}{
		{"exact count", 4, []float64{0, 1, 2, 3}},
		{"fewer than stored", 2, []float64{2, 3}},
		{"more than stored", 10, []float64{0, 1, 2, 3}},
		{"zero count", 0, nil},
		{"negative count", -1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, h.Values(tt.count))
		})
	}
}

func TestHistoryEmpty(t *testing.T) {
	h := NewHistory(10)

	assert.Nil(t, h.Snapshot())
	assert.Nil(t, h.Values(5))

	_, ok := h.Latest()
	assert.False(t, ok)
}

func TestHistoryLatest(t *testing.T) {
	h := NewHistory(3)
	now := time.Now()

	h.Push(now, 1.5)
	h.Push(now.Add(time.Second), 2.5)

	latest, ok := h.Latest()
	require.True(t, ok)
	assert.Equal(t, 2.5, latest.Value)

	// Wraps correctly after overflow
	h.Push(now.Add(2*time.Second), 3.5)
	h.Push(now.Add(3*time.Second), 4.5)
	latest, ok = h.Latest()
	require.True(t, ok)
	assert.Equal(t, 4.5, latest.Value)
}

func TestHistoryConcurrentAccess(t *testing.T) {
	h := NewHistory(50)
	now := time.Now()

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			h.Push(now, float64(i))
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			_ = h.Snapshot()
			_ = h.Values(25)
			_, _ = h.Latest()
		}
	}()

	wg.Wait()
	assert.Equal(t, 50, h.Len())
}
