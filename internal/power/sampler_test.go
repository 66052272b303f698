package power

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voltlab/volt/internal/logger"
)

// stubSource returns canned payloads or errors per kind.
type stubSource struct {
	mu         sync.Mutex
	battery    string
	health     string
	batteryErr error
	healthErr  error
	calls      map[Kind]int
}

func newStubSource(battery, health string) *stubSource {
	return &stubSource{battery: battery, health: health, calls: make(map[Kind]int)}
}

func (s *stubSource) Fetch(ctx context.Context, kind Kind) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls[kind]++
	if kind == KindBatteryHealth {
		if s.healthErr != nil {
			return "", s.healthErr
		}
		return s.health, nil
	}
	if s.batteryErr != nil {
		return "", s.batteryErr
	}
	return s.battery, nil
}

func (s *stubSource) callCount(kind Kind) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[kind]
}

func (s *stubSource) setBatteryErr(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batteryErr = err
}

func (s *stubSource) setBattery(payload string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.battery = payload
}

func newTestSampler(src Source, slowEvery time.Duration) (*Sampler, *History) {
	watts := NewHistory(16)
	temps := NewHistory(16)
	modes := NewModeController(ModeBalanced)
	return NewSampler(src, modes, watts, temps, slowEvery, logger.Noop()), watts
}

func TestSamplerFirstCyclePublishes(t *testing.T) {
	src := newStubSource(ioregCharging, profilerOutput)
	s, watts := newTestSampler(src, 30*time.Second)

	assert.Nil(t, s.Latest())

	s.cycle(context.Background())

	snap := s.Latest()
	require.NotNil(t, snap)
	assert.False(t, snap.Stale)
	assert.False(t, snap.Unavailable)
	assert.Empty(t, snap.LastError)
	assert.False(t, snap.FastAt.IsZero())

	// Fast, charger, and slow tiers all merged into one reading
	require.NotNil(t, snap.Reading.Percent)
	assert.Equal(t, 87, *snap.Reading.Percent)
	require.NotNil(t, snap.Reading.ChargerWatts)
	assert.Equal(t, 96.0, *snap.Reading.ChargerWatts)
	require.NotNil(t, snap.Reading.Condition)
	assert.Equal(t, "Normal", *snap.Reading.Condition)
	assert.False(t, snap.SlowAt.IsZero())

	// Wattage landed in the graph history
	assert.Equal(t, 1, watts.Len())
}

func TestSamplerSlowTierCadence(t *testing.T) {
	src := newStubSource(ioregCharging, profilerOutput)
	s, _ := newTestSampler(src, time.Hour)
	ctx := context.Background()

	// Slow tier fires on the first cycle, then waits out its interval
	s.cycle(ctx)
	s.cycle(ctx)
	s.cycle(ctx)

	assert.Equal(t, 3, src.callCount(KindBatteryFast))
	assert.Equal(t, 1, src.callCount(KindBatteryHealth))
}

func TestSamplerFailureKeepsPriorValues(t *testing.T) {
	src := newStubSource(ioregCharging, profilerOutput)
	s, _ := newTestSampler(src, time.Hour)
	ctx := context.Background()

	s.cycle(ctx)

	src.setBatteryErr(errors.New("boom"))
	s.cycle(ctx)

	snap := s.Latest()
	require.NotNil(t, snap)
	assert.True(t, snap.Stale)
	assert.False(t, snap.Unavailable)
	assert.Contains(t, snap.LastError, "boom")

	// Values from the last good cycle survive
	require.NotNil(t, snap.Reading.Percent)
	assert.Equal(t, 87, *snap.Reading.Percent)
}

func TestSamplerUnavailableAfterThreeFailures(t *testing.T) {
	src := newStubSource(ioregCharging, profilerOutput)
	s, _ := newTestSampler(src, time.Hour)
	ctx := context.Background()

	s.cycle(ctx)

	src.setBatteryErr(errors.New("boom"))
	s.cycle(ctx)
	assert.False(t, s.Latest().Unavailable)
	s.cycle(ctx)
	assert.False(t, s.Latest().Unavailable)
	s.cycle(ctx)
	assert.True(t, s.Latest().Unavailable)

	// Recovery clears both flags in one cycle
	src.setBatteryErr(nil)
	s.cycle(ctx)
	snap := s.Latest()
	assert.False(t, snap.Stale)
	assert.False(t, snap.Unavailable)
	assert.Empty(t, snap.LastError)
}

func TestSamplerFastTierReplacesFields(t *testing.T) {
	src := newStubSource(ioregCharging, profilerOutput)
	s, _ := newTestSampler(src, time.Hour)
	ctx := context.Background()

	s.cycle(ctx)
	first := s.Latest()
	assert.Equal(t, StateCharging, first.Reading.State)
	require.NotNil(t, first.Reading.TimeRemainingMin)

	// Battery reaches a hold state: on AC, neither charging nor full,
	// and the controller withdraws its time estimate
	src.setBattery(`"ExternalConnected" = Yes
      "IsCharging" = No
      "FullyCharged" = No
      "CurrentCapacity" = 80
      "TimeRemaining" = 65535`)
	s.cycle(ctx)

	snap := s.Latest()
	assert.False(t, snap.Stale)
	assert.Equal(t, StateUnknown, snap.Reading.State)
	assert.Nil(t, snap.Reading.TimeRemainingMin)
	require.NotNil(t, snap.Reading.Percent)
	assert.Equal(t, 80, *snap.Reading.Percent)

	// Slow-tier fields still carry forward between health polls
	require.NotNil(t, snap.Reading.Condition)
	assert.Equal(t, "Normal", *snap.Reading.Condition)
}

func TestSamplerChargerDisconnectClearsRatings(t *testing.T) {
	src := newStubSource(ioregCharging, profilerOutput)
	s, _ := newTestSampler(src, time.Hour)
	ctx := context.Background()

	s.cycle(ctx)
	require.NotNil(t, s.Latest().Reading.ChargerWatts)

	src.setBattery(ioregDischarging)
	s.cycle(ctx)

	snap := s.Latest()
	require.NotNil(t, snap.Reading.ChargerPresent)
	assert.False(t, *snap.Reading.ChargerPresent)
	assert.Nil(t, snap.Reading.ChargerWatts)
	assert.Nil(t, snap.Reading.ChargerVoltageV)
	assert.Nil(t, snap.Reading.ChargerCurrentMA)
}

func TestSamplerParseFailureIsStale(t *testing.T) {
	src := newStubSource("garbage output", profilerOutput)
	s, _ := newTestSampler(src, time.Hour)

	s.cycle(context.Background())

	snap := s.Latest()
	require.NotNil(t, snap)
	assert.True(t, snap.Stale)
	assert.NotEmpty(t, snap.LastError)
}

func TestSamplerSlowTierFailureRetainsFields(t *testing.T) {
	src := newStubSource(ioregCharging, profilerOutput)
	s, _ := newTestSampler(src, time.Nanosecond)
	ctx := context.Background()

	s.cycle(ctx)
	require.NotNil(t, s.Latest().Reading.Condition)

	// Health command starts failing; condition from the earlier poll stays
	src.healthErr = errors.New("profiler gone")
	time.Sleep(time.Millisecond)
	s.cycle(ctx)

	snap := s.Latest()
	assert.False(t, snap.Stale)
	require.NotNil(t, snap.Reading.Condition)
	assert.Equal(t, "Normal", *snap.Reading.Condition)
}

func TestSamplerDuplicateErrorsLoggedOnce(t *testing.T) {
	src := newStubSource(ioregCharging, profilerOutput)
	src.batteryErr = errors.New("same failure")

	log := logger.NewBufferLogger()
	modes := NewModeController(ModeBalanced)
	s := NewSampler(src, modes, NewHistory(8), NewHistory(8), time.Hour, log)
	ctx := context.Background()

	s.cycle(ctx)
	s.cycle(ctx)
	s.cycle(ctx)

	count := 0
	for _, msg := range log.Messages {
		if msg.Level == "warn" {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestSamplerRunStopsOnCancel(t *testing.T) {
	src := newStubSource(ioregCharging, profilerOutput)
	s, _ := newTestSampler(src, time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	// Let at least the first cycle land
	deadline := time.After(2 * time.Second)
	for s.Latest() == nil {
		select {
		case <-deadline:
			t.Fatal("sampler never published a snapshot")
		case <-time.After(5 * time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("sampler did not stop after cancel")
	}
}

func TestSamplerHonorsModeInterval(t *testing.T) {
	src := newStubSource(ioregCharging, profilerOutput)
	modes := NewModeController(ModePerformance)
	s := NewSampler(src, modes, NewHistory(64), NewHistory(64), time.Hour, logger.Noop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()

	// Performance mode polls every 500ms, with the first cycle immediate.
	// After 1.2s at least two fast fetches must have landed.
	time.Sleep(1200 * time.Millisecond)
	fetched := src.callCount(KindBatteryFast)
	assert.GreaterOrEqual(t, fetched, 2)

	// Switching to eco applies at the next sleep boundary: over another
	// 1.2s at most one extra cycle can start.
	modes.SetMode(ModeEco)
	time.Sleep(1200 * time.Millisecond)
	after := src.callCount(KindBatteryFast)
	assert.LessOrEqual(t, after-fetched, 2)

	cancel()
	<-done
}
