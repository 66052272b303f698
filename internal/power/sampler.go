package power

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/voltlab/volt/internal/logger"
)

// unavailableAfter is how many consecutive fast-tier failures it takes
// before the snapshot escalates from stale to unavailable.
const unavailableAfter = 3

// Sampler runs the background acquisition loop. It polls the fast tier at
// the interval dictated by the mode controller, the slow tier on a fixed
// cadence, merges the results, and publishes immutable snapshots through
// an atomic pointer swap. It is the sole writer of the snapshot and the
// history rings.
type Sampler struct {
	source Source
	modes  *ModeController
	watts  *History
	temps  *History
	log    logger.Logger

	slowEvery time.Duration
	snapshot  atomic.Pointer[Snapshot]

	// Loop-local state, only touched from Run's goroutine.
	fastFailures int
	lastSlow     time.Time
	lastLogged   string

	// health holds the last successful slow-tier reading. Slow fields are
	// carried forward from here on every fast cycle, so a fresh fast
	// reading replaces the fast-tier fields wholesale: a field the fast
	// tier stops reporting goes absent instead of freezing at its old
	// value.
	health Reading
}

// NewSampler wires a sampler to its collaborators. slowEvery controls the
// health-tier cadence (30s if zero).
func NewSampler(source Source, modes *ModeController, watts, temps *History, slowEvery time.Duration, log logger.Logger) *Sampler {
	if slowEvery <= 0 {
		slowEvery = 30 * time.Second
	}
	if log == nil {
		log = logger.Noop()
	}
	return &Sampler{
		source:    source,
		modes:     modes,
		watts:     watts,
		temps:     temps,
		log:       log,
		slowEvery: slowEvery,
	}
}

// Latest returns the most recently published snapshot, or nil before the
// first cycle completes. The returned snapshot is immutable.
func (s *Sampler) Latest() *Snapshot {
	return s.snapshot.Load()
}

// Run executes the sampling loop until ctx is cancelled. Fetch and parse
// failures are absorbed into the published snapshot; they never end the
// loop. The mode interval is re-read at every sleep boundary so a mode
// switch takes effect within one cycle.
func (s *Sampler) Run(ctx context.Context) {
	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		s.cycle(ctx)

		timer.Reset(s.modes.Interval())
	}
}

// cycle performs one fast-tier sample, a slow-tier sample when due, and
// publishes the merged snapshot.
func (s *Sampler) cycle(ctx context.Context) {
	start := time.Now()

	prev := s.snapshot.Load()
	next := Snapshot{}
	if prev != nil {
		next = *prev
	}

	reading, err := s.fetchFast(ctx)
	if err != nil {
		s.fastFailures++
		next.Stale = true
		next.Unavailable = s.fastFailures >= unavailableAfter
		next.LastError = err.Error()
		s.logOnce(err.Error())
	} else {
		s.fastFailures = 0
		// Overlay the fresh reading onto the retained slow-tier fields,
		// not onto the previous merged reading. The fast tier owns its
		// fields each cycle: a reported Unknown state or a withdrawn
		// time estimate displaces the old value rather than being
		// swallowed by the carry-forward.
		next.Reading = s.health.Merge(reading)
		next.Stale = false
		next.Unavailable = false
		next.LastError = ""
		next.FastAt = reading.Taken
		s.lastLogged = ""

		if reading.Watts != nil {
			s.watts.Push(reading.Taken, *reading.Watts)
		}
		if reading.TemperatureC != nil && s.temps != nil {
			s.temps.Push(reading.Taken, *reading.TemperatureC)
		}
	}

	next.Latency = time.Since(start)

	if time.Since(s.lastSlow) >= s.slowEvery {
		if slow, err := s.fetchSlow(ctx); err != nil {
			// Same policy as the fast tier: keep the previous fields.
			s.logOnce(err.Error())
		} else {
			s.health = slow
			next.Reading = next.Reading.Merge(slow)
			next.SlowAt = slow.Taken
		}
		// Failures also reset the clock: the next cycle is the retry,
		// not a tight re-poll of an expensive command.
		s.lastSlow = time.Now()
	}

	s.snapshot.Store(&next)
}

// fetchFast runs the battery command once and parses both the battery and
// charger slices out of it.
func (s *Sampler) fetchFast(ctx context.Context) (Reading, error) {
	raw, err := s.source.Fetch(ctx, KindBatteryFast)
	if err != nil {
		return Reading{}, err
	}

	battery, err := Parse(KindBatteryFast, raw)
	if err != nil {
		return Reading{}, err
	}

	// Charger fields ride along in the same payload; a charger parse
	// failure only loses adapter fields, not the whole cycle.
	if charger, err := Parse(KindCharger, raw); err == nil {
		battery = battery.Merge(charger)
	}

	return battery, nil
}

// fetchSlow runs the health command and parses condition fields.
func (s *Sampler) fetchSlow(ctx context.Context) (Reading, error) {
	raw, err := s.source.Fetch(ctx, KindBatteryHealth)
	if err != nil {
		return Reading{}, err
	}
	return Parse(KindBatteryHealth, raw)
}

// logOnce logs an error message, suppressing consecutive duplicates so a
// permanently missing command does not flood the log every cycle.
func (s *Sampler) logOnce(msg string) {
	if msg == s.lastLogged {
		return
	}
	s.lastLogged = msg
	s.log.Warn("sample failed: %s", msg)
}
