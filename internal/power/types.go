package power

import "time"

// ChargingState describes what the battery is currently doing.
type ChargingState int

const (
	StateUnknown ChargingState = iota
	StateCharging
	StateDischarging
	StateFull
)

// String returns a human-readable charging state.
func (s ChargingState) String() string {
	switch s {
	case StateCharging:
		return "Charging"
	case StateDischarging:
		return "Discharging"
	case StateFull:
		return "Fully Charged"
	default:
		return "Unknown"
	}
}

// TimeRemainingCalculating is the sentinel minute count the battery
// controller reports while it is still estimating time remaining.
const TimeRemainingCalculating = 65535

// Reading holds the fields parsed from one sample. Every field except
// Taken and State is optional: nil means the source did not report it,
// which is distinct from a reported zero (0 W is a real measurement).
type Reading struct {
	Taken time.Time

	// Fast tier: live battery telemetry.
	Percent          *int
	State            ChargingState
	TimeRemainingMin *int
	TemperatureC     *float64
	VoltageV         *float64
	AmperageMA       *int64
	Watts            *float64
	CycleCount       *int
	HealthPercent    *float64

	// Fast tier: adapter telemetry.
	ChargerPresent   *bool
	ChargerWatts     *float64
	ChargerVoltageV  *float64
	ChargerCurrentMA *float64

	// Slow tier: battery condition.
	Condition *string
}

// Merge overlays the non-absent fields of other onto a copy of r.
// Fields absent in other keep r's value, so slow-tier data survives
// fast-tier refreshes and vice versa.
func (r Reading) Merge(other Reading) Reading {
	out := r

	if !other.Taken.IsZero() {
		out.Taken = other.Taken
	}
	if other.Percent != nil {
		out.Percent = other.Percent
	}
	if other.State != StateUnknown {
		out.State = other.State
	}
	if other.TimeRemainingMin != nil {
		out.TimeRemainingMin = other.TimeRemainingMin
	}
	if other.TemperatureC != nil {
		out.TemperatureC = other.TemperatureC
	}
	if other.VoltageV != nil {
		out.VoltageV = other.VoltageV
	}
	if other.AmperageMA != nil {
		out.AmperageMA = other.AmperageMA
	}
	if other.Watts != nil {
		out.Watts = other.Watts
	}
	if other.CycleCount != nil {
		out.CycleCount = other.CycleCount
	}
	if other.HealthPercent != nil {
		out.HealthPercent = other.HealthPercent
	}
	if other.ChargerPresent != nil {
		out.ChargerPresent = other.ChargerPresent
	}
	if other.ChargerWatts != nil {
		out.ChargerWatts = other.ChargerWatts
	}
	if other.ChargerVoltageV != nil {
		out.ChargerVoltageV = other.ChargerVoltageV
	}
	if other.ChargerCurrentMA != nil {
		out.ChargerCurrentMA = other.ChargerCurrentMA
	}
	if other.Condition != nil {
		out.Condition = other.Condition
	}

	return out
}

// Snapshot is the fully-merged state published by the Sampler after each
// cycle. It is immutable once published; the renderer only ever sees a
// complete snapshot, never one mid-update.
type Snapshot struct {
	Reading Reading

	// Stale is set when the most recent fast-tier fetch or parse failed
	// and Reading carries values from an earlier successful cycle.
	Stale bool

	// Unavailable is set after three consecutive fast-tier failures.
	Unavailable bool

	// LastError describes the most recent failure, for diagnostics.
	LastError string

	// FastAt and SlowAt are when each tier last succeeded.
	FastAt time.Time
	SlowAt time.Time

	// Latency is how long the last fast-tier fetch+parse took.
	Latency time.Duration
}

// Sample is one point in the wattage (or temperature) history graph.
type Sample struct {
	At    time.Time
	Value float64
}
