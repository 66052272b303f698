package power

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ParseError reports input that was unintelligible as a whole. Individual
// missing or reformatted fields never produce a ParseError; they simply
// yield absent fields in the Reading.
type ParseError struct {
	Kind Kind
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %s", e.Kind, e.Msg)
}

// Field extraction patterns for ioreg AppleSmartBattery output.
// ioreg prints registry properties as `"Key" = Value`; the exact set of
// keys varies across hardware and OS versions, so each field is optional.
var (
	reCurrentCapacity = regexp.MustCompile(`"CurrentCapacity"\s*=\s*(\d+)`)
	reTimeRemaining   = regexp.MustCompile(`"TimeRemaining"\s*=\s*(\d+)`)
	reTemperature     = regexp.MustCompile(`"Temperature"\s*=\s*(\d+)`)
	reVoltage         = regexp.MustCompile(`"Voltage"\s*=\s*(\d+)`)
	reInstantAmperage = regexp.MustCompile(`"InstantAmperage"\s*=\s*(-?\d+)`)
	reAmperage        = regexp.MustCompile(`"Amperage"\s*=\s*(-?\d+)`)
	reCycleCount      = regexp.MustCompile(`"CycleCount"\s*=\s*(\d+)`)
	reDesignCapacity  = regexp.MustCompile(`"DesignCapacity"\s*=\s*(\d+)`)
	reRawMaxCapacity  = regexp.MustCompile(`"AppleRawMaxCapacity"\s*=\s*(\d+)`)
	reAdapterDetails  = regexp.MustCompile(`"(?:AppleRaw)?AdapterDetails"\s*=\s*\{([^}]+)\}`)
	reAdapterVoltage  = regexp.MustCompile(`(?:^|[\s,{])"?AdapterVoltage"?\s*[:=]\s*(\d+)`)
	reAdapterCurrent  = regexp.MustCompile(`(?:^|[\s,{])"?Current"?\s*[:=]\s*(\d+)`)
	reAdapterWatts    = regexp.MustCompile(`(?:^|[\s,{])"?Watts"?\s*[:=]\s*(\d+)`)
)

// Patterns for system_profiler SPPowerDataType output (slow tier).
var (
	reCondition      = regexp.MustCompile(`Condition:\s*([\w ]+)`)
	reMaxCapacityPct = regexp.MustCompile(`Maximum Capacity:\s*(\d+)%`)
	reProfilerCycles = regexp.MustCompile(`Cycle Count:\s*(\d+)`)
)

// Parse converts raw command output into a partial Reading for the given
// kind. It is pure and deterministic: unknown fields are skipped, absent
// fields stay nil, and a ParseError is returned only when the payload as
// a whole is unintelligible.
func Parse(kind Kind, raw string) (Reading, error) {
	switch kind {
	case KindBatteryFast:
		return parseBattery(raw)
	case KindCharger:
		return parseCharger(raw)
	case KindBatteryHealth:
		return parseHealth(raw)
	default:
		return Reading{}, &ParseError{Kind: kind, Msg: "unsupported kind"}
	}
}

// parseBattery extracts live battery telemetry from ioreg output.
func parseBattery(raw string) (Reading, error) {
	if strings.TrimSpace(raw) == "" {
		return Reading{}, &ParseError{Kind: KindBatteryFast, Msg: "empty payload"}
	}
	if !strings.Contains(raw, "Capacity") && !strings.Contains(raw, "ExternalConnected") {
		return Reading{}, &ParseError{Kind: KindBatteryFast, Msg: "no recognizable battery fields"}
	}

	r := Reading{Taken: time.Now()}

	connected := externalConnected(raw)
	charging := strings.Contains(raw, `"IsCharging" = Yes`)
	full := strings.Contains(raw, `"FullyCharged" = Yes`)
	switch {
	case full:
		r.State = StateFull
	case charging:
		r.State = StateCharging
	case !connected:
		r.State = StateDischarging
	default:
		// On AC but neither charging nor full; the controller is holding.
		r.State = StateUnknown
	}

	if v, ok := matchInt(reCurrentCapacity, raw); ok {
		pct := clampPercent(v)
		r.Percent = &pct
	}

	if v, ok := matchInt(reTimeRemaining, raw); ok && v != TimeRemainingCalculating {
		r.TimeRemainingMin = &v
	}

	if v, ok := matchInt(reTemperature, raw); ok {
		// Reported in deciKelvin.
		c := round1(float64(v)/10 - 273.15)
		r.TemperatureC = &c
	}

	if v, ok := matchInt(reVoltage, raw); ok {
		volts := float64(v) / 1000
		r.VoltageV = &volts
	}

	if amp, ok := matchAmperage(raw); ok {
		r.AmperageMA = &amp
	}

	if r.VoltageV != nil && r.AmperageMA != nil {
		w := round2(*r.VoltageV * math.Abs(float64(*r.AmperageMA)) / 1000)
		r.Watts = &w
	}

	if v, ok := matchInt(reCycleCount, raw); ok {
		r.CycleCount = &v
	}

	if design, ok := matchInt(reDesignCapacity, raw); ok && design > 0 {
		if rawMax, ok := matchInt(reRawMaxCapacity, raw); ok {
			h := round1(float64(rawMax) / float64(design) * 100)
			r.HealthPercent = &h
		}
	}

	return r, nil
}

// parseCharger extracts adapter telemetry from the same ioreg output.
func parseCharger(raw string) (Reading, error) {
	if strings.TrimSpace(raw) == "" {
		return Reading{}, &ParseError{Kind: KindCharger, Msg: "empty payload"}
	}
	if !strings.Contains(raw, "ExternalConnected") {
		return Reading{}, &ParseError{Kind: KindCharger, Msg: "no recognizable adapter fields"}
	}

	r := Reading{Taken: time.Now()}

	connected := externalConnected(raw)
	r.ChargerPresent = &connected
	if !connected {
		return r, nil
	}

	details := reAdapterDetails.FindStringSubmatch(raw)
	if len(details) < 2 {
		return r, nil
	}
	block := details[1]

	if v, ok := matchInt(reAdapterVoltage, block); ok {
		volts := float64(v) / 1000
		r.ChargerVoltageV = &volts
	}
	if v, ok := matchInt(reAdapterCurrent, block); ok {
		ma := float64(v)
		r.ChargerCurrentMA = &ma
	}
	if v, ok := matchInt(reAdapterWatts, block); ok {
		w := float64(v)
		r.ChargerWatts = &w
	}

	return r, nil
}

// parseHealth extracts condition and capacity from system_profiler output.
func parseHealth(raw string) (Reading, error) {
	if strings.TrimSpace(raw) == "" {
		return Reading{}, &ParseError{Kind: KindBatteryHealth, Msg: "empty payload"}
	}

	r := Reading{Taken: time.Now()}
	found := false

	if match := reCondition.FindStringSubmatch(raw); len(match) > 1 {
		cond := strings.TrimSpace(match[1])
		r.Condition = &cond
		found = true
	}

	if v, ok := matchInt(reMaxCapacityPct, raw); ok {
		h := float64(clampPercent(v))
		r.HealthPercent = &h
		found = true
	}

	if v, ok := matchInt(reProfilerCycles, raw); ok {
		r.CycleCount = &v
		found = true
	}

	if !found {
		return Reading{}, &ParseError{Kind: KindBatteryHealth, Msg: "no recognizable condition fields"}
	}

	return r, nil
}

// externalConnected reports whether ioreg output shows an attached charger.
func externalConnected(raw string) bool {
	return strings.Contains(raw, `"ExternalConnected" = Yes`) ||
		strings.Contains(raw, `"AppleRawExternalConnected" = Yes`)
}

// matchAmperage reads InstantAmperage, falling back to Amperage. ioreg
// prints negative draw as an unsigned 64-bit value on some OS versions,
// so overflowing magnitudes are reinterpreted as two's complement.
func matchAmperage(raw string) (int64, bool) {
	match := reInstantAmperage.FindStringSubmatch(raw)
	if len(match) < 2 {
		match = reAmperage.FindStringSubmatch(raw)
	}
	if len(match) < 2 {
		return 0, false
	}

	if v, err := strconv.ParseInt(match[1], 10, 64); err == nil {
		return v, true
	}
	if u, err := strconv.ParseUint(match[1], 10, 64); err == nil {
		return int64(u), true
	}
	return 0, false
}

func matchInt(re *regexp.Regexp, s string) (int, bool) {
	match := re.FindStringSubmatch(s)
	if len(match) < 2 {
		return 0, false
	}
	v, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return v, true
}

func clampPercent(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
