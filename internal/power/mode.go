package power

import (
	"sync/atomic"
	"time"
)

// Mode selects how aggressively the fast tier polls.
type Mode int32

const (
	ModePerformance Mode = iota
	ModeBalanced
	ModeEco
)

// Interval returns the fast-tier poll interval bound to the mode.
func (m Mode) Interval() time.Duration {
	switch m {
	case ModePerformance:
		return 500 * time.Millisecond
	case ModeEco:
		return 5 * time.Second
	default:
		return 2 * time.Second
	}
}

// String returns a human-readable mode label.
func (m Mode) String() string {
	switch m {
	case ModePerformance:
		return "PERFORMANCE"
	case ModeEco:
		return "ECO"
	default:
		return "BALANCED"
	}
}

// ParseMode converts a config string into a Mode.
// Unrecognized values fall back to Balanced.
func ParseMode(s string) Mode {
	switch s {
	case "performance":
		return ModePerformance
	case "eco":
		return ModeEco
	default:
		return ModeBalanced
	}
}

// ModeController holds the active power mode. SetMode is last-write-wins
// and takes effect at the sampler's next sleep boundary; an in-flight
// fetch is never interrupted by a mode switch.
type ModeController struct {
	mode atomic.Int32
}

// NewModeController creates a controller starting in the given mode.
func NewModeController(initial Mode) *ModeController {
	c := &ModeController{}
	c.mode.Store(int32(initial))
	return c
}

// SetMode switches the active mode immediately.
func (c *ModeController) SetMode(m Mode) {
	c.mode.Store(int32(m))
}

// Mode returns the active mode.
func (c *ModeController) Mode() Mode {
	return Mode(c.mode.Load())
}

// Interval returns the fast-tier interval for the active mode.
func (c *ModeController) Interval() time.Duration {
	return c.Mode().Interval()
}
