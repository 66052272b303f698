// Package power samples, parses, and stores battery and charger
// telemetry from external system commands.
//
// # Key Components
//
//	Source         - Runs the external commands with a bounded timeout
//	Parse          - Tolerant text parsers for each command's output
//	Sampler        - Background loop merging tiers into snapshots
//	History        - Ring buffer for wattage and temperature graphs
//	ModeController - Atomic polling-frequency switch
//
// # Sampling Tiers
//
// Live telemetry (charge, draw, charger state) is cheap and polled at
// the mode's interval. Battery health (condition, capacity) comes from
// a slower command and is refreshed on its own clock, every 30 seconds
// by default. Both tiers merge into a single Reading so the slow fields
// persist between health polls.
//
// # Failure Handling
//
// A failed poll never blanks the display. The sampler republishes the
// previous values marked Stale, and flips to Unavailable only after
// three consecutive failures. Parsers extract whatever fields they can
// recognize and leave the rest nil; a ParseError means the payload had
// nothing usable at all.
package power
