// Package dashboard implements the real-time TUI for power telemetry.
//
// The package uses the Bubble Tea framework, which follows The Elm
// Architecture (Model-Update-View pattern):
//
//   - Model: Holds view state (snapshot source, mode controller, layout)
//   - Update: Processes messages (keystrokes, render ticks, resizes)
//   - View: Renders the current state to a string for display
//
// # Message Flow
//
// Rendering is decoupled from sampling. The sampler publishes immutable
// snapshots from its own goroutine; the dashboard redraws on a fixed
// tick (default 200ms) and simply reads the latest snapshot each time:
//
//  1. tickMsg fires at the render cadence
//  2. View() calls sampler.Latest() and renders whatever is published
//  3. Key messages adjust the mode controller or quit
//
// A slow poll mode therefore never slows the UI down; the same snapshot
// is just drawn again.
//
// # Keyboard Shortcuts
//
// Keys are defined in keybindings.go and are case-insensitive:
//
//	p           - Performance mode (0.5s polls)
//	b           - Balanced mode (2s polls)
//	e           - Eco mode (5s polls)
//	q, Ctrl+C   - Quit
package dashboard
