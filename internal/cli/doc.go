// Package cli implements the volt command-line interface.
//
// The package is organized around Cobra commands, each delegating to a
// small command function for the actual work:
//
//	volt              - Launch the live dashboard (root command)
//	volt check        - One-shot power reading, plain output
//	volt init         - Create .volt.yaml config
//	volt version      - Print build information
//	volt completion   - Generate shell completion scripts
//
// # Flag Handling
//
// The --config flag is defined on the root command and available to all
// subcommands. Dashboard tuning flags (--mode, --slow-interval,
// --history) are defined on the root command only and override the
// corresponding config file values.
//
// # Startup and Shutdown
//
// dashboardCommand wires the pieces together: it loads config, starts
// the background sampler goroutine with a cancellable context, then
// hands control to Bubble Tea. The quit key cancels the sampler context
// before the program exits, so no subprocess is left running.
package cli
