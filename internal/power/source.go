package power

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"time"

	"github.com/voltlab/volt/internal/logger"
)

// Kind identifies which slice of the power subsystem a fetch targets.
type Kind int

const (
	// KindBatteryFast is the frequent battery telemetry poll.
	KindBatteryFast Kind = iota
	// KindBatteryHealth is the infrequent condition/health poll.
	KindBatteryHealth
	// KindCharger is the adapter telemetry slice of the fast poll.
	// It shares the battery command; the distinction matters to the parser.
	KindCharger
)

// String returns the kind's name for logs and errors.
func (k Kind) String() string {
	switch k {
	case KindBatteryFast:
		return "battery_fast"
	case KindBatteryHealth:
		return "battery_health"
	case KindCharger:
		return "charger"
	default:
		return "unknown"
	}
}

// FetchReason classifies why a fetch failed.
type FetchReason int

const (
	ReasonNotFound FetchReason = iota
	ReasonExit
	ReasonTimeout
	ReasonCanceled
)

// String returns the reason's name for logs and status display.
func (r FetchReason) String() string {
	switch r {
	case ReasonNotFound:
		return "command not found"
	case ReasonExit:
		return "non-zero exit"
	case ReasonTimeout:
		return "timed out"
	case ReasonCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// FetchError reports a failed external command invocation. It is never
// fatal to the sampler; the next cycle is the retry.
type FetchError struct {
	Kind   Kind
	Reason FetchReason
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %s: %v", e.Kind, e.Reason, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Source fetches raw text for a metric kind.
// Implementations must honor context cancellation and never block
// indefinitely.
type Source interface {
	Fetch(ctx context.Context, kind Kind) (string, error)
}

// CommandSource fetches metrics by running external system-information
// commands. Each Fetch spawns one subprocess, bounded by the configured
// timeout so a hung command surfaces as a FetchError instead of stalling
// the sampler.
type CommandSource struct {
	battery []string
	health  []string
	timeout time.Duration
	log     logger.Logger
}

// NewCommandSource creates a source running the given command lines.
// battery serves KindBatteryFast and KindCharger; health serves
// KindBatteryHealth.
func NewCommandSource(battery, health []string, timeout time.Duration, log logger.Logger) *CommandSource {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if log == nil {
		log = logger.Noop()
	}
	return &CommandSource{
		battery: battery,
		health:  health,
		timeout: timeout,
		log:     log,
	}
}

// Fetch runs the command for the given kind and returns its stdout.
func (s *CommandSource) Fetch(ctx context.Context, kind Kind) (string, error) {
	argv := s.battery
	if kind == KindBatteryHealth {
		argv = s.health
	}
	if len(argv) == 0 {
		return "", &FetchError{Kind: kind, Reason: ReasonNotFound, Err: errors.New("no command configured")}
	}

	cmdCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	cmd := exec.CommandContext(cmdCtx, argv[0], argv[1:]...)
	out, err := cmd.Output()
	s.log.Debug("fetch %s via %s took %s", kind, argv[0], time.Since(start))

	if err != nil {
		return "", &FetchError{Kind: kind, Reason: classify(cmdCtx, err), Err: err}
	}
	return string(out), nil
}

// classify maps a subprocess failure onto a FetchReason. The fetch
// context expires two ways: its own timeout, or the parent being
// cancelled at shutdown. Only the former is a timeout.
func classify(ctx context.Context, err error) FetchReason {
	switch ctx.Err() {
	case context.DeadlineExceeded:
		return ReasonTimeout
	case context.Canceled:
		return ReasonCanceled
	}

	var execErr *exec.Error
	if errors.As(err, &execErr) {
		// Covers exec.ErrNotFound and permission problems at spawn time.
		return ReasonNotFound
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return ReasonExit
	}

	return ReasonExit
}
