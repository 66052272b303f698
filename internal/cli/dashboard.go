package cli

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/voltlab/volt/internal/config"
	"github.com/voltlab/volt/internal/dashboard"
	"github.com/voltlab/volt/internal/errors"
	"github.com/voltlab/volt/internal/logger"
	"github.com/voltlab/volt/internal/power"
)

// dashboardCommand loads config, starts the background sampler, and runs
// the TUI until the user quits.
func dashboardCommand(configPath, modeOverride, slowOverride string, historyOverride int) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}

	// Flags win over config file values.
	if modeOverride != "" {
		cfg.Mode = modeOverride
	}
	if slowOverride != "" {
		parsed, err := time.ParseDuration(slowOverride)
		if err != nil {
			return errors.New(errors.ErrConfig,
				"Invalid --slow-interval: "+slowOverride,
				"Use a duration like 30s, 1m, or 5m.")
		}
		cfg.SlowInterval = parsed
	}
	if historyOverride > 0 {
		cfg.History = historyOverride
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	log := logger.Default()
	source := power.NewCommandSource(cfg.Commands.Battery, cfg.Commands.Health, cfg.FetchTimeout, log)
	modes := power.NewModeController(power.ParseMode(cfg.Mode))
	watts := power.NewHistory(cfg.History)
	temps := power.NewHistory(cfg.History)
	sampler := power.NewSampler(source, modes, watts, temps, cfg.SlowInterval, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go sampler.Run(ctx)

	model := dashboard.NewModel(sampler, modes, watts, temps, cancel, cfg.Refresh)

	p := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrRender,
			"Dashboard terminated unexpectedly",
			"Make sure you are running in an interactive terminal.")
	}

	return nil
}
