package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/voltlab/volt/internal/config"
	"github.com/voltlab/volt/internal/logger"
	"github.com/voltlab/volt/internal/power"
)

var checkPlain bool

// checkCmd runs one sampling pass and prints the result as plain text.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run one power reading and print it",
	Long: `Poll the power sources once and print the parsed reading.

Useful for scripting, for cron jobs, or to verify the external commands
work before launching the dashboard.

Examples:
  volt check
  volt check --plain
  watch -n 5 volt check --plain`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return checkCommand(configFlag, checkPlain)
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkPlain, "plain", false, "disable color output")
	rootCmd.AddCommand(checkCmd)
}

// checkCommand fetches and prints a single merged reading.
func checkCommand(configPath string, plain bool) error {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	profile := termenv.EnvColorProfile()
	if plain || !term.IsTerminal(int(os.Stdout.Fd())) {
		profile = termenv.Ascii
	}
	out := termenv.NewOutput(os.Stdout, termenv.WithProfile(profile))

	source := power.NewCommandSource(cfg.Commands.Battery, cfg.Commands.Health, cfg.FetchTimeout, logger.Default())
	ctx, cancel := context.WithTimeout(context.Background(), 2*cfg.FetchTimeout)
	defer cancel()

	battRaw, err := source.Fetch(ctx, power.KindBatteryFast)
	if err != nil {
		return err
	}

	reading, err := power.Parse(power.KindBatteryFast, battRaw)
	if err != nil {
		return err
	}
	if charger, err := power.Parse(power.KindCharger, battRaw); err == nil {
		reading = reading.Merge(charger)
	}

	// Health is best effort here; the live values already tell the story.
	if healthRaw, err := source.Fetch(ctx, power.KindBatteryHealth); err == nil {
		if health, err := power.Parse(power.KindBatteryHealth, healthRaw); err == nil {
			reading = reading.Merge(health)
		}
	}

	printReading(out, reading)
	return nil
}

// printReading writes one reading as aligned label/value lines.
func printReading(out *termenv.Output, r power.Reading) {
	printLine(out, "State", r.State.String())

	if r.Percent != nil {
		printLine(out, "Charge", fmt.Sprintf("%d%%", *r.Percent))
	}
	if r.TimeRemainingMin != nil {
		printLine(out, "Time left", (time.Duration(*r.TimeRemainingMin) * time.Minute).String())
	}
	if r.Watts != nil {
		printLine(out, "Draw", fmt.Sprintf("%.2f W", *r.Watts))
	}
	if r.VoltageV != nil {
		printLine(out, "Voltage", fmt.Sprintf("%.2f V", *r.VoltageV))
	}
	if r.AmperageMA != nil {
		printLine(out, "Current", fmt.Sprintf("%d mA", *r.AmperageMA))
	}
	if r.TemperatureC != nil {
		printLine(out, "Temperature", fmt.Sprintf("%.1f °C", *r.TemperatureC))
	}
	if r.CycleCount != nil {
		printLine(out, "Cycles", fmt.Sprintf("%d", *r.CycleCount))
	}
	if r.HealthPercent != nil {
		printLine(out, "Health", fmt.Sprintf("%.1f%%", *r.HealthPercent))
	}
	if r.Condition != nil {
		printLine(out, "Condition", *r.Condition)
	}
	if r.ChargerPresent != nil && *r.ChargerPresent {
		if r.ChargerWatts != nil {
			printLine(out, "Charger", fmt.Sprintf("%.0f W", *r.ChargerWatts))
		} else {
			printLine(out, "Charger", "connected")
		}
	}
}

// printLine writes "Label:      value" with the label dimmed.
func printLine(out *termenv.Output, label, value string) {
	styled := out.String(fmt.Sprintf("%-13s", label+":")).Faint()
	fmt.Fprintf(out, "%s %s\n", styled, value)
}
