package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/voltlab/volt/internal/config"
	"github.com/voltlab/volt/internal/errors"
)

var (
	initForce          bool
	initNonInteractive bool
)

// initCmd creates a new .volt.yaml configuration.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .volt.yaml configuration",
	Long: `Initialize a volt configuration file in the current directory.

Walks through the initial mode and polling intervals with interactive
prompts, then writes .volt.yaml. The dashboard works without a config
file; init is for persisting preferences.

Examples:
  volt init
  volt init --force
  volt init --yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(initForce, initNonInteractive)
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	initCmd.Flags().BoolVarP(&initNonInteractive, "yes", "y", false, "skip prompts, write defaults")
	rootCmd.AddCommand(initCmd)
}

// initCommand writes a .volt.yaml, prompting for values unless running
// non-interactively.
func initCommand(force, nonInteractive bool) error {
	configPath := filepath.Join(".", config.ConfigFileName)

	if _, err := os.Stat(configPath); err == nil && !force {
		if nonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()

	if !nonInteractive {
		mode := cfg.Mode
		slowInterval := cfg.SlowInterval.String()
		history := fmt.Sprintf("%d", cfg.History)

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewSelect[string]().
					Title("Initial power mode").
					Description("How often live battery data is polled").
					Options(
						huh.NewOption("Performance (0.5s)", "performance"),
						huh.NewOption("Balanced (2s)", "balanced"),
						huh.NewOption("Eco (5s)", "eco"),
					).
					Value(&mode),
			),
			huh.NewGroup(
				huh.NewInput().
					Title("Health poll interval").
					Description("How often battery condition and cycle count refresh").
					Placeholder("30s").
					Value(&slowInterval).
					Validate(func(s string) error {
						d, err := time.ParseDuration(s)
						if err != nil {
							return fmt.Errorf("use a duration like 30s or 2m")
						}
						if d < time.Second {
							return fmt.Errorf("must be at least 1s")
						}
						return nil
					}),
			),
			huh.NewGroup(
				huh.NewInput().
					Title("History size").
					Description("Wattage samples kept for the power draw graph").
					Placeholder("120").
					Value(&history).
					Validate(func(s string) error {
						var n int
						if _, err := fmt.Sscanf(s, "%d", &n); err != nil || n < 2 {
							return fmt.Errorf("must be a number >= 2")
						}
						return nil
					}),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try 'volt init --yes' to write defaults without prompts")
		}

		cfg.Mode = mode
		cfg.SlowInterval, _ = time.ParseDuration(slowInterval)
		fmt.Sscanf(history, "%d", &cfg.History)
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to serialize config", "")
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write %s", configPath),
			"Check directory permissions")
	}

	fmt.Printf("Wrote %s\n", configPath)
	return nil
}
