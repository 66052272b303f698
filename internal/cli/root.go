package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/voltlab/volt/internal/logger"
)

// Root command flags
var (
	configFlag   string
	modeFlag     string
	intervalFlag string
	historyFlag  int
)

// rootCmd is the base command: running volt with no subcommand starts
// the dashboard.
var rootCmd = &cobra.Command{
	Use:   "volt",
	Short: "Live battery and power dashboard",
	Long: `Volt is a terminal dashboard for battery and power telemetry.

It polls the system's battery controller in the background and renders
charge level, power draw, charger details, and battery health at a
steady cadence. Polling frequency is adjustable at runtime:

  p  performance (0.5s)
  b  balanced    (2s)
  e  eco         (5s)
  q  quit

Examples:
  volt
  volt --mode eco
  volt --config ~/laptop-volt.yaml`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return dashboardCommand(configFlag, modeFlag, intervalFlag, historyFlag)
	},
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file path")
	rootCmd.Flags().StringVar(&modeFlag, "mode", "", "initial mode: performance, balanced, or eco")
	rootCmd.Flags().StringVar(&intervalFlag, "slow-interval", "", "health poll interval (e.g., 30s, 2m)")
	rootCmd.Flags().IntVar(&historyFlag, "history", 0, "wattage samples kept for the graph")

	logger.SetDefault(logger.NewEnvLogger("[volt]"))
}
