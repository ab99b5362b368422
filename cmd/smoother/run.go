package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/shadelab/tui-smoother/internal/config"
	"github.com/shadelab/tui-smoother/internal/platform/tui"
	"github.com/shadelab/tui-smoother/internal/storage"
)

var (
	flagConfig   string
	flagWidth    int
	flagHeight   int
	flagFPS      int
	flagBoundary string
	flagCardinal int
	flagDiagonal int
	flagFit      bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Watch the simulation in the terminal",
	Long: `Start the interactive simulation view.

Controls:
  p/space    - Pause/resume
  s          - Advance a single tick (pauses)
  r          - Save the run and restart with a fresh random grid
  +/-        - Change tick rate
  ?          - Toggle full help
  q/Ctrl+C   - Quit

Examples:
  smoother run
  smoother run --width 64 --height 32
  smoother run --boundary wrap --cardinal 3 --diagonal 1
  smoother run --fit
  smoother run --config ./my-smoother.yaml`,
	Run: runRun,
}

func init() {
	addSimulationFlags(runCmd)
	runCmd.Flags().BoolVar(&flagFit, "fit", false, "Size the grid to the terminal")
}

// addSimulationFlags registers the config-override flags shared by run
// and sim.
func addSimulationFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	cmd.Flags().IntVar(&flagWidth, "width", 0, "Grid width (overrides config)")
	cmd.Flags().IntVar(&flagHeight, "height", 0, "Grid height (overrides config)")
	cmd.Flags().IntVar(&flagFPS, "fps", 0, "Auto-run tick rate (overrides config)")
	cmd.Flags().StringVar(&flagBoundary, "boundary", "", "Boundary policy: exclude or wrap (overrides config)")
	cmd.Flags().IntVar(&flagCardinal, "cardinal", 0, "Cardinal neighbor weight (overrides config)")
	cmd.Flags().IntVar(&flagDiagonal, "diagonal", 0, "Diagonal neighbor weight (overrides config)")
}

// loadSimulationConfig loads the config file and applies flag overrides.
func loadSimulationConfig() (config.SmootherConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagWidth > 0 {
		cfg.Grid.Width = flagWidth
	}
	if flagHeight > 0 {
		cfg.Grid.Height = flagHeight
	}
	if flagFPS > 0 {
		cfg.Display.TickRate = flagFPS
	}
	if flagBoundary != "" {
		cfg.Rule.Boundary = flagBoundary
	}
	if flagCardinal > 0 {
		cfg.Rule.CardinalWeight = flagCardinal
	}
	if flagDiagonal > 0 {
		cfg.Rule.DiagonalWeight = flagDiagonal
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func runRun(cmd *cobra.Command, args []string) {
	cfg, err := loadSimulationConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if flagFit {
		// Cells render two characters wide; leave rows for the HUD and
		// help footer.
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			if w/2 > 0 {
				cfg.Grid.Width = w / 2
			}
			if h-3 > 0 {
				cfg.Grid.Height = h - 3
			}
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		// Continue without storage - the view still works
		store = nil
	}

	runErr := tui.Run(cfg, flagSeed, store)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running simulation: %v\n", runErr)
		os.Exit(1)
	}
}
