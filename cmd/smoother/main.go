// smoother is a terminal cellular shade-smoothing simulator.
//
// A grid of brightness cells evolves tick by tick: every cell nudges its
// shade one step toward the weighted average of its neighbors, cardinal
// neighbors counting double. Some grids settle into a stable image,
// others oscillate forever.
//
// Usage:
//
//	smoother run               - Watch the simulation in the terminal
//	smoother sim               - Run headless and record the outcome
//	smoother serve             - Start SSH server for remote viewing
//	smoother runs              - Show recorded runs
//
// Global flags:
//
//	--seed <value>  - RNG seed for a reproducible starting grid
//	--db <path>     - Runs database path (default: ~/.smoother/runs.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "smoother",
	Short: "Watch a grid of shades smooth itself out in your terminal",
	Long: `smoother simulates a rectangular grid of brightness cells. Each tick,
every cell moves one step toward the weighted average of its neighbors;
cardinal neighbors count double compared to diagonal ones. Watch whether
the grid converges to a stable image or keeps oscillating.

Available commands:
  run    - Interactive simulation view
  sim    - Headless run, outcome recorded to the runs database
  serve  - SSH server for remote viewing
  runs   - Show recorded runs

Examples:
  smoother run
  smoother run --width 64 --height 32 --boundary wrap
  smoother sim --ticks 5000 --seed 42
  smoother serve --ssh :23235
  smoother runs --limit 10`,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.smoother/runs.db", "Path to runs database")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
}
