package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/shadelab/tui-smoother/internal/core"
	"github.com/shadelab/tui-smoother/internal/storage"
)

var (
	flagTicks   int
	flagNoStore bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the simulation headless and record the outcome",
	Long: `Run up to the given number of ticks without a UI. The run stops early
if the grid settles (a tick changes no cell). The outcome is recorded to
the runs database unless --no-store is given.

The grid never settles under some rules; oscillation is a legitimate
outcome, reported as settled=false.

Examples:
  smoother sim --ticks 5000
  smoother sim --ticks 5000 --seed 42 --width 64 --height 32
  smoother sim --boundary wrap --no-store`,
	Run: runSim,
}

func init() {
	addSimulationFlags(simCmd)
	simCmd.Flags().IntVar(&flagTicks, "ticks", 1000, "Maximum number of ticks to run")
	simCmd.Flags().BoolVar(&flagNoStore, "no-store", false, "Do not record the run")
}

func runSim(cmd *cobra.Command, args []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "smoother-sim",
	})

	cfg, err := loadSimulationConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	u, err := core.NewUniverse(
		cfg.Grid.Width,
		cfg.Grid.Height,
		core.WithSeed(seed),
		core.WithWeights(cfg.Rule.Weights()),
		core.WithBoundary(cfg.Rule.BoundaryPolicy()),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger.Info("starting run",
		"size", fmt.Sprintf("%dx%d", cfg.Grid.Width, cfg.Grid.Height),
		"seed", seed,
		"boundary", cfg.Rule.Boundary,
		"weights", fmt.Sprintf("%d/%d", cfg.Rule.CardinalWeight, cfg.Rule.DiagonalWeight),
		"max_ticks", flagTicks,
	)

	start := time.Now()
	settled, settledAt := runUntilSettled(u, flagTicks)
	elapsed := time.Since(start)

	if settled {
		logger.Info("grid settled", "tick", settledAt, "elapsed", elapsed)
	} else {
		logger.Info("grid still changing", "ticks", u.Generation(), "elapsed", elapsed)
	}

	if flagNoStore {
		return
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "error", err)
		return
	}
	defer store.Close()

	weights, policy := u.Rule()
	id, err := store.SaveRun(storage.RunEntry{
		Width:          u.Width(),
		Height:         u.Height(),
		Seed:           seed,
		CardinalWeight: weights.Cardinal,
		DiagonalWeight: weights.Diagonal,
		Boundary:       string(policy),
		Ticks:          int(u.Generation()),
		Settled:        settled,
		SettledAt:      int(settledAt),
	})
	if err != nil {
		logger.Warn("could not record run", "error", err)
		return
	}
	logger.Info("run recorded", "id", id)
}

// runUntilSettled ticks the universe until no cell changes or maxTicks is
// reached. Settle detection is an observer concern: the engine itself
// promises nothing about convergence.
func runUntilSettled(u *core.Universe, maxTicks int) (settled bool, settledAt uint64) {
	prev := make([]core.Shade, len(u.View()))

	for i := 0; i < maxTicks; i++ {
		copy(prev, u.View())
		u.Tick()

		changed := false
		for j, s := range u.View() {
			if s != prev[j] {
				changed = true
				break
			}
		}
		if !changed {
			return true, u.Generation()
		}
	}
	return false, 0
}
