package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shadelab/tui-smoother/internal/storage"
)

var (
	flagRunsLimit  int
	flagRunsWidth  int
	flagRunsHeight int
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recorded simulation runs",
	Long: `Display the most recent recorded runs, newest first.

Examples:
  smoother runs
  smoother runs --limit 10
  smoother runs --width 64 --height 32`,
	Run: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 20, "Maximum number of runs to show")
	runsCmd.Flags().IntVar(&flagRunsWidth, "width", 0, "Only show runs for this grid width")
	runsCmd.Flags().IntVar(&flagRunsHeight, "height", 0, "Only show runs for this grid height")
}

func runRuns(cmd *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening runs database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	var runs []storage.RunEntry
	if flagRunsWidth > 0 && flagRunsHeight > 0 {
		runs, err = store.RunsForSize(flagRunsWidth, flagRunsHeight, flagRunsLimit)
	} else {
		runs, err = store.RecentRuns(flagRunsLimit)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving runs: %v\n", err)
		os.Exit(1)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'smoother sim' or quit a 'smoother run' session to record one.")
		return
	}

	fmt.Println("Recorded runs:")
	fmt.Println()
	fmt.Printf("  %-9s  %-6s  %-8s  %-5s  %-10s  %s\n", "Size", "Rule", "Boundary", "Ticks", "Outcome", "Date")
	fmt.Printf("  %-9s  %-6s  %-8s  %-5s  %-10s  %s\n", "----", "----", "--------", "-----", "-------", "----")

	for _, run := range runs {
		outcome := "changing"
		if run.Settled {
			outcome = fmt.Sprintf("settled@%d", run.SettledAt)
		}
		fmt.Printf("  %-9s  %-6s  %-8s  %-5d  %-10s  %s\n",
			fmt.Sprintf("%dx%d", run.Width, run.Height),
			fmt.Sprintf("%d/%d", run.CardinalWeight, run.DiagonalWeight),
			run.Boundary,
			run.Ticks,
			outcome,
			run.CreatedAt.Format("2006-01-02 15:04"),
		)
	}
}
