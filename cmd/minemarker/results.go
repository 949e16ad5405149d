package main

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/minemarker/internal/storage"
)

var (
	flagLimit  int
	flagRecent bool
	flagClear  bool
)

var resultsCmd = &cobra.Command{
	Use:   "results [label]",
	Short: "Show recorded marking results",
	Long: `Display recorded results, best first. With a label (a scenario ID or
minefield file name) only that label's results are shown together with its
statistics. Without one, a summary of every label is printed first.

Examples:
  minemarker results
  minemarker results 05-pair
  minemarker results --recent --limit 20
  minemarker results 05-pair --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runResults,
}

func init() {
	resultsCmd.Flags().IntVarP(&flagLimit, "limit", "n", 10, "Number of results to show")
	resultsCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the most recent results instead of the best")
	resultsCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the results for the label (or all results)")
}

func runResults(cmd *cobra.Command, args []string) error {
	label := ""
	if len(args) == 1 {
		label = args[0]
	}

	store, err := storage.Open(appConfig.Storage.Path)
	if err != nil {
		return fmt.Errorf("could not open results database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagClear {
		if err := store.ClearResults(label); err != nil {
			return err
		}
		if label == "" {
			fmt.Fprintln(out, "All results cleared.")
		} else {
			fmt.Fprintf(out, "Results for %s cleared.\n", label)
		}
		return nil
	}

	if label == "" {
		if err := printSummary(cmd, store); err != nil {
			return err
		}
	} else {
		stats, err := store.Stats(label)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Results - %s\n\n", label)
		if stats.Runs > 0 {
			fmt.Fprintf(out, "Runs: %d  Passed: %.0f%%  Best: %d  Average: %.1f\n\n",
				stats.Runs, 100*stats.PassRate(), stats.HighScore, stats.AvgScore)
		}
	}

	var results []storage.ResultEntry
	if flagRecent {
		results, err = store.RecentResults(flagLimit)
		if label != "" {
			results = slices.DeleteFunc(results, func(r storage.ResultEntry) bool {
				return r.Label != label
			})
		}
	} else {
		results, err = store.TopResults(label, flagLimit)
	}
	if err != nil {
		return fmt.Errorf("retrieving results: %w", err)
	}

	if len(results) == 0 {
		fmt.Fprintln(out, "No results recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'minemarker mark --record ...' to record one.")
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-16s  %-10s  %-5s  %-7s  %-5s  %-6s  %s\n",
		"Rank", "Label", "Outcome", "Steps", "Volleys", "Moves", "Source", "Date")
	fmt.Fprintf(out, "  %-4s  %-16s  %-10s  %-5s  %-7s  %-5s  %-6s  %s\n",
		"----", "-----", "-------", "-----", "-------", "-----", "------", "----")
	for i, r := range results {
		fmt.Fprintf(out, "  %-4d  %-16s  %-10s  %-5d  %-7d  %-5d  %-6s  %s\n",
			i+1, r.Label, r.Outcome, r.Steps, r.Volleys, r.Moves, r.Source,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func printSummary(cmd *cobra.Command, store *storage.Store) error {
	all, err := store.AllStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		return nil
	}

	out := cmd.OutOrStdout()
	labels := make([]string, 0, len(all))
	for label := range all {
		labels = append(labels, label)
	}
	slices.Sort(labels)

	fmt.Fprintln(out, "Summary")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-16s  %-5s  %-7s  %-5s  %s\n", "Label", "Runs", "Passed", "Best", "Last run")
	fmt.Fprintf(out, "  %-16s  %-5s  %-7s  %-5s  %s\n", "-----", "----", "------", "----", "--------")
	for _, label := range labels {
		st := all[label]
		fmt.Fprintf(out, "  %-16s  %-5d  %-7s  %-5d  %s\n",
			label, st.Runs, fmt.Sprintf("%.0f%%", 100*st.PassRate()), st.HighScore,
			st.LastRun.Format("2006-01-02 15:04"))
	}
	fmt.Fprintln(out)
	return nil
}
