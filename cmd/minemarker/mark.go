package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/minemarker/internal/formats"
	"github.com/vovakirdan/minemarker/internal/platform/tui"
	"github.com/vovakirdan/minemarker/internal/sim"
	"github.com/vovakirdan/minemarker/internal/storage"
)

var (
	flagScenario string
	flagRecord   bool
	flagLabel    string
)

var markCmd = &cobra.Command{
	Use:   "mark [minefield-file script-file]",
	Short: "Run a script against a minefield and print the transcript",
	Long: `Runs the sweeper script against the minefield and prints every step
followed by the outcome line, "pass (score)" or "fail (0)".

Either pass a minefield file and a script file, or --scenario with the ID
of a scenario.

Examples:
  minemarker mark field.txt script.txt
  minemarker mark --scenario 04-row
  minemarker mark field.txt script.txt --record --label practice`,
	Args: func(cmd *cobra.Command, args []string) error {
		if flagScenario != "" {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(2)(cmd, args)
	},
	RunE: runMark,
}

func init() {
	markCmd.Flags().StringVarP(&flagScenario, "scenario", "s", "", "Scenario ID to run instead of files")
	markCmd.Flags().BoolVar(&flagRecord, "record", false, "Record the result in the results database")
	markCmd.Flags().StringVar(&flagLabel, "label", "", "Label to record the result under (default: scenario ID or minefield file name)")
}

func runMark(cmd *cobra.Command, args []string) error {
	label, result, err := runSelected(flagScenario, args)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	lines := result.Transcript()
	for _, line := range lines[:len(lines)-1] {
		fmt.Fprintln(out, line)
	}
	outcome := lines[len(lines)-1]
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		outcome = tui.RenderOutcome(outcome)
	}
	fmt.Fprintln(out, outcome)

	if flagRecord || appConfig.Storage.Record {
		return record(label, result)
	}
	return nil
}

// runSelected runs either the scenario with the given ID or the two files
// in args.
func runSelected(scenarioID string, args []string) (string, *sim.Result, error) {
	opts := []sim.Option{sim.WithLogger(logger)}

	if scenarioID != "" {
		loader, err := scenarioLoader()
		if err != nil {
			return "", nil, err
		}
		s, err := loader.LoadByID(scenarioID)
		if err != nil {
			return "", nil, err
		}
		result, err := s.Run(opts...)
		if err != nil {
			return "", nil, err
		}
		return labelOr(s.ID), result, nil
	}

	field, err := formats.LoadMinefield(args[0])
	if err != nil {
		return "", nil, err
	}
	script, err := formats.LoadScript(args[1])
	if err != nil {
		return "", nil, err
	}
	result, err := sim.Mark(field, script, opts...)
	if err != nil {
		return "", nil, err
	}
	return labelOr(filepath.Base(args[0])), result, nil
}

func labelOr(fallback string) string {
	if flagLabel != "" {
		return flagLabel
	}
	return fallback
}

func record(label string, result *sim.Result) error {
	store, err := storage.Open(appConfig.Storage.Path)
	if err != nil {
		return fmt.Errorf("could not open results database: %w", err)
	}
	defer store.Close()

	id, err := store.SaveResult(storage.NewEntry(label, "cli", result))
	if err != nil {
		return err
	}
	logger.Info("result recorded", "id", id, "label", label, "outcome", result.Outcome())
	return nil
}
