package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/minemarker/internal/config"
	"github.com/vovakirdan/minemarker/internal/platform/tui"
	"github.com/vovakirdan/minemarker/internal/scenario"
	"github.com/vovakirdan/minemarker/internal/storage"
)

var (
	flagWatchScenario string
	flagSpeed         string
	flagAutoplay      bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [minefield-file script-file]",
	Short: "Replay a run step by step",
	Long: `Replays a marking run in the terminal, one step per frame.

With two files or --scenario the run is replayed directly. Without
arguments a scenario menu is shown; each replay picked from the menu is
recorded in the results database.

Controls:
  Left/Right/h/l  - Previous/next step
  Space           - Play/pause
  g/G             - First step/outcome
  Esc/b           - Back
  Q               - Quit

Examples:
  minemarker watch
  minemarker watch field.txt script.txt --autoplay --speed fast
  minemarker watch --scenario 07-cross`,
	Args: func(cmd *cobra.Command, args []string) error {
		if flagWatchScenario != "" {
			return cobra.NoArgs(cmd, args)
		}
		if len(args) != 0 && len(args) != 2 {
			return fmt.Errorf("accepts 0 or 2 arg(s), received %d", len(args))
		}
		return nil
	},
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().StringVarP(&flagWatchScenario, "scenario", "s", "", "Scenario ID to replay")
	watchCmd.Flags().StringVar(&flagSpeed, "speed", "", "Autoplay speed: slow, normal, fast")
	watchCmd.Flags().BoolVar(&flagAutoplay, "autoplay", false, "Start playing immediately")
}

func runWatch(_ *cobra.Command, args []string) error {
	cfg, err := viewConfig()
	if err != nil {
		return err
	}

	if flagWatchScenario != "" || len(args) == 2 {
		label, result, err := runSelected(flagWatchScenario, args)
		if err != nil {
			return err
		}
		return tui.RunReplay(label, result, cfg)
	}

	loader, err := scenarioLoader()
	if err != nil {
		return err
	}
	return runMenuLoop(loader, openStore(), cfg)
}

// viewConfig builds the replay view settings from the config and flags.
func viewConfig() (tui.Config, error) {
	replay := appConfig.Replay
	if flagSpeed != "" {
		speed, err := config.ParseSpeed(flagSpeed)
		if err != nil {
			return tui.Config{}, err
		}
		replay.Speed = speed
		replay.Interval = 0
	}

	cfg := tui.DefaultConfig()
	cfg.StepInterval = replay.StepInterval()
	cfg.Autoplay = replay.Autoplay || flagAutoplay

	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	return cfg, nil
}

// runMenuLoop shows the scenario menu until the user quits.
func runMenuLoop(loader *scenario.Loader, store *storage.Store, cfg tui.Config) error {
	if store != nil {
		defer store.Close()
	}

	scenarios, err := loader.LoadAll()
	if err != nil {
		return err
	}
	warnSkipped(loader)

	ids := make([]string, len(scenarios))
	for i, s := range scenarios {
		ids[i] = s.ID
	}

	for {
		menuResult, err := tui.RunMenu(scenarios, store, cfg)
		if err != nil {
			return err
		}
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, err := tui.RunScoreboard(store, ids, cfg.ScreenW, cfg.ScreenH)
			if err != nil {
				return err
			}
			if !goBack {
				return nil
			}
			continue
		}

		s, err := loader.LoadByID(menuResult.ScenarioID)
		if err != nil {
			return err
		}
		started := time.Now()
		result, err := s.Run()
		if err != nil {
			logger.Error("scenario failed", "scenario", s.ID, "error", err)
			continue
		}
		logger.Debug("scenario marked", "scenario", s.ID, "outcome", result.Outcome(), "elapsed", time.Since(started))

		if store != nil {
			if _, err := store.SaveResult(storage.NewEntry(s.ID, "cli", result)); err != nil {
				logger.Warn("could not record result", "scenario", s.ID, "error", err)
			}
		}

		if err := tui.RunReplay(s.ID, result, cfg); err != nil {
			return err
		}
	}
}
