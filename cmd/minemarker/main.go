// minemarker runs sweeper scripts against minefields and marks them.
//
// Usage:
//
//	minemarker mark <minefield> <script>  - Print the transcript and outcome
//	minemarker gdl <minefield>            - Generate a GDL puzzle description
//	minemarker list                       - List scenarios
//	minemarker check                      - Run every scenario against its expected outcome
//	minemarker watch                      - Replay runs step by step in the terminal
//	minemarker results [label]            - Show recorded results
//	minemarker serve                      - Serve the replay viewer over SSH
//
// Global flags:
//
//	--config <path>     - Config file (default: ~/.minemarker/config.yaml)
//	--db <path>         - Results database (overrides storage.path)
//	--scenarios <dir>   - Scenario directory (overrides scenarios.dir)
//	--log-level <level> - debug, info, warn or error
package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/minemarker/internal/config"
	"github.com/vovakirdan/minemarker/internal/scenario"
	"github.com/vovakirdan/minemarker/internal/storage"
)

var (
	// Global flags
	flagConfig    string
	flagDBPath    string
	flagScenarios string
	flagLogLevel  string

	appConfig config.Config
	logger    *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "minemarker",
	Short: "Minemarker - mark sweeper scripts against minefields",
	Long: `Minemarker simulates a mine-sweeping ship descending through a minefield,
executing one line of a script per turn, and marks the script.

Available commands:
  mark     - Run a script against a minefield and print the transcript
  gdl      - Generate a GDL description of a minefield
  list     - Show all scenarios
  check    - Verify every scenario against its expected outcome
  watch    - Replay runs step by step
  results  - View recorded results
  serve    - Start SSH server for remote replays

Examples:
  minemarker mark field.txt script.txt
  minemarker mark --scenario 05-pair --record
  minemarker gdl field.txt --out field.kif
  minemarker watch
  minemarker serve --ssh :2222`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagScenarios, "scenarios", "", "Scenario directory (default: built-in scenarios)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(markCmd)
	rootCmd.AddCommand(gdlCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(serveCmd)
}

// setup loads the configuration, applies global flag overrides and builds
// the logger.
func setup(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}
	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagScenarios != "" {
		cfg.Scenarios.Dir = flagScenarios
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}

	level, err := log.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}

	appConfig = cfg
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: cfg.Log.Timestamps,
		Prefix:          "minemarker",
		Level:           level,
	})
	return nil
}

// scenarioLoader returns the configured scenario source.
func scenarioLoader() (*scenario.Loader, error) {
	if appConfig.Scenarios.Dir == "" {
		return scenario.Builtin(), nil
	}
	dir, err := config.ExpandHome(appConfig.Scenarios.Dir)
	if err != nil {
		return nil, err
	}
	return scenario.NewLoader(dir), nil
}

// openStore opens the results database, or returns nil with a warning when
// it cannot be opened.
func openStore() *storage.Store {
	store, err := storage.Open(appConfig.Storage.Path)
	if err != nil {
		logger.Warn("could not open results database", "path", appConfig.Storage.Path, "error", err)
		return nil
	}
	return store
}

// warnSkipped logs scenario files the loader could not parse.
func warnSkipped(loader *scenario.Loader) {
	for _, p := range loader.Skipped {
		logger.Warn("skipped invalid scenario file", "file", p)
	}
}
