package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/minemarker/internal/formats"
	"github.com/vovakirdan/minemarker/internal/gdl"
)

var flagOut string

var gdlCmd = &cobra.Command{
	Use:   "gdl <minefield-file>",
	Short: "Generate a GDL description of a minefield",
	Long: `Writes a Game Description Language puzzle for the minefield: the
static sweeper rules followed by the generated facts for this field.

Examples:
  minemarker gdl field.txt
  minemarker gdl field.txt --out field.kif`,
	Args: cobra.ExactArgs(1),
	RunE: runGDL,
}

func init() {
	gdlCmd.Flags().StringVarP(&flagOut, "out", "o", "", "Output file (default: stdout)")
}

func runGDL(cmd *cobra.Command, args []string) error {
	field, err := formats.LoadMinefield(args[0])
	if err != nil {
		return err
	}

	description, err := gdl.Generate(field)
	if err != nil {
		return err
	}

	if flagOut == "" {
		_, err = fmt.Fprint(cmd.OutOrStdout(), description)
		return err
	}
	if err := os.WriteFile(flagOut, []byte(description), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", flagOut, err)
	}
	logger.Info("gdl written", "file", flagOut, "mines", field.NumMines())
	return nil
}
