package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run every scenario and compare against its expected outcome",
	Long: `Runs each scenario that declares an expected outcome and reports
whether the marking matches. Exits non-zero if any scenario differs.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, _ []string) error {
	loader, err := scenarioLoader()
	if err != nil {
		return err
	}
	scenarios, err := loader.LoadAll()
	if err != nil {
		return err
	}
	warnSkipped(loader)

	out := cmd.OutOrStdout()
	failed := 0
	for _, s := range scenarios {
		if s.Expect == "" {
			continue
		}
		result, err := s.Run()
		if err == nil {
			err = s.Check(result)
		}
		if err != nil {
			failed++
			fmt.Fprintf(out, "FAIL  %s: %v\n", s.ID, err)
			continue
		}
		fmt.Fprintf(out, "ok    %s  %s\n", s.ID, result.Outcome())
	}

	if failed > 0 {
		return fmt.Errorf("%d scenario(s) did not match", failed)
	}
	return nil
}
