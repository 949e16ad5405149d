package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all scenarios",
	Long:  `Shows the scenarios available to mark, watch and serve.`,
	RunE:  runList,
}

func runList(cmd *cobra.Command, _ []string) error {
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
	if len(scenarios) == 0 {
		fmt.Fprintln(out, "No scenarios available.")
		return nil
	}

	fmt.Fprintln(out, "Available scenarios:")
	fmt.Fprintln(out)

	maxIDLen := 2 // "ID" header
	for _, s := range scenarios {
		maxIDLen = max(maxIDLen, len(s.ID))
	}

	fmt.Fprintf(out, "  %-*s  %-10s  %s\n", maxIDLen, "ID", "Expect", "Name")
	fmt.Fprintf(out, "  %-*s  %-10s  %s\n", maxIDLen, "--", "------", "----")
	for _, s := range scenarios {
		expect := s.Expect
		if expect == "" {
			expect = "-"
		}
		fmt.Fprintf(out, "  %-*s  %-10s  %s\n", maxIDLen, s.ID, expect, s.Name)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'minemarker mark --scenario <id>' to mark a scenario.")
	return nil
}
