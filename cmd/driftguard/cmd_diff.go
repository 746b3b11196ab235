package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"driftguard/internal/contract"
)

var diffCmd = &cobra.Command{
	Use:   "diff <old-artifact> <new-artifact>",
	Short: "Compare two contract artifacts for structural drift",
	Long: `Diff compares two contract artifacts structurally, ignoring the
extraction timestamp, so a no-op re-extraction reads as no drift.`,
	Args: cobra.ExactArgs(2),
	RunE: runDiff,
}

func runDiff(cmd *cobra.Command, args []string) error {
	old, err := contract.Load(args[0])
	if err != nil {
		return err
	}
	updated, err := contract.Load(args[1])
	if err != nil {
		return err
	}

	changes := contract.Diff(old, updated)
	out := cmd.OutOrStdout()
	if len(changes) == 0 {
		fmt.Fprintf(out, "no drift: %s artifacts are the same contract version\n", old.ComponentID())
		return nil
	}
	for _, ch := range changes {
		fmt.Fprintln(out, ch)
	}
	return fmt.Errorf("contract drifted: %d change(s)", len(changes))
}
