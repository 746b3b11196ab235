package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"driftguard/internal/contract"
	"driftguard/internal/validate"
)

var validateFlags struct {
	candidatePath string
	contractPath  string
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a candidate property bag against a contract artifact",
	Long: `Validate checks a candidate implementation's property bag against a
contract artifact and prints every nonconformance at once. A malformed
candidate document is reported as a single diagnostic, never an abort.`,
	RunE: runValidate,
}

func init() {
	f := validateCmd.Flags()
	f.StringVarP(&validateFlags.candidatePath, "file", "f", "", "Candidate property bag JSON (required)")
	f.StringVarP(&validateFlags.contractPath, "contract", "c", "", "Contract artifact path (required)")

	_ = validateCmd.MarkFlagRequired("file")
	_ = validateCmd.MarkFlagRequired("contract")
}

func runValidate(cmd *cobra.Command, _ []string) error {
	if _, err := loadConfig(); err != nil {
		return err
	}

	c, err := contract.Load(validateFlags.contractPath)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(validateFlags.candidatePath)
	if err != nil {
		return fmt.Errorf("read candidate: %w", err)
	}

	// A document that is not a structured object reaches the validator
	// as nil and becomes its single diagnostic.
	bag, _ := validate.ParseCandidate(data)
	result := validate.Validate(c, bag)

	out := cmd.OutOrStdout()
	for _, d := range result.Diagnostics {
		fmt.Fprintf(out, "[%s] %s: %s\n", d.Severity, d.Category, d.Message)
	}
	if result.Conforms {
		fmt.Fprintf(out, "%s conforms to contract %s\n", validateFlags.candidatePath, c.ComponentID())
		return nil
	}
	return fmt.Errorf("%d violation(s)", len(result.Diagnostics))
}
