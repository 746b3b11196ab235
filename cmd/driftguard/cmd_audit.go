package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"driftguard/internal/audit"
	"driftguard/internal/contract"
	"driftguard/internal/validate"
)

var auditFlags struct {
	component string
	source    string
	props     string
	artifact  string
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit an implementation against its contract and accessibility checks",
	Long: `Audit reads the configured implementation source (and, when present, its
declared property bag and contract artifact), runs structural validation
plus heuristic accessibility checks, and prints the categorized findings.

Exit code is 0 when no error-severity finding exists (warnings allowed)
and 1 otherwise.`,
	Args: cobra.NoArgs,
	RunE: runAudit,
}

func init() {
	f := auditCmd.Flags()
	f.StringVar(&auditFlags.component, "component", "Button", "Component name under audit")
	f.StringVar(&auditFlags.source, "source", "", "Implementation source path (default: config audit_source_path)")
	f.StringVar(&auditFlags.props, "props", "", "Declared property bag JSON path (default: config audit_props_path)")
	f.StringVar(&auditFlags.artifact, "contract", "", "Contract artifact path (default: derived from contracts_dir)")
}

func runAudit(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	sourcePath := auditFlags.source
	if sourcePath == "" {
		sourcePath = cfg.AuditSourcePath
	}
	source, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("read implementation source: %w", err)
	}

	in := audit.Input{Source: string(source)}

	artifactPath := auditFlags.artifact
	if artifactPath == "" {
		artifactPath = contract.ArtifactPath(cfg.ContractsDir, auditFlags.component)
	}
	if _, err := os.Stat(artifactPath); err == nil {
		c, err := contract.Load(artifactPath)
		if err != nil {
			return err
		}
		in.Contract = c
	}

	propsPath := auditFlags.props
	if propsPath == "" {
		propsPath = cfg.AuditPropsPath
	}
	if data, err := os.ReadFile(propsPath); err == nil {
		bag, err := validate.ParseCandidate(data)
		if err != nil {
			in.CandidateInvalid = true
		}
		in.Candidate = bag
	}

	result := audit.Run(in)
	if err := audit.Report(cmd.OutOrStdout(), auditFlags.component, result); err != nil {
		return err
	}

	if result.Verdict == audit.VerdictFail {
		return fmt.Errorf("audit failed: %d error(s)", result.Errors)
	}
	return nil
}
