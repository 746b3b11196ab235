// Package audit orchestrates contract and accessibility audits: it runs
// structural validation through the validator and a bounded set of
// heuristic pattern checks over raw implementation source, then reduces
// the combined findings to an actionable verdict.
//
// The heuristic layer trades precision for applicability: an ARIA role
// or a presentational flag on a decorative element is a structural
// choice baked into markup, not a configurable property, so the only
// available check is marker presence in source text. Its diagnostics are
// kept under their own categories, never conflated with schema
// violations.
package audit

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"driftguard/internal/contract"
	"driftguard/internal/validate"
)

//go:embed checks.yaml
var checksYAML []byte

// CategoryCoverage tags heuristic findings about enumerated contract
// values with no witness in the implementation source.
const CategoryCoverage = "coverage"

// Check is one heuristic marker test loaded from the embedded rule file.
type Check struct {
	ID             string            `yaml:"id"`
	Marker         string            `yaml:"marker"`
	Severity       validate.Severity `yaml:"severity"`
	Category       string            `yaml:"category"`
	Message        string            `yaml:"message"`
	Recommendation string            `yaml:"recommendation"`
}

type checksFile struct {
	Checks []Check `yaml:"checks"`
}

var loadedChecks []Check

// Checks returns the embedded heuristic rule set.
func Checks() []Check {
	if loadedChecks != nil {
		return loadedChecks
	}
	var f checksFile
	if err := yaml.Unmarshal(checksYAML, &f); err != nil {
		panic(fmt.Sprintf("load checks.yaml: %v", err))
	}
	loadedChecks = f.Checks
	return loadedChecks
}

// Verdict is the reduced outcome of an audit.
type Verdict int

const (
	VerdictPass Verdict = iota
	VerdictPassWithWarnings
	VerdictFail
)

func (v Verdict) String() string {
	switch v {
	case VerdictPassWithWarnings:
		return "pass with warnings"
	case VerdictFail:
		return "fail"
	default:
		return "pass"
	}
}

// Input bundles what an audit can see. Contract and Candidate are
// optional; Source is the raw implementation source text.
type Input struct {
	Contract *contract.Contract
	// Candidate is the implementation's declared property bag.
	Candidate map[string]any
	// CandidateInvalid marks a declared-props document that existed but
	// could not be parsed into a structured object.
	CandidateInvalid bool
	Source           string
}

// Result carries every finding plus the reduced verdict.
type Result struct {
	Verdict     Verdict
	Diagnostics []validate.Diagnostic
	Errors      int
	Warnings    int
}

// Run executes the audit battery: structural validation first, then
// contract coverage heuristics, then the embedded marker checks.
// Diagnostics are collected, never thrown; ordering is deterministic.
func Run(in Input) Result {
	var diags []validate.Diagnostic

	if in.Contract != nil && (in.Candidate != nil || in.CandidateInvalid) {
		structural := validate.Validate(in.Contract, in.Candidate)
		diags = append(diags, structural.Diagnostics...)
	}

	if in.Contract != nil && in.Source != "" {
		diags = append(diags, coverageChecks(in.Contract, in.Source)...)
	}

	if in.Source != "" {
		for _, chk := range Checks() {
			if strings.Contains(in.Source, chk.Marker) {
				continue
			}
			diags = append(diags, validate.Diagnostic{
				Severity:       chk.Severity,
				Category:       chk.Category,
				Message:        chk.Message,
				Recommendation: chk.Recommendation,
			})
		}
	}

	return reduce(diags)
}

// coverageChecks flags enumerated allowed values with no literal witness
// in the source. Best effort only: a missing literal is drift evidence,
// not proof.
func coverageChecks(c *contract.Contract, source string) []validate.Diagnostic {
	var diags []validate.Diagnostic
	for _, p := range c.Properties() {
		for _, v := range p.AllowedValues {
			if strings.Contains(source, v) {
				continue
			}
			diags = append(diags, validate.Diagnostic{
				Severity:       validate.SeverityWarning,
				Category:       CategoryCoverage,
				Message:        fmt.Sprintf("allowed %s value %q has no reference in the implementation source", p.Name, v),
				Recommendation: fmt.Sprintf("implement the %q %s or remove it from the design contract", v, p.Name),
			})
		}
	}
	return diags
}

// reduce partitions diagnostics by severity: any error fails the audit,
// warnings alone downgrade the pass, and silence passes unconditionally.
func reduce(diags []validate.Diagnostic) Result {
	r := Result{Diagnostics: diags}
	for _, d := range diags {
		switch d.Severity {
		case validate.SeverityError:
			r.Errors++
		case validate.SeverityWarning:
			r.Warnings++
		}
	}
	switch {
	case r.Errors > 0:
		r.Verdict = VerdictFail
	case r.Warnings > 0:
		r.Verdict = VerdictPassWithWarnings
	default:
		r.Verdict = VerdictPass
	}
	return r
}
