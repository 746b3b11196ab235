package audit

import (
	"bytes"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"driftguard/internal/contract"
	"driftguard/internal/validate"
)

// goodSource satisfies every heuristic marker and references every
// enumerated contract value.
const goodSource = `<button role="button" aria-disabled="false" aria-label="Submit">
  <span class="icon sm md lg primary secondary danger" aria-hidden="true"></span>
</button>`

func buttonContract(t *testing.T) *contract.Contract {
	t.Helper()
	c, err := contract.New(contract.Meta{
		ComponentID:   "button",
		ComponentName: "Button",
		SourceID:      "1:23",
		ExtractedAt:   time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
	}, []contract.PropertySpec{
		{Name: "size", Required: true, Default: "md", AllowedValues: []string{"sm", "md", "lg"}, Kind: contract.KindEnum},
		{Name: "color", Required: true, Default: "primary", AllowedValues: []string{"primary", "secondary", "danger"}, Kind: contract.KindEnum},
		{Name: "icon", Required: false, Default: "", Kind: contract.KindString},
		{Name: "disabled", Required: false, Default: false, Kind: contract.KindBool},
	}, nil, nil)
	require.NoError(t, err)
	return c
}

func TestRun_CleanImplementationPasses(t *testing.T) {
	r := Run(Input{
		Contract:  buttonContract(t),
		Candidate: map[string]any{"size": "md", "color": "primary", "icon": "", "disabled": false},
		Source:    goodSource,
	})

	assert.Equal(t, VerdictPass, r.Verdict)
	assert.Empty(t, r.Diagnostics)
}

func TestRun_MissingMarkerWarns(t *testing.T) {
	source := `<button role="button" aria-disabled="false" aria-label="Submit">
  <span class="sm md lg primary secondary danger"></span>
</button>`

	r := Run(Input{Contract: buttonContract(t), Source: source})

	assert.Equal(t, VerdictPassWithWarnings, r.Verdict)
	require.Len(t, r.Diagnostics, 1)
	d := r.Diagnostics[0]
	assert.Equal(t, validate.SeverityWarning, d.Severity)
	assert.Equal(t, "accessibility", d.Category)
	assert.Contains(t, d.Message, "hidden from assistive technology")
	assert.Contains(t, d.Recommendation, `aria-hidden="true"`)
}

func TestRun_MissingRoleIsError(t *testing.T) {
	source := `<div aria-disabled="false" aria-label="Submit" aria-hidden="true">sm md lg primary secondary danger</div>`

	r := Run(Input{Contract: buttonContract(t), Source: source})

	assert.Equal(t, VerdictFail, r.Verdict)
	assert.Equal(t, 1, r.Errors)
}

func TestRun_CoverageWarning(t *testing.T) {
	source := `<button role="button" aria-disabled aria-label aria-hidden="true">sm md primary secondary danger</button>`

	r := Run(Input{Contract: buttonContract(t), Source: source})

	assert.Equal(t, VerdictPassWithWarnings, r.Verdict)
	require.Len(t, r.Diagnostics, 1)
	assert.Equal(t, CategoryCoverage, r.Diagnostics[0].Category)
	assert.Equal(t, `allowed size value "lg" has no reference in the implementation source`, r.Diagnostics[0].Message)
}

func TestRun_InvalidCandidateSingleDiagnostic(t *testing.T) {
	r := Run(Input{
		Contract:         buttonContract(t),
		CandidateInvalid: true,
		Source:           goodSource,
	})

	assert.Equal(t, VerdictFail, r.Verdict)
	require.Len(t, r.Diagnostics, 1)
	assert.Equal(t, validate.CategorySchema, r.Diagnostics[0].Category)
}

func TestRun_StructuralAndHeuristicNotConflated(t *testing.T) {
	source := `<div>sm md lg primary secondary danger aria-disabled aria-label aria-hidden="true"</div>`

	r := Run(Input{
		Contract:  buttonContract(t),
		Candidate: map[string]any{"size": "sm", "icon": "x"},
		Source:    source,
	})

	require.Len(t, r.Diagnostics, 2)
	assert.Equal(t, validate.CategorySchema, r.Diagnostics[0].Category, "structural findings come first")
	assert.Equal(t, "accessibility", r.Diagnostics[1].Category)
	assert.Equal(t, VerdictFail, r.Verdict)
}

func TestChecks_EmbeddedRuleSet(t *testing.T) {
	checks := Checks()
	require.NotEmpty(t, checks)
	for _, chk := range checks {
		assert.NotEmpty(t, chk.ID)
		assert.NotEmpty(t, chk.Marker)
		assert.NotEmpty(t, chk.Recommendation)
		assert.Contains(t, []validate.Severity{validate.SeverityError, validate.SeverityWarning}, chk.Severity)
	}
}

func TestVerdictString(t *testing.T) {
	assert.Equal(t, "pass", VerdictPass.String())
	assert.Equal(t, "pass with warnings", VerdictPassWithWarnings.String())
	assert.Equal(t, "fail", VerdictFail.String())
}

func TestReport_Golden(t *testing.T) {
	source := `<button class="btn sm md lg primary secondary danger" aria-hidden="true" aria-disabled="false" aria-label="Submit">`

	r := Run(Input{
		Contract:  buttonContract(t),
		Candidate: map[string]any{"size": "xl", "icon": "false"},
		Source:    source,
	})

	var buf bytes.Buffer
	require.NoError(t, Report(&buf, "Button", r))

	g := goldie.New(t)
	g.Assert(t, "audit_report", buf.Bytes())
}

func TestReport_NoFindings(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Report(&buf, "Badge", Result{Verdict: VerdictPass}))

	out := buf.String()
	assert.Contains(t, out, "component: Badge")
	assert.Contains(t, out, "no findings")
	assert.Contains(t, out, "verdict: pass")
}
