package validate

// Severity partitions diagnostics for the pass/fail reduction.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Diagnostic categories. Structural checks always report under
// CategorySchema; heuristic layers use their own categories and are
// never conflated with schema violations.
const (
	CategorySchema = "schema"
)

// Diagnostic is one reported nonconformance or advisory finding. It is a
// value object: no identity beyond position and content.
type Diagnostic struct {
	Severity       Severity `json:"severity"`
	Category       string   `json:"category"`
	Message        string   `json:"message"`
	Recommendation string   `json:"recommendation,omitempty"`
}

// Result is the outcome of one validation call. Conforms is true iff the
// diagnostic list is empty.
type Result struct {
	Conforms    bool
	Diagnostics []Diagnostic
}
