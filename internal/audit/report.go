package audit

import (
	"fmt"
	"io"
)

// Report renders the audit findings as human-readable text: one line per
// diagnostic with severity and category, indented recommendations, and a
// closing verdict. Output is deterministic for a given result.
func Report(w io.Writer, componentName string, r Result) error {
	if _, err := fmt.Fprintf(w, "component: %s\n", componentName); err != nil {
		return err
	}

	if len(r.Diagnostics) == 0 {
		fmt.Fprintln(w, "no findings")
	}
	for _, d := range r.Diagnostics {
		fmt.Fprintf(w, "[%s] %s: %s\n", d.Severity, d.Category, d.Message)
		if d.Recommendation != "" {
			fmt.Fprintf(w, "        recommendation: %s\n", d.Recommendation)
		}
	}

	fmt.Fprintf(w, "\n%d error(s), %d warning(s)\n", r.Errors, r.Warnings)
	_, err := fmt.Fprintf(w, "verdict: %s\n", r.Verdict)
	return err
}
