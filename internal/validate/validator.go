// Package validate decides whether a candidate implementation conforms
// to a design contract and explains every way it does not. Validation is
// a pure function of (contract, candidate): no side effects, no retained
// state, safe for concurrent use over independent inputs.
package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"driftguard/internal/contract"
)

// ErrNotObject is returned by ParseCandidate when the raw document is
// valid JSON but not an object.
var ErrNotObject = errors.New("candidate is not a JSON object")

// ParseCandidate parses a raw JSON document into a candidate property
// bag (parse-then-validate: malformed input is rejected here, before the
// validator runs).
func ParseCandidate(data []byte) (map[string]any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse candidate: %w", err)
	}
	bag, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return bag, nil
}

// Validate checks the candidate property bag against the contract and
// returns every violation at once, in the contract's declared property
// order. A nil candidate (absent, null, or not a structured object)
// yields exactly one diagnostic.
func Validate(c *contract.Contract, candidate map[string]any) Result {
	if candidate == nil {
		return Result{Diagnostics: []Diagnostic{{
			Severity: SeverityError,
			Category: CategorySchema,
			Message:  "candidate implementation is not a structured property bag",
		}}}
	}

	var diags []Diagnostic
	for _, p := range c.Properties() {
		if d, ok := checkProperty(p, candidate); !ok {
			diags = append(diags, d)
		}
	}

	return Result{Conforms: len(diags) == 0, Diagnostics: diags}
}

// checkProperty applies the single check the property's value kind
// selects. Free-string values are never flagged for content, only for
// absence when required.
func checkProperty(p contract.PropertySpec, candidate map[string]any) (Diagnostic, bool) {
	value, present := candidate[p.Name]
	if !present {
		if p.Required {
			return Diagnostic{
				Severity:       SeverityError,
				Category:       CategorySchema,
				Message:        fmt.Sprintf("missing required property: %s", p.Name),
				Recommendation: fmt.Sprintf("declare %s (default %v) on the implementation", p.Name, p.Default),
			}, false
		}
		return Diagnostic{}, true
	}

	switch p.Kind {
	case contract.KindEnum:
		s, isString := value.(string)
		if !isString || !slices.Contains(p.AllowedValues, s) {
			return Diagnostic{
				Severity: SeverityError,
				Category: CategorySchema,
				Message: fmt.Sprintf("invalid %s value: %q. Must be one of: %s",
					p.Name, formatValue(value), strings.Join(p.AllowedValues, ", ")),
			}, false
		}
	case contract.KindBool:
		if _, isBool := value.(bool); !isBool {
			return Diagnostic{
				Severity: SeverityError,
				Category: CategorySchema,
				Message:  fmt.Sprintf("invalid %s value: %q. Must be a boolean", p.Name, formatValue(value)),
			}, false
		}
	case contract.KindString:
		// Unconstrained.
	}
	return Diagnostic{}, true
}

func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
