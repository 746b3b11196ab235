package contract

import (
	"fmt"
	"strings"
)

// ChangeKind classifies one contract change.
type ChangeKind string

const (
	PropertyAdded   ChangeKind = "property-added"
	PropertyRemoved ChangeKind = "property-removed"
	PropertyChanged ChangeKind = "property-changed"
	VersionChanged  ChangeKind = "version-changed"
)

// Change is one difference between two contract versions.
type Change struct {
	Kind     ChangeKind
	Property string
	Detail   string
}

func (ch Change) String() string {
	if ch.Property == "" {
		return fmt.Sprintf("%s: %s", ch.Kind, ch.Detail)
	}
	return fmt.Sprintf("%s %s: %s", ch.Kind, ch.Property, ch.Detail)
}

// Diff reports the structural changes from old to updated, ignoring the
// extraction timestamp and token payloads. An empty result means the two
// artifacts are the same contract version, so contract-diffing tooling
// can tell real design changes from no-op re-extractions.
func Diff(old, updated *Contract) []Change {
	var changes []Change

	if old.Version() != updated.Version() {
		changes = append(changes, Change{
			Kind:   VersionChanged,
			Detail: fmt.Sprintf("%s -> %s", old.Version(), updated.Version()),
		})
	}

	for _, p := range old.Properties() {
		np, ok := updated.Lookup(p.Name)
		if !ok {
			changes = append(changes, Change{
				Kind:     PropertyRemoved,
				Property: p.Name,
				Detail:   fmt.Sprintf("was %s", describeSpec(p)),
			})
			continue
		}
		if !p.Equal(np) {
			changes = append(changes, Change{
				Kind:     PropertyChanged,
				Property: p.Name,
				Detail:   fmt.Sprintf("%s -> %s", describeSpec(p), describeSpec(np)),
			})
		}
	}

	for _, np := range updated.Properties() {
		if _, ok := old.Lookup(np.Name); !ok {
			changes = append(changes, Change{
				Kind:     PropertyAdded,
				Property: np.Name,
				Detail:   describeSpec(np),
			})
		}
	}

	return changes
}

func describeSpec(p PropertySpec) string {
	var b strings.Builder
	if p.Required {
		b.WriteString("required ")
	} else {
		b.WriteString("optional ")
	}
	b.WriteString(p.Kind.String())
	if p.Kind == KindEnum {
		fmt.Fprintf(&b, " {%s}", strings.Join(p.AllowedValues, ", "))
	}
	fmt.Fprintf(&b, " (default %v)", p.Default)
	return b.String()
}
