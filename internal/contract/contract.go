// Package contract models the canonical specification of a visual
// component: its configurable properties, their rules, and the design
// tokens captured at extraction time. Contracts are immutable values;
// re-extraction produces a new Contract, never an in-place change.
package contract

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Version is the semantic version of the contract format itself.
const Version = "1.0.0"

// ValueKind classifies how a property's value is checked.
type ValueKind int

const (
	// KindString is a free string, never value-checked.
	KindString ValueKind = iota
	// KindEnum restricts the value to an ordered set of strings.
	KindEnum
	// KindBool requires a boolean value.
	KindBool
)

func (k ValueKind) String() string {
	switch k {
	case KindEnum:
		return "enum"
	case KindBool:
		return "boolean"
	default:
		return "string"
	}
}

// PropertySpec is the rule set governing one property within a Contract.
type PropertySpec struct {
	Name     string
	Required bool
	// Default is a value of the property's declared kind, present even
	// when the property is optional.
	Default any
	// AllowedValues is the ordered set of permitted values for KindEnum
	// properties and nil otherwise.
	AllowedValues []string
	Kind          ValueKind
}

// Equal reports structural equality of two property specs.
func (s PropertySpec) Equal(o PropertySpec) bool {
	return s.Name == o.Name &&
		s.Required == o.Required &&
		s.Default == o.Default &&
		s.Kind == o.Kind &&
		slices.Equal(s.AllowedValues, o.AllowedValues)
}

// Meta identifies one extracted contract.
type Meta struct {
	ComponentID   string
	ComponentName string
	// SourceID is an opaque reference into the design tool (node ID).
	SourceID    string
	ExtractedAt time.Time
	Version     string
}

// Contract is one component's canonical specification. The zero value is
// not usable; construct with New or Load.
type Contract struct {
	meta         Meta
	props        []PropertySpec
	index        map[string]int
	designTokens map[string]any
	typography   map[string]any
}

// New builds a Contract and checks its invariants: property names are
// unique, enumerated defaults are members of their allowed values,
// allowed values (when present) are non-empty, and defaults match their
// declared kind.
func New(meta Meta, props []PropertySpec, designTokens, typography map[string]any) (*Contract, error) {
	if meta.ComponentID == "" {
		return nil, fmt.Errorf("contract: componentId is required")
	}
	if meta.Version == "" {
		meta.Version = Version
	}

	index := make(map[string]int, len(props))
	for i, p := range props {
		if p.Name == "" {
			return nil, fmt.Errorf("contract %s: property #%d has no name", meta.ComponentID, i)
		}
		if _, dup := index[p.Name]; dup {
			return nil, fmt.Errorf("contract %s: duplicate property %q", meta.ComponentID, p.Name)
		}
		if err := checkSpec(p); err != nil {
			return nil, fmt.Errorf("contract %s: %w", meta.ComponentID, err)
		}
		index[p.Name] = i
	}

	return &Contract{
		meta:         meta,
		props:        slices.Clone(props),
		index:        index,
		designTokens: designTokens,
		typography:   typography,
	}, nil
}

func checkSpec(p PropertySpec) error {
	switch p.Kind {
	case KindEnum:
		if len(p.AllowedValues) == 0 {
			return fmt.Errorf("property %q: enumerated property has no allowed values", p.Name)
		}
		d, ok := p.Default.(string)
		if !ok {
			return fmt.Errorf("property %q: enumerated default %v is not a string", p.Name, p.Default)
		}
		if !slices.Contains(p.AllowedValues, d) {
			return fmt.Errorf("property %q: default %q is not an allowed value", p.Name, d)
		}
	case KindBool:
		if p.AllowedValues != nil {
			return fmt.Errorf("property %q: boolean property cannot enumerate values", p.Name)
		}
		if _, ok := p.Default.(bool); !ok {
			return fmt.Errorf("property %q: boolean default %v is not a bool", p.Name, p.Default)
		}
	case KindString:
		if p.AllowedValues != nil {
			return fmt.Errorf("property %q: free-string property cannot enumerate values", p.Name)
		}
		if _, ok := p.Default.(string); !ok {
			return fmt.Errorf("property %q: string default %v is not a string", p.Name, p.Default)
		}
	default:
		return fmt.Errorf("property %q: unknown value kind %d", p.Name, p.Kind)
	}
	return nil
}

func (c *Contract) ComponentID() string    { return c.meta.ComponentID }
func (c *Contract) ComponentName() string  { return c.meta.ComponentName }
func (c *Contract) SourceID() string       { return c.meta.SourceID }
func (c *Contract) ExtractedAt() time.Time { return c.meta.ExtractedAt }
func (c *Contract) Version() string        { return c.meta.Version }

// Properties returns every property spec in canonical declaration order.
func (c *Contract) Properties() []PropertySpec {
	return slices.Clone(c.props)
}

// Lookup returns the spec for name, if declared.
func (c *Contract) Lookup(name string) (PropertySpec, bool) {
	i, ok := c.index[name]
	if !ok {
		return PropertySpec{}, false
	}
	return c.props[i], true
}

// RequiredNames returns the names of all required properties in
// declaration order.
func (c *Contract) RequiredNames() []string {
	var names []string
	for _, p := range c.props {
		if p.Required {
			names = append(names, p.Name)
		}
	}
	return names
}

// AllowedValues returns the permitted values for an enumerated property
// in declaration order, or nil if the property is absent or not
// enumerated.
func (c *Contract) AllowedValues(name string) []string {
	p, ok := c.Lookup(name)
	if !ok || p.Kind != KindEnum {
		return nil
	}
	return slices.Clone(p.AllowedValues)
}

// DesignTokens returns the token categories captured at extraction.
// Informational only; not subject to structural validation.
func (c *Contract) DesignTokens() map[string]any { return c.designTokens }

// Typography returns the typography payload captured at extraction.
func (c *Contract) Typography() map[string]any { return c.typography }

// SameVersion reports whether two contracts are the same version:
// componentId, format version, and every property spec equal, in the same
// declaration order. The extraction timestamp and token payloads are
// excluded, so a no-op re-extraction compares as the same version.
func (c *Contract) SameVersion(o *Contract) bool {
	if o == nil {
		return false
	}
	if c.meta.ComponentID != o.meta.ComponentID || c.meta.Version != o.meta.Version {
		return false
	}
	return slices.EqualFunc(c.props, o.props, PropertySpec.Equal)
}

// Slug derives the artifact file stem from a component name:
// lowercased, with runs of non-alphanumerics collapsed to single dashes.
func Slug(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		default:
			if !dash && b.Len() > 0 {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
