package contract

import (
	"fmt"
	"io"
	"strings"
)

// WriteBinding emits a Go source file exposing the contract as typed
// constants, so implementations can consume the canonical property set
// without parsing the JSON artifact. Output is deterministic for a given
// contract.
func (c *Contract) WriteBinding(w io.Writer) error {
	prefix := exportName(c.meta.ComponentName)
	if prefix == "" {
		return fmt.Errorf("binding: component name %q yields no Go identifier", c.meta.ComponentName)
	}

	var b strings.Builder
	b.WriteString("// Code generated by driftguard extract. DO NOT EDIT.\n\n")
	b.WriteString("package contracts\n\n")
	fmt.Fprintf(&b, "// %sVersion is the contract format version %s was extracted under.\n", prefix, c.meta.ComponentName)
	fmt.Fprintf(&b, "const %sVersion = %q\n", prefix, c.meta.Version)

	for _, p := range c.props {
		if p.Kind != KindEnum {
			continue
		}
		fmt.Fprintf(&b, "\n// Allowed values for the %s property.\nconst (\n", p.Name)
		for _, v := range p.AllowedValues {
			fmt.Fprintf(&b, "\t%s%s%s = %q\n", prefix, exportName(p.Name), exportName(v), v)
		}
		b.WriteString(")\n")
	}

	fmt.Fprintf(&b, "\n// %sDefaults maps each contract property to its default value.\n", prefix)
	fmt.Fprintf(&b, "var %sDefaults = map[string]any{\n", prefix)
	for _, p := range c.props {
		switch d := p.Default.(type) {
		case string:
			fmt.Fprintf(&b, "\t%q: %q,\n", p.Name, d)
		default:
			fmt.Fprintf(&b, "\t%q: %v,\n", p.Name, d)
		}
	}
	b.WriteString("}\n")

	fmt.Fprintf(&b, "\n// %sRequired lists the properties every implementation must expose.\n", prefix)
	fmt.Fprintf(&b, "var %sRequired = []string{", prefix)
	for i, name := range c.RequiredNames() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q", name)
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// exportName turns an arbitrary design-tool name into an exported Go
// identifier fragment ("icon-position" -> "IconPosition").
func exportName(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z':
			if upper {
				r -= 'a' - 'A'
			}
			b.WriteRune(r)
			upper = false
		case r >= 'A' && r <= 'Z':
			b.WriteRune(r)
			upper = false
		case r >= '0' && r <= '9':
			if b.Len() > 0 {
				b.WriteRune(r)
			}
			upper = true
		default:
			upper = true
		}
	}
	return b.String()
}
