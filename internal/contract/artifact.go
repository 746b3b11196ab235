package contract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// artifactJSON is the serialized contract artifact shape. The properties
// object preserves canonical declaration order on both marshal and
// unmarshal.
type artifactJSON struct {
	ComponentID   string         `json:"componentId"`
	ComponentName string         `json:"componentName"`
	SourceID      string         `json:"sourceId"`
	ExtractedAt   time.Time      `json:"extractedAt"`
	Version       string         `json:"version"`
	Properties    propertyList   `json:"properties"`
	DesignTokens  map[string]any `json:"designTokens"`
	Typography    map[string]any `json:"typography"`
}

type propertyList []PropertySpec

type propertyEntry struct {
	Required bool     `json:"required"`
	Default  any      `json:"default"`
	Values   []string `json:"values,omitempty"`
}

// MarshalJSON emits the properties as a JSON object in declaration order.
func (pl propertyList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range pl {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(p.Name)
		if err != nil {
			return nil, err
		}
		entry, err := json.Marshal(propertyEntry{
			Required: p.Required,
			Default:  p.Default,
			Values:   p.AllowedValues,
		})
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(entry)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes the properties object token by token so that
// declaration order survives the round trip (encoding/json maps would
// lose it).
func (pl *propertyList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("properties: expected object, got %v", tok)
	}

	var props []PropertySpec
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("properties: expected name, got %v", tok)
		}
		var entry propertyEntry
		if err := dec.Decode(&entry); err != nil {
			return fmt.Errorf("property %q: %w", name, err)
		}
		spec, err := specFromEntry(name, entry)
		if err != nil {
			return err
		}
		props = append(props, spec)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*pl = props
	return nil
}

// specFromEntry recovers the value kind from the artifact shape: a values
// list marks an enumerated property, a boolean default marks a boolean
// one, anything else is a free string.
func specFromEntry(name string, e propertyEntry) (PropertySpec, error) {
	spec := PropertySpec{
		Name:          name,
		Required:      e.Required,
		Default:       e.Default,
		AllowedValues: e.Values,
	}
	switch {
	case e.Values != nil:
		spec.Kind = KindEnum
	case isBool(e.Default):
		spec.Kind = KindBool
		spec.Default = e.Default.(bool)
	default:
		spec.Kind = KindString
		if e.Default == nil {
			spec.Default = ""
		}
	}
	return spec, nil
}

func isBool(v any) bool {
	_, ok := v.(bool)
	return ok
}

// MarshalJSON serializes the contract as its artifact form. Output is
// deterministic: two contracts extracted from identical design state
// differ only in the extractedAt field.
func (c *Contract) MarshalJSON() ([]byte, error) {
	return json.Marshal(artifactJSON{
		ComponentID:   c.meta.ComponentID,
		ComponentName: c.meta.ComponentName,
		SourceID:      c.meta.SourceID,
		ExtractedAt:   c.meta.ExtractedAt,
		Version:       c.meta.Version,
		Properties:    propertyList(c.props),
		DesignTokens:  c.designTokens,
		Typography:    c.typography,
	})
}

// UnmarshalJSON parses an artifact and re-checks the contract invariants.
func (c *Contract) UnmarshalJSON(data []byte) error {
	var a artifactJSON
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	parsed, err := New(Meta{
		ComponentID:   a.ComponentID,
		ComponentName: a.ComponentName,
		SourceID:      a.SourceID,
		ExtractedAt:   a.ExtractedAt,
		Version:       a.Version,
	}, a.Properties, a.DesignTokens, a.Typography)
	if err != nil {
		return err
	}
	*c = *parsed
	return nil
}

// ArtifactPath returns the fixed artifact path for a component under dir.
func ArtifactPath(dir, componentName string) string {
	return filepath.Join(dir, Slug(componentName)+".json")
}

// Save writes the contract artifact under dir, fully replacing any prior
// artifact for the component, and returns the written path.
func (c *Contract) Save(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("create contracts dir: %w", err)
	}
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal contract %s: %w", c.meta.ComponentID, err)
	}
	path := ArtifactPath(dir, c.meta.ComponentName)
	if err := os.WriteFile(path, append(data, '\n'), 0644); err != nil {
		return "", fmt.Errorf("write contract artifact: %w", err)
	}
	return path, nil
}

// Load reads a contract artifact from path.
func Load(path string) (*Contract, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read contract artifact: %w", err)
	}
	var c Contract
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse contract artifact %s: %w", path, err)
	}
	return &c, nil
}
