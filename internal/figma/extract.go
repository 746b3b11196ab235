package figma

import (
	"context"
	"fmt"
	"time"

	"driftguard/internal/contract"
)

// Extract pulls the design state of the node and materializes it as a
// Contract. On success the result is complete: any property whose design
// type the contract model cannot represent fails the whole extraction
// with ErrUnmappedType instead of being dropped.
//
// Re-running against unchanged design state yields a Contract identical
// in every field except the extraction timestamp.
func (c *Client) Extract(ctx context.Context, componentName, nodeID string) (*contract.Contract, error) {
	dc, err := c.GetDesignContext(ctx, nodeID)
	if err != nil {
		return nil, err
	}

	props := make([]contract.PropertySpec, 0, len(dc.Properties))
	for _, def := range dc.Properties {
		spec, err := mapProperty(def)
		if err != nil {
			return nil, fmt.Errorf("extract %s: %w", componentName, err)
		}
		props = append(props, spec)
	}

	sourceID := dc.Node.ID
	if sourceID == "" {
		sourceID = nodeID
	}

	out, err := contract.New(contract.Meta{
		ComponentID:   contract.Slug(componentName),
		ComponentName: componentName,
		SourceID:      sourceID,
		ExtractedAt:   time.Now().UTC().Truncate(time.Second),
		Version:       contract.Version,
	}, props, dc.Tokens, dc.Typography)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", componentName, err)
	}
	return out, nil
}

// mapProperty translates one design-tool property definition into a
// PropertySpec.
func mapProperty(def PropertyDefinition) (contract.PropertySpec, error) {
	spec := contract.PropertySpec{
		Name:     def.Name,
		Required: def.Required,
	}

	switch def.Type {
	case typeVariant:
		spec.Kind = contract.KindEnum
		spec.AllowedValues = def.VariantOptions
		d, ok := def.DefaultValue.(string)
		if !ok {
			return spec, fmt.Errorf("property %q: variant default %v is not a string", def.Name, def.DefaultValue)
		}
		spec.Default = d
	case typeBoolean:
		spec.Kind = contract.KindBool
		d, ok := def.DefaultValue.(bool)
		if !ok {
			return spec, fmt.Errorf("property %q: boolean default %v is not a bool", def.Name, def.DefaultValue)
		}
		spec.Default = d
	case typeText:
		spec.Kind = contract.KindString
		d, _ := def.DefaultValue.(string)
		spec.Default = d
	default:
		return spec, fmt.Errorf("property %q: %w %q", def.Name, ErrUnmappedType, def.Type)
	}

	return spec, nil
}
