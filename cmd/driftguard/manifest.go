package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// manifest lists the components extract --all covers.
type manifest struct {
	Components []manifestEntry `yaml:"components"`
}

type manifestEntry struct {
	Name string `yaml:"name"`
	Node string `yaml:"node"`
}

func loadManifest(path string) (*manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	var m manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest %s: %w", path, err)
	}
	for i, entry := range m.Components {
		if entry.Name == "" || entry.Node == "" {
			return nil, fmt.Errorf("manifest %s: component #%d needs both name and node", path, i)
		}
	}
	return &m, nil
}
