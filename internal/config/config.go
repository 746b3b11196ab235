// Package config loads tool configuration with the priority
// environment > config file > defaults.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultPath is the per-project config file location.
const DefaultPath = ".driftguard/config.json"

// Config is the driftguard tool configuration.
type Config struct {
	// ServiceURL is the loopback address of the design query service.
	ServiceURL     string `koanf:"service_url" validate:"required,url"`
	TimeoutSeconds int    `koanf:"timeout_seconds" validate:"min=1,max=600"`
	// ContractsDir receives extracted contract artifacts.
	ContractsDir string `koanf:"contracts_dir" validate:"required"`
	// ManifestPath lists the components extract --all covers.
	ManifestPath string `koanf:"manifest_path" validate:"required"`
	// AuditSourcePath is the implementation source the audit command scans.
	AuditSourcePath string `koanf:"audit_source_path" validate:"required"`
	// AuditPropsPath optionally declares the implementation's property bag.
	AuditPropsPath string `koanf:"audit_props_path"`
	LogLevel       string `koanf:"log_level" validate:"oneof=debug info warn error"`
	LogFormat      string `koanf:"log_format" validate:"oneof=text json"`
}

// Defaults returns the built-in configuration values.
func Defaults() map[string]any {
	return map[string]any{
		"service_url":       "http://127.0.0.1:3845/mcp",
		"timeout_seconds":   30,
		"contracts_dir":     ".driftguard/contracts",
		"manifest_path":     ".driftguard/components.yaml",
		"audit_source_path": "implementations/button/button.html",
		"audit_props_path":  "implementations/button/props.json",
		"log_level":         "info",
		"log_format":        "text",
	}
}

// Load reads configuration from path (DefaultPath when empty) layered
// under DRIFTGUARD_* environment variables, then validates the result.
// A missing config file is not an error; the defaults apply.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	for key, value := range Defaults() {
		k.Set(key, value)
	}

	if path == "" {
		path = DefaultPath
	}
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return nil, fmt.Errorf("load config %s: %w", path, err)
		}
	}

	k.Load(env.Provider("DRIFTGUARD_", ".", envTransform), nil)

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// envTransform converts environment variable names to config keys.
// Example: DRIFTGUARD_SERVICE_URL -> service_url.
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, "DRIFTGUARD_"))
}
