package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"driftguard/internal/config"
	"driftguard/internal/contract"
	"driftguard/internal/figma"
	"driftguard/internal/logging"
)

var extractFlags struct {
	all        bool
	binding    bool
	timeout    int
	outDir     string
	serviceURL string
}

var extractCmd = &cobra.Command{
	Use:   "extract [component-name] [node-id]",
	Short: "Extract a component's design contract from the design tool",
	Long: `Extract queries the design tool's local service for the current design
state of a component node and writes the versioned contract artifact.

Usage:
  driftguard extract Button 1:23        # one component
  driftguard extract --all              # every component in the manifest

The design tool must be running with its local query service enabled,
dev interaction mode turned on, and the target node selected.`,
	Args: cobra.MaximumNArgs(2),
	RunE: runExtract,
}

func init() {
	f := extractCmd.Flags()
	f.BoolVar(&extractFlags.all, "all", false, "Extract every component listed in the manifest")
	f.BoolVar(&extractFlags.binding, "binding", false, "Also write the generated Go binding next to the artifact")
	f.IntVar(&extractFlags.timeout, "timeout", 0, "Request timeout in seconds (default: config timeout_seconds)")
	f.StringVarP(&extractFlags.outDir, "output", "o", "", "Contracts directory (default: config contracts_dir)")
	f.StringVar(&extractFlags.serviceURL, "service-url", "", "Design query service URL (default: config service_url)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	client, err := newExtractClient(cfg)
	if err != nil {
		return err
	}
	outDir := extractFlags.outDir
	if outDir == "" {
		outDir = cfg.ContractsDir
	}

	if extractFlags.all {
		if len(args) > 0 {
			return fmt.Errorf("--all takes no positional arguments")
		}
		return extractAll(cmd.Context(), client, cfg.ManifestPath, outDir)
	}

	if len(args) != 2 {
		return fmt.Errorf("component name and node ID are required\n\n" +
			"Usage: driftguard extract <component-name> <node-id>\n" +
			"       driftguard extract --all")
	}
	return extractOne(cmd.Context(), client, outDir, args[0], args[1])
}

func newExtractClient(cfg *config.Config) (*figma.Client, error) {
	serviceURL := extractFlags.serviceURL
	if serviceURL == "" {
		serviceURL = cfg.ServiceURL
	}
	timeout := extractFlags.timeout
	if timeout == 0 {
		timeout = cfg.TimeoutSeconds
	}
	return figma.New(serviceURL,
		figma.WithTimeout(time.Duration(timeout)*time.Second),
		figma.WithLogger(logging.New("figma")),
	)
}

func extractOne(ctx context.Context, client *figma.Client, outDir, name, nodeID string) error {
	c, err := client.Extract(ctx, name, nodeID)
	if err != nil {
		return err
	}

	path, err := c.Save(outDir)
	if err != nil {
		return err
	}
	fmt.Printf("Contract: %s\n", path)

	if extractFlags.binding {
		bindingPath := contract.ArtifactPath(outDir, name)
		bindingPath = bindingPath[:len(bindingPath)-len(".json")] + ".go"
		f, err := os.Create(bindingPath)
		if err != nil {
			return fmt.Errorf("create binding file: %w", err)
		}
		defer f.Close()
		if err := c.WriteBinding(f); err != nil {
			return fmt.Errorf("write binding: %w", err)
		}
		fmt.Printf("Binding:  %s\n", bindingPath)
	}
	return nil
}

// extractAll fans the manifest entries out through an errgroup. Each
// extraction produces an independent contract value; nothing is shared
// between goroutines beyond the client.
func extractAll(ctx context.Context, client *figma.Client, manifestPath, outDir string) error {
	m, err := loadManifest(manifestPath)
	if err != nil {
		return err
	}
	if len(m.Components) == 0 {
		return fmt.Errorf("manifest %s lists no components", manifestPath)
	}

	g, ctx := errgroup.WithContext(ctx)
	for _, entry := range m.Components {
		entry := entry
		g.Go(func() error {
			return extractOne(ctx, client, outDir, entry.Name, entry.Node)
		})
	}
	return g.Wait()
}
