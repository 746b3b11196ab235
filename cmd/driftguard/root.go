package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"driftguard/internal/config"
	"driftguard/internal/logging"
)

// version is set at build time via -ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "driftguard",
	Short: "Design contract extraction and drift validation",
	Long: "Driftguard keeps hand-written component implementations consistent with\n" +
		"a canonical design contract extracted from the design tool, and flags\n" +
		"any implementation that drifts from it.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
}

var rootFlags struct {
	configPath string
}

func init() {
	rootCmd.PersistentFlags().StringVar(&rootFlags.configPath, "config", "", "Config file path (default "+config.DefaultPath+")")
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(auditCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(diffCmd)
	rootCmd.Version = version
}

// loadConfig resolves the tool configuration and bootstraps logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(rootFlags.configPath)
	if err != nil {
		return nil, err
	}
	logging.Init(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
