// Package main provides the entry point for the Visual Thesis portfolio server and CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/blkdmnd/visual-thesis/internal/config"
	"github.com/blkdmnd/visual-thesis/internal/llm"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "portfolio",
	Short: "Visual Thesis portfolio server and CLI",
	Long: "Visual Thesis serves an AI-native portfolio: a grounded recruiter chat, resume alignment " +
		"against job descriptions with PDF export, and a walkthrough of how the site works.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML or JSON config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and environment; --verbose wins over VERBOSE.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if verbose {
		cfg.Verbose = true
	}
	return cfg, nil
}

// newLLMClient creates the configured provider client.
func newLLMClient(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	if cfg.LLM.APIKey == "" && cfg.LLMClientConfig().Provider == llm.ProviderGemini {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}
	client, err := llm.NewClient(ctx, cfg.LLMClientConfig(), cfg.LLM.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	return client, nil
}
