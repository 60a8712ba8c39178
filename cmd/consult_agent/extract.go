package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/highmark/consult-copilot/internal/config"
	"github.com/highmark/consult-copilot/internal/extraction"
	"github.com/highmark/consult-copilot/internal/llm"
)

var (
	extractResume string
	extractAPIKey string
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract profile fields from a résumé file",
	Long:  `Sends a résumé document to the vision model and prints the extracted profile fields as JSON. Useful for inspecting extraction quality in isolation.`,
	RunE:  runExtractCmd,
}

func init() {
	extractCmd.Flags().StringVarP(&extractResume, "resume", "r", "", "Path to a résumé file (PDF or image)")
	extractCmd.Flags().StringVar(&extractAPIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	extractCmd.MarkFlagRequired("resume") //nolint:errcheck
	rootCmd.AddCommand(extractCmd)
}

func runExtractCmd(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg := config.FromEnv()
	if cmd.Flags().Changed("api-key") {
		cfg.APIKey = extractAPIKey
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("API key is required: set GEMINI_API_KEY or pass --api-key")
	}

	document, err := os.ReadFile(extractResume)
	if err != nil {
		return fmt.Errorf("failed to read résumé file: %w", err)
	}

	client, err := llm.NewGeminiClient(ctx, cfg.LLMConfig())
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer client.Close()

	engine := extraction.NewEngine(client)
	patch, extractErr := engine.Extract(ctx, document, resumeMIMEType(extractResume))
	if extractErr != nil {
		fmt.Fprintf(os.Stderr, "Extraction degraded: %v\n", extractErr)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(patch)
}
