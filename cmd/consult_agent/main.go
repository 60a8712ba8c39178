// Package main provides the entry point for the consult-copilot CLI and
// HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "consult_agent",
	Short: "Career consulting copilot",
	Long:  "Consult-copilot turns a student profile into an AI competitiveness diagnosis, a sales proposal, and an editable service quote, via CLI or REST API.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
