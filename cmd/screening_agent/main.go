// Package main provides the entry point for the candidate screening agent CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "screening_agent",
	Short: "AI-assisted candidate screening pipeline",
	Long:  "screening_agent screens candidate batches against a job requirement, applies learned scoring adjustments, evaluates automation rules, and reports bias and performance roll-ups.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
