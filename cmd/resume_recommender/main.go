// Package main provides the entry point for the resume recommender CLI and
// HTTP API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_recommender",
	Short: "Resume evaluation against a job description",
	Long:  "Resume Recommender scores candidate resumes against a job description with an LLM, validating the model output against a runtime-composed schema with HR-defined custom fields.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
