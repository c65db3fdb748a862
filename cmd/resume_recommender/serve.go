package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/resume-recommender/internal/db"
	"github.com/jonathan/resume-recommender/internal/llm"
	"github.com/jonathan/resume-recommender/internal/server"
)

var (
	serveAddr        string
	serveParallelism int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes REST endpoints for evaluating resumes against job descriptions.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Address to listen on")
	serveCmd.Flags().IntVarP(&serveParallelism, "parallelism", "p", 0, "Concurrent model calls per request (default 4)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return fmt.Errorf("GEMINI_API_KEY environment variable is required")
	}

	client, err := llm.NewGeminiClient(cmd.Context(), llm.DefaultConfig(), apiKey)
	if err != nil {
		return fmt.Errorf("failed to create model client: %w", err)
	}

	// The database is optional: without it the server evaluates but does not
	// persist or list results.
	var database *db.DB
	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		database, err = db.Connect(context.Background(), databaseURL)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := database.EnsureSchema(context.Background()); err != nil {
			return err
		}
	}

	srv := server.New(server.Config{
		Addr:        serveAddr,
		Parallelism: serveParallelism,
	}, client, database)

	return srv.Start()
}
