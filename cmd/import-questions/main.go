package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/drillbank/drillbank-backend/internal/config"
	"github.com/drillbank/drillbank-backend/internal/database"
	"github.com/drillbank/drillbank-backend/internal/logger"
	"github.com/drillbank/drillbank-backend/internal/repository"
	"github.com/drillbank/drillbank-backend/internal/service"
)

// Loads a JSON array of question objects straight into the bank, using
// the same validation and batching as the admin upload endpoint.
func main() {
	var path string
	flag.StringVar(&path, "file", "", "Path to the JSON question file")
	flag.Parse()

	if path == "" {
		fmt.Println("Usage: import-questions -file questions.json")
		os.Exit(1)
	}

	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	questionRepo := repository.NewQuestionRepository(pool)
	batchRepo := repository.NewImportBatchRepository(pool)
	questionService := service.NewQuestionService(questionRepo, batchRepo, log)

	payload, err := os.ReadFile(path)
	if err != nil {
		log.Fatal().Err(err).Str("file", path).Msg("Failed to read payload")
	}

	report, err := questionService.Import(ctx, filepath.Base(path), payload)
	if err != nil {
		log.Fatal().Err(err).Msg("Import failed")
	}

	fmt.Printf("=== Import Complete ===\n")
	fmt.Printf("Batch ID:  %d\n", report.BatchID)
	fmt.Printf("Inserted:  %d\n", report.Inserted)
	fmt.Printf("Skipped:   %d\n", report.Skipped)
	for _, rowErr := range report.Errors {
		fmt.Printf("  row %d: %s\n", rowErr.Row, rowErr.Reason)
	}
}
