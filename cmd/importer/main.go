package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"jp-municipalities/internal/config"
	"jp-municipalities/internal/logger"
	"jp-municipalities/internal/models"
	"jp-municipalities/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load config
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	logger.Setup(cfg.LogLevel, cfg.LogFormat)

	file := flag.String("file", cfg.OutputPath, "Path to the generated municipalities JSON file")
	flag.Parse()

	log.Info().Str("file", *file).Msg("starting import")

	records, err := parseDataset(*file)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot parse dataset")
	}

	log.Info().Int("records", len(records)).Msg("parsed dataset")

	ctx := context.Background()

	// Connect to DB
	pool, err := pgxpool.New(ctx, cfg.DBSource)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot connect to db")
	}
	defer pool.Close()

	repo := repository.NewRepository(pool)

	// Ensure table exists
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatal().Err(err).Msg("cannot create table")
	}

	// Insert records
	if _, err := repo.ReplaceMunicipalities(ctx, records); err != nil {
		log.Fatal().Err(err).Msg("cannot insert records")
	}

	// Verify data
	if err := verifyImport(ctx, repo, len(records)); err != nil {
		log.Fatal().Err(err).Msg("cannot verify import")
	}

	log.Info().Int("records", len(records)).Msg("successfully imported")
}

func parseDataset(filePath string) ([]models.Municipality, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	var records []models.Municipality
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filePath, err)
	}

	seen := make(map[string]bool, len(records))
	for i, r := range records {
		if r.Code == "" {
			return nil, fmt.Errorf("record %d has no code", i)
		}
		if seen[r.Code] {
			return nil, fmt.Errorf("duplicate code %s", r.Code)
		}
		seen[r.Code] = true
	}

	return records, nil
}

func verifyImport(ctx context.Context, repo *repository.Repository, expectedCount int) error {
	count, err := repo.CountMunicipalities(ctx)
	if err != nil {
		return err
	}

	if count != expectedCount {
		return fmt.Errorf("record count mismatch: expected %d, got %d", expectedCount, count)
	}
	return nil
}
