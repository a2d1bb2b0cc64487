package main

import (
	"context"
	"log"
	"time"

	"github.com/MATRIXJO/Intelligent-Real-Estate-Agent/internal/config"
	"github.com/MATRIXJO/Intelligent-Real-Estate-Agent/internal/repository"
	"github.com/MATRIXJO/Intelligent-Real-Estate-Agent/internal/service"
)

// Recomputes livability and investment scores for the whole corpus and
// writes them back. Run after each ingest.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	repo, err := repository.NewPostgresRepository(
		cfg.GetPostgreSQLDSN(),
		cfg.PostgreSQL.MaxConnections,
		cfg.PostgreSQL.MaxIdleConnections,
	)
	if err != nil {
		log.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	defer repo.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	listings, err := repo.AllListings(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch listings: %v", err)
	}
	log.Printf("Scoring %d listings", len(listings))

	start := time.Now()
	scores := service.ComputeBatchScores(listings)

	updated, errs := repo.UpdateScores(ctx, scores)
	for _, e := range errs {
		log.Printf("Warning: %s", e)
	}
	log.Printf("Updated %d/%d listings in %s", updated, len(scores), time.Since(start).Round(time.Millisecond))
}
