// Package database persists runs and their listings in Postgres or SQLite.
package database

import (
	"context"
	"fmt"

	"go-naukri-scraper/internal/models"
)

// Store keeps every run and the latest copy of each listing it produced.
// Listings are keyed by source and models.JobListing.Key; a listing seen
// again is updated in place and keeps its first_seen time.
type Store interface {
	EnsureSchema(ctx context.Context) error
	SaveRun(ctx context.Context, run models.Run, listings []models.JobListing) error
	RunListings(ctx context.Context, runID string) ([]models.StoredListing, error)
	Close()
}

// listingKey falls back to a per-run position for listings without a key.
func listingKey(runID string, i int, l models.JobListing) string {
	if key := l.Key(); key != "" {
		return key
	}
	return fmt.Sprintf("%s#%d", runID, i)
}
