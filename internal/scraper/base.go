// Define an interface for all scrapers
// Ensure consistency

package scraper

import (
	"context"

	"go-naukri-scraper/internal/models"
)

// Scraper defines the interface that all job board scrapers implement
type Scraper interface {
	// Scrape runs one search. Only a failure to start the browser session is
	// returned as an error; everything else degrades the Result instead.
	Scrape(ctx context.Context, q models.SearchQuery) (*Result, error)

	// Name is the job board name (Naukri, ...)
	Name() string
}
