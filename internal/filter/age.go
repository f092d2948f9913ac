package filter

import (
	"fmt"
	"time"

	"go-naukri-scraper/internal/models"
	"go-naukri-scraper/pkg/logging"
)

// AgeDays is the number of whole calendar days from a YYYY-MM-DD date to
// now's date. Future dates are negative.
func AgeDays(parsedDate string, now time.Time) (int, error) {
	d, err := time.ParseInLocation(DateLayout, parsedDate, now.Location())
	if err != nil {
		return 0, fmt.Errorf("parse date %q: %w", parsedDate, err)
	}
	// Round absorbs the odd 23 or 25 hour day around DST changes.
	hours := startOfDay(now).Sub(d).Hours()
	if hours >= 0 {
		return int(hours/24 + 0.5), nil
	}
	return int(hours/24 - 0.5), nil
}

// ByAge keeps listings posted at most maxDays before now, in their original
// order. A listing with an unknown or unreadable date is always dropped.
func ByAge(listings []models.JobListing, maxDays int, now time.Time, log *logging.Logger) []models.JobListing {
	kept := make([]models.JobListing, 0, len(listings))
	for _, l := range listings {
		if l.ParsedDate == models.UnknownDate {
			continue
		}
		age, err := AgeDays(l.ParsedDate, now)
		if err != nil {
			log.Warn("⚠️ Dropping listing with unreadable date", "job_id", l.JobID, "parsed_date", l.ParsedDate, "error", err)
			continue
		}
		if age <= maxDays {
			kept = append(kept, l)
		}
	}
	log.Info("📅 Filtered listings by age", "before", len(listings), "after", len(kept), "max_days", maxDays)
	return kept
}
