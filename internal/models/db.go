package models

import (
	"time"
)

// Run is the stored record of one scrape.
type Run struct {
	ID         string      `json:"id"`
	Source     string      `json:"source"`
	Query      SearchQuery `json:"query"`
	Pages      int         `json:"pages"`
	Listings   int         `json:"listings"`
	StartedAt  time.Time   `json:"started_at"`
	FinishedAt time.Time   `json:"finished_at"`
}

// StoredListing is a listing row with its bookkeeping columns.
type StoredListing struct {
	JobListing
	Source    string    `json:"source"`
	Key       string    `json:"listing_key"`
	RunID     string    `json:"run_id"`
	FirstSeen time.Time `json:"first_seen"`
}
