package database

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"go-naukri-scraper/internal/models"
)

// SQLiteStore is the single-file Store for runs without a Postgres server.
type SQLiteStore struct {
	db *sql.DB
}

func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("could not create directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("unable to open sqlite database: %w", err)
	}
	// One writer at a time; sqlite serializes anyway.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite database unreachable: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() {
	if s.db != nil {
		s.db.Close()
	}
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id          TEXT PRIMARY KEY,
		source      TEXT NOT NULL,
		job_title   TEXT NOT NULL,
		location    TEXT NOT NULL,
		time_frame  TEXT NOT NULL,
		pages       INTEGER NOT NULL,
		listings    INTEGER NOT NULL,
		started_at  TIMESTAMP NOT NULL,
		finished_at TIMESTAMP NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS listings (
		source       TEXT NOT NULL,
		listing_key  TEXT NOT NULL,
		run_id       TEXT NOT NULL REFERENCES runs(id),
		title        TEXT NOT NULL,
		company      TEXT NOT NULL,
		location     TEXT NOT NULL,
		experience   TEXT NOT NULL,
		salary       TEXT NOT NULL,
		description  TEXT NOT NULL,
		skills       TEXT NOT NULL,
		link         TEXT NOT NULL,
		posted_date  TEXT NOT NULL,
		job_id       TEXT NOT NULL,
		extracted_at TEXT NOT NULL,
		parsed_date  TEXT NOT NULL,
		first_seen   TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (source, listing_key)
	)`,
	`CREATE INDEX IF NOT EXISTS listings_run_id_idx ON listings (run_id)`,
}

func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	for _, stmt := range sqliteSchema {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

const sqliteUpsertListing = `
	INSERT INTO listings (source, listing_key, run_id, title, company, location, experience, salary,
		description, skills, link, posted_date, job_id, extracted_at, parsed_date)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT (source, listing_key)
	DO UPDATE SET run_id = excluded.run_id, title = excluded.title, company = excluded.company,
		location = excluded.location, experience = excluded.experience, salary = excluded.salary,
		description = excluded.description, skills = excluded.skills, link = excluded.link,
		posted_date = excluded.posted_date, job_id = excluded.job_id,
		extracted_at = excluded.extracted_at, parsed_date = excluded.parsed_date`

func (s *SQLiteStore) SaveRun(ctx context.Context, run models.Run, listings []models.JobListing) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	q := run.Query
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, source, job_title, location, time_frame, pages, listings, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, q.JobTitle, q.Location, string(q.TimeFrame), run.Pages, run.Listings,
		run.StartedAt.UTC(), run.FinishedAt.UTC()); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, sqliteUpsertListing)
	if err != nil {
		return fmt.Errorf("failed to prepare listing upsert: %w", err)
	}
	defer stmt.Close()
	for i, l := range listings {
		if _, err := stmt.ExecContext(ctx, listingArgs(run, i, l)...); err != nil {
			return fmt.Errorf("failed to save listing %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

func (s *SQLiteStore) RunListings(ctx context.Context, runID string) ([]models.StoredListing, error) {
	rows, err := s.db.QueryContext(ctx, selectRunListings("run_id", "?"), runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	var out []models.StoredListing
	for rows.Next() {
		var l models.StoredListing
		if err := rows.Scan(scanTargets(&l)...); err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
