package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"go-naukri-scraper/internal/models"
)

// Repository is the Postgres Store.
type Repository struct {
	db *pgxpool.Pool
}

func ConnectDB(ctx context.Context, connString string) (*Repository, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database url: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	// Transaction-mode poolers (PgBouncer) do not support prepared statements.
	config.ConnConfig.DefaultQueryExecMode = pgx.QueryExecModeExec

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("database unreachable: %w", err)
	}

	return &Repository{db: pool}, nil
}

func (r *Repository) Close() {
	if r.db != nil {
		r.db.Close()
	}
}

const pgSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id          UUID PRIMARY KEY,
	source      TEXT NOT NULL,
	job_title   TEXT NOT NULL,
	location    TEXT NOT NULL,
	time_frame  TEXT NOT NULL,
	pages       INT NOT NULL,
	listings    INT NOT NULL,
	started_at  TIMESTAMPTZ NOT NULL,
	finished_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS listings (
	source       TEXT NOT NULL,
	listing_key  TEXT NOT NULL,
	run_id       UUID NOT NULL REFERENCES runs(id),
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
	first_seen   TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (source, listing_key)
);

CREATE INDEX IF NOT EXISTS listings_run_id_idx ON listings (run_id);`

func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, pgSchema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const pgInsertRun = `
	INSERT INTO runs (id, source, job_title, location, time_frame, pages, listings, started_at, finished_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

// pgUpsertListing moves an existing listing to the newest run.
const pgUpsertListing = `
	INSERT INTO listings (source, listing_key, run_id, title, company, location, experience, salary,
		description, skills, link, posted_date, job_id, extracted_at, parsed_date)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	ON CONFLICT (source, listing_key)
	DO UPDATE SET run_id = EXCLUDED.run_id, title = EXCLUDED.title, company = EXCLUDED.company,
		location = EXCLUDED.location, experience = EXCLUDED.experience, salary = EXCLUDED.salary,
		description = EXCLUDED.description, skills = EXCLUDED.skills, link = EXCLUDED.link,
		posted_date = EXCLUDED.posted_date, job_id = EXCLUDED.job_id,
		extracted_at = EXCLUDED.extracted_at, parsed_date = EXCLUDED.parsed_date`

// SaveRun stores the run and upserts its listings in one transaction.
func (r *Repository) SaveRun(ctx context.Context, run models.Run, listings []models.JobListing) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	q := run.Query
	if _, err := tx.Exec(ctx, pgInsertRun, run.ID, run.Source, q.JobTitle, q.Location, string(q.TimeFrame),
		run.Pages, run.Listings, run.StartedAt, run.FinishedAt); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}

	batch := &pgx.Batch{}
	for i, l := range listings {
		batch.Queue(pgUpsertListing, listingArgs(run, i, l)...)
	}
	br := tx.SendBatch(ctx, batch)
	for i := range listings {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to save listing %d: %w", i, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to save listings: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit run: %w", err)
	}
	return nil
}

func (r *Repository) RunListings(ctx context.Context, runID string) ([]models.StoredListing, error) {
	rows, err := r.db.Query(ctx, selectRunListings("run_id::text", "$1"), runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	var out []models.StoredListing
	for rows.Next() {
		var s models.StoredListing
		if err := rows.Scan(scanTargets(&s)...); err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// LatestRun returns the most recently finished run.
func (r *Repository) LatestRun(ctx context.Context) (*models.Run, error) {
	var run models.Run
	var tf string
	err := r.db.QueryRow(ctx, `
		SELECT id::text, source, job_title, location, time_frame, pages, listings, started_at, finished_at
		FROM runs ORDER BY finished_at DESC LIMIT 1`).
		Scan(&run.ID, &run.Source, &run.Query.JobTitle, &run.Query.Location, &tf, &run.Pages, &run.Listings, &run.StartedAt, &run.FinishedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("no runs stored")
		}
		return nil, fmt.Errorf("failed to get latest run: %w", err)
	}
	run.Query.TimeFrame = models.TimeFrame(tf)
	return &run, nil
}

func listingArgs(run models.Run, i int, l models.JobListing) []any {
	return []any{
		run.Source, listingKey(run.ID, i, l), run.ID,
		l.Title, l.Company, l.Location, l.Experience, l.Salary, l.Description, l.Skills,
		l.Link, l.PostedDate, l.JobID, l.ExtractedAt, l.ParsedDate,
	}
}

// selectRunListings differs per dialect only in how run_id is read and bound.
func selectRunListings(runIDExpr, placeholder string) string {
	return `
		SELECT source, listing_key, ` + runIDExpr + `, title, company, location, experience, salary,
			description, skills, link, posted_date, job_id, extracted_at, parsed_date, first_seen
		FROM listings WHERE run_id = ` + placeholder + ` ORDER BY first_seen, listing_key`
}

func scanTargets(s *models.StoredListing) []any {
	return []any{
		&s.Source, &s.Key, &s.RunID,
		&s.Title, &s.Company, &s.Location, &s.Experience, &s.Salary, &s.Description, &s.Skills,
		&s.Link, &s.PostedDate, &s.JobID, &s.ExtractedAt, &s.ParsedDate, &s.FirstSeen,
	}
}
