// Command e2e_test stores a sample run in the configured database and posts
// its listing to Telegram, to check both integrations end to end.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"go-naukri-scraper/internal/config"
	"go-naukri-scraper/internal/database"
	"go-naukri-scraper/internal/models"
	"go-naukri-scraper/internal/report"
	"go-naukri-scraper/internal/telegram"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Could not load config: %v", err)
	}
	if cfg.Database.URL == "" || !cfg.Telegram.Enabled() {
		log.Fatal("Missing DATABASE_URL, TELEGRAM_BOT_TOKEN, or TELEGRAM_CHAT_ID")
	}

	// 1. Connect DB
	ctx := context.Background()
	repo, err := database.ConnectDB(ctx, cfg.Database.URL)
	if err != nil {
		log.Fatalf("DB connection failed: %v", err)
	}
	defer repo.Close()
	if err := repo.EnsureSchema(ctx); err != nil {
		log.Fatalf("Could not create schema: %v", err)
	}

	// 2. Store a fake run with one listing
	now := time.Now()
	mockListing := models.JobListing{
		Title:       "Senior Data Analyst (SQL/Python)",
		Company:     "Acme Analytics",
		Location:    "Bengaluru",
		Experience:  "5-8 Yrs",
		Salary:      models.NotFound("Salary"),
		Description: "Own the reporting stack and mentor analysts.",
		Skills:      "SQL, Python, Tableau",
		Link:        fmt.Sprintf("https://www.naukri.com/job-listings-e2e-%d", now.Unix()),
		PostedDate:  "Posted today",
		JobID:       fmt.Sprintf("e2e-%d", now.Unix()),
		ExtractedAt: now.Format(models.ExtractedAtLayout),
		ParsedDate:  now.Format("2006-01-02"),
	}
	run := models.Run{
		ID:         uuid.NewString(),
		Source:     "e2e_test",
		Query:      models.SearchQuery{JobTitle: "data analyst", Location: "india", TimeFrame: models.TimeFrameDay, PageCount: 1, MaxJobsPerPage: 1},
		Pages:      1,
		Listings:   1,
		StartedAt:  now,
		FinishedAt: now,
	}
	if err := repo.SaveRun(ctx, run, []models.JobListing{mockListing}); err != nil {
		log.Fatalf("Could not save mock run: %v", err)
	}
	stored, err := repo.RunListings(ctx, run.ID)
	if err != nil || len(stored) != 1 {
		log.Fatalf("Could not read back mock run: %v (%d rows)", err, len(stored))
	}
	log.Printf("✅ DB Setup Complete. Run ID: %s, listing key: %s", run.ID, stored[0].Key)

	// 3. Post summary and listing via Telegram
	bot, err := telegram.NewBot(cfg.Telegram.Token, cfg.Telegram.ChatID)
	if err != nil {
		log.Fatalf("Failed to initialize telegram bot: %v", err)
	}
	listings := []models.JobListing{stored[0].JobListing}
	if err := bot.SendSummary(run.Query, report.Summarize(listings), len(listings)); err != nil {
		log.Fatalf("Failed to send summary: %v", err)
	}
	if err := bot.SendListing(listings[0]); err != nil {
		log.Fatalf("Failed to send listing: %v", err)
	}

	log.Println("✅ Sent test listing to Telegram! Check the chat.")
}
