package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go-naukri-scraper/internal/browser"
	"go-naukri-scraper/internal/config"
	"go-naukri-scraper/internal/database"
	"go-naukri-scraper/internal/dedup"
	"go-naukri-scraper/internal/export"
	"go-naukri-scraper/internal/filter"
	"go-naukri-scraper/internal/models"
	"go-naukri-scraper/internal/report"
	"go-naukri-scraper/internal/scraper"
	"go-naukri-scraper/internal/scraper/naukri"
	"go-naukri-scraper/internal/telegram"
	"go-naukri-scraper/pkg/logging"
	"go-naukri-scraper/pkg/sheets"
	"go-naukri-scraper/utils"
)

// maxNotifications caps the listings posted to Telegram per run.
const maxNotifications = 20

// pipeline is one scrape followed by everything done with its listings.
type pipeline struct {
	cfg *config.Config
	log *logging.Logger
}

func newPipeline(cfg *config.Config, log *logging.Logger) *pipeline {
	return &pipeline{cfg: cfg, log: log}
}

func (p *pipeline) run(ctx context.Context) error {
	q, err := p.cfg.Search.Query()
	if err != nil {
		return err
	}

	var bot *telegram.Bot
	if p.cfg.Telegram.Enabled() {
		bot, err = telegram.NewBot(p.cfg.Telegram.Token, p.cfg.Telegram.ChatID)
		if err != nil {
			p.log.Warn("⚠️ Telegram disabled", "error", err)
		} else {
			p.log.Info("🤖 Telegram Bot initialized.")
		}
	}

	var s scraper.Scraper = scraper.NewOrchestrator(
		browser.NewLauncher(p.cfg.Browser, p.log),
		naukri.Site(),
		p.cfg,
		utils.NewPacer(time.Now().UnixNano()),
		export.NewSnapshotter(p.cfg.Output.DataDir, p.log),
		p.log,
	)
	res, scrapeErr := s.Scrape(ctx, q)
	if errors.Is(scrapeErr, scraper.ErrSessionStart) || res == nil {
		if bot != nil {
			_ = bot.SendError(scrapeErr)
		}
		return scrapeErr
	}
	if scrapeErr != nil {
		// Cancelled: keep what was extracted.
		p.log.Warn("⚠️ Scrape interrupted, saving partial results", "error", scrapeErr)
	}

	listings := p.postFilter(res.Listings)

	if err := p.export(ctx, q, listings); err != nil {
		p.log.Error("❌ Error saving data", "error", err)
	}

	summary := report.Summarize(listings)
	summary.Log(p.log)

	p.store(ctx, s.Name(), res, listings)

	cache := dedup.NewJobCache(p.cfg.Output.CachePath, p.log)
	fresh := cache.Unseen(listings)
	p.log.Info("🔍 Deduplication", "total", len(listings), "unseen", len(fresh))
	if bot != nil {
		p.notify(ctx, bot, q, summary, fresh)
	}
	cache.Add(fresh)

	p.log.Info("✅ Scraping complete", "listings", len(listings), "data_dir", p.cfg.Output.DataDir)
	return scrapeErr
}

// postFilter applies the age filter, keeping the unfiltered listings when
// nothing would survive it.
func (p *pipeline) postFilter(listings []models.JobListing) []models.JobListing {
	days := p.cfg.Search.PostFilterDays
	if days <= 0 || len(listings) == 0 {
		return listings
	}
	p.log.Info("Applying additional date filtering", "max_days", days)
	filtered := filter.ByAge(listings, days, time.Now(), p.log)
	if len(filtered) == 0 {
		p.log.Warn("⚠️ No listings within the age limit, keeping all of them", "max_days", days)
		return listings
	}
	return filtered
}

func (p *pipeline) export(ctx context.Context, q models.SearchQuery, listings []models.JobListing) error {
	exporter := export.NewExporter(p.cfg.Output.DataDir, p.log)
	exporter.Register("pdf", export.Format{Ext: "pdf", Write: func(path string, listings []models.JobListing) error {
		pm, err := browser.NewPlaywright(ctx, p.cfg.Browser)
		if err != nil {
			return err
		}
		defer pm.Close()
		return report.WritePDF(pm, path, report.NewDocument(q, listings, time.Now()))
	}})

	_, err := exporter.Save(q, listings, p.cfg.Output.Formats)

	if p.cfg.Sheets.Enabled() && len(listings) > 0 {
		if sheetErr := p.writeSheet(ctx, listings); sheetErr != nil {
			err = errors.Join(err, sheetErr)
		}
	}
	return err
}

func (p *pipeline) writeSheet(ctx context.Context, listings []models.JobListing) error {
	client, err := sheets.NewClient(ctx, sheets.Config{CredentialsPath: p.cfg.Sheets.CredentialsPath})
	if err != nil {
		return err
	}
	w := export.NewSheetsWriter(client, p.cfg.Sheets.SpreadsheetID, p.cfg.Sheets.Range)
	if err := w.Write(ctx, listings); err != nil {
		return err
	}
	p.log.Info("📗 Updated Google Sheet", "spreadsheet_id", p.cfg.Sheets.SpreadsheetID, "rows", len(listings))
	return nil
}

func (p *pipeline) openStore(ctx context.Context) (database.Store, error) {
	switch {
	case p.cfg.Database.URL != "":
		return database.ConnectDB(ctx, p.cfg.Database.URL)
	case p.cfg.Database.SQLitePath != "":
		return database.OpenSQLite(ctx, p.cfg.Database.SQLitePath)
	default:
		return nil, nil
	}
}

// store persists the run when a database is configured. Failures are logged.
func (p *pipeline) store(ctx context.Context, source string, res *scraper.Result, listings []models.JobListing) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()

	store, err := p.openStore(ctx)
	if err != nil {
		p.log.Error("❌ Database unavailable", "error", err)
		return
	}
	if store == nil {
		return
	}
	defer store.Close()

	if err := store.EnsureSchema(ctx); err != nil {
		p.log.Error("❌ Database schema", "error", err)
		return
	}
	run := models.Run{
		ID:         res.RunID,
		Source:     source,
		Query:      res.Query,
		Pages:      res.Pages,
		Listings:   len(listings),
		StartedAt:  res.Started,
		FinishedAt: res.Finished,
	}
	if err := store.SaveRun(ctx, run, listings); err != nil {
		p.log.Error("❌ Failed to store run", "error", err)
		return
	}
	p.log.Info("🗄️ Stored run", "run_id", run.ID, "listings", len(listings))
}

func (p *pipeline) notify(ctx context.Context, bot *telegram.Bot, q models.SearchQuery, s report.Summary, fresh []models.JobListing) {
	if err := bot.SendSummary(q, s, len(fresh)); err != nil {
		p.log.Warn("⚠️ Failed to send summary to Telegram", "error", err)
	}
	for i, l := range fresh {
		if i == maxNotifications {
			p.log.Info("Notification cap reached", "sent", i, "unsent", len(fresh)-i)
			break
		}
		if err := bot.SendListing(l); err != nil {
			p.log.Warn("⚠️ Failed to send job to Telegram", "error", err)
		}
		// Stay under Telegram's per-chat rate limit.
		select {
		case <-ctx.Done():
			return
		case <-time.After(time.Second):
		}
	}
	if err := bot.SendStatus(fmt.Sprintf("Found %d new listings.", len(fresh))); err != nil {
		p.log.Warn("⚠️ Failed to send status to Telegram", "error", err)
	}
}
