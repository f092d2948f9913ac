package main

import (
	"fmt"
	"os"

	"go-naukri-scraper/internal/config"
)

func redact(s string) string {
	if len(s) <= 10 {
		return "(set)"
	}
	return s[:10] + "..."
}

func main() {
	fmt.Println("🔧 Testing config loading...")
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
	q, err := cfg.Search.Query()
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("✅ Config loaded successfully!\n")
	fmt.Printf("   Source: %q\n", cfg.Source)
	fmt.Printf("   Search: %s (%d pages, %d per page)\n", q.Describe(), q.PageCount, q.MaxJobsPerPage)
	fmt.Printf("   Headless: %t\n", cfg.Browser.Headless)
	fmt.Printf("   Formats: %v -> %s\n", cfg.Output.Formats, cfg.Output.DataDir)
	if cfg.Telegram.Enabled() {
		fmt.Printf("   Telegram Token: %s\n", redact(cfg.Telegram.Token))
		fmt.Printf("   Telegram Chat ID: %d\n", cfg.Telegram.ChatID)
	}
	fmt.Printf("   Postgres: %t, SQLite: %q\n", cfg.Database.URL != "", cfg.Database.SQLitePath)
	fmt.Printf("   Sheets: %t\n", cfg.Sheets.Enabled())
}
