package main

import (
	"context"
	"fmt"
	"log"

	"go-naukri-scraper/internal/browser"
	"go-naukri-scraper/internal/config"
	"go-naukri-scraper/internal/scraper/naukri"
	"go-naukri-scraper/pkg/logging"
)

func main() {
	fmt.Println("🌐 Testing Browser Launcher...")

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	session, err := browser.NewLauncher(cfg.Browser, logging.New(cfg.LogLevel)).Start(context.Background())
	if err != nil {
		log.Fatalf("Failed to start browser: %v", err)
	}
	defer session.Close()
	fmt.Println("✅ Browser session started")

	page := session.Page()
	fmt.Println("🔍 Navigating to Naukri...")
	if err := page.Navigate(naukri.BaseURL); err != nil {
		log.Fatalf("Failed to navigate: %v", err)
	}

	title, _ := page.Title()
	fmt.Printf("✅ Page title: %s\n", title)

	if err := page.Screenshot("naukri-test.png"); err != nil {
		log.Printf("Failed to take screenshot: %v", err)
	} else {
		fmt.Println("📸 Screenshot saved: naukri-test.png")
	}
	fmt.Println("✨ Test complete!")
}
