// Command probe reports how the naukri locators cover a results page, either
// loaded live or read from saved page source.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go-naukri-scraper/internal/browser"
	"go-naukri-scraper/internal/config"
	"go-naukri-scraper/internal/dom"
	"go-naukri-scraper/internal/dom/static"
	"go-naukri-scraper/internal/probe"
	"go-naukri-scraper/internal/scraper/naukri"
	"go-naukri-scraper/pkg/logging"
)

func main() {
	var (
		configPath = flag.String("config", config.DefaultPath, "path to the YAML config file")
		url        = flag.String("url", naukri.BaseURL+"/data-analyst-jobs-in-india", "page to load in the browser")
		file       = flag.String("file", "", "saved page source to analyze instead of loading -url")
		saveHTML   = flag.String("save-html", "", "write the loaded page source here")
		cards      = flag.Int("cards", 5, "number of cards sampled for field coverage")
		asJSON     = flag.Bool("json", false, "print the report as JSON")
	)
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}
	log := logging.New(cfg.LogLevel)
	defer log.Sync()

	site := naukri.Site()
	ctx := context.Background()

	var page dom.Page
	if *file != "" {
		source, err := os.ReadFile(*file)
		if err != nil {
			log.Fatal("❌ Failed to read page source", "error", err)
		}
		sp := static.NewPage(nil)
		if err := sp.SetContent(*url, string(source)); err != nil {
			log.Fatal("❌ Failed to parse page source", "error", err)
		}
		page = sp
	} else {
		session, err := browser.NewLauncher(cfg.Browser, log).Start(ctx)
		if err != nil {
			log.Fatal("❌ Failed to start browser", "error", err)
		}
		defer session.Close()
		page = session.Page()

		log.Info("Accessing URL", "url", *url)
		if err := page.Navigate(*url); err != nil {
			log.Fatal("❌ Failed to load page", "error", err)
		}
		if err := page.WaitFor(site.Readiness, cfg.Navigation.ReadinessTimeout); err != nil {
			log.Warn("⚠️ Timeout waiting for page to load, continuing anyway", "error", err)
		}
		shot := filepath.Join(cfg.Output.ScreenshotsDir, fmt.Sprintf("probe_%s.png", time.Now().Format("20060102_150405")))
		if err := os.MkdirAll(filepath.Dir(shot), 0755); err == nil {
			if err := page.Screenshot(shot); err == nil {
				log.Info("📸 Screenshot saved", "path", shot)
			}
		}
	}

	if *saveHTML != "" {
		if source, err := page.Content(); err == nil {
			if err := os.WriteFile(*saveHTML, []byte(source), 0644); err != nil {
				log.Warn("⚠️ Could not save page source", "error", err)
			} else {
				log.Info("HTML source saved", "path", *saveHTML)
			}
		}
	}

	rep, err := probe.Analyze(page, site, *cards, log)
	if err != nil {
		log.Fatal("❌ Analysis failed", "error", err)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rep); err != nil {
			log.Fatal("❌ Failed to encode report", "error", err)
		}
		return
	}
	if err := rep.Write(os.Stdout); err != nil {
		log.Fatal("❌ Failed to print report", "error", err)
	}
}
