package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go-naukri-scraper/internal/config"
	"go-naukri-scraper/pkg/logging"
)

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	//load config, then let flags win
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if err := opts.apply(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "❌ Invalid options: %v\n", err)
		os.Exit(2)
	}

	var sinks []string
	if cfg.LogFile != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err == nil {
			sinks = append(sinks, cfg.LogFile)
		}
	}
	log := logging.New(cfg.LogLevel, sinks...)
	defer log.Sync()
	if cfg.Source != "" {
		log.Info("🔧 Config loaded", "path", cfg.Source)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newPipeline(cfg, log).run(ctx); err != nil {
		log.Error("❌ Run failed", "error", err)
		log.Sync()
		os.Exit(1)
	}
	log.Info("🏁 Execution finished.")
}
