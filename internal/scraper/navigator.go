package scraper

import (
	"context"
	"time"

	"golang.org/x/time/rate"

	"go-naukri-scraper/internal/config"
	"go-naukri-scraper/internal/dom"
	"go-naukri-scraper/pkg/logging"
	"go-naukri-scraper/utils"
)

// Navigator loads pages with bounded retries. A load is successful once the
// readiness selector matches.
type Navigator struct {
	page      dom.Page
	readiness dom.Selector
	cfg       config.NavigationConfig
	pacer     *utils.Pacer
	limiter   *rate.Limiter
	log       *logging.Logger
}

func NewNavigator(page dom.Page, readiness dom.Selector, cfg config.NavigationConfig, pacer *utils.Pacer, log *logging.Logger) *Navigator {
	limit := rate.Inf
	if cfg.MinInterval > 0 {
		limit = rate.Every(cfg.MinInterval)
	}
	return &Navigator{
		page:      page,
		readiness: readiness,
		cfg:       cfg,
		pacer:     pacer,
		limiter:   rate.NewLimiter(limit, 1),
		log:       log,
	}
}

// Load uses the configured retry count and readiness timeout.
func (n *Navigator) Load(ctx context.Context, url string) bool {
	return n.LoadWith(ctx, url, n.cfg.RetryCount, n.cfg.ReadinessTimeout)
}

// LoadWith tries up to retryCount times, backing off BackoffStep*(attempt+1)
// after each failed attempt but the last. Failure is reported, never raised.
func (n *Navigator) LoadWith(ctx context.Context, url string, retryCount int, readinessTimeout time.Duration) bool {
	for attempt := 0; attempt < retryCount; attempt++ {
		if err := n.limiter.Wait(ctx); err != nil {
			n.log.Warn("⚠️ Navigation cancelled", "url", url, "error", err)
			return false
		}

		err := n.page.Navigate(url)
		if err == nil {
			err = n.page.WaitFor(n.readiness, readinessTimeout)
		}
		if err == nil {
			n.log.Info("🌐 Page loaded", "url", url, "attempt", attempt+1)
			return true
		}

		n.log.Warn("⚠️ Page load attempt failed",
			"url", url, "attempt", attempt+1, "of", retryCount, "kind", Classify(err), "error", err)

		if attempt < retryCount-1 {
			n.pacer.Wait(n.cfg.BackoffStep * time.Duration(attempt+1))
		}
	}

	n.log.Error("❌ Failed to load page", "url", url, "attempts", retryCount)
	return false
}
