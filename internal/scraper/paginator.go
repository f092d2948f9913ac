package scraper

import (
	"errors"
	"strings"
	"time"

	"go-naukri-scraper/internal/config"
	"go-naukri-scraper/internal/dom"
	"go-naukri-scraper/pkg/logging"
	"go-naukri-scraper/utils"
)

// Paginator clicks through to the next results page.
type Paginator struct {
	page     dom.Page
	next     dom.Selectors
	waitTime time.Duration
	pacer    *utils.Pacer
	pacing   config.PacingConfig
	log      *logging.Logger
}

func NewPaginator(page dom.Page, next dom.Selectors, waitTime time.Duration, pacer *utils.Pacer, pacing config.PacingConfig, log *logging.Logger) *Paginator {
	return &Paginator{
		page:     page,
		next:     next,
		waitTime: waitTime,
		pacer:    pacer,
		pacing:   pacing,
		log:      log,
	}
}

// Advance reports whether another page is now showing. A missing or
// disabled next control ends pagination; any failure along the way is
// logged and also ends it.
func (p *Paginator) Advance() bool {
	if err := p.advance(); err != nil {
		if errors.Is(err, errLastPage) {
			p.log.Info("🏁 Next page button not found or disabled, reached the end of pagination")
		} else {
			p.log.Error("❌ Error navigating to next page", "kind", Classify(err), "error", err)
		}
		return false
	}
	return true
}

var errLastPage = errors.New("no next page")

func (p *Paginator) advance() error {
	next, sel, err := dom.First(p.page, p.next)
	if err != nil {
		if errors.Is(err, dom.ErrNotFound) {
			return errLastPage
		}
		return err
	}
	p.log.Debug("Found next page control", "selector", sel.String())

	disabled, err := isDisabled(next)
	if err != nil {
		return err
	}
	if disabled {
		return errLastPage
	}

	if err := next.ScrollIntoView(); err != nil {
		return err
	}
	p.pacer.RandomDelay(p.pacing.Click)

	p.log.Info("➡️ Clicking next page button")
	if err := next.Click(); err != nil {
		if !errors.Is(err, dom.ErrIntercepted) {
			return err
		}
		p.log.Info("Regular click intercepted, trying scripted click")
		if err := next.ClickScripted(); err != nil {
			return err
		}
	}

	// The old control detaching is the page-transition signal.
	if err := next.WaitDetached(p.waitTime); err != nil {
		return err
	}
	p.pacer.RandomDelay(p.pacing.Settle)
	return nil
}

func isDisabled(el dom.Element) (bool, error) {
	class, err := el.Attribute("class")
	if err != nil && !errors.Is(err, dom.ErrNotFound) {
		return false, err
	}
	if strings.Contains(strings.ToLower(class), "disabled") {
		return true, nil
	}
	if v, err := el.Attribute("aria-disabled"); err == nil && strings.EqualFold(v, "true") {
		return true, nil
	}
	if _, err := el.Attribute("disabled"); err == nil {
		return true, nil
	}
	return false, nil
}
