package scraper

import (
	"errors"
	"strings"

	"go-naukri-scraper/internal/config"
	"go-naukri-scraper/internal/dom"
	"go-naukri-scraper/internal/models"
	"go-naukri-scraper/pkg/logging"
	"go-naukri-scraper/utils"
)

// DateFilter selects a posting-age option in the site's filter UI. It is best
// effort: when it fails the run continues with unfiltered results.
type DateFilter struct {
	page    dom.Page
	profile DateFilterProfile
	pacer   *utils.Pacer
	pacing  config.PacingConfig
	shots   *utils.ScreenShotDebugger
	log     *logging.Logger
}

func NewDateFilter(page dom.Page, profile DateFilterProfile, pacer *utils.Pacer, pacing config.PacingConfig, shots *utils.ScreenShotDebugger, log *logging.Logger) *DateFilter {
	return &DateFilter{
		page:    page,
		profile: profile,
		pacer:   pacer,
		pacing:  pacing,
		shots:   shots,
		log:     log,
	}
}

// Apply reports whether an option for tf was selected. TimeFrameAll needs no
// filter and always succeeds.
func (f *DateFilter) Apply(tf models.TimeFrame) bool {
	if tf == models.TimeFrameAll {
		f.log.Info("No date filter applied, showing all time results")
		return true
	}
	f.log.Info("🗓️ Attempting to apply date filter", "time_frame", tf)

	control, sel, err := dom.First(f.page, f.profile.Controls)
	if err != nil {
		f.log.Warn("⚠️ Could not find date filter element", "error", err)
		f.shots.CaptureAndLog(f.page, "date_filter_not_found", "Date filter not found")
		return false
	}
	f.log.Info("Found date filter element", "selector", sel.String())

	if err := f.open(control); err != nil {
		f.log.Error("❌ Could not open date filter", "kind", Classify(err), "error", err)
		return false
	}
	f.shots.CaptureAndLog(f.page, "date_filter_dropdown", "Date filter opened")

	selected := f.selectByLabel(tf) || f.selectByKeyword()
	if !selected {
		f.log.Warn("⚠️ Could not select any time frame option", "time_frame", tf)
		// Click away from the menu to close it.
		if err := f.page.ClickAt(10, 10); err != nil {
			f.log.Debug("Could not dismiss date filter", "error", err)
		}
		return false
	}

	// Results refresh after the selection.
	f.pacer.RandomDelay(f.pacing.Filter)
	return true
}

func (f *DateFilter) open(control dom.Element) error {
	if err := control.ScrollIntoView(); err != nil {
		return err
	}
	f.pacer.RandomDelay(f.pacing.Click)

	if err := control.Click(); err != nil {
		f.log.Warn("⚠️ Error clicking on date filter, trying scripted click", "kind", Classify(err), "error", err)
		if err := control.ClickScripted(); err != nil {
			return err
		}
	}
	f.log.Info("Clicked on date filter dropdown")
	f.pacer.RandomDelay(f.pacing.Click)
	return nil
}

// labels falls back to the raw token for time frames without synonyms.
func (f *DateFilter) labels(tf models.TimeFrame) []string {
	if labels, ok := f.profile.Labels[tf]; ok {
		return labels
	}
	return []string{string(tf)}
}

func (f *DateFilter) selectByLabel(tf models.TimeFrame) bool {
	for _, label := range f.labels(tf) {
		option, err := f.page.Query(f.profile.Option(label))
		if err != nil {
			if errors.Is(err, dom.ErrNotFound) {
				f.log.Debug("Option not found", "label", label)
			} else {
				f.log.Error("❌ Error looking up time frame option", "label", label, "error", err)
			}
			continue
		}

		if err := f.click(option); err != nil {
			f.log.Error("❌ Error selecting time frame", "label", label, "kind", Classify(err), "error", err)
			continue
		}
		f.log.Info("✅ Selected time frame", "label", label)
		f.pacer.RandomDelay(f.pacing.Option)
		return true
	}
	return false
}

// selectByKeyword clicks the first visible option mentioning a fallback
// keyword. The first click error ends the scan.
func (f *DateFilter) selectByKeyword() bool {
	var options []dom.Element
	for _, sel := range f.profile.Options {
		els, err := f.page.QueryAll(sel)
		if err != nil {
			f.log.Error("❌ Error finding alternative date options", "error", err)
			return false
		}
		options = append(options, els...)
	}

	texts := make([]string, len(options))
	var available []string
	for i, opt := range options {
		text, err := opt.Text()
		if err != nil {
			continue
		}
		texts[i] = text
		if text != "" {
			available = append(available, text)
		}
	}
	f.log.Info("Available filter options", "options", available)
	f.shots.CaptureAndLog(f.page, "date_filter_options", "Date filter options")

	for i, opt := range options {
		text := strings.ToLower(texts[i])
		if text == "" || !containsAny(text, f.profile.FallbackKeywords) {
			continue
		}
		f.log.Info("Attempting to click found option", "option", text)
		if err := f.click(opt); err != nil {
			f.log.Error("❌ Error clicking alternative date option", "option", text, "error", err)
			return false
		}
		f.pacer.RandomDelay(f.pacing.Option)
		return true
	}
	return false
}

func (f *DateFilter) click(el dom.Element) error {
	if err := el.ScrollIntoView(); err != nil {
		return err
	}
	f.pacer.RandomDelay(f.pacing.Click)
	err := el.Click()
	if errors.Is(err, dom.ErrIntercepted) {
		return el.ClickScripted()
	}
	return err
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
