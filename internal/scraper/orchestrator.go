package scraper

import (
	"context"
	"fmt"
	"net/url"
	"slices"
	"time"

	"github.com/google/uuid"

	"go-naukri-scraper/internal/config"
	"go-naukri-scraper/internal/dom"
	"go-naukri-scraper/internal/filter"
	"go-naukri-scraper/internal/models"
	"go-naukri-scraper/pkg/logging"
	"go-naukri-scraper/utils"
)

// Persister receives the cumulative listings after every second page.
type Persister interface {
	Snapshot(q models.SearchQuery, page int, listings []models.JobListing) error
}

// State is a step of a run.
type State string

const (
	StateIdle           State = "idle"
	StateSessionStarted State = "session_started"
	StatePageLoading    State = "page_loading"
	StateExtracting     State = "extracting"
	StatePaginating     State = "paginating"
	StateSessionClosed  State = "session_closed"
)

// Stats counts what went wrong without stopping the run.
type Stats struct {
	CardsSeen     int
	CardsSkipped  int
	FilterApplied bool
	Snapshots     int
	Failures      map[Kind]int
}

// Result is the outcome of one run. Listings keeps extraction order.
type Result struct {
	RunID     string
	Query     models.SearchQuery
	SearchURL string
	Listings  []models.JobListing
	// Pages is the number of pages extracted.
	Pages    int
	Stats    Stats
	States   []State
	Started  time.Time
	Finished time.Time
}

// Orchestrator drives one search from session start to session close.
type Orchestrator struct {
	launcher dom.Launcher
	site     Site
	cfg      *config.Config
	pacer    *utils.Pacer
	persist  Persister
	resolver *Resolver
	log      *logging.Logger

	// Now is the clock used for timestamps and date normalization.
	Now func() time.Time
}

var _ Scraper = (*Orchestrator)(nil)

func NewOrchestrator(launcher dom.Launcher, site Site, cfg *config.Config, pacer *utils.Pacer, persist Persister, log *logging.Logger) *Orchestrator {
	return &Orchestrator{
		launcher: launcher,
		site:     site,
		cfg:      cfg,
		pacer:    pacer,
		persist:  persist,
		resolver: NewResolver(log),
		log:      log,
		Now:      time.Now,
	}
}

func (o *Orchestrator) Name() string { return o.site.Name }

// run carries the per-scrape state.
type run struct {
	*Orchestrator
	ctx     context.Context
	log     *logging.Logger
	session dom.Session
	page    dom.Page
	shots   *utils.ScreenShotDebugger
	res     *Result
}

func (r *run) enter(s State) {
	r.res.States = append(r.res.States, s)
	r.log.Debug("State", "state", s)
}

func (r *run) fail(err error) {
	r.res.Stats.Failures[Classify(err)]++
}

// Scrape runs q. The browser session is closed exactly once whatever path
// the run exits by. Only ErrSessionStart, an invalid query, or a cancelled
// ctx produce an error; a cancelled run still returns what it extracted.
func (o *Orchestrator) Scrape(ctx context.Context, q models.SearchQuery) (*Result, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("invalid query: %w", err)
	}

	res := &Result{
		RunID:     uuid.NewString(),
		Query:     q,
		SearchURL: o.site.SearchURL(q),
		Listings:  []models.JobListing{},
		Stats:     Stats{Failures: make(map[Kind]int)},
		Started:   o.Now(),
	}
	r := &run{Orchestrator: o, ctx: ctx, res: res, log: o.log.With("run_id", res.RunID)}
	r.enter(StateIdle)
	r.log.Info("🚀 Starting scrape", "site", o.site.Name, "query", q.Describe(), "url", res.SearchURL)

	session, err := o.launcher.Start(ctx)
	if err != nil {
		r.log.Error("❌ Failed to start browser session", "error", err)
		res.Finished = o.Now()
		return res, fmt.Errorf("%w: %w", ErrSessionStart, err)
	}
	r.session = session
	r.page = session.Page()
	r.enter(StateSessionStarted)
	defer r.close()

	if o.cfg.Output.Screenshots {
		r.shots = utils.NewScreenShotDebugger(o.cfg.Output.ScreenshotsDir, r.log)
	}

	err = r.loop()
	r.log.Info("📦 Scrape finished", "listings", len(res.Listings), "pages", res.Pages, "skipped_cards", res.Stats.CardsSkipped)
	return res, err
}

func (r *run) close() {
	if err := r.session.Close(); err != nil {
		r.log.Warn("⚠️ Error closing browser session", "error", err)
	}
	r.enter(StateSessionClosed)
	r.res.Finished = r.Now()
}

func (r *run) loop() error {
	q := r.res.Query
	nav := NewNavigator(r.page, r.site.Readiness, r.cfg.Navigation, r.pacer, r.log)
	pager := NewPaginator(r.page, r.site.NextPage, r.cfg.Browser.WaitTime, r.pacer, r.cfg.Pacing, r.log)

	r.enter(StatePageLoading)
	if !nav.Load(r.ctx, r.res.SearchURL) {
		r.log.Error("❌ Failed to load the initial search page")
		r.res.Stats.Failures[KindTimeout]++
		return r.ctx.Err()
	}
	r.shots.CaptureAndLog(r.page, "naukri_initial_page", "Initial search page")

	if q.TimeFrame != models.TimeFrameAll {
		df := NewDateFilter(r.page, r.site.DateFilter, r.pacer, r.cfg.Pacing, r.shots, r.log)
		r.res.Stats.FilterApplied = df.Apply(q.TimeFrame)
		if r.res.Stats.FilterApplied {
			r.log.Info("✅ Successfully applied date filter", "time_frame", q.TimeFrame)
		} else {
			r.log.Warn("⚠️ Could not apply date filter, continuing with default results", "time_frame", q.TimeFrame)
		}
	}

	for pageNo := 1; pageNo <= q.PageCount; pageNo++ {
		if err := r.ctx.Err(); err != nil {
			r.log.Warn("⚠️ Scrape cancelled", "page", pageNo, "error", err)
			return err
		}

		r.enter(StateExtracting)
		r.log.Info("📄 Scraping page", "page", pageNo, "of", q.PageCount)
		r.shots.CaptureAndLog(r.page, fmt.Sprintf("naukri_page_%d", pageNo), "Results page")
		if r.cfg.Pacing.HumanScroll {
			if err := utils.SmoothScroll(r.page, r.pacer); err != nil {
				r.log.Debug("Scroll failed", "error", err)
			}
		}

		extracted := r.extractPage(q.MaxJobsPerPage)
		r.res.Listings = append(r.res.Listings, extracted...)
		r.res.Pages = pageNo
		r.log.Info("✅ Extracted jobs from page", "page", pageNo, "jobs", len(extracted), "total", len(r.res.Listings))

		if pageNo%2 == 0 {
			r.snapshot(pageNo)
		}

		if pageNo == q.PageCount {
			break
		}

		r.pacer.RandomDelay(r.cfg.Pacing.Page)

		r.enter(StatePaginating)
		if !pager.Advance() {
			r.log.Info("No more pages available")
			break
		}
		if err := r.page.WaitFor(r.site.Readiness, r.cfg.Navigation.ReadinessTimeout); err != nil {
			r.log.Warn("⚠️ Next page not ready, extracting anyway", "kind", Classify(err), "error", err)
			r.fail(err)
		}
	}
	return nil
}

func (r *run) snapshot(pageNo int) {
	if r.persist == nil {
		return
	}
	if err := r.persist.Snapshot(r.res.Query, pageNo, slices.Clone(r.res.Listings)); err != nil {
		r.log.Error("❌ Error saving incremental data", "page", pageNo, "error", err)
		r.fail(err)
		return
	}
	r.res.Stats.Snapshots++
}

// cards returns the candidates of the first card strategy matching anything.
func (r *run) cards() []dom.Element {
	for _, sel := range r.site.Cards {
		els, err := r.page.QueryAll(sel)
		if err != nil {
			r.log.Debug("Card locator failed", "selector", sel.String(), "error", err)
			continue
		}
		if len(els) > 0 {
			return els
		}
	}
	return nil
}

func (r *run) extractPage(maxJobs int) []models.JobListing {
	cards := r.cards()
	r.log.Info("Found potential job listings on this page", "cards", len(cards))
	if len(cards) > maxJobs {
		cards = cards[:maxJobs]
	}

	listings := make([]models.JobListing, 0, len(cards))
	for i, card := range cards {
		r.res.Stats.CardsSeen++
		l, err := r.extractCard(card)
		if err != nil {
			r.res.Stats.CardsSkipped++
			r.fail(err)
			if Classify(err) == KindStale {
				r.log.Warn("⚠️ Stale element encountered, skipping job card", "card", i+1)
			} else {
				r.log.Error("❌ Error extracting job details", "card", i+1, "error", err)
			}
			continue
		}
		listings = append(listings, l)
		r.log.Debug("Extracted job", "card", i+1, "of", len(cards), "title", l.Title)
	}
	return listings
}

// extractCard fills every field, falling back to sentinels. A card that went
// stale while being read is rejected whole.
func (r *run) extractCard(card dom.Element) (models.JobListing, error) {
	var l models.JobListing
	loc := r.site.Fields

	fields := []struct {
		dst  *string
		sels dom.Selectors
		name string
	}{
		{&l.Title, loc.Title, "Title"},
		{&l.Company, loc.Company, "Company"},
		{&l.Location, loc.Location, "Location"},
		{&l.Experience, loc.Experience, "Experience"},
		{&l.Salary, loc.Salary, "Salary"},
		{&l.Description, loc.Description, "Description"},
		{&l.Skills, loc.Skills, "Skills"},
		{&l.PostedDate, loc.PostedDate, "Posted date"},
	}
	for _, f := range fields {
		res := r.resolver.Resolve(card, f.sels, f.name)
		if res.Stale() {
			return l, fmt.Errorf("field %s: %w", f.name, dom.ErrStale)
		}
		*f.dst = res.Value
	}

	link := r.resolver.ResolveAttribute(card, loc.Link, "href", "Link")
	if link.Stale() {
		return l, fmt.Errorf("field Link: %w", dom.ErrStale)
	}
	l.Link = link.Value
	if link.Found {
		l.Link = r.absolute(link.Value)
	}

	id, err := r.jobID(card)
	if err != nil {
		return l, err
	}
	l.JobID = id

	now := r.Now()
	l.ExtractedAt = now.Format(models.ExtractedAtLayout)
	l.ParsedDate = filter.NormalizePostedDate(l.PostedDate, now)
	return l, nil
}

func (r *run) jobID(card dom.Element) (string, error) {
	for _, name := range r.site.JobIDAttributes {
		v, err := card.Attribute(name)
		if err == nil && v != "" {
			return v, nil
		}
		if Classify(err) == KindStale {
			return "", fmt.Errorf("field Job ID: %w", err)
		}
	}
	return models.NotFound("Job ID"), nil
}

// absolute resolves a relative href against the current page.
func (r *run) absolute(href string) string {
	ref, err := url.Parse(href)
	if err != nil || ref.IsAbs() {
		return href
	}
	base, err := url.Parse(r.page.URL())
	if err != nil || base.Host == "" {
		return href
	}
	return base.ResolveReference(ref).String()
}
