package scraper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-naukri-scraper/internal/dom/static"
	"go-naukri-scraper/internal/models"
	"go-naukri-scraper/pkg/logging"
)

type recordingPersister struct {
	pages  []int
	counts []int
	err    error
}

func (p *recordingPersister) Snapshot(_ models.SearchQuery, page int, listings []models.JobListing) error {
	p.pages = append(p.pages, page)
	p.counts = append(p.counts, len(listings))
	return p.err
}

var fixedNow = time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC)

type harness struct {
	page     *static.Page
	launcher *static.Launcher
	persist  *recordingPersister
	orch     *Orchestrator
}

func newHarness(t *testing.T, routes map[string]string) *harness {
	t.Helper()
	page := static.NewPage(routes)
	launcher := &static.Launcher{Page: page}
	persist := &recordingPersister{}
	pacer, _ := quietPacer(t)

	orch := NewOrchestrator(launcher, testSite(), testConfig(), pacer, persist, logging.NewNop())
	orch.Now = func() time.Time { return fixedNow }
	return &harness{page: page, launcher: launcher, persist: persist, orch: orch}
}

func (h *harness) closes(t *testing.T) int {
	t.Helper()
	require.Len(t, h.launcher.Sessions, 1)
	return h.launcher.Sessions[0].Closed
}

func query(pages, perPage int) models.SearchQuery {
	return models.SearchQuery{
		JobTitle:       "data analyst",
		Location:       "india",
		TimeFrame:      models.TimeFrameAll,
		PageCount:      pages,
		MaxJobsPerPage: perPage,
	}
}

func TestScrapeStopsAtPageCount(t *testing.T) {
	h := newHarness(t, multiPageSite(4, 5))

	res, err := h.orch.Scrape(context.Background(), query(2, 5))
	require.NoError(t, err)

	assert.Len(t, res.Listings, 10)
	assert.Equal(t, 2, res.Pages)
	assert.Equal(t, []string{pageURL(1), pageURL(2)}, h.page.Navigations)
	assert.Equal(t, []int{2}, h.persist.pages)
	assert.Equal(t, []int{10}, h.persist.counts)
	assert.Equal(t, 1, h.closes(t))
	assert.Equal(t, StateIdle, res.States[0])
	assert.Equal(t, StateSessionClosed, res.States[len(res.States)-1])
	assert.NotEmpty(t, res.RunID)
}

func TestScrapeSnapshotsAreCumulative(t *testing.T) {
	h := newHarness(t, multiPageSite(5, 3))

	res, err := h.orch.Scrape(context.Background(), query(5, 3))
	require.NoError(t, err)

	assert.Len(t, res.Listings, 15)
	assert.Equal(t, []int{2, 4}, h.persist.pages)
	assert.Equal(t, []int{6, 12}, h.persist.counts)
	assert.Equal(t, 2, res.Stats.Snapshots)
}

func TestScrapeStopsWhenPaginationEnds(t *testing.T) {
	h := newHarness(t, multiPageSite(3, 4))

	res, err := h.orch.Scrape(context.Background(), query(10, 4))
	require.NoError(t, err)

	assert.Equal(t, 3, res.Pages)
	assert.Len(t, res.Listings, 12)
	assert.Equal(t, []int{2}, h.persist.pages)
	assert.Equal(t, 1, h.closes(t))
}

func TestScrapeCapsCardsPerPage(t *testing.T) {
	h := newHarness(t, multiPageSite(2, 6))

	res, err := h.orch.Scrape(context.Background(), query(2, 4))
	require.NoError(t, err)

	require.Len(t, res.Listings, 8)
	assert.Equal(t, "p1c4", res.Listings[3].JobID)
	assert.Equal(t, "p2c1", res.Listings[4].JobID)
}

func TestScrapeExtractsFields(t *testing.T) {
	h := newHarness(t, map[string]string{
		searchURL: resultsPage("",
			card("101", "Data Analyst", "Acme Corp", "Posted 2 days ago"),
			`<article class="job"><h2>Engineer</h2></article>`,
		),
	})

	res, err := h.orch.Scrape(context.Background(), query(1, 20))
	require.NoError(t, err)
	require.Len(t, res.Listings, 2)

	assert.Equal(t, models.JobListing{
		Title:       "Data Analyst",
		Company:     "Acme Corp",
		Location:    "Location not found",
		Experience:  "Experience not found",
		Salary:      "Salary not found",
		Description: "Description not found",
		Skills:      "Skills not found",
		Link:        "https://jobs.test/job/101",
		PostedDate:  "Posted 2 days ago",
		JobID:       "101",
		ExtractedAt: "2024-03-15 09:30:00",
		ParsedDate:  "2024-03-13",
	}, res.Listings[0])

	bare := res.Listings[1]
	assert.Equal(t, "Engineer", bare.Title)
	assert.Equal(t, "Link not found", bare.Link)
	assert.Equal(t, "Job ID not found", bare.JobID)
	assert.Equal(t, "Posted date not found", bare.PostedDate)
	assert.Equal(t, models.UnknownDate, bare.ParsedDate)
}

func TestScrapeSkipsStaleCard(t *testing.T) {
	stale := `<article class="job" id="gone" data-stale="true"><a class="title">Gone</a></article>`
	h := newHarness(t, map[string]string{
		searchURL: resultsPage("",
			card("1", "First", "Acme", "1 day ago"),
			stale,
			card("3", "Third", "Acme", "3 days ago"),
		),
	})

	res, err := h.orch.Scrape(context.Background(), query(1, 20))
	require.NoError(t, err)

	require.Len(t, res.Listings, 2)
	assert.Equal(t, "First", res.Listings[0].Title)
	assert.Equal(t, "Third", res.Listings[1].Title)
	assert.Equal(t, 3, res.Stats.CardsSeen)
	assert.Equal(t, 1, res.Stats.CardsSkipped)
	assert.Equal(t, 1, res.Stats.Failures[KindStale])
}

func TestScrapeSessionStartFailure(t *testing.T) {
	h := newHarness(t, nil)
	h.launcher.Err = errors.New("chromium not installed")

	res, err := h.orch.Scrape(context.Background(), query(1, 5))

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSessionStart)
	assert.Equal(t, KindFatal, Classify(err))
	require.NotNil(t, res)
	assert.Empty(t, res.Listings)
	assert.Empty(t, h.launcher.Sessions)
}

func TestScrapeInitialLoadFailure(t *testing.T) {
	h := newHarness(t, map[string]string{})

	res, err := h.orch.Scrape(context.Background(), query(3, 5))
	require.NoError(t, err)

	assert.Empty(t, res.Listings)
	assert.Zero(t, res.Pages)
	assert.Len(t, h.page.Navigations, 3)
	assert.Empty(t, h.persist.pages)
	assert.Equal(t, 1, h.closes(t))
}

func TestScrapeCancelledBetweenPages(t *testing.T) {
	h := newHarness(t, multiPageSite(3, 2))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	h.orch.pacer.Sleep = func(time.Duration) { cancel() }

	res, err := h.orch.Scrape(ctx, query(3, 2))

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, res.Pages)
	assert.Len(t, res.Listings, 2)
	assert.Equal(t, 1, h.closes(t))
}

func TestScrapeSurvivesSnapshotAndFilterFailures(t *testing.T) {
	h := newHarness(t, multiPageSite(2, 1))
	h.persist.err = errors.New("disk full")
	q := query(2, 5)
	q.TimeFrame = models.TimeFrameMonth

	res, err := h.orch.Scrape(context.Background(), q)
	require.NoError(t, err)

	assert.Len(t, res.Listings, 2)
	assert.False(t, res.Stats.FilterApplied)
	assert.Zero(t, res.Stats.Snapshots)
	assert.Equal(t, 1, res.Stats.Failures[KindOther])
}

func TestScrapeRejectsInvalidQuery(t *testing.T) {
	h := newHarness(t, nil)

	_, err := h.orch.Scrape(context.Background(), query(0, 5))

	assert.Error(t, err)
	assert.Empty(t, h.launcher.Sessions)
}
