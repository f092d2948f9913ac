package scraper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-naukri-scraper/internal/dom/static"
	"go-naukri-scraper/internal/models"
	"go-naukri-scraper/pkg/logging"
)

func applyFilter(t *testing.T, body string, tf models.TimeFrame) (bool, *static.Page) {
	t.Helper()
	page := static.NewPage(map[string]string{searchURL: "<html><body>" + body + "</body></html>"})
	require.NoError(t, page.Navigate(searchURL))

	pacer, _ := quietPacer(t)
	f := NewDateFilter(page, testSite().DateFilter, pacer, testConfig().Pacing, nil, logging.NewNop())
	return f.Apply(tf), page
}

func targets(page *static.Page) []string {
	var out []string
	for _, c := range page.Clicks {
		out = append(out, c.Target)
	}
	return out
}

const dateControl = `<div class="datePosted">Date Posted</div>`

func TestApplyAllIsNoop(t *testing.T) {
	ok, page := applyFilter(t, "", models.TimeFrameAll)
	assert.True(t, ok)
	assert.Empty(t, page.Clicks)
}

func TestApplySynonymInOrder(t *testing.T) {
	ok, page := applyFilter(t, dateControl+`
<div class="filter"><div><label>Last 30 days</label></div></div>`, models.TimeFrameMonth)

	assert.True(t, ok)
	assert.Equal(t, []string{"Date Posted", "Last 30 days"}, targets(page))
}

func TestApplyPrefersEarlierSynonym(t *testing.T) {
	ok, page := applyFilter(t, dateControl+`
<label>Last 30 days</label><label>Past Month</label>`, models.TimeFrameMonth)

	assert.True(t, ok)
	assert.Equal(t, []string{"Date Posted", "Past Month"}, targets(page))
}

func TestApplyKeywordFallback(t *testing.T) {
	ok, page := applyFilter(t, dateControl+`
<div class="dropdown"><div>Sort by relevance</div><div>Last 2 Weeks</div></div>`, models.TimeFrameMonth)

	assert.True(t, ok)
	assert.Equal(t, []string{"Date Posted", "Last 2 Weeks"}, targets(page))
}

func TestApplyDismissesWhenNothingMatches(t *testing.T) {
	ok, page := applyFilter(t, dateControl+`
<div class="dropdown"><div>Sort by relevance</div></div>`, models.TimeFrameMonth)

	assert.False(t, ok)
	assert.Equal(t, []string{"Date Posted", "(10,10)"}, targets(page))
}

func TestApplyWithoutControl(t *testing.T) {
	ok, page := applyFilter(t, `<label>Past Month</label>`, models.TimeFrameMonth)

	assert.False(t, ok)
	assert.Empty(t, page.Clicks)
}

func TestApplyScriptedControlClick(t *testing.T) {
	ok, page := applyFilter(t, `<div class="datePosted" data-intercepted="true">Date Posted</div>
<label>Past Month</label>`, models.TimeFrameMonth)

	assert.True(t, ok)
	assert.Equal(t, []static.Click{{Target: "Date Posted", Scripted: true}, {Target: "Past Month"}}, page.Clicks)
}
