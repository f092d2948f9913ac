package probe

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-naukri-scraper/internal/dom"
	"go-naukri-scraper/internal/dom/static"
	"go-naukri-scraper/internal/scraper"
	"go-naukri-scraper/pkg/logging"
)

const source = `<html><head><title>Data Analyst Jobs</title></head><body>
<div id="root" class="app">
  <div class="list">
    <article class="jobTuple" id="1"><a class="title" href="/j/1">Analyst One</a><span class="company">Acme</span></article>
    <article class="jobTuple" id="2"><a class="title" href="/j/2">Analyst Two</a></article>
    <article class="jobTuple" id="3"><h2>Analyst Three</h2><span class="org">Globex</span></article>
  </div>
  <a class="next" href="/p/2">Next</a>
</div>
</body></html>`

func testSite() scraper.Site {
	return scraper.Site{
		Cards: dom.XPaths("//div[contains(@class, 'missing')]", "//article[contains(@class, 'job')]"),
		Fields: scraper.FieldLocators{
			Title:   dom.XPaths(".//a[contains(@class, 'title')]", ".//h2"),
			Company: dom.XPaths(".//span[contains(@class, 'company')]", ".//span[contains(@class, 'org')]"),
			Link:    dom.XPaths(".//a[contains(@class, 'title')]"),
		},
		NextPage:   dom.XPaths("//a[contains(@class, 'next')]"),
		DateFilter: scraper.DateFilterProfile{Controls: dom.XPaths("//div[contains(text(), 'Date Posted')]", "//div[")},
	}
}

func analyze(t *testing.T, sample int) *Report {
	t.Helper()
	page := static.NewPage(nil)
	require.NoError(t, page.SetContent("https://jobs.test/search", source))
	rep, err := Analyze(page, testSite(), sample, logging.NewNop())
	require.NoError(t, err)
	return rep
}

func fieldByName(t *testing.T, rep *Report, name string) FieldCoverage {
	t.Helper()
	for _, f := range rep.Fields {
		if f.Field == name {
			return f
		}
	}
	t.Fatalf("no field %q", name)
	return FieldCoverage{}
}

func TestAnalyzeCounts(t *testing.T) {
	rep := analyze(t, 10)

	assert.Equal(t, "Data Analyst Jobs", rep.Title)
	assert.Equal(t, "https://jobs.test/search", rep.URL)
	require.Len(t, rep.Cards, 2)
	assert.Equal(t, 0, rep.Cards[0].Matches)
	assert.Equal(t, 3, rep.Cards[1].Matches)
	assert.Equal(t, 3, rep.Sampled)

	title := fieldByName(t, rep, "Title")
	assert.Equal(t, 3, title.Resolved)
	assert.Equal(t, 2, title.Strategies[0].Matches)
	assert.Equal(t, 1, title.Strategies[1].Matches)

	company := fieldByName(t, rep, "Company")
	assert.Equal(t, 2, company.Resolved)

	link := fieldByName(t, rep, "Link")
	assert.Equal(t, 2, link.Resolved)

	location := fieldByName(t, rep, "Location")
	assert.Zero(t, location.Resolved)
	assert.Empty(t, location.Strategies)

	require.Len(t, rep.NextPage, 1)
	assert.Equal(t, 1, rep.NextPage[0].Matches)
	require.Len(t, rep.DateFilter, 2)
	assert.Equal(t, 0, rep.DateFilter[0].Matches)
	assert.NotEmpty(t, rep.DateFilter[1].Err)
}

func TestAnalyzeSamplesCards(t *testing.T) {
	rep := analyze(t, 1)

	assert.Equal(t, 1, rep.Sampled)
	assert.Equal(t, 1, fieldByName(t, rep, "Title").Resolved)
}

func TestStructure(t *testing.T) {
	rep := analyze(t, 10)

	s := rep.Structure
	assert.Equal(t, 3, s.Articles)
	assert.Zero(t, s.JobDivs)
	assert.Equal(t, []string{"root"}, s.Containers)
	require.Len(t, s.ClassSamples, 2)
	assert.Equal(t, "app", s.ClassSamples[0].Class)
	assert.Equal(t, `<div class="list">`, s.ClassSamples[0].FirstChild)
	assert.Contains(t, s.FirstCard, "Analyst One")
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, analyze(t, 10).Write(&buf))

	out := buf.String()
	assert.Contains(t, out, "Card strategies")
	assert.Contains(t, out, "resolved 3/3")
	assert.Contains(t, out, "error")
}
