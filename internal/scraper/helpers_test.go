package scraper

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"go-naukri-scraper/internal/config"
	"go-naukri-scraper/internal/dom"
	"go-naukri-scraper/internal/models"
	"go-naukri-scraper/utils"
)

const searchURL = "https://jobs.test/search"

func testSite() Site {
	return Site{
		Name:      "Test",
		SearchURL: func(models.SearchQuery) string { return searchURL },
		Readiness: dom.CSS("article.job"),
		Cards: dom.Selectors{
			dom.CSS("div.no-such-card"),
			dom.XPath("//article[contains(@class, 'job')]"),
		},
		Fields: FieldLocators{
			Title:      dom.XPaths(".//a[contains(@class, 'title')]", ".//h2"),
			Company:    dom.XPaths(".//span[contains(@class, 'company')]"),
			PostedDate: dom.XPaths(".//span[contains(@class, 'date')]"),
			Link:       dom.XPaths(".//a[contains(@class, 'title')]"),
		},
		JobIDAttributes: []string{"data-job-id", "id"},
		NextPage:        dom.XPaths("//a[contains(@class, 'next')]", "//a[contains(text(), 'Next')]"),
		DateFilter: DateFilterProfile{
			Controls: dom.XPaths("//div[contains(@class, 'datePosted')]"),
			Labels: map[models.TimeFrame][]string{
				models.TimeFrameMonth: {"Past Month", "Last 30 days"},
			},
			Option: func(label string) dom.Selector {
				return dom.XPath(fmt.Sprintf("//label[contains(text(), '%s')]", label))
			},
			Options:          dom.XPaths("//div[contains(@class, 'dropdown')]/div"),
			FallbackKeywords: []string{"day", "week", "month"},
		},
	}
}

// card renders one result card.
func card(id, title, company, posted string) string {
	return fmt.Sprintf(`<article class="job" id="%s">
  <a class="title" href="/job/%s">%s</a>
  <span class="company">%s</span>
  <span class="date">%s</span>
</article>`, id, id, title, company, posted)
}

// resultsPage renders cards followed by an optional next link.
func resultsPage(next string, cards ...string) string {
	var b strings.Builder
	b.WriteString("<html><head><title>Results</title></head><body>\n")
	for _, c := range cards {
		b.WriteString(c)
		b.WriteString("\n")
	}
	if next != "" {
		fmt.Fprintf(&b, `<div class="pagination"><a class="next" href="%s">Next</a></div>`, next)
	}
	b.WriteString("</body></html>")
	return b.String()
}

// quietPacer never sleeps and records what it would have slept.
func quietPacer(t *testing.T) (*utils.Pacer, *[]time.Duration) {
	t.Helper()
	var slept []time.Duration
	p := utils.NewPacer(1)
	p.Sleep = func(d time.Duration) { slept = append(slept, d) }
	return p, &slept
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Output.Screenshots = false
	cfg.Navigation.MinInterval = 0
	return cfg
}

func pageURL(n int) string {
	if n == 1 {
		return searchURL
	}
	return fmt.Sprintf("%s?page=%d", searchURL, n)
}

// multiPageSite serves pages linked by next controls, perPage cards each.
func multiPageSite(pages, perPage int) map[string]string {
	routes := make(map[string]string, pages)
	for p := 1; p <= pages; p++ {
		next := ""
		if p < pages {
			next = pageURL(p + 1)
		}
		cards := make([]string, 0, perPage)
		for c := 1; c <= perPage; c++ {
			id := fmt.Sprintf("p%dc%d", p, c)
			cards = append(cards, card(id, "Data Analyst "+id, "Acme", "Posted 2 days ago"))
		}
		routes[pageURL(p)] = resultsPage(next, cards...)
	}
	return routes
}
