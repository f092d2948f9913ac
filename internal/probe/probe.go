// Package probe measures how well a site profile's locators cover a page.
// It is the tool to reach for when the site changes its markup.
package probe

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"go-naukri-scraper/internal/dom"
	"go-naukri-scraper/internal/scraper"
	"go-naukri-scraper/pkg/logging"
)

// StrategyCount is how many nodes (or sampled cards) one locator matched.
type StrategyCount struct {
	Selector string `json:"selector"`
	Matches  int    `json:"matches"`
	Err      string `json:"error,omitempty"`
}

// FieldCoverage is how a field's strategies fared over the sampled cards.
type FieldCoverage struct {
	Field      string          `json:"field"`
	Strategies []StrategyCount `json:"strategies"`
	// Resolved counts sampled cards where any strategy produced a value.
	Resolved int `json:"resolved"`
}

type ClassSample struct {
	Class      string `json:"class"`
	FirstChild string `json:"first_child,omitempty"`
}

// Structure is a markup overview independent of the site profile.
type Structure struct {
	JobDivs      int           `json:"job_divs"`
	Articles     int           `json:"articles"`
	Containers   []string      `json:"containers"`
	ClassSamples []ClassSample `json:"class_samples"`
	FirstCard    string        `json:"first_card,omitempty"`
}

type Report struct {
	URL        string          `json:"url"`
	Title      string          `json:"title"`
	Structure  Structure       `json:"structure"`
	Cards      []StrategyCount `json:"cards"`
	Sampled    int             `json:"sampled"`
	Fields     []FieldCoverage `json:"fields"`
	NextPage   []StrategyCount `json:"next_page"`
	DateFilter []StrategyCount `json:"date_filter"`
}

const firstCardLimit = 1000

// Analyze evaluates every locator of site against the page currently loaded,
// sampling at most sample cards for field coverage.
func Analyze(page dom.Page, site scraper.Site, sample int, log *logging.Logger) (*Report, error) {
	source, err := page.Content()
	if err != nil {
		return nil, fmt.Errorf("read page content: %w", err)
	}
	structure, err := analyzeStructure(source)
	if err != nil {
		return nil, err
	}

	rep := &Report{URL: page.URL(), Structure: structure}
	if title, err := page.Title(); err == nil {
		rep.Title = title
	}

	var cards []dom.Element
	for _, sel := range site.Cards {
		els, c := countAll(page, sel)
		rep.Cards = append(rep.Cards, c)
		if cards == nil && len(els) > 0 {
			cards = els
		}
	}
	if len(cards) > sample {
		cards = cards[:sample]
	}
	rep.Sampled = len(cards)

	resolver := scraper.NewResolver(log)
	for _, f := range fieldsOf(site.Fields) {
		cov := FieldCoverage{Field: f.name}
		for _, sel := range f.sels {
			c := StrategyCount{Selector: sel.String()}
			for _, card := range cards {
				el, err := card.Query(sel)
				if err != nil {
					continue
				}
				if v := read(el, f.attr); v != "" {
					c.Matches++
				}
			}
			cov.Strategies = append(cov.Strategies, c)
		}
		for _, card := range cards {
			var res scraper.Resolution
			if f.attr != "" {
				res = resolver.ResolveAttribute(card, f.sels, f.attr, f.name)
			} else {
				res = resolver.Resolve(card, f.sels, f.name)
			}
			if res.Found {
				cov.Resolved++
			}
		}
		rep.Fields = append(rep.Fields, cov)
	}

	for _, sel := range site.NextPage {
		_, c := countAll(page, sel)
		rep.NextPage = append(rep.NextPage, c)
	}
	for _, sel := range site.DateFilter.Controls {
		_, c := countAll(page, sel)
		rep.DateFilter = append(rep.DateFilter, c)
	}
	return rep, nil
}

type field struct {
	name string
	sels dom.Selectors
	attr string
}

func fieldsOf(f scraper.FieldLocators) []field {
	return []field{
		{"Title", f.Title, ""},
		{"Company", f.Company, ""},
		{"Location", f.Location, ""},
		{"Experience", f.Experience, ""},
		{"Salary", f.Salary, ""},
		{"Description", f.Description, ""},
		{"Skills", f.Skills, ""},
		{"Posted date", f.PostedDate, ""},
		{"Link", f.Link, "href"},
	}
}

func read(el dom.Element, attr string) string {
	var v string
	var err error
	if attr != "" {
		v, err = el.Attribute(attr)
	} else {
		v, err = el.Text()
	}
	if err != nil {
		return ""
	}
	return strings.TrimSpace(v)
}

func countAll(page dom.Page, sel dom.Selector) ([]dom.Element, StrategyCount) {
	c := StrategyCount{Selector: sel.String()}
	els, err := page.QueryAll(sel)
	if err != nil {
		c.Err = err.Error()
		return nil, c
	}
	c.Matches = len(els)
	return els, c
}

func analyzeStructure(source string) (Structure, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(source))
	if err != nil {
		return Structure{}, fmt.Errorf("parse page content: %w", err)
	}

	s := Structure{
		JobDivs:  doc.Find("div[class*='job']").Length(),
		Articles: doc.Find("article").Length(),
	}
	doc.Find("div#root, div#content, div#main, div#app").Each(func(_ int, sel *goquery.Selection) {
		id, _ := sel.Attr("id")
		s.Containers = append(s.Containers, id)
	})
	doc.Find("div[class]").Slice(0, min(5, doc.Find("div[class]").Length())).Each(func(_ int, sel *goquery.Selection) {
		class, _ := sel.Attr("class")
		sample := ClassSample{Class: class}
		if child := sel.Children().First(); child.Length() > 0 {
			childClass, _ := child.Attr("class")
			sample.FirstChild = fmt.Sprintf("<%s class=%q>", goquery.NodeName(child), childClass)
		}
		s.ClassSamples = append(s.ClassSamples, sample)
	})

	for _, candidate := range []string{"div.jobTuple", "article", "div[class*='job']"} {
		first := doc.Find(candidate).First()
		if first.Length() == 0 {
			continue
		}
		html, err := goquery.OuterHtml(first)
		if err != nil {
			break
		}
		if len(html) > firstCardLimit {
			html = html[:firstCardLimit]
		}
		s.FirstCard = html
		break
	}
	return s, nil
}
