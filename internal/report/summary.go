// Package report summarizes a run and renders it for people.
package report

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"

	"go-naukri-scraper/internal/filter"
	"go-naukri-scraper/internal/models"
	"go-naukri-scraper/pkg/logging"
)

// TopN is how many companies and locations a summary ranks.
const TopN = 10

// Count is how often one value occurs.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type Summary struct {
	Total             int                `json:"total"`
	TopCompanies      []Count            `json:"top_companies"`
	TopLocations      []Count            `json:"top_locations"`
	Roles             []filter.RoleCount `json:"roles"`
	DistinctCompanies int                `json:"distinct_companies"`
	DistinctLocations int                `json:"distinct_locations"`
	// EarliestDate and LatestDate span the known parsed dates. Both are empty
	// when no listing has one.
	EarliestDate string `json:"earliest_date,omitempty"`
	LatestDate   string `json:"latest_date,omitempty"`
}

func Summarize(listings []models.JobListing) Summary {
	s := Summary{
		Total:        len(listings),
		TopCompanies: top(listings, func(l models.JobListing) string { return l.Company }, TopN),
		TopLocations: top(listings, func(l models.JobListing) string { return l.Location }, TopN),
		Roles:        filter.CountRoles(listings, filter.CommonRoles),
	}

	companies := mapset.NewThreadUnsafeSet[string]()
	locations := mapset.NewThreadUnsafeSet[string]()
	for _, l := range listings {
		companies.Add(l.Company)
		locations.Add(l.Location)

		// YYYY-MM-DD orders lexically.
		if l.ParsedDate == models.UnknownDate || l.ParsedDate == "" {
			continue
		}
		if s.EarliestDate == "" || l.ParsedDate < s.EarliestDate {
			s.EarliestDate = l.ParsedDate
		}
		if l.ParsedDate > s.LatestDate {
			s.LatestDate = l.ParsedDate
		}
	}
	s.DistinctCompanies = companies.Cardinality()
	s.DistinctLocations = locations.Cardinality()
	return s
}

// top ranks values by count, most frequent first, ties by name.
func top(listings []models.JobListing, value func(models.JobListing) string, n int) []Count {
	counts := make(map[string]int)
	for _, l := range listings {
		counts[value(l)]++
	}
	ranked := make([]Count, 0, len(counts))
	for name, c := range counts {
		ranked = append(ranked, Count{Name: name, Count: c})
	}
	slices.SortFunc(ranked, func(a, b Count) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return cmp.Compare(a.Name, b.Name)
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Log writes the summary as a series of log lines.
func (s Summary) Log(log *logging.Logger) {
	log.Info("📊 Scraping summary", "total_jobs", s.Total)
	if s.Total == 0 {
		return
	}
	for _, c := range s.TopCompanies {
		log.Info("🏢 Top company", "company", c.Name, "jobs", c.Count)
	}
	for _, c := range s.TopLocations {
		log.Info("📍 Top location", "location", c.Name, "jobs", c.Count)
	}
	for _, r := range s.Roles {
		log.Info("💼 Role keyword", "role", r.Role, "jobs", r.Count)
	}
	if s.EarliestDate != "" {
		log.Info("📅 Date range", "from", s.EarliestDate, "to", s.LatestDate)
	}
}

func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Total jobs scraped: %d\n", s.Total)
	if s.Total == 0 {
		return b.String()
	}

	fmt.Fprintf(&b, "\nTop companies (%d distinct):\n", s.DistinctCompanies)
	for _, c := range s.TopCompanies {
		fmt.Fprintf(&b, "  %s: %d\n", c.Name, c.Count)
	}
	fmt.Fprintf(&b, "\nTop locations (%d distinct):\n", s.DistinctLocations)
	for _, c := range s.TopLocations {
		fmt.Fprintf(&b, "  %s: %d\n", c.Name, c.Count)
	}
	if len(s.Roles) > 0 {
		b.WriteString("\nCommon job roles:\n")
		for _, r := range s.Roles {
			fmt.Fprintf(&b, "  %s: %d\n", r.Role, r.Count)
		}
	}
	if s.EarliestDate != "" {
		fmt.Fprintf(&b, "\nDate range: %s to %s\n", s.EarliestDate, s.LatestDate)
	}
	return b.String()
}
