// Package naukri holds the naukri.com markup profile. The site has shipped
// several card layouts, so every field carries a list of locators ordered
// from the most specific to the most generic.
package naukri

import (
	"fmt"
	"strings"

	"go-naukri-scraper/internal/dom"
	"go-naukri-scraper/internal/models"
	"go-naukri-scraper/internal/scraper"
)

const BaseURL = "https://www.naukri.com"

// Site returns the naukri.com profile.
func Site() scraper.Site {
	return scraper.Site{
		Name:      "Naukri",
		SearchURL: SearchURL,
		Readiness: dom.XPath("//div[contains(@class, 'job')] | //article[contains(@class, 'job')]"),
		Cards: dom.XPaths(
			"//article[contains(@class, 'job')]",
			"//div[contains(@class, 'jobTuple')]",
			"//div[contains(@class, 'nI-gNb-job')]",
		),
		Fields: scraper.FieldLocators{
			Title: dom.XPaths(
				".//a[contains(@class, 'title')]",
				".//a[contains(@class, 'jobTitle')]",
				".//a[contains(@title, 'Job Details')]",
				".//h2",
				".//a[1]",
			),
			Company: dom.XPaths(
				".//a[contains(@class, 'company')]",
				".//a[contains(@class, 'companyName')]",
				".//span[contains(@class, 'company')]",
				".//span[contains(@class, 'org')]",
			),
			Location: dom.XPaths(
				".//span[contains(@class, 'location')]",
				".//span[contains(@class, 'loc')]",
				".//span[contains(@class, 'locWdth')]",
				".//div[contains(@class, 'location')]",
				".//span[contains(text(), 'Location')]/following-sibling::span",
			),
			Experience: dom.XPaths(
				".//span[contains(@class, 'experience')]",
				".//span[contains(@class, 'exp')]",
				".//li[contains(text(), 'Yrs')]",
				".//span[contains(text(), 'Experience')]/following-sibling::span",
			),
			Salary: dom.XPaths(
				".//span[contains(@class, 'salary')]",
				".//span[contains(@class, 'sal')]",
				".//span[contains(text(), 'PA')]",
				".//span[contains(text(), 'CTC')]/parent::*",
			),
			Description: dom.XPaths(
				".//div[contains(@class, 'job-description')]",
				".//div[contains(@class, 'description')]",
				".//ul[contains(@class, 'description')]",
				".//div[contains(@class, 'jobDesc')]",
			),
			Skills: dom.XPaths(
				".//span[contains(@class, 'skill')]",
				".//ul[contains(@class, 'skill')]/li",
				".//div[contains(@class, 'skill')]",
				".//span[contains(text(), 'Skills')]/following-sibling::*",
			),
			PostedDate: dom.XPaths(
				".//span[contains(@class, 'date')]",
				".//div[contains(@class, 'date')]",
				".//span[contains(text(), 'day')]",
				".//span[contains(text(), 'Posted')]",
				".//span[contains(text(), 'hour')]",
			),
			Link: dom.XPaths(
				".//a[contains(@class, 'title')]",
				".//a[contains(@class, 'jobTitle')]",
				".//a[1]",
			),
		},
		JobIDAttributes: []string{"data-job-id", "id"},
		NextPage: dom.XPaths(
			"//a[contains(@class, 'next')]",
			"//a[contains(text(), 'Next')]",
			"//a[contains(@class, 'page-next')]",
			"//li[contains(@class, 'next')]/a",
			"//div[contains(@class, 'pagination')]/a[contains(text(), '>')]",
		),
		DateFilter: scraper.DateFilterProfile{
			Controls: dom.XPaths(
				"//div[contains(text(), 'Date Posted')]/parent::*",
				"//div[contains(@class, 'datePosted')]",
				"//div[contains(@class, 'filter') and contains(text(), 'Date')]",
				"//span[contains(text(), 'Date Posted')]",
				"//a[contains(text(), 'Date Posted')]",
				"//div[contains(@class, 'filter-item')]//div[contains(text(), 'Date')]",
			),
			Labels:           TimeFrameLabels,
			Option:           optionByLabel,
			Options:          dom.XPaths("//div[contains(@class, 'filter')]/div/label | //div[contains(@class, 'dropdown')]/div"),
			FallbackKeywords: []string{"day", "week", "month"},
		},
	}
}

// TimeFrameLabels are the captions naukri has used for each posting window.
var TimeFrameLabels = map[models.TimeFrame][]string{
	models.TimeFrameDay:     {"Today", "1 Day", "Past 24 hours", "Last 24 hours"},
	models.TimeFrameWeek:    {"Past Week", "Last 7 days", "7 Days", "One Week"},
	models.TimeFrameMonth:   {"Past Month", "Last 30 days", "30 Days", "One Month"},
	models.TimeFrame3Months: {"Past 3 Months", "Last 90 days", "90 Days", "Three Months"},
	models.TimeFrame6Months: {"Past 6 Months", "Last 180 days", "180 Days", "Six Months"},
	models.TimeFrameYear:    {"Past Year", "Last 365 days", "365 Days", "One Year"},
}

func optionByLabel(label string) dom.Selector {
	return dom.XPath(fmt.Sprintf(
		"//label[contains(text(), '%[1]s')] | //div[contains(text(), '%[1]s')] | //a[contains(text(), '%[1]s')]", label))
}

// SearchURL builds the listing URL for q:
//
//	/<title>-jobs-in-<location>, /<title>-jobs, /jobs-in-<location> or /jobs
func SearchURL(q models.SearchQuery) string {
	title, location := Slug(q.JobTitle), Slug(q.Location)
	switch {
	case title != "" && location != "":
		return fmt.Sprintf("%s/%s-jobs-in-%s", BaseURL, title, location)
	case title != "":
		return fmt.Sprintf("%s/%s-jobs", BaseURL, title)
	case location != "":
		return fmt.Sprintf("%s/jobs-in-%s", BaseURL, location)
	default:
		return BaseURL + "/jobs"
	}
}

// Slug lowercases s and joins its words with hyphens.
func Slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}
