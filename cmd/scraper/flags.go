package main

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"go-naukri-scraper/internal/config"
)

// options are the command-line overrides. Only flags given explicitly
// replace config values.
type options struct {
	configPath     string
	jobTitle       string
	location       string
	timeFrame      string
	pages          int
	jobsPerPage    int
	headless       bool
	formats        string
	postFilterDays int

	set map[string]bool
}

func parseFlags(args []string, output io.Writer) (*options, error) {
	o := &options{set: make(map[string]bool)}
	fs := flag.NewFlagSet("scraper", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.StringVar(&o.configPath, "config", config.DefaultPath, "path to the YAML config file")
	fs.StringVar(&o.jobTitle, "job-title", "", "job title to search for (optional)")
	fs.StringVar(&o.location, "location", "", "location to search in (optional)")
	fs.StringVar(&o.timeFrame, "time-frame", "month", "posting age: day, week, month, 3months, 6months, year or all")
	fs.IntVar(&o.pages, "pages", 10, "number of result pages to scrape")
	fs.IntVar(&o.jobsPerPage, "jobs-per-page", 20, "maximum listings to extract per page")
	fs.BoolVar(&o.headless, "headless", true, "run the browser without a window")
	fs.StringVar(&o.formats, "formats", "json,csv,excel", "comma-separated output formats: json, csv, excel, pdf")
	fs.IntVar(&o.postFilterDays, "post-filter-days", 0, "only keep listings posted within this many days (0 keeps all)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })
	return o, nil
}

// apply writes the given flags over cfg and revalidates it.
func (o *options) apply(cfg *config.Config) error {
	if o.set["job-title"] {
		cfg.Search.JobTitle = o.jobTitle
	}
	if o.set["location"] {
		cfg.Search.Location = o.location
	}
	if o.set["time-frame"] {
		cfg.Search.TimeFrame = o.timeFrame
	}
	if o.set["pages"] {
		cfg.Search.Pages = o.pages
	}
	if o.set["jobs-per-page"] {
		cfg.Search.JobsPerPage = o.jobsPerPage
	}
	if o.set["headless"] {
		cfg.Browser.Headless = o.headless
	}
	if o.set["formats"] {
		cfg.Output.Formats = splitFormats(o.formats)
	}
	if o.set["post-filter-days"] {
		cfg.Search.PostFilterDays = o.postFilterDays
	}
	return cfg.Validate()
}

func splitFormats(s string) []string {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}
