package probe

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// Write prints the report as aligned text.
func (r *Report) Write(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "URL:\t%s\n", r.URL)
	fmt.Fprintf(tw, "Title:\t%s\n", r.Title)
	fmt.Fprintf(tw, "Divs with 'job' in class:\t%d\n", r.Structure.JobDivs)
	fmt.Fprintf(tw, "Article elements:\t%d\n", r.Structure.Articles)
	for _, c := range r.Structure.Containers {
		fmt.Fprintf(tw, "Container:\t%s\n", c)
	}
	for i, s := range r.Structure.ClassSamples {
		fmt.Fprintf(tw, "Div %d:\t%s\t%s\n", i+1, s.Class, s.FirstChild)
	}

	section(tw, "Card strategies", r.Cards)
	fmt.Fprintf(tw, "\nField coverage over %d sampled cards\n", r.Sampled)
	for _, f := range r.Fields {
		fmt.Fprintf(tw, "%s\tresolved %d/%d\t\n", f.Field, f.Resolved, r.Sampled)
		for _, s := range f.Strategies {
			fmt.Fprintf(tw, "  \t%d\t%s\n", s.Matches, s.Selector)
		}
	}
	section(tw, "Next page strategies", r.NextPage)
	section(tw, "Date filter strategies", r.DateFilter)

	if r.Structure.FirstCard != "" {
		fmt.Fprintf(tw, "\nFirst card markup:\n%s\n", r.Structure.FirstCard)
	}
	return tw.Flush()
}

func section(w io.Writer, title string, counts []StrategyCount) {
	fmt.Fprintf(w, "\n%s\n", title)
	for _, c := range counts {
		if c.Err != "" {
			fmt.Fprintf(w, "  \terror\t%s\t%s\n", c.Selector, c.Err)
			continue
		}
		fmt.Fprintf(w, "  \t%d\t%s\n", c.Matches, c.Selector)
	}
}
