package export

import (
	"fmt"
	"strings"
	"time"

	"go-naukri-scraper/internal/models"
)

// TimestampLayout stamps every artifact name.
const TimestampLayout = "20060102_150405"

func nameToken(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return "all"
	}
	return strings.ReplaceAll(s, " ", "_")
}

// BaseName is <title>_<location>_<timeframe>_<timestamp>, with "all" standing
// in for an empty title or location.
func BaseName(q models.SearchQuery, at time.Time) string {
	tf := string(q.TimeFrame)
	if tf == "" {
		tf = "all_time"
	}
	return fmt.Sprintf("%s_%s_%s_%s", nameToken(q.JobTitle), nameToken(q.Location), tf, at.Format(TimestampLayout))
}

// SnapshotName is the file name of the incremental snapshot taken after page.
func SnapshotName(q models.SearchQuery, page int, at time.Time) string {
	return fmt.Sprintf("incremental_%s_%s_%s_page%d_%s.json",
		nameToken(q.JobTitle), nameToken(q.Location), q.TimeFrame, page, at.Format(TimestampLayout))
}
