package filter

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"go-naukri-scraper/internal/models"
)

// DateLayout is the layout of JobListing.ParsedDate.
const DateLayout = "2006-01-02"

// missingPostedDate is what the resolver stores when no date locator matched.
var missingPostedDate = models.NotFound("Posted date")

var (
	daysAgoRegex   = regexp.MustCompile(`(\d+)\+?\s*day`)
	weeksAgoRegex  = regexp.MustCompile(`(\d+)\+?\s*week`)
	monthsAgoRegex = regexp.MustCompile(`(\d+)\+?\s*month`)
	dayMonthRegex  = regexp.MustCompile(`(\d{1,2})\s+([A-Za-z]{3})`)
)

var monthAbbrevs = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// NormalizePostedDate turns posting text such as "Posted 2 days ago" or
// "Posted on 12 Apr" into a YYYY-MM-DD date relative to now, or
// models.UnknownDate when the text matches no known pattern.
func NormalizePostedDate(raw string, now time.Time) string {
	d, ok := ParsePostedDate(raw, now)
	if !ok {
		return models.UnknownDate
	}
	return d.Format(DateLayout)
}

// ParsePostedDate is NormalizePostedDate without the formatting. Patterns are
// tried in order: days, hours, weeks, months (30 days each), then "<d> <mon>".
// A pattern whose keyword is present but whose count is not falls through to
// the next one.
func ParsePostedDate(raw string, now time.Time) (time.Time, bool) {
	if raw == "" || raw == missingPostedDate {
		return time.Time{}, false
	}
	text := strings.ToLower(raw)

	if strings.Contains(text, "day") {
		if n, ok := leadingCount(daysAgoRegex, text); ok {
			return now.AddDate(0, 0, -n), true
		}
	}

	// Any number of hours is today.
	if strings.Contains(text, "hour") || strings.Contains(text, "hr") {
		return startOfDay(now), true
	}

	if strings.Contains(text, "week") {
		if n, ok := leadingCount(weeksAgoRegex, text); ok {
			return now.AddDate(0, 0, -7*n), true
		}
	}

	if strings.Contains(text, "month") {
		if n, ok := leadingCount(monthsAgoRegex, text); ok {
			return now.AddDate(0, 0, -30*n), true
		}
	}

	return parseDayMonth(raw, now)
}

func leadingCount(re *regexp.Regexp, text string) (int, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// parseDayMonth resolves "12 Apr" against now's year, falling back to the
// previous year when the date would be in the future.
func parseDayMonth(raw string, now time.Time) (time.Time, bool) {
	m := dayMonthRegex.FindStringSubmatch(raw)
	if m == nil {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(m[1])
	if err != nil {
		return time.Time{}, false
	}
	month, ok := monthAbbrevs[strings.ToLower(m[2])]
	if !ok {
		return time.Time{}, false
	}

	d, ok := calendarDate(now.Year(), month, day, now.Location())
	if !ok {
		return time.Time{}, false
	}
	if d.After(now) {
		return calendarDate(now.Year()-1, month, day, now.Location())
	}
	return d, true
}

// calendarDate rejects dates time.Date would normalize, like 31 Apr.
func calendarDate(year int, month time.Month, day int, loc *time.Location) (time.Time, bool) {
	d := time.Date(year, month, day, 0, 0, 0, 0, loc)
	if d.Year() != year || d.Month() != month || d.Day() != day {
		return time.Time{}, false
	}
	return d, true
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
