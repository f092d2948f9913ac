package models

import (
	"fmt"
	"strings"
)

// TimeFrame is the posting-age window requested from the site.
type TimeFrame string

const (
	TimeFrameDay     TimeFrame = "day"
	TimeFrameWeek    TimeFrame = "week"
	TimeFrameMonth   TimeFrame = "month"
	TimeFrame3Months TimeFrame = "3months"
	TimeFrame6Months TimeFrame = "6months"
	TimeFrameYear    TimeFrame = "year"
	TimeFrameAll     TimeFrame = "all"
)

// TimeFrames lists every accepted time frame token.
var TimeFrames = []TimeFrame{
	TimeFrameDay, TimeFrameWeek, TimeFrameMonth, TimeFrame3Months,
	TimeFrame6Months, TimeFrameYear, TimeFrameAll,
}

// ParseTimeFrame accepts one of the TimeFrames tokens, case-insensitively.
func ParseTimeFrame(s string) (TimeFrame, error) {
	token := TimeFrame(strings.ToLower(strings.TrimSpace(s)))
	for _, tf := range TimeFrames {
		if tf == token {
			return tf, nil
		}
	}
	return "", fmt.Errorf("invalid time frame %q (want one of %v)", s, TimeFrames)
}

// SearchQuery is the immutable input of one scrape run.
type SearchQuery struct {
	JobTitle       string
	Location       string
	TimeFrame      TimeFrame
	PageCount      int
	MaxJobsPerPage int
}

func (q SearchQuery) Validate() error {
	if _, err := ParseTimeFrame(string(q.TimeFrame)); err != nil {
		return err
	}
	if q.PageCount < 1 {
		return fmt.Errorf("page count must be positive, got %d", q.PageCount)
	}
	if q.MaxJobsPerPage < 1 {
		return fmt.Errorf("max jobs per page must be positive, got %d", q.MaxJobsPerPage)
	}
	return nil
}

// Describe renders the query the way it is announced in logs.
func (q SearchQuery) Describe() string {
	title := q.JobTitle
	if title == "" {
		title = "all jobs"
	}
	location := q.Location
	if location == "" {
		location = "any location"
	}
	return fmt.Sprintf("%s in %s from the past %s", title, location, q.TimeFrame)
}
