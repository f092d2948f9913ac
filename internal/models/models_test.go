package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeFrame(t *testing.T) {
	tests := []struct {
		in      string
		want    TimeFrame
		wantErr bool
	}{
		{"month", TimeFrameMonth, false},
		{" Week ", TimeFrameWeek, false},
		{"3MONTHS", TimeFrame3Months, false},
		{"all", TimeFrameAll, false},
		{"fortnight", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTimeFrame(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSearchQueryValidate(t *testing.T) {
	valid := SearchQuery{TimeFrame: TimeFrameDay, PageCount: 1, MaxJobsPerPage: 1}
	assert.NoError(t, valid.Validate())

	noPages := valid
	noPages.PageCount = 0
	assert.ErrorContains(t, noPages.Validate(), "page count")

	noJobs := valid
	noJobs.MaxJobsPerPage = -1
	assert.ErrorContains(t, noJobs.Validate(), "max jobs per page")

	badFrame := valid
	badFrame.TimeFrame = "decade"
	assert.ErrorContains(t, badFrame.Validate(), "invalid time frame")
}

func TestDescribe(t *testing.T) {
	q := SearchQuery{TimeFrame: TimeFrameWeek}
	assert.Equal(t, "all jobs in any location from the past week", q.Describe())
}

func TestListingKey(t *testing.T) {
	tests := []struct {
		name string
		l    JobListing
		want string
	}{
		{"link", JobListing{Link: "https://www.naukri.com/job-1", JobID: "1"}, "https://www.naukri.com/job-1"},
		{"id when link missing", JobListing{Link: NotFound("Link"), JobID: "42"}, "id:42"},
		{"nothing", JobListing{Link: NotFound("Link"), JobID: NotFound("Job ID")}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.l.Key())
		})
	}
}

func TestRowMatchesColumns(t *testing.T) {
	l := JobListing{Title: "t", ParsedDate: "2024-01-01"}
	row := l.Row()

	require.Len(t, row, len(Columns()))
	assert.Equal(t, "t", row[0])
	assert.Equal(t, "2024-01-01", row[len(row)-1])
}
