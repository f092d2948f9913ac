package naukri

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-naukri-scraper/internal/models"
)

func TestSearchURL(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		location string
		want     string
	}{
		{"title and location", "Data Analyst", "India", "https://www.naukri.com/data-analyst-jobs-in-india"},
		{"title only", "golang developer", "", "https://www.naukri.com/golang-developer-jobs"},
		{"location only", "", "New Delhi", "https://www.naukri.com/jobs-in-new-delhi"},
		{"neither", "", "", "https://www.naukri.com/jobs"},
		{"extra spaces", "  data   analyst ", "india", "https://www.naukri.com/data-analyst-jobs-in-india"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := models.SearchQuery{JobTitle: tt.title, Location: tt.location}
			assert.Equal(t, tt.want, SearchURL(q))
		})
	}
}

func TestEveryTimeFrameHasLabels(t *testing.T) {
	for _, tf := range models.TimeFrames {
		if tf == models.TimeFrameAll {
			continue
		}
		assert.NotEmpty(t, TimeFrameLabels[tf], tf)
	}
	assert.Equal(t, []string{"Past Month", "Last 30 days", "30 Days", "One Month"}, TimeFrameLabels[models.TimeFrameMonth])
}
