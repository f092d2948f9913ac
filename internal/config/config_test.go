package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go-naukri-scraper/internal/models"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.Empty(t, cfg.Source)
	assert.Equal(t, 3, cfg.Navigation.RetryCount)
	assert.Equal(t, 15*time.Second, cfg.Navigation.ReadinessTimeout)
	assert.Equal(t, 2*time.Second, cfg.Navigation.BackoffStep)
	assert.Equal(t, Range{Min: 3 * time.Second, Max: 7 * time.Second}, cfg.Pacing.Page)
	assert.Equal(t, "month", cfg.Search.TimeFrame)
	assert.Equal(t, []string{"json", "csv", "excel"}, cfg.Output.Formats)
	assert.True(t, cfg.Browser.Headless)
	assert.False(t, cfg.Telegram.Enabled())
}

func TestLoadYAMLOverDefaults(t *testing.T) {
	path := writeConfig(t, `
browser:
  headless: false
navigation:
  readiness_timeout: 20s
pacing:
  page: { min: 1s, max: 2s }
search:
  job_title: data analyst
  pages: 3
output:
  formats: [json, pdf]
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Source)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, 20*time.Second, cfg.Navigation.ReadinessTimeout)
	assert.Equal(t, 3, cfg.Navigation.RetryCount)
	assert.Equal(t, time.Second, cfg.Pacing.Page.Min)
	assert.Equal(t, "data analyst", cfg.Search.JobTitle)
	assert.Equal(t, 3, cfg.Search.Pages)
	assert.Equal(t, 20, cfg.Search.JobsPerPage)
	assert.Equal(t, []string{"json", "pdf"}, cfg.Output.Formats)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("TELEGRAM_CHAT_ID", "42")
	t.Setenv("HEADLESS", "false")
	t.Setenv("DATABASE_URL", "postgres://localhost/jobs")
	t.Setenv("SHEETS_SPREADSHEET_ID", "sheet")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	assert.True(t, cfg.Telegram.Enabled())
	assert.Equal(t, int64(42), cfg.Telegram.ChatID)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, "postgres://localhost/jobs", cfg.Database.URL)
	assert.Equal(t, "sheet", cfg.Sheets.SpreadsheetID)
	assert.False(t, cfg.Sheets.Enabled())
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("chat id", func(t *testing.T) {
		t.Setenv("TELEGRAM_CHAT_ID", "not-a-number")
		_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
		assert.ErrorContains(t, err, "TELEGRAM_CHAT_ID")
	})

	t.Run("yaml syntax", func(t *testing.T) {
		_, err := Load(writeConfig(t, "search: [unclosed"))
		assert.Error(t, err)
	})

	t.Run("validation", func(t *testing.T) {
		_, err := Load(writeConfig(t, `
navigation:
  retry_count: 0
pacing:
  click: { min: 3s, max: 1s }
search:
  time_frame: fortnight
output:
  formats: [xml]
`))
		require.Error(t, err)
		assert.ErrorContains(t, err, "retry_count")
		assert.ErrorContains(t, err, "pacing.click")
		assert.ErrorContains(t, err, "time_frame")
		assert.ErrorContains(t, err, `"xml"`)
	})
}

func TestSearchQuery(t *testing.T) {
	s := SearchConfig{JobTitle: " data analyst ", Location: "india", TimeFrame: "Week", Pages: 2, JobsPerPage: 5}

	q, err := s.Query()
	require.NoError(t, err)
	assert.Equal(t, models.SearchQuery{
		JobTitle:       "data analyst",
		Location:       "india",
		TimeFrame:      models.TimeFrameWeek,
		PageCount:      2,
		MaxJobsPerPage: 5,
	}, q)

	s.Pages = 0
	_, err = s.Query()
	assert.ErrorContains(t, err, "page count")
}
