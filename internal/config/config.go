// Load envs from .env
// Load YAML config over the defaults
// Override with env vars
// Validate config

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"go-naukri-scraper/internal/models"
)

const DefaultPath = "configs/config.yaml"

type Config struct {
	LogLevel string `yaml:"log_level" env:"LOG_LEVEL"`
	LogFile  string `yaml:"log_file"`

	Browser    BrowserConfig    `yaml:"browser"`
	Navigation NavigationConfig `yaml:"navigation"`
	Pacing     PacingConfig     `yaml:"pacing"`
	//Search criteria, overridable from the command line
	Search SearchConfig `yaml:"search"`
	Output OutputConfig `yaml:"output"`

	Telegram TelegramConfig `yaml:"telegram"`
	Database DatabaseConfig `yaml:"database"`
	Sheets   SheetsConfig   `yaml:"sheets"`
	Server   ServerConfig   `yaml:"server"`

	// Source is the YAML file the values came from, empty when none was read.
	Source string `yaml:"-"`
}

type BrowserConfig struct {
	Headless       bool          `yaml:"headless" env:"HEADLESS"`
	UserAgent      string        `yaml:"user_agent"`
	Args           []string      `yaml:"args"`
	ViewportWidth  int           `yaml:"viewport_width"`
	ViewportHeight int           `yaml:"viewport_height"`
	ActionTimeout  time.Duration `yaml:"action_timeout"`
	// WaitTime bounds the wait for a page transition after a click.
	WaitTime      time.Duration `yaml:"wait_time"`
	InstallDriver bool          `yaml:"install_driver"`
}

type NavigationConfig struct {
	RetryCount       int           `yaml:"retry_count"`
	ReadinessTimeout time.Duration `yaml:"readiness_timeout"`
	BackoffStep      time.Duration `yaml:"backoff_step"`
	MinInterval      time.Duration `yaml:"min_interval"`
}

// Range is a jittered delay window.
type Range struct {
	Min time.Duration `yaml:"min"`
	Max time.Duration `yaml:"max"`
}

type PacingConfig struct {
	Page        Range `yaml:"page"`
	Click       Range `yaml:"click"`
	Settle      Range `yaml:"settle"`
	Option      Range `yaml:"option"`
	Filter      Range `yaml:"filter"`
	HumanScroll bool  `yaml:"human_scroll"`
}

type SearchConfig struct {
	JobTitle       string `yaml:"job_title"`
	Location       string `yaml:"location"`
	TimeFrame      string `yaml:"time_frame"`
	Pages          int    `yaml:"pages"`
	JobsPerPage    int    `yaml:"jobs_per_page"`
	PostFilterDays int    `yaml:"post_filter_days"`
}

// Query builds the run input from the search section.
func (s SearchConfig) Query() (models.SearchQuery, error) {
	tf, err := models.ParseTimeFrame(s.TimeFrame)
	if err != nil {
		return models.SearchQuery{}, err
	}
	q := models.SearchQuery{
		JobTitle:       strings.TrimSpace(s.JobTitle),
		Location:       strings.TrimSpace(s.Location),
		TimeFrame:      tf,
		PageCount:      s.Pages,
		MaxJobsPerPage: s.JobsPerPage,
	}
	return q, q.Validate()
}

type OutputConfig struct {
	DataDir        string   `yaml:"data_dir"`
	Formats        []string `yaml:"formats"`
	Screenshots    bool     `yaml:"screenshots"`
	ScreenshotsDir string   `yaml:"screenshots_dir"`
	CachePath      string   `yaml:"cache_path"`
}

type TelegramConfig struct {
	Token  string `yaml:"token" env:"TELEGRAM_BOT_TOKEN"`
	ChatID int64  `yaml:"chat_id" env:"TELEGRAM_CHAT_ID"`
}

func (t TelegramConfig) Enabled() bool { return t.Token != "" && t.ChatID != 0 }

type DatabaseConfig struct {
	URL        string `yaml:"url" env:"DATABASE_URL"`
	SQLitePath string `yaml:"sqlite_path" env:"SQLITE_PATH"`
}

type SheetsConfig struct {
	CredentialsPath string `yaml:"credentials_path" env:"GOOGLE_SHEETS_CREDENTIALS"`
	SpreadsheetID   string `yaml:"spreadsheet_id" env:"SHEETS_SPREADSHEET_ID"`
	Range           string `yaml:"range"`
}

func (s SheetsConfig) Enabled() bool { return s.CredentialsPath != "" && s.SpreadsheetID != "" }

type ServerConfig struct {
	Port string `yaml:"port" env:"PORT"`
}

// Formats accepted in Output.Formats.
var Formats = []string{"json", "csv", "excel", "pdf"}

// Default returns the configuration used when no file or env says otherwise.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Browser: BrowserConfig{
			Headless:       true,
			UserAgent:      "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			Args:           []string{"--disable-gpu", "--no-sandbox", "--disable-dev-shm-usage", "--disable-notifications"},
			ViewportWidth:  1366,
			ViewportHeight: 768,
			ActionTimeout:  10 * time.Second,
			WaitTime:       15 * time.Second,
		},
		Navigation: NavigationConfig{
			RetryCount:       3,
			ReadinessTimeout: 15 * time.Second,
			BackoffStep:      2 * time.Second,
			MinInterval:      time.Second,
		},
		Pacing: PacingConfig{
			Page:        Range{Min: 3 * time.Second, Max: 7 * time.Second},
			Click:       Range{Min: time.Second, Max: 2 * time.Second},
			Settle:      Range{Min: 2 * time.Second, Max: 4 * time.Second},
			Option:      Range{Min: 2 * time.Second, Max: 3 * time.Second},
			Filter:      Range{Min: 3 * time.Second, Max: 5 * time.Second},
			HumanScroll: true,
		},
		Search: SearchConfig{
			TimeFrame:   string(models.TimeFrameMonth),
			Pages:       10,
			JobsPerPage: 20,
		},
		Output: OutputConfig{
			DataDir:        "data",
			Formats:        []string{"json", "csv", "excel"},
			Screenshots:    true,
			ScreenshotsDir: "logs/screenshots",
			CachePath:      ".cache",
		},
		Sheets: SheetsConfig{Range: "Listings!A1"},
		Server: ServerConfig{Port: "8080"},
	}
}

// Load reads .env, then the YAML file at path (DefaultPath when empty) over
// the defaults, then applies env overrides and validates the result. A
// missing YAML file is not an error.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	if path == "" {
		path = DefaultPath
	}

	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		cfg.Source = path
	case errors.Is(err, os.ErrNotExist):
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		c.LogLevel = level
	}

	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		c.Telegram.Token = token
	}

	if chatID := os.Getenv("TELEGRAM_CHAT_ID"); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		c.Telegram.ChatID = id
	}

	if headless := os.Getenv("HEADLESS"); headless != "" {
		v, err := strconv.ParseBool(headless)
		if err != nil {
			return fmt.Errorf("invalid HEADLESS: %w", err)
		}
		c.Browser.Headless = v
	}

	if url := os.Getenv("DATABASE_URL"); url != "" {
		c.Database.URL = url
	}
	if path := os.Getenv("SQLITE_PATH"); path != "" {
		c.Database.SQLitePath = path
	}
	if creds := os.Getenv("GOOGLE_SHEETS_CREDENTIALS"); creds != "" {
		c.Sheets.CredentialsPath = creds
	}
	if id := os.Getenv("SHEETS_SPREADSHEET_ID"); id != "" {
		c.Sheets.SpreadsheetID = id
	}
	if port := os.Getenv("PORT"); port != "" {
		c.Server.Port = port
	}
	return nil
}

// Validate reports every invalid value at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Navigation.RetryCount < 1 {
		errs = append(errs, fmt.Errorf("navigation.retry_count must be at least 1, got %d", c.Navigation.RetryCount))
	}
	if c.Navigation.ReadinessTimeout <= 0 {
		errs = append(errs, errors.New("navigation.readiness_timeout must be positive"))
	}
	if c.Browser.WaitTime <= 0 {
		errs = append(errs, errors.New("browser.wait_time must be positive"))
	}

	ranges := map[string]Range{
		"page": c.Pacing.Page, "click": c.Pacing.Click, "settle": c.Pacing.Settle,
		"option": c.Pacing.Option, "filter": c.Pacing.Filter,
	}
	for name, r := range ranges {
		if r.Min < 0 || r.Max < r.Min {
			errs = append(errs, fmt.Errorf("pacing.%s: need 0 <= min <= max, got %s..%s", name, r.Min, r.Max))
		}
	}

	if _, err := models.ParseTimeFrame(c.Search.TimeFrame); err != nil {
		errs = append(errs, fmt.Errorf("search.time_frame: %w", err))
	}
	if c.Search.Pages < 1 {
		errs = append(errs, fmt.Errorf("search.pages must be positive, got %d", c.Search.Pages))
	}
	if c.Search.JobsPerPage < 1 {
		errs = append(errs, fmt.Errorf("search.jobs_per_page must be positive, got %d", c.Search.JobsPerPage))
	}
	if c.Search.PostFilterDays < 0 {
		errs = append(errs, fmt.Errorf("search.post_filter_days must not be negative, got %d", c.Search.PostFilterDays))
	}

	for _, f := range c.Output.Formats {
		if !knownFormat(f) {
			errs = append(errs, fmt.Errorf("output.formats: unknown format %q (want %s)", f, strings.Join(Formats, ", ")))
		}
	}

	return errors.Join(errs...)
}

func knownFormat(f string) bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}
