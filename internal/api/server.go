// Package api serves the saved listing files of the data directory.
package api

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"go-naukri-scraper/internal/export"
	"go-naukri-scraper/internal/filter"
	"go-naukri-scraper/internal/models"
	"go-naukri-scraper/internal/report"
	"go-naukri-scraper/pkg/logging"
)

// Server reads JSON listing files from dataDir. It never writes.
type Server struct {
	dataDir string
	log     *logging.Logger
	now     func() time.Time
}

func NewServer(dataDir string, log *logging.Logger) *Server {
	return &Server{dataDir: dataDir, log: log, now: time.Now}
}

// SetupRouter configures the read-only snapshot routes.
func (s *Server) SetupRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), s.requestLogger())

	router.GET("/health", s.HandleHealth)
	snapshots := router.Group("/snapshots")
	snapshots.GET("", s.HandleListSnapshots)
	snapshots.GET("/:name", s.HandleGetSnapshot)
	snapshots.GET("/:name/summary", s.HandleSnapshotSummary)

	return router
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("Request", "method", c.Request.Method, "path", c.Request.URL.Path,
			"status", c.Writer.Status(), "elapsed", time.Since(start))
	}
}

// SnapshotInfo describes one listing file.
type SnapshotInfo struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

type ListSnapshotsResponse struct {
	Snapshots []SnapshotInfo `json:"snapshots"`
	Total     int            `json:"total"`
}

type SnapshotResponse struct {
	Name     string              `json:"name"`
	Listings []models.JobListing `json:"listings"`
	Total    int                 `json:"total"`
	// MaxDays echoes the applied age filter, 0 when none was.
	MaxDays int `json:"max_days,omitempty"`
}

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, ErrorResponse{Error: ErrorDetail{Code: code, Message: message}})
}

func (s *Server) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// HandleListSnapshots handles GET /snapshots, newest first.
func (s *Server) HandleListSnapshots(c *gin.Context) {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		abort(c, http.StatusInternalServerError, "internal_error", "Failed to list snapshots: "+err.Error())
		return
	}

	infos := make([]SnapshotInfo, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != ".json" {
			continue
		}
		fi, err := e.Info()
		if err != nil {
			continue
		}
		infos = append(infos, SnapshotInfo{
			Name:     strings.TrimSuffix(e.Name(), ".json"),
			Size:     fi.Size(),
			Modified: fi.ModTime().UTC(),
		})
	}
	slices.SortFunc(infos, func(a, b SnapshotInfo) int {
		if c := b.Modified.Compare(a.Modified); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})

	c.JSON(http.StatusOK, ListSnapshotsResponse{Snapshots: infos, Total: len(infos)})
}

// HandleGetSnapshot handles GET /snapshots/:name. With max_days=N only
// listings posted within N days are returned.
func (s *Server) HandleGetSnapshot(c *gin.Context) {
	listings, ok := s.load(c)
	if !ok {
		return
	}

	resp := SnapshotResponse{Name: c.Param("name")}
	if raw := c.Query("max_days"); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < 0 {
			abort(c, http.StatusBadRequest, "invalid_parameter", "Invalid max_days parameter: must be a non-negative integer")
			return
		}
		listings = filter.ByAge(listings, days, s.now(), s.log)
		resp.MaxDays = days
	}
	resp.Listings = listings
	resp.Total = len(listings)
	c.JSON(http.StatusOK, resp)
}

// HandleSnapshotSummary handles GET /snapshots/:name/summary.
func (s *Server) HandleSnapshotSummary(c *gin.Context) {
	listings, ok := s.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report.Summarize(listings))
}

// load reads the snapshot named by the route. Names are bare file names
// without the .json suffix.
func (s *Server) load(c *gin.Context) ([]models.JobListing, bool) {
	name := c.Param("name")
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		abort(c, http.StatusBadRequest, "invalid_name", "Invalid snapshot name")
		return nil, false
	}

	listings, err := export.ReadJSON(filepath.Join(s.dataDir, name+".json"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			abort(c, http.StatusNotFound, "not_found", "Snapshot not found")
			return nil, false
		}
		s.log.Error("❌ Failed to read snapshot", "name", name, "error", err)
		abort(c, http.StatusInternalServerError, "internal_error", "Failed to read snapshot")
		return nil, false
	}
	if listings == nil {
		listings = []models.JobListing{}
	}
	return listings, true
}
