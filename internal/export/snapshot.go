package export

import (
	"path/filepath"
	"time"

	"go-naukri-scraper/internal/models"
	"go-naukri-scraper/pkg/logging"
)

// Snapshotter writes the cumulative incremental snapshots of a run.
type Snapshotter struct {
	dir string
	log *logging.Logger
	Now func() time.Time
}

func NewSnapshotter(dir string, log *logging.Logger) *Snapshotter {
	return &Snapshotter{dir: dir, log: log, Now: time.Now}
}

// Snapshot writes every listing gathered so far. An empty run writes nothing.
func (s *Snapshotter) Snapshot(q models.SearchQuery, page int, listings []models.JobListing) error {
	if len(listings) == 0 {
		s.log.Debug("Nothing to snapshot yet", "page", page)
		return nil
	}
	path := filepath.Join(s.dir, SnapshotName(q, page, s.Now()))
	if err := WriteJSON(path, listings); err != nil {
		return err
	}
	s.log.Info("💾 Saved incremental data", "path", path, "listings", len(listings))
	return nil
}
