package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"go-naukri-scraper/internal/models"
	"go-naukri-scraper/pkg/logging"
)

// Format writes listings to one file type.
type Format struct {
	Ext   string
	Write func(path string, listings []models.JobListing) error
}

// Exporter writes the final artifacts of a run into one directory.
type Exporter struct {
	dir     string
	formats map[string]Format
	log     *logging.Logger
	Now     func() time.Time
}

// NewExporter knows json, csv and excel; Register adds more.
func NewExporter(dir string, log *logging.Logger) *Exporter {
	return &Exporter{
		dir: dir,
		formats: map[string]Format{
			"json":  {Ext: "json", Write: WriteJSON},
			"csv":   {Ext: "csv", Write: WriteCSV},
			"excel": {Ext: "xlsx", Write: WriteExcel},
		},
		log: log,
		Now: time.Now,
	}
}

func (e *Exporter) Register(name string, f Format) {
	e.formats[name] = f
}

// Save writes listings in every named format under a shared base name and
// returns the written paths by format. A failing format does not stop the
// others. With no listings nothing is written.
func (e *Exporter) Save(q models.SearchQuery, listings []models.JobListing, names []string) (map[string]string, error) {
	if len(listings) == 0 {
		e.log.Warn("⚠️ No job listings to save")
		return nil, nil
	}

	base := BaseName(q, e.Now())
	paths := make(map[string]string, len(names))
	var errs []error
	for _, name := range names {
		f, ok := e.formats[name]
		if !ok {
			errs = append(errs, fmt.Errorf("unknown format %q", name))
			continue
		}
		path := filepath.Join(e.dir, base+"."+f.Ext)
		if err := f.Write(path, listings); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			continue
		}
		paths[name] = path
		e.log.Info("📁 Saved data", "format", name, "path", path)
	}
	return paths, errors.Join(errs...)
}
