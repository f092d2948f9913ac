package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go-naukri-scraper/internal/models"
)

// EncodeCSV writes a header row followed by one row per listing.
func EncodeCSV(w io.Writer, listings []models.JobListing) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(models.Columns()); err != nil {
		return err
	}
	for _, l := range listings {
		if err := cw.Write(l.Row()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func WriteCSV(path string, listings []models.JobListing) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := EncodeCSV(f, listings); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
