package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go-naukri-scraper/internal/models"
)

// EncodeJSON writes listings as an indented array. Non-ASCII text and HTML
// characters are kept as they are.
func EncodeJSON(w io.Writer, listings []models.JobListing) error {
	if listings == nil {
		listings = []models.JobListing{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(listings)
}

func WriteJSON(path string, listings []models.JobListing) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := EncodeJSON(f, listings); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

func ReadJSON(path string) ([]models.JobListing, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var listings []models.JobListing
	if err := json.Unmarshal(data, &listings); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return listings, nil
}
