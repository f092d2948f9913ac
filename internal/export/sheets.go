package export

import (
	"context"
	"fmt"
	"strings"

	"go-naukri-scraper/internal/models"
)

// ValuesClient is the part of the Google Sheets client the writer uses.
type ValuesClient interface {
	ClearValues(ctx context.Context, spreadsheetID, range_ string) error
	UpdateValues(ctx context.Context, spreadsheetID, range_ string, values [][]interface{}) error
}

// SheetsWriter replaces the contents of one sheet with the listings.
type SheetsWriter struct {
	client        ValuesClient
	spreadsheetID string
	range_        string
}

func NewSheetsWriter(client ValuesClient, spreadsheetID, range_ string) *SheetsWriter {
	return &SheetsWriter{client: client, spreadsheetID: spreadsheetID, range_: range_}
}

func (w *SheetsWriter) Write(ctx context.Context, listings []models.JobListing) error {
	sheet, _, _ := strings.Cut(w.range_, "!")
	if err := w.client.ClearValues(ctx, w.spreadsheetID, sheet); err != nil {
		return fmt.Errorf("sheets: clear %s: %w", sheet, err)
	}
	if err := w.client.UpdateValues(ctx, w.spreadsheetID, w.range_, SheetValues(listings)); err != nil {
		return fmt.Errorf("sheets: update %s: %w", w.range_, err)
	}
	return nil
}

// SheetValues is the header row plus one row per listing.
func SheetValues(listings []models.JobListing) [][]interface{} {
	values := make([][]interface{}, 0, len(listings)+1)
	values = append(values, toCells(models.Columns()))
	for _, l := range listings {
		values = append(values, toCells(l.Row()))
	}
	return values
}

func toCells(row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return cells
}
