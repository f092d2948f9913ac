package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"time"

	"go-naukri-scraper/internal/models"
)

//go:embed templates/report.html
var templates embed.FS

var reportTmpl = template.Must(template.ParseFS(templates, "templates/report.html"))

// PDFPrinter turns an HTML document into PDF bytes.
type PDFPrinter interface {
	PrintPDF(html string) ([]byte, error)
}

// Document is everything a report page shows.
type Document struct {
	Query       models.SearchQuery
	GeneratedAt time.Time
	Summary     Summary
	Listings    []models.JobListing
}

func NewDocument(q models.SearchQuery, listings []models.JobListing, at time.Time) Document {
	return Document{Query: q, GeneratedAt: at, Summary: Summarize(listings), Listings: listings}
}

func RenderHTML(w io.Writer, doc Document) error {
	if err := reportTmpl.Execute(w, doc); err != nil {
		return fmt.Errorf("failed to execute template: %w", err)
	}
	return nil
}

// WritePDF renders doc through printer and saves it at path.
func WritePDF(printer PDFPrinter, path string, doc Document) error {
	var buf bytes.Buffer
	if err := RenderHTML(&buf, doc); err != nil {
		return err
	}
	pdf, err := printer.PrintPDF(buf.String())
	if err != nil {
		return fmt.Errorf("could not print report: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create directory: %w", err)
	}
	return os.WriteFile(path, pdf, 0644)
}
