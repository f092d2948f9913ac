package models

import "fmt"

// UnknownDate is the parsed date of a listing whose posting date text could
// not be normalized.
const UnknownDate = "Unknown"

// ExtractedAtLayout is the layout of JobListing.ExtractedAt.
const ExtractedAtLayout = "2006-01-02 15:04:05"

// JobListing is one scraped posting. Every field is always populated: a field
// whose extraction failed holds NotFound(fieldName) instead of being empty.
type JobListing struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Experience  string `json:"experience"`
	Salary      string `json:"salary"`
	Description string `json:"description"`
	Skills      string `json:"skills"`
	Link        string `json:"link"`
	PostedDate  string `json:"posted_date"`
	JobID       string `json:"job_id"`
	ExtractedAt string `json:"extracted_time"`
	// ParsedDate is YYYY-MM-DD or UnknownDate, never empty.
	ParsedDate  string `json:"parsed_date"`
}

// NotFound returns the sentinel stored in a field that could not be extracted.
func NotFound(fieldName string) string {
	return fmt.Sprintf("%s not found", fieldName)
}

// Columns lists the tabular column names in JSON field order.
func Columns() []string {
	return []string{
		"title", "company", "location", "experience", "salary", "description",
		"skills", "link", "posted_date", "job_id", "extracted_time", "parsed_date",
	}
}

// Row returns the listing values in Columns order.
func (l JobListing) Row() []string {
	return []string{
		l.Title, l.Company, l.Location, l.Experience, l.Salary, l.Description,
		l.Skills, l.Link, l.PostedDate, l.JobID, l.ExtractedAt, l.ParsedDate,
	}
}

// Key identifies a listing across runs: its link, or its job id when the
// link is missing. It is empty when the listing has neither.
func (l JobListing) Key() string {
	if l.Link != "" && l.Link != NotFound("Link") {
		return l.Link
	}
	if l.JobID != "" && l.JobID != NotFound("Job ID") {
		return "id:" + l.JobID
	}
	return ""
}
