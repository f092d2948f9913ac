package filter

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"go-naukri-scraper/internal/models"
)

// normalizeText lowercases and strips accents so "Ingénieur" matches "ingenieur".
func normalizeText(str string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, err := transform.String(t, str)
	if err != nil {
		result = str
	}
	return strings.ToLower(result)
}

// TitleHasRole reports whether the title mentions role, ignoring case and accents.
func TitleHasRole(title, role string) bool {
	return strings.Contains(normalizeText(title), normalizeText(role))
}

// RoleCount is the number of listings whose title mentions Role.
type RoleCount struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}

// CountRoles counts listings per role, in roles order. Roles nobody matched
// are left out.
func CountRoles(listings []models.JobListing, roles []string) []RoleCount {
	var counts []RoleCount
	for _, role := range roles {
		n := 0
		for _, l := range listings {
			if TitleHasRole(l.Title, role) {
				n++
			}
		}
		if n > 0 {
			counts = append(counts, RoleCount{Role: role, Count: n})
		}
	}
	return counts
}
