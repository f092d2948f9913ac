package scraper

import (
	"go-naukri-scraper/internal/dom"
	"go-naukri-scraper/internal/models"
)

// Site is everything the engine needs to know about one job board's markup.
// Every Selectors value is an ordered fallback list.
type Site struct {
	Name      string
	SearchURL func(q models.SearchQuery) string

	// Readiness matches once result cards have rendered.
	Readiness dom.Selector
	// Cards are tried in order; the first one matching anything wins.
	Cards  dom.Selectors
	Fields FieldLocators
	// JobIDAttributes are read from the card element itself.
	JobIDAttributes []string

	NextPage   dom.Selectors
	DateFilter DateFilterProfile
}

// FieldLocators are the per-field strategies, evaluated against a card.
type FieldLocators struct {
	Title       dom.Selectors
	Company     dom.Selectors
	Location    dom.Selectors
	Experience  dom.Selectors
	Salary      dom.Selectors
	Description dom.Selectors
	Skills      dom.Selectors
	PostedDate  dom.Selectors
	// Link strategies are read for their href attribute.
	Link dom.Selectors
}

type DateFilterProfile struct {
	Controls dom.Selectors
	// Labels maps a time frame to the option captions the site has used for it.
	Labels map[models.TimeFrame][]string
	// Option finds a clickable option by caption.
	Option func(label string) dom.Selector
	// Options lists every visible option, for the keyword fallback.
	Options dom.Selectors
	// FallbackKeywords pick an option from Options when no label matched.
	FallbackKeywords []string
}
