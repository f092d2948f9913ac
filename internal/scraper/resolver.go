package scraper

import (
	"errors"
	"strings"

	"go-naukri-scraper/internal/dom"
	"go-naukri-scraper/internal/models"
	"go-naukri-scraper/pkg/logging"
)

// Outcome is the result of one locator strategy.
type Outcome int

const (
	// Matched found a node with non-empty text.
	Matched Outcome = iota
	// Missed found nothing, or only empty text.
	Missed
	// Failed hit an error other than not-found.
	Failed
)

func (o Outcome) String() string {
	switch o {
	case Matched:
		return "matched"
	case Missed:
		return "missed"
	default:
		return "failed"
	}
}

type Attempt struct {
	Selector dom.Selector
	Outcome  Outcome
	Value    string
	Err      error
}

// Resolution is the aggregate of a field's attempts. Value is the first
// matched value or the "<field> not found" sentinel.
type Resolution struct {
	Value    string
	Found    bool
	Attempts []Attempt
}

// Stale reports whether any attempt failed because the node went stale.
func (r Resolution) Stale() bool {
	for _, a := range r.Attempts {
		if a.Outcome == Failed && errors.Is(a.Err, dom.ErrStale) {
			return true
		}
	}
	return false
}

// Resolver evaluates ordered strategy lists. It never returns an error:
// failed strategies are logged and count as misses.
type Resolver struct {
	log *logging.Logger
}

func NewResolver(log *logging.Logger) *Resolver {
	return &Resolver{log: log}
}

// Resolve returns the trimmed text of the first strategy that yields any.
// Strategies after the first match are never evaluated.
func (r *Resolver) Resolve(node dom.Querier, sels dom.Selectors, fieldName string) Resolution {
	return r.resolve(node, sels, fieldName, func(el dom.Element) (string, error) {
		return el.Text()
	})
}

// ResolveAttribute is Resolve reading attribute name instead of text.
func (r *Resolver) ResolveAttribute(node dom.Querier, sels dom.Selectors, name, fieldName string) Resolution {
	return r.resolve(node, sels, fieldName, func(el dom.Element) (string, error) {
		return el.Attribute(name)
	})
}

func (r *Resolver) resolve(node dom.Querier, sels dom.Selectors, fieldName string, read func(dom.Element) (string, error)) Resolution {
	res := Resolution{Attempts: make([]Attempt, 0, len(sels))}
	for _, sel := range sels {
		a := r.try(node, sel, read)
		res.Attempts = append(res.Attempts, a)
		if a.Outcome == Failed {
			r.log.Debug("Locator strategy failed", "field", fieldName, "selector", sel.String(), "kind", Classify(a.Err), "error", a.Err)
			// A stale node fails every remaining strategy the same way.
			if errors.Is(a.Err, dom.ErrStale) {
				break
			}
		}
		if a.Outcome == Matched {
			res.Value = a.Value
			res.Found = true
			return res
		}
	}
	res.Value = models.NotFound(fieldName)
	return res
}

func (r *Resolver) try(node dom.Querier, sel dom.Selector, read func(dom.Element) (string, error)) Attempt {
	a := Attempt{Selector: sel}

	el, err := node.Query(sel)
	if err == nil {
		var v string
		v, err = read(el)
		a.Value = strings.TrimSpace(v)
	}

	switch {
	case err == nil && a.Value != "":
		a.Outcome = Matched
	case err == nil, errors.Is(err, dom.ErrNotFound):
		a.Outcome = Missed
	default:
		a.Outcome = Failed
		a.Err = err
	}
	return a
}
