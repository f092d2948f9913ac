package scraper

import (
	"context"
	"errors"

	"go-naukri-scraper/internal/dom"
)

// ErrSessionStart wraps the launcher error when no browser could be started.
// It is the only error Scrape returns for a valid query.
var ErrSessionStart = errors.New("could not start browser session")

// Kind buckets errors for logs and run statistics.
type Kind string

const (
	KindNotFound    Kind = "not_found"
	KindStale       Kind = "stale"
	KindIntercepted Kind = "intercepted"
	KindTimeout     Kind = "timeout"
	KindCanceled    Kind = "canceled"
	KindFatal       Kind = "fatal"
	KindOther       Kind = "other"
)

// Classify maps err onto a Kind. nil classifies as "".
func Classify(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrSessionStart):
		return KindFatal
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	case errors.Is(err, dom.ErrStale):
		return KindStale
	case errors.Is(err, dom.ErrIntercepted):
		return KindIntercepted
	case errors.Is(err, dom.ErrTimeout):
		return KindTimeout
	case errors.Is(err, dom.ErrNotFound):
		return KindNotFound
	default:
		return KindOther
	}
}
