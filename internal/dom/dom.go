// Package dom is the narrow view of a rendered page the scraper works
// against. The browser package backs it with playwright, the static package
// with parsed HTML.
package dom

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound means a locator matched nothing.
	ErrNotFound = errors.New("element not found")
	// ErrStale means an element reference is no longer attached to the page.
	ErrStale = errors.New("element is stale")
	// ErrIntercepted means a click landed on an overlay instead of the target.
	ErrIntercepted = errors.New("click intercepted")
	// ErrTimeout means a wait ran out of time.
	ErrTimeout = errors.New("timed out")
)

// Engine is the query language of a Selector.
type Engine int

const (
	XPathEngine Engine = iota
	CSSEngine
)

// Selector is one locator strategy. Relative XPath expressions start with
// "." and are evaluated against the element they are queried from.
type Selector struct {
	Engine Engine
	Expr   string
}

func XPath(expr string) Selector { return Selector{Engine: XPathEngine, Expr: expr} }

func CSS(expr string) Selector { return Selector{Engine: CSSEngine, Expr: expr} }

// String renders the selector in the playwright engine-prefix syntax.
func (s Selector) String() string {
	if s.Engine == CSSEngine {
		return "css=" + s.Expr
	}
	return "xpath=" + s.Expr
}

// Selectors is an ordered strategy list. Order is priority.
type Selectors []Selector

// XPaths builds a strategy list of XPath selectors.
func XPaths(exprs ...string) Selectors {
	out := make(Selectors, 0, len(exprs))
	for _, e := range exprs {
		out = append(out, XPath(e))
	}
	return out
}

// Element is a handle on one node of the page.
type Element interface {
	// Query returns the first descendant matching sel, or ErrNotFound.
	Query(sel Selector) (Element, error)
	QueryAll(sel Selector) ([]Element, error)
	// Text is the visible text of the element, whitespace-trimmed.
	Text() (string, error)
	// Attribute returns ErrNotFound when the attribute is absent.
	Attribute(name string) (string, error)
	ScrollIntoView() error
	// Click performs a pointer click and reports ErrIntercepted when an
	// overlay receives it.
	Click() error
	// ClickScripted dispatches the click from page script, bypassing overlays.
	ClickScripted() error
	// WaitDetached blocks until the element leaves the document, returning
	// ErrTimeout when it is still attached after timeout.
	WaitDetached(timeout time.Duration) error
}

// Page is the active tab of a session.
type Page interface {
	Navigate(url string) error
	// WaitFor blocks until sel matches at least one node, or ErrTimeout.
	WaitFor(sel Selector, timeout time.Duration) error
	Query(sel Selector) (Element, error)
	QueryAll(sel Selector) ([]Element, error)
	// ClickAt clicks the viewport coordinates, used to dismiss open menus.
	ClickAt(x, y float64) error
	Scroll(dy float64) error
	Screenshot(path string) error
	Content() (string, error)
	Title() (string, error)
	URL() string
}

// Session owns one browser lifetime.
type Session interface {
	Page() Page
	Close() error
}

// Launcher starts sessions. A failed Start is the only fatal scrape error.
type Launcher interface {
	Start(ctx context.Context) (Session, error)
}

// Querier is anything selectors can be evaluated against.
type Querier interface {
	Query(sel Selector) (Element, error)
}

// First returns the first element matched by the strategies, in order. A
// strategy that errors counts as a miss; when nothing matches the result
// wraps ErrNotFound together with the last strategy error, if any.
func First(root Querier, sels Selectors) (Element, Selector, error) {
	var lastErr error
	for _, sel := range sels {
		el, err := root.Query(sel)
		if err == nil {
			return el, sel, nil
		}
		if !errors.Is(err, ErrNotFound) {
			lastErr = err
		}
	}
	if lastErr != nil {
		return nil, Selector{}, errors.Join(ErrNotFound, lastErr)
	}
	return nil, Selector{}, ErrNotFound
}
