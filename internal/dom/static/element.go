package static

import (
	"fmt"
	"time"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"go-naukri-scraper/internal/dom"
)

type Element struct {
	page *Page
	node *html.Node
	gen  int
}

func (e *Element) stale() bool {
	return e.gen != e.page.gen || flagged(e.node, "data-stale")
}

func (e *Element) check() error {
	if e.stale() {
		return fmt.Errorf("<%s>: %w", e.node.Data, dom.ErrStale)
	}
	return nil
}

func (e *Element) Query(sel dom.Selector) (dom.Element, error) {
	els, err := e.QueryAll(sel)
	if err != nil {
		return nil, err
	}
	if len(els) == 0 {
		return nil, fmt.Errorf("%s: %w", sel, dom.ErrNotFound)
	}
	return els[0], nil
}

func (e *Element) QueryAll(sel dom.Selector) ([]dom.Element, error) {
	if err := e.check(); err != nil {
		return nil, err
	}
	nodes, err := find(e.node, sel, true)
	if err != nil {
		return nil, err
	}
	return e.page.wrap(nodes), nil
}

func (e *Element) Text() (string, error) {
	if err := e.check(); err != nil {
		return "", err
	}
	return collapse(htmlquery.InnerText(e.node)), nil
}

func (e *Element) Attribute(name string) (string, error) {
	if err := e.check(); err != nil {
		return "", err
	}
	v, ok := attr(e.node, name)
	if !ok {
		return "", fmt.Errorf("attribute %q: %w", name, dom.ErrNotFound)
	}
	return v, nil
}

func (e *Element) ScrollIntoView() error {
	return e.check()
}

func (e *Element) Click() error {
	if err := e.check(); err != nil {
		return err
	}
	if flagged(e.node, "data-intercepted") {
		return fmt.Errorf("<%s> click: another element would receive the click: %w", e.node.Data, dom.ErrIntercepted)
	}
	return e.activate(false)
}

func (e *Element) ClickScripted() error {
	if err := e.check(); err != nil {
		return err
	}
	return e.activate(true)
}

func (e *Element) activate(scripted bool) error {
	e.page.Clicks = append(e.page.Clicks, Click{Target: collapse(htmlquery.InnerText(e.node)), Scripted: scripted})
	return e.page.follow(e.node)
}

// WaitDetached does not wait: the answer cannot change without a click.
func (e *Element) WaitDetached(_ time.Duration) error {
	if e.gen != e.page.gen {
		return nil
	}
	return fmt.Errorf("<%s> still attached: %w", e.node.Data, dom.ErrTimeout)
}
