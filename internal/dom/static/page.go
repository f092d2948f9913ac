// Package static implements dom over parsed HTML documents. A Page serves a
// fixed set of routes, follows anchor clicks between them and can simulate
// the failures a live site produces: navigation errors, click overlays
// (data-intercepted="true") and detached nodes (data-stale="true").
//
// A Page is not safe for concurrent use.
package static

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"go-naukri-scraper/internal/dom"
)

// Click is one recorded activation.
type Click struct {
	Target   string
	Scripted bool
}

type Page struct {
	routes map[string]string
	fail   map[string]int

	doc *html.Node
	url string
	gen int

	Navigations []string
	Clicks      []Click
	Screenshots []string
	Scrolled    float64
}

// NewPage returns a blank page serving routes (absolute URL to HTML source).
func NewPage(routes map[string]string) *Page {
	if routes == nil {
		routes = make(map[string]string)
	}
	return &Page{
		routes: routes,
		fail:   make(map[string]int),
	}
}

// FailNavigation makes the next n navigations to rawURL fail.
func (p *Page) FailNavigation(rawURL string, n int) {
	p.fail[rawURL] = n
}

// SetContent replaces the current document without consulting routes.
func (p *Page) SetContent(pageURL, source string) error {
	doc, err := htmlquery.Parse(strings.NewReader(source))
	if err != nil {
		return fmt.Errorf("parse %s: %w", pageURL, err)
	}
	p.doc = doc
	p.url = pageURL
	p.gen++
	return nil
}

func (p *Page) Navigate(rawURL string) error {
	p.Navigations = append(p.Navigations, rawURL)
	if n := p.fail[rawURL]; n > 0 {
		p.fail[rawURL] = n - 1
		return fmt.Errorf("navigate %s: net::ERR_CONNECTION_RESET", rawURL)
	}
	source, ok := p.routes[rawURL]
	if !ok {
		return fmt.Errorf("navigate %s: net::ERR_NAME_NOT_RESOLVED", rawURL)
	}
	return p.SetContent(rawURL, source)
}

// WaitFor checks once; a static document never changes on its own.
func (p *Page) WaitFor(sel dom.Selector, _ time.Duration) error {
	if _, err := p.Query(sel); err != nil {
		return fmt.Errorf("wait for %s: %w", sel, dom.ErrTimeout)
	}
	return nil
}

func (p *Page) Query(sel dom.Selector) (dom.Element, error) {
	els, err := p.QueryAll(sel)
	if err != nil {
		return nil, err
	}
	if len(els) == 0 {
		return nil, fmt.Errorf("%s: %w", sel, dom.ErrNotFound)
	}
	return els[0], nil
}

func (p *Page) QueryAll(sel dom.Selector) ([]dom.Element, error) {
	if p.doc == nil {
		return nil, fmt.Errorf("%s: no document loaded: %w", sel, dom.ErrNotFound)
	}
	nodes, err := find(p.doc, sel, false)
	if err != nil {
		return nil, err
	}
	return p.wrap(nodes), nil
}

func (p *Page) ClickAt(x, y float64) error {
	p.Clicks = append(p.Clicks, Click{Target: fmt.Sprintf("(%g,%g)", x, y)})
	return nil
}

func (p *Page) Scroll(dy float64) error {
	p.Scrolled += dy
	return nil
}

// Screenshot records the request and writes the current HTML to path.
func (p *Page) Screenshot(path string) error {
	p.Screenshots = append(p.Screenshots, path)
	content, err := p.Content()
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(content), 0644)
}

func (p *Page) Content() (string, error) {
	if p.doc == nil {
		return "", nil
	}
	return htmlquery.OutputHTML(p.doc, true), nil
}

func (p *Page) Title() (string, error) {
	if p.doc == nil {
		return "", nil
	}
	n := htmlquery.FindOne(p.doc, "//title")
	if n == nil {
		return "", nil
	}
	return collapse(htmlquery.InnerText(n)), nil
}

func (p *Page) URL() string { return p.url }

func (p *Page) wrap(nodes []*html.Node) []dom.Element {
	out := make([]dom.Element, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, &Element{page: p, node: n, gen: p.gen})
	}
	return out
}

// follow navigates when the activated node sits inside an anchor whose href
// resolves to a known route.
func (p *Page) follow(n *html.Node) error {
	for a := n; a != nil; a = a.Parent {
		if a.Type != html.ElementNode || a.Data != "a" {
			continue
		}
		href, ok := attr(a, "href")
		if !ok || href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(href, "javascript:") {
			return nil
		}
		target, err := p.resolve(href)
		if err != nil {
			return err
		}
		if _, known := p.routes[target]; !known {
			return nil
		}
		return p.Navigate(target)
	}
	return nil
}

func (p *Page) resolve(href string) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("bad href %q: %w", href, err)
	}
	base, err := url.Parse(p.url)
	if err != nil {
		return ref.String(), nil
	}
	return base.ResolveReference(ref).String(), nil
}

// find evaluates sel below root. Element-scoped XPath starting with "/" is
// made relative, as browsers do for chained locators.
func find(root *html.Node, sel dom.Selector, scoped bool) ([]*html.Node, error) {
	switch sel.Engine {
	case dom.CSSEngine:
		return goquery.NewDocumentFromNode(root).Find(sel.Expr).Nodes, nil
	default:
		expr := sel.Expr
		if scoped && strings.HasPrefix(expr, "/") {
			expr = "." + expr
		}
		nodes, err := htmlquery.QueryAll(root, expr)
		if err != nil {
			return nil, fmt.Errorf("invalid selector %s: %w", sel, err)
		}
		return nodes, nil
	}
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// flagged reports whether n or one of its ancestors carries key="true".
func flagged(n *html.Node, key string) bool {
	for ; n != nil; n = n.Parent {
		if v, ok := attr(n, key); ok && v == "true" {
			return true
		}
	}
	return false
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Session hands out one Page and counts Close calls.
type Session struct {
	page   *Page
	Closed int
}

func (s *Session) Page() dom.Page { return s.page }

func (s *Session) Close() error {
	s.Closed++
	return nil
}

// Launcher starts sessions over a shared Page, or fails with Err.
type Launcher struct {
	Page     *Page
	Err      error
	Sessions []*Session
}

func (l *Launcher) Start(ctx context.Context) (dom.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if l.Err != nil {
		return nil, l.Err
	}
	s := &Session{page: l.Page}
	l.Sessions = append(l.Sessions, s)
	return s, nil
}
