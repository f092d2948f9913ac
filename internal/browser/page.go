package browser

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"

	"go-naukri-scraper/internal/dom"
)

// Page adapts a playwright page to dom.Page. Elements are element handles so
// that a reference detached by a page transition reports dom.ErrStale.
type Page struct {
	page          playwright.Page
	actionTimeout time.Duration
}

func newPage(page playwright.Page, actionTimeout time.Duration) *Page {
	if actionTimeout <= 0 {
		actionTimeout = 10 * time.Second
	}
	return &Page{page: page, actionTimeout: actionTimeout}
}

func (p *Page) Navigate(url string) error {
	if _, err := p.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(ms(navigationTimeout)),
	}); err != nil {
		return fmt.Errorf("navigate %s: %w", url, classify(err))
	}
	return nil
}

func (p *Page) WaitFor(sel dom.Selector, timeout time.Duration) error {
	err := p.page.Locator(sel.String()).First().WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(ms(timeout)),
	})
	if err != nil {
		return fmt.Errorf("wait for %s: %w", sel, classify(err))
	}
	return nil
}

func (p *Page) Query(sel dom.Selector) (dom.Element, error) {
	loc := p.page.Locator(sel.String())
	n, err := loc.Count()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sel, classify(err))
	}
	if n == 0 {
		return nil, fmt.Errorf("%s: %w", sel, dom.ErrNotFound)
	}
	h, err := loc.First().ElementHandle(playwright.LocatorElementHandleOptions{
		Timeout: playwright.Float(ms(p.actionTimeout)),
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sel, classify(err))
	}
	return p.wrap(h), nil
}

func (p *Page) QueryAll(sel dom.Selector) ([]dom.Element, error) {
	handles, err := p.page.Locator(sel.String()).ElementHandles()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sel, classify(err))
	}
	return p.wrapAll(handles), nil
}

func (p *Page) ClickAt(x, y float64) error {
	return classify(p.page.Mouse().Click(x, y))
}

func (p *Page) Scroll(dy float64) error {
	_, err := p.page.Evaluate("dy => window.scrollBy(0, dy)", dy)
	return classify(err)
}

func (p *Page) Screenshot(path string) error {
	_, err := p.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	return classify(err)
}

func (p *Page) Content() (string, error) {
	content, err := p.page.Content()
	return content, classify(err)
}

func (p *Page) Title() (string, error) {
	title, err := p.page.Title()
	return title, classify(err)
}

func (p *Page) URL() string { return p.page.URL() }

func (p *Page) wrap(h playwright.ElementHandle) *Element {
	return &Element{page: p, handle: h}
}

func (p *Page) wrapAll(handles []playwright.ElementHandle) []dom.Element {
	out := make([]dom.Element, 0, len(handles))
	for _, h := range handles {
		out = append(out, p.wrap(h))
	}
	return out
}

type Element struct {
	page   *Page
	handle playwright.ElementHandle
}

func (e *Element) Query(sel dom.Selector) (dom.Element, error) {
	h, err := e.handle.QuerySelector(sel.String())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sel, classify(err))
	}
	if h == nil {
		return nil, fmt.Errorf("%s: %w", sel, dom.ErrNotFound)
	}
	return e.page.wrap(h), nil
}

func (e *Element) QueryAll(sel dom.Selector) ([]dom.Element, error) {
	handles, err := e.handle.QuerySelectorAll(sel.String())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sel, classify(err))
	}
	return e.page.wrapAll(handles), nil
}

func (e *Element) Text() (string, error) {
	text, err := e.handle.InnerText()
	if err != nil {
		return "", classify(err)
	}
	return strings.TrimSpace(text), nil
}

// Attribute treats an empty value like a missing one.
func (e *Element) Attribute(name string) (string, error) {
	v, err := e.handle.GetAttribute(name)
	if err != nil {
		return "", classify(err)
	}
	if v == "" {
		return "", fmt.Errorf("attribute %q: %w", name, dom.ErrNotFound)
	}
	return v, nil
}

func (e *Element) ScrollIntoView() error {
	return classify(e.handle.ScrollIntoViewIfNeeded(playwright.ElementHandleScrollIntoViewIfNeededOptions{
		Timeout: playwright.Float(ms(e.page.actionTimeout)),
	}))
}

func (e *Element) Click() error {
	return classify(e.handle.Click(playwright.ElementHandleClickOptions{
		Timeout: playwright.Float(ms(e.page.actionTimeout)),
	}))
}

func (e *Element) ClickScripted() error {
	_, err := e.handle.Evaluate("el => el.click()")
	return classify(err)
}

func (e *Element) WaitDetached(timeout time.Duration) error {
	_, err := e.page.page.WaitForFunction("el => !el.isConnected", e.handle, playwright.PageWaitForFunctionOptions{
		Timeout: playwright.Float(ms(timeout)),
	})
	err = classify(err)
	// A handle from a torn-down document can no longer be evaluated: it is gone.
	if errors.Is(err, dom.ErrStale) {
		return nil
	}
	return err
}

// classify maps playwright failures onto the dom error taxonomy, keeping the
// original error in the chain.
func classify(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "intercepts pointer events"):
		return fmt.Errorf("%w: %w", dom.ErrIntercepted, err)
	case strings.Contains(msg, "not attached to the DOM"),
		strings.Contains(msg, "Execution context was destroyed"),
		strings.Contains(msg, "JSHandle is disposed"):
		return fmt.Errorf("%w: %w", dom.ErrStale, err)
	case errors.Is(err, playwright.ErrTimeout):
		return fmt.Errorf("%w: %w", dom.ErrTimeout, err)
	}
	return err
}
