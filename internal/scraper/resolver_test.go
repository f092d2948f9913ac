package scraper

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"go-naukri-scraper/internal/dom"
	"go-naukri-scraper/pkg/logging"
)

type fakeElement struct {
	text  string
	attrs map[string]string
	err   error
}

func (e *fakeElement) Query(dom.Selector) (dom.Element, error)      { return nil, dom.ErrNotFound }
func (e *fakeElement) QueryAll(dom.Selector) ([]dom.Element, error) { return nil, nil }
func (e *fakeElement) Text() (string, error)                        { return e.text, e.err }
func (e *fakeElement) ScrollIntoView() error                        { return nil }
func (e *fakeElement) Click() error                                 { return nil }
func (e *fakeElement) ClickScripted() error                         { return nil }
func (e *fakeElement) WaitDetached(time.Duration) error             { return nil }

func (e *fakeElement) Attribute(name string) (string, error) {
	if v, ok := e.attrs[name]; ok {
		return v, nil
	}
	return "", dom.ErrNotFound
}

// fakeNode answers queries from a table and records their order.
type fakeNode struct {
	hits    map[string]dom.Element
	errs    map[string]error
	queried []string
}

func (n *fakeNode) Query(sel dom.Selector) (dom.Element, error) {
	n.queried = append(n.queried, sel.Expr)
	if err, ok := n.errs[sel.Expr]; ok {
		return nil, err
	}
	if el, ok := n.hits[sel.Expr]; ok {
		return el, nil
	}
	return nil, fmt.Errorf("%s: %w", sel, dom.ErrNotFound)
}

func TestResolveFirstMatchWins(t *testing.T) {
	node := &fakeNode{hits: map[string]dom.Element{
		"b": &fakeElement{text: "  Data Analyst \n"},
		"c": &fakeElement{text: "Later"},
	}}

	res := NewResolver(logging.NewNop()).Resolve(node, dom.XPaths("a", "b", "c"), "Title")

	assert.True(t, res.Found)
	assert.Equal(t, "Data Analyst", res.Value)
	assert.Equal(t, []string{"a", "b"}, node.queried)
	assert.Equal(t, Missed, res.Attempts[0].Outcome)
	assert.Equal(t, Matched, res.Attempts[1].Outcome)
}

func TestResolveSkipsEmptyTextAndErrors(t *testing.T) {
	boom := errors.New("protocol error")
	node := &fakeNode{
		hits: map[string]dom.Element{
			"blank": &fakeElement{text: "   "},
			"good":  &fakeElement{text: "Acme"},
		},
		errs: map[string]error{"broken": boom},
	}

	res := NewResolver(logging.NewNop()).Resolve(node, dom.XPaths("blank", "broken", "good"), "Company")

	assert.Equal(t, "Acme", res.Value)
	assert.Equal(t, []Outcome{Missed, Failed, Matched}, outcomes(res))
	assert.ErrorIs(t, res.Attempts[1].Err, boom)
	assert.False(t, res.Stale())
}

func TestResolveSentinel(t *testing.T) {
	tests := []struct {
		name  string
		sels  dom.Selectors
		field string
		want  string
	}{
		{"all miss", dom.XPaths("a", "b"), "Company", "Company not found"},
		{"no strategies", nil, "Salary", "Salary not found"},
		{"multi word field", dom.XPaths("a"), "Posted date", "Posted date not found"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := NewResolver(logging.NewNop()).Resolve(&fakeNode{}, tt.sels, tt.field)
			assert.False(t, res.Found)
			assert.Equal(t, tt.want, res.Value)
			assert.Len(t, res.Attempts, len(tt.sels))
		})
	}
}

func TestResolveStopsOnStaleNode(t *testing.T) {
	node := &fakeNode{errs: map[string]error{"a": fmt.Errorf("card: %w", dom.ErrStale)}}

	res := NewResolver(logging.NewNop()).Resolve(node, dom.XPaths("a", "b"), "Title")

	assert.True(t, res.Stale())
	assert.Equal(t, "Title not found", res.Value)
	assert.Equal(t, []string{"a"}, node.queried)
}

func TestResolveAttribute(t *testing.T) {
	node := &fakeNode{hits: map[string]dom.Element{
		"no-href": &fakeElement{attrs: map[string]string{"class": "title"}},
		"anchor":  &fakeElement{attrs: map[string]string{"href": "/job/1"}},
	}}

	r := NewResolver(logging.NewNop())
	res := r.ResolveAttribute(node, dom.XPaths("no-href", "anchor"), "href", "Link")
	assert.Equal(t, "/job/1", res.Value)

	res = r.ResolveAttribute(&fakeNode{}, dom.XPaths("x"), "href", "Link")
	assert.Equal(t, "Link not found", res.Value)
}

func outcomes(res Resolution) []Outcome {
	out := make([]Outcome, 0, len(res.Attempts))
	for _, a := range res.Attempts {
		out = append(out, a.Outcome)
	}
	return out
}
