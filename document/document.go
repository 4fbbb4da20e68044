// Package document loads site pages and exposes them as queryable documents.
//
// Queries use CSS selectors (tag, class, id, attribute presence/value/suffix,
// descendant and child combinators, pseudo-classes supported by cascadia).
// Results are ordered in document order. An invalid selector matches nothing.
package document

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"
)

// Document is one parsed page. It is never modified after Parse returns.
type Document struct {
	// Name is the page identifier used in diagnostics (e.g., "main")
	Name string
	// Path is the markup file path relative to the site root
	Path string
	// Depth is the number of directories between the site root and the page
	Depth int

	doc *goquery.Document
}

// Parse reads markup from r and builds a Document.
func Parse(name, path string, depth int, r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &Document{Name: name, Path: path, Depth: depth, doc: doc}, nil
}

// ParseString is Parse over an in-memory string.
func ParseString(name, path string, depth int, markup string) (*Document, error) {
	return Parse(name, path, depth, strings.NewReader(markup))
}

// Label names the page in diagnostics, e.g. "about index.html".
func (d *Document) Label() string {
	return d.Name + " index.html"
}

// QueryAll returns every element matching selector in document order.
func (d *Document) QueryAll(selector string) []Element {
	return elements(find(d.doc.Selection, selector))
}

// Query returns the first element matching selector.
func (d *Document) Query(selector string) (Element, bool) {
	return first(find(d.doc.Selection, selector))
}

// Has reports whether any element matches selector.
func (d *Document) Has(selector string) bool {
	return find(d.doc.Selection, selector).Length() > 0
}

// Count returns the number of elements matching selector.
func (d *Document) Count(selector string) int {
	return find(d.doc.Selection, selector).Length()
}

// Root returns the parsed tree root.
func (d *Document) Root() *html.Node {
	return d.doc.Get(0)
}

// Element is a handle to a single element node.
type Element struct {
	sel *goquery.Selection
}

// Node returns the underlying node.
func (e Element) Node() *html.Node {
	return e.sel.Get(0)
}

// Tag returns the lower-case tag name.
func (e Element) Tag() string {
	return goquery.NodeName(e.sel)
}

// Attr returns the attribute value and whether the attribute is present.
func (e Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

// AttrOr returns the attribute value or fallback when absent.
func (e Element) AttrOr(name, fallback string) string {
	return e.sel.AttrOr(name, fallback)
}

// HasAttr reports whether the attribute is present, even when empty.
func (e Element) HasAttr(name string) bool {
	_, ok := e.sel.Attr(name)
	return ok
}

// Text returns the combined text content of the element and its descendants.
func (e Element) Text() string {
	return e.sel.Text()
}

// Find returns descendants matching selector.
func (e Element) Find(selector string) []Element {
	return elements(find(e.sel, selector))
}

// First returns the first descendant matching selector.
func (e Element) First(selector string) (Element, bool) {
	return first(find(e.sel, selector))
}

// Has reports whether any descendant matches selector.
func (e Element) Has(selector string) bool {
	return find(e.sel, selector).Length() > 0
}

// Children returns the element children in order.
func (e Element) Children() []Element {
	return elements(e.sel.Children())
}

// HasChildElements reports whether the element contains any child element.
func (e Element) HasChildElements() bool {
	return e.sel.Children().Length() > 0
}

// Is reports whether the element itself matches selector.
func (e Element) Is(selector string) bool {
	m, err := cascadia.Compile(selector)
	if err != nil {
		return false
	}
	return m.Match(e.Node())
}

// HTML renders the element's outer markup.
func (e Element) HTML() string {
	out, err := goquery.OuterHtml(e.sel)
	if err != nil {
		return "<" + e.Tag() + ">"
	}
	return out
}

// String renders a short description like <a href="about/">.
func (e Element) String() string {
	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(e.Tag())
	for _, a := range e.Node().Attr {
		fmt.Fprintf(&sb, " %s=%q", a.Key, a.Val)
	}
	sb.WriteString(">")
	return sb.String()
}

func find(sel *goquery.Selection, selector string) *goquery.Selection {
	m, err := cascadia.Compile(selector)
	if err != nil {
		return sel.Slice(0, 0)
	}
	return sel.FindMatcher(m)
}

func elements(sel *goquery.Selection) []Element {
	out := make([]Element, 0, sel.Length())
	sel.Each(func(_ int, s *goquery.Selection) {
		out = append(out, Element{sel: s})
	})
	return out
}

func first(sel *goquery.Selection) (Element, bool) {
	if sel.Length() == 0 {
		return Element{}, false
	}
	return Element{sel: sel.First()}, true
}
