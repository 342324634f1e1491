// Package page holds the results page markup and a small DOM over it.
package page

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// ErrElementNotFound means the page has no element with the requested id.
var ErrElementNotFound = errors.New("element not found")

//go:embed templates/*.html
var templates embed.FS

// Document is a parsed HTML page whose elements can be addressed by id.
type Document struct {
	root *html.Node
	byID map[string]*html.Node
}

// Parse reads an HTML page.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}
	doc := &Document{root: root, byID: make(map[string]*html.Node)}
	doc.index(root)
	return doc, nil
}

// Index returns a fresh copy of the results page with its upload form.
func Index() (*Document, error) {
	return load("templates/index.html")
}

// PreviewPage returns a fresh copy of the preview page.
func PreviewPage() (*Document, error) {
	return load("templates/preview.html")
}

func load(name string) (*Document, error) {
	raw, err := templates.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return Parse(bytes.NewReader(raw))
}

// index records the first element carrying each id.
func (d *Document) index(n *html.Node) {
	if n.Type == html.ElementNode {
		for _, attr := range n.Attr {
			if attr.Namespace == "" && attr.Key == "id" {
				if _, seen := d.byID[attr.Val]; !seen {
					d.byID[attr.Val] = n
				}
				break
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.index(c)
	}
}

// Has reports whether an element with id exists.
func (d *Document) Has(id string) bool {
	_, ok := d.byID[id]
	return ok
}

// SetText replaces the content of the element with a single text node.
func (d *Document) SetText(id, text string) error {
	el, ok := d.byID[id]
	if !ok {
		return fmt.Errorf("%w: #%s", ErrElementNotFound, id)
	}
	for c := el.FirstChild; c != nil; {
		next := c.NextSibling
		el.RemoveChild(c)
		c = next
	}
	el.AppendChild(&html.Node{Type: html.TextNode, Data: text})
	return nil
}

// Text returns the concatenated text content of the element.
func (d *Document) Text(id string) (string, error) {
	el, ok := d.byID[id]
	if !ok {
		return "", fmt.Errorf("%w: #%s", ErrElementNotFound, id)
	}
	var b strings.Builder
	collectText(el, &b)
	return b.String(), nil
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

// Render writes the page back out as HTML.
func (d *Document) Render(w io.Writer) error {
	return html.Render(w, d.root)
}

// Bytes renders the page into memory.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
