// Package render owns the catalog page document and reflects product lists
// into it. The document is a golang.org/x/net/html node tree: the page is
// parsed once, its product container, query input and filter button are
// looked up once, and Display rewrites the container's children in place.
//
// A Page is not safe for concurrent use. Callers that serve many requests
// from one parsed page should Clone it per request.
package render

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pkordes/catalog-filter/internal/domain"
)

// Element selectors the page is wired to.
const (
	// ContainerID is the document-unique id of the product list container.
	ContainerID = "lista-de-productos"
	// InputClass is the class of the text input that holds the query.
	InputClass = "input"
	// QueryField is the form field name the input submits the query under.
	QueryField = "q"
)

const (
	productClass = "producto"
	titleClass   = "titulo"
)

//go:embed page.html
var defaultPage string

// View is what one rendered product node shows: its title and image source.
type View struct {
	Title string `json:"title"`
	Src   string `json:"src"`
}

// Page is a parsed catalog page with its interactive elements resolved.
type Page struct {
	doc       *html.Node
	container *html.Node
	input     *html.Node
	button    *html.Node
}

// NewPage parses the built-in catalog page.
func NewPage() (*Page, error) {
	return ParsePage(strings.NewReader(defaultPage))
}

// ParsePage parses an HTML document and resolves the product container (by
// id), the query input (by class) and the filter button (the first <button>).
// A missing element is reported as domain.ErrElementNotFound.
func ParsePage(r io.Reader) (*Page, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("render.ParsePage: %w", err)
	}
	p, err := bind(doc)
	if err != nil {
		return nil, fmt.Errorf("render.ParsePage: %w", err)
	}
	return p, nil
}

func bind(doc *html.Node) (*Page, error) {
	p := &Page{doc: doc}

	p.container = findFirst(doc, func(n *html.Node) bool { return attr(n, "id") == ContainerID })
	if p.container == nil {
		return nil, fmt.Errorf("container #%s: %w", ContainerID, domain.ErrElementNotFound)
	}
	p.input = findFirst(doc, func(n *html.Node) bool { return hasClass(n, InputClass) })
	if p.input == nil {
		return nil, fmt.Errorf("input .%s: %w", InputClass, domain.ErrElementNotFound)
	}
	p.button = findFirst(doc, func(n *html.Node) bool { return n.DataAtom == atom.Button })
	if p.button == nil {
		return nil, fmt.Errorf("button: %w", domain.ErrElementNotFound)
	}
	return p, nil
}

// Clone returns a deep copy of the page. Mutating the copy never affects p.
func (p *Page) Clone() *Page {
	doc := cloneNode(p.doc)
	cp, err := bind(doc)
	if err != nil {
		// p was bound successfully, so an identical tree always binds.
		panic("render: clone lost page elements: " + err.Error())
	}
	return cp
}

// Display replaces the container's contents with one node per record, in
// order. Each node is <div class="producto"> holding a <p class="titulo">
// with the product name and an <img> whose src is the product's ImageRef.
// Calling Display twice with the same records leaves the same content as
// calling it once.
//
// Display panics if the page has no container; pages built by NewPage,
// ParsePage or Clone always have one.
func (p *Page) Display(records []domain.Product) {
	c := p.container
	for child := c.FirstChild; child != nil; child = c.FirstChild {
		c.RemoveChild(child)
	}
	for _, r := range records {
		c.AppendChild(productNode(r))
	}
}

// SetQuery writes q into the query input's value attribute, so the rendered
// page shows the text the user searched for.
func (p *Page) SetQuery(q string) {
	setAttr(p.input, "value", q)
}

// Query returns the query input's current value attribute.
func (p *Page) Query() string {
	return attr(p.input, "value")
}

// ButtonLabel returns the text of the filter button.
func (p *Page) ButtonLabel() string {
	return strings.TrimSpace(textContent(p.button))
}

// Products reads back what the container currently shows, in order.
func (p *Page) Products() []View {
	views := []View{}
	for n := p.container.FirstChild; n != nil; n = n.NextSibling {
		if n.Type != html.ElementNode || !hasClass(n, productClass) {
			continue
		}
		var v View
		if t := findFirst(n, func(c *html.Node) bool { return hasClass(c, titleClass) }); t != nil {
			v.Title = textContent(t)
		}
		if img := findFirst(n, func(c *html.Node) bool { return c.DataAtom == atom.Img }); img != nil {
			v.Src = attr(img, "src")
		}
		views = append(views, v)
	}
	return views
}

// Render writes the whole document to w.
func (p *Page) Render(w io.Writer) error {
	if err := html.Render(w, p.doc); err != nil {
		return fmt.Errorf("render.Page.Render: %w", err)
	}
	return nil
}

func productNode(r domain.Product) *html.Node {
	div := element(atom.Div, html.Attribute{Key: "class", Val: productClass})

	title := element(atom.P, html.Attribute{Key: "class", Val: titleClass})
	title.AppendChild(&html.Node{Type: html.TextNode, Data: r.Name})

	img := element(atom.Img, html.Attribute{Key: "src", Val: r.ImageRef})

	div.AppendChild(title)
	div.AppendChild(img)
	return div
}
