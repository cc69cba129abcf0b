package resume

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// Region ids written by the view renderer.
const (
	RegionProfileName     = "profile-name"
	RegionProfileTitle    = "profile-title"
	RegionProfileAvatar   = "profile-avatar"
	RegionProfileInitials = "profile-initials"
	RegionContact         = "contact-list"
	RegionEducation       = "education-list"
	RegionSkills          = "skills-list"
	RegionSummary         = "summary-text"
	RegionExperience      = "experience-list"
	RegionProjects        = "projects-list"

	// RegionRoot wraps every other region and is the export target.
	RegionRoot = "resume-content"
	// ExportButton is the control that triggers an export.
	ExportButton = "download-btn"
)

// Regions lists the ids the view renderer requires, in render order.
var Regions = []string{
	RegionProfileName,
	RegionProfileTitle,
	RegionProfileAvatar,
	RegionProfileInitials,
	RegionContact,
	RegionEducation,
	RegionSkills,
	RegionSummary,
	RegionExperience,
	RegionProjects,
}

// Page is the mutable display tree. All methods are safe for concurrent use;
// each call is applied atomically.
type Page struct {
	mu  sync.Mutex
	doc *goquery.Document
}

// NewPage parses an HTML document into a Page.
func NewPage(r io.Reader) (*Page, error) {
	if r == nil {
		return nil, NewError(KindValidation, "page reader is nil", nil)
	}
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, NewError(KindParse, "parse page", err)
	}
	return &Page{doc: doc}, nil
}

// NewPageFromString parses an HTML string into a Page.
func NewPageFromString(markup string) (*Page, error) {
	return NewPage(strings.NewReader(markup))
}

func (p *Page) find(id string) *goquery.Selection {
	return p.doc.Find(fmt.Sprintf(`[id=%q]`, id)).First()
}

func (p *Page) region(id string) (*goquery.Selection, error) {
	if p == nil || p.doc == nil {
		return nil, NewError(KindInternal, "page is nil", nil)
	}
	sel := p.find(id)
	if sel.Length() == 0 {
		return nil, NewError(KindNotFound, fmt.Sprintf("region %q not found", id), nil)
	}
	return sel, nil
}

// Has reports whether an element with the id exists.
func (p *Page) Has(id string) bool {
	if p == nil || p.doc == nil {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.find(id).Length() > 0
}

// Missing returns the ids from the list that are absent from the page.
func (p *Page) Missing(ids ...string) []string {
	var missing []string
	for _, id := range ids {
		if !p.Has(id) {
			missing = append(missing, id)
		}
	}
	return missing
}

// Replace swaps the children of a region for the given nodes.
func (p *Page) Replace(id string, nodes []*html.Node) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	sel, err := p.region(id)
	if err != nil {
		return err
	}
	sel.Empty()
	for _, node := range nodes {
		if node == nil {
			continue
		}
		if node.Parent != nil {
			node.Parent.RemoveChild(node)
		}
		sel.Nodes[0].AppendChild(node)
	}
	return nil
}

// SetText replaces the children of a region with a single text node.
func (p *Page) SetText(id, text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	sel, err := p.region(id)
	if err != nil {
		return err
	}
	sel.SetText(text)
	return nil
}

// SetInnerHTML parses markup and replaces the children of a region with it.
func (p *Page) SetInnerHTML(id, markup string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	sel, err := p.region(id)
	if err != nil {
		return err
	}
	sel.SetHtml(markup)
	return nil
}

// SetAttr sets an attribute on a region.
func (p *Page) SetAttr(id, key, value string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	sel, err := p.region(id)
	if err != nil {
		return err
	}
	sel.SetAttr(key, value)
	return nil
}

// RemoveAttr removes an attribute from a region.
func (p *Page) RemoveAttr(id, key string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	sel, err := p.region(id)
	if err != nil {
		return err
	}
	sel.RemoveAttr(key)
	return nil
}

// Attr returns an attribute value and whether it is present.
func (p *Page) Attr(id, key string) (string, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	sel, err := p.region(id)
	if err != nil {
		return "", false
	}
	return sel.Attr(key)
}

// AddClass adds classes to a region.
func (p *Page) AddClass(id string, classes ...string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	sel, err := p.region(id)
	if err != nil {
		return err
	}
	sel.AddClass(classes...)
	return nil
}

// RemoveClass removes classes from a region.
func (p *Page) RemoveClass(id string, classes ...string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	sel, err := p.region(id)
	if err != nil {
		return err
	}
	sel.RemoveClass(classes...)
	return nil
}

// HasClass reports whether a region carries a class.
func (p *Page) HasClass(id, class string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	sel, err := p.region(id)
	if err != nil {
		return false
	}
	return sel.HasClass(class)
}

// InnerHTML returns the serialized children of a region.
func (p *Page) InnerHTML(id string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	sel, err := p.region(id)
	if err != nil {
		return "", err
	}
	return sel.Html()
}

// Text returns the text content of a region.
func (p *Page) Text(id string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	sel, err := p.region(id)
	if err != nil {
		return "", err
	}
	return sel.Text(), nil
}

// InjectStyle appends a <style> element with the id to the document head and
// returns a release func that removes it. Release is safe to call more than once.
func (p *Page) InjectStyle(id, css string) (func(), error) {
	if p == nil || p.doc == nil {
		return nil, NewError(KindInternal, "page is nil", nil)
	}
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.find(id).Length() > 0 {
		return nil, NewError(KindValidation, fmt.Sprintf("element %q already present", id), nil)
	}
	head := p.doc.Find("head").First()
	if head.Length() == 0 {
		return nil, NewError(KindNotFound, "document head not found", nil)
	}

	style := element("style", "", attr("type", "text/css"), attr("id", id))
	style.AppendChild(&html.Node{Type: html.TextNode, Data: css})
	head.Nodes[0].AppendChild(style)

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			defer p.mu.Unlock()
			if style.Parent != nil {
				style.Parent.RemoveChild(style)
			}
		})
	}, nil
}

// Snapshot returns a standalone document made of the page head and the
// region with the id as the only body content.
func (p *Page) Snapshot(id string) ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	sel, err := p.region(id)
	if err != nil {
		return nil, err
	}
	head, err := p.doc.Find("head").First().Html()
	if err != nil {
		return nil, NewError(KindInternal, "serialize head", err)
	}
	root, err := goquery.OuterHtml(sel)
	if err != nil {
		return nil, NewError(KindInternal, "serialize region", err)
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html>\n<html><head>")
	buf.WriteString(head)
	buf.WriteString("</head><body>")
	buf.WriteString(root)
	buf.WriteString("</body></html>")
	return buf.Bytes(), nil
}

// HTML serializes the whole page.
func (p *Page) HTML() (string, error) {
	if p == nil || p.doc == nil {
		return "", NewError(KindInternal, "page is nil", nil)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	out, err := goquery.OuterHtml(p.doc.Selection)
	if err != nil {
		return "", NewError(KindInternal, "serialize page", err)
	}
	return out, nil
}

// WriteTo writes the serialized page.
func (p *Page) WriteTo(w io.Writer) (int64, error) {
	out, err := p.HTML()
	if err != nil {
		return 0, err
	}
	n, err := io.WriteString(w, out)
	return int64(n), err
}
