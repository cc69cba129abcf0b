package resume

import (
	"bytes"
	"net/url"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var (
	richTextPolicyOnce sync.Once
	richTextPolicy     *bluemonday.Policy
)

func element(tag, class string, attrs ...html.Attribute) *html.Node {
	node := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	if class = classList(class); class != "" {
		node.Attr = append(node.Attr, attr("class", class))
	}
	node.Attr = append(node.Attr, attrs...)
	return node
}

func attr(key, value string) html.Attribute {
	return html.Attribute{Key: key, Val: value}
}

func text(value string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: value}
}

func appendChildren(parent *html.Node, children ...*html.Node) *html.Node {
	for _, child := range children {
		if child != nil {
			parent.AppendChild(child)
		}
	}
	return parent
}

// classList joins the whitespace separated tokens of every part.
func classList(parts ...string) string {
	var tokens []string
	for _, part := range parts {
		tokens = append(tokens, strings.Fields(part)...)
	}
	return strings.Join(tokens, " ")
}

// richText sanitizes inline markup and parses it into detached nodes.
func richText(raw string) []*html.Node {
	if raw == "" {
		return nil
	}
	cleaned := richTextSanitizer().Sanitize(raw)
	nodes, err := html.ParseFragment(strings.NewReader(cleaned), &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	})
	if err != nil {
		return []*html.Node{text(raw)}
	}
	return nodes
}

func richTextSanitizer() *bluemonday.Policy {
	richTextPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "i", "em", "u", "code", "br", "sub", "sup", "span")
		policy.AllowAttrs("href").OnElements("a")
		policy.AllowStandardURLs()
		policy.RequireNoFollowOnLinks(false)
		richTextPolicy = policy
	})
	return richTextPolicy
}

var safeLinkSchemes = map[string]bool{
	"http":   true,
	"https":  true,
	"mailto": true,
	"tel":    true,
}

// safeHref keeps relative links and links with an allowed scheme; anything
// else collapses to "#" so the entry still renders as a link.
func safeHref(link string) string {
	parsed, err := url.Parse(strings.TrimSpace(link))
	if err != nil {
		return "#"
	}
	if parsed.Scheme == "" {
		if parsed.Opaque != "" {
			return "#"
		}
		return parsed.String()
	}
	if !safeLinkSchemes[strings.ToLower(parsed.Scheme)] {
		return "#"
	}
	return parsed.String()
}

func renderNodes(nodes []*html.Node) (string, error) {
	var buf bytes.Buffer
	for _, node := range nodes {
		if err := html.Render(&buf, node); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}
