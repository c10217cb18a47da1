package browser

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// CondensedPage is a text rendition of the current document, compact enough
// to hand to a language model alongside a screenshot.
type CondensedPage struct {
	URL         string
	Title       string
	Description string
	Text        string
	Truncated   bool
}

// PageContent serializes the current document and condenses it to readable
// text, capped at maxLength bytes.
func (m *Manager) PageContent(ctx context.Context, userID string, maxLength int) (*CondensedPage, error) {
	done, err := m.begin(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer done()

	if !m.session.active() {
		return nil, engineErr("content", errNoPage)
	}

	raw, err := m.session.page.Content()
	if err != nil {
		return nil, engineErr("content", err)
	}

	page, err := condense(raw, maxLength)
	if err != nil {
		return nil, engineErr("content", err)
	}
	page.URL = m.session.page.URL()
	return page, nil
}

// condense parses HTML and flattens it to text. Block elements become line
// breaks, links keep their targets and form controls their labels, so the
// output preserves what a reader could act on.
func condense(rawHTML string, maxLength int) (*CondensedPage, error) {
	doc, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	page := &CondensedPage{
		Title:       firstText(doc, "title"),
		Description: metaDescription(doc),
	}

	var builder strings.Builder
	var length int
	page.Truncated = flatten(doc, &builder, &length, maxLength)
	page.Text = collapseBlankLines(builder.String())
	return page, nil
}

func flatten(n *html.Node, builder *strings.Builder, length *int, maxLength int) bool {
	if *length >= maxLength {
		return true
	}

	switch n.Type {
	case html.CommentNode:
		return false
	case html.TextNode:
		return writeText(strings.TrimSpace(n.Data), builder, length, maxLength)
	case html.ElementNode:
		tag := strings.ToLower(n.Data)
		if noiseElement(tag) {
			return false
		}
		if annotation := elementAnnotation(tag, n); annotation != "" {
			if writeText(annotation, builder, length, maxLength) {
				return true
			}
		}
		if blockElement(tag) {
			builder.WriteString("\n")
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if flatten(c, builder, length, maxLength) {
			return true
		}
	}
	return false
}

func writeText(text string, builder *strings.Builder, length *int, maxLength int) bool {
	if text == "" {
		return false
	}
	if *length+len(text) > maxLength {
		// Never split a multi-byte rune at the cap.
		cut := maxLength - *length
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		builder.WriteString(text[:cut])
		builder.WriteString("...")
		*length = maxLength
		return true
	}
	builder.WriteString(text)
	builder.WriteString(" ")
	*length += len(text) + 1
	return false
}

// elementAnnotation renders actionable element context inline, like the
// target of a link or the placeholder of an input.
func elementAnnotation(tag string, n *html.Node) string {
	switch tag {
	case "a":
		if href := attrValue(n, "href"); href != "" && !strings.HasPrefix(href, "javascript:") {
			return "[link: " + href + "]"
		}
	case "img":
		if alt := attrValue(n, "alt"); alt != "" {
			return "[image: " + alt + "]"
		}
	case "input", "textarea":
		label := attrValue(n, "placeholder")
		if label == "" {
			label = attrValue(n, "name")
		}
		if label != "" {
			return "[input: " + label + "]"
		}
	case "button":
		return "[button]"
	}
	return ""
}

func noiseElement(tag string) bool {
	switch tag {
	case "script", "style", "noscript", "template", "svg", "head":
		return true
	}
	return false
}

func blockElement(tag string) bool {
	switch tag {
	case "div", "p", "section", "article", "header", "footer", "nav", "main",
		"aside", "h1", "h2", "h3", "h4", "h5", "h6", "ul", "ol", "li",
		"table", "tr", "form", "fieldset", "blockquote", "pre", "br":
		return true
	}
	return false
}

func attrValue(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, key) {
			return strings.TrimSpace(attr.Val)
		}
	}
	return ""
}

func firstText(doc *html.Node, tag string) string {
	var found string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == tag {
			if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
				found = strings.TrimSpace(n.FirstChild.Data)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return found
}

func metaDescription(doc *html.Node) string {
	var found string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != "" {
			return
		}
		if n.Type == html.ElementNode && n.Data == "meta" {
			if strings.EqualFold(attrValue(n, "name"), "description") {
				found = attrValue(n, "content")
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return found
}

func collapseBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimRight(line, " ")
		if line == "" && len(out) > 0 && out[len(out)-1] == "" {
			continue
		}
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
