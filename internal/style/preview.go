package style

import (
	"strings"

	"github.com/rtl-agents/rtlagents/internal/parser/css"
	"github.com/rtl-agents/rtlagents/internal/parser/html"
	xhtml "golang.org/x/net/html"
)

// ElementDirection is the resolved direction of one element
type ElementDirection struct {
	// Path locates the element below body, e.g. "div.chat-message > pre"
	Path        string
	Tag         string
	Direction   string
	TextAlign   string
	UnicodeBidi string
	// Important is set when the winning direction declaration was !important
	Important bool
}

// inherited values flowing down the tree
type inherited struct {
	direction string
	textAlign string
}

// Preview applies sheet to doc and reports the direction of every element
// inside body, in document order. direction and text-align inherit;
// unicode-bidi does not.
func Preview(doc *html.Document, sheet *css.Stylesheet) []ElementDirection {
	engine := NewStyleEngine()
	if sheet != nil {
		engine.AddStylesheet(sheet)
	}
	return engine.Preview(doc)
}

// Preview reports the resolved direction of every element inside body using
// the engine's stylesheets
func (e *StyleEngine) Preview(doc *html.Document) []ElementDirection {
	body := doc.Body()
	if body == nil {
		return nil
	}

	computed := e.ComputeStyles(doc)
	root := inherited{direction: "ltr", textAlign: "start"}
	if s, ok := computed[body]; ok {
		root = resolve(s, root)
	}

	var rows []ElementDirection
	for child := body.FirstChild; child != nil; child = child.NextSibling {
		previewNode(child, "", root, computed, &rows)
	}
	return rows
}

func previewNode(node *html.Node, parentPath string, parent inherited, computed map[*html.Node]ComputedStyle, rows *[]ElementDirection) {
	if node.Type != xhtml.ElementNode {
		return
	}

	path := pathSegment(node)
	if parentPath != "" {
		path = parentPath + " > " + path
	}

	style := computed[node]
	current := resolve(style, parent)

	row := ElementDirection{
		Path:        path,
		Tag:         node.Data,
		Direction:   current.direction,
		TextAlign:   current.textAlign,
		UnicodeBidi: "normal",
	}
	if p, ok := style["direction"]; ok {
		row.Important = p.Important
	}
	if p, ok := style["unicode-bidi"]; ok && p.Value != "inherit" {
		row.UnicodeBidi = p.Value
	}
	*rows = append(*rows, row)

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		previewNode(child, path, current, computed, rows)
	}
}

// resolve applies the inherited properties of style on top of parent
func resolve(style ComputedStyle, parent inherited) inherited {
	out := parent
	if p, ok := style["direction"]; ok && p.Value != "inherit" {
		out.direction = p.Value
	}
	if p, ok := style["text-align"]; ok && p.Value != "inherit" {
		out.textAlign = p.Value
	}
	return out
}

// pathSegment renders tag#id.class1.class2
func pathSegment(node *html.Node) string {
	var b strings.Builder
	b.WriteString(node.Data)
	if id, ok := node.AttrValue("id"); ok && id != "" {
		b.WriteByte('#')
		b.WriteString(id)
	}
	if classes, ok := node.AttrValue("class"); ok {
		for _, c := range strings.Fields(classes) {
			b.WriteByte('.')
			b.WriteString(c)
		}
	}
	return b.String()
}
