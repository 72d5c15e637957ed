package html

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Parser represents an HTML parser
type Parser struct{}

// Node represents an HTML node in the document tree
type Node struct {
	Type        html.NodeType
	Data        string
	Namespace   string
	Attr        []html.Attribute
	Parent      *Node
	FirstChild  *Node
	LastChild   *Node
	PrevSibling *Node
	NextSibling *Node
}

// Document represents a parsed HTML document
type Document struct {
	Root *Node
}

// NewParser creates a new HTML parser
func NewParser() *Parser {
	return &Parser{}
}

// ParseString parses HTML from a string
func (p *Parser) ParseString(content string) (*Document, error) {
	return p.Parse(strings.NewReader(content))
}

// Parse parses HTML from an io.Reader. The parser always produces html,
// head and body elements, even for fragments.
func (p *Parser) Parse(r io.Reader) (*Document, error) {
	node, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	root := convertNode(node, nil)
	return &Document{Root: root}, nil
}

// convertNode converts an html.Node to our Node structure
func convertNode(n *html.Node, parent *Node) *Node {
	if n == nil {
		return nil
	}

	node := &Node{
		Type:      n.Type,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      append([]html.Attribute(nil), n.Attr...),
		Parent:    parent,
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		node.AppendChild(convertNode(c, nil))
	}

	return node
}

// Render renders the document back to HTML
func (d *Document) Render() (string, error) {
	var buf bytes.Buffer
	if err := d.RenderTo(&buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// RenderTo writes the document as HTML to w
func (d *Document) RenderTo(w io.Writer) error {
	if d.Root == nil {
		return nil
	}
	return html.Render(w, toNetNode(d.Root))
}

// toNetNode converts a subtree back to golang.org/x/net/html nodes
func toNetNode(n *Node) *html.Node {
	node := &html.Node{
		Type:      n.Type,
		Data:      n.Data,
		Namespace: n.Namespace,
		Attr:      n.Attr,
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		node.AppendChild(toNetNode(c))
	}
	return node
}

// Head returns the head element, or nil
func (d *Document) Head() *Node {
	return d.FindElement("head")
}

// Body returns the body element, or nil
func (d *Document) Body() *Node {
	return d.FindElement("body")
}

// FindElement returns the first element named tag in document order
func (d *Document) FindElement(tag string) *Node {
	return d.Root.FindElement(tag)
}

// FindElement returns the first element named tag in the subtree rooted at n,
// n included
func (n *Node) FindElement(tag string) *Node {
	if n == nil {
		return nil
	}
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := c.FindElement(tag); found != nil {
			return found
		}
	}
	return nil
}

// IsElement reports whether n is an element node
func (n *Node) IsElement() bool {
	return n.Type == html.ElementNode
}

// AttrValue returns the value of the attribute key
func (n *Node) AttrValue(key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets the attribute key, replacing any existing value
func (n *Node) SetAttr(key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes the attribute key if present
func (n *Node) RemoveAttr(key string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr = append(n.Attr[:i], n.Attr[i+1:]...)
			return
		}
	}
}

// HasClass reports whether class is one of the node's class names
func (n *Node) HasClass(class string) bool {
	classes, ok := n.AttrValue("class")
	if !ok {
		return false
	}
	for _, c := range strings.Fields(classes) {
		if c == class {
			return true
		}
	}
	return false
}

// Text returns the concatenated text of the subtree. Elements named in skip
// are left out along with their descendants.
func (n *Node) Text(skip ...string) string {
	var b strings.Builder
	n.collectText(&b, skip)
	return b.String()
}

func (n *Node) collectText(b *strings.Builder, skip []string) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		for _, tag := range skip {
			if n.Data == tag {
				return
			}
		}
	case html.CommentNode, html.DoctypeNode:
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		c.collectText(b, skip)
	}
}

// AppendChild adds child as the last child of n. child must not already
// have a parent.
func (n *Node) AppendChild(child *Node) {
	if child.Parent != nil || child.PrevSibling != nil || child.NextSibling != nil {
		panic("html: AppendChild called for an attached child Node")
	}
	last := n.LastChild
	if last != nil {
		last.NextSibling = child
	} else {
		n.FirstChild = child
	}
	n.LastChild = child
	child.Parent = n
	child.PrevSibling = last
}

// RemoveChild removes child from n
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("html: RemoveChild called for a non-child Node")
	}
	if n.FirstChild == child {
		n.FirstChild = child.NextSibling
	}
	if child.NextSibling != nil {
		child.NextSibling.PrevSibling = child.PrevSibling
	}
	if n.LastChild == child {
		n.LastChild = child.PrevSibling
	}
	if child.PrevSibling != nil {
		child.PrevSibling.NextSibling = child.NextSibling
	}
	child.Parent = nil
	child.PrevSibling = nil
	child.NextSibling = nil
}

// Walk calls fn for every node of the subtree in document order. Returning
// false from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		c.Walk(fn)
		c = next
	}
}

// NewElement returns a detached element node
func NewElement(tag string, attrs ...html.Attribute) *Node {
	return &Node{Type: html.ElementNode, Data: tag, Attr: attrs}
}

// NewText returns a detached text node
func NewText(text string) *Node {
	return &Node{Type: html.TextNode, Data: text}
}
