package style

import (
	"strings"

	"github.com/rtl-agents/rtlagents/internal/parser/css"
	"github.com/rtl-agents/rtlagents/internal/parser/html"
	xhtml "golang.org/x/net/html"
)

// Specificity represents the specificity of a CSS selector
type Specificity struct {
	ID      int
	Class   int
	Element int
}

// StyleProperty represents a computed style property
type StyleProperty struct {
	Name        string
	Value       string
	Important   bool
	Source      Source
	Specificity Specificity
}

// Source represents the origin of a style property
type Source int

const (
	SourceUserAgent Source = iota
	SourceAuthor
	SourceInline
)

// ComputedStyle represents the computed style for an element
type ComputedStyle map[string]StyleProperty

// StyleEngine runs the CSS cascade over a parsed document.
// It is not safe for concurrent use.
type StyleEngine struct {
	userAgentStyles *css.Stylesheet
	authorStyles    []*css.Stylesheet
	selectors       map[string]parsedSelector
}

type parsedSelector struct {
	sel selector
	ok  bool
}

// NewStyleEngine creates a new style engine
func NewStyleEngine() *StyleEngine {
	return &StyleEngine{
		userAgentStyles: defaultUserAgentStyles(),
		authorStyles:    []*css.Stylesheet{},
		selectors:       make(map[string]parsedSelector),
	}
}

// AddStylesheet adds an author stylesheet to the style engine
func (e *StyleEngine) AddStylesheet(stylesheet *css.Stylesheet) {
	e.authorStyles = append(e.authorStyles, stylesheet)
}

// ComputeStyles computes the cascaded (not inherited) styles of every element
func (e *StyleEngine) ComputeStyles(doc *html.Document) map[*html.Node]ComputedStyle {
	result := make(map[*html.Node]ComputedStyle)
	e.computeStylesRecursive(doc.Root, result)
	return result
}

func (e *StyleEngine) computeStylesRecursive(node *html.Node, result map[*html.Node]ComputedStyle) {
	if node == nil {
		return
	}

	if node.Type == xhtml.ElementNode {
		result[node] = e.computeStyleForElement(node)
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		e.computeStylesRecursive(child, result)
	}
}

func (e *StyleEngine) computeStyleForElement(node *html.Node) ComputedStyle {
	style := make(ComputedStyle)

	e.applyStylesheet(style, node, e.userAgentStyles, SourceUserAgent)

	for _, stylesheet := range e.authorStyles {
		e.applyStylesheet(style, node, stylesheet, SourceAuthor)
	}

	e.applyInlineStyles(style, node)

	return style
}

func (e *StyleEngine) applyStylesheet(style ComputedStyle, node *html.Node, stylesheet *css.Stylesheet, source Source) {
	if stylesheet == nil {
		return
	}
	for _, rule := range stylesheet.Rules {
		// A rule applies once, with the specificity of its most specific
		// matching selector.
		best, matched := Specificity{}, false
		for _, sel := range rule.Selectors {
			p := e.parse(sel)
			if !p.ok || !p.sel.matches(node) {
				continue
			}
			if !matched || compareSpecificity(p.sel.specificity, best) > 0 {
				best = p.sel.specificity
			}
			matched = true
		}
		if matched {
			applyDeclarations(style, rule.Declarations, best, source)
		}
	}
}

func (e *StyleEngine) applyInlineStyles(style ComputedStyle, node *html.Node) {
	inline, ok := node.AttrValue("style")
	if !ok || strings.TrimSpace(inline) == "" {
		return
	}

	inlineStyles, err := css.NewParser().ParseString("inline { " + inline + " }")
	if err != nil || len(inlineStyles.Rules) == 0 {
		return
	}

	applyDeclarations(style, inlineStyles.Rules[0].Declarations, Specificity{ID: 1}, SourceInline)
}

// applyDeclarations applies declarations in order. A declaration replaces an
// existing one unless the existing one is important and the new one is not,
// comes from a stronger origin, or has higher specificity.
func applyDeclarations(style ComputedStyle, declarations []*css.Declaration, specificity Specificity, source Source) {
	for _, decl := range declarations {
		candidate := StyleProperty{
			Name:        decl.Property,
			Value:       decl.Value,
			Important:   decl.Important,
			Source:      source,
			Specificity: specificity,
		}
		if existing, exists := style[decl.Property]; !exists || candidate.outranks(existing) {
			style[decl.Property] = candidate
		}
	}
}

// outranks reports whether p wins the cascade over existing, where p was
// declared later in document order
func (p StyleProperty) outranks(existing StyleProperty) bool {
	if p.Important != existing.Important {
		return p.Important
	}
	if p.Source != existing.Source {
		return p.Source > existing.Source
	}
	return compareSpecificity(p.Specificity, existing.Specificity) >= 0
}

// Matches reports whether node matches the CSS selector
func (e *StyleEngine) Matches(node *html.Node, sel string) bool {
	p := e.parse(sel)
	return p.ok && p.sel.matches(node)
}

func (e *StyleEngine) parse(sel string) parsedSelector {
	if p, ok := e.selectors[sel]; ok {
		return p
	}
	s, ok := parseSelector(sel)
	p := parsedSelector{sel: s, ok: ok}
	e.selectors[sel] = p
	return p
}

func compareSpecificity(a, b Specificity) int {
	if a.ID != b.ID {
		return a.ID - b.ID
	}
	if a.Class != b.Class {
		return a.Class - b.Class
	}
	return a.Element - b.Element
}

// defaultUserAgentStyles maps the HTML dir attribute the way browsers do
func defaultUserAgentStyles() *css.Stylesheet {
	stylesheet, _ := css.NewParser().ParseString(`
		[dir="rtl"] { direction: rtl; unicode-bidi: isolate; }
		[dir="ltr"] { direction: ltr; unicode-bidi: isolate; }
		[dir="auto"] { direction: auto; unicode-bidi: isolate; }
		bdi { unicode-bidi: isolate; }
		bdo[dir="rtl"], bdo[dir="ltr"] { unicode-bidi: bidi-override; }
		textarea, pre { unicode-bidi: normal; }
	`)
	return stylesheet
}
