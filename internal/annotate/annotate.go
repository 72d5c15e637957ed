// Package annotate marks chat and agent message elements of an HTML document
// with the direction of their text.
package annotate

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/rtl-agents/rtlagents/internal/parser/html"
	"github.com/rtl-agents/rtlagents/internal/style"
	"github.com/rtl-agents/rtlagents/internal/text"
	"golang.org/x/text/language"
)

// StyleElementID is the id of the style element added to head
const StyleElementID = "rtl-agents-styles"

// classVocabulary marks an element as a message container when its class
// attribute contains any of these substrings
var classVocabulary = []string{"message", "response", "markdown", "chat", "agent"}

// skippedTags do not contribute text to direction detection
var skippedTags = []string{"pre", "code", "script", "style"}

// Detector classifies message text
type Detector interface {
	Detect(s string) text.DetectionResult
	CSSDirection(s string) text.Direction
}

// Stats counts the elements an annotation pass touched
type Stats struct {
	Elements int `json:"elements"`
	RTL      int `json:"rtl"`
	LTR      int `json:"ltr"`
	Auto     int `json:"auto"`
}

// Annotator sets dir and lang attributes on message elements
type Annotator struct {
	Detector Detector
	// Targets are extra selectors that identify message elements
	Targets []string
	// Stylesheet, when non-empty, is embedded in head
	Stylesheet string

	Logger *slog.Logger
}

// Annotate walks doc and annotates every message element that does not
// already carry a dir attribute
func (a *Annotator) Annotate(doc *html.Document) Stats {
	var stats Stats
	engine := style.NewStyleEngine()

	doc.Root.Walk(func(n *html.Node) bool {
		if !n.IsElement() || !a.isMessage(engine, n) {
			return true
		}
		if _, ok := n.AttrValue("dir"); ok {
			return true
		}

		content := n.Text(skippedTags...)
		if strings.TrimSpace(content) == "" {
			return true
		}

		dir := a.Detector.CSSDirection(content)
		n.SetAttr("dir", dir.String())
		stats.Elements++

		switch dir {
		case text.RTL:
			stats.RTL++
			if tag := a.Detector.Detect(content).Language.Tag(); tag != language.Und {
				n.SetAttr("lang", tag.String())
			}
		case text.LTR:
			stats.LTR++
		default:
			stats.Auto++
		}
		return true
	})

	if a.Stylesheet != "" {
		injectStylesheet(doc, a.Stylesheet)
	}

	a.logger().Debug("annotated document",
		"elements", stats.Elements, "rtl", stats.RTL, "ltr", stats.LTR, "auto", stats.Auto)

	return stats
}

// AnnotateHTML parses r, annotates it and renders the result to w
func (a *Annotator) AnnotateHTML(r io.Reader, w io.Writer) (Stats, error) {
	doc, err := html.NewParser().Parse(r)
	if err != nil {
		return Stats{}, fmt.Errorf("parse html: %w", err)
	}

	stats := a.Annotate(doc)

	if err := doc.RenderTo(w); err != nil {
		return stats, fmt.Errorf("render html: %w", err)
	}
	return stats, nil
}

func (a *Annotator) isMessage(engine *style.StyleEngine, n *html.Node) bool {
	if class, ok := n.AttrValue("class"); ok {
		for _, word := range classVocabulary {
			if strings.Contains(class, word) {
				return true
			}
		}
	}
	for _, sel := range a.Targets {
		if engine.Matches(n, sel) {
			return true
		}
	}
	return false
}

func (a *Annotator) logger() *slog.Logger {
	if a.Logger != nil {
		return a.Logger
	}
	return slog.Default()
}

// injectStylesheet appends css to head as <style id="rtl-agents-styles">,
// replacing an earlier one
func injectStylesheet(doc *html.Document, css string) {
	head := doc.Head()
	if head == nil {
		return
	}

	for c := head.FirstChild; c != nil; c = c.NextSibling {
		if id, ok := c.AttrValue("id"); ok && c.Data == "style" && id == StyleElementID {
			head.RemoveChild(c)
			break
		}
	}

	el := html.NewElement("style")
	el.SetAttr("id", StyleElementID)
	el.AppendChild(html.NewText(css))
	head.AppendChild(el)
}
