package style

import (
	"testing"

	"github.com/rtl-agents/rtlagents/internal/parser/css"
	"github.com/rtl-agents/rtlagents/internal/parser/html"
)

func mustParseHTML(t *testing.T, src string) *html.Document {
	t.Helper()
	doc, err := html.NewParser().ParseString(src)
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func mustParseCSS(t *testing.T, src string) *css.Stylesheet {
	t.Helper()
	sheet, err := css.NewParser().ParseString(src)
	if err != nil {
		t.Fatalf("parse css: %v", err)
	}
	return sheet
}

func byID(doc *html.Document, id string) *html.Node {
	var found *html.Node
	doc.Root.Walk(func(n *html.Node) bool {
		if v, ok := n.AttrValue("id"); ok && v == id {
			found = n
		}
		return found == nil
	})
	return found
}

func TestCascade(t *testing.T) {
	tests := []struct {
		name string
		html string
		css  string
		want string
	}{
		{
			name: "specificity beats order",
			html: `<div id="x" class="a">t</div>`,
			css:  `.a { direction: rtl } div { direction: ltr }`,
			want: "rtl",
		},
		{
			name: "later rule wins on equal specificity",
			html: `<div id="x">t</div>`,
			css:  `div { direction: ltr } div { direction: rtl }`,
			want: "rtl",
		},
		{
			name: "important beats inline",
			html: `<div id="x" class="a" style="direction: ltr">t</div>`,
			css:  `.a { direction: rtl !important }`,
			want: "rtl",
		},
		{
			name: "inline beats id",
			html: `<div id="x" style="direction: ltr">t</div>`,
			css:  `#x { direction: rtl }`,
			want: "ltr",
		},
		{
			name: "dir attribute from user agent styles",
			html: `<div id="x" dir="rtl">t</div>`,
			want: "rtl",
		},
		{
			name: "author beats user agent",
			html: `<div id="x" dir="rtl">t</div>`,
			css:  `div { direction: ltr }`,
			want: "ltr",
		},
		{
			name: "lang pseudo-class inherits",
			html: `<div lang="fa-IR"><p id="x">t</p></div>`,
			css:  `p:lang(fa) { direction: rtl }`,
			want: "rtl",
		},
		{
			name: "descendant combinator",
			html: `<div class="chat"><section><p id="x">t</p></section></div>`,
			css:  `.chat p { direction: rtl }`,
			want: "rtl",
		},
		{
			name: "substring attribute selector",
			html: `<div id="x" class="my-chat-panel">t</div>`,
			css:  `[class*="chat"] { direction: rtl }`,
			want: "rtl",
		},
		{
			name: "unsupported selector ignored",
			html: `<div id="x">t</div>`,
			css:  `div:hover { direction: rtl } p + div { direction: rtl }`,
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := mustParseHTML(t, tt.html)
			engine := NewStyleEngine()
			if tt.css != "" {
				engine.AddStylesheet(mustParseCSS(t, tt.css))
			}

			node := byID(doc, "x")
			if node == nil {
				t.Fatal("element #x not found")
			}

			got := engine.ComputeStyles(doc)[node]["direction"].Value
			if got != tt.want {
				t.Errorf("direction = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMatches(t *testing.T) {
	doc := mustParseHTML(t, `<div class="chat-message agent" lang="ar"><pre id="x" data-streaming="true">t</pre></div>`)
	node := byID(doc, "x")
	engine := NewStyleEngine()

	tests := []struct {
		sel  string
		want bool
	}{
		{"pre", true},
		{"PRE", true},
		{"#x", true},
		{"pre#x", true},
		{"div pre", true},
		{"div > pre", true},
		{".chat-message pre", true},
		{".chat-message.agent pre", true},
		{".chat-message.missing pre", false},
		{`[data-streaming="true"]`, true},
		{`[data-streaming="false"]`, false},
		{"[data-streaming]", true},
		{`[class*="chat"] pre`, true},
		{`[class^="chat"] pre`, true},
		{`[class~="agent"] pre`, true},
		{`[class$="agent"] pre`, true},
		{"pre:lang(ar)", true},
		{"pre:lang(fa)", false},
		{"*", true},
		{"span pre", false},
		{"pre::before", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.sel, func(t *testing.T) {
			if got := engine.Matches(node, tt.sel); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.sel, got, tt.want)
			}
		})
	}
}

func TestSpecificity(t *testing.T) {
	tests := []struct {
		sel  string
		want Specificity
	}{
		{"div", Specificity{Element: 1}},
		{".a", Specificity{Class: 1}},
		{"#x", Specificity{ID: 1}},
		{".a pre", Specificity{Class: 1, Element: 1}},
		{`.a:lang(fa)`, Specificity{Class: 2}},
		{`div#x.a[dir="rtl"]`, Specificity{ID: 1, Class: 2, Element: 1}},
		{"*", Specificity{}},
	}

	for _, tt := range tests {
		t.Run(tt.sel, func(t *testing.T) {
			s, ok := parseSelector(tt.sel)
			if !ok {
				t.Fatalf("parseSelector(%q) failed", tt.sel)
			}
			if s.specificity != tt.want {
				t.Errorf("specificity = %+v, want %+v", s.specificity, tt.want)
			}
		})
	}
}
