package style

import (
	"strings"

	"github.com/rtl-agents/rtlagents/internal/parser/html"
	xhtml "golang.org/x/net/html"
)

// compound is one whitespace-free part of a selector, e.g.
// div.chat-message[dir="rtl"]:lang(fa)
type compound struct {
	tag     string
	id      string
	classes []string
	attrs   []attrSelector
	langs   []string
}

type attrSelector struct {
	name  string
	op    string
	value string
}

// selector is a parsed complex selector; compounds are joined by the
// descendant combinator
type selector struct {
	compounds   []compound
	specificity Specificity
}

// parseSelector parses sel. Unsupported syntax (sibling combinators,
// pseudo-classes other than :lang, pseudo-elements) reports false.
func parseSelector(sel string) (selector, bool) {
	parts := splitCompounds(sel)
	if len(parts) == 0 {
		return selector{}, false
	}

	var s selector
	for _, part := range parts {
		if part == ">" {
			// Treated as a descendant combinator.
			continue
		}
		if part == "+" || part == "~" {
			return selector{}, false
		}
		c, ok := parseCompound(part)
		if !ok {
			return selector{}, false
		}
		s.compounds = append(s.compounds, c)

		s.specificity.Class += len(c.classes) + len(c.attrs) + len(c.langs)
		if c.id != "" {
			s.specificity.ID++
		}
		if c.tag != "" && c.tag != "*" {
			s.specificity.Element++
		}
	}

	if len(s.compounds) == 0 {
		return selector{}, false
	}
	return s, true
}

// splitCompounds splits on white space outside brackets, parentheses and quotes
func splitCompounds(sel string) []string {
	var parts []string
	var current strings.Builder
	depth := 0
	var quote byte

	flush := func() {
		if current.Len() > 0 {
			parts = append(parts, current.String())
			current.Reset()
		}
	}

	for i := 0; i < len(sel); i++ {
		c := sel[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '[' || c == '(':
			depth++
		case c == ']' || c == ')':
			depth--
		case depth == 0 && (c == ' ' || c == '\t' || c == '\n' || c == '\r'):
			flush()
			continue
		case depth == 0 && (c == '>' || c == '+' || c == '~'):
			flush()
			parts = append(parts, string(c))
			continue
		}
		current.WriteByte(c)
	}
	flush()

	return parts
}

func parseCompound(s string) (compound, bool) {
	var c compound
	i := 0

	if i < len(s) && s[i] == '*' {
		c.tag = "*"
		i++
	} else if name, j := readIdent(s, i); name != "" {
		c.tag = strings.ToLower(name)
		i = j
	}

	for i < len(s) {
		switch s[i] {
		case '#':
			name, j := readIdent(s, i+1)
			if name == "" {
				return compound{}, false
			}
			c.id = name
			i = j
		case '.':
			name, j := readIdent(s, i+1)
			if name == "" {
				return compound{}, false
			}
			c.classes = append(c.classes, name)
			i = j
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return compound{}, false
			}
			a, ok := parseAttr(s[i+1 : i+end])
			if !ok {
				return compound{}, false
			}
			c.attrs = append(c.attrs, a)
			i += end + 1
		case ':':
			if !strings.HasPrefix(s[i:], ":lang(") {
				return compound{}, false
			}
			end := strings.IndexByte(s[i:], ')')
			if end < 0 {
				return compound{}, false
			}
			lang := strings.Trim(strings.TrimSpace(s[i:][len(":lang("):end]), `"'`)
			if lang == "" {
				return compound{}, false
			}
			c.langs = append(c.langs, strings.ToLower(lang))
			i += end + 1
		default:
			return compound{}, false
		}
	}

	return c, true
}

// parseAttr parses the inside of an attribute selector: name, name=value,
// name*=value and the other substring operators
func parseAttr(inner string) (attrSelector, bool) {
	eq := strings.IndexByte(inner, '=')
	if eq < 0 {
		name := strings.TrimSpace(inner)
		return attrSelector{name: strings.ToLower(name)}, name != ""
	}

	nameEnd := eq
	op := "="
	if eq > 0 && strings.IndexByte("*^$~|", inner[eq-1]) >= 0 {
		op = inner[eq-1 : eq+1]
		nameEnd = eq - 1
	}

	name := strings.ToLower(strings.TrimSpace(inner[:nameEnd]))
	value := strings.TrimSpace(inner[eq+1:])
	if len(value) >= 2 && (value[0] == '"' || value[0] == '\'') && value[len(value)-1] == value[0] {
		value = value[1 : len(value)-1]
	}

	return attrSelector{name: name, op: op, value: value}, name != ""
}

func readIdent(s string, i int) (string, int) {
	j := i
	for j < len(s) {
		b := s[j]
		if b == '-' || b == '_' || b >= 0x80 ||
			(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') {
			j++
			continue
		}
		break
	}
	return s[i:j], j
}

// matches reports whether node matches the parsed selector
func (s selector) matches(node *html.Node) bool {
	last := len(s.compounds) - 1
	if !s.compounds[last].matches(node) {
		return false
	}

	current := node.Parent
	for i := last - 1; i >= 0; i-- {
		found := false
		for anc := current; anc != nil; anc = anc.Parent {
			if anc.Type == xhtml.ElementNode && s.compounds[i].matches(anc) {
				found = true
				current = anc.Parent
				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

func (c compound) matches(node *html.Node) bool {
	if node == nil || node.Type != xhtml.ElementNode {
		return false
	}

	if c.tag != "" && c.tag != "*" && c.tag != node.Data {
		return false
	}

	if c.id != "" {
		if id, ok := node.AttrValue("id"); !ok || id != c.id {
			return false
		}
	}

	for _, class := range c.classes {
		if !node.HasClass(class) {
			return false
		}
	}

	for _, a := range c.attrs {
		if !a.matches(node) {
			return false
		}
	}

	for _, lang := range c.langs {
		if !langMatches(node, lang) {
			return false
		}
	}

	return true
}

func (a attrSelector) matches(node *html.Node) bool {
	val, ok := node.AttrValue(a.name)
	if !ok {
		return false
	}

	switch a.op {
	case "":
		return true
	case "=":
		return val == a.value
	case "*=":
		return a.value != "" && strings.Contains(val, a.value)
	case "^=":
		return a.value != "" && strings.HasPrefix(val, a.value)
	case "$=":
		return a.value != "" && strings.HasSuffix(val, a.value)
	case "~=":
		for _, f := range strings.Fields(val) {
			if f == a.value {
				return true
			}
		}
		return false
	case "|=":
		return val == a.value || strings.HasPrefix(val, a.value+"-")
	}
	return false
}

// langMatches implements :lang(). The language is inherited from the nearest
// element carrying a lang attribute; "fa" matches "fa" and "fa-IR".
func langMatches(node *html.Node, want string) bool {
	for n := node; n != nil; n = n.Parent {
		if n.Type != xhtml.ElementNode {
			continue
		}
		if lang, ok := n.AttrValue("lang"); ok {
			lang = strings.ToLower(lang)
			return lang == want || strings.HasPrefix(lang, want+"-")
		}
	}
	return false
}
