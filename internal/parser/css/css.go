package css

import (
	"errors"
	"io"
	"strings"
)

// ErrUnbalancedBraces is returned when a stylesheet opens more blocks than
// it closes, or closes a block that was never opened
var ErrUnbalancedBraces = errors.New("css: unbalanced braces")

// Parser represents a CSS parser
type Parser struct{}

// Rule represents a CSS rule
type Rule struct {
	Selectors    []string
	Declarations []*Declaration
}

// Declaration represents a CSS declaration (property-value pair)
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// Stylesheet represents a parsed CSS stylesheet
type Stylesheet struct {
	Rules []*Rule
}

// NewParser creates a new CSS parser
func NewParser() *Parser {
	return &Parser{}
}

// ParseString parses CSS from a string
func (p *Parser) ParseString(content string) (*Stylesheet, error) {
	return p.Parse(strings.NewReader(content))
}

// Parse parses CSS from an io.Reader
func (p *Parser) Parse(r io.Reader) (*Stylesheet, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return p.parseCSS(string(content))
}

func (p *Parser) parseCSS(content string) (*Stylesheet, error) {
	stylesheet := &Stylesheet{
		Rules: []*Rule{},
	}

	content = removeComments(content)
	ruleStrings, err := splitRules(content)
	if err != nil {
		return nil, err
	}

	for _, ruleStr := range ruleStrings {
		rule, err := p.parseRule(ruleStr)
		if err != nil {
			continue // Skip invalid rules
		}
		stylesheet.Rules = append(stylesheet.Rules, rule)
	}

	return stylesheet, nil
}

func (p *Parser) parseRule(ruleStr string) (*Rule, error) {
	parts := strings.SplitN(ruleStr, "{", 2)
	if len(parts) != 2 {
		return nil, errors.New("invalid rule format")
	}

	selectorStr := strings.TrimSpace(parts[0])
	declarationsStr := strings.TrimSpace(parts[1])

	declarationsStr = strings.TrimSuffix(declarationsStr, "}")

	selectors := parseSelectors(selectorStr)
	if len(selectors) == 0 {
		return nil, errors.New("no selectors found")
	}

	return &Rule{
		Selectors:    selectors,
		Declarations: parseDeclarations(declarationsStr),
	}, nil
}

// parseSelectors splits a selector group on top-level commas. Commas inside
// brackets, parentheses or quotes belong to the selector.
func parseSelectors(selectorStr string) []string {
	var result []string
	var current strings.Builder
	depth := 0
	var quote byte

	flush := func() {
		if s := strings.Join(strings.Fields(current.String()), " "); s != "" {
			result = append(result, s)
		}
		current.Reset()
	}

	for i := 0; i < len(selectorStr); i++ {
		c := selectorStr[i]
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
		case c == ',' && depth == 0:
			flush()
			continue
		}
		current.WriteByte(c)
	}
	flush()

	return result
}

func parseDeclarations(declarationsStr string) []*Declaration {
	declarationStrings := strings.Split(declarationsStr, ";")
	result := make([]*Declaration, 0, len(declarationStrings))

	for _, declStr := range declarationStrings {
		declStr = strings.TrimSpace(declStr)
		if declStr == "" {
			continue
		}

		parts := strings.SplitN(declStr, ":", 2)
		if len(parts) != 2 {
			continue
		}

		property := strings.ToLower(strings.TrimSpace(parts[0]))
		value := strings.TrimSpace(parts[1])

		important := false
		if strings.HasSuffix(value, "!important") {
			important = true
			value = strings.TrimSpace(strings.TrimSuffix(value, "!important"))
		}

		result = append(result, &Declaration{
			Property:  property,
			Value:     value,
			Important: important,
		})
	}

	return result
}

// removeComments removes CSS comments. An unterminated comment swallows the
// rest of the input.
func removeComments(content string) string {
	var result strings.Builder
	i := 0

	for i < len(content) {
		if i+1 < len(content) && content[i] == '/' && content[i+1] == '*' {
			commentEnd := strings.Index(content[i+2:], "*/")
			if commentEnd == -1 {
				break
			}
			i += commentEnd + 4
		} else {
			result.WriteByte(content[i])
			i++
		}
	}

	return result.String()
}

// splitRules splits CSS content into individual top-level rules
func splitRules(content string) ([]string, error) {
	var rules []string
	var currentRule strings.Builder
	braceCount := 0
	var quote byte

	for i := 0; i < len(content); i++ {
		char := content[i]

		switch {
		case quote != 0:
			if char == quote {
				quote = 0
			}
		case char == '"' || char == '\'':
			quote = char
		case char == '{':
			braceCount++
		case char == '}':
			braceCount--
			if braceCount < 0 {
				return nil, ErrUnbalancedBraces
			}
			if braceCount == 0 {
				currentRule.WriteByte(char)
				rules = append(rules, currentRule.String())
				currentRule.Reset()
				continue
			}
		}

		if braceCount > 0 || !isWhitespace(char) || currentRule.Len() > 0 {
			currentRule.WriteByte(char)
		}
	}

	if braceCount != 0 {
		return nil, ErrUnbalancedBraces
	}

	return rules, nil
}

func isWhitespace(char byte) bool {
	return char == ' ' || char == '\t' || char == '\n' || char == '\r'
}

// Declaration returns the last declaration of property in the rule, or nil
func (r *Rule) Declaration(property string) *Declaration {
	var found *Declaration
	for _, d := range r.Declarations {
		if d.Property == property {
			found = d
		}
	}
	return found
}

// HasSelector reports whether selector is one of the rule's selectors
func (r *Rule) HasSelector(selector string) bool {
	for _, s := range r.Selectors {
		if s == selector {
			return true
		}
	}
	return false
}

// RulesFor returns the rules listing selector, in source order
func (s *Stylesheet) RulesFor(selector string) []*Rule {
	var rules []*Rule
	for _, r := range s.Rules {
		if r.HasSelector(selector) {
			rules = append(rules, r)
		}
	}
	return rules
}

// SelectorCount returns the total number of selectors across all rules
func (s *Stylesheet) SelectorCount() int {
	n := 0
	for _, r := range s.Rules {
		n += len(r.Selectors)
	}
	return n
}
