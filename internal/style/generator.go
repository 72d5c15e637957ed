package style

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/language"
)

// Mode selects the direction block of a generated stylesheet
type Mode string

const (
	ModeAuto Mode = "auto"
	ModeRTL  Mode = "rtl"
	ModeLTR  Mode = "ltr"
)

// ParseMode converts a configuration value to a Mode. Unknown values map
// to ModeAuto.
func ParseMode(s string) Mode {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeRTL:
		return ModeRTL
	case ModeLTR:
		return ModeLTR
	default:
		return ModeAuto
	}
}

// StyleOptions configures GenerateRTLStyles
type StyleOptions struct {
	Mode Mode
	// FontFamily is placed ahead of the fallback chain. Empty keeps the
	// editor font.
	FontFamily string
	// FontSize in pixels; 0 leaves the size alone
	FontSize float64
	// LineHeight is always emitted, as given
	LineHeight float64
	// Targets are the selectors of the message containers. Empty means
	// DefaultSelectors.
	Targets []string
}

// fontFallbacks are tried after a custom family and before the generic family
var fontFallbacks = []string{`"Vazirmatn"`, `"IRANSansX"`, `"Tahoma"`}

// defaultSelectors cover the container class names used by common chat,
// agent and markdown panels
var defaultSelectors = []string{
	".chat-message",
	".agent-response",
	".markdown-body",
	".message-content",
	".chat-content",
	".response-content",
	`[class*="chat"]`,
	`[class*="agent"]`,
	`[class*="message"]`,
	`[class*="response"]`,
	`[class*="copilot"]`,
}

// rtlLanguages are emitted as :lang() selectors in auto mode
var rtlLanguages = []language.Tag{
	language.Persian,
	language.Arabic,
	language.Hebrew,
	language.Urdu,
	language.MustParse("ps"),
}

var (
	agentViewSelectors = []string{
		".agent-view",
		".chat-view",
		".copilot-view",
		`[class*="agent"]`,
		`[class*="chat"]`,
		`[class*="copilot"]`,
	}
	messageSelectors = []string{
		".message",
		".chat-message",
		".agent-message",
		".response",
		".agent-response",
		`[class*="message"]`,
	}
	markdownSelectors = []string{
		".markdown-body",
		".markdown-content",
		".rendered-markdown",
		`[class*="markdown"]`,
	}
	inputSelectors = []string{
		".chat-input",
		".agent-input",
		".message-input",
		`[class*="input"] textarea`,
	}
)

// DefaultSelectors returns a copy of the built-in target selectors
func DefaultSelectors() []string {
	return append([]string(nil), defaultSelectors...)
}

// GenerateRTLStyles builds the stylesheet for opts. Code blocks stay LTR in
// every mode and streaming regions always use plaintext bidi isolation.
// Values are emitted verbatim; selector validity is up to the caller.
func GenerateRTLStyles(opts StyleOptions) string {
	selectors := opts.Targets
	if len(selectors) == 0 {
		selectors = defaultSelectors
	}

	fontStyles := buildFontStyles(opts.FontFamily, opts.FontSize, opts.LineHeight)
	directionStyles := buildDirectionStyles(opts.Mode)

	var b strings.Builder
	b.WriteString("/* RTL Agent - Auto-generated styles */\n")
	fmt.Fprintf(&b, "/* Mode: %s */\n\n", opts.Mode)

	writeRule(&b, "Base styles for all targeted elements", selectors,
		fontStyles,
		directionStyles,
		[]string{
			"text-rendering: optimizeLegibility",
			"-webkit-font-smoothing: antialiased",
			"-moz-osx-font-smoothing: grayscale",
			"word-wrap: break-word",
			"overflow-wrap: break-word",
		})

	writeRule(&b, "Code blocks should always be LTR",
		descendants(selectors, "pre", "code", ".code-block", `[class*="code"]`),
		[]string{
			"direction: ltr !important",
			"text-align: left !important",
			"unicode-bidi: isolate",
		})

	writeRule(&b, "Lists should inherit direction properly",
		descendants(selectors, "ul", "ol"),
		[]string{
			"padding-inline-start: 2em",
			"padding-inline-end: 0",
		})

	writeRule(&b, "Streaming text optimization",
		descendants(selectors, `[data-streaming="true"]`, ".streaming", ".typing"),
		[]string{
			"direction: inherit",
			"unicode-bidi: plaintext",
		})

	writeRule(&b, "Agent-specific selectors", agentViewSelectors, fontStyles, directionStyles)
	writeRule(&b, "Message containers", messageSelectors, directionStyles, []string{"unicode-bidi: plaintext"})
	writeRule(&b, "Markdown content", markdownSelectors, fontStyles, directionStyles)
	writeRule(&b, "Input areas", inputSelectors, directionStyles, []string{"unicode-bidi: plaintext"})

	if opts.Mode == ModeAuto {
		writeAutoDetectionStyles(&b, selectors)
	}

	return strings.TrimSpace(b.String())
}

// buildFontStyles returns the font declarations. A custom family is forced;
// the editor default is not.
func buildFontStyles(fontFamily string, fontSize, lineHeight float64) []string {
	var styles []string

	if fontFamily != "" {
		families := append([]string{`"` + fontFamily + `"`}, fontFallbacks...)
		families = append(families, "sans-serif")
		styles = append(styles, "font-family: "+strings.Join(families, ", ")+" !important")
	} else {
		families := append(append([]string(nil), fontFallbacks...), "var(--vscode-font-family)", "sans-serif")
		styles = append(styles, "font-family: "+strings.Join(families, ", "))
	}

	if fontSize > 0 {
		styles = append(styles, "font-size: "+formatNumber(fontSize)+"px !important")
	}

	styles = append(styles, "line-height: "+formatNumber(lineHeight)+" !important")

	return styles
}

// buildDirectionStyles returns the direction block for mode. Anything other
// than rtl or ltr gets the auto block.
func buildDirectionStyles(mode Mode) []string {
	switch mode {
	case ModeRTL:
		return []string{
			"direction: rtl !important",
			"text-align: right !important",
			"unicode-bidi: embed",
		}
	case ModeLTR:
		return []string{
			"direction: ltr !important",
			"text-align: left !important",
			"unicode-bidi: embed",
		}
	default:
		return []string{
			"direction: auto",
			"text-align: start",
			"unicode-bidi: plaintext",
		}
	}
}

// writeAutoDetectionStyles forces RTL on targets marked with an RTL language
// or an explicit RTL attribute or class
func writeAutoDetectionStyles(b *strings.Builder, selectors []string) {
	forced := []string{
		"direction: rtl !important",
		"text-align: right !important",
	}

	var langSelectors []string
	for _, tag := range rtlLanguages {
		for _, s := range selectors {
			langSelectors = append(langSelectors, s+":lang("+tag.String()+")")
		}
	}
	writeRule(b, "Auto-detection for RTL languages", langSelectors, forced)

	var attrSelectors []string
	for _, suffix := range []string{`[dir="rtl"]`, ".rtl", `[data-direction="rtl"]`} {
		for _, s := range selectors {
			attrSelectors = append(attrSelectors, s+suffix)
		}
	}
	writeRule(b, "", attrSelectors, forced)
}

// descendants prefixes every child selector with every parent selector
func descendants(parents []string, children ...string) []string {
	out := make([]string, 0, len(parents)*len(children))
	for _, child := range children {
		for _, parent := range parents {
			out = append(out, parent+" "+child)
		}
	}
	return out
}

func writeRule(b *strings.Builder, comment string, selectors []string, blocks ...[]string) {
	if comment != "" {
		fmt.Fprintf(b, "/* %s */\n", comment)
	}
	b.WriteString(strings.Join(selectors, ",\n"))
	b.WriteString(" {\n")
	for _, block := range blocks {
		for _, decl := range block {
			b.WriteString("  ")
			b.WriteString(decl)
			b.WriteString(";\n")
		}
	}
	b.WriteString("}\n\n")
}

// formatNumber prints v the shortest way that round-trips, without exponent
// for ordinary sizes ("16", "1.6", "-2")
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
