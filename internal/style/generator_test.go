package style

import (
	"strings"
	"testing"

	"github.com/rtl-agents/rtlagents/internal/parser/css"
)

func baseOptions(mode Mode) StyleOptions {
	return StyleOptions{Mode: mode, LineHeight: 1.6}
}

func TestGenerateRTLStyles(t *testing.T) {
	tests := []struct {
		name    string
		opts    StyleOptions
		want    []string
		notWant []string
	}{
		{
			name: "rtl mode",
			opts: baseOptions(ModeRTL),
			want: []string{"direction: rtl", "text-align: right", "Mode: rtl"},
		},
		{
			name: "ltr mode",
			opts: baseOptions(ModeLTR),
			want: []string{"direction: ltr", "text-align: left"},
		},
		{
			name: "auto mode",
			opts: baseOptions(ModeAuto),
			want: []string{"direction: auto", "unicode-bidi: plaintext", ":lang(fa)", ":lang(ar)", ":lang(he)", ":lang(ur)", ":lang(ps)"},
		},
		{
			name: "custom font family",
			opts: StyleOptions{Mode: ModeRTL, FontFamily: "Vazirmatn", LineHeight: 1.6},
			want: []string{`font-family: "Vazirmatn", "Vazirmatn", "IRANSansX", "Tahoma", sans-serif !important`},
		},
		{
			name:    "editor font without custom family",
			opts:    baseOptions(ModeRTL),
			want:    []string{`font-family: "Vazirmatn", "IRANSansX", "Tahoma", var(--vscode-font-family), sans-serif;`},
			notWant: []string{"sans-serif !important"},
		},
		{
			name: "custom font size",
			opts: StyleOptions{Mode: ModeRTL, FontSize: 16, LineHeight: 1.6},
			want: []string{"font-size: 16px !important"},
		},
		{
			name:    "zero font size omitted",
			opts:    baseOptions(ModeRTL),
			notWant: []string{"font-size"},
		},
		{
			name: "custom line height",
			opts: StyleOptions{Mode: ModeRTL, LineHeight: 1.8},
			want: []string{"line-height: 1.8 !important"},
		},
		{
			name: "zero line height still emitted",
			opts: StyleOptions{Mode: ModeRTL},
			want: []string{"line-height: 0 !important"},
		},
		{
			name: "negative values verbatim",
			opts: StyleOptions{Mode: ModeRTL, FontSize: 12.5, LineHeight: -2},
			want: []string{"font-size: 12.5px !important", "line-height: -2 !important"},
		},
		{
			name:    "custom targets",
			opts:    StyleOptions{Mode: ModeRTL, LineHeight: 1.6, Targets: []string{".my-custom-class", "#my-id"}},
			want:    []string{".my-custom-class", "#my-id", ".my-custom-class pre", "#my-id code"},
			notWant: []string{".markdown-body pre"},
		},
		{
			name: "streaming optimization",
			opts: baseOptions(ModeAuto),
			want: []string{"streaming", `.chat-message [data-streaming="true"]`, "unicode-bidi: plaintext"},
		},
		{
			name:    "no lang block outside auto mode",
			opts:    baseOptions(ModeRTL),
			notWant: []string{":lang("},
		},
		{
			name:    "unknown mode falls back to auto direction only",
			opts:    baseOptions(Mode("sideways")),
			want:    []string{"Mode: sideways", "direction: auto"},
			notWant: []string{":lang("},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := GenerateRTLStyles(tt.opts)
			for _, s := range tt.want {
				if !strings.Contains(got, s) {
					t.Errorf("output missing %q", s)
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(got, s) {
					t.Errorf("output unexpectedly contains %q", s)
				}
			}
		})
	}
}

func TestGenerateRTLStylesCodeBlocksAlwaysLTR(t *testing.T) {
	for _, mode := range []Mode{ModeAuto, ModeRTL, ModeLTR} {
		t.Run(string(mode), func(t *testing.T) {
			got := GenerateRTLStyles(baseOptions(mode))
			for _, s := range []string{".chat-message pre", ".chat-message code", "direction: ltr !important"} {
				if !strings.Contains(got, s) {
					t.Errorf("output missing %q", s)
				}
			}
		})
	}
}

func TestGenerateRTLStylesHeader(t *testing.T) {
	got := GenerateRTLStyles(baseOptions(ModeAuto))
	if !strings.HasPrefix(got, "/* RTL Agent - Auto-generated styles */\n/* Mode: auto */\n") {
		t.Errorf("unexpected header: %q", got[:60])
	}
	if strings.HasSuffix(got, "\n") {
		t.Error("output not trimmed")
	}
}

func TestGenerateRTLStylesParses(t *testing.T) {
	modes := []Mode{ModeAuto, ModeRTL, ModeLTR}
	for _, mode := range modes {
		t.Run(string(mode), func(t *testing.T) {
			sheet, err := css.NewParser().ParseString(GenerateRTLStyles(StyleOptions{
				Mode:       mode,
				FontFamily: "Vazirmatn",
				FontSize:   14,
				LineHeight: 1.5,
			}))
			if err != nil {
				t.Fatalf("ParseString: %v", err)
			}

			wantRules := 8
			if mode == ModeAuto {
				wantRules = 10
			}
			if len(sheet.Rules) != wantRules {
				t.Errorf("got %d rules, want %d", len(sheet.Rules), wantRules)
			}

			base := sheet.Rules[0]
			if len(base.Selectors) != len(defaultSelectors) {
				t.Errorf("base rule has %d selectors, want %d", len(base.Selectors), len(defaultSelectors))
			}
			if d := base.Declaration("line-height"); d == nil || d.Value != "1.5" || !d.Important {
				t.Errorf("line-height = %+v", d)
			}
		})
	}
}

func TestGenerateRTLStylesDefaultTargets(t *testing.T) {
	withDefaults := GenerateRTLStyles(baseOptions(ModeRTL))
	explicit := GenerateRTLStyles(StyleOptions{Mode: ModeRTL, LineHeight: 1.6, Targets: DefaultSelectors()})
	if withDefaults != explicit {
		t.Error("empty targets did not fall back to the default selectors")
	}
}

func TestDefaultSelectorsIsCopy(t *testing.T) {
	s := DefaultSelectors()
	s[0] = ".mutated"
	if DefaultSelectors()[0] != ".chat-message" {
		t.Error("DefaultSelectors exposed internal slice")
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"rtl", ModeRTL},
		{" RTL ", ModeRTL},
		{"ltr", ModeLTR},
		{"auto", ModeAuto},
		{"", ModeAuto},
		{"sideways", ModeAuto},
	}

	for _, tt := range tests {
		if got := ParseMode(tt.in); got != tt.want {
			t.Errorf("ParseMode(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{16, "16"},
		{1.6, "1.6"},
		{0, "0"},
		{-2, "-2"},
		{12.25, "12.25"},
	}

	for _, tt := range tests {
		if got := formatNumber(tt.in); got != tt.want {
			t.Errorf("formatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
