package rtlagents

import (
	"strings"
	"testing"
)

func TestFacade(t *testing.T) {
	t.Cleanup(ClearCache)

	tests := []struct {
		name string
		text string
		want Direction
	}{
		{"persian", "این متن فارسی است", "rtl"},
		{"english", "This is English", "ltr"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Detect(tt.text).Direction; got != tt.want {
				t.Errorf("Detect = %q, want %q", got, tt.want)
			}
			if got := TextDirection(tt.text); got != tt.want {
				t.Errorf("TextDirection = %q, want %q", got, tt.want)
			}
		})
	}

	css := GenerateRTLStyles(StyleOptions{Mode: ModeAuto, LineHeight: 1.6})
	if !strings.Contains(css, ":lang(fa)") {
		t.Error("auto styles missing :lang(fa)")
	}
}

func TestInjectorFacade(t *testing.T) {
	inj := NewInjector()
	var last Message
	inj.Subscribe(func(m Message) { last = m })

	inj.Apply(New(WithMode(ModeRTL)).Options().StyleOptions())
	if !strings.Contains(last.Styles, "direction: rtl") {
		t.Errorf("message styles = %q", last.Styles)
	}
}
