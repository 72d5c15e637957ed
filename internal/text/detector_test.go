package text

import (
	"fmt"
	"math"
	"strings"
	"sync"
	"testing"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		language  ScriptClass
		direction Direction
	}{
		// Pure RTL
		{"Persian", "سلام، این یک متن فارسی است", Persian, RTL},
		{"Hebrew", "שלום, זה טקסט בעברית", Hebrew, RTL},
		{"Persian digits", "قیمت: ۱۲۳۴۵ تومان", Persian, RTL},

		// Pure LTR
		{"English", "Hello, this is an English text", Latin, LTR},
		{"Code", "const x = 5; function test() {}", Latin, LTR},
		{"Digits", "12345", Latin, LTR},

		// Mixed
		{"Mostly Persian", "سلام! Hello به VS Code خوش آمدید", Persian, RTL},
		{"Mostly English", "Hello world! سلام - This is a test", Latin, LTR},
		{"Persian with URL", "برای اطلاعات بیشتر به https://example.com مراجعه کنید", Persian, RTL},
		{"Persian with emoji", "سلام 👋 چطوری؟ 😊", Persian, RTL},
		{"Persian with symbols", "سلام! @#$%^&*() درود", Persian, RTL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDetector()
			got := d.Detect(tt.text)
			if got.Language != tt.language || got.Direction != tt.direction {
				t.Errorf("Detect(%q) = %s/%s, want %s/%s",
					tt.text, got.Language, got.Direction, tt.language, tt.direction)
			}
		})
	}
}

func TestDetectEmptyInput(t *testing.T) {
	d := NewDetector()
	for _, in := range []string{"", "   \n\t  ", " ", ".,;:!?'\"()[]{}", "  ...  "} {
		got := d.Detect(in)
		if got != emptyResult {
			t.Errorf("Detect(%q) = %+v, want %+v", in, got, emptyResult)
		}
	}
}

func TestDetectArabicScriptFamily(t *testing.T) {
	d := NewDetector()
	got := d.Detect("مرحبا، هذا نص عربي")
	if got.Direction != RTL {
		t.Fatalf("Direction = %s, want rtl", got.Direction)
	}
	// Arabic and Persian share most letters.
	if got.Language != Arabic && got.Language != Persian {
		t.Errorf("Language = %s, want arabic or persian", got.Language)
	}
}

func TestDetectDirectionMatchesPercentage(t *testing.T) {
	inputs := []string{
		"abc د",
		"ab دد",
		"a b c d e f g ש ש ש",
		"שלום world",
		"x",
		"ق",
	}
	d := NewDetector()
	for _, in := range inputs {
		got := d.Detect(in)
		if (got.RTLPercentage > 0.3) != (got.Direction == RTL) {
			t.Errorf("Detect(%q): rtlPercentage %.3f with direction %s", in, got.RTLPercentage, got.Direction)
		}
		if got.Confidence < 0 || got.Confidence > 1 {
			t.Errorf("Detect(%q): confidence %.3f out of range", in, got.Confidence)
		}
	}
}

func TestDetectIsIdempotent(t *testing.T) {
	d := NewDetector()
	text := "سلام و خوش آمدید"
	first := d.Detect(text)
	second := d.Detect(text)
	if first != second {
		t.Errorf("second Detect = %+v, want %+v", second, first)
	}
	if d.Len() != 1 {
		t.Errorf("Len() = %d, want 1", d.Len())
	}
}

func TestDetectSharesResultAcrossCommonPrefix(t *testing.T) {
	d := NewDetector()
	prefix := strings.Repeat("a", cacheKeyLength)

	rtl := d.Detect(prefix + strings.Repeat("س", 500))
	if rtl.Direction != RTL {
		t.Fatalf("Direction = %s, want rtl", rtl.Direction)
	}

	// The second text differs only after the key prefix and is served the
	// first text's result.
	got := d.Detect(prefix + strings.Repeat("b", 500))
	if got != rtl {
		t.Errorf("Detect with shared prefix = %+v, want cached %+v", got, rtl)
	}
}

func TestClearCache(t *testing.T) {
	d := NewDetector()
	d.Detect("سلام")
	d.ClearCache()
	if d.Len() != 0 {
		t.Fatalf("Len() after ClearCache = %d, want 0", d.Len())
	}
	if got := d.Detect("سلام"); got.Direction != RTL {
		t.Errorf("Direction = %s, want rtl", got.Direction)
	}
}

func TestCacheEvictsOldestInserted(t *testing.T) {
	d := newDetector(3)
	texts := []string{"one", "two", "three"}
	for _, s := range texts {
		d.Detect(s)
	}

	// A lookup must not refresh "one".
	d.Detect("one")
	d.Detect("four")

	if d.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", d.Len())
	}
	if _, ok := d.cache.get("one"); ok {
		t.Error("oldest entry \"one\" still cached")
	}
	for _, s := range []string{"two", "three", "four"} {
		if _, ok := d.cache.get(s); !ok {
			t.Errorf("entry %q missing", s)
		}
	}
}

func TestCacheEvictionAtDefaultCapacity(t *testing.T) {
	d := NewDetector()
	for i := 0; i <= DefaultCacheSize; i++ {
		d.Detect(fmt.Sprintf("message %d", i))
	}
	if d.Len() != DefaultCacheSize {
		t.Fatalf("Len() = %d, want %d", d.Len(), DefaultCacheSize)
	}
	if _, ok := d.cache.get("message 0"); ok {
		t.Error("first inserted entry still cached")
	}
	if got := d.Detect("message 0"); got.Direction != LTR {
		t.Errorf("Direction after eviction = %s, want ltr", got.Direction)
	}
}

func TestDetectConcurrent(t *testing.T) {
	d := newDetector(16)
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				d.Detect(fmt.Sprintf("שלום %d %d", g, i%40))
			}
		}(g)
	}
	wg.Wait()
	if d.Len() > 16 {
		t.Errorf("Len() = %d exceeds capacity", d.Len())
	}
}

func TestIsRTL(t *testing.T) {
	d := NewDetector()
	tests := []struct {
		text string
		want bool
	}{
		{"این متن فارسی است", true},
		{"This is English", false},
		{"12345", false},
	}
	for _, tt := range tests {
		if got := d.IsRTL(tt.text); got != tt.want {
			t.Errorf("IsRTL(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func TestCSSDirection(t *testing.T) {
	d := NewDetector()
	tests := []struct {
		text string
		want Direction
	}{
		{"متن فارسی", RTL},
		{"English text", LTR},
		{"a b c د", LTR},   // 25% RTL, confidence 0.75
		{"ab دد", Auto},    // 50% RTL, confidence 0.6
		{"abc دد", Auto},   // 40% RTL, confidence 0.5
		{"abcd ee د", LTR}, // 14% RTL, confidence 0.86
	}

	for _, tt := range tests {
		if got := d.CSSDirection(tt.text); got != tt.want {
			t.Errorf("CSSDirection(%q) = %s, want %s", tt.text, got, tt.want)
		}
	}
}

func TestAnalyze(t *testing.T) {
	tests := []struct {
		name string
		text string
		want CharacterStats
	}{
		{"Latin", "Hello, World!", CharacterStats{TotalChars: 10}},
		{"Persian letters", "پچ", CharacterStats{TotalChars: 2, RTLChars: 2, ArabicChars: 2, PersianChars: 2}},
		{"Arabic comma counts", "ب،", CharacterStats{TotalChars: 2, RTLChars: 2, ArabicChars: 2, PersianChars: 1}},
		{"Hebrew", "שלום", CharacterStats{TotalChars: 4, RTLChars: 4, HebrewChars: 4}},
		{"Emoji is one rune", "👋", CharacterStats{TotalChars: 1}},
		{"Symbols count", "@#", CharacterStats{TotalChars: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Analyze(tt.text)
			if got != tt.want {
				t.Errorf("Analyze(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
			if got.RTLChars != got.ArabicChars+got.HebrewChars {
				t.Errorf("RTLChars %d != ArabicChars %d + HebrewChars %d",
					got.RTLChars, got.ArabicChars, got.HebrewChars)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		stats      CharacterStats
		language   ScriptClass
		confidence float64
	}{
		{"empty", CharacterStats{}, Latin, 1},
		{"all Latin", CharacterStats{TotalChars: 10}, Latin, 1},
		{"at threshold", CharacterStats{TotalChars: 10, RTLChars: 3, ArabicChars: 3}, Latin, 0.7},
		{"Persian capped", CharacterStats{TotalChars: 10, RTLChars: 10, ArabicChars: 10, PersianChars: 1}, Persian, 0.9},
		{"Persian boosted", CharacterStats{TotalChars: 10, RTLChars: 5, ArabicChars: 5, PersianChars: 5}, Persian, 0.6},
		{"Hebrew", CharacterStats{TotalChars: 10, RTLChars: 6, ArabicChars: 2, HebrewChars: 4}, Hebrew, 0.7},
		{"tie goes to Arabic", CharacterStats{TotalChars: 4, RTLChars: 4, ArabicChars: 2, HebrewChars: 2}, Arabic, 0.9},
		{"other RTL is not boosted", CharacterStats{TotalChars: 10, RTLChars: 5}, OtherRTL, 0.5},
		{"other RTL is not capped", CharacterStats{TotalChars: 4, RTLChars: 4}, OtherRTL, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.stats)
			if got.Language != tt.language {
				t.Errorf("Language = %s, want %s", got.Language, tt.language)
			}
			if math.Abs(got.Confidence-tt.confidence) > 1e-9 {
				t.Errorf("Confidence = %v, want %v", got.Confidence, tt.confidence)
			}
		})
	}
}

func TestPrefixKey(t *testing.T) {
	short := "سلام"
	if got := prefixKey(short); got != short {
		t.Errorf("prefixKey(%q) = %q", short, got)
	}

	long := strings.Repeat("ש", 150)
	if got := []rune(prefixKey(long)); len(got) != cacheKeyLength {
		t.Errorf("prefixKey of 150 runes has %d runes, want %d", len(got), cacheKeyLength)
	}
}
