package pdf

import "golang.org/x/text/unicode/bidi"

// keepLTRRuns prepares logical RTL text for fpdf's RTL mode, which reverses
// each line rune by rune. Every left-to-right run (Latin letters and European
// digits, with the neutrals between them) is reversed here in advance so that
// it comes out in reading order.
func keepLTRRuns(s string) string {
	runes := []rune(s)
	start, last := -1, -1

	flush := func() {
		if start >= 0 {
			reverseRunes(runes[start : last+1])
		}
		start, last = -1, -1
	}

	for i, r := range runes {
		p, _ := bidi.LookupRune(r)
		switch p.Class() {
		case bidi.L, bidi.EN:
			if start < 0 {
				start = i
			}
			last = i
		case bidi.R, bidi.AL, bidi.AN:
			flush()
		}
	}
	flush()

	return string(runes)
}

func reverseRunes(r []rune) {
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
}
