package text

import (
	"regexp"
)

// rtlCharPattern matches a single rune from the Arabic and Hebrew blocks:
//   - Arabic: U+0600–U+06FF
//   - Arabic Supplement: U+0750–U+077F
//   - Arabic Extended-A: U+08A0–U+08FF
//   - Arabic Presentation Forms-A: U+FB50–U+FDFF
//   - Arabic Presentation Forms-B: U+FE70–U+FEFF
//   - Hebrew: U+0590–U+05FF
//   - Hebrew Presentation Forms: U+FB1D–U+FB4F
var rtlCharPattern = regexp.MustCompile(`[\x{0600}-\x{06FF}\x{0750}-\x{077F}\x{08A0}-\x{08FF}\x{FB50}-\x{FDFF}\x{FE70}-\x{FEFF}\x{0590}-\x{05FF}\x{FB1D}-\x{FB4F}]`)

// IsRTLText reports whether more than 30% of the non-whitespace runes of
// text come from an RTL block. It is the regex-only counterpart of
// Detector.IsRTL and needs no cache.
func IsRTLText(text string) bool {
	if text == "" {
		return false
	}

	rtlChars := len(rtlCharPattern.FindAllStringIndex(text, -1))

	totalChars := 0
	for _, r := range text {
		if !isWhitespace(r) {
			totalChars++
		}
	}

	return totalChars > 0 && float64(rtlChars)/float64(totalChars) > rtlThreshold
}

// TextDirection returns the dominant direction of text using IsRTLText
func TextDirection(text string) Direction {
	if IsRTLText(text) {
		return RTL
	}
	return LTR
}
