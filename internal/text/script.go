package text

import (
	"strings"
	"unicode"

	"golang.org/x/text/language"
)

// Direction represents the writing direction of text
type Direction string

const (
	// LTR is left-to-right text (Latin, Cyrillic, CJK, digits)
	LTR Direction = "ltr"
	// RTL is right-to-left text (Arabic, Persian, Hebrew, Urdu)
	RTL Direction = "rtl"
	// Auto leaves the decision to the rendering surface
	Auto Direction = "auto"
)

// String returns the CSS keyword for the direction
func (d Direction) String() string {
	return string(d)
}

// ScriptClass is the most specific script family a text was attributed to
type ScriptClass string

const (
	Persian  ScriptClass = "persian"
	Arabic   ScriptClass = "arabic"
	Hebrew   ScriptClass = "hebrew"
	Urdu     ScriptClass = "urdu"
	OtherRTL ScriptClass = "other-rtl"
	Latin    ScriptClass = "ltr"
)

// String returns the script class label
func (s ScriptClass) String() string {
	return string(s)
}

// IsRTL reports whether the script class is written right-to-left
func (s ScriptClass) IsRTL() bool {
	return s != Latin && s != ""
}

// Tag returns the BCP 47 language tag most commonly associated with the
// script class, or language.Und when there is none.
func (s ScriptClass) Tag() language.Tag {
	switch s {
	case Persian:
		return language.Persian
	case Arabic:
		return language.Arabic
	case Hebrew:
		return language.Hebrew
	case Urdu:
		return language.Urdu
	default:
		return language.Und
	}
}

// persianLetters are the letters counted as evidence of Persian orthography.
// The first four (پ چ ژ گ) only occur in Persian; the rest are shared
// Arabic-script letters that Persian text uses heavily.
const persianLetters = "پچژگکیءآأؤإئابةتثجحخدذرزسشصضطظعغفقلمنهوىي"

// isArabicBlock reports whether r is in the basic Arabic block (U+0600–U+06FF).
func isArabicBlock(r rune) bool {
	return r >= 0x0600 && r <= 0x06FF
}

// isHebrewBlock reports whether r is in the basic Hebrew block (U+0590–U+05FF).
func isHebrewBlock(r rune) bool {
	return r >= 0x0590 && r <= 0x05FF
}

func isPersianLetter(r rune) bool {
	return strings.ContainsRune(persianLetters, r)
}

// isWhitespace matches the Unicode white space set, including the byte order mark.
func isWhitespace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

// isIgnoredPunct reports whether r is one of the ASCII punctuation marks
// that never count towards the character total.
func isIgnoredPunct(r rune) bool {
	switch r {
	case '.', ',', ';', ':', '!', '?', '\'', '"', '(', ')', '[', ']', '{', '}':
		return true
	}
	return false
}
