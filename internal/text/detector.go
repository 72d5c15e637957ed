package text

import (
	"context"
	"log/slog"
	"math"
	"strings"
)

const (
	// DefaultCacheSize is the number of results a Detector remembers
	DefaultCacheSize = 1000
	// cacheKeyLength is the number of leading code points used as cache key
	cacheKeyLength = 100

	rtlThreshold        = 0.3
	cssConfidenceCutoff = 0.7
	confidenceBoost     = 0.1
	confidenceCap       = 0.9
)

// DetectionResult is the outcome of classifying a piece of text
type DetectionResult struct {
	Language      ScriptClass `json:"language"`
	Direction     Direction   `json:"direction"`
	Confidence    float64     `json:"confidence"`
	RTLPercentage float64     `json:"rtlPercentage"`
}

// CharacterStats holds the per-class rune counts of a text.
// RTLChars always equals ArabicChars + HebrewChars.
type CharacterStats struct {
	TotalChars   int
	RTLChars     int
	ArabicChars  int
	PersianChars int
	HebrewChars  int
}

var emptyResult = DetectionResult{
	Language:      Latin,
	Direction:     LTR,
	Confidence:    1,
	RTLPercentage: 0,
}

// Detector classifies text by script and direction. It is safe for
// concurrent use; results are cached by text prefix.
type Detector struct {
	cache *resultCache

	// Logger receives debug records for cache evictions. Nil disables logging.
	Logger *slog.Logger
}

// NewDetector creates a detector with the default cache size
func NewDetector() *Detector {
	return newDetector(DefaultCacheSize)
}

func newDetector(capacity int) *Detector {
	return &Detector{cache: newResultCache(capacity)}
}

// Detect classifies text. Empty and whitespace-only input is LTR with full
// confidence.
//
// Results are cached under the first 100 code points of text, so two long
// texts sharing that prefix share a result.
func (d *Detector) Detect(text string) DetectionResult {
	if strings.TrimFunc(text, isWhitespace) == "" {
		return emptyResult
	}

	key := prefixKey(text)
	if cached, ok := d.cache.get(key); ok {
		return cached
	}

	result := Classify(Analyze(text))

	if evicted, ok := d.cache.put(key, result); ok && d.Logger != nil {
		d.Logger.LogAttrs(context.Background(), slog.LevelDebug, "detection cache eviction",
			slog.Int("evicted_key_len", len(evicted)),
			slog.Int("capacity", d.cache.capacity))
	}

	return result
}

// IsRTL reports whether text is predominantly right-to-left
func (d *Detector) IsRTL(text string) bool {
	return d.Detect(text).Direction == RTL
}

// CSSDirection returns the detected direction when the classifier is
// confident about it, and Auto otherwise.
func (d *Detector) CSSDirection(text string) Direction {
	result := d.Detect(text)
	if result.Confidence > cssConfidenceCutoff {
		return result.Direction
	}
	return Auto
}

// ClearCache drops every cached result
func (d *Detector) ClearCache() {
	d.cache.clear()
}

// Len returns the number of cached results
func (d *Detector) Len() int {
	return d.cache.len()
}

// Analyze counts the significant runes of text by script block.
// White space and a fixed set of ASCII punctuation are not significant.
func Analyze(text string) CharacterStats {
	var stats CharacterStats

	for _, r := range text {
		if isWhitespace(r) || isIgnoredPunct(r) {
			continue
		}

		stats.TotalChars++

		switch {
		case isArabicBlock(r):
			stats.RTLChars++
			stats.ArabicChars++
			if isPersianLetter(r) {
				stats.PersianChars++
			}
		case isHebrewBlock(r):
			stats.RTLChars++
			stats.HebrewChars++
		}
	}

	return stats
}

// Classify derives a detection result from character statistics
func Classify(stats CharacterStats) DetectionResult {
	rtlPercentage := 0.0
	if stats.TotalChars > 0 {
		rtlPercentage = float64(stats.RTLChars) / float64(stats.TotalChars)
	}

	if rtlPercentage <= rtlThreshold {
		return DetectionResult{
			Language:      Latin,
			Direction:     LTR,
			Confidence:    1 - rtlPercentage,
			RTLPercentage: rtlPercentage,
		}
	}

	result := DetectionResult{
		Direction:     RTL,
		Confidence:    math.Min(confidenceCap, rtlPercentage+confidenceBoost),
		RTLPercentage: rtlPercentage,
	}

	switch {
	case stats.PersianChars > 0:
		result.Language = Persian
	case stats.HebrewChars > stats.ArabicChars:
		result.Language = Hebrew
	case stats.ArabicChars > 0:
		result.Language = Arabic
	default:
		// No boost and no cap for an unattributed RTL script.
		result.Language = OtherRTL
		result.Confidence = rtlPercentage
	}

	return result
}

// prefixKey returns the first cacheKeyLength code points of text
func prefixKey(text string) string {
	n := 0
	for i := range text {
		if n == cacheKeyLength {
			return text[:i]
		}
		n++
	}
	return text
}
