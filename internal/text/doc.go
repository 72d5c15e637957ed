// Package text classifies text by writing direction and script family.
//
// # Detection
//
// The [Detector] counts significant runes (white space and ASCII punctuation
// excluded) that fall in the basic Arabic (U+0600–U+06FF) and Hebrew
// (U+0590–U+05FF) blocks:
//
//	d := text.NewDetector()
//	res := d.Detect("سلام، این یک متن فارسی است")
//	// res.Language == text.Persian, res.Direction == text.RTL
//
// Text is RTL when more than 30% of its significant runes are RTL. The
// script family is Persian when any Persian letter was seen, Hebrew when
// Hebrew outweighs Arabic, and Arabic otherwise. Urdu shares the Arabic
// block and is never produced by the heuristic.
//
// # Caching
//
// Each Detector owns a bounded cache keyed by the first 100 code points of
// the input. Eviction is first-in first-out.
//
// # Regex path
//
// [IsRTLText] and [TextDirection] answer the same binary question with a
// wider set of RTL blocks (supplements and presentation forms) and no cache.
package text
