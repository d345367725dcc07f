// Package text provides utilities for text processing used across the pipeline.
// This package includes rune-aware counting and truncation and the XML 1.0
// control-character filter applied before anything is written to the output feed.
package text

// CountRunes counts the number of Unicode characters (runes) in the given text.
// This function correctly handles multi-byte characters including Japanese, Chinese,
// emoji, and other Unicode characters by counting runes instead of bytes.
//
// Examples:
//
//	CountRunes("hello")     // returns 5 (ASCII text)
//	CountRunes("こんにちは")  // returns 5 (Japanese text)
//	CountRunes("")          // returns 0 (empty string)
func CountRunes(text string) int {
	return len([]rune(text))
}

// TruncateRunes returns the first limit runes of text.
// Text that already fits is returned unchanged; a non-positive limit yields "".
//
// Examples:
//
//	TruncateRunes("Medical Image Analysis", 15) // "Medical Image A"
//	TruncateRunes("NeuroImage", 15)             // "NeuroImage"
func TruncateRunes(text string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit])
}
