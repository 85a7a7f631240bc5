package reconcile

import "strings"

// maxOCRBytes bounds how much OCR text the extractor will look at. Vision
// models occasionally return runaway output; everything past the cap is noise.
const maxOCRBytes = 64 * 1024

var bulletReplacer = strings.NewReplacer("•", " ", "·", " ", "—", " ")

// Normalize trims a line, swaps bullet punctuation for spaces and collapses
// whitespace runs to a single space.
func Normalize(s string) string {
	s = bulletReplacer.Replace(strings.TrimSpace(s))
	return strings.Join(strings.Fields(s), " ")
}
