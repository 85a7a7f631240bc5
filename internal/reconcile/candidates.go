package reconcile

import "strings"

func splitFragments(line string) []string {
	var parts []string
	for _, p := range strings.FieldsFunc(line, func(r rune) bool {
		return r == ',' || r == '|' || r == '/'
	}) {
		p = strings.TrimSpace(p)
		if p != "" {
			parts = append(parts, p)
		}
	}
	return parts
}

// ExtractCandidates turns raw OCR output into an ordered, deduplicated list
// of candidate fragments. Lines are normalized and dropped when shorter than
// two characters, then split on commas, pipes and slashes. Duplicates are
// removed case-insensitively, keeping first-seen order.
func ExtractCandidates(ocrText string) []string {
	if len(ocrText) > maxOCRBytes {
		ocrText = ocrText[:maxOCRBytes]
	}

	var fragments []string
	for _, line := range strings.Split(ocrText, "\n") {
		line = Normalize(line)
		if len(line) < 2 {
			continue
		}
		fragments = append(fragments, splitFragments(line)...)
	}

	seen := make(map[string]bool, len(fragments))
	var out []string
	for _, f := range fragments {
		key := strings.ToLower(f)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, f)
	}
	return out
}
