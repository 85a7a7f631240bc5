package mail

import "strings"

// bakeKeywords is the fallback subject gate used when no trigger or passcode
// is configured: any baking-related subject is accepted.
var bakeKeywords = []string{"BAKE", "BAKING", "OVEN", "PASTRY"}

// SenderAllowed checks the From header against the allow-list by substring,
// case-insensitively. An empty allow-list accepts everyone.
func SenderAllowed(fromHeader string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	from := strings.ToLower(fromHeader)
	for _, a := range allowed {
		if a != "" && strings.Contains(from, strings.ToLower(a)) {
			return true
		}
	}
	return false
}

// SubjectMatches gates on the configured trigger and passcode substrings,
// case-insensitively. With neither configured it falls back to the fixed
// baking-keyword list.
func SubjectMatches(subject, trigger, passcode string) bool {
	normalized := strings.ToUpper(subject)

	if trigger == "" && passcode == "" {
		for _, kw := range bakeKeywords {
			if strings.Contains(normalized, kw) {
				return true
			}
		}
		return false
	}

	if trigger != "" && !strings.Contains(normalized, strings.ToUpper(trigger)) {
		return false
	}
	if passcode != "" && !strings.Contains(normalized, strings.ToUpper(passcode)) {
		return false
	}
	return true
}
