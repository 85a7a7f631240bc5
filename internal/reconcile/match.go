package reconcile

import (
	"strings"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"
)

// acceptScore is the minimum token-set similarity for a candidate to claim a
// menu item. 79 is a miss, 80 is a match.
const acceptScore = 80

// Matcher resolves OCR candidates to canonical menu names.
type Matcher struct {
	menu   []string
	clean  bool
	scorer func(a, b string) int
}

// NewMatcher builds a Matcher over the given catalog. cleanCandidates turns
// the prep-verb/abbreviation pre-filter on; scoring uses token-set ratio,
// which ignores token order and tolerates subset phrasing.
func NewMatcher(menu []string, cleanCandidates bool) *Matcher {
	return &Matcher{
		menu:   menu,
		clean:  cleanCandidates,
		scorer: func(a, b string) int { return fuzzy.TokenSetRatio(a, b) },
	}
}

// Match resolves candidates in input order. Each menu item can be claimed at
// most once per run; later candidates that resolve to a claimed item are
// dropped. With an empty catalog every candidate passes through unchanged.
func (m *Matcher) Match(candidates []string) []string {
	if len(candidates) == 0 {
		return nil
	}
	if len(m.menu) == 0 {
		out := make([]string, len(candidates))
		copy(out, candidates)
		return out
	}

	var matched []string
	used := make(map[string]bool)

	for _, c := range candidates {
		if m.clean {
			c = CleanCandidate(c)
		}
		if len(c) < 2 {
			continue
		}

		name, score := m.bestMatch(c)
		if score < acceptScore {
			continue
		}

		key := strings.ToLower(name)
		if used[key] {
			continue
		}
		used[key] = true
		matched = append(matched, name)
	}
	return matched
}

func (m *Matcher) bestMatch(candidate string) (string, int) {
	best, bestScore := "", -1
	for _, item := range m.menu {
		if score := m.scorer(candidate, item); score > bestScore {
			best, bestScore = item, score
		}
	}
	return best, bestScore
}
