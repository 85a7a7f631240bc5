package reconcile

import "strings"

// prepVerbs are kitchen instructions that show up next to item names on
// handwritten lists ("cut bagels", "prep H&C") and should never reach the
// scorer.
var prepVerbs = map[string]bool{
	"cut":      true,
	"prep":     true,
	"bake":     true,
	"mix":      true,
	"assemble": true,
	"wrap":     true,
	"box":      true,
	"frost":    true,
	"fill":     true,
	"slice":    true,
	"proof":    true,
	"shape":    true,
	"glaze":    true,
	"ice":      true,
}

// abbreviations maps the bakers' shorthand to the canonical wording used by
// the menu catalog. Keys are matched as whole words, case-insensitively.
var abbreviations = map[string]string{
	"h&c":    "Ham & Cheese",
	"pb":     "Peanut Butter",
	"choc":   "Chocolate",
	"cinn":   "Cinnamon",
	"saus":   "Sausage",
	"veg":    "Veggie",
	"vegg":   "Veggie",
	"sourdo": "Sourdough",
}

// CleanCandidate strips prep verbs and expands shorthand so the scorer sees
// something closer to a menu name. Pure; returns "" when nothing survives.
func CleanCandidate(s string) string {
	var kept []string
	for _, word := range strings.Fields(s) {
		key := strings.ToLower(word)
		if prepVerbs[key] {
			continue
		}
		if full, ok := abbreviations[key]; ok {
			kept = append(kept, full)
			continue
		}
		kept = append(kept, word)
	}
	return strings.Join(kept, " ")
}
