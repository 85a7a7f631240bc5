package reconcile

import (
	"strings"
	"testing"
)

func TestMatchEmptyCandidates(t *testing.T) {
	m := NewMatcher([]string{"Croissant"}, false)
	if got := m.Match(nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %v", got)
	}
}

func TestMatchEmptyMenuPassesThrough(t *testing.T) {
	m := NewMatcher(nil, false)
	in := []string{"Croissant", "Mystery Item"}

	got := m.Match(in)
	if len(got) != len(in) {
		t.Fatalf("expected passthrough, got %v", got)
	}
	for i := range in {
		if got[i] != in[i] {
			t.Fatalf("entry %d: expected %q, got %q", i, in[i], got[i])
		}
	}
}

func TestMatchExactNames(t *testing.T) {
	menu := []string{"Croissant", "Blueberry Muffin", "Sourdough Loaf"}
	m := NewMatcher(menu, false)

	got := m.Match([]string{"Blueberry Muffin", "Croissant"})
	if len(got) != 2 || got[0] != "Blueberry Muffin" || got[1] != "Croissant" {
		t.Fatalf("unexpected result %v", got)
	}
}

func TestMatchTokenOrderInsensitive(t *testing.T) {
	m := NewMatcher([]string{"Blueberry Muffin"}, false)

	got := m.Match([]string{"Muffin Blueberry"})
	if len(got) != 1 || got[0] != "Blueberry Muffin" {
		t.Fatalf("expected reordered tokens to match, got %v", got)
	}
}

func TestMatchNeverReusesMenuItem(t *testing.T) {
	m := NewMatcher([]string{"Croissant"}, false)

	got := m.Match([]string{"Croissant", "croissant", "CROISSANT"})
	if len(got) != 1 {
		t.Fatalf("menu item claimed more than once: %v", got)
	}
}

func TestMatchOutputDrawnFromMenu(t *testing.T) {
	menu := []string{"Croissant", "Bagel", "Scone"}
	m := NewMatcher(menu, false)

	got := m.Match([]string{"bagel", "croisant", "scones", "banana bread"})
	if len(got) > len(menu) {
		t.Fatalf("more matches than menu items: %v", got)
	}
	allowed := make(map[string]bool)
	for _, item := range menu {
		allowed[item] = true
	}
	seen := make(map[string]bool)
	for _, name := range got {
		if !allowed[name] {
			t.Fatalf("%q is not a menu item", name)
		}
		if seen[strings.ToLower(name)] {
			t.Fatalf("%q returned twice", name)
		}
		seen[strings.ToLower(name)] = true
	}
}

func TestMatchScoreBoundary(t *testing.T) {
	m := NewMatcher([]string{"just under", "exactly at"}, false)
	m.scorer = func(_, item string) int {
		if item == "just under" {
			return 79
		}
		return 80
	}

	got := m.Match([]string{"anything"})
	if len(got) != 1 || got[0] != "exactly at" {
		t.Fatalf("expected only the score-80 item, got %v", got)
	}
}

func TestMatchSkipsCandidatesCleanedToNothing(t *testing.T) {
	m := NewMatcher([]string{"Bagel"}, true)

	got := m.Match([]string{"cut prep", "cut Bagels"})
	if len(got) != 1 || got[0] != "Bagel" {
		t.Fatalf("expected cleaned match only, got %v", got)
	}
}
