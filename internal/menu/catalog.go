package menu

import (
	"encoding/json"
	"log"
	"os"
	"strings"
)

// LoadCatalog resolves the menu catalog from an inline JSON array or a JSON
// file, in that order. Entries are trimmed and empties dropped. A missing or
// unparseable catalog is not fatal: the matcher passes candidates through
// unmatched when the catalog is empty.
func LoadCatalog(itemsJSON, itemsFile string) []string {
	if itemsJSON != "" {
		if items := parseItems([]byte(itemsJSON)); items != nil {
			return items
		}
		log.Printf("MENU_ITEMS is not a valid JSON array, ignoring")
	}

	if itemsFile != "" {
		data, err := os.ReadFile(itemsFile)
		if err != nil {
			log.Printf("cannot read menu file %s: %v", itemsFile, err)
			return nil
		}
		if items := parseItems(data); items != nil {
			return items
		}
		log.Printf("menu file %s is not a valid JSON array, ignoring", itemsFile)
	}

	return nil
}

func parseItems(data []byte) []string {
	var raw []string
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	out := make([]string, 0, len(raw))
	for _, item := range raw {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}
