package catalog

import "strings"

// Filter returns the items whose names match none of the exclusion
// substrings (case-insensitive). It is applied once per planning session,
// before day 1; an empty exclusion list returns the input unchanged.
func Filter(items []Item, exclusions []string) []Item {
	patterns := make([]string, 0, len(exclusions))
	for _, e := range exclusions {
		e = strings.TrimSpace(e)
		if e != "" {
			patterns = append(patterns, strings.ToLower(e))
		}
	}
	if len(patterns) == 0 {
		return items
	}

	filtered := make([]Item, 0, len(items))
	for _, item := range items {
		name := strings.ToLower(item.Name)
		excluded := false
		for _, p := range patterns {
			if strings.Contains(name, p) {
				excluded = true
				break
			}
		}
		if !excluded {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
