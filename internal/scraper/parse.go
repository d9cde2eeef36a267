package scraper

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// parseNumber extracts the first number from the text of the first element
// matching the selector. Handles decimal commas and unit suffixes ("250 г",
// "315,5 ккал", "285 ₽").
func parseNumber(root *goquery.Selection, selector string) (float64, error) {
	sel := root.Find(selector).First()
	if sel.Length() == 0 {
		return 0, fmt.Errorf("missing element %s", selector)
	}

	text := strings.TrimSpace(sel.Text())
	text = strings.ReplaceAll(text, ",", ".")

	start := -1
	end := len(text)
	for i, r := range text {
		if r >= '0' && r <= '9' || (start >= 0 && r == '.') {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			end = i
			break
		}
	}
	if start < 0 {
		return 0, fmt.Errorf("no number in %s text %q", selector, text)
	}

	value, err := strconv.ParseFloat(strings.TrimSuffix(text[start:end], "."), 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse %s text %q: %w", selector, text, err)
	}
	return value, nil
}
