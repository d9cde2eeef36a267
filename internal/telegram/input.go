package telegram

import (
	"fmt"
	"strconv"
	"strings"
)

// parseDecimal accepts both decimal points and the decimal commas Russian
// keyboards produce.
func parseDecimal(text string) (float64, error) {
	text = strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	return strconv.ParseFloat(text, 64)
}

// parseDecimalInRange validates a questionnaire answer against its
// plausibility bounds.
func parseDecimalInRange(text string, min, max float64) (float64, error) {
	v, err := parseDecimal(text)
	if err != nil {
		return 0, err
	}
	if v < min || v > max {
		return 0, fmt.Errorf("value %g outside [%g, %g]", v, min, max)
	}
	return v, nil
}

// parseAge extracts the first run of digits, so answers like "мне 25" work.
func parseAge(text string) (int, error) {
	start := -1
	end := -1
	for i, r := range text {
		if r >= '0' && r <= '9' {
			if start < 0 {
				start = i
			}
			end = i + 1
			continue
		}
		if start >= 0 {
			break
		}
	}
	if start < 0 {
		return 0, fmt.Errorf("no digits in %q", text)
	}

	age, err := strconv.Atoi(text[start:end])
	if err != nil {
		return 0, err
	}
	if age < 5 || age > 120 {
		return 0, fmt.Errorf("age %d outside [5, 120]", age)
	}
	return age, nil
}

// parseExclusions splits a comma-separated product list; the literal answer
// "нет" means no exclusions.
func parseExclusions(text string) []string {
	if strings.EqualFold(strings.TrimSpace(text), "нет") {
		return nil
	}

	var exclusions []string
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			exclusions = append(exclusions, part)
		}
	}
	return exclusions
}
