package ai

import (
	"fmt"
	"strconv"
	"strings"

	"jnovak/budget-categorizer/internal/models"
)

// ParseResponse extracts the category and confidence from a model response.
// The expected shape is four "Key: value" lines; anything around them
// (markdown fences, chatter) is tolerated, but all three tiers must be
// present for the response to count. A missing confidence parses as 0, which
// the threshold gate then rejects.
func ParseResponse(response string) (models.Category, int, error) {
	var category models.Category
	confidence := 0

	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(strings.Trim(strings.TrimSpace(line), "`*"))
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		value = strings.TrimSpace(value)

		switch strings.ToLower(strings.TrimSpace(key)) {
		case "tier1":
			category.Tier1 = value
		case "tier2":
			category.Tier2 = value
		case "tier3":
			category.Tier3 = value
		case "confidence":
			value = strings.TrimSuffix(value, "%")
			if n, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
				confidence = n
			}
		}
	}

	if category.Tier1 == "" || category.Tier2 == "" || category.Tier3 == "" {
		return models.Category{}, 0, fmt.Errorf("unparseable classification response: %q", truncate(response, 200))
	}

	if confidence < 0 {
		confidence = 0
	}
	if confidence > 100 {
		confidence = 100
	}

	return category, confidence, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
