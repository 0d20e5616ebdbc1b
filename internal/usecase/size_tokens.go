package usecase

import (
	"regexp"
	"strings"
)

// Matches pack sizes in product names like "5 kg", "500g", "1.5 ltr", "12 pcs"
var sizeTokenPattern = regexp.MustCompile(`\b\d+(\.\d+)?\s*(kg|kgs|g|gm|gms|grams?|l|ltr|litres?|liters?|ml|pcs|pack|dozen)\b`)

// ExtractSizeTokens returns the distinct, lowercased size tokens found in names,
// in first-seen order. Tokens keep the spacing used in the name so that they match
// the name again as a substring.
func ExtractSizeTokens(names []string) []string {
	seen := make(map[string]struct{})
	tokens := []string{}

	for _, name := range names {
		for _, match := range sizeTokenPattern.FindAllString(strings.ToLower(name), -1) {
			if _, ok := seen[match]; ok {
				continue
			}
			seen[match] = struct{}{}
			tokens = append(tokens, match)
		}
	}

	return tokens
}
