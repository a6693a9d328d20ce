package search

import (
	"sort"
	"strings"
)

// splitWords lower-cases and splits on whitespace, without punctuation
// trimming. Header/sheet word-overlap scoring uses this plain form.
func splitWords(text string) []string {
	return strings.Fields(strings.ToLower(text))
}

func toSet(words []string) map[string]bool {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}

// commonWords returns the sorted intersection of the word sets of a and b.
func commonWords(a, b string) []string {
	aSet := toSet(splitWords(a))
	var common []string
	seen := make(map[string]bool)
	for _, w := range splitWords(b) {
		if aSet[w] && !seen[w] {
			seen[w] = true
			common = append(common, w)
		}
	}
	sort.Strings(common)
	return common
}
