package concepts

import "strings"

// Heuristic tags attached by structural pattern rules. Several of these
// coincide with catalog concept names on purpose: a formula can earn a tag
// the surrounding text never mentions.
const (
	TagRatioCalculation       = "ratio calculation"
	TagPercentageCalculation  = "percentage calculation"
	TagGrowthMetric           = "growth metric"
	TagProfitabilityMetric    = "profitability metric"
	TagSumCalculation         = "sum calculation"
	TagAggregationFormula     = "aggregation formula"
	TagAverageCalculation     = "average calculation"
	TagConditionalCalculation = "conditional calculation"
	TagLookupFormula          = "lookup formula"
)

// Tagger maps arbitrary text onto concept names using a Catalog.
// It is stateless apart from the catalog and safe for concurrent use.
type Tagger struct {
	catalog *Catalog
}

// NewTagger creates a tagger over the given catalog.
func NewTagger(catalog *Catalog) *Tagger {
	return &Tagger{catalog: catalog}
}

// Catalog returns the tagger's catalog.
func (t *Tagger) Catalog() *Catalog {
	return t.catalog
}

// Identify returns the de-duplicated set of concept names matching the text.
// Order is deterministic: catalog concepts in catalog order, then pattern
// tags, then formula tags. Unmatched text yields an empty slice.
func (t *Tagger) Identify(text string) []string {
	lower := strings.ToLower(text)
	words := WordSet(lower)

	var tags []string
	seen := make(map[string]bool)
	add := func(tag string) {
		if !seen[tag] {
			seen[tag] = true
			tags = append(tags, tag)
		}
	}

	// Direct keyword matching against the catalog.
	for i := range t.catalog.concepts {
		concept := &t.catalog.concepts[i]
		if matchesConcept(words, concept) {
			add(concept.Name)
		}
	}

	// Structural pattern rules, independent of the catalog walk.
	for _, tag := range patternTags(lower, words) {
		add(tag)
	}

	// Formula-function rules apply only to formula text.
	if strings.HasPrefix(text, "=") {
		for _, tag := range formulaTags(lower) {
			add(tag)
		}
	}

	return tags
}

// matchesConcept reports whether any term of the concept has all of its
// words present in the text's word set. Words may appear anywhere, in any
// order; adjacency is not required.
func matchesConcept(words map[string]bool, concept *BusinessConcept) bool {
	for _, term := range concept.Terms() {
		termWords := strings.Fields(strings.ToLower(term))
		if len(termWords) == 0 {
			continue
		}
		all := true
		for _, w := range termWords {
			if !words[w] {
				all = false
				break
			}
		}
		if all {
			return true
		}
	}
	return false
}

func patternTags(lower string, words map[string]bool) []string {
	var tags []string

	// Financial ratio: any slash-separated expression.
	if strings.Contains(lower, "/") {
		tags = append(tags, TagRatioCalculation)
	}

	// Percentage markers.
	if strings.Contains(lower, "%") || words["percent"] || words["ratio"] || words["rate"] {
		tags = append(tags, TagPercentageCalculation)
	}

	// Growth markers.
	if words["yoy"] || words["qoq"] || words["mom"] || words["growth"] || words["increase"] {
		tags = append(tags, TagGrowthMetric)
	}

	// Margin markers.
	if words["margin"] {
		tags = append(tags, TagProfitabilityMetric)
	}

	return tags
}

func formulaTags(lower string) []string {
	var tags []string

	if strings.Contains(lower, "sum(") {
		tags = append(tags, TagSumCalculation, TagAggregationFormula)
	}
	if strings.Contains(lower, "average(") || strings.Contains(lower, "avg(") {
		tags = append(tags, TagAverageCalculation)
	}
	if containsAny(lower, "if(", "sumif(", "countif(", "averageif(") {
		tags = append(tags, TagConditionalCalculation)
	}
	if containsAny(lower, "vlookup(", "hlookup(", "index(", "match(", "xlookup(") {
		tags = append(tags, TagLookupFormula)
	}

	return tags
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

const wordTrimCutset = ".,!?;:'\"-()[]{}"

// Tokenize splits text into lower-cased words with surrounding punctuation
// trimmed. Empty tokens are dropped.
func Tokenize(text string) []string {
	fields := strings.Fields(strings.ToLower(text))
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		if w := strings.Trim(f, wordTrimCutset); w != "" {
			words = append(words, w)
		}
	}
	return words
}

// WordSet returns the set of tokens produced by Tokenize.
func WordSet(text string) map[string]bool {
	words := Tokenize(text)
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[w] = true
	}
	return set
}
