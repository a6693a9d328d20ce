package concepts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTagger(t *testing.T) *Tagger {
	t.Helper()
	return NewTagger(NewCatalog())
}

func TestIdentifyEmpty(t *testing.T) {
	tagger := newTagger(t)
	assert.Empty(t, tagger.Identify(""))
	assert.Empty(t, tagger.Identify("   "))
	assert.Empty(t, tagger.Identify("zebra xylophone"))
}

func TestIdentifyKeywordMatch(t *testing.T) {
	tagger := newTagger(t)

	tags := tagger.Identify("Total Revenue")
	assert.Contains(t, tags, "total revenue")
	assert.Contains(t, tags, "sum calculation") // keyword "total"

	tags = tagger.Identify("Gross Profit Margin")
	assert.Contains(t, tags, "gross profit margin")
	assert.Contains(t, tags, TagProfitabilityMetric)
}

func TestIdentifyMultiWordTerm(t *testing.T) {
	tagger := newTagger(t)

	// Term words may appear in any order, anywhere in the text.
	tags := tagger.Identify("goods cost analysis of sold units")
	assert.Contains(t, tags, "cost of goods sold")
}

func TestIdentifyPatternRules(t *testing.T) {
	tagger := newTagger(t)

	t.Run("percentage marker", func(t *testing.T) {
		assert.Equal(t, []string{TagPercentageCalculation}, tagger.Identify("15%"))
	})

	t.Run("growth markers", func(t *testing.T) {
		tags := tagger.Identify("Revenue Growth YoY")
		assert.Contains(t, tags, "revenue growth")
		assert.Contains(t, tags, "year over year growth")
		assert.Contains(t, tags, TagGrowthMetric)
	})

	t.Run("slash ratio", func(t *testing.T) {
		tags := tagger.Identify("=B8/B2")
		assert.Equal(t, []string{TagRatioCalculation}, tags)
	})
}

func TestIdentifyFormulaRules(t *testing.T) {
	tagger := newTagger(t)

	t.Run("sum", func(t *testing.T) {
		tags := tagger.Identify("=SUM(B2:B4)")
		assert.Equal(t, []string{TagSumCalculation, TagAggregationFormula}, tags)
	})

	t.Run("average", func(t *testing.T) {
		tags := tagger.Identify("=AVERAGE(B2:B4)")
		assert.Contains(t, tags, TagAverageCalculation)
	})

	t.Run("conditional", func(t *testing.T) {
		tags := tagger.Identify("=SUMIF(A:A,\">0\",B:B)")
		assert.Contains(t, tags, TagConditionalCalculation)
	})

	t.Run("lookup", func(t *testing.T) {
		tags := tagger.Identify("=VLOOKUP(A2,Data!A:B,2,FALSE)")
		assert.Contains(t, tags, TagLookupFormula)
	})

	t.Run("function rules require formula text", func(t *testing.T) {
		// Same function name outside a formula stays untagged.
		assert.Empty(t, tagger.Identify("sum(a,b) notes"))
	})
}

func TestIdentifyDeduplicates(t *testing.T) {
	tagger := newTagger(t)

	tags := tagger.Identify("percentage percent % ratio rate percentage")
	seen := make(map[string]bool)
	for _, tag := range tags {
		require.False(t, seen[tag], "duplicate tag %q", tag)
		seen[tag] = true
	}
	assert.Contains(t, tags, "percentage calculation")
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"gross", "profit", "margin"}, Tokenize("Gross Profit, Margin!"))
	assert.Equal(t, []string{"q1", "2024"}, Tokenize("  Q1   2024 "))
	assert.Empty(t, Tokenize(""))
	assert.Empty(t, Tokenize("... --- !!!"))
}

func TestWordSet(t *testing.T) {
	set := WordSet("Total Revenue revenue")
	assert.True(t, set["total"])
	assert.True(t, set["revenue"])
	assert.False(t, set["profit"])
	assert.Len(t, set, 2)
}
