package search

import (
	"strings"

	"github.com/poiesic/gridsense/concepts"
	"github.com/poiesic/gridsense/core"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

// FormatResult turns a scored cell into its presentation record: address,
// display name, business-context sentence and match explanation.
func FormatResult(query string, scored core.ScoredCell) core.SearchResult {
	cell := scored.Cell
	return core.SearchResult{
		ConceptName:     displayName(cell),
		Location:        cell.Location(),
		Formula:         cell.Formula,
		Value:           displayValue(cell.Value),
		BusinessContext: businessContext(cell),
		Explanation:     explanation(query, cell),
		RelevanceScore:  scored.Final,
	}
}

// FormatResponse builds the full response envelope for a query.
func FormatResponse(query string, scored []core.ScoredCell) *core.SearchResponse {
	results := make([]core.SearchResult, len(scored))
	for i, sc := range scored {
		results[i] = FormatResult(query, sc)
	}
	return &core.SearchResponse{
		Query:        query,
		Results:      results,
		TotalResults: len(results),
	}
}

// displayName picks the human label: header context, else the first tag
// human-cased, else the bare cell reference.
func displayName(cell *core.Cell) string {
	if cell.HeaderContext != "" {
		return cell.HeaderContext
	}
	if len(cell.Concepts) > 0 {
		return titleCaser.String(strings.ReplaceAll(cell.Concepts[0], "_", " "))
	}
	return "Cell " + cell.Ref()
}

// displayValue renders the scalar for presentation; blanks and zero render
// as empty and are omitted from the JSON record.
func displayValue(v core.Value) string {
	if v.Kind == core.ValueNumber && v.Number == 0 {
		return ""
	}
	return v.String()
}

// businessContext builds the one-sentence description of the cell.
func businessContext(cell *core.Cell) string {
	var parts []string
	if len(cell.Concepts) > 0 {
		primary := strings.ReplaceAll(cell.Concepts[0], "_", " ")
		parts = append(parts, "This is a "+primary)
	}
	if cell.Formula != "" {
		parts = append(parts, "calculated using a formula")
	}
	parts = append(parts, "located in the '"+cell.Sheet+"' sheet")
	return strings.Join(parts, " ") + "."
}

// explanation describes why the cell matched the query. When no specific
// signal applies, the match is attributed to semantic similarity alone.
func explanation(query string, cell *core.Cell) string {
	var explanations []string
	queryLower := strings.ToLower(query)
	queryWords := concepts.WordSet(query)

	// Tags with a word in common with the query.
	var matching []string
	for _, tag := range cell.Concepts {
		for _, word := range strings.Fields(strings.ToLower(tag)) {
			if queryWords[word] {
				matching = append(matching, tag)
				break
			}
		}
	}
	if len(matching) > 0 {
		explanations = append(explanations, "Contains "+strings.Join(matching, ", "))
	}

	if cell.HeaderContext != "" {
		if common := commonWords(cell.HeaderContext, query); len(common) > 0 {
			explanations = append(explanations, "Header contains: "+strings.Join(common, ", "))
		}
	}

	if cell.Formula != "" {
		formulaLower := strings.ToLower(cell.Formula)
		switch {
		case containsAny(queryLower, "formula", "calculation", "computed"):
			explanations = append(explanations, "Contains a formula")
		case strings.Contains(queryLower, "average") && strings.Contains(formulaLower, "average"):
			explanations = append(explanations, "Contains average calculation")
		case containsAny(queryLower, "sum", "total") && strings.Contains(formulaLower, "sum"):
			explanations = append(explanations, "Contains sum calculation")
		}
	}

	if common := commonWords(cell.Sheet, query); len(common) > 0 {
		explanations = append(explanations, "In relevant sheet: "+strings.Join(common, ", "))
	}

	if len(explanations) == 0 {
		return "Semantically related to your query"
	}
	return strings.Join(explanations, "; ")
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
