package indexing

import (
	"log/slog"
	"strings"

	"github.com/poiesic/gridsense/concepts"
	"github.com/poiesic/gridsense/core"
)

// Tags attached during index-time enrichment, beyond what the tagger derives
// from the cell's context string.
const (
	TagRevenueCalculation = "revenue calculation"
	TagCostCalculation    = "cost calculation"
	TagMonetaryValue      = "monetary value"
	TagPercentageValue    = "percentage value"
)

// monetaryThreshold is the numeric floor above which a value in a financial
// context is tagged as a monetary amount.
const monetaryThreshold = 1000

// Indexer converts raw grids into annotated cell collections.
type Indexer struct {
	tagger *concepts.Tagger
	logger *slog.Logger
}

// IndexerOption configures an Indexer.
type IndexerOption func(*Indexer)

// WithIndexerLogger sets a custom logger.
// Default is slog.Default().
func WithIndexerLogger(logger *slog.Logger) IndexerOption {
	return func(ix *Indexer) {
		if logger == nil {
			logger = slog.Default()
		}
		ix.logger = logger
	}
}

// NewIndexer creates an indexer using the given tagger.
func NewIndexer(tagger *concepts.Tagger, opts ...IndexerOption) (*Indexer, error) {
	if tagger == nil {
		return nil, ErrTaggerRequired
	}
	ix := &Indexer{
		tagger: tagger,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(ix)
	}
	return ix, nil
}

// Index produces one Cell per non-blank scalar position in the grid,
// preserving sheet-declaration, row-major order. Blank scalars are skipped
// entirely; they can hold no business meaning.
func (ix *Indexer) Index(grid core.Grid) []*core.Cell {
	var cells []*core.Cell
	for _, sheet := range grid.Sheets {
		before := len(cells)
		cells = ix.indexSheet(sheet, cells)
		ix.logger.Debug("indexed sheet", "sheet", sheet.Name, "cells", len(cells)-before)
	}
	return cells
}

func (ix *Indexer) indexSheet(sheet core.Sheet, cells []*core.Cell) []*core.Cell {
	if len(sheet.Rows) == 0 {
		return cells
	}

	headers := headerRow(sheet.Rows[0])

	for rowIdx, row := range sheet.Rows {
		for colIdx, value := range row {
			if value.IsBlank() {
				continue
			}

			formula := ""
			if value.IsFormula() {
				formula = value.Text
			}

			header := headers[colIdx]
			cell := &core.Cell{
				Sheet:         sheet.Name,
				Row:           rowIdx,
				Col:           colIdx,
				Value:         value,
				Formula:       formula,
				HeaderContext: header,
			}
			cell.Concepts = ix.identifyCellConcepts(cell)
			cells = append(cells, cell)
		}
	}
	return cells
}

// headerRow derives per-column header context from a sheet's first row.
// Column c has a header iff row0[c] is a non-blank string; header text is
// trimmed.
func headerRow(row0 []core.Value) map[int]string {
	headers := make(map[int]string, len(row0))
	for col, v := range row0 {
		if v.Kind == core.ValueText {
			if h := strings.TrimSpace(v.Text); h != "" {
				headers[col] = h
			}
		}
	}
	return headers
}

// identifyCellConcepts runs the tagger over the cell's context string, then
// unions in formula- and value-specific enrichment tags.
func (ix *Indexer) identifyCellConcepts(cell *core.Cell) []string {
	context := contextString(cell)

	tags := ix.tagger.Identify(context)
	seen := make(map[string]bool, len(tags))
	for _, tag := range tags {
		seen[tag] = true
	}
	add := func(extra []string) {
		for _, tag := range extra {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}

	if cell.Formula != "" {
		add(formulaConcepts(cell.Formula, cell.HeaderContext))
	}
	add(valueConcepts(cell.Value, cell.HeaderContext, strings.ToLower(context)))

	return tags
}

// contextString joins header, stringified value, formula and sheet name.
func contextString(cell *core.Cell) string {
	parts := make([]string, 0, 4)
	if cell.HeaderContext != "" {
		parts = append(parts, cell.HeaderContext)
	}
	parts = append(parts, cell.Value.String())
	if cell.Formula != "" {
		parts = append(parts, cell.Formula)
	}
	parts = append(parts, cell.Sheet)
	return strings.Join(parts, " ")
}

// formulaConcepts applies formula- and header-aware enrichment rules.
func formulaConcepts(formula, header string) []string {
	var tags []string
	formulaLower := strings.ToLower(formula)
	headerLower := strings.ToLower(header)

	// Division under a ratio-flavored header marks a ratio, and a
	// profitability metric when the header names a margin.
	if strings.Contains(formulaLower, "/") || strings.Contains(formulaLower, "divide") {
		if containsAny(headerLower, "margin", "ratio", "rate", "percentage", "%") {
			tags = append(tags, concepts.TagRatioCalculation)
			if strings.Contains(headerLower, "margin") {
				tags = append(tags, concepts.TagProfitabilityMetric)
			}
		}
	}

	if strings.Contains(formulaLower, "sum(") {
		tags = append(tags, concepts.TagAggregationFormula)
		if containsAny(headerLower, "revenue", "sales", "income") {
			tags = append(tags, TagRevenueCalculation)
		} else if containsAny(headerLower, "cost", "expense") {
			tags = append(tags, TagCostCalculation)
		}
	}

	if strings.Contains(formulaLower, "average(") || strings.Contains(formulaLower, "avg(") {
		tags = append(tags, concepts.TagAverageCalculation)
	}

	if containsAny(formulaLower, "if(", "sumif(", "countif(") {
		tags = append(tags, concepts.TagConditionalCalculation)
	}

	if containsAny(formulaLower, "vlookup(", "index(", "match(") {
		tags = append(tags, concepts.TagLookupFormula)
	}

	return tags
}

// valueConcepts applies value-specific enrichment rules against the header
// and the lower-cased context string.
func valueConcepts(value core.Value, header, contextLower string) []string {
	var tags []string
	headerLower := strings.ToLower(header)

	if value.Kind == core.ValueText && strings.Contains(value.Text, "%") {
		tags = append(tags, TagPercentageValue)
		if containsAny(headerLower, "margin", "growth", "rate") {
			tags = append(tags, concepts.TagPercentageCalculation)
		}
	}

	if value.Kind == core.ValueNumber && value.Number > monetaryThreshold {
		if containsAny(contextLower, "revenue", "sales", "income", "profit", "cost", "expense") {
			tags = append(tags, TagMonetaryValue)
		}
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
