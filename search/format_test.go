package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/poiesic/gridsense/core"
)

func TestDisplayName(t *testing.T) {
	t.Run("header wins", func(t *testing.T) {
		cell := &core.Cell{Sheet: "Data", HeaderContext: "Total Revenue", Concepts: []string{"revenue calculation"}}
		assert.Equal(t, "Total Revenue", displayName(cell))
	})

	t.Run("first tag title-cased", func(t *testing.T) {
		cell := &core.Cell{Sheet: "Data", Concepts: []string{"revenue calculation", "monetary value"}}
		assert.Equal(t, "Revenue Calculation", displayName(cell))
	})

	t.Run("falls back to cell reference", func(t *testing.T) {
		cell := &core.Cell{Sheet: "Data", Row: 4, Col: 1}
		assert.Equal(t, "Cell B5", displayName(cell))
	})
}

func TestBusinessContext(t *testing.T) {
	t.Run("full sentence", func(t *testing.T) {
		cell := &core.Cell{
			Sheet:    "Revenue Analysis",
			Formula:  "=SUM(B2:B4)",
			Concepts: []string{"sum calculation"},
		}
		assert.Equal(t,
			"This is a sum calculation calculated using a formula located in the 'Revenue Analysis' sheet.",
			businessContext(cell))
	})

	t.Run("plain value", func(t *testing.T) {
		cell := &core.Cell{Sheet: "Expenses", Value: core.NumberValue(1200)}
		assert.Equal(t, "located in the 'Expenses' sheet.", businessContext(cell))
	})
}

func TestExplanation(t *testing.T) {
	t.Run("matching tags", func(t *testing.T) {
		cell := &core.Cell{Sheet: "Data", Concepts: []string{"revenue calculation", "growth metric"}}
		got := explanation("revenue trends", cell)
		assert.Equal(t, "Contains revenue calculation", got)
	})

	t.Run("header overlap", func(t *testing.T) {
		cell := &core.Cell{Sheet: "Data", HeaderContext: "Gross Profit"}
		got := explanation("profit levels", cell)
		assert.Equal(t, "Header contains: profit", got)
	})

	t.Run("formula mention", func(t *testing.T) {
		cell := &core.Cell{Sheet: "Data", Formula: "=B2/B3"}
		got := explanation("show formula cells", cell)
		assert.Equal(t, "Contains a formula", got)
	})

	t.Run("sum formula via total", func(t *testing.T) {
		cell := &core.Cell{Sheet: "Data", Formula: "=SUM(B2:B4)"}
		got := explanation("total spend", cell)
		assert.Equal(t, "Contains sum calculation", got)
	})

	t.Run("average formula", func(t *testing.T) {
		cell := &core.Cell{Sheet: "Data", Formula: "=AVERAGE(B2:B4)"}
		got := explanation("average spend", cell)
		assert.Equal(t, "Contains average calculation", got)
	})

	t.Run("sheet overlap", func(t *testing.T) {
		cell := &core.Cell{Sheet: "KPI Dashboard"}
		got := explanation("dashboard metrics", cell)
		assert.Equal(t, "In relevant sheet: dashboard", got)
	})

	t.Run("signals join", func(t *testing.T) {
		cell := &core.Cell{
			Sheet:         "Revenue Analysis",
			HeaderContext: "Total Revenue",
			Formula:       "=SUM(B2:B4)",
			Concepts:      []string{"revenue calculation"},
		}
		got := explanation("total revenue", cell)
		assert.Equal(t,
			"Contains revenue calculation; Header contains: revenue, total; Contains sum calculation; In relevant sheet: revenue",
			got)
	})

	t.Run("semantic fallback", func(t *testing.T) {
		cell := &core.Cell{Sheet: "Data", Value: core.NumberValue(3)}
		assert.Equal(t, "Semantically related to your query", explanation("profitability", cell))
	})
}

func TestFormatResult(t *testing.T) {
	scored := core.ScoredCell{
		Cell: &core.Cell{
			Sheet:         "Revenue Analysis",
			Row:           7,
			Col:           1,
			Value:         core.TextValue("=B8/B2"),
			Formula:       "=B8/B2",
			HeaderContext: "Q1 2024",
			Concepts:      []string{"ratio calculation", "profitability metric"},
		},
		Final: 0.625,
	}

	got := FormatResult("profit margin formulas", scored)
	assert.Equal(t, "Q1 2024", got.ConceptName)
	assert.Equal(t, "'Revenue Analysis'!B8", got.Location)
	assert.Equal(t, "=B8/B2", got.Formula)
	assert.Equal(t, "Contains a formula", got.Explanation)
	assert.InDelta(t, 0.625, got.RelevanceScore, 1e-9)
}

func TestFormatResultOmitsZeroValue(t *testing.T) {
	got := FormatResult("x", core.ScoredCell{Cell: &core.Cell{Sheet: "S", Value: core.NumberValue(0)}})
	assert.Empty(t, got.Value)

	got = FormatResult("x", core.ScoredCell{Cell: &core.Cell{Sheet: "S", Value: core.NumberValue(150000)}})
	assert.Equal(t, "150000", got.Value)
}

func TestFormatResponse(t *testing.T) {
	cells := []core.ScoredCell{
		{Cell: &core.Cell{Sheet: "A", Value: core.NumberValue(1)}, Final: 0.9},
		{Cell: &core.Cell{Sheet: "B", Value: core.NumberValue(2)}, Final: 0.5},
	}
	resp := FormatResponse("numbers", cells)
	assert.Equal(t, "numbers", resp.Query)
	assert.Equal(t, 2, resp.TotalResults)
	assert.Len(t, resp.Results, 2)
}
