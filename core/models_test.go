package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIDFromContent(t *testing.T) {
	a := IDFromContent("some content")
	b := IDFromContent("some content")
	c := IDFromContent("other content")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotZero(t, a)
}

func TestValueIsBlank(t *testing.T) {
	assert.True(t, EmptyValue().IsBlank())
	assert.True(t, TextValue("").IsBlank())
	assert.True(t, TextValue("   \t").IsBlank())
	assert.False(t, TextValue("x").IsBlank())
	assert.False(t, NumberValue(0).IsBlank())
}

func TestValueIsFormula(t *testing.T) {
	assert.True(t, TextValue("=SUM(B2:B4)").IsFormula())
	assert.False(t, TextValue("SUM").IsFormula())
	assert.False(t, NumberValue(1).IsFormula())
	assert.False(t, EmptyValue().IsFormula())
}

func TestValueString(t *testing.T) {
	assert.Equal(t, "150000", NumberValue(150000).String())
	assert.Equal(t, "0.125", NumberValue(0.125).String())
	assert.Equal(t, "15%", TextValue("15%").String())
	assert.Equal(t, "", EmptyValue().String())
}

func TestCellHasConcept(t *testing.T) {
	cell := &Cell{Concepts: []string{"revenue calculation", "monetary value"}}
	assert.True(t, cell.HasConcept("monetary value"))
	assert.False(t, cell.HasConcept("growth metric"))
}

func TestCellRichText(t *testing.T) {
	cell := &Cell{
		Sheet:         "Revenue Analysis",
		Value:         TextValue("=B8/B2"),
		Formula:       "=B8/B2",
		HeaderContext: "Q1 2024",
		Concepts:      []string{"ratio calculation"},
	}
	assert.Equal(t, "Q1 2024 =B8/B2 =B8/B2 ratio calculation Revenue Analysis", cell.RichText())

	bare := &Cell{Sheet: "Data", Value: NumberValue(7)}
	assert.Equal(t, "7 Data", bare.RichText())
}

func TestGridSummarize(t *testing.T) {
	grid := Grid{
		Name: "model",
		Sheets: []Sheet{
			{Name: "A", Rows: [][]Value{
				{TextValue("h"), EmptyValue()},
				{NumberValue(1), TextValue("  ")},
			}},
			{Name: "B", Rows: [][]Value{
				{TextValue("x")},
			}},
		},
	}

	summary := grid.Summarize()
	assert.Equal(t, "model", summary.Name)
	assert.Equal(t, 2, summary.TotalSheets)
	assert.Equal(t, []string{"A", "B"}, summary.SheetNames)
	assert.Equal(t, 3, summary.TotalRows)
	assert.Equal(t, 3, summary.TotalCells)
}
