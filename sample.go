package gridsense

import "github.com/poiesic/gridsense/core"

// SampleGrid returns a small three-sheet financial model used by demos and
// the load-test-data endpoint. It exercises headers, cross-sheet formulas,
// percentage strings and monetary amounts.
func SampleGrid() core.Grid {
	return core.Grid{
		Name: "financial_model",
		Sheets: []core.Sheet{
			{
				Name: "Revenue Analysis",
				Rows: [][]core.Value{
					row("", "Q1 2024", "Q2 2024", "Q3 2024", "Q4 2024"),
					row("Total Revenue", 150000, 165000, 175000, 190000),
					row("Product A Sales", 90000, 95000, 100000, 110000),
					row("Product B Sales", 60000, 70000, 75000, 80000),
					row("Gross Revenue", "=B2+C2+D2+E2", "", "", ""),
					row("", "", "", "", ""),
					row("Cost of Goods Sold", 75000, 82500, 87500, 95000),
					row("Gross Profit", "=B2-B7", "=C2-C7", "=D2-D7", "=E2-E7"),
					row("Gross Profit Margin", "=B8/B2", "=C8/C2", "=D8/D2", "=E8/E2"),
				},
			},
			{
				Name: "Expenses",
				Rows: [][]core.Value{
					row("", "Q1 2024", "Q2 2024", "Q3 2024", "Q4 2024"),
					row("Marketing Spend", 25000, 27000, 30000, 35000),
					row("Marketing ROI", "=RevAnalysis!B8/B2", "=RevAnalysis!C8/C2", "", ""),
					row("Operating Expenses", 45000, 48000, 52000, 58000),
					row("Total Expenses", "=B2+B4", "=C2+C4", "=D2+D4", "=E2+E4"),
					row("", "", "", "", ""),
					row("Efficiency Ratio", "=RevAnalysis!B2/B4", "", "", ""),
					row("Expense Growth Rate", "", "=C4/B4-1", "=D4/C4-1", "=E4/D4-1"),
				},
			},
			{
				Name: "KPI Dashboard",
				Rows: [][]core.Value{
					row("Key Performance Indicators", "", "", ""),
					row("", "Current", "Target", "Variance"),
					row("Revenue Growth YoY", "15%", "12%", "25%"),
					row("Profit Margin", "45%", "40%", "12.5%"),
					row("Customer Acquisition Cost", "$150", "$200", "-25%"),
					row("Return on Investment", "3.2x", "2.5x", "28%"),
					row("Asset Turnover", "1.8", "1.5", "20%"),
					row("Budget vs Actual Revenue", "102%", "100%", "2%"),
					row("EBITDA Margin", "35%", "30%", "16.7%"),
					row("Working Capital Ratio", "2.1", "2.0", "5%"),
				},
			},
		},
	}
}

// row builds a row of values from literals: strings become text scalars
// (empty strings stay blank), numbers become numeric scalars.
func row(vals ...any) []core.Value {
	out := make([]core.Value, len(vals))
	for i, v := range vals {
		switch x := v.(type) {
		case string:
			if x == "" {
				out[i] = core.EmptyValue()
			} else {
				out[i] = core.TextValue(x)
			}
		case int:
			out[i] = core.NumberValue(float64(x))
		case float64:
			out[i] = core.NumberValue(x)
		default:
			out[i] = core.EmptyValue()
		}
	}
	return out
}
