package concepts

import "strings"

// Concept categories. The set is fixed; every catalog concept belongs to
// exactly one.
const (
	CategoryProfitability     = "profitability"
	CategoryRevenue           = "revenue"
	CategoryCosts             = "costs"
	CategoryEfficiency        = "efficiency"
	CategoryGrowth            = "growth"
	CategoryFinancialAnalysis = "financial_analysis"
	CategoryFormulas          = "formulas"
)

// BusinessConcept is one named business idea in the static catalog.
type BusinessConcept struct {
	Name        string
	Category    string
	Synonyms    []string
	Keywords    []string
	Description string
}

// Terms returns the union of name, synonyms and keywords, in that order.
// Any one of these terms matching a text marks the concept as present.
func (c *BusinessConcept) Terms() []string {
	terms := make([]string, 0, 1+len(c.Synonyms)+len(c.Keywords))
	terms = append(terms, c.Name)
	terms = append(terms, c.Synonyms...)
	terms = append(terms, c.Keywords...)
	return terms
}

// EmbeddingText returns the concatenated text used to build the concept's
// embedding vector: name, synonyms and description.
func (c *BusinessConcept) EmbeddingText() string {
	return c.Name + " " + strings.Join(c.Synonyms, " ") + " " + c.Description
}

// Catalog is the immutable business-concept taxonomy. It is constructed once
// at process start; concept order is fixed and determines tag ordering.
type Catalog struct {
	concepts []BusinessConcept
	byName   map[string]*BusinessConcept
}

// NewCatalog builds the default taxonomy.
func NewCatalog() *Catalog {
	return newCatalog(defaultConcepts())
}

func newCatalog(concepts []BusinessConcept) *Catalog {
	byName := make(map[string]*BusinessConcept, len(concepts))
	for i := range concepts {
		// Names are unique across the whole catalog.
		if _, dup := byName[concepts[i].Name]; dup {
			panic("concepts: duplicate catalog concept " + concepts[i].Name)
		}
		byName[concepts[i].Name] = &concepts[i]
	}
	return &Catalog{concepts: concepts, byName: byName}
}

// Concepts returns all concepts in catalog order. The returned slice must
// not be modified.
func (c *Catalog) Concepts() []BusinessConcept {
	return c.concepts
}

// Len returns the number of concepts in the catalog.
func (c *Catalog) Len() int {
	return len(c.concepts)
}

// Lookup returns the concept with the given canonical name.
func (c *Catalog) Lookup(name string) (*BusinessConcept, bool) {
	concept, ok := c.byName[name]
	return concept, ok
}

// CategoryOf returns the category of a concept, or "unknown" for names not
// in the catalog (heuristic tags such as "ratio calculation").
func (c *Catalog) CategoryOf(name string) string {
	if concept, ok := c.byName[name]; ok {
		return concept.Category
	}
	return "unknown"
}

// Categories returns the distinct categories in catalog order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]bool)
	var categories []string
	for i := range c.concepts {
		if !seen[c.concepts[i].Category] {
			seen[c.concepts[i].Category] = true
			categories = append(categories, c.concepts[i].Category)
		}
	}
	return categories
}

// ConceptsInCategory returns the names of all concepts in a category, in
// catalog order.
func (c *Catalog) ConceptsInCategory(category string) []string {
	var names []string
	for i := range c.concepts {
		if c.concepts[i].Category == category {
			names = append(names, c.concepts[i].Name)
		}
	}
	return names
}

// Related returns the names of concepts sharing a category with the given
// concept, excluding the concept itself.
func (c *Catalog) Related(name string) []string {
	concept, ok := c.byName[name]
	if !ok {
		return nil
	}
	var related []string
	for i := range c.concepts {
		if c.concepts[i].Category == concept.Category && c.concepts[i].Name != name {
			related = append(related, c.concepts[i].Name)
		}
	}
	return related
}

func defaultConcepts() []BusinessConcept {
	return []BusinessConcept{
		{
			Name:        "gross profit margin",
			Category:    CategoryProfitability,
			Synonyms:    []string{"gross margin", "gross profit %", "gross profitability"},
			Keywords:    []string{"gross", "profit", "margin", "revenue", "cogs"},
			Description: "Measures profitability after cost of goods sold",
		},
		{
			Name:        "net profit margin",
			Category:    CategoryProfitability,
			Synonyms:    []string{"net margin", "profit margin", "net profitability"},
			Keywords:    []string{"net", "profit", "margin", "bottom line"},
			Description: "Overall profitability after all expenses",
		},
		{
			Name:        "operating margin",
			Category:    CategoryProfitability,
			Synonyms:    []string{"operating profit margin", "EBIT margin"},
			Keywords:    []string{"operating", "margin", "ebit"},
			Description: "Profitability from core operations",
		},
		{
			Name:        "EBITDA",
			Category:    CategoryProfitability,
			Synonyms:    []string{"earnings before interest tax depreciation amortization"},
			Keywords:    []string{"ebitda", "earnings", "cash flow proxy"},
			Description: "Operating performance measure",
		},
		{
			Name:        "return on investment",
			Category:    CategoryProfitability,
			Synonyms:    []string{"ROI", "return on assets", "ROA"},
			Keywords:    []string{"roi", "return", "investment", "efficiency"},
			Description: "Efficiency of investment returns",
		},
		{
			Name:        "total revenue",
			Category:    CategoryRevenue,
			Synonyms:    []string{"sales", "income", "turnover", "gross sales"},
			Keywords:    []string{"revenue", "sales", "income", "total"},
			Description: "Total income from business operations",
		},
		{
			Name:        "revenue growth",
			Category:    CategoryRevenue,
			Synonyms:    []string{"sales growth", "income growth", "top line growth"},
			Keywords:    []string{"growth", "increase", "yoy", "qoq"},
			Description: "Rate of revenue increase over time",
		},
		{
			Name:        "recurring revenue",
			Category:    CategoryRevenue,
			Synonyms:    []string{"subscription revenue", "monthly recurring revenue", "MRR"},
			Keywords:    []string{"recurring", "subscription", "monthly", "mrr"},
			Description: "Predictable revenue streams",
		},
		{
			Name:        "cost of goods sold",
			Category:    CategoryCosts,
			Synonyms:    []string{"COGS", "direct costs", "variable costs"},
			Keywords:    []string{"cogs", "cost", "goods", "sold", "direct"},
			Description: "Direct costs of producing goods/services",
		},
		{
			Name:        "operating expenses",
			Category:    CategoryCosts,
			Synonyms:    []string{"OPEX", "operational costs", "overhead"},
			Keywords:    []string{"operating", "expenses", "opex", "overhead"},
			Description: "Costs of running business operations",
		},
		{
			Name:        "marketing spend",
			Category:    CategoryCosts,
			Synonyms:    []string{"marketing costs", "advertising expenses", "marketing investment"},
			Keywords:    []string{"marketing", "advertising", "promotion", "spend"},
			Description: "Investment in marketing and advertising",
		},
		{
			Name:        "total expenses",
			Category:    CategoryCosts,
			Synonyms:    []string{"total costs", "all expenses", "combined costs"},
			Keywords:    []string{"total", "expenses", "costs", "all"},
			Description: "Sum of all business expenses",
		},
		{
			Name:        "asset turnover",
			Category:    CategoryEfficiency,
			Synonyms:    []string{"asset efficiency", "asset utilization"},
			Keywords:    []string{"asset", "turnover", "efficiency", "utilization"},
			Description: "How efficiently assets generate revenue",
		},
		{
			Name:        "inventory turnover",
			Category:    CategoryEfficiency,
			Synonyms:    []string{"inventory efficiency", "stock turnover"},
			Keywords:    []string{"inventory", "turnover", "stock", "efficiency"},
			Description: "How quickly inventory is sold",
		},
		{
			Name:        "working capital ratio",
			Category:    CategoryEfficiency,
			Synonyms:    []string{"current ratio", "liquidity ratio"},
			Keywords:    []string{"working", "capital", "ratio", "liquidity"},
			Description: "Short-term financial health measure",
		},
		{
			Name:        "productivity ratio",
			Category:    CategoryEfficiency,
			Synonyms:    []string{"productivity measure", "efficiency ratio"},
			Keywords:    []string{"productivity", "efficiency", "output", "input"},
			Description: "Output relative to input measure",
		},
		{
			Name:        "year over year growth",
			Category:    CategoryGrowth,
			Synonyms:    []string{"YoY growth", "annual growth", "yearly growth"},
			Keywords:    []string{"yoy", "year", "annual", "growth"},
			Description: "Growth compared to same period previous year",
		},
		{
			Name:        "quarter over quarter growth",
			Category:    CategoryGrowth,
			Synonyms:    []string{"QoQ growth", "quarterly growth"},
			Keywords:    []string{"qoq", "quarter", "quarterly", "growth"},
			Description: "Growth compared to previous quarter",
		},
		{
			Name:        "compound annual growth rate",
			Category:    CategoryGrowth,
			Synonyms:    []string{"CAGR", "compound growth"},
			Keywords:    []string{"cagr", "compound", "annual", "growth"},
			Description: "Average annual growth rate over multiple years",
		},
		{
			Name:        "month over month growth",
			Category:    CategoryGrowth,
			Synonyms:    []string{"MoM growth", "monthly growth"},
			Keywords:    []string{"mom", "month", "monthly", "growth"},
			Description: "Growth compared to previous month",
		},
		{
			Name:        "budget vs actual",
			Category:    CategoryFinancialAnalysis,
			Synonyms:    []string{"budget variance", "actual vs budget", "variance analysis"},
			Keywords:    []string{"budget", "actual", "variance", "vs", "against"},
			Description: "Comparison of planned vs actual performance",
		},
		{
			Name:        "forecast analysis",
			Category:    CategoryFinancialAnalysis,
			Synonyms:    []string{"projection", "prediction", "forecast"},
			Keywords:    []string{"forecast", "projection", "prediction", "future"},
			Description: "Future performance predictions",
		},
		{
			Name:        "trend analysis",
			Category:    CategoryFinancialAnalysis,
			Synonyms:    []string{"time series", "historical analysis"},
			Keywords:    []string{"trend", "time", "series", "historical"},
			Description: "Analysis of patterns over time",
		},
		{
			Name:        "percentage calculation",
			Category:    CategoryFormulas,
			Synonyms:    []string{"percent formula", "ratio as percentage"},
			Keywords:    []string{"percentage", "percent", "%", "ratio"},
			Description: "Calculations expressed as percentages",
		},
		{
			Name:        "average calculation",
			Category:    CategoryFormulas,
			Synonyms:    []string{"mean", "avg", "average formula"},
			Keywords:    []string{"average", "mean", "avg"},
			Description: "Average or mean calculations",
		},
		{
			Name:        "sum calculation",
			Category:    CategoryFormulas,
			Synonyms:    []string{"total", "sum formula", "addition"},
			Keywords:    []string{"sum", "total", "add", "addition"},
			Description: "Sum or total calculations",
		},
		{
			Name:        "conditional calculation",
			Category:    CategoryFormulas,
			Synonyms:    []string{"if formula", "conditional logic"},
			Keywords:    []string{"if", "conditional", "logic", "condition"},
			Description: "Calculations with conditional logic",
		},
		{
			Name:        "lookup formula",
			Category:    CategoryFormulas,
			Synonyms:    []string{"vlookup", "index match", "lookup"},
			Keywords:    []string{"vlookup", "lookup", "index", "match"},
			Description: "Data lookup and retrieval formulas",
		},
	}
}
