package core

import (
	"encoding/binary"
	"strconv"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// ValueKind discriminates the scalar variants a grid cell can hold.
type ValueKind int

const (
	// ValueEmpty represents a blank cell (null or empty string in the source).
	ValueEmpty ValueKind = iota
	// ValueNumber represents a numeric cell.
	ValueNumber
	// ValueText represents a text cell, possibly formula text starting with "=".
	ValueText
)

// Value is the tagged scalar variant for raw grid cells.
// Exactly one of Number or Text is meaningful, selected by Kind.
type Value struct {
	Kind   ValueKind
	Number float64
	Text   string
}

// EmptyValue returns the blank scalar.
func EmptyValue() Value {
	return Value{Kind: ValueEmpty}
}

// NumberValue wraps a float64 as a grid scalar.
func NumberValue(n float64) Value {
	return Value{Kind: ValueNumber, Number: n}
}

// TextValue wraps a string as a grid scalar.
func TextValue(s string) Value {
	return Value{Kind: ValueText, Text: s}
}

// IsBlank reports whether the value holds no business meaning:
// the empty variant, or text that is empty after trimming whitespace.
func (v Value) IsBlank() bool {
	switch v.Kind {
	case ValueEmpty:
		return true
	case ValueText:
		return strings.TrimSpace(v.Text) == ""
	default:
		return false
	}
}

// IsFormula reports whether the value is formula text (starts with "=").
func (v Value) IsFormula() bool {
	return v.Kind == ValueText && strings.HasPrefix(v.Text, "=")
}

// String returns the canonical textual form used for tagging and embeddings.
func (v Value) String() string {
	switch v.Kind {
	case ValueNumber:
		return strconv.FormatFloat(v.Number, 'f', -1, 64)
	case ValueText:
		return v.Text
	default:
		return ""
	}
}

// Sheet is one named sheet of raw scalar rows. Rows may be ragged.
type Sheet struct {
	Name string
	Rows [][]Value
}

// Grid is the canonical input structure handed over by a grid loader.
// Sheets are ordered; that order is preserved through indexing.
type Grid struct {
	Name   string
	Sheets []Sheet
}

// Cell is one non-blank (sheet,row,col) scalar annotated with context and
// concept tags during indexing. Cells are immutable once indexed and are
// replaced wholesale on the next data load.
type Cell struct {
	Sheet         string
	Row           int // zero-based
	Col           int // zero-based
	Value         Value
	Formula       string   // non-empty only if Value is formula text
	HeaderContext string   // header of Col from the sheet's first row, if any
	Concepts      []string // de-duplicated tags, first-occurrence order
	Embedding     []float32
}

// Ref returns the spreadsheet-style reference within the sheet, e.g. "A1".
func (c *Cell) Ref() string {
	return CellRef(c.Row, c.Col)
}

// Location returns the fully qualified location, e.g. "'Revenue'!B3".
func (c *Cell) Location() string {
	return "'" + c.Sheet + "'!" + c.Ref()
}

// HasConcept reports whether the cell carries the given tag.
func (c *Cell) HasConcept(name string) bool {
	for _, tag := range c.Concepts {
		if tag == name {
			return true
		}
	}
	return false
}

// RichText returns the concatenated text representation used to compute the
// cell's embedding: header, value, formula, tags and sheet name.
func (c *Cell) RichText() string {
	parts := make([]string, 0, 4+len(c.Concepts))
	if c.HeaderContext != "" {
		parts = append(parts, c.HeaderContext)
	}
	parts = append(parts, c.Value.String())
	if c.Formula != "" {
		parts = append(parts, c.Formula)
	}
	parts = append(parts, c.Concepts...)
	parts = append(parts, c.Sheet)
	return strings.Join(parts, " ")
}

// ScoredCell is an ephemeral per-query scoring record.
// All sub-scores lie in [0,1] except Semantic, which may be negative
// (raw cosine similarity) and simply lowers the fused score.
type ScoredCell struct {
	Cell     *Cell
	Semantic float64
	Concept  float64
	Context  float64
	Final    float64
}

// SearchResult is the presentation record for one matched cell.
type SearchResult struct {
	ConceptName     string  `json:"concept_name"`
	Location        string  `json:"location"`
	Formula         string  `json:"formula,omitempty"`
	Value           string  `json:"value,omitempty"`
	BusinessContext string  `json:"business_context"`
	Explanation     string  `json:"explanation"`
	RelevanceScore  float64 `json:"relevance_score"`
}

// SearchResponse is the full response envelope for a query.
type SearchResponse struct {
	Query        string         `json:"query"`
	Results      []SearchResult `json:"results"`
	TotalResults int            `json:"total_results"`
}

// GridSummary describes a loaded grid for reporting purposes. Summarize
// leaves LoadedAt zero; the load boundary stamps it from the published
// snapshot.
type GridSummary struct {
	Name        string    `json:"name"`
	TotalSheets int       `json:"total_sheets"`
	SheetNames  []string  `json:"sheet_names"`
	TotalRows   int       `json:"total_rows"`
	TotalCells  int       `json:"total_cells"`
	LoadedAt    time.Time `json:"loaded_at,omitzero"`
}

// Summarize computes summary statistics for a grid. TotalCells counts
// non-blank scalar positions, matching what the indexer will emit.
func (g Grid) Summarize() GridSummary {
	summary := GridSummary{Name: g.Name}
	for _, sheet := range g.Sheets {
		summary.SheetNames = append(summary.SheetNames, sheet.Name)
		summary.TotalRows += len(sheet.Rows)
		for _, row := range sheet.Rows {
			for _, v := range row {
				if !v.IsBlank() {
					summary.TotalCells++
				}
			}
		}
	}
	summary.TotalSheets = len(g.Sheets)
	return summary
}
