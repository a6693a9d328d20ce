// Package loader reads spreadsheet files into the canonical grid structure.
// Excel workbooks map sheet-per-sheet; CSV files become a single sheet named
// Sheet1. Formula cells carry their formula text, '='-prefixed, as the cell
// value so downstream indexing can recognize them.
package loader
