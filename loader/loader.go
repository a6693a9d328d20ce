package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/poiesic/gridsense/core"
)

// SupportedExtensions lists the file extensions the loader accepts,
// lower-case with leading dot.
var SupportedExtensions = []string{".xlsx", ".xls", ".csv"}

// Load reads a spreadsheet file from disk into a grid.
func Load(path string) (core.Grid, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.Grid{}, err
	}
	return LoadBytes(data, filepath.Base(path))
}

// LoadBytes parses spreadsheet bytes into a grid. The filename selects the
// format by extension; unsupported extensions yield ErrUnsupportedFormat.
func LoadBytes(data []byte, filename string) (core.Grid, error) {
	if filename == "" {
		return core.Grid{}, ErrNoFilename
	}
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return loadCSV(data, filename)
	case ".xlsx", ".xls":
		return loadExcel(data, filename)
	default:
		return core.Grid{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filename)
	}
}

// loadCSV parses a CSV file as a single-sheet grid named after the file.
// Ragged rows are accepted as-is.
func loadCSV(data []byte, filename string) (core.Grid, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return core.Grid{}, fmt.Errorf("reading csv %s: %w", filename, err)
	}

	rows := make([][]core.Value, len(records))
	for i, record := range records {
		row := make([]core.Value, len(record))
		for j, field := range record {
			row[j] = parseScalar(field)
		}
		rows[i] = row
	}

	return core.Grid{
		Name:   filename,
		Sheets: []core.Sheet{{Name: "Sheet1", Rows: trimTrailingBlankRows(rows)}},
	}, nil
}

// loadExcel parses a workbook, one grid sheet per workbook sheet in workbook
// order. Formula cells keep their formula text as the cell value, prefixed
// with '='.
func loadExcel(data []byte, filename string) (core.Grid, error) {
	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return core.Grid{}, fmt.Errorf("opening workbook %s: %w", filename, err)
	}
	defer wb.Close()

	grid := core.Grid{Name: filename}
	for _, sheetName := range wb.GetSheetList() {
		records, err := wb.GetRows(sheetName)
		if err != nil {
			return core.Grid{}, fmt.Errorf("reading sheet %s: %w", sheetName, err)
		}

		rows := make([][]core.Value, len(records))
		for rowIdx, record := range records {
			row := make([]core.Value, len(record))
			for colIdx, field := range record {
				axis, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
				if err != nil {
					return core.Grid{}, err
				}
				if formula, err := wb.GetCellFormula(sheetName, axis); err == nil && formula != "" {
					row[colIdx] = core.TextValue("=" + formula)
					continue
				}
				row[colIdx] = parseScalar(field)
			}
			rows[rowIdx] = row
		}

		grid.Sheets = append(grid.Sheets, core.Sheet{
			Name: sheetName,
			Rows: trimTrailingBlankRows(rows),
		})
	}
	return grid, nil
}

// parseScalar converts a raw cell string to a scalar value. Numeric strings
// become numbers; everything else stays text.
func parseScalar(field string) core.Value {
	if field == "" {
		return core.EmptyValue()
	}
	if n, err := strconv.ParseFloat(strings.TrimSpace(field), 64); err == nil {
		return core.NumberValue(n)
	}
	return core.TextValue(field)
}

// trimTrailingBlankRows drops fully blank rows from the tail of a sheet.
func trimTrailingBlankRows(rows [][]core.Value) [][]core.Value {
	for len(rows) > 0 {
		last := rows[len(rows)-1]
		blank := true
		for _, v := range last {
			if !v.IsBlank() {
				blank = false
				break
			}
		}
		if !blank {
			break
		}
		rows = rows[:len(rows)-1]
	}
	return rows
}
