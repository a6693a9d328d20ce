package core

import (
	"fmt"
	"strconv"
)

// ColumnLabel converts a zero-based column index to its spreadsheet letter
// encoding: 0 -> "A", 25 -> "Z", 26 -> "AA", 701 -> "ZZ", 702 -> "AAA".
// This is bijective base-26 over the letters A-Z, with no zero digit.
func ColumnLabel(col int) string {
	// 64 columns of letters is far beyond any real sheet width.
	buf := make([]byte, 0, 4)
	n := col + 1
	for n > 0 {
		n--
		buf = append(buf, byte('A'+n%26))
		n /= 26
	}
	// Reverse: digits were produced least significant first.
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}

// ColumnIndex converts a spreadsheet column label back to its zero-based
// index. It is the inverse of ColumnLabel.
func ColumnIndex(label string) (int, error) {
	if label == "" {
		return 0, fmt.Errorf("%w: empty column label", ErrInvalidCellRef)
	}
	n := 0
	for i := 0; i < len(label); i++ {
		ch := label[i]
		if ch < 'A' || ch > 'Z' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidCellRef, label)
		}
		n = n*26 + int(ch-'A') + 1
	}
	return n - 1, nil
}

// CellRef encodes zero-based (row, col) coordinates as a spreadsheet
// reference, e.g. (0,0) -> "A1", (4,27) -> "AB5".
func CellRef(row, col int) string {
	return ColumnLabel(col) + strconv.Itoa(row+1)
}
