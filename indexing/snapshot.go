package indexing

import (
	"strconv"
	"time"

	"github.com/poiesic/gridsense/core"
)

// Snapshot is an immutable, fully built view of one loaded grid: every
// indexed cell with its tags and embedding. Searches run against a snapshot
// without locking; a reload publishes a brand-new snapshot and never touches
// an old one.
type Snapshot struct {
	ID       core.ID
	Name     string
	Sheets   []string
	Cells    []*core.Cell
	LoadedAt time.Time
}

// NewSnapshot builds a snapshot for a fully indexed and embedded cell set.
// The sequence number distinguishes successive loads of identical data.
func NewSnapshot(grid core.Grid, cells []*core.Cell, seq uint64) *Snapshot {
	sheets := make([]string, len(grid.Sheets))
	for i, sheet := range grid.Sheets {
		sheets[i] = sheet.Name
	}
	fingerprint := grid.Name
	for _, name := range sheets {
		fingerprint += "|" + name
	}
	fingerprint += "|" + strconv.Itoa(len(cells)) + "|" + strconv.FormatUint(seq, 10)

	return &Snapshot{
		ID:       core.IDFromContent(fingerprint),
		Name:     grid.Name,
		Sheets:   sheets,
		Cells:    cells,
		LoadedAt: time.Now().UTC(),
	}
}

// CellCount returns the number of indexed cells.
func (s *Snapshot) CellCount() int {
	if s == nil {
		return 0
	}
	return len(s.Cells)
}

// Empty reports whether the snapshot holds no cells. A nil snapshot is empty.
func (s *Snapshot) Empty() bool {
	return s.CellCount() == 0
}
