// Package chunkset implements the table-as-chunks container the scan
// orchestrator iterates: a Chunk is a horizontal partition of a table
// whose segments all share row indices, a Table is an ordered list of
// chunks, and AccessCounter is the per-chunk access-frequency tracker
// spec §5 names.
package chunkset

import (
	"columnscan/position"
	"columnscan/segment"
	"columnscan/stats"

	"github.com/google/uuid"
)

// ColumnStorage bundles one column's segment for one chunk with the
// statistic object built over it (if any) and the sort metadata the
// segment carries (if any). The orchestrator consults Statistic before
// deciding whether to scan at all, and OrderedBy before deciding whether
// the sorted accelerator applies.
type ColumnStorage struct {
	Segment   segment.Segment
	Statistic stats.Statistic
	OrderedBy *position.OrderedBy
}

// Chunk is one horizontal partition of a table: a fixed row count and one
// ColumnStorage per column, all sharing the same row indices. Immutable
// once built, like the segments it holds.
type Chunk struct {
	ID       uint32
	UID      uuid.UUID
	Columns  []ColumnStorage
	RowCount int
	Access   *AccessCounter
}

// NewChunk builds a chunk from its per-column storage, assigning it a
// fresh UUID the way the teacher tags slabs/blocks for diagnostic identity.
func NewChunk(id uint32, columns []ColumnStorage, rowCount int) *Chunk {
	return &Chunk{
		ID:       id,
		UID:      uuid.New(),
		Columns:  columns,
		RowCount: rowCount,
		Access:   NewAccessCounter(0),
	}
}

// Column returns the column's storage, or (zero value, false) if columnID
// is out of range for this chunk.
func (c *Chunk) Column(columnID uint32) (ColumnStorage, bool) {
	if int(columnID) >= len(c.Columns) {
		return ColumnStorage{}, false
	}
	return c.Columns[columnID], true
}
