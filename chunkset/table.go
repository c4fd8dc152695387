package chunkset

import "github.com/google/uuid"

// Table is an ordered list of chunks; the orchestrator iterates them in
// this order and concatenates per-chunk scan results in the same order,
// per spec §5's "no implicit global sort" guarantee.
type Table struct {
	UID    uuid.UUID
	Name   string
	Chunks []*Chunk
}

// NewTable builds an empty table ready to receive chunks via AddChunk.
func NewTable(name string) *Table {
	return &Table{UID: uuid.New(), Name: name}
}

// AddChunk appends a chunk, assigning it the next sequential chunk id.
func (t *Table) AddChunk(columns []ColumnStorage, rowCount int) *Chunk {
	c := NewChunk(uint32(len(t.Chunks)), columns, rowCount)
	t.Chunks = append(t.Chunks, c)
	return c
}

// RowCount sums every chunk's row count.
func (t *Table) RowCount() int {
	total := 0
	for _, c := range t.Chunks {
		total += c.RowCount
	}
	return total
}
