package position

// List is an ordered sequence of positions: the output of a scan and the
// input to downstream operators. It optionally carries the sort-metadata
// tag propagated from the segment it was produced from.
type List struct {
	Positions []Position
	OrderedBy *OrderedBy
}

// NewList preallocates a list with the given capacity hint.
func NewList(capacityHint int) *List {
	return &List{Positions: make([]Position, 0, capacityHint)}
}

func (l *List) Append(p Position) {
	l.Positions = append(l.Positions, p)
}

// AppendRange appends the contiguous offsets [first, last) of chunkID, in
// ascending order. Used by the sorted-scan accelerator, which produces a
// contiguous matching range directly instead of testing each offset.
func (l *List) AppendRange(chunkID uint32, first, last uint32) {
	for o := first; o < last; o++ {
		l.Positions = append(l.Positions, Position{ChunkID: chunkID, Offset: o})
	}
}

func (l *List) Len() int {
	if l == nil {
		return 0
	}
	return len(l.Positions)
}

// Concat appends other's positions after l's, preserving the order the
// caller presents chunks in. The orchestrator uses this to assemble
// per-chunk results in chunk order — it never globally re-sorts.
func (l *List) Concat(other *List) {
	if other == nil {
		return
	}
	l.Positions = append(l.Positions, other.Positions...)
}
