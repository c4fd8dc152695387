// Package segment implements the read-only, immutable-once-constructed
// block of one column in one chunk, in its two encodings: the dense value
// segment with a null bitmap, and the dictionary segment of a sorted
// dictionary plus an attribute vector of value-ids.
package segment

import "columnscan/domain"

// Segment is the type-erased handle the orchestrator and scan dispatcher
// use to pick the right generic instantiation without virtual per-row
// dispatch: a single type switch per chunk, not per row.
type Segment interface {
	Kind() domain.Kind
	Len() int
}

// Indexable is implemented by both segment encodings so the sorted-scan
// accelerator and the generic scan loop can address either by position
// without caring which encoding backs it.
type Indexable[T domain.Elem] interface {
	Segment
	// At returns the value at row i and whether that row is null. The
	// returned value is meaningless when isNull is true.
	At(i int) (value T, isNull bool)
}
