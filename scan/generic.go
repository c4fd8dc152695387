// Package scan implements the specialized predicate evaluators over a
// single segment: the generic value-segment path, the dictionary-accelerated
// path (including its BETWEEN fast path), and the sorted-scan accelerator.
// Every evaluator appends matching positions to a caller-owned
// position.List; none of them allocate or sort the result themselves.
package scan

import (
	"columnscan/domain"
	"columnscan/position"
	"columnscan/segment"
)

// PositionFilter restricts a scan to a pre-selected subset of rows, as when
// scanning a reference segment: the predicate is evaluated against the
// referenced segment's value at each filter entry's Offset, and on a
// match the filter's own Position (not a freshly computed one) is emitted,
// since that is the row identity the caller already established upstream.
type PositionFilter struct {
	Positions []position.Position
}

// compare3VL evaluates a binary comparator against a single non-null value,
// matching the generic path's three-valued-logic contract: a null literal
// never reaches this far, so every decision here is strictly true/false.
func compare3VL[T domain.Elem](cond domain.Predicate, value, lit, lit2 T) bool {
	switch cond {
	case domain.Equals:
		return value == lit
	case domain.NotEquals:
		return value != lit
	case domain.LessThan:
		return value < lit
	case domain.LessThanEquals:
		return value <= lit
	case domain.GreaterThan:
		return value > lit
	case domain.GreaterThanEquals:
		return value >= lit
	case domain.Between:
		return lit <= value && value <= lit2
	default:
		return false
	}
}

// Generic implements spec §4.4: the value-segment scan path. The
// orchestrator also falls back to it for dictionary segments when the
// predicate is unsupported (Like/NotLike/In/NotIn), which emits nothing;
// IsNull/IsNotNull on a dictionary segment go through Dictionary's own
// null check instead.
func Generic[T domain.Elem](
	seg segment.Indexable[T],
	chunkID uint32,
	cond domain.Predicate,
	lit, lit2 domain.Variant,
	filter *PositionFilter,
	out *position.List,
) {
	if cond.IsNullCheck() {
		genericNullCheck(seg, chunkID, cond, filter, out)
		return
	}
	if cond.Unsupported() {
		return
	}
	// Three-valued logic: a comparison against a null literal is unknown,
	// which a WHERE clause treats as "does not match" — emit nothing.
	if lit.IsNull() || (cond == domain.Between && lit2.IsNull()) {
		return
	}

	v1 := domain.As[T](lit)
	var v2 T
	if cond == domain.Between {
		v2 = domain.As[T](lit2)
	}

	if filter == nil {
		n := seg.Len()
		for i := 0; i < n; i++ {
			value, isNull := seg.At(i)
			if isNull {
				continue
			}
			if compare3VL(cond, value, v1, v2) {
				out.Append(position.Position{ChunkID: chunkID, Offset: uint32(i)})
			}
		}
		return
	}
	for _, p := range filter.Positions {
		value, isNull := seg.At(int(p.Offset))
		if isNull {
			continue
		}
		if compare3VL(cond, value, v1, v2) {
			out.Append(p)
		}
	}
}

func genericNullCheck[T domain.Elem](
	seg segment.Indexable[T],
	chunkID uint32,
	cond domain.Predicate,
	filter *PositionFilter,
	out *position.List,
) {
	want := cond == domain.IsNull
	if filter == nil {
		n := seg.Len()
		for i := 0; i < n; i++ {
			_, isNull := seg.At(i)
			if isNull == want {
				out.Append(position.Position{ChunkID: chunkID, Offset: uint32(i)})
			}
		}
		return
	}
	for _, p := range filter.Positions {
		_, isNull := seg.At(int(p.Offset))
		if isNull == want {
			out.Append(p)
		}
	}
}
