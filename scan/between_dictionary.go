package scan

import (
	"columnscan/domain"
	"columnscan/position"
	"columnscan/segment"
)

// BetweenDictionary implements spec §4.6 and supplemented feature #3: the
// BETWEEN fast path over a dictionary segment, using the unsigned
// value-id-window trick so that the InvalidValueID sentinel — which is
// numerically outside any window — never spuriously matches.
func BetweenDictionary[T domain.Elem](
	seg *segment.DictionarySegment[T],
	chunkID uint32,
	lo, hi domain.Variant,
	filter *PositionFilter,
	out *position.List,
) {
	if lo.IsNull() || hi.IsNull() {
		return
	}
	loV, hiV := domain.As[T](lo), domain.As[T](hi)
	u := seg.UniqueValuesCount()

	leftID := seg.LowerBound(loV)
	rightID := seg.UpperBound(hiV)
	// The original clamps upper_bound(hi) to U when it would fall past the
	// last dictionary entry (issue #1283 in the source this was ported
	// from); our UpperBound already returns U rather than a raw
	// InvalidValueID sentinel in that case, so the clamp is a no-op
	// guard kept for documentation of the invariant it protects.
	if rightID == segment.InvalidValueID {
		rightID = u
	}

	if leftID == 0 && rightID == u {
		emitAll(seg.Attribute, chunkID, filter, out)
		return
	}
	if leftID >= u || leftID == rightID {
		return
	}

	window := rightID - leftID
	match := func(a uint32) bool {
		return a-leftID < window
	}
	emitWhere(seg.Attribute, chunkID, filter, out, match)
}
