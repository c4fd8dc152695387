package scan

import (
	"columnscan/domain"
	"columnscan/position"
)

// OrderedBounds is the minimal view the sorted-scan accelerator needs over
// any segment encoding carrying a matching ordered_by tag: binary search
// over the non-null physical range. Both ValueSegment and DictionarySegment
// can provide this without exposing their full representation.
type OrderedBounds[T domain.Elem] interface {
	// NullRange returns the absolute [start, end) index range nulls
	// occupy — either a leading or trailing run, per the order's null
	// placement; start==end when there are no nulls.
	NullRange() (start, end int)
	// NonNullLen is the length of the non-null physical range.
	NonNullLen() int
	// ValueAt returns the value at index i counted from the start of the
	// non-null physical range, not the segment's absolute index.
	ValueAt(i int) T
}

// Sorted implements spec §4.7: binary search for the contiguous matching
// range instead of a linear scan, over a segment whose ordered_by tag
// matches the predicate's column. Nulls are emitted only for IsNull, never
// for a comparison predicate, and the search direction flips for a
// descending order.
func Sorted[T domain.Elem](
	bounds OrderedBounds[T],
	chunkID uint32,
	desc bool,
	cond domain.Predicate,
	v1, v2 domain.Variant,
	out *position.List,
) {
	nullStart, nullEnd := bounds.NullRange()
	nonNullAbsStart := 0
	if nullStart == 0 {
		nonNullAbsStart = nullEnd
	}
	n := bounds.NonNullLen()

	if cond.IsNullCheck() {
		if cond == domain.IsNull {
			out.AppendRange(chunkID, uint32(nullStart), uint32(nullEnd))
		} else {
			out.AppendRange(chunkID, uint32(nonNullAbsStart), uint32(nonNullAbsStart+n))
		}
		return
	}
	if cond.Unsupported() || v1.IsNull() || (cond == domain.Between && v2.IsNull()) {
		return
	}

	// ascLowerBound/ascUpperBound assume a non-decreasing sequence;
	// descFirstLE/descFirstLT assume a non-increasing one. Exactly one
	// pair is used, selected by desc.
	ascLowerBound := func(v T) int {
		lo, hi := 0, n
		for lo < hi {
			mid := (lo + hi) / 2
			if bounds.ValueAt(mid) < v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		return lo
	}
	ascUpperBound := func(v T) int {
		lo, hi := 0, n
		for lo < hi {
			mid := (lo + hi) / 2
			if bounds.ValueAt(mid) <= v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		return lo
	}
	descFirstLE := func(v T) int {
		lo, hi := 0, n
		for lo < hi {
			mid := (lo + hi) / 2
			if bounds.ValueAt(mid) > v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		return lo
	}
	descFirstLT := func(v T) int {
		lo, hi := 0, n
		for lo < hi {
			mid := (lo + hi) / 2
			if bounds.ValueAt(mid) >= v {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		return lo
	}

	a := domain.As[T](v1)
	var first, last int
	switch {
	case !desc && cond == domain.Equals:
		first, last = ascLowerBound(a), ascUpperBound(a)
	case !desc && cond == domain.LessThan:
		first, last = 0, ascLowerBound(a)
	case !desc && cond == domain.LessThanEquals:
		first, last = 0, ascUpperBound(a)
	case !desc && cond == domain.GreaterThan:
		first, last = ascUpperBound(a), n
	case !desc && cond == domain.GreaterThanEquals:
		first, last = ascLowerBound(a), n
	case !desc && cond == domain.Between:
		b := domain.As[T](v2)
		first, last = ascLowerBound(a), ascUpperBound(b)
	case desc && cond == domain.Equals:
		first, last = descFirstLE(a), descFirstLT(a)
	case desc && cond == domain.LessThan:
		first, last = descFirstLT(a), n
	case desc && cond == domain.LessThanEquals:
		first, last = descFirstLE(a), n
	case desc && cond == domain.GreaterThan:
		first, last = 0, descFirstLE(a)
	case desc && cond == domain.GreaterThanEquals:
		first, last = 0, descFirstLT(a)
	case desc && cond == domain.Between:
		b := domain.As[T](v2)
		first, last = descFirstLE(b), descFirstLT(a)
	default:
		return
	}
	if last < first {
		last = first
	}
	out.AppendRange(chunkID, uint32(nonNullAbsStart+first), uint32(nonNullAbsStart+last))
}
