package stats

import (
	"fmt"
	"sort"

	"golang.org/x/exp/slices"

	"columnscan/domain"
	"columnscan/wire"
)

// valueRange is one closed, inclusive [Low, High] interval of a RangeFilter.
type valueRange[T domain.Numeric] struct {
	Low, High T
}

// RangeFilter is the gap-set statistic: a sorted, non-overlapping,
// non-empty list of closed ranges covering every distinct value the
// segment holds. Scalar only — byte-strings are not domain.Numeric.
//
// A filter built with MaxRanges=1 must answer identically to a MinMaxFilter
// built from the same data for every predicate; RangeFilterRegression in
// range_test.go checks this directly.
type RangeFilter[T domain.Numeric] struct {
	Ranges   []valueRange[T]
	RowCount int
}

// gapIsRepresentable computes hi-lo and reports whether that gap fits the
// element type, so that v[i+1]-v[i] never silently wraps for the integer
// kinds. int32 gaps are computed in int64; int64 gaps are computed as an
// unsigned uint64 difference and rejected when they exceed MaxInt64.
// Floating gaps are always reported as representable.
func gapIsRepresentable[T domain.Numeric](lo, hi T) (T, bool) {
	switch any(lo).(type) {
	case int32:
		l, h := int64(any(lo).(int32)), int64(any(hi).(int32))
		gap := h - l
		if gap < 0 || gap > int64(^uint32(0)>>1) {
			return T(0), false
		}
		return any(int32(gap)).(T), true
	case int64:
		l, h := any(lo).(int64), any(hi).(int64)
		// Detect overflow of h-l in int64 space using unsigned wraparound
		// comparison rather than widening: this is the saturating-arithmetic
		// technique spec.md's Design Notes call for explicitly.
		if h < l {
			return T(0), false
		}
		gap := uint64(h) - uint64(l)
		if gap > ^uint64(0)>>1 {
			return T(0), false
		}
		return any(int64(gap)).(T), true
	case float32:
		l, h := any(lo).(float32), any(hi).(float32)
		return any(h - l).(T), true
	case float64:
		l, h := any(lo).(float64), any(hi).(float64)
		return any(h - l).(T), true
	default:
		return T(0), false
	}
}

// BuildRangeFilter implements the build algorithm in spec §4.2. distinct
// must be sorted ascending and contain only distinct values; assertSorted
// checks this on every call and unsorted input returns an error.
func BuildRangeFilter[T domain.Numeric](distinct []T, rowCount int, maxRanges int) (*RangeFilter[T], error) {
	if maxRanges < 1 {
		return nil, fmt.Errorf("stats: range filter requires max_ranges >= 1, got %d", maxRanges)
	}
	if len(distinct) == 0 {
		return nil, fmt.Errorf("stats: range filter requires at least one distinct value")
	}
	if err := assertSorted(distinct); err != nil {
		return nil, err
	}

	type gap struct {
		afterIdx int // split point: boundary between distinct[afterIdx] and distinct[afterIdx+1]
		size     T
	}
	var gaps []gap
	for i := 0; i+1 < len(distinct); i++ {
		size, ok := gapIsRepresentable(distinct[i], distinct[i+1])
		if !ok {
			continue // unrepresentable gap dropped from consideration per spec §4.2 step 2
		}
		gaps = append(gaps, gap{afterIdx: i, size: size})
	}

	keep := maxRanges - 1
	if keep > len(gaps) {
		keep = len(gaps)
	}
	sort.Slice(gaps, func(i, j int) bool { return gaps[i].size > gaps[j].size })
	chosen := gaps[:keep]
	sort.Slice(chosen, func(i, j int) bool { return chosen[i].afterIdx < chosen[j].afterIdx })

	ranges := make([]valueRange[T], 0, keep+1)
	start := 0
	for _, g := range chosen {
		ranges = append(ranges, valueRange[T]{Low: distinct[start], High: distinct[g.afterIdx]})
		start = g.afterIdx + 1
	}
	ranges = append(ranges, valueRange[T]{Low: distinct[start], High: distinct[len(distinct)-1]})

	return &RangeFilter[T]{Ranges: ranges, RowCount: rowCount}, nil
}

func assertSorted[T domain.Numeric](distinct []T) error {
	for i := 1; i < len(distinct); i++ {
		if !(distinct[i-1] < distinct[i]) {
			return fmt.Errorf("stats: range filter input not sorted ascending at index %d", i)
		}
	}
	return nil
}

// containingIndex returns the index of the first range whose High >= v, or
// len(Ranges) if none. Used by every predicate below.
func (f *RangeFilter[T]) containingIndex(v T) int {
	return sort.Search(len(f.Ranges), func(i int) bool { return f.Ranges[i].High >= v })
}

func (f *RangeFilter[T]) doesNotContainEquals(v T) bool {
	i := f.containingIndex(v)
	if i == len(f.Ranges) {
		return true
	}
	return v < f.Ranges[i].Low
}

func (f *RangeFilter[T]) doesNotContain(cond domain.Predicate, v1, v2 T) bool {
	n := len(f.Ranges)
	first, last := f.Ranges[0], f.Ranges[n-1]
	switch cond {
	case domain.Equals:
		return f.doesNotContainEquals(v1)
	case domain.LessThan:
		return v1 <= first.Low
	case domain.LessThanEquals:
		return v1 < first.Low
	case domain.GreaterThan:
		return v1 >= last.High
	case domain.GreaterThanEquals:
		return v1 > last.High
	case domain.Between:
		if v2 < first.Low || v1 > last.High {
			return true
		}
		for i := 0; i+1 < n; i++ {
			if f.Ranges[i].High < v1 && v2 < f.Ranges[i+1].Low {
				return true
			}
		}
		return false
	default:
		return false
	}
}

func (f *RangeFilter[T]) CanPrune(cond domain.Predicate, v1, v2 domain.Variant) bool {
	if cond.IsNullCheck() || cond.Unsupported() {
		return false
	}
	if v1.IsNull() || (cond == domain.Between && v2.IsNull()) {
		return false
	}
	a := domain.As[T](v1)
	var b T
	if cond == domain.Between {
		b = domain.As[T](v2)
	}
	return f.doesNotContain(cond, a, b)
}

func (f *RangeFilter[T]) EstimateCardinality(cond domain.Predicate, v1, v2 domain.Variant) Estimate {
	if f.CanPrune(cond, v1, v2) {
		return Estimate{Tag: MatchesNone, Count: 0}
	}
	n := len(f.Ranges)
	// Strictness mirrors MinMaxFilter.EstimateCardinality exactly, so a
	// single-range filter answers identically to a min-max filter built
	// from the same data (spec §4.2/§8): a row equal to the boundary value
	// satisfies GreaterThanEquals/LessThanEquals but not the strict forms.
	switch cond {
	case domain.GreaterThan:
		if a := domain.As[T](v1); a < f.Ranges[0].Low {
			return Estimate{Tag: MatchesAll, Count: float64(f.RowCount)}
		}
	case domain.GreaterThanEquals:
		if a := domain.As[T](v1); a <= f.Ranges[0].Low {
			return Estimate{Tag: MatchesAll, Count: float64(f.RowCount)}
		}
	case domain.LessThan:
		if a := domain.As[T](v1); a > f.Ranges[n-1].High {
			return Estimate{Tag: MatchesAll, Count: float64(f.RowCount)}
		}
	case domain.LessThanEquals:
		if a := domain.As[T](v1); a >= f.Ranges[n-1].High {
			return Estimate{Tag: MatchesAll, Count: float64(f.RowCount)}
		}
	}
	return Estimate{Tag: MatchesApproximately, Count: float64(f.RowCount) / float64(n+1)}
}

// Sliced narrows the range set to the sub-ranges that intersect the
// predicate's interval, clamping the endpoints of the boundary ranges.
func (f *RangeFilter[T]) Sliced(cond domain.Predicate, v1, v2 domain.Variant) (Statistic, bool) {
	if cond.IsNullCheck() || cond.Unsupported() || v1.IsNull() {
		return f, true
	}
	a := domain.As[T](v1)
	var lo, hi T
	switch cond {
	case domain.Equals:
		lo, hi = a, a
	case domain.LessThan:
		lo, hi = f.Ranges[0].Low, a
	case domain.LessThanEquals:
		lo, hi = f.Ranges[0].Low, a
	case domain.GreaterThan:
		lo, hi = a, f.Ranges[len(f.Ranges)-1].High
	case domain.GreaterThanEquals:
		lo, hi = a, f.Ranges[len(f.Ranges)-1].High
	case domain.Between:
		if v2.IsNull() {
			return f, true
		}
		lo, hi = a, domain.As[T](v2)
	default:
		return f, true
	}
	if lo > hi {
		return nil, false
	}

	var kept []valueRange[T]
	for _, r := range f.Ranges {
		l, h := r.Low, r.High
		if l < lo {
			l = lo
		}
		if h > hi {
			h = hi
		}
		if l <= h {
			kept = append(kept, valueRange[T]{Low: l, High: h})
		}
	}
	if len(kept) == 0 {
		return nil, false
	}
	return &RangeFilter[T]{Ranges: kept, RowCount: f.RowCount}, true
}

func (f *RangeFilter[T]) Scaled(selectivity float64) Statistic {
	scaled := float64(f.RowCount) * selectivity
	if scaled < 0 {
		scaled = 0
	}
	return &RangeFilter[T]{Ranges: slices.Clone(f.Ranges), RowCount: int(scaled)}
}

// AsMinMax reports whether this filter holds exactly one range, returning
// it as (Low, High) — used by RangeFilterRegression to check the
// single-range-equals-MinMax invariant without constructing a MinMaxFilter
// twice.
func (f *RangeFilter[T]) AsMinMax() (lo, hi T, ok bool) {
	if len(f.Ranges) != 1 {
		return T(0), T(0), false
	}
	return f.Ranges[0].Low, f.Ranges[0].High, true
}

// ToJSON encodes the diagnostic shape spec §6 names for a range filter.
func (f *RangeFilter[T]) ToJSON() ([]byte, error) {
	lows := make([]any, len(f.Ranges))
	highs := make([]any, len(f.Ranges))
	for i, r := range f.Ranges {
		lows[i], highs[i] = r.Low, r.High
	}
	return wire.MarshalRange(lows, highs)
}
