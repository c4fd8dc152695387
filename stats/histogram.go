package stats

import (
	"sort"

	"columnscan/domain"
	"columnscan/wire"
)

// StringHistogramDomain controls which prefix characters of a byte-string
// value the histogram considers when building bin boundaries and comparing
// literals against them. PrefixLength 0 means "consider the whole string".
type StringHistogramDomain struct {
	PrefixLength int
}

func (d StringHistogramDomain) reduce(s string) string {
	if d.PrefixLength <= 0 || len(s) <= d.PrefixLength {
		return s
	}
	return s[:d.PrefixLength]
}

// bin is one [Lo, Hi] contiguous run of distinct values a histogram groups
// together, with the total row count and distinct-value count it covers.
type bin[T domain.Elem] struct {
	Lo, Hi           T
	Height, Distinct int
}

// ValueCount pairs a distinct value with how many rows hold it, the input
// shape histogram construction consumes after a segment's values have been
// grouped (the generic scan/statistics-building layer does the grouping;
// this package only needs the result).
type ValueCount[T domain.Elem] struct {
	Value T
	Count int
}

// Histogram is the equal-distinct-count histogram: a sorted, non-overlapping
// list of bins where each bin covers roughly the same number of distinct
// values. Scalar kinds compare natively; the string kind applies Domain's
// prefix reduction before comparing.
type Histogram[T domain.Elem] struct {
	Bins     []bin[T]
	Domain   StringHistogramDomain
	RowCount int
}

// BuildHistogram partitions distinct, already-sorted (value, count) pairs
// into binCount contiguous groups whose distinct-value counts differ by at
// most one, per spec §4.3. For the string kind, distinct must already be
// sorted lexicographically on Domain's reduced prefix.
func BuildHistogram[T domain.Elem](distinct []ValueCount[T], binCount int, dom StringHistogramDomain) *Histogram[T] {
	if binCount < 1 {
		binCount = 1
	}
	if binCount > len(distinct) {
		binCount = len(distinct)
	}
	if binCount == 0 {
		return &Histogram[T]{Domain: dom}
	}

	base := len(distinct) / binCount
	extra := len(distinct) % binCount // the first `extra` bins get one more distinct value than the rest

	bins := make([]bin[T], 0, binCount)
	rowTotal := 0
	idx := 0
	for b := 0; b < binCount; b++ {
		size := base
		if b < extra {
			size++
		}
		if size == 0 {
			continue
		}
		group := distinct[idx : idx+size]
		height := 0
		for _, vc := range group {
			height += vc.Count
		}
		bins = append(bins, bin[T]{
			Lo:       group[0].Value,
			Hi:       group[len(group)-1].Value,
			Height:   height,
			Distinct: len(group),
		})
		rowTotal += height
		idx += size
	}
	return &Histogram[T]{Bins: bins, Domain: dom, RowCount: rowTotal}
}

func (h *Histogram[T]) reduced(v T) T {
	if h.Domain.PrefixLength <= 0 {
		return v
	}
	if s, ok := any(v).(string); ok {
		return any(h.Domain.reduce(s)).(T)
	}
	return v
}

// containingBin returns the index of the bin covering v, or -1.
func (h *Histogram[T]) containingBin(v T) int {
	v = h.reduced(v)
	i := sort.Search(len(h.Bins), func(i int) bool { return !(h.reduced(h.Bins[i].Hi) < v) })
	if i == len(h.Bins) {
		return -1
	}
	if v < h.reduced(h.Bins[i].Lo) {
		return -1
	}
	return i
}

func (h *Histogram[T]) doesNotContain(cond domain.Predicate, v1, v2 T) bool {
	if len(h.Bins) == 0 {
		return true
	}
	lo, hi := h.reduced(h.Bins[0].Lo), h.reduced(h.Bins[len(h.Bins)-1].Hi)
	switch cond {
	case domain.Equals:
		return h.containingBin(v1) == -1
	case domain.LessThan:
		// Compared unreduced: two strings with equal prefixes can still
		// order either way, so a reduced "<=" would over-prune.
		return v1 <= h.Bins[0].Lo
	case domain.LessThanEquals:
		return h.reduced(v1) < lo
	case domain.GreaterThan:
		return v1 >= h.Bins[len(h.Bins)-1].Hi
	case domain.GreaterThanEquals:
		return h.reduced(v1) > hi
	case domain.Between:
		return h.reduced(v2) < lo || h.reduced(v1) > hi
	default:
		return false
	}
}

func (h *Histogram[T]) CanPrune(cond domain.Predicate, v1, v2 domain.Variant) bool {
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
	return h.doesNotContain(cond, a, b)
}

// EstimateCardinality returns height/distinct of the containing bin for
// Equals, per spec §4.3; other predicates fall back to a bin-spanning
// approximation, consistent with the coarser statistics.
func (h *Histogram[T]) EstimateCardinality(cond domain.Predicate, v1, v2 domain.Variant) Estimate {
	if h.CanPrune(cond, v1, v2) {
		return Estimate{Tag: MatchesNone, Count: 0}
	}
	if cond == domain.Equals {
		i := h.containingBin(domain.As[T](v1))
		if i >= 0 && h.Bins[i].Distinct > 0 {
			return Estimate{Tag: MatchesApproximately, Count: float64(h.Bins[i].Height) / float64(h.Bins[i].Distinct)}
		}
	}
	return Estimate{Tag: MatchesApproximately, Count: float64(h.RowCount) / float64(len(h.Bins)+1)}
}

// Sliced narrows the bin list to those overlapping the predicate's
// interval, clamping boundary bins' Lo/Hi. Distinct/Height of a clamped
// boundary bin are left as an upper bound (not narrowed) since the
// histogram does not track per-value counts within a bin.
func (h *Histogram[T]) Sliced(cond domain.Predicate, v1, v2 domain.Variant) (Statistic, bool) {
	if cond.IsNullCheck() || cond.Unsupported() || v1.IsNull() {
		return h, true
	}
	a := domain.As[T](v1)
	var lo, hi T
	switch cond {
	case domain.Equals:
		lo, hi = a, a
	case domain.LessThan, domain.LessThanEquals:
		lo, hi = h.Bins[0].Lo, a
	case domain.GreaterThan, domain.GreaterThanEquals:
		lo, hi = a, h.Bins[len(h.Bins)-1].Hi
	case domain.Between:
		if v2.IsNull() {
			return h, true
		}
		lo, hi = a, domain.As[T](v2)
	default:
		return h, true
	}
	if h.reduced(lo) > h.reduced(hi) {
		return nil, false
	}

	var kept []bin[T]
	for _, b := range h.Bins {
		l, hh := b.Lo, b.Hi
		if h.reduced(l) < h.reduced(lo) {
			l = lo
		}
		if h.reduced(hh) > h.reduced(hi) {
			hh = hi
		}
		if h.reduced(l) <= h.reduced(hh) {
			kept = append(kept, bin[T]{Lo: l, Hi: hh, Height: b.Height, Distinct: b.Distinct})
		}
	}
	if len(kept) == 0 {
		return nil, false
	}
	return &Histogram[T]{Bins: kept, Domain: h.Domain, RowCount: h.RowCount}, true
}

func (h *Histogram[T]) Scaled(selectivity float64) Statistic {
	scaled := make([]bin[T], len(h.Bins))
	total := 0
	for i, b := range h.Bins {
		height := int(float64(b.Height) * selectivity)
		if height < 0 {
			height = 0
		}
		scaled[i] = bin[T]{Lo: b.Lo, Hi: b.Hi, Height: height, Distinct: b.Distinct}
		total += height
	}
	return &Histogram[T]{Bins: scaled, Domain: h.Domain, RowCount: total}
}

// ToJSON encodes the diagnostic shape spec §6 names for a histogram.
func (h *Histogram[T]) ToJSON() ([]byte, error) {
	los := make([]any, len(h.Bins))
	his := make([]any, len(h.Bins))
	heights := make([]int, len(h.Bins))
	distincts := make([]int, len(h.Bins))
	for i, b := range h.Bins {
		los[i], his[i] = b.Lo, b.Hi
		heights[i], distincts[i] = b.Height, b.Distinct
	}
	return wire.MarshalHistogram(los, his, heights, distincts)
}
