// Package stats implements the three per-segment statistic objects that
// drive predicate pruning and cardinality estimation: the min-max filter,
// the range filter, and the equal-distinct-count histogram. Each is built
// once and treated as immutable; Sliced/Scaled return new objects.
package stats

import "columnscan/domain"

// MatchTag is the three-state cardinality-estimate tag. A pruning call and
// an estimate call must never disagree: EstimateCardinality returns
// MatchesNone exactly when CanPrune is true.
type MatchTag uint8

const (
	MatchesNone MatchTag = iota
	MatchesApproximately
	MatchesAll
)

func (t MatchTag) String() string {
	switch t {
	case MatchesNone:
		return "MatchesNone"
	case MatchesApproximately:
		return "MatchesApproximately"
	case MatchesAll:
		return "MatchesAll"
	default:
		return "Unknown"
	}
}

// Estimate is the result of a cardinality-estimate query: a coarse tag plus
// an approximate row count.
type Estimate struct {
	Tag   MatchTag
	Count float64
}

// Statistic is the shared operation surface of the tagged-variant family
// {MinMax, Range, Histogram}. Implementations own their own data; this is
// deliberately not a class hierarchy.
type Statistic interface {
	// CanPrune returns true only if it is certain that no non-null row in
	// the segment can satisfy the predicate. Implementations must never
	// over-prune: this is the soundness contract the whole core depends on.
	CanPrune(cond domain.Predicate, v1, v2 domain.Variant) bool

	// EstimateCardinality never disagrees with CanPrune: its tag is
	// MatchesNone exactly when CanPrune would return true.
	EstimateCardinality(cond domain.Predicate, v1, v2 domain.Variant) Estimate

	// Sliced returns the statistic describing the segment after the
	// predicate is hypothetically applied, or ok=false when that would be
	// empty.
	Sliced(cond domain.Predicate, v1, v2 domain.Variant) (Statistic, bool)

	// Scaled returns the statistic for a selectivity-reduced copy of the
	// segment (same bounds/shape, row counts scaled down).
	Scaled(selectivity float64) Statistic
}
