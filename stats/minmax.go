package stats

import (
	"columnscan/domain"
	"columnscan/wire"
)

// MinMaxFilter tracks the closed bound [Min, Max] over a segment's non-null
// values. RowCount is the non-null row count it was built from, used only
// to shape the approximate cardinality estimate — the bound itself never
// depends on it.
type MinMaxFilter[T domain.Elem] struct {
	Min, Max T
	RowCount int
}

// BuildMinMaxFilter scans values once to find the bound. It panics (Fatal)
// on an empty slice: a filter over zero non-null values is meaningless and
// callers are expected to skip building one in that case.
func BuildMinMaxFilter[T domain.Elem](values []T) *MinMaxFilter[T] {
	if len(values) == 0 {
		panic("stats: BuildMinMaxFilter called with no values")
	}
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return &MinMaxFilter[T]{Min: min, Max: max, RowCount: len(values)}
}

func (f *MinMaxFilter[T]) doesNotContain(cond domain.Predicate, v1, v2 T) bool {
	switch cond {
	case domain.Equals:
		return v1 < f.Min || v1 > f.Max
	case domain.NotEquals:
		return f.Min == f.Max && f.Min == v1
	case domain.LessThan:
		return v1 <= f.Min
	case domain.LessThanEquals:
		return v1 < f.Min
	case domain.GreaterThan:
		return v1 >= f.Max
	case domain.GreaterThanEquals:
		return v1 > f.Max
	case domain.Between:
		return v2 < f.Min || v1 > f.Max
	default:
		return false
	}
}

// CanPrune implements the Statistic interface. A null literal, IsNull /
// IsNotNull, and any unsupported predicate never prune — those are handled
// by the caller or fall through to "cannot prune, must scan".
func (f *MinMaxFilter[T]) CanPrune(cond domain.Predicate, v1, v2 domain.Variant) bool {
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

func (f *MinMaxFilter[T]) EstimateCardinality(cond domain.Predicate, v1, v2 domain.Variant) Estimate {
	if f.CanPrune(cond, v1, v2) {
		return Estimate{Tag: MatchesNone, Count: 0}
	}
	if cond.IsNullCheck() || cond.Unsupported() || v1.IsNull() {
		return Estimate{Tag: MatchesApproximately, Count: float64(f.RowCount) / 2}
	}

	a := domain.As[T](v1)
	switch cond {
	case domain.NotEquals:
		// CanPrune already ruled out Min == Max == a, so a single-distinct
		// bound here necessarily excludes a and therefore matches every row.
		if f.Min == f.Max {
			return Estimate{Tag: MatchesAll, Count: float64(f.RowCount)}
		}
	case domain.LessThan:
		if a > f.Max {
			return Estimate{Tag: MatchesAll, Count: float64(f.RowCount)}
		}
	case domain.LessThanEquals:
		if a >= f.Max {
			return Estimate{Tag: MatchesAll, Count: float64(f.RowCount)}
		}
	case domain.GreaterThan:
		if a < f.Min {
			return Estimate{Tag: MatchesAll, Count: float64(f.RowCount)}
		}
	case domain.GreaterThanEquals:
		if a <= f.Min {
			return Estimate{Tag: MatchesAll, Count: float64(f.RowCount)}
		}
	}
	return Estimate{Tag: MatchesApproximately, Count: float64(f.RowCount) / 2}
}

// Sliced implements §4.1's table. NotEquals and Unsupported/IsNull leave the
// filter unchanged since they do not narrow the bound.
func (f *MinMaxFilter[T]) Sliced(cond domain.Predicate, v1, v2 domain.Variant) (Statistic, bool) {
	if cond.IsNullCheck() || cond.Unsupported() || v1.IsNull() {
		return f, true
	}

	a := domain.As[T](v1)
	switch cond {
	case domain.LessThan:
		if a <= f.Min {
			return nil, false
		}
		return &MinMaxFilter[T]{Min: f.Min, Max: a, RowCount: f.RowCount}, true
	case domain.LessThanEquals:
		if a < f.Min {
			return nil, false
		}
		return &MinMaxFilter[T]{Min: f.Min, Max: a, RowCount: f.RowCount}, true
	case domain.GreaterThan:
		if a >= f.Max {
			return nil, false
		}
		return &MinMaxFilter[T]{Min: a, Max: f.Max, RowCount: f.RowCount}, true
	case domain.GreaterThanEquals:
		if a > f.Max {
			return nil, false
		}
		return &MinMaxFilter[T]{Min: a, Max: f.Max, RowCount: f.RowCount}, true
	case domain.Equals:
		if a < f.Min || a > f.Max {
			return nil, false
		}
		return &MinMaxFilter[T]{Min: a, Max: a, RowCount: f.RowCount}, true
	case domain.NotEquals:
		return f, true
	case domain.Between:
		if v2.IsNull() {
			return f, true
		}
		b := domain.As[T](v2)
		lo := f.Min
		if a > lo {
			lo = a
		}
		hi := f.Max
		if b < hi {
			hi = b
		}
		if lo > hi {
			return nil, false
		}
		return &MinMaxFilter[T]{Min: lo, Max: hi, RowCount: f.RowCount}, true
	default:
		return f, true
	}
}

// Scaled returns a copy covering the same bound: a bound is conservative by
// construction, so narrowing the row count never needs to narrow [Min, Max].
func (f *MinMaxFilter[T]) Scaled(selectivity float64) Statistic {
	scaled := float64(f.RowCount) * selectivity
	if scaled < 0 {
		scaled = 0
	}
	return &MinMaxFilter[T]{Min: f.Min, Max: f.Max, RowCount: int(scaled)}
}

// ToJSON encodes the diagnostic shape spec §6 names for a min-max filter.
func (f *MinMaxFilter[T]) ToJSON() ([]byte, error) {
	return wire.MarshalMinMax(f.Min, f.Max)
}
