package stats

import (
	"math"
	"testing"

	"columnscan/domain"
)

var scenarioValues = []int64{-1000, 2, 3, 4, 7, 8, 10, 17, 100, 101, 102, 103, 123456}

func TestRangeFilterScenario1FourRanges(t *testing.T) {
	f, err := BuildRangeFilter(scenarioValues, len(scenarioValues), 4)
	if err != nil {
		t.Fatalf("BuildRangeFilter: %v", err)
	}
	if len(f.Ranges) != 4 {
		t.Fatalf("expected 4 ranges, got %d: %+v", len(f.Ranges), f.Ranges)
	}

	cases := []struct {
		name string
		cond domain.Predicate
		v1   domain.Variant
		v2   domain.Variant
		want bool
	}{
		{"eq 1024 prunes", domain.Equals, domain.Int64(1024), domain.Variant{}, true},
		{"eq 17 scans", domain.Equals, domain.Int64(17), domain.Variant{}, false},
		{"between 104 123455 prunes (inside the largest gap)", domain.Between, domain.Int64(104), domain.Int64(123455), true},
		{"between 103 123456 scans (touches range boundaries)", domain.Between, domain.Int64(103), domain.Int64(123456), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := f.CanPrune(c.cond, c.v1, c.v2); got != c.want {
				t.Errorf("CanPrune = %v, want %v", got, c.want)
			}
		})
	}
}

func TestRangeFilterScenario2SingleRange(t *testing.T) {
	f, err := BuildRangeFilter(scenarioValues, len(scenarioValues), 1)
	if err != nil {
		t.Fatalf("BuildRangeFilter: %v", err)
	}
	if len(f.Ranges) != 1 {
		t.Fatalf("expected 1 range, got %d", len(f.Ranges))
	}

	if !f.CanPrune(domain.LessThan, domain.Int64(-1000), domain.Variant{}) {
		t.Errorf("LessThan(-1000) should prune")
	}
	if f.CanPrune(domain.GreaterThan, domain.Int64(-1000), domain.Variant{}) {
		t.Errorf("GreaterThan(-1000) should not prune")
	}
	if f.CanPrune(domain.Equals, domain.Int64(1024), domain.Variant{}) {
		t.Errorf("Equals(1024) should not prune with a single covering range")
	}
}

// RangeFilterRegression: a range filter built with max_ranges=1 must
// answer identically to a min-max filter built from the same data, for
// every predicate — spec §8's "Range-filter single-range ≡ min-max".
func TestRangeFilterSingleRangeMatchesMinMax(t *testing.T) {
	rf, err := BuildRangeFilter(scenarioValues, len(scenarioValues), 1)
	if err != nil {
		t.Fatalf("BuildRangeFilter: %v", err)
	}
	lo, hi, ok := rf.AsMinMax()
	if !ok {
		t.Fatalf("expected a single range")
	}
	mm := &MinMaxFilter[int64]{Min: lo, Max: hi, RowCount: rf.RowCount}

	preds := []struct {
		cond domain.Predicate
		v1   domain.Variant
		v2   domain.Variant
	}{
		{domain.Equals, domain.Int64(1024), domain.Variant{}},
		{domain.Equals, domain.Int64(17), domain.Variant{}},
		{domain.NotEquals, domain.Int64(17), domain.Variant{}},
		{domain.LessThan, domain.Int64(-1000), domain.Variant{}},
		{domain.LessThanEquals, domain.Int64(-1000), domain.Variant{}},
		{domain.GreaterThan, domain.Int64(123456), domain.Variant{}},
		{domain.GreaterThanEquals, domain.Int64(123456), domain.Variant{}},
		{domain.Between, domain.Int64(0), domain.Int64(10)},
	}
	for _, p := range preds {
		rfGot := rf.CanPrune(p.cond, p.v1, p.v2)
		mmGot := mm.CanPrune(p.cond, p.v1, p.v2)
		if rfGot != mmGot {
			t.Errorf("%s: range filter CanPrune=%v, min-max CanPrune=%v", p.cond, rfGot, mmGot)
		}

		rfEst := rf.EstimateCardinality(p.cond, p.v1, p.v2)
		mmEst := mm.EstimateCardinality(p.cond, p.v1, p.v2)
		if rfEst.Tag != mmEst.Tag {
			t.Errorf("%s: range filter EstimateCardinality tag=%v, min-max tag=%v", p.cond, rfEst.Tag, mmEst.Tag)
		}
	}
}

// A boundary-equal GreaterThan/LessThan must not report MatchesAll: a row
// equal to the range's own endpoint fails the strict comparison, exactly
// like MinMaxFilter.EstimateCardinality's strict Min/Max checks.
func TestRangeFilterEstimateCardinalityStrictnessMatchesMinMax(t *testing.T) {
	values := []int64{5, 6, 7, 8, 9, 10}
	rf, err := BuildRangeFilter(values, len(values), 1)
	if err != nil {
		t.Fatalf("BuildRangeFilter: %v", err)
	}
	mm := &MinMaxFilter[int64]{Min: 5, Max: 10, RowCount: len(values)}

	cases := []struct {
		name string
		cond domain.Predicate
		v    int64
		want MatchTag
	}{
		{"GreaterThan at Low boundary is not MatchesAll", domain.GreaterThan, 5, MatchesApproximately},
		{"GreaterThanEquals at Low boundary is MatchesAll", domain.GreaterThanEquals, 5, MatchesAll},
		{"LessThan at High boundary is not MatchesAll", domain.LessThan, 10, MatchesApproximately},
		{"LessThanEquals at High boundary is MatchesAll", domain.LessThanEquals, 10, MatchesAll},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			rfGot := rf.EstimateCardinality(c.cond, domain.Int64(c.v), domain.Variant{}).Tag
			mmGot := mm.EstimateCardinality(c.cond, domain.Int64(c.v), domain.Variant{}).Tag
			if rfGot != c.want {
				t.Errorf("range filter tag = %v, want %v", rfGot, c.want)
			}
			if rfGot != mmGot {
				t.Errorf("range filter tag=%v diverges from min-max tag=%v", rfGot, mmGot)
			}
		})
	}
}

func TestRangeFilterRejectsInvalidArguments(t *testing.T) {
	if _, err := BuildRangeFilter([]int32{1, 2, 3}, 3, 0); err == nil {
		t.Errorf("expected error for max_ranges < 1")
	}
	if _, err := BuildRangeFilter([]int32{3, 1, 2}, 3, 4); err == nil {
		t.Errorf("expected error for unsorted input")
	}
}

// Gap overflow: a gap spanning the full representable range of the
// element type must be dropped from consideration rather than silently
// wrapping, per spec.md's Design Notes.
func TestRangeFilterDropsUnrepresentableGap(t *testing.T) {
	values := []int32{math.MinInt32, math.MinInt32 + 1, math.MaxInt32 - 1, math.MaxInt32}
	f, err := BuildRangeFilter(values, len(values), 3)
	if err != nil {
		t.Fatalf("BuildRangeFilter: %v", err)
	}
	// The middle gap (MinInt32+1 -> MaxInt32-1) overflows int32 and must be
	// dropped; only 2 representable gaps exist among the 3 total, so with
	// max_ranges=3 we still get at most 3 ranges, but never split on the
	// overflowing gap itself.
	for i := 0; i+1 < len(f.Ranges); i++ {
		gap := int64(f.Ranges[i+1].Low) - int64(f.Ranges[i].High)
		if gap > int64(math.MaxInt32) {
			t.Errorf("range filter split on an unrepresentable gap: %+v", f.Ranges)
		}
	}
}

func TestRangeFilterToJSON(t *testing.T) {
	f, err := BuildRangeFilter([]int64{1, 2, 100}, 3, 2)
	if err != nil {
		t.Fatalf("BuildRangeFilter: %v", err)
	}
	b, err := f.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON: %v", err)
	}
	want := `{"ranges":[[1,2],[100,100]]}`
	if string(b) != want {
		t.Errorf("ToJSON = %s, want %s", b, want)
	}
}

func TestRangeFilterSliced(t *testing.T) {
	f, err := BuildRangeFilter(scenarioValues, len(scenarioValues), 4)
	if err != nil {
		t.Fatalf("BuildRangeFilter: %v", err)
	}
	sliced, ok := f.Sliced(domain.Between, domain.Int64(5), domain.Int64(101))
	if !ok {
		t.Fatalf("expected a sliced result")
	}
	rf := sliced.(*RangeFilter[int64])
	if len(rf.Ranges) == 0 {
		t.Fatalf("sliced result has no ranges")
	}
	if rf.Ranges[0].Low < 5 {
		t.Errorf("sliced lower bound %d should be >= 5", rf.Ranges[0].Low)
	}
	if rf.Ranges[len(rf.Ranges)-1].High > 101 {
		t.Errorf("sliced upper bound %d should be <= 101", rf.Ranges[len(rf.Ranges)-1].High)
	}
}
