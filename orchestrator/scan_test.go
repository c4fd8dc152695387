package orchestrator

import (
	"context"
	"testing"

	"columnscan/chunkset"
	"columnscan/domain"
	"columnscan/position"
	"columnscan/segment"
	"columnscan/stats"
)

func offsetsOf(l *position.List) []uint32 {
	out := make([]uint32, len(l.Positions))
	for i, p := range l.Positions {
		out[i] = p.Offset
	}
	return out
}

func assertOffsets(t *testing.T, got, want []uint32) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestScanPrunesChunkViaMinMaxStatistic(t *testing.T) {
	tbl := chunkset.NewTable("t")
	values := []int32{100, 200, 300}
	seg := segment.NewValueSegmentNoNulls(values)
	mm := stats.BuildMinMaxFilter(values)
	tbl.AddChunk([]chunkset.ColumnStorage{{Segment: seg, Statistic: mm}}, len(values))

	var traced []Path
	out, err := Scan(context.Background(), tbl, 0, domain.Equals, domain.Int32(999), domain.Variant{}, Options{
		Trace: func(chunkID uint32, path Path) { traced = append(traced, path) },
	})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected the pruned chunk to contribute no rows, got %d", out.Len())
	}
	if len(traced) != 1 || traced[0] != PathPruned {
		t.Fatalf("expected a single PathPruned trace, got %v", traced)
	}
}

func TestScanDispatchesGenericPathWithoutStatisticOrOrder(t *testing.T) {
	tbl := chunkset.NewTable("t")
	seg := segment.NewValueSegmentNoNulls([]int32{1, 2, 3, 2})
	tbl.AddChunk([]chunkset.ColumnStorage{{Segment: seg}}, 4)

	var traced []Path
	out, err := Scan(context.Background(), tbl, 0, domain.Equals, domain.Int32(2), domain.Variant{}, Options{
		Trace: func(chunkID uint32, path Path) { traced = append(traced, path) },
	})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	assertOffsets(t, offsetsOf(out), []uint32{1, 3})
	if len(traced) != 1 || traced[0] != PathGeneric {
		t.Fatalf("expected PathGeneric, got %v", traced)
	}
}

func TestScanDispatchesSortedPathWhenOrderedByMatchesColumn(t *testing.T) {
	tbl := chunkset.NewTable("t")
	seg := segment.NewValueSegmentNoNulls([]int32{0, 1, 2, 3, 4, 5})
	tbl.AddChunk([]chunkset.ColumnStorage{{
		Segment:   seg,
		OrderedBy: &position.OrderedBy{ColumnID: 0, Mode: position.AscNullsLast},
	}}, 6)

	var traced []Path
	out, err := Scan(context.Background(), tbl, 0, domain.Between, domain.Int32(2), domain.Int32(4), Options{
		Trace: func(chunkID uint32, path Path) { traced = append(traced, path) },
	})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	assertOffsets(t, offsetsOf(out), []uint32{2, 3, 4})
	if len(traced) != 1 || traced[0] != PathSorted {
		t.Fatalf("expected PathSorted, got %v", traced)
	}
}

func TestScanIgnoresOrderedByWhenColumnIDMismatches(t *testing.T) {
	tbl := chunkset.NewTable("t")
	seg := segment.NewValueSegmentNoNulls([]int32{0, 1, 2, 3})
	tbl.AddChunk([]chunkset.ColumnStorage{{
		Segment: seg,
		// Tagged for a different column than the one being scanned: the
		// sorted accelerator must not be applied.
		OrderedBy: &position.OrderedBy{ColumnID: 7, Mode: position.AscNullsLast},
	}}, 4)

	var traced []Path
	_, err := Scan(context.Background(), tbl, 0, domain.Equals, domain.Int32(2), domain.Variant{}, Options{
		Trace: func(chunkID uint32, path Path) { traced = append(traced, path) },
	})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(traced) != 1 || traced[0] != PathGeneric {
		t.Fatalf("expected PathGeneric when the ordered-by tag targets another column, got %v", traced)
	}
}

func TestScanDispatchesDictionaryPath(t *testing.T) {
	tbl := chunkset.NewTable("t")
	seg := segment.NewDictionarySegment([]int32{10, 20, 30}, []uint32{0, 1, 2, 1})
	tbl.AddChunk([]chunkset.ColumnStorage{{Segment: seg}}, 4)

	var traced []Path
	out, err := Scan(context.Background(), tbl, 0, domain.Equals, domain.Int32(20), domain.Variant{}, Options{
		Trace: func(chunkID uint32, path Path) { traced = append(traced, path) },
	})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	assertOffsets(t, offsetsOf(out), []uint32{1, 3})
	if len(traced) != 1 || traced[0] != PathDictionary {
		t.Fatalf("expected PathDictionary, got %v", traced)
	}
}

func TestScanDispatchesDictionaryBetweenPath(t *testing.T) {
	tbl := chunkset.NewTable("t")
	seg := segment.NewDictionarySegment([]int32{10, 20, 30}, []uint32{0, 1, 2, 1})
	tbl.AddChunk([]chunkset.ColumnStorage{{Segment: seg}}, 4)

	var traced []Path
	out, err := Scan(context.Background(), tbl, 0, domain.Between, domain.Int32(15), domain.Int32(25), Options{
		Trace: func(chunkID uint32, path Path) { traced = append(traced, path) },
	})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	assertOffsets(t, offsetsOf(out), []uint32{1, 3})
	if len(traced) != 1 || traced[0] != PathDictionary {
		t.Fatalf("expected PathDictionary, got %v", traced)
	}
}

// Scan must preserve chunk order in its concatenated result — no implicit
// global sort — even though each chunk's scan runs in its own goroutine.
func TestScanPreservesChunkOrderAcrossGoroutines(t *testing.T) {
	tbl := chunkset.NewTable("t")
	for c := 0; c < 20; c++ {
		seg := segment.NewValueSegmentNoNulls([]int32{int32(c)})
		tbl.AddChunk([]chunkset.ColumnStorage{{Segment: seg}}, 1)
	}

	out, err := Scan(context.Background(), tbl, 0, domain.GreaterThanEquals, domain.Int32(0), domain.Variant{}, Options{})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if out.Len() != 20 {
		t.Fatalf("expected 20 matches, got %d", out.Len())
	}
	for i, p := range out.Positions {
		if p.ChunkID != uint32(i) {
			t.Fatalf("position %d has chunk id %d, want %d: results are not in chunk order", i, p.ChunkID, i)
		}
	}
}

func TestScanReturnsErrorForMissingColumn(t *testing.T) {
	tbl := chunkset.NewTable("t")
	seg := segment.NewValueSegmentNoNulls([]int32{1, 2, 3})
	tbl.AddChunk([]chunkset.ColumnStorage{{Segment: seg}}, 3)

	_, err := Scan(context.Background(), tbl, 5, domain.Equals, domain.Int32(1), domain.Variant{}, Options{})
	if err == nil {
		t.Fatalf("expected an error for a column id out of range")
	}
}

func TestScanRespectsCancelledContext(t *testing.T) {
	tbl := chunkset.NewTable("t")
	seg := segment.NewValueSegmentNoNulls([]int32{1, 2, 3})
	tbl.AddChunk([]chunkset.ColumnStorage{{Segment: seg}}, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Scan(ctx, tbl, 0, domain.Equals, domain.Int32(1), domain.Variant{}, Options{})
	if err == nil {
		t.Fatalf("expected Scan to report the cancellation error")
	}
}

func TestScanIncrementsChunkAccessCounterOnlyWhenNotPruned(t *testing.T) {
	tbl := chunkset.NewTable("t")
	values := []int32{1, 2, 3}
	mm := stats.BuildMinMaxFilter(values)
	prunedSeg := segment.NewValueSegmentNoNulls(values)
	scannedSeg := segment.NewValueSegmentNoNulls(values)
	tbl.AddChunk([]chunkset.ColumnStorage{{Segment: prunedSeg, Statistic: mm}}, 3)
	tbl.AddChunk([]chunkset.ColumnStorage{{Segment: scannedSeg}}, 3)

	_, err := Scan(context.Background(), tbl, 0, domain.Equals, domain.Int32(999), domain.Variant{}, Options{})
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if got := tbl.Chunks[0].Access.Counter(); got != 0 {
		t.Errorf("pruned chunk's access counter = %d, want 0", got)
	}
	if got := tbl.Chunks[1].Access.Counter(); got != 3 {
		t.Errorf("scanned chunk's access counter = %d, want 3", got)
	}
}
