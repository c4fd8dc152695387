// Package orchestrator implements the scan orchestrator from spec §4.8: it
// iterates a table's chunks, consults each chunk's statistic object for
// pruning, dispatches to the sorted accelerator, the dictionary path, or
// the generic path, and assembles the per-chunk position lists in the
// caller's chunk order.
package orchestrator

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"columnscan/chunkset"
	"columnscan/domain"
	"columnscan/position"
	"columnscan/scan"
	"columnscan/segment"
)

// Path records which scan strategy a chunk took, surfaced to
// internal/diag's tracer and to tests asserting the orchestrator picked
// the expected fast path.
type Path uint8

const (
	PathPruned Path = iota
	PathSorted
	PathDictionary
	PathGeneric
)

func (p Path) String() string {
	switch p {
	case PathPruned:
		return "pruned"
	case PathSorted:
		return "sorted"
	case PathDictionary:
		return "dictionary"
	case PathGeneric:
		return "generic"
	default:
		return "unknown"
	}
}

// Trace, when set on Options, is called once per chunk after that chunk's
// scan decision is made — used by internal/diag's colored tracer and by
// tests that assert which path the orchestrator took.
type Trace func(chunkID uint32, path Path)

// Options configures a single table scan.
type Options struct {
	Trace Trace
}

// Scan implements spec §4.8 and the external `scan` operation of spec §6.
// It runs one goroutine per chunk (bounded by errgroup's default of
// unlimited, since chunk count is caller-controlled and each chunk's work
// is already bounded), checking ctx at the start of each chunk's work —
// coarse, once-per-chunk cancellation per spec §5, never inside a segment's
// inner loop. A cancelled scan's partial results are discarded: Scan
// returns the ctx error and a nil list.
func Scan(
	ctx context.Context,
	table *chunkset.Table,
	columnID uint32,
	cond domain.Predicate,
	v1, v2 domain.Variant,
	opts Options,
) (*position.List, error) {
	results := make([]*position.List, len(table.Chunks))

	g, gctx := errgroup.WithContext(ctx)
	for i, chunk := range table.Chunks {
		i, chunk := i, chunk
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			list, err := scanChunk(chunk, columnID, cond, v1, v2, opts)
			if err != nil {
				return err
			}
			results[i] = list
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := position.NewList(0)
	for _, r := range results {
		out.Concat(r)
	}
	return out, nil
}

func scanChunk(
	chunk *chunkset.Chunk,
	columnID uint32,
	cond domain.Predicate,
	v1, v2 domain.Variant,
	opts Options,
) (*position.List, error) {
	col, ok := chunk.Column(columnID)
	if !ok {
		return nil, fmt.Errorf("orchestrator: chunk %d has no column %d", chunk.ID, columnID)
	}

	if col.Statistic != nil && col.Statistic.CanPrune(cond, v1, v2) {
		trace(opts, chunk.ID, PathPruned)
		return position.NewList(0), nil
	}

	out := position.NewList(0)
	path, err := dispatch(col, columnID, chunk.ID, cond, v1, v2, out)
	if err != nil {
		return nil, err
	}
	chunk.Access.IncrementBy(uint64(chunk.RowCount))
	trace(opts, chunk.ID, path)
	return out, nil
}

func trace(opts Options, chunkID uint32, path Path) {
	if opts.Trace != nil {
		opts.Trace(chunkID, path)
	}
}

// dispatch picks the sorted accelerator, the dictionary path, or the
// generic path, per spec §4.8's decision order: sorted-tag match first,
// then dictionary encoding, then the generic fallback. Element-kind
// specialization is a finite type switch over the closed Kind set — the
// monomorphization dispatch table spec.md's Design Notes call for,
// avoiding virtual per-row dispatch on the hot path.
func dispatch(col chunkset.ColumnStorage, columnID, chunkID uint32, cond domain.Predicate, v1, v2 domain.Variant, out *position.List) (Path, error) {
	ordered := col.OrderedBy
	if ordered != nil && ordered.ColumnID != columnID {
		ordered = nil
	}
	switch v := col.Segment.(type) {
	case *segment.ValueSegment[int32]:
		return dispatchValue[int32](v, ordered, chunkID, cond, v1, v2, out)
	case *segment.ValueSegment[int64]:
		return dispatchValue[int64](v, ordered, chunkID, cond, v1, v2, out)
	case *segment.ValueSegment[float32]:
		return dispatchValue[float32](v, ordered, chunkID, cond, v1, v2, out)
	case *segment.ValueSegment[float64]:
		return dispatchValue[float64](v, ordered, chunkID, cond, v1, v2, out)
	case *segment.ValueSegment[string]:
		return dispatchValue[string](v, ordered, chunkID, cond, v1, v2, out)
	case *segment.DictionarySegment[int32]:
		return dispatchDictionary[int32](v, ordered, chunkID, cond, v1, v2, out)
	case *segment.DictionarySegment[int64]:
		return dispatchDictionary[int64](v, ordered, chunkID, cond, v1, v2, out)
	case *segment.DictionarySegment[float32]:
		return dispatchDictionary[float32](v, ordered, chunkID, cond, v1, v2, out)
	case *segment.DictionarySegment[float64]:
		return dispatchDictionary[float64](v, ordered, chunkID, cond, v1, v2, out)
	case *segment.DictionarySegment[string]:
		return dispatchDictionary[string](v, ordered, chunkID, cond, v1, v2, out)
	default:
		return PathGeneric, fmt.Errorf("orchestrator: unrecognized segment type %T", col.Segment)
	}
}

func dispatchValue[T domain.Elem](
	seg *segment.ValueSegment[T],
	orderedBy *position.OrderedBy,
	chunkID uint32,
	cond domain.Predicate,
	v1, v2 domain.Variant,
	out *position.List,
) (Path, error) {
	if orderedBy != nil {
		bounds := scan.NewBounds[T](seg, orderedBy.Mode)
		scan.Sorted[T](bounds, chunkID, orderedBy.Mode.Descending(), cond, v1, v2, out)
		return PathSorted, nil
	}
	scan.Generic[T](seg, chunkID, cond, v1, v2, nil, out)
	return PathGeneric, nil
}

func dispatchDictionary[T domain.Elem](
	seg *segment.DictionarySegment[T],
	orderedBy *position.OrderedBy,
	chunkID uint32,
	cond domain.Predicate,
	v1, v2 domain.Variant,
	out *position.List,
) (Path, error) {
	if orderedBy != nil {
		bounds := scan.NewBounds[T](seg, orderedBy.Mode)
		scan.Sorted[T](bounds, chunkID, orderedBy.Mode.Descending(), cond, v1, v2, out)
		return PathSorted, nil
	}
	if cond == domain.Between {
		scan.BetweenDictionary[T](seg, chunkID, v1, v2, nil, out)
		return PathDictionary, nil
	}
	if cond.IsNullCheck() || !cond.Unsupported() {
		scan.Dictionary[T](seg, chunkID, cond, v1, nil, out)
		return PathDictionary, nil
	}
	scan.Generic[T](seg, chunkID, cond, v1, v2, nil, out)
	return PathGeneric, nil
}
