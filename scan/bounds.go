package scan

import (
	"columnscan/domain"
	"columnscan/position"
	"columnscan/segment"
)

// indexableBounds adapts any segment.Indexable into the OrderedBounds view
// Sorted needs, given the order_mode its ordered_by tag carries. The null
// boundary is located by binary search rather than a linear scan, since the
// sort-metadata contract guarantees nulls are grouped at one end.
type indexableBounds[T domain.Elem] struct {
	seg       segment.Indexable[T]
	nullCount int
	nullFirst bool
}

// NewBounds builds the OrderedBounds view for the sorted-scan accelerator.
// Precondition (caller's responsibility, per spec §4.7): seg actually
// carries an ordered_by tag with the given mode.
func NewBounds[T domain.Elem](seg segment.Indexable[T], mode position.OrderMode) OrderedBounds[T] {
	n := seg.Len()
	nullFirst := mode.NullsFirst()
	count := binarySearchNullBoundary(seg, n, nullFirst)
	return &indexableBounds[T]{seg: seg, nullCount: count, nullFirst: nullFirst}
}

// binarySearchNullBoundary finds the size of the null run at the end
// nullFirst indicates, assuming isNull(i) is monotonic along physical
// order (all nulls first, or all nulls last).
func binarySearchNullBoundary[T domain.Elem](seg segment.Indexable[T], n int, nullFirst bool) int {
	isNull := func(i int) bool {
		_, null := seg.At(i)
		return null
	}
	if nullFirst {
		lo, hi := 0, n
		for lo < hi {
			mid := (lo + hi) / 2
			if isNull(mid) {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		return lo
	}
	lo, hi := 0, n
	for lo < hi {
		mid := (lo + hi) / 2
		if isNull(n - 1 - mid) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

func (b *indexableBounds[T]) NullRange() (start, end int) {
	n := b.seg.Len()
	if b.nullFirst {
		return 0, b.nullCount
	}
	return n - b.nullCount, n
}

func (b *indexableBounds[T]) NonNullLen() int {
	return b.seg.Len() - b.nullCount
}

func (b *indexableBounds[T]) ValueAt(i int) T {
	abs := i
	if b.nullFirst {
		abs = i + b.nullCount
	}
	v, _ := b.seg.At(abs)
	return v
}
