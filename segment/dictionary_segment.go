package segment

import (
	"fmt"

	"golang.org/x/exp/slices"

	"columnscan/domain"
)

// InvalidValueID is the reserved sentinel value-id denoting a null
// attribute-vector entry. It is the maximum representable uint32, never a
// signed sentinel, matching the null-sentinel convention in position lists.
const InvalidValueID = ^uint32(0)

// DictionarySegment is the sorted-dictionary encoding: a strictly-ascending
// unique-value dictionary D[0..U) plus an attribute vector A[0..N) of
// value-ids in [0, U), with InvalidValueID denoting null.
type DictionarySegment[T domain.Elem] struct {
	Dictionary []T
	Attribute  []uint32
}

// NewDictionarySegment validates the invariants from the data model
// (strictly ascending dictionary, every attribute id in range) and panics
// (Fatal) if they are violated — the dictionary is assumed built correctly
// by an upstream encoder, so this is a sanity check in spirit; it runs
// unconditionally and costs O(U + N), one pass over the dictionary and one
// over the attribute vector.
func NewDictionarySegment[T domain.Elem](dict []T, attr []uint32) *DictionarySegment[T] {
	for i := 1; i < len(dict); i++ {
		if domain.Compare(dict[i-1], dict[i]) >= 0 {
			panic(fmt.Sprintf("segment: dictionary not strictly ascending at index %d", i))
		}
	}
	u := uint32(len(dict))
	for _, a := range attr {
		if a != InvalidValueID && a >= u {
			panic(fmt.Sprintf("segment: attribute value-id %d out of range [0,%d)", a, u))
		}
	}
	return &DictionarySegment[T]{Dictionary: dict, Attribute: attr}
}

func (s *DictionarySegment[T]) Kind() domain.Kind { return domain.KindOf[T]() }
func (s *DictionarySegment[T]) Len() int          { return len(s.Attribute) }

func (s *DictionarySegment[T]) UniqueValuesCount() uint32 { return uint32(len(s.Dictionary)) }

func (s *DictionarySegment[T]) At(i int) (T, bool) {
	id := s.Attribute[i]
	if id == InvalidValueID {
		var zero T
		return zero, true
	}
	return s.Dictionary[id], false
}

// LowerBound returns the index of the first dictionary entry >= v, in
// O(log U). Equivalently, the count of dictionary entries strictly less
// than v. The result is always in [0, U]; it is never InvalidValueID.
func (s *DictionarySegment[T]) LowerBound(v T) uint32 {
	idx, _ := slices.BinarySearchFunc(s.Dictionary, v, domain.Compare[T])
	return uint32(idx)
}

// UpperBound returns the index of the first dictionary entry > v, in
// O(log U). Equivalently, the count of dictionary entries <= v.
func (s *DictionarySegment[T]) UpperBound(v T) uint32 {
	lo, hi := 0, len(s.Dictionary)
	for lo < hi {
		mid := (lo + hi) / 2
		if domain.Compare(s.Dictionary[mid], v) <= 0 {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return uint32(lo)
}

// ValueAt returns the dictionary value stored at a value-id previously
// returned by LowerBound/UpperBound, when that id is < U.
func (s *DictionarySegment[T]) ValueAt(id uint32) T {
	return s.Dictionary[id]
}
