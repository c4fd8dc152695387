package scan

import (
	"columnscan/domain"
	"columnscan/position"
	"columnscan/segment"
)

// Dictionary implements spec §4.5: the dictionary-accelerated single-
// literal binary-compare scan, with the matches-all/matches-none early
// outs computed from the search value-id alone. BETWEEN is handled
// separately by BetweenDictionary since it needs two bounds.
func Dictionary[T domain.Elem](
	seg *segment.DictionarySegment[T],
	chunkID uint32,
	cond domain.Predicate,
	lit domain.Variant,
	filter *PositionFilter,
	out *position.List,
) {
	if cond.IsNullCheck() {
		dictionaryNullCheck(seg, chunkID, cond, filter, out)
		return
	}
	if cond.Unsupported() || lit.IsNull() {
		return
	}

	v := domain.As[T](lit)
	u := seg.UniqueValuesCount()

	var search uint32
	switch cond {
	case domain.Equals, domain.NotEquals, domain.LessThan, domain.GreaterThanEquals:
		search = seg.LowerBound(v)
	case domain.LessThanEquals, domain.GreaterThan:
		search = seg.UpperBound(v)
	default:
		return
	}

	dictValueEqualsV := search < u && seg.ValueAt(search) == v

	switch decideAllOrNone(cond, search, u, dictValueEqualsV) {
	case decisionAll:
		emitAll(seg.Attribute, chunkID, filter, out)
		return
	case decisionNone:
		return
	}

	var match func(a uint32) bool
	switch cond {
	case domain.Equals:
		match = func(a uint32) bool { return dictValueEqualsV && a == search }
	case domain.NotEquals:
		// Two-clause disjunction per the original scan implementation:
		// a value-id not equal to the literal's lower_bound always
		// satisfies !=, and even when it does equal search, the row
		// still matches if the dictionary entry at search isn't actually
		// v (v itself absent from the dictionary). Null attribute ids are
		// assumed never equal to search_value_id.
		match = func(a uint32) bool { return !dictValueEqualsV || a != search }
	case domain.LessThan, domain.LessThanEquals:
		match = func(a uint32) bool { return a < search }
	case domain.GreaterThan, domain.GreaterThanEquals:
		match = func(a uint32) bool { return a >= search }
	default:
		return
	}

	emitWhere(seg.Attribute, chunkID, filter, out, match)
}

type decision uint8

const (
	decisionScan decision = iota
	decisionAll
	decisionNone
)

// decideAllOrNone implements the early-out table in spec §4.5. present
// reports whether the dictionary actually holds the literal at index
// search (search < upper_bound(v) in the original's terms); Equals/
// NotEquals are exact complements of each other, which the literal spec
// table states asymmetrically — this implementation follows the
// logically-consistent reading (= matches-none iff v absent; = matches-all
// iff v present and U==1; != is the exact complement of =).
func decideAllOrNone(cond domain.Predicate, search, u uint32, present bool) decision {
	switch cond {
	case domain.Equals:
		if !present {
			return decisionNone
		}
		if u == 1 {
			return decisionAll
		}
		return decisionScan
	case domain.NotEquals:
		if !present {
			return decisionAll
		}
		if u == 1 {
			return decisionNone
		}
		return decisionScan
	case domain.LessThan, domain.LessThanEquals:
		if search == segment.InvalidValueID || search == u {
			return decisionAll
		}
		if search == 0 {
			return decisionNone
		}
		return decisionScan
	case domain.GreaterThan, domain.GreaterThanEquals:
		if search == 0 {
			return decisionAll
		}
		if search == segment.InvalidValueID || search == u {
			return decisionNone
		}
		return decisionScan
	default:
		return decisionScan
	}
}

func emitAll(attr []uint32, chunkID uint32, filter *PositionFilter, out *position.List) {
	if filter == nil {
		for i, a := range attr {
			if a == segment.InvalidValueID {
				continue
			}
			out.Append(position.Position{ChunkID: chunkID, Offset: uint32(i)})
		}
		return
	}
	for _, p := range filter.Positions {
		if attr[p.Offset] == segment.InvalidValueID {
			continue
		}
		out.Append(p)
	}
}

func emitWhere(attr []uint32, chunkID uint32, filter *PositionFilter, out *position.List, match func(uint32) bool) {
	if filter == nil {
		for i, a := range attr {
			if a != segment.InvalidValueID && match(a) {
				out.Append(position.Position{ChunkID: chunkID, Offset: uint32(i)})
			}
		}
		return
	}
	for _, p := range filter.Positions {
		a := attr[p.Offset]
		if a != segment.InvalidValueID && match(a) {
			out.Append(p)
		}
	}
}

func dictionaryNullCheck[T domain.Elem](seg *segment.DictionarySegment[T], chunkID uint32, cond domain.Predicate, filter *PositionFilter, out *position.List) {
	want := domain.IsNull
	if filter == nil {
		for i, a := range seg.Attribute {
			isNull := a == segment.InvalidValueID
			if (cond == want) == isNull {
				out.Append(position.Position{ChunkID: chunkID, Offset: uint32(i)})
			}
		}
		return
	}
	for _, p := range filter.Positions {
		isNull := seg.Attribute[p.Offset] == segment.InvalidValueID
		if (cond == want) == isNull {
			out.Append(p)
		}
	}
}
