package domain

// Predicate is the closed set of predicate conditions the core recognizes.
// Like/NotLike/In/NotIn are recognized only as unsupported: they are never
// prunable and the generic scan path rejects them.
type Predicate uint8

const (
	Equals Predicate = iota
	NotEquals
	LessThan
	LessThanEquals
	GreaterThan
	GreaterThanEquals
	Between
	IsNull
	IsNotNull
	Like
	NotLike
	In
	NotIn
)

func (p Predicate) String() string {
	switch p {
	case Equals:
		return "Equals"
	case NotEquals:
		return "NotEquals"
	case LessThan:
		return "LessThan"
	case LessThanEquals:
		return "LessThanEquals"
	case GreaterThan:
		return "GreaterThan"
	case GreaterThanEquals:
		return "GreaterThanEquals"
	case Between:
		return "Between"
	case IsNull:
		return "IsNull"
	case IsNotNull:
		return "IsNotNull"
	case Like:
		return "Like"
	case NotLike:
		return "NotLike"
	case In:
		return "In"
	case NotIn:
		return "NotIn"
	default:
		return "Unknown"
	}
}

// Unsupported reports whether the core can never reason about this
// predicate beyond "cannot prune, must scan".
func (p Predicate) Unsupported() bool {
	switch p {
	case Like, NotLike, In, NotIn:
		return true
	default:
		return false
	}
}

// IsNullCheck reports whether p is one of the two null-checking predicates,
// which are evaluated against the null bitmap rather than the value domain.
func (p Predicate) IsNullCheck() bool {
	return p == IsNull || p == IsNotNull
}
