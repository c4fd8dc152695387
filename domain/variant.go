package domain

import "fmt"

// Variant holds a single value of any element kind, or the distinguished
// null. Comparisons against a null Variant always yield "unknown" in the
// three-valued logic the scan core implements — never true or false.
type Variant struct {
	kind Kind
	null bool
	val  any
}

// NullOf builds the null Variant for a given kind.
func NullOf(kind Kind) Variant {
	return Variant{kind: kind, null: true}
}

func Int32(v int32) Variant   { return Variant{kind: KindInt32, val: v} }
func Int64(v int64) Variant   { return Variant{kind: KindInt64, val: v} }
func Float32(v float32) Variant { return Variant{kind: KindFloat32, val: v} }
func Float64(v float64) Variant { return Variant{kind: KindFloat64, val: v} }
func String(v string) Variant { return Variant{kind: KindString, val: v} }

// Of boxes a typed literal into a Variant, inferring the kind from T.
func Of[T Elem](v T) Variant {
	return Variant{kind: KindOf[T](), val: v}
}

func (v Variant) Kind() Kind  { return v.kind }
func (v Variant) IsNull() bool { return v.null }

// As unboxes v as T. It panics on a kind mismatch or on a null Variant —
// both are programmer errors per the core's failure semantics (Fatal).
func As[T Elem](v Variant) T {
	if v.null {
		panic("domain: As called on a null Variant")
	}
	t, ok := v.val.(T)
	if !ok {
		var zero T
		panic(fmt.Sprintf("domain: type mismatch: variant kind %s does not hold %T", v.kind, zero))
	}
	return t
}

func (v Variant) String() string {
	if v.null {
		return fmt.Sprintf("Variant{%s, null}", v.kind)
	}
	return fmt.Sprintf("Variant{%s, %v}", v.kind, v.val)
}
