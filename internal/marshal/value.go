// Package marshal is the marshaling core of spec §4.D: generic push/pop
// operations between the WIT type universe (spec §3) and guest JS values
// (jsvalue.Engine), dispatched by WIT type *structure* rather than by one
// Go method per type (spec §9 "Generated-adapter coupling").
package marshal

// Kind identifies which arm of the WIT type universe a Value represents.
type Kind uint8

const (
	KindBool Kind = iota
	KindS8
	KindU8
	KindS16
	KindU16
	KindS32
	KindU32
	KindS64
	KindU64
	KindF32
	KindF64
	KindChar
	KindString
	KindList
	KindTuple
	KindRecord
	KindOption
	KindResult
	KindVariant
	KindEnum
	KindFlags
	KindOwnHandle
	KindBorrowHandle
	KindFuture
	KindStream
)

// Value is the host-side representation of a WIT value, produced by Pop
// and consumed by Push. Only the fields relevant to Kind are meaningful;
// the rest are zero. It deliberately mirrors the WIT type universe of
// spec §3 rather than Go's native type system, so a single Pop/Push pair
// can dispatch on WIT type structure alone.
type Value struct {
	Kind Kind

	Bool  bool
	Int   int64   // s8..s64, sign-extended to 64 bits; char as its code point
	Uint  uint64  // u8..u64, handles, and flags bitmasks
	Float float64 // f32 (already narrowed) and f64

	Str *string // string

	Items  []Value          // list and tuple elements, in index order
	Fields map[string]Value // record fields, keyed by WIT (kebab-case) field name

	Some  bool   // option: true if a value is present
	OK    bool   // result: true for the ok arm, false for err
	Case  string // variant/enum: the WIT (kebab-case) case name
	Inner *Value // option/result/variant payload; nil if none
}

func boolValue(v bool) Value { return Value{Kind: KindBool, Bool: v} }
func intValue(k Kind, v int64) Value { return Value{Kind: k, Int: v} }
func uintValue(k Kind, v uint64) Value { return Value{Kind: k, Uint: v} }
func floatValue(k Kind, v float64) Value { return Value{Kind: k, Float: v} }
