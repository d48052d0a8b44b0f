package marshal

import (
	"testing"

	"go.bytecodealliance.org/wit"

	"github.com/componentize-go/jsc/internal/callctx"
	"github.com/componentize-go/jsc/internal/jsvalue"
	"github.com/componentize-go/jsc/internal/jsvalue/jsvaluetest"
)

func newCx() (*jsvaluetest.Engine, *callctx.Context) {
	e := jsvaluetest.New()
	return e, callctx.New(e, nil)
}

// roundTrip exercises spec §8 property 1: pop(T) ∘ push(T, v) == v.
func roundTrip(t *testing.T, typ wit.Type, v Value, eq func(a, b Value) bool) {
	t.Helper()
	e, cx := newCx()
	if err := Push(cx, e, typ, v); err != nil {
		t.Fatalf("Push: %v", err)
	}
	if cx.Len() != 1 {
		t.Fatalf("stack depth after Push = %d, want 1", cx.Len())
	}
	got, err := Pop(cx, e, typ)
	if err != nil {
		t.Fatalf("Pop: %v", err)
	}
	if cx.Len() != 0 {
		t.Fatalf("stack depth after Pop = %d, want 0", cx.Len())
	}
	if !eq(got, v) {
		t.Fatalf("round trip mismatch: got %+v, want %+v", got, v)
	}
}

func TestRoundTripScalars(t *testing.T) {
	roundTrip(t, wit.Bool{}, boolValue(true), func(a, b Value) bool { return a.Bool == b.Bool })
	roundTrip(t, wit.U32{}, uintValue(KindU32, 42), func(a, b Value) bool { return a.Uint == b.Uint })
	roundTrip(t, wit.S32{}, intValue(KindS32, -7), func(a, b Value) bool { return a.Int == b.Int })
	roundTrip(t, wit.Float64{}, floatValue(KindF64, 3.5), func(a, b Value) bool { return a.Float == b.Float })
}

func TestRoundTripU64Precision(t *testing.T) {
	// spec §9: u64 precision beyond 2^53 is a known, documented limitation.
	roundTrip(t, wit.U64{}, uintValue(KindU64, 1<<52), func(a, b Value) bool { return a.Uint == b.Uint })
}

func TestRoundTripChar(t *testing.T) {
	roundTrip(t, wit.Char{}, intValue(KindChar, int64('λ')), func(a, b Value) bool { return a.Int == b.Int })
}

func TestRoundTripString(t *testing.T) {
	s := "hello, component"
	roundTrip(t, wit.String{}, Value{Kind: KindString, Str: &s}, func(a, b Value) bool {
		return *a.Str == *b.Str
	})
}

// TestListIndexIndependence exercises spec §8 property 5: the produced
// guest array index i corresponds to the i-th element pushed by the
// host, independent of length.
func TestListIndexIndependence(t *testing.T) {
	listType := &wit.TypeDef{Kind: &wit.List{Type: wit.U32{}}}
	for _, n := range []int{0, 1, 5, 50} {
		items := make([]Value, n)
		for i := range items {
			items[i] = uintValue(KindU32, uint64(i))
		}
		e, cx := newCx()
		in := Value{Kind: KindList, Items: items}
		if err := Push(cx, e, listType, in); err != nil {
			t.Fatalf("n=%d Push: %v", n, err)
		}
		out, err := Pop(cx, e, listType)
		if err != nil {
			t.Fatalf("n=%d Pop: %v", n, err)
		}
		if len(out.Items) != n {
			t.Fatalf("n=%d: got %d items, want %d", n, len(out.Items), n)
		}
		for i, it := range out.Items {
			if it.Uint != uint64(i) {
				t.Fatalf("n=%d: item %d = %d, want %d", n, i, it.Uint, i)
			}
		}
	}
}

func TestRoundTripTuple(t *testing.T) {
	tupleType := &wit.TypeDef{Kind: &wit.Tuple{Types: []wit.Type{wit.U32{}, wit.String{}}}}
	s := "y"
	in := Value{Kind: KindTuple, Items: []Value{uintValue(KindU32, 9), {Kind: KindString, Str: &s}}}
	roundTrip(t, tupleType, in, func(a, b Value) bool {
		return a.Items[0].Uint == b.Items[0].Uint && *a.Items[1].Str == *b.Items[1].Str
	})
}

func TestRoundTripRecord(t *testing.T) {
	recType := &wit.TypeDef{Kind: &wit.Record{Fields: []wit.Field{
		{Name: "x", Type: wit.Float64{}},
		{Name: "y", Type: wit.Float64{}},
	}}}
	in := Value{Kind: KindRecord, Fields: map[string]Value{
		"x": floatValue(KindF64, 1),
		"y": floatValue(KindF64, 2),
	}}
	roundTrip(t, recType, in, func(a, b Value) bool {
		return a.Fields["x"].Float == b.Fields["x"].Float && a.Fields["y"].Float == b.Fields["y"].Float
	})
}

func TestOptionNone(t *testing.T) {
	optType := &wit.TypeDef{Kind: &wit.Option{Type: wit.U32{}}}
	roundTrip(t, optType, Value{Kind: KindOption, Some: false}, func(a, b Value) bool {
		return a.Some == b.Some
	})
}

func TestOptionSome(t *testing.T) {
	optType := &wit.TypeDef{Kind: &wit.Option{Type: wit.U32{}}}
	inner := uintValue(KindU32, 5)
	roundTrip(t, optType, Value{Kind: KindOption, Some: true, Inner: &inner}, func(a, b Value) bool {
		return a.Some == b.Some && a.Inner.Uint == b.Inner.Uint
	})
}

// TestResultDiscriminant exercises spec §8 property 6.
func TestResultDiscriminant(t *testing.T) {
	resType := &wit.TypeDef{Kind: &wit.Result{OK: wit.U32{}, Err: wit.String{}}}

	inner := uintValue(KindU32, 5)
	roundTrip(t, resType, Value{Kind: KindResult, OK: true, Inner: &inner}, func(a, b Value) bool {
		return a.OK == b.OK && a.Inner.Uint == b.Inner.Uint
	})

	errStr := "division by zero"
	errVal := Value{Kind: KindString, Str: &errStr}
	roundTrip(t, resType, Value{Kind: KindResult, OK: false, Inner: &errVal}, func(a, b Value) bool {
		return a.OK == b.OK && *a.Inner.Str == *b.Inner.Str
	})
}

// TestResultNoPayloadArm exercises spec §4.D's documented edge case: a
// result whose active arm has no payload type must still round-trip.
func TestResultNoPayloadArm(t *testing.T) {
	resType := &wit.TypeDef{Kind: &wit.Result{OK: nil, Err: wit.String{}}}
	roundTrip(t, resType, Value{Kind: KindResult, OK: true}, func(a, b Value) bool {
		return a.OK == b.OK
	})
}

func TestVariantDiscriminant(t *testing.T) {
	varType := &wit.TypeDef{Kind: &wit.Variant{Cases: []wit.Case{
		{Name: "red", Type: nil},
		{Name: "custom", Type: wit.U32{}},
	}}}

	roundTrip(t, varType, Value{Kind: KindVariant, Case: "red"}, func(a, b Value) bool {
		return a.Case == b.Case
	})

	inner := uintValue(KindU32, 99)
	roundTrip(t, varType, Value{Kind: KindVariant, Case: "custom", Inner: &inner}, func(a, b Value) bool {
		return a.Case == b.Case && a.Inner.Uint == b.Inner.Uint
	})
}

// TestEnumBijection exercises spec §8 property 7: name<->index binding
// is surjective and injective for the declared case set.
func TestEnumBijection(t *testing.T) {
	enumType := &wit.TypeDef{Kind: &wit.Enum{Cases: []wit.EnumCase{
		{Name: "red"}, {Name: "green"}, {Name: "blue"},
	}}}
	for _, name := range []string{"red", "green", "blue"} {
		roundTrip(t, enumType, Value{Kind: KindEnum, Case: name}, func(a, b Value) bool {
			return a.Case == b.Case
		})
	}
}

func TestEnumOutOfRangeIsProtocolError(t *testing.T) {
	enumType := &wit.TypeDef{Kind: &wit.Enum{Cases: []wit.EnumCase{{Name: "only"}}}}
	e, cx := newCx()
	cx.Push(e.NewNumber(5)) // out of range: only one declared case
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for out-of-range enum discriminant")
		}
	}()
	Pop(cx, e, enumType)
}

func TestFlagsRoundTrip(t *testing.T) {
	flagsType := &wit.TypeDef{Kind: &wit.Flags{Flags: []wit.Flag{
		{Name: "read"}, {Name: "write"}, {Name: "execute"},
	}}}
	roundTrip(t, flagsType, uintValue(KindFlags, 0b011), func(a, b Value) bool {
		return a.Uint == b.Uint
	})
}

func TestHandleRoundTrip(t *testing.T) {
	handleType := &wit.TypeDef{Kind: &wit.OwnedHandle{Type: &wit.TypeDef{Kind: &wit.Resource{}}}}
	roundTrip(t, handleType, uintValue(KindOwnHandle, 7), func(a, b Value) bool {
		return a.Uint == b.Uint
	})
}

var _ jsvalue.Engine = (*jsvaluetest.Engine)(nil)
