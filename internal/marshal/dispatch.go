package marshal

import (
	"fmt"

	"go.bytecodealliance.org/wit"

	"github.com/componentize-go/jsc/internal/callctx"
	"github.com/componentize-go/jsc/internal/jsvalue"
)

// abiProtocolError panics, matching spec §7: a mismatched push/pop or an
// out-of-range discriminant indicates a bug in the generated adapter, not
// a recoverable runtime condition, and must abort rather than return an
// error to the guest.
func abiProtocolError(format string, args ...any) {
	panic(fmt.Errorf("marshal: ABI protocol error: "+format, args...))
}

// structuralKind resolves t through any type-alias chain and returns the
// underlying TypeDefKind (or, for primitives, t itself) to dispatch on —
// the "tagged variant, dispatch by structure" approach spec §9 recommends
// over one method per named WIT type.
func structuralKind(t wit.Type) any {
	if td, ok := t.(*wit.TypeDef); ok {
		root := td.Root()
		return root.Kind
	}
	return t
}

// Pop removes the topmost stack value(s) for WIT type t and produces a
// host-side Value (spec §4.D pop contract).
func Pop(cx *callctx.Context, eng jsvalue.Engine, t wit.Type) (Value, error) {
	switch k := structuralKind(t).(type) {
	case wit.Bool:
		return popBool(cx, eng)
	case wit.S8:
		return popInt(cx, eng, KindS8, 8, true)
	case wit.U8:
		return popInt(cx, eng, KindU8, 8, false)
	case wit.S16:
		return popInt(cx, eng, KindS16, 16, true)
	case wit.U16:
		return popInt(cx, eng, KindU16, 16, false)
	case wit.S32:
		return popInt(cx, eng, KindS32, 32, true)
	case wit.U32:
		return popInt(cx, eng, KindU32, 32, false)
	case wit.S64:
		return popInt64(cx, eng, KindS64, true)
	case wit.U64:
		return popInt64(cx, eng, KindU64, false)
	case wit.Float32:
		return popF32(cx, eng)
	case wit.Float64:
		return popF64(cx, eng)
	case wit.Char:
		return popChar(cx, eng)
	case wit.String:
		return popString(cx, eng)
	case *wit.List:
		return popList(cx, eng, k.Type)
	case *wit.Tuple:
		return popTuple(cx, eng, k.Types)
	case *wit.Record:
		return popRecord(cx, eng, k.Fields)
	case *wit.Option:
		return popOption(cx, eng, k.Type)
	case *wit.Result:
		return popResult(cx, eng, k.OK, k.Err)
	case *wit.Variant:
		return popVariant(cx, eng, k.Cases)
	case *wit.Enum:
		return popEnum(cx, eng, k.Cases)
	case *wit.Flags:
		return popFlags(cx, eng)
	case *wit.OwnedHandle:
		return popHandle(cx, eng, KindOwnHandle)
	case *wit.BorrowedHandle:
		return popHandle(cx, eng, KindBorrowHandle)
	case *wit.Future:
		return popHandle(cx, eng, KindFuture)
	case *wit.Stream:
		return popHandle(cx, eng, KindStream)
	default:
		abiProtocolError("pop: unsupported WIT type kind %T", k)
		panic("unreachable")
	}
}

// Push constructs a guest-side value from host data v and places it on
// top of the stack (spec §4.D push contract).
func Push(cx *callctx.Context, eng jsvalue.Engine, t wit.Type, v Value) error {
	switch k := structuralKind(t).(type) {
	case wit.Bool:
		return pushBool(cx, eng, v)
	case wit.S8, wit.U8, wit.S16, wit.U16, wit.S32, wit.U32:
		return pushNumber(cx, eng, v)
	case wit.S64, wit.U64:
		return pushNumber(cx, eng, v)
	case wit.Float32, wit.Float64:
		return pushNumber(cx, eng, v)
	case wit.Char:
		return pushChar(cx, eng, v)
	case wit.String:
		return pushString(cx, eng, v)
	case *wit.List:
		return pushList(cx, eng, k.Type, v)
	case *wit.Tuple:
		return pushTuple(cx, eng, k.Types, v)
	case *wit.Record:
		return pushRecord(cx, eng, k.Fields, v)
	case *wit.Option:
		return pushOption(cx, eng, k.Type, v)
	case *wit.Result:
		return pushResult(cx, eng, k.OK, k.Err, v)
	case *wit.Variant:
		return pushVariant(cx, eng, k.Cases, v)
	case *wit.Enum:
		return pushEnum(cx, eng, k.Cases, v)
	case *wit.Flags:
		return pushFlags(cx, eng, v)
	case *wit.OwnedHandle, *wit.BorrowedHandle, *wit.Future, *wit.Stream:
		return pushHandle(cx, eng, v)
	default:
		abiProtocolError("push: unsupported WIT type kind %T", k)
		panic("unreachable")
	}
}
