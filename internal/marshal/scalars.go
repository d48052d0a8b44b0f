package marshal

import (
	"unicode/utf8"

	"github.com/componentize-go/jsc/internal/callctx"
	"github.com/componentize-go/jsc/internal/jsvalue"
)

func popBool(cx *callctx.Context, eng jsvalue.Engine) (Value, error) {
	h := cx.Pop()
	b, ok := eng.Bool(h)
	if !ok {
		abiProtocolError("pop bool: handle is not a JS boolean")
	}
	return boolValue(b), nil
}

func pushBool(cx *callctx.Context, eng jsvalue.Engine, v Value) error {
	cx.Push(eng.NewBool(v.Bool))
	return nil
}

// popInt handles the u8/s8/u16/s16/u32/s32 scalar family: JS numbers
// round-tripped through a bit-width-appropriate 32-bit integer (spec §4.D
// scalar table).
func popInt(cx *callctx.Context, eng jsvalue.Engine, k Kind, bits int, signed bool) (Value, error) {
	h := cx.Pop()
	n, ok := eng.Number(h)
	if !ok {
		abiProtocolError("pop integer: handle is not a JS number")
	}
	raw := int64(n)
	mask := int64(1)<<uint(bits) - 1
	raw &= mask
	if signed && raw&(int64(1)<<uint(bits-1)) != 0 {
		raw -= int64(1) << uint(bits)
	}
	if signed {
		return intValue(k, raw), nil
	}
	return uintValue(k, uint64(raw)), nil
}

// popInt64 handles u64/s64: precision beyond 2^53 is lost because the
// guest representation is an IEEE-754 double (spec §9 "u64/s64
// precision" — a documented limitation, not a bug).
func popInt64(cx *callctx.Context, eng jsvalue.Engine, k Kind, signed bool) (Value, error) {
	h := cx.Pop()
	n, ok := eng.Number(h)
	if !ok {
		abiProtocolError("pop 64-bit integer: handle is not a JS number")
	}
	if signed {
		return intValue(k, int64(n)), nil
	}
	return uintValue(k, uint64(n)), nil
}

func popF32(cx *callctx.Context, eng jsvalue.Engine) (Value, error) {
	h := cx.Pop()
	n, ok := eng.Number(h)
	if !ok {
		abiProtocolError("pop f32: handle is not a JS number")
	}
	return floatValue(KindF32, float64(float32(n))), nil
}

func popF64(cx *callctx.Context, eng jsvalue.Engine) (Value, error) {
	h := cx.Pop()
	n, ok := eng.Number(h)
	if !ok {
		abiProtocolError("pop f64: handle is not a JS number")
	}
	return floatValue(KindF64, n), nil
}

func pushNumber(cx *callctx.Context, eng jsvalue.Engine, v Value) error {
	var n float64
	switch v.Kind {
	case KindS8, KindS16, KindS32, KindS64:
		n = float64(v.Int)
	case KindU8, KindU16, KindU32, KindU64:
		n = float64(v.Uint)
	case KindF32, KindF64:
		n = v.Float
	default:
		abiProtocolError("push number: value has non-numeric kind %d", v.Kind)
	}
	cx.Push(eng.NewNumber(n))
	return nil
}

// popChar pops a guest one-code-point JS string and returns its first
// Unicode scalar value (spec §4.D "char" row).
func popChar(cx *callctx.Context, eng jsvalue.Engine) (Value, error) {
	h := cx.Pop()
	s, ok := eng.String(h)
	if !ok {
		abiProtocolError("pop char: handle is not a JS string")
	}
	r, _ := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		abiProtocolError("pop char: empty or invalid string")
	}
	return intValue(KindChar, int64(r)), nil
}

func pushChar(cx *callctx.Context, eng jsvalue.Engine, v Value) error {
	cx.Push(eng.NewString(string(rune(v.Int))))
	return nil
}

// popString copies the guest string into the call context's temporary
// buffer and returns a reference stable for the context's lifetime (spec
// §4.D "string" row, §3 "Temporary strings outlive any reference handed
// out during the same call").
func popString(cx *callctx.Context, eng jsvalue.Engine) (Value, error) {
	h := cx.Pop()
	s, ok := eng.String(h)
	if !ok {
		abiProtocolError("pop string: handle is not a JS string")
	}
	kept := cx.Keep(s)
	return Value{Kind: KindString, Str: kept}, nil
}

func pushString(cx *callctx.Context, eng jsvalue.Engine, v Value) error {
	s := ""
	if v.Str != nil {
		s = *v.Str
	}
	cx.Push(eng.NewString(s))
	return nil
}
