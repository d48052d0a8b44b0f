package marshal

import (
	"go.bytecodealliance.org/wit"

	"github.com/componentize-go/jsc/internal/callctx"
	"github.com/componentize-go/jsc/internal/ident"
	"github.com/componentize-go/jsc/internal/jsvalue"
)

// popList implements spec §4.D: "popping a list pushes all its elements
// in reverse index order then returns the length; a second pass pops
// `len` values of T." The two passes happen inside this single call so
// every element pushed by the first pass is consumed before Pop returns
// (spec invariant 1), while still exercising exactly the push-then-pop
// dance the spec documents.
func popList(cx *callctx.Context, eng jsvalue.Engine, elem wit.Type) (Value, error) {
	h := cx.Pop()
	n := eng.ArrayLen(h)
	for i := n - 1; i >= 0; i-- {
		cx.Push(eng.ArrayGet(h, i))
	}
	items := make([]Value, n)
	for i := 0; i < n; i++ {
		v, err := Pop(cx, eng, elem)
		if err != nil {
			return Value{}, err
		}
		items[i] = v
	}
	return Value{Kind: KindList, Items: items}, nil
}

// pushList implements spec §4.D: "Pushing a list creates an empty array,
// then each `list-append` pops the top element and appends."
func pushList(cx *callctx.Context, eng jsvalue.Engine, elem wit.Type, v Value) error {
	arr := eng.NewArray()
	for _, item := range v.Items {
		if err := Push(cx, eng, elem, item); err != nil {
			return err
		}
		eng.ArrayPush(arr, cx.Pop())
	}
	cx.Push(arr)
	return nil
}

// popTuple is identical to popList but with a known, fixed arity (spec
// §4.D "tuple<T…>: identical to list but with a known arity").
func popTuple(cx *callctx.Context, eng jsvalue.Engine, types []wit.Type) (Value, error) {
	h := cx.Pop()
	n := len(types)
	for i := n - 1; i >= 0; i-- {
		cx.Push(eng.ArrayGet(h, i))
	}
	items := make([]Value, n)
	for i := 0; i < n; i++ {
		v, err := Pop(cx, eng, types[i])
		if err != nil {
			return Value{}, err
		}
		items[i] = v
	}
	return Value{Kind: KindTuple, Items: items}, nil
}

func pushTuple(cx *callctx.Context, eng jsvalue.Engine, types []wit.Type, v Value) error {
	arr := eng.NewArray()
	for i, t := range types {
		if err := Push(cx, eng, t, v.Items[i]); err != nil {
			return err
		}
		eng.ArrayPush(arr, cx.Pop())
	}
	cx.Push(arr)
	return nil
}

// popRecord implements spec §4.D: "field access uses the lower-camel-case
// key; the field values are pushed in reverse order, then popped in
// forward order."
func popRecord(cx *callctx.Context, eng jsvalue.Engine, fields []wit.Field) (Value, error) {
	h := cx.Pop()
	for i := len(fields) - 1; i >= 0; i-- {
		key := ident.ToLowerCamel(fields[i].Name)
		cx.Push(eng.Get(h, key))
	}
	out := make(map[string]Value, len(fields))
	for _, f := range fields {
		v, err := Pop(cx, eng, f.Type)
		if err != nil {
			return Value{}, err
		}
		out[f.Name] = v
	}
	return Value{Kind: KindRecord, Fields: out}, nil
}

// pushRecord implements spec §4.D: "Pushing constructs a JS object with
// lower-camel-case keys."
func pushRecord(cx *callctx.Context, eng jsvalue.Engine, fields []wit.Field, v Value) error {
	obj := eng.NewObject()
	for _, f := range fields {
		fv, ok := v.Fields[f.Name]
		if !ok {
			abiProtocolError("push record: missing field %q", f.Name)
		}
		if err := Push(cx, eng, f.Type, fv); err != nil {
			return err
		}
		eng.Set(obj, ident.ToLowerCamel(f.Name), cx.Pop())
	}
	cx.Push(obj)
	return nil
}

// popOption implements spec §4.D: "pop returns 0 if value is null or
// undefined (canonical 'none'), else 1 and leaves the inner value on the
// stack."
func popOption(cx *callctx.Context, eng jsvalue.Engine, inner wit.Type) (Value, error) {
	h := cx.Pop()
	if eng.IsNullish(h) {
		return Value{Kind: KindOption, Some: false}, nil
	}
	cx.Push(h)
	v, err := Pop(cx, eng, inner)
	if err != nil {
		return Value{}, err
	}
	return Value{Kind: KindOption, Some: true, Inner: &v}, nil
}

// pushOption implements spec §4.D's option push: when Some is false it
// places a null; otherwise it pushes the inner payload itself, with no
// wrapper object.
func pushOption(cx *callctx.Context, eng jsvalue.Engine, inner wit.Type, v Value) error {
	if !v.Some {
		cx.Push(eng.NewNull())
		return nil
	}
	if v.Inner == nil {
		abiProtocolError("push option: Some=true but Inner is nil")
	}
	return Push(cx, eng, inner, *v.Inner)
}

// popResult implements spec §4.D: "popped as {tag: 'ok'|'err', val?} with
// absent-payload tolerance; return discriminant 0 for ok else 1, and push
// inner val (or undefined) onto the stack." A result whose active arm has
// no payload type still accepts {tag, val: undefined} (spec §4.D edge
// case); in that case no payload is popped at all.
func popResult(cx *callctx.Context, eng jsvalue.Engine, okType, errType wit.Type) (Value, error) {
	h := cx.Pop()
	tagH := eng.Get(h, "tag")
	tag, _ := eng.String(tagH)
	ok := tag == "ok"

	armType := okType
	if !ok {
		armType = errType
	}
	if armType == nil {
		return Value{Kind: KindResult, OK: ok}, nil
	}
	cx.Push(eng.Get(h, "val"))
	v, err := Pop(cx, eng, armType)
	if err != nil {
		return Value{}, err
	}
	return Value{Kind: KindResult, OK: ok, Inner: &v}, nil
}

// pushResult implements spec §4.D: "Push constructs {tag,'val'?} popping
// a payload only when that arm has a payload type."
func pushResult(cx *callctx.Context, eng jsvalue.Engine, okType, errType wit.Type, v Value) error {
	obj := eng.NewObject()
	tag := "err"
	armType := errType
	if v.OK {
		tag = "ok"
		armType = okType
	}
	eng.Set(obj, "tag", eng.NewString(tag))
	if armType != nil {
		if v.Inner == nil {
			abiProtocolError("push result: active arm %q has a payload type but Inner is nil", tag)
		}
		if err := Push(cx, eng, armType, *v.Inner); err != nil {
			return err
		}
		eng.Set(obj, "val", cx.Pop())
	}
	cx.Push(obj)
	return nil
}

// popVariant implements spec §4.D: "popped as {tag: u32, val?}. A payload
// is popped only when the case declares one."
func popVariant(cx *callctx.Context, eng jsvalue.Engine, cases []wit.Case) (Value, error) {
	h := cx.Pop()
	tagH := eng.Get(h, "tag")
	n, ok := eng.Number(tagH)
	if !ok {
		abiProtocolError("pop variant: tag is not a JS number")
	}
	idx := int(n)
	if idx < 0 || idx >= len(cases) {
		abiProtocolError("pop variant: discriminant %d out of range [0,%d)", idx, len(cases))
	}
	c := cases[idx]
	if c.Type == nil {
		return Value{Kind: KindVariant, Case: c.Name}, nil
	}
	cx.Push(eng.Get(h, "val"))
	v, err := Pop(cx, eng, c.Type)
	if err != nil {
		return Value{}, err
	}
	return Value{Kind: KindVariant, Case: c.Name, Inner: &v}, nil
}

// pushVariant implements spec §4.D: "pushed as the same shape [as pop]."
func pushVariant(cx *callctx.Context, eng jsvalue.Engine, cases []wit.Case, v Value) error {
	idx := -1
	for i, c := range cases {
		if c.Name == v.Case {
			idx = i
			break
		}
	}
	if idx < 0 {
		abiProtocolError("push variant: unknown case %q", v.Case)
	}
	obj := eng.NewObject()
	eng.Set(obj, "tag", eng.NewNumber(float64(idx)))
	if c := cases[idx]; c.Type != nil {
		if v.Inner == nil {
			abiProtocolError("push variant: case %q has a payload type but Inner is nil", v.Case)
		}
		if err := Push(cx, eng, c.Type, *v.Inner); err != nil {
			return err
		}
		eng.Set(obj, "val", cx.Pop())
	}
	cx.Push(obj)
	return nil
}

// popEnum implements spec §4.D: "popped as a numeric discriminant." Spec
// §9's open question on an out-of-range discriminant is resolved (see
// DESIGN.md) as an ABIProtocolError rather than silent truncation.
func popEnum(cx *callctx.Context, eng jsvalue.Engine, cases []wit.EnumCase) (Value, error) {
	h := cx.Pop()
	n, ok := eng.Number(h)
	if !ok {
		abiProtocolError("pop enum: handle is not a JS number")
	}
	idx := int(n)
	if idx < 0 || idx >= len(cases) {
		abiProtocolError("pop enum: discriminant %d out of range [0,%d)", idx, len(cases))
	}
	return Value{Kind: KindEnum, Case: cases[idx].Name}, nil
}

func pushEnum(cx *callctx.Context, eng jsvalue.Engine, cases []wit.EnumCase, v Value) error {
	idx := -1
	for i, c := range cases {
		if c.Name == v.Case {
			idx = i
			break
		}
	}
	if idx < 0 {
		abiProtocolError("push enum: unknown case %q", v.Case)
	}
	cx.Push(eng.NewNumber(float64(idx)))
	return nil
}

// popFlags implements spec §4.D: "32-bit bitmask on the guest; each named
// flag is exposed as 1 << i."
func popFlags(cx *callctx.Context, eng jsvalue.Engine) (Value, error) {
	h := cx.Pop()
	n, ok := eng.Number(h)
	if !ok {
		abiProtocolError("pop flags: handle is not a JS number")
	}
	return uintValue(KindFlags, uint64(uint32(int64(n)))), nil
}

func pushFlags(cx *callctx.Context, eng jsvalue.Engine, v Value) error {
	cx.Push(eng.NewNumber(float64(uint32(v.Uint))))
	return nil
}
