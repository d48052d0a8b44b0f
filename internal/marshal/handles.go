package marshal

import (
	"github.com/componentize-go/jsc/internal/callctx"
	"github.com/componentize-go/jsc/internal/jsvalue"
)

// popHandle implements spec §4.D "handles (own/borrow, future, stream):
// popped and pushed as 32-bit integers." Future and stream carry only an
// opaque handle at this ABI layer; full flow control is out of scope
// (spec §1).
func popHandle(cx *callctx.Context, eng jsvalue.Engine, k Kind) (Value, error) {
	h := cx.Pop()
	n, ok := eng.Number(h)
	if !ok {
		abiProtocolError("pop handle: handle value is not a JS number")
	}
	return uintValue(k, uint64(uint32(int64(n)))), nil
}

func pushHandle(cx *callctx.Context, eng jsvalue.Engine, v Value) error {
	cx.Push(eng.NewNumber(float64(uint32(v.Uint))))
	return nil
}
