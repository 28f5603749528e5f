package interp

import (
	"github.com/schematika/schematika/internal/diag"
	"github.com/schematika/schematika/internal/gcheap"
	"github.com/schematika/schematika/internal/rtval"
)

// primitiveKey identifies one entry of the dispatch table: an operator
// stem (the "add2", "eq2", ...) paired with the operand tag
// internal/parser baked into the generated global's name.
type primitiveKey struct {
	stem string
	tag  string
}

type primitiveImpl func(c *gcheap.Collector, args []rtval.Value) (rtval.Value, error)

var primitiveTable map[primitiveKey]primitiveImpl

func init() {
	primitiveTable = map[primitiveKey]primitiveImpl{
		{"add2", "i32"}: arithI32(func(a, b int32) int32 { return a + b }),
		{"sub2", "i32"}: arithI32(func(a, b int32) int32 { return a - b }),
		{"mul2", "i32"}: arithI32(func(a, b int32) int32 { return a * b }),
		{"div2", "i32"}: arithI32(func(a, b int32) int32 { return a / b }),

		{"add2", "i64"}: arithI64(func(a, b int64) int64 { return a + b }),
		{"sub2", "i64"}: arithI64(func(a, b int64) int64 { return a - b }),
		{"mul2", "i64"}: arithI64(func(a, b int64) int64 { return a * b }),
		{"div2", "i64"}: arithI64(func(a, b int64) int64 { return a / b }),

		{"add2", "f64"}: arithF64(func(a, b float64) float64 { return a + b }),
		{"sub2", "f64"}: arithF64(func(a, b float64) float64 { return a - b }),
		{"mul2", "f64"}: arithF64(func(a, b float64) float64 { return a * b }),
		{"div2", "f64"}: arithF64(func(a, b float64) float64 { return a / b }),

		{"eq2", "i32"}: cmpI32(func(a, b int32) bool { return a == b }),
		{"ne2", "i32"}: cmpI32(func(a, b int32) bool { return a != b }),
		{"lt2", "i32"}: cmpI32(func(a, b int32) bool { return a < b }),
		{"gt2", "i32"}: cmpI32(func(a, b int32) bool { return a > b }),
		{"le2", "i32"}: cmpI32(func(a, b int32) bool { return a <= b }),
		{"ge2", "i32"}: cmpI32(func(a, b int32) bool { return a >= b }),

		{"eq2", "i64"}: cmpI64(func(a, b int64) bool { return a == b }),
		{"ne2", "i64"}: cmpI64(func(a, b int64) bool { return a != b }),
		{"lt2", "i64"}: cmpI64(func(a, b int64) bool { return a < b }),
		{"gt2", "i64"}: cmpI64(func(a, b int64) bool { return a > b }),
		{"le2", "i64"}: cmpI64(func(a, b int64) bool { return a <= b }),
		{"ge2", "i64"}: cmpI64(func(a, b int64) bool { return a >= b }),

		{"eq2", "f64"}: cmpF64(func(a, b float64) bool { return a == b }),
		{"ne2", "f64"}: cmpF64(func(a, b float64) bool { return a != b }),
		{"lt2", "f64"}: cmpF64(func(a, b float64) bool { return a < b }),
		{"gt2", "f64"}: cmpF64(func(a, b float64) bool { return a > b }),
		{"le2", "f64"}: cmpF64(func(a, b float64) bool { return a <= b }),
		{"ge2", "f64"}: cmpF64(func(a, b float64) bool { return a >= b }),

		{"eq2", "string"}: cmpStr(func(a, b string) bool { return a == b }),
		{"ne2", "string"}: cmpStr(func(a, b string) bool { return a != b }),

		{"eq2", "bool"}: cmpBool(func(a, b bool) bool { return a == b }),
		{"ne2", "bool"}: cmpBool(func(a, b bool) bool { return a != b }),
		{"and2", "bool"}: cmpBool(func(a, b bool) bool { return a && b }),
		{"or2", "bool"}: cmpBool(func(a, b bool) bool { return a || b }),
	}
}

func dispatchPrimitive(c *gcheap.Collector, fn *PrimitiveFn, args []rtval.Value) (rtval.Value, error) {
	impl, ok := primitiveTable[primitiveKey{fn.Stem, fn.Tag}]
	if !ok {
		return nil, diag.Invariant("interp: no implementation registered for primitive %s_%s", fn.Stem, fn.Tag)
	}
	if len(args) != 2 {
		return nil, diag.Invariant("interp: primitive %s_%s called with %d arguments, want 2", fn.Stem, fn.Tag, len(args))
	}
	return impl(c, args)
}

func arithI32(f func(a, b int32) int32) primitiveImpl {
	return func(c *gcheap.Collector, args []rtval.Value) (rtval.Value, error) {
		a, b, err := operandsI32(args)
		if err != nil {
			return nil, err
		}
		return rtval.NewI32(c, f(a, b)), nil
	}
}

func arithI64(f func(a, b int64) int64) primitiveImpl {
	return func(c *gcheap.Collector, args []rtval.Value) (rtval.Value, error) {
		a, b, err := operandsI64(args)
		if err != nil {
			return nil, err
		}
		return rtval.NewI64(c, f(a, b)), nil
	}
}

func arithF64(f func(a, b float64) float64) primitiveImpl {
	return func(c *gcheap.Collector, args []rtval.Value) (rtval.Value, error) {
		a, b, err := operandsF64(args)
		if err != nil {
			return nil, err
		}
		return rtval.NewF64(c, f(a, b)), nil
	}
}

func cmpI32(f func(a, b int32) bool) primitiveImpl {
	return func(c *gcheap.Collector, args []rtval.Value) (rtval.Value, error) {
		a, b, err := operandsI32(args)
		if err != nil {
			return nil, err
		}
		return rtval.NewBool(c, f(a, b)), nil
	}
}

func cmpI64(f func(a, b int64) bool) primitiveImpl {
	return func(c *gcheap.Collector, args []rtval.Value) (rtval.Value, error) {
		a, b, err := operandsI64(args)
		if err != nil {
			return nil, err
		}
		return rtval.NewBool(c, f(a, b)), nil
	}
}

func cmpF64(f func(a, b float64) bool) primitiveImpl {
	return func(c *gcheap.Collector, args []rtval.Value) (rtval.Value, error) {
		a, b, err := operandsF64(args)
		if err != nil {
			return nil, err
		}
		return rtval.NewBool(c, f(a, b)), nil
	}
}

func cmpStr(f func(a, b string) bool) primitiveImpl {
	return func(c *gcheap.Collector, args []rtval.Value) (rtval.Value, error) {
		a, ok := args[0].(*rtval.String)
		b, ok2 := args[1].(*rtval.String)
		if !ok || !ok2 {
			return nil, diag.TypeMismatchf(diag.Pos{}, "expected two strings, got %s and %s", args[0], args[1])
		}
		return rtval.NewBool(c, f(a.V, b.V)), nil
	}
}

func cmpBool(f func(a, b bool) bool) primitiveImpl {
	return func(c *gcheap.Collector, args []rtval.Value) (rtval.Value, error) {
		a, ok := args[0].(*rtval.Bool)
		b, ok2 := args[1].(*rtval.Bool)
		if !ok || !ok2 {
			return nil, diag.TypeMismatchf(diag.Pos{}, "expected two bools, got %s and %s", args[0], args[1])
		}
		return rtval.NewBool(c, f(a.V, b.V)), nil
	}
}

func operandsI32(args []rtval.Value) (int32, int32, error) {
	a, ok := args[0].(*rtval.I32)
	b, ok2 := args[1].(*rtval.I32)
	if !ok || !ok2 {
		return 0, 0, diag.TypeMismatchf(diag.Pos{}, "expected two i32 values, got %s and %s", args[0], args[1])
	}
	return a.V, b.V, nil
}

func operandsI64(args []rtval.Value) (int64, int64, error) {
	a, ok := args[0].(*rtval.I64)
	b, ok2 := args[1].(*rtval.I64)
	if !ok || !ok2 {
		return 0, 0, diag.TypeMismatchf(diag.Pos{}, "expected two i64 values, got %s and %s", args[0], args[1])
	}
	return a.V, b.V, nil
}

func operandsF64(args []rtval.Value) (float64, float64, error) {
	a, ok := args[0].(*rtval.F64)
	b, ok2 := args[1].(*rtval.F64)
	if !ok || !ok2 {
		return 0, 0, diag.TypeMismatchf(diag.Pos{}, "expected two f64 values, got %s and %s", args[0], args[1])
	}
	return a.V, b.V, nil
}
