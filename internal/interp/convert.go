package interp

import (
	"github.com/schematika/schematika/internal/diag"
	"github.com/schematika/schematika/internal/gcheap"
	"github.com/schematika/schematika/internal/rtval"
	"github.com/schematika/schematika/internal/typedescr"
)

// Convert applies the dest-type conversion an ast.Convert node names.
// The numeric tower widens i32 -> i64 -> f64 without loss; narrowing
// (f64 -> i64 -> i32, or i64 -> i32) truncates, matching ordinary
// numeric-cast semantics rather than rounding or range-checking —
// Schematika has no runtime overflow trap to raise.
func Convert(c *gcheap.Collector, dest *typedescr.TypeDescr, v rtval.Value) (rtval.Value, error) {
	tag, ok := dest.Primitive()
	if !ok {
		return nil, diag.TypeMismatchf(diag.Pos{}, "cannot convert to non-primitive type %s", dest)
	}
	switch tag {
	case typedescr.I32:
		return convertToI32(c, v)
	case typedescr.I64:
		return convertToI64(c, v)
	case typedescr.F64:
		return convertToF64(c, v)
	case typedescr.Bool, typedescr.Str, typedescr.Unit:
		return nil, diag.TypeMismatchf(diag.Pos{}, "no conversion defined to %s", dest)
	default:
		return nil, diag.Invariant("interp: unhandled conversion target tag %v", tag)
	}
}

func convertToI32(c *gcheap.Collector, v rtval.Value) (rtval.Value, error) {
	switch src := v.(type) {
	case *rtval.I32:
		return src, nil
	case *rtval.I64:
		return rtval.NewI32(c, int32(src.V)), nil
	case *rtval.F64:
		return rtval.NewI32(c, int32(src.V)), nil
	default:
		return nil, diag.TypeMismatchf(diag.Pos{}, "cannot convert %s to i32", v)
	}
}

func convertToI64(c *gcheap.Collector, v rtval.Value) (rtval.Value, error) {
	switch src := v.(type) {
	case *rtval.I32:
		return rtval.NewI64(c, int64(src.V)), nil
	case *rtval.I64:
		return src, nil
	case *rtval.F64:
		return rtval.NewI64(c, int64(src.V)), nil
	default:
		return nil, diag.TypeMismatchf(diag.Pos{}, "cannot convert %s to i64", v)
	}
}

func convertToF64(c *gcheap.Collector, v rtval.Value) (rtval.Value, error) {
	switch src := v.(type) {
	case *rtval.I32:
		return rtval.NewF64(c, float64(src.V)), nil
	case *rtval.I64:
		return rtval.NewF64(c, float64(src.V)), nil
	case *rtval.F64:
		return src, nil
	default:
		return nil, diag.TypeMismatchf(diag.Pos{}, "cannot convert %s to f64", v)
	}
}
