package interp

import (
	"testing"

	"github.com/schematika/schematika/internal/rtval"
)

func TestDispatchPrimitiveArithmeticAndComparison(t *testing.T) {
	c := newTestCollector()
	cases := []struct {
		stem, tag string
		args      []rtval.Value
		want      string
	}{
		{"add2", "i32", []rtval.Value{rtval.NewI32(c, 2), rtval.NewI32(c, 3)}, "5"},
		{"sub2", "i64", []rtval.Value{rtval.NewI64(c, 10), rtval.NewI64(c, 4)}, "6"},
		{"mul2", "f64", []rtval.Value{rtval.NewF64(c, 1.5), rtval.NewF64(c, 2)}, "3.0"},
		{"div2", "i64", []rtval.Value{rtval.NewI64(c, 9), rtval.NewI64(c, 3)}, "3"},
		{"eq2", "string", []rtval.Value{rtval.NewString(c, "a"), rtval.NewString(c, "a")}, "true"},
		{"ne2", "bool", []rtval.Value{rtval.NewBool(c, true), rtval.NewBool(c, false)}, "true"},
		{"lt2", "i32", []rtval.Value{rtval.NewI32(c, 1), rtval.NewI32(c, 2)}, "true"},
		{"and2", "bool", []rtval.Value{rtval.NewBool(c, true), rtval.NewBool(c, false)}, "false"},
		{"or2", "bool", []rtval.Value{rtval.NewBool(c, false), rtval.NewBool(c, false)}, "false"},
	}
	for _, tc := range cases {
		fn := &PrimitiveFn{Stem: tc.stem, Tag: tc.tag}
		got, err := dispatchPrimitive(c, fn, tc.args)
		if err != nil {
			t.Errorf("%s_%s: %v", tc.stem, tc.tag, err)
			continue
		}
		if got.String() != tc.want {
			t.Errorf("%s_%s = %s, want %s", tc.stem, tc.tag, got.String(), tc.want)
		}
	}
}

func TestDispatchPrimitiveUnregisteredCombination(t *testing.T) {
	c := newTestCollector()
	fn := &PrimitiveFn{Stem: "add2", Tag: "string"}
	args := []rtval.Value{rtval.NewString(c, "a"), rtval.NewString(c, "b")}
	if _, err := dispatchPrimitive(c, fn, args); err == nil {
		t.Fatal("expected an error for a stem/tag pair with no registered implementation")
	}
}

func TestDispatchPrimitiveWrongArgCount(t *testing.T) {
	c := newTestCollector()
	fn := &PrimitiveFn{Stem: "add2", Tag: "i64"}
	if _, err := dispatchPrimitive(c, fn, []rtval.Value{rtval.NewI64(c, 1)}); err == nil {
		t.Fatal("expected an arity error with only one argument")
	}
}

func TestDispatchPrimitiveTypeMismatch(t *testing.T) {
	c := newTestCollector()
	fn := &PrimitiveFn{Stem: "add2", Tag: "i64"}
	args := []rtval.Value{rtval.NewI64(c, 1), rtval.NewBool(c, true)}
	if _, err := dispatchPrimitive(c, fn, args); err == nil {
		t.Fatal("expected a type-mismatch error mixing i64 and bool operands")
	}
}
