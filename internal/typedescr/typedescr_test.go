package typedescr

import "testing"

func TestRequirePrimitiveIsInterned(t *testing.T) {
	tbl := New()
	a := tbl.RequirePrimitive(I64)
	b := tbl.RequirePrimitive(I64)
	if a != b {
		t.Fatalf("RequirePrimitive(I64) returned distinct pointers")
	}
	if a.String() != "i64" {
		t.Fatalf("String() = %q, want i64", a.String())
	}
}

func TestRequireFunctionInterning(t *testing.T) {
	tbl := New()
	i64 := tbl.RequirePrimitive(I64)

	f1 := tbl.RequireFunction(i64, []*TypeDescr{i64, i64}, false)
	f2 := tbl.RequireFunction(i64, []*TypeDescr{i64, i64}, false)
	if f1 != f2 {
		t.Fatalf("RequireFunction returned distinct pointers for equal signatures")
	}

	f3 := tbl.RequireFunction(i64, []*TypeDescr{i64, i64}, true)
	if f1 == f3 {
		t.Fatalf("differing nothrow flag must produce a distinct descriptor")
	}

	ret, args, nothrow, ok := f1.IsFunction()
	if !ok || ret != i64 || len(args) != 2 || nothrow {
		t.Fatalf("IsFunction() = (%v, %v, %v, %v), unexpected shape", ret, args, nothrow, ok)
	}

	if got := f1.String(); got != "(i64,i64)->i64" {
		t.Fatalf("String() = %q, want (i64,i64)->i64", got)
	}
}

func TestRequireArrayInterning(t *testing.T) {
	tbl := New()
	f64 := tbl.RequirePrimitive(F64)
	a1 := tbl.RequireArray(f64)
	a2 := tbl.RequireArray(f64)
	if a1 != a2 {
		t.Fatalf("RequireArray returned distinct pointers for the same element type")
	}
	if got := a1.String(); got != "[f64]" {
		t.Fatalf("String() = %q, want [f64]", got)
	}
	elem, ok := a1.Elem()
	if !ok || elem != f64 {
		t.Fatalf("Elem() = (%v, %v), want (f64, true)", elem, ok)
	}
}

func TestRequireStructInterningByFieldLayout(t *testing.T) {
	tbl := New()
	i32 := tbl.RequirePrimitive(I32)
	bo := tbl.RequirePrimitive(Bool)

	s1 := tbl.RequireStruct("Point", []Field{{Name: "x", Type: i32}, {Name: "ok", Type: bo}})
	s2 := tbl.RequireStruct("Point", []Field{{Name: "x", Type: i32}, {Name: "ok", Type: bo}})
	if s1 != s2 {
		t.Fatalf("RequireStruct returned distinct pointers for identical layouts")
	}

	s3 := tbl.RequireStruct("Point", []Field{{Name: "ok", Type: bo}, {Name: "x", Type: i32}})
	if s1 == s3 {
		t.Fatalf("differing field order must produce a distinct descriptor")
	}

	fields, ok := s1.Fields()
	if !ok || len(fields) != 2 {
		t.Fatalf("Fields() = (%v, %v), unexpected shape", fields, ok)
	}
}

func TestPrimitiveAndElemAndFieldsRejectWrongKind(t *testing.T) {
	tbl := New()
	i64 := tbl.RequirePrimitive(I64)
	fn := tbl.RequireFunction(i64, nil, false)

	if _, ok := fn.Primitive(); ok {
		t.Fatalf("Primitive() on a function descriptor should fail")
	}
	if _, ok := fn.Elem(); ok {
		t.Fatalf("Elem() on a function descriptor should fail")
	}
	if _, ok := fn.Fields(); ok {
		t.Fatalf("Fields() on a function descriptor should fail")
	}
	if _, _, _, ok := i64.IsFunction(); ok {
		t.Fatalf("IsFunction() on a primitive descriptor should fail")
	}
}

func TestGlobalTableIsShared(t *testing.T) {
	a := Global().RequirePrimitive(Unit)
	b := Global().RequirePrimitive(Unit)
	if a != b {
		t.Fatalf("Global() table did not intern consistently across calls")
	}
}

func TestLenCountsPrimitivesAndDerived(t *testing.T) {
	tbl := New()
	base := tbl.Len() // six built-in primitives
	if base != 6 {
		t.Fatalf("Len() after New() = %d, want 6", base)
	}
	tbl.RequireArray(tbl.RequirePrimitive(Str))
	if got := tbl.Len(); got != base+1 {
		t.Fatalf("Len() after one RequireArray = %d, want %d", got, base+1)
	}
}
