package interp

import (
	"testing"

	"github.com/schematika/schematika/internal/ast"
	"github.com/schematika/schematika/internal/gcheap"
	"github.com/schematika/schematika/internal/rtval"
	"github.com/schematika/schematika/internal/strpool"
	"github.com/schematika/schematika/internal/symtab"
	"github.com/schematika/schematika/internal/typedescr"
)

func newTestCollector() *gcheap.Collector {
	return gcheap.New(1<<16, 1<<20)
}

func TestEvalConstant(t *testing.T) {
	c := newTestCollector()
	k := ast.NewConstant(c, "k", rtval.NewI64(c, 42))
	v, err := Eval(c, nil, nil, k)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	i, ok := v.(*rtval.I64)
	if !ok || i.V != 42 {
		t.Fatalf("got %v, want I64(42)", v)
	}
}

func TestEvalSequenceEmptyIsUnit(t *testing.T) {
	c := newTestCollector()
	seq := ast.NewSequence(c, "seq")
	v, err := Eval(c, nil, nil, seq)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if _, ok := v.(*rtval.Unit); !ok {
		t.Fatalf("got %v, want Unit", v)
	}
}

func TestEvalSequenceYieldsLast(t *testing.T) {
	c := newTestCollector()
	seq := ast.NewSequence(c, "seq")
	seq.PushBack(c, ast.NewConstant(c, "a", rtval.NewI64(c, 1)))
	seq.PushBack(c, ast.NewConstant(c, "b", rtval.NewI64(c, 2)))
	v, err := Eval(c, nil, nil, seq)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if i := v.(*rtval.I64); i.V != 2 {
		t.Fatalf("got %d, want 2", i.V)
	}
}

func TestEvalIfElseBothBranches(t *testing.T) {
	c := newTestCollector()
	mkIf := func(test bool) *ast.IfElse {
		return ast.NewIfElse(c, "if",
			ast.NewConstant(c, "t", rtval.NewBool(c, test)),
			ast.NewConstant(c, "wt", rtval.NewI64(c, 1)),
			ast.NewConstant(c, "wf", rtval.NewI64(c, 2)))
	}
	v, err := Eval(c, nil, nil, mkIf(true))
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if v.(*rtval.I64).V != 1 {
		t.Fatalf("true branch: got %v", v)
	}
	v, err = Eval(c, nil, nil, mkIf(false))
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if v.(*rtval.I64).V != 2 {
		t.Fatalf("false branch: got %v", v)
	}
}

func TestEvalIfNoElseIsUnitOnFalse(t *testing.T) {
	c := newTestCollector()
	ie := ast.NewIfElse(c, "if",
		ast.NewConstant(c, "t", rtval.NewBool(c, false)),
		ast.NewConstant(c, "wt", rtval.NewI64(c, 1)),
		nil)
	v, err := Eval(c, nil, nil, ie)
	if err != nil {
		t.Fatalf("Eval: %v", err)
	}
	if _, ok := v.(*rtval.Unit); !ok {
		t.Fatalf("got %v, want Unit", v)
	}
}

// buildAdder constructs `lambda(x: i64, y: i64) x + y;` using the
// primitive add2_i64 global the way internal/parser's progressFrame
// would, without going through the parser itself.
func buildAdder(t *testing.T, c *gcheap.Collector, pool *strpool.Pool, global *symtab.GlobalSymtab) *ast.Lambda {
	t.Helper()
	i64 := typedescr.Global().RequirePrimitive(typedescr.I64)

	params := symtab.NewLocal(c, global)
	xDef := params.Declare(c, pool.Intern("x"), "x")
	xDef.AssignValueType(i64)
	yDef := params.Declare(c, pool.Intern("y"), "y")
	yDef.AssignValueType(i64)

	xRef := ast.NewVarRef(c, xDef, 0)
	yRef := ast.NewVarRef(c, yDef, 0)

	addName := pool.Intern("add2_i64")
	addDef := global.DeclareGlobal(c, addName, "add2_i64")
	sig := typedescr.Global().RequireFunction(i64, []*typedescr.TypeDescr{i64, i64}, true)
	addDef.AssignValueType(sig)
	addRef := ast.NewVarRef(c, addDef, ast.GlobalLinkDepth)

	body := ast.NewApply(c, "body", addRef, []ast.Expression{xRef, yRef})
	return ast.NewLambda(c, "adder", pool.Intern("adder"), params, body)
}

func TestEvalApplyClosurePrimitive(t *testing.T) {
	c := newTestCollector()
	pool := strpool.New()
	global := symtab.NewGlobal(c)
	lam := buildAdder(t, c, pool, global)

	closureVal, err := Eval(c, nil, nil, lam)
	if err != nil {
		t.Fatalf("Eval lambda: %v", err)
	}
	if _, ok := closureVal.(*Closure); !ok {
		t.Fatalf("got %T, want *Closure", closureVal)
	}

	call := ast.NewApply(c, "call", lam, []ast.Expression{
		ast.NewConstant(c, "3", rtval.NewI64(c, 3)),
		ast.NewConstant(c, "4", rtval.NewI64(c, 4)),
	})
	g := NewGlobals(c, global)
	result, err := Eval(c, g, nil, call)
	if err != nil {
		t.Fatalf("Eval apply: %v", err)
	}
	i, ok := result.(*rtval.I64)
	if !ok || i.V != 7 {
		t.Fatalf("got %v, want I64(7)", result)
	}
}

func TestEvalApplyArgCountMismatch(t *testing.T) {
	c := newTestCollector()
	pool := strpool.New()
	global := symtab.NewGlobal(c)
	lam := buildAdder(t, c, pool, global)

	call := ast.NewApply(c, "call", lam, []ast.Expression{
		ast.NewConstant(c, "3", rtval.NewI64(c, 3)),
	})
	g := NewGlobals(c, global)
	if _, err := Eval(c, g, nil, call); err == nil {
		t.Fatal("expected an arity-mismatch error, got nil")
	}
}

func TestGlobalsInstallAndGet(t *testing.T) {
	c := newTestCollector()
	global := symtab.NewGlobal(c)
	g := NewGlobals(c, global)

	if _, ok := g.Get(3); ok {
		t.Fatal("Get on an unwritten slot should report false")
	}
	g.Install(3, rtval.NewI64(c, 99))
	v, ok := g.Get(3)
	if !ok || v.(*rtval.I64).V != 99 {
		t.Fatalf("got (%v, %v), want (I64(99), true)", v, ok)
	}
}

func TestEvalDefineInstallsGlobal(t *testing.T) {
	c := newTestCollector()
	pool := strpool.New()
	global := symtab.NewGlobal(c)
	g := NewGlobals(c, global)

	name := pool.Intern("answer")
	vd := global.DeclareGlobal(c, name, "answer")
	def := ast.NewDefine(c, vd, ast.NewConstant(c, "42", rtval.NewI64(c, 42)))

	if _, err := Eval(c, g, nil, def); err != nil {
		t.Fatalf("Eval define: %v", err)
	}
	v, ok := g.Get(vd.Binding.SlotIndex)
	if !ok || v.(*rtval.I64).V != 42 {
		t.Fatalf("got (%v, %v), want (I64(42), true)", v, ok)
	}
}

func TestConvertWidening(t *testing.T) {
	c := newTestCollector()
	i64 := typedescr.Global().RequirePrimitive(typedescr.I64)
	v, err := Convert(c, i64, rtval.NewI32(c, 7))
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if v.(*rtval.I64).V != 7 {
		t.Fatalf("got %v, want I64(7)", v)
	}
}

func TestConvertNarrowingTruncates(t *testing.T) {
	c := newTestCollector()
	i32 := typedescr.Global().RequirePrimitive(typedescr.I32)
	v, err := Convert(c, i32, rtval.NewF64(c, 7.9))
	if err != nil {
		t.Fatalf("Convert: %v", err)
	}
	if v.(*rtval.I32).V != 7 {
		t.Fatalf("got %v, want I32(7)", v)
	}
}

func TestEvalVarRefUnknownGlobal(t *testing.T) {
	c := newTestCollector()
	pool := strpool.New()
	global := symtab.NewGlobal(c)
	g := NewGlobals(c, global)

	// A VarRef whose VariableDef was declared but never installed.
	vd := global.DeclareGlobal(c, pool.Intern("late"), "late")
	ref := ast.NewVarRef(c, vd, ast.GlobalLinkDepth)
	if _, err := Eval(c, g, nil, ref); err == nil {
		t.Fatal("expected an error resolving an uninstalled global, got nil")
	}
}

func TestFrameLookupWalksParents(t *testing.T) {
	c := newTestCollector()
	outer := NewFrame(c, nil, []rtval.Value{rtval.NewI64(c, 1)})
	inner := NewFrame(c, outer, []rtval.Value{rtval.NewI64(c, 2)})

	v, ok := inner.Lookup(0, 0)
	if !ok || v.(*rtval.I64).V != 2 {
		t.Fatalf("depth 0: got (%v, %v)", v, ok)
	}
	v, ok = inner.Lookup(1, 0)
	if !ok || v.(*rtval.I64).V != 1 {
		t.Fatalf("depth 1: got (%v, %v)", v, ok)
	}
	if _, ok := inner.Lookup(2, 0); ok {
		t.Fatal("depth past the chain should report false")
	}
}
