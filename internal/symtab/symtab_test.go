package symtab

import (
	"testing"

	"github.com/schematika/schematika/internal/ast"
	"github.com/schematika/schematika/internal/gcheap"
	"github.com/schematika/schematika/internal/strpool"
)

func TestLocalSymtabDeclareAndLookup(t *testing.T) {
	c := gcheap.New(1<<20, 1<<20)
	pool := strpool.New()
	local := NewLocal(c, nil)

	xName := pool.Intern("x")
	local.Declare(c, xName, "vd:x")
	yName := pool.Intern("y")
	local.Declare(c, yName, "vd:y")

	b, ok := local.LookupBinding(xName)
	if !ok || b.LinkDepth != 0 || b.SlotIndex != 0 {
		t.Fatalf("LookupBinding(x) = (%v, %v), want ((0,0), true)", b, ok)
	}
	b, ok = local.LookupBinding(yName)
	if !ok || b.SlotIndex != 1 {
		t.Fatalf("LookupBinding(y) = (%v, %v), want slot 1", b, ok)
	}

	if _, ok := local.LookupBinding(pool.Intern("z")); ok {
		t.Fatalf("LookupBinding(z) should fail: z was never declared")
	}
}

func TestLocalSymtabWalksParentChain(t *testing.T) {
	c := gcheap.New(1<<20, 1<<20)
	pool := strpool.New()
	outer := NewLocal(c, nil)
	outerName := pool.Intern("outer")
	outer.Declare(c, outerName, "vd:outer")

	inner := NewLocal(c, outer)
	innerName := pool.Intern("inner")
	inner.Declare(c, innerName, "vd:inner")

	b, ok := inner.LookupBinding(innerName)
	if !ok || b.LinkDepth != 0 {
		t.Fatalf("a name declared in the innermost scope should resolve at depth 0, got %v", b)
	}
	b, ok = inner.LookupBinding(outerName)
	if !ok || b.LinkDepth != 1 {
		t.Fatalf("a name declared one scope up should resolve at depth 1, got %v", b)
	}
}

func TestGlobalSymtabUpsertReusesSlot(t *testing.T) {
	c := gcheap.New(1<<20, 1<<20)
	pool := strpool.New()
	g := NewGlobal(c)
	name := pool.Intern("counter")

	vd1 := g.DeclareGlobal(c, name, "vd:1")
	firstBinding := vd1.Binding

	vd2 := g.DeclareGlobal(c, name, "vd:2")
	if vd2 != vd1 {
		t.Fatalf("DeclareGlobal on an already-declared name must return the existing VariableDef")
	}
	if vd2.Binding != firstBinding {
		t.Fatalf("re-declaring should not move the slot: got %v, want %v", vd2.Binding, firstBinding)
	}

	replacement := ast.NewVariableDef(c, name, "vd:3", firstBinding)
	newBinding := g.Upsert(c, name, replacement)
	if newBinding.SlotIndex != firstBinding.SlotIndex {
		t.Fatalf("Upsert on an existing name must reuse its slot")
	}
	got, ok := g.Lookup(name)
	if !ok || got != replacement {
		t.Fatalf("Lookup should return the most recent Upsert")
	}
}

func TestGlobalSymtabLookupBindingIsGlobal(t *testing.T) {
	c := gcheap.New(1<<20, 1<<20)
	pool := strpool.New()
	g := NewGlobal(c)
	name := pool.Intern("x")
	g.DeclareGlobal(c, name, "vd:x")

	b, ok := g.LookupBinding(name)
	if !ok || !b.IsGlobal() {
		t.Fatalf("a global binding must report IsGlobal(), got %v", b)
	}
}

func TestResolveVarRefAcrossLocalAndGlobalScopes(t *testing.T) {
	c := gcheap.New(1<<20, 1<<20)
	pool := strpool.New()
	g := NewGlobal(c)
	globalName := pool.Intern("g")
	g.DeclareGlobal(c, globalName, "vd:g")

	outer := NewLocal(c, g)
	localName := pool.Intern("l")
	outer.Declare(c, localName, "vd:l")
	inner := NewLocal(c, outer)

	ref, ok := ResolveVarRef(c, inner, localName)
	if !ok {
		t.Fatalf("ResolveVarRef should find %q through the local parent chain", "l")
	}
	if ref.Binding.LinkDepth != 1 {
		t.Fatalf("ResolveVarRef(l) from inner should cross one scope, got link depth %d", ref.Binding.LinkDepth)
	}

	gref, ok := ResolveVarRef(c, inner, globalName)
	if !ok || !gref.Binding.IsGlobal() {
		t.Fatalf("ResolveVarRef(g) should resolve to a global binding, got (%v, %v)", gref, ok)
	}

	if _, ok := ResolveVarRef(c, inner, pool.Intern("undeclared")); ok {
		t.Fatalf("ResolveVarRef on an undeclared name must fail")
	}
}

func TestGensymProducesDistinctNames(t *testing.T) {
	pool := strpool.New()
	a := Gensym(pool, "let1")
	b := Gensym(pool, "let1")
	if strpool.Same(a, b) {
		t.Fatalf("two Gensym calls with the same prefix must not collide")
	}
}
