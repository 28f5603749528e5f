// Package symtab implements the two symbol-table shapes the runtime
// needs: a LocalSymtab per lambda scope holding its formal parameters in
// declaration order, and a single process-wide GlobalSymtab. Both
// implement ast.SymbolTable by structural typing — this package depends
// on ast (for *ast.VariableDef and ast.Binding), never the reverse.
package symtab

import (
	"github.com/schematika/schematika/internal/ast"
	"github.com/schematika/schematika/internal/facet"
	"github.com/schematika/schematika/internal/gcheap"
	"github.com/schematika/schematika/internal/strpool"
)

const wordSize = uintptr(8)

var (
	LocalSymtabTypeseq  = facet.NewTypeseq("symtab.LocalSymtab")
	GlobalSymtabTypeseq = facet.NewTypeseq("symtab.GlobalSymtab")
)

// LocalSymtab is one lexical scope's ordered formal-parameter list plus a
// link to the enclosing scope (Binding is (link_depth,
// slot_index); a lookup that misses here recurses into Parent with depth
// incremented by one crossed scope).
type LocalSymtab struct {
	gcheap.ObjHeader
	Parent ast.SymbolTable // nil only when declared directly under the global scope
	Vars   []*ast.VariableDef
}

func NewLocal(c *gcheap.Collector, parent ast.SymbolTable) *LocalSymtab {
	t := &LocalSymtab{Parent: parent}
	c.Allocate(t, LocalSymtabTypeseq, wordSize, gcheap.SlotRoot(&t.Parent), gcheap.SliceRoot(&t.Vars))
	return t
}

// Declare appends a fresh VariableDef bound to (0, len(Vars)); the slot
// index is assigned once at declaration time and never changes.
func (t *LocalSymtab) Declare(c *gcheap.Collector, name *strpool.UniqueString, placeholderName string) *ast.VariableDef {
	slot := len(t.Vars)
	v := ast.NewVariableDef(c, name, placeholderName, ast.Binding{LinkDepth: 0, SlotIndex: slot})
	t.Vars = append(t.Vars, v)
	c.WriteBarrier(t, v, gcheap.SliceRoot(&t.Vars))
	return v
}

func (t *LocalSymtab) IsGlobalEnv() bool { return false }

func (t *LocalSymtab) Names() []*strpool.UniqueString {
	names := make([]*strpool.UniqueString, len(t.Vars))
	for i, v := range t.Vars {
		names[i] = v.Name
	}
	return names
}

func (t *LocalSymtab) Params() []*ast.VariableDef { return t.Vars }

// LookupBinding checks this scope's own formals first (link-depth 0
// relative to t); failing that, it delegates to Parent and bumps the
// returned depth by one — unless the hit was global, since a global
// binding's depth (-1) is a sentinel, not a distance, and stays fixed no
// matter how many local scopes it's crossed to reach.
func (t *LocalSymtab) LookupBinding(name *strpool.UniqueString) (ast.Binding, bool) {
	for _, v := range t.Vars {
		if strpool.Same(v.Name, name) {
			return v.Binding, true
		}
	}
	if t.Parent == nil {
		return ast.Binding{}, false
	}
	b, ok := t.Parent.LookupBinding(name)
	if !ok {
		return ast.Binding{}, false
	}
	if b.IsGlobal() {
		return b, true
	}
	return ast.Binding{LinkDepth: b.LinkDepth + 1, SlotIndex: b.SlotIndex}, true
}

// GlobalSymtab is the single top-level scope: a name-to-bound-expression
// map with no parent and no link-depth, since every global
// reference resolves to ast.GlobalLinkDepth regardless of how many local
// scopes it was crossed from.
type GlobalSymtab struct {
	gcheap.ObjHeader
	order []*strpool.UniqueString
	slots map[*strpool.UniqueString]int
	Defs  []ast.Expression
}

func NewGlobal(c *gcheap.Collector) *GlobalSymtab {
	g := &GlobalSymtab{slots: make(map[*strpool.UniqueString]int)}
	c.Allocate(g, GlobalSymtabTypeseq, wordSize, gcheap.SliceRoot(&g.Defs))
	return g
}

func (g *GlobalSymtab) IsGlobalEnv() bool { return true }

func (g *GlobalSymtab) Names() []*strpool.UniqueString { return g.order }

// Params is nil for the global scope: Lambda.Params is always a
// LocalSymtab, and nothing else in this package prints through it.
func (g *GlobalSymtab) Params() []*ast.VariableDef { return nil }

func (g *GlobalSymtab) LookupBinding(name *strpool.UniqueString) (ast.Binding, bool) {
	slot, ok := g.slots[name]
	if !ok {
		return ast.Binding{}, false
	}
	return ast.Binding{LinkDepth: ast.GlobalLinkDepth, SlotIndex: slot}, true
}

// Upsert binds name to def: a re-`def` of an already-declared name
// replaces the definition in its existing slot, otherwise a fresh slot
// is appended.
func (g *GlobalSymtab) Upsert(c *gcheap.Collector, name *strpool.UniqueString, def ast.Expression) ast.Binding {
	if slot, ok := g.slots[name]; ok {
		g.Defs[slot] = def
		c.WriteBarrier(g, def, gcheap.SliceRoot(&g.Defs))
		return ast.Binding{LinkDepth: ast.GlobalLinkDepth, SlotIndex: slot}
	}
	slot := len(g.Defs)
	g.order = append(g.order, name)
	g.slots[name] = slot
	g.Defs = append(g.Defs, def)
	c.WriteBarrier(g, def, gcheap.SliceRoot(&g.Defs))
	return ast.Binding{LinkDepth: ast.GlobalLinkDepth, SlotIndex: slot}
}

// Lookup returns the bound Expression for name, if any. The interpreter
// does not use it: it reads global values by slot from interp.Globals.
func (g *GlobalSymtab) Lookup(name *strpool.UniqueString) (ast.Expression, bool) {
	slot, ok := g.slots[name]
	if !ok {
		return nil, false
	}
	return g.Defs[slot], true
}

// LookupVarDef returns the VariableDef bound to name, if the slot holds
// one — global definitions always do, since DeclareGlobal is the only
// producer of fresh global slots and it always stores a *ast.VariableDef.
func (g *GlobalSymtab) LookupVarDef(name *strpool.UniqueString) (*ast.VariableDef, bool) {
	slot, ok := g.slots[name]
	if !ok {
		return nil, false
	}
	vd, ok := g.Defs[slot].(*ast.VariableDef)
	return vd, ok
}

// DeclareGlobal installs a fresh VariableDef for name at the top level,
// bound to (GlobalLinkDepth, slot), or returns the existing one if name
// was already declared — re-`def` reuses the slot.
func (g *GlobalSymtab) DeclareGlobal(c *gcheap.Collector, name *strpool.UniqueString, placeholderName string) *ast.VariableDef {
	if slot, ok := g.slots[name]; ok {
		if vd, ok := g.Defs[slot].(*ast.VariableDef); ok {
			return vd
		}
	}
	vd := ast.NewVariableDef(c, name, placeholderName, ast.Binding{LinkDepth: ast.GlobalLinkDepth, SlotIndex: len(g.Defs)})
	g.Upsert(c, name, vd)
	return vd
}

// ResolveVarRef walks scope (a chain of LocalSymtabs ending at a
// GlobalSymtab) for name, returning a freshly allocated VarRef bound to
// whichever VariableDef defines it, or false if name is undeclared
// anywhere in the chain (the UnknownVariable condition).
func ResolveVarRef(c *gcheap.Collector, scope ast.SymbolTable, name *strpool.UniqueString) (*ast.VarRef, bool) {
	link := 0
	for cur := scope; cur != nil; {
		switch t := cur.(type) {
		case *LocalSymtab:
			for _, v := range t.Vars {
				if strpool.Same(v.Name, name) {
					return ast.NewVarRef(c, v, link), true
				}
			}
			cur = t.Parent
			link++
		case *GlobalSymtab:
			if vd, ok := t.LookupVarDef(name); ok {
				return ast.NewVarRef(c, vd, ast.GlobalLinkDepth), true
			}
			return nil, false
		default:
			return nil, false
		}
	}
	return nil, false
}

func init() {
	facet.Register(facet.GCObjectFacet, LocalSymtabTypeseq, gcheap.VTable{
		ShallowSize: func(obj gcheap.Object) uintptr {
			t := obj.(*LocalSymtab)
			return wordSize + wordSize*uintptr(len(t.Vars))
		},
		ShallowCopy: func(obj gcheap.Object) gcheap.Object {
			src := obj.(*LocalSymtab)
			cp := *src
			cp.Vars = append([]*ast.VariableDef(nil), src.Vars...)
			return &cp
		},
		ForwardChildren: func(c *gcheap.Collector, obj gcheap.Object) {
			t := obj.(*LocalSymtab)
			if t.Parent != nil {
				t.Parent = c.ForwardInPlace(t.Parent).(ast.SymbolTable)
			}
			for i, v := range t.Vars {
				if v != nil {
					t.Vars[i] = c.ForwardInPlace(v).(*ast.VariableDef)
				}
			}
		},
	})
	facet.Register(facet.SymbolTableFacet, LocalSymtabTypeseq, ast.SymbolTableVTable{
		IsGlobalEnv: func(obj gcheap.Object) bool { return obj.(*LocalSymtab).IsGlobalEnv() },
		LookupBinding: func(obj gcheap.Object, name *strpool.UniqueString) (ast.Binding, bool) {
			return obj.(*LocalSymtab).LookupBinding(name)
		},
	})
	facet.Register(facet.PrintableFacet, LocalSymtabTypeseq, ast.PrintableVTable{
		Print: func(p *ast.Printer, obj gcheap.Object) {
			t := obj.(*LocalSymtab)
			p.Write("(")
			for i, v := range t.Vars {
				if i > 0 {
					p.Write(", ")
				}
				p.Write(v.Name.Text())
			}
			p.Write(")")
		},
	})

	facet.Register(facet.GCObjectFacet, GlobalSymtabTypeseq, gcheap.VTable{
		ShallowSize: func(obj gcheap.Object) uintptr {
			g := obj.(*GlobalSymtab)
			return wordSize + wordSize*uintptr(len(g.Defs))
		},
		ShallowCopy: func(obj gcheap.Object) gcheap.Object {
			src := obj.(*GlobalSymtab)
			cp := *src
			cp.Defs = append([]ast.Expression(nil), src.Defs...)
			cp.order = append([]*strpool.UniqueString(nil), src.order...)
			cp.slots = make(map[*strpool.UniqueString]int, len(src.slots))
			for k, v := range src.slots {
				cp.slots[k] = v
			}
			return &cp
		},
		ForwardChildren: func(c *gcheap.Collector, obj gcheap.Object) {
			g := obj.(*GlobalSymtab)
			for i, d := range g.Defs {
				if d != nil {
					g.Defs[i] = c.ForwardInPlace(d).(ast.Expression)
				}
			}
		},
	})
	facet.Register(facet.SymbolTableFacet, GlobalSymtabTypeseq, ast.SymbolTableVTable{
		IsGlobalEnv: func(obj gcheap.Object) bool { return obj.(*GlobalSymtab).IsGlobalEnv() },
		LookupBinding: func(obj gcheap.Object, name *strpool.UniqueString) (ast.Binding, bool) {
			return obj.(*GlobalSymtab).LookupBinding(name)
		},
	})
	facet.Register(facet.PrintableFacet, GlobalSymtabTypeseq, ast.PrintableVTable{
		Print: func(p *ast.Printer, obj gcheap.Object) {
			g := obj.(*GlobalSymtab)
			for _, n := range g.order {
				p.Write(n.Text())
				p.Write(" ")
			}
		},
	})
}
