package interp

import (
	"github.com/schematika/schematika/internal/ast"
	"github.com/schematika/schematika/internal/facet"
	"github.com/schematika/schematika/internal/gcheap"
)

// Closure is the runtime value an evaluated Lambda produces: the static
// definition paired with the Frame active at the point of definition, so
// a VarRef inside Lam.Body whose link depth reaches past the call's own
// argument frame resolves against the defining environment rather than
// the calling one (lexical, not dynamic, scoping).
//
// Closure cannot live in internal/rtval: rtval.Value must not depend on
// internal/ast (ast already depends on rtval, via Constant), so the
// runtime value that wraps an *ast.Lambda belongs here instead.
type Closure struct {
	gcheap.ObjHeader
	Lam *ast.Lambda
	Env *Frame
}

var ClosureTypeseq = facet.NewTypeseq("interp.Closure")

func NewClosure(c *gcheap.Collector, lam *ast.Lambda, env *Frame) *Closure {
	cl := &Closure{Lam: lam, Env: env}
	c.Allocate(cl, ClosureTypeseq, wordSize*3, gcheap.SlotRoot(&cl.Env))
	return cl
}

func (cl *Closure) String() string {
	if cl.Lam != nil && cl.Lam.Name != nil {
		return "<closure " + cl.Lam.Name.Text() + ">"
	}
	return "<closure>"
}

// PrimitiveFn is the runtime value a primitive-operator VarRef evaluates
// to (the generated names like add2_i64, recognized via
// parser.IsPrimitiveOpName). It carries no executable code of its own;
// Eval's Apply case dispatches on Stem against the primitives table.
type PrimitiveFn struct {
	gcheap.ObjHeader
	Stem string
	Tag  string // the operand-type suffix, e.g. "i64", used to key the dispatch table
}

var PrimitiveFnTypeseq = facet.NewTypeseq("interp.PrimitiveFn")

func NewPrimitiveFn(c *gcheap.Collector, stem, tag string) *PrimitiveFn {
	p := &PrimitiveFn{Stem: stem, Tag: tag}
	c.Allocate(p, PrimitiveFnTypeseq, wordSize*2)
	return p
}

func (p *PrimitiveFn) String() string { return p.Stem + "_" + p.Tag }

func init() {
	facet.Register(facet.GCObjectFacet, ClosureTypeseq, gcheap.VTable{
		ShallowSize: func(gcheap.Object) uintptr { return wordSize * 3 },
		ShallowCopy: func(obj gcheap.Object) gcheap.Object {
			src := obj.(*Closure)
			cp := *src
			return &cp
		},
		ForwardChildren: func(c *gcheap.Collector, obj gcheap.Object) {
			cl := obj.(*Closure)
			if cl.Env != nil {
				cl.Env = c.ForwardInPlace(cl.Env).(*Frame)
			}
			// Lam is a static AST node reachable from the program's root
			// set independently; it is not forwarded through a value.
		},
	})
	facet.Register(facet.GCObjectFacet, PrimitiveFnTypeseq, gcheap.VTable{
		ShallowSize: func(gcheap.Object) uintptr { return wordSize * 2 },
		ShallowCopy: func(obj gcheap.Object) gcheap.Object {
			src := obj.(*PrimitiveFn)
			cp := *src
			return &cp
		},
		ForwardChildren: func(*gcheap.Collector, gcheap.Object) {},
	})
}
