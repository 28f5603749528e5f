package ast

import (
	"github.com/schematika/schematika/internal/facet"
	"github.com/schematika/schematika/internal/gcheap"
	"github.com/schematika/schematika/internal/typedescr"
)

// Apply is a function application: "fn(args...)". The original
// flexible-array-member payload (one allocation for header + n args)
// becomes a Go slice field — Go gives no safe way to emulate a C++ FAM,
// and a slice is the idiomatic replacement. ShallowSize still scales
// with len(Args) so the GC accounting contract is preserved even
// though the slice's backing array is owned by Go's own allocator, not
// this package's bump pointer.
type Apply struct {
	gcheap.ObjHeader
	Tref TypeRef
	Fn   Expression
	Args []Expression
}

func NewApply(c *gcheap.Collector, placeholderName string, fn Expression, args []Expression) *Apply {
	a := &Apply{Tref: TypeRef{Name: placeholderName}, Fn: fn, Args: args}
	c.Allocate(a, ApplyTypeseq, applySize(a), gcheap.SlotRoot(&a.Fn), gcheap.SliceRoot(&a.Args))
	return a
}

func applySize(a *Apply) uintptr {
	return wordSize*2 + wordSize*uintptr(len(a.Args))
}

func (a *Apply) ExprKind() ExprKind                      { return KindApply }
func (a *Apply) TypeRef() *TypeRef                       { return &a.Tref }
func (a *Apply) ValueType() *typedescr.TypeDescr          { return a.Tref.TD }
func (a *Apply) AssignValueType(td *typedescr.TypeDescr) { a.Tref.TD = td }

func init() {
	facet.Register(facet.GCObjectFacet, ApplyTypeseq, gcheap.VTable{
		ShallowSize: func(obj gcheap.Object) uintptr { return applySize(obj.(*Apply)) },
		ShallowCopy: func(obj gcheap.Object) gcheap.Object {
			src := obj.(*Apply)
			cp := *src
			cp.Args = append([]Expression(nil), src.Args...)
			return &cp
		},
		ForwardChildren: func(c *gcheap.Collector, obj gcheap.Object) {
			a := obj.(*Apply)
			if a.Fn != nil {
				a.Fn = c.ForwardInPlace(a.Fn).(Expression)
			}
			for i, arg := range a.Args {
				if arg != nil {
					a.Args[i] = c.ForwardInPlace(arg).(Expression)
				}
			}
		},
	})
	facet.Register(facet.PrintableFacet, ApplyTypeseq, PrintableVTable{
		Print: func(p *Printer, obj gcheap.Object) {
			a := obj.(*Apply)
			Print(p, a.Fn)
			p.Write("(")
			for i, arg := range a.Args {
				if i > 0 {
					p.Write(", ")
				}
				Print(p, arg)
			}
			p.Write(")")
		},
	})
	facet.Register(facet.ExpressionFacet, ApplyTypeseq, ExpressionVTable{
		TypeRef: func(obj gcheap.Object) *TypeRef { return &obj.(*Apply).Tref },
	})
}
