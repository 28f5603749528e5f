package ast

import (
	"github.com/schematika/schematika/internal/facet"
	"github.com/schematika/schematika/internal/gcheap"
	"github.com/schematika/schematika/internal/typedescr"
)

// Sequence holds an append-capable array of expressions:
// "{ e1; e2; ...; en }". Its value type is the type of its last element.
type Sequence struct {
	gcheap.ObjHeader
	Tref  TypeRef
	Exprs []Expression
}

func NewSequence(c *gcheap.Collector, placeholderName string) *Sequence {
	s := &Sequence{Tref: TypeRef{Name: placeholderName}}
	c.Allocate(s, SequenceTypeseq, wordSize, gcheap.SliceRoot(&s.Exprs))
	return s
}

// PushBack appends expr, doubling the backing array's capacity when
// full: a push_back on a sequence of capacity C at size C triggers
// exactly one growth to capacity 2C. Growth re-slices into a freshly
// allocated array and copies element pointers, mirroring the explicit
// doubling policy even though Go's own append() would happily amortize
// this for us — the explicit doubling keeps PushBack's growth behavior
// independently testable.
func (s *Sequence) PushBack(c *gcheap.Collector, expr Expression) {
	if len(s.Exprs) == cap(s.Exprs) {
		newCap := cap(s.Exprs) * 2
		if newCap == 0 {
			newCap = 1
		}
		grown := make([]Expression, len(s.Exprs), newCap)
		copy(grown, s.Exprs)
		s.Exprs = grown
	}
	s.Exprs = append(s.Exprs, expr)
	c.WriteBarrier(s, expr, gcheap.SliceRoot(&s.Exprs))
	if expr != nil {
		s.Tref.TD = expr.ValueType()
	}
}

func (s *Sequence) ExprKind() ExprKind                      { return KindSequence }
func (s *Sequence) TypeRef() *TypeRef                       { return &s.Tref }
func (s *Sequence) ValueType() *typedescr.TypeDescr          { return s.Tref.TD }
func (s *Sequence) AssignValueType(td *typedescr.TypeDescr) { s.Tref.TD = td }

func init() {
	facet.Register(facet.GCObjectFacet, SequenceTypeseq, gcheap.VTable{
		ShallowSize: func(obj gcheap.Object) uintptr {
			s := obj.(*Sequence)
			return wordSize + wordSize*uintptr(len(s.Exprs))
		},
		ShallowCopy: func(obj gcheap.Object) gcheap.Object {
			src := obj.(*Sequence)
			cp := *src
			cp.Exprs = append([]Expression(nil), src.Exprs...)
			return &cp
		},
		ForwardChildren: func(c *gcheap.Collector, obj gcheap.Object) {
			s := obj.(*Sequence)
			for i, e := range s.Exprs {
				if e != nil {
					s.Exprs[i] = c.ForwardInPlace(e).(Expression)
				}
			}
		},
	})
	facet.Register(facet.PrintableFacet, SequenceTypeseq, PrintableVTable{
		Print: func(p *Printer, obj gcheap.Object) {
			s := obj.(*Sequence)
			p.Write("{ ")
			for i, e := range s.Exprs {
				if i > 0 {
					p.Write("; ")
				}
				Print(p, e)
			}
			p.Write(" }")
		},
	})
	facet.Register(facet.ExpressionFacet, SequenceTypeseq, ExpressionVTable{
		TypeRef: func(obj gcheap.Object) *TypeRef { return &obj.(*Sequence).Tref },
	})
}
