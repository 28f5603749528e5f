package ast

import (
	"github.com/schematika/schematika/internal/facet"
	"github.com/schematika/schematika/internal/gcheap"
	"github.com/schematika/schematika/internal/typedescr"
)

// Define owns a VariableDef in Lhs; Rhs is an expression whose type is
// the variable's type. AssignValueType on a Define flows through and
// assigns the same TypeDescr to the underlying VariableDef.
type Define struct {
	gcheap.ObjHeader
	Lhs *VariableDef
	Rhs Expression
}

func NewDefine(c *gcheap.Collector, lhs *VariableDef, rhs Expression) *Define {
	d := &Define{Lhs: lhs, Rhs: rhs}
	c.Allocate(d, DefineTypeseq, wordSize*2, gcheap.SlotRoot(&d.Lhs), gcheap.SlotRoot(&d.Rhs))
	return d
}

func (d *Define) ExprKind() ExprKind { return KindDefine }
func (d *Define) TypeRef() *TypeRef  { return &d.Lhs.Tref }

func (d *Define) ValueType() *typedescr.TypeDescr { return d.Lhs.Tref.TD }

func (d *Define) AssignValueType(td *typedescr.TypeDescr) {
	d.Lhs.Tref.TD = td
}

func init() {
	facet.Register(facet.GCObjectFacet, DefineTypeseq, gcheap.VTable{
		ShallowSize: func(gcheap.Object) uintptr { return wordSize * 2 },
		ShallowCopy: func(obj gcheap.Object) gcheap.Object {
			src := obj.(*Define)
			cp := *src
			return &cp
		},
		ForwardChildren: func(c *gcheap.Collector, obj gcheap.Object) {
			d := obj.(*Define)
			if d.Lhs != nil {
				d.Lhs = c.ForwardInPlace(d.Lhs).(*VariableDef)
			}
			if d.Rhs != nil {
				d.Rhs = c.ForwardInPlace(d.Rhs).(Expression)
			}
		},
	})
	facet.Register(facet.PrintableFacet, DefineTypeseq, PrintableVTable{
		Print: func(p *Printer, obj gcheap.Object) {
			d := obj.(*Define)
			p.Write("def ")
			Print(p, d.Lhs)
			p.Write(" = ")
			Print(p, d.Rhs)
			p.Write(";")
		},
	})
	facet.Register(facet.ExpressionFacet, DefineTypeseq, ExpressionVTable{
		TypeRef: func(obj gcheap.Object) *TypeRef { return &obj.(*Define).Lhs.Tref },
	})
}
