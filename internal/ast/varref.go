package ast

import (
	"github.com/schematika/schematika/internal/facet"
	"github.com/schematika/schematika/internal/gcheap"
	"github.com/schematika/schematika/internal/typedescr"
)

// VarRef is a reference to a VariableDef. Its own Binding is the
// reference-site view: link-depth may be larger than
// vardef.Binding.LinkDepth because the reference can sit in a more
// deeply nested lexical scope than the definition.
type VarRef struct {
	gcheap.ObjHeader
	VarDef  *VariableDef
	Binding Binding
}

// NewVarRef constructs a reference whose binding is
// (link, vardef.Binding.SlotIndex).
func NewVarRef(c *gcheap.Collector, vardef *VariableDef, link int) *VarRef {
	r := &VarRef{VarDef: vardef, Binding: Binding{LinkDepth: link, SlotIndex: vardef.Binding.SlotIndex}}
	c.Allocate(r, VarRefTypeseq, wordSize*2, gcheap.SlotRoot(&r.VarDef))
	return r
}

func (r *VarRef) ExprKind() ExprKind { return KindVarRef }

// TypeRef is inherited from the referenced VariableDef.
func (r *VarRef) TypeRef() *TypeRef { return &r.VarDef.Tref }

func (r *VarRef) ValueType() *typedescr.TypeDescr { return r.VarDef.Tref.TD }

func (r *VarRef) AssignValueType(td *typedescr.TypeDescr) { r.VarDef.Tref.TD = td }

func init() {
	facet.Register(facet.GCObjectFacet, VarRefTypeseq, gcheap.VTable{
		ShallowSize: func(gcheap.Object) uintptr { return wordSize * 2 },
		ShallowCopy: func(obj gcheap.Object) gcheap.Object {
			src := obj.(*VarRef)
			cp := *src
			return &cp
		},
		ForwardChildren: func(c *gcheap.Collector, obj gcheap.Object) {
			r := obj.(*VarRef)
			if r.VarDef != nil {
				r.VarDef = c.ForwardInPlace(r.VarDef).(*VariableDef)
			}
		},
	})
	facet.Register(facet.PrintableFacet, VarRefTypeseq, PrintableVTable{
		Print: func(p *Printer, obj gcheap.Object) {
			r := obj.(*VarRef)
			p.Write(r.VarDef.Name.Text())
		},
	})
	facet.Register(facet.ExpressionFacet, VarRefTypeseq, ExpressionVTable{
		TypeRef: func(obj gcheap.Object) *TypeRef { return obj.(*VarRef).TypeRef() },
	})
}
