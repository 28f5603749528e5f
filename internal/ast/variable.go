package ast

import (
	"github.com/schematika/schematika/internal/facet"
	"github.com/schematika/schematika/internal/gcheap"
	"github.com/schematika/schematika/internal/strpool"
	"github.com/schematika/schematika/internal/typedescr"
)

// VariableDef names one lexical binding site: a formal parameter, or
// the left-hand side of a `def`/`let`. Its Binding is the canonical
// (link-depth, slot-index) any VarRef resolving to it must be able to
// reach by walking that many symbol-table parents.
type VariableDef struct {
	gcheap.ObjHeader
	Name    *strpool.UniqueString
	Tref    TypeRef
	Binding Binding
}

func NewVariableDef(c *gcheap.Collector, name *strpool.UniqueString, placeholderName string, binding Binding) *VariableDef {
	v := &VariableDef{Name: name, Tref: TypeRef{Name: placeholderName}, Binding: binding}
	c.Allocate(v, VariableDefTypeseq, wordSize*3)
	return v
}

func (v *VariableDef) ExprKind() ExprKind                      { return KindVariableDef }
func (v *VariableDef) TypeRef() *TypeRef                       { return &v.Tref }
func (v *VariableDef) ValueType() *typedescr.TypeDescr          { return v.Tref.TD }
func (v *VariableDef) AssignValueType(td *typedescr.TypeDescr) { v.Tref.TD = td }

func init() {
	facet.Register(facet.GCObjectFacet, VariableDefTypeseq, gcheap.VTable{
		ShallowSize: func(gcheap.Object) uintptr { return wordSize * 3 },
		ShallowCopy: func(obj gcheap.Object) gcheap.Object {
			src := obj.(*VariableDef)
			cp := *src
			return &cp
		},
		ForwardChildren: func(*gcheap.Collector, gcheap.Object) {
			// Name is interned (process lifetime, not GC-managed).
		},
	})
	facet.Register(facet.PrintableFacet, VariableDefTypeseq, PrintableVTable{
		Print: func(p *Printer, obj gcheap.Object) {
			v := obj.(*VariableDef)
			p.Write(v.Name.Text())
			// Only primitive annotations are printed: the parser's type
			// syntax names primitive types only.
			if v.Tref.Resolved() {
				if _, ok := v.Tref.TD.Primitive(); ok {
					p.Write(" : ")
					p.Write(v.Tref.String())
				}
			}
		},
	})
	facet.Register(facet.ExpressionFacet, VariableDefTypeseq, ExpressionVTable{
		TypeRef: func(obj gcheap.Object) *TypeRef { return &obj.(*VariableDef).Tref },
	})
}
