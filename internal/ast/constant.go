package ast

import (
	"github.com/schematika/schematika/internal/facet"
	"github.com/schematika/schematika/internal/gcheap"
	"github.com/schematika/schematika/internal/rtval"
	"github.com/schematika/schematika/internal/typedescr"
)

// Constant is a literal value. Its TypeRef is resolved eagerly from a
// small table mapping well-known boxed-value typeseqs to their
// TypeDescr; an unrecognized value typeseq leaves the TypeRef
// unresolved, to be supplied later by type inference.
type Constant struct {
	gcheap.ObjHeader
	Tref  TypeRef
	Value rtval.Value
}

// wellKnownConstantTypes maps a boxed value's typeseq to its primitive
// TypeDescr.
var wellKnownConstantTypes = map[facet.Typeseq]typedescr.Tag{
	rtval.BoolTypeseq:   typedescr.Bool,
	rtval.I32Typeseq:    typedescr.I32,
	rtval.I64Typeseq:    typedescr.I64,
	rtval.F64Typeseq:    typedescr.F64,
	rtval.StringTypeseq: typedescr.Str,
	rtval.UnitTypeseq:   typedescr.Unit,
}

// NewConstant builds a Constant over value, allocating it through c. If
// value's typeseq is not one of the well-known boxed primitives, Tref is
// left unresolved (Name is still set to a synthetic placeholder) so a
// later type-inference pass can fill it in.
func NewConstant(c *gcheap.Collector, placeholderName string, value rtval.Value) *Constant {
	k := &Constant{Tref: TypeRef{Name: placeholderName}, Value: value}
	if tag, ok := wellKnownConstantTypes[value.Header().Typeseq()]; ok {
		k.Tref.TD = typedescr.Global().RequirePrimitive(tag)
	}
	c.Allocate(k, ConstantTypeseq, wordSize*2, gcheap.SlotRoot(&k.Value))
	return k
}

func (k *Constant) ExprKind() ExprKind { return KindConstant }
func (k *Constant) TypeRef() *TypeRef  { return &k.Tref }
func (k *Constant) ValueType() *typedescr.TypeDescr {
	return k.Tref.TD
}
func (k *Constant) AssignValueType(td *typedescr.TypeDescr) { k.Tref.TD = td }

func init() {
	facet.Register(facet.GCObjectFacet, ConstantTypeseq, gcheap.VTable{
		ShallowSize: func(gcheap.Object) uintptr { return wordSize * 2 },
		ShallowCopy: func(obj gcheap.Object) gcheap.Object {
			src := obj.(*Constant)
			cp := *src
			return &cp
		},
		ForwardChildren: func(c *gcheap.Collector, obj gcheap.Object) {
			k := obj.(*Constant)
			if k.Value != nil {
				k.Value = c.ForwardInPlace(k.Value).(rtval.Value)
			}
		},
	})
	facet.Register(facet.PrintableFacet, ConstantTypeseq, PrintableVTable{
		Print: func(p *Printer, obj gcheap.Object) {
			k := obj.(*Constant)
			p.Write(k.Value.String())
		},
	})
	facet.Register(facet.ExpressionFacet, ConstantTypeseq, ExpressionVTable{
		TypeRef: func(obj gcheap.Object) *TypeRef { return &obj.(*Constant).Tref },
	})
}
