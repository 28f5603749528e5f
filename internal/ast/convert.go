package ast

import (
	"github.com/schematika/schematika/internal/facet"
	"github.com/schematika/schematika/internal/gcheap"
	"github.com/schematika/schematika/internal/typedescr"
)

// Convert carries a destination type and the argument to convert. The
// specific widening/narrowing rules are determined by the interpreter
// at application time; this node merely records the intent. The table
// that governs which conversions are legal lives in internal/interp,
// not here.
type Convert struct {
	gcheap.ObjHeader
	Tref     TypeRef
	DestType *typedescr.TypeDescr
	Arg      Expression
}

func NewConvert(c *gcheap.Collector, destType *typedescr.TypeDescr, arg Expression) *Convert {
	cv := &Convert{Tref: TypeRef{Name: destType.String(), TD: destType}, DestType: destType, Arg: arg}
	c.Allocate(cv, ConvertTypeseq, wordSize*2, gcheap.SlotRoot(&cv.Arg))
	return cv
}

func (cv *Convert) ExprKind() ExprKind { return KindConvert }
func (cv *Convert) TypeRef() *TypeRef  { return &cv.Tref }

func (cv *Convert) ValueType() *typedescr.TypeDescr { return cv.Tref.TD }

func (cv *Convert) AssignValueType(td *typedescr.TypeDescr) {
	cv.Tref.TD = td
	cv.DestType = td
}

func init() {
	facet.Register(facet.GCObjectFacet, ConvertTypeseq, gcheap.VTable{
		ShallowSize: func(gcheap.Object) uintptr { return wordSize * 2 },
		ShallowCopy: func(obj gcheap.Object) gcheap.Object {
			src := obj.(*Convert)
			cp := *src
			return &cp
		},
		ForwardChildren: func(c *gcheap.Collector, obj gcheap.Object) {
			cv := obj.(*Convert)
			if cv.Arg != nil {
				cv.Arg = c.ForwardInPlace(cv.Arg).(Expression)
			}
		},
	})
	facet.Register(facet.PrintableFacet, ConvertTypeseq, PrintableVTable{
		Print: func(p *Printer, obj gcheap.Object) {
			cv := obj.(*Convert)
			p.Write("(")
			p.Write(cv.DestType.String())
			p.Write(")")
			Print(p, cv.Arg)
		},
	})
	facet.Register(facet.ExpressionFacet, ConvertTypeseq, ExpressionVTable{
		TypeRef: func(obj gcheap.Object) *TypeRef { return &obj.(*Convert).Tref },
	})
}
