package ast

import (
	"github.com/schematika/schematika/internal/diag"
	"github.com/schematika/schematika/internal/facet"
	"github.com/schematika/schematika/internal/gcheap"
	"github.com/schematika/schematika/internal/typedescr"
)

// IfElse is a conditional. WhenFalse is nil for a value-less if: when
// when_false is null the if-expression's value type is unit/void.
type IfElse struct {
	gcheap.ObjHeader
	Tref      TypeRef
	Test      Expression
	WhenTrue  Expression
	WhenFalse Expression // nil => no else branch
}

// UnifyBranchTypes decides how an if/else's two branch types unify:
// accept if structurally equal, else report which branch a Convert node
// should widen and to what type (first result: target for when_false;
// second: target for when_true; nil means no conversion), else fail with
// TypeMismatch. It builds no Convert node itself. widens reports whether
// `from` can be implicitly widened to `to`; it is supplied by the caller
// so this package does not depend on inference machinery. The parser
// does not call it.
func UnifyBranchTypes(trueTD, falseTD *typedescr.TypeDescr, widens func(from, to *typedescr.TypeDescr) bool) (*typedescr.TypeDescr, *typedescr.TypeDescr, error) {
	if trueTD == falseTD {
		return nil, nil, nil // equal already; caller leaves both branches untouched
	}
	if widens(falseTD, trueTD) {
		return trueTD, nil, nil // convert when_false up to when_true's type
	}
	if widens(trueTD, falseTD) {
		return nil, falseTD, nil // convert when_true up to when_false's type
	}
	return nil, nil, diag.TypeMismatchf(diag.Pos{}, "if/else branches have incompatible types %s and %s", trueTD, falseTD)
}

func NewIfElse(c *gcheap.Collector, placeholderName string, test, whenTrue, whenFalse Expression) *IfElse {
	ie := &IfElse{Tref: TypeRef{Name: placeholderName}, Test: test, WhenTrue: whenTrue, WhenFalse: whenFalse}
	c.Allocate(ie, IfElseTypeseq, wordSize*3,
		gcheap.SlotRoot(&ie.Test), gcheap.SlotRoot(&ie.WhenTrue), gcheap.SlotRoot(&ie.WhenFalse))
	if whenFalse == nil {
		ie.Tref.TD = typedescr.Global().RequirePrimitive(typedescr.Unit)
	}
	return ie
}

func (ie *IfElse) ExprKind() ExprKind                      { return KindIfElse }
func (ie *IfElse) TypeRef() *TypeRef                       { return &ie.Tref }
func (ie *IfElse) ValueType() *typedescr.TypeDescr          { return ie.Tref.TD }
func (ie *IfElse) AssignValueType(td *typedescr.TypeDescr) { ie.Tref.TD = td }

func init() {
	facet.Register(facet.GCObjectFacet, IfElseTypeseq, gcheap.VTable{
		ShallowSize: func(gcheap.Object) uintptr { return wordSize * 3 },
		ShallowCopy: func(obj gcheap.Object) gcheap.Object {
			src := obj.(*IfElse)
			cp := *src
			return &cp
		},
		ForwardChildren: func(c *gcheap.Collector, obj gcheap.Object) {
			ie := obj.(*IfElse)
			if ie.Test != nil {
				ie.Test = c.ForwardInPlace(ie.Test).(Expression)
			}
			if ie.WhenTrue != nil {
				ie.WhenTrue = c.ForwardInPlace(ie.WhenTrue).(Expression)
			}
			if ie.WhenFalse != nil {
				ie.WhenFalse = c.ForwardInPlace(ie.WhenFalse).(Expression)
			}
		},
	})
	facet.Register(facet.PrintableFacet, IfElseTypeseq, PrintableVTable{
		Print: func(p *Printer, obj gcheap.Object) {
			ie := obj.(*IfElse)
			p.Write("if ")
			Print(p, ie.Test)
			p.Write(" then ")
			Print(p, ie.WhenTrue)
			if ie.WhenFalse != nil {
				p.Write(" else ")
				Print(p, ie.WhenFalse)
			}
			// The terminating ';' is shared with the enclosing form.
		},
	})
	facet.Register(facet.ExpressionFacet, IfElseTypeseq, ExpressionVTable{
		TypeRef: func(obj gcheap.Object) *TypeRef { return &obj.(*IfElse).Tref },
	})
}
