package ast

import (
	"github.com/schematika/schematika/internal/facet"
	"github.com/schematika/schematika/internal/gcheap"
	"github.com/schematika/schematika/internal/strpool"
	"github.com/schematika/schematika/internal/typedescr"
)

// Lambda is a function literal: a generated name, the local symbol
// table holding its formal parameters, and a body. Its
// TypeDescr is the function signature assembled from
// (body.typeref, [p.typeref for p in params], nothrow=false) once every
// parameter type and the body type have been resolved — AssembleFunctionType
// below computes exactly that; the parser builds the same signature
// directly with RequireFunction when it closes a lambda.
type Lambda struct {
	gcheap.ObjHeader
	Tref   TypeRef
	Name   *strpool.UniqueString
	Params SymbolTable
	Body   Expression
}

func NewLambda(c *gcheap.Collector, placeholderName string, name *strpool.UniqueString, params SymbolTable, body Expression) *Lambda {
	l := &Lambda{Tref: TypeRef{Name: placeholderName}, Name: name, Params: params, Body: body}
	c.Allocate(l, LambdaTypeseq, wordSize*3, gcheap.SlotRoot(&l.Body), gcheap.SlotRoot(&l.Params))
	return l
}

func (l *Lambda) ExprKind() ExprKind                      { return KindLambda }
func (l *Lambda) TypeRef() *TypeRef                       { return &l.Tref }
func (l *Lambda) ValueType() *typedescr.TypeDescr          { return l.Tref.TD }
func (l *Lambda) AssignValueType(td *typedescr.TypeDescr) { l.Tref.TD = td }

// AssembleFunctionType returns the function signature for a body TypeRef
// and the formals' TypeRefs (in declared order), or nil while the body
// or any formal is still unresolved.
func AssembleFunctionType(body *TypeRef, params []*TypeRef) *typedescr.TypeDescr {
	if !body.Resolved() {
		return nil
	}
	argTDs := make([]*typedescr.TypeDescr, len(params))
	for i, p := range params {
		if !p.Resolved() {
			return nil
		}
		argTDs[i] = p.TD
	}
	return typedescr.Global().RequireFunction(body.TD, argTDs, false)
}

func init() {
	facet.Register(facet.GCObjectFacet, LambdaTypeseq, gcheap.VTable{
		ShallowSize: func(gcheap.Object) uintptr { return wordSize * 3 },
		ShallowCopy: func(obj gcheap.Object) gcheap.Object {
			src := obj.(*Lambda)
			cp := *src
			return &cp
		},
		ForwardChildren: func(c *gcheap.Collector, obj gcheap.Object) {
			l := obj.(*Lambda)
			if l.Body != nil {
				l.Body = c.ForwardInPlace(l.Body).(Expression)
			}
			if l.Params != nil {
				l.Params = c.ForwardInPlace(l.Params).(SymbolTable)
			}
		},
	})
	facet.Register(facet.PrintableFacet, LambdaTypeseq, PrintableVTable{
		Print: func(p *Printer, obj gcheap.Object) {
			l := obj.(*Lambda)
			p.Write("lambda(")
			for i, v := range l.Params.Params() {
				if i > 0 {
					p.Write(", ")
				}
				Print(p, v)
			}
			p.Write(") ")
			Print(p, l.Body)
			// The ';' that ends a lambda is shared with the enclosing form
			// (Define prints it), so none is written here.
		},
	})
	facet.Register(facet.ExpressionFacet, LambdaTypeseq, ExpressionVTable{
		TypeRef: func(obj gcheap.Object) *TypeRef { return &obj.(*Lambda).Tref },
	})
}
