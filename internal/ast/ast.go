// Package ast implements the Schematika AST: a sum type of expression
// variants, each carrying a TypeRef, heap-allocated through
// internal/gcheap and named through internal/strpool. Variants are
// ordinary Go struct types rather than a class hierarchy — a facet
// registry stands in for `dynamic_cast`; ExprKind plus a type switch
// stands in for the tag a discriminated union would carry in a
// language with native sum types.
package ast

import (
	"fmt"

	"github.com/schematika/schematika/internal/facet"
	"github.com/schematika/schematika/internal/gcheap"
	"github.com/schematika/schematika/internal/strpool"
	"github.com/schematika/schematika/internal/typedescr"
)

// ExprKind discriminates the nine expression variants.
type ExprKind int

const (
	KindConstant ExprKind = iota
	KindVariableDef
	KindVarRef
	KindApply
	KindLambda
	KindIfElse
	KindSequence
	KindDefine
	KindConvert
)

func (k ExprKind) String() string {
	names := [...]string{"Constant", "VariableDef", "VarRef", "Apply", "Lambda", "IfElse", "Sequence", "Define", "Convert"}
	if int(k) < len(names) {
		return names[k]
	}
	return fmt.Sprintf("ExprKind(%d)", int(k))
}

// TypeRef is (unique-name, TypeDescr?): before inference TD
// is nil and Name is a fresh placeholder like "if:7"; after inference TD
// is set and never changes again.
type TypeRef struct {
	Name string
	TD   *typedescr.TypeDescr
}

func (t *TypeRef) Resolved() bool { return t != nil && t.TD != nil }

func (t *TypeRef) String() string {
	if t == nil {
		return "<no-typeref>"
	}
	if t.TD != nil {
		return t.TD.String()
	}
	return t.Name
}

// Binding is (link-depth, slot-index). LinkDepth -1 means a
// global binding, 0 the current frame, and a positive count the number
// of enclosing lexical scopes to cross.
type Binding struct {
	LinkDepth int
	SlotIndex int
}

const GlobalLinkDepth = -1

func (b Binding) IsGlobal() bool { return b.LinkDepth == GlobalLinkDepth }

func (b Binding) String() string {
	if b.IsGlobal() {
		return fmt.Sprintf("(global,%d)", b.SlotIndex)
	}
	return fmt.Sprintf("(%d,%d)", b.LinkDepth, b.SlotIndex)
}

// SymbolTable is the minimal structural contract Lambda needs from its
// local symbol table and Define/the parser need from whichever scope
// they're resolving against. internal/symtab provides the concrete
// LocalSymtab/GlobalSymtab implementations; this interface lives here
// (rather than being imported from symtab) so that ast does not depend
// on symtab — symtab depends on ast for *VariableDef instead, avoiding
// an import cycle between the two components lists side by side.
type SymbolTable interface {
	gcheap.Object
	IsGlobalEnv() bool
	LookupBinding(name *strpool.UniqueString) (Binding, bool)
	// Names returns the ordered formal-parameter names for a local
	// scope (nil for the global scope), used by the Printable facet to
	// render a Lambda's argument list.
	Names() []*strpool.UniqueString
	// Params returns the ordered formal-parameter VariableDefs for a
	// local scope (nil for the global scope) — the Printable facet
	// prints each one through its own Print impl so a formal's type
	// annotation round-trips the same way a top-level def's does.
	Params() []*VariableDef
}

// SymbolTableVTable is the SymbolTable facet's vtable, mirroring
// ExpressionVTable's rationale: lets code holding only a
// gcheap.Object handle ask whether it satisfies the SymbolTable facet
// without an import on internal/symtab's concrete types.
type SymbolTableVTable struct {
	IsGlobalEnv   func(obj gcheap.Object) bool
	LookupBinding func(obj gcheap.Object, name *strpool.UniqueString) (Binding, bool)
}

// Expression is the capability every AST variant implements: its
// ExprKind tag, its TypeRef, and getting/setting its resolved value
// type.
type Expression interface {
	gcheap.Object
	ExprKind() ExprKind
	TypeRef() *TypeRef
	ValueType() *typedescr.TypeDescr
	AssignValueType(td *typedescr.TypeDescr)
}

// Typeseqs for the nine concrete variants, assigned once at package init
// and used as the facet registry's dispatch key.
var (
	ConstantTypeseq    = facet.NewTypeseq("ast.Constant")
	VariableDefTypeseq = facet.NewTypeseq("ast.VariableDef")
	VarRefTypeseq      = facet.NewTypeseq("ast.VarRef")
	ApplyTypeseq       = facet.NewTypeseq("ast.Apply")
	LambdaTypeseq      = facet.NewTypeseq("ast.Lambda")
	IfElseTypeseq      = facet.NewTypeseq("ast.IfElse")
	SequenceTypeseq    = facet.NewTypeseq("ast.Sequence")
	DefineTypeseq      = facet.NewTypeseq("ast.Define")
	ConvertTypeseq     = facet.NewTypeseq("ast.Convert")
)

const wordSize = uintptr(8)
