// Package rtval implements the boxed runtime values a Constant AST node
// points at ("Constant: a pointer to a GC object holding the
// value"). Boxed values are themselves GC-managed — they embed
// gcheap.ObjHeader and register a (trivial, childless) GCObject facet
// impl, so the same allocator and collector that manage AST nodes also
// manage literal payloads.
package rtval

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/schematika/schematika/internal/facet"
	"github.com/schematika/schematika/internal/gcheap"
)

// Value is the capability every boxed runtime value provides beyond
// gcheap.Object: a human-readable rendering, used by the Printable facet
// and by diagnostics.
type Value interface {
	gcheap.Object
	String() string
}

// Typeseqs for the well-known boxed primitives, assigned once at package
// init and consulted by ast.Constant's make() to resolve a value's
// TypeDescr without the caller naming it explicitly.
var (
	BoolTypeseq   = facet.NewTypeseq("rtval.Bool")
	I32Typeseq    = facet.NewTypeseq("rtval.I32")
	I64Typeseq    = facet.NewTypeseq("rtval.I64")
	F64Typeseq    = facet.NewTypeseq("rtval.F64")
	StringTypeseq = facet.NewTypeseq("rtval.String")
	UnitTypeseq   = facet.NewTypeseq("rtval.Unit")
)

type Bool struct {
	gcheap.ObjHeader
	V bool
}

func (b *Bool) String() string { return fmt.Sprintf("%t", b.V) }

type I32 struct {
	gcheap.ObjHeader
	V int32
}

func (i *I32) String() string { return fmt.Sprintf("%d", i.V) }

type I64 struct {
	gcheap.ObjHeader
	V int64
}

func (i *I64) String() string { return fmt.Sprintf("%d", i.V) }

type F64 struct {
	gcheap.ObjHeader
	V float64
}

// String renders f with 'g' formatting, forcing a decimal point when the
// result would otherwise read back as an integer literal (scanNumber
// only produces a FloatLit token when it sees a '.' followed by a
// digit) — without this, printing 3.0 would re-lex as an i64 IntLit.
func (f *F64) String() string {
	s := big.NewFloat(f.V).Text('g', -1)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

type String struct {
	gcheap.ObjHeader
	V string
}

// String quotes and escapes V so it re-lexes as the same StringLit it
// came from (scanString requires a leading/trailing '"' and recognizes
// exactly \n, \t, \" and \\ — unescaped, a printed string constant would
// re-lex as a bare Ident instead).
func (s *String) String() string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s.V {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// Unit is the sole inhabitant of the unit/void type (an if-expression
// with no else branch evaluates to it).
type Unit struct {
	gcheap.ObjHeader
}

func (*Unit) String() string { return "()" }

const wordSize = uintptr(8)

func trivialVTable(ts facet.Typeseq, size uintptr) gcheap.VTable {
	return gcheap.VTable{
		ShallowSize: func(gcheap.Object) uintptr { return size },
		ShallowCopy: func(obj gcheap.Object) gcheap.Object {
			switch v := obj.(type) {
			case *Bool:
				cp := *v
				return &cp
			case *I32:
				cp := *v
				return &cp
			case *I64:
				cp := *v
				return &cp
			case *F64:
				cp := *v
				return &cp
			case *String:
				cp := *v
				return &cp
			case *Unit:
				cp := *v
				return &cp
			default:
				panic(fmt.Sprintf("rtval: unexpected concrete type for typeseq %d", ts))
			}
		},
		ForwardChildren: func(*gcheap.Collector, gcheap.Object) {
			// Boxed primitives hold no GC-managed children.
		},
	}
}

func init() {
	facet.Register(facet.GCObjectFacet, BoolTypeseq, trivialVTable(BoolTypeseq, wordSize))
	facet.Register(facet.GCObjectFacet, I32Typeseq, trivialVTable(I32Typeseq, wordSize))
	facet.Register(facet.GCObjectFacet, I64Typeseq, trivialVTable(I64Typeseq, wordSize))
	facet.Register(facet.GCObjectFacet, F64Typeseq, trivialVTable(F64Typeseq, wordSize))
	facet.Register(facet.GCObjectFacet, StringTypeseq, trivialVTable(StringTypeseq, wordSize))
	facet.Register(facet.GCObjectFacet, UnitTypeseq, trivialVTable(UnitTypeseq, wordSize))
}

// NewBool, NewI32, NewI64, NewF64, NewString allocate a boxed value
// through c, returning it already registered with the collector.
func NewBool(c *gcheap.Collector, v bool) *Bool {
	b := &Bool{V: v}
	c.Allocate(b, BoolTypeseq, wordSize)
	return b
}

func NewI32(c *gcheap.Collector, v int32) *I32 {
	i := &I32{V: v}
	c.Allocate(i, I32Typeseq, wordSize)
	return i
}

func NewI64(c *gcheap.Collector, v int64) *I64 {
	i := &I64{V: v}
	c.Allocate(i, I64Typeseq, wordSize)
	return i
}

func NewF64(c *gcheap.Collector, v float64) *F64 {
	f := &F64{V: v}
	c.Allocate(f, F64Typeseq, wordSize)
	return f
}

func NewString(c *gcheap.Collector, v string) *String {
	s := &String{V: v}
	c.Allocate(s, StringTypeseq, wordSize+uintptr(len(v)))
	return s
}

func NewUnit(c *gcheap.Collector) *Unit {
	u := &Unit{}
	c.Allocate(u, UnitTypeseq, wordSize)
	return u
}
