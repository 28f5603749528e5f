package ast

import (
	"strings"

	"github.com/schematika/schematika/internal/facet"
	"github.com/schematika/schematika/internal/gcheap"
)

// Printer is a minimal structured-layout context for the Printable
// facet. It is deliberately small: the indented-layout engine a full
// pretty-printer would use is out of scope here — this is just enough
// machinery to support the pretty-print/re-parse round-trip law.
type Printer struct {
	b      strings.Builder
	indent int
}

func NewPrinter() *Printer { return &Printer{} }

func (p *Printer) Write(s string) { p.b.WriteString(s) }

func (p *Printer) Indent() {
	for i := 0; i < p.indent; i++ {
		p.b.WriteString("  ")
	}
}

func (p *Printer) Push() { p.indent++ }
func (p *Printer) Pop()  { p.indent-- }

func (p *Printer) String() string { return p.b.String() }

// PrintableVTable is the Printable facet's vtable.
type PrintableVTable struct {
	Print func(p *Printer, obj gcheap.Object)
}

// ExpressionVTable is the Expression facet's vtable: only TypeRef is
// exposed generically here — ValueType/AssignValueType are reached
// through the concrete Expression interface on the hot path, since
// every concrete variant already implements Expression directly. The
// facet entry exists so debug/diagnostic code that holds only a
// gcheap.Object handle (not knowing it is an Expression) can still ask
// "does this satisfy the Expression facet, and if so what's its
// TypeRef?" via facet.Variant.
type ExpressionVTable struct {
	TypeRef func(obj gcheap.Object) *TypeRef
}

// Print dispatches to the Printable facet impl registered for obj's
// concrete type, registry-lookup-then-invoke contract.
// Every AST variant's own pretty-printing goes through this single
// entry point rather than a method on Expression, so the facet registry
// is the sole mechanism by which printing happens (not a redundant path
// alongside a method of the same name).
func Print(p *Printer, obj Expression) {
	if obj == nil {
		p.Write("<nil>")
		return
	}
	ts := obj.Header().Typeseq()
	vt, err := facet.Variant[PrintableVTable](facet.PrintableFacet, ts)
	if err != nil {
		p.Write("<unprintable:" + facet.TypeName(ts) + ">")
		return
	}
	vt.Print(p, obj)
}

// PrettyPrint renders obj to its canonical textual form via the
// Printable facet, then re-parseable by the round-trip law.
func PrettyPrint(obj Expression) string {
	p := NewPrinter()
	Print(p, obj)
	return p.String()
}
