package interp

import (
	"github.com/schematika/schematika/internal/gcheap"
	"github.com/schematika/schematika/internal/rtval"
	"github.com/schematika/schematika/internal/symtab"
)

// Globals tracks runtime values for top-level definitions, alongside the
// static symtab.GlobalSymtab the parser already builds. GlobalSymtab.Defs
// only ever holds the *ast.VariableDef shell DeclareGlobal/Upsert install
// (the table maps name to the Expression that *declares* a
// slot, not to the value the slot currently holds) — a top-level Define's
// Rhs is handed to the caller as that statement's parse Result and never
// written back into the table. Globals.values is the parallel array that
// actually holds what each slot evaluates to; the driver that evaluates a
// Define is responsible for calling Install right after.
type Globals struct {
	Table  *symtab.GlobalSymtab
	values []rtval.Value
}

// NewGlobals registers g.values as a persistent GC root: top-level slot
// values are never reachable from the Eval call stack the way a lambda's
// local Frame chain is, so without this every def'd value would desync
// from the forwarding graph the first time a minor collection runs.
func NewGlobals(c *gcheap.Collector, table *symtab.GlobalSymtab) *Globals {
	g := &Globals{Table: table}
	c.AddRoot(gcheap.SliceRoot(&g.values))
	return g
}

// Install records v as the current value of global slot. Slots are dense
// and grow monotonically (symtab.GlobalSymtab.Upsert/DeclareGlobal only
// ever append), so Install grows values on demand.
func (g *Globals) Install(slot int, v rtval.Value) {
	if slot >= len(g.values) {
		grown := make([]rtval.Value, slot+1)
		copy(grown, g.values)
		g.values = grown
	}
	g.values[slot] = v
}

// Get returns the value previously Installed at slot, or false if the
// slot has been declared but never given a value yet (e.g. a forward
// reference to a def later in the same translation unit).
func (g *Globals) Get(slot int) (rtval.Value, bool) {
	if slot < 0 || slot >= len(g.values) {
		return nil, false
	}
	v := g.values[slot]
	return v, v != nil
}
