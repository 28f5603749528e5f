// Package gcheap implements the generational, moving, precise garbage
// collector: bump-style allocation into a nursery, promotion of
// survivors into a tenured generation, snapshot-at-beginning (SAB)
// collection, a generational write barrier with a remembered set, and
// per-type forward/copy hooks dispatched through the facet registry
// (internal/facet).
//
// Objects are ordinary Go values; the collector does not manage raw
// memory (Go already owns that). What it reproduces faithfully is the
// *protocol*: root enumeration, forwarding-pointer installation, a trace
// queue drained breadth-first, and a statistics table. A concrete
// type's inline variable-length argument array becomes a Go slice
// field; its ShallowSize hook still reports a size that scales with
// the slice, so the accounting contract is preserved even though Go,
// not this package, owns the slice's backing array.
package gcheap

import (
	"github.com/schematika/schematika/internal/facet"
)

// Generation names an age cohort.
type Generation int

const (
	Nursery Generation = iota
	Tenured
)

func (g Generation) String() string {
	if g == Tenured {
		return "tenured"
	}
	return "nursery"
}

// ObjHeader is embedded as the first field of every GC-managed type. It
// carries the concrete-type tag, the forwarding word, and the owning
// generation, matching the per-block header.
type ObjHeader struct {
	typeseq facet.Typeseq
	gen     Generation
	forward *ObjHeader
	self    Object
}

// Typeseq returns the concrete-type tag recorded in this header.
func (h *ObjHeader) Typeseq() facet.Typeseq { return h.typeseq }

// Generation returns the generation this object currently lives in.
func (h *ObjHeader) Generation() Generation { return h.gen }

// Header satisfies Object for any type that embeds ObjHeader by value.
func (h *ObjHeader) Header() *ObjHeader { return h }

// Object is the minimal capability every GC-managed value provides: a
// pointer back to its own header. Concrete AST/runtime types satisfy
// this automatically by embedding ObjHeader.
type Object interface {
	Header() *ObjHeader
}

// VTable is the GCObject facet's vtable: shallow_size, shallow_copy and
// forward_children for one concrete type.
type VTable struct {
	// ShallowSize returns the logical byte footprint of obj, used only
	// for accounting statistics, not for real allocation.
	ShallowSize func(obj Object) uintptr

	// ShallowCopy returns a new Object of the same concrete type, with a
	// fresh zero-value ObjHeader, holding a field-for-field copy of obj.
	// Child GC pointers are copied as-is (still pointing at from-space);
	// ForwardChildren is responsible for rewriting them.
	ShallowCopy func(obj Object) Object

	// ForwardChildren walks obj's GC-managed fields, calling
	// c.ForwardInPlace on each and writing the (possibly new) pointer
	// back. obj here is always a to-space copy (the argument passed to
	// the most recent ShallowCopy), never a from-space original.
	ForwardChildren func(c *Collector, obj Object)
}

// Root is one entry in the GC root set: a closure that knows how to
// locate its own slot and rewrite it via c.ForwardInPlace. Persistent
// roots (the global symbol table, the live call-frame chain) are
// registered once with AddRoot; transient roots local to one call can be
// passed directly to RequestGC.
type Root func(c *Collector)

// Stats mirrors the statistics table exactly.
type Stats struct {
	TotalAllocated           uint64
	TotalPromoted            uint64
	Mutations                uint64
	LoggedMutations          uint64
	CrossGenerationMutations uint64
	CrossCheckpointMutations uint64
}

// GenStats is the per-generation half of the statistics table.
type GenStats struct {
	Reserved       uint64
	Allocated      uint64
	Committed      uint64
	Collections    uint64
	BytesScanned   uint64
	BytesSurviving uint64
	BytesPromoted  uint64
}

// Collector is the GC instance; Default() below exposes a process-wide
// one, though nothing requires using it over a caller-owned instance.
type Collector struct {
	nursery GenStats
	tenured GenStats
	stats   Stats

	roots     []Root
	remembered []Root

	// transient collection state, valid only while a collection is
	// in flight
	major bool
	queue []Object
}

// New returns a freshly configured Collector. nurseryCap and tenuredCap
// are soft capacity thresholds in logical bytes (see VTable.ShallowSize);
// the Allocate call that takes the nursery past nurseryCap runs a minor
// collection before it returns.
func New(nurseryCap, tenuredCap uint64) *Collector {
	c := &Collector{}
	c.nursery.Reserved = nurseryCap
	c.nursery.Committed = nurseryCap
	c.tenured.Reserved = tenuredCap
	c.tenured.Committed = tenuredCap
	return c
}

var defaultCollector = New(1<<20, 1<<24)

// Default returns the process-global collector instance.
func Default() *Collector { return defaultCollector }

// NurseryStats and TenuredStats expose a snapshot of per-generation
// statistics for diagnostics and tests.
func (c *Collector) NurseryStats() GenStats { return c.nursery }
func (c *Collector) TenuredStats() GenStats { return c.tenured }
func (c *Collector) GlobalStats() Stats     { return c.stats }

// AddRoot registers a persistent GC root, added to the worklist on every
// subsequent collection until the process ends.
func (c *Collector) AddRoot(r Root) {
	c.roots = append(c.roots, r)
}
