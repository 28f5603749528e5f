package gcheap

import (
	"github.com/schematika/schematika/internal/diag"
	"github.com/schematika/schematika/internal/facet"
)

// Allocate installs obj into the nursery: stamps its header with ts and
// Nursery, accounts size bytes against the nursery's bump pointer, and
// triggers a minor collection if the nursery is over capacity — a bump
// allocator expressed as a logical byte counter rather than a raw
// pointer, since Go owns obj's real storage.
//
// Allocate panics with a TypeNotInstalled diagnostic if ts was never
// registered as a GCObject facet impl; that is a program bug, not a
// recoverable condition, so it is reported the same way
// InternalInvariant failures are (see internal/diag).
func (c *Collector) Allocate(obj Object, ts facet.Typeseq, size uintptr, extraRoots ...Root) {
	if !facet.Has(facet.GCObjectFacet, ts) {
		panic(diag.NotInstalled("gcheap: typeseq %d (%s) has no GCObject facet impl", ts, facet.TypeName(ts)))
	}
	h := obj.Header()
	h.typeseq = ts
	h.gen = Nursery
	h.forward = nil
	h.self = obj

	c.nursery.Allocated += uint64(size)
	c.stats.TotalAllocated += uint64(size)

	if c.nursery.Allocated > c.nursery.Reserved {
		c.RequestGC(Nursery, extraRoots...)
	}
}

// shallowSizeOf looks up obj's registered ShallowSize hook and evaluates
// it. Panics (InternalInvariant) if the facet is missing — that can only
// happen if Allocate's own check above was bypassed.
func shallowSizeOf(obj Object) uintptr {
	h := obj.Header()
	vt := facet.MustLookup[VTable](facet.GCObjectFacet, h.typeseq)
	return vt.ShallowSize(obj)
}
