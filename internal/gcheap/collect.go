package gcheap

import "github.com/schematika/schematika/internal/facet"

// RequestGC runs one collection. upto Nursery performs a minor
// collection: nursery survivors are promoted
// into tenured, and tenured objects are treated as already-stable (their
// own outgoing pointers are reached only via the remembered set, not by
// re-tracing every tenured object). upto Tenured performs a major
// collection: tenured objects are additionally re-copied into a fresh
// logical tenured space, compacting it and dropping anything no root or
// remembered-set entry still reaches.
//
// extraRoots are transient roots local to the calling frame (e.g. local
// variables live in the interpreter's current activation record) that
// are not worth registering persistently with AddRoot.
func (c *Collector) RequestGC(upto Generation, extraRoots ...Root) {
	c.major = upto == Tenured
	c.queue = c.queue[:0]

	if c.major {
		c.tenured.Allocated = 0 // compacting: rebuilt below as objects are forwarded
	}

	// Root enumeration + forwarding.
	for _, r := range c.roots {
		r(c)
	}
	for _, r := range extraRoots {
		r(c)
	}

	// Write-barrier drain: remembered-set entries are roots of equivalent
	// precision.
	for _, r := range c.remembered {
		r(c)
	}
	c.remembered = c.remembered[:0]

	// Tracing: drain the trace queue breadth-first.
	for len(c.queue) > 0 {
		obj := c.queue[0]
		c.queue = c.queue[1:]

		h := obj.Header()
		vt := facet.MustLookup[VTable](facet.GCObjectFacet, h.typeseq)
		size := vt.ShallowSize(obj)

		if h.gen == Tenured {
			c.tenured.BytesScanned += uint64(size)
		} else {
			c.nursery.BytesScanned += uint64(size)
		}
		vt.ForwardChildren(c, obj)
	}

	// Flip: the nursery's free pointer resets to 0.
	c.nursery.Allocated = 0
	c.nursery.Collections++
	if c.major {
		c.tenured.Collections++
	}
}

// ForwardInPlace is the collector's single forwarding primitive: if obj
// has already been copied this collection, return
// the copy; otherwise copy it (unless it is a stable tenured object
// during a minor collection, in which case it is returned unchanged) and
// enqueue the copy for tracing.
func (c *Collector) ForwardInPlace(obj Object) Object {
	if obj == nil {
		return nil
	}
	h := obj.Header()

	if h.forward != nil {
		return h.forward.self
	}

	if h.gen == Tenured && !c.major {
		// Minor collection: tenured objects are stable. Their outgoing
		// pointers into the nursery are reached via the remembered set,
		// not by tracing this object directly.
		return obj
	}

	srcGen := h.gen
	vt := facet.MustLookup[VTable](facet.GCObjectFacet, h.typeseq)
	size := vt.ShallowSize(obj)

	copyObj := vt.ShallowCopy(obj)
	newHeader := copyObj.Header()
	newHeader.typeseq = h.typeseq
	newHeader.gen = Tenured
	newHeader.forward = nil
	newHeader.self = copyObj

	h.forward = newHeader

	c.tenured.BytesSurviving += uint64(size)
	if srcGen == Nursery {
		c.tenured.BytesPromoted += uint64(size)
		c.stats.TotalPromoted += uint64(size)
	}
	c.tenured.Allocated += uint64(size)

	c.queue = append(c.queue, copyObj)
	return copyObj
}

// WriteBarrier must be called whenever a GC-managed field is assigned a
// new value (the write barrier). writer is the object whose
// field is being mutated; writee is the new value being stored (nil if
// the field is being cleared). root, if writee is non-nil and the
// barrier decides logging is needed, is the closure that will re-forward
// that exact field on the next collection.
func (c *Collector) WriteBarrier(writer Object, writee Object, root Root) {
	c.stats.Mutations++

	if writer == nil {
		return
	}
	wh := writer.Header()
	if wh.forward != nil {
		c.stats.CrossCheckpointMutations++
	}

	if writee == nil {
		return
	}
	weh := writee.Header()
	if wh.gen == Tenured && weh.gen == Nursery {
		c.stats.CrossGenerationMutations++
		c.stats.LoggedMutations++
		c.remembered = append(c.remembered, root)
	}
}
