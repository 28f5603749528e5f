// Package interp implements the VSM, the virtual Schematika machine:
// the runtime activation-record protocol that walks AST expressions to
// values. Evaluation order is strict, left-to-right, inside-out: Apply
// evaluates its function expression, then each argument in declared
// order, then the body with the new local frame pushed.
package interp

import (
	"github.com/schematika/schematika/internal/facet"
	"github.com/schematika/schematika/internal/gcheap"
	"github.com/schematika/schematika/internal/rtval"
)

const wordSize = uintptr(8)

// Frame is the runtime counterpart of internal/symtab.LocalSymtab: one
// activation record per lambda call, holding bound argument values in
// the same slot order the static LocalSymtab assigned them, with a
// Parent link mirroring the static scope chain so a VarRef's
// (link_depth, slot_index) binding resolves identically at run time.
type Frame struct {
	gcheap.ObjHeader
	Parent *Frame
	Slots  []rtval.Value
}

var FrameTypeseq = facet.NewTypeseq("interp.Frame")

// NewFrame allocates a runtime frame chained to parent (the call site's
// lexical environment — nil at the top level), holding a copy of slots
// as its argument bindings. slots is copied up front, at construction
// time, rather than filled in after Allocate — the same convention
// internal/ast's constructors follow (e.g. NewApply takes its argument
// list directly) so a frame never needs a write barrier just to become
// populated.
func NewFrame(c *gcheap.Collector, parent *Frame, slots []rtval.Value) *Frame {
	f := &Frame{Parent: parent, Slots: append([]rtval.Value(nil), slots...)}
	c.Allocate(f, FrameTypeseq, wordSize*uintptr(2+len(f.Slots)), gcheap.SlotRoot(&f.Parent), gcheap.SliceRoot(&f.Slots))
	return f
}

// Lookup walks depth parent links from f and returns Slots[slot] at the
// frame it lands on — the runtime mirror of the lookup_binding
// recursion, consuming a Binding the parser already resolved rather than
// re-searching by name.
func (f *Frame) Lookup(depth, slot int) (rtval.Value, bool) {
	cur := f
	for i := 0; i < depth; i++ {
		if cur == nil {
			return nil, false
		}
		cur = cur.Parent
	}
	if cur == nil || slot < 0 || slot >= len(cur.Slots) {
		return nil, false
	}
	return cur.Slots[slot], true
}

func init() {
	facet.Register(facet.GCObjectFacet, FrameTypeseq, gcheap.VTable{
		ShallowSize: func(obj gcheap.Object) uintptr {
			f := obj.(*Frame)
			return wordSize*2 + wordSize*uintptr(len(f.Slots))
		},
		ShallowCopy: func(obj gcheap.Object) gcheap.Object {
			src := obj.(*Frame)
			cp := *src
			cp.Slots = append([]rtval.Value(nil), src.Slots...)
			return &cp
		},
		ForwardChildren: func(c *gcheap.Collector, obj gcheap.Object) {
			f := obj.(*Frame)
			if f.Parent != nil {
				f.Parent = c.ForwardInPlace(f.Parent).(*Frame)
			}
			for i, v := range f.Slots {
				if v != nil {
					f.Slots[i] = c.ForwardInPlace(v).(rtval.Value)
				}
			}
		},
	})
}
