package gcheap

import "reflect"

// isNilObject reports whether o is a nil interface or an interface
// holding a nil pointer (a slot typed as a concrete pointer type that
// has not been assigned yet).
func isNilObject(o Object) bool {
	if o == nil {
		return true
	}
	v := reflect.ValueOf(o)
	return v.Kind() == reflect.Pointer && v.IsNil()
}

// SlotRoot builds a Root over a single GC-pointer-typed field or
// variable. T is typically an interface (e.g. ast.Expression) whose
// method set includes Object's Header() method; slot is the address of
// the field/variable holding the current pointer. Package ast's
// constructors pass such roots to Allocate as extra roots, and callers
// of AddRoot/RequestGC that want to protect a local variable build
// their roots this way rather than hand-writing the forward/reassign
// dance each time.
func SlotRoot[T Object](slot *T) Root {
	return func(c *Collector) {
		if isNilObject(*slot) {
			return
		}
		fwd := c.ForwardInPlace(*slot)
		if fwd == nil {
			var zero T
			*slot = zero
			return
		}
		*slot = fwd.(T)
	}
}

// SliceRoot builds a Root over every element of a GC-pointer slice (used
// for Sequence's element array and Apply's argument list).
func SliceRoot[T Object](slice *[]T) Root {
	return func(c *Collector) {
		s := *slice
		for i, v := range s {
			if isNilObject(v) {
				continue
			}
			fwd := c.ForwardInPlace(v)
			if fwd == nil {
				var zero T
				s[i] = zero
				continue
			}
			s[i] = fwd.(T)
		}
	}
}
