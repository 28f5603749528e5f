// Package facet implements the facet / polymorphic-dispatch registry: a
// mapping from (abstract capability, concrete-type-id) to a
// statically-built vtable, used to bind concrete AST/runtime types to
// capability sets without a single inheritance hierarchy.
//
// A "facet" is identified by a Tag (ExpressionFacet, GCObjectFacet, ...);
// a concrete type is identified by its Typeseq, assigned once by
// NewTypeseq in a package-level var. Registration happens at program
// start (package init functions in internal/ast, internal/rtval,
// internal/symtab and internal/interp);
// after that the registry is read-only, matching the "process-wide,
// initialized once" shared-resource model.
package facet

import "fmt"

// Tag names one of the core capability sets.
type Tag int

const (
	ExpressionFacet Tag = iota
	GCObjectFacet
	PrintableFacet
	SymbolTableFacet
)

func (t Tag) String() string {
	switch t {
	case ExpressionFacet:
		return "Expression"
	case GCObjectFacet:
		return "GCObject"
	case PrintableFacet:
		return "Printable"
	case SymbolTableFacet:
		return "SymbolTable"
	default:
		return fmt.Sprintf("Tag(%d)", int(t))
	}
}

// Typeseq is the dispatch key identifying a concrete data type.
type Typeseq int

// NoSuchFacetError is returned by Variant when a concrete type has no
// impl registered for the requested facet.
type NoSuchFacetError struct {
	Tag     Tag
	Typeseq Typeseq
}

func (e *NoSuchFacetError) Error() string {
	return fmt.Sprintf("facet: no %s impl registered for typeseq %d", e.Tag, e.Typeseq)
}

type key struct {
	tag Tag
	ts  Typeseq
}

type registry struct {
	impls map[key]any
	names map[Typeseq]string
	next  Typeseq
}

var reg = &registry{impls: make(map[key]any), names: make(map[Typeseq]string)}

// NewTypeseq allocates a fresh, process-unique Typeseq for a concrete
// type, recording a human-readable name for diagnostics.
func NewTypeseq(typeName string) Typeseq {
	reg.next++
	ts := reg.next
	reg.names[ts] = typeName
	return ts
}

// TypeName returns the diagnostic name a Typeseq was registered under.
func TypeName(ts Typeseq) string {
	if n, ok := reg.names[ts]; ok {
		return n
	}
	return "<unknown>"
}

// Register installs the vtable impl for (tag, ts). Re-registering the
// same key is a bug: the registry is write-once per key, and the
// violation is reported via panic rather than a silent overwrite.
func Register[V any](tag Tag, ts Typeseq, impl V) {
	k := key{tag, ts}
	if _, dup := reg.impls[k]; dup {
		panic(fmt.Sprintf("facet: duplicate registration of %s for typeseq %d (%s)", tag, ts, TypeName(ts)))
	}
	reg.impls[k] = impl
}

// Lookup retrieves the vtable impl registered for (tag, ts), if any.
func Lookup[V any](tag Tag, ts Typeseq) (V, bool) {
	v, ok := reg.impls[key{tag, ts}]
	if !ok {
		var zero V
		return zero, false
	}
	impl, ok := v.(V)
	return impl, ok
}

// MustLookup is Lookup but panics with an InternalInvariant-flavored
// message when the impl is missing — used at points where the caller has
// already validated (e.g. GC allocation) that the typeseq must be known.
func MustLookup[V any](tag Tag, ts Typeseq) V {
	impl, ok := Lookup[V](tag, ts)
	if !ok {
		panic(fmt.Sprintf("facet: MustLookup failed for %s / typeseq %d (%s)", tag, ts, TypeName(ts)))
	}
	return impl
}

// Has reports whether (tag, ts) has a registered impl, without asserting.
func Has(tag Tag, ts Typeseq) bool {
	_, ok := reg.impls[key{tag, ts}]
	return ok
}

// Variant produces, for a concrete type known to satisfy one facet, the
// vtable for a second facet `to` over that same type, without a second
// type switch at the call site. Fails with NoSuchFacetError if the
// concrete type behind ts never registered an impl for `to`.
func Variant[V any](to Tag, ts Typeseq) (V, error) {
	v, ok := Lookup[V](to, ts)
	if !ok {
		return v, &NoSuchFacetError{Tag: to, Typeseq: ts}
	}
	return v, nil
}
