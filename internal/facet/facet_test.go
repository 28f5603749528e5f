package facet

import "testing"

func TestNewTypeseqDistinct(t *testing.T) {
	a := NewTypeseq("facet_test.A")
	b := NewTypeseq("facet_test.B")
	if a == b {
		t.Fatalf("expected distinct typeseqs, got %d == %d", a, b)
	}
	if TypeName(a) != "facet_test.A" {
		t.Fatalf("TypeName(a) = %q, want facet_test.A", TypeName(a))
	}
}

func TestRegisterLookupRoundTrip(t *testing.T) {
	ts := NewTypeseq("facet_test.RoundTrip")
	Register[int](PrintableFacet, ts, 42)

	got, ok := Lookup[int](PrintableFacet, ts)
	if !ok || got != 42 {
		t.Fatalf("Lookup = (%d, %v), want (42, true)", got, ok)
	}

	if !Has(PrintableFacet, ts) {
		t.Fatalf("Has returned false for a registered facet")
	}
	if Has(GCObjectFacet, ts) {
		t.Fatalf("Has returned true for an unregistered facet tag")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	ts := NewTypeseq("facet_test.Dup")
	Register[int](ExpressionFacet, ts, 1)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on duplicate registration")
		}
	}()
	Register[int](ExpressionFacet, ts, 2)
}

func TestMustLookupPanicsWhenMissing(t *testing.T) {
	ts := NewTypeseq("facet_test.Missing")

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic from MustLookup on missing impl")
		}
	}()
	MustLookup[int](SymbolTableFacet, ts)
}

func TestVariantNoSuchFacetError(t *testing.T) {
	ts := NewTypeseq("facet_test.Variant")
	Register[int](GCObjectFacet, ts, 7)

	if _, err := Variant[string](PrintableFacet, ts); err == nil {
		t.Fatalf("expected NoSuchFacetError")
	} else if _, ok := err.(*NoSuchFacetError); !ok {
		t.Fatalf("expected *NoSuchFacetError, got %T", err)
	}

	got, err := Variant[int](GCObjectFacet, ts)
	if err != nil || got != 7 {
		t.Fatalf("Variant = (%d, %v), want (7, nil)", got, err)
	}
}

func TestLookupWrongTypeParamFails(t *testing.T) {
	ts := NewTypeseq("facet_test.WrongType")
	Register[int](ExpressionFacet, ts, 9)

	if _, ok := Lookup[string](ExpressionFacet, ts); ok {
		t.Fatalf("Lookup with mismatched type parameter should fail")
	}
}
