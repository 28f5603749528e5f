package rtval

import (
	"testing"

	"github.com/schematika/schematika/internal/gcheap"
)

func TestBoxedValueStrings(t *testing.T) {
	c := gcheap.New(1<<20, 1<<20)

	if got := NewBool(c, true).String(); got != "true" {
		t.Errorf("Bool.String() = %q, want true", got)
	}
	if got := NewI32(c, -7).String(); got != "-7" {
		t.Errorf("I32.String() = %q, want -7", got)
	}
	if got := NewI64(c, 1<<40).String(); got != "1099511627776" {
		t.Errorf("I64.String() = %q, want 1099511627776", got)
	}
	if got := NewF64(c, 2.5).String(); got != "2.5" {
		t.Errorf("F64.String() = %q, want 2.5", got)
	}
	if got := NewString(c, "hi").String(); got != `"hi"` {
		t.Errorf(`String.String() = %q, want "hi"`, got)
	}
	if got := NewUnit(c).String(); got != "()" {
		t.Errorf("Unit.String() = %q, want ()", got)
	}
}

func TestBoxedValuesAreGCManaged(t *testing.T) {
	c := gcheap.New(1<<20, 1<<20)
	b := NewBool(c, false)
	if b.Header().Typeseq() != BoolTypeseq {
		t.Fatalf("Typeseq() = %d, want %d", b.Header().Typeseq(), BoolTypeseq)
	}
	if b.Header().Generation() != gcheap.Nursery {
		t.Fatalf("freshly allocated Bool should start in the nursery")
	}
}

func TestBoxedValueSurvivesCollection(t *testing.T) {
	c := gcheap.New(1<<20, 1<<20)
	var root Value
	c.AddRoot(gcheap.SlotRoot(&root))

	root = NewI64(c, 42)
	c.RequestGC(gcheap.Nursery)

	i, ok := root.(*I64)
	if !ok {
		t.Fatalf("forwarded root is not *I64: %T", root)
	}
	if i.V != 42 {
		t.Fatalf("forwarded I64.V = %d, want 42", i.V)
	}
	if i.Header().Generation() != gcheap.Tenured {
		t.Fatalf("rooted I64 should be promoted to tenured")
	}
}
