package strpool

import "testing"

func TestInternReturnsSamePointer(t *testing.T) {
	p := New()
	a := p.Intern("hello")
	b := p.Intern("hello")
	if a != b {
		t.Fatalf("Intern returned distinct pointers for equal text")
	}
	if !Same(a, b) {
		t.Fatalf("Same(a, b) = false for identical interns")
	}
}

func TestInternDistinctText(t *testing.T) {
	p := New()
	a := p.Intern("foo")
	b := p.Intern("bar")
	if Same(a, b) {
		t.Fatalf("Same(a, b) = true for distinct text")
	}
}

func TestLenTracksDistinctStrings(t *testing.T) {
	p := New()
	p.Intern("x")
	p.Intern("y")
	p.Intern("x")
	if got := p.Len(); got != 2 {
		t.Fatalf("Len() = %d, want 2", got)
	}
}

func TestTextOnNilIsEmpty(t *testing.T) {
	var u *UniqueString
	if got := u.Text(); got != "" {
		t.Fatalf("nil.Text() = %q, want empty", got)
	}
}

func TestStringMatchesText(t *testing.T) {
	p := New()
	u := p.Intern("abc")
	if u.String() != "abc" {
		t.Fatalf("String() = %q, want abc", u.String())
	}
}
