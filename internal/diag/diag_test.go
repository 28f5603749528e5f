package diag

import "testing"

func TestErrorFormatting(t *testing.T) {
	d := Parse(Pos{Line: 3, Column: 7}, "unexpected %s", "token")
	got := d.Error()
	want := "ParseError at 3:7: unexpected token"
	if got != want {
		t.Fatalf("Error() = %q, want %q", got, want)
	}
}

func TestFatalClassification(t *testing.T) {
	cases := []struct {
		d     *Diag
		fatal bool
	}{
		{Lex(Pos{}, "bad char"), false},
		{Parse(Pos{}, "bad token"), false},
		{TypeMismatchf(Pos{}, "bad type"), false},
		{UnknownVar(Pos{}, "x"), false},
		{Alloc("oom"), true},
		{NotInstalled("missing facet"), true},
		{Invariant("should never happen"), true},
	}
	for _, c := range cases {
		if got := c.d.Fatal(); got != c.fatal {
			t.Errorf("%s.Fatal() = %v, want %v", c.d.Kind, got, c.fatal)
		}
	}
}

func TestUnknownVarMessage(t *testing.T) {
	d := UnknownVar(Pos{Line: 1, Column: 1}, "foo")
	want := `unknown variable "foo"`
	if d.Message != want {
		t.Fatalf("Message = %q, want %q", d.Message, want)
	}
}

func TestKindStringUnknown(t *testing.T) {
	var k Kind = 999
	if got := k.String(); got != "Unknown" {
		t.Fatalf("String() on out-of-range Kind = %q, want Unknown", got)
	}
}

func TestDiagImplementsError(t *testing.T) {
	var err error = Invariant("x")
	if err.Error() == "" {
		t.Fatalf("expected non-empty error message")
	}
}
