package token

import "testing"

func TestPrecedenceTable(t *testing.T) {
	cases := []struct {
		k        Kind
		prec     int
		isOp     bool
	}{
		{EqEq, 2, true},
		{NotEq, 2, true},
		{Lt, 2, true},
		{GtEq, 2, true},
		{Eq, 2, true},
		{Walrus, 2, true},
		{FatArrow, 2, true},
		{Plus, 4, true},
		{Minus, 4, true},
		{Star, 5, true},
		{Slash, 5, true},
		{LParen, 0, false},
		{Ident, 0, false},
	}
	for _, c := range cases {
		prec, ok := Precedence(c.k)
		if ok != c.isOp || prec != c.prec {
			t.Errorf("Precedence(%s) = (%d, %v), want (%d, %v)", c.k, prec, ok, c.prec, c.isOp)
		}
	}
}

func TestKeywordLookup(t *testing.T) {
	if Keywords["if"] != KwIf {
		t.Fatalf("Keywords[if] = %v, want KwIf", Keywords["if"])
	}
	if _, ok := Keywords["notakeyword"]; ok {
		t.Fatalf("expected miss for a non-keyword identifier")
	}
}

func TestTokenString(t *testing.T) {
	tok := Token{Kind: Ident, Text: "foo"}
	if got := tok.String(); got != `identifier("foo")` {
		t.Fatalf("String() = %q, want identifier(\"foo\")", got)
	}

	bare := Token{Kind: LParen}
	if got := bare.String(); got != "(" {
		t.Fatalf("String() = %q, want (", got)
	}
}

func TestKindStringOutOfRange(t *testing.T) {
	k := Kind(9999)
	if got := k.String(); got != "Kind(9999)" {
		t.Fatalf("String() = %q, want Kind(9999)", got)
	}
}
