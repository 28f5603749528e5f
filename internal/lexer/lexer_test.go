package lexer

import (
	"testing"

	"github.com/schematika/schematika/internal/token"
)

func scanAll(t *testing.T, src string) []*token.Token {
	t.Helper()
	s := NewStream()
	s.Feed([]byte(src))
	s.SetEOF()
	var toks []*token.Token
	for {
		tok, err := s.Next()
		if err != nil {
			t.Fatalf("Next() error: %v", err)
		}
		if tok.Kind == token.EOF {
			return toks
		}
		toks = append(toks, tok)
	}
}

func TestScanIdentifiersKeywordsAndPunctuation(t *testing.T) {
	toks := scanAll(t, "def x : i64 = 1;")
	want := []token.Kind{token.KwDef, token.Ident, token.Colon, token.Ident, token.Eq, token.IntLit, token.Semi}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: kind = %s, want %s", i, toks[i].Kind, k)
		}
	}
	if toks[1].Text != "x" {
		t.Errorf("token 1 text = %q, want x", toks[1].Text)
	}
}

func TestScanCommentsAreSkipped(t *testing.T) {
	toks := scanAll(t, "x # this is a comment\ny")
	if len(toks) != 2 || toks[0].Text != "x" || toks[1].Text != "y" {
		t.Fatalf("comment was not skipped correctly: %+v", toks)
	}
}

func TestScanFloatAndIntLiterals(t *testing.T) {
	toks := scanAll(t, "3 3.5")
	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2", len(toks))
	}
	if toks[0].Kind != token.IntLit || toks[0].Text != "3" {
		t.Errorf("token 0 = %+v, want IntLit 3", toks[0])
	}
	if toks[1].Kind != token.FloatLit || toks[1].Text != "3.5" {
		t.Errorf("token 1 = %+v, want FloatLit 3.5", toks[1])
	}
}

func TestScanStringLiteralWithEscapes(t *testing.T) {
	toks := scanAll(t, `"line\n\ttab\\\""`)
	if len(toks) != 1 {
		t.Fatalf("got %d tokens, want 1", len(toks))
	}
	want := "line\n\ttab\\\""
	if toks[0].Text != want {
		t.Errorf("string literal text = %q, want %q", toks[0].Text, want)
	}
}

func TestScanTwoCharOperators(t *testing.T) {
	toks := scanAll(t, "== != <= >= && || -> => :: :=")
	want := []token.Kind{
		token.EqEq, token.NotEq, token.LtEq, token.GtEq,
		token.AndAnd, token.OrOr, token.Arrow, token.FatArrow,
		token.ColonColon, token.Walrus,
	}
	if len(toks) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(want), toks)
	}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Errorf("token %d: kind = %s, want %s", i, toks[i].Kind, k)
		}
	}
}

func TestStreamNeedsMoreInputAcrossChunks(t *testing.T) {
	s := NewStream()
	s.Feed([]byte("1"))
	if _, err := s.Next(); err != ErrNeedMoreInput {
		t.Fatalf("Next() on a lone digit before EOF should need more input, got %v", err)
	}
	s.Feed([]byte("23 "))
	tok, err := s.Next()
	if err != nil {
		t.Fatalf("Next() error after feeding the rest: %v", err)
	}
	if tok.Text != "123" {
		t.Fatalf("Text = %q, want 123 (chunks must join into one token)", tok.Text)
	}
}

func TestScanUnterminatedStringIsLexError(t *testing.T) {
	s := NewStream()
	s.Feed([]byte(`"oops`))
	s.SetEOF()
	if _, err := s.Next(); err == nil {
		t.Fatalf("expected a LexError for an unterminated string at EOF")
	}
}

func TestScanUnexpectedCharacter(t *testing.T) {
	s := NewStream()
	s.Feed([]byte("@"))
	s.SetEOF()
	if _, err := s.Next(); err == nil {
		t.Fatalf("expected a LexError for an unrecognized character")
	}
}

func TestScanLineColumnTracking(t *testing.T) {
	toks := scanAll(t, "x\ny")
	if toks[0].Line != 1 || toks[0].Column != 1 {
		t.Errorf("first token position = %d:%d, want 1:1", toks[0].Line, toks[0].Column)
	}
	if toks[1].Line != 2 || toks[1].Column != 1 {
		t.Errorf("second token position = %d:%d, want 2:1", toks[1].Line, toks[1].Column)
	}
}
