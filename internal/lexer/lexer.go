// Package lexer implements the tokenizer's incremental scanning contract:
// scan(input_span, eof_flag) -> (token?, remaining_span).
// Comments run from '#' to end of line; this is a documented choice (see
// DESIGN.md) rather than something inferred from the grammar.
package lexer

import (
	"strconv"
	"unicode/utf8"

	"github.com/schematika/schematika/internal/diag"
	"github.com/schematika/schematika/internal/token"
)

// Scan reads at most one token from the front of input. offset/line/col
// describe input[0]'s position in the overall source.
//
// When tok == nil and err == nil, the scanner could not yet tell where
// the next token ends — it may continue in a chunk not yet supplied.
// rest in that case is the unconsumed span starting at the token's first
// byte (whitespace/comments already skipped are never re-scanned), and
// the caller must re-invoke Scan once more bytes are appended, passing
// the same restLine/restCol back in. Passing eof=true forces every
// pending decision to be finalized (a token) or rejected (LexError); it
// never returns a "need more" result.
func Scan(input []byte, offset, line, col int, eof bool) (tok *token.Token, rest []byte, restLine, restCol int, err error) {
	i := 0
	for {
		advanced := false
		for i < len(input) && isSpace(input[i]) {
			if input[i] == '\n' {
				line++
				col = 1
			} else {
				col++
			}
			i++
			advanced = true
		}
		if i < len(input) && input[i] == '#' {
			for i < len(input) && input[i] != '\n' {
				i++
				col++
			}
			advanced = true
		}
		if !advanced {
			break
		}
	}

	if i == len(input) {
		if eof {
			return &token.Token{Kind: token.EOF, Offset: offset + i, Line: line, Column: col}, input[i:], line, col, nil
		}
		return nil, input[i:], line, col, nil
	}

	start := i
	startLine, startCol := line, col
	pos := diag.Pos{Offset: offset + start, Line: startLine, Column: startCol}
	c := input[start]

	switch {
	case isIdentStart(c):
		for i < len(input) && isIdentCont(input[i]) {
			i++
		}
		if i == len(input) && !eof {
			return nil, input[start:], startLine, startCol, nil
		}
		text := string(input[start:i])
		newCol := col + (i - start)
		if kw, ok := token.Keywords[text]; ok {
			return &token.Token{Kind: kw, Text: text, Offset: offset + start, Line: startLine, Column: startCol}, input[i:], line, newCol, nil
		}
		return &token.Token{Kind: token.Ident, Text: text, Offset: offset + start, Line: startLine, Column: startCol}, input[i:], line, newCol, nil

	case isDigit(c):
		return scanNumber(input, start, offset, line, col, startLine, startCol, eof)

	case c == '"':
		return scanString(input, start, offset, line, col, startLine, startCol, eof, pos)

	default:
		return scanOperator(input, start, offset, line, col, startLine, startCol, eof, pos)
	}
}

func scanNumber(input []byte, start, offset, line, col, startLine, startCol int, eof bool) (*token.Token, []byte, int, int, error) {
	i := start
	for i < len(input) && isDigit(input[i]) {
		i++
	}
	isFloat := false
	if i < len(input) && input[i] == '.' {
		if i+1 < len(input) && isDigit(input[i+1]) {
			isFloat = true
			i++
			for i < len(input) && isDigit(input[i]) {
				i++
			}
		} else if i+1 == len(input) && !eof {
			return nil, input[start:], startLine, startCol, nil
		}
	}
	if i == len(input) && !eof {
		return nil, input[start:], startLine, startCol, nil
	}
	text := string(input[start:i])
	newCol := col + (i - start)
	pos := diag.Pos{Offset: offset + start, Line: startLine, Column: startCol}
	if isFloat {
		if _, perr := strconv.ParseFloat(text, 64); perr != nil {
			return nil, input[i:], line, newCol, diag.Lex(pos, "malformed float literal %q", text)
		}
		return &token.Token{Kind: token.FloatLit, Text: text, Offset: offset + start, Line: startLine, Column: startCol}, input[i:], line, newCol, nil
	}
	if _, perr := strconv.ParseInt(text, 10, 64); perr != nil {
		return nil, input[i:], line, newCol, diag.Lex(pos, "malformed integer literal %q", text)
	}
	return &token.Token{Kind: token.IntLit, Text: text, Offset: offset + start, Line: startLine, Column: startCol}, input[i:], line, newCol, nil
}

func scanString(input []byte, start, offset, line, col, startLine, startCol int, eof bool, pos diag.Pos) (*token.Token, []byte, int, int, error) {
	i := start + 1
	var buf []byte
	for {
		if i >= len(input) {
			if eof {
				return nil, input[i:], line, col, diag.Lex(pos, "unterminated string literal")
			}
			return nil, input[start:], startLine, startCol, nil
		}
		c := input[i]
		if c == '"' {
			i++
			break
		}
		if c == '\n' {
			return nil, input[i:], line, col, diag.Lex(diag.Pos{Offset: offset + i, Line: line, Column: col}, "unterminated string literal before end of line")
		}
		if c == '\\' {
			if i+1 >= len(input) {
				if eof {
					return nil, input[i:], line, col, diag.Lex(pos, "unterminated string literal")
				}
				return nil, input[start:], startLine, startCol, nil
			}
			switch input[i+1] {
			case 'n':
				buf = append(buf, '\n')
			case 't':
				buf = append(buf, '\t')
			case '"':
				buf = append(buf, '"')
			case '\\':
				buf = append(buf, '\\')
			default:
				return nil, input[i:], line, col, diag.Lex(diag.Pos{Offset: offset + i, Line: line, Column: col}, "unknown escape sequence \\%c", input[i+1])
			}
			i += 2
			continue
		}
		_, size := utf8.DecodeRune(input[i:])
		buf = append(buf, input[i:i+size]...)
		i += size
	}
	newCol := col + (i - start)
	return &token.Token{Kind: token.StringLit, Text: string(buf), Offset: offset + start, Line: startLine, Column: startCol}, input[i:], line, newCol, nil
}

func scanOperator(input []byte, start, offset, line, col, startLine, startCol int, eof bool, pos diag.Pos) (*token.Token, []byte, int, int, error) {
	one := func(k token.Kind) (*token.Token, []byte, int, int, error) {
		return &token.Token{Kind: k, Text: string(input[start : start+1]), Offset: offset + start, Line: startLine, Column: startCol}, input[start+1:], line, col + 1, nil
	}
	two := func(k token.Kind) (*token.Token, []byte, int, int, error) {
		return &token.Token{Kind: k, Text: string(input[start : start+2]), Offset: offset + start, Line: startLine, Column: startCol}, input[start+2:], line, col + 2, nil
	}
	needMore := func() (*token.Token, []byte, int, int, error) {
		return nil, input[start:], startLine, startCol, nil
	}
	unexpected := func(c byte) (*token.Token, []byte, int, int, error) {
		return nil, input[start+1:], line, col + 1, diag.Lex(pos, "unexpected character %q", c)
	}

	c := input[start]
	has2 := start+1 < len(input)

	switch c {
	case '(':
		return one(token.LParen)
	case ')':
		return one(token.RParen)
	case '[':
		return one(token.LBracket)
	case ']':
		return one(token.RBracket)
	case '{':
		return one(token.LBrace)
	case '}':
		return one(token.RBrace)
	case ',':
		return one(token.Comma)
	case ';':
		return one(token.Semi)
	case '+':
		return one(token.Plus)
	case '*':
		return one(token.Star)
	case '/':
		return one(token.Slash)
	case '.':
		return one(token.Dot)
	case '-':
		if has2 && input[start+1] == '>' {
			return two(token.Arrow)
		}
		if !has2 && !eof {
			return needMore()
		}
		return one(token.Minus)
	case '=':
		if has2 && input[start+1] == '=' {
			return two(token.EqEq)
		}
		if has2 && input[start+1] == '>' {
			return two(token.FatArrow)
		}
		if !has2 && !eof {
			return needMore()
		}
		return one(token.Eq)
	case '!':
		if has2 && input[start+1] == '=' {
			return two(token.NotEq)
		}
		if !has2 && !eof {
			return needMore()
		}
		return unexpected(c)
	case '&':
		if has2 && input[start+1] == '&' {
			return two(token.AndAnd)
		}
		if !has2 && !eof {
			return needMore()
		}
		return unexpected(c)
	case '|':
		if has2 && input[start+1] == '|' {
			return two(token.OrOr)
		}
		if !has2 && !eof {
			return needMore()
		}
		return unexpected(c)
	case '<':
		if has2 && input[start+1] == '=' {
			return two(token.LtEq)
		}
		if !has2 && !eof {
			return needMore()
		}
		return one(token.Lt)
	case '>':
		if has2 && input[start+1] == '=' {
			return two(token.GtEq)
		}
		if !has2 && !eof {
			return needMore()
		}
		return one(token.Gt)
	case ':':
		if has2 && input[start+1] == ':' {
			return two(token.ColonColon)
		}
		if has2 && input[start+1] == '=' {
			return two(token.Walrus)
		}
		if !has2 && !eof {
			return needMore()
		}
		return one(token.Colon)
	default:
		return unexpected(c)
	}
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentCont(c byte) bool { return isIdentStart(c) || isDigit(c) }
