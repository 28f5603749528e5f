package lexer

import "github.com/schematika/schematika/internal/token"

// Stream is a stateful wrapper over Scan for callers (chiefly
// pkg/reader) that feed source incrementally rather than holding the
// whole program in memory at once.
type Stream struct {
	buf       []byte
	offset    int
	line, col int
	eof       bool
}

// NewStream returns a Stream starting at line 1, column 1.
func NewStream() *Stream {
	return &Stream{line: 1, col: 1}
}

// Feed appends more source bytes, to be scanned by subsequent Next calls.
func (s *Stream) Feed(data []byte) {
	s.buf = append(s.buf, data...)
}

// SetEOF marks that no further bytes will ever be fed; a subsequent Next
// that would otherwise report "need more input" instead finalizes or
// rejects the pending token.
func (s *Stream) SetEOF() { s.eof = true }

// ErrNeedMoreInput is returned by Next when the buffered bytes aren't
// enough to decide the next token's extent and SetEOF hasn't been called.
var ErrNeedMoreInput = needMoreInput{}

type needMoreInput struct{}

func (needMoreInput) Error() string { return "lexer: need more input" }

// Next returns the next token, consuming it from the stream's buffer.
func (s *Stream) Next() (*token.Token, error) {
	tok, rest, line, col, err := Scan(s.buf, s.offset, s.line, s.col, s.eof)
	if err != nil {
		// resynchronize past the offending byte, LexError
		// recovery policy (skip to the next ';' or newline is the parser's
		// job; here we simply drop the byte Scan already identified as bad)
		s.offset += len(s.buf) - len(rest)
		s.buf = rest
		s.line, s.col = line, col
		return nil, err
	}
	s.offset += len(s.buf) - len(rest)
	s.buf = rest
	s.line, s.col = line, col
	if tok == nil {
		return nil, ErrNeedMoreInput
	}
	return tok, nil
}
