// Package reader is the embeddable entry point:
// begin_interactive_session/begin_translation_unit plus an incremental
// read_expr that an embedder feeds bytes into and gets back completed
// top-level expressions, one at a time, without ever touching
// internal/lexer or internal/parser directly.
package reader

import (
	"errors"

	"github.com/schematika/schematika/internal/ast"
	"github.com/schematika/schematika/internal/gcheap"
	"github.com/schematika/schematika/internal/lexer"
	"github.com/schematika/schematika/internal/parser"
	"github.com/schematika/schematika/internal/rtconfig"
	"github.com/schematika/schematika/internal/strpool"
	"github.com/schematika/schematika/internal/symtab"
	"github.com/schematika/schematika/internal/token"
)

// ErrNeedMoreInput is returned by ReadExpr when the fed bytes aren't
// enough to complete a token or a statement and the caller hasn't yet
// signalled end of input.
var ErrNeedMoreInput = errors.New("reader: need more input")

// ErrEndOfInput is returned once the fed source (with EOF signalled) has
// been fully consumed and no further top-level expression remains.
var ErrEndOfInput = errors.New("reader: end of input")

// Session is one reader instance: a token stream, a pushdown parser, and
// the collector/pool/global-scope triple every parsed expression is
// allocated against. Interactive and translation-unit sessions differ
// only in which parser.New* constructor built p — see Begin*.
type Session struct {
	Collector *gcheap.Collector
	Pool      *strpool.Pool
	Global    *symtab.GlobalSymtab

	stream      *lexer.Stream
	p           *parser.Parser
	interactive bool
	eof         bool
}

// BeginInteractiveSession starts a REPL-style session: bare expressions
// are legal at the top level in addition to defs, and a recoverable
// parse error only aborts the one statement it occurred in — see
// Recover.
func BeginInteractiveSession(cfg rtconfig.Config) *Session {
	return begin(cfg, true)
}

// BeginTranslationUnit starts a whole-file batch session: only
// top-level defs are legal.
func BeginTranslationUnit(cfg rtconfig.Config) *Session {
	return begin(cfg, false)
}

func begin(cfg rtconfig.Config, interactive bool) *Session {
	c := gcheap.New(cfg.GC.NurseryBytes, cfg.GC.TenuredBytes)
	pool := strpool.New()
	global := symtab.NewGlobal(c)
	c.AddRoot(gcheap.SlotRoot(&global))
	return newSession(c, pool, global, interactive)
}

func newSession(c *gcheap.Collector, pool *strpool.Pool, global *symtab.GlobalSymtab, interactive bool) *Session {
	s := &Session{
		Collector:   c,
		Pool:        pool,
		Global:      global,
		stream:      lexer.NewStream(),
		interactive: interactive,
	}
	if interactive {
		s.p = parser.NewInteractiveSession(c, pool, global)
	} else {
		s.p = parser.NewTranslationUnit(c, pool, global)
	}
	return s
}

// Feed appends more source bytes for subsequent ReadExpr calls.
func (s *Session) Feed(data []byte) {
	s.stream.Feed(data)
}

// SetEOF signals that no further bytes will ever be fed; a pending token
// or statement that was merely waiting for more input is now either
// finalized or reported as an error.
func (s *Session) SetEOF() {
	s.eof = true
	s.stream.SetEOF()
}

// ReadExpr drives the token stream and parser until one top-level
// expression completes, a parse error surfaces, or the fed input (with
// EOF signalled) runs out. It never blocks — ErrNeedMoreInput means
// "call Feed, then call ReadExpr again".
func (s *Session) ReadExpr() (ast.Expression, error) {
	for {
		tok, err := s.stream.Next()
		if err != nil {
			if errors.Is(err, lexer.ErrNeedMoreInput) {
				return nil, ErrNeedMoreInput
			}
			return nil, err
		}
		if perr := s.p.IncludeToken(tok); perr != nil {
			return nil, perr
		}
		res := s.p.TakeResult()
		switch res.State {
		case parser.ResultComplete:
			return res.Expr, nil
		case parser.ResultError:
			return nil, res.Err
		}
		if tok.Kind == token.EOF && s.eof {
			return nil, ErrEndOfInput
		}
	}
}

// Recover rebuilds the parser half of an interactive session after a
// reported parse error, preserving Collector/Pool/Global intact: a
// recoverable error returns the REPL to a ready state with all global
// definitions intact. It is a no-op, returning false, for a
// translation-unit session — a batch parse has no "next statement" to
// resume at.
func (s *Session) Recover() bool {
	if !s.interactive {
		return false
	}
	s.p = parser.NewInteractiveSession(s.Collector, s.Pool, s.Global)
	return true
}

// End releases the session's parser; the Collector/Pool/Global triple
// stays reachable through the Session's fields and outlives it.
func (s *Session) End() {
	s.p = nil
}
