package parser

import (
	"github.com/schematika/schematika/internal/ast"
	"github.com/schematika/schematika/internal/diag"
)

// ResultState discriminates a Result's three possible shapes.
type ResultState int

const (
	ResultPending ResultState = iota
	ResultComplete
	ResultError
)

// Result is the parser's tri-state outcome slot: still accumulating
// tokens, holding a completed top-level expression ready to be taken by
// the caller, or holding a recorded error (the error model: "the
// parser never throws; it records parser_result::error(src, message) on
// the state machine and refuses to accept further tokens for the
// current top-level expression").
type Result struct {
	State ResultState
	Expr  ast.Expression
	Err   *diag.Diag
}
