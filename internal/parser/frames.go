package parser

import (
	"github.com/schematika/schematika/internal/ast"
	"github.com/schematika/schematika/internal/strpool"
	"github.com/schematika/schematika/internal/symtab"
	"github.com/schematika/schematika/internal/token"
	"github.com/schematika/schematika/internal/typedescr"
)

// frame is one element of the parser's pushdown stack. Each concrete
// type below corresponds to one stack-element kind; dispatch is a type
// switch in Parser.step/deliver/deliverLet1Result/deliverFormal/
// deliverFormalArglist, mirroring how this codebase already turns
// "virtual dispatch over a sum type" into concrete Go types plus a
// switch (see internal/ast's ExprKind).
type frame interface {
	expectStr() string
}

// exprSeqFrame is the top-level frame: exprseq, top-level, interactive
// or batch. It never completes; IncludeToken just keeps feeding it
// tokens for the life of the session/translation unit.
type exprSeqFrame struct {
	interactive bool
}

func (f *exprSeqFrame) expectStr() string {
	if f.interactive {
		return "a definition or expression"
	}
	return "a definition"
}

// defineFrame implements def_1..def_6.
type defineFrame struct {
	sub          int // 1..6
	name         *strpool.UniqueString
	declaredType *typedescr.TypeDescr
	rhs          ast.Expression
}

func (f *defineFrame) expectStr() string {
	switch f.sub {
	case 1:
		return "a symbol after 'def'"
	case 2:
		return "':' or '=' after definition symbol"
	case 3:
		return "a type after ':'"
	case 4:
		return "'=' after type annotation"
	case 5:
		return "an expression after '='"
	case 6:
		return "';' after definition"
	default:
		return "definition"
	}
}

// lambdaFrame implements lm_0..lm_5. The formal-arglist
// sub-state is delegated to expectFormalArglistFrame; lambdaFrame itself
// is only on the stack before and after that delegation.
type lambdaFrame struct {
	sub          int // 1 = expect '(' to start arglist, 2 = expect ':' or body after arglist, 3 = expect type (explicit return annotation), 4 = expect body, 5 = expect ';'
	local        *symtab.LocalSymtab
	retType      *typedescr.TypeDescr
	body         ast.Expression
	enclosing    ast.SymbolTable // scope active before entering this lambda, restored on completion
}

func (f *lambdaFrame) expectStr() string {
	switch f.sub {
	case 1:
		return "'(' to begin a lambda's argument list"
	case 2:
		return "':' or the lambda body"
	case 3:
		return "a return type after ':'"
	case 4:
		return "the lambda body"
	case 5:
		return "';' after a lambda body"
	default:
		return "lambda"
	}
}

// parenFrame implements lparen_0/lparen_1.
type parenFrame struct {
	sub   int // 0 = expect inner expr, 1 = expect ')'
	inner ast.Expression
}

func (f *parenFrame) expectStr() string {
	if f.sub == 0 {
		return "an expression after '('"
	}
	return "')'"
}

// sequenceFrame accumulates zero-or-more expressions inside '{ ... }'.
// Once it has delegated to a let1 chain (sawLet1), nothing legally
// follows but the closing '}'.
type sequenceFrame struct {
	exprs   []ast.Expression
	sawLet1 bool
}

func (f *sequenceFrame) expectStr() string {
	if f.sawLet1 {
		return "'}'"
	}
	return "an expression, 'def', or '}'"
}

// let1Frame performs the `{ def x = rhs; rest... }` desugaring at
// sequence-reduction time rather than as a separate syntactic form. It
// is pushed by sequenceFrame when it sees
// a nested 'def'; once its rhs is parsed it pushes a fresh sequenceFrame
// to collect "rest" as the synthesized lambda's body, then restores the
// enclosing scope and wraps on that nested sequence's completion.
type let1Frame struct {
	sub          int // 1..6, mirrors defineFrame's sub-states
	name         *strpool.UniqueString
	declaredType *typedescr.TypeDescr
	rhs          ast.Expression
	enclosing    ast.SymbolTable
	local        *symtab.LocalSymtab
	varDef       *ast.VariableDef
}

func (f *let1Frame) expectStr() string {
	switch f.sub {
	case 1:
		return "a symbol after 'def'"
	case 2:
		return "':' or '=' after definition symbol"
	case 3:
		return "a type after ':'"
	case 4:
		return "'=' after type annotation"
	case 5:
		return "an expression after '='"
	case 6:
		return "';' after definition"
	default:
		return "let"
	}
}

// ifElseFrame implements if_0..if_6.
type ifElseFrame struct {
	sub       int // 0 expect test, 1 expect 'then', 2 expect when_true, 3 expect 'else' or ';', 4 expect when_false, 5 expect ';'
	test      ast.Expression
	whenTrue  ast.Expression
	whenFalse ast.Expression
}

func (f *ifElseFrame) expectStr() string {
	switch f.sub {
	case 0:
		return "a test expression after 'if'"
	case 1:
		return "'then'"
	case 2:
		return "an expression after 'then'"
	case 3:
		return "'else' or ';'"
	case 4:
		return "an expression after 'else'"
	case 5:
		return "';'"
	default:
		return "if/else"
	}
}

// expectExprFrame is the generic "parse one primary expression, then
// hand control to a progressFrame watching for infix operators" frame;
// a progressFrame's "lhs" state is exactly what a freshly-obtained
// primary becomes. minPrec is the precedence floor inherited from an
// enclosing operator, used when this frame is parsing an operator's
// right-hand side.
type expectExprFrame struct {
	minPrec int
}

func (f *expectExprFrame) expectStr() string { return "an expression" }

// progressFrame accumulates infix operators by precedence.
// havePendingOp/pendingOp record an operator already consumed while its
// right-hand side is being parsed by a nested expectExprFrame; the
// combine happens in Parser.progressAccept once that rhs is delivered.
type progressFrame struct {
	lhs           ast.Expression
	minPrec       int
	havePendingOp bool
	pendingOp     token.Kind
}

func (f *progressFrame) expectStr() string { return "an infix operator or end of expression" }

// applyArgsFrame collects a call's comma-separated argument list once
// progressFrame has recognized a '(' immediately following a callee
// expression — function application folds into the infix loop rather
// than getting a separate named state.
type applyArgsFrame struct {
	sub int // 1 = expect an argument expr or ')', 2 = expect ',' or ')'
	fn  ast.Expression
	args []ast.Expression
}

func (f *applyArgsFrame) expectStr() string {
	if f.sub == 2 {
		return "',' or ')'"
	}
	return "an argument or ')'"
}

// expectFormalArglistFrame implements argl_0,1a,1b: the caller has
// already consumed the opening '('.
type expectFormalArglistFrame struct {
	sub     int // 1 = expect formal or ')', 2 = expect ',' or ')'
	formals []formalSpec
}

func (f *expectFormalArglistFrame) expectStr() string {
	if f.sub == 2 {
		return "',' or ')'"
	}
	return "a formal parameter or ')'"
}

// expectFormalFrame parses one "name : type" formal.
type expectFormalFrame struct {
	sub  int // 1 = expect name, 2 = expect ':', 3 = expect type
	name *strpool.UniqueString
}

func (f *expectFormalFrame) expectStr() string {
	switch f.sub {
	case 1:
		return "a parameter name"
	case 2:
		return "':' after a parameter name"
	case 3:
		return "a type after ':'"
	default:
		return "a formal parameter"
	}
}
