// Package parser implements the pushdown-state-machine parser:
// IncludeToken feeds one token at a time and drives an explicit
// stack of frame values, each a plain Go struct rather than a virtual
// base class — the same sum-type-plus-type-switch idiom internal/ast
// uses for expression variants (see its package doc). The parser never
// panics; every malformed-input path returns a *diag.Diag and leaves the
// Parser ready to report ResultError until the caller resets it.
package parser

import (
	"strconv"

	"github.com/schematika/schematika/internal/ast"
	"github.com/schematika/schematika/internal/diag"
	"github.com/schematika/schematika/internal/gcheap"
	"github.com/schematika/schematika/internal/rtval"
	"github.com/schematika/schematika/internal/strpool"
	"github.com/schematika/schematika/internal/symtab"
	"github.com/schematika/schematika/internal/token"
	"github.com/schematika/schematika/internal/typedescr"
)

// Parser holds the pushdown stack plus the shared resources every frame
// needs to allocate AST nodes: the collector (for gcheap.Allocate), the
// string pool (for interning names) and the global symbol table (for
// def/let resolution and primitive-operator registration).
type Parser struct {
	Collector *gcheap.Collector
	Pool      *strpool.Pool
	Global    *symtab.GlobalSymtab

	scope ast.SymbolTable // nil at the top level; a *symtab.LocalSymtab inside a lambda/let body
	stack []frame

	Result Result

	pendingTop ast.Expression // a top-level expression awaiting its closing ';'
	placeholderSeq int
}

// NewInteractiveSession starts a parser for a REPL-style session: bare
// expressions are accepted at the top level in addition to 'def's, and
// each completed statement is delivered through Result one at a time.
func NewInteractiveSession(c *gcheap.Collector, pool *strpool.Pool, global *symtab.GlobalSymtab) *Parser {
	p := &Parser{Collector: c, Pool: pool, Global: global}
	p.stack = []frame{&exprSeqFrame{interactive: true}}
	return p
}

// NewTranslationUnit starts a parser for a whole-file batch parse: only
// 'def's are legal at the top level.
func NewTranslationUnit(c *gcheap.Collector, pool *strpool.Pool, global *symtab.GlobalSymtab) *Parser {
	p := &Parser{Collector: c, Pool: pool, Global: global}
	p.stack = []frame{&exprSeqFrame{interactive: false}}
	return p
}

func (p *Parser) placeholder() string {
	p.placeholderSeq++
	return "expr:" + strconv.Itoa(p.placeholderSeq)
}

func pos(tok *token.Token) diag.Pos {
	return diag.Pos{Offset: tok.Offset, Line: tok.Line, Column: tok.Column}
}

// TakeResult returns the parser's current result and resets it to
// ResultPending, so a session parser can be driven through a sequence of
// top-level statements without constructing a new Parser each time.
func (p *Parser) TakeResult() Result {
	r := p.Result
	p.Result = Result{}
	return r
}

// IncludeToken feeds one token to the state machine. A
// frame's step may determine it cannot consume tok itself — typically
// because a terminator token belongs to whichever frame is now on top
// after a child completes, or because starting a new sub-expression
// means replaying tok against the frame just pushed for it — in which
// case step returns consumed=false and IncludeToken retries tok against
// the new stack top. This never loops forever: each retry strictly
// shrinks or rewrites the stack in a way that eventually either consumes
// tok or produces an error.
func (p *Parser) IncludeToken(tok *token.Token) error {
	if p.Result.State == ResultError {
		return p.Result.Err
	}
	for {
		consumed, err := p.step(tok)
		if err != nil {
			d, ok := err.(*diag.Diag)
			if !ok {
				d = diag.Parse(pos(tok), "%s", err.Error())
			}
			p.Result = Result{State: ResultError, Err: d}
			return d
		}
		if consumed {
			return nil
		}
	}
}

func (p *Parser) replaceTop(f frame) { p.stack[len(p.stack)-1] = f }

func (p *Parser) resolveVarRef(name *strpool.UniqueString) (*ast.VarRef, bool) {
	if p.scope != nil {
		if vr, ok := symtab.ResolveVarRef(p.Collector, p.scope, name); ok {
			return vr, true
		}
	}
	// Scopes opened at the top level have a nil parent, so a miss in the
	// local chain falls back to the global table.
	if vd, ok := p.Global.LookupVarDef(name); ok {
		return ast.NewVarRef(p.Collector, vd, ast.GlobalLinkDepth), true
	}
	// A generated primitive-operator name (e.g. add2_i64, as an infix
	// operator prints) is declared on first use, as the operator is.
	if stem, ok := IsPrimitiveOpName(name.Text()); ok {
		if tag, ok := primitiveTypeNames[name.Text()[len(stem)+1:]]; ok {
			for op, base := range opBaseName {
				if base == stem {
					vr, err := p.primitiveOpVarRef(op, tag)
					return vr, err == nil
				}
			}
		}
	}
	return nil, false
}

var primitiveTypeNames = map[string]typedescr.Tag{
	"unit": typedescr.Unit, "bool": typedescr.Bool, "i32": typedescr.I32,
	"i64": typedescr.I64, "f64": typedescr.F64, "string": typedescr.Str,
}

func parsePrimitiveType(tok *token.Token) (*typedescr.TypeDescr, error) {
	if tok.Kind != token.Ident {
		return nil, diag.Parse(pos(tok), "expected a type name, got %s", tok.Kind)
	}
	tag, ok := primitiveTypeNames[tok.Text]
	if !ok {
		return nil, diag.Parse(pos(tok), "unknown type %q", tok.Text)
	}
	return typedescr.Global().RequirePrimitive(tag), nil
}

func (p *Parser) buildSequence(exprs []ast.Expression) ast.Expression {
	s := ast.NewSequence(p.Collector, p.placeholder())
	for _, e := range exprs {
		s.PushBack(p.Collector, e)
	}
	return s
}

func (p *Parser) reduceBinary(lhs ast.Expression, op token.Kind, rhs ast.Expression) (ast.Expression, error) {
	lhsTD := lhs.ValueType()
	if lhsTD == nil {
		return nil, diag.TypeMismatchf(diag.Pos{}, "left operand of %s has unresolved type", op)
	}
	tag, ok := lhsTD.Primitive()
	if !ok {
		return nil, diag.TypeMismatchf(diag.Pos{}, "operator %s requires a primitive operand, got %s", op, lhsTD)
	}
	fnRef, err := p.primitiveOpVarRef(op, tag)
	if err != nil {
		return nil, diag.Invariant("%s", err.Error())
	}
	app := ast.NewApply(p.Collector, p.placeholder(), fnRef, []ast.Expression{lhs, rhs})
	if ret, _, _, ok := fnRef.ValueType().IsFunction(); ok {
		app.AssignValueType(ret)
	}
	return app, nil
}

func paramTDs(local *symtab.LocalSymtab) ([]*typedescr.TypeDescr, bool) {
	tds := make([]*typedescr.TypeDescr, len(local.Vars))
	for i, v := range local.Vars {
		if v.Tref.TD == nil {
			return nil, false
		}
		tds[i] = v.Tref.TD
	}
	return tds, true
}

// formalSpec is an intermediate (name, type) pair collected while
// parsing a lambda's formal-parameter list, before the lambda's own
// LocalSymtab exists to assign declaration-order slots to it.
type formalSpec struct {
	name *strpool.UniqueString
	typ  *typedescr.TypeDescr
}

// step dispatches to the handler for whichever frame is on top of the
// stack (the sum-type-over-a-type-switch translation of the
// original's per-state virtual dispatch).
func (p *Parser) step(tok *token.Token) (bool, error) {
	if len(p.stack) == 0 {
		return false, diag.Invariant("parser: empty frame stack")
	}
	top := p.stack[len(p.stack)-1]
	switch f := top.(type) {
	case *exprSeqFrame:
		return p.stepExprSeq(f, tok)
	case *defineFrame:
		return p.stepDefine(f, tok)
	case *lambdaFrame:
		return p.stepLambda(f, tok)
	case *parenFrame:
		return p.stepParen(f, tok)
	case *sequenceFrame:
		return p.stepSequence(f, tok)
	case *let1Frame:
		return p.stepLet1(f, tok)
	case *ifElseFrame:
		return p.stepIfElse(f, tok)
	case *expectExprFrame:
		return p.stepExpectExpr(f, tok)
	case *progressFrame:
		return p.stepProgress(f, tok)
	case *applyArgsFrame:
		return p.stepApplyArgs(f, tok)
	case *expectFormalArglistFrame:
		return p.stepFormalArglist(f, tok)
	case *expectFormalFrame:
		return p.stepExpectFormal(f, tok)
	default:
		return false, diag.Invariant("parser: unrecognized frame type %T", top)
	}
}

// deliver pops the frame that just completed (the current stack top) and
// hands expr to whichever frame is now on top. Every completion path —
// whether the completing frame consumed its own terminator token or is
// handing control back for an outer frame to reconsider the same token —
// funnels through here, so frame-to-frame handoff has exactly one
// implementation.
func (p *Parser) deliver(expr ast.Expression) error {
	if len(p.stack) == 0 {
		return diag.Invariant("parser: deliver on an empty stack")
	}
	p.stack = p.stack[:len(p.stack)-1]
	if len(p.stack) == 0 {
		return diag.Invariant("parser: deliver emptied the frame stack")
	}
	top := p.stack[len(p.stack)-1]
	switch f := top.(type) {
	case *exprSeqFrame:
		p.pendingTop = expr
		return nil
	case *progressFrame:
		return p.progressAccept(f, expr)
	case *parenFrame:
		f.inner = expr
		f.sub = 1
		return nil
	case *sequenceFrame:
		f.exprs = append(f.exprs, expr)
		return nil
	case *applyArgsFrame:
		f.args = append(f.args, expr)
		f.sub = 2
		return nil
	case *ifElseFrame:
		return p.ifElseAccept(f, expr)
	case *defineFrame:
		f.rhs = expr
		return nil
	case *let1Frame:
		return p.let1Accept(f, expr)
	case *lambdaFrame:
		return p.lambdaAccept(f, expr)
	default:
		return diag.Invariant("parser: frame %T cannot accept a delivered expression", top)
	}
}

// deliverLet1Result is let1Accept's finishing move: it pops the
// completed let1Frame itself (not merely the child that fed it) and
// appends the fully desugared Apply(Lambda(...), [rhs]) to the enclosing
// sequenceFrame, marking it closed (a sequence that contained
// a nested 'def' accepts nothing further but '}').
func (p *Parser) deliverLet1Result(expr ast.Expression) error {
	p.stack = p.stack[:len(p.stack)-1]
	if len(p.stack) == 0 {
		return diag.Invariant("parser: let1 result delivered on an empty stack")
	}
	top := p.stack[len(p.stack)-1]
	sf, ok := top.(*sequenceFrame)
	if !ok {
		return diag.Invariant("parser: let1 result delivered into non-sequence frame %T", top)
	}
	sf.exprs = append(sf.exprs, expr)
	sf.sawLet1 = true
	return nil
}

func (p *Parser) deliverFormal(spec formalSpec) error {
	if len(p.stack) == 0 {
		return diag.Invariant("parser: formal delivered on an empty stack")
	}
	top := p.stack[len(p.stack)-1]
	f, ok := top.(*expectFormalArglistFrame)
	if !ok {
		return diag.Invariant("parser: formal delivered into non-arglist frame %T", top)
	}
	f.formals = append(f.formals, spec)
	f.sub = 2
	return nil
}

func (p *Parser) deliverFormalArglist(formals []formalSpec) error {
	if len(p.stack) == 0 {
		return diag.Invariant("parser: formal arglist delivered on an empty stack")
	}
	top := p.stack[len(p.stack)-1]
	lf, ok := top.(*lambdaFrame)
	if !ok {
		return diag.Invariant("parser: formal arglist delivered into non-lambda frame %T", top)
	}
	local := symtab.NewLocal(p.Collector, lf.enclosing)
	for _, sp := range formals {
		vd := local.Declare(p.Collector, sp.name, sp.name.Text())
		if sp.typ != nil {
			vd.AssignValueType(sp.typ)
		}
	}
	lf.local = local
	p.scope = local
	lf.sub = 2
	return nil
}

// progressAccept implements the precedence-climbing combine step: an
// operator result (havePendingOp) reduces lhs/pendingOp/rhs into a
// primitive Apply; a call result (no pending op — the delivery came from
// applyArgsFrame, which already wrapped fn/args into an Apply itself)
// simply replaces lhs.
func (p *Parser) progressAccept(f *progressFrame, expr ast.Expression) error {
	if f.havePendingOp {
		op := f.pendingOp
		f.havePendingOp = false
		combined, err := p.reduceBinary(f.lhs, op, expr)
		if err != nil {
			return err
		}
		f.lhs = combined
		return nil
	}
	f.lhs = expr
	return nil
}

func (p *Parser) ifElseAccept(f *ifElseFrame, expr ast.Expression) error {
	switch f.sub {
	case 0:
		f.test = expr
		f.sub = 1
		return nil
	case 2:
		f.whenTrue = expr
		f.sub = 3
		return nil
	case 4:
		f.whenFalse = expr
		f.sub = 5
		return nil
	default:
		return diag.Invariant("parser: if/else frame received a delivery at unexpected sub %d", f.sub)
	}
}

func (p *Parser) let1Accept(f *let1Frame, expr ast.Expression) error {
	if f.rhs == nil {
		f.rhs = expr
		return nil
	}
	lamName := symtab.Gensym(p.Pool, "let")
	lam := ast.NewLambda(p.Collector, p.placeholder(), lamName, f.local, expr)
	if ptds, ok := paramTDs(f.local); ok {
		if bodyTD := expr.ValueType(); bodyTD != nil {
			lam.AssignValueType(typedescr.Global().RequireFunction(bodyTD, ptds, false))
		}
	}
	applyExpr := ast.NewApply(p.Collector, p.placeholder(), lam, []ast.Expression{f.rhs})
	p.scope = f.enclosing
	return p.deliverLet1Result(applyExpr)
}

func (p *Parser) lambdaAccept(f *lambdaFrame, expr ast.Expression) error {
	f.body = expr
	f.sub = 5
	return nil
}

// --- per-frame-kind token handlers ---

func (p *Parser) stepExprSeq(f *exprSeqFrame, tok *token.Token) (bool, error) {
	if p.pendingTop != nil {
		if tok.Kind == token.Semi {
			p.Result = Result{State: ResultComplete, Expr: p.pendingTop}
			p.pendingTop = nil
			return true, nil
		}
		return false, diag.Parse(pos(tok), "expected ';' after top-level expression, got %s", tok.Kind)
	}
	switch tok.Kind {
	case token.EOF:
		return true, nil
	case token.KwDef:
		p.stack = append(p.stack, &defineFrame{sub: 1})
		return true, nil
	default:
		if !f.interactive {
			return false, diag.Parse(pos(tok), "expected %s, got %s", f.expectStr(), tok.Kind)
		}
		p.stack = append(p.stack, &expectExprFrame{minPrec: 0})
		return false, nil
	}
}

func (p *Parser) stepDefine(f *defineFrame, tok *token.Token) (bool, error) {
	switch f.sub {
	case 1:
		if tok.Kind != token.Ident {
			return false, diag.Parse(pos(tok), "expected %s, got %s", f.expectStr(), tok.Kind)
		}
		f.name = p.Pool.Intern(tok.Text)
		f.sub = 2
		return true, nil
	case 2:
		switch tok.Kind {
		case token.Colon:
			f.sub = 3
			return true, nil
		case token.Eq:
			p.stack = append(p.stack, &expectExprFrame{minPrec: 0})
			f.sub = 5
			return true, nil
		default:
			return false, diag.Parse(pos(tok), "expected %s, got %s", f.expectStr(), tok.Kind)
		}
	case 3:
		td, err := parsePrimitiveType(tok)
		if err != nil {
			return false, err
		}
		f.declaredType = td
		f.sub = 4
		return true, nil
	case 4:
		if tok.Kind != token.Eq {
			return false, diag.Parse(pos(tok), "expected %s, got %s", f.expectStr(), tok.Kind)
		}
		p.stack = append(p.stack, &expectExprFrame{minPrec: 0})
		f.sub = 5
		return true, nil
	case 5:
		if f.rhs == nil {
			return false, diag.Invariant("parser: define frame reached ';' state before its rhs was delivered")
		}
		if tok.Kind != token.Semi {
			return false, diag.Parse(pos(tok), "expected %s, got %s", f.expectStr(), tok.Kind)
		}
		vd := p.Global.DeclareGlobal(p.Collector, f.name, f.name.Text())
		if f.declaredType != nil {
			vd.AssignValueType(f.declaredType)
		} else if rt := f.rhs.ValueType(); rt != nil {
			vd.AssignValueType(rt)
		}
		def := ast.NewDefine(p.Collector, vd, f.rhs)
		// The ';' is left for the enclosing frame, which completes the
		// statement on it.
		return false, p.deliver(def)
	default:
		return false, diag.Invariant("parser: define frame invalid sub %d", f.sub)
	}
}

func (p *Parser) stepLambda(f *lambdaFrame, tok *token.Token) (bool, error) {
	switch f.sub {
	case 1:
		if tok.Kind != token.LParen {
			return false, diag.Parse(pos(tok), "expected %s, got %s", f.expectStr(), tok.Kind)
		}
		p.stack = append(p.stack, &expectFormalArglistFrame{sub: 1})
		return true, nil
	case 2:
		if tok.Kind == token.Colon {
			f.sub = 3
			return true, nil
		}
		p.stack = append(p.stack, &expectExprFrame{minPrec: 0})
		f.sub = 4
		return false, nil
	case 3:
		td, err := parsePrimitiveType(tok)
		if err != nil {
			return false, err
		}
		f.retType = td
		p.stack = append(p.stack, &expectExprFrame{minPrec: 0})
		f.sub = 4
		return true, nil
	case 5:
		if tok.Kind != token.Semi {
			return false, diag.Parse(pos(tok), "expected %s, got %s", f.expectStr(), tok.Kind)
		}
		lamName := symtab.Gensym(p.Pool, "lambda")
		lam := ast.NewLambda(p.Collector, p.placeholder(), lamName, f.local, f.body)
		retTD := f.retType
		if retTD == nil {
			retTD = f.body.ValueType()
		}
		if retTD != nil {
			if ptds, ok := paramTDs(f.local); ok {
				lam.AssignValueType(typedescr.Global().RequireFunction(retTD, ptds, false))
			}
		}
		p.scope = f.enclosing
		// The ';' also ends the enclosing form (e.g. a def), so it is
		// handed back rather than consumed.
		return false, p.deliver(lam)
	default:
		return false, diag.Invariant("parser: lambda frame invalid sub %d for step", f.sub)
	}
}

func (p *Parser) stepParen(f *parenFrame, tok *token.Token) (bool, error) {
	if f.sub == 0 {
		return false, diag.Invariant("parser: paren frame reached step with no inner expression delivered")
	}
	if tok.Kind != token.RParen {
		return false, diag.Parse(pos(tok), "expected %s, got %s", f.expectStr(), tok.Kind)
	}
	inner := f.inner
	return true, p.deliver(inner)
}

func (p *Parser) stepSequence(f *sequenceFrame, tok *token.Token) (bool, error) {
	// A let1 tail sequence shares its closing '}' with the sequence that
	// held the 'def', so it leaves that token for the enclosing frames.
	_, isTail := p.stack[len(p.stack)-2].(*let1Frame)
	if f.sawLet1 {
		if tok.Kind == token.RBrace {
			return !isTail, p.deliver(p.buildSequence(f.exprs))
		}
		return false, diag.Parse(pos(tok), "expected %s, got %s", f.expectStr(), tok.Kind)
	}
	switch tok.Kind {
	case token.Semi:
		return true, nil
	case token.RBrace:
		return !isTail, p.deliver(p.buildSequence(f.exprs))
	case token.KwDef:
		p.stack = append(p.stack, &let1Frame{sub: 1})
		return true, nil
	default:
		p.stack = append(p.stack, &expectExprFrame{minPrec: 0})
		return false, nil
	}
}

func (p *Parser) stepLet1(f *let1Frame, tok *token.Token) (bool, error) {
	switch f.sub {
	case 1:
		if tok.Kind != token.Ident {
			return false, diag.Parse(pos(tok), "expected %s, got %s", f.expectStr(), tok.Kind)
		}
		f.name = p.Pool.Intern(tok.Text)
		f.sub = 2
		return true, nil
	case 2:
		switch tok.Kind {
		case token.Colon:
			f.sub = 3
			return true, nil
		case token.Eq:
			p.stack = append(p.stack, &expectExprFrame{minPrec: 0})
			f.sub = 6
			return true, nil
		default:
			return false, diag.Parse(pos(tok), "expected %s, got %s", f.expectStr(), tok.Kind)
		}
	case 3:
		td, err := parsePrimitiveType(tok)
		if err != nil {
			return false, err
		}
		f.declaredType = td
		f.sub = 4
		return true, nil
	case 4:
		if tok.Kind != token.Eq {
			return false, diag.Parse(pos(tok), "expected %s, got %s", f.expectStr(), tok.Kind)
		}
		p.stack = append(p.stack, &expectExprFrame{minPrec: 0})
		f.sub = 6
		return true, nil
	case 6:
		if f.rhs == nil {
			return false, diag.Invariant("parser: let frame reached ';' state before its rhs was delivered")
		}
		if f.local != nil {
			return false, diag.Invariant("parser: let frame re-entered step after its tail was already pushed")
		}
		if tok.Kind != token.Semi {
			return false, diag.Parse(pos(tok), "expected %s, got %s", f.expectStr(), tok.Kind)
		}
		f.enclosing = p.scope
		local := symtab.NewLocal(p.Collector, p.scope)
		vd := local.Declare(p.Collector, f.name, f.name.Text())
		if f.declaredType != nil {
			vd.AssignValueType(f.declaredType)
		} else if rt := f.rhs.ValueType(); rt != nil {
			vd.AssignValueType(rt)
		}
		f.local = local
		f.varDef = vd
		p.scope = local
		p.stack = append(p.stack, &sequenceFrame{})
		return true, nil
	default:
		return false, diag.Invariant("parser: let frame invalid sub %d", f.sub)
	}
}

func (p *Parser) stepIfElse(f *ifElseFrame, tok *token.Token) (bool, error) {
	switch f.sub {
	case 1:
		if tok.Kind != token.KwThen {
			return false, diag.Parse(pos(tok), "expected %s, got %s", f.expectStr(), tok.Kind)
		}
		p.stack = append(p.stack, &expectExprFrame{minPrec: 0})
		f.sub = 2
		return true, nil
	case 3:
		switch tok.Kind {
		case token.KwElse:
			p.stack = append(p.stack, &expectExprFrame{minPrec: 0})
			f.sub = 4
			return true, nil
		case token.Semi:
			ie := ast.NewIfElse(p.Collector, p.placeholder(), f.test, f.whenTrue, nil)
			return false, p.deliver(ie)
		default:
			return false, diag.Parse(pos(tok), "expected %s, got %s", f.expectStr(), tok.Kind)
		}
	case 5:
		if tok.Kind != token.Semi {
			return false, diag.Parse(pos(tok), "expected %s, got %s", f.expectStr(), tok.Kind)
		}
		ie := ast.NewIfElse(p.Collector, p.placeholder(), f.test, f.whenTrue, f.whenFalse)
		// As for a lambda, the ';' is handed back to the enclosing frame.
		return false, p.deliver(ie)
	default:
		return false, diag.Invariant("parser: if/else frame invalid sub %d for step", f.sub)
	}
}

func (p *Parser) stepExpectExpr(f *expectExprFrame, tok *token.Token) (bool, error) {
	switch tok.Kind {
	case token.IntLit:
		n, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return false, diag.Parse(pos(tok), "malformed integer literal %q", tok.Text)
		}
		c := ast.NewConstant(p.Collector, p.placeholder(), rtval.NewI64(p.Collector, n))
		p.replaceTop(&progressFrame{lhs: c, minPrec: f.minPrec})
		return true, nil
	case token.FloatLit:
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return false, diag.Parse(pos(tok), "malformed float literal %q", tok.Text)
		}
		c := ast.NewConstant(p.Collector, p.placeholder(), rtval.NewF64(p.Collector, v))
		p.replaceTop(&progressFrame{lhs: c, minPrec: f.minPrec})
		return true, nil
	case token.StringLit:
		c := ast.NewConstant(p.Collector, p.placeholder(), rtval.NewString(p.Collector, tok.Text))
		p.replaceTop(&progressFrame{lhs: c, minPrec: f.minPrec})
		return true, nil
	case token.KwTrue, token.KwFalse:
		c := ast.NewConstant(p.Collector, p.placeholder(), rtval.NewBool(p.Collector, tok.Kind == token.KwTrue))
		p.replaceTop(&progressFrame{lhs: c, minPrec: f.minPrec})
		return true, nil
	case token.Ident:
		name := p.Pool.Intern(tok.Text)
		vr, ok := p.resolveVarRef(name)
		if !ok {
			return false, diag.UnknownVar(pos(tok), tok.Text)
		}
		p.replaceTop(&progressFrame{lhs: vr, minPrec: f.minPrec})
		return true, nil
	case token.LParen:
		// The parenthesized expression becomes a progressFrame's lhs, so
		// infix operators after ')' still apply to it.
		p.replaceTop(&progressFrame{minPrec: f.minPrec})
		p.stack = append(p.stack, &parenFrame{sub: 0}, &expectExprFrame{minPrec: 0})
		return true, nil
	case token.LBrace:
		p.replaceTop(&sequenceFrame{})
		return true, nil
	case token.KwIf:
		p.replaceTop(&ifElseFrame{sub: 0})
		p.stack = append(p.stack, &expectExprFrame{minPrec: 0})
		return true, nil
	case token.KwLambda:
		p.replaceTop(&lambdaFrame{sub: 1, enclosing: p.scope})
		return true, nil
	default:
		return false, diag.Parse(pos(tok), "expected %s, got %s", f.expectStr(), tok.Kind)
	}
}

func (p *Parser) stepProgress(f *progressFrame, tok *token.Token) (bool, error) {
	if tok.Kind == token.LParen {
		p.stack = append(p.stack, &applyArgsFrame{fn: f.lhs, sub: 1})
		return true, nil
	}
	prec, isOp := token.Precedence(tok.Kind)
	if isOp && prec > f.minPrec {
		f.pendingOp = tok.Kind
		f.havePendingOp = true
		p.stack = append(p.stack, &expectExprFrame{minPrec: prec})
		return true, nil
	}
	final := f.lhs
	if err := p.deliver(final); err != nil {
		return false, err
	}
	return false, nil
}

func (p *Parser) stepApplyArgs(f *applyArgsFrame, tok *token.Token) (bool, error) {
	switch f.sub {
	case 1:
		if tok.Kind == token.RParen {
			app := ast.NewApply(p.Collector, p.placeholder(), f.fn, f.args)
			return true, p.deliver(app)
		}
		p.stack = append(p.stack, &expectExprFrame{minPrec: 0})
		return false, nil
	case 2:
		switch tok.Kind {
		case token.RParen:
			app := ast.NewApply(p.Collector, p.placeholder(), f.fn, f.args)
			return true, p.deliver(app)
		case token.Comma:
			f.sub = 1
			p.stack = append(p.stack, &expectExprFrame{minPrec: 0})
			return true, nil
		default:
			return false, diag.Parse(pos(tok), "expected %s, got %s", f.expectStr(), tok.Kind)
		}
	default:
		return false, diag.Invariant("parser: apply-args frame invalid sub %d", f.sub)
	}
}

func (p *Parser) stepFormalArglist(f *expectFormalArglistFrame, tok *token.Token) (bool, error) {
	switch f.sub {
	case 1:
		if tok.Kind == token.RParen {
			formals := f.formals
			p.stack = p.stack[:len(p.stack)-1]
			return true, p.deliverFormalArglist(formals)
		}
		p.stack = append(p.stack, &expectFormalFrame{sub: 1})
		return false, nil
	case 2:
		switch tok.Kind {
		case token.RParen:
			formals := f.formals
			p.stack = p.stack[:len(p.stack)-1]
			return true, p.deliverFormalArglist(formals)
		case token.Comma:
			f.sub = 1
			p.stack = append(p.stack, &expectFormalFrame{sub: 1})
			return true, nil
		default:
			return false, diag.Parse(pos(tok), "expected %s, got %s", f.expectStr(), tok.Kind)
		}
	default:
		return false, diag.Invariant("parser: formal-arglist frame invalid sub %d", f.sub)
	}
}

func (p *Parser) stepExpectFormal(f *expectFormalFrame, tok *token.Token) (bool, error) {
	switch f.sub {
	case 1:
		if tok.Kind != token.Ident {
			return false, diag.Parse(pos(tok), "expected %s, got %s", f.expectStr(), tok.Kind)
		}
		f.name = p.Pool.Intern(tok.Text)
		f.sub = 2
		return true, nil
	case 2:
		if tok.Kind != token.Colon {
			return false, diag.Parse(pos(tok), "expected %s, got %s", f.expectStr(), tok.Kind)
		}
		f.sub = 3
		return true, nil
	case 3:
		td, err := parsePrimitiveType(tok)
		if err != nil {
			return false, err
		}
		spec := formalSpec{name: f.name, typ: td}
		p.stack = p.stack[:len(p.stack)-1]
		return true, p.deliverFormal(spec)
	default:
		return false, diag.Invariant("parser: formal frame invalid sub %d", f.sub)
	}
}
