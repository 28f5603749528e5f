package interp

import (
	"strings"

	"github.com/schematika/schematika/internal/ast"
	"github.com/schematika/schematika/internal/diag"
	"github.com/schematika/schematika/internal/gcheap"
	"github.com/schematika/schematika/internal/parser"
	"github.com/schematika/schematika/internal/rtval"
)

// Eval walks expr to a value. Evaluation is strict, left-to-right,
// inside-out: an Apply evaluates its function expression, then each
// argument in declared order, then the callee's body with the new
// activation frame pushed — there is no laziness and no short-circuit
// beyond IfElse's own branch selection.
func Eval(c *gcheap.Collector, g *Globals, env *Frame, expr ast.Expression) (rtval.Value, error) {
	switch e := expr.(type) {
	case *ast.Constant:
		return e.Value, nil

	case *ast.VarRef:
		return evalVarRef(c, g, env, e)

	case *ast.Lambda:
		return NewClosure(c, e, env), nil

	case *ast.IfElse:
		return evalIfElse(c, g, env, e)

	case *ast.Sequence:
		return evalSequence(c, g, env, e)

	case *ast.Define:
		return evalDefine(c, g, env, e)

	case *ast.Convert:
		return evalConvert(c, g, env, e)

	case *ast.Apply:
		return evalApply(c, g, env, e)

	case *ast.VariableDef:
		return nil, diag.Invariant("interp: a bare VariableDef is not directly evaluable (name %q)", e.Name.Text())

	default:
		return nil, diag.Invariant("interp: unhandled expression kind %v", expr.ExprKind())
	}
}

// evalVarRef resolves a variable reference to its current value. A
// global binding whose name matches the shape internal/parser generates
// for a primitive operator (e.g. "add2_i64") never goes through
// Globals — it has no def statement behind it — so it resolves straight
// to a PrimitiveFn instead of a stored slot value.
func evalVarRef(c *gcheap.Collector, g *Globals, env *Frame, r *ast.VarRef) (rtval.Value, error) {
	name := r.VarDef.Name.Text()
	if r.Binding.IsGlobal() {
		if stem, ok := parser.IsPrimitiveOpName(name); ok {
			tag := strings.TrimPrefix(name, stem+"_")
			return NewPrimitiveFn(c, stem, tag), nil
		}
		v, ok := g.Get(r.Binding.SlotIndex)
		if !ok {
			return nil, diag.UnknownVar(diag.Pos{}, name)
		}
		return v, nil
	}
	v, ok := env.Lookup(r.Binding.LinkDepth, r.Binding.SlotIndex)
	if !ok {
		return nil, diag.Invariant("interp: VarRef %q has an unreachable binding %s", name, r.Binding)
	}
	return v, nil
}

func evalIfElse(c *gcheap.Collector, g *Globals, env *Frame, ie *ast.IfElse) (rtval.Value, error) {
	testVal, err := Eval(c, g, env, ie.Test)
	if err != nil {
		return nil, err
	}
	b, ok := testVal.(*rtval.Bool)
	if !ok {
		return nil, diag.TypeMismatchf(diag.Pos{}, "if-expression test evaluated to a non-bool value %s", testVal)
	}
	if b.V {
		return Eval(c, g, env, ie.WhenTrue)
	}
	if ie.WhenFalse == nil {
		return rtval.NewUnit(c), nil
	}
	return Eval(c, g, env, ie.WhenFalse)
}

func evalSequence(c *gcheap.Collector, g *Globals, env *Frame, s *ast.Sequence) (rtval.Value, error) {
	var last rtval.Value = rtval.NewUnit(c)
	for _, sub := range s.Exprs {
		v, err := Eval(c, g, env, sub)
		if err != nil {
			return nil, err
		}
		last = v
	}
	return last, nil
}

func evalDefine(c *gcheap.Collector, g *Globals, env *Frame, d *ast.Define) (rtval.Value, error) {
	v, err := Eval(c, g, env, d.Rhs)
	if err != nil {
		return nil, err
	}
	if d.Lhs.Binding.IsGlobal() {
		g.Install(d.Lhs.Binding.SlotIndex, v)
	}
	return v, nil
}

// evalApply implements the apply-frame/eval-args-frame protocol.
// Eval's own recursion is the trampoline; ApplyFrame and EvalArgsFrame
// are still materialized as GC-managed records tracking the callee and
// each argument slot as it fills in, so that shape is genuinely present
// on the heap, not just in Eval's Go call stack.
func evalApply(c *gcheap.Collector, g *Globals, env *Frame, a *ast.Apply) (rtval.Value, error) {
	fnVal, err := Eval(c, g, env, a.Fn)
	if err != nil {
		return nil, err
	}
	af := NewApplyFrame(c, fnVal, len(a.Args))
	ef := NewEvalArgsFrame(c, af)
	for i, argExpr := range a.Args {
		ef.Index = i
		v, err := Eval(c, g, env, argExpr)
		if err != nil {
			return nil, err
		}
		af.Args[i] = v
		c.WriteBarrier(af, v, gcheap.SliceRoot(&af.Args))
	}

	switch fn := af.Fn.(type) {
	case *Closure:
		return applyClosure(c, g, fn, af.Args)
	case *PrimitiveFn:
		return dispatchPrimitive(c, fn, af.Args)
	default:
		return nil, diag.TypeMismatchf(diag.Pos{}, "attempt to call a non-function value %s", af.Fn)
	}
}

func applyClosure(c *gcheap.Collector, g *Globals, cl *Closure, args []rtval.Value) (rtval.Value, error) {
	want := len(cl.Lam.Params.Names())
	if want != len(args) {
		return nil, diag.TypeMismatchf(diag.Pos{}, "closure %s expects %d argument(s), got %d", cl, want, len(args))
	}
	frame := NewFrame(c, cl.Env, args)
	return Eval(c, g, frame, cl.Lam.Body)
}

func evalConvert(c *gcheap.Collector, g *Globals, env *Frame, cv *ast.Convert) (rtval.Value, error) {
	v, err := Eval(c, g, env, cv.Arg)
	if err != nil {
		return nil, err
	}
	return Convert(c, cv.DestType, v)
}
