package parser

import (
	"fmt"

	"github.com/schematika/schematika/internal/ast"
	"github.com/schematika/schematika/internal/token"
	"github.com/schematika/schematika/internal/typedescr"
)

// opBaseName maps an infix operator token to the stem of the primitive's
// generated name (the progress state: "emit Apply(primitive_op_
// for(lhs_type, op), [lhs, rhs])... e.g. add2_f64, add2_i64").
var opBaseName = map[token.Kind]string{
	token.Plus:     "add2",
	token.Minus:    "sub2",
	token.Star:     "mul2",
	token.Slash:    "div2",
	token.EqEq:     "eq2",
	token.Eq:       "eq2",
	token.NotEq:    "ne2",
	token.Lt:       "lt2",
	token.Gt:       "gt2",
	token.LtEq:     "le2",
	token.GtEq:     "ge2",
	token.AndAnd:   "and2",
	token.OrOr:     "or2",
	token.Walrus:   "assign2",
	token.FatArrow: "implies2",
}

// resultTag reports the primitive's result type for a given operator and
// operand type: comparison/logical operators always yield bool;
// arithmetic operators yield the operand type unchanged.
func resultTag(op token.Kind, operand typedescr.Tag) typedescr.Tag {
	switch op {
	case token.Plus, token.Minus, token.Star, token.Slash:
		return operand
	default:
		return typedescr.Bool
	}
}

// primitiveOpVarRef resolves (creating on first use) the global
// VariableDef for the primitive named by op and lhsTag, e.g. "add2_i64",
// and returns a fresh VarRef to it. The binding is installed once per
// (op, lhsTag) pair in p.Global; repeated uses across a session share the
// same VariableDef (DeclareGlobal is idempotent by name).
func (p *Parser) primitiveOpVarRef(op token.Kind, lhsTag typedescr.Tag) (*ast.VarRef, error) {
	base, ok := opBaseName[op]
	if !ok {
		return nil, fmt.Errorf("parser: %s has no primitive-op mapping", op)
	}
	name := fmt.Sprintf("%s_%s", base, lhsTag)
	uname := p.Pool.Intern(name)

	vd := p.Global.DeclareGlobal(p.Collector, uname, name)
	if !vd.TypeRef().Resolved() {
		operandTD := typedescr.Global().RequirePrimitive(lhsTag)
		resultTD := typedescr.Global().RequirePrimitive(resultTag(op, lhsTag))
		sig := typedescr.Global().RequireFunction(resultTD, []*typedescr.TypeDescr{operandTD, operandTD}, true)
		vd.AssignValueType(sig)
	}
	return ast.NewVarRef(p.Collector, vd, ast.GlobalLinkDepth), nil
}

// IsPrimitiveOpName reports whether name matches the generated-name shape
// a primitive operator produces, and if so returns its operator stem
// (e.g. "add2_i64" -> "add2"). internal/interp uses this to recognize an
// Apply whose callee is a primitive rather than a user lambda, without
// this package and internal/interp needing a shared registry.
func IsPrimitiveOpName(name string) (stem string, ok bool) {
	for _, b := range opBaseName {
		prefix := b + "_"
		if len(name) > len(prefix) && name[:len(prefix)] == prefix {
			return b, true
		}
	}
	return "", false
}
