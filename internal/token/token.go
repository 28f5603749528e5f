// Package token defines the lexical token kinds the tokenizer produces
// and the parser state machine consumes.
package token

import "fmt"

// Kind discriminates one lexical category.
type Kind int

const (
	EOF Kind = iota
	Ident
	BoolLit
	IntLit
	FloatLit
	StringLit

	// keywords
	KwDef
	KwDecl
	KwType
	KwLambda
	KwIf
	KwThen
	KwElse
	KwLet
	KwIn
	KwEnd
	KwTrue
	KwFalse

	// punctuation
	LParen
	RParen
	LBracket
	RBracket
	LBrace
	RBrace
	Lt
	Gt
	Dot
	Comma
	Colon
	ColonColon
	Semi
	Eq
	Arrow   // ->
	FatArrow // =>
	Plus
	Minus
	Star
	Slash
	EqEq
	NotEq
	AndAnd
	OrOr
	LtEq
	GtEq
	Walrus // :=
)

var names = [...]string{
	EOF: "eof", Ident: "identifier", BoolLit: "bool literal",
	IntLit: "integer literal", FloatLit: "float literal", StringLit: "string literal",
	KwDef: "def", KwDecl: "decl", KwType: "type", KwLambda: "lambda",
	KwIf: "if", KwThen: "then", KwElse: "else", KwLet: "let", KwIn: "in", KwEnd: "end",
	KwTrue: "true", KwFalse: "false",
	LParen: "(", RParen: ")", LBracket: "[", RBracket: "]", LBrace: "{", RBrace: "}",
	Lt: "<", Gt: ">", Dot: ".", Comma: ",", Colon: ":", ColonColon: "::", Semi: ";",
	Eq: "=", Arrow: "->", FatArrow: "=>", Plus: "+", Minus: "-", Star: "*", Slash: "/",
	EqEq: "==", NotEq: "!=", AndAnd: "&&", OrOr: "||", LtEq: "<=", GtEq: ">=", Walrus: ":=",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(names) && names[k] != "" {
		return names[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Keywords maps a scanned identifier's text to its keyword Kind; a
// lookup miss means the identifier is an ordinary name.
var Keywords = map[string]Kind{
	"def": KwDef, "decl": KwDecl, "type": KwType, "lambda": KwLambda,
	"if": KwIf, "then": KwThen, "else": KwElse, "let": KwLet, "in": KwIn, "end": KwEnd,
	"true": KwTrue, "false": KwFalse,
}

// Token is one scanned lexeme plus its source position.
type Token struct {
	Kind   Kind
	Text   string // raw source text; for StringLit, the unescaped value
	Offset int
	Line   int
	Column int
}

func (t Token) String() string {
	if t.Text != "" {
		return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
	}
	return t.Kind.String()
}

// Precedence returns the infix binding power of an operator-capable
// token kind, and whether it is one at all (the progress state:
// "== != < > <= >= = := =>" = 2, "+ -" = 4, "* /" = 5).
func Precedence(k Kind) (int, bool) {
	switch k {
	case EqEq, NotEq, Lt, Gt, LtEq, GtEq, Eq, Walrus, FatArrow:
		return 2, true
	case Plus, Minus:
		return 4, true
	case Star, Slash:
		return 5, true
	default:
		return 0, false
	}
}
