// Package diag defines the error taxonomy shared by the tokenizer, parser,
// type inference and allocator: lexical/parse errors are recoverable and
// carry a source position; allocator and invariant failures are fatal.
package diag

import "fmt"

// Kind names one row of the error taxonomy.
type Kind int

const (
	LexError Kind = iota
	ParseError
	TypeMismatch
	UnknownVariable
	AllocationFailure
	TypeNotInstalled
	InternalInvariant
)

func (k Kind) String() string {
	switch k {
	case LexError:
		return "LexError"
	case ParseError:
		return "ParseError"
	case TypeMismatch:
		return "TypeMismatch"
	case UnknownVariable:
		return "UnknownVariable"
	case AllocationFailure:
		return "AllocationFailure"
	case TypeNotInstalled:
		return "TypeNotInstalled"
	case InternalInvariant:
		return "InternalInvariant"
	default:
		return "Unknown"
	}
}

// Pos is a source location: byte offset plus the 1-based line/column an
// operator can show to a user. Line/Column are best-effort; Offset is
// authoritative for resynchronization.
type Pos struct {
	Offset int
	Line   int
	Column int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Diag is the tagged-union error carried out of the tokenizer, parser and
// interpreter. Fatal diagnostics (AllocationFailure, TypeNotInstalled,
// InternalInvariant) are meant to terminate the process once logged;
// everything else is recoverable by the caller.
type Diag struct {
	Kind    Kind
	Message string
	At      Pos
}

func (d *Diag) Error() string {
	return fmt.Sprintf("%s at %s: %s", d.Kind, d.At, d.Message)
}

// Fatal reports whether this diagnostic's kind terminates the process.
func (d *Diag) Fatal() bool {
	switch d.Kind {
	case AllocationFailure, TypeNotInstalled, InternalInvariant:
		return true
	default:
		return false
	}
}

func Lex(at Pos, format string, args ...any) *Diag {
	return &Diag{Kind: LexError, At: at, Message: fmt.Sprintf(format, args...)}
}

func Parse(at Pos, format string, args ...any) *Diag {
	return &Diag{Kind: ParseError, At: at, Message: fmt.Sprintf(format, args...)}
}

func TypeMismatchf(at Pos, format string, args ...any) *Diag {
	return &Diag{Kind: TypeMismatch, At: at, Message: fmt.Sprintf(format, args...)}
}

func UnknownVar(at Pos, name string) *Diag {
	return &Diag{Kind: UnknownVariable, At: at, Message: fmt.Sprintf("unknown variable %q", name)}
}

func Alloc(format string, args ...any) *Diag {
	return &Diag{Kind: AllocationFailure, Message: fmt.Sprintf(format, args...)}
}

func NotInstalled(format string, args ...any) *Diag {
	return &Diag{Kind: TypeNotInstalled, Message: fmt.Sprintf(format, args...)}
}

func Invariant(format string, args ...any) *Diag {
	return &Diag{Kind: InternalInvariant, Message: fmt.Sprintf(format, args...)}
}
