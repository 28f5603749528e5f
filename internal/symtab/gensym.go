package symtab

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/schematika/schematika/internal/strpool"
)

// Gensym mints a fresh interned identifier for a synthetic binding site
// the parser introduces but the source text never named — chiefly the
// function a let1-block's desugaring wraps its body in ("{def
// x = rhs; rest...}" becomes an immediately-applied lambda with a
// generated name). The uuid suffix guarantees the name can never collide
// with a user-written identifier, even across repeated desugarings of
// the same block.
func Gensym(pool *strpool.Pool, prefix string) *strpool.UniqueString {
	return pool.Intern(fmt.Sprintf("%s$%s", prefix, uuid.NewString()))
}
