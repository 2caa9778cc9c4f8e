package interp

import (
	"strconv"

	"github.com/povilasb/wabbit-go/internal/ast"
	"github.com/povilasb/wabbit-go/internal/errors"
)

// parseInt and parseFloat convert a literal's lexeme into its runtime value.
// The lexer guarantees the lexeme is well-formed, so a parse failure here is
// an implementation bug, not a user-facing error.

func parseInt(n *ast.Integer) (Value, error) {
	v, err := strconv.ParseInt(n.Lexeme, 10, 64)
	errors.Assert(err == nil, "malformed integer lexeme %q reached the interpreter: %v", n.Lexeme, err)
	return IntValue(v), nil
}

func parseFloat(n *ast.Float) (Value, error) {
	lexeme := n.Lexeme
	if lexeme[0] == '.' {
		lexeme = "0" + lexeme
	}
	v, err := strconv.ParseFloat(lexeme, 64)
	errors.Assert(err == nil, "malformed float lexeme %q reached the interpreter: %v", n.Lexeme, err)
	return FloatValue(v), nil
}
