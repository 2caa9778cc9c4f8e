package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/povilasb/wabbit-go/internal/token"
)

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestTokenizeEmptyProgram(t *testing.T) {
	toks, err := Tokenize("")
	require.NoError(t, err)
	assert.Empty(t, toks)
}

func TestTokenizeArithmeticExpression(t *testing.T) {
	toks, err := Tokenize("print 123 + 1.2;")
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{
		token.PRINT, token.INTEGER, token.ADD, token.FLOAT, token.SEMICOLON,
	}, kinds(toks))
	assert.Equal(t, "123", toks[1].Lexeme)
	assert.Equal(t, "1.2", toks[3].Lexeme)
}

func TestTokenizeUnaryAndPrecedenceTokens(t *testing.T) {
	toks, err := Tokenize("print 2 + 3 * -4;")
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{
		token.PRINT, token.INTEGER, token.ADD, token.INTEGER,
		token.MULTIPLY, token.SUB, token.INTEGER, token.SEMICOLON,
	}, kinds(toks))
}

func TestTokenizeKeywordsAndNames(t *testing.T) {
	toks, err := Tokenize("var x int = 0; const y = true;")
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{
		token.VAR, token.NAME, token.NAME, token.EQUAL, token.INTEGER, token.SEMICOLON,
		token.CONST, token.NAME, token.EQUAL, token.TRUE, token.SEMICOLON,
	}, kinds(toks))
}

func TestTokenizeTwoCharSymbolsPreferredOverOneChar(t *testing.T) {
	toks, err := Tokenize("a <= b && c != d")
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{
		token.NAME, token.LESS_EQ, token.NAME, token.LOGICAL_AND,
		token.NAME, token.NOT_EQ, token.NAME,
	}, kinds(toks))
}

func TestTokenizeCharLiteral(t *testing.T) {
	toks, err := Tokenize("'a'")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, token.CHAR, toks[0].Kind)
	assert.Equal(t, "'a'", toks[0].Lexeme)
}

func TestTokenizeCharLiteralNewlineEscape(t *testing.T) {
	toks, err := Tokenize(`'\n'`)
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, token.CHAR, toks[0].Kind)
	assert.Equal(t, `'\n'`, toks[0].Lexeme)
}

func TestTokenizeUnterminatedCharLiteral(t *testing.T) {
	_, err := Tokenize("'a")
	require.Error(t, err)
}

func TestTokenizeLineCommentSkipped(t *testing.T) {
	toks, err := Tokenize("1 // comment\n2\n")
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{token.INTEGER, token.INTEGER}, kinds(toks))
}

func TestTokenizeLineCommentWithoutTrailingNewlineIsSyntaxError(t *testing.T) {
	_, err := Tokenize("1 // comment")
	require.Error(t, err)
}

func TestTokenizeBlockComment(t *testing.T) {
	toks, err := Tokenize("1 /* multi\nline */ 2")
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{token.INTEGER, token.INTEGER}, kinds(toks))
}

func TestTokenizeUnterminatedBlockComment(t *testing.T) {
	_, err := Tokenize("1 /* never closed")
	require.Error(t, err)
}

func TestTokenizeLeadingDotFloat(t *testing.T) {
	toks, err := Tokenize(".5")
	require.NoError(t, err)
	require.Len(t, toks, 1)
	assert.Equal(t, token.FLOAT, toks[0].Kind)
	assert.Equal(t, ".5", toks[0].Lexeme)
}

func TestTokenizeUnexpectedCharacter(t *testing.T) {
	_, err := Tokenize("@")
	require.Error(t, err)
}

func TestTokenizePositionsTrackLinesAndColumns(t *testing.T) {
	toks, err := Tokenize("1\n  2")
	require.NoError(t, err)
	require.Len(t, toks, 2)
	assert.Equal(t, 1, toks[0].Pos.Line)
	assert.Equal(t, 1, toks[0].Pos.Column)
	assert.Equal(t, 2, toks[1].Pos.Line)
	assert.Equal(t, 3, toks[1].Pos.Column)
}

func TestTokenizeFuncDefAndCall(t *testing.T) {
	toks, err := Tokenize("func add(x int, y int) int { return x + y; }")
	require.NoError(t, err)
	assert.Equal(t, []token.Kind{
		token.FUNC, token.NAME, token.OPEN_PARENS, token.NAME, token.NAME, token.COMMA,
		token.NAME, token.NAME, token.CLOSE_PARENS, token.NAME, token.OPEN_CURLY_BRACE,
		token.RETURN, token.NAME, token.ADD, token.NAME, token.SEMICOLON,
		token.CLOSE_CURLY_BRACE,
	}, kinds(toks))
}
