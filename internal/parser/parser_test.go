package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/povilasb/wabbit-go/internal/ast"
)

func TestParseEmptyProgram(t *testing.T) {
	block, err := Parse("")
	require.NoError(t, err)
	assert.Empty(t, block.Statements)
}

func TestParsePrintArithmetic(t *testing.T) {
	block, err := Parse("print 2 + 3 * 4;")
	require.NoError(t, err)
	require.Len(t, block.Statements, 1)

	print, ok := block.Statements[0].(*ast.PrintStatement)
	require.True(t, ok)

	bin, ok := print.Expr.(*ast.BinOp)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Op)

	right, ok := bin.Right.(*ast.BinOp)
	require.True(t, ok)
	assert.Equal(t, "*", right.Op)
}

func TestParseUnaryMinusBindsTighterThanMulDiv(t *testing.T) {
	block, err := Parse("print -4 * 2;")
	require.NoError(t, err)
	print := block.Statements[0].(*ast.PrintStatement)
	bin := print.Expr.(*ast.BinOp)
	assert.Equal(t, "*", bin.Op)
	_, ok := bin.Left.(*ast.UnaryOp)
	assert.True(t, ok)
}

func TestParseVarDeclWithTypeAndValue(t *testing.T) {
	block, err := Parse("var x int = 5;")
	require.NoError(t, err)
	decl := block.Statements[0].(*ast.VarDecl)
	assert.Equal(t, "x", decl.Name)
	assert.Equal(t, ast.TypeInt, decl.Type)
	require.NotNil(t, decl.Value)
}

func TestParseVarDeclTypeOnly(t *testing.T) {
	block, err := Parse("var x int;")
	require.NoError(t, err)
	decl := block.Statements[0].(*ast.VarDecl)
	assert.Equal(t, ast.TypeInt, decl.Type)
	assert.Nil(t, decl.Value)
}

func TestParseVarDeclMissingTypeAndValueIsSyntaxError(t *testing.T) {
	_, err := Parse("var x;")
	require.Error(t, err)
}

func TestParseConstDecl(t *testing.T) {
	block, err := Parse("const pi = 3.14;")
	require.NoError(t, err)
	decl := block.Statements[0].(*ast.ConstDecl)
	assert.Equal(t, "pi", decl.Name)
	require.NotNil(t, decl.Value)
}

func TestParseIfElse(t *testing.T) {
	block, err := Parse("if x < 10 { print 1; } else { print 2; }")
	require.NoError(t, err)
	node := block.Statements[0].(*ast.IfElse)
	require.NotNil(t, node.Body)
	require.NotNil(t, node.Else)
	assert.Len(t, node.Body.Statements, 1)
	assert.Len(t, node.Else.Statements, 1)
}

func TestParseIfWithoutElse(t *testing.T) {
	block, err := Parse("if x { print 1; }")
	require.NoError(t, err)
	node := block.Statements[0].(*ast.IfElse)
	assert.Nil(t, node.Else)
}

func TestParseWhileWithBreakContinue(t *testing.T) {
	block, err := Parse("while true { break; continue; }")
	require.NoError(t, err)
	node := block.Statements[0].(*ast.While)
	require.Len(t, node.Body.Statements, 2)
	_, isBreak := node.Body.Statements[0].(*ast.Break)
	_, isContinue := node.Body.Statements[1].(*ast.Continue)
	assert.True(t, isBreak)
	assert.True(t, isContinue)
}

func TestParseSimpleAssignment(t *testing.T) {
	block, err := Parse("x = 5;")
	require.NoError(t, err)
	stmt := block.Statements[0].(*ast.ExprAsStatement)
	assign := stmt.Expr.(*ast.Assignment)
	assert.Equal(t, "x", assign.Target.Text)
}

// The grammar's assignment production only allows one "=" level (RHS is
// or_expr, not assignment), so chained assignment is a syntax error.
func TestParseChainedAssignmentIsSyntaxError(t *testing.T) {
	_, err := Parse("x = y = 5;")
	require.Error(t, err)
}

func TestParseFuncDefAndCall(t *testing.T) {
	block, err := Parse("func add(x int, y int) int { return x + y; }\nprint add(1, 2);")
	require.NoError(t, err)
	require.Len(t, block.Statements, 2)

	def := block.Statements[0].(*ast.FuncDef)
	assert.Equal(t, "add", def.Name)
	require.Len(t, def.Args, 2)
	assert.Equal(t, ast.TypeInt, def.ReturnType)

	print := block.Statements[1].(*ast.PrintStatement)
	call := print.Expr.(*ast.FuncCall)
	assert.Equal(t, "add", call.Name.Text)
	assert.Len(t, call.Args, 2)
}

// NAME not followed by "(" parses as a bare name; only NAME "(" starts a
// call. The parser looks two tokens ahead to tell these apart.
func TestParseNameNotFollowedByParenIsBareName(t *testing.T) {
	block, err := Parse("print x;")
	require.NoError(t, err)
	print := block.Statements[0].(*ast.PrintStatement)
	_, ok := print.Expr.(*ast.Name)
	assert.True(t, ok)
}

func TestParseCharLiteral(t *testing.T) {
	block, err := Parse("print 'a';")
	require.NoError(t, err)
	print := block.Statements[0].(*ast.PrintStatement)
	char := print.Expr.(*ast.Character)
	assert.Equal(t, 'a', char.Value)
}

func TestParseUnexpectedTokenIsSyntaxError(t *testing.T) {
	_, err := Parse("print ;")
	require.Error(t, err)
}

func TestParseUnterminatedBlockIsSyntaxError(t *testing.T) {
	_, err := Parse("while true { print 1;")
	require.Error(t, err)
}

func TestParseComparisonAndLogicalPrecedence(t *testing.T) {
	block, err := Parse("print a < b && c > d;")
	require.NoError(t, err)
	print := block.Statements[0].(*ast.PrintStatement)
	top := print.Expr.(*ast.LogicalOp)
	assert.Equal(t, "&&", top.Op)
	left := top.Left.(*ast.LogicalOp)
	assert.Equal(t, "<", left.Op)
	right := top.Right.(*ast.LogicalOp)
	assert.Equal(t, ">", right.Op)
}
