// Package parser builds a Wabbit AST from a token stream using recursive
// descent with precedence climbing for expressions.
package parser

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/povilasb/wabbit-go/internal/ast"
	"github.com/povilasb/wabbit-go/internal/errors"
	"github.com/povilasb/wabbit-go/internal/lexer"
	"github.com/povilasb/wabbit-go/internal/token"
)

// typeNames lists the primitive type keywords a NAME token may spell in a
// type position, used both for parsing and for "did you mean" suggestions.
var typeNames = []string{"int", "float", "bool", "char"}

// Parser consumes a fixed token slice and produces a *ast.Block program.
type Parser struct {
	tokens []token.Token
	pos    int
}

// Parse tokenizes and parses source, returning the program as a *ast.Block
// of top-level statements.
func Parse(source string) (*ast.Block, error) {
	toks, err := lexer.Tokenize(source)
	if err != nil {
		return nil, err
	}
	return NewParser(toks).ParseProgram()
}

// NewParser builds a Parser over an already-scanned token slice.
func NewParser(tokens []token.Token) *Parser {
	return &Parser{tokens: tokens}
}

func (p *Parser) ParseProgram() (*ast.Block, error) {
	var pos token.Position
	if len(p.tokens) > 0 {
		pos = p.tokens[0].Pos
	}
	block := &ast.Block{Position: pos}

	for !p.atEnd() {
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}
	return block, nil
}

// --- token stream helpers ---

func (p *Parser) atEnd() bool {
	return p.pos >= len(p.tokens)
}

func (p *Parser) peek() token.Token {
	if p.atEnd() {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[p.pos]
}

func (p *Parser) peekAt(offset int) token.Token {
	idx := p.pos + offset
	if idx >= len(p.tokens) {
		return token.Token{Kind: token.EOF}
	}
	return p.tokens[idx]
}

func (p *Parser) check(kind token.Kind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) advance() token.Token {
	t := p.peek()
	if !p.atEnd() {
		p.pos++
	}
	return t
}

// expect consumes the next token if it matches kind, otherwise fails with a
// SyntaxError naming what was expected, with a fuzzy "did you mean" hint
// when the mismatch looks like a typo of a type name.
func (p *Parser) expect(kind token.Kind) (token.Token, error) {
	t := p.peek()
	if t.Kind != kind {
		return token.Token{}, p.syntaxErrorf(t, "expected %s but got %s %q", kind, t.Kind, t.Lexeme)
	}
	return p.advance(), nil
}

func (p *Parser) syntaxErrorf(t token.Token, format string, args ...any) error {
	err := errors.New(errors.SyntaxError, t.Pos, format, args...)
	if hint := p.suggestTypo(t.Lexeme); hint != "" {
		err.Message += hint
	}
	return err
}

// suggestTypo fuzzy-matches an unexpected token's lexeme against known type
// keywords, returning a ", did you mean <type>?" suffix (type name unquoted)
// when a close match exists.
func (p *Parser) suggestTypo(lexeme string) string {
	if lexeme == "" {
		return ""
	}
	matches := fuzzy.RankFindNormalizedFold(lexeme, typeNames)
	if len(matches) == 0 {
		return ""
	}
	best := matches[0]
	for _, m := range matches {
		if m.Distance < best.Distance {
			best = m
		}
	}
	if best.Distance > 2 {
		return ""
	}
	return ", did you mean " + strings.Trim(best.Target, "\"") + "?"
}

func (p *Parser) parseType() (ast.Type, error) {
	t := p.peek()
	if t.Kind != token.NAME {
		return "", p.syntaxErrorf(t, "expected a type but got %s %q", t.Kind, t.Lexeme)
	}
	switch t.Lexeme {
	case "int", "float", "bool", "char":
		p.advance()
		return ast.Type(t.Lexeme), nil
	default:
		return "", p.syntaxErrorf(t, "unknown type %q", t.Lexeme)
	}
}

// --- statements ---

func (p *Parser) parseStatement() (ast.Statement, error) {
	switch p.peek().Kind {
	case token.PRINT:
		return p.parsePrintStatement()
	case token.VAR:
		return p.parseVarDecl()
	case token.CONST:
		return p.parseConstDecl()
	case token.IF:
		return p.parseIfElse()
	case token.WHILE:
		return p.parseWhile()
	case token.BREAK:
		return p.parseBreak()
	case token.CONTINUE:
		return p.parseContinue()
	case token.RETURN:
		return p.parseReturn()
	case token.FUNC:
		return p.parseFuncDef()
	default:
		return p.parseExprStatement()
	}
}

func (p *Parser) parsePrintStatement() (ast.Statement, error) {
	start := p.advance() // print
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.PrintStatement{Expr: expr, Position: start.Pos}, nil
}

func (p *Parser) parseVarDecl() (*ast.VarDecl, error) {
	start := p.advance() // var
	name, err := p.expect(token.NAME)
	if err != nil {
		return nil, err
	}

	decl := &ast.VarDecl{Name: name.Lexeme, Position: start.Pos}

	if p.check(token.NAME) {
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		decl.Type = typ
	}

	if p.check(token.EQUAL) {
		p.advance()
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		decl.Value = value
	}

	if decl.Type == "" && decl.Value == nil {
		return nil, p.syntaxErrorf(p.peek(), "variable %q needs a type or an initial value", decl.Name)
	}

	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseConstDecl() (*ast.ConstDecl, error) {
	start := p.advance() // const
	name, err := p.expect(token.NAME)
	if err != nil {
		return nil, err
	}

	decl := &ast.ConstDecl{Name: name.Lexeme, Position: start.Pos}

	if p.check(token.NAME) {
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		decl.Type = typ
	}

	if _, err := p.expect(token.EQUAL); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	decl.Value = value

	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return decl, nil
}

func (p *Parser) parseIfElse() (*ast.IfElse, error) {
	start := p.advance() // if
	test, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	node := &ast.IfElse{Test: test, Body: body, Position: start.Pos}
	if p.check(token.ELSE) {
		p.advance()
		elseBody, err := p.parseBlock()
		if err != nil {
			return nil, err
		}
		node.Else = elseBody
	}
	return node, nil
}

func (p *Parser) parseWhile() (*ast.While, error) {
	start := p.advance() // while
	test, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}
	return &ast.While{Test: test, Body: body, Position: start.Pos}, nil
}

func (p *Parser) parseBreak() (*ast.Break, error) {
	start := p.advance()
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.Break{Position: start.Pos}, nil
}

func (p *Parser) parseContinue() (*ast.Continue, error) {
	start := p.advance()
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.Continue{Position: start.Pos}, nil
}

func (p *Parser) parseReturn() (*ast.Return, error) {
	start := p.advance() // return
	node := &ast.Return{Position: start.Pos}
	if !p.check(token.SEMICOLON) {
		value, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		node.Value = value
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return node, nil
}

func (p *Parser) parseFuncDef() (*ast.FuncDef, error) {
	start := p.advance() // func
	name, err := p.expect(token.NAME)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.OPEN_PARENS); err != nil {
		return nil, err
	}

	var args []*ast.FuncArg
	for !p.check(token.CLOSE_PARENS) {
		if len(args) > 0 {
			if _, err := p.expect(token.COMMA); err != nil {
				return nil, err
			}
		}
		argName, err := p.expect(token.NAME)
		if err != nil {
			return nil, err
		}
		argType, err := p.parseType()
		if err != nil {
			return nil, err
		}
		args = append(args, &ast.FuncArg{Name: argName.Lexeme, Type: argType, Position: argName.Pos})
	}
	if _, err := p.expect(token.CLOSE_PARENS); err != nil {
		return nil, err
	}

	retType, err := p.parseType()
	if err != nil {
		return nil, err
	}

	body, err := p.parseBlock()
	if err != nil {
		return nil, err
	}

	return &ast.FuncDef{
		Name:       name.Lexeme,
		Args:       args,
		ReturnType: retType,
		Body:       body,
		Position:   start.Pos,
	}, nil
}

func (p *Parser) parseExprStatement() (ast.Statement, error) {
	start := p.peek()
	expr, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(token.SEMICOLON); err != nil {
		return nil, err
	}
	return &ast.ExprAsStatement{Expr: expr, Position: start.Pos}, nil
}

func (p *Parser) parseBlock() (*ast.Block, error) {
	open, err := p.expect(token.OPEN_CURLY_BRACE)
	if err != nil {
		return nil, err
	}
	block := &ast.Block{Position: open.Pos}
	for !p.check(token.CLOSE_CURLY_BRACE) {
		if p.atEnd() {
			return nil, p.syntaxErrorf(p.peek(), "unterminated block, expected }")
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		block.Statements = append(block.Statements, stmt)
	}
	p.advance() // }
	return block, nil
}

// --- expressions (precedence climbing) ---
//
// assignment > or_expr > and_expr > comparison > addsub > muldiv > unary > factor

func (p *Parser) parseExpr() (ast.Expression, error) {
	return p.parseAssignment()
}

// parseAssignment implements "or_expr ('=' or_expr)?" — exactly one
// optional assignment level, not a chainable one (the grammar's RHS is
// or_expr, not assignment, so "x = y = 5" is a syntax error: the parser
// consumes "x = y", then finds a dangling "=" where ";" was expected).
func (p *Parser) parseAssignment() (ast.Expression, error) {
	if p.check(token.NAME) && p.peekAt(1).Kind == token.EQUAL {
		nameTok := p.advance()
		p.advance() // =
		value, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		return &ast.Assignment{
			Target:   &ast.Name{Text: nameTok.Lexeme, Position: nameTok.Pos},
			Value:    value,
			Position: nameTok.Pos,
		}, nil
	}
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.Expression, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.check(token.LOGICAL_OR) {
		opTok := p.advance()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = &ast.LogicalOp{Op: "||", Left: left, Right: right, Position: opTok.Pos}
	}
	return left, nil
}

func (p *Parser) parseAnd() (ast.Expression, error) {
	left, err := p.parseComparison()
	if err != nil {
		return nil, err
	}
	for p.check(token.LOGICAL_AND) {
		opTok := p.advance()
		right, err := p.parseComparison()
		if err != nil {
			return nil, err
		}
		left = &ast.LogicalOp{Op: "&&", Left: left, Right: right, Position: opTok.Pos}
	}
	return left, nil
}

var comparisonOps = map[token.Kind]string{
	token.LESS:      "<",
	token.MORE:      ">",
	token.LESS_EQ:   "<=",
	token.MORE_EQ:   ">=",
	token.DOUBLE_EQ: "==",
	token.NOT_EQ:    "!=",
}

func (p *Parser) parseComparison() (ast.Expression, error) {
	left, err := p.parseAddSub()
	if err != nil {
		return nil, err
	}
	for {
		op, ok := comparisonOps[p.peek().Kind]
		if !ok {
			return left, nil
		}
		opTok := p.advance()
		right, err := p.parseAddSub()
		if err != nil {
			return nil, err
		}
		left = &ast.LogicalOp{Op: op, Left: left, Right: right, Position: opTok.Pos}
	}
}

func (p *Parser) parseAddSub() (ast.Expression, error) {
	left, err := p.parseMulDiv()
	if err != nil {
		return nil, err
	}
	for p.check(token.ADD) || p.check(token.SUB) {
		opTok := p.advance()
		right, err := p.parseMulDiv()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Op: opSymbol(opTok.Kind), Left: left, Right: right, Position: opTok.Pos}
	}
	return left, nil
}

func (p *Parser) parseMulDiv() (ast.Expression, error) {
	left, err := p.parseUnary()
	if err != nil {
		return nil, err
	}
	for p.check(token.MULTIPLY) || p.check(token.DIVIDE) {
		opTok := p.advance()
		right, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOp{Op: opSymbol(opTok.Kind), Left: left, Right: right, Position: opTok.Pos}
	}
	return left, nil
}

func (p *Parser) parseUnary() (ast.Expression, error) {
	switch p.peek().Kind {
	case token.SUB, token.ADD, token.LOGICAL_NOT:
		opTok := p.advance()
		operand, err := p.parseUnary()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOp{Op: opSymbol(opTok.Kind), Operand: operand, Position: opTok.Pos}, nil
	default:
		return p.parseFactor()
	}
}

func (p *Parser) parseFactor() (ast.Expression, error) {
	t := p.peek()
	switch t.Kind {
	case token.INTEGER:
		p.advance()
		return &ast.Integer{Lexeme: t.Lexeme, Position: t.Pos}, nil
	case token.FLOAT:
		p.advance()
		return &ast.Float{Lexeme: t.Lexeme, Position: t.Pos}, nil
	case token.TRUE:
		p.advance()
		return &ast.Boolean{Value: true, Position: t.Pos}, nil
	case token.FALSE:
		p.advance()
		return &ast.Boolean{Value: false, Position: t.Pos}, nil
	case token.CHAR:
		p.advance()
		return &ast.Character{Value: decodeCharLexeme(t.Lexeme), Position: t.Pos}, nil
	case token.OPEN_PARENS:
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(token.CLOSE_PARENS); err != nil {
			return nil, err
		}
		return &ast.ParenExpr{Inner: inner, Position: t.Pos}, nil
	case token.NAME:
		// 2-token lookahead: NAME "(" is a call, otherwise a bare name.
		if p.peekAt(1).Kind == token.OPEN_PARENS {
			return p.parseFuncCall()
		}
		p.advance()
		return &ast.Name{Text: t.Lexeme, Position: t.Pos}, nil
	default:
		return nil, p.syntaxErrorf(t, "expected an expression but got %s %q", t.Kind, t.Lexeme)
	}
}

func (p *Parser) parseFuncCall() (*ast.FuncCall, error) {
	nameTok := p.advance()
	p.advance() // (

	call := &ast.FuncCall{
		Name:     &ast.Name{Text: nameTok.Lexeme, Position: nameTok.Pos},
		Position: nameTok.Pos,
	}

	for !p.check(token.CLOSE_PARENS) {
		if len(call.Args) > 0 {
			if _, err := p.expect(token.COMMA); err != nil {
				return nil, err
			}
		}
		arg, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		call.Args = append(call.Args, arg)
	}
	if _, err := p.expect(token.CLOSE_PARENS); err != nil {
		return nil, err
	}
	return call, nil
}

func opSymbol(k token.Kind) string {
	switch k {
	case token.ADD:
		return "+"
	case token.SUB:
		return "-"
	case token.MULTIPLY:
		return "*"
	case token.DIVIDE:
		return "/"
	case token.LOGICAL_NOT:
		return "!"
	default:
		return k.String()
	}
}

// decodeCharLexeme converts a raw char lexeme like "'a'" or `'\n'` into its
// rune value.
func decodeCharLexeme(lexeme string) rune {
	body := lexeme[1 : len(lexeme)-1]
	if body == `\n` {
		return '\n'
	}
	r := []rune(body)
	if len(r) == 0 {
		return 0
	}
	return r[0]
}
