// Package printer renders a Wabbit AST back into canonical source text.
package printer

import (
	"fmt"
	"strings"

	"github.com/povilasb/wabbit-go/internal/ast"
	"github.com/povilasb/wabbit-go/internal/errors"
)

const defaultIndentWidth = 4

// Print renders block as a top-level program with the default indent width:
// statements at indent level 0, one per line.
func Print(block *ast.Block) string {
	return PrintIndent(block, defaultIndentWidth)
}

// PrintIndent renders block like Print, but with width spaces per
// indent level instead of the default, per internal/config's IndentWidth.
func PrintIndent(block *ast.Block, width int) string {
	if width <= 0 {
		width = defaultIndentWidth
	}
	p := &printer{indentUnit: strings.Repeat(" ", width)}
	p.block(block, 0)
	return p.sb.String()
}

type printer struct {
	sb         strings.Builder
	indentUnit string
}

func (p *printer) line(level int, text string) {
	p.sb.WriteString(strings.Repeat(p.indentUnit, level))
	p.sb.WriteString(text)
	p.sb.WriteString("\n")
}

func (p *printer) block(b *ast.Block, level int) {
	for _, stmt := range b.Statements {
		p.statement(stmt, level)
	}
}

func (p *printer) statement(stmt ast.Statement, level int) {
	switch s := stmt.(type) {
	case *ast.PrintStatement:
		p.line(level, fmt.Sprintf("print %s;", p.expr(s.Expr)))

	case *ast.VarDecl:
		p.line(level, varLikeText("var", s.Name, s.Type, s.Value, p))

	case *ast.ConstDecl:
		p.line(level, varLikeText("const", s.Name, s.Type, s.Value, p))

	case *ast.ExprAsStatement:
		p.line(level, fmt.Sprintf("%s;", p.expr(s.Expr)))

	case *ast.IfElse:
		p.line(level, fmt.Sprintf("if %s {", p.expr(s.Test)))
		p.block(s.Body, level+1)
		if s.Else != nil {
			p.line(level, "} else {")
			p.block(s.Else, level+1)
		}
		p.line(level, "}")

	case *ast.While:
		p.line(level, fmt.Sprintf("while %s {", p.expr(s.Test)))
		p.block(s.Body, level+1)
		p.line(level, "}")

	case *ast.Break:
		p.line(level, "break;")

	case *ast.Continue:
		p.line(level, "continue;")

	case *ast.Return:
		if s.Value != nil {
			p.line(level, fmt.Sprintf("return %s;", p.expr(s.Value)))
		} else {
			p.line(level, "return;")
		}

	case *ast.FuncDef:
		p.line(level, fmt.Sprintf("func %s(%s) %s {", s.Name, funcArgsText(s.Args), s.ReturnType))
		p.block(s.Body, level+1)
		p.line(level, "}")

	default:
		errors.Assert(false, "printer: unhandled statement type %T", stmt)
	}
}

func varLikeText(keyword, name string, typ ast.Type, value ast.Expression, p *printer) string {
	var sb strings.Builder
	sb.WriteString(keyword)
	sb.WriteString(" ")
	sb.WriteString(name)
	if typ != "" {
		sb.WriteString(" ")
		sb.WriteString(string(typ))
	}
	if value != nil {
		sb.WriteString(" = ")
		sb.WriteString(p.expr(value))
	}
	sb.WriteString(";")
	return sb.String()
}

func funcArgsText(args []*ast.FuncArg) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprintf("%s %s", a.Name, a.Type)
	}
	return strings.Join(parts, ", ")
}

func (p *printer) expr(e ast.Expression) string {
	switch n := e.(type) {
	case *ast.Integer:
		return n.Lexeme
	case *ast.Float:
		return n.Lexeme
	case *ast.Boolean:
		if n.Value {
			return "true"
		}
		return "false"
	case *ast.Character:
		return encodeCharLiteral(n.Value)
	case *ast.Name:
		return n.Text
	case *ast.BinOp:
		return fmt.Sprintf("%s %s %s", p.expr(n.Left), n.Op, p.expr(n.Right))
	case *ast.UnaryOp:
		return fmt.Sprintf("%s%s", n.Op, p.expr(n.Operand))
	case *ast.LogicalOp:
		return fmt.Sprintf("%s %s %s", p.expr(n.Left), n.Op, p.expr(n.Right))
	case *ast.ParenExpr:
		return fmt.Sprintf("(%s)", p.expr(n.Inner))
	case *ast.Assignment:
		return fmt.Sprintf("%s = %s", n.Target.Text, p.expr(n.Value))
	case *ast.FuncCall:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = p.expr(a)
		}
		return fmt.Sprintf("%s(%s)", n.Name.Text, strings.Join(args, ", "))
	default:
		errors.Assert(false, "printer: unhandled expression type %T", e)
		return ""
	}
}

func encodeCharLiteral(r rune) string {
	if r == '\n' {
		return `'\n'`
	}
	return fmt.Sprintf("'%c'", r)
}
