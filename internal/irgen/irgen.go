// Package irgen emits textual LLVM IR for a Wabbit program. It builds IR
// directly with strings.Builder rather than binding to a real LLVM library:
// the pack's only LLVM-touching example requires cgo and a system LLVM
// install, which this toolchain does not assume.
package irgen

import (
	"fmt"
	"strings"

	"github.com/povilasb/wabbit-go/internal/ast"
	"github.com/povilasb/wabbit-go/internal/errors"
)

// llvmType maps a Wabbit primitive type to its LLVM IR type name.
func llvmType(t ast.Type) string {
	switch t {
	case ast.TypeInt:
		return "i32"
	case ast.TypeFloat:
		return "double"
	case ast.TypeBool:
		return "i1"
	case ast.TypeChar:
		return "i8"
	default:
		errors.Assert(false, "irgen: unknown type %q", t)
		return ""
	}
}

// loopBlocks tracks the (test, exit) label pair of each enclosing while loop
// so Break/Continue can branch to the right target without the AST carrying
// back-references.
type loopBlocks struct {
	test string
	exit string
}

// Emitter lowers a Wabbit program to one LLVM module's worth of textual IR.
type Emitter struct {
	sb        strings.Builder
	blockNum  int
	loopStack []loopBlocks
	vars      map[string]varSlot
	constants map[string]varSlot
	funcSigs  map[string]*ast.FuncDef
}

type varSlot struct {
	name string // SSA pointer name, e.g. "%x"
	typ  ast.Type
}

// Emit returns the textual LLVM IR for program, or an error if an unbound
// name or type mismatch is found during lowering.
func Emit(program *ast.Block) (string, error) {
	e := &Emitter{
		vars:      make(map[string]varSlot),
		constants: make(map[string]varSlot),
		funcSigs:  make(map[string]*ast.FuncDef),
	}
	return e.emitProgram(program)
}

func (e *Emitter) emitProgram(program *ast.Block) (string, error) {
	e.sb.WriteString(`declare void @__wabbit_print_int(i32)` + "\n")
	e.sb.WriteString(`declare void @__wabbit_print_float(double)` + "\n")
	e.sb.WriteString(`declare void @__wabbit_print_bool(i1)` + "\n")
	e.sb.WriteString(`declare void @__wabbit_print_char(i8)` + "\n\n")

	var funcDefs []*ast.FuncDef
	var topLevel []ast.Statement
	for _, stmt := range program.Statements {
		if fn, ok := stmt.(*ast.FuncDef); ok {
			e.funcSigs[fn.Name] = fn
			funcDefs = append(funcDefs, fn)
			continue
		}
		topLevel = append(topLevel, stmt)
	}

	for _, fn := range funcDefs {
		if err := e.emitFuncDef(fn); err != nil {
			return "", err
		}
	}

	e.sb.WriteString("define i32 @main() {\n")
	e.sb.WriteString("entry:\n")
	for _, stmt := range topLevel {
		if err := e.emitStatement(stmt); err != nil {
			return "", err
		}
	}
	e.sb.WriteString("  ret i32 0\n}\n")

	return e.sb.String(), nil
}

func (e *Emitter) nextBlock(prefix string) string {
	name := fmt.Sprintf("%s%d", prefix, e.blockNum)
	e.blockNum++
	return name
}

func (e *Emitter) emitFuncDef(fn *ast.FuncDef) error {
	params := make([]string, len(fn.Args))
	for i, a := range fn.Args {
		params[i] = fmt.Sprintf("%s %%arg.%s", llvmType(a.Type), a.Name)
	}
	e.sb.WriteString(fmt.Sprintf("define %s @%s(%s) {\n", llvmType(fn.ReturnType), fn.Name, strings.Join(params, ", ")))
	e.sb.WriteString("entry:\n")

	savedVars := e.vars
	savedConstants := e.constants
	e.vars = make(map[string]varSlot)
	e.constants = make(map[string]varSlot)
	for _, a := range fn.Args {
		slot := "%" + a.Name
		e.sb.WriteString(fmt.Sprintf("  %s = alloca %s\n", slot, llvmType(a.Type)))
		e.sb.WriteString(fmt.Sprintf("  store %s %%arg.%s, %s* %s\n", llvmType(a.Type), a.Name, llvmType(a.Type), slot))
		e.vars[a.Name] = varSlot{name: slot, typ: a.Type}
	}

	for _, stmt := range fn.Body.Statements {
		if err := e.emitStatement(stmt); err != nil {
			e.vars = savedVars
			e.constants = savedConstants
			return err
		}
	}

	e.sb.WriteString(fmt.Sprintf("  ret %s %s\n", llvmType(fn.ReturnType), zeroLiteral(fn.ReturnType)))
	e.sb.WriteString("}\n\n")

	e.vars = savedVars
	e.constants = savedConstants
	return nil
}

func zeroLiteral(t ast.Type) string {
	switch t {
	case ast.TypeFloat:
		return "0.0"
	case ast.TypeBool:
		return "0"
	default:
		return "0"
	}
}

func (e *Emitter) emitStatement(stmt ast.Statement) error {
	switch s := stmt.(type) {
	case *ast.PrintStatement:
		return e.emitPrint(s)

	case *ast.VarDecl:
		return e.emitVarDecl(s)

	case *ast.ConstDecl:
		return e.emitConstDecl(s)

	case *ast.ExprAsStatement:
		_, _, err := e.emitExpr(s.Expr)
		return err

	case *ast.IfElse:
		return e.emitIfElse(s)

	case *ast.While:
		return e.emitWhile(s)

	case *ast.Break:
		if len(e.loopStack) == 0 {
			return errors.New(errors.RuntimeError, s.Position, "break used outside of a loop")
		}
		top := e.loopStack[len(e.loopStack)-1]
		e.sb.WriteString(fmt.Sprintf("  br label %%%s\n", top.exit))
		e.startUnreachableBlock()
		return nil

	case *ast.Continue:
		if len(e.loopStack) == 0 {
			return errors.New(errors.RuntimeError, s.Position, "continue used outside of a loop")
		}
		top := e.loopStack[len(e.loopStack)-1]
		e.sb.WriteString(fmt.Sprintf("  br label %%%s\n", top.test))
		e.startUnreachableBlock()
		return nil

	case *ast.Return:
		if s.Value == nil {
			e.sb.WriteString("  ret void\n")
			e.startUnreachableBlock()
			return nil
		}
		val, typ, err := e.emitExpr(s.Value)
		if err != nil {
			return err
		}
		e.sb.WriteString(fmt.Sprintf("  ret %s %s\n", llvmType(typ), val))
		e.startUnreachableBlock()
		return nil

	case *ast.FuncDef:
		// Function bodies are emitted up front by emitProgram; nested
		// definitions are not part of Wabbit's grammar.
		return nil

	default:
		errors.Assert(false, "irgen: unhandled statement type %T", stmt)
		return nil
	}
}

// startUnreachableBlock opens a fresh block after a terminator (br/ret) so
// any following IR remains well-formed, mirroring dead code the AST may
// still contain after break/continue/return.
func (e *Emitter) startUnreachableBlock() {
	label := e.nextBlock("unreachable")
	e.sb.WriteString(label + ":\n")
}

func (e *Emitter) emitPrint(s *ast.PrintStatement) error {
	val, typ, err := e.emitExpr(s.Expr)
	if err != nil {
		return err
	}
	switch typ {
	case ast.TypeInt:
		e.sb.WriteString(fmt.Sprintf("  call void @__wabbit_print_int(i32 %s)\n", val))
	case ast.TypeFloat:
		e.sb.WriteString(fmt.Sprintf("  call void @__wabbit_print_float(double %s)\n", val))
	case ast.TypeBool:
		e.sb.WriteString(fmt.Sprintf("  call void @__wabbit_print_bool(i1 %s)\n", val))
	case ast.TypeChar:
		e.sb.WriteString(fmt.Sprintf("  call void @__wabbit_print_char(i8 %s)\n", val))
	default:
		errors.Assert(false, "irgen: print of unknown type %q", typ)
	}
	return nil
}

func (e *Emitter) emitVarDecl(s *ast.VarDecl) error {
	typ := s.Type
	var initVal string
	if s.Value != nil {
		val, valType, err := e.emitExpr(s.Value)
		if err != nil {
			return err
		}
		if typ == "" {
			typ = valType
		}
		initVal = val
	} else {
		initVal = zeroLiteral(typ)
	}

	slot := "%" + s.Name
	e.sb.WriteString(fmt.Sprintf("  %s = alloca %s\n", slot, llvmType(typ)))
	e.sb.WriteString(fmt.Sprintf("  store %s %s, %s* %s\n", llvmType(typ), initVal, llvmType(typ), slot))
	e.vars[s.Name] = varSlot{name: slot, typ: typ}
	return nil
}

// emitConstDecl gives a constant the same alloca/store treatment as a
// variable; the slot is simply never stored to again after this point.
func (e *Emitter) emitConstDecl(s *ast.ConstDecl) error {
	val, typ, err := e.emitExpr(s.Value)
	if err != nil {
		return err
	}
	if s.Type != "" {
		typ = s.Type
	}

	slot := "%" + s.Name
	e.sb.WriteString(fmt.Sprintf("  %s = alloca %s\n", slot, llvmType(typ)))
	e.sb.WriteString(fmt.Sprintf("  store %s %s, %s* %s\n", llvmType(typ), val, llvmType(typ), slot))
	e.constants[s.Name] = varSlot{name: slot, typ: typ}
	return nil
}

func (e *Emitter) emitIfElse(s *ast.IfElse) error {
	test, testType, err := e.emitExpr(s.Test)
	if err != nil {
		return err
	}
	if testType != ast.TypeBool {
		return errors.New(errors.TypeError, s.Position, "if condition must be bool, got %s", testType)
	}

	thenLabel := e.nextBlock("if.then")
	mergeLabel := e.nextBlock("if.merge")
	elseLabel := mergeLabel
	if s.Else != nil {
		elseLabel = e.nextBlock("if.else")
	}

	e.sb.WriteString(fmt.Sprintf("  br i1 %s, label %%%s, label %%%s\n", test, thenLabel, elseLabel))

	e.sb.WriteString(thenLabel + ":\n")
	for _, stmt := range s.Body.Statements {
		if err := e.emitStatement(stmt); err != nil {
			return err
		}
	}
	e.sb.WriteString(fmt.Sprintf("  br label %%%s\n", mergeLabel))

	if s.Else != nil {
		e.sb.WriteString(elseLabel + ":\n")
		for _, stmt := range s.Else.Statements {
			if err := e.emitStatement(stmt); err != nil {
				return err
			}
		}
		e.sb.WriteString(fmt.Sprintf("  br label %%%s\n", mergeLabel))
	}

	e.sb.WriteString(mergeLabel + ":\n")
	return nil
}

func (e *Emitter) emitWhile(s *ast.While) error {
	testLabel := e.nextBlock("while.test")
	bodyLabel := e.nextBlock("while.body")
	exitLabel := e.nextBlock("while.exit")

	e.sb.WriteString(fmt.Sprintf("  br label %%%s\n", testLabel))
	e.sb.WriteString(testLabel + ":\n")

	test, testType, err := e.emitExpr(s.Test)
	if err != nil {
		return err
	}
	if testType != ast.TypeBool {
		return errors.New(errors.TypeError, s.Position, "while condition must be bool, got %s", testType)
	}
	e.sb.WriteString(fmt.Sprintf("  br i1 %s, label %%%s, label %%%s\n", test, bodyLabel, exitLabel))

	e.sb.WriteString(bodyLabel + ":\n")
	e.loopStack = append(e.loopStack, loopBlocks{test: testLabel, exit: exitLabel})
	for _, stmt := range s.Body.Statements {
		if err := e.emitStatement(stmt); err != nil {
			e.loopStack = e.loopStack[:len(e.loopStack)-1]
			return err
		}
	}
	e.loopStack = e.loopStack[:len(e.loopStack)-1]
	e.sb.WriteString(fmt.Sprintf("  br label %%%s\n", testLabel))

	e.sb.WriteString(exitLabel + ":\n")
	return nil
}

// emitExpr lowers expr, returning its SSA value text and resolved type.
func (e *Emitter) emitExpr(expr ast.Expression) (string, ast.Type, error) {
	switch n := expr.(type) {
	case *ast.Integer:
		return n.Lexeme, ast.TypeInt, nil
	case *ast.Float:
		return floatLiteralText(n.Lexeme), ast.TypeFloat, nil
	case *ast.Boolean:
		if n.Value {
			return "1", ast.TypeBool, nil
		}
		return "0", ast.TypeBool, nil
	case *ast.Character:
		return fmt.Sprintf("%d", n.Value), ast.TypeChar, nil

	case *ast.Name:
		slot, ok := e.constants[n.Text]
		if !ok {
			slot, ok = e.vars[n.Text]
		}
		if !ok {
			return "", "", errors.New(errors.RuntimeError, n.Position, "name %q is not defined", n.Text)
		}
		reg := e.nextBlock("%load")
		e.sb.WriteString(fmt.Sprintf("  %s = load %s, %s* %s\n", reg, llvmType(slot.typ), llvmType(slot.typ), slot.name))
		return reg, slot.typ, nil

	case *ast.ParenExpr:
		return e.emitExpr(n.Inner)

	case *ast.UnaryOp:
		return e.emitUnaryOp(n)

	case *ast.BinOp:
		return e.emitBinOp(n)

	case *ast.LogicalOp:
		return e.emitLogicalOp(n)

	case *ast.Assignment:
		val, typ, err := e.emitExpr(n.Value)
		if err != nil {
			return "", "", err
		}
		slot, ok := e.vars[n.Target.Text]
		if !ok {
			return "", "", errors.New(errors.RuntimeError, n.Position, "name %q is not defined", n.Target.Text)
		}
		e.sb.WriteString(fmt.Sprintf("  store %s %s, %s* %s\n", llvmType(typ), val, llvmType(typ), slot.name))
		return val, typ, nil

	case *ast.FuncCall:
		return e.emitFuncCall(n)

	default:
		errors.Assert(false, "irgen: unhandled expression type %T", expr)
		return "", "", nil
	}
}

func floatLiteralText(lexeme string) string {
	if lexeme[0] == '.' {
		return "0" + lexeme
	}
	if lexeme[len(lexeme)-1] == '.' {
		return lexeme + "0"
	}
	if !strings.Contains(lexeme, ".") {
		return lexeme + ".0"
	}
	return lexeme
}

func (e *Emitter) emitUnaryOp(n *ast.UnaryOp) (string, ast.Type, error) {
	val, typ, err := e.emitExpr(n.Operand)
	if err != nil {
		return "", "", err
	}
	switch n.Op {
	case "+":
		return val, typ, nil
	case "-":
		reg := e.nextBlock("%neg")
		switch typ {
		case ast.TypeInt:
			e.sb.WriteString(fmt.Sprintf("  %s = sub i32 0, %s\n", reg, val))
		case ast.TypeFloat:
			e.sb.WriteString(fmt.Sprintf("  %s = fsub double 0.0, %s\n", reg, val))
		default:
			return "", "", errors.New(errors.TypeError, n.Position, "unsupported operand type for unary -: %s", typ)
		}
		return reg, typ, nil
	case "!":
		if typ != ast.TypeBool {
			return "", "", errors.New(errors.TypeError, n.Position, "unsupported operand type for !: %s", typ)
		}
		reg := e.nextBlock("%not")
		e.sb.WriteString(fmt.Sprintf("  %s = xor i1 %s, 1\n", reg, val))
		return reg, ast.TypeBool, nil
	default:
		errors.Assert(false, "irgen: unhandled unary operator %q", n.Op)
		return "", "", nil
	}
}

func (e *Emitter) emitBinOp(n *ast.BinOp) (string, ast.Type, error) {
	left, leftType, err := e.emitExpr(n.Left)
	if err != nil {
		return "", "", err
	}
	right, rightType, err := e.emitExpr(n.Right)
	if err != nil {
		return "", "", err
	}
	if leftType != rightType {
		return "", "", errors.New(errors.TypeError, n.Position, "unsupported operand types for %s: %s and %s", n.Op, leftType, rightType)
	}

	isFloat := leftType == ast.TypeFloat
	var instr string
	switch n.Op {
	case "+":
		instr = pick(isFloat, "fadd double", "add i32")
	case "-":
		instr = pick(isFloat, "fsub double", "sub i32")
	case "*":
		instr = pick(isFloat, "fmul double", "mul i32")
	case "/":
		instr = pick(isFloat, "fdiv double", "sdiv i32")
	default:
		errors.Assert(false, "irgen: unhandled binary operator %q", n.Op)
	}

	reg := e.nextBlock("%t")
	e.sb.WriteString(fmt.Sprintf("  %s = %s %s, %s\n", reg, instr, left, right))
	return reg, leftType, nil
}

var cmpOps = map[string]string{
	"<": "lt", "<=": "le", ">": "gt", ">=": "ge", "==": "eq", "!=": "ne",
}

func (e *Emitter) emitLogicalOp(n *ast.LogicalOp) (string, ast.Type, error) {
	left, leftType, err := e.emitExpr(n.Left)
	if err != nil {
		return "", "", err
	}
	right, rightType, err := e.emitExpr(n.Right)
	if err != nil {
		return "", "", err
	}

	switch n.Op {
	case "&&", "||":
		if leftType != ast.TypeBool || rightType != ast.TypeBool {
			return "", "", errors.New(errors.TypeError, n.Position, "unsupported operand types for %s: %s and %s", n.Op, leftType, rightType)
		}
		instr := pick(n.Op == "&&", "and i1", "or i1")
		reg := e.nextBlock("%t")
		e.sb.WriteString(fmt.Sprintf("  %s = %s %s, %s\n", reg, instr, left, right))
		return reg, ast.TypeBool, nil

	default:
		if leftType != rightType {
			return "", "", errors.New(errors.TypeError, n.Position, "unsupported operand types for %s: %s and %s", n.Op, leftType, rightType)
		}
		cond, ok := cmpOps[n.Op]
		if !ok {
			errors.Assert(false, "irgen: unhandled comparison operator %q", n.Op)
		}
		reg := e.nextBlock("%t")
		if leftType == ast.TypeFloat {
			e.sb.WriteString(fmt.Sprintf("  %s = fcmp o%s double %s, %s\n", reg, cond, left, right))
		} else {
			signedCond := cond
			if cond == "lt" || cond == "le" || cond == "gt" || cond == "ge" {
				signedCond = "s" + cond
			}
			e.sb.WriteString(fmt.Sprintf("  %s = icmp %s %s %s, %s\n", reg, signedCond, llvmType(leftType), left, right))
		}
		return reg, ast.TypeBool, nil
	}
}

func (e *Emitter) emitFuncCall(n *ast.FuncCall) (string, ast.Type, error) {
	def, ok := e.funcSigs[n.Name.Text]
	if !ok {
		return "", "", errors.New(errors.RuntimeError, n.Position, "function %q is not defined", n.Name.Text)
	}
	if len(n.Args) != len(def.Args) {
		return "", "", errors.New(errors.RuntimeError, n.Position,
			"function %q expects %d argument(s), got %d", def.Name, len(def.Args), len(n.Args))
	}

	argVals := make([]string, len(n.Args))
	for i, arg := range n.Args {
		val, typ, err := e.emitExpr(arg)
		if err != nil {
			return "", "", err
		}
		if typ != def.Args[i].Type {
			return "", "", errors.New(errors.TypeError, n.Position,
				"argument %q of %q expects %s, got %s", def.Args[i].Name, def.Name, def.Args[i].Type, typ)
		}
		argVals[i] = fmt.Sprintf("%s %s", llvmType(typ), val)
	}

	reg := e.nextBlock("%call")
	e.sb.WriteString(fmt.Sprintf("  %s = call %s @%s(%s)\n", reg, llvmType(def.ReturnType), def.Name, strings.Join(argVals, ", ")))
	return reg, def.ReturnType, nil
}

func pick(cond bool, a, b string) string {
	if cond {
		return a
	}
	return b
}
