// Package interp is a tree-walking evaluator for Wabbit programs.
package interp

import (
	"fmt"
	"io"

	"github.com/povilasb/wabbit-go/internal/ast"
	"github.com/povilasb/wabbit-go/internal/errors"
)

// Interpreter walks an AST, mutating the current Environment frame and writing
// PrintStatement output to Out.
type Interpreter struct {
	Out io.Writer
}

func New(out io.Writer) *Interpreter {
	return &Interpreter{Out: out}
}

// Run executes program's top-level statements in a fresh global scope.
func (it *Interpreter) Run(program *ast.Block) error {
	env := NewEnvironment()
	flow, err := it.execBlock(program, env)
	if err != nil {
		return err
	}
	if flow.IsReturn() {
		return errors.New(errors.RuntimeError, program.Pos(), "return used outside of a function")
	}
	if flow.IsBreak() || flow.IsContinue() {
		return errors.New(errors.RuntimeError, program.Pos(), "%s used outside of a loop", flow.Kind())
	}
	return nil
}

func (it *Interpreter) execBlock(b *ast.Block, env *Environment) (ControlFlow, error) {
	for _, stmt := range b.Statements {
		flow, err := it.execStatement(stmt, env)
		if err != nil {
			return none, err
		}
		if flow.IsActive() {
			return flow, nil
		}
	}
	return none, nil
}

func (it *Interpreter) execStatement(stmt ast.Statement, env *Environment) (ControlFlow, error) {
	switch s := stmt.(type) {
	case *ast.PrintStatement:
		v, err := it.eval(s.Expr, env)
		if err != nil {
			return none, err
		}
		fmt.Fprint(it.Out, v.String())
		return none, nil

	case *ast.VarDecl:
		if env.HasLocal(s.Name) {
			return none, errors.New(errors.RuntimeError, s.Position, "name %q is already declared", s.Name)
		}
		var v Value
		if s.Value != nil {
			val, err := it.eval(s.Value, env)
			if err != nil {
				return none, err
			}
			if s.Type != "" && val.Type() != s.Type {
				return none, errors.New(errors.TypeError, s.Position,
					"cannot assign %s value to variable %q of type %s", val.Type(), s.Name, s.Type)
			}
			v = val
		} else {
			v = ZeroValue(s.Type)
		}
		env.DefineVar(s.Name, v)
		return none, nil

	case *ast.ConstDecl:
		if env.HasLocal(s.Name) {
			return none, errors.New(errors.RuntimeError, s.Position, "name %q is already declared", s.Name)
		}
		val, err := it.eval(s.Value, env)
		if err != nil {
			return none, err
		}
		if s.Type != "" && val.Type() != s.Type {
			return none, errors.New(errors.TypeError, s.Position,
				"cannot assign %s value to constant %q of type %s", val.Type(), s.Name, s.Type)
		}
		env.DefineConst(s.Name, val)
		return none, nil

	case *ast.ExprAsStatement:
		_, err := it.eval(s.Expr, env)
		return none, err

	case *ast.IfElse:
		test, err := it.eval(s.Test, env)
		if err != nil {
			return none, err
		}
		if test.Kind != KindBool {
			return none, errors.New(errors.TypeError, s.Position, "if condition must be bool, got %s", test.Kind)
		}
		if test.Bool {
			return it.execBlock(s.Body, env)
		}
		if s.Else != nil {
			return it.execBlock(s.Else, env)
		}
		return none, nil

	case *ast.While:
		for {
			test, err := it.eval(s.Test, env)
			if err != nil {
				return none, err
			}
			if test.Kind != KindBool {
				return none, errors.New(errors.TypeError, s.Position, "while condition must be bool, got %s", test.Kind)
			}
			if !test.Bool {
				return none, nil
			}
			flow, err := it.execBlock(s.Body, env)
			if err != nil {
				return none, err
			}
			switch flow.Kind() {
			case FlowBreak:
				return none, nil
			case FlowContinue:
				continue
			case FlowReturn:
				return flow, nil
			}
		}

	case *ast.Break:
		return breakFlow(), nil

	case *ast.Continue:
		return continueFlow(), nil

	case *ast.Return:
		if s.Value == nil {
			return returnFlow(Value{}, false), nil
		}
		v, err := it.eval(s.Value, env)
		if err != nil {
			return none, err
		}
		return returnFlow(v, true), nil

	case *ast.FuncDef:
		env.DefineFunc(s)
		return none, nil

	default:
		errors.Assert(false, "interp: unhandled statement type %T", stmt)
		return none, nil
	}
}

func (it *Interpreter) eval(expr ast.Expression, env *Environment) (Value, error) {
	switch e := expr.(type) {
	case *ast.Integer:
		return parseInt(e)
	case *ast.Float:
		return parseFloat(e)
	case *ast.Boolean:
		return BoolValue(e.Value), nil
	case *ast.Character:
		return CharValue(e.Value), nil

	case *ast.Name:
		v, ok := env.Get(e.Text)
		if !ok {
			return Value{}, errors.New(errors.RuntimeError, e.Position, "name %q is not defined", e.Text)
		}
		return v, nil

	case *ast.ParenExpr:
		return it.eval(e.Inner, env)

	case *ast.UnaryOp:
		v, err := it.eval(e.Operand, env)
		if err != nil {
			return Value{}, err
		}
		switch e.Op {
		case "-":
			return UnaryMinus(e.Position, v)
		case "+":
			return UnaryPlus(e.Position, v)
		case "!":
			return LogicalNot(e.Position, v)
		default:
			errors.Assert(false, "interp: unhandled unary operator %q", e.Op)
			return Value{}, nil
		}

	case *ast.BinOp:
		left, err := it.eval(e.Left, env)
		if err != nil {
			return Value{}, err
		}
		right, err := it.eval(e.Right, env)
		if err != nil {
			return Value{}, err
		}
		switch e.Op {
		case "+":
			return Add(e.Position, left, right)
		case "-":
			return Sub(e.Position, left, right)
		case "*":
			return Mul(e.Position, left, right)
		case "/":
			return Div(e.Position, left, right)
		default:
			errors.Assert(false, "interp: unhandled binary operator %q", e.Op)
			return Value{}, nil
		}

	case *ast.LogicalOp:
		left, err := it.eval(e.Left, env)
		if err != nil {
			return Value{}, err
		}
		right, err := it.eval(e.Right, env)
		if err != nil {
			return Value{}, err
		}
		switch e.Op {
		case "&&":
			return LogicalAnd(e.Position, left, right)
		case "||":
			return LogicalOr(e.Position, left, right)
		case "<", "<=", ">", ">=", "==", "!=":
			return Compare(e.Position, e.Op, left, right)
		default:
			errors.Assert(false, "interp: unhandled logical operator %q", e.Op)
			return Value{}, nil
		}

	case *ast.Assignment:
		v, err := it.eval(e.Value, env)
		if err != nil {
			return Value{}, err
		}
		if env.IsConst(e.Target.Text) {
			return Value{}, errors.New(errors.RuntimeError, e.Position, "cannot assign to constant %q", e.Target.Text)
		}
		if !env.Assign(e.Target.Text, v) {
			return Value{}, errors.New(errors.RuntimeError, e.Position, "name %q is not defined", e.Target.Text)
		}
		return v, nil

	case *ast.FuncCall:
		return it.callFunc(e, env)

	default:
		errors.Assert(false, "interp: unhandled expression type %T", expr)
		return Value{}, nil
	}
}

func (it *Interpreter) callFunc(call *ast.FuncCall, env *Environment) (Value, error) {
	def, ok := env.LookupFunc(call.Name.Text)
	if !ok {
		return Value{}, errors.New(errors.RuntimeError, call.Position, "function %q is not defined", call.Name.Text)
	}
	if len(call.Args) != len(def.Args) {
		return Value{}, errors.New(errors.RuntimeError, call.Position,
			"function %q expects %d argument(s), got %d", def.Name, len(def.Args), len(call.Args))
	}

	frame := NewCallFrame(env)
	for i, arg := range def.Args {
		v, err := it.eval(call.Args[i], env)
		if err != nil {
			return Value{}, err
		}
		if v.Type() != arg.Type {
			return Value{}, errors.New(errors.TypeError, call.Position,
				"argument %q of %q expects %s, got %s", arg.Name, def.Name, arg.Type, v.Type())
		}
		frame.DefineVar(arg.Name, v)
	}

	flow, err := it.execBlock(def.Body, frame)
	if err != nil {
		return Value{}, err
	}

	if flow.IsReturn() {
		v, has := flow.ReturnValue()
		if !has {
			return Value{}, errors.New(errors.RuntimeError, call.Position,
				"function %q must return a value of type %s", def.Name, def.ReturnType)
		}
		if v.Type() != def.ReturnType {
			return Value{}, errors.New(errors.TypeError, call.Position,
				"function %q declared to return %s but returned %s", def.Name, def.ReturnType, v.Type())
		}
		return v, nil
	}
	if flow.IsBreak() || flow.IsContinue() {
		return Value{}, errors.New(errors.RuntimeError, call.Position, "%s used outside of a loop", flow.Kind())
	}

	return Value{}, errors.New(errors.RuntimeError, call.Position, "function %q did not return a value", def.Name)
}
