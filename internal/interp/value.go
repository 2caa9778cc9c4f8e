package interp

import (
	"fmt"

	"github.com/povilasb/wabbit-go/internal/ast"
	"github.com/povilasb/wabbit-go/internal/errors"
	"github.com/povilasb/wabbit-go/internal/token"
)

// ValueKind tags the runtime representation of a Value, mirroring Wabbit's
// four primitive types.
type ValueKind int

const (
	KindInt ValueKind = iota
	KindFloat
	KindBool
	KindChar
)

func (k ValueKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindChar:
		return "char"
	default:
		return "unknown"
	}
}

// Value is a tagged union over Wabbit's runtime values. Exactly one of the
// fields matching Kind is meaningful.
type Value struct {
	Kind  ValueKind
	Int   int64
	Float float64
	Bool  bool
	Char  rune
}

func IntValue(v int64) Value     { return Value{Kind: KindInt, Int: v} }
func FloatValue(v float64) Value { return Value{Kind: KindFloat, Float: v} }
func BoolValue(v bool) Value     { return Value{Kind: KindBool, Bool: v} }
func CharValue(v rune) Value     { return Value{Kind: KindChar, Char: v} }

// ZeroValue returns the default-initialized value for a declared type, used
// by VarDecl when no initializer is given.
func ZeroValue(typ ast.Type) Value {
	switch typ {
	case ast.TypeInt:
		return IntValue(0)
	case ast.TypeFloat:
		return FloatValue(0)
	case ast.TypeBool:
		return BoolValue(false)
	case ast.TypeChar:
		return CharValue(0)
	default:
		errors.Assert(false, "zero value requested for unknown type %q", typ)
		return Value{}
	}
}

func (v Value) Type() ast.Type {
	switch v.Kind {
	case KindInt:
		return ast.TypeInt
	case KindFloat:
		return ast.TypeFloat
	case KindBool:
		return ast.TypeBool
	case KindChar:
		return ast.TypeChar
	default:
		errors.Assert(false, "Type() called on value with unknown kind %v", v.Kind)
		return ""
	}
}

func (v Value) String() string {
	switch v.Kind {
	case KindInt:
		return fmt.Sprintf("%d", v.Int)
	case KindFloat:
		return fmt.Sprintf("%g", v.Float)
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindChar:
		return string(v.Char)
	default:
		return "<?>"
	}
}

func sameType(pos token.Position, a, b Value, op string) error {
	if a.Kind != b.Kind {
		return errors.New(errors.TypeError, pos,
			"unsupported operand types for %s: %s and %s", op, a.Kind, b.Kind)
	}
	return nil
}

// Add implements +. Defined for int and float only.
func Add(pos token.Position, a, b Value) (Value, error) {
	if err := sameType(pos, a, b, "+"); err != nil {
		return Value{}, err
	}
	switch a.Kind {
	case KindInt:
		return IntValue(a.Int + b.Int), nil
	case KindFloat:
		return FloatValue(a.Float + b.Float), nil
	default:
		return Value{}, errors.New(errors.TypeError, pos, "unsupported operand type for +: %s", a.Kind)
	}
}

func Sub(pos token.Position, a, b Value) (Value, error) {
	if err := sameType(pos, a, b, "-"); err != nil {
		return Value{}, err
	}
	switch a.Kind {
	case KindInt:
		return IntValue(a.Int - b.Int), nil
	case KindFloat:
		return FloatValue(a.Float - b.Float), nil
	default:
		return Value{}, errors.New(errors.TypeError, pos, "unsupported operand type for -: %s", a.Kind)
	}
}

func Mul(pos token.Position, a, b Value) (Value, error) {
	if err := sameType(pos, a, b, "*"); err != nil {
		return Value{}, err
	}
	switch a.Kind {
	case KindInt:
		return IntValue(a.Int * b.Int), nil
	case KindFloat:
		return FloatValue(a.Float * b.Float), nil
	default:
		return Value{}, errors.New(errors.TypeError, pos, "unsupported operand type for *: %s", a.Kind)
	}
}

func Div(pos token.Position, a, b Value) (Value, error) {
	if err := sameType(pos, a, b, "/"); err != nil {
		return Value{}, err
	}
	switch a.Kind {
	case KindInt:
		if b.Int == 0 {
			return Value{}, errors.New(errors.RuntimeError, pos, "integer division by zero")
		}
		return IntValue(a.Int / b.Int), nil
	case KindFloat:
		return FloatValue(a.Float / b.Float), nil
	default:
		return Value{}, errors.New(errors.TypeError, pos, "unsupported operand type for /: %s", a.Kind)
	}
}

func UnaryMinus(pos token.Position, a Value) (Value, error) {
	switch a.Kind {
	case KindInt:
		return IntValue(-a.Int), nil
	case KindFloat:
		return FloatValue(-a.Float), nil
	default:
		return Value{}, errors.New(errors.TypeError, pos, "unsupported operand type for unary -: %s", a.Kind)
	}
}

func UnaryPlus(pos token.Position, a Value) (Value, error) {
	switch a.Kind {
	case KindInt, KindFloat:
		return a, nil
	default:
		return Value{}, errors.New(errors.TypeError, pos, "unsupported operand type for unary +: %s", a.Kind)
	}
}

func LogicalNot(pos token.Position, a Value) (Value, error) {
	if a.Kind != KindBool {
		return Value{}, errors.New(errors.TypeError, pos, "unsupported operand type for !: %s", a.Kind)
	}
	return BoolValue(!a.Bool), nil
}

// Compare implements <, <=, >, >=, ==, != over matching operand types.
func Compare(pos token.Position, op string, a, b Value) (Value, error) {
	if err := sameType(pos, a, b, op); err != nil {
		return Value{}, err
	}

	switch a.Kind {
	case KindInt:
		return BoolValue(compareOrdered(op, float64(a.Int), float64(b.Int))), nil
	case KindFloat:
		return BoolValue(compareOrdered(op, a.Float, b.Float)), nil
	case KindChar:
		return BoolValue(compareOrdered(op, float64(a.Char), float64(b.Char))), nil
	case KindBool:
		switch op {
		case "==":
			return BoolValue(a.Bool == b.Bool), nil
		case "!=":
			return BoolValue(a.Bool != b.Bool), nil
		default:
			return Value{}, errors.New(errors.TypeError, pos, "unsupported operand type for %s: %s", op, a.Kind)
		}
	default:
		return Value{}, errors.New(errors.TypeError, pos, "unsupported operand type for %s: %s", op, a.Kind)
	}
}

func compareOrdered(op string, a, b float64) bool {
	switch op {
	case "<":
		return a < b
	case "<=":
		return a <= b
	case ">":
		return a > b
	case ">=":
		return a >= b
	case "==":
		return a == b
	case "!=":
		return a != b
	default:
		errors.Assert(false, "compareOrdered: unknown operator %q", op)
		return false
	}
}

// LogicalAnd and LogicalOr require bool operands on both sides; Wabbit has
// no short-circuit requirement (see design notes), so both sides are always
// evaluated by the caller before these are invoked.
func LogicalAnd(pos token.Position, a, b Value) (Value, error) {
	if a.Kind != KindBool || b.Kind != KindBool {
		return Value{}, errors.New(errors.TypeError, pos, "unsupported operand types for &&: %s and %s", a.Kind, b.Kind)
	}
	return BoolValue(a.Bool && b.Bool), nil
}

func LogicalOr(pos token.Position, a, b Value) (Value, error) {
	if a.Kind != KindBool || b.Kind != KindBool {
		return Value{}, errors.New(errors.TypeError, pos, "unsupported operand types for ||: %s and %s", a.Kind, b.Kind)
	}
	return BoolValue(a.Bool || b.Bool), nil
}
