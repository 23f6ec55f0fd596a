package lang

import (
	"fmt"
	"io"
	"os"

	"github.com/kjhallgren/lumen/parser"
)

// RuntimeError is a semantic failure raised during evaluation, carrying the
// token whose line should be reported. Raising one unwinds all the way back
// to the top of Interpret; side effects already committed remain.
type RuntimeError struct {
	Token   parser.Token
	Message string
}

func (e *RuntimeError) Error() string {
	return e.Message
}

func newRuntimeError(tok parser.Token, format string, args ...interface{}) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

// Interpreter walks a statement sequence over a chain of lexical
// environments, printing to Stdout and abandoning the rest of the input on
// the first RuntimeError.
type Interpreter struct {
	Stdout  io.Writer
	Globals *Env
	env     *Env
}

// NewInterpreter constructs an interpreter whose current environment is a
// fresh global frame.
func NewInterpreter() *Interpreter {
	globals := NewEnv(nil)
	return &Interpreter{
		Stdout:  os.Stdout,
		Globals: globals,
		env:     globals,
	}
}

// Interpret executes each statement in order. It returns the first
// RuntimeError raised, if any; statements already executed keep their side
// effects.
func (in *Interpreter) Interpret(statements []parser.Stmt) error {
	for _, stmt := range statements {
		if err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) execute(stmt parser.Stmt) error {
	switch s := stmt.(type) {
	case *parser.ExpressionStmt:
		_, err := in.eval(s.Expr)
		return err
	case *parser.PrintStmt:
		val, err := in.eval(s.Expr)
		if err != nil {
			return err
		}
		fmt.Fprintln(in.Stdout, val.String())
		return nil
	case *parser.VarStmt:
		val := Nil
		if s.Initializer != nil {
			v, err := in.eval(s.Initializer)
			if err != nil {
				return err
			}
			val = v
		}
		in.env.Define(s.Name.Lexeme, val)
		return nil
	case *parser.BlockStmt:
		return in.executeBlock(s.Stmts, NewEnv(in.env))
	case *parser.IfStmt:
		cond, err := in.eval(s.Condition)
		if err != nil {
			return err
		}
		if cond.Truthy() {
			return in.execute(s.Then)
		}
		if s.Else != nil {
			return in.execute(s.Else)
		}
		return nil
	case *parser.WhileStmt:
		for {
			cond, err := in.eval(s.Condition)
			if err != nil {
				return err
			}
			if !cond.Truthy() {
				return nil
			}
			if err := in.execute(s.Body); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("unknown statement type %T", stmt)
	}
}

// executeBlock saves the current environment, runs statements inside the
// supplied one, and restores the saved environment on every exit path,
// including an error unwind.
func (in *Interpreter) executeBlock(statements []parser.Stmt, env *Env) error {
	previous := in.env
	in.env = env
	defer func() { in.env = previous }()

	for _, stmt := range statements {
		if err := in.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (in *Interpreter) eval(expr parser.Expr) (Value, error) {
	switch e := expr.(type) {
	case *parser.LiteralExpr:
		return literalValue(e.Value), nil
	case *parser.GroupingExpr:
		return in.eval(e.Expr)
	case *parser.VariableExpr:
		val, err := in.env.Get(e.Name.Lexeme)
		if err != nil {
			return Value{}, newRuntimeError(e.Name, "%s", err.Error())
		}
		return val, nil
	case *parser.AssignExpr:
		val, err := in.eval(e.Value)
		if err != nil {
			return Value{}, err
		}
		if err := in.env.Assign(e.Name.Lexeme, val); err != nil {
			return Value{}, newRuntimeError(e.Name, "%s", err.Error())
		}
		return val, nil
	case *parser.UnaryExpr:
		return in.evalUnary(e)
	case *parser.BinaryExpr:
		return in.evalBinary(e)
	case *parser.LogicalExpr:
		return in.evalLogical(e)
	default:
		return Value{}, fmt.Errorf("unknown expression type %T", expr)
	}
}

func literalValue(v interface{}) Value {
	switch val := v.(type) {
	case nil:
		return Nil
	case bool:
		return BoolValue(val)
	case float64:
		return NumberValue(val)
	case string:
		return TextValue(val)
	default:
		return Nil
	}
}

func (in *Interpreter) evalUnary(e *parser.UnaryExpr) (Value, error) {
	right, err := in.eval(e.Right)
	if err != nil {
		return Value{}, err
	}
	switch e.Operator.Type {
	case parser.TokenMinus:
		if right.Type != TypeNumber {
			return Value{}, newRuntimeError(e.Operator, "Operand must be a number.")
		}
		return NumberValue(-right.Number()), nil
	case parser.TokenBang:
		return BoolValue(!right.Truthy()), nil
	default:
		return Value{}, newRuntimeError(e.Operator, "Unknown unary operator.")
	}
}

func (in *Interpreter) evalBinary(e *parser.BinaryExpr) (Value, error) {
	left, err := in.eval(e.Left)
	if err != nil {
		return Value{}, err
	}
	right, err := in.eval(e.Right)
	if err != nil {
		return Value{}, err
	}

	switch e.Operator.Type {
	case parser.TokenMinus:
		if left.Type != TypeNumber || right.Type != TypeNumber {
			return Value{}, newRuntimeError(e.Operator, "Operands must be numbers.")
		}
		return NumberValue(left.Number() - right.Number()), nil
	case parser.TokenStar:
		if left.Type != TypeNumber || right.Type != TypeNumber {
			return Value{}, newRuntimeError(e.Operator, "Operands must be numbers.")
		}
		return NumberValue(left.Number() * right.Number()), nil
	case parser.TokenSlash:
		if left.Type != TypeNumber || right.Type != TypeNumber {
			return Value{}, newRuntimeError(e.Operator, "Operands must be numbers.")
		}
		return NumberValue(left.Number() / right.Number()), nil
	case parser.TokenPlus:
		if left.Type == TypeNumber && right.Type == TypeNumber {
			return NumberValue(left.Number() + right.Number()), nil
		}
		if left.Type == TypeText && right.Type == TypeText {
			return TextValue(left.Text() + right.Text()), nil
		}
		return Value{}, newRuntimeError(e.Operator, "Operands must be two numbers or two strings.")
	case parser.TokenGreater:
		if left.Type != TypeNumber || right.Type != TypeNumber {
			return Value{}, newRuntimeError(e.Operator, "Operands must be numbers.")
		}
		return BoolValue(left.Number() > right.Number()), nil
	case parser.TokenGreaterEqual:
		if left.Type != TypeNumber || right.Type != TypeNumber {
			return Value{}, newRuntimeError(e.Operator, "Operands must be numbers.")
		}
		return BoolValue(left.Number() >= right.Number()), nil
	case parser.TokenLess:
		if left.Type != TypeNumber || right.Type != TypeNumber {
			return Value{}, newRuntimeError(e.Operator, "Operands must be numbers.")
		}
		return BoolValue(left.Number() < right.Number()), nil
	case parser.TokenLessEqual:
		if left.Type != TypeNumber || right.Type != TypeNumber {
			return Value{}, newRuntimeError(e.Operator, "Operands must be numbers.")
		}
		return BoolValue(left.Number() <= right.Number()), nil
	case parser.TokenEqualEqual:
		return BoolValue(left.Equal(right)), nil
	case parser.TokenBangEqual:
		return BoolValue(!left.Equal(right)), nil
	default:
		return Value{}, newRuntimeError(e.Operator, "Unknown binary operator.")
	}
}

// evalLogical implements and/or short-circuiting: it returns the operand
// value itself (not a coerced boolean) and skips evaluating the right-hand
// side whenever the left already determines the result.
func (in *Interpreter) evalLogical(e *parser.LogicalExpr) (Value, error) {
	left, err := in.eval(e.Left)
	if err != nil {
		return Value{}, err
	}
	switch e.Operator.Type {
	case parser.TokenOr:
		if left.Truthy() {
			return left, nil
		}
	case parser.TokenAnd:
		if !left.Truthy() {
			return left, nil
		}
	default:
		return Value{}, newRuntimeError(e.Operator, "Unknown logical operator.")
	}
	return in.eval(e.Right)
}
