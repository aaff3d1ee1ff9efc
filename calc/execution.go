package calc

import (
	"errors"
	"fmt"
)

// Execution evaluates one tree against one environment. It is
// single-threaded and lives for a single run.
type Execution struct {
	env      *Env
	source   string
	division DivisionMode
}

// Evaluate walks node in post-order against env using truncating division.
// Statements yield Unit; expressions yield an integer. Bindings made before
// an error stay in env.
func Evaluate(node Node, env *Env) (Value, error) {
	if env == nil {
		env = NewEnv()
	}
	exec := &Execution{env: env, division: DivisionTruncate}
	return exec.eval(node)
}

func (exec *Execution) eval(node Node) (Value, error) {
	switch n := node.(type) {
	case *Program:
		return exec.evalCompound(n.Block)
	case *Compound:
		return exec.evalCompound(n)
	case *NoOp:
		return Unit(), nil
	case *Assignment:
		return exec.evalAssignment(n)
	case *IntegerLiteral:
		return NewInt(n.Value), nil
	case *Variable:
		return exec.evalVariable(n)
	case *UnaryExpr:
		return exec.evalUnaryExpr(n)
	case *BinaryExpr:
		return exec.evalBinaryExpr(n)
	case nil:
		return Unit(), errors.New("cannot evaluate nil node")
	default:
		return Unit(), fmt.Errorf("unsupported node %T", node)
	}
}

func (exec *Execution) evalCompound(c *Compound) (Value, error) {
	for _, stmt := range c.Statements {
		if _, err := exec.eval(stmt); err != nil {
			return Unit(), err
		}
	}
	return Unit(), nil
}

func (exec *Execution) evalAssignment(a *Assignment) (Value, error) {
	val, err := exec.evalExpression(a.Value)
	if err != nil {
		return Unit(), err
	}
	exec.env.Set(a.Target.Name, val)
	return Unit(), nil
}

func (exec *Execution) evalVariable(v *Variable) (Value, error) {
	val, ok := exec.env.Get(v.Name)
	if !ok {
		return Unit(), &UndefinedVariableError{Name: v.Name, Pos: v.Pos(), source: exec.source}
	}
	return NewInt(val), nil
}

func (exec *Execution) arithmeticError(op TokenKind, pos Position, err error) error {
	return &ArithmeticError{Op: op, Pos: pos, Err: err, source: exec.source}
}

func (exec *Execution) errorAt(pos Position, format string, args ...any) error {
	return errors.New(withCodeFrame(fmt.Sprintf("runtime error at %s: %s", pos, fmt.Sprintf(format, args...)), exec.source, pos))
}
