package calc

import (
	"errors"
	"testing"
)

func TestEvaluateHandBuiltTree(t *testing.T) {
	env := NewEnv()
	tree := &Compound{Statements: []Node{
		&Assignment{Target: &Variable{Name: "a"}, Value: &IntegerLiteral{Value: 6}},
		&NoOp{},
		&Assignment{
			Target: &Variable{Name: "b"},
			Value: &BinaryExpr{
				Operator: TokenStar,
				Left:     &Variable{Name: "a"},
				Right:    &UnaryExpr{Operator: TokenMinus, Operand: &IntegerLiteral{Value: 7}},
			},
		},
	}}

	val, err := Evaluate(tree, env)
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if !val.IsUnit() {
		t.Fatalf("statements should produce unit, got %v", val)
	}
	if b, ok := env.Get("b"); !ok || b != -42 {
		t.Fatalf("expected b=-42, got %d (%v)", b, ok)
	}
}

func TestEvaluateExpressionValue(t *testing.T) {
	node, err := ParseExpression("(1 + 2) * 3")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	val, err := Evaluate(node, nil)
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if val.Kind() != KindInt || val.Int() != 9 {
		t.Fatalf("expected 9, got %v", val)
	}
}

func TestEvaluateReadsEnvironment(t *testing.T) {
	env := NewEnv()
	env.Set("x", 40)
	val, err := Evaluate(&BinaryExpr{Operator: TokenPlus, Left: &Variable{Name: "x"}, Right: &IntegerLiteral{Value: 2}}, env)
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if val.Int() != 42 {
		t.Fatalf("expected 42, got %v", val)
	}
}

func TestEvaluateAssignmentOverwrites(t *testing.T) {
	env := NewEnv()
	env.Set("x", 1)
	if _, err := Evaluate(&Assignment{Target: &Variable{Name: "x"}, Value: &IntegerLiteral{Value: 9}}, env); err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if x, _ := env.Get("x"); x != 9 {
		t.Fatalf("expected x=9, got %d", x)
	}
	if env.Len() != 1 {
		t.Fatalf("expected one binding, got %d", env.Len())
	}
}

func TestEvaluateRejectsMalformedTrees(t *testing.T) {
	cases := []Node{
		nil,
		&BinaryExpr{Operator: TokenDot, Left: &IntegerLiteral{Value: 1}, Right: &IntegerLiteral{Value: 2}},
		&UnaryExpr{Operator: TokenStar, Operand: &IntegerLiteral{Value: 1}},
		&BinaryExpr{Operator: TokenPlus, Left: &NoOp{}, Right: &IntegerLiteral{Value: 2}},
	}
	for _, node := range cases {
		if _, err := Evaluate(node, NewEnv()); err == nil {
			t.Fatalf("expected error for %s", FormatNode(node))
		}
	}
}

func TestEvaluateLeftOperandFirst(t *testing.T) {
	node := &BinaryExpr{
		Operator: TokenPlus,
		Left:     &Variable{Name: "left"},
		Right:    &Variable{Name: "right"},
	}
	_, err := Evaluate(node, NewEnv())
	var undefined *UndefinedVariableError
	if !errors.As(err, &undefined) || undefined.Name != "left" {
		t.Fatalf("expected the left operand to fail first, got %v", err)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	env := NewEnv()
	env.Set("x", 1)
	snap := env.Snapshot()
	snap["x"] = 2
	if x, _ := env.Get("x"); x != 1 {
		t.Fatalf("snapshot mutation leaked into env")
	}
}

func TestValueString(t *testing.T) {
	if got := NewInt(-3).String(); got != "-3" {
		t.Fatalf("unexpected int string %q", got)
	}
	if got := Unit().String(); got != "()" {
		t.Fatalf("unexpected unit string %q", got)
	}
	if KindInt.String() != "int" || KindUnit.String() != "unit" {
		t.Fatalf("unexpected kind names")
	}
}
