package calc

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestEvalArithmetic(t *testing.T) {
	engine := MustNewEngine(Config{})
	cases := map[string]int64{
		"2 + 3 * 4":         14,
		"(2 + 3) * 4":       20,
		"- -5":              5,
		"-5 + 3":            -2,
		"10 - 3 - 2":        5,
		"7 / 2":             3,
		"-7 / 2":            -3,
		"+3":                3,
		"2 * (3 + (4 - 1))": 12,
		" 42 ":              42,
	}
	for source, want := range cases {
		got, err := engine.Eval(source)
		if err != nil {
			t.Fatalf("%q: eval failed: %v", source, err)
		}
		if got != want {
			t.Fatalf("%q: expected %d, got %d", source, want, got)
		}
	}
}

func TestEvalFloorDivision(t *testing.T) {
	engine := MustNewEngine(Config{Division: DivisionFloor})
	cases := map[string]int64{
		"7 / 2":   3,
		"-7 / 2":  -4,
		"7 / -2":  -4,
		"-7 / -2": 3,
		"-8 / 2":  -4,
	}
	for source, want := range cases {
		got, err := engine.Eval(source)
		if err != nil {
			t.Fatalf("%q: eval failed: %v", source, err)
		}
		if got != want {
			t.Fatalf("%q: expected %d, got %d", source, want, got)
		}
	}
}

func TestNewEngineRejectsUnknownDivisionMode(t *testing.T) {
	if _, err := NewEngine(Config{Division: "round"}); err == nil {
		t.Fatalf("expected unknown division mode error")
	}
	engine, err := NewEngine(Config{})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	cfg := engine.Config()
	if cfg.Division != DivisionTruncate || cfg.MaxDepth != defaultMaxDepth || cfg.Logger == nil {
		t.Fatalf("defaults not applied: %#v", cfg)
	}
}

func TestRunAssignments(t *testing.T) {
	engine := MustNewEngine(Config{})
	env, err := engine.Run("BEGIN x := 2; y := (x + 2) * 3 END.")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	got := env.Snapshot()
	if len(got) != 2 || got["x"] != 2 || got["y"] != 12 {
		t.Fatalf("unexpected environment: %v", got)
	}
}

func TestRunNestedBlocksAndReassignment(t *testing.T) {
	engine := MustNewEngine(Config{})
	env, err := engine.Run(`BEGIN
  BEGIN
    number := 2;
    a := number;
    b := 10 * a + 10 * number / 4;
    c := a - - b
  END;
  x := 11;
  x := x + 1;
END.`)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	want := map[string]int64{"number": 2, "a": 2, "b": 25, "c": 27, "x": 12}
	got := env.Snapshot()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for name, val := range want {
		if got[name] != val {
			t.Fatalf("%s: expected %d, got %d", name, val, got[name])
		}
	}
	if names := env.Names(); strings.Join(names, ",") != "a,b,c,number,x" {
		t.Fatalf("unexpected sorted names: %v", names)
	}
}

func TestRunUndefinedVariableKeepsEarlierBindings(t *testing.T) {
	engine := MustNewEngine(Config{})
	env, err := engine.Run("BEGIN a := 1; y := x + 1; z := 3 END.")

	var undefined *UndefinedVariableError
	if !errors.As(err, &undefined) {
		t.Fatalf("expected UndefinedVariableError, got %v", err)
	}
	if undefined.Name != "x" {
		t.Fatalf("expected variable x, got %s", undefined.Name)
	}
	if env == nil {
		t.Fatalf("expected partial environment")
	}
	if v, ok := env.Get("a"); !ok || v != 1 {
		t.Fatalf("expected a=1 to survive, got %d (%v)", v, ok)
	}
	if _, ok := env.Get("y"); ok {
		t.Fatalf("y must not be bound")
	}
	if _, ok := env.Get("z"); ok {
		t.Fatalf("z must not be bound after the failure")
	}
	if !strings.Contains(err.Error(), "undefined variable x") {
		t.Fatalf("unexpected message: %v", err)
	}
}

func TestRunParseErrorReturnsNoEnvironment(t *testing.T) {
	engine := MustNewEngine(Config{})
	env, err := engine.Run("BEGIN x := 2 + END.")
	if env != nil {
		t.Fatalf("expected nil environment on parse failure")
	}
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestArithmeticErrors(t *testing.T) {
	engine := MustNewEngine(Config{})
	cases := []struct {
		source string
		want   error
	}{
		{"1 / 0", ErrDivisionByZero},
		{"5 / (3 - 3)", ErrDivisionByZero},
		{"9223372036854775807 + 1", ErrIntegerOverflow},
		{"-9223372036854775807 - 2", ErrIntegerOverflow},
		{"4611686018427387904 * 2", ErrIntegerOverflow},
		{"(-9223372036854775807 - 1) / -1", ErrIntegerOverflow},
		{"-(-9223372036854775807 - 1)", ErrIntegerOverflow},
	}
	for _, tc := range cases {
		_, err := engine.Eval(tc.source)
		var arithErr *ArithmeticError
		if !errors.As(err, &arithErr) {
			t.Fatalf("%q: expected ArithmeticError, got %v", tc.source, err)
		}
		if !errors.Is(err, tc.want) {
			t.Fatalf("%q: expected %v, got %v", tc.source, tc.want, err)
		}
	}
}

func TestArithmeticBoundariesWithoutOverflow(t *testing.T) {
	engine := MustNewEngine(Config{})
	cases := map[string]int64{
		"-9223372036854775807 - 1":       -9223372036854775808,
		"9223372036854775807 - 0":        9223372036854775807,
		"4611686018427387903 * 2":        9223372036854775806,
		"-4611686018427387904 * 2":       -9223372036854775808,
		"(-9223372036854775807 - 1) / 1": -9223372036854775808,
		"0 * (-9223372036854775807 - 1)": 0,
	}
	for source, want := range cases {
		got, err := engine.Eval(source)
		if err != nil {
			t.Fatalf("%q: eval failed: %v", source, err)
		}
		if got != want {
			t.Fatalf("%q: expected %d, got %d", source, want, got)
		}
	}
}

func TestRunDivisionByZeroReportsPosition(t *testing.T) {
	engine := MustNewEngine(Config{})
	env, err := engine.Run("BEGIN\n  a := 4;\n  b := a / (a - 4)\nEND.")
	var arithErr *ArithmeticError
	if !errors.As(err, &arithErr) {
		t.Fatalf("expected ArithmeticError, got %v", err)
	}
	if arithErr.Op != TokenSlash || arithErr.Pos != (Position{Line: 3, Column: 10}) {
		t.Fatalf("unexpected error detail: %#v", arithErr)
	}
	if !strings.Contains(err.Error(), " 3 |   b := a / (a - 4)") {
		t.Fatalf("expected code frame, got %q", err.Error())
	}
	if v, _ := env.Get("a"); v != 4 {
		t.Fatalf("expected a=4 to survive, got %d", v)
	}
}

func TestExecDetectsMode(t *testing.T) {
	engine := MustNewEngine(Config{})

	result, err := engine.Exec("6 * 7")
	if err != nil {
		t.Fatalf("exec expression: %v", err)
	}
	if result.Mode != ModeExpression || result.Value != 42 || result.Env != nil {
		t.Fatalf("unexpected expression result: %#v", result)
	}

	result, err = engine.Exec("  BEGIN answer := 6 * 7 END.")
	if err != nil {
		t.Fatalf("exec program: %v", err)
	}
	if result.Mode != ModeProgram {
		t.Fatalf("expected program mode, got %s", result.Mode)
	}
	if v, ok := result.Env.Get("answer"); !ok || v != 42 {
		t.Fatalf("expected answer=42, got %d (%v)", v, ok)
	}

	if DetectMode("$") != ModeExpression {
		t.Fatalf("lex errors should fall back to expression mode")
	}
}

func TestEvalRejectsVariablesWithoutEnvironment(t *testing.T) {
	engine := MustNewEngine(Config{})
	_, err := engine.Eval("x + 1")
	var undefined *UndefinedVariableError
	if !errors.As(err, &undefined) || undefined.Name != "x" {
		t.Fatalf("expected undefined x, got %v", err)
	}
}

func TestEngineLogsRuns(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	engine := MustNewEngine(Config{Logger: logger})

	if _, err := engine.Run("BEGIN x := 1 END."); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"run_id=", "mode=program", "statements=1", "bindings=1", "evaluation finished"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in log output, got %q", want, out)
		}
	}
}
