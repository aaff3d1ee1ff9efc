package main

import (
	"testing"

	"github.com/mgomes/pascalcalc/calc"
)

func TestSessionEvaluate(t *testing.T) {
	s := newSession(calc.MustNewEngine(calc.Config{}))

	tests := []struct {
		input  string
		output string
		isErr  bool
	}{
		{input: "-(3 + 4) * 2", output: "-14"},
		{input: "BEGIN END.", output: "no variables assigned"},
		{input: "BEGIN b := 2; a := b + 1 END.", output: "a = 3, b = 2"},
		{input: "x", output: "undefined variable x", isErr: true},
	}
	for _, tt := range tests {
		output, isErr := s.evaluate(tt.input)
		if isErr != tt.isErr {
			t.Fatalf("%q: isErr = %v (%s)", tt.input, isErr, output)
		}
		if !tt.isErr && output != tt.output {
			t.Fatalf("%q: got %q, want %q", tt.input, output, tt.output)
		}
	}
}

func TestSessionKeepsBindingsOfFailedProgram(t *testing.T) {
	s := newSession(calc.MustNewEngine(calc.Config{}))
	if _, isErr := s.evaluate("BEGIN a := 1; b := c END."); !isErr {
		t.Fatalf("expected undefined variable error")
	}
	if names := s.names(); len(names) != 1 || names[0] != "a" {
		t.Fatalf("expected a to be kept, got %v", names)
	}

	// an expression leaves the last program's bindings alone
	s.evaluate("1 + 1")
	if len(s.names()) != 1 {
		t.Fatalf("expression replaced bindings: %v", s.names())
	}
}

func TestIsIncomplete(t *testing.T) {
	engine := calc.MustNewEngine(calc.Config{})
	tests := map[string]bool{
		"BEGIN":             true,
		"BEGIN x := 1;":     true,
		"BEGIN x := 1 END":  true,
		"BEGIN x := END":    false,
		"BEGIN x := 1 END.": false,
		"BEGIN END. 1":      false,
		"1 +":               false,
		"BEGIN BEGIN END":   true,
	}
	for src, want := range tests {
		if got := isIncomplete(engine, src); got != want {
			t.Fatalf("isIncomplete(%q) = %v, want %v", src, got, want)
		}
	}
}
