package calc

import (
	"errors"
	"strings"
	"testing"
)

func TestFormatCodeFrame(t *testing.T) {
	frame := formatCodeFrame("BEGIN\n  x := y\nEND.", Position{Line: 2, Column: 8})
	want := "  --> line 2, column 8\n 2 |   x := y\n   |        ^"
	if frame != want {
		t.Fatalf("unexpected frame:\n%q\nwant:\n%q", frame, want)
	}

	if formatCodeFrame("", Position{Line: 1, Column: 1}) != "" {
		t.Fatalf("expected no frame without source")
	}
	if formatCodeFrame("x", Position{Line: 3, Column: 1}) != "" {
		t.Fatalf("expected no frame for a line past the end")
	}
	if got := formatCodeFrame("ab", Position{Line: 1, Column: 9}); !strings.HasSuffix(got, "|   ^") {
		t.Fatalf("expected caret clamped to end of line, got %q", got)
	}
}

func TestUndefinedVariableErrorFrame(t *testing.T) {
	engine := MustNewEngine(Config{})
	_, err := engine.Run("BEGIN\n  x := y\nEND.")
	var undefined *UndefinedVariableError
	if !errors.As(err, &undefined) {
		t.Fatalf("expected UndefinedVariableError, got %v", err)
	}
	if undefined.Pos != (Position{Line: 2, Column: 8}) {
		t.Fatalf("unexpected position %s", undefined.Pos)
	}
	if !strings.Contains(err.Error(), "line 2, column 8") {
		t.Fatalf("expected code frame, got %q", err.Error())
	}
}

func TestExpectedLabel(t *testing.T) {
	cases := []struct {
		kinds []TokenKind
		want  string
	}{
		{[]TokenKind{TokenDot}, "'.'"},
		{[]TokenKind{TokenSemicolon, TokenEnd}, "';' or 'END'"},
		{[]TokenKind{TokenIdent, TokenInteger, TokenEOF}, "identifier, integer or end of input"},
		{factorStart, "expression"},
	}
	for _, tc := range cases {
		if got := expectedLabel(tc.kinds); got != tc.want {
			t.Fatalf("expected %q, got %q", tc.want, got)
		}
	}
}
