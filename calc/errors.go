package calc

import (
	"fmt"
	"strings"
)

// LexError reports a character the scanner cannot turn into a token.
type LexError struct {
	Pos    Position
	Char   rune
	Msg    string
	source string
}

func (e *LexError) Error() string {
	return withCodeFrame(fmt.Sprintf("lex error at %s: %s", e.Pos, e.Msg), e.source, e.Pos)
}

// ParseError reports a token the grammar does not accept at its position.
// Msg overrides the expected/actual description when set.
type ParseError struct {
	Pos      Position
	Expected []TokenKind
	Actual   Token
	Msg      string
	source   string
}

func (e *ParseError) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = fmt.Sprintf("expected %s, got %s", expectedLabel(e.Expected), tokenLabel(e.Actual.Kind))
	}
	return withCodeFrame(fmt.Sprintf("parse error at %s: %s", e.Pos, msg), e.source, e.Pos)
}

// UndefinedVariableError reports a read of a name with no prior assignment.
type UndefinedVariableError struct {
	Name   string
	Pos    Position
	source string
}

func (e *UndefinedVariableError) Error() string {
	return withCodeFrame(fmt.Sprintf("undefined variable %s", e.Name), e.source, e.Pos)
}

// ArithmeticError reports division by zero or integer overflow. Err is
// ErrDivisionByZero or ErrIntegerOverflow.
type ArithmeticError struct {
	Op     TokenKind
	Pos    Position
	Err    error
	source string
}

func (e *ArithmeticError) Error() string {
	return withCodeFrame(fmt.Sprintf("arithmetic error at %s: %s", e.Pos, e.Err), e.source, e.Pos)
}

func (e *ArithmeticError) Unwrap() error {
	return e.Err
}

func expectedLabel(kinds []TokenKind) string {
	if sameKinds(kinds, factorStart) {
		return "expression"
	}
	labels := make([]string, len(kinds))
	for i, kind := range kinds {
		labels[i] = tokenLabel(kind)
	}
	switch len(labels) {
	case 0:
		return "nothing"
	case 1:
		return labels[0]
	default:
		return strings.Join(labels[:len(labels)-1], ", ") + " or " + labels[len(labels)-1]
	}
}

func sameKinds(a, b []TokenKind) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func tokenLabel(kind TokenKind) string {
	switch kind {
	case TokenEOF:
		return "end of input"
	case TokenIdent:
		return "identifier"
	case TokenInteger:
		return "integer"
	case TokenBegin:
		return "'BEGIN'"
	case TokenEnd:
		return "'END'"
	case TokenAssign:
		return "':='"
	case TokenPlus:
		return "'+'"
	case TokenMinus:
		return "'-'"
	case TokenStar:
		return "'*'"
	case TokenSlash:
		return "'/'"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenDot:
		return "'.'"
	case TokenSemicolon:
		return "';'"
	default:
		return fmt.Sprintf("%q", strings.ToLower(string(kind)))
	}
}
