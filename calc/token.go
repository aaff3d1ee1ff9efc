package calc

import "fmt"

// TokenKind identifies the lexical category of a token.
type TokenKind string

const (
	TokenInteger   TokenKind = "INTEGER"
	TokenPlus      TokenKind = "PLUS"
	TokenMinus     TokenKind = "MINUS"
	TokenStar      TokenKind = "STAR"
	TokenSlash     TokenKind = "SLASH"
	TokenLParen    TokenKind = "LPAREN"
	TokenRParen    TokenKind = "RPAREN"
	TokenBegin     TokenKind = "BEGIN"
	TokenEnd       TokenKind = "END"
	TokenIdent     TokenKind = "IDENT"
	TokenAssign    TokenKind = "ASSIGN"
	TokenDot       TokenKind = "DOT"
	TokenSemicolon TokenKind = "SEMI"
	TokenEOF       TokenKind = "EOF"
)

// Token captures lexical information for the parser.
type Token struct {
	Kind    TokenKind
	Literal string
	Value   int64
	Pos     Position
}

func (t Token) String() string {
	switch t.Kind {
	case TokenInteger:
		return fmt.Sprintf("Token(%s, %d)", t.Kind, t.Value)
	case TokenEOF:
		return fmt.Sprintf("Token(%s)", t.Kind)
	default:
		return fmt.Sprintf("Token(%s, %s)", t.Kind, t.Literal)
	}
}

// Position identifies a line and rune column in the source text.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

var reservedWords = map[string]TokenKind{
	"BEGIN": TokenBegin,
	"END":   TokenEnd,
}

func lookupIdent(ident string) TokenKind {
	if kind, ok := reservedWords[ident]; ok {
		return kind
	}
	return TokenIdent
}
