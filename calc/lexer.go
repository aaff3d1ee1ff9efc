package calc

import (
	"fmt"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Scanner turns source text into tokens on demand. Once the input is
// exhausted it keeps returning an EOF token.
type Scanner struct {
	input string

	offset int
	width  int

	line   int
	column int

	ch  rune
	eof bool

	err error
}

func NewScanner(input string) *Scanner {
	s := &Scanner{input: input, line: 1}
	s.readRune()
	return s
}

func (s *Scanner) readRune() {
	if s.ch == '\n' {
		s.line++
		s.column = 0
	}
	s.column++

	if s.offset >= len(s.input) {
		s.width = 0
		s.ch = 0
		s.eof = true
		return
	}

	r, w := utf8.DecodeRuneInString(s.input[s.offset:])
	s.width = w
	s.offset += w
	s.ch = r
}

func (s *Scanner) peekRune() rune {
	if s.offset >= len(s.input) {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s.input[s.offset:])
	return r
}

func (s *Scanner) currentOffset() int {
	return s.offset - s.width
}

func (s *Scanner) position() Position {
	return Position{Line: s.line, Column: s.column}
}

// NextToken returns the next token of the input. A lexical error stops the
// scanner; every later call returns the same error.
func (s *Scanner) NextToken() (Token, error) {
	if s.err != nil {
		return Token{}, s.err
	}

	s.skipWhitespace()
	pos := s.position()

	if s.eof {
		return Token{Kind: TokenEOF, Pos: pos}, nil
	}

	switch s.ch {
	case '+':
		return s.single(TokenPlus, pos), nil
	case '-':
		return s.single(TokenMinus, pos), nil
	case '*':
		return s.single(TokenStar, pos), nil
	case '/':
		return s.single(TokenSlash, pos), nil
	case '(':
		return s.single(TokenLParen, pos), nil
	case ')':
		return s.single(TokenRParen, pos), nil
	case '.':
		return s.single(TokenDot, pos), nil
	case ';':
		return s.single(TokenSemicolon, pos), nil
	case ':':
		if s.peekRune() == '=' {
			s.readRune()
			s.readRune()
			return Token{Kind: TokenAssign, Literal: ":=", Pos: pos}, nil
		}
		return Token{}, s.fail(pos, ':', "expected '=' after ':'")
	}

	switch {
	case isDigit(s.ch):
		return s.readInteger(pos)
	case unicode.IsLetter(s.ch):
		literal := s.readIdentifier()
		return Token{Kind: lookupIdent(literal), Literal: literal, Pos: pos}, nil
	default:
		return Token{}, s.fail(pos, s.ch, fmt.Sprintf("unexpected character %q", s.ch))
	}
}

func (s *Scanner) single(kind TokenKind, pos Position) Token {
	tok := Token{Kind: kind, Literal: string(s.ch), Pos: pos}
	s.readRune()
	return tok
}

func (s *Scanner) fail(pos Position, ch rune, msg string) error {
	s.err = &LexError{Pos: pos, Char: ch, Msg: msg, source: s.input}
	return s.err
}

func (s *Scanner) skipWhitespace() {
	for !s.eof && unicode.IsSpace(s.ch) {
		s.readRune()
	}
}

func (s *Scanner) readIdentifier() string {
	start := s.currentOffset()
	for !s.eof && (unicode.IsLetter(s.ch) || unicode.IsDigit(s.ch)) {
		s.readRune()
	}
	return s.input[start:s.currentOffset()]
}

func (s *Scanner) readInteger(pos Position) (Token, error) {
	start := s.currentOffset()
	for !s.eof && isDigit(s.ch) {
		s.readRune()
	}
	literal := s.input[start:s.currentOffset()]

	value, err := strconv.ParseInt(literal, 10, 64)
	if err != nil {
		return Token{}, s.fail(pos, rune(literal[0]), fmt.Sprintf("integer literal %s out of range", literal))
	}
	return Token{Kind: TokenInteger, Literal: literal, Value: value, Pos: pos}, nil
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

// Tokenize scans the whole input, including the trailing EOF token.
func Tokenize(input string) ([]Token, error) {
	s := NewScanner(input)
	var tokens []Token
	for {
		tok, err := s.NextToken()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == TokenEOF {
			return tokens, nil
		}
	}
}
