package calc

import "fmt"

type parser struct {
	s      *Scanner
	source string

	cur Token

	depth    int
	maxDepth int
}

func newParser(input string, maxDepth int) (*parser, error) {
	if maxDepth <= 0 {
		maxDepth = defaultMaxDepth
	}
	p := &parser{s: NewScanner(input), source: input, maxDepth: maxDepth}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p, nil
}

// Parse parses a complete program: BEGIN ... END followed by a dot.
func Parse(source string) (*Program, error) {
	p, err := newParser(source, defaultMaxDepth)
	if err != nil {
		return nil, err
	}
	return p.ParseProgram()
}

// ParseExpression parses a lone arithmetic expression.
func ParseExpression(source string) (Node, error) {
	p, err := newParser(source, defaultMaxDepth)
	if err != nil {
		return nil, err
	}
	return p.ParseExpression()
}

func (p *parser) advance() error {
	tok, err := p.s.NextToken()
	if err != nil {
		return err
	}
	p.cur = tok
	return nil
}

// consume checks the look-ahead token against kind and moves past it.
func (p *parser) consume(kind TokenKind) (Token, error) {
	tok := p.cur
	if tok.Kind != kind {
		return tok, p.errorExpected(kind)
	}
	return tok, p.advance()
}

func (p *parser) errorExpected(kinds ...TokenKind) error {
	return &ParseError{Pos: p.cur.Pos, Expected: kinds, Actual: p.cur, source: p.source}
}

func (p *parser) enter() error {
	if p.depth >= p.maxDepth {
		return &ParseError{
			Pos:    p.cur.Pos,
			Actual: p.cur,
			Msg:    fmt.Sprintf("nesting too deep (limit %d)", p.maxDepth),
			source: p.source,
		}
	}
	p.depth++
	return nil
}

func (p *parser) leave() {
	p.depth--
}

func (p *parser) ParseProgram() (*Program, error) {
	pos := p.cur.Pos
	block, err := p.parseCompound()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(TokenDot); err != nil {
		return nil, err
	}
	if p.cur.Kind != TokenEOF {
		return nil, p.errorExpected(TokenEOF)
	}
	return &Program{Block: block, position: pos}, nil
}

func (p *parser) ParseExpression() (Node, error) {
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if p.cur.Kind != TokenEOF {
		return nil, p.errorExpected(TokenEOF)
	}
	return expr, nil
}
