package calc

func (p *parser) parseCompound() (*Compound, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	begin, err := p.consume(TokenBegin)
	if err != nil {
		return nil, err
	}

	stmt, err := p.parseStatement()
	if err != nil {
		return nil, err
	}
	stmts := []Node{stmt}
	for p.cur.Kind == TokenSemicolon {
		if err := p.advance(); err != nil {
			return nil, err
		}
		stmt, err := p.parseStatement()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, stmt)
	}

	if p.cur.Kind != TokenEnd {
		return nil, p.errorExpected(TokenSemicolon, TokenEnd)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &Compound{Statements: stmts, position: begin.Pos}, nil
}

// parseStatement never consumes a token for the empty statement.
func (p *parser) parseStatement() (Node, error) {
	switch p.cur.Kind {
	case TokenBegin:
		return p.parseCompound()
	case TokenIdent:
		return p.parseAssignment()
	default:
		return &NoOp{position: p.cur.Pos}, nil
	}
}

func (p *parser) parseAssignment() (Node, error) {
	name, err := p.consume(TokenIdent)
	if err != nil {
		return nil, err
	}
	op, err := p.consume(TokenAssign)
	if err != nil {
		return nil, err
	}
	value, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	return &Assignment{
		Target:   &Variable{Name: name.Literal, position: name.Pos},
		Value:    value,
		position: op.Pos,
	}, nil
}
