package calc

func (p *parser) parseExpression() (Node, error) {
	return p.parseBinary(precSum)
}

// parseBinary folds operands of one precedence level from left to right, so
// the running node always becomes the left operand of the next operator.
func (p *parser) parseBinary(prec int) (Node, error) {
	operand := p.parseFactor
	if prec < precProduct {
		operand = func() (Node, error) { return p.parseBinary(prec + 1) }
	}

	left, err := operand()
	if err != nil {
		return nil, err
	}

	for isBinaryOperator(p.cur.Kind, prec) {
		op := p.cur
		if err := p.advance(); err != nil {
			return nil, err
		}
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Operator: op.Kind, Left: left, Right: right, position: op.Pos}
	}

	return left, nil
}

func (p *parser) parseFactor() (Node, error) {
	tok := p.cur
	switch tok.Kind {
	case TokenInteger:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &IntegerLiteral{Value: tok.Value, position: tok.Pos}, nil
	case TokenIdent:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &Variable{Name: tok.Literal, position: tok.Pos}, nil
	case TokenLParen:
		return p.parseGroupedExpression()
	case TokenPlus, TokenMinus:
		return p.parseUnaryExpression()
	default:
		return nil, p.errorExpected(factorStart...)
	}
}

func (p *parser) parseGroupedExpression() (Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	if _, err := p.consume(TokenLParen); err != nil {
		return nil, err
	}
	expr, err := p.parseExpression()
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(TokenRParen); err != nil {
		return nil, err
	}
	return expr, nil
}

func (p *parser) parseUnaryExpression() (Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	op := p.cur
	if err := p.advance(); err != nil {
		return nil, err
	}
	operand, err := p.parseFactor()
	if err != nil {
		return nil, err
	}
	return &UnaryExpr{Operator: op.Kind, Operand: operand, position: op.Pos}, nil
}
