package calc

func (exec *Execution) evalUnaryExpr(e *UnaryExpr) (Value, error) {
	operand, err := exec.evalExpression(e.Operand)
	if err != nil {
		return Unit(), err
	}
	switch e.Operator {
	case TokenPlus:
		return NewInt(operand), nil
	case TokenMinus:
		n, err := negateInt(operand)
		if err != nil {
			return Unit(), exec.arithmeticError(e.Operator, e.Pos(), err)
		}
		return NewInt(n), nil
	default:
		return Unit(), exec.errorAt(e.Pos(), "unsupported unary operator %s", e.Operator)
	}
}

func (exec *Execution) evalBinaryExpr(e *BinaryExpr) (Value, error) {
	left, err := exec.evalExpression(e.Left)
	if err != nil {
		return Unit(), err
	}
	right, err := exec.evalExpression(e.Right)
	if err != nil {
		return Unit(), err
	}

	var result int64
	switch e.Operator {
	case TokenPlus:
		result, err = addInts(left, right)
	case TokenMinus:
		result, err = subtractInts(left, right)
	case TokenStar:
		result, err = multiplyInts(left, right)
	case TokenSlash:
		result, err = divideInts(left, right, exec.division)
	default:
		return Unit(), exec.errorAt(e.Pos(), "unsupported binary operator %s", e.Operator)
	}
	if err != nil {
		return Unit(), exec.arithmeticError(e.Operator, e.Pos(), err)
	}
	return NewInt(result), nil
}

// evalExpression evaluates a node that must produce an integer.
func (exec *Execution) evalExpression(node Node) (int64, error) {
	val, err := exec.eval(node)
	if err != nil {
		return 0, err
	}
	if val.IsUnit() {
		return 0, exec.errorAt(node.Pos(), "statement used as a value")
	}
	return val.Int(), nil
}
