package calc

const (
	precSum = iota
	precProduct
)

// binaryOperators lists the operators of each binary level, loosest first.
var binaryOperators = [...][]TokenKind{
	precSum:     {TokenPlus, TokenMinus},
	precProduct: {TokenStar, TokenSlash},
}

// factorStart is the set of tokens that can begin a factor.
var factorStart = []TokenKind{TokenInteger, TokenLParen, TokenPlus, TokenMinus, TokenIdent}

func isBinaryOperator(kind TokenKind, prec int) bool {
	for _, op := range binaryOperators[prec] {
		if op == kind {
			return true
		}
	}
	return false
}
