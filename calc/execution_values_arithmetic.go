package calc

import (
	"errors"
	"math"
)

var (
	ErrDivisionByZero  = errors.New("division by zero")
	ErrIntegerOverflow = errors.New("integer overflow")
)

// DivisionMode selects how integer division rounds.
type DivisionMode string

const (
	// DivisionTruncate rounds the quotient toward zero.
	DivisionTruncate DivisionMode = "truncate"
	// DivisionFloor rounds the quotient toward negative infinity.
	DivisionFloor DivisionMode = "floor"
)

func addInts(a, b int64) (int64, error) {
	r := a + b
	if (a > 0 && b > 0 && r < 0) || (a < 0 && b < 0 && r >= 0) {
		return 0, ErrIntegerOverflow
	}
	return r, nil
}

func subtractInts(a, b int64) (int64, error) {
	r := a - b
	if (a >= 0 && b < 0 && r < 0) || (a < 0 && b > 0 && r >= 0) {
		return 0, ErrIntegerOverflow
	}
	return r, nil
}

func multiplyInts(a, b int64) (int64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if (a == -1 && b == math.MinInt64) || (b == -1 && a == math.MinInt64) {
		return 0, ErrIntegerOverflow
	}
	r := a * b
	if r/b != a {
		return 0, ErrIntegerOverflow
	}
	return r, nil
}

func divideInts(a, b int64, mode DivisionMode) (int64, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	if a == math.MinInt64 && b == -1 {
		return 0, ErrIntegerOverflow
	}
	q := a / b
	if mode == DivisionFloor && a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q, nil
}

func negateInt(a int64) (int64, error) {
	if a == math.MinInt64 {
		return 0, ErrIntegerOverflow
	}
	return -a, nil
}
