package calc

import "strconv"

type ValueKind int

const (
	KindUnit ValueKind = iota
	KindInt
)

func (k ValueKind) String() string {
	switch k {
	case KindUnit:
		return "unit"
	case KindInt:
		return "int"
	default:
		return "unknown"
	}
}

// Value is the result of evaluating a node. Statements produce unit,
// expressions produce an integer.
type Value struct {
	kind ValueKind
	i    int64
}

func NewInt(i int64) Value {
	return Value{kind: KindInt, i: i}
}

func Unit() Value {
	return Value{kind: KindUnit}
}

func (v Value) Kind() ValueKind { return v.kind }
func (v Value) IsUnit() bool    { return v.kind == KindUnit }
func (v Value) Int() int64      { return v.i }

func (v Value) String() string {
	if v.kind == KindUnit {
		return "()"
	}
	return strconv.FormatInt(v.i, 10)
}
