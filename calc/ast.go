package calc

// Node is implemented by every syntax tree variant. The set is closed: the
// unexported marker keeps other packages from adding variants.
type Node interface {
	Pos() Position
	node()
}

// Program is the root produced by the program rule: one compound statement
// followed by a dot.
type Program struct {
	Block    *Compound
	position Position
}

func (n *Program) node()         {}
func (n *Program) Pos() Position { return n.position }

type Compound struct {
	Statements []Node
	position   Position
}

func (n *Compound) node()         {}
func (n *Compound) Pos() Position { return n.position }

type Assignment struct {
	Target   *Variable
	Value    Node
	position Position
}

func (n *Assignment) node()         {}
func (n *Assignment) Pos() Position { return n.position }

// NoOp is the empty statement, e.g. a semicolon right before END.
type NoOp struct {
	position Position
}

func (n *NoOp) node()         {}
func (n *NoOp) Pos() Position { return n.position }

type Variable struct {
	Name     string
	position Position
}

func (n *Variable) node()         {}
func (n *Variable) Pos() Position { return n.position }

type IntegerLiteral struct {
	Value    int64
	position Position
}

func (n *IntegerLiteral) node()         {}
func (n *IntegerLiteral) Pos() Position { return n.position }

// UnaryExpr applies TokenPlus or TokenMinus to its operand.
type UnaryExpr struct {
	Operator TokenKind
	Operand  Node
	position Position
}

func (n *UnaryExpr) node()         {}
func (n *UnaryExpr) Pos() Position { return n.position }

// BinaryExpr combines two operands with TokenPlus, TokenMinus, TokenStar or
// TokenSlash. Its position is the operator's.
type BinaryExpr struct {
	Operator TokenKind
	Left     Node
	Right    Node
	position Position
}

func (n *BinaryExpr) node()         {}
func (n *BinaryExpr) Pos() Position { return n.position }
