package calc

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatNode renders a tree in a compact prefix form, e.g.
// (compound (assign x (+ 1 2)) (noop)).
func FormatNode(node Node) string {
	var b strings.Builder
	writePrefix(&b, node)
	return b.String()
}

func writePrefix(b *strings.Builder, node Node) {
	switch n := node.(type) {
	case *Program:
		b.WriteString("(program ")
		writePrefix(b, n.Block)
		b.WriteString(")")
	case *Compound:
		b.WriteString("(compound")
		for _, stmt := range n.Statements {
			b.WriteString(" ")
			writePrefix(b, stmt)
		}
		b.WriteString(")")
	case *NoOp:
		b.WriteString("(noop)")
	case *Assignment:
		fmt.Fprintf(b, "(assign %s ", n.Target.Name)
		writePrefix(b, n.Value)
		b.WriteString(")")
	case *IntegerLiteral:
		b.WriteString(strconv.FormatInt(n.Value, 10))
	case *Variable:
		b.WriteString(n.Name)
	case *UnaryExpr:
		fmt.Fprintf(b, "(%s ", operatorSymbol(n.Operator))
		writePrefix(b, n.Operand)
		b.WriteString(")")
	case *BinaryExpr:
		fmt.Fprintf(b, "(%s ", operatorSymbol(n.Operator))
		writePrefix(b, n.Left)
		b.WriteString(" ")
		writePrefix(b, n.Right)
		b.WriteString(")")
	default:
		fmt.Fprintf(b, "(unknown %T)", node)
	}
}

func operatorSymbol(kind TokenKind) string {
	switch kind {
	case TokenPlus:
		return "+"
	case TokenMinus:
		return "-"
	case TokenStar:
		return "*"
	case TokenSlash:
		return "/"
	default:
		return string(kind)
	}
}

const formatIndent = "  "

// FormatProgram renders a program as canonical source: one statement per
// line, two-space indentation and only the parentheses the tree needs.
// Parsing the output yields an equivalent tree.
func FormatProgram(program *Program) string {
	var b strings.Builder
	writeCompound(&b, program.Block, 0)
	b.WriteString(".\n")
	return b.String()
}

func writeCompound(b *strings.Builder, c *Compound, depth int) {
	indent := strings.Repeat(formatIndent, depth)
	b.WriteString("BEGIN\n")
	last := len(c.Statements) - 1
	for i, stmt := range c.Statements {
		if _, empty := stmt.(*NoOp); empty && i == last {
			break
		}
		b.WriteString(indent + formatIndent)
		writeStatement(b, stmt, depth+1)
		if i < last {
			b.WriteString(";")
		}
		b.WriteString("\n")
	}
	b.WriteString(indent + "END")
}

func writeStatement(b *strings.Builder, stmt Node, depth int) {
	switch s := stmt.(type) {
	case *Compound:
		writeCompound(b, s, depth)
	case *Assignment:
		b.WriteString(s.Target.Name + " := " + FormatExpression(s.Value))
	case *NoOp:
	default:
		b.WriteString(FormatExpression(stmt))
	}
}

// FormatExpression renders an expression in infix form.
func FormatExpression(node Node) string {
	switch n := node.(type) {
	case *IntegerLiteral:
		return strconv.FormatInt(n.Value, 10)
	case *Variable:
		return n.Name
	case *UnaryExpr:
		operand := FormatExpression(n.Operand)
		switch n.Operand.(type) {
		case *BinaryExpr:
			operand = "(" + operand + ")"
		case *UnaryExpr:
			operand = " " + operand
		}
		return operatorSymbol(n.Operator) + operand
	case *BinaryExpr:
		prec := binaryPrecedence(n.Operator)
		left := FormatExpression(n.Left)
		if child, ok := n.Left.(*BinaryExpr); ok && binaryPrecedence(child.Operator) < prec {
			left = "(" + left + ")"
		}
		right := FormatExpression(n.Right)
		if child, ok := n.Right.(*BinaryExpr); ok && binaryPrecedence(child.Operator) <= prec {
			right = "(" + right + ")"
		}
		return left + " " + operatorSymbol(n.Operator) + " " + right
	default:
		return FormatNode(node)
	}
}

func binaryPrecedence(kind TokenKind) int {
	for prec := range binaryOperators {
		if isBinaryOperator(kind, prec) {
			return prec
		}
	}
	return -1
}
