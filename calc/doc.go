// Package calc implements a scanner, parser and tree-walking evaluator for a
// small Pascal-like language:
//   - Integer arithmetic with +, -, * and /, parentheses, and unary + and -.
//   - Variables assigned with `name := expr`.
//   - Compound statements `BEGIN ... END` separated by semicolons; a whole
//     program is one compound statement followed by a dot.
//
// Source can be run as a program (Engine.Run), which yields the final
// variable environment, or as a lone expression (Engine.Eval), which yields
// an integer. Failures are reported as *LexError, *ParseError,
// *UndefinedVariableError or *ArithmeticError.
package calc
