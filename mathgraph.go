// Package mathgraph builds, evaluates, differentiates, and simplifies
// arithmetic expression graphs.
//
// An expression is an immutable tree (or DAG — subtrees may be shared) of
// Constant, Input, and operation nodes. Three pure algorithms walk it:
//
//   - Evaluate substitutes bound Inputs and folds constant sub-results,
//     leaving unbound Inputs in place (partial evaluation).
//   - Simplify applies one bottom-up pass of algebraic rewrite rules
//     (constant folding, identity elimination, chain canonicalization).
//   - Gradient constructs the exact symbolic partial derivative with
//     respect to a named Input.
//
// Construction is purely structural: the *Of constructors promote raw
// numeric operands to Constant nodes and never evaluate or simplify.
package mathgraph

import (
	"fmt"
	"strconv"
)

// Node is an immutable element of an expression graph.
type Node interface {
	// Simplify returns an algebraically reduced equivalent of the node.
	// It fails only when constant folding hits an undefined combination
	// such as division by a constant zero.
	Simplify() (Node, error)

	// Evaluate substitutes bound Inputs and folds constant sub-results.
	// The result is a Constant exactly when every reachable Input was
	// bound; otherwise it is a reduced tree over the remaining Inputs.
	Evaluate(env Env) (Node, error)

	// Gradient returns the symbolic partial derivative with respect to
	// the Input named name. The result is unsimplified.
	Gradient(name string) Node

	// Describe returns the node's diagram label: the variant name plus
	// its distinguishing data, if any.
	Describe() string

	// Children returns the node's operands in fixed order. Leaves
	// return nil.
	Children() []Node

	// Equal reports structural equality.
	Equal(other Node) bool

	String() string
}

// Constant is a literal scalar.
type Constant struct {
	value float64
}

// C returns a Constant holding v.
func C(v float64) *Constant { return &Constant{value: v} }

// Value returns the scalar the Constant holds.
func (c *Constant) Value() float64 { return c.value }

func (c *Constant) Describe() string { return "Constant: " + formatValue(c.value) }
func (c *Constant) Children() []Node { return nil }
func (c *Constant) String() string   { return formatValue(c.value) }

func (c *Constant) Equal(other Node) bool {
	o, ok := other.(*Constant)
	return ok && c.value == o.value
}

// Input is a free variable bound at evaluation time.
type Input struct {
	name string
}

// In returns an Input named name.
func In(name string) *Input { return &Input{name: name} }

// Name returns the Input's name.
func (i *Input) Name() string { return i.name }

func (i *Input) Describe() string { return `Input: "` + i.name + `"` }
func (i *Input) Children() []Node { return nil }
func (i *Input) String() string   { return i.name }

func (i *Input) Equal(other Node) bool {
	o, ok := other.(*Input)
	return ok && i.name == o.name
}

// Add is the sum a + b.
type Add struct{ a, b Node }

// Subtract is the difference a - b.
type Subtract struct{ a, b Node }

// Multiply is the product a * b.
type Multiply struct{ a, b Node }

// Divide is the quotient a / b.
type Divide struct{ a, b Node }

// Power is a raised to the b-th power.
type Power struct{ a, b Node }

// Log is the natural logarithm of a.
type Log struct{ a Node }

func (n *Add) Describe() string      { return "Add" }
func (n *Subtract) Describe() string { return "Subtract" }
func (n *Multiply) Describe() string { return "Multiply" }
func (n *Divide) Describe() string   { return "Divide" }
func (n *Power) Describe() string    { return "Power" }
func (n *Log) Describe() string      { return "Log" }

func (n *Add) Children() []Node      { return []Node{n.a, n.b} }
func (n *Subtract) Children() []Node { return []Node{n.a, n.b} }
func (n *Multiply) Children() []Node { return []Node{n.a, n.b} }
func (n *Divide) Children() []Node   { return []Node{n.a, n.b} }
func (n *Power) Children() []Node    { return []Node{n.a, n.b} }
func (n *Log) Children() []Node      { return []Node{n.a} }

func (n *Add) String() string      { return "(" + n.a.String() + " + " + n.b.String() + ")" }
func (n *Subtract) String() string { return "(" + n.a.String() + " - " + n.b.String() + ")" }
func (n *Multiply) String() string { return "(" + n.a.String() + " * " + n.b.String() + ")" }
func (n *Divide) String() string   { return "(" + n.a.String() + " / " + n.b.String() + ")" }
func (n *Power) String() string    { return "(" + n.a.String() + " ^ " + n.b.String() + ")" }
func (n *Log) String() string      { return "log(" + n.a.String() + ")" }

func (n *Add) Equal(other Node) bool {
	o, ok := other.(*Add)
	return ok && n.a.Equal(o.a) && n.b.Equal(o.b)
}

func (n *Subtract) Equal(other Node) bool {
	o, ok := other.(*Subtract)
	return ok && n.a.Equal(o.a) && n.b.Equal(o.b)
}

func (n *Multiply) Equal(other Node) bool {
	o, ok := other.(*Multiply)
	return ok && n.a.Equal(o.a) && n.b.Equal(o.b)
}

func (n *Divide) Equal(other Node) bool {
	o, ok := other.(*Divide)
	return ok && n.a.Equal(o.a) && n.b.Equal(o.b)
}

func (n *Power) Equal(other Node) bool {
	o, ok := other.(*Power)
	return ok && n.a.Equal(o.a) && n.b.Equal(o.b)
}

func (n *Log) Equal(other Node) bool {
	o, ok := other.(*Log)
	return ok && n.a.Equal(o.a)
}

// ============================================================
// Construction layer
// ============================================================

// Operand promotion: every constructor accepts a Node or a raw numeric
// value on either side. Promotion happens here and nowhere else.
func operand(x any) Node {
	switch v := x.(type) {
	case Node:
		return v
	case float64:
		return C(v)
	case float32:
		return C(float64(v))
	case int:
		return C(float64(v))
	case int8:
		return C(float64(v))
	case int16:
		return C(float64(v))
	case int32:
		return C(float64(v))
	case int64:
		return C(float64(v))
	case uint:
		return C(float64(v))
	case uint8:
		return C(float64(v))
	case uint16:
		return C(float64(v))
	case uint32:
		return C(float64(v))
	case uint64:
		return C(float64(v))
	default:
		panic(fmt.Sprintf("mathgraph: %T is not a Node or numeric operand", x))
	}
}

// AddOf returns the Add node a + b.
func AddOf(a, b any) Node { return &Add{a: operand(a), b: operand(b)} }

// SubOf returns the Subtract node a - b.
func SubOf(a, b any) Node { return &Subtract{a: operand(a), b: operand(b)} }

// MulOf returns the Multiply node a * b.
func MulOf(a, b any) Node { return &Multiply{a: operand(a), b: operand(b)} }

// DivOf returns the Divide node a / b.
func DivOf(a, b any) Node { return &Divide{a: operand(a), b: operand(b)} }

// PowOf returns the Power node a raised to b.
func PowOf(a, b any) Node { return &Power{a: operand(a), b: operand(b)} }

// LogOf returns the natural-logarithm node of a.
func LogOf(a any) Node { return &Log{a: operand(a)} }

// NegOf returns the negation of a, defined as 0 - a.
func NegOf(a any) Node { return SubOf(0, a) }

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
