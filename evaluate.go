package mathgraph

import (
	"errors"
	"fmt"
	"math"
)

// Evaluation failures. Both are surfaced wrapped with detail; match them
// with errors.Is.
var (
	ErrDivisionByZero = errors.New("mathgraph: division by zero")
	ErrDomain         = errors.New("mathgraph: domain error")
)

// Env maps Input names to their bound values. A value may be a raw
// numeric or another Node, so a sub-expression can be substituted for a
// free variable. Missing names are not an error: the Input stays in the
// result unchanged.
type Env map[string]any

func (e Env) lookup(name string) (Node, bool, error) {
	v, ok := e[name]
	if !ok {
		return nil, false, nil
	}
	switch b := v.(type) {
	case Node:
		return b, true, nil
	case float64:
		return C(b), true, nil
	case float32:
		return C(float64(b)), true, nil
	case int:
		return C(float64(b)), true, nil
	case int32:
		return C(float64(b)), true, nil
	case int64:
		return C(float64(b)), true, nil
	default:
		return nil, false, fmt.Errorf("mathgraph: binding %q: %T is not a Node or numeric value", name, v)
	}
}

func (c *Constant) Evaluate(Env) (Node, error) { return c, nil }

func (i *Input) Evaluate(env Env) (Node, error) {
	bound, ok, err := env.lookup(i.name)
	if err != nil {
		return nil, err
	}
	if ok {
		return bound, nil
	}
	return i, nil
}

func (n *Add) Evaluate(env Env) (Node, error) {
	a, err := n.a.Evaluate(env)
	if err != nil {
		return nil, err
	}
	b, err := n.b.Evaluate(env)
	if err != nil {
		return nil, err
	}
	// Adding zero short-circuits, which also covers a mixed
	// constant/unbound sum without a full numeric combination.
	if isConst(a, 0) {
		return b, nil
	}
	if isConst(b, 0) {
		return a, nil
	}
	if ca, cb, ok := bothConst(a, b); ok {
		return C(ca + cb), nil
	}
	return &Add{a: a, b: b}, nil
}

func (n *Subtract) Evaluate(env Env) (Node, error) {
	a, err := n.a.Evaluate(env)
	if err != nil {
		return nil, err
	}
	b, err := n.b.Evaluate(env)
	if err != nil {
		return nil, err
	}
	if ca, cb, ok := bothConst(a, b); ok {
		return C(ca - cb), nil
	}
	return &Subtract{a: a, b: b}, nil
}

func (n *Multiply) Evaluate(env Env) (Node, error) {
	a, err := n.a.Evaluate(env)
	if err != nil {
		return nil, err
	}
	b, err := n.b.Evaluate(env)
	if err != nil {
		return nil, err
	}
	if isConst(a, 0) || isConst(b, 0) {
		return C(0), nil
	}
	if isConst(a, 1) {
		return b, nil
	}
	if isConst(b, 1) {
		return a, nil
	}
	if ca, cb, ok := bothConst(a, b); ok {
		return C(ca * cb), nil
	}
	return &Multiply{a: a, b: b}, nil
}

func (n *Divide) Evaluate(env Env) (Node, error) {
	a, err := n.a.Evaluate(env)
	if err != nil {
		return nil, err
	}
	b, err := n.b.Evaluate(env)
	if err != nil {
		return nil, err
	}
	if ca, cb, ok := bothConst(a, b); ok {
		if cb == 0 {
			return nil, fmt.Errorf("%w: %s / 0", ErrDivisionByZero, formatValue(ca))
		}
		return C(ca / cb), nil
	}
	return &Divide{a: a, b: b}, nil
}

func (n *Power) Evaluate(env Env) (Node, error) {
	// The exponent decides the short-circuits, so it is evaluated
	// first; a zero exponent skips the base entirely.
	b, err := n.b.Evaluate(env)
	if err != nil {
		return nil, err
	}
	if isConst(b, 0) {
		return C(1), nil
	}
	if isConst(b, 1) {
		return n.a.Evaluate(env)
	}
	a, err := n.a.Evaluate(env)
	if err != nil {
		return nil, err
	}
	if ca, cb, ok := bothConst(a, b); ok {
		v, err := powConst(ca, cb)
		if err != nil {
			return nil, err
		}
		return C(v), nil
	}
	return &Power{a: a, b: b}, nil
}

func (n *Log) Evaluate(env Env) (Node, error) {
	a, err := n.a.Evaluate(env)
	if err != nil {
		return nil, err
	}
	if c, ok := a.(*Constant); ok {
		if c.value <= 0 {
			return nil, fmt.Errorf("%w: log(%s)", ErrDomain, formatValue(c.value))
		}
		return C(math.Log(c.value)), nil
	}
	// Domain checks apply to constant operands only; an unresolved
	// operand passes through uncombined.
	return a, nil
}

// isConst reports whether n is the Constant v.
func isConst(n Node, v float64) bool {
	c, ok := n.(*Constant)
	return ok && c.value == v
}

// bothConst extracts the values of two Constant nodes.
func bothConst(a, b Node) (float64, float64, bool) {
	ca, ok := a.(*Constant)
	if !ok {
		return 0, 0, false
	}
	cb, ok := b.(*Constant)
	if !ok {
		return 0, 0, false
	}
	return ca.value, cb.value, true
}

// powConst folds a constant power, rejecting the undefined corners:
// a zero base with a negative exponent divides by zero, and a negative
// base with a fractional exponent has no real value.
func powConst(base, exp float64) (float64, error) {
	if base == 0 && exp < 0 {
		return 0, fmt.Errorf("%w: 0 ^ %s", ErrDivisionByZero, formatValue(exp))
	}
	v := math.Pow(base, exp)
	if math.IsNaN(v) {
		return 0, fmt.Errorf("%w: %s ^ %s", ErrDomain, formatValue(base), formatValue(exp))
	}
	return v, nil
}
