package mathgraph

import "fmt"

// The simplifier is a single bottom-up pass: each node simplifies its
// children, folds if both came back Constant, then applies its own rule
// set once. No fixpoint iteration is attempted, so the result is reduced
// but not guaranteed minimal; a second pass never changes semantics.

func (c *Constant) Simplify() (Node, error) { return c, nil }
func (i *Input) Simplify() (Node, error)    { return i, nil }

func (n *Add) Simplify() (Node, error) {
	a, err := n.a.Simplify()
	if err != nil {
		return nil, err
	}
	b, err := n.b.Simplify()
	if err != nil {
		return nil, err
	}
	if ca, cb, ok := bothConst(a, b); ok {
		return C(ca + cb), nil
	}
	if isConst(a, 0) {
		return b, nil
	}
	if isConst(b, 0) {
		return a, nil
	}

	// Normalize a bare Constant to the right-hand side.
	if _, ok := a.(*Constant); ok {
		a, b = b, a
	}

	// The remaining rules need the left side to be an Add chain with a
	// trailing Constant.
	inner, ok := a.(*Add)
	if !ok {
		return &Add{a: a, b: b}, nil
	}
	tail, ok := inner.b.(*Constant)
	if !ok {
		return &Add{a: a, b: b}, nil
	}

	// (x + 2) + 3 -> x + 5
	if cb, ok := b.(*Constant); ok {
		return &Add{a: inner.a, b: C(tail.value + cb.value)}, nil
	}
	// (x + 2) + y -> (x + y) + 2: lower the trailing constant past the
	// variable term.
	return &Add{a: &Add{a: inner.a, b: b}, b: tail}, nil
}

func (n *Subtract) Simplify() (Node, error) {
	a, err := n.a.Simplify()
	if err != nil {
		return nil, err
	}
	b, err := n.b.Simplify()
	if err != nil {
		return nil, err
	}
	if ca, cb, ok := bothConst(a, b); ok {
		return C(ca - cb), nil
	}
	if isConst(b, 0) {
		return a, nil
	}
	return &Subtract{a: a, b: b}, nil
}

func (n *Multiply) Simplify() (Node, error) {
	a, err := n.a.Simplify()
	if err != nil {
		return nil, err
	}
	b, err := n.b.Simplify()
	if err != nil {
		return nil, err
	}
	if ca, cb, ok := bothConst(a, b); ok {
		return C(ca * cb), nil
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

	if _, ok := a.(*Constant); ok {
		a, b = b, a
	}

	inner, ok := a.(*Multiply)
	if !ok {
		return &Multiply{a: a, b: b}, nil
	}
	tail, ok := inner.b.(*Constant)
	if !ok {
		return &Multiply{a: a, b: b}, nil
	}

	// (x * 2) * 3 -> x * 6
	if cb, ok := b.(*Constant); ok {
		return &Multiply{a: inner.a, b: C(tail.value * cb.value)}, nil
	}
	// (x * 2) * y -> (x * y) * 2
	return &Multiply{a: &Multiply{a: inner.a, b: b}, b: tail}, nil
}

func (n *Divide) Simplify() (Node, error) {
	a, err := n.a.Simplify()
	if err != nil {
		return nil, err
	}
	b, err := n.b.Simplify()
	if err != nil {
		return nil, err
	}
	if ca, cb, ok := bothConst(a, b); ok {
		if cb == 0 {
			return nil, fmt.Errorf("%w: %s / 0", ErrDivisionByZero, formatValue(ca))
		}
		return C(ca / cb), nil
	}
	if isConst(a, 0) {
		return C(0), nil
	}
	if isConst(b, 1) {
		return a, nil
	}
	return &Divide{a: a, b: b}, nil
}

func (n *Power) Simplify() (Node, error) {
	a, err := n.a.Simplify()
	if err != nil {
		return nil, err
	}
	b, err := n.b.Simplify()
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
	if isConst(b, 0) {
		return C(1), nil
	}
	if isConst(b, 1) {
		return a, nil
	}

	// A Power base whose own exponent is Constant canonicalizes: fold
	// the exponents when the outer one is also Constant, lower the
	// inner Constant outward otherwise. One step suffices; longer
	// chains reduce on subsequent simplifications.
	if inner, ok := a.(*Power); ok {
		if tail, ok := inner.b.(*Constant); ok {
			// (x ^ 2) ^ 3 -> x ^ 6
			if cb, ok := b.(*Constant); ok {
				return &Power{a: inner.a, b: C(tail.value * cb.value)}, nil
			}
			// (x ^ 2) ^ y -> (x ^ y) ^ 2
			return &Power{a: &Power{a: inner.a, b: b}, b: tail}, nil
		}
	}
	return &Power{a: a, b: b}, nil
}

func (n *Log) Simplify() (Node, error) {
	a, err := n.a.Simplify()
	if err != nil {
		return nil, err
	}
	return &Log{a: a}, nil
}
