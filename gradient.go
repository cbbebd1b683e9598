package mathgraph

// Gradient builds the derivative tree structurally, sharing the original
// subtrees where the calculus rules reference them. Nothing is folded or
// reduced here; callers simplify the result if they want a compact form.

func (c *Constant) Gradient(string) Node { return C(0) }

func (i *Input) Gradient(name string) Node {
	if i.name == name {
		return C(1)
	}
	return C(0)
}

// d(a + b) = da + db
func (n *Add) Gradient(name string) Node {
	return &Add{a: n.a.Gradient(name), b: n.b.Gradient(name)}
}

// d(a - b) = da - db
func (n *Subtract) Gradient(name string) Node {
	return &Subtract{a: n.a.Gradient(name), b: n.b.Gradient(name)}
}

// d(a * b) = a*db + da*b
func (n *Multiply) Gradient(name string) Node {
	return &Add{
		a: &Multiply{a: n.a, b: n.b.Gradient(name)},
		b: &Multiply{a: n.a.Gradient(name), b: n.b},
	}
}

// d(a / b) = (da*b - a*db) / b^2
func (n *Divide) Gradient(name string) Node {
	return &Divide{
		a: &Subtract{
			a: &Multiply{a: n.a.Gradient(name), b: n.b},
			b: &Multiply{a: n.a, b: n.b.Gradient(name)},
		},
		b: &Power{a: n.b, b: C(2)},
	}
}

// d(a ^ b) = a^(b-1) * (b*da + a*log(a)*db)
//
// The general rule: it covers dependence through the base, the exponent,
// or both.
func (n *Power) Gradient(name string) Node {
	return &Multiply{
		a: &Power{a: n.a, b: &Subtract{a: n.b, b: C(1)}},
		b: &Add{
			a: &Multiply{a: n.b, b: n.a.Gradient(name)},
			b: &Multiply{
				a: &Multiply{a: n.a, b: &Log{a: n.a}},
				b: n.b.Gradient(name),
			},
		},
	}
}

// d(log(a)) = da / a
func (n *Log) Gradient(name string) Node {
	return &Divide{a: n.a.Gradient(name), b: n.a}
}
