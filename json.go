package mathgraph

import (
	"encoding/json"
	"fmt"
)

// JSON encoding: one type-tagged object per node.
//
//	{"type": "constant", "value": 3}
//	{"type": "input", "name": "x"}
//	{"type": "add", "a": {...}, "b": {...}}
//	{"type": "log", "a": {...}}

// ToJSON serializes an expression graph. Shared subtrees serialize once
// per path, so the decoded graph is an equivalent tree.
func ToJSON(n Node) (string, error) {
	b, err := json.Marshal(toJSONValue(n))
	return string(b), err
}

func toJSONValue(n Node) map[string]any {
	switch v := n.(type) {
	case *Constant:
		return map[string]any{"type": "constant", "value": v.value}
	case *Input:
		return map[string]any{"type": "input", "name": v.name}
	case *Add:
		return map[string]any{"type": "add", "a": toJSONValue(v.a), "b": toJSONValue(v.b)}
	case *Subtract:
		return map[string]any{"type": "subtract", "a": toJSONValue(v.a), "b": toJSONValue(v.b)}
	case *Multiply:
		return map[string]any{"type": "multiply", "a": toJSONValue(v.a), "b": toJSONValue(v.b)}
	case *Divide:
		return map[string]any{"type": "divide", "a": toJSONValue(v.a), "b": toJSONValue(v.b)}
	case *Power:
		return map[string]any{"type": "power", "a": toJSONValue(v.a), "b": toJSONValue(v.b)}
	case *Log:
		return map[string]any{"type": "log", "a": toJSONValue(v.a)}
	default:
		panic(fmt.Sprintf("mathgraph: cannot serialize %T", n))
	}
}

// FromJSON rebuilds an expression graph from its decoded JSON form.
func FromJSON(data map[string]any) (Node, error) {
	if data == nil {
		return nil, fmt.Errorf("mathgraph: expression must be an object")
	}
	typ, ok := data["type"].(string)
	if !ok || typ == "" {
		return nil, fmt.Errorf("mathgraph: field 'type' must be a non-empty string")
	}
	switch typ {
	case "constant":
		v, ok := data["value"].(float64)
		if !ok {
			return nil, fmt.Errorf("mathgraph: constant needs a numeric 'value'")
		}
		return C(v), nil
	case "input":
		name, ok := data["name"].(string)
		if !ok || name == "" {
			return nil, fmt.Errorf("mathgraph: input needs a non-empty 'name'")
		}
		return In(name), nil
	case "add", "subtract", "multiply", "divide", "power":
		a, err := childFromJSON(data, "a")
		if err != nil {
			return nil, err
		}
		b, err := childFromJSON(data, "b")
		if err != nil {
			return nil, err
		}
		switch typ {
		case "add":
			return &Add{a: a, b: b}, nil
		case "subtract":
			return &Subtract{a: a, b: b}, nil
		case "multiply":
			return &Multiply{a: a, b: b}, nil
		case "divide":
			return &Divide{a: a, b: b}, nil
		default:
			return &Power{a: a, b: b}, nil
		}
	case "log":
		a, err := childFromJSON(data, "a")
		if err != nil {
			return nil, err
		}
		return &Log{a: a}, nil
	default:
		return nil, fmt.Errorf("mathgraph: unknown node type %q", typ)
	}
}

func childFromJSON(data map[string]any, key string) (Node, error) {
	raw, ok := data[key].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("mathgraph: %q node needs an object field %q", data["type"], key)
	}
	return FromJSON(raw)
}

// ParseJSON decodes raw JSON bytes into an expression graph.
func ParseJSON(b []byte) (Node, error) {
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("mathgraph: invalid JSON: %w", err)
	}
	return FromJSON(m)
}
