package mathgraph

import (
	"fmt"
	"reflect"
)

var nodeType = reflect.TypeOf((*Node)(nil)).Elem()

// CompileOperation turns a host function into an expression graph by
// invoking it symbolically: one Input node is constructed per parameter
// name and passed in declared order. fn must be a function whose
// parameters all accept a Node and which returns a single Node; names
// must match its parameter count, since Go reflection cannot recover
// parameter names.
//
//	f, err := mathgraph.CompileOperation(func(x, y mathgraph.Node) mathgraph.Node {
//		return mathgraph.AddOf(mathgraph.MulOf(x, x), y)
//	}, "x", "y")
func CompileOperation(fn any, names ...string) (Node, error) {
	v := reflect.ValueOf(fn)
	t := v.Type()
	if t.Kind() != reflect.Func {
		return nil, fmt.Errorf("mathgraph: CompileOperation needs a function, got %T", fn)
	}
	if t.IsVariadic() {
		return nil, fmt.Errorf("mathgraph: CompileOperation does not support variadic functions")
	}
	if t.NumIn() != len(names) {
		return nil, fmt.Errorf("mathgraph: function takes %d parameters, got %d names", t.NumIn(), len(names))
	}
	if t.NumOut() != 1 || !t.Out(0).AssignableTo(nodeType) {
		return nil, fmt.Errorf("mathgraph: function must return a single Node")
	}

	args := make([]reflect.Value, len(names))
	for i, name := range names {
		in := In(name)
		if !reflect.TypeOf(in).AssignableTo(t.In(i)) {
			return nil, fmt.Errorf("mathgraph: parameter %d does not accept a Node", i)
		}
		arg := reflect.New(t.In(i)).Elem()
		arg.Set(reflect.ValueOf(in))
		args[i] = arg
	}

	out := v.Call(args)[0]
	node, ok := out.Interface().(Node)
	if !ok || node == nil {
		return nil, fmt.Errorf("mathgraph: function returned a nil Node")
	}
	return node, nil
}
