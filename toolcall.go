package mathgraph

import (
	"fmt"
	"sort"
)

// ToolRequest is a single operation request against the expression
// kernel, suitable for JSON transport. Expressions travel as arithmetic
// text and are parsed on arrival.
type ToolRequest struct {
	Tool   string         `json:"tool"`
	Params map[string]any `json:"params"`
}

// ToolResponse carries the outcome of a tool call. String holds the
// rendered expression result; Value is set when the result reduced to a
// single Constant; DOT is set by the visualise tool.
type ToolResponse struct {
	String string   `json:"string,omitempty"`
	Value  *float64 `json:"value,omitempty"`
	DOT    string   `json:"dot,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// HandleToolCall dispatches a ToolRequest. Supported tools: simplify,
// evaluate, gradient, visualise.
func HandleToolCall(req ToolRequest) ToolResponse {
	expr, err := requestExpr(req)
	if err != nil {
		return ToolResponse{Error: err.Error()}
	}

	switch req.Tool {
	case "simplify":
		result, err := expr.Simplify()
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return nodeResponse(result)

	case "evaluate":
		env := Env{}
		if raw, ok := req.Params["bindings"].(map[string]any); ok {
			for k, v := range raw {
				env[k] = v
			}
		}
		result, err := expr.Evaluate(env)
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return nodeResponse(result)

	case "gradient":
		name, ok := req.Params["var"].(string)
		if !ok || name == "" {
			return ToolResponse{Error: "gradient needs a 'var' parameter"}
		}
		result, err := expr.Gradient(name).Simplify()
		if err != nil {
			return ToolResponse{Error: err.Error()}
		}
		return nodeResponse(result)

	case "visualise":
		return ToolResponse{String: expr.String(), DOT: Visualise(expr)}

	default:
		return ToolResponse{Error: fmt.Sprintf("unknown tool %q", req.Tool)}
	}
}

func requestExpr(req ToolRequest) (Node, error) {
	raw, ok := req.Params["expr"]
	if !ok {
		return nil, fmt.Errorf("missing 'expr' parameter")
	}
	switch v := raw.(type) {
	case string:
		return Parse(v)
	case map[string]any:
		return FromJSON(v)
	default:
		return nil, fmt.Errorf("'expr' must be an arithmetic string or a JSON node object")
	}
}

func nodeResponse(n Node) ToolResponse {
	resp := ToolResponse{String: n.String()}
	if c, ok := n.(*Constant); ok {
		v := c.Value()
		resp.Value = &v
	}
	return resp
}

// ToolSpec returns the tool schema as JSON, for agent or client
// registration against the HTTP endpoint.
func ToolSpec() string {
	return `{
  "tools": [
    {
      "name": "simplify",
      "description": "Reduce an expression to canonical form",
      "params": {"expr": "arithmetic string or JSON node"}
    },
    {
      "name": "evaluate",
      "description": "Evaluate an expression under bindings; unbound inputs remain symbolic",
      "params": {"expr": "arithmetic string or JSON node", "bindings": "object of name -> number"}
    },
    {
      "name": "gradient",
      "description": "Symbolic partial derivative with respect to var, simplified",
      "params": {"expr": "arithmetic string or JSON node", "var": "input name"}
    },
    {
      "name": "visualise",
      "description": "Render the expression graph as Graphviz DOT",
      "params": {"expr": "arithmetic string or JSON node"}
    }
  ]
}`
}

// FreeInputs returns the sorted names of the unbound Inputs reachable
// from n.
func FreeInputs(n Node) []string {
	seen := map[string]struct{}{}
	collectInputs(n, seen)
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func collectInputs(n Node, out map[string]struct{}) {
	if in, ok := n.(*Input); ok {
		out[in.name] = struct{}{}
		return
	}
	for _, child := range n.Children() {
		collectInputs(child, out)
	}
}
