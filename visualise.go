package mathgraph

import "strings"

// Slot names for diagram edges, in child order.
var slotNames = [...]string{"a", "b"}

// Visualise renders the expression graph as Graphviz DOT text. Each node
// becomes a vertex labelled with its Describe output and the slot it
// fills ("[input a]", "[input b]") or "[output f]" for the root; edges
// run from child to parent, mirroring dependency direction. A shared
// subtree is drawn once per path from the root.
func Visualise(root Node) string {
	var sb strings.Builder
	sb.WriteString("digraph visualisation {\n")
	sb.WriteString("\tbgcolor=\"white\";\n")
	writeVertex(&sb, root, "f", "")
	sb.WriteString("}\n")
	return sb.String()
}

func writeVertex(sb *strings.Builder, n Node, name, prev string) {
	id := name
	if prev != "" {
		id = prev + "-" + name
	}
	label := n.Describe()
	if prev != "" {
		label += " [input " + name + "]"
	} else {
		label += " [output " + name + "]"
	}
	sb.WriteString("\t\"" + id + "\" [label=\"" + escapeLabel(label) + "\"];\n")
	if prev != "" {
		sb.WriteString("\t\"" + id + "\" -> \"" + prev + "\";\n")
	}
	for i, child := range n.Children() {
		writeVertex(sb, child, slotNames[i], id)
	}
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}
