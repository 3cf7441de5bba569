package settlement

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// WriteDOT writes the graph in Graphviz DOT format. Nodes are labeled with the
// participant identifier and edges with the formatted amount.
func (g *Graph) WriteDOT(w io.Writer) error {
	var b strings.Builder
	b.WriteString("digraph {\n")
	for i, p := range g.nodes {
		fmt.Fprintf(&b, "    %d [ label = %s ]\n", i, strconv.Quote(p.Identifier()))
	}
	for _, key := range g.sortedKeys() {
		fmt.Fprintf(&b, "    %d -> %d [ label = %s ]\n", key.from, key.to, strconv.Quote(g.edges[key].String()))
	}
	b.WriteString("}\n")

	_, err := io.WriteString(w, b.String())
	return err
}
