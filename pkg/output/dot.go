package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/callroute/callroute/pkg/analysis/callgraph"
	"github.com/callroute/callroute/pkg/models"
)

// WriteDOT serializes the forward graph as Graphviz markup. Entry points
// render double-circled, unresolved callees dashed.
func WriteDOT(w io.Writer, g *callgraph.Graph) error {
	var b strings.Builder
	b.WriteString("digraph callgraph {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box, fontname=\"monospace\"];\n")

	entry := make(map[models.ExecutableID]bool)
	for _, id := range g.EntryPointIDs() {
		entry[id] = true
	}

	seen := make(map[models.ExecutableID]bool)
	node := func(id models.ExecutableID) {
		if seen[id] {
			return
		}
		seen[id] = true
		switch {
		case id.IsUnresolved():
			fmt.Fprintf(&b, "  %s [style=dashed];\n", dotQuote(id))
		case entry[id]:
			fmt.Fprintf(&b, "  %s [peripheries=2];\n", dotQuote(id))
		default:
			fmt.Fprintf(&b, "  %s;\n", dotQuote(id))
		}
	}

	for _, caller := range sortedKeys(g.Forward) {
		node(caller)
		for _, callee := range g.CalleesOf(caller) {
			node(callee)
			fmt.Fprintf(&b, "  %s -> %s;\n", dotQuote(caller), dotQuote(callee))
		}
	}

	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func dotQuote(id models.ExecutableID) string {
	return `"` + strings.ReplaceAll(id.String(), `"`, `\"`) + `"`
}

func sortedKeys(m map[models.ExecutableID]map[models.ExecutableID]bool) []models.ExecutableID {
	ids := make([]models.ExecutableID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	// Deterministic output regardless of map order.
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}
