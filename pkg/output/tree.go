package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/callroute/callroute/pkg/analysis/callgraph"
	"github.com/callroute/callroute/pkg/models"
)

// Direction selects which half of the graph a tree traversal follows.
type Direction int

const (
	// Forward prints callees under callers.
	Forward Direction = iota
	// Reverse prints callers under callees.
	Reverse
)

// PrintTree prints root and its transitive callees (forward) or callers
// (reverse), one line per node, indentation proportional to depth. The
// visited set is per root: a node already printed under this root is
// marked and never re-expanded, which both deduplicates subtrees and
// terminates on cycles.
func PrintTree(w io.Writer, g *callgraph.Graph, root models.ExecutableID, dir Direction) error {
	visited := make(map[models.ExecutableID]bool)
	return printSubtree(w, g, root, dir, 0, visited)
}

// PrintForwardTrees prints one tree per forward root (callables never
// called by anything in the graph).
func PrintForwardTrees(w io.Writer, g *callgraph.Graph) error {
	for _, root := range g.ForwardRoots() {
		if err := PrintTree(w, g, root, Forward); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

// PrintReverseTrees prints one caller tree per callable that has callers.
func PrintReverseTrees(w io.Writer, g *callgraph.Graph) error {
	ids := make([]models.ExecutableID, 0, len(g.Reverse))
	for id := range g.Reverse {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })

	for _, id := range ids {
		if err := PrintTree(w, g, id, Reverse); err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}

func printSubtree(w io.Writer, g *callgraph.Graph, id models.ExecutableID, dir Direction, depth int, visited map[models.ExecutableID]bool) error {
	indent := strings.Repeat(indentUnit, depth)
	if visited[id] {
		_, err := fmt.Fprintf(w, "%s%s (revisited)\n", indent, id)
		return err
	}
	visited[id] = true

	if _, err := fmt.Fprintf(w, "%s%s\n", indent, id); err != nil {
		return err
	}

	for _, child := range children(g, id, dir) {
		if err := printSubtree(w, g, child, dir, depth+1, visited); err != nil {
			return err
		}
	}
	return nil
}

func children(g *callgraph.Graph, id models.ExecutableID, dir Direction) []models.ExecutableID {
	if dir == Forward {
		return g.CalleesOf(id)
	}

	seen := make(map[models.ExecutableID]bool)
	var callers []models.ExecutableID
	for _, site := range g.Reverse[id] {
		if !site.HasCaller || seen[site.Caller] {
			continue
		}
		seen[site.Caller] = true
		callers = append(callers, site.Caller)
	}
	sort.Slice(callers, func(i, j int) bool { return callers[i].String() < callers[j].String() })
	return callers
}
