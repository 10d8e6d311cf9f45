package callgraph

import (
	"sort"
	"strings"

	"github.com/callroute/callroute/pkg/models"
)

// EntryPoints returns every declared callable with no discovered caller,
// sorted, annotated with an inferred kind and the number of callables
// forward-reachable from it.
func (g *Graph) EntryPoints() []models.EntryPoint {
	var entries []models.EntryPoint
	for id, info := range g.Declared {
		if len(g.Reverse[id]) > 0 {
			continue
		}
		entries = append(entries, models.EntryPoint{
			ID:        id,
			Kind:      inferKind(id, info),
			Reachable: g.reachableFrom(id),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID.String() < entries[j].ID.String() })
	return entries
}

// EntryPointIDs returns just the zero-caller ids, sorted.
func (g *Graph) EntryPointIDs() []models.ExecutableID {
	var ids []models.ExecutableID
	for id := range g.Declared {
		if len(g.Reverse[id]) == 0 {
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}

// ForwardRoots computes the forward traversal roots by in-degree: declared
// callables that appear in no forward callee set.
func (g *Graph) ForwardRoots() []models.ExecutableID {
	called := make(map[models.ExecutableID]bool)
	for _, callees := range g.Forward {
		for callee := range callees {
			called[callee] = true
		}
	}
	var roots []models.ExecutableID
	for id := range g.Declared {
		if !called[id] {
			roots = append(roots, id)
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i].String() < roots[j].String() })
	return roots
}

func inferKind(id models.ExecutableID, info models.CallableInfo) models.EntryPointKind {
	switch {
	case id.Name == "main":
		return models.EntryKindMain
	case id.Name == "init":
		return models.EntryKindInit
	case strings.HasPrefix(id.Name, "Test") && strings.HasSuffix(info.File, "_test.go"):
		return models.EntryKindTest
	case info.Exported:
		return models.EntryKindExported
	default:
		return models.EntryKindInternal
	}
}

// reachableFrom counts the callables forward-reachable from an entry point.
func (g *Graph) reachableFrom(id models.ExecutableID) int {
	seen := make(map[models.ExecutableID]bool)
	g.markReachable(id, seen)
	return len(seen) - 1 // exclude the entry point itself
}

func (g *Graph) markReachable(id models.ExecutableID, seen map[models.ExecutableID]bool) {
	if seen[id] {
		return
	}
	seen[id] = true
	for callee := range g.Forward[id] {
		g.markReachable(callee, seen)
	}
}
