// Package callgraph builds the bidirectional call graph: a forward map from
// caller to callees and a reverse map from callee to the call sites that
// invoke it, over one immutable source scan.
package callgraph

import (
	"sort"

	"github.com/callroute/callroute/pkg/config"
	"github.com/callroute/callroute/pkg/models"
	"github.com/callroute/callroute/pkg/sourcemodel"
)

// Graph holds the result of one build pass. It is constructed exactly once
// per analysis run and read-only afterwards.
type Graph struct {
	// Forward maps caller id to the set of callee ids it invokes. Every
	// declared callable has an entry even when it calls nothing; absence
	// means "never scanned", not "calls nothing".
	Forward map[models.ExecutableID]map[models.ExecutableID]bool

	// Reverse maps callee id to the call sites that invoke it. A callee
	// with no entry has zero known callers.
	Reverse map[models.ExecutableID][]*models.CallSite

	// Declared is the set of all declared callables with enrichment info.
	Declared map[models.ExecutableID]models.CallableInfo

	// Sites are the call sites retained after exclusion filtering, in
	// scan order.
	Sites []*models.CallSite
}

// Build runs the single graph-construction pass over a scanned model.
// Callees in excluded namespaces are dropped entirely; unresolvable callees
// are kept under their sentinel ids so "could not resolve" stays visible in
// reports. Build performs no I/O and never fails.
func Build(m *sourcemodel.Model, cfg *config.Config) *Graph {
	g := &Graph{
		Forward:  make(map[models.ExecutableID]map[models.ExecutableID]bool, len(m.Callables)),
		Reverse:  make(map[models.ExecutableID][]*models.CallSite),
		Declared: make(map[models.ExecutableID]models.CallableInfo, len(m.Callables)),
	}

	for _, info := range m.Callables {
		g.Declared[info.ID] = info
		if g.Forward[info.ID] == nil {
			g.Forward[info.ID] = make(map[models.ExecutableID]bool)
		}
	}

	for _, site := range m.Sites {
		// Declared callables are never excluded; the prefix rule targets
		// platform namespaces only.
		if _, declared := g.Declared[site.Callee]; !declared {
			if cfg != nil && cfg.IsExcludedOwner(site.Callee.Owner) {
				continue
			}
		}
		g.Sites = append(g.Sites, site)
		if site.HasCaller {
			if g.Forward[site.Caller] == nil {
				g.Forward[site.Caller] = make(map[models.ExecutableID]bool)
			}
			g.Forward[site.Caller][site.Callee] = true
		}
		g.Reverse[site.Callee] = append(g.Reverse[site.Callee], site)
	}

	return g
}

// CallersOf returns the call sites invoking the given callable.
func (g *Graph) CallersOf(id models.ExecutableID) []*models.CallSite {
	return g.Reverse[id]
}

// CalleesOf returns the callables invoked by the given caller, sorted for
// deterministic traversal.
func (g *Graph) CalleesOf(id models.ExecutableID) []models.ExecutableID {
	return sortedIDs(g.Forward[id])
}

func sortedIDs(set map[models.ExecutableID]bool) []models.ExecutableID {
	ids := make([]models.ExecutableID, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i].String() < ids[j].String() })
	return ids
}
