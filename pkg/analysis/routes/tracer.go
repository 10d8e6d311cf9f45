// Package routes enumerates every distinct path from a program's entry
// points down to a target call site, walking the reverse call graph
// backwards with cycle truncation.
package routes

import (
	"fmt"
	"regexp"

	"github.com/callroute/callroute/pkg/analysis/callgraph"
	"github.com/callroute/callroute/pkg/analysis/conditions"
	"github.com/callroute/callroute/pkg/models"
	"github.com/callroute/callroute/pkg/sourcemodel"
)

// Tracer performs cycle-safe backward traversal over a built graph. The
// graphs are read-only during tracing; all mutable state is branch-local.
type Tracer struct {
	model *sourcemodel.Model
	graph *callgraph.Graph

	// MaxRoutes and MaxDepth bound enumeration on pathologically
	// reconverging graphs; exceeding either truncates emission without
	// failing the analysis. Zero means unbounded.
	MaxRoutes int
	MaxDepth  int
}

// NewTracer creates a tracer over one scanned model and its graph.
func NewTracer(model *sourcemodel.Model, graph *callgraph.Graph, maxRoutes, maxDepth int) *Tracer {
	return &Tracer{model: model, graph: graph, MaxRoutes: maxRoutes, MaxDepth: maxDepth}
}

// TraceResult aggregates every route discovered for one target call site.
type TraceResult struct {
	Site        *models.CallSite      `json:"site"`
	Target      models.ExecutableID   `json:"target"`
	Routes      []models.Route        `json:"routes"`
	EntryPoints []models.ExecutableID `json:"entry_points"`
	TopLevel    bool                  `json:"top_level,omitempty"`
	Truncated   bool                  `json:"truncated,omitempty"`
}

// Trace enumerates every distinct route from an entry point down to the
// given call site. Routes come back entry-point-first; the distinct entry
// points reached are collected alongside.
func (t *Tracer) Trace(start *models.CallSite) *TraceResult {
	st := &traceState{
		visited:   make(map[models.ExecutableID]bool),
		entrySeen: make(map[models.ExecutableID]bool),
	}
	t.traverseUp(start, start.Callee, st)

	return &TraceResult{
		Site:        start,
		Target:      start.Callee,
		Routes:      st.routes,
		EntryPoints: st.entries,
		TopLevel:    st.topLevel,
		Truncated:   st.truncated,
	}
}

// TraceByPattern traces every retained call site whose callee matches the
// pattern, against either the full id or the simple name.
func (t *Tracer) TraceByPattern(pattern string) ([]*TraceResult, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid target pattern %q: %w", pattern, err)
	}

	var results []*TraceResult
	for _, site := range t.graph.Sites {
		if re.MatchString(site.Callee.String()) || re.MatchString(site.Callee.Name) {
			results = append(results, t.Trace(site))
		}
	}
	return results, nil
}

// traceState carries one traversal's accumulator. The visited set is
// branch-local: a caller is held only while its subtree is being explored,
// so the same callable may reappear on non-overlapping branches of a
// diamond-shaped graph.
type traceState struct {
	visited   map[models.ExecutableID]bool
	steps     []models.RouteStep // target-first during traversal
	routes    []models.Route
	entries   []models.ExecutableID
	entrySeen map[models.ExecutableID]bool
	topLevel  bool
	truncated bool
}

func (t *Tracer) traverseUp(site *models.CallSite, target models.ExecutableID, st *traceState) {
	if t.MaxRoutes > 0 && len(st.routes) >= t.MaxRoutes {
		st.truncated = true
		return
	}

	// Conditions belong to the call site, not the callable: they describe
	// what must hold at the calling statement.
	conds := t.conditionsFor(site)

	if !site.HasCaller {
		st.emit(target, models.RouteStep{Conditions: conds, Note: models.NoteTopLevel})
		st.topLevel = true
		return
	}

	caller := site.Caller
	if st.visited[caller] {
		st.emit(target, models.RouteStep{Caller: caller, Conditions: conds, Note: models.NoteRecursiveCall})
		return
	}

	if t.MaxDepth > 0 && len(st.steps) >= t.MaxDepth {
		st.truncated = true
		return
	}

	callerSites := t.graph.Reverse[caller]
	if len(callerSites) == 0 {
		st.emit(target, models.RouteStep{Caller: caller, Conditions: conds, Note: models.NoteEntryPoint})
		st.addEntry(caller)
		return
	}

	st.visited[caller] = true
	st.steps = append(st.steps, models.RouteStep{Caller: caller, Conditions: conds})
	for _, inv := range callerSites {
		t.traverseUp(inv, target, st)
	}
	st.steps = st.steps[:len(st.steps)-1]
	delete(st.visited, caller)
}

func (t *Tracer) conditionsFor(site *models.CallSite) []string {
	return conditions.Extract(t.model.Fset, t.model.PathTo(site))
}

// emit completes one route: the accumulated target-first steps plus the
// terminal step, reversed so the entry point comes first.
func (st *traceState) emit(target models.ExecutableID, terminal models.RouteStep) {
	steps := make([]models.RouteStep, 0, len(st.steps)+1)
	steps = append(steps, st.steps...)
	steps = append(steps, terminal)
	for l, r := 0, len(steps)-1; l < r; l, r = l+1, r-1 {
		steps[l], steps[r] = steps[r], steps[l]
	}
	st.routes = append(st.routes, models.Route{Target: target, Steps: steps})
}

func (st *traceState) addEntry(id models.ExecutableID) {
	if st.entrySeen[id] {
		return
	}
	st.entrySeen[id] = true
	st.entries = append(st.entries, id)
}
