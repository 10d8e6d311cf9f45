package routes

import (
	"testing"

	"github.com/callroute/callroute/pkg/analysis/callgraph"
	"github.com/callroute/callroute/pkg/models"
	"github.com/callroute/callroute/pkg/sourcemodel"
)

func id(name string) models.ExecutableID {
	return models.ExecutableID{Owner: "example.com/app", Name: name, Signature: "()"}
}

func site(caller, callee models.ExecutableID) *models.CallSite {
	return &models.CallSite{Caller: caller, HasCaller: true, Callee: callee, File: "app.go", Line: 1}
}

func fixture(callables []models.ExecutableID, sites []*models.CallSite) (*sourcemodel.Model, *callgraph.Graph) {
	m := &sourcemodel.Model{Sites: sites}
	for _, c := range callables {
		m.Callables = append(m.Callables, models.CallableInfo{ID: c})
	}
	return m, callgraph.Build(m, nil)
}

func callerNames(route models.Route) []string {
	names := make([]string, len(route.Steps))
	for i, step := range route.Steps {
		names[i] = step.Caller.Name
	}
	return names
}

func TestTraceTwoRoutes(t *testing.T) {
	a, b, c, d := id("a"), id("b"), id("c"), id("d")
	target := site(b, c)
	m, g := fixture(
		[]models.ExecutableID{a, b, c, d},
		[]*models.CallSite{site(a, b), site(d, b), target},
	)

	res := NewTracer(m, g, 0, 0).Trace(target)

	if res.Target != c {
		t.Errorf("Target = %s, expected c", res.Target)
	}
	if len(res.Routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(res.Routes))
	}

	// Entry point first, target's direct caller last.
	first, second := res.Routes[0], res.Routes[1]
	if got := callerNames(first); got[0] != "a" || got[1] != "b" {
		t.Errorf("route 1 callers = %v, expected [a b]", got)
	}
	if got := callerNames(second); got[0] != "d" || got[1] != "b" {
		t.Errorf("route 2 callers = %v, expected [d b]", got)
	}
	if first.Steps[0].Note != models.NoteEntryPoint {
		t.Errorf("route 1 first step note = %v, expected entry point", first.Steps[0].Note)
	}
	if first.Steps[1].Note != models.NoteNone {
		t.Errorf("route 1 second step note = %v, expected none", first.Steps[1].Note)
	}

	if len(res.EntryPoints) != 2 || res.EntryPoints[0] != a || res.EntryPoints[1] != d {
		t.Errorf("EntryPoints = %v, expected [a d]", res.EntryPoints)
	}
	if res.Truncated || res.TopLevel {
		t.Error("expected neither truncation nor top-level flags")
	}
}

func TestTraceSelfRecursion(t *testing.T) {
	a := id("a")
	target := site(a, a)
	m, g := fixture([]models.ExecutableID{a}, []*models.CallSite{target})

	res := NewTracer(m, g, 0, 0).Trace(target)

	if len(res.Routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(res.Routes))
	}
	steps := res.Routes[0].Steps
	if len(steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(steps))
	}
	if steps[0].Note != models.NoteRecursiveCall {
		t.Errorf("first step note = %v, expected recursive call", steps[0].Note)
	}
	if len(res.EntryPoints) != 0 {
		t.Errorf("expected no entry points on a pure cycle, got %v", res.EntryPoints)
	}
}

func TestTraceMutualRecursion(t *testing.T) {
	main, a, b := id("main"), id("a"), id("b")
	target := site(a, b)
	m, g := fixture(
		[]models.ExecutableID{main, a, b},
		[]*models.CallSite{site(main, a), target, site(b, a)},
	)

	res := NewTracer(m, g, 0, 0).Trace(target)

	if len(res.Routes) != 2 {
		t.Fatalf("expected 2 routes, got %d", len(res.Routes))
	}

	var sawEntry, sawCycle bool
	for _, route := range res.Routes {
		switch route.Steps[0].Note {
		case models.NoteEntryPoint:
			sawEntry = true
		case models.NoteRecursiveCall:
			sawCycle = true
		}
	}
	if !sawEntry || !sawCycle {
		t.Errorf("expected one entry-point route and one cycle-truncated route")
	}
}

func TestTraceDiamondRevisitsAcrossBranches(t *testing.T) {
	main, a, b, c, leaf := id("main"), id("a"), id("b"), id("c"), id("leaf")
	target := site(c, leaf)
	m, g := fixture(
		[]models.ExecutableID{main, a, b, c, leaf},
		[]*models.CallSite{site(main, a), site(main, b), site(a, c), site(b, c), target},
	)

	res := NewTracer(m, g, 0, 0).Trace(target)

	// The visited set is branch-local, so main heads both routes.
	if len(res.Routes) != 2 {
		t.Fatalf("expected 2 routes through the diamond, got %d", len(res.Routes))
	}
	for i, route := range res.Routes {
		if route.Steps[0].Caller != main {
			t.Errorf("route %d must start at main, got %s", i+1, route.Steps[0].Caller)
		}
	}
	if len(res.EntryPoints) != 1 || res.EntryPoints[0] != main {
		t.Errorf("EntryPoints = %v, expected [main] deduplicated", res.EntryPoints)
	}
}

func TestTraceTopLevelSite(t *testing.T) {
	b := id("b")
	target := &models.CallSite{Callee: b, File: "app.go", Line: 3}
	m, g := fixture([]models.ExecutableID{b}, []*models.CallSite{target})

	res := NewTracer(m, g, 0, 0).Trace(target)

	if !res.TopLevel {
		t.Error("expected top-level flag")
	}
	if len(res.Routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(res.Routes))
	}
	steps := res.Routes[0].Steps
	if len(steps) != 1 || steps[0].Note != models.NoteTopLevel {
		t.Errorf("expected single top-level step, got %v", steps)
	}
	if !steps[0].Caller.IsZero() {
		t.Errorf("top-level step must carry the zero caller, got %s", steps[0].Caller)
	}
}

func TestTraceMaxRoutes(t *testing.T) {
	a, b, c, d := id("a"), id("b"), id("c"), id("d")
	target := site(b, c)
	m, g := fixture(
		[]models.ExecutableID{a, b, c, d},
		[]*models.CallSite{site(a, b), site(d, b), target},
	)

	res := NewTracer(m, g, 1, 0).Trace(target)

	if len(res.Routes) != 1 {
		t.Fatalf("expected enumeration capped at 1 route, got %d", len(res.Routes))
	}
	if !res.Truncated {
		t.Error("expected truncation flag")
	}
}

func TestTraceMaxDepth(t *testing.T) {
	a, b, c := id("a"), id("b"), id("c")
	target := site(b, c)
	m, g := fixture(
		[]models.ExecutableID{a, b, c},
		[]*models.CallSite{site(a, b), target},
	)

	res := NewTracer(m, g, 0, 1).Trace(target)

	if len(res.Routes) != 0 {
		t.Errorf("expected no complete routes under the depth cap, got %d", len(res.Routes))
	}
	if !res.Truncated {
		t.Error("expected truncation flag")
	}
}

func TestTraceByPattern(t *testing.T) {
	a, b, c := id("a"), id("b"), id("c")
	m, g := fixture(
		[]models.ExecutableID{a, b, c},
		[]*models.CallSite{site(a, b), site(b, c)},
	)
	tracer := NewTracer(m, g, 0, 0)

	results, err := tracer.TraceByPattern("^c$")
	if err != nil {
		t.Fatalf("TraceByPattern() error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 matched site, got %d", len(results))
	}
	if results[0].Target != c {
		t.Errorf("matched target = %s, expected c", results[0].Target)
	}

	results, err = tracer.TraceByPattern("nomatch")
	if err != nil {
		t.Fatalf("TraceByPattern() error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no matches, got %d", len(results))
	}
}

func TestTraceByPatternInvalid(t *testing.T) {
	m, g := fixture(nil, nil)
	if _, err := NewTracer(m, g, 0, 0).TraceByPattern("("); err == nil {
		t.Error("expected error for invalid pattern")
	}
}
