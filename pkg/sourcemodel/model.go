// Package sourcemodel is the AST/semantic collaborator behind the analysis
// engine: it loads Go packages, resolves call expressions to callee
// identities, and provides ancestor navigation over the syntax trees. The
// graph builder and route tracer consume it only through Model.
package sourcemodel

import (
	"go/ast"
	"go/token"

	"golang.org/x/tools/go/ast/astutil"

	"github.com/callroute/callroute/pkg/models"
)

// Model is the immutable result of one source scan: every declared callable
// and every discovered call site of the analyzed module.
type Model struct {
	Fset       *token.FileSet
	ModulePath string
	ModuleDir  string

	Callables []models.CallableInfo
	Sites     []*models.CallSite

	byID map[models.ExecutableID]int
}

func newModel(fset *token.FileSet) *Model {
	return &Model{
		Fset: fset,
		byID: make(map[models.ExecutableID]int),
	}
}

// Callable looks up the declared callable for an id.
func (m *Model) Callable(id models.ExecutableID) (models.CallableInfo, bool) {
	i, ok := m.byID[id]
	if !ok {
		return models.CallableInfo{}, false
	}
	return m.Callables[i], true
}

// PathTo returns the ancestor chain of a call site, innermost node first,
// sufficient for the condition extractor's upward walk.
func (m *Model) PathTo(site *models.CallSite) []ast.Node {
	if site == nil || site.SyntaxFile == nil || site.Call == nil {
		return nil
	}
	path, _ := astutil.PathEnclosingInterval(site.SyntaxFile, site.Call.Pos(), site.Call.End())
	return path
}

func (m *Model) addCallable(info models.CallableInfo) {
	if _, ok := m.byID[info.ID]; ok {
		return
	}
	m.byID[info.ID] = len(m.Callables)
	m.Callables = append(m.Callables, info)
}
