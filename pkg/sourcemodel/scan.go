package sourcemodel

import (
	"go/ast"
	"go/token"
	"go/types"
	"path/filepath"
	"strings"

	"golang.org/x/tools/go/types/typeutil"

	"github.com/callroute/callroute/pkg/models"
	"github.com/callroute/callroute/pkg/utils"
)

// scanPackage walks one package's syntax, registering declared callables and
// collecting call sites. It never fails: unresolvable callees degrade to
// sentinel ids and missing positions fall back to enclosing nodes.
func (m *Model) scanPackage(pkgPath string, files []*ast.File, info *types.Info) {
	for _, file := range files {
		for _, decl := range file.Decls {
			switch d := decl.(type) {
			case *ast.FuncDecl:
				id := m.declID(pkgPath, d, info)
				fileName, line := m.positionFor(d.Name, d)
				m.addCallable(models.CallableInfo{
					ID:       id,
					Exported: d.Name.IsExported(),
					Doc:      utils.FirstSentence(d.Doc.Text()),
					File:     fileName,
					Line:     line,
				})
				if d.Body != nil {
					m.collectCalls(d.Body, file, info, id, true)
				}
			case *ast.GenDecl:
				// Package-level initializer expressions run with no
				// enclosing callable: their call sites are top level.
				if d.Tok != token.VAR {
					continue
				}
				for _, spec := range d.Specs {
					vs, ok := spec.(*ast.ValueSpec)
					if !ok {
						continue
					}
					for _, value := range vs.Values {
						m.collectCalls(value, file, info, models.ExecutableID{}, false)
					}
				}
			}
		}
	}
}

// collectCalls records every call expression under root, attributed to the
// given caller. Calls inside function literals are attributed to the
// declaring callable.
func (m *Model) collectCalls(root ast.Node, file *ast.File, info *types.Info, caller models.ExecutableID, hasCaller bool) {
	ast.Inspect(root, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		callee, ok := m.calleeID(call, info)
		if !ok {
			return true
		}
		fileName, line := m.positionFor(call, root)
		m.Sites = append(m.Sites, &models.CallSite{
			Caller:     caller,
			HasCaller:  hasCaller,
			Callee:     callee,
			File:       fileName,
			Line:       line,
			Call:       call,
			SyntaxFile: file,
		})
		return true
	})
}

// calleeID resolves a call expression to a callee identity. Type conversions
// and builtins yield no call site; anything else that cannot be mapped to a
// declared function yields the sentinel id carrying the raw call text.
func (m *Model) calleeID(call *ast.CallExpr, info *types.Info) (models.ExecutableID, bool) {
	if info != nil {
		if tv, ok := info.Types[call.Fun]; ok && tv.IsType() {
			return models.ExecutableID{}, false
		}
		switch obj := typeutil.Callee(info, call).(type) {
		case *types.Builtin:
			return models.ExecutableID{}, false
		case *types.Func:
			return IDForFunc(obj), true
		}
	}
	return models.Unresolved(types.ExprString(call.Fun)), true
}

// declID derives the identity of a declared function or method.
func (m *Model) declID(pkgPath string, d *ast.FuncDecl, info *types.Info) models.ExecutableID {
	if info != nil {
		if fn, ok := info.Defs[d.Name].(*types.Func); ok {
			return IDForFunc(fn)
		}
	}
	// Degraded fallback when type information is absent.
	return models.ExecutableID{Owner: pkgPath, Name: d.Name.Name, Signature: "()"}
}

// IDForFunc builds the canonical ExecutableID for a resolved function
// object. Methods fold the receiver type into the owner; generic
// instantiations normalize to their origin so every call site of an
// instantiated function maps to the same declared callable.
func IDForFunc(fn *types.Func) models.ExecutableID {
	fn = fn.Origin()

	owner := ""
	var qual types.Qualifier
	if fn.Pkg() != nil {
		owner = fn.Pkg().Path()
		qual = types.RelativeTo(fn.Pkg())
	}

	sig, _ := fn.Type().(*types.Signature)
	if sig != nil && sig.Recv() != nil {
		t := sig.Recv().Type()
		if ptr, ok := t.(*types.Pointer); ok {
			t = ptr.Elem()
		}
		if named, ok := t.(*types.Named); ok {
			owner += "." + named.Obj().Name()
		}
	}

	return models.ExecutableID{
		Owner:     owner,
		Name:      fn.Name(),
		Signature: signatureString(sig, qual),
	}
}

func signatureString(sig *types.Signature, qual types.Qualifier) string {
	if sig == nil {
		return "()"
	}
	params := sig.Params()
	parts := make([]string, 0, params.Len())
	for i := 0; i < params.Len(); i++ {
		s := types.TypeString(params.At(i).Type(), qual)
		if sig.Variadic() && i == params.Len()-1 && strings.HasPrefix(s, "[]") {
			s = "..." + s[2:]
		}
		parts = append(parts, s)
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// positionFor resolves a node's source position, falling back through the
// provided ancestors when position data is absent. The empty result renders
// downstream as the explicit unknown marker.
func (m *Model) positionFor(nodes ...ast.Node) (string, int) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		pos := m.Fset.Position(n.Pos())
		if !pos.IsValid() {
			continue
		}
		name := pos.Filename
		if m.ModuleDir != "" {
			if rel, err := filepath.Rel(m.ModuleDir, name); err == nil && !strings.HasPrefix(rel, "..") {
				name = rel
			}
		}
		return name, pos.Line
	}
	return "", 0
}
