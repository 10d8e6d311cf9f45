package sourcemodel

import (
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
)

// ParseSource builds a Model from a single in-memory Go file. Type-check
// errors are tolerated: unresolved symbols degrade to sentinel callee ids,
// matching the loader's behavior on partially broken code. Intended for
// small self-contained inputs and tests.
func ParseSource(filename, src string) (*Model, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, src, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}

	info := &types.Info{
		Types:      make(map[ast.Expr]types.TypeAndValue),
		Defs:       make(map[*ast.Ident]types.Object),
		Uses:       make(map[*ast.Ident]types.Object),
		Selections: make(map[*ast.SelectorExpr]*types.Selection),
		Implicits:  make(map[ast.Node]types.Object),
	}
	conf := types.Config{
		Importer: importer.Default(),
		Error:    func(error) {},
	}
	// The returned error is deliberately ignored: a partially resolved
	// package still yields usable syntax and definitions.
	_, _ = conf.Check(file.Name.Name, fset, []*ast.File{file}, info)

	m := newModel(fset)
	m.ModulePath = file.Name.Name
	m.scanPackage(file.Name.Name, []*ast.File{file}, info)
	return m, nil
}
