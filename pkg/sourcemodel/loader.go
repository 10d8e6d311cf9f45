package sourcemodel

import (
	"fmt"
	"go/token"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/tools/go/packages"
)

// Loader loads the packages under one or more source roots and scans them
// into a Model.
type Loader struct {
	logger  *slog.Logger
	verbose bool
}

// NewLoader creates a new source-model loader
func NewLoader(verbose bool) *Loader {
	return &Loader{
		logger:  slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})),
		verbose: verbose,
	}
}

// Load loads the given package patterns (or directories) with full syntax
// and type information, including dependencies, and scans the module-local
// packages. Unloadable roots are an error; partially unresolved code is not.
func (l *Loader) Load(roots []string) (*Model, error) {
	if len(roots) == 0 {
		return nil, fmt.Errorf("no source roots given")
	}

	cfg := &packages.Config{
		Mode: packages.LoadAllSyntax | packages.NeedModule,
		Fset: token.NewFileSet(),
	}

	if l.verbose {
		l.logger.Info("loading packages", "roots", strings.Join(roots, ","))
	}

	pkgs, err := packages.Load(cfg, roots...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}
	if len(pkgs) == 0 {
		return nil, fmt.Errorf("no packages matched %v", roots)
	}
	if err := loadErrors(pkgs); err != nil {
		return nil, err
	}

	m := newModel(cfg.Fset)
	m.ModulePath, m.ModuleDir = moduleInfo(pkgs, roots)

	scanned := 0
	for _, pkg := range pkgs {
		if !l.isAnalyzedPackage(pkg, m.ModulePath) {
			continue
		}
		m.scanPackage(pkg.PkgPath, pkg.Syntax, pkg.TypesInfo)
		scanned++
	}

	if l.verbose {
		l.logger.Info("source scan complete",
			"packages", scanned,
			"callables", len(m.Callables),
			"call_sites", len(m.Sites))
	}

	return m, nil
}

// loadErrors surfaces structural loading failures (unresolvable roots,
// unparseable files). Type-check errors are tolerated: the scanner degrades
// unresolved callees to sentinel ids instead.
func loadErrors(pkgs []*packages.Package) error {
	n := 0
	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			if e.Kind == packages.TypeError {
				continue
			}
			fmt.Fprintln(os.Stderr, e)
			n++
		}
	})
	if n > 0 {
		return fmt.Errorf("%d errors encountered during package loading", n)
	}
	return nil
}

// isAnalyzedPackage keeps the scan to the analyzed module; dependency
// packages stay loaded for type resolution only.
func (l *Loader) isAnalyzedPackage(pkg *packages.Package, modulePath string) bool {
	if modulePath == "" {
		return true
	}
	if pkg.Module != nil {
		return pkg.Module.Path == modulePath
	}
	return pkg.PkgPath == modulePath || strings.HasPrefix(pkg.PkgPath, modulePath+"/")
}

// moduleInfo resolves the analyzed module's path and root directory, first
// from the loaded package metadata, then by locating go.mod above the first
// source root.
func moduleInfo(pkgs []*packages.Package, roots []string) (string, string) {
	for _, pkg := range pkgs {
		if pkg.Module != nil && pkg.Module.Path != "" {
			return pkg.Module.Path, pkg.Module.Dir
		}
	}
	return moduleInfoFromDir(roots[0])
}

func moduleInfoFromDir(root string) (string, string) {
	dir, err := filepath.Abs(strings.TrimSuffix(root, "/..."))
	if err != nil {
		return "", ""
	}
	for {
		data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
		if err == nil {
			return modfile.ModulePath(data), dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ""
		}
		dir = parent
	}
}
