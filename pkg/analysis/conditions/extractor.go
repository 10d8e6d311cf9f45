// Package conditions extracts the ordered branch predicates that govern
// reaching a call site: the if/else chains, switch and select arms, and
// loops between the call and its enclosing function declaration.
package conditions

import (
	"bytes"
	"go/ast"
	"go/printer"
	"go/token"
	"go/types"
	"strings"
)

// NoCondition is the downstream rendering of an empty condition list.
const NoCondition = "no condition (direct scope)"

// Extract walks a call site's ancestor path (innermost node first, as
// produced by Model.PathTo) up to the enclosing function declaration and
// returns the governing predicates, outermost first. Function literals are
// walked through: a call inside a closure is governed by the branches
// around the closure in its declaring function.
func Extract(fset *token.FileSet, path []ast.Node) []string {
	var conds []string

	for i := 0; i+1 < len(path); i++ {
		child := path[i]
		parent := path[i+1]

		if _, ok := parent.(*ast.FuncDecl); ok {
			break
		}

		switch p := parent.(type) {
		case *ast.IfStmt:
			if c := ifCondition(path, i, p, child); c != "" {
				conds = append(conds, c)
			}
		case *ast.CaseClause:
			if !containsStmt(p.Body, child) {
				continue
			}
			conds = append(conds, caseCondition(path[i+2:], p))
		case *ast.CommClause:
			if !containsStmt(p.Body, child) {
				continue
			}
			conds = append(conds, commCondition(fset, p))
		case *ast.ForStmt:
			if child == p.Body {
				conds = append(conds, forCondition(p))
			}
		case *ast.RangeStmt:
			if child == p.Body {
				conds = append(conds, "for range "+types.ExprString(p.X))
			}
		}
	}

	// Collected bottom-up; the contract is outermost first.
	for l, r := 0, len(conds)-1; l < r; l, r = l+1, r-1 {
		conds[l], conds[r] = conds[r], conds[l]
	}
	return conds
}

// ifCondition classifies which arm of an if statement the path descends
// through. The then-arm of an if hanging off an enclosing else renders as
// "else if"; the else-arm is suppressed when the descended child is itself
// an if statement, since that hop was already captured as "else if" one
// level down. The suppression applies only when the if IS the else node
// (the sole-statement chaining form); an if nested inside an else block
// still gets its "else (...)" predicate.
func ifCondition(path []ast.Node, i int, p *ast.IfStmt, child ast.Node) string {
	cond := types.ExprString(p.Cond)

	switch child {
	case p.Body:
		if i+2 < len(path) {
			if gp, ok := path[i+2].(*ast.IfStmt); ok && gp.Else == p {
				return "else if (" + cond + ")"
			}
		}
		return "if (" + cond + ")"
	case p.Else:
		if _, ok := child.(*ast.IfStmt); ok {
			return ""
		}
		return "else (" + cond + ")"
	}
	// Init or Cond position: not a governed branch.
	return ""
}

// caseCondition renders a switch arm as "case <selector> == <labels>",
// prefixing the labels of any directly preceding arms that hand control
// down via an explicit fallthrough, in declaration order. A default arm
// contributes the literal "default" token.
func caseCondition(ancestors []ast.Node, cc *ast.CaseClause) string {
	var sw ast.Stmt
	var body []ast.Stmt
	for _, anc := range ancestors {
		switch s := anc.(type) {
		case *ast.SwitchStmt:
			sw, body = s, s.Body.List
		case *ast.TypeSwitchStmt:
			sw, body = s, s.Body.List
		}
		if sw != nil {
			break
		}
	}

	labels := caseLabels(cc)
	if body != nil {
		idx := -1
		for j, stmt := range body {
			if stmt == ast.Stmt(cc) {
				idx = j
				break
			}
		}
		for j := idx - 1; j >= 0; j-- {
			prev, ok := body[j].(*ast.CaseClause)
			if !ok || !endsWithFallthrough(prev.Body) {
				break
			}
			labels = append(caseLabels(prev), labels...)
		}
	}

	if len(labels) == 1 && labels[0] == "default" {
		return "case default"
	}
	return "case " + caseSelector(sw) + strings.Join(labels, ", ")
}

func caseLabels(cc *ast.CaseClause) []string {
	if len(cc.List) == 0 {
		return []string{"default"}
	}
	labels := make([]string, len(cc.List))
	for i, expr := range cc.List {
		labels[i] = types.ExprString(expr)
	}
	return labels
}

func caseSelector(sw ast.Stmt) string {
	switch s := sw.(type) {
	case *ast.SwitchStmt:
		if s.Tag != nil {
			return types.ExprString(s.Tag) + " == "
		}
	case *ast.TypeSwitchStmt:
		if ta := typeSwitchAssert(s); ta != nil {
			return types.ExprString(ta.X) + ".(type) == "
		}
	}
	return ""
}

func typeSwitchAssert(s *ast.TypeSwitchStmt) *ast.TypeAssertExpr {
	switch a := s.Assign.(type) {
	case *ast.ExprStmt:
		if ta, ok := a.X.(*ast.TypeAssertExpr); ok {
			return ta
		}
	case *ast.AssignStmt:
		if len(a.Rhs) == 1 {
			if ta, ok := a.Rhs[0].(*ast.TypeAssertExpr); ok {
				return ta
			}
		}
	}
	return nil
}

func endsWithFallthrough(body []ast.Stmt) bool {
	if len(body) == 0 {
		return false
	}
	br, ok := body[len(body)-1].(*ast.BranchStmt)
	return ok && br.Tok == token.FALLTHROUGH
}

// commCondition renders a select arm. Go has no catch clause; the select
// arm is the structural analog of an exceptional branch here.
func commCondition(fset *token.FileSet, cm *ast.CommClause) string {
	if cm.Comm == nil {
		return "case default"
	}
	return "case " + stmtString(fset, cm.Comm)
}

func forCondition(p *ast.ForStmt) string {
	if p.Cond == nil {
		return "for (;;)"
	}
	return "for (" + types.ExprString(p.Cond) + ")"
}

func stmtString(fset *token.FileSet, stmt ast.Stmt) string {
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, fset, stmt); err != nil {
		return "?"
	}
	return buf.String()
}

func containsStmt(body []ast.Stmt, n ast.Node) bool {
	for _, stmt := range body {
		if ast.Node(stmt) == n {
			return true
		}
	}
	return false
}
