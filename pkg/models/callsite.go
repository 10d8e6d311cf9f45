package models

import (
	"fmt"
	"go/ast"
)

// UnknownLocation is the final position fallback when neither a call
// expression nor any of its ancestors carries valid position data.
const UnknownLocation = "unknown"

// CallSite is a single textual location where one callable invokes another.
// Sites are created once during the graph-build scan and are immutable
// afterwards; they are owned by the graph indices.
type CallSite struct {
	// Caller is the enclosing callable. HasCaller is false for calls in
	// package-level initializers, which have no enclosing callable.
	Caller    ExecutableID `json:"caller"`
	HasCaller bool         `json:"has_caller"`
	Callee    ExecutableID `json:"callee"`
	File      string       `json:"file"`
	Line      int          `json:"line"`

	// Call and SyntaxFile anchor the site in the source model for the
	// condition extractor's upward walk. Not part of the report schema.
	Call       ast.Node  `json:"-"`
	SyntaxFile *ast.File `json:"-"`
}

// Location renders the site's position, falling back to the unknown marker.
func (s *CallSite) Location() string {
	if s.File == "" {
		return UnknownLocation
	}
	return fmt.Sprintf("%s:%d", s.File, s.Line)
}
