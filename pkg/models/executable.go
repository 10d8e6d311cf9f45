package models

import "fmt"

// UnresolvedOwner marks an ExecutableID whose callee could not be mapped to
// a declared callable. Sentinel ids never compare equal to resolved ids
// because no resolved owner is "?".
const UnresolvedOwner = "?"

// ExecutableID is the canonical key for a callable unit: qualified owner
// (package path, plus receiver type for methods), simple name, and
// parameter-type signature. It is comparable and safe to use as a map key.
type ExecutableID struct {
	Owner     string `json:"owner"`
	Name      string `json:"name"`
	Signature string `json:"signature"`
}

// Unresolved returns the sentinel id for a callee that could not be resolved,
// preserving the raw call text for reporting.
func Unresolved(raw string) ExecutableID {
	return ExecutableID{Owner: UnresolvedOwner, Name: raw, Signature: UnresolvedOwner}
}

// IsUnresolved reports whether the id is the sentinel for an unresolvable callee.
func (id ExecutableID) IsUnresolved() bool {
	return id.Owner == UnresolvedOwner
}

// IsZero reports whether the id is the zero value (no callable at all).
func (id ExecutableID) IsZero() bool {
	return id == ExecutableID{}
}

func (id ExecutableID) String() string {
	if id.IsZero() {
		return "(none)"
	}
	if id.IsUnresolved() {
		return fmt.Sprintf("%s (unresolved)", id.Name)
	}
	return id.Owner + "." + id.Name + id.Signature
}

// CallableInfo carries the report-enrichment attributes of a declared
// callable supplied by the source model.
type CallableInfo struct {
	ID       ExecutableID `json:"id"`
	Exported bool         `json:"exported"`
	Doc      string       `json:"doc,omitempty"`
	File     string       `json:"file"`
	Line     int          `json:"line"`
}
