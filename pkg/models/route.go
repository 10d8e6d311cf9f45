package models

// TerminalNote marks how a traversal branch ended at a route step.
type TerminalNote int

const (
	NoteNone TerminalNote = iota
	// NoteRecursiveCall: the caller already appears on this branch; the
	// branch is truncated rather than followed into the cycle.
	NoteRecursiveCall
	// NoteEntryPoint: the caller has no discovered caller of its own.
	NoteEntryPoint
	// NoteTopLevel: the call site has no enclosing callable at all.
	NoteTopLevel
)

func (n TerminalNote) String() string {
	switch n {
	case NoteRecursiveCall:
		return "(Recursive call)"
	case NoteEntryPoint:
		return "(Entry point)"
	case NoteTopLevel:
		return "(Top level)"
	default:
		return ""
	}
}

// MarshalText renders the note for JSON reports.
func (n TerminalNote) MarshalText() ([]byte, error) {
	switch n {
	case NoteRecursiveCall:
		return []byte("recursive_call"), nil
	case NoteEntryPoint:
		return []byte("entry_point"), nil
	case NoteTopLevel:
		return []byte("top_level"), nil
	default:
		return []byte("none"), nil
	}
}

// RouteStep is one hop of a route: the caller reached, the ordered branch
// conditions (outermost first) that must hold at its call site, and the
// terminal note when the step ends the branch.
type RouteStep struct {
	Caller     ExecutableID `json:"caller"`
	Conditions []string     `json:"conditions,omitempty"`
	Note       TerminalNote `json:"note,omitempty"`
}

// Route is one complete backward path from an entry point (or truncation
// point) down to a target call site. Steps are ordered outermost caller
// first; the tracer builds them target-first and reverses before returning.
type Route struct {
	Target ExecutableID `json:"target"`
	Steps  []RouteStep  `json:"steps"`
}

// EntryPointKind classifies how a zero-caller callable can be invoked.
type EntryPointKind string

const (
	EntryKindMain     EntryPointKind = "main"
	EntryKindInit     EntryPointKind = "init"
	EntryKindTest     EntryPointKind = "test"
	EntryKindExported EntryPointKind = "exported"
	EntryKindInternal EntryPointKind = "internal"
)

// EntryPoint is a callable with no discovered caller within the analyzed
// scope, annotated for reporting.
type EntryPoint struct {
	ID        ExecutableID   `json:"id"`
	Kind      EntryPointKind `json:"kind"`
	Reachable int            `json:"reachable_functions"`
}

// RouteRecord is the tabular per-route record exposed to CSV/TSV/JSON
// serialization: target, ordered caller chain, condition text, entry point.
type RouteRecord struct {
	Target     string   `json:"target"`
	Route      int      `json:"route"`
	Callers    []string `json:"callers"`
	Conditions []string `json:"conditions"`
	EntryPoint string   `json:"entry_point"`
}
