package primitives

import "fmt"

// IllFormedGraphError reports a structural violation discovered while
// building a Graph (duplicate or unknown state id, missing/invalid initial
// substate, cyclic hierarchy, history kind on a leaf, ...).
type IllFormedGraphError struct {
	Reason string
}

func (e *IllFormedGraphError) Error() string {
	return fmt.Sprintf("ill-formed graph: %s", e.Reason)
}

func illFormed(format string, args ...any) error {
	return &IllFormedGraphError{Reason: fmt.Sprintf(format, args...)}
}
