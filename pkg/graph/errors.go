package graph

import "fmt"

// ValidationError reports a malformed entity or relationship on insert.
type ValidationError struct {
	ID     string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("invalid record: %s", e.Reason)
	}
	return fmt.Sprintf("invalid record %q: %s", e.ID, e.Reason)
}

// NotFoundError reports a lookup by an unknown entity id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("entity %q not found", e.ID)
}

// DanglingReferenceError reports a relationship endpoint that is missing
// from the entity set.
type DanglingReferenceError struct {
	RelationType string
	MissingID    string
}

func (e *DanglingReferenceError) Error() string {
	return fmt.Sprintf("relationship %q references missing entity %q", e.RelationType, e.MissingID)
}

// NoPathError reports that two entities lie in different weakly-connected
// components.
type NoPathError struct {
	SourceID string
	TargetID string
}

func (e *NoPathError) Error() string {
	return fmt.Sprintf("no path between %q and %q", e.SourceID, e.TargetID)
}
