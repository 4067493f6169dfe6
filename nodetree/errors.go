package nodetree

import "errors"

// Read-side errors. Every malformed read surfaces one of these, wrapping
// the underlying cause where one exists.
var (
	ErrInvalidNode      = errors.New("nodetree: invalid node")
	ErrTruncatedPayload = errors.New("nodetree: truncated payload")
	ErrIO               = errors.New("nodetree: io error")
	ErrNoHierarchy      = errors.New("nodetree: payload is not a child sequence")
	ErrNotCached        = errors.New("nodetree: lazy data has no cached header to read")
	ErrCannotWriteRead  = errors.New("nodetree: cannot write a lazy value constructed for reading")
)

// Write-side errors.
var (
	ErrNodeTooLarge       = errors.New("nodetree: node payload exceeds uint32 max")
	ErrInvariantViolation = errors.New("nodetree: writer invariant violated")
)

// DuplicateChildError reports a schema field that matched more than one
// child when at most one was expected.
type DuplicateChildError struct {
	Tag Tag
}

func (e *DuplicateChildError) Error() string {
	return "nodetree: duplicate child " + e.Tag.String()
}

// MissingChildError reports a schema field with no matching required child.
type MissingChildError struct {
	Tag Tag
}

func (e *MissingChildError) Error() string {
	return "nodetree: missing required child " + e.Tag.String()
}

// UnexpectedChildError reports a child the schema has no field for.
type UnexpectedChildError struct {
	Tag Tag
}

func (e *UnexpectedChildError) Error() string {
	return "nodetree: unexpected child " + e.Tag.String()
}
