package converter

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedTree is returned when the input tree violates the
	// text-leaf/element invariant.
	ErrMalformedTree = errors.New("malformed node tree")

	// ErrMissingAttribute is returned when a structurally mandatory attribute
	// is absent and the resolution mode is strict.
	ErrMissingAttribute = errors.New("missing attribute")

	// ErrUnknownElement is returned for unknown elements under UnknownError.
	ErrUnknownElement = errors.New("unknown element")
)

// MalformedTreeError reports where the tree invariant is broken.
type MalformedTreeError struct {
	Path   string
	Reason string
}

func (e *MalformedTreeError) Error() string {
	return fmt.Sprintf("malformed node tree at %s: %s", e.Path, e.Reason)
}

func (e *MalformedTreeError) Unwrap() error {
	return ErrMalformedTree
}

// MissingAttributeError names the element and the attribute it lacks.
type MissingAttributeError struct {
	Element   string
	Attribute string
}

func (e *MissingAttributeError) Error() string {
	return fmt.Sprintf("element %q is missing required attribute %q", e.Element, e.Attribute)
}

func (e *MissingAttributeError) Unwrap() error {
	return ErrMissingAttribute
}
