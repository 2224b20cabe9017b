// Package sbolerr declares the error taxonomy shared by the identity service and the object model.
//
// Every failure returned by the domain packages wraps exactly one of the sentinels below, so
// callers classify errors with errors.Is and never by message text.
package sbolerr

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors. Context is attached with fmt.Errorf("%w: ...").
var (
	// ErrCompliance means the operation is invalid for the active compliant/non-compliant URI mode,
	// or a homespace is required but not configured.
	ErrCompliance = errors.New("uri compliance violation")
	// ErrNotFound means a URI or property value is absent.
	ErrNotFound = errors.New("not found")
	// ErrTypeMismatch means a property type is undeclared on an object, or an object resolved to an
	// incompatible runtime type.
	ErrTypeMismatch = errors.New("type mismatch")
	// ErrDuplicateURI means an identity collision on creation.
	ErrDuplicateURI = errors.New("duplicate uri")
	// ErrInvalidArgument covers malformed arguments such as version strings.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrOrphanObject means a property view is used while unbound to any owner.
	ErrOrphanObject = errors.New("property is not a member of an owner object")
	// ErrMissingDocument means the operation requires the object to be attached to a document.
	ErrMissingDocument = errors.New("object does not belong to a document")
	// ErrCycle means a traversal revisited a node.
	ErrCycle = errors.New("cycle detected")
	// ErrAmbiguousConstraint means more than one precedes constraint matched the same component.
	ErrAmbiguousConstraint = errors.New("ambiguous sequence constraint")
	// ErrUnsupportedFormat means no codec is registered for a file format.
	ErrUnsupportedFormat = errors.New("unsupported file format")
)

// CycleError reports the nodes visited before a traversal looped back on itself.
type CycleError struct {
	// Scope identifies where the cycle was found (a definition identity).
	Scope string
	// Path lists the identities in visiting order; the last entry is the repeated node.
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s in %s: %s", ErrCycle, e.Scope, strings.Join(e.Path, " -> "))
}

// Unwrap lets errors.Is match ErrCycle.
func (e *CycleError) Unwrap() error { return ErrCycle }

// Direction values for AmbiguousConstraintError.
const (
	Upstream   = "upstream"
	Downstream = "downstream"
)

// AmbiguousConstraintError reports a component with more than one neighbor in one direction.
type AmbiguousConstraintError struct {
	Component  string
	Direction  string
	Candidates []string
}

func (e *AmbiguousConstraintError) Error() string {
	return fmt.Sprintf("%s: %s has %d %s neighbors (%s)",
		ErrAmbiguousConstraint, e.Component, len(e.Candidates), e.Direction, strings.Join(e.Candidates, ", "))
}

// Unwrap lets errors.Is match ErrAmbiguousConstraint.
func (e *AmbiguousConstraintError) Unwrap() error { return ErrAmbiguousConstraint }

// Code returns a stable short code for err, or "" when err is nil or unclassified.
func Code(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrCompliance):
		return "compliance"
	case errors.Is(err, ErrNotFound):
		return "not-found"
	case errors.Is(err, ErrTypeMismatch):
		return "type-mismatch"
	case errors.Is(err, ErrDuplicateURI):
		return "duplicate-uri"
	case errors.Is(err, ErrInvalidArgument):
		return "invalid-argument"
	case errors.Is(err, ErrOrphanObject):
		return "orphan-object"
	case errors.Is(err, ErrMissingDocument):
		return "missing-document"
	case errors.Is(err, ErrCycle):
		return "cycle"
	case errors.Is(err, ErrAmbiguousConstraint):
		return "ambiguous-constraint"
	case errors.Is(err, ErrUnsupportedFormat):
		return "unsupported-format"
	default:
		return ""
	}
}
