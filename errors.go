package cadence

import (
	"errors"
	"fmt"
)

// ErrEmptySequence is returned when a Sequence with no keyframes is sampled.
// Level builders always insert a default keyframe, so seeing this means a
// Sequence was constructed by hand without one.
var ErrEmptySequence = errors.New("cadence: sequence has no keyframes")

// ErrAnimationNotFound is returned by the Manager lookups when no registered
// animation matches.
var ErrAnimationNotFound = errors.New("cadence: animation not found")

// ErrObjectNotFound is returned when building or looking up an object ID
// that was never added.
var ErrObjectNotFound = errors.New("cadence: object not found")

// UnknownEaseError reports a lookup of an ease name that was never registered.
type UnknownEaseError struct {
	Name string
}

func (e *UnknownEaseError) Error() string {
	return fmt.Sprintf("cadence: unknown ease %q", e.Name)
}

// MissingAncestorError reports a parent reference that does not resolve.
// It is soft: the chain is truncated at the missing link and the object
// keeps animating.
type MissingAncestorError struct {
	ObjectID string
	ParentID string
}

func (e *MissingAncestorError) Error() string {
	return fmt.Sprintf("cadence: object %q references missing parent %q", e.ObjectID, e.ParentID)
}

// ChainCycleError reports a parent reference that loops back into the chain
// being built. Like MissingAncestorError it only truncates the chain.
type ChainCycleError struct {
	ObjectID string
	ParentID string
}

func (e *ChainCycleError) Error() string {
	return fmt.Sprintf("cadence: parent chain of %q loops back to %q", e.ObjectID, e.ParentID)
}
