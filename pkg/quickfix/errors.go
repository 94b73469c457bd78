package quickfix

import (
	"errors"
	"fmt"

	"github.com/yaklabco/javafix/pkg/editor"
)

// Sentinel errors for fix failures. All are recoverable: the document is
// left untouched.
var (
	// ErrStaleTarget is returned when the fix's target no longer resolves.
	ErrStaleTarget = errors.New("target element is no longer valid")

	// ErrMutationRejected is returned when the document refuses the edit:
	// read-only, closed, out of scope, or the edit failed validation.
	ErrMutationRejected = errors.New("mutation rejected")

	// ErrInsertionPointLost is returned when the inserted element cannot be
	// found after the edit. The edit is rolled back.
	ErrInsertionPointLost = errors.New("insertion point lost after edit")

	// ErrAlreadyInvoked is returned when a fix instance is invoked twice.
	ErrAlreadyInvoked = errors.New("fix already invoked")
)

// FixError wraps a failure with the identity of the fix that produced it.
type FixError struct {
	FixID  string
	Family string
	Err    error
}

func (e *FixError) Error() string {
	return fmt.Sprintf("fix %s (%s): %v", e.Family, e.FixID, e.Err)
}

func (e *FixError) Unwrap() error {
	return e.Err
}

// Reason returns a short stable name for the failure, for metrics and logs.
func (e *FixError) Reason() string {
	switch {
	case errors.Is(e.Err, ErrStaleTarget):
		return "stale_target"
	case errors.Is(e.Err, ErrMutationRejected):
		return "mutation_rejected"
	case errors.Is(e.Err, ErrInsertionPointLost):
		return "insertion_point_lost"
	case errors.Is(e.Err, ErrAlreadyInvoked):
		return "already_invoked"
	default:
		return "other"
	}
}

// classify maps editor errors onto the fix taxonomy.
func classify(err error) error {
	switch {
	case errors.Is(err, ErrStaleTarget),
		errors.Is(err, ErrMutationRejected),
		errors.Is(err, ErrInsertionPointLost),
		errors.Is(err, ErrAlreadyInvoked):
		return err
	case errors.Is(err, editor.ErrReadOnly),
		errors.Is(err, editor.ErrClosed),
		errors.Is(err, editor.ErrEditRejected):
		return fmt.Errorf("%w: %w", ErrMutationRejected, err)
	default:
		return err
	}
}
