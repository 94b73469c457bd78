package quickfix

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/yaklabco/javafix/internal/logging"
	"github.com/yaklabco/javafix/pkg/editor"
)

// State is the lifecycle state of a fix instance.
type State int

const (
	// StateUnavailable means the fix cannot run against the current document.
	StateUnavailable State = iota

	// StateAvailable means the fix can be invoked.
	StateAvailable

	// StateInvoked is terminal: the instance was used.
	StateInvoked
)

func (s State) String() string {
	switch s {
	case StateUnavailable:
		return "unavailable"
	case StateAvailable:
		return "available"
	case StateInvoked:
		return "invoked"
	default:
		return "unknown"
	}
}

// Instance tracks one offered fix through its lifecycle. It is created fresh
// for every query cycle and can be invoked at most once.
type Instance struct {
	id     string
	action Action
	inst   instruments

	mu    sync.Mutex
	state State
}

// NewInstance wraps action with a fresh identity.
func NewInstance(action Action) *Instance {
	return &Instance{
		id:     uuid.NewString(),
		action: action,
		inst:   sharedInstruments(),
	}
}

// ID returns the instance's unique identifier.
func (i *Instance) ID() string {
	return i.id
}

// Action returns the wrapped fix.
func (i *Instance) Action() Action {
	return i.action
}

// Text returns the fix label.
func (i *Instance) Text() string {
	return i.action.Text()
}

// FamilyName returns the fix family.
func (i *Instance) FamilyName() string {
	return i.action.FamilyName()
}

// State returns the last computed state.
func (i *Instance) State() State {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.state
}

// Refresh re-evaluates availability. An invoked instance stays invoked.
func (i *Instance) Refresh(qc *Context) State {
	i.mu.Lock()
	defer i.mu.Unlock()

	if i.state == StateInvoked {
		return i.state
	}
	if i.action.IsAvailable(qc) {
		i.state = StateAvailable
	} else {
		i.state = StateUnavailable
	}
	return i.state
}

// IsAvailable refreshes and reports whether the instance can be invoked.
func (i *Instance) IsAvailable(qc *Context) bool {
	return i.Refresh(qc) == StateAvailable
}

// Invoke runs the fix once. Failures come back as *FixError, are logged at
// warn level and leave the document unchanged. Whatever the outcome, the
// instance is spent afterwards.
func (i *Instance) Invoke(ctx context.Context, qc *Context) (*editor.Command, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	family := i.action.FamilyName()
	if i.state == StateInvoked {
		return nil, i.fail(ctx, qc, ErrAlreadyInvoked)
	}
	i.state = StateInvoked
	i.inst.recordInvocation(ctx, family)

	if !i.action.StartInWriteAction() {
		if err := i.action.Invoke(ctx, qc); err != nil {
			return nil, i.fail(ctx, qc, classify(err))
		}
		return nil, nil
	}

	inner := *qc
	cmd, err := qc.Editor.Execute(ctx, i.action.Text(), func(tx *editor.Transaction) error {
		inner.Tx = tx
		return i.action.Invoke(ctx, &inner)
	})
	if err != nil {
		return nil, i.fail(ctx, qc, classify(err))
	}

	logging.FromContext(ctx).Debug("fix applied",
		logging.FieldFixID, i.id,
		logging.FieldFamily, family,
		logging.FieldPath, qc.Document().Path(),
		logging.FieldOffset, cmd.CaretAfter,
	)
	return cmd, nil
}

func (i *Instance) fail(ctx context.Context, qc *Context, err error) error {
	fixErr := &FixError{FixID: i.id, Family: i.action.FamilyName(), Err: err}
	i.inst.recordFailure(ctx, fixErr.Family, fixErr.Reason())

	logger := logging.FromContext(ctx)
	fields := []any{
		logging.FieldFixID, i.id,
		logging.FieldFamily, fixErr.Family,
		logging.FieldError, err,
	}
	if qc != nil && qc.Editor != nil {
		fields = append(fields, logging.FieldPath, qc.Document().Path())
	}
	logger.Warn("fix failed", fields...)

	return fixErr
}

// IsFixError reports whether err came from a failed fix invocation.
func IsFixError(err error) bool {
	var fixErr *FixError
	return errors.As(err, &fixErr)
}
