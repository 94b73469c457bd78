package quickfix_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/yaklabco/javafix/internal/logging"
	"github.com/yaklabco/javafix/pkg/editor"
	"github.com/yaklabco/javafix/pkg/javatree"
	"github.com/yaklabco/javafix/pkg/quickfix"
)

const source = `class A {
    A() {
    }
}
`

type fakeAction struct {
	family    string
	available bool
	write     bool
	invoke    func(ctx context.Context, qc *quickfix.Context) error
}

func (f *fakeAction) Text() string                       { return "Fake " + f.family }
func (f *fakeAction) FamilyName() string                 { return f.family }
func (f *fakeAction) IsAvailable(*quickfix.Context) bool { return f.available }
func (f *fakeAction) StartInWriteAction() bool           { return f.write }

func (f *fakeAction) Invoke(ctx context.Context, qc *quickfix.Context) error {
	return f.invoke(ctx, qc)
}

type denyScope struct{}

func (denyScope) Contains(string) bool { return false }

func newContext(t *testing.T) *quickfix.Context {
	t.Helper()
	doc, err := editor.NewDocument(context.Background(), javatree.NewParser(), "A.java", []byte(source))
	require.NoError(t, err)
	return quickfix.NewContext(editor.NewEditor(doc), nil)
}

func quietContext(buf *bytes.Buffer) context.Context {
	return logging.WithLogger(context.Background(), logging.NewWithWriter(buf, "debug"))
}

func TestInstance_StateMachine(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	ctx := quietContext(&logs)
	qc := newContext(t)
	action := &fakeAction{family: "Prepend", available: true, write: true, invoke: func(_ context.Context, qc *quickfix.Context) error {
		if err := qc.Tx.Insert(0, "// x\n"); err != nil {
			return err
		}
		return qc.Tx.MoveCaret(2)
	}}

	inst := quickfix.NewInstance(action)
	assert.NotEmpty(t, inst.ID())
	assert.Equal(t, quickfix.StateUnavailable, inst.State())
	assert.Equal(t, quickfix.StateAvailable, inst.Refresh(qc))

	cmd, err := inst.Invoke(ctx, qc)
	require.NoError(t, err)
	require.NotNil(t, cmd)
	assert.Equal(t, "Fake Prepend", cmd.Name)
	assert.Equal(t, 2, qc.Editor.Caret())
	assert.Equal(t, quickfix.StateInvoked, inst.State())
	assert.Equal(t, quickfix.StateInvoked, inst.Refresh(qc))

	edited := string(qc.Document().Content())
	_, err = inst.Invoke(ctx, qc)
	require.ErrorIs(t, err, quickfix.ErrAlreadyInvoked)
	assert.Equal(t, edited, string(qc.Document().Content()))

	var fixErr *quickfix.FixError
	require.ErrorAs(t, err, &fixErr)
	assert.Equal(t, inst.ID(), fixErr.FixID)
	assert.Equal(t, "already_invoked", fixErr.Reason())
	assert.Contains(t, logs.String(), "fix failed")
}

func TestInstance_FailureRollsBack(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	qc := newContext(t)
	action := &fakeAction{family: "Broken", available: true, write: true, invoke: func(_ context.Context, qc *quickfix.Context) error {
		if err := qc.Tx.Insert(0, "garbage"); err != nil {
			return err
		}
		return quickfix.ErrInsertionPointLost
	}}

	inst := quickfix.NewInstance(action)
	_, err := inst.Invoke(quietContext(&logs), qc)

	require.ErrorIs(t, err, quickfix.ErrInsertionPointLost)
	assert.True(t, quickfix.IsFixError(err))
	assert.Equal(t, source, string(qc.Document().Content()))
	assert.False(t, qc.Document().UndoManager().CanUndo())
	assert.Equal(t, quickfix.StateInvoked, inst.State())
}

func TestInstance_ReadOnlyIsMutationRejected(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	qc := newContext(t)
	qc.Document().SetReadOnly(true)
	action := &fakeAction{family: "Edit", available: true, write: true, invoke: func(_ context.Context, qc *quickfix.Context) error {
		return qc.Tx.Insert(0, "x")
	}}

	_, err := quickfix.NewInstance(action).Invoke(quietContext(&logs), qc)
	require.ErrorIs(t, err, quickfix.ErrMutationRejected)
	require.ErrorIs(t, err, editor.ErrReadOnly)
}

func TestInstance_WithoutWriteAction(t *testing.T) {
	t.Parallel()

	qc := newContext(t)
	called := false
	action := &fakeAction{family: "Plain", available: true, invoke: func(_ context.Context, qc *quickfix.Context) error {
		called = true
		assert.Nil(t, qc.Tx)
		return nil
	}}

	cmd, err := quickfix.NewInstance(action).Invoke(context.Background(), qc)
	require.NoError(t, err)
	assert.Nil(t, cmd)
	assert.True(t, called)
}

func TestContext_CheckTarget(t *testing.T) {
	t.Parallel()

	qc := newContext(t)
	ctor := qc.Document().File().Classes()[0].Constructors[0]
	ptr := qc.Document().Pointer(javatree.KindConstructor, ctor.Range)

	require.NoError(t, qc.CheckTarget(ptr))
	require.ErrorIs(t, qc.CheckTarget(nil), quickfix.ErrStaleTarget)

	outside := quickfix.NewContext(qc.Editor, denyScope{})
	require.ErrorIs(t, outside.CheckTarget(ptr), quickfix.ErrMutationRejected)

	_, err := qc.Editor.Execute(context.Background(), "delete", func(tx *editor.Transaction) error {
		return tx.Delete(ctor.Range.Start, ctor.Range.End)
	})
	require.NoError(t, err)
	require.ErrorIs(t, qc.CheckTarget(ptr), quickfix.ErrStaleTarget)
}

func TestInstance_CheckTargetInsideWriteAction(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	ctx := quietContext(&logs)
	qc := newContext(t)
	ctor := qc.Document().File().Classes()[0].Constructors[0]
	ptr := qc.Document().Pointer(javatree.KindConstructor, ctor.Range)

	action := &fakeAction{family: "Checked", available: true, write: true, invoke: func(_ context.Context, qc *quickfix.Context) error {
		if err := qc.CheckTarget(ptr); err != nil {
			return err
		}
		return qc.Tx.Insert(ctor.Range.End, "\n")
	}}

	done := make(chan error, 1)
	go func() {
		_, err := quickfix.NewInstance(action).Invoke(ctx, qc)
		done <- err
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Invoke did not return: CheckTarget blocked on the document lock")
	}
	assert.Equal(t, 2, qc.Document().Version(), "one edit step committed")
}

func TestOfferAndFilter(t *testing.T) {
	t.Parallel()

	qc := newContext(t)
	noop := func(context.Context, *quickfix.Context) error { return nil }
	offered := quickfix.Offer(qc,
		&fakeAction{family: "One", available: true, invoke: noop},
		&fakeAction{family: "Two", available: false, invoke: noop},
		&fakeAction{family: "Three", available: true, invoke: noop},
	)
	require.Len(t, offered, 2)
	assert.Equal(t, "One", offered[0].FamilyName())
	assert.Equal(t, "Three", offered[1].FamilyName())
	assert.NotEqual(t, offered[0].ID(), offered[1].ID())

	assert.Same(t, offered[1], quickfix.Find(offered, offered[1].ID()))
	assert.Nil(t, quickfix.Find(offered, "missing"))

	assert.Len(t, quickfix.FilterFamilies(offered, nil), 2)
	filtered := quickfix.FilterFamilies(offered, []string{"Three"})
	require.Len(t, filtered, 1)
	assert.Equal(t, "Three", filtered[0].FamilyName())
}

func TestMessages(t *testing.T) {
	t.Parallel()

	en := quickfix.DefaultMessages()
	assert.Equal(t, "Insert 'super();'", en.Get(quickfix.MsgInsertSuperText))
	assert.Equal(t, "Insert super constructor call", en.Get(quickfix.MsgInsertSuperFamily))
	assert.Equal(t, "Insert new", en.Get(quickfix.MsgInsertNewText))
	assert.Equal(t, "Insert 'new Point'", en.Get(quickfix.MsgInsertNewWithName, "Point"))

	de := quickfix.NewMessages(language.German)
	assert.Equal(t, "'super();' einfügen", de.Get(quickfix.MsgInsertSuperText))

	fr := quickfix.NewMessages(language.French)
	assert.Equal(t, "Insert new", fr.Get(quickfix.MsgInsertNewFamily))
}

func TestFixError(t *testing.T) {
	t.Parallel()

	err := &quickfix.FixError{FixID: "id-1", Family: "Insert new", Err: quickfix.ErrStaleTarget}
	assert.Equal(t, "fix Insert new (id-1): target element is no longer valid", err.Error())
	assert.Equal(t, "stale_target", err.Reason())
	assert.True(t, errors.Is(err, quickfix.ErrStaleTarget))
	assert.Equal(t, "invoked", quickfix.StateInvoked.String())
}
