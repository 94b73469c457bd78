package editor

import (
	"sync"

	"github.com/yaklabco/javafix/pkg/fix"
)

// DefaultUndoLimit bounds the undo stack of a new document.
const DefaultUndoLimit = 100

// Command is one undoable unit: the edit steps a write action applied, the
// steps that revert them, and the caret on either side.
type Command struct {
	Name        string
	Steps       [][]fix.TextEdit
	Inverse     [][]fix.TextEdit
	CaretBefore int
	CaretAfter  int
}

// Changed reports whether the command modified text.
func (c *Command) Changed() bool {
	return len(c.Steps) > 0
}

// UndoManager is a bounded undo/redo stack. Recording a new command clears
// the redo side.
type UndoManager struct {
	mu    sync.Mutex
	limit int
	undo  []*Command
	redo  []*Command
}

// NewUndoManager creates a stack holding at most limit commands.
func NewUndoManager(limit int) *UndoManager {
	if limit <= 0 {
		limit = DefaultUndoLimit
	}
	return &UndoManager{limit: limit}
}

// CanUndo reports whether an undo is possible.
func (u *UndoManager) CanUndo() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.undo) > 0
}

// CanRedo reports whether a redo is possible.
func (u *UndoManager) CanRedo() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.redo) > 0
}

// Peek returns the command Undo would revert, or nil.
func (u *UndoManager) Peek() *Command {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.undo) == 0 {
		return nil
	}
	return u.undo[len(u.undo)-1]
}

// Clear drops both stacks.
func (u *UndoManager) Clear() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.undo = nil
	u.redo = nil
}

func (u *UndoManager) push(cmd *Command) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.redo = nil
	u.pushLocked(cmd)
}

func (u *UndoManager) pushUndo(cmd *Command) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.pushLocked(cmd)
}

func (u *UndoManager) pushLocked(cmd *Command) {
	u.undo = append(u.undo, cmd)
	if len(u.undo) > u.limit {
		u.undo = u.undo[len(u.undo)-u.limit:]
	}
}

func (u *UndoManager) pushRedo(cmd *Command) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.redo = append(u.redo, cmd)
}

func (u *UndoManager) popUndo() *Command {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.undo) == 0 {
		return nil
	}
	cmd := u.undo[len(u.undo)-1]
	u.undo = u.undo[:len(u.undo)-1]
	return cmd
}

func (u *UndoManager) popRedo() *Command {
	u.mu.Lock()
	defer u.mu.Unlock()
	if len(u.redo) == 0 {
		return nil
	}
	cmd := u.redo[len(u.redo)-1]
	u.redo = u.redo[:len(u.redo)-1]
	return cmd
}
