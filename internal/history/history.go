// Package history keeps the committed action log of a drawing together with
// the redo buffer.
package history

import "github.com/example/whiteboard/internal/action"

// RenderFunc repaints the surface from the committed actions. The slice is
// owned by the Manager and must not be retained or modified.
type RenderFunc func(actions []action.Action)

// Manager owns the committed history and the redo buffer. Every mutation
// finishes updating both lists before the render callback runs.
type Manager struct {
	actions  []action.Action
	redo     []action.Action
	onChange RenderFunc
}

// New returns an empty Manager. onChange may be nil.
func New(onChange RenderFunc) *Manager {
	return &Manager{onChange: onChange}
}

// SetRenderFunc replaces the callback invoked after each mutation.
func (m *Manager) SetRenderFunc(fn RenderFunc) { m.onChange = fn }

// Commit appends a copy of a and drops the redo buffer. Invalid actions are
// discarded and Commit reports false.
func (m *Manager) Commit(a action.Action) bool {
	if !a.Valid() {
		return false
	}
	m.actions = append(m.actions, a.Clone())
	m.redo = nil
	m.changed()
	return true
}

// Undo moves the newest action to the redo buffer.
func (m *Manager) Undo() bool {
	n := len(m.actions)
	if n == 0 {
		return false
	}
	m.redo = append(m.redo, m.actions[n-1])
	m.actions = m.actions[:n-1]
	m.changed()
	return true
}

// Redo restores the most recently undone action.
func (m *Manager) Redo() bool {
	n := len(m.redo)
	if n == 0 {
		return false
	}
	m.actions = append(m.actions, m.redo[n-1])
	m.redo = m.redo[:n-1]
	m.changed()
	return true
}

// Clear empties the history and the redo buffer. Clearing an empty Manager
// still re-renders so the surface always ends up blank.
func (m *Manager) Clear() {
	m.actions = nil
	m.redo = nil
	m.changed()
}

// Load replaces the history with the valid entries of actions and empties
// the redo buffer. It returns the number of actions kept.
func (m *Manager) Load(actions []action.Action) int {
	kept := make([]action.Action, 0, len(actions))
	for _, a := range actions {
		if a.Valid() {
			kept = append(kept, a.Clone())
		}
	}
	m.actions = kept
	m.redo = nil
	m.changed()
	return len(kept)
}

// Render invokes the render callback with the current history without
// mutating anything.
func (m *Manager) Render() { m.changed() }

// CanUndo reports whether there is a committed action to undo.
func (m *Manager) CanUndo() bool { return len(m.actions) > 0 }

// CanRedo reports whether there is an undone action to restore.
func (m *Manager) CanRedo() bool { return len(m.redo) > 0 }

// Len returns the number of committed actions.
func (m *Manager) Len() int { return len(m.actions) }

// RedoLen returns the number of actions on the redo stack.
func (m *Manager) RedoLen() int { return len(m.redo) }

// Actions returns a deep copy of the committed history.
func (m *Manager) Actions() []action.Action {
	out := make([]action.Action, len(m.actions))
	for i, a := range m.actions {
		out[i] = a.Clone()
	}
	return out
}

func (m *Manager) changed() {
	if m.onChange != nil {
		m.onChange(m.actions)
	}
}
