package app

import (
	"golang.org/x/mobile/event/key"

	"github.com/example/whiteboard/internal/action"
)

// KeyShortcut is a key code with the modifiers that must be held.
type KeyShortcut struct {
	Code      key.Code
	Modifiers key.Modifiers
}

const modMask = key.ModShift | key.ModControl | key.ModAlt | key.ModMeta

func (k KeyShortcut) matches(e key.Event) bool {
	mods := e.Modifiers & modMask
	// Cmd acts as Ctrl.
	if mods&key.ModMeta != 0 {
		mods = mods&^key.ModMeta | key.ModControl
	}
	return e.Code == k.Code && mods == k.Modifiers
}

// command is a named host operation reachable from the keyboard and the
// top bar.
type command struct {
	name  string
	keys  []KeyShortcut
	run   func(*Controller)
	ready func(*Controller) bool
}

var commands = []command{
	{name: "Undo", keys: []KeyShortcut{{key.CodeZ, key.ModControl}},
		run: (*Controller).Undo, ready: func(c *Controller) bool { return c.board.CanUndo() }},
	{name: "Redo", keys: []KeyShortcut{{key.CodeY, key.ModControl}, {key.CodeZ, key.ModControl | key.ModShift}},
		run: (*Controller).Redo, ready: func(c *Controller) bool { return c.board.CanRedo() }},
	{name: "Clear", keys: []KeyShortcut{{key.CodeDeleteForward, key.ModControl}},
		run: (*Controller).Clear, ready: func(c *Controller) bool { return c.board.CanUndo() || c.board.CanRedo() }},
	{name: "Save", keys: []KeyShortcut{{key.CodeS, key.ModControl}}, run: (*Controller).Save},
	{name: "Export", keys: []KeyShortcut{{key.CodeE, key.ModControl}}, run: (*Controller).Export},
	{name: "Copy", keys: []KeyShortcut{{key.CodeC, key.ModControl}}, run: (*Controller).Copy},
	{name: "Copy JSON", keys: []KeyShortcut{{key.CodeC, key.ModControl | key.ModShift}}, run: (*Controller).CopyActions},
	{name: "Paste", keys: []KeyShortcut{{key.CodeV, key.ModControl}}, run: (*Controller).Paste},
}

var toolShortcuts = []struct {
	tool  action.Tool
	label rune
	code  key.Code
}{
	{action.ToolPen, 'P', key.CodeP},
	{action.ToolPencil, 'N', key.CodeN},
	{action.ToolEraser, 'E', key.CodeE},
	{action.ToolRectangle, 'R', key.CodeR},
	{action.ToolEllipse, 'O', key.CodeO},
	{action.ToolText, 'T', key.CodeT},
	{action.ToolArrow, 'A', key.CodeA},
}
