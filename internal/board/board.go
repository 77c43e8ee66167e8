// Package board ties the history, renderer and interaction state machine of
// a single whiteboard canvas together.
package board

import (
	"fmt"
	"image"
	"log"

	"github.com/example/whiteboard/internal/action"
	"github.com/example/whiteboard/internal/history"
	"github.com/example/whiteboard/internal/render"
	"github.com/example/whiteboard/internal/style"
)

// Board is one drawing canvas. Until Mount is called there is no surface and
// every operation does nothing. A Board is not safe for concurrent use.
type Board struct {
	origin  image.Point
	surface *image.RGBA

	rd      *render.Renderer
	strokes *render.StrokeRenderer
	history *history.Manager
	machine *Machine
}

// New returns an unmounted Board with empty history.
func New() *Board {
	b := &Board{rd: render.NewRenderer()}
	b.strokes = render.NewStrokeRenderer(b.rd)
	b.history = history.New(b.render)
	b.machine = NewMachine(b.history, painter{b})
	return b
}

// Mount attaches a surface covering bounds, given in client coordinates,
// and renders the current history onto it. Calling Mount again resizes the
// canvas; points already recorded are not rescaled.
func (b *Board) Mount(bounds image.Rectangle) {
	b.machine.Reset()
	b.origin = bounds.Min
	b.surface = render.NewSurface(bounds.Dx(), bounds.Dy())
	b.history.Render()
}

// Resize is Mount under the name hosts use on window changes.
func (b *Board) Resize(bounds image.Rectangle) { b.Mount(bounds) }

// Unmount detaches the surface. History is kept.
func (b *Board) Unmount() {
	b.machine.Reset()
	b.surface = nil
}

// Mounted reports whether the board has a surface.
func (b *Board) Mounted() bool { return b.surface != nil }

// Origin is the client position of the canvas' top-left pixel.
func (b *Board) Origin() image.Point { return b.origin }

// Bounds returns the canvas rectangle in client coordinates.
func (b *Board) Bounds() image.Rectangle {
	if b.surface == nil {
		return image.Rectangle{}
	}
	return b.surface.Bounds().Add(b.origin)
}

// Handle feeds a pointer event in client coordinates to the state machine.
func (b *Board) Handle(ev PointerEvent, s style.Settings) {
	if b.surface == nil {
		return
	}
	ev.X -= float64(b.origin.X)
	ev.Y -= float64(b.origin.Y)
	b.machine.Handle(ev, s)
}

// ConfirmText commits pending text. See Machine.ConfirmText.
func (b *Board) ConfirmText(text string, s style.Settings) bool {
	if b.surface == nil {
		return false
	}
	return b.machine.ConfirmText(text, s)
}

// CancelText abandons pending text input.
func (b *Board) CancelText() {
	if b.surface == nil {
		return
	}
	b.machine.CancelText()
}

// TextPosition returns the canvas-local anchor of pending text.
func (b *Board) TextPosition() (action.Point, bool) { return b.machine.TextPosition() }

// State reports the interaction state.
func (b *Board) State() State { return b.machine.State() }

// Undo reverts the latest action. It is a no-op on an unmounted board.
func (b *Board) Undo() bool {
	if b.surface == nil {
		return false
	}
	return b.history.Undo()
}

// Redo restores the latest undone action. It is a no-op on an unmounted board.
func (b *Board) Redo() bool {
	if b.surface == nil {
		return false
	}
	return b.history.Redo()
}

// Clear drops the history, any pending interaction and blanks the surface.
func (b *Board) Clear() {
	if b.surface == nil {
		return
	}
	b.machine.Reset()
	b.history.Clear()
}

// CanUndo reports whether Undo would change the board.
func (b *Board) CanUndo() bool { return b.history.CanUndo() }

// CanRedo reports whether Redo would change the board.
func (b *Board) CanRedo() bool { return b.history.CanRedo() }

// Actions returns a copy of the committed history.
func (b *Board) Actions() []action.Action { return b.history.Actions() }

// Load replaces the history with the valid entries of actions. Loading is
// allowed before Mount so a saved drawing can be restored first.
func (b *Board) Load(actions []action.Action) int {
	b.machine.Reset()
	n := b.history.Load(actions)
	if dropped := len(actions) - n; dropped > 0 {
		log.Printf("board: dropped %d invalid actions while loading", dropped)
	}
	return n
}

// LoadJSON restores an encoded action list. Malformed data is logged and
// leaves an empty history.
func (b *Board) LoadJSON(data []byte) int {
	actions, err := action.Decode(data)
	if err != nil {
		log.Printf("board: ignoring saved actions: %v", err)
		actions = nil
	}
	return b.Load(actions)
}

// Surface returns the live surface, or nil when unmounted. Callers must not
// keep it across board operations.
func (b *Board) Surface() *image.RGBA { return b.surface }

// Image returns a copy of the surface.
func (b *Board) Image() *image.RGBA { return render.Clone(b.surface) }

// Snapshot is the persisted form of a board.
type Snapshot struct {
	Thumbnail string
	Actions   []action.Action
}

// Snapshot captures a thumbnail data URI and the committed actions.
func (b *Board) Snapshot() (Snapshot, error) {
	if b.surface == nil {
		return Snapshot{}, fmt.Errorf("board not mounted")
	}
	uri, err := render.DataURI(render.Thumbnail(b.surface, render.ThumbnailWidth, render.ThumbnailHeight))
	if err != nil {
		return Snapshot{}, err
	}
	return Snapshot{Thumbnail: uri, Actions: b.history.Actions()}, nil
}

func (b *Board) render(actions []action.Action) {
	b.rd.Render(b.surface, actions)
}

// painter renders state machine previews onto the board surface.
type painter struct{ b *Board }

func (p painter) BeginStroke(a action.Action)  { p.b.strokes.Begin(p.b.surface, a) }
func (p painter) ExtendStroke(a action.Action) { p.b.strokes.Extend(a) }
func (p painter) EndStroke()                   { p.b.strokes.End() }
func (p painter) Repaint()                     { p.b.history.Render() }

func (p painter) Preview(a action.Action) {
	p.b.history.Render()
	p.b.rd.Paint(p.b.surface, a)
}
