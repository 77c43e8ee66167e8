package history

import (
	"bytes"
	"image"
	"testing"

	"github.com/example/whiteboard/internal/action"
	"github.com/example/whiteboard/internal/render"
)

func penStroke(pts ...action.Point) action.Action {
	a := action.NewStroke(action.ToolPen, "#000000", 3, pts[0])
	a.Points = append(a.Points, pts[1:]...)
	return a
}

// surfaceManager wires a Manager to a render surface the way the board does.
func surfaceManager(w, h int) (*Manager, *image.RGBA) {
	dst := render.NewSurface(w, h)
	rd := render.NewRenderer()
	return New(func(actions []action.Action) { rd.Render(dst, actions) }), dst
}

func sampleActions() []action.Action {
	rect := action.NewShape(action.ToolRectangle, "#FF0000", 2, action.Pt(10, 10))
	end := action.Pt(60, 40)
	rect.End = &end
	return []action.Action{
		penStroke(action.Pt(0, 0), action.Pt(10, 10), action.Pt(20, 5)),
		rect,
		action.NewText("#0000FF", 2, action.Pt(20, 60), "Hi"),
	}
}

func TestUndoAllThenRedoAll(t *testing.T) {
	m, dst := surfaceManager(80, 80)
	actions := sampleActions()
	for _, a := range actions {
		if !m.Commit(a) {
			t.Fatalf("commit of valid %s rejected", a.Tool)
		}
	}
	direct := render.NewSurface(80, 80)
	render.Render(direct, actions)
	if !bytes.Equal(dst.Pix, direct.Pix) {
		t.Fatalf("committed surface differs from direct render")
	}

	for range actions {
		m.Undo()
	}
	if !bytes.Equal(dst.Pix, render.NewSurface(80, 80).Pix) {
		t.Fatalf("surface not blank after undoing everything")
	}
	if m.Undo() {
		t.Fatalf("undo on empty history should be a no-op")
	}

	for range actions {
		m.Redo()
	}
	if !bytes.Equal(dst.Pix, direct.Pix) {
		t.Fatalf("redo did not reproduce the original surface")
	}
	if m.CanRedo() {
		t.Fatalf("redo buffer should be empty")
	}
}

func TestCommitAfterUndoDropsRedo(t *testing.T) {
	m := New(nil)
	actions := sampleActions()
	for _, a := range actions {
		m.Commit(a)
	}
	m.Undo()
	m.Undo()
	if m.RedoLen() != 2 {
		t.Fatalf("redo length = %d, want 2", m.RedoLen())
	}
	m.Commit(penStroke(action.Pt(1, 1), action.Pt(2, 2)))
	if m.CanRedo() || m.Redo() {
		t.Fatalf("redo should be a no-op after a new commit")
	}
	if m.Len() != 2 {
		t.Fatalf("history length = %d, want 2", m.Len())
	}
}

func TestRedoPopsNewestUndone(t *testing.T) {
	m := New(nil)
	actions := sampleActions()
	for _, a := range actions {
		m.Commit(a)
	}
	m.Undo()
	m.Undo()
	m.Redo()
	got := m.Actions()
	if len(got) != 2 || got[1].Tool != action.ToolRectangle {
		t.Fatalf("unexpected history after redo: %+v", got)
	}
	if m.RedoLen() != 1 {
		t.Fatalf("redo length = %d, want 1", m.RedoLen())
	}
}

func TestClearIsIdempotent(t *testing.T) {
	m, dst := surfaceManager(40, 40)
	blank := render.NewSurface(40, 40)
	m.Clear()
	if !bytes.Equal(dst.Pix, blank.Pix) {
		t.Fatalf("clear on empty history left ink")
	}
	for _, a := range sampleActions() {
		m.Commit(a)
	}
	m.Undo()
	m.Clear()
	m.Clear()
	if m.CanUndo() || m.CanRedo() {
		t.Fatalf("clear should empty history and redo")
	}
	if !bytes.Equal(dst.Pix, blank.Pix) {
		t.Fatalf("surface not blank after clear")
	}
}

func TestInvalidCommitIsDropped(t *testing.T) {
	renders := 0
	m := New(func([]action.Action) { renders++ })
	if m.Commit(action.NewStroke(action.ToolPen, "#000000", 3, action.Pt(5, 5))) {
		t.Fatalf("single point stroke should be rejected")
	}
	if m.CanUndo() {
		t.Fatalf("canUndo should stay false after a rejected commit")
	}
	if renders != 0 {
		t.Fatalf("rejected commit triggered %d renders", renders)
	}
}

func TestPenScenario(t *testing.T) {
	m, dst := surfaceManager(30, 30)
	m.Commit(penStroke(action.Pt(0, 0), action.Pt(10, 10), action.Pt(20, 5)))
	before := render.Clone(dst)
	if m.Len() != 1 {
		t.Fatalf("history length = %d, want 1", m.Len())
	}
	m.Undo()
	if m.Len() != 0 || m.RedoLen() != 1 {
		t.Fatalf("after undo: len %d redo %d", m.Len(), m.RedoLen())
	}
	m.Redo()
	if m.Len() != 1 || m.RedoLen() != 0 {
		t.Fatalf("after redo: len %d redo %d", m.Len(), m.RedoLen())
	}
	if !bytes.Equal(dst.Pix, before.Pix) {
		t.Fatalf("surface after redo differs from pre-undo state")
	}
}

func TestCommittedActionsAreCopies(t *testing.T) {
	m := New(nil)
	a := penStroke(action.Pt(0, 0), action.Pt(5, 5))
	m.Commit(a)
	a.Points[0] = action.Pt(100, 100)
	got := m.Actions()
	if got[0].Points[0] != action.Pt(0, 0) {
		t.Fatalf("history aliased the caller's points")
	}
	got[0].Points[1] = action.Pt(9, 9)
	if m.Actions()[0].Points[1] != action.Pt(5, 5) {
		t.Fatalf("Actions exposed internal storage")
	}
}

func TestLoadKeepsValidActions(t *testing.T) {
	renders := 0
	m := New(func([]action.Action) { renders++ })
	m.Commit(penStroke(action.Pt(0, 0), action.Pt(1, 1)))
	m.Undo()
	loaded := append(sampleActions(), action.NewStroke(action.ToolPen, "#000000", 3, action.Pt(0, 0)))
	if n := m.Load(loaded); n != 3 {
		t.Fatalf("Load kept %d actions, want 3", n)
	}
	if m.CanRedo() {
		t.Fatalf("Load should empty the redo buffer")
	}
	if renders != 3 {
		t.Fatalf("renders = %d, want 3", renders)
	}
}
