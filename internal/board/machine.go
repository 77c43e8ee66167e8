package board

import (
	"github.com/example/whiteboard/internal/action"
	"github.com/example/whiteboard/internal/history"
	"github.com/example/whiteboard/internal/style"
)

// State is the interaction state of a Machine.
type State int

const (
	StateIdle State = iota
	StateDrawing
	StateTextPending
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDrawing:
		return "drawing"
	case StateTextPending:
		return "text-pending"
	}
	return "unknown"
}

// EventKind identifies a pointer event.
type EventKind int

const (
	PointerDown EventKind = iota
	PointerMove
	PointerUp
	PointerLeave
)

func (k EventKind) String() string {
	switch k {
	case PointerDown:
		return "down"
	case PointerMove:
		return "move"
	case PointerUp:
		return "up"
	case PointerLeave:
		return "leave"
	}
	return "unknown"
}

// PointerEvent is a pointer event at (X, Y). Machine expects canvas-local
// coordinates; Board accepts client coordinates and converts them.
type PointerEvent struct {
	Kind EventKind
	X, Y float64
}

// Painter draws previews for a Machine.
type Painter interface {
	// BeginStroke starts incremental painting of a freehand stroke.
	BeginStroke(a action.Action)
	// ExtendStroke paints the segments added since the previous call.
	ExtendStroke(a action.Action)
	// EndStroke stops incremental painting.
	EndStroke()
	// Preview repaints the committed history with a on top.
	Preview(a action.Action)
	// Repaint repaints the committed history.
	Repaint()
}

// Machine turns pointer events into actions. The pending action lives only
// in the machine and is handed to the history manager on commit.
type Machine struct {
	hist    *history.Manager
	painter Painter

	state   State
	pending action.Action
	textAt  action.Point
}

// NewMachine returns an idle Machine committing into h. A nil painter
// disables previews.
func NewMachine(h *history.Manager, p Painter) *Machine {
	if p == nil {
		p = nopPainter{}
	}
	return &Machine{hist: h, painter: p}
}

// State reports the current state.
func (m *Machine) State() State { return m.state }

// Pending returns a copy of the action under construction.
func (m *Machine) Pending() (action.Action, bool) {
	if m.state != StateDrawing {
		return action.Action{}, false
	}
	return m.pending.Clone(), true
}

// TextPosition returns the anchor recorded for pending text input.
func (m *Machine) TextPosition() (action.Point, bool) {
	return m.textAt, m.state == StateTextPending
}

// Handle applies ev using the style in s for any action it creates.
// Events that make no sense in the current state are ignored.
func (m *Machine) Handle(ev PointerEvent, s style.Settings) {
	p := action.Pt(ev.X, ev.Y)
	switch m.state {
	case StateIdle:
		if ev.Kind == PointerDown {
			m.begin(p, s)
		}
	case StateDrawing:
		switch ev.Kind {
		case PointerMove:
			m.extend(p)
		case PointerUp, PointerLeave:
			m.commit()
		}
	}
}

func (m *Machine) begin(p action.Point, s style.Settings) {
	switch {
	case s.Tool == action.ToolText:
		m.textAt = p
		m.state = StateTextPending
	case s.Tool.Freehand():
		m.pending = action.NewStroke(s.Tool, s.Color, s.Width, p)
		m.state = StateDrawing
		m.painter.BeginStroke(m.pending)
	case s.Tool.Shape():
		m.pending = action.NewShape(s.Tool, s.Color, s.Width, p)
		m.state = StateDrawing
	}
}

func (m *Machine) extend(p action.Point) {
	if m.pending.Tool.Freehand() {
		m.pending.Points = append(m.pending.Points, p)
		m.painter.ExtendStroke(m.pending)
		return
	}
	end := p
	m.pending.End = &end
	m.painter.Preview(m.pending)
}

func (m *Machine) commit() {
	a := m.pending
	if a.Tool.Freehand() {
		m.painter.EndStroke()
	}
	m.pending = action.Action{}
	m.state = StateIdle
	if !m.hist.Commit(a) {
		m.painter.Repaint()
	}
}

// ConfirmText commits text at the recorded position. Empty text commits
// nothing and keeps the machine waiting for input. It reports whether an
// action was committed.
func (m *Machine) ConfirmText(text string, s style.Settings) bool {
	if m.state != StateTextPending || text == "" {
		return false
	}
	m.state = StateIdle
	return m.hist.Commit(action.NewText(s.Color, s.Width, m.textAt, text))
}

// CancelText abandons pending text input.
func (m *Machine) CancelText() {
	if m.state == StateTextPending {
		m.state = StateIdle
	}
}

// Reset drops any pending interaction without committing it.
func (m *Machine) Reset() {
	if m.state == StateDrawing && m.pending.Tool.Freehand() {
		m.painter.EndStroke()
	}
	m.pending = action.Action{}
	m.state = StateIdle
}

type nopPainter struct{}

func (nopPainter) BeginStroke(action.Action)  {}
func (nopPainter) ExtendStroke(action.Action) {}
func (nopPainter) EndStroke()                 {}
func (nopPainter) Preview(action.Action)      {}
func (nopPainter) Repaint()                   {}
