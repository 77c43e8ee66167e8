package app

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"os"
	"path/filepath"
	"time"
	"unicode"

	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/mouse"

	"github.com/example/whiteboard/internal/action"
	"github.com/example/whiteboard/internal/board"
	"github.com/example/whiteboard/internal/clipboard"
	"github.com/example/whiteboard/internal/export"
	"github.com/example/whiteboard/internal/notify"
	"github.com/example/whiteboard/internal/render"
	"github.com/example/whiteboard/internal/store"
	"github.com/example/whiteboard/internal/style"
	"github.com/example/whiteboard/internal/theme"
)

const messageDuration = 3 * time.Second

// Controller owns one window's worth of whiteboard state. It lays out the
// toolbar and canvas, routes pointer and key events to the board, and runs
// the save, export and clipboard commands. It never touches the screen.
type Controller struct {
	board    *board.Board
	settings style.Settings
	theme    *theme.Theme
	rd       *render.Renderer

	store     *store.Store
	notifier  *notify.Notifier
	exportDir string
	drawingID string
	name      string

	text         []rune
	message      string
	messageUntil time.Time
	now          func() time.Time

	width, height int
	tools         []Button
	swatches      []Button
	widths        []Button
	commands      []Button
	hover         Button

	copyImage   func(image.Image) error
	copyActions func([]action.Action) error
	paste       func() ([]action.Action, error)
}

// NewController builds a controller from opts. The board is mounted on the
// first Resize.
func NewController(opts ...Option) *Controller {
	o := newOptions(opts)
	c := &Controller{
		board:       board.New(),
		settings:    o.Settings.Normalize(),
		theme:       o.Theme,
		rd:          render.NewRenderer(),
		store:       o.Store,
		notifier:    o.Notifier,
		exportDir:   o.ExportDir,
		drawingID:   o.DrawingID,
		name:        o.Name,
		now:         time.Now,
		copyImage:   clipboard.CopyImage,
		copyActions: clipboard.CopyActions,
		paste:       clipboard.PasteActions,
	}
	if c.theme == nil {
		c.theme = theme.Default()
	}
	if c.notifier == nil {
		c.notifier = notify.New(notify.DefaultPreferences())
	}
	if c.drawingID == "" {
		c.drawingID = store.NewID
	}
	if c.name == "" {
		c.name = store.DefaultName
	}
	if len(o.Actions) > 0 {
		c.board.Load(o.Actions)
	}
	c.buildButtons()
	return c
}

// Board exposes the underlying board.
func (c *Controller) Board() *board.Board { return c.board }

// Settings returns the current drawing style.
func (c *Controller) Settings() style.Settings { return c.settings }

// DrawingID is the store id of the open drawing, store.NewID until saved.
func (c *Controller) DrawingID() string { return c.drawingID }

// Name is the title of the open drawing.
func (c *Controller) Name() string { return c.name }

// Text is the pending text being typed.
func (c *Controller) Text() string { return string(c.text) }

// Message returns the status message while it is still visible.
func (c *Controller) Message() string {
	if c.message == "" || !c.now().Before(c.messageUntil) {
		return ""
	}
	return c.message
}

func (c *Controller) setMessage(format string, args ...any) {
	c.message = fmt.Sprintf(format, args...)
	c.messageUntil = c.now().Add(messageDuration)
}

// canvasRect is the window region the board occupies.
func canvasRect(w, h int) image.Rectangle {
	if w <= toolbarWidth || h <= topHeight+bottomHeight {
		return image.Rectangle{}
	}
	return image.Rect(toolbarWidth, topHeight, w, h-bottomHeight)
}

// Resize lays out the window and remounts the board at the new canvas
// region. History survives; an in-progress interaction is dropped.
func (c *Controller) Resize(w, h int) {
	c.width, c.height = w, h
	c.layout()
	r := canvasRect(w, h)
	if r.Empty() {
		c.board.Unmount()
		return
	}
	c.text = nil
	c.board.Resize(r)
}

func (c *Controller) buildButtons() {
	c.tools = c.tools[:0]
	for _, t := range action.Tools() {
		t := t
		c.tools = append(c.tools, &labelButton{
			label: toolLabel(t),
			baseButton: baseButton{
				onClick:  func() { c.selectTool(t) },
				selected: func() bool { return c.settings.Tool == t },
			},
		})
	}
	c.swatches = c.swatches[:0]
	for _, pc := range style.Palette() {
		hex := action.Hex(pc.Color)
		c.swatches = append(c.swatches, &swatchButton{
			entry: pc,
			baseButton: baseButton{
				onClick:  func() { c.selectColor(hex) },
				selected: func() bool { return c.settings.Color == hex },
			},
		})
	}
	c.widths = c.widths[:0]
	for _, w := range style.WidthOptions() {
		w := w
		c.widths = append(c.widths, &widthButton{
			width: w,
			color: func() color.RGBA {
				col, _ := action.ParseColor(c.settings.Color)
				return col
			},
			baseButton: baseButton{
				onClick:  func() { c.settings.SetWidth(w) },
				selected: func() bool { return c.settings.Width == w },
			},
		})
	}
	c.commands = c.commands[:0]
	for _, cmd := range commands {
		cmd := cmd
		b := &labelButton{label: cmd.name, baseButton: baseButton{onClick: func() { cmd.run(c) }}}
		if cmd.ready != nil {
			b.enabled = func() bool { return cmd.ready(c) }
		}
		c.commands = append(c.commands, b)
	}
}

func (c *Controller) layout() {
	y := topHeight + 4
	for _, b := range c.tools {
		b.SetRect(image.Rect(4, y, toolbarWidth-4, y+toolHeight))
		y += toolHeight + 2
	}
	y += 6
	perRow := (toolbarWidth - 4) / (swatchSize + 4)
	for i, b := range c.swatches {
		x := 4 + (i%perRow)*(swatchSize+4)
		row := y + (i/perRow)*(swatchSize+4)
		b.SetRect(image.Rect(x, row, x+swatchSize, row+swatchSize))
	}
	y += ((len(c.swatches) + perRow - 1) / perRow) * (swatchSize + 4)
	y += 6
	for _, b := range c.widths {
		b.SetRect(image.Rect(4, y, toolbarWidth-4, y+widthRowH))
		y += widthRowH + 2
	}
	x := toolbarWidth + 4
	for i, b := range c.commands {
		w := labelWidth(commands[i].name) + commandPad
		b.SetRect(image.Rect(x, 2, x+w, topHeight-2))
		x += w + 4
	}
}

func (c *Controller) buttons() []Button {
	all := make([]Button, 0, len(c.tools)+len(c.swatches)+len(c.widths)+len(c.commands))
	all = append(all, c.tools...)
	all = append(all, c.swatches...)
	all = append(all, c.widths...)
	return append(all, c.commands...)
}

func (c *Controller) buttonAt(p image.Point) Button {
	for _, b := range c.buttons() {
		if p.In(b.Rect()) {
			return b
		}
	}
	return nil
}

func (c *Controller) selectTool(t action.Tool) {
	c.commitText()
	c.settings.Tool = t
}

func (c *Controller) selectColor(hex string) {
	if err := c.settings.SetColor(hex); err != nil {
		log.Printf("select colour: %v", err)
	}
}

// Mouse routes a pointer event. It reports whether the window needs a
// repaint.
func (c *Controller) Mouse(e mouse.Event) bool {
	p := image.Pt(int(e.X), int(e.Y))
	ev := board.PointerEvent{X: float64(e.X), Y: float64(e.Y)}
	canvas := c.board.Bounds()

	if c.board.State() == board.StateDrawing {
		switch {
		case e.Direction == mouse.DirRelease && e.Button == mouse.ButtonLeft:
			ev.Kind = board.PointerUp
		case !p.In(canvas):
			ev.Kind = board.PointerLeave
		case e.Direction == mouse.DirNone:
			ev.Kind = board.PointerMove
		default:
			return false
		}
		c.board.Handle(ev, c.settings)
		return true
	}

	if p.In(canvas) {
		changed := c.setHover(nil)
		if e.Direction == mouse.DirPress && e.Button == mouse.ButtonLeft {
			before := c.board.State()
			ev.Kind = board.PointerDown
			c.board.Handle(ev, c.settings)
			if before != board.StateTextPending && c.board.State() == board.StateTextPending {
				c.text = nil
			}
			return true
		}
		return changed
	}

	b := c.buttonAt(p)
	changed := c.setHover(b)
	if b != nil && e.Direction == mouse.DirPress && e.Button == mouse.ButtonLeft && b.Enabled() {
		b.Activate()
		return true
	}
	return changed
}

// PointerLeft commits an in-progress interaction when the pointer is lost,
// for example when the window loses focus.
func (c *Controller) PointerLeft() bool {
	changed := c.setHover(nil)
	if c.board.State() != board.StateDrawing {
		return changed
	}
	c.board.Handle(board.PointerEvent{Kind: board.PointerLeave}, c.settings)
	return true
}

func (c *Controller) setHover(b Button) bool {
	if c.hover == b {
		return false
	}
	c.hover = b
	return true
}

// Key handles a key event. While text is pending keys edit the text;
// otherwise they run shortcuts. It reports whether a repaint is needed.
func (c *Controller) Key(e key.Event) bool {
	switch {
	case e.Direction == key.DirRelease, c.board.State() == board.StateDrawing:
		return false
	case c.board.State() == board.StateTextPending:
		return c.textKey(e)
	}
	for _, cmd := range commands {
		for _, k := range cmd.keys {
			if k.matches(e) {
				if cmd.ready == nil || cmd.ready(c) {
					cmd.run(c)
				}
				return true
			}
		}
	}
	if e.Modifiers&modMask != 0 {
		return false
	}
	for _, ts := range toolShortcuts {
		if e.Code == ts.code {
			c.selectTool(ts.tool)
			return true
		}
	}
	if d := e.Code - key.Code1; d >= 0 && int(d) < len(style.WidthOptions()) {
		c.settings.SetWidth(style.WidthOptions()[d])
		return true
	}
	return false
}

func (c *Controller) textKey(e key.Event) bool {
	switch e.Code {
	case key.CodeReturnEnter, key.CodeKeypadEnter:
		c.board.ConfirmText(string(c.text), c.settings)
		if c.board.State() != board.StateTextPending {
			c.text = nil
		}
	case key.CodeEscape:
		c.board.CancelText()
		c.text = nil
	case key.CodeDeleteBackspace:
		if n := len(c.text); n > 0 {
			c.text = c.text[:n-1]
		}
	default:
		if e.Modifiers&(key.ModControl|key.ModMeta) != 0 || e.Rune <= 0 || !unicode.IsPrint(e.Rune) {
			return false
		}
		c.text = append(c.text, e.Rune)
	}
	return true
}

// commitText confirms pending text before the tool changes, abandoning the
// text position when nothing was typed.
func (c *Controller) commitText() {
	if c.board.State() != board.StateTextPending {
		return
	}
	if len(c.text) == 0 {
		c.board.CancelText()
		return
	}
	c.board.ConfirmText(string(c.text), c.settings)
	c.text = nil
}

// Undo reverts the most recent action.
func (c *Controller) Undo() {
	if c.board.Undo() {
		c.setMessage("Undo")
	}
}

// Redo re-applies the most recently undone action.
func (c *Controller) Redo() {
	if c.board.Redo() {
		c.setMessage("Redo")
	}
}

// Clear empties the canvas and its history.
func (c *Controller) Clear() {
	c.text = nil
	c.board.Clear()
	c.setMessage("Cleared")
	c.notifier.Clear()
}

// Save writes the drawing to the store.
func (c *Controller) Save() {
	if c.store == nil {
		c.setMessage("No store configured")
		return
	}
	snap, err := c.board.Snapshot()
	if err != nil {
		c.fail("save", err)
		return
	}
	d, err := c.store.Save(store.Drawing{
		ID:        c.drawingID,
		Name:      c.name,
		Thumbnail: snap.Thumbnail,
		Actions:   snap.Actions,
	})
	if err != nil {
		c.fail("save", err)
		return
	}
	c.drawingID, c.name = d.ID, d.Name
	c.setMessage("Saved %s", d.Name)
	c.notifier.Save(d.Name)
}

// Export writes the canvas as a PNG into the export directory.
func (c *Controller) Export() {
	img := c.board.Image()
	if img == nil {
		return
	}
	var buf bytes.Buffer
	if err := export.WritePNG(&buf, img); err != nil {
		c.fail("export", err)
		return
	}
	dir := c.exportDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		c.fail("export", err)
		return
	}
	path := filepath.Join(dir, export.Filename(c.name, string(export.FormatPNG)))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		c.fail("export", err)
		return
	}
	c.setMessage("Exported %s", path)
	c.notifier.Export(path)
}

// Copy places the canvas image on the clipboard.
func (c *Controller) Copy() {
	img := c.board.Image()
	if img == nil {
		return
	}
	if err := c.copyImage(img); err != nil {
		c.fail("copy", err)
		return
	}
	c.setMessage("Copied image")
	c.notifier.Copy("image", img)
}

// CopyActions places the committed actions on the clipboard as JSON.
func (c *Controller) CopyActions() {
	actions := c.board.Actions()
	if err := c.copyActions(actions); err != nil {
		c.fail("copy", err)
		return
	}
	c.setMessage("Copied %d actions", len(actions))
	c.notifier.Copy(fmt.Sprintf("%d actions", len(actions)), nil)
}

// Paste appends actions from the clipboard to the drawing.
func (c *Controller) Paste() {
	pasted, err := c.paste()
	if err != nil {
		c.fail("paste", err)
		return
	}
	kept := c.board.Load(append(c.board.Actions(), pasted...))
	c.setMessage("Pasted, %d actions", kept)
}

func (c *Controller) fail(op string, err error) {
	log.Printf("%s: %v", op, err)
	c.setMessage("%s failed: %v", title(op), err)
}

// Compose draws the whole window into dst, which must cover the window
// size given to Resize.
func (c *Controller) Compose(dst *image.RGBA) {
	th := c.theme
	draw.Draw(dst, dst.Bounds(), &image.Uniform{th.Background}, image.Point{}, draw.Src)
	bar := &image.Uniform{th.ToolbarBackground}
	draw.Draw(dst, image.Rect(0, 0, c.width, topHeight), bar, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(0, topHeight, toolbarWidth, c.height), bar, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(toolbarWidth, c.height-bottomHeight, c.width, c.height), bar, image.Point{}, draw.Src)

	if surf := c.board.Surface(); surf != nil {
		r := c.board.Bounds()
		draw.Draw(dst, r, surf, surf.Bounds().Min, draw.Src)
		c.drawPendingText(dst, r)
	}

	for _, b := range c.buttons() {
		b.Draw(dst, th, c.buttonState(b))
	}

	nameX := c.width - labelWidth(c.name) - 8
	if len(c.commands) > 0 {
		nameX = max(nameX, c.commands[len(c.commands)-1].Rect().Max.X+12)
	}
	drawLabel(dst, c.name, nameX, labelBaseline+2, th.Foreground)
	drawLabel(dst, c.status(), toolbarWidth+6, c.height-6, th.Foreground)
}

func (c *Controller) buttonState(b Button) ButtonState {
	switch {
	case !b.Enabled():
		return StateDisabled
	case b.Selected():
		return StateActive
	case b == c.hover:
		return StateHover
	}
	return StateDefault
}

func (c *Controller) status() string {
	if msg := c.Message(); msg != "" {
		return msg
	}
	switch c.board.State() {
	case board.StateTextPending:
		return "Type text, Enter to place, Esc to cancel"
	case board.StateDrawing:
		return fmt.Sprintf("Drawing with %s", c.settings)
	}
	return c.settings.String()
}

// drawPendingText previews the text being typed with a caret after it.
func (c *Controller) drawPendingText(dst *image.RGBA, canvas image.Rectangle) {
	pos, ok := c.board.TextPosition()
	if !ok {
		return
	}
	anchor := action.Pt(pos.X+float64(canvas.Min.X), pos.Y+float64(canvas.Min.Y))
	clip, _ := dst.SubImage(canvas).(*image.RGBA)
	if clip == nil {
		return
	}
	width := 0
	if len(c.text) > 0 {
		a := action.NewText(c.settings.Color, c.settings.Width, anchor, string(c.text))
		c.rd.Paint(clip, a)
		if w, _, err := c.rd.MeasureText(string(c.text), c.settings.Width); err == nil {
			width = w
		}
	}
	size := int(float64(c.settings.Width*action.FontScale) * 0.8)
	x := int(anchor.X) + width + 1
	caret := image.Rect(x, int(anchor.Y)-size, x+1, int(anchor.Y)+2)
	draw.Draw(clip, caret, &image.Uniform{c.theme.Caret}, image.Point{}, draw.Src)
}
