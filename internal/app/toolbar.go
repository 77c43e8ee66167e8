package app

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/example/whiteboard/internal/action"
	"github.com/example/whiteboard/internal/style"
	"github.com/example/whiteboard/internal/theme"
)

const (
	toolbarWidth  = 96
	topHeight     = 28
	bottomHeight  = 22
	toolHeight    = 22
	swatchSize    = 18
	widthRowH     = 18
	commandPad    = 10
	labelBaseline = 15
)

// ButtonState describes the visual state of a button.
type ButtonState int

const (
	StateDefault ButtonState = iota
	StateHover
	StateActive
	StateDisabled
)

// Button is a clickable toolbar element.
type Button interface {
	Draw(dst *image.RGBA, th *theme.Theme, state ButtonState)
	Rect() image.Rectangle
	SetRect(r image.Rectangle)
	Activate()
	// Selected reports whether the button shows the current choice.
	Selected() bool
	Enabled() bool
}

type baseButton struct {
	rect     image.Rectangle
	onClick  func()
	selected func() bool
	enabled  func() bool
}

func (b *baseButton) Rect() image.Rectangle     { return b.rect }
func (b *baseButton) SetRect(r image.Rectangle) { b.rect = r }

func (b *baseButton) Activate() {
	if b.onClick != nil && b.Enabled() {
		b.onClick()
	}
}

func (b *baseButton) Selected() bool { return b.selected != nil && b.selected() }
func (b *baseButton) Enabled() bool  { return b.enabled == nil || b.enabled() }

func (b *baseButton) background(dst *image.RGBA, th *theme.Theme, state ButtonState) {
	c := th.ButtonBackground
	switch state {
	case StateHover:
		c = blend(th.ButtonBackground, th.ButtonActive)
	case StateActive:
		c = th.ButtonActive
	case StateDisabled:
		c = th.ButtonDisabled
	}
	draw.Draw(dst, b.rect, &image.Uniform{c}, image.Point{}, draw.Src)
	drawRect(dst, b.rect, th.ButtonBorder)
}

// labelButton is a tool or command button with a text label.
type labelButton struct {
	baseButton
	label string
}

func (lb *labelButton) Draw(dst *image.RGBA, th *theme.Theme, state ButtonState) {
	lb.background(dst, th, state)
	drawLabel(dst, lb.label, lb.rect.Min.X+5, lb.rect.Min.Y+labelBaseline, th.ButtonText)
}

// swatchButton selects a palette colour.
type swatchButton struct {
	baseButton
	entry style.PaletteColor
}

func (sb *swatchButton) Draw(dst *image.RGBA, th *theme.Theme, state ButtonState) {
	draw.Draw(dst, sb.rect, &image.Uniform{sb.entry.Color}, image.Point{}, draw.Src)
	border := th.ButtonBorder
	if state == StateActive || state == StateHover {
		border = th.ButtonActive
	}
	drawRect(dst, sb.rect, border)
	if state == StateActive {
		drawRect(dst, sb.rect.Inset(2), th.ButtonActive)
	}
}

// widthButton selects a stroke width and shows a sample line.
type widthButton struct {
	baseButton
	width int
	color func() color.RGBA
}

func (wb *widthButton) Draw(dst *image.RGBA, th *theme.Theme, state ButtonState) {
	wb.background(dst, th, state)
	drawLabel(dst, fmt.Sprintf("%d", wb.width), wb.rect.Min.X+4, wb.rect.Min.Y+13, th.ButtonText)
	h := min(wb.width, wb.rect.Dy()-4)
	mid := wb.rect.Min.Y + wb.rect.Dy()/2
	line := image.Rect(wb.rect.Min.X+26, mid-h/2, wb.rect.Max.X-4, mid-h/2+max(h, 1))
	draw.Draw(dst, line, &image.Uniform{wb.color()}, image.Point{}, draw.Src)
}

func drawLabel(dst *image.RGBA, s string, x, y int, c color.Color) {
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(c), Face: basicfont.Face7x13, Dot: fixed.P(x, y)}
	d.DrawString(s)
}

func labelWidth(s string) int {
	d := &font.Drawer{Face: basicfont.Face7x13}
	return d.MeasureString(s).Ceil()
}

func drawRect(dst *image.RGBA, r image.Rectangle, c color.Color) {
	u := &image.Uniform{c}
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Max.X, r.Min.Y+1), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Max.Y-1, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y), u, image.Point{}, draw.Src)
	draw.Draw(dst, image.Rect(r.Max.X-1, r.Min.Y, r.Max.X, r.Max.Y), u, image.Point{}, draw.Src)
}

func blend(a, b color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8((uint16(a.R) + uint16(b.R)) / 2),
		G: uint8((uint16(a.G) + uint16(b.G)) / 2),
		B: uint8((uint16(a.B) + uint16(b.B)) / 2),
		A: 255,
	}
}

// toolLabel is the toolbar text for a tool, prefixed by its shortcut key.
func toolLabel(t action.Tool) string {
	for _, ts := range toolShortcuts {
		if ts.tool == t {
			return fmt.Sprintf("%c %s", ts.label, title(string(t)))
		}
	}
	return title(string(t))
}

func title(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
