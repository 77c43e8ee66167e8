// Package app hosts a whiteboard in a desktop window.
package app

import (
	"image"
	"log"
	"sync"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/mouse"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/example/whiteboard/internal/action"
	"github.com/example/whiteboard/internal/notify"
	"github.com/example/whiteboard/internal/store"
	"github.com/example/whiteboard/internal/style"
	"github.com/example/whiteboard/internal/theme"
)

const (
	defaultWidth  = 1024 + toolbarWidth
	defaultHeight = 640 + topHeight + bottomHeight
)

type options struct {
	Settings  style.Settings
	Theme     *theme.Theme
	Store     *store.Store
	Notifier  *notify.Notifier
	ExportDir string
	DrawingID string
	Name      string
	Actions   []action.Action
	Width     int
	Height    int
	OnClose   func()
}

func newOptions(opts []Option) options {
	o := options{Settings: style.Default(), Width: defaultWidth, Height: defaultHeight}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Option modifies the application during creation.
type Option func(*options)

// WithSettings sets the initial tool, colour and width.
func WithSettings(s style.Settings) Option { return func(o *options) { o.Settings = s } }

// WithTheme sets the window colours.
func WithTheme(t *theme.Theme) Option { return func(o *options) { o.Theme = t } }

// WithStore sets where drawings are saved.
func WithStore(s *store.Store) Option { return func(o *options) { o.Store = s } }

// WithNotifier sets the desktop notifier.
func WithNotifier(n *notify.Notifier) Option { return func(o *options) { o.Notifier = n } }

// WithExportDir sets the directory PNG exports are written to.
func WithExportDir(dir string) Option { return func(o *options) { o.ExportDir = dir } }

// WithDrawing opens a saved drawing.
func WithDrawing(d store.Drawing) Option {
	return func(o *options) {
		o.DrawingID = d.ID
		o.Name = d.Name
		o.Actions = d.Actions
	}
}

// WithCanvasSize sets the initial canvas size in pixels. The window adds
// room for the toolbars.
func WithCanvasSize(w, h int) Option {
	return func(o *options) {
		if w > 0 && h > 0 {
			o.Width = w + toolbarWidth
			o.Height = h + topHeight + bottomHeight
		}
	}
}

// WithOnClose registers a callback invoked when the window closes.
func WithOnClose(fn func()) Option { return func(o *options) { o.OnClose = fn } }

// App is a whiteboard window.
type App struct {
	*Controller
	startW, startH int

	onClose   func()
	closeOnce sync.Once
}

// New creates an App with the provided options.
func New(opts ...Option) *App {
	o := newOptions(opts)
	return &App{
		Controller: NewController(opts...),
		startW:     o.Width,
		startH:     o.Height,
		onClose:    o.OnClose,
	}
}

// Run opens the window and blocks until it is closed.
func (a *App) Run() {
	driver.Main(a.Main)
}

func (a *App) notifyClose() {
	a.closeOnce.Do(func() {
		if a.onClose != nil {
			a.onClose()
		}
	})
}

// Main runs the event loop on s.
func (a *App) Main(s screen.Screen) {
	defer a.notifyClose()
	w, err := s.NewWindow(&screen.NewWindowOptions{
		Width:  a.startW,
		Height: a.startH,
		Title:  "Whiteboard - " + a.Name(),
	})
	if err != nil {
		log.Printf("new window: %v", err)
		return
	}
	defer w.Release()

	for {
		switch e := w.NextEvent().(type) {
		case lifecycle.Event:
			if e.To == lifecycle.StageDead {
				return
			}
			if e.Crosses(lifecycle.StageFocused) == lifecycle.CrossOff && a.PointerLeft() {
				w.Send(paint.Event{})
			}
		case size.Event:
			a.Resize(e.WidthPx, e.HeightPx)
			w.Send(paint.Event{})
		case paint.Event:
			a.drawFrame(s, w)
		case mouse.Event:
			if a.Mouse(e) {
				w.Send(paint.Event{})
			}
		case key.Event:
			if a.Key(e) {
				w.Send(paint.Event{})
			}
		case error:
			log.Printf("window: %v", e)
		}
	}
}

func (a *App) drawFrame(s screen.Screen, w screen.Window) {
	if a.width <= 0 || a.height <= 0 {
		return
	}
	b, err := s.NewBuffer(image.Pt(a.width, a.height))
	if err != nil {
		log.Printf("new buffer: %v", err)
		return
	}
	defer b.Release()
	a.Compose(b.RGBA())
	w.Upload(image.Point{}, b, b.Bounds())
	w.Publish()
}
