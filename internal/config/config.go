package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/whiteboard/internal/style"
	"github.com/example/whiteboard/internal/theme"
)

// Notify selects which events raise a desktop notification.
type Notify struct {
	Clear  bool
	Save   bool
	Export bool
	Copy   bool
}

// Canvas is the initial canvas size of the interactive window.
type Canvas struct {
	Width  int
	Height int
}

// Style is the drawing style the interactive window starts with.
type Style struct {
	Tool  string
	Color string
	Width int
}

// Config holds the application configuration.
type Config struct {
	Theme   string
	SaveDir string
	User    string
	Canvas  Canvas
	Style   Style
	Notify  Notify
	Themes  map[string]*theme.Theme
}

const (
	DefaultCanvasWidth  = 1024
	DefaultCanvasHeight = 640
)

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		Canvas: Canvas{Width: DefaultCanvasWidth, Height: DefaultCanvasHeight},
		Themes: make(map[string]*theme.Theme),
	}
}

// Settings converts the [style] section into drawing settings, falling back
// to the defaults for anything missing or invalid.
func (c *Config) Settings() style.Settings {
	s := style.Default()
	if c.Style.Tool != "" {
		if err := s.SetTool(c.Style.Tool); err != nil {
			s.Tool = style.DefaultTool
		}
	}
	if c.Style.Color != "" {
		if err := s.SetColor(c.Style.Color); err != nil {
			s.Color = style.DefaultColor
		}
	}
	if c.Style.Width != 0 {
		s.SetWidth(c.Style.Width)
	}
	return s
}

// ResolveTheme returns the configured theme: a [theme.NAME] section first,
// then a built in theme, then the default.
func (c *Config) ResolveTheme() *theme.Theme {
	if t, ok := c.Themes[c.Theme]; ok {
		return t
	}
	if t, ok := theme.Builtin(c.Theme); ok {
		return t
	}
	return theme.Default()
}

// String implements fmt.Stringer and returns the configuration in RC format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.SaveDir != "" {
		fmt.Fprintf(&sb, "save_dir = %s\n", c.SaveDir)
	}
	if c.User != "" {
		fmt.Fprintf(&sb, "user = %s\n", c.User)
	}
	sb.WriteString("\n")

	sb.WriteString("[canvas]\n")
	fmt.Fprintf(&sb, "width = %d\n", c.Canvas.Width)
	fmt.Fprintf(&sb, "height = %d\n", c.Canvas.Height)
	sb.WriteString("\n")

	if c.Style != (Style{}) {
		sb.WriteString("[style]\n")
		if c.Style.Tool != "" {
			fmt.Fprintf(&sb, "tool = %s\n", c.Style.Tool)
		}
		if c.Style.Color != "" {
			fmt.Fprintf(&sb, "color = %s\n", c.Style.Color)
		}
		if c.Style.Width != 0 {
			fmt.Fprintf(&sb, "width = %d\n", c.Style.Width)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "clear = %v\n", c.Notify.Clear)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "export = %v\n", c.Notify.Export)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	sb.WriteString("\n")

	var names []string
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		for _, kv := range t.Fields() {
			fmt.Fprintf(&sb, "%s = %s\n", kv[0], kv[1])
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// validColor reports whether s is a hex value, palette name or SVG colour name.
func validColor(s string) bool {
	_, err := style.ResolveColor(s)
	return err == nil
}
