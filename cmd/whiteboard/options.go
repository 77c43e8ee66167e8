package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/example/whiteboard/internal/action"
	"github.com/example/whiteboard/internal/board"
	"github.com/example/whiteboard/internal/store"
	"github.com/example/whiteboard/internal/style"
)

type colorsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseColorsCmd(args []string, r *root) (*colorsCmd, error) {
	fs := flag.NewFlagSet("colors", flag.ContinueOnError)
	cmd := &colorsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := parseFlags(cmd, fs, args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *colorsCmd) Run() error {
	current := c.config.Settings().Color
	fmt.Fprintln(c.stdout, "available palette colors (* marks the configured color):")
	for idx, entry := range style.Palette() {
		hex := action.Hex(entry.Color)
		marker := " "
		if hex == current {
			marker = "*"
		}
		block := fmt.Sprintf("\x1b[48;2;%d;%d;%dm  \x1b[0m", entry.Color.R, entry.Color.G, entry.Color.B)
		fmt.Fprintf(c.stdout, "%s %2d: %-12s %s %s\n", marker, idx, entry.Name, hex, block)
	}
	fmt.Fprintln(c.stdout, "any #RRGGBB value or CSS color name is also accepted")
	return nil
}

func (c *colorsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

type widthsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseWidthsCmd(args []string, r *root) (*widthsCmd, error) {
	fs := flag.NewFlagSet("widths", flag.ContinueOnError)
	cmd := &widthsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := parseFlags(cmd, fs, args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *widthsCmd) Run() error {
	current := c.config.Settings().Width
	fmt.Fprintln(c.stdout, "available stroke widths (* marks the configured width):")
	for _, width := range style.WidthOptions() {
		marker := " "
		if width == current {
			marker = "*"
		}
		fmt.Fprintf(c.stdout, "%s %3dpx  text %dpx\n", marker, width, width*action.FontScale)
	}
	fmt.Fprintf(c.stdout, "widths are clamped to %d..%d\n", action.MinWidth, action.MaxWidth)
	return nil
}

func (c *widthsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

type toolsCmd struct {
	*root
	fs *flag.FlagSet
}

func parseToolsCmd(args []string, r *root) (*toolsCmd, error) {
	fs := flag.NewFlagSet("tools", flag.ContinueOnError)
	cmd := &toolsCmd{root: r, fs: fs}
	fs.Usage = usageFunc(cmd)
	if err := parseFlags(cmd, fs, args); err != nil {
		return nil, err
	}
	if fs.NArg() != 0 {
		return nil, &UsageError{of: cmd}
	}
	return cmd, nil
}

func (c *toolsCmd) Run() error {
	current := c.config.Settings().Tool
	fmt.Fprintln(c.stdout, "available tools (* marks the configured tool):")
	for _, t := range action.Tools() {
		marker := " "
		if t == current {
			marker = "*"
		}
		fmt.Fprintf(c.stdout, "%s %-10s %s\n", marker, t, t.Kind())
	}
	return nil
}

func (c *toolsCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

// canvasFlags registers -width and -height defaulting to the configured
// canvas.
func (r *root) canvasFlags(fs *flag.FlagSet, w, h *int) {
	fs.IntVar(w, "width", r.config.Canvas.Width, "canvas width in pixels")
	fs.IntVar(h, "height", r.config.Canvas.Height, "canvas height in pixels")
}

func checkCanvas(of HelpData, w, h int) error {
	if w <= 0 || h <= 0 {
		return usageErrorf(of, "canvas size must be positive, got %dx%d", w, h)
	}
	return nil
}

// loadDrawing reads a saved drawing by id, or an action-list file when id
// is empty. Invalid actions in the source are dropped.
func (r *root) loadDrawing(id, file string) (store.Drawing, error) {
	var d store.Drawing
	switch {
	case id != "":
		got, err := r.store().Get(id)
		if err != nil {
			return store.Drawing{}, err
		}
		d = got
	case file != "":
		data, err := readInput(file)
		if err != nil {
			return store.Drawing{}, err
		}
		actions, err := action.Decode(data)
		if err != nil {
			return store.Drawing{}, fmt.Errorf("%s: %w", file, err)
		}
		d = store.Drawing{ID: store.NewID, Name: strings.TrimSuffix(baseName(file), ".json"), Actions: actions}
	default:
		return store.Drawing{}, fmt.Errorf("a drawing id or -file is required")
	}
	b := board.New()
	b.Load(d.Actions)
	d.Actions = b.Actions()
	return d, nil
}
