package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/example/whiteboard/internal/app"
	"github.com/example/whiteboard/internal/store"
)

type openCmd struct {
	*root
	fs *flag.FlagSet

	id          string
	file        string
	name        string
	width       int
	height      int
	tool        string
	color       string
	strokeWidth int
}

func parseOpenCmd(args []string, r *root) (*openCmd, error) {
	fs := flag.NewFlagSet("open", flag.ContinueOnError)
	c := &openCmd{root: r, fs: fs}
	settings := r.config.Settings()
	fs.StringVar(&c.file, "file", "", "start from an action-list JSON file")
	fs.StringVar(&c.name, "name", "", "name used when saving and exporting")
	fs.StringVar(&c.tool, "tool", string(settings.Tool), "initial tool")
	fs.StringVar(&c.color, "color", settings.Color, "initial color (#RRGGBB or name)")
	fs.IntVar(&c.strokeWidth, "stroke", settings.Width, "initial stroke width")
	r.canvasFlags(fs, &c.width, &c.height)
	fs.Usage = usageFunc(c)
	if err := parseFlags(c, fs, args); err != nil {
		return nil, err
	}
	switch fs.NArg() {
	case 0:
	case 1:
		c.id = fs.Arg(0)
	default:
		return nil, &UsageError{of: c}
	}
	if c.id != "" && c.file != "" {
		return nil, usageErrorf(c, "an id and -file cannot be combined")
	}
	if err := checkCanvas(c, c.width, c.height); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *openCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *openCmd) Run() error {
	settings := c.config.Settings()
	if err := settings.SetTool(c.tool); err != nil {
		return err
	}
	if err := settings.SetColor(c.color); err != nil {
		return err
	}
	settings.SetWidth(c.strokeWidth)

	d := store.Drawing{ID: store.NewID}
	if c.id != "" || c.file != "" {
		var err error
		if d, err = c.loadDrawing(c.id, c.file); err != nil {
			return err
		}
	}
	if c.name != "" {
		d.Name = c.name
	}

	a := app.New(
		app.WithSettings(settings),
		app.WithTheme(c.activeTheme),
		app.WithStore(c.store()),
		app.WithNotifier(c.notifier),
		app.WithExportDir(c.dataDir()),
		app.WithDrawing(d),
		app.WithCanvasSize(c.width, c.height),
		app.WithOnClose(func() { fmt.Fprintln(os.Stderr, "window closed") }),
	)
	a.Run()
	if a.DrawingID() != store.NewID {
		fmt.Fprintf(os.Stderr, "drawing %s (%s)\n", a.Name(), a.DrawingID())
	}
	return nil
}
