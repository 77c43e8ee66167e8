package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/example/whiteboard/internal/clipboard"
	"github.com/example/whiteboard/internal/export"
)

var copyImageFn = clipboard.CopyImage

type renderCmd struct {
	*root
	fs *flag.FlagSet

	id     string
	file   string
	output string
	width  int
	height int
}

func parseRenderCmd(args []string, r *root) (*renderCmd, error) {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	c := &renderCmd{root: r, fs: fs}
	fs.StringVar(&c.file, "file", "", "action-list JSON file to render, - for stdin")
	fs.StringVar(&c.output, "o", "", "output PNG path, - for stdout (default <name>.png)")
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
	if (c.id == "") == (c.file == "") {
		return nil, usageErrorf(c, "exactly one of a drawing id or -file is required")
	}
	if err := checkCanvas(c, c.width, c.height); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *renderCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *renderCmd) Run() error {
	d, err := c.loadDrawing(c.id, c.file)
	if err != nil {
		return err
	}
	data, err := export.PNG(d.Actions, c.width, c.height)
	if err != nil {
		return err
	}
	out := c.output
	if out == "" {
		out = export.Filename(d.Name, string(export.FormatPNG))
	}
	if err := c.writeOutput(out, data); err != nil {
		return err
	}
	if out != "-" {
		fmt.Fprintf(os.Stderr, "rendered %d actions to %s\n", len(d.Actions), out)
	}
	return nil
}

type exportCmd struct {
	*root
	fs *flag.FlagSet

	id          string
	format      export.Format
	output      string
	width       int
	height      int
	toClipboard bool
}

func parseExportCmd(args []string, r *root) (*exportCmd, error) {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	c := &exportCmd{root: r, fs: fs}
	format := fs.String("format", string(export.FormatPNG), "png or pdf")
	fs.StringVar(&c.output, "o", "", "output path, - for stdout (default <save dir>/<name>.<format>)")
	fs.BoolVar(&c.toClipboard, "to-clipboard", false, "copy the PNG to the clipboard instead of writing a file")
	r.canvasFlags(fs, &c.width, &c.height)
	fs.Usage = usageFunc(c)
	if err := parseFlags(c, fs, args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, &UsageError{of: c}
	}
	c.id = fs.Arg(0)
	f, err := export.ParseFormat(*format)
	if err != nil {
		return nil, usageErrorf(c, "%v", err)
	}
	c.format = f
	if c.toClipboard && (c.format != export.FormatPNG || c.output != "") {
		return nil, usageErrorf(c, "-to-clipboard only copies PNG and takes no -o")
	}
	if err := checkCanvas(c, c.width, c.height); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *exportCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *exportCmd) Run() error {
	d, err := c.loadDrawing(c.id, "")
	if err != nil {
		return err
	}
	if c.toClipboard {
		img, err := export.RenderImage(d.Actions, c.width, c.height)
		if err != nil {
			return err
		}
		if err := copyImageFn(img); err != nil {
			return fmt.Errorf("copy %s: %w", d.Name, err)
		}
		fmt.Fprintf(os.Stderr, "copied %s to the clipboard\n", d.Name)
		c.notifier.Copy(d.Name, img)
		return nil
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, c.format, d.Actions, c.width, c.height); err != nil {
		return err
	}
	out := c.output
	if out == "" {
		out = filepath.Join(c.dataDir(), export.Filename(d.Name, string(c.format)))
	}
	if err := c.writeOutput(out, buf.Bytes()); err != nil {
		return err
	}
	if out != "-" {
		fmt.Fprintf(os.Stderr, "exported %s to %s\n", d.Name, out)
		c.notifier.Export(out)
	}
	return nil
}
