package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/example/whiteboard/internal/action"
	"github.com/example/whiteboard/internal/board"
	"github.com/example/whiteboard/internal/export"
	"github.com/example/whiteboard/internal/store"
	"github.com/example/whiteboard/internal/style"
)

// replayScript drives a board headlessly. Coordinates are canvas-local.
type replayScript struct {
	Width  int          `json:"width"`
	Height int          `json:"height"`
	Style  *replayStyle `json:"style,omitempty"`
	Steps  []replayStep `json:"steps"`
}

type replayStyle struct {
	Tool  string `json:"tool,omitempty"`
	Color string `json:"color,omitempty"`
	Width int    `json:"width,omitempty"`
}

type replayStep struct {
	Op string  `json:"op"`
	X  float64 `json:"x"`
	Y  float64 `json:"y"`
	// Text is the string confirmed by a "text" step.
	Text string `json:"text,omitempty"`
	replayStyle
}

type replayCmd struct {
	*root
	fs *flag.FlagSet

	script  string
	output  string
	actions string
	save    string
	width   int
	height  int
}

func parseReplayCmd(args []string, r *root) (*replayCmd, error) {
	fs := flag.NewFlagSet("replay", flag.ContinueOnError)
	c := &replayCmd{root: r, fs: fs}
	fs.StringVar(&c.output, "o", "", "write the final canvas as PNG, - for stdout")
	fs.StringVar(&c.actions, "actions", "", "write the committed action list as JSON, - for stdout")
	fs.StringVar(&c.save, "save", "", "save the result to the drawing store under this name")
	r.canvasFlags(fs, &c.width, &c.height)
	fs.Usage = usageFunc(c)
	if err := parseFlags(c, fs, args); err != nil {
		return nil, err
	}
	if fs.NArg() != 1 {
		return nil, &UsageError{of: c}
	}
	c.script = fs.Arg(0)
	if c.output == "-" && c.actions == "-" {
		return nil, usageErrorf(c, "only one of -o and -actions can write to stdout")
	}
	return c, nil
}

func (c *replayCmd) FlagSet() *flag.FlagSet {
	return c.fs
}

func (c *replayCmd) Run() error {
	data, err := readInput(c.script)
	if err != nil {
		return err
	}
	var script replayScript
	if err := json.Unmarshal(data, &script); err != nil {
		return fmt.Errorf("parse script %s: %w", c.script, err)
	}
	w, h := c.width, c.height
	if script.Width > 0 && script.Height > 0 {
		w, h = script.Width, script.Height
	}
	if err := checkCanvas(c, w, h); err != nil {
		return err
	}

	settings := c.config.Settings()
	if script.Style != nil {
		if err := applyStyle(&settings, *script.Style); err != nil {
			return fmt.Errorf("script style: %w", err)
		}
	}
	b := board.New()
	b.Mount(image.Rect(0, 0, w, h))
	if err := replay(b, &settings, script.Steps); err != nil {
		return err
	}
	if b.State() != board.StateIdle {
		fmt.Fprintf(os.Stderr, "warning: script ended while %s\n", b.State())
	}
	return c.emit(b)
}

func (c *replayCmd) emit(b *board.Board) error {
	committed := b.Actions()
	if c.output != "" {
		var buf bytes.Buffer
		if err := export.WritePNG(&buf, b.Image()); err != nil {
			return err
		}
		if err := c.writeOutput(c.output, buf.Bytes()); err != nil {
			return err
		}
	}
	if c.actions != "" {
		data, err := action.Encode(committed)
		if err != nil {
			return err
		}
		if err := c.writeOutput(c.actions, append(data, '\n')); err != nil {
			return err
		}
	}
	if c.save != "" {
		snap, err := b.Snapshot()
		if err != nil {
			return err
		}
		d, err := c.store().Save(store.Drawing{Name: c.save, Thumbnail: snap.Thumbnail, Actions: snap.Actions})
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "saved %s as %s\n", d.Name, d.ID)
		c.notifier.Save(d.Name)
	}
	fmt.Fprintf(os.Stderr, "replayed %d committed actions\n", len(committed))
	return nil
}

func applyStyle(s *style.Settings, rs replayStyle) error {
	if rs.Tool != "" {
		if err := s.SetTool(rs.Tool); err != nil {
			return err
		}
	}
	if rs.Color != "" {
		if err := s.SetColor(rs.Color); err != nil {
			return err
		}
	}
	if rs.Width != 0 {
		s.SetWidth(rs.Width)
	}
	return nil
}

// replay feeds steps to b. Step errors name the failing step.
func replay(b *board.Board, s *style.Settings, steps []replayStep) error {
	for i, step := range steps {
		ev := board.PointerEvent{X: step.X, Y: step.Y}
		switch strings.ToLower(step.Op) {
		case "down":
			ev.Kind = board.PointerDown
			b.Handle(ev, *s)
		case "move":
			ev.Kind = board.PointerMove
			b.Handle(ev, *s)
		case "up":
			ev.Kind = board.PointerUp
			b.Handle(ev, *s)
		case "leave":
			ev.Kind = board.PointerLeave
			b.Handle(ev, *s)
		case "text":
			b.ConfirmText(step.Text, *s)
		case "cancel":
			b.CancelText()
		case "undo":
			b.Undo()
		case "redo":
			b.Redo()
		case "clear":
			b.Clear()
		case "style":
			if err := applyStyle(s, step.replayStyle); err != nil {
				return fmt.Errorf("step %d: %w", i, err)
			}
		default:
			return fmt.Errorf("step %d: unknown op %q", i, step.Op)
		}
	}
	return nil
}
