// Package clipboard moves whiteboard images and action lists through the
// system clipboard.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"strings"

	"github.com/example/whiteboard/internal/action"
)

var errNoDisplay = errors.New("clipboard initialization requires DISPLAY or WAYLAND_DISPLAY")

// ErrNoActions is returned by PasteActions when the clipboard text is not an
// action list.
var ErrNoActions = errors.New("clipboard does not contain whiteboard actions")

func hasDisplay() bool {
	return os.Getenv("DISPLAY") != "" || os.Getenv("WAYLAND_DISPLAY") != ""
}

// CopyImage publishes img as PNG.
func CopyImage(img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("encode clipboard image: %w", err)
	}
	return writeImage(buf.Bytes())
}

// CopyActions publishes actions as JSON text.
func CopyActions(actions []action.Action) error {
	data, err := action.Encode(actions)
	if err != nil {
		return err
	}
	return writeText(data)
}

// PasteActions reads an action list from clipboard text.
func PasteActions() ([]action.Action, error) {
	text, err := readText()
	if err != nil {
		return nil, err
	}
	return parseActions(text)
}

func parseActions(text string) ([]action.Action, error) {
	text = strings.TrimSpace(strings.TrimRight(text, "\x00"))
	if !strings.HasPrefix(text, "[") {
		return nil, ErrNoActions
	}
	actions, err := action.Decode([]byte(text))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoActions, err)
	}
	return actions, nil
}
