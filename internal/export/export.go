// Package export turns a drawing into files that can leave the application.
package export

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"strings"

	"github.com/example/whiteboard/internal/action"
	"github.com/example/whiteboard/internal/render"
)

// DefaultName is the file stem used when a drawing has no name.
const DefaultName = "whiteboard"

// Format is an export file format.
type Format string

const (
	FormatPNG Format = "png"
	FormatPDF Format = "pdf"
)

// ParseFormat resolves a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatPNG, FormatPDF:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q", s)
}

// Filename returns "<name>.<ext>" with path separators removed, falling
// back to DefaultName.
func Filename(name, ext string) string {
	stem := strings.TrimSpace(name)
	stem = strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':':
			return '-'
		}
		return r
	}, stem)
	if stem == "" {
		stem = DefaultName
	}
	return stem + "." + strings.TrimPrefix(ext, ".")
}

// RenderImage renders actions onto a fresh w×h surface.
func RenderImage(actions []action.Action, w, h int) (*image.RGBA, error) {
	img := render.NewSurface(w, h)
	if img == nil {
		return nil, fmt.Errorf("invalid canvas size %dx%d", w, h)
	}
	render.Render(img, actions)
	return img, nil
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// PNG renders actions on a w×h canvas and returns the encoded bytes.
func PNG(actions []action.Action, w, h int) ([]byte, error) {
	img, err := RenderImage(actions, w, h)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := WritePNG(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write renders actions in format f to w.
func Write(out io.Writer, f Format, actions []action.Action, w, h int) error {
	switch f {
	case FormatPNG:
		img, err := RenderImage(actions, w, h)
		if err != nil {
			return err
		}
		return WritePNG(out, img)
	case FormatPDF:
		return WritePDF(out, actions, w, h)
	}
	return fmt.Errorf("unknown export format %q", f)
}
