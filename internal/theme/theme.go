package theme

import (
	"fmt"
	"image/color"
	"reflect"
	"sort"
	"strings"

	"github.com/example/whiteboard/internal/action"
)

// Theme defines the colours of the interactive window around the canvas.
type Theme struct {
	Name string

	Background color.RGBA // window area outside the canvas
	Foreground color.RGBA // status line text

	ToolbarBackground color.RGBA
	ButtonBackground  color.RGBA
	ButtonActive      color.RGBA // selected tool, width or colour
	ButtonDisabled    color.RGBA
	ButtonText        color.RGBA
	ButtonBorder      color.RGBA

	// Caret is drawn at the pending text position.
	Caret color.RGBA
}

// Default returns the built in light theme.
func Default() *Theme {
	return &Theme{
		Name:              "light",
		Background:        color.RGBA{200, 200, 200, 255},
		Foreground:        color.RGBA{0, 0, 0, 255},
		ToolbarBackground: color.RGBA{230, 230, 230, 255},
		ButtonBackground:  color.RGBA{245, 245, 245, 255},
		ButtonActive:      color.RGBA{170, 200, 255, 255},
		ButtonDisabled:    color.RGBA{215, 215, 215, 255},
		ButtonText:        color.RGBA{0, 0, 0, 255},
		ButtonBorder:      color.RGBA{120, 120, 120, 255},
		Caret:             color.RGBA{0, 120, 255, 255},
	}
}

// Dark returns the built in dark theme.
func Dark() *Theme {
	return &Theme{
		Name:              "dark",
		Background:        color.RGBA{40, 40, 40, 255},
		Foreground:        color.RGBA{230, 230, 230, 255},
		ToolbarBackground: color.RGBA{55, 55, 55, 255},
		ButtonBackground:  color.RGBA{75, 75, 75, 255},
		ButtonActive:      color.RGBA{50, 90, 160, 255},
		ButtonDisabled:    color.RGBA{60, 60, 60, 255},
		ButtonText:        color.RGBA{240, 240, 240, 255},
		ButtonBorder:      color.RGBA{20, 20, 20, 255},
		Caret:             color.RGBA{120, 180, 255, 255},
	}
}

// Builtin returns a copy of the named built in theme.
func Builtin(name string) (*Theme, bool) {
	switch strings.ToLower(name) {
	case "", "light", "default":
		return Default(), true
	case "dark":
		return Dark(), true
	}
	return nil, false
}

// Set assigns the colour field named key, ignoring case. Unknown keys are
// ignored so theme sections written for newer versions still load.
func (t *Theme) Set(key, value string) error {
	if strings.EqualFold(key, "Name") {
		t.Name = value
		return nil
	}
	v := reflect.ValueOf(t).Elem()
	f, ok := fieldByFold(v.Type(), key)
	if !ok {
		return nil
	}
	col, err := action.ParseColor(value)
	if err != nil {
		return fmt.Errorf("invalid color for key %s: %w", key, err)
	}
	v.FieldByIndex(f.Index).Set(reflect.ValueOf(col))
	return nil
}

// Fields returns the colour field names with their #RRGGBB values, sorted.
func (t *Theme) Fields() [][2]string {
	v := reflect.ValueOf(t).Elem()
	var out [][2]string
	for i := 0; i < v.NumField(); i++ {
		c, ok := v.Field(i).Interface().(color.RGBA)
		if !ok {
			continue
		}
		out = append(out, [2]string{v.Type().Field(i).Name, action.Hex(c)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i][0] < out[j][0] })
	return out
}

func fieldByFold(typ reflect.Type, key string) (reflect.StructField, bool) {
	for i := 0; i < typ.NumField(); i++ {
		f := typ.Field(i)
		if f.Type == reflect.TypeOf(color.RGBA{}) && strings.EqualFold(f.Name, key) {
			return f, true
		}
	}
	return reflect.StructField{}, false
}
