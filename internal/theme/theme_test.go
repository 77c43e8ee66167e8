package theme

import (
	"image/color"
	"testing"
)

func TestSetIsCaseInsensitive(t *testing.T) {
	th := Default()
	if err := th.Set("buttonactive", "#112233"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if th.ButtonActive != (color.RGBA{0x11, 0x22, 0x33, 0xff}) {
		t.Fatalf("ButtonActive = %v", th.ButtonActive)
	}
	if err := th.Set("Caret", "blue"); err == nil {
		t.Fatalf("expected error for non-hex colour")
	}
	if err := th.Set("NoSuchField", "#000000"); err != nil {
		t.Fatalf("unknown keys should be ignored, got %v", err)
	}
}

func TestBuiltinAndFields(t *testing.T) {
	if th, ok := Builtin("DARK"); !ok || th.Name != "dark" {
		t.Fatalf("Builtin(DARK) = %v, %v", th, ok)
	}
	if _, ok := Builtin("solarized"); ok {
		t.Fatalf("unexpected builtin theme")
	}
	fields := Default().Fields()
	if len(fields) != 9 || fields[0][0] != "Background" {
		t.Fatalf("unexpected fields %v", fields)
	}
}
