package notify

import (
	"errors"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/whiteboard/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
}

func recorder(out *[]sent) SendFunc {
	return func(title, body string, opts platform.Options) error {
		*out = append(*out, sent{title, body, opts})
		return nil
	}
}

func TestDisabledEventsAreSilent(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences()).WithSender(recorder(&got))
	n.Clear()
	n.Save("Plan")
	n.Copy("actions", nil)
	if len(got) != 0 {
		t.Fatalf("disabled events sent %v", got)
	}
	var nilNotifier *Notifier
	nilNotifier.Clear()
	nilNotifier.Enable(EventSave, true)
}

func TestTemplates(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences()).WithSender(recorder(&got))
	for _, e := range Events() {
		n.Enable(e, true)
	}
	n.Clear()
	n.Save("")
	n.Copy("", nil)
	want := []string{"Canvas cleared", "Saved drawing", "Copied image to clipboard"}
	if len(got) != len(want) {
		t.Fatalf("sent %d notifications, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].body != w || got[i].title != "Whiteboard" {
			t.Errorf("notification %d = %q/%q, want %q", i, got[i].title, got[i].body, w)
		}
	}
}

func TestExportUsesPNGAsIcon(t *testing.T) {
	var got []sent
	n := New(DefaultPreferences()).WithSender(recorder(&got))
	n.Enable(EventExport, true)
	path := filepath.Join(t.TempDir(), "board.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	n.Export(path)
	if len(got) != 1 || got[0].opts.IconPath != path {
		t.Fatalf("unexpected notifications %+v", got)
	}
}

func TestCopyPreviewIsRemoved(t *testing.T) {
	var icon string
	n := New(DefaultPreferences()).WithSender(func(_, _ string, opts platform.Options) error {
		icon = opts.IconPath
		if _, err := os.Stat(icon); err != nil {
			t.Errorf("preview missing during send: %v", err)
		}
		return errors.New("no notification daemon")
	})
	n.Enable(EventCopy, true)
	n.Copy("image", image.NewRGBA(image.Rect(0, 0, 4, 4)))
	if icon == "" {
		t.Fatalf("expected a preview icon")
	}
	if _, err := os.Stat(icon); !os.IsNotExist(err) {
		t.Fatalf("preview not cleaned up: %v", err)
	}
}

func TestLoadPreferencesFromEnv(t *testing.T) {
	t.Setenv("WHITEBOARD_NOTIFY_TITLE", "Board")
	t.Setenv("WHITEBOARD_NOTIFY_SAVE_TEXT", "Stored %s")
	prefs := LoadPreferences()
	if prefs.Title != "Board" || prefs.Events[EventSave].Template != "Stored %s" {
		t.Fatalf("unexpected preferences %+v", prefs)
	}
	if prefs.Events[EventClear].Template != "Canvas cleared" {
		t.Fatalf("clear template changed: %+v", prefs.Events[EventClear])
	}
}
