package clipboard

import (
	"errors"
	"testing"

	"github.com/example/whiteboard/internal/action"
)

func TestParseActions(t *testing.T) {
	data, err := action.Encode([]action.Action{action.NewText("#000000", 3, action.Pt(5, 6), "Hi")})
	if err != nil {
		t.Fatal(err)
	}
	got, err := parseActions("  " + string(data) + "\n\x00")
	if err != nil {
		t.Fatalf("parseActions: %v", err)
	}
	if len(got) != 1 || got[0].Text != "Hi" {
		t.Fatalf("unexpected actions %+v", got)
	}

	for _, in := range []string{"", "hello", `[{"tool":"spray"}]`} {
		if _, err := parseActions(in); !errors.Is(err, ErrNoActions) {
			t.Errorf("parseActions(%q) error = %v, want ErrNoActions", in, err)
		}
	}
}
