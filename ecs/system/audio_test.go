package system

import (
	"testing"

	"github.com/softglow/duality/ecs"
	"github.com/softglow/duality/ecs/component"
)

func TestAudioConsumesRequestsWhenDisabled(t *testing.T) {
	w := newModeWorld(false)
	RequestCue(w, "mode_switch")
	RequestCue(w, "grapple_attach")

	sys := NewAudioSystem("does-not-exist")
	sys.Update(w)

	if got := ecs.Query(w, component.CueRequestComponent.ID()); len(got) != 0 {
		t.Fatalf("disabled audio must still drain requests, %d left", len(got))
	}
}

func TestRequestCueIgnoresEmptyName(t *testing.T) {
	w := newModeWorld(false)
	RequestCue(w, "")
	if got := ecs.Query(w, component.CueRequestComponent.ID()); len(got) != 0 {
		t.Fatalf("empty cue names must not spawn requests")
	}
}
