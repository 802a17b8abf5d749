package desktop

import (
	"testing"

	hook "github.com/robotn/gohook"
)

func TestTrackersUpdateHeldState(t *testing.T) {
	h := NewHookKeys()
	calls := 0
	down, up := h.trackers("q", func() { calls++ })

	if h.KeyHeld("q") {
		t.Fatal("key held before any event")
	}

	down(hook.Event{})
	if !h.KeyHeld("q") {
		t.Error("key not held after down event")
	}
	if calls != 1 {
		t.Errorf("handler calls: got %d, want 1", calls)
	}

	up(hook.Event{})
	if h.KeyHeld("q") {
		t.Error("key still held after up event")
	}
}

func TestTrackersNilHandler(t *testing.T) {
	// A key bound only for polling has no press handler; the held
	// state must still track.
	h := NewHookKeys()
	down, up := h.trackers("q", nil)

	down(hook.Event{})
	if !h.KeyHeld("q") {
		t.Error("key not held after down event")
	}
	up(hook.Event{})
	if h.KeyHeld("q") {
		t.Error("key still held after up event")
	}
}

func TestKeyHeldUnboundKey(t *testing.T) {
	h := NewHookKeys()
	if h.KeyHeld("f10") {
		t.Error("unbound key reported held")
	}
}
