package desktop

import (
	"sync"

	hook "github.com/robotn/gohook"
)

// HookKeys implements platform.Hotkeys with a global input hook.
//
// Every bound key also gets down/up tracking so KeyHeld can serve as a
// polled fallback path for keys whose handler may be missed.
type HookKeys struct {
	mu   sync.Mutex
	held map[string]bool

	startOnce sync.Once
	endOnce   sync.Once
}

// NewHookKeys creates an unstarted hotkey hook.
func NewHookKeys() *HookKeys {
	return &HookKeys{held: make(map[string]bool)}
}

// Bind registers fn to fire on every press of key. A nil fn still
// installs the down/up trackers, so a key can be bound purely for
// KeyHeld polling. Must be called before Run.
func (h *HookKeys) Bind(key string, fn func()) {
	down, up := h.trackers(key, fn)
	hook.Register(hook.KeyDown, []string{key}, down)
	hook.Register(hook.KeyUp, []string{key}, up)
}

// trackers builds the down/up event handlers for key.
func (h *HookKeys) trackers(key string, fn func()) (down, up func(hook.Event)) {
	down = func(e hook.Event) {
		h.mu.Lock()
		h.held[key] = true
		h.mu.Unlock()
		if fn != nil {
			fn()
		}
	}
	up = func(e hook.Event) {
		h.mu.Lock()
		h.held[key] = false
		h.mu.Unlock()
	}
	return down, up
}

// KeyHeld reports whether a bound key is currently held down.
func (h *HookKeys) KeyHeld(key string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.held[key]
}

// Run starts the global hook and pumps events until Close. It blocks,
// so callers run it on its own goroutine.
func (h *HookKeys) Run() error {
	var events chan hook.Event
	h.startOnce.Do(func() {
		events = hook.Start()
	})
	if events == nil {
		return nil
	}
	<-hook.Process(events)
	return nil
}

// Close stops the event pump and clears all registrations.
func (h *HookKeys) Close() {
	h.endOnce.Do(hook.End)
}
