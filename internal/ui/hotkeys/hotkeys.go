// Package hotkeys adapts raw key events from a Fyne desktop canvas into
// the normalized form the shortcut registry matches on. This is the
// focus-scoped listening path; the system-wide path comes from
// internal/platform.
package hotkeys

import (
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"pomobar/internal/core/shortcut"
)

// Source tracks modifier key state and forwards normalized key-down
// events to the registry. A single source may serve several windows;
// modifier state is shared since only one window holds focus at a time.
type Source struct {
	registry *shortcut.Registry

	mu      sync.Mutex
	command bool
	option  bool
	control bool
	shift   bool
}

// NewSource creates a key source feeding the given registry.
func NewSource(registry *shortcut.Registry) *Source {
	return &Source{registry: registry}
}

// Attach wires key handling for a window. Windows without a desktop
// canvas (mobile drivers) are silently skipped.
func (source *Source) Attach(win fyne.Window) {
	canvas, ok := win.Canvas().(desktop.Canvas)
	if !ok {
		return
	}
	canvas.SetOnKeyDown(source.keyDown)
	canvas.SetOnKeyUp(source.keyUp)
}

func (source *Source) keyDown(event *fyne.KeyEvent) {
	if source.setModifier(event.Name, true) {
		return
	}

	source.mu.Lock()
	normalized := shortcut.KeyEvent{
		Key:     keyString(event.Name),
		KeyCode: uint16(event.Physical.ScanCode),
		Command: source.command,
		Option:  source.option,
		Control: source.control,
		Shift:   source.shift,
	}
	source.mu.Unlock()

	source.registry.Dispatch(normalized)
}

func (source *Source) keyUp(event *fyne.KeyEvent) {
	source.setModifier(event.Name, false)
}

// setModifier updates tracked state and reports whether the key was a
// modifier.
func (source *Source) setModifier(name fyne.KeyName, down bool) bool {
	source.mu.Lock()
	defer source.mu.Unlock()

	switch name {
	case desktop.KeySuperLeft, desktop.KeySuperRight:
		source.command = down
	case desktop.KeyAltLeft, desktop.KeyAltRight:
		source.option = down
	case desktop.KeyControlLeft, desktop.KeyControlRight:
		source.control = down
	case desktop.KeyShiftLeft, desktop.KeyShiftRight:
		source.shift = down
	default:
		return false
	}
	return true
}

// keyString normalizes a Fyne key name to the produced-character form the
// matcher compares on.
func keyString(name fyne.KeyName) string {
	switch name {
	case fyne.KeyReturn, fyne.KeyEnter:
		return "↩"
	case fyne.KeySpace:
		return " "
	default:
		return strings.ToLower(string(name))
	}
}
