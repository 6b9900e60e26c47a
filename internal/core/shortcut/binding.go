// Package shortcut maps raw key events to named timer and task actions,
// with user-recordable bindings, persistence and an optional system-wide
// listening scope gated by an OS capability.
package shortcut

import (
	"fmt"
	"strconv"
	"strings"
)

// Action names one of the dispatchable shortcut slots.
type Action string

const (
	ActionStartPause Action = "startPause"
	ActionReset      Action = "reset"
	ActionSkip       Action = "skip"
	ActionQuickAdd   Action = "quickAdd"
)

// dispatchOrder fixes the priority when several bindings match one event.
// The first match wins and dispatch stops.
var dispatchOrder = []Action{ActionReset, ActionSkip, ActionStartPause, ActionQuickAdd}

// Actions returns every shortcut slot in dispatch priority order.
func Actions() []Action {
	return append([]Action(nil), dispatchOrder...)
}

// Binding is the key combination assigned to an action. The JSON layout
// matches the persisted v2 format.
type Binding struct {
	Key      string  `json:"key"`
	KeyCode  *uint16 `json:"keyCode,omitempty"`
	Command  bool    `json:"command"`
	Option   bool    `json:"option"`
	Control  bool    `json:"control"`
	Shift    bool    `json:"shift"`
	Function bool    `json:"function"`
}

// KeyEvent is a normalized key-down event from either listening scope.
type KeyEvent struct {
	Key      string
	KeyCode  uint16
	Command  bool
	Option   bool
	Control  bool
	Shift    bool
	Function bool
}

// Matches reports whether the event triggers this binding. A stored key
// code identifies the physical key and takes precedence over the produced
// character; either way the event's modifier set must equal the binding's
// exactly.
func (binding Binding) Matches(event KeyEvent) bool {
	if binding.KeyCode != nil {
		if *binding.KeyCode != event.KeyCode {
			return false
		}
	} else if !strings.EqualFold(binding.Key, event.Key) || event.Key == "" {
		return false
	}

	return binding.Command == event.Command &&
		binding.Option == event.Option &&
		binding.Control == event.Control &&
		binding.Shift == event.Shift &&
		binding.Function == event.Function
}

// DefaultBinding returns the built-in binding for an action.
func DefaultBinding(action Action) Binding {
	switch action {
	case ActionReset:
		return Binding{Key: "r", KeyCode: codePtr(15), Command: true, Option: true}
	case ActionSkip:
		return Binding{Key: "s", KeyCode: codePtr(3), Command: true, Option: true}
	case ActionQuickAdd:
		return Binding{Key: "n", KeyCode: codePtr(45), Command: true, Option: true}
	default:
		return Binding{Key: "↩", KeyCode: codePtr(36), Command: true, Option: true}
	}
}

// DisplayString renders the binding for the preferences UI, modifier
// symbols first.
func (binding Binding) DisplayString() string {
	var parts []string
	if binding.Function {
		parts = append(parts, "fn")
	}
	if binding.Control {
		parts = append(parts, "^")
	}
	if binding.Option {
		parts = append(parts, "⌥")
	}
	if binding.Shift {
		parts = append(parts, "⇧")
	}
	if binding.Command {
		parts = append(parts, "⌘")
	}
	parts = append(parts, displayKey(binding.Key, binding.KeyCode))
	return strings.Join(parts, " ")
}

func displayKey(key string, keyCode *uint16) string {
	if keyCode != nil {
		if symbol, ok := specialKeySymbols[*keyCode]; ok {
			return symbol
		}
	}

	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		if keyCode != nil && *keyCode == 49 {
			return "Space"
		}
		return "?"
	}

	upper := strings.ToUpper(trimmed)
	if strings.HasPrefix(upper, "F") {
		if _, err := strconv.Atoi(upper[1:]); err == nil {
			return fmt.Sprintf("F%s", upper[1:])
		}
	}
	return upper
}

// specialKeySymbols maps well-known key codes to their keyboard symbols.
var specialKeySymbols = map[uint16]string{
	36:  "↩", // return
	76:  "⌤", // enter
	51:  "⌫", // delete
	117: "⌦", // forward delete
	53:  "⎋", // escape
	48:  "⇥", // tab
	49:  "Space",
	123: "←",
	124: "→",
	125: "↓",
	126: "↑",
	115: "↖", // home
	119: "↘", // end
	116: "⇞", // page up
	121: "⇟", // page down
}

func codePtr(code uint16) *uint16 {
	return &code
}
