package shortcut

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchByKeyCodeIgnoresKeyString(t *testing.T) {
	binding := Binding{Key: "whatever", KeyCode: codePtr(15), Command: true, Option: true}
	event := KeyEvent{Key: "r", KeyCode: 15, Command: true, Option: true}

	assert.True(t, binding.Matches(event))

	event.KeyCode = 16
	assert.False(t, binding.Matches(event), "key-code match must be exact")
}

func TestMatchModifierSetMustBeExact(t *testing.T) {
	binding := Binding{Key: "r", KeyCode: codePtr(15), Command: true, Option: true}

	withShift := KeyEvent{Key: "r", KeyCode: 15, Command: true, Option: true, Shift: true}
	assert.False(t, binding.Matches(withShift), "superset of modifiers must not match")

	commandOnly := KeyEvent{Key: "r", KeyCode: 15, Command: true}
	assert.False(t, binding.Matches(commandOnly), "subset of modifiers must not match")

	strict := Binding{Key: "r", KeyCode: codePtr(15), Command: true, Option: true, Shift: true}
	noShift := KeyEvent{Key: "r", KeyCode: 15, Command: true, Option: true}
	assert.False(t, strict.Matches(noShift))
}

func TestMatchFallsBackToCharacterWithoutKeyCode(t *testing.T) {
	binding := Binding{Key: "R", Command: true}

	assert.True(t, binding.Matches(KeyEvent{Key: "r", KeyCode: 99, Command: true}),
		"character comparison is case-insensitive and ignores the event key code")
	assert.False(t, binding.Matches(KeyEvent{Key: "t", KeyCode: 15, Command: true}))
	assert.False(t, binding.Matches(KeyEvent{KeyCode: 15, Command: true}),
		"event without a produced character cannot match by character")
}

func TestDefaultBindings(t *testing.T) {
	cases := []struct {
		action Action
		key    string
		code   uint16
	}{
		{ActionStartPause, "↩", 36},
		{ActionReset, "r", 15},
		{ActionSkip, "s", 3},
		{ActionQuickAdd, "n", 45},
	}
	for _, tc := range cases {
		binding := DefaultBinding(tc.action)
		assert.Equal(t, tc.key, binding.Key, "%s key", tc.action)
		if assert.NotNil(t, binding.KeyCode, "%s key code", tc.action) {
			assert.Equal(t, tc.code, *binding.KeyCode, "%s key code", tc.action)
		}
		assert.True(t, binding.Command && binding.Option, "%s defaults to cmd+option", tc.action)
		assert.False(t, binding.Control || binding.Shift || binding.Function)
	}
}

func TestDisplayString(t *testing.T) {
	reset := DefaultBinding(ActionReset)
	assert.Equal(t, "⌥ ⌘ R", reset.DisplayString())

	startPause := DefaultBinding(ActionStartPause)
	assert.Equal(t, "⌥ ⌘ ↩", startPause.DisplayString())

	space := Binding{Key: " ", KeyCode: codePtr(49), Control: true}
	assert.Equal(t, "^ Space", space.DisplayString())

	fkey := Binding{Key: "f5", Function: true}
	assert.Equal(t, "fn F5", fkey.DisplayString())
}
