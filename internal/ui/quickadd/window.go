// Package quickadd implements the floating task input window toggled by
// the quick-add shortcut.
package quickadd

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Window is a small always-on-top entry for adding a task without opening
// the main surface.
type Window struct {
	window  fyne.Window
	entry   *widget.Entry
	onAdd   func(text string) bool
	visible bool
}

// New creates the quick-add window. onAdd reports whether the text was
// accepted; rejected text stays in the entry.
func New(app fyne.App, onAdd func(text string) bool) *Window {
	win := app.NewWindow("Quick Add Task")

	entry := widget.NewEntry()
	entry.SetPlaceHolder("What are you working on?")

	quick := &Window{
		window: win,
		entry:  entry,
		onAdd:  onAdd,
	}

	entry.OnSubmitted = func(text string) {
		quick.submit(text)
	}

	win.SetContent(container.NewVBox(
		widget.NewLabel("Add a task"),
		entry,
	))
	win.Resize(fyne.NewSize(360, 100))
	win.SetCloseIntercept(func() {
		quick.Hide()
	})
	win.Canvas().SetOnTypedKey(func(event *fyne.KeyEvent) {
		if event.Name == fyne.KeyEscape {
			quick.Hide()
		}
	})

	return quick
}

// FyneWindow exposes the underlying window for key handler wiring.
func (quick *Window) FyneWindow() fyne.Window {
	return quick.window
}

// Toggle shows the window if hidden and hides it otherwise.
func (quick *Window) Toggle() {
	if quick.visible {
		quick.Hide()
		return
	}
	quick.Show()
}

// Show displays the window and focuses the entry.
func (quick *Window) Show() {
	quick.visible = true
	quick.window.Show()
	quick.window.RequestFocus()
	quick.window.Canvas().Focus(quick.entry)
}

// Hide hides the window and clears the entry.
func (quick *Window) Hide() {
	quick.visible = false
	quick.entry.SetText("")
	quick.window.Hide()
}

func (quick *Window) submit(text string) {
	if quick.onAdd == nil || !quick.onAdd(text) {
		return
	}
	quick.Hide()
}
