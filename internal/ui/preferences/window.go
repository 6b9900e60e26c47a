package preferences

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"pomobar/internal/core/model"
	"pomobar/internal/core/shortcut"
)

func actionTitle(action shortcut.Action) string {
	switch action {
	case shortcut.ActionStartPause:
		return "Start / Pause"
	case shortcut.ActionReset:
		return "Reset"
	case shortcut.ActionSkip:
		return "Skip Phase"
	case shortcut.ActionQuickAdd:
		return "Quick Add"
	default:
		return string(action)
	}
}

// Window handles the settings UI: durations, auto-start policy, sound and
// shortcut recording.
type Window struct {
	window   fyne.Window
	registry *shortcut.Registry
	settings model.Settings
	onSave   func(model.Settings)

	workEntry     *widget.Entry
	shortEntry    *widget.Entry
	longEntry     *widget.Entry
	intervalEntry *widget.Entry
	autoBreaks    *widget.Check
	autoWork      *widget.Check
	sound         *widget.Check

	bindingLabels map[shortcut.Action]*widget.Label
	recordButtons map[shortcut.Action]*widget.Button
	permissionRow *fyne.Container
}

// New creates the settings window.
func New(app fyne.App, settings model.Settings, registry *shortcut.Registry, onSave func(model.Settings)) *Window {
	win := app.NewWindow("PomoBar Settings")

	prefs := &Window{
		window:        win,
		registry:      registry,
		settings:      settings,
		onSave:        onSave,
		workEntry:     widget.NewEntry(),
		shortEntry:    widget.NewEntry(),
		longEntry:     widget.NewEntry(),
		intervalEntry: widget.NewEntry(),
		autoBreaks:    widget.NewCheck("Auto-start breaks", nil),
		autoWork:      widget.NewCheck("Auto-start work sessions", nil),
		sound:         widget.NewCheck("Sound cues", nil),
		bindingLabels: make(map[shortcut.Action]*widget.Label),
		recordButtons: make(map[shortcut.Action]*widget.Button),
	}
	prefs.applySettings(settings)

	durations := container.NewVBox(
		widget.NewLabelWithStyle("Durations", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Work"), prefs.workEntry, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Short break"), prefs.shortEntry, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Long break"), prefs.longEntry, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Long break every"), prefs.intervalEntry, widget.NewLabel("sessions")),
		prefs.autoBreaks,
		prefs.autoWork,
		prefs.sound,
	)

	shortcuts := container.NewVBox(
		widget.NewLabelWithStyle("Shortcuts", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
	)
	for _, action := range shortcut.Actions() {
		action := action
		label := widget.NewLabel(registry.Binding(action).DisplayString())
		button := widget.NewButton("Record", func() {
			prefs.toggleRecord(action)
		})
		prefs.bindingLabels[action] = label
		prefs.recordButtons[action] = button
		shortcuts.Add(container.NewHBox(widget.NewLabel(actionTitle(action)), layout.NewSpacer(), label, button))
	}

	grant := widget.NewButton("Grant", func() {
		registry.RequestPermission()
	})
	prefs.permissionRow = container.NewHBox(
		widget.NewLabel("Global shortcuts need an accessibility grant"),
		layout.NewSpacer(),
		grant,
	)
	shortcuts.Add(prefs.permissionRow)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.registry.CancelCapture()
		win.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	win.SetContent(container.NewBorder(nil, buttons, nil, nil,
		container.NewVBox(durations, widget.NewSeparator(), shortcuts)))
	win.Resize(fyne.NewSize(440, 480))
	win.SetCloseIntercept(func() {
		prefs.registry.CancelCapture()
		win.Hide()
	})

	registry.OnChange(func() {
		fyne.Do(prefs.refreshShortcuts)
	})
	prefs.refreshShortcuts()

	return prefs
}

// FyneWindow exposes the underlying window for key handler wiring.
func (prefs *Window) FyneWindow() fyne.Window {
	return prefs.window
}

// Show displays the settings window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces the displayed values.
func (prefs *Window) UpdateSettings(settings model.Settings) {
	prefs.settings = settings
	prefs.applySettings(settings)
}

func (prefs *Window) applySettings(settings model.Settings) {
	prefs.workEntry.SetText(fmt.Sprintf("%d", settings.WorkMinutes))
	prefs.shortEntry.SetText(fmt.Sprintf("%d", settings.ShortBreakMinutes))
	prefs.longEntry.SetText(fmt.Sprintf("%d", settings.LongBreakMinutes))
	prefs.intervalEntry.SetText(fmt.Sprintf("%d", settings.LongBreakInterval))
	prefs.autoBreaks.SetChecked(settings.AutoStartBreaks)
	prefs.autoWork.SetChecked(settings.AutoStartWork)
	prefs.sound.SetChecked(settings.SoundEnabled)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if minutes, ok := parsePositiveInt(prefs.workEntry.Text); ok {
		settings.WorkMinutes = minutes
	}
	if minutes, ok := parsePositiveInt(prefs.shortEntry.Text); ok {
		settings.ShortBreakMinutes = minutes
	}
	if minutes, ok := parsePositiveInt(prefs.longEntry.Text); ok {
		settings.LongBreakMinutes = minutes
	}
	if interval, ok := parsePositiveInt(prefs.intervalEntry.Text); ok && interval >= 2 {
		settings.LongBreakInterval = interval
	}
	settings.AutoStartBreaks = prefs.autoBreaks.Checked
	settings.AutoStartWork = prefs.autoWork.Checked
	settings.SoundEnabled = prefs.sound.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func (prefs *Window) toggleRecord(action shortcut.Action) {
	if slot, capturing := prefs.registry.Capturing(); capturing {
		prefs.registry.CancelCapture()
		if slot != action {
			prefs.registry.BeginCapture(action)
		}
	} else {
		prefs.registry.BeginCapture(action)
	}
	prefs.refreshShortcuts()
}

// refreshShortcuts re-reads binding labels, record-button state and the
// permission hint. Must run on the UI thread.
func (prefs *Window) refreshShortcuts() {
	slot, capturing := prefs.registry.Capturing()
	for _, action := range shortcut.Actions() {
		prefs.bindingLabels[action].SetText(prefs.registry.Binding(action).DisplayString())
		button := prefs.recordButtons[action]
		if capturing && slot == action {
			button.SetText("Press keys…")
		} else {
			button.SetText("Record")
		}
	}

	if prefs.registry.NeedsPermission() {
		prefs.permissionRow.Show()
	} else {
		prefs.permissionRow.Hide()
	}
}

func parsePositiveInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
