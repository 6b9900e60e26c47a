package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnStartPause     func()
	OnReset          func()
	OnSkip           func()
	OnQuickAdd       func()
	OnTasks          func()
	OnClearCompleted func()
	OnSettings       func()
	OnQuit           func()
}

// Manager owns the system tray menu and its status lines.
type Manager struct {
	app         desktop.App
	callbacks   Callbacks
	running     bool
	statusLabel string
	tasksLabel  string
	completed   int
}

// New creates a tray manager with the provided callbacks and installs the
// initial menu.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		callbacks:   callbacks,
		statusLabel: "ready",
	}
	manager.rebuild()
	return manager
}

// SetRunning switches the start/pause entry label.
func (manager *Manager) SetRunning(running bool) {
	if manager.running == running {
		return
	}
	manager.running = running
	manager.rebuild()
}

// SetStatus updates the countdown/phase line.
func (manager *Manager) SetStatus(status string) {
	if manager.statusLabel == status {
		return
	}
	manager.statusLabel = status
	manager.rebuild()
}

// SetCompleted updates the completed-session line.
func (manager *Manager) SetCompleted(count int) {
	if manager.completed == count {
		return
	}
	manager.completed = count
	manager.rebuild()
}

// SetActiveTasks updates the task summary line.
func (manager *Manager) SetActiveTasks(count int) {
	label := fmt.Sprintf("%d active tasks", count)
	if count == 1 {
		label = "1 active task"
	}
	if manager.tasksLabel == label {
		return
	}
	manager.tasksLabel = label
	manager.rebuild()
}

// rebuild reinstalls the tray menu; Fyne tray items do not refresh in
// place.
func (manager *Manager) rebuild() {
	status := fyne.NewMenuItem("Status: "+manager.statusLabel, nil)
	status.Disabled = true

	sessions := fyne.NewMenuItem(fmt.Sprintf("Completed: %d", manager.completed), nil)
	sessions.Disabled = true

	tasks := fyne.NewMenuItem(manager.tasksLabel, nil)
	tasks.Disabled = true

	startPauseLabel := "Start"
	if manager.running {
		startPauseLabel = "Pause"
	}

	items := []*fyne.MenuItem{
		status,
		sessions,
	}
	if manager.tasksLabel != "" {
		items = append(items, tasks)
	}
	items = append(items,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(startPauseLabel, manager.callbacks.OnStartPause),
		fyne.NewMenuItem("Reset", manager.callbacks.OnReset),
		fyne.NewMenuItem("Skip Phase", manager.callbacks.OnSkip),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quick Add Task", manager.callbacks.OnQuickAdd),
		fyne.NewMenuItem("Tasks…", manager.callbacks.OnTasks),
		fyne.NewMenuItem("Clear Completed Tasks", manager.callbacks.OnClearCompleted),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Settings", manager.callbacks.OnSettings),
		fyne.NewMenuItem("Quit", manager.callbacks.OnQuit),
	)

	manager.app.SetSystemTrayMenu(fyne.NewMenu("PomoBar", items...))
}
