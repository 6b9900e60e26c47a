// Package tasks implements the task list window: add, toggle, edit,
// delete and reorder for active tasks, plus completed tasks grouped by
// day.
package tasks

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"pomobar/internal/core/model"
	"pomobar/internal/core/tasklist"
)

// Window renders the task store and forwards every mutation back to it.
type Window struct {
	window fyne.Window
	store  *tasklist.Store
	now    func() time.Time

	entry     *widget.Entry
	content   *fyne.Container
	editingID string
}

// New creates the task list window. The window starts hidden.
func New(app fyne.App, store *tasklist.Store) *Window {
	win := app.NewWindow("PomoBar Tasks")

	entry := widget.NewEntry()
	entry.SetPlaceHolder("Add a task…")

	tasksWindow := &Window{
		window:  win,
		store:   store,
		now:     time.Now,
		entry:   entry,
		content: container.NewVBox(),
	}

	entry.OnSubmitted = func(text string) {
		if _, added := store.Add(text); added {
			entry.SetText("")
		}
	}

	win.SetContent(container.NewBorder(entry, nil, nil, nil,
		container.NewVScroll(tasksWindow.content)))
	win.Resize(fyne.NewSize(380, 520))
	win.SetCloseIntercept(win.Hide)

	store.OnChange(func() {
		fyne.Do(tasksWindow.refresh)
	})
	tasksWindow.refresh()

	return tasksWindow
}

// Show displays the window and focuses the add entry.
func (tasksWindow *Window) Show() {
	tasksWindow.window.Show()
	tasksWindow.window.RequestFocus()
	tasksWindow.window.Canvas().Focus(tasksWindow.entry)
}

// FyneWindow exposes the underlying window for key handler wiring.
func (tasksWindow *Window) FyneWindow() fyne.Window {
	return tasksWindow.window
}

// refresh rebuilds the whole list; Fyne containers do not diff in place
// and the lists stay small. Must run on the UI thread.
func (tasksWindow *Window) refresh() {
	tasksWindow.content.RemoveAll()

	active := tasksWindow.store.Active()
	for index, task := range active {
		tasksWindow.content.Add(tasksWindow.activeRow(task, index, len(active)))
	}
	if len(active) == 0 {
		empty := widget.NewLabel("No active tasks")
		tasksWindow.content.Add(empty)
	}

	groups := tasksWindow.store.CompletedByDay()
	if len(groups) > 0 {
		tasksWindow.content.Add(widget.NewSeparator())
		header := container.NewHBox(
			widget.NewLabelWithStyle("Completed", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
			layout.NewSpacer(),
			widget.NewButton("Clear", func() {
				tasksWindow.store.ClearCompleted()
			}),
		)
		tasksWindow.content.Add(header)
	}
	for _, group := range groups {
		tasksWindow.content.Add(widget.NewLabelWithStyle(
			dayTitle(tasksWindow.now(), group.Day), fyne.TextAlignLeading, fyne.TextStyle{Italic: true}))
		for _, task := range group.Tasks {
			tasksWindow.content.Add(tasksWindow.completedRow(task))
		}
	}

	tasksWindow.content.Refresh()
}

func (tasksWindow *Window) activeRow(task model.Task, index, total int) fyne.CanvasObject {
	id := task.ID

	if tasksWindow.editingID == id {
		edit := widget.NewEntry()
		edit.SetText(task.Text)
		edit.OnSubmitted = func(text string) {
			tasksWindow.store.EditText(id, text)
			tasksWindow.editingID = ""
			tasksWindow.refresh()
		}
		cancel := widget.NewButtonWithIcon("", theme.CancelIcon(), func() {
			tasksWindow.editingID = ""
			tasksWindow.refresh()
		})
		return container.NewBorder(nil, nil, nil, cancel, edit)
	}

	check := widget.NewCheck(task.Text, func(bool) {
		tasksWindow.store.Toggle(id)
	})

	up := widget.NewButtonWithIcon("", theme.MoveUpIcon(), func() {
		tasksWindow.moveActive(index, index-1)
	})
	up.Disable()
	if index > 0 {
		up.Enable()
	}
	down := widget.NewButtonWithIcon("", theme.MoveDownIcon(), func() {
		tasksWindow.moveActive(index, index+1)
	})
	down.Disable()
	if index < total-1 {
		down.Enable()
	}

	edit := widget.NewButtonWithIcon("", theme.DocumentCreateIcon(), func() {
		tasksWindow.editingID = id
		tasksWindow.refresh()
	})
	remove := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		tasksWindow.store.Delete(id)
	})

	return container.NewBorder(nil, nil, nil, container.NewHBox(up, down, edit, remove), check)
}

func (tasksWindow *Window) completedRow(task model.Task) fyne.CanvasObject {
	id := task.ID

	check := widget.NewCheck(task.Text, func(bool) {
		tasksWindow.store.Toggle(id)
	})
	check.SetChecked(true)

	remove := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		tasksWindow.store.Delete(id)
	})

	return container.NewBorder(nil, nil, nil, remove, check)
}

func (tasksWindow *Window) moveActive(from, to int) {
	fromAll, toAll, ok := mapActiveMove(tasksWindow.store.Tasks(), tasksWindow.store.Active(), from, to)
	if !ok {
		return
	}
	tasksWindow.store.Reorder(fromAll, toAll)
}

// mapActiveMove translates an index move within the active slice into
// positions in the whole stored list.
func mapActiveMove(all, active []model.Task, from, to int) (int, int, bool) {
	if from < 0 || from >= len(active) || to < 0 || to >= len(active) {
		return 0, 0, false
	}
	fromAll := indexOf(all, active[from].ID)
	toAll := indexOf(all, active[to].ID)
	if fromAll < 0 || toAll < 0 {
		return 0, 0, false
	}
	return fromAll, toAll, true
}

func indexOf(list []model.Task, id string) int {
	for index, task := range list {
		if task.ID == id {
			return index
		}
	}
	return -1
}

// dayTitle renders a completed-group day relative to now.
func dayTitle(now, day time.Time) string {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch {
	case day.Equal(today):
		return "Today"
	case day.Equal(today.AddDate(0, 0, -1)):
		return "Yesterday"
	default:
		return day.Format("Monday, Jan 2")
	}
}
