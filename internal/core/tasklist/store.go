// Package tasklist owns the personal task list: ordered CRUD with silent
// validation, derived views and whole-list persistence after every
// successful mutation.
package tasklist

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"pomobar/internal/core/model"
)

// Task text is capped at 100 characters after trimming, on add only.
const maxTextLength = 100

const tasksKey = "todos"

// KV is the slice of the persistence adapter the store needs.
type KV interface {
	GetJSON(key string, out any) (bool, error)
	SetJSON(key string, value any) error
}

// DayGroup is one calendar day of completed tasks.
type DayGroup struct {
	Day   time.Time
	Tasks []model.Task
}

// Store holds the task list. A failed save never rolls back the in-memory
// mutation; memory stays authoritative for the session.
type Store struct {
	mu        sync.Mutex
	kv        KV
	now       func() time.Time
	tasks     []model.Task
	listeners []func()
}

// NewStore creates a Store backed by the given key-value adapter and loads
// any persisted list.
func NewStore(kv KV) *Store {
	store := &Store{kv: kv, now: time.Now}
	if kv != nil {
		var tasks []model.Task
		if ok, err := kv.GetJSON(tasksKey, &tasks); err == nil && ok {
			store.tasks = tasks
		}
	}
	return store
}

// OnChange registers a listener invoked after every successful mutation.
// Listeners must not call back into the store.
func (store *Store) OnChange(listener func()) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.listeners = append(store.listeners, listener)
}

// Add appends a new task. Empty or over-long text (after trimming) is a
// silent no-op.
func (store *Store) Add(text string) (model.Task, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || len([]rune(trimmed)) > maxTextLength {
		return model.Task{}, false
	}

	store.mu.Lock()
	task := model.Task{
		ID:        uuid.NewString(),
		Text:      trimmed,
		CreatedAt: store.now(),
	}
	store.tasks = append(store.tasks, task)
	store.saveLocked()
	store.mu.Unlock()

	store.notify()
	return task, true
}

// Toggle flips completion for the task with the given id. CompletedAt is
// set exactly while the task is completed.
func (store *Store) Toggle(id string) bool {
	store.mu.Lock()
	index := store.indexLocked(id)
	if index < 0 {
		store.mu.Unlock()
		return false
	}
	task := &store.tasks[index]
	task.IsCompleted = !task.IsCompleted
	if task.IsCompleted {
		completedAt := store.now()
		task.CompletedAt = &completedAt
	} else {
		task.CompletedAt = nil
	}
	store.saveLocked()
	store.mu.Unlock()

	store.notify()
	return true
}

// EditText replaces a task's text. Unknown ids and blank replacements are
// silent no-ops; edits are not length-capped.
func (store *Store) EditText(id, newText string) bool {
	trimmed := strings.TrimSpace(newText)
	if trimmed == "" {
		return false
	}

	store.mu.Lock()
	index := store.indexLocked(id)
	if index < 0 {
		store.mu.Unlock()
		return false
	}
	store.tasks[index].Text = trimmed
	store.saveLocked()
	store.mu.Unlock()

	store.notify()
	return true
}

// Delete removes the task with the given id.
func (store *Store) Delete(id string) bool {
	store.mu.Lock()
	index := store.indexLocked(id)
	if index < 0 {
		store.mu.Unlock()
		return false
	}
	store.tasks = append(store.tasks[:index], store.tasks[index+1:]...)
	store.saveLocked()
	store.mu.Unlock()

	store.notify()
	return true
}

// DeleteAt removes the task at a list position.
func (store *Store) DeleteAt(index int) bool {
	store.mu.Lock()
	if index < 0 || index >= len(store.tasks) {
		store.mu.Unlock()
		return false
	}
	store.tasks = append(store.tasks[:index], store.tasks[index+1:]...)
	store.saveLocked()
	store.mu.Unlock()

	store.notify()
	return true
}

// Reorder moves one task, preserving the relative order of the rest.
func (store *Store) Reorder(from, to int) bool {
	store.mu.Lock()
	if from < 0 || from >= len(store.tasks) || to < 0 || to >= len(store.tasks) {
		store.mu.Unlock()
		return false
	}
	if from == to {
		store.mu.Unlock()
		return true
	}
	task := store.tasks[from]
	store.tasks = append(store.tasks[:from], store.tasks[from+1:]...)
	store.tasks = append(store.tasks[:to], append([]model.Task{task}, store.tasks[to:]...)...)
	store.saveLocked()
	store.mu.Unlock()

	store.notify()
	return true
}

// ClearCompleted removes every completed task and reports how many.
func (store *Store) ClearCompleted() int {
	store.mu.Lock()
	kept := store.tasks[:0]
	removed := 0
	for _, task := range store.tasks {
		if task.IsCompleted {
			removed++
			continue
		}
		kept = append(kept, task)
	}
	store.tasks = kept
	if removed > 0 {
		store.saveLocked()
	}
	store.mu.Unlock()

	if removed > 0 {
		store.notify()
	}
	return removed
}

// Tasks returns a copy of the full list in stored order.
func (store *Store) Tasks() []model.Task {
	store.mu.Lock()
	defer store.mu.Unlock()
	return append([]model.Task(nil), store.tasks...)
}

// Active returns the incomplete tasks in list order.
func (store *Store) Active() []model.Task {
	store.mu.Lock()
	defer store.mu.Unlock()
	var active []model.Task
	for _, task := range store.tasks {
		if !task.IsCompleted {
			active = append(active, task)
		}
	}
	return active
}

// Len returns the list length.
func (store *Store) Len() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.tasks)
}

// CompletedByDay groups completed tasks by the calendar day they were
// completed, most recent day first. Within a day the stored order is kept;
// ordering is compared at day granularity only.
func (store *Store) CompletedByDay() []DayGroup {
	store.mu.Lock()
	defer store.mu.Unlock()

	groups := make(map[time.Time]*DayGroup)
	var days []time.Time
	for _, task := range store.tasks {
		if !task.IsCompleted || task.CompletedAt == nil {
			continue
		}
		completedAt := *task.CompletedAt
		day := time.Date(completedAt.Year(), completedAt.Month(), completedAt.Day(), 0, 0, 0, 0, completedAt.Location())
		group, ok := groups[day]
		if !ok {
			group = &DayGroup{Day: day}
			groups[day] = group
			days = append(days, day)
		}
		group.Tasks = append(group.Tasks, task)
	}

	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	result := make([]DayGroup, 0, len(days))
	for _, day := range days {
		result = append(result, *groups[day])
	}
	return result
}

func (store *Store) indexLocked(id string) int {
	for i, task := range store.tasks {
		if task.ID == id {
			return i
		}
	}
	return -1
}

func (store *Store) saveLocked() {
	if store.kv == nil {
		return
	}
	// Fire and forget: memory is the source of truth for the session.
	_ = store.kv.SetJSON(tasksKey, store.tasks)
}

func (store *Store) notify() {
	store.mu.Lock()
	listeners := make([]func(), len(store.listeners))
	copy(listeners, store.listeners)
	store.mu.Unlock()
	for _, listener := range listeners {
		listener()
	}
}
