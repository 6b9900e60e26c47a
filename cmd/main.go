package main

import (
	"fmt"
	"log"
	"time"

	"pomobar/internal/core/engine"
	"pomobar/internal/core/model"
	"pomobar/internal/core/shortcut"
	"pomobar/internal/core/tasklist"
	"pomobar/internal/platform"
	"pomobar/internal/storage"
	"pomobar/internal/ui/hotkeys"
	"pomobar/internal/ui/preferences"
	"pomobar/internal/ui/quickadd"
	"pomobar/internal/ui/tasks"
	"pomobar/internal/ui/tray"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

const appName = "PomoBar"

type fyneNotifier struct {
	app fyne.App
}

func (notifier fyneNotifier) Notify(title, body string) {
	notifier.app.SendNotification(fyne.NewNotification(title, body))
}

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	store, err := storage.Open(appName)
	if err != nil {
		log.Printf("open store: %v", err)
		return
	}
	defer func() {
		_ = store.Close()
	}()

	fyneApp := app.NewWithID("com.pomobar.app")
	desktopApp, ok := fyneApp.(desktop.App)
	if !ok {
		log.Printf("system tray unsupported on this platform")
		return
	}

	trayWindow := fyneApp.NewWindow(appName)
	trayWindow.SetContent(widget.NewLabel("PomoBar is running in the menu bar."))
	trayWindow.SetCloseIntercept(func() {
		trayWindow.Hide()
	})
	trayWindow.Hide()
	desktopApp.SetSystemTrayWindow(trayWindow)

	settings := storage.LoadSettings(store)
	eng := engine.New(settings, engine.Config{TickInterval: time.Second})
	eng.SetNotifier(fyneNotifier{app: fyneApp})
	eng.SetAudioCue(platform.NewSoundPlayer())
	eng.SetCountStore(store)
	eng.SetCompletedCount(storage.LoadCompletedCount(store))

	taskStore := tasklist.NewStore(store)

	quickWindow := quickadd.New(fyneApp, func(text string) bool {
		_, added := taskStore.Add(text)
		return added
	})
	tasksWindow := tasks.New(fyneApp, taskStore)

	startPause := func() {
		if eng.Snapshot().State == engine.StateRunning {
			eng.Pause()
		} else {
			eng.Start()
		}
	}

	registry := shortcut.NewRegistry(store, shortcut.Handlers{
		OnStartPause: startPause,
		OnReset:      eng.Reset,
		OnSkip:       eng.Skip,
		OnQuickAdd: func() {
			fyne.Do(quickWindow.Toggle)
		},
	})
	registry.WatchCapability(platform.NewCapabilityProbe(), platform.NewGlobalKeySource(), 2*time.Second)

	prefsWindow := preferences.New(fyneApp, settings, registry, func(updated model.Settings) {
		eng.UpdateSettings(updated)
		if err := storage.SaveSettings(store, updated); err != nil {
			log.Printf("save settings: %v", err)
		}
	})

	keySource := hotkeys.NewSource(registry)
	keySource.Attach(trayWindow)
	keySource.Attach(prefsWindow.FyneWindow())
	keySource.Attach(quickWindow.FyneWindow())
	keySource.Attach(tasksWindow.FyneWindow())

	var trayManager *tray.Manager
	trayManager = tray.New(desktopApp, tray.Callbacks{
		OnStartPause: startPause,
		OnReset:      eng.Reset,
		OnSkip:       eng.Skip,
		OnQuickAdd:   quickWindow.Toggle,
		OnTasks:      tasksWindow.Show,
		OnClearCompleted: func() {
			taskStore.ClearCompleted()
		},
		OnSettings: prefsWindow.Show,
		OnQuit: func() {
			registry.Close()
			eng.Close()
			fyneApp.Quit()
		},
	})

	taskStore.OnChange(func() {
		fyne.Do(func() {
			trayManager.SetActiveTasks(len(taskStore.Active()))
		})
	})
	trayManager.SetActiveTasks(len(taskStore.Active()))

	events := eng.Subscribe(8)
	go func() {
		for event := range events {
			event := event
			fyne.Do(func() {
				trayManager.SetRunning(event.State == engine.StateRunning)
				trayManager.SetStatus(statusLine(event))
				trayManager.SetCompleted(event.Completed)
			})
		}
	}()
	initial := eng.Snapshot()
	trayManager.SetStatus(statusLine(snapshotEvent(initial)))
	trayManager.SetCompleted(initial.Completed)

	eng.Run()
	fyneApp.Run()
}

func snapshotEvent(snap engine.Snapshot) engine.Event {
	return engine.Event{
		Type:      engine.EventProgress,
		Phase:     snap.Phase,
		State:     snap.State,
		Remaining: snap.Remaining,
		Completed: snap.Completed,
	}
}

func statusLine(event engine.Event) string {
	label := event.Phase.Name()
	switch event.State {
	case engine.StateIdle:
		return label + " · ready"
	case engine.StatePaused:
		return label + " · paused " + formatRemaining(event.Remaining)
	default:
		return label + " · " + formatRemaining(event.Remaining)
	}
}

func formatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
