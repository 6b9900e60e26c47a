package storage

import (
	"pomobar/internal/core/model"
)

// Persisted settings keys.
const (
	keyWorkDuration       = "workDuration"
	keyShortBreakDuration = "shortBreakDuration"
	keyLongBreakDuration  = "longBreakDuration"
	keyLongBreakInterval  = "longBreakInterval"
	keyAutoStartBreaks    = "autoStartBreaks"
	keyAutoStartWork      = "autoStartPomodoros"
	keySoundEnabled       = "soundEnabled"
	keyCompletedCount     = "completedPomodoros"
)

// LoadSettings reads user preferences from the store. Missing or invalid
// entries fall back to the built-in defaults per key.
func LoadSettings(store *Store) model.Settings {
	settings := model.DefaultSettings()

	if value, ok, err := store.GetInt(keyWorkDuration); err == nil && ok && value > 0 {
		settings.WorkMinutes = value
	}
	if value, ok, err := store.GetInt(keyShortBreakDuration); err == nil && ok && value > 0 {
		settings.ShortBreakMinutes = value
	}
	if value, ok, err := store.GetInt(keyLongBreakDuration); err == nil && ok && value > 0 {
		settings.LongBreakMinutes = value
	}
	if value, ok, err := store.GetInt(keyLongBreakInterval); err == nil && ok && value >= 2 {
		settings.LongBreakInterval = value
	}
	if value, ok, err := store.GetBool(keyAutoStartBreaks); err == nil && ok {
		settings.AutoStartBreaks = value
	}
	if value, ok, err := store.GetBool(keyAutoStartWork); err == nil && ok {
		settings.AutoStartWork = value
	}
	if value, ok, err := store.GetBool(keySoundEnabled); err == nil && ok {
		settings.SoundEnabled = value
	}

	return settings
}

// SaveSettings writes every settings key.
func SaveSettings(store *Store, settings model.Settings) error {
	settings = settings.Normalize()

	writes := []func() error{
		func() error { return store.SetInt(keyWorkDuration, settings.WorkMinutes) },
		func() error { return store.SetInt(keyShortBreakDuration, settings.ShortBreakMinutes) },
		func() error { return store.SetInt(keyLongBreakDuration, settings.LongBreakMinutes) },
		func() error { return store.SetInt(keyLongBreakInterval, settings.LongBreakInterval) },
		func() error { return store.SetBool(keyAutoStartBreaks, settings.AutoStartBreaks) },
		func() error { return store.SetBool(keyAutoStartWork, settings.AutoStartWork) },
		func() error { return store.SetBool(keySoundEnabled, settings.SoundEnabled) },
	}
	for _, write := range writes {
		if err := write(); err != nil {
			return err
		}
	}
	return nil
}

// LoadCompletedCount reads the persisted completed-session counter.
func LoadCompletedCount(store *Store) int {
	value, ok, err := store.GetInt(keyCompletedCount)
	if err != nil || !ok || value < 0 {
		return 0
	}
	return value
}

// SaveCompletedCount persists the completed-session counter. Satisfies the
// engine's CountStore.
func (store *Store) SaveCompletedCount(count int) error {
	return store.SetInt(keyCompletedCount, count)
}
