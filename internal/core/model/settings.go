package model

// Settings defines editable user preferences.
type Settings struct {
	WorkMinutes       int
	ShortBreakMinutes int
	LongBreakMinutes  int
	LongBreakInterval int
	AutoStartBreaks   bool
	AutoStartWork     bool
	SoundEnabled      bool
}

// DefaultSettings returns the built-in defaults used when nothing is
// persisted yet.
func DefaultSettings() Settings {
	return Settings{
		WorkMinutes:       25,
		ShortBreakMinutes: 5,
		LongBreakMinutes:  15,
		LongBreakInterval: 4,
		AutoStartBreaks:   false,
		AutoStartWork:     false,
		SoundEnabled:      true,
	}
}

// Normalize clamps out-of-range values back to their defaults.
func (settings Settings) Normalize() Settings {
	defaults := DefaultSettings()
	if settings.WorkMinutes <= 0 {
		settings.WorkMinutes = defaults.WorkMinutes
	}
	if settings.ShortBreakMinutes <= 0 {
		settings.ShortBreakMinutes = defaults.ShortBreakMinutes
	}
	if settings.LongBreakMinutes <= 0 {
		settings.LongBreakMinutes = defaults.LongBreakMinutes
	}
	if settings.LongBreakInterval < 2 {
		settings.LongBreakInterval = defaults.LongBreakInterval
	}
	return settings
}
