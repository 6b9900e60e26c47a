package engine

import (
	"sync"
	"time"

	"pomobar/internal/core/model"
)

// Sound cue names handed to the AudioCue collaborator.
const (
	cueStart    = "Glass"
	cuePause    = "Pop"
	cueReset    = "Submarine"
	cueSkip     = "Ping"
	cueComplete = "Hero"
)

// Notifier displays a platform notification for a completed phase.
// Calls are fire-and-forget and must not call back into the engine.
type Notifier interface {
	Notify(title, body string)
}

// AudioCue plays a named sound cue. Failures are silently ignored.
type AudioCue interface {
	Play(name string)
}

// CountStore persists the completed-session counter.
type CountStore interface {
	SaveCompletedCount(count int) error
}

// Config contains runtime options for the Engine.
type Config struct {
	TickInterval time.Duration
}

// Engine is the pomodoro state machine. It owns the current phase,
// transport state, remaining time and completed-session count, and drives
// itself from an internal once-per-second clock while running.
type Engine struct {
	mu         sync.Mutex
	settings   model.Settings
	options    Config
	phase      Phase
	state      State
	remaining  int
	completed  int
	notifier   Notifier
	audio      AudioCue
	countStore CountStore
	events     []chan Event
	stopCh     chan struct{}
	running    bool
}

// completion captures what happened during one pass of the completion
// path, collaborators included, so their calls can be made outside the
// lock.
type completion struct {
	ended        Phase
	completed    int
	autoStarted  bool
	soundEnabled bool
	countChanged bool
	notifier     Notifier
	audio        AudioCue
	countStore   CountStore
}

// New creates an Engine in (Idle, Work) with the full work duration loaded.
func New(settings model.Settings, options Config) *Engine {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	settings = settings.Normalize()

	eng := &Engine{
		settings: settings,
		options:  options,
		phase:    PhaseWork,
		state:    StateIdle,
		stopCh:   make(chan struct{}),
	}
	eng.remaining = eng.phaseSecondsLocked(PhaseWork)
	return eng
}

// SetNotifier injects the notification collaborator.
func (eng *Engine) SetNotifier(notifier Notifier) {
	eng.mu.Lock()
	defer eng.mu.Unlock()
	eng.notifier = notifier
}

// SetAudioCue injects the sound collaborator.
func (eng *Engine) SetAudioCue(audio AudioCue) {
	eng.mu.Lock()
	defer eng.mu.Unlock()
	eng.audio = audio
}

// SetCountStore injects the persistence collaborator for the session count.
func (eng *Engine) SetCountStore(store CountStore) {
	eng.mu.Lock()
	defer eng.mu.Unlock()
	eng.countStore = store
}

// SetCompletedCount seeds the session counter from persisted state.
func (eng *Engine) SetCompletedCount(count int) {
	eng.mu.Lock()
	defer eng.mu.Unlock()
	if count < 0 {
		count = 0
	}
	eng.completed = count
}

// Subscribe registers a new observer channel.
func (eng *Engine) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	eng.mu.Lock()
	eng.events = append(eng.events, ch)
	eng.mu.Unlock()
	return ch
}

// Run launches the internal clock loop. Ticks are consumed only while the
// transport state is Running.
func (eng *Engine) Run() {
	eng.mu.Lock()
	if eng.running {
		eng.mu.Unlock()
		return
	}
	eng.running = true
	eng.mu.Unlock()

	go eng.run()
}

// Close terminates the clock loop and closes observer channels.
func (eng *Engine) Close() {
	eng.mu.Lock()
	if !eng.running {
		eng.mu.Unlock()
		return
	}
	close(eng.stopCh)
	eng.running = false
	events := eng.events
	eng.events = nil
	eng.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

// Start begins (or resumes) the countdown. No-op while already running.
func (eng *Engine) Start() {
	eng.mu.Lock()
	if eng.state == StateRunning {
		eng.mu.Unlock()
		return
	}
	eng.state = StateRunning
	sound := eng.settings.SoundEnabled
	audio := eng.audio
	eng.emitLocked(eng.stateEventLocked(EventStateChange))
	eng.mu.Unlock()

	play(audio, sound, cueStart)
}

// Pause freezes the countdown. No-op unless running.
func (eng *Engine) Pause() {
	eng.mu.Lock()
	if eng.state != StateRunning {
		eng.mu.Unlock()
		return
	}
	eng.state = StatePaused
	sound := eng.settings.SoundEnabled
	audio := eng.audio
	eng.emitLocked(eng.stateEventLocked(EventStateChange))
	eng.mu.Unlock()

	play(audio, sound, cuePause)
}

// Reset stops the countdown and restores the full duration of the current
// phase. The phase and the completed count are left untouched.
func (eng *Engine) Reset() {
	eng.mu.Lock()
	eng.state = StateIdle
	eng.remaining = eng.phaseSecondsLocked(eng.phase)
	sound := eng.settings.SoundEnabled
	audio := eng.audio
	eng.emitLocked(eng.stateEventLocked(EventStateChange))
	eng.mu.Unlock()

	play(audio, sound, cueReset)
}

// Skip ends the current phase immediately through the normal completion
// path, from any transport state.
func (eng *Engine) Skip() {
	eng.mu.Lock()
	done := eng.completeLocked(time.Now())
	eng.mu.Unlock()

	play(done.audio, done.soundEnabled, cueSkip)
	eng.announce(done)
}

// UpdateSettings replaces the configured durations and policy flags. While
// idle the remaining time snaps to the new duration of the current phase;
// while running or paused the in-progress phase keeps its locked-in
// duration and the change applies from the next transition.
func (eng *Engine) UpdateSettings(settings model.Settings) {
	settings = settings.Normalize()

	eng.mu.Lock()
	eng.settings = settings
	if eng.state == StateIdle {
		eng.remaining = eng.phaseSecondsLocked(eng.phase)
		eng.emitLocked(eng.stateEventLocked(EventProgress))
	}
	eng.mu.Unlock()
}

// Snapshot returns a copy of the current engine state.
func (eng *Engine) Snapshot() Snapshot {
	eng.mu.Lock()
	defer eng.mu.Unlock()
	remaining := eng.remaining
	if remaining < 0 {
		remaining = 0
	}
	return Snapshot{
		Phase:     eng.phase,
		State:     eng.state,
		Remaining: remaining,
		Completed: eng.completed,
	}
}

// Settings returns the currently configured settings.
func (eng *Engine) Settings() model.Settings {
	eng.mu.Lock()
	defer eng.mu.Unlock()
	return eng.settings
}

func (eng *Engine) run() {
	ticker := time.NewTicker(eng.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-eng.stopCh:
			return
		case tickTime := <-ticker.C:
			eng.tick(tickTime)
		}
	}
}

func (eng *Engine) tick(now time.Time) {
	eng.mu.Lock()
	if eng.state != StateRunning {
		eng.mu.Unlock()
		return
	}

	if eng.remaining > 0 {
		eng.remaining--
		eng.emitLocked(Event{
			Type:      EventProgress,
			Phase:     eng.phase,
			State:     eng.state,
			Remaining: eng.remaining,
			Completed: eng.completed,
			At:        now,
		})
		eng.mu.Unlock()
		return
	}

	done := eng.completeLocked(now)
	eng.mu.Unlock()
	eng.announce(done)
}

// completeLocked runs the completion path: stop, count, pick the next
// phase, reload its duration and apply the auto-start policy. Auto-start is
// the single sanctioned same-tick chain; it only flips state back to
// Running and never re-enters the completion path.
func (eng *Engine) completeLocked(now time.Time) completion {
	ended := eng.phase
	eng.state = StateIdle

	if ended == PhaseWork {
		eng.completed++
		if eng.completed%eng.settings.LongBreakInterval == 0 {
			eng.phase = PhaseLongBreak
		} else {
			eng.phase = PhaseShortBreak
		}
	} else {
		eng.phase = PhaseWork
	}

	eng.remaining = eng.phaseSecondsLocked(eng.phase)

	auto := false
	if eng.phase.IsBreak() {
		auto = eng.settings.AutoStartBreaks
	} else {
		auto = eng.settings.AutoStartWork
	}
	if auto {
		eng.state = StateRunning
	}

	eng.emitLocked(Event{
		Type:      EventPhaseComplete,
		Phase:     ended,
		State:     eng.state,
		Remaining: eng.remaining,
		Completed: eng.completed,
		At:        now,
	})
	eng.emitLocked(eng.stateEventLocked(EventStateChange))

	return completion{
		ended:        ended,
		completed:    eng.completed,
		autoStarted:  auto,
		soundEnabled: eng.settings.SoundEnabled,
		countChanged: ended == PhaseWork,
		notifier:     eng.notifier,
		audio:        eng.audio,
		countStore:   eng.countStore,
	}
}

// announce dispatches the fire-and-forget side effects of a completion
// outside the lock, using the collaborators snapshotted at completion.
func (eng *Engine) announce(done completion) {
	play(done.audio, done.soundEnabled, cueComplete)

	if done.notifier != nil {
		if done.ended == PhaseWork {
			done.notifier.Notify("Pomodoro Complete!", "Great work! Time for a break.")
		} else {
			done.notifier.Notify("Break is Over", "Ready to focus again?")
		}
	}

	if done.countChanged && done.countStore != nil {
		// A failed save leaves the in-memory count authoritative.
		_ = done.countStore.SaveCompletedCount(done.completed)
	}

	if done.autoStarted {
		play(done.audio, done.soundEnabled, cueStart)
	}
}

func play(audio AudioCue, enabled bool, name string) {
	if !enabled || audio == nil {
		return
	}
	audio.Play(name)
}

func (eng *Engine) phaseSecondsLocked(phase Phase) int {
	switch phase {
	case PhaseShortBreak:
		return eng.settings.ShortBreakMinutes * 60
	case PhaseLongBreak:
		return eng.settings.LongBreakMinutes * 60
	default:
		return eng.settings.WorkMinutes * 60
	}
}

func (eng *Engine) stateEventLocked(eventType EventType) Event {
	return Event{
		Type:      eventType,
		Phase:     eng.phase,
		State:     eng.state,
		Remaining: eng.remaining,
		Completed: eng.completed,
		At:        time.Now(),
	}
}

func (eng *Engine) emitLocked(event Event) {
	for _, ch := range eng.events {
		select {
		case ch <- event:
		default:
		}
	}
}
