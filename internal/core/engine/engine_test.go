package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomobar/internal/core/model"
)

type fakeNotifier struct {
	titles []string
	bodies []string
}

func (n *fakeNotifier) Notify(title, body string) {
	n.titles = append(n.titles, title)
	n.bodies = append(n.bodies, body)
}

type fakeAudio struct {
	cues []string
}

func (a *fakeAudio) Play(name string) {
	a.cues = append(a.cues, name)
}

type fakeCountStore struct {
	saved []int
}

func (s *fakeCountStore) SaveCompletedCount(count int) error {
	s.saved = append(s.saved, count)
	return nil
}

func newTestEngine(settings model.Settings) (*Engine, *fakeNotifier, *fakeAudio, *fakeCountStore) {
	eng := New(settings, Config{TickInterval: time.Second})
	notifier := &fakeNotifier{}
	audio := &fakeAudio{}
	counts := &fakeCountStore{}
	eng.SetNotifier(notifier)
	eng.SetAudioCue(audio)
	eng.SetCountStore(counts)
	return eng, notifier, audio, counts
}

func TestNewStartsIdleOnWork(t *testing.T) {
	eng, _, _, _ := newTestEngine(model.DefaultSettings())

	snap := eng.Snapshot()
	assert.Equal(t, PhaseWork, snap.Phase)
	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, 25*60, snap.Remaining)
	assert.Equal(t, 0, snap.Completed)
}

func TestTickOnlyConsumedWhileRunning(t *testing.T) {
	eng, _, _, _ := newTestEngine(model.DefaultSettings())

	eng.tick(time.Now())
	assert.Equal(t, 25*60, eng.Snapshot().Remaining, "idle engine must ignore ticks")

	eng.Start()
	eng.tick(time.Now())
	assert.Equal(t, 25*60-1, eng.Snapshot().Remaining)

	eng.Pause()
	eng.tick(time.Now())
	assert.Equal(t, 25*60-1, eng.Snapshot().Remaining, "paused engine must ignore ticks")
}

func TestTickToZeroCompletesPhase(t *testing.T) {
	settings := model.DefaultSettings()
	settings.WorkMinutes = 1
	eng, notifier, _, _ := newTestEngine(settings)

	eng.Start()
	for i := 0; i < 60; i++ {
		eng.tick(time.Now())
	}
	snap := eng.Snapshot()
	assert.Equal(t, 0, snap.Remaining)
	assert.Equal(t, PhaseWork, snap.Phase, "phase ends on the tick after reaching zero")

	eng.tick(time.Now())
	snap = eng.Snapshot()
	assert.Equal(t, PhaseShortBreak, snap.Phase)
	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, 5*60, snap.Remaining)
	assert.Equal(t, 1, snap.Completed)

	require.Len(t, notifier.titles, 1)
	assert.Equal(t, "Pomodoro Complete!", notifier.titles[0])
	assert.Equal(t, "Great work! Time for a break.", notifier.bodies[0])
}

func TestSkipCadenceWithIntervalFour(t *testing.T) {
	eng, _, _, _ := newTestEngine(model.DefaultSettings())

	wantPhases := []Phase{
		PhaseShortBreak, PhaseWork,
		PhaseShortBreak, PhaseWork,
		PhaseShortBreak, PhaseWork,
		PhaseLongBreak,
	}
	wantCompleted := []int{1, 1, 2, 2, 3, 3, 4}

	for i, want := range wantPhases {
		eng.Skip()
		snap := eng.Snapshot()
		assert.Equal(t, want, snap.Phase, "after skip %d", i+1)
		assert.Equal(t, wantCompleted[i], snap.Completed, "after skip %d", i+1)
	}
}

func TestCompletedCountOnlyIncrementsLeavingWork(t *testing.T) {
	eng, _, _, counts := newTestEngine(model.DefaultSettings())

	eng.Skip() // work -> short break
	eng.Skip() // short break -> work
	snap := eng.Snapshot()
	assert.Equal(t, 1, snap.Completed)
	assert.Equal(t, []int{1}, counts.saved, "break completion must not persist the count")
}

func TestBreakCompletionNotification(t *testing.T) {
	eng, notifier, _, _ := newTestEngine(model.DefaultSettings())

	eng.Skip()
	eng.Skip()
	require.Len(t, notifier.titles, 2)
	assert.Equal(t, "Break is Over", notifier.titles[1])
	assert.Equal(t, "Ready to focus again?", notifier.bodies[1])
}

func TestResetRestoresFullDurationKeepsPhaseAndCount(t *testing.T) {
	eng, _, _, _ := newTestEngine(model.DefaultSettings())

	eng.Skip() // enter short break, completed = 1
	eng.Start()
	eng.tick(time.Now())
	eng.tick(time.Now())

	eng.Reset()
	snap := eng.Snapshot()
	assert.Equal(t, StateIdle, snap.State)
	assert.Equal(t, PhaseShortBreak, snap.Phase)
	assert.Equal(t, 5*60, snap.Remaining)
	assert.Equal(t, 1, snap.Completed)
}

func TestPauseIsIdempotent(t *testing.T) {
	eng, _, audio, _ := newTestEngine(model.DefaultSettings())

	eng.Pause()
	assert.Equal(t, StateIdle, eng.Snapshot().State, "pause while idle is a no-op")
	assert.Empty(t, audio.cues)

	eng.Start()
	eng.tick(time.Now())
	eng.Pause()
	first := eng.Snapshot()
	eng.Pause()
	second := eng.Snapshot()
	assert.Equal(t, first, second)
}

func TestStartFromPausedKeepsRemaining(t *testing.T) {
	eng, _, _, _ := newTestEngine(model.DefaultSettings())

	eng.Start()
	eng.tick(time.Now())
	eng.tick(time.Now())
	eng.Pause()
	eng.Start()

	snap := eng.Snapshot()
	assert.Equal(t, StateRunning, snap.State)
	assert.Equal(t, 25*60-2, snap.Remaining)
}

func TestAutoStartBreaks(t *testing.T) {
	settings := model.DefaultSettings()
	settings.AutoStartBreaks = true
	eng, _, audio, _ := newTestEngine(settings)

	eng.Skip()
	snap := eng.Snapshot()
	assert.Equal(t, PhaseShortBreak, snap.Phase)
	assert.Equal(t, StateRunning, snap.State)
	assert.Equal(t, []string{"Ping", "Hero", "Glass"}, audio.cues)
}

func TestAutoStartWork(t *testing.T) {
	settings := model.DefaultSettings()
	settings.AutoStartWork = true
	eng, _, _, _ := newTestEngine(settings)

	eng.Skip() // work -> short break, stays idle
	assert.Equal(t, StateIdle, eng.Snapshot().State)

	eng.Skip() // short break -> work, auto-started
	snap := eng.Snapshot()
	assert.Equal(t, PhaseWork, snap.Phase)
	assert.Equal(t, StateRunning, snap.State)
}

func TestSoundDisabledSuppressesCues(t *testing.T) {
	settings := model.DefaultSettings()
	settings.SoundEnabled = false
	eng, _, audio, _ := newTestEngine(settings)

	eng.Start()
	eng.Pause()
	eng.Skip()
	assert.Empty(t, audio.cues)
}

func TestUpdateSettingsWhileIdleSnapsRemaining(t *testing.T) {
	eng, _, _, _ := newTestEngine(model.DefaultSettings())

	settings := eng.Settings()
	settings.WorkMinutes = 50
	eng.UpdateSettings(settings)

	assert.Equal(t, 50*60, eng.Snapshot().Remaining)
}

func TestUpdateSettingsWhileRunningLocksInDuration(t *testing.T) {
	eng, _, _, _ := newTestEngine(model.DefaultSettings())

	eng.Start()
	eng.tick(time.Now())

	settings := eng.Settings()
	settings.WorkMinutes = 50
	settings.ShortBreakMinutes = 10
	eng.UpdateSettings(settings)

	assert.Equal(t, 25*60-1, eng.Snapshot().Remaining, "in-progress phase keeps its duration")

	eng.Skip()
	assert.Equal(t, 10*60, eng.Snapshot().Remaining, "next phase uses the new duration")
}

func TestSubscribeReceivesPhaseComplete(t *testing.T) {
	eng, _, _, _ := newTestEngine(model.DefaultSettings())
	events := eng.Subscribe(8)

	eng.Skip()

	var seen []EventType
	for {
		select {
		case event := <-events:
			seen = append(seen, event.Type)
			continue
		default:
		}
		break
	}
	assert.Contains(t, seen, EventPhaseComplete)
	assert.Contains(t, seen, EventStateChange)
}

func TestSeededCompletedCountDrivesCadence(t *testing.T) {
	eng, _, _, _ := newTestEngine(model.DefaultSettings())
	eng.SetCompletedCount(3)

	eng.Skip()
	snap := eng.Snapshot()
	assert.Equal(t, 4, snap.Completed)
	assert.Equal(t, PhaseLongBreak, snap.Phase)
}

func TestSwappedCollaboratorsApplyToNextCompletion(t *testing.T) {
	eng, _, first, _ := newTestEngine(model.DefaultSettings())

	eng.Skip()
	require.Equal(t, []string{"Ping", "Hero"}, first.cues)

	second := &fakeAudio{}
	replacement := &fakeCountStore{}
	eng.SetAudioCue(second)
	eng.SetCountStore(replacement)

	eng.Skip()
	assert.Equal(t, []string{"Ping", "Hero"}, first.cues, "replaced cue player must not fire again")
	assert.Equal(t, []string{"Ping", "Hero"}, second.cues)
	assert.Empty(t, replacement.saved, "break completion must not touch the count store")

	eng.Skip()
	assert.Equal(t, []int{2}, replacement.saved)
}
