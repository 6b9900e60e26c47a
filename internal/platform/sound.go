package platform

import "pomobar/internal/core/engine"

// NewSoundPlayer returns a platform-specific sound cue player. Playback is
// fire-and-forget; cues that cannot be played are dropped silently.
func NewSoundPlayer() engine.AudioCue {
	return newSoundPlayer()
}

type silentPlayer struct{}

func (silentPlayer) Play(string) {}
