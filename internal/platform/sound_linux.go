//go:build linux

package platform

import (
	"os"
	"os/exec"

	"pomobar/internal/core/engine"
)

// freedesktop has no named equivalents of the macOS cues; one completion
// tone covers every cue.
const fallbackTone = "/usr/share/sounds/freedesktop/stereo/complete.oga"

type soundPlayer struct {
	paplayPath string
}

func newSoundPlayer() engine.AudioCue {
	path, err := exec.LookPath("paplay")
	if err != nil {
		return silentPlayer{}
	}
	if _, err := os.Stat(fallbackTone); err != nil {
		return silentPlayer{}
	}
	return &soundPlayer{paplayPath: path}
}

func (player *soundPlayer) Play(string) {
	_ = exec.Command(player.paplayPath, fallbackTone).Start()
}
