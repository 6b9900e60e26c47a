//go:build darwin

package platform

import (
	"os"
	"os/exec"
	"path/filepath"

	"pomobar/internal/core/engine"
)

const systemSoundsDir = "/System/Library/Sounds"

type soundPlayer struct {
	afplayPath string
}

func newSoundPlayer() engine.AudioCue {
	path, err := exec.LookPath("afplay")
	if err != nil {
		return silentPlayer{}
	}
	return &soundPlayer{afplayPath: path}
}

// Play spawns afplay on the named system sound and does not wait for it.
func (player *soundPlayer) Play(name string) {
	file := filepath.Join(systemSoundsDir, name+".aiff")
	if _, err := os.Stat(file); err != nil {
		return
	}
	_ = exec.Command(player.afplayPath, file).Start()
}
