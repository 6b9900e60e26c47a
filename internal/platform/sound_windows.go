//go:build windows

package platform

import "pomobar/internal/core/engine"

func newSoundPlayer() engine.AudioCue {
	return silentPlayer{}
}
