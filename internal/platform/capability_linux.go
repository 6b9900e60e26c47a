//go:build linux

package platform

import "pomobar/internal/core/shortcut"

type capabilityProbe struct{}

func newCapabilityProbe() shortcut.CapabilityProbe {
	return capabilityProbe{}
}

// IsGranted is always false: no desktop environment we target exposes a
// grant for out-of-focus keyboard observation to unprivileged processes.
func (capabilityProbe) IsGranted() bool { return false }

func (capabilityProbe) Request() {}
