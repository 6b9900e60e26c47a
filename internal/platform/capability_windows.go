//go:build windows

package platform

import "pomobar/internal/core/shortcut"

type capabilityProbe struct{}

func newCapabilityProbe() shortcut.CapabilityProbe {
	return capabilityProbe{}
}

// IsGranted is always true: Windows does not gate keyboard hooks behind a
// user-visible permission.
func (capabilityProbe) IsGranted() bool { return true }

func (capabilityProbe) Request() {}
