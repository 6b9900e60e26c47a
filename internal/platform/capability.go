package platform

import "pomobar/internal/core/shortcut"

// NewCapabilityProbe returns the platform-specific probe for the
// system-wide keyboard observation grant.
func NewCapabilityProbe() shortcut.CapabilityProbe {
	return newCapabilityProbe()
}

// NewGlobalKeySource returns the platform-specific system-wide key
// listener. On platforms without an in-process event tap, Start reports
// shortcut.ErrGlobalCaptureUnsupported and the registry stays in its
// focus-scoped degraded mode.
func NewGlobalKeySource() shortcut.GlobalSource {
	return unsupportedKeySource{}
}

type unsupportedKeySource struct{}

func (unsupportedKeySource) Start(func(shortcut.KeyEvent)) error {
	return shortcut.ErrGlobalCaptureUnsupported
}

func (unsupportedKeySource) Stop() {}
