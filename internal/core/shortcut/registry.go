package shortcut

import (
	"errors"
	"strings"
	"sync"
	"time"
)

// ErrGlobalCaptureUnsupported indicates the platform cannot observe
// keyboard events outside the application's own windows.
var ErrGlobalCaptureUnsupported = errors.New("global key capture unsupported")

// storage keys: v2 JSON bindings, with a read-only legacy plain-string
// fallback for the three original actions.
const (
	keyPrefix       = "shortcut_"
	keySuffixV2     = "_v2"
	defaultPollRate = 2 * time.Second
)

// KV is the slice of the persistence adapter the registry needs.
type KV interface {
	GetJSON(key string, out any) (bool, error)
	SetJSON(key string, value any) error
	GetString(key string) (string, bool, error)
}

// Handlers receives dispatched actions. Handlers must not call back into
// the registry.
type Handlers struct {
	OnStartPause func()
	OnReset      func()
	OnSkip       func()
	OnQuickAdd   func()
}

// CapabilityProbe observes whether the OS grant for system-wide key
// observation is currently held. The registry can only observe and request
// the grant, never give it to itself.
type CapabilityProbe interface {
	IsGranted() bool
	Request()
}

// GlobalSource delivers key-down events from the system-wide scope while
// started. Start returns ErrGlobalCaptureUnsupported where no such scope
// exists.
type GlobalSource interface {
	Start(handler func(KeyEvent)) error
	Stop()
}

// Registry owns the action bindings, resolves raw key events against them
// and manages the system-wide listening scope.
type Registry struct {
	mu              sync.Mutex
	kv              KV
	handlers        Handlers
	bindings        map[Action]Binding
	capturing       bool
	captureSlot     Action
	listeners       []func()
	probe           CapabilityProbe
	source          GlobalSource
	granted         bool
	globalActive    bool
	needsPermission bool
	watching        bool
	stopCh          chan struct{}
}

// NewRegistry loads every binding (v2 format, then legacy string, then the
// built-in default) and wires the action handlers.
func NewRegistry(kv KV, handlers Handlers) *Registry {
	registry := &Registry{
		kv:       kv,
		handlers: handlers,
		bindings: make(map[Action]Binding),
		stopCh:   make(chan struct{}),
	}
	for _, action := range dispatchOrder {
		registry.bindings[action] = registry.load(action)
	}
	return registry
}

// Binding returns the current binding for an action.
func (registry *Registry) Binding(action Action) Binding {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return registry.bindings[action]
}

// SetBinding replaces an action's binding and persists it immediately.
func (registry *Registry) SetBinding(action Action, binding Binding) {
	registry.mu.Lock()
	registry.bindings[action] = binding
	registry.saveLocked(action, binding)
	registry.mu.Unlock()

	registry.notify()
}

// OnChange registers a listener invoked after binding or capability
// changes. Listeners must not call back into the registry.
func (registry *Registry) OnChange(listener func()) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	registry.listeners = append(registry.listeners, listener)
}

// BeginCapture suppresses dispatch and records the next key event as the
// new binding for the given slot.
func (registry *Registry) BeginCapture(action Action) {
	registry.mu.Lock()
	registry.capturing = true
	registry.captureSlot = action
	registry.mu.Unlock()
}

// CancelCapture exits capture mode without changing any binding.
func (registry *Registry) CancelCapture() {
	registry.mu.Lock()
	registry.capturing = false
	registry.mu.Unlock()
}

// Capturing reports whether capture mode is active, and for which slot.
func (registry *Registry) Capturing() (Action, bool) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return registry.captureSlot, registry.capturing
}

// Dispatch resolves a key event. In capture mode the event becomes the new
// binding for the capture slot; otherwise actions are checked in fixed
// priority order and at most one handler fires. The return value reports
// whether the event was consumed.
func (registry *Registry) Dispatch(event KeyEvent) bool {
	registry.mu.Lock()
	if registry.capturing {
		slot := registry.captureSlot
		binding := bindingFromEvent(event)
		registry.bindings[slot] = binding
		registry.saveLocked(slot, binding)
		registry.capturing = false
		registry.mu.Unlock()

		registry.notify()
		return true
	}

	var handler func()
	for _, action := range dispatchOrder {
		if !registry.bindings[action].Matches(event) {
			continue
		}
		handler = registry.handlerLocked(action)
		break
	}
	registry.mu.Unlock()

	if handler == nil {
		return false
	}
	handler()
	return true
}

// WatchCapability starts polling the capability probe and keeps the
// system-wide listener in sync with the grant. A non-positive interval
// polls every 2 seconds.
func (registry *Registry) WatchCapability(probe CapabilityProbe, source GlobalSource, interval time.Duration) {
	if interval <= 0 {
		interval = defaultPollRate
	}

	registry.mu.Lock()
	if registry.watching || probe == nil {
		registry.mu.Unlock()
		return
	}
	registry.watching = true
	registry.probe = probe
	registry.source = source
	registry.mu.Unlock()

	registry.syncCapability(true)

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-registry.stopCh:
				return
			case <-ticker.C:
				registry.syncCapability(false)
			}
		}
	}()
}

// NeedsPermission reports whether the system-wide scope is degraded for
// lack of the OS grant.
func (registry *Registry) NeedsPermission() bool {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return registry.needsPermission
}

// RequestPermission asks the OS for the grant prompt. Fire and forget.
func (registry *Registry) RequestPermission() {
	registry.mu.Lock()
	probe := registry.probe
	registry.mu.Unlock()
	if probe != nil {
		probe.Request()
	}
}

// Close stops the capability watcher and tears down the global listener.
// Idempotent.
func (registry *Registry) Close() {
	registry.mu.Lock()
	if !registry.watching {
		registry.mu.Unlock()
		return
	}
	registry.watching = false
	close(registry.stopCh)
	source := registry.source
	active := registry.globalActive
	registry.globalActive = false
	registry.mu.Unlock()

	if active && source != nil {
		source.Stop()
	}
}

// syncCapability re-reads the grant and establishes or tears down the
// system-wide listener when it changed.
func (registry *Registry) syncCapability(force bool) {
	registry.mu.Lock()
	probe := registry.probe
	source := registry.source
	wasGranted := registry.granted
	registry.mu.Unlock()
	if probe == nil {
		return
	}

	granted := probe.IsGranted()
	if !force && granted == wasGranted {
		return
	}

	active := false
	if source != nil {
		// Always drop the old listener before the state change takes
		// effect.
		source.Stop()
		if granted {
			if err := source.Start(registry.dispatchGlobal); err == nil {
				active = true
			}
		}
	}

	registry.mu.Lock()
	registry.granted = granted
	registry.globalActive = active
	registry.needsPermission = !granted
	registry.mu.Unlock()

	registry.notify()
}

// dispatchGlobal adapts Dispatch to the GlobalSource handler signature.
func (registry *Registry) dispatchGlobal(event KeyEvent) {
	registry.Dispatch(event)
}

func (registry *Registry) handlerLocked(action Action) func() {
	switch action {
	case ActionReset:
		return registry.handlers.OnReset
	case ActionSkip:
		return registry.handlers.OnSkip
	case ActionStartPause:
		return registry.handlers.OnStartPause
	case ActionQuickAdd:
		return registry.handlers.OnQuickAdd
	default:
		return nil
	}
}

// load resolves one action's binding: prefer the v2 JSON entry, then a
// legacy plain-string key (key character only, default modifiers), then
// the built-in default.
func (registry *Registry) load(action Action) Binding {
	fallback := DefaultBinding(action)
	if registry.kv == nil {
		return fallback
	}

	var stored Binding
	if ok, err := registry.kv.GetJSON(storageKey(action), &stored); err == nil && ok {
		return stored
	}

	if legacy, ok := legacyKey(action); ok {
		if value, found, err := registry.kv.GetString(legacy); err == nil && found && value != "" {
			// Legacy entries stored only the key character; the rest of
			// the binding comes from the action's default.
			migrated := fallback
			migrated.Key = value
			return migrated
		}
	}

	return fallback
}

func (registry *Registry) saveLocked(action Action, binding Binding) {
	if registry.kv == nil {
		return
	}
	_ = registry.kv.SetJSON(storageKey(action), binding)
}

func (registry *Registry) notify() {
	registry.mu.Lock()
	listeners := make([]func(), len(registry.listeners))
	copy(listeners, registry.listeners)
	registry.mu.Unlock()
	for _, listener := range listeners {
		listener()
	}
}

func bindingFromEvent(event KeyEvent) Binding {
	code := event.KeyCode
	return Binding{
		Key:      strings.ToLower(event.Key),
		KeyCode:  &code,
		Command:  event.Command,
		Option:   event.Option,
		Control:  event.Control,
		Shift:    event.Shift,
		Function: event.Function,
	}
}

func storageKey(action Action) string {
	return keyPrefix + string(action) + keySuffixV2
}

// legacyKey returns the pre-v2 storage key for actions that had one.
func legacyKey(action Action) (string, bool) {
	switch action {
	case ActionStartPause, ActionReset, ActionSkip:
		return keyPrefix + string(action), true
	default:
		return "", false
	}
}
