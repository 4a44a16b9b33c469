package input

import (
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/keymap"
)

// State is what hooks see of the session around a keystroke.
type State struct {
	SessionID uuid.UUID

	// Mode is the name of the active mode.
	Mode string

	// Pending holds the tokens buffered towards the next command.
	Pending []string

	// Recording is the macro register being recorded, 0 when idle.
	Recording rune
}

// KeyResult describes how a keystroke was handled.
type KeyResult struct {
	Token string
	Kind  keymap.MatchKind

	// Consumed is set when a PreKey hook swallowed the keystroke.
	Consumed bool

	// Err is the error returned by the matched command, if any.
	Err error
}

// Hook allows interception of keystrokes.
type Hook interface {
	// PreKey is called before a keystroke reaches the active mode. The
	// event may be rewritten in place. Return true to consume it.
	PreKey(ev *key.Event, st State) bool

	// PostKey is called after a keystroke was handled. st reflects the
	// session after any command ran.
	PostKey(ev key.Event, res KeyResult, st State)
}

// HookPriority defines the execution order for hooks.
// Lower values execute first.
type HookPriority int

const (
	// HookPriorityHighest runs before all other hooks.
	HookPriorityHighest HookPriority = -1000
	// HookPriorityHigh runs early in the hook chain.
	HookPriorityHigh HookPriority = -100
	// HookPriorityNormal is the default priority.
	HookPriorityNormal HookPriority = 0
	// HookPriorityLow runs late in the hook chain.
	HookPriorityLow HookPriority = 100
	// HookPriorityLowest runs after all other hooks.
	HookPriorityLowest HookPriority = 1000
)

// HookID uniquely identifies a registered hook.
type HookID uint64

// HookRegistration holds metadata about a registered hook.
type HookRegistration struct {
	ID       HookID
	Name     string
	Priority HookPriority
	Hook     Hook
}

// HookManager runs hooks in priority order. Hooks of equal priority run in
// registration order.
type HookManager struct {
	mu      sync.RWMutex
	hooks   []HookRegistration
	nextID  HookID
	sorted  bool
	enabled bool
}

// NewHookManager creates a new hook manager.
func NewHookManager() *HookManager {
	return &HookManager{
		sorted:  true,
		enabled: true,
	}
}

// Register adds a hook with default priority.
func (m *HookManager) Register(hook Hook) HookID {
	return m.RegisterWithOptions(hook, "", HookPriorityNormal)
}

// RegisterWithOptions adds a hook with a name for later reference and a
// priority.
func (m *HookManager) RegisterWithOptions(hook Hook, name string, priority HookPriority) HookID {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextID++
	m.hooks = append(m.hooks, HookRegistration{
		ID:       m.nextID,
		Name:     name,
		Priority: priority,
		Hook:     hook,
	})
	m.sorted = false
	return m.nextID
}

// Unregister removes a hook by ID.
func (m *HookManager) Unregister(id HookID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i := range m.hooks {
		if m.hooks[i].ID == id {
			m.hooks = append(m.hooks[:i], m.hooks[i+1:]...)
			return true
		}
	}
	return false
}

// UnregisterByName removes every hook registered under name.
func (m *HookManager) UnregisterByName(name string) bool {
	if name == "" {
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.hooks[:0]
	for _, reg := range m.hooks {
		if reg.Name != name {
			kept = append(kept, reg)
		}
	}
	removed := len(kept) != len(m.hooks)
	clear(m.hooks[len(kept):])
	m.hooks = kept
	return removed
}

// SetEnabled enables or disables all hooks.
func (m *HookManager) SetEnabled(enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.enabled = enabled
}

// IsEnabled returns whether hooks are enabled.
func (m *HookManager) IsEnabled() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.enabled
}

// Count returns the number of registered hooks.
func (m *HookManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.hooks)
}

// List returns all hook registrations in execution order.
func (m *HookManager) List() []HookRegistration {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ensureSorted()
	result := make([]HookRegistration, len(m.hooks))
	copy(result, m.hooks)
	return result
}

// ensureSorted sorts hooks by priority if needed (must hold lock).
func (m *HookManager) ensureSorted() {
	if m.sorted {
		return
	}
	sort.SliceStable(m.hooks, func(i, j int) bool {
		return m.hooks[i].Priority < m.hooks[j].Priority
	})
	m.sorted = true
}

// snapshot returns the hooks to run, in order, or nil when disabled.
// Hooks run outside the lock so they may register or remove hooks.
func (m *HookManager) snapshot() []Hook {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.enabled || len(m.hooks) == 0 {
		return nil
	}
	m.ensureSorted()
	hooks := make([]Hook, len(m.hooks))
	for i := range m.hooks {
		hooks[i] = m.hooks[i].Hook
	}
	return hooks
}

// RunPreKey runs PreKey hooks in priority order until one consumes the
// event. Returns true if the event was consumed.
func (m *HookManager) RunPreKey(ev *key.Event, st State) bool {
	for _, hook := range m.snapshot() {
		if hook.PreKey(ev, st) {
			return true
		}
	}
	return false
}

// RunPostKey runs all PostKey hooks in priority order.
func (m *HookManager) RunPostKey(ev key.Event, res KeyResult, st State) {
	for _, hook := range m.snapshot() {
		hook.PostKey(ev, res, st)
	}
}

// Clear removes all hooks.
func (m *HookManager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = nil
	m.sorted = true
}

// BaseHook provides a default implementation of the Hook interface.
// Embed this in custom hooks to only implement the methods you need.
type BaseHook struct{}

// PreKey is a no-op that does not consume events.
func (BaseHook) PreKey(*key.Event, State) bool { return false }

// PostKey is a no-op.
func (BaseHook) PostKey(key.Event, KeyResult, State) {}

// FuncHook wraps functions into a Hook.
type FuncHook struct {
	PreKeyFunc  func(*key.Event, State) bool
	PostKeyFunc func(key.Event, KeyResult, State)
}

// PreKey calls PreKeyFunc if set.
func (h FuncHook) PreKey(ev *key.Event, st State) bool {
	if h.PreKeyFunc != nil {
		return h.PreKeyFunc(ev, st)
	}
	return false
}

// PostKey calls PostKeyFunc if set.
func (h FuncHook) PostKey(ev key.Event, res KeyResult, st State) {
	if h.PostKeyFunc != nil {
		h.PostKeyFunc(ev, res, st)
	}
}

// LoggingHook logs every keystroke and its outcome at trace level.
type LoggingHook struct {
	BaseHook
	Logger logrus.FieldLogger
}

// PostKey logs the handled keystroke.
func (h LoggingHook) PostKey(ev key.Event, res KeyResult, st State) {
	if h.Logger == nil {
		return
	}
	entry := h.Logger.WithFields(logrus.Fields{
		"token":    res.Token,
		"result":   res.Kind.String(),
		"consumed": res.Consumed,
		"mode":     st.Mode,
		"pending":  key.Join(st.Pending),
	})
	if res.Err != nil {
		entry = entry.WithError(res.Err)
	}
	entry.Trace("key handled")
}

// FilterHook consumes the events its predicate selects.
type FilterHook struct {
	BaseHook

	// Filter returns true to block an event.
	Filter func(*key.Event, State) bool
}

// PreKey applies the filter.
func (h FilterHook) PreKey(ev *key.Event, st State) bool {
	if h.Filter != nil {
		return h.Filter(ev, st)
	}
	return false
}
