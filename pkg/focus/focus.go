// Package focus tracks distraction-free focus mode. The UI reacts through
// enter/exit observers; this package only owns the logical state.
package focus

import "go.uber.org/zap"

// Manager owns the focus-mode flag. Not safe for concurrent use.
type Manager struct {
	active      bool
	autoTrigger int // streak that auto-enters focus; 0 disables

	enterObservers []func()
	exitObservers  []func()

	logger *zap.Logger
}

// New creates an inactive Manager. autoTriggerStreak <= 0 disables automatic
// entry. A nil logger disables logging.
func New(autoTriggerStreak int, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{autoTrigger: max(autoTriggerStreak, 0), logger: logger}
}

// Enter activates focus mode. It returns false if already active.
func (m *Manager) Enter() bool {
	if m.active {
		return false
	}
	m.active = true
	m.logger.Info("focus mode entered")
	for _, fn := range m.enterObservers {
		fn()
	}
	return true
}

// Exit leaves focus mode. It returns false if not active.
func (m *Manager) Exit() bool {
	if !m.active {
		return false
	}
	m.active = false
	m.logger.Info("focus mode exited")
	for _, fn := range m.exitObservers {
		fn()
	}
	return true
}

// Toggle flips focus mode and returns the new state.
func (m *Manager) Toggle() bool {
	if m.active {
		m.Exit()
	} else {
		m.Enter()
	}
	return m.active
}

// Active reports whether focus mode is on.
func (m *Manager) Active() bool { return m.active }

// AutoTriggerStreak returns the configured trigger, 0 when disabled.
func (m *Manager) AutoTriggerStreak() int { return m.autoTrigger }

// CheckAutoTrigger enters focus mode when streak equals the configured
// trigger. It returns true only if this call entered focus mode.
func (m *Manager) CheckAutoTrigger(streak int) bool {
	if m.autoTrigger == 0 || m.active || streak != m.autoTrigger {
		return false
	}
	m.Enter()
	m.logger.Info("focus mode auto-triggered by streak", zap.Int("streak", streak))
	return true
}

// OnEnter registers an observer run after entering focus mode.
func (m *Manager) OnEnter(fn func()) {
	m.enterObservers = append(m.enterObservers, fn)
}

// OnExit registers an observer run after leaving focus mode.
func (m *Manager) OnExit(fn func()) {
	m.exitObservers = append(m.exitObservers, fn)
}
