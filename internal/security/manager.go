package security

import (
	"sync"
	"time"
)

// Status of the alarm system.
type Status string

const (
	StatusDisarmed Status = "disarmed"
	StatusArmed    Status = "armed"
)

// DefaultMode is used when an arm request names no mode.
const DefaultMode = "standard"

// Manager tracks the arm state of the home. The detection pipeline itself
// runs as an external collaborator; the dashboard only needs the state
// machine and the instant of the last change.
type Manager struct {
	mu     sync.RWMutex
	status Status
	mode   string
	since  time.Time
	clock  func() time.Time
}

func NewManager(defaultMode string) *Manager {
	if defaultMode == "" {
		defaultMode = DefaultMode
	}
	return &Manager{
		status: StatusDisarmed,
		mode:   defaultMode,
		clock:  time.Now,
	}
}

// Arm activates the given mode. Re-arming with the current mode is a no-op
// and returns false; a different mode re-arms in place.
func (m *Manager) Arm(mode string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if mode == "" {
		mode = DefaultMode
	}
	if m.status == StatusArmed && m.mode == mode {
		return false
	}

	m.status = StatusArmed
	m.mode = mode
	m.since = m.clock()
	return true
}

// Disarm deactivates the system. Returns false when already disarmed.
func (m *Manager) Disarm() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.status == StatusDisarmed {
		return false
	}

	m.status = StatusDisarmed
	m.since = m.clock()
	return true
}

// State returns the current status, mode, and the instant of the last change.
func (m *Manager) State() (Status, string, time.Time) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status, m.mode, m.since
}

// IsArmed reports whether the system is currently armed.
func (m *Manager) IsArmed() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status == StatusArmed
}
