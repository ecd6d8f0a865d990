// Package session tracks the working session: start and elapsed time,
// time-blindness warnings, time-of-day energy, a bounded undo stack and a
// crash-recovery snapshot.
package session

import (
	"path/filepath"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ironlung/pkg/protocol"
)

// DefaultWarningIntervals are the elapsed-minute marks that trigger a
// time-blindness warning when none are configured.
var DefaultWarningIntervals = []int{60, 90, 120}

// Options configures a Manager.
type Options struct {
	// DataDir holds session_state.json. Empty disables recovery persistence.
	DataDir string
	// WarningIntervals in minutes; nil uses DefaultWarningIntervals.
	WarningIntervals []int
	// UndoCapacity defaults to UndoStackSize.
	UndoCapacity int
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Manager owns session state. Not safe for concurrent use.
type Manager struct {
	id        string
	active    bool
	start     time.Time
	intervals []int

	// warningsFired tracks CheckTimeWarnings; thresholdsFired tracks
	// WarnTimeElapsed. The two never share marks.
	warningsFired   map[int]struct{}
	thresholdsFired map[int]struct{}

	undo *undoRing

	path   string
	logger *zap.Logger
	now    func() time.Time
}

// New creates an inactive Manager. Call LoadSessionState to recover a
// previous session.
func New(opts Options) *Manager {
	intervals := opts.WarningIntervals
	if intervals == nil {
		intervals = DefaultWarningIntervals
	}
	intervals = slices.Clone(intervals)
	slices.Sort(intervals)
	intervals = slices.Compact(intervals)

	capacity := opts.UndoCapacity
	if capacity <= 0 {
		capacity = UndoStackSize
	}

	m := &Manager{
		intervals:       intervals,
		warningsFired:   make(map[int]struct{}),
		thresholdsFired: make(map[int]struct{}),
		undo:            newUndoRing(capacity),
		logger:          opts.Logger,
		now:             opts.Now,
	}
	if m.logger == nil {
		m.logger = zap.NewNop()
	}
	if m.now == nil {
		m.now = time.Now
	}
	if opts.DataDir != "" {
		m.path = filepath.Join(opts.DataDir, protocol.SessionStateFile)
	}
	return m
}

// StartSession begins a new session, clearing warnings and undo history, and
// writes a recovery snapshot.
func (m *Manager) StartSession() {
	m.id = uuid.NewString()
	m.start = m.now()
	m.active = true
	clear(m.warningsFired)
	clear(m.thresholdsFired)
	m.undo.reset()

	m.logger.Info("session started",
		zap.String("session_id", m.id),
		zap.Time("start", m.start),
	)
	m.persist()
}

// EndSession deactivates the session and records it as inactive so it is
// not offered for recovery. Ending an inactive session is a no-op.
func (m *Manager) EndSession() {
	if !m.active {
		return
	}
	elapsed := m.ElapsedMinutes()
	m.active = false
	m.logger.Info("session ended",
		zap.String("session_id", m.id),
		zap.Int("elapsed_minutes", elapsed),
	)
	m.persist()
}

// IsActive reports whether a session is running.
func (m *Manager) IsActive() bool { return m.active }

// ID returns the current or most recent session identifier.
func (m *Manager) ID() string { return m.id }

// SessionStart returns the start of the current or most recent session and
// false if no session has been started.
func (m *Manager) SessionStart() (time.Time, bool) {
	return m.start, !m.start.IsZero()
}

// ElapsedMinutes returns whole minutes since the session started, or 0 when
// no session is active.
func (m *Manager) ElapsedMinutes() int {
	if !m.active {
		return 0
	}
	d := m.now().Sub(m.start)
	if d < 0 {
		return 0
	}
	return int(d / time.Minute)
}

// WarningIntervals returns the configured thresholds in ascending order.
func (m *Manager) WarningIntervals() []int {
	return slices.Clone(m.intervals)
}

// CheckTimeWarnings returns the largest configured threshold that has been
// crossed and not yet reported. Every crossed threshold up to it is marked
// reported, so a long gap between checks yields one warning, not a burst.
func (m *Manager) CheckTimeWarnings() (threshold int, ok bool) {
	if !m.active {
		return 0, false
	}
	elapsed := m.ElapsedMinutes()
	for _, th := range m.intervals {
		if th > elapsed {
			break
		}
		if _, fired := m.warningsFired[th]; fired {
			continue
		}
		m.warningsFired[th] = struct{}{}
		threshold, ok = th, true
	}
	if ok {
		m.logger.Info("time warning fired",
			zap.Int("threshold", threshold),
			zap.Int("elapsed", elapsed),
		)
	}
	return threshold, ok
}

// WarnTimeElapsed reports true exactly once per session when the elapsed
// time first reaches minutes.
func (m *Manager) WarnTimeElapsed(minutes int) bool {
	if !m.active || m.ElapsedMinutes() < minutes {
		return false
	}
	if _, fired := m.thresholdsFired[minutes]; fired {
		return false
	}
	m.thresholdsFired[minutes] = struct{}{}
	return true
}

// EnergyLevel classifies the current clock hour.
func (m *Manager) EnergyLevel() EnergyLevel {
	return EnergyAt(m.now())
}

// IsLowEnergy reports whether the current energy level is low.
func (m *Manager) IsLowEnergy() bool {
	return m.EnergyLevel() == EnergyLow
}

// PushUndo stores a timestamped copy of a. When the stack is full the oldest
// entry is dropped. An empty ID is filled with a new UUID.
func (m *Manager) PushUndo(a UndoableAction) UndoableAction {
	a = a.clone()
	a.Timestamp = m.now()
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	m.undo.push(a)
	m.logger.Debug("action pushed to undo stack",
		zap.String("action", a.ActionType),
		zap.Int64("prospect_id", a.ProspectID),
		zap.Int("depth", m.undo.size()),
	)
	return a
}

// PopUndo removes and returns the most recent action.
func (m *Manager) PopUndo() (UndoableAction, bool) {
	a, ok := m.undo.pop()
	if ok {
		m.logger.Debug("action popped from undo stack",
			zap.String("action", a.ActionType),
			zap.Int64("prospect_id", a.ProspectID),
		)
	}
	return a, ok
}

// PeekUndo returns the most recent action without removing it.
func (m *Manager) PeekUndo() (UndoableAction, bool) {
	return m.undo.peek()
}

// UndoDepth returns the number of undoable actions.
func (m *Manager) UndoDepth() int {
	return m.undo.size()
}

// UndoHistory returns the undo stack oldest first.
func (m *Manager) UndoHistory() []UndoableAction {
	return m.undo.items()
}

func (m *Manager) persist() {
	if err := m.SaveSessionState(); err != nil {
		m.logger.Warn("failed to save session state", zap.Error(err))
	}
}
