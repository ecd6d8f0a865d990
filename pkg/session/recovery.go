package session

import (
	"maps"
	"slices"
	"time"

	"go.uber.org/zap"

	"ironlung/internal/statefile"
)

// snapshotFile is the on-disk layout of session_state.json.
type snapshotFile struct {
	SessionID       string           `json:"session_id,omitempty"`
	Active          bool             `json:"active"`
	SessionStart    *time.Time       `json:"session_start"`
	ElapsedMinutes  int              `json:"elapsed_minutes"`
	WarningsFired   []int            `json:"warnings_fired"`
	ThresholdsFired []int            `json:"thresholds_fired"`
	UndoStack       []UndoableAction `json:"undo_stack"`
}

// StatePath returns the recovery file location, or "" when persistence is
// disabled.
func (m *Manager) StatePath() string {
	return m.path
}

// SaveSessionState writes the recovery snapshot. It is a no-op when no data
// directory is configured.
func (m *Manager) SaveSessionState() error {
	if m.path == "" {
		return nil
	}
	s := snapshotFile{
		SessionID:       m.id,
		Active:          m.active,
		ElapsedMinutes:  m.ElapsedMinutes(),
		WarningsFired:   sortedKeys(m.warningsFired),
		ThresholdsFired: sortedKeys(m.thresholdsFired),
		UndoStack:       m.undo.items(),
	}
	if !m.start.IsZero() {
		start := m.start
		s.SessionStart = &start
	}
	return statefile.Write(m.path, s)
}

// LoadSessionState restores an active session from the recovery file. It
// returns false, leaving the manager untouched, when the file is missing,
// unreadable or describes an ended session.
func (m *Manager) LoadSessionState() bool {
	if m.path == "" {
		return false
	}
	var s snapshotFile
	found, err := statefile.Read(m.path, &s)
	if err != nil {
		m.logger.Warn("failed to load session state", zap.Error(err))
		return false
	}
	if !found || !s.Active || s.SessionStart == nil {
		return false
	}

	m.id = s.SessionID
	m.start = *s.SessionStart
	m.active = true
	m.warningsFired = toSet(s.WarningsFired)
	m.thresholdsFired = toSet(s.ThresholdsFired)
	m.undo.reset()
	for _, a := range s.UndoStack {
		m.undo.push(a)
	}

	m.logger.Info("session recovered",
		zap.String("session_id", m.id),
		zap.Time("start", m.start),
		zap.Int("undo_depth", m.undo.size()),
	)
	return true
}

// Refresh reconciles the manager with a recovery file written by another
// process. An active snapshot is adopted. A missing or ended snapshot ends
// the in-memory session without writing, so a session ended elsewhere is not
// resurrected by the next save. An unreadable file leaves the manager as is.
// It reports whether a session is active afterwards.
func (m *Manager) Refresh() bool {
	if m.path == "" {
		return m.active
	}
	var s snapshotFile
	found, err := statefile.Read(m.path, &s)
	if err != nil {
		m.logger.Warn("failed to refresh session state", zap.Error(err))
		return m.active
	}
	if found && s.Active && s.SessionStart != nil {
		return m.LoadSessionState()
	}
	if m.active {
		m.active = false
		m.undo.reset()
		m.logger.Info("session ended by another process", zap.String("session_id", m.id))
	}
	return false
}

// ClearRecoveryState deletes the recovery file if present.
func (m *Manager) ClearRecoveryState() error {
	if m.path == "" {
		return nil
	}
	return statefile.Remove(m.path)
}

func sortedKeys(set map[int]struct{}) []int {
	return slices.Sorted(maps.Keys(set))
}

func toSet(marks []int) map[int]struct{} {
	set := make(map[int]struct{}, len(marks))
	for _, v := range marks {
		set[v] = struct{}{}
	}
	return set
}
