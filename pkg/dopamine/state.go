package dopamine

import (
	"time"

	"go.uber.org/zap"

	"ironlung/internal/statefile"
)

// snapshotFile is the on-disk layout of dopamine_state.json.
type snapshotFile struct {
	Streak       int                            `json:"streak"`
	TotalWins    int                            `json:"total_wins"`
	SessionWins  map[string]int                 `json:"session_wins,omitempty"`
	Achievements map[string]achievementSnapshot `json:"achievements"`
}

type achievementSnapshot struct {
	Earned   bool       `json:"earned"`
	EarnedAt *time.Time `json:"earned_at"`
}

func (e *Engine) snapshot() snapshotFile {
	s := snapshotFile{
		Streak:       e.streak,
		TotalWins:    e.totalWins,
		SessionWins:  make(map[string]int, len(e.sessionWins)),
		Achievements: make(map[string]achievementSnapshot, len(e.achievements)),
	}
	for t, n := range e.sessionWins {
		s.SessionWins[string(t)] = n
	}
	for _, a := range e.achievements {
		as := achievementSnapshot{Earned: a.Earned}
		if a.Earned {
			at := a.EarnedAt
			as.EarnedAt = &at
		}
		s.Achievements[a.Name] = as
	}
	return s
}

// load restores state from disk. Missing files are silent; corrupt files are
// logged and leave the engine fresh.
func (e *Engine) load() {
	if e.path == "" {
		return
	}
	var s snapshotFile
	found, err := statefile.Read(e.path, &s)
	if err != nil {
		e.logger.Warn("failed to load dopamine state, starting fresh", zap.Error(err))
		return
	}
	if !found {
		return
	}

	e.streak = max(s.Streak, 0)
	e.totalWins = max(s.TotalWins, e.streak)
	for name, n := range s.SessionWins {
		if t := WinType(name); t.Valid() {
			e.sessionWins[t] = max(n, 0)
		}
	}
	for name, as := range s.Achievements {
		i := e.achievementIndex(name)
		if i < 0 {
			continue
		}
		e.achievements[i].Earned = as.Earned
		if as.Earned && as.EarnedAt != nil {
			e.achievements[i].EarnedAt = *as.EarnedAt
		}
	}
}
