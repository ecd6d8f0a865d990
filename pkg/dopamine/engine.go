// Package dopamine tracks micro-wins, streaks and achievements.
//
// Every productive action is a win. Consecutive wins build a streak that
// celebrates at fixed milestones; a skip breaks it. Achievements are one-time
// unlocks from a fixed catalog. State survives restarts via a JSON snapshot
// in the data directory.
package dopamine

import (
	"path/filepath"
	"slices"
	"time"

	"go.uber.org/zap"

	"ironlung/internal/statefile"
	"ironlung/pkg/protocol"
)

// CelebrationStreak is the kind passed to celebration observers for streak
// milestones.
const CelebrationStreak = "streak"

// Options configures an Engine.
type Options struct {
	// DataDir holds dopamine_state.json. Empty keeps state in memory only.
	DataDir string
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Engine records wins and owns streak, total and achievement state.
// Not safe for concurrent use.
type Engine struct {
	streak       int
	totalWins    int
	sessionWins  map[WinType]int
	achievements []Achievement

	celebrationObservers []func(kind string, value int)
	achievementObservers []func(Achievement)

	path   string
	logger *zap.Logger
	now    func() time.Time
}

// New creates an engine and restores any persisted state from opts.DataDir.
// A missing or corrupt snapshot yields a fresh engine.
func New(opts Options) *Engine {
	e := &Engine{
		sessionWins:  freshSessionWins(),
		achievements: Catalog(),
		logger:       opts.Logger,
		now:          opts.Now,
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	if e.now == nil {
		e.now = time.Now
	}
	if opts.DataDir != "" {
		e.path = filepath.Join(opts.DataDir, protocol.DopamineStateFile)
	}
	e.load()
	return e
}

// StatePath returns the snapshot location, or "" for an in-memory engine.
func (e *Engine) StatePath() string {
	return e.path
}

// RecordWin counts a win of type t. It returns the streak value and true when
// the new streak lands exactly on a milestone, after notifying celebration
// observers. Unknown types are logged and ignored.
func (e *Engine) RecordWin(t WinType) (milestone int, ok bool) {
	if !t.Valid() {
		e.logger.Warn("ignoring unknown win type", zap.String("win_type", string(t)))
		return 0, false
	}

	e.streak++
	e.totalWins++
	e.sessionWins[t]++

	e.logger.Debug("micro-win recorded",
		zap.String("win_type", string(t)),
		zap.Int("streak", e.streak),
		zap.Int("total", e.totalWins),
	)

	if slices.Contains(streakMilestones, e.streak) {
		milestone, ok = e.streak, true
		for _, fn := range e.celebrationObservers {
			fn(CelebrationStreak, milestone)
		}
	}

	e.persist()
	return milestone, ok
}

// BreakStreak resets the streak to zero. Totals and session counts are kept.
// It is a no-op when the streak is already zero.
func (e *Engine) BreakStreak() {
	if e.streak == 0 {
		return
	}
	e.logger.Debug("streak broken", zap.Int("was", e.streak))
	e.streak = 0
	e.persist()
}

// Streak returns the current streak.
func (e *Engine) Streak() int { return e.streak }

// TotalWins returns the number of wins ever recorded.
func (e *Engine) TotalWins() int { return e.totalWins }

// SessionWins returns a copy of the per-type counts for the current session.
// Every win type is present.
func (e *Engine) SessionWins() map[WinType]int {
	out := make(map[WinType]int, len(e.sessionWins))
	for k, v := range e.sessionWins {
		out[k] = v
	}
	return out
}

// ResetSession zeroes the per-type session counts. Streak, total and
// achievements are kept.
func (e *Engine) ResetSession() {
	e.sessionWins = freshSessionWins()
	e.persist()
}

// CheckAchievement unlocks the named achievement. It returns true only when
// the achievement was newly earned by this call.
func (e *Engine) CheckAchievement(name string) bool {
	i := e.achievementIndex(name)
	if i < 0 {
		e.logger.Warn("unknown achievement", zap.String("name", name))
		return false
	}
	ach := &e.achievements[i]
	if ach.Earned {
		return false
	}

	ach.Earned = true
	ach.EarnedAt = e.now()
	e.logger.Info("achievement earned",
		zap.String("name", ach.Name),
		zap.String("description", ach.Description),
	)

	unlocked := *ach
	for _, fn := range e.achievementObservers {
		fn(unlocked)
	}

	e.persist()
	return true
}

// Achievements returns every achievement in catalog order.
func (e *Engine) Achievements() []Achievement {
	return slices.Clone(e.achievements)
}

// EarnedAchievements returns the earned subset in catalog order.
func (e *Engine) EarnedAchievements() []Achievement {
	var out []Achievement
	for _, a := range e.achievements {
		if a.Earned {
			out = append(out, a)
		}
	}
	return out
}

// OnCelebration registers an observer for milestone celebrations. Observers
// run synchronously in registration order.
func (e *Engine) OnCelebration(fn func(kind string, value int)) {
	e.celebrationObservers = append(e.celebrationObservers, fn)
}

// OnAchievement registers an observer for achievement unlocks. Observers run
// synchronously in registration order.
func (e *Engine) OnAchievement(fn func(Achievement)) {
	e.achievementObservers = append(e.achievementObservers, fn)
}

// Save writes the snapshot now. It is a no-op for in-memory engines.
func (e *Engine) Save() error {
	if e.path == "" {
		return nil
	}
	return statefile.Write(e.path, e.snapshot())
}

// Reload discards in-memory state and re-reads the snapshot. Observers are
// kept. Used when another process has written the file.
func (e *Engine) Reload() {
	e.streak = 0
	e.totalWins = 0
	e.sessionWins = freshSessionWins()
	e.achievements = Catalog()
	e.load()
}

func (e *Engine) achievementIndex(name string) int {
	return slices.IndexFunc(e.achievements, func(a Achievement) bool { return a.Name == name })
}

// persist saves after a mutation; failures are logged, never returned.
func (e *Engine) persist() {
	if err := e.Save(); err != nil {
		e.logger.Warn("failed to save dopamine state", zap.Error(err))
	}
}

func freshSessionWins() map[WinType]int {
	m := make(map[WinType]int, len(AllWinTypes()))
	for _, t := range AllWinTypes() {
		m[t] = 0
	}
	return m
}
