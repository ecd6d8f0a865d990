// Package assistant composes the engines into the operator-facing workflow:
// recording wins and skips, session control, undo, focus, audio cues and the
// default command palette. Both binaries drive it.
package assistant

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ironlung/pkg/activity"
	"ironlung/pkg/audio"
	"ironlung/pkg/compassion"
	"ironlung/pkg/config"
	"ironlung/pkg/dashboard"
	"ironlung/pkg/dopamine"
	"ironlung/pkg/focus"
	"ironlung/pkg/palette"
	"ironlung/pkg/protocol"
	"ironlung/pkg/session"
)

// ActivityStore persists activity rows and answers dashboard counts.
// *activity.Store satisfies it.
type ActivityStore interface {
	Log(ctx context.Context, a activity.Activity) (int64, error)
	dashboard.Counter
}

// Options configures an Assistant.
type Options struct {
	// DataDir holds the dopamine and session snapshots. Empty keeps all state
	// in memory.
	DataDir string
	// Config supplies engine tuning. The zero value is replaced by
	// config.Default().
	Config *config.Config
	// Store receives activity rows. Nil disables activity logging.
	Store ActivityStore
	// Shortcuts are user palette entries from palette.yaml.
	Shortcuts []config.Shortcut
	// Player is the audio backend. Nil logs sounds instead.
	Player audio.Player
	// Runner executes shortcut commands. Nil uses os/exec.
	Runner Runner
	// Logger defaults to a no-op logger.
	Logger *zap.Logger
	// Now defaults to time.Now.
	Now func() time.Time
}

// Assistant owns one instance of every engine. Not safe for concurrent use;
// drive it from a single goroutine.
type Assistant struct {
	Palette    *palette.Palette
	Dopamine   *dopamine.Engine
	Session    *session.Manager
	Focus      *focus.Manager
	Audio      *audio.Manager
	Compassion *compassion.Engine

	cfg       config.Config
	store     ActivityStore
	dash      *dashboard.Service
	shortcuts []config.Shortcut
	runner    Runner
	activeTab string

	noticeObservers []func(Notice)

	logger *zap.Logger
	now    func() time.Time
}

// New builds an Assistant, restores persisted dopamine state and registers
// the default palette. Session recovery is left to the caller via Recover.
func New(opts Options) *Assistant {
	cfg := config.Default()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	runner := opts.Runner
	if runner == nil {
		runner = ExecRunner
	}

	a := &Assistant{
		Palette: palette.New(logger.Named("palette")),
		Dopamine: dopamine.New(dopamine.Options{
			DataDir: opts.DataDir,
			Logger:  logger.Named("dopamine"),
			Now:     now,
		}),
		Session: session.New(session.Options{
			DataDir:          opts.DataDir,
			WarningIntervals: cfg.Session.WarningIntervals,
			UndoCapacity:     cfg.Session.UndoDepth,
			Logger:           logger.Named("session"),
			Now:              now,
		}),
		Focus:      focus.New(cfg.Focus.AutoTriggerStreak, logger.Named("focus")),
		Audio:      audio.New(opts.Player, logger.Named("audio")),
		Compassion: compassion.New(compassion.Options{Now: now}),

		cfg:       cfg,
		store:     opts.Store,
		shortcuts: opts.Shortcuts,
		runner:    runner,
		activeTab: TabToday,
		logger:    logger,
		now:       now,
	}
	if opts.Store != nil {
		a.dash = dashboard.NewService(opts.Store, now)
	}

	a.Audio.SetMuted(cfg.Audio.Muted)
	a.Audio.SetVolume(cfg.Audio.Volume)

	a.Dopamine.OnCelebration(func(kind string, value int) {
		a.Audio.Play(audio.Streak)
		a.notify(Notice{Kind: NoticeCelebration, Text: fmt.Sprintf("%d in a row! %s", value, a.Compassion.Encouragement(0, value))})
	})
	a.Dopamine.OnAchievement(func(ach dopamine.Achievement) {
		a.notify(Notice{Kind: NoticeAchievement, Text: fmt.Sprintf("Achievement unlocked: %s", ach.Description)})
	})
	a.Focus.OnEnter(func() { a.notify(Notice{Kind: NoticeFocus, Text: "Focus mode on. Just this card."}) })
	a.Focus.OnExit(func() { a.notify(Notice{Kind: NoticeFocus, Text: "Focus mode off."}) })

	a.registerPalette()
	return a
}

// Config returns the effective configuration.
func (a *Assistant) Config() config.Config { return a.cfg }

// ActiveTab returns the tab last selected from the palette.
func (a *Assistant) ActiveTab() string { return a.activeTab }

// OnNotice registers an observer for user-facing messages. Observers run
// synchronously in registration order.
func (a *Assistant) OnNotice(fn func(Notice)) {
	a.noticeObservers = append(a.noticeObservers, fn)
}

func (a *Assistant) notify(n Notice) {
	for _, fn := range a.noticeObservers {
		fn(n)
	}
}

// Outcome summarizes the effects of a recorded win.
type Outcome struct {
	Streak       int
	TotalWins    int
	Milestone    int      // 0 when no milestone was reached
	Achievements []string // newly earned this call
	FocusEntered bool
}

// RecordWin counts a win, logs the matching activity, awards the achievements
// it implies, plays its cue and checks the focus auto-trigger. The activity
// log error, if any, is returned after the in-memory effects are applied.
func (a *Assistant) RecordWin(ctx context.Context, wt dopamine.WinType, prospectID int64) (Outcome, error) {
	if !wt.Valid() {
		return Outcome{}, fmt.Errorf("record win: %w: %q", dopamine.ErrUnknownWinType, wt)
	}

	milestone, _ := a.Dopamine.RecordWin(wt)
	out := Outcome{
		Streak:    a.Dopamine.Streak(),
		TotalWins: a.Dopamine.TotalWins(),
		Milestone: milestone,
	}

	for _, name := range impliedAchievements(wt, out.Streak) {
		if a.Dopamine.CheckAchievement(name) {
			out.Achievements = append(out.Achievements, name)
		}
	}
	if milestone == 0 {
		a.Audio.Play(soundFor(wt))
	}
	out.FocusEntered = a.Focus.CheckAutoTrigger(out.Streak)

	return out, a.logActivity(ctx, activityFor(wt), prospectID, "")
}

// Skip breaks the streak and logs the skipped card.
func (a *Assistant) Skip(ctx context.Context, prospectID int64) error {
	a.Dopamine.BreakStreak()
	return a.logActivity(ctx, protocol.ActivitySkip, prospectID, "")
}

// StartSession begins a session and zeroes the per-session win counts.
func (a *Assistant) StartSession() {
	a.Session.StartSession()
	a.Dopamine.ResetSession()
	a.notify(Notice{Kind: NoticeInfo, Text: a.Compassion.Welcome(nil, 0)})
}

// EndSession ends the session and removes the recovery snapshot.
func (a *Assistant) EndSession() error {
	a.Session.EndSession()
	if err := a.Session.ClearRecoveryState(); err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	return nil
}

// Recover restores an interrupted session, if one was saved.
func (a *Assistant) Recover() bool {
	if !a.Session.LoadSessionState() {
		return false
	}
	a.notify(Notice{
		Kind: NoticeInfo,
		Text: fmt.Sprintf("Session recovered: %d min in, %d undo steps available.", a.Session.ElapsedMinutes(), a.Session.UndoDepth()),
	})
	return true
}

// Undo pops the most recent undoable action. Reverting the prospect itself
// belongs to the caller holding the prospect store.
func (a *Assistant) Undo() (session.UndoableAction, bool) {
	act, ok := a.Session.PopUndo()
	if !ok {
		a.notify(Notice{Kind: NoticeInfo, Text: "Nothing to undo."})
		return act, false
	}
	a.notify(Notice{Kind: NoticeInfo, Text: fmt.Sprintf("Undid %s on prospect %d.", act.ActionType, act.ProspectID)})
	return act, true
}

// CheckTime fires the next time-blindness warning, pairing it with a break
// suggestion. It returns the threshold and true when a warning fired.
func (a *Assistant) CheckTime() (int, bool) {
	threshold, ok := a.Session.CheckTimeWarnings()
	if !ok {
		return 0, false
	}
	text := fmt.Sprintf("%d minutes in.", threshold)
	if tip, ok := a.Compassion.BreakSuggestion(a.Session.ElapsedMinutes()); ok {
		text += " " + tip
	}
	a.notify(Notice{Kind: NoticeWarning, Text: text})
	return threshold, true
}

// Dashboard returns today's glanceable stats. Without an activity store only
// the streak and queue size are filled.
func (a *Assistant) Dashboard(ctx context.Context, cardsTotal int) (dashboard.Data, error) {
	streak := a.Dopamine.Streak()
	if a.dash == nil {
		return dashboard.Summarize(nil, streak, cardsTotal), nil
	}
	return a.dash.Today(ctx, streak, cardsTotal)
}

// Snapshot writes the session recovery file if a session is active.
func (a *Assistant) Snapshot() error {
	if !a.Session.IsActive() {
		return nil
	}
	return a.Session.SaveSessionState()
}

// Reload re-reads dopamine state written by another process.
func (a *Assistant) Reload() {
	a.Dopamine.Reload()
}

func (a *Assistant) logActivity(ctx context.Context, t protocol.ActivityType, prospectID int64, notes string) error {
	if a.store == nil {
		return nil
	}
	_, err := a.store.Log(ctx, activity.Activity{
		Type:       t,
		ProspectID: prospectID,
		Notes:      notes,
		CreatedAt:  a.now(),
	})
	if err != nil {
		a.Audio.Play(audio.ErrorTone)
		a.logger.Warn("activity log write failed", zap.String("type", string(t)), zap.Error(err))
		return fmt.Errorf("log %s activity: %w", t, err)
	}
	return nil
}

// streakMasterAt is the streak that earns streak_master.
const streakMasterAt = 50

func impliedAchievements(wt dopamine.WinType, streak int) []string {
	var names []string
	switch wt {
	case dopamine.CallCompleted:
		names = append(names, dopamine.FirstCall)
	case dopamine.DemoScheduled:
		names = append(names, dopamine.FirstDemo)
	}
	if streak >= streakMasterAt {
		names = append(names, dopamine.StreakMaster)
	}
	return names
}

func activityFor(wt dopamine.WinType) protocol.ActivityType {
	switch wt {
	case dopamine.EmailSent:
		return protocol.ActivityEmailSent
	case dopamine.CallCompleted:
		return protocol.ActivityCall
	case dopamine.DemoScheduled:
		return protocol.ActivityDemoScheduled
	case dopamine.FollowUpSet:
		return protocol.ActivityFollowUp
	default:
		return protocol.ActivityStatusChange
	}
}

func soundFor(wt dopamine.WinType) audio.Sound {
	switch wt {
	case dopamine.EmailSent:
		return audio.EmailSent
	case dopamine.DemoScheduled:
		return audio.DemoSet
	default:
		return audio.CardDone
	}
}
