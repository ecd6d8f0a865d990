// Package compassion picks encouraging, guilt-free messages based on the time
// of day, time away and progress.
package compassion

import (
	"fmt"
	"math/rand/v2"
	"time"
)

const (
	// shortAbsence separates "welcome back" from "long time no see".
	shortAbsence = 4 * time.Hour
	// breakAfter is the session length before a break is suggested.
	breakAfter = 45
	// streakPraise is the streak at which encouragement switches to the
	// streak pool regardless of time of day.
	streakPraise = 5
)

// Options configures an Engine.
type Options struct {
	// Now defaults to time.Now.
	Now func() time.Time
	// Rand defaults to an unseeded generator.
	Rand *rand.Rand
}

// Engine selects messages. Not safe for concurrent use.
type Engine struct {
	now func() time.Time
	rng *rand.Rand
}

// New creates an Engine.
func New(opts Options) *Engine {
	e := &Engine{now: opts.Now, rng: opts.Rand}
	if e.now == nil {
		e.now = time.Now
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return e
}

// Welcome greets the operator. lastEnd is nil on the very first session.
// Outstanding follow-ups are appended as a count.
func (e *Engine) Welcome(lastEnd *time.Time, missed int) string {
	if lastEnd == nil {
		return e.pick(welcomeFresh)
	}

	pool := welcomeBackLong
	if e.now().Sub(*lastEnd) < shortAbsence {
		pool = welcomeBackShort
	}
	msg := e.pick(pool)

	if missed > 0 {
		noun := "follow-ups"
		if missed == 1 {
			noun = "follow-up"
		}
		msg += fmt.Sprintf(" %d %s to catch up on.", missed, noun)
	}
	return msg
}

// Encouragement returns praise matched to the streak or the time of day.
func (e *Engine) Encouragement(cardsProcessed, streak int) string {
	if streak >= streakPraise {
		return e.pick(encouragementStreak)
	}
	switch h := e.now().Hour(); {
	case h < 12:
		return e.pick(encouragementEarly)
	case h < 16:
		return e.pick(encouragementMid)
	default:
		return e.pick(encouragementLate)
	}
}

// BreakSuggestion returns a break prompt once the session has run long
// enough, and false before then.
func (e *Engine) BreakSuggestion(sessionMinutes int) (string, bool) {
	if sessionMinutes < breakAfter {
		return "", false
	}
	return e.pick(breakSuggestions), true
}

// QueueEmpty celebrates a cleared queue.
func (e *Engine) QueueEmpty() string { return e.pick(queueEmpty) }

// MissedFollowups acknowledges overdue follow-ups without blame.
func (e *Engine) MissedFollowups(count int) string { return e.pick(missedFollowups) }

// LowProductivity reassures on a slow day.
func (e *Engine) LowProductivity() string { return e.pick(lowProductivity) }

// RescueIntro introduces the reduced rescue-mode list.
func (e *Engine) RescueIntro() string { return e.pick(rescueIntros) }

func (e *Engine) pick(pool []string) string {
	return pool[e.rng.IntN(len(pool))]
}
