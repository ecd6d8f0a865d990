// Package dashboard assembles the glanceable daily stats: cards, calls,
// emails, demos and the live streak.
package dashboard

import (
	"context"
	"fmt"
	"time"

	"ironlung/pkg/protocol"
)

// Data is one glance at the day.
type Data struct {
	CardsProcessed int
	CardsTotal     int
	CallsMade      int
	EmailsSent     int
	DemosScheduled int
	CurrentStreak  int
}

// Counter reports per-type activity counts for a day.
type Counter interface {
	CountByType(ctx context.Context, day time.Time) (map[protocol.ActivityType]int, error)
}

// Service builds Data from an activity Counter.
type Service struct {
	counter Counter
	now     func() time.Time
}

// NewService creates a Service. A nil now uses time.Now.
func NewService(counter Counter, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{counter: counter, now: now}
}

// Today returns stats for the current day.
func (s *Service) Today(ctx context.Context, streak, cardsTotal int) (Data, error) {
	return s.For(ctx, s.now(), streak, cardsTotal)
}

// For returns stats for the day containing day. The streak and queue size
// come from the caller since they are not stored in the activity log.
func (s *Service) For(ctx context.Context, day time.Time, streak, cardsTotal int) (Data, error) {
	counts, err := s.counter.CountByType(ctx, day)
	if err != nil {
		return Data{}, fmt.Errorf("dashboard for %s: %w", day.Format(time.DateOnly), err)
	}
	return Summarize(counts, streak, cardsTotal), nil
}

// Summarize folds raw activity counts into dashboard figures. A processed
// card is any disposition: status change, skip or defer. Voicemails count as
// calls.
func Summarize(counts map[protocol.ActivityType]int, streak, cardsTotal int) Data {
	return Data{
		CardsProcessed: counts[protocol.ActivityStatusChange] +
			counts[protocol.ActivitySkip] +
			counts[protocol.ActivityDefer],
		CardsTotal:     cardsTotal,
		CallsMade:      counts[protocol.ActivityCall] + counts[protocol.ActivityVoicemail],
		EmailsSent:     counts[protocol.ActivityEmailSent],
		DemosScheduled: counts[protocol.ActivityDemoScheduled],
		CurrentStreak:  streak,
	}
}
