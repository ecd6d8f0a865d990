package dopamine

import (
	"slices"
	"time"
)

// Achievement names.
const (
	FirstCall    = "first_call"
	FirstDemo    = "first_demo"
	FirstClose   = "first_close"
	PowerHour    = "power_hour"
	QueueCleared = "queue_cleared"
	PerfectDay   = "perfect_day"
	StreakMaster = "streak_master"
)

// Achievement is a one-time unlock. EarnedAt is zero until Earned is set.
type Achievement struct {
	Name        string
	Description string
	Earned      bool
	EarnedAt    time.Time
}

type achievementDef struct {
	name        string
	description string
}

// catalog is the fixed achievement list, in display order.
var catalog = []achievementDef{
	{FirstCall, "Complete your first call"},
	{FirstDemo, "Schedule your first demo"},
	{FirstClose, "Close your first deal"},
	{PowerHour, "20+ calls in 60 minutes"},
	{QueueCleared, "Process the entire daily queue"},
	{PerfectDay, "Complete all engaged follow-ups in a day"},
	{StreakMaster, "50 cards without a skip"},
}

// streakMilestones are the streak values that trigger a celebration.
var streakMilestones = []int{5, 10, 20, 50}

// StreakMilestones returns the celebration thresholds in ascending order.
func StreakMilestones() []int {
	return slices.Clone(streakMilestones)
}

// Catalog returns every achievement definition, unearned.
func Catalog() []Achievement {
	out := make([]Achievement, len(catalog))
	for i, def := range catalog {
		out[i] = Achievement{Name: def.name, Description: def.description}
	}
	return out
}

// IsAchievement reports whether name is in the catalog.
func IsAchievement(name string) bool {
	return slices.ContainsFunc(catalog, func(d achievementDef) bool { return d.name == name })
}
