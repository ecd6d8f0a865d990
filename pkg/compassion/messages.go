package compassion

// Message pools. Every line must stay free of guilt language; see
// guiltPhrases in the tests.
var (
	welcomeFresh = []string{
		"Good morning. Let's get after it.",
		"Ready when you are.",
		"New day, clean slate. Here's what's on deck.",
	}
	welcomeBackShort = []string{
		"Welcome back. Picking up where you left off.",
		"Back at it. Here's what matters most.",
		"Good to see you. Let's keep the momentum going.",
	}
	welcomeBackLong = []string{
		"Welcome back. Here are the 3 most important things.",
		"Hey. A few things need attention. Nothing we can't handle.",
		"It's been a minute. Here's a quick catch-up, no stress.",
	}

	encouragementEarly = []string{
		"Strong start.",
		"You're building momentum.",
		"Good pace. Keep it rolling.",
	}
	encouragementMid = []string{
		"You're in the zone.",
		"Solid work today.",
		"Pipeline is moving.",
	}
	encouragementLate = []string{
		"Still grinding. Nice.",
		"Impressive stamina.",
		"Late push pays off.",
	}
	encouragementStreak = []string{
		"Streak going! Don't stop now.",
		"On a roll.",
		"This is what a hot streak feels like.",
	}

	breakSuggestions = []string{
		"You've been at it a while. Step away for 5 minutes. You've earned it.",
		"Quick break? Your brain will thank you.",
		"Good stopping point. Stretch, hydrate, come back sharp.",
		"Consider a breather. Everything will still be here.",
	}
	queueEmpty = []string{
		"Queue clear. You crushed it. Take a break.",
		"Everything's handled. Nice work.",
		"That's a wrap. Nothing left in the queue.",
	}
	missedFollowups = []string{
		"A few things slipped. Let's catch them up.",
		"Some follow-ups need attention. Here's the quick list.",
		"A couple overdue items. Nothing catastrophic.",
	}
	lowProductivity = []string{
		"Some days are harder. Here's what matters most.",
		"Not every day is a record-setter. That's fine.",
		"Rough one? Let's just knock out the essentials.",
	}
	rescueIntros = []string{
		"Bad day? Here are just 3 things. That's it.",
		"Low energy mode. Only the must-do items.",
		"Simplified view. Do these and you're done for today.",
	}
)
