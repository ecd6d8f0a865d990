package assistant

import (
	"context"
	"fmt"
	"os/exec"
	"time"

	"ironlung/pkg/dopamine"
	"ironlung/pkg/palette"
)

// Tabs selectable from the palette.
const (
	TabToday     = "Today"
	TabPipeline  = "Pipeline"
	TabCalendar  = "Calendar"
	TabDemos     = "Demos"
	TabAnalytics = "Analytics"
	TabSettings  = "Settings"
)

// Palette categories.
const (
	CategoryTab      = "tab"
	CategoryAction   = "action"
	CategorySetting  = "setting"
	CategoryShortcut = "shortcut"
)

// shortcutTimeout bounds a user shortcut command.
const shortcutTimeout = 30 * time.Second

// Runner executes a command line.
type Runner func(ctx context.Context, argv []string) error

// ExecRunner runs argv with os/exec and waits for it to finish.
func ExecRunner(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		return fmt.Errorf("run shortcut: empty command")
	}
	//nolint:gosec // argv comes from the operator's own palette.yaml
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("run %s: %w: %s", argv[0], err, out)
	}
	return nil
}

// RefreshPalette rebuilds the palette from the defaults and shortcuts.
// Execution history survives the rebuild.
func (a *Assistant) RefreshPalette() {
	a.Palette.Clear()
	a.registerPalette()
}

func (a *Assistant) registerPalette() {
	a.Palette.RegisterMany(a.tabItems())
	a.Palette.RegisterMany(a.actionItems())
	a.Palette.RegisterMany(a.shortcutItems())
}

func (a *Assistant) tabItems() []palette.Item {
	tabs := []struct {
		label    string
		keywords []string
	}{
		{TabToday, []string{"queue", "cards", "home"}},
		{TabPipeline, []string{"prospects", "companies", "deals"}},
		{TabCalendar, []string{"follow-ups", "schedule", "meetings"}},
		{TabDemos, []string{"presentations", "meetings"}},
		{TabAnalytics, []string{"stats", "reports", "numbers"}},
		{TabSettings, []string{"preferences", "config", "options"}},
	}
	items := make([]palette.Item, 0, len(tabs))
	for _, tab := range tabs {
		name := tab.label
		items = append(items, palette.Item{
			Label:    name,
			Category: CategoryTab,
			Keywords: tab.keywords,
			Action: func() error {
				a.activeTab = name
				return nil
			},
		})
	}
	return items
}

func (a *Assistant) actionItems() []palette.Item {
	win := func(wt dopamine.WinType) func() error {
		return func() error {
			_, err := a.RecordWin(context.Background(), wt, 0)
			return err
		}
	}
	return []palette.Item{
		{
			Label:    "Start Session",
			Category: CategoryAction,
			Keywords: []string{"begin", "clock in"},
			Action: func() error {
				a.StartSession()
				return nil
			},
		},
		{
			Label:    "End Session",
			Category: CategoryAction,
			Keywords: []string{"stop", "clock out", "done"},
			Action:   a.EndSession,
		},
		{
			Label:    "Toggle Focus",
			Category: CategoryAction,
			Keywords: []string{"focus mode", "distraction", "tunnel"},
			Action: func() error {
				a.Focus.Toggle()
				return nil
			},
		},
		{
			Label:    "Undo",
			Category: CategoryAction,
			Keywords: []string{"revert", "oops"},
			Action: func() error {
				a.Undo()
				return nil
			},
		},
		{
			Label:    "Record Call",
			Category: CategoryAction,
			Keywords: []string{"dial", "phone", "win"},
			Action:   win(dopamine.CallCompleted),
		},
		{
			Label:    "Record Email",
			Category: CategoryAction,
			Keywords: []string{"send", "mail", "win"},
			Action:   win(dopamine.EmailSent),
		},
		{
			Label:    "Record Demo",
			Category: CategoryAction,
			Keywords: []string{"schedule", "meeting", "win"},
			Action:   win(dopamine.DemoScheduled),
		},
		{
			Label:    "Card Done",
			Category: CategoryAction,
			Keywords: []string{"next", "processed", "win"},
			Action:   win(dopamine.CardProcessed),
		},
		{
			Label:    "Skip Card",
			Category: CategoryAction,
			Keywords: []string{"pass", "later"},
			Action:   func() error { return a.Skip(context.Background(), 0) },
		},
		{
			Label:    "Mute",
			Category: CategorySetting,
			Keywords: []string{"sound", "audio", "quiet", "unmute"},
			Action: func() error {
				a.Audio.SetMuted(!a.Audio.Muted())
				state := "on"
				if a.Audio.Muted() {
					state = "off"
				}
				a.notify(Notice{Kind: NoticeInfo, Text: "Sound " + state + "."})
				return nil
			},
		},
	}
}

func (a *Assistant) shortcutItems() []palette.Item {
	items := make([]palette.Item, 0, len(a.shortcuts))
	for _, s := range a.shortcuts {
		argv := []string(s.Run)
		items = append(items, palette.Item{
			Label:    s.Label,
			Category: s.Category,
			Keywords: s.Keywords,
			Action: func() error {
				ctx, cancel := context.WithTimeout(context.Background(), shortcutTimeout)
				defer cancel()
				return a.runner(ctx, argv)
			},
		})
	}
	return items
}
