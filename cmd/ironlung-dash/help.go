package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// helpBinding represents a key binding with its description.
type helpBinding struct {
	key  string
	desc string
}

func dashboardHelpBindings() []helpBinding {
	return []helpBinding{
		{"c / e / d", "Record call, email, demo"},
		{"n", "Card done"},
		{"o", "Follow-up set"},
		{"s", "Skip card (breaks streak)"},
		{"u", "Undo last action"},
		{"f", "Toggle focus mode"},
		{"m", "Mute or unmute sounds"},
		{"S", "Start or end the session"},
		{": or ctrl+k", "Open command palette"},
		{"?", "Toggle help"},
		{"q or ctrl+c", "Quit"},
	}
}

func paletteHelpBindings() []helpBinding {
	return []helpBinding{
		{"type", "Filter commands"},
		{"↑↓ or ctrl+p/n", "Move selection"},
		{"enter", "Run selected command"},
		{"esc", "Close palette"},
	}
}

// helpBindingsForView returns help bindings for the given view.
func helpBindingsForView(view ViewType) []helpBinding {
	if view == PaletteView {
		return paletteHelpBindings()
	}
	return dashboardHelpBindings()
}

// viewName returns the display name for a view.
func viewName(view ViewType) string {
	switch view {
	case DashboardView:
		return "Dashboard"
	case PaletteView:
		return "Command Palette"
	case HelpView:
		return "Help"
	default:
		return "Unknown View"
	}
}

// renderHelpOverlay renders the help panel for the view it was opened from.
func (m Model) renderHelpOverlay() string {
	title := m.styles.HelpTitle.Render("Help - " + viewName(m.previousView))

	var content strings.Builder
	keyStyle := m.styles.HelpKey.Width(20)
	for _, binding := range helpBindingsForView(m.previousView) {
		content.WriteString(lipgloss.JoinHorizontal(lipgloss.Left,
			keyStyle.Render(binding.key),
			m.styles.HelpDesc.Render(binding.desc),
		))
		content.WriteString("\n")
	}

	footer := m.styles.HelpFooter.Render("Press ? or Esc to close")
	return lipgloss.JoinVertical(lipgloss.Left, title, m.styles.HelpContent.Render(content.String()), footer)
}
