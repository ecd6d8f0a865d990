package main

import (
	"github.com/charmbracelet/lipgloss"

	"ironlung/pkg/assistant"
)

var (
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#10B981"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	headerStyle = lipgloss.NewStyle().Bold(true)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F59E0B"))
	partyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#EC4899")).Bold(true)
	accentStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#7C3AED"))
)

// renderNotice formats an assistant notice for terminal output.
func renderNotice(n assistant.Notice) string {
	switch n.Kind {
	case assistant.NoticeCelebration, assistant.NoticeAchievement:
		return partyStyle.Render("★ " + n.Text)
	case assistant.NoticeWarning:
		return warnStyle.Render("⏰ " + n.Text)
	case assistant.NoticeFocus:
		return accentStyle.Render("◉ " + n.Text)
	default:
		return dimStyle.Render("» " + n.Text)
	}
}
