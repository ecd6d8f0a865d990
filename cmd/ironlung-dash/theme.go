package main

import "github.com/charmbracelet/lipgloss"

// Theme defines the colors of the ironlung dashboard.
type Theme struct {
	Primary   lipgloss.Color
	Secondary lipgloss.Color
	Success   lipgloss.Color
	Warning   lipgloss.Color
	Error     lipgloss.Color
	Muted     lipgloss.Color
	Party     lipgloss.Color
}

// DefaultTheme returns the default dashboard theme.
func DefaultTheme() Theme {
	return Theme{
		Primary:   lipgloss.Color("12"),  // Blue
		Secondary: lipgloss.Color("14"),  // Cyan
		Success:   lipgloss.Color("10"),  // Green
		Warning:   lipgloss.Color("11"),  // Yellow
		Error:     lipgloss.Color("9"),   // Red
		Muted:     lipgloss.Color("240"), // Gray
		Party:     lipgloss.Color("13"),  // Magenta
	}
}

// Styles are the lipgloss styles derived from a Theme.
type Styles struct {
	Header      lipgloss.Style
	Tab         lipgloss.Style
	Streak      lipgloss.Style
	StatValue   lipgloss.Style
	StatLabel   lipgloss.Style
	Muted       lipgloss.Style
	Error       lipgloss.Style
	Focus       lipgloss.Style
	Selected    lipgloss.Style
	Input       lipgloss.Style
	HelpTitle   lipgloss.Style
	HelpKey     lipgloss.Style
	HelpDesc    lipgloss.Style
	HelpContent lipgloss.Style
	HelpFooter  lipgloss.Style
	Notice      map[string]lipgloss.Style
}

// NewStyles builds the dashboard styles for theme.
func NewStyles(theme Theme) Styles {
	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(theme.Primary),
		Tab:       lipgloss.NewStyle().Foreground(theme.Secondary),
		Streak:    lipgloss.NewStyle().Bold(true).Foreground(theme.Warning),
		StatValue: lipgloss.NewStyle().Bold(true).Foreground(theme.Success),
		StatLabel: lipgloss.NewStyle().Foreground(theme.Muted),
		Muted:     lipgloss.NewStyle().Foreground(theme.Muted),
		Error:     lipgloss.NewStyle().Foreground(theme.Error),
		Focus: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(theme.Party).
			Padding(1, 4),
		Selected: lipgloss.NewStyle().
			Background(theme.Primary).
			Foreground(lipgloss.Color("#ffffff")).
			Bold(true).
			Padding(0, 1),
		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(theme.Primary).
			Padding(0, 1).
			Width(60),
		HelpTitle:   lipgloss.NewStyle().Bold(true).Foreground(theme.Primary).Padding(1, 0),
		HelpKey:     lipgloss.NewStyle().Foreground(theme.Secondary),
		HelpDesc:    lipgloss.NewStyle(),
		HelpContent: lipgloss.NewStyle().Padding(0, 2),
		HelpFooter:  lipgloss.NewStyle().Foreground(theme.Muted).Padding(1, 0),
		Notice: map[string]lipgloss.Style{
			"info":        lipgloss.NewStyle().Foreground(theme.Muted),
			"celebration": lipgloss.NewStyle().Bold(true).Foreground(theme.Party),
			"achievement": lipgloss.NewStyle().Bold(true).Foreground(theme.Party),
			"focus":       lipgloss.NewStyle().Foreground(theme.Secondary),
			"warning":     lipgloss.NewStyle().Foreground(theme.Warning),
		},
	}
}
