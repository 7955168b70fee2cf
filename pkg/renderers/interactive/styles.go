package interactive

import "github.com/charmbracelet/lipgloss"

// Styles groups the lipgloss styles used by the form view.
type Styles struct {
	Title        lipgloss.Style
	Label        lipgloss.Style
	Input        lipgloss.Style
	InputFocused lipgloss.Style
	InputError   lipgloss.Style
	Error        lipgloss.Style
	Help         lipgloss.Style
	Button       lipgloss.Style
	ButtonActive lipgloss.Style
	Success      lipgloss.Style
}

// DefaultStyles mirrors the slate and red palette of the HTML theme.
func DefaultStyles() Styles {
	slate := lipgloss.Color("#64748b")
	red := lipgloss.Color("#7f1d1d")
	input := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(slate).
		Padding(0, 1).
		Width(40)

	return Styles{
		Title:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#334155")).MarginBottom(1),
		Label:        lipgloss.NewStyle().Foreground(lipgloss.Color("#475569")),
		Input:        input,
		InputFocused: input.BorderForeground(lipgloss.Color("#e2e8f0")),
		InputError:   input.Border(lipgloss.ThickBorder()).BorderForeground(red),
		Error:        lipgloss.NewStyle().Foreground(red),
		Help:         lipgloss.NewStyle().Faint(true),
		Button:       lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("#e2e8f0")).Background(lipgloss.Color("#334155")),
		ButtonActive: lipgloss.NewStyle().Padding(0, 2).Bold(true).Foreground(lipgloss.Color("#0f172a")).Background(lipgloss.Color("#e2e8f0")),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("#15803d")),
	}
}
