package view

import "github.com/charmbracelet/lipgloss"

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

var (
	colorMuted    = ac("240", "243")
	colorAccent   = ac("27", "62")
	colorDone     = ac("28", "42")
	colorError    = ac("160", "203")
	colorBorder   = ac("250", "243")
	colorActiveBg = ac("#e9e9e9", "#262626")
)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(colorAccent)
	headingStyle  = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(colorMuted)
	errorStyle    = lipgloss.NewStyle().Foreground(colorError)
	doneStyle     = lipgloss.NewStyle().Foreground(colorDone)
	activeStyle   = lipgloss.NewStyle().Bold(true).Background(colorActiveBg)
	editingStyle  = lipgloss.NewStyle().Italic(true).Foreground(colorAccent)
	paneStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorBorder).Padding(0, 1)
	focusedPane   = paneStyle.BorderForeground(colorAccent)
	formStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent).Padding(0, 1)
	barFillStyle  = lipgloss.NewStyle().Foreground(colorAccent)
	barDoneStyle  = lipgloss.NewStyle().Foreground(colorDone)
	barEmptyStyle = lipgloss.NewStyle().Foreground(colorMuted)
)
