package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("24")).
			Padding(0, 1)

	cursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)

	// Expired rows sink to the bottom of the deep sea.
	expiredStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("239")).Faint(true)
	todayStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("226")).Bold(true)
	completedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("242")).Strikethrough(true)

	levelStyles = map[string]lipgloss.Style{
		"light":  lipgloss.NewStyle().Foreground(lipgloss.Color("117")),
		"middle": lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		"deep":   lipgloss.NewStyle().Foreground(lipgloss.Color("19")).Bold(true),
	}

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	dimStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	dialogPadY = 1
	dialogPadX = 2

	dialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(dialogPadY, dialogPadX)
)

func levelStyle(level string) lipgloss.Style {
	if st, ok := levelStyles[level]; ok {
		return st
	}
	return lipgloss.NewStyle()
}
