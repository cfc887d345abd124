package tui

import "github.com/charmbracelet/lipgloss"

const cardWidth = 30

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Underline(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	emptyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	disabledStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	activeStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	dislikedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	chipStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("111")).Padding(0, 1)
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1).Width(cardWidth)
	focusedCard   = cardStyle.BorderForeground(lipgloss.Color("205"))
	filterBox     = lipgloss.NewStyle().Border(lipgloss.NormalBorder()).Padding(0, 1)
)
