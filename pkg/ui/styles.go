package ui

import "github.com/charmbracelet/lipgloss"

// Color palette - ANSI 256 colors used throughout the docker.
var (
	colorAccent    = lipgloss.Color("141")
	colorText      = lipgloss.Color("252")
	colorTextMuted = lipgloss.Color("245")
	colorError     = lipgloss.Color("196")
	colorWarning   = lipgloss.Color("214")
	colorSuccess   = lipgloss.Color("42")
	colorInfo      = lipgloss.Color("39")
	colorCode      = lipgloss.Color("213")
	colorCodeBg    = lipgloss.Color("235")
	colorBorder    = lipgloss.Color("141")
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true)

	textStyle = lipgloss.NewStyle().
			Foreground(colorText)

	mutedStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted).
			Italic(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorError)

	warningStyle = lipgloss.NewStyle().
			Foreground(colorWarning)

	successStyle = lipgloss.NewStyle().
			Foreground(colorSuccess)

	infoStyle = lipgloss.NewStyle().
			Foreground(colorInfo)

	codeStyle = lipgloss.NewStyle().
			Foreground(colorCode).
			Background(colorCodeBg)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorBorder).
			Padding(0, 1)

	tabStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted).
			Padding(0, 2)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(colorAccent).
			Bold(true).
			Padding(0, 2).
			Underline(true)

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Background(colorAccent).
			Bold(true)

	labelStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted).
			Width(18)

	footerStyle = lipgloss.NewStyle().
			Foreground(colorTextMuted).
			Italic(true)
)
