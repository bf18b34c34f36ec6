package cliui

import "github.com/charmbracelet/lipgloss"

var (
	SuccessMark = lipgloss.NewStyle().Foreground(lipgloss.Color("82")).Render("✓")
	FailMark    = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render("✗")
	WarnMark    = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Render("!")

	StepStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	KeyStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	ValueStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	DimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	NameStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("75")).Bold(true)
	HeaderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Bold(true).Underline(true)
	IDStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("178"))

	spinnerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
)
