package ui

import "github.com/charmbracelet/lipgloss"

// This file centralizes the lipgloss styles used by the console output and the TUI.

var (
	// Headers
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFF")).
			Background(lipgloss.Color("#7D56F4")). // Brand Color
			Bold(true).
			Padding(0, 1)

	sectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")). // Light purple
			Bold(true).
			MarginTop(1)

	// Table
	tableBorderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("63")) // Purple-ish
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("252")).
				Padding(0, 1)
	tableCellStyle = lipgloss.NewStyle().Padding(0, 1)

	// Status colors
	completedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("46")) // Green
	skippedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")) // Gray
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)
	fastestStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")). // Cyan/Teal
			Bold(true)
	slowestStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // Orange

	// Chart
	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4"))
	labelStyle = lipgloss.NewStyle().
			Width(16)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			MarginTop(1)
)
