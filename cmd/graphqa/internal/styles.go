package internal

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme holds the styles of the interactive chat.
type Theme struct {
	Prompt lipgloss.Style
	Answer lipgloss.Style
	Muted  lipgloss.Style
	Error  lipgloss.Style
}

// DefaultTheme returns the amber palette used on terminals.
func DefaultTheme() *Theme {
	return &Theme{
		Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD966")).Bold(true),
		Answer: lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB000")),
		Muted:  lipgloss.NewStyle().Foreground(lipgloss.Color("#805800")),
		Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5F5F")).Bold(true),
	}
}

// PlainTheme renders text unchanged, for pipes and tests.
func PlainTheme() *Theme {
	plain := lipgloss.NewStyle()
	return &Theme{
		Prompt: plain,
		Answer: plain,
		Muted:  plain,
		Error:  plain,
	}
}
