// Package ui renders the gated presentation: the passphrase screen, the
// splash, and the scrolling deck with its animated widgets.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Base palette. The matched passphrase role swaps the accent only;
// content never changes per role.
var (
	colorForeground = lipgloss.Color("#f2f2f2")
	colorMuted      = lipgloss.Color("#7a8699")
	colorBorder     = lipgloss.Color("#2a3850")
	colorError      = lipgloss.Color("#e53935")
	colorSuccess    = lipgloss.Color("#8BC34A")

	roleAccents = map[string]lipgloss.Color{
		"staff":    lipgloss.Color("#8BC34A"),
		"investor": lipgloss.Color("#ffd54f"),
		"operator": lipgloss.Color("#4db6ac"),
	}
	defaultAccent = lipgloss.Color("#4db6ac")
)

// Styles holds the lipgloss styles shared by every page.
type Styles struct {
	Accent lipgloss.Color

	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Heading  lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Success  lipgloss.Style

	Panel      lipgloss.Style
	FocusPanel lipgloss.Style
	StatValue  lipgloss.Style
	TabActive  lipgloss.Style
	TabIdle    lipgloss.Style
	Footer     lipgloss.Style
}

// DefaultStyles builds the style set for a role ("" uses the default
// accent).
func DefaultStyles(role string) Styles {
	accent, ok := roleAccents[role]
	if !ok {
		accent = defaultAccent
	}

	panel := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorBorder).
		Padding(0, 1)

	return Styles{
		Accent:   accent,
		Title:    lipgloss.NewStyle().Bold(true).Foreground(accent),
		Subtitle: lipgloss.NewStyle().Foreground(colorMuted).Italic(true),
		Heading:  lipgloss.NewStyle().Bold(true).Foreground(colorForeground),
		Body:     lipgloss.NewStyle().Foreground(colorForeground),
		Muted:    lipgloss.NewStyle().Foreground(colorMuted),
		Error:    lipgloss.NewStyle().Foreground(colorError),
		Success:  lipgloss.NewStyle().Foreground(colorSuccess),

		Panel:      panel,
		FocusPanel: panel.BorderForeground(accent),
		StatValue:  lipgloss.NewStyle().Bold(true).Foreground(accent),
		TabActive:  lipgloss.NewStyle().Bold(true).Foreground(accent).Underline(true),
		TabIdle:    lipgloss.NewStyle().Foreground(colorMuted),
		Footer:     lipgloss.NewStyle().Foreground(colorMuted).Faint(true),
	}
}
