// Package ui holds the shared console palette and the small interactive
// pieces of the CLI. The audit log is the real record of a run; everything
// here is display only.
package ui

import "github.com/charmbracelet/lipgloss"

// ─── Palette ─────────────────────────────────────────────────────────────────

var (
	ColorPrimary = lipgloss.AdaptiveColor{Light: "#0891b2", Dark: "#22d3ee"}
	ColorMuted   = lipgloss.AdaptiveColor{Light: "#6b7280", Dark: "#9ca3af"}
	ColorGood    = lipgloss.AdaptiveColor{Light: "#16a34a", Dark: "#4ade80"}
	ColorWarn    = lipgloss.AdaptiveColor{Light: "#ca8a04", Dark: "#facc15"}
	ColorBad     = lipgloss.AdaptiveColor{Light: "#dc2626", Dark: "#f87171"}
)

var (
	TitleStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)
	MutedStyle = lipgloss.NewStyle().Foreground(ColorMuted)
	GoodStyle  = lipgloss.NewStyle().Foreground(ColorGood)
	WarnStyle  = lipgloss.NewStyle().Foreground(ColorWarn)
	BadStyle   = lipgloss.NewStyle().Foreground(ColorBad)
)
