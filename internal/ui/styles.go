// Package ui provides terminal styling for civic CLI output.
// Uses the Ayu color theme with adaptive light/dark mode support.
package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/steveyegge/civic/internal/types"
)

// Ayu theme color palette
// Dark: https://terminalcolors.com/themes/ayu/dark/
// Light: https://terminalcolors.com/themes/ayu/light/
var (
	ColorPass = lipgloss.AdaptiveColor{
		Light: "#86b300", // ayu light bright green
		Dark:  "#c2d94c", // ayu dark bright green
	}
	ColorWarn = lipgloss.AdaptiveColor{
		Light: "#f2ae49", // ayu light bright yellow
		Dark:  "#ffb454", // ayu dark bright yellow
	}
	ColorFail = lipgloss.AdaptiveColor{
		Light: "#f07171", // ayu light bright red
		Dark:  "#f07178", // ayu dark bright red
	}
	ColorMuted = lipgloss.AdaptiveColor{
		Light: "#828c99", // ayu light muted
		Dark:  "#6c7680", // ayu dark muted
	}
	ColorAccent = lipgloss.AdaptiveColor{
		Light: "#399ee6", // ayu light bright blue
		Dark:  "#59c2ff", // ayu dark bright blue
	}
)

// Per-category colors for list output
var categoryColors = map[types.Category]lipgloss.AdaptiveColor{
	types.CategoryInfrastructure: {Light: "#fa8d3e", Dark: "#ff8f40"}, // orange
	types.CategorySafety:         ColorFail,
	types.CategoryEnvironment:    ColorPass,
	types.CategoryCommunity:      {Light: "#a37acc", Dark: "#d2a6ff"}, // purple
	types.CategoryTransit:        ColorAccent,
}

var (
	PassStyle   = lipgloss.NewStyle().Foreground(ColorPass)
	WarnStyle   = lipgloss.NewStyle().Foreground(ColorWarn)
	FailStyle   = lipgloss.NewStyle().Foreground(ColorFail)
	MutedStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	AccentStyle = lipgloss.NewStyle().Foreground(ColorAccent)
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
)

const (
	IconPass = "✓"
	IconWarn = "⚠"
	IconFail = "✗"
)

// RenderPass renders text with pass (green) styling
func RenderPass(s string) string {
	return PassStyle.Render(s)
}

// RenderWarn renders text with warning (yellow) styling
func RenderWarn(s string) string {
	return WarnStyle.Render(s)
}

// RenderFail renders text with fail (red) styling
func RenderFail(s string) string {
	return FailStyle.Render(s)
}

// RenderMuted renders text with muted (gray) styling
func RenderMuted(s string) string {
	return MutedStyle.Render(s)
}

// RenderAccent renders text with accent (blue) styling
func RenderAccent(s string) string {
	return AccentStyle.Render(s)
}

// RenderHeader renders a section header in bold accent
func RenderHeader(s string) string {
	return HeaderStyle.Render(s)
}

// RenderCategory colors s with the color assigned to category.
// Unknown categories render muted.
func RenderCategory(category types.Category, s string) string {
	color, ok := categoryColors[category]
	if !ok {
		return MutedStyle.Render(s)
	}
	return lipgloss.NewStyle().Foreground(color).Render(s)
}

// RenderVotes renders a vote count, muted when zero.
func RenderVotes(s string, votes int) string {
	if votes == 0 {
		return MutedStyle.Render(s)
	}
	return WarnStyle.Render(s)
}

// RenderPassIcon renders the pass icon with styling
func RenderPassIcon() string {
	return PassStyle.Render(IconPass)
}

// RenderWarnIcon renders the warning icon with styling
func RenderWarnIcon() string {
	return WarnStyle.Render(IconWarn)
}

// RenderFailIcon renders the fail icon with styling
func RenderFailIcon() string {
	return FailStyle.Render(IconFail)
}

// RenderStatus renders an issue status, upper-cased.
func RenderStatus(status types.Status) string {
	s := strings.ToUpper(string(status))
	if status == types.StatusOpen {
		return PassStyle.Render(s)
	}
	return MutedStyle.Render(s)
}
