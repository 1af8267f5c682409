// Package ui provides terminal styling for the recipes CLI.
package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Palette with adaptive light/dark variants.
var (
	ColorTitle = lipgloss.AdaptiveColor{Light: "#c2410c", Dark: "#fdba74"}
	ColorPass  = lipgloss.AdaptiveColor{Light: "#86b300", Dark: "#c2d94c"}
	ColorFail  = lipgloss.AdaptiveColor{Light: "#f07171", Dark: "#f07178"}
	ColorMuted = lipgloss.AdaptiveColor{Light: "#828c99", Dark: "#6c7680"}
)

var (
	TitleStyle   = lipgloss.NewStyle().Bold(true).Foreground(ColorTitle)
	SectionStyle = lipgloss.NewStyle().Bold(true).Underline(true)
	AmountStyle  = lipgloss.NewStyle().Foreground(ColorMuted)
	TipsStyle    = lipgloss.NewStyle().Italic(true).Foreground(ColorMuted).PaddingLeft(2)
	PassStyle    = lipgloss.NewStyle().Foreground(ColorPass)
	FailStyle    = lipgloss.NewStyle().Foreground(ColorFail)
	MutedStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
)

const (
	IconPass   = "✓"
	IconFail   = "✗"
	IconBullet = "•"
	IconTip    = "»"
)

func RenderPass(s string) string {
	return PassStyle.Render(IconPass + " " + s)
}

func RenderFail(s string) string {
	return FailStyle.Render(IconFail + " " + s)
}

func RenderMuted(s string) string {
	return MutedStyle.Render(s)
}
