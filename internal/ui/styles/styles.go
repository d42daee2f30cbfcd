// Package styles holds the shared lipgloss colors and styles. Colors are
// package variables so ApplyTheme can swap them at startup.
package styles

import "github.com/charmbracelet/lipgloss"

// Colors. Populated from DefaultPreset by init and ApplyTheme.
var (
	TextPrimaryColor          lipgloss.AdaptiveColor
	TextSecondaryColor        lipgloss.AdaptiveColor
	TextMutedColor            lipgloss.AdaptiveColor
	BorderDefaultColor        lipgloss.AdaptiveColor
	BorderHighlightFocusColor lipgloss.AdaptiveColor
	OverlayBorderColor        lipgloss.AdaptiveColor
	OverlayTitleColor         lipgloss.AdaptiveColor
	StatusSuccessColor        lipgloss.AdaptiveColor
	StatusWarningColor        lipgloss.AdaptiveColor
	StatusErrorColor          lipgloss.AdaptiveColor
	ToastBorderInfoColor      lipgloss.AdaptiveColor
	ButtonPrimaryColor        lipgloss.AdaptiveColor
	ButtonDisabledColor       lipgloss.AdaptiveColor
)

// Styles derived from the colors. Rebuilt by ApplyTheme.
var (
	TitleStyle      lipgloss.Style
	StatusBarStyle  lipgloss.Style
	ErrorStyle      lipgloss.Style
	HintStyle       lipgloss.Style
	FieldErrorStyle lipgloss.Style
)

func init() {
	_ = ApplyTheme(ThemeConfig{})
}

func rebuildStyles() {
	TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(OverlayTitleColor)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(TextSecondaryColor).
		PaddingLeft(1)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(StatusErrorColor).
		Bold(true).
		PaddingLeft(1)

	HintStyle = lipgloss.NewStyle().
		Foreground(TextMutedColor)

	FieldErrorStyle = lipgloss.NewStyle().
		Foreground(StatusErrorColor)
}

// ButtonStyle renders a bracketed button label.
func ButtonStyle(focused, disabled bool, accent lipgloss.TerminalColor) lipgloss.Style {
	s := lipgloss.NewStyle().Padding(0, 1)
	switch {
	case disabled:
		return s.Foreground(ButtonDisabledColor).Faint(true)
	case focused:
		return s.Bold(true).Foreground(lipgloss.Color("#1E1E2E")).Background(accent)
	default:
		return s.Foreground(accent)
	}
}
