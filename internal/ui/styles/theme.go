package styles

import (
	"fmt"
	"regexp"

	"github.com/charmbracelet/lipgloss"
)

// ColorToken names a themable color.
type ColorToken string

const (
	TokenTextPrimary    ColorToken = "text_primary"
	TokenTextSecondary  ColorToken = "text_secondary"
	TokenTextMuted      ColorToken = "text_muted"
	TokenBorderDefault  ColorToken = "border_default"
	TokenBorderFocus    ColorToken = "border_focus"
	TokenOverlayBorder  ColorToken = "overlay_border"
	TokenOverlayTitle   ColorToken = "overlay_title"
	TokenStatusSuccess  ColorToken = "status_success"
	TokenStatusWarning  ColorToken = "status_warning"
	TokenStatusError    ColorToken = "status_error"
	TokenToastInfo      ColorToken = "toast_info"
	TokenButtonPrimary  ColorToken = "button_primary"
	TokenButtonDisabled ColorToken = "button_disabled"
)

// Preset is a named set of token colors.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// ThemeConfig selects a preset and per-token overrides (token name -> hex).
type ThemeConfig struct {
	Preset string            `mapstructure:"preset" yaml:"preset,omitempty"`
	Colors map[string]string `mapstructure:"colors" yaml:"colors,omitempty"`
}

// DefaultPreset is applied when no preset is configured.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Dark-friendly default palette",
	Colors: map[ColorToken]string{
		TokenTextPrimary:    "#CDD6F4",
		TokenTextSecondary:  "#A6ADC8",
		TokenTextMuted:      "#6C7086",
		TokenBorderDefault:  "#45475A",
		TokenBorderFocus:    "#54A0FF",
		TokenOverlayBorder:  "#89B4FA",
		TokenOverlayTitle:   "#89B4FA",
		TokenStatusSuccess:  "#73F59F",
		TokenStatusWarning:  "#FECA57",
		TokenStatusError:    "#FF8787",
		TokenToastInfo:      "#54A0FF",
		TokenButtonPrimary:  "#54A0FF",
		TokenButtonDisabled: "#585B70",
	},
}

// Presets are the selectable themes by name.
var Presets = map[string]Preset{
	"default": DefaultPreset,
	"high-contrast": {
		Name:        "high-contrast",
		Description: "Pure colors for low-color terminals",
		Colors: map[ColorToken]string{
			TokenTextPrimary:    "#FFFFFF",
			TokenTextSecondary:  "#DDDDDD",
			TokenTextMuted:      "#AAAAAA",
			TokenBorderDefault:  "#FFFFFF",
			TokenBorderFocus:    "#00FFFF",
			TokenOverlayBorder:  "#FFFF00",
			TokenOverlayTitle:   "#FFFF00",
			TokenStatusSuccess:  "#00FF00",
			TokenStatusWarning:  "#FFFF00",
			TokenStatusError:    "#FF0000",
			TokenToastInfo:      "#00FFFF",
			TokenButtonPrimary:  "#00FFFF",
			TokenButtonDisabled: "#808080",
		},
	},
}

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

func isValidHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}

func isValidToken(t ColorToken) bool {
	_, ok := DefaultPreset.Colors[t]
	return ok
}

// ApplyTheme resolves cfg against the presets and installs the colors.
// Nothing is changed when cfg is invalid.
func ApplyTheme(cfg ThemeConfig) error {
	preset := DefaultPreset
	if cfg.Preset != "" {
		p, ok := Presets[cfg.Preset]
		if !ok {
			return fmt.Errorf("unknown theme preset %q", cfg.Preset)
		}
		preset = p
	}

	colors := make(map[ColorToken]string, len(DefaultPreset.Colors))
	for tok, c := range DefaultPreset.Colors {
		colors[tok] = c
	}
	for tok, c := range preset.Colors {
		colors[tok] = c
	}
	for name, c := range cfg.Colors {
		tok := ColorToken(name)
		if !isValidToken(tok) {
			return fmt.Errorf("unknown color token %q", name)
		}
		if !isValidHexColor(c) {
			return fmt.Errorf("invalid hex color %q for %s", c, name)
		}
		colors[tok] = c
	}

	set := func(dst *lipgloss.AdaptiveColor, tok ColorToken) {
		*dst = lipgloss.AdaptiveColor{Light: colors[tok], Dark: colors[tok]}
	}
	set(&TextPrimaryColor, TokenTextPrimary)
	set(&TextSecondaryColor, TokenTextSecondary)
	set(&TextMutedColor, TokenTextMuted)
	set(&BorderDefaultColor, TokenBorderDefault)
	set(&BorderHighlightFocusColor, TokenBorderFocus)
	set(&OverlayBorderColor, TokenOverlayBorder)
	set(&OverlayTitleColor, TokenOverlayTitle)
	set(&StatusSuccessColor, TokenStatusSuccess)
	set(&StatusWarningColor, TokenStatusWarning)
	set(&StatusErrorColor, TokenStatusError)
	set(&ToastBorderInfoColor, TokenToastInfo)
	set(&ButtonPrimaryColor, TokenButtonPrimary)
	set(&ButtonDisabledColor, TokenButtonDisabled)

	rebuildStyles()
	return nil
}
