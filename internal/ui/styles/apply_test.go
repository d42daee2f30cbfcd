package styles

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// resetTheme restores the default palette after a test changes it.
func resetTheme(t *testing.T) {
	t.Cleanup(func() { _ = ApplyTheme(ThemeConfig{}) })
}

func TestApplyTheme_Default(t *testing.T) {
	resetTheme(t)
	require.NoError(t, ApplyTheme(ThemeConfig{}))
	require.Equal(t, DefaultPreset.Colors[TokenTextPrimary], TextPrimaryColor.Dark)
	require.Equal(t, DefaultPreset.Colors[TokenStatusError], StatusErrorColor.Dark)
}

func TestApplyTheme_BuiltinPreset(t *testing.T) {
	resetTheme(t)
	require.NoError(t, ApplyTheme(ThemeConfig{Preset: "high-contrast"}))
	require.Equal(t, "#FF0000", StatusErrorColor.Dark)
	require.Equal(t, "#00FF00", StatusSuccessColor.Light)
}

func TestApplyTheme_PresetWithOverride(t *testing.T) {
	resetTheme(t)
	Presets["test2"] = Preset{
		Name: "test2",
		Colors: map[ColorToken]string{
			TokenTextPrimary:   "#FF0000",
			TokenTextSecondary: "#0000FF",
		},
	}
	defer delete(Presets, "test2")

	err := ApplyTheme(ThemeConfig{
		Preset: "test2",
		Colors: map[string]string{
			"text_primary": "#00FF00", // Override preset
		},
	})
	require.NoError(t, err)
	require.Equal(t, "#00FF00", TextPrimaryColor.Dark)   // Overridden
	require.Equal(t, "#0000FF", TextSecondaryColor.Dark) // From preset
	// Tokens the preset leaves out fall back to the default palette
	require.Equal(t, DefaultPreset.Colors[TokenBorderFocus], BorderHighlightFocusColor.Dark)
}

func TestApplyTheme_Errors(t *testing.T) {
	resetTheme(t)
	tests := []struct {
		name    string
		cfg     ThemeConfig
		wantErr string
	}{
		{"unknown preset", ThemeConfig{Preset: "nonexistent"}, "unknown theme preset"},
		{"unknown token", ThemeConfig{Colors: map[string]string{"invalid_token": "#FF0000"}}, "unknown color token"},
		{"bad hex", ThemeConfig{Colors: map[string]string{"text_primary": "not-a-color"}}, "invalid hex color"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := TextPrimaryColor
			err := ApplyTheme(tt.cfg)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
			require.Equal(t, before, TextPrimaryColor, "invalid config leaves colors untouched")
		})
	}
}

func TestIsValidToken(t *testing.T) {
	require.True(t, isValidToken(TokenTextPrimary))
	require.True(t, isValidToken(TokenButtonDisabled))
	require.False(t, isValidToken(ColorToken("invalid_token")))
	require.False(t, isValidToken(ColorToken("")))
}

func TestIsValidHexColor(t *testing.T) {
	tests := []struct {
		color string
		valid bool
	}{
		{"#FFF", true},
		{"#FFFFFF", true},
		{"#AbCdEf", true},
		{"FFFFFF", false},   // Missing #
		{"#FF", false},      // Too short
		{"#FFFFFFF", false}, // Too long
		{"#GGGGGG", false},  // Invalid chars
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			require.Equal(t, tt.valid, isValidHexColor(tt.color))
		})
	}
}
