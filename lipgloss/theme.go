// Package lipgloss provides theme implementations using the Lipgloss styling library.
package lipgloss

import (
	"fmt"

	"github.com/fwojciec/mvreport"
)

// Compile-time interface verification.
var _ mvreport.Theme = (*Theme)(nil)

// Theme implements mvreport.Theme with Lipgloss-compatible colors.
type Theme struct {
	palette mvreport.Palette
}

// Palette returns the semantic color palette for this theme.
func (t *Theme) Palette() mvreport.Palette {
	return t.palette
}

// DefaultTheme returns the default theme (dark background optimized).
func DefaultTheme() *Theme {
	return DarkTheme()
}

// ThemeByName returns the theme for a config value ("dark" or "light").
// An empty name selects the default theme.
func ThemeByName(name string) (*Theme, error) {
	switch name {
	case "", "dark":
		return DarkTheme(), nil
	case "light":
		return LightTheme(), nil
	default:
		return nil, fmt.Errorf("unknown theme %q (want dark or light)", name)
	}
}

// DarkTheme returns a theme optimized for dark terminal backgrounds.
func DarkTheme() *Theme {
	return &Theme{
		palette: mvreport.Palette{
			// Base colors (Catppuccin Mocha)
			Background: "#1e1e2e",
			Foreground: "#cdd6f4",

			Key:         "#89b4fa",
			String:      "#a6e3a1",
			Number:      "#fab387",
			Constant:    "#cba6f7",
			Punctuation: "#9399b2",

			Loading: "#89dceb",
			Success: "#a6e3a1",
			Error:   "#f38ba8",

			ScoreHigh: "#a6e3a1",
			ScoreMid:  "#f9e2af",
			ScoreLow:  "#f38ba8",

			UIBackground: "#313244",
			UIForeground: "#a6adc8",
			UIAccent:     "#89b4fa",
			Muted:        "#6c7086",
		},
	}
}

// LightTheme returns a theme optimized for light terminal backgrounds.
func LightTheme() *Theme {
	return &Theme{
		palette: mvreport.Palette{
			// Base colors (Catppuccin Latte)
			Background: "#eff1f5",
			Foreground: "#4c4f69",

			Key:         "#1e66f5",
			String:      "#40a02b",
			Number:      "#fe640b",
			Constant:    "#8839ef",
			Punctuation: "#6c6f85",

			Loading: "#04a5e5",
			Success: "#40a02b",
			Error:   "#d20f39",

			ScoreHigh: "#40a02b",
			ScoreMid:  "#df8e1d",
			ScoreLow:  "#d20f39",

			UIBackground: "#e6e9ef",
			UIForeground: "#6c6f85",
			UIAccent:     "#1e66f5",
			Muted:        "#9ca0b0",
		},
	}
}
