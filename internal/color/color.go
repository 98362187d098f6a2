package color

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme names accepted by ResolveDarkMode.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
)

// detectDarkBackground is swapped out in tests.
var detectDarkBackground = lipgloss.HasDarkBackground

// ResolveDarkMode maps a theme preference to a background mode. "auto" and
// unknown values query the terminal.
func ResolveDarkMode(theme string) bool {
	switch strings.ToLower(strings.TrimSpace(theme)) {
	case ThemeDark:
		return true
	case ThemeLight:
		return false
	default:
		return detectDarkBackground()
	}
}

// Initialize sets the background mode used by every adaptive colour.
func Initialize(isDarkMode bool) {
	lipgloss.SetHasDarkBackground(isDarkMode)
}
