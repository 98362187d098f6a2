// Package color resolves the configured theme (auto, dark or light) and
// applies it to lipgloss before the TUI renders its first frame.
//
// Styles in internal/tui/design use lipgloss.AdaptiveColor, so switching the
// background mode here is enough to re-theme the whole dashboard.
//
// # Usage Example
//
//	dark := color.ResolveDarkMode(cfg.Dashboard.Theme)
//	color.Initialize(dark)
//
// NO_COLOR is honoured by lipgloss itself.
package color
