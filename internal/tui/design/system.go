package design

import (
	"github.com/charmbracelet/lipgloss"
)

// Spacing in terminal cells.
const (
	SpaceNone = 0
	SpaceXS   = 1
	SpaceSM   = 2
	SpaceMD   = 3
	SpaceLG   = 4

	MinPanelHeight = 3
	MinPanelWidth  = 20

	// OverlayWidth is the preferred width of dialogs and forms.
	OverlayWidth = 60
)

// Color palette with light/dark variants.
var (
	ColorPrimary = lipgloss.AdaptiveColor{
		Light: "#4F46E5",
		Dark:  "#818CF8",
	}

	ColorSuccess = lipgloss.AdaptiveColor{
		Light: "#059669",
		Dark:  "#10B981",
	}
	ColorError = lipgloss.AdaptiveColor{
		Light: "#DC2626",
		Dark:  "#EF4444",
	}
	ColorWarning = lipgloss.AdaptiveColor{
		Light: "#D97706",
		Dark:  "#F59E0B",
	}
	ColorInfo = lipgloss.AdaptiveColor{
		Light: "#2563EB",
		Dark:  "#3B82F6",
	}

	ColorBackground = lipgloss.AdaptiveColor{
		Light: "#FFFFFF",
		Dark:  "#0F172A",
	}
	ColorSurface = lipgloss.AdaptiveColor{
		Light: "#F8FAFC",
		Dark:  "#1E293B",
	}
	ColorBorder = lipgloss.AdaptiveColor{
		Light: "#CBD5E1",
		Dark:  "#475569",
	}

	ColorText = lipgloss.AdaptiveColor{
		Light: "#0F172A",
		Dark:  "#F1F5F9",
	}
	ColorTextSecondary = lipgloss.AdaptiveColor{
		Light: "#475569",
		Dark:  "#94A3B8",
	}
	ColorTextMuted = lipgloss.AdaptiveColor{
		Light: "#94A3B8",
		Dark:  "#64748B",
	}
	ColorHighlight = lipgloss.AdaptiveColor{
		Light: "#EEF2FF",
		Dark:  "#312E81",
	}
)

// Text styles
var (
	TextStyle          = lipgloss.NewStyle().Foreground(ColorText)
	TextSecondaryStyle = lipgloss.NewStyle().Foreground(ColorTextSecondary)
	TextMutedStyle     = lipgloss.NewStyle().Foreground(ColorTextMuted)
	TextSuccessStyle   = lipgloss.NewStyle().Foreground(ColorSuccess)
	TextErrorStyle     = lipgloss.NewStyle().Foreground(ColorError)
	TextWarningStyle   = lipgloss.NewStyle().Foreground(ColorWarning)
	TextInfoStyle      = lipgloss.NewStyle().Foreground(ColorInfo)

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)
)

// Component styles
var (
	AppStyle = lipgloss.NewStyle().Padding(0, SpaceXS)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, SpaceXS)

	PanelFocusedStyle = PanelStyle.
				BorderForeground(ColorPrimary)

	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorText).
			Background(ColorSurface).
			Padding(0, SpaceXS)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary).
			Background(ColorSurface).
			Padding(0, SpaceXS)

	// BannerStyle renders the persistent connection error.
	BannerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorBackground).
			Background(ColorError).
			Padding(0, SpaceXS)

	ListItemStyle = lipgloss.NewStyle().
			PaddingLeft(SpaceXS)

	ListItemSelectedStyle = ListItemStyle.
				Foreground(ColorPrimary).
				Background(ColorHighlight).
				Bold(true)

	ListItemDisabledStyle = ListItemStyle.
				Foreground(ColorTextMuted)

	OverlayStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Background(ColorSurface).
			Foreground(ColorText).
			Padding(SpaceXS, SpaceSM)

	DangerOverlayStyle = OverlayStyle.
				BorderForeground(ColorError)

	InputLabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	InputFocusedLabelStyle = lipgloss.NewStyle().
				Foreground(ColorPrimary).
				Bold(true)

	KeyHintStyle = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)
)

// Toast styles, one per notification kind.
var (
	ToastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, SpaceXS)

	ToastSuccessStyle = ToastStyle.BorderForeground(ColorSuccess)
	ToastErrorStyle   = ToastStyle.BorderForeground(ColorError)
	ToastWarningStyle = ToastStyle.BorderForeground(ColorWarning)
)

// Log level styles
var (
	LogInfoStyle  = lipgloss.NewStyle().Foreground(ColorText)
	LogWarnStyle  = lipgloss.NewStyle().Foreground(ColorWarning)
	LogErrorStyle = lipgloss.NewStyle().Foreground(ColorError)
	LogDebugStyle = lipgloss.NewStyle().Foreground(ColorTextMuted).Italic(true)
)

// Online state icons.
const (
	IconOnline  = "●"
	IconOffline = "○"
	IconRunning = "▶"
	IconStopped = "■"
)

// OnlineStyle returns the style for a host's online indicator.
func OnlineStyle(online bool) lipgloss.Style {
	if online {
		return TextSuccessStyle
	}
	return TextMutedStyle
}

// RunningStyle returns the style for an application's run state.
func RunningStyle(running bool) lipgloss.Style {
	if running {
		return TextSuccessStyle
	}
	return TextSecondaryStyle
}

// UsageStyle colours a percentage by load.
func UsageStyle(percent float64) lipgloss.Style {
	switch {
	case percent >= 90:
		return TextErrorStyle
	case percent >= 70:
		return TextWarningStyle
	default:
		return TextStyle
	}
}

// CenterHorizontal pads content so it sits in the middle of width.
func CenterHorizontal(width int, content string) string {
	contentWidth := lipgloss.Width(content)
	if contentWidth >= width {
		return content
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, content)
}
