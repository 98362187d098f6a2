package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fleetctl/internal/tui/design"
	"fleetctl/internal/tui/utils"
)

// StatusBar is the bottom line: key hints on the left, a transient local
// message or the refresh time on the right.
type StatusBar struct {
	Width     int
	LeftText  string
	RightText string
}

// NewStatusBar creates a status bar.
func NewStatusBar(width int) *StatusBar {
	return &StatusBar{Width: width}
}

// WithLeftText sets the left side text.
func (s *StatusBar) WithLeftText(text string) *StatusBar {
	s.LeftText = text
	return s
}

// WithRightText sets the right side text.
func (s *StatusBar) WithRightText(text string) *StatusBar {
	s.RightText = text
	return s
}

// Render returns the styled status bar. When both sides do not fit, the
// right side wins.
func (s *StatusBar) Render() string {
	inner := s.Width - design.StatusBarStyle.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}

	var content string
	leftWidth := lipgloss.Width(s.LeftText)
	rightWidth := lipgloss.Width(s.RightText)
	switch {
	case s.RightText == "":
		content = utils.TruncateString(s.LeftText, inner)
	case leftWidth+rightWidth+1 <= inner:
		content = s.LeftText + strings.Repeat(" ", inner-leftWidth-rightWidth) + s.RightText
	default:
		content = utils.TruncateString(s.RightText, inner)
	}

	return design.StatusBarStyle.Width(s.Width).MaxWidth(s.Width).Render(content)
}
