package components

import (
	"github.com/charmbracelet/lipgloss"

	"fleetctl/internal/tui/design"
)

// RenderConfirmDialog draws a destructive-action confirmation box.
func RenderConfirmDialog(title, description string, width int) string {
	if width > design.OverlayWidth {
		width = design.OverlayWidth
	}
	inner := width - design.DangerOverlayStyle.GetHorizontalFrameSize()
	if inner < 10 {
		inner = 10
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		design.TitleStyle.Foreground(design.ColorError).Render(title),
		"",
		lipgloss.NewStyle().Width(inner).Render(description),
		"",
		design.KeyHintStyle.Render("y")+design.TextSecondaryStyle.Render(" confirm   ")+
			design.KeyHintStyle.Render("n/esc")+design.TextSecondaryStyle.Render(" cancel"),
	)
	return design.DangerOverlayStyle.Width(inner + design.DangerOverlayStyle.GetHorizontalPadding()).Render(body)
}
