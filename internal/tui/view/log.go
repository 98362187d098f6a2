package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fleetctl/internal/tui/design"
	"fleetctl/internal/tui/model"
)

// LogOverlaySize returns the viewport size for the activity log overlay in
// a terminal of the given size.
func LogOverlaySize(width, height int) (int, int) {
	w := width - design.AppStyle.GetHorizontalFrameSize() - design.OverlayStyle.GetHorizontalFrameSize() - 4
	h := height - design.OverlayStyle.GetVerticalFrameSize() - 8
	if w < 10 {
		w = 10
	}
	if h < 3 {
		h = 3
	}
	return w, h
}

func renderLogOverlay(m *model.Model, width, height int) string {
	title := design.TitleStyle.Render("Activity Log") +
		design.TextMutedStyle.Render("  (↑/↓ scroll • y copy • esc close)")
	content := lipgloss.JoinVertical(lipgloss.Left, title, "", m.LogViewport.View())
	return design.OverlayStyle.MaxWidth(width).MaxHeight(height).Render(content)
}

// PrepareLogContent colours lines by level tag. Lines longer than maxWidth
// are left to the viewport.
func PrepareLogContent(lines []string, maxWidth int) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		switch {
		case strings.Contains(line, "[ERROR]"):
			out[i] = design.LogErrorStyle.Render(line)
		case strings.Contains(line, "[WARN]"):
			out[i] = design.LogWarnStyle.Render(line)
		case strings.Contains(line, "[DEBUG]"):
			out[i] = design.LogDebugStyle.Render(line)
		default:
			out[i] = design.LogInfoStyle.Render(line)
		}
	}
	return strings.Join(out, "\n")
}
