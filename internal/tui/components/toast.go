package components

import (
	"github.com/charmbracelet/lipgloss"

	"fleetctl/internal/dashboard"
	"fleetctl/internal/tui/design"
	"fleetctl/internal/tui/utils"
)

// MaxVisibleToasts bounds how many notifications are drawn at once; the
// newest win.
const MaxVisibleToasts = 4

// RenderToasts stacks notifications, oldest on top, each at most width
// cells wide.
func RenderToasts(notes []dashboard.Notification, width int) string {
	if len(notes) == 0 {
		return ""
	}
	if len(notes) > MaxVisibleToasts {
		notes = notes[len(notes)-MaxVisibleToasts:]
	}

	rendered := make([]string, 0, len(notes))
	for _, n := range notes {
		style, icon := toastStyle(n.Kind)
		inner := width - style.GetHorizontalFrameSize()
		rendered = append(rendered, style.Render(utils.TruncateString(icon+" "+n.Message, inner)))
	}
	return lipgloss.JoinVertical(lipgloss.Right, rendered...)
}

func toastStyle(kind dashboard.NotificationKind) (lipgloss.Style, string) {
	switch kind {
	case dashboard.KindSuccess:
		return design.ToastSuccessStyle, design.TextSuccessStyle.Render("✓")
	case dashboard.KindError:
		return design.ToastErrorStyle, design.TextErrorStyle.Render("✗")
	default:
		return design.ToastWarningStyle, design.TextWarningStyle.Render("!")
	}
}
