package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fleetctl/internal/dashboard"
	"fleetctl/internal/tui/components"
	"fleetctl/internal/tui/design"
	"fleetctl/internal/tui/model"
)

const appTitle = "Fleet Dashboard"

// Render renders the UI according to the current model state.
func Render(m *model.Model) string {
	if m.CurrentAppMode == model.ModeQuitting {
		return design.TextSecondaryStyle.Render(m.QuittingMessage)
	}
	if m.Width == 0 || m.Height == 0 {
		return design.TextSecondaryStyle.Render("Initializing...")
	}

	width := m.Width - design.AppStyle.GetHorizontalFrameSize()

	header := renderHeader(m, width)
	banner := components.RenderBanner(m.Snapshot.ConnectionError, width)
	statusBar := renderStatusBar(m, width)
	toasts := components.RenderToasts(m.Snapshot.Notifications, min(width, design.OverlayWidth))

	used := lipgloss.Height(header) + lipgloss.Height(statusBar)
	if banner != "" {
		used += lipgloss.Height(banner)
	}
	if toasts != "" {
		used += lipgloss.Height(toasts)
	}
	bodyHeight := m.Height - used
	if bodyHeight < design.MinPanelHeight {
		bodyHeight = design.MinPanelHeight
	}

	body := renderBody(m, width, bodyHeight)
	if overlay := renderOverlay(m, width, bodyHeight); overlay != "" {
		body = lipgloss.Place(width, bodyHeight, lipgloss.Center, lipgloss.Center, overlay)
	}

	parts := []string{header}
	if banner != "" {
		parts = append(parts, banner)
	}
	parts = append(parts, body)
	if toasts != "" {
		parts = append(parts, lipgloss.PlaceHorizontal(width, lipgloss.Right, toasts))
	}
	parts = append(parts, statusBar)

	return design.AppStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func renderHeader(m *model.Model, width int) string {
	h := components.NewHeader(appTitle).WithWidth(width)
	if m.Snapshot.Loading {
		h.WithSpinner(m.Spinner.View())
	}
	right := m.ServerURL
	if n := len(m.Snapshot.Hosts); n > 0 {
		right = fmt.Sprintf("%d online / %d  •  %s", countOnline(m.Snapshot), n, m.ServerURL)
	}
	return h.WithRightContent(right).Render()
}

func renderBody(m *model.Model, width, height int) string {
	switch {
	case m.Snapshot.Loading && len(m.Snapshot.Hosts) == 0:
		msg := m.Spinner.View() + " Connecting to server..."
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, design.TextSecondaryStyle.Render(msg))
	case m.InDetailView():
		return renderHostDetail(m, width, height)
	default:
		return renderFleet(m, width, height)
	}
}

// renderOverlay returns the active modal, if any. A pending confirmation
// always wins.
func renderOverlay(m *model.Model, width, height int) string {
	if p, ok := m.Snapshot.Confirmation.(dashboard.PendingConfirmation); ok {
		return components.RenderConfirmDialog(p.Title, p.Description, width)
	}
	switch m.CurrentAppMode {
	case model.ModeAddHostForm, model.ModeAddAppForm:
		return renderForm(m.Form, width)
	case model.ModeHelpOverlay:
		return renderHelpOverlay(m, width)
	case model.ModeLogOverlay:
		return renderLogOverlay(m, width, height)
	}
	return ""
}

func renderStatusBar(m *model.Model, width int) string {
	right := m.StatusBarMessage
	switch {
	case right != "":
		switch m.StatusBarMessageType {
		case model.StatusBarSuccess:
			right = design.TextSuccessStyle.Render(right)
		case model.StatusBarError:
			right = design.TextErrorStyle.Render(right)
		}
	case !m.Snapshot.LastUpdated.IsZero():
		right = "Updated " + m.Snapshot.LastUpdated.Format("15:04:05")
	}
	return components.NewStatusBar(width).
		WithLeftText(shortHelp(m)).
		WithRightText(right).
		Render()
}

func shortHelp(m *model.Model) string {
	var hints []string
	if m.InDetailView() {
		hints = []string{"esc back", "a add app", "space start/stop", "x delete app", "S/R power"}
	} else {
		hints = []string{"enter open", "a add", "D delete", "S/R power"}
	}
	hints = append(hints, "? help", "q quit")
	return strings.Join(hints, " • ")
}

func countOnline(v dashboard.View) int {
	n := 0
	for _, h := range v.Hosts {
		if h.IsOnline {
			n++
		}
	}
	return n
}
