package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fleetctl/internal/api"
	"fleetctl/internal/tui/components"
	"fleetctl/internal/tui/design"
	"fleetctl/internal/tui/model"
	"fleetctl/internal/tui/utils"
)

const statsPanelHeight = 7

// renderHostDetail draws the selected host: system stats, then its apps.
func renderHostDetail(m *model.Model, width, height int) string {
	host := *m.Snapshot.Selected

	stats := components.NewPanel(hostTitle(host)).
		WithDimensions(width, statsPanelHeight).
		WithContent(renderStats(host, width-design.PanelStyle.GetHorizontalFrameSize())).
		Render()

	appsHeight := height - lipgloss.Height(stats)
	apps := components.NewPanel(fmt.Sprintf("Applications (%d)", len(host.Apps))).
		WithDimensions(width, appsHeight).
		WithContent(renderApps(host, m.AppCursor, width-design.PanelStyle.GetHorizontalFrameSize())).
		SetFocused(true).
		Render()

	return lipgloss.JoinVertical(lipgloss.Left, stats, apps)
}

func hostTitle(h api.Host) string {
	state := design.TextMutedStyle.Render(design.IconOffline + " offline")
	if h.IsOnline {
		state = design.TextSuccessStyle.Render(design.IconOnline + " online")
	}
	return fmt.Sprintf("%s  %s  %s", h.Name, design.TextSecondaryStyle.Render(h.IPAddress), state)
}

func renderStats(h api.Host, width int) string {
	if !h.IsOnline {
		return design.TextMutedStyle.Render("Stats are unavailable while the computer is offline.\nShutdown, restart and application controls are disabled.")
	}
	barW := width - 24
	if barW < 5 {
		barW = 5
	}
	if barW > 40 {
		barW = 40
	}
	line := func(label string, v float64) string {
		return fmt.Sprintf("%-6s %s %s", label, design.UsageStyle(v).Render(utils.Bar(v, barW)), utils.FormatPercent(v))
	}
	return strings.Join([]string{
		line("CPU", h.Stats.CPUUsage),
		line("Memory", h.Stats.MemUsage),
		fmt.Sprintf("%-6s %d", "Procs", h.Stats.TotalProcesses),
	}, "\n")
}

func renderApps(h api.Host, cursor, width int) string {
	if len(h.Apps) == 0 {
		return design.TextMutedStyle.Render("No applications configured. Press a to add one.")
	}

	nameW := width - 34
	if nameW < 10 {
		nameW = 10
	}
	lines := make([]string, 0, len(h.Apps))
	for i, a := range h.Apps {
		icon, state := design.IconStopped, "stopped"
		if a.IsRunning {
			icon, state = design.IconRunning, "running"
		}
		row := fmt.Sprintf("%s %s %s %s %s",
			design.RunningStyle(a.IsRunning).Render(icon),
			utils.PadRight(a.Name, nameW),
			utils.PadRight(state, 8),
			utils.PadRight(utils.FormatPercent(a.CPUUsage), 7),
			utils.PadRight(utils.FormatPercent(a.MemUsage), 7),
		)
		switch {
		case i == cursor:
			lines = append(lines, design.ListItemSelectedStyle.Render(row))
		case !h.IsOnline:
			lines = append(lines, design.ListItemDisabledStyle.Render(row))
		default:
			lines = append(lines, design.ListItemStyle.Render(row))
		}
	}
	if app, ok := appAt(h, cursor); ok {
		lines = append(lines, "", design.TextMutedStyle.Render(utils.TruncateString(appDetails(app), width)))
	}
	return strings.Join(lines, "\n")
}

func appAt(h api.Host, i int) (api.Application, bool) {
	if i < 0 || i >= len(h.Apps) {
		return api.Application{}, false
	}
	return h.Apps[i], true
}

func appDetails(a api.Application) string {
	s := fmt.Sprintf("%s (%s)", a.Path, a.ProcessName)
	if a.Args != "" {
		s += " " + a.Args
	}
	return s
}
