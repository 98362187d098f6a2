package view

import (
	"fmt"
	"strings"

	"fleetctl/internal/api"
	"fleetctl/internal/tui/components"
	"fleetctl/internal/tui/design"
	"fleetctl/internal/tui/model"
	"fleetctl/internal/tui/utils"
)

const emptyFleetHint = "No computers yet. Press a to add one, then run the agent on it."

// renderFleet draws the host list.
func renderFleet(m *model.Model, width, height int) string {
	hosts := m.Snapshot.Hosts
	panel := components.NewPanel("Computers").WithDimensions(width, height).SetFocused(true)

	if len(hosts) == 0 {
		return panel.WithContent(design.TextMutedStyle.Render(emptyFleetHint)).Render()
	}

	inner := width - design.PanelStyle.GetHorizontalFrameSize()
	lines := make([]string, 0, len(hosts)+1)
	lines = append(lines, design.TextSecondaryStyle.Render(fleetRow(inner, "", "NAME", "ADDRESS", "CPU", "MEM", "APPS")))
	for i, h := range hosts {
		lines = append(lines, renderHostRow(h, inner, i == m.HostCursor))
	}
	return panel.WithContent(strings.Join(lines, "\n")).Render()
}

func renderHostRow(h api.Host, width int, selected bool) string {
	icon := design.OnlineStyle(h.IsOnline).Render(onlineIcon(h.IsOnline))
	cpu, mem := "-", "-"
	if h.IsOnline {
		cpu = utils.FormatPercent(h.Stats.CPUUsage)
		mem = utils.FormatPercent(h.Stats.MemUsage)
	}
	row := fleetRow(width-2, icon, h.Name, h.IPAddress, cpu, mem, appSummary(h))

	switch {
	case selected:
		return design.ListItemSelectedStyle.Render(row)
	case !h.IsOnline:
		return design.ListItemDisabledStyle.Render(row)
	default:
		return design.ListItemStyle.Render(row)
	}
}

// fleetRow lays out columns; the name column takes what is left.
func fleetRow(width int, icon, name, addr, cpu, mem, apps string) string {
	const addrW, cpuW, memW, appsW = 16, 7, 7, 8
	nameW := width - addrW - cpuW - memW - appsW - 6
	if nameW < 8 {
		nameW = 8
	}
	if icon == "" {
		icon = " "
	}
	return fmt.Sprintf("%s %s %s %s %s %s",
		icon,
		utils.PadRight(name, nameW),
		utils.PadRight(addr, addrW),
		utils.PadRight(cpu, cpuW),
		utils.PadRight(mem, memW),
		utils.PadRight(apps, appsW),
	)
}

func appSummary(h api.Host) string {
	running := 0
	for _, a := range h.Apps {
		if a.IsRunning {
			running++
		}
	}
	return fmt.Sprintf("%d/%d", running, len(h.Apps))
}

func onlineIcon(online bool) string {
	if online {
		return design.IconOnline
	}
	return design.IconOffline
}
