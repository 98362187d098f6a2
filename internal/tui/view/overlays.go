package view

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fleetctl/internal/tui/design"
	"fleetctl/internal/tui/model"
)

func renderForm(f *model.Form, width int) string {
	if f == nil {
		return ""
	}
	if width > design.OverlayWidth {
		width = design.OverlayWidth
	}

	rows := []string{design.TitleStyle.Render(f.Title), ""}
	for i, field := range f.Fields {
		label := design.InputLabelStyle
		if i == f.Focus {
			label = design.InputFocusedLabelStyle
		}
		rows = append(rows, label.Render(field.Label), field.Input.View(), "")
	}
	rows = append(rows, design.TextMutedStyle.Render("tab next • enter submit • esc cancel"))

	inner := width - design.OverlayStyle.GetHorizontalFrameSize()
	return design.OverlayStyle.Width(inner + design.OverlayStyle.GetHorizontalPadding()).
		Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func renderHelpOverlay(m *model.Model, width int) string {
	columns := m.Keys.FullHelp()
	rendered := make([]string, 0, len(columns))
	for _, col := range columns {
		var lines []string
		for _, b := range col {
			h := b.Help()
			lines = append(lines, design.KeyHintStyle.Render(padKey(h.Key))+" "+design.TextSecondaryStyle.Render(h.Desc))
		}
		rendered = append(rendered, lipgloss.NewStyle().MarginRight(3).Render(strings.Join(lines, "\n")))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		design.CenterHorizontal(lipgloss.Width(strings.Join(rendered, "")), design.TitleStyle.Render("KEYBOARD SHORTCUTS")),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, rendered...),
		"",
		design.TextMutedStyle.Render("Press ? or esc to close"),
	)
	return design.OverlayStyle.MaxWidth(width).Render(body)
}

func padKey(k string) string {
	const w = 10
	if lipgloss.Width(k) >= w {
		return k
	}
	return k + strings.Repeat(" ", w-lipgloss.Width(k))
}
