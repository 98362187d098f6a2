package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fleetctl/internal/tui/design"
	"fleetctl/internal/tui/utils"
)

// Panel is a bordered box with a title line and clipped content.
type Panel struct {
	Title   string
	Content string
	Footer  string
	Width   int
	Height  int
	Focused bool
}

// NewPanel creates a panel with minimum dimensions.
func NewPanel(title string) *Panel {
	return &Panel{
		Title:  title,
		Width:  design.MinPanelWidth,
		Height: design.MinPanelHeight,
	}
}

// WithContent sets the panel body.
func (p *Panel) WithContent(content string) *Panel {
	p.Content = content
	return p
}

// WithFooter sets a muted last line, e.g. key hints.
func (p *Panel) WithFooter(footer string) *Panel {
	p.Footer = footer
	return p
}

// WithDimensions sets the outer size including the border.
func (p *Panel) WithDimensions(width, height int) *Panel {
	p.Width = width
	p.Height = height
	return p
}

// SetFocused highlights the border.
func (p *Panel) SetFocused(focused bool) *Panel {
	p.Focused = focused
	return p
}

// Render returns the styled panel. Content that does not fit is cut and
// the last visible line becomes "...".
func (p *Panel) Render() string {
	if p.Width < design.MinPanelWidth {
		p.Width = design.MinPanelWidth
	}
	if p.Height < design.MinPanelHeight {
		p.Height = design.MinPanelHeight
	}

	style := design.PanelStyle
	if p.Focused {
		style = design.PanelFocusedStyle
	}

	innerWidth := p.Width - style.GetHorizontalFrameSize()
	innerHeight := p.Height - style.GetVerticalFrameSize()
	if innerWidth < 1 {
		innerWidth = 1
	}
	if innerHeight < 1 {
		innerHeight = 1
	}

	var lines []string
	if p.Title != "" {
		titleStyle := design.TitleStyle
		if p.Focused {
			titleStyle = titleStyle.Foreground(design.ColorPrimary)
		}
		lines = append(lines, titleStyle.Render(utils.TruncateString(p.Title, innerWidth)))
	}

	bodyHeight := innerHeight - len(lines)
	if p.Footer != "" {
		bodyHeight--
	}

	if p.Content != "" && bodyHeight > 0 {
		contentLines := strings.Split(p.Content, "\n")
		if len(contentLines) > bodyHeight {
			contentLines = append(contentLines[:bodyHeight-1], "...")
		}
		for _, line := range contentLines {
			if lipgloss.Width(line) > innerWidth {
				line = clip(line, innerWidth)
			}
			lines = append(lines, line)
		}
	}

	for len(lines) < innerHeight-boolToInt(p.Footer != "") {
		lines = append(lines, "")
	}
	if p.Footer != "" {
		lines = append(lines, design.TextMutedStyle.Render(utils.TruncateString(p.Footer, innerWidth)))
	}
	if len(lines) > innerHeight {
		lines = lines[:innerHeight]
	}

	return style.
		Width(p.Width - style.GetHorizontalBorderSize()).
		Render(strings.Join(lines, "\n"))
}

// clip cuts a possibly styled line to width cells.
func clip(line string, width int) string {
	return lipgloss.NewStyle().MaxWidth(width).Render(line)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
