package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fleetctl/internal/tui/design"
	"fleetctl/internal/tui/utils"
)

// Header is the top bar: title and optional spinner on the left, free text
// on the right.
type Header struct {
	Title        string
	SpinnerView  string
	RightContent string
	Width        int
}

// NewHeader creates a header.
func NewHeader(title string) *Header {
	return &Header{Title: title, Width: 80}
}

// WithSpinner shows a spinner frame after the title.
func (h *Header) WithSpinner(spinnerView string) *Header {
	h.SpinnerView = spinnerView
	return h
}

// WithRightContent sets the right-aligned text.
func (h *Header) WithRightContent(content string) *Header {
	h.RightContent = content
	return h
}

// WithWidth sets the total width.
func (h *Header) WithWidth(width int) *Header {
	h.Width = width
	return h
}

// Render returns the styled header.
func (h *Header) Render() string {
	left := h.Title
	if h.SpinnerView != "" {
		left += " " + h.SpinnerView
	}

	inner := h.Width - design.HeaderStyle.GetHorizontalFrameSize()
	if inner < 1 {
		inner = 1
	}

	content := left
	if h.RightContent != "" {
		gap := inner - lipgloss.Width(left) - lipgloss.Width(h.RightContent)
		if gap >= 1 {
			content = left + strings.Repeat(" ", gap) + design.SubtitleStyle.Render(h.RightContent)
		}
	}
	if lipgloss.Width(content) > inner {
		content = utils.TruncateString(left, inner)
	}

	return design.HeaderStyle.Width(h.Width).Render(content)
}
