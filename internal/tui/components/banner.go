package components

import (
	"fleetctl/internal/tui/design"
	"fleetctl/internal/tui/utils"
)

// RenderBanner renders the persistent connection error across width. It
// returns "" when there is no error.
func RenderBanner(text string, width int) string {
	if text == "" {
		return ""
	}
	inner := width - design.BannerStyle.GetHorizontalFrameSize()
	return design.BannerStyle.Width(width).Render(utils.TruncateString("⚠ "+text, inner))
}
