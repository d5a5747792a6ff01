package tui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/julianknutsen/elmassets/internal/style"
)

var colorSel = lipgloss.AdaptiveColor{Light: "#e8e8e8", Dark: "#1a1f29"}

var (
	styleTitle   = style.Bold
	styleDim     = style.Dim
	styleFail    = style.Error
	styleWarn    = style.Warning
	styleSpinner = style.Info

	styleBar = lipgloss.NewStyle().
			Background(colorSel).
			Foreground(style.ColorDim).
			Padding(0, 1)
)

// renderBar lays out left and right text across width.
func renderBar(width int, left, right string) string {
	if width <= 0 {
		return styleDim.Render(left + "  " + right)
	}
	gap := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return styleBar.Width(width).Render(fmt.Sprintf("%s%*s%s", left, gap, "", right))
}
