package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/shadelab/tui-smoother/internal/core"
)

// shadeStyles maps each shade to a lipgloss style on the ANSI-256
// grayscale ramp (codes 232..255), spreading the 16 shades over the 24
// available levels.
var shadeStyles = buildShadeStyles()

func buildShadeStyles() [int(core.MaxShade) + 1]lipgloss.Style {
	var styles [int(core.MaxShade) + 1]lipgloss.Style
	for s := range styles {
		code := 232 + (s*23+int(core.MaxShade)/2)/int(core.MaxShade)
		styles[s] = lipgloss.NewStyle().Foreground(lipgloss.Color(fmt.Sprintf("%d", code)))
	}
	return styles
}

// cellGlyph renders one cell two characters wide so cells come out roughly
// square in a terminal.
const cellGlyph = "██"

// RenderView converts a row-major shade view into a styled string.
// Groups adjacent cells with the same shade to minimize ANSI escape
// sequences, the same run-batching the platform uses for color output.
func RenderView(view []core.Shade, width int) string {
	if width < 1 || len(view) == 0 {
		return ""
	}
	height := len(view) / width

	var sb strings.Builder
	sb.Grow(len(view)*4 + height)

	for row := 0; row < height; row++ {
		if row > 0 {
			sb.WriteRune('\n')
		}

		col := 0
		for col < width {
			start := view[row*width+col]

			runLen := 0
			for col < width && view[row*width+col] == start {
				runLen++
				col++
			}

			sb.WriteString(shadeStyles[start].Render(strings.Repeat(cellGlyph, runLen)))
		}
	}
	return sb.String()
}
