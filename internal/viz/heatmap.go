package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/meshmodel/internal/dynamo"
)

var shades = []rune{' ', '░', '▒', '▓', '█'}

// HeatmapLevels samples f onto a w x h cell grid and normalises every
// sample to [0, 1] against the field's own range. A flat field maps to 0.
func HeatmapLevels(f dynamo.Field, w, h int) [][]float64 {
	if w <= 0 || h <= 0 || f.Len() == 0 {
		return nil
	}
	lo, hi := f.Range()
	span := hi - lo
	out := make([][]float64, h)
	for r := range out {
		out[r] = make([]float64, w)
		i := r * f.Ny / h
		for c := range out[r] {
			j := c * f.Nx / w
			if span > 1e-12 {
				out[r][c] = (f.At(i, j) - lo) / span
			}
		}
	}
	return out
}

// Heatmap renders f as shaded, theme coloured character cells.
func Heatmap(f dynamo.Field, w, h int, theme Theme) string {
	levels := HeatmapLevels(f, w, h)
	var b strings.Builder
	for _, row := range levels {
		for _, v := range row {
			k := int(v * float64(len(shades)-1))
			style := lipgloss.NewStyle().Foreground(theme.Ramp(v))
			b.WriteString(style.Render(string(shades[k])))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
