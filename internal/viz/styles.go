package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/meshmodel/internal/dynamo"
)

var (
	StatusRunning   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	StatusPaused    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
	StatusRecording = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff4444")).Blink(true)

	MetricLabel = lipgloss.NewStyle().Foreground(lipgloss.Color("#888899")).Width(12)
	MetricValue = lipgloss.NewStyle().Foreground(lipgloss.Color("#00ccff")).Bold(true)
	KeyHint     = lipgloss.NewStyle().Foreground(lipgloss.Color("#666688")).Italic(true)
)

// viewColors tints everything that belongs to the displayed field: the title,
// the view row and the energy sparkline.
var viewColors = map[dynamo.ViewMode]lipgloss.Color{
	dynamo.Tension:   "#ff7744",
	dynamo.Curvature: "#44aaff",
	dynamo.Coherence: "#bb66ff",
}

// ViewStyle is the bold foreground style for view v. Unknown views fall back
// to the theme's primary colour.
func ViewStyle(v dynamo.ViewMode) lipgloss.Style {
	c, ok := viewColors[v]
	if !ok {
		c = CurrentTheme.Primary
	}
	return lipgloss.NewStyle().Bold(true).Foreground(c)
}

// phiBands colours the Phi gauge: near PhiMin the field is loose, near
// PhiMax it is pinned at the clamp.
var phiBands = []struct {
	above float64
	color lipgloss.Color
}{
	{0.9, "#ff4444"},
	{0.5, "#00ff88"},
	{0.1, "#ffcc00"},
	{-1, "#666688"},
}

// PhiGauge renders frac, the mean of Phi scaled into [PhiMin, PhiMax], as a
// bar of width cells. frac is clamped to [0, 1].
func PhiGauge(frac float64, width int) string {
	frac = clamp01(frac)
	filled := int(frac*float64(width) + 0.5)
	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)

	c := phiBands[len(phiBands)-1].color
	for _, b := range phiBands {
		if frac > b.above {
			c = b.color
			break
		}
	}
	return lipgloss.NewStyle().Foreground(c).Render(bar)
}

var sparkGlyphs = []rune("▁▂▃▄▅▆▇█")

// Sparkline plots the last width values, scaled to their own range, in
// style. An empty series is a flat rule.
func Sparkline(values []float64, width int, style lipgloss.Style) string {
	if len(values) == 0 {
		return style.Render(strings.Repeat("─", width))
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}

	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		lo, hi = min(lo, v), max(hi, v)
	}
	span := hi - lo
	if span == 0 {
		span = 1
	}

	glyphs := make([]rune, len(values))
	top := float64(len(sparkGlyphs) - 1)
	for i, v := range values {
		glyphs[i] = sparkGlyphs[int(clamp01((v-lo)/span)*top)]
	}
	return style.Render(string(glyphs))
}

// HelpPanel frames body under title in a rounded border coloured by the
// current view.
func HelpPanel(title, body string, v dynamo.ViewMode) string {
	c, ok := viewColors[v]
	if !ok {
		c = CurrentTheme.Primary
	}
	heading := ViewStyle(v).Render(title)
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(c).
		Padding(0, 1).
		Render(heading + "\n\n" + body)
}

func clamp01(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	}
	return x
}
