package analysis

import (
	"strings"

	"github.com/san-kum/meshmodel/internal/dynamo"
)

// Point is one (x, y) sample of a trajectory.
type Point struct{ X, Y float64 }

// Trace records psi against v at a single sample every tick. It satisfies
// sim.Observer.
type Trace struct {
	Row, Col int
	Max      int
	Points   []Point
}

func NewTrace(row, col int) *Trace {
	return &Trace{Row: row, Col: col, Max: 2000, Points: make([]Point, 0, 256)}
}

func (p *Trace) OnStep(fs *dynamo.FieldState, _ dynamo.EntityMode, _ int) {
	p.Points = append(p.Points, Point{X: fs.Psi.At(p.Row, p.Col), Y: fs.V.At(p.Row, p.Col)})
	if p.Max > 0 && len(p.Points) > p.Max {
		p.Points = p.Points[len(p.Points)-p.Max:]
	}
}

func (p *Trace) Reset() { p.Points = p.Points[:0] }

// PhasePortraitToASCII plots points on a width x height character grid with
// axes drawn where zero is visible.
func PhasePortraitToASCII(points []Point, width, height int) string {
	if len(points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = min(minX, p.X), max(maxX, p.X)
		minY, maxY = min(minY, p.Y), max(maxY, p.Y)
	}

	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	minY -= rangeY * 0.1
	rangeX *= 1.2
	rangeY *= 1.2

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for _, p := range points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	if minX <= 0 && minX+rangeX >= 0 {
		col := int(-minX / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && minY+rangeY >= 0 {
		row := height - 1 - int(-minY/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
