package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/meshmodel/internal/dynamo"
)

// MeshStyle sizes the 3D surface: Size is the world width of the square,
// Height multiplies field values and MaxLines caps the sampled rows and
// columns.
type MeshStyle struct {
	Size     float32
	Height   float32
	MaxLines int
}

func DefaultMeshStyle() MeshStyle {
	return MeshStyle{Size: 20, Height: 4, MaxLines: 64}
}

// MeshVertices places a sampled subset of f on the XZ plane with the value
// on Y. The result is indexed [row][col].
func MeshVertices(f dynamo.Field, st MeshStyle) [][]rl.Vector3 {
	rows := stride(f.Ny, st.MaxLines)
	cols := stride(f.Nx, st.MaxLines)
	out := make([][]rl.Vector3, len(rows))
	for ri, i := range rows {
		out[ri] = make([]rl.Vector3, len(cols))
		for ci, j := range cols {
			out[ri][ci] = rl.NewVector3(
				(float32(j)/float32(f.Nx-1)-0.5)*st.Size,
				float32(f.At(i, j))*st.Height,
				(float32(i)/float32(f.Ny-1)-0.5)*st.Size,
			)
		}
	}
	return out
}

func stride(n, k int) []int {
	step := 1
	if k > 1 && n > k {
		step = (n + k - 1) / k
	}
	out := make([]int, 0, n/step+1)
	for i := 0; i < n; i += step {
		out = append(out, i)
	}
	if out[len(out)-1] != n-1 {
		out = append(out, n-1)
	}
	return out
}

// MeshColor shades a value between ColTextDim at lo and ColSelect at hi.
func MeshColor(v, lo, hi float64) rl.Color {
	t := 0.0
	if hi > lo {
		t = (v - lo) / (hi - lo)
	}
	if !(t > 0) {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	mix := func(a, b uint8) uint8 { return uint8(float64(a) + t*(float64(b)-float64(a))) }
	return rl.NewColor(mix(ColTextDim.R, ColSelect.R), mix(ColTextDim.G, ColSelect.G), mix(ColTextDim.B, ColSelect.B), 255)
}

func (a *App) drawMesh() {
	f := a.Session.SelectField()
	lo, hi := f.Range()
	verts := MeshVertices(f, a.Mesh)
	h := float64(a.Mesh.Height)
	shade := func(p rl.Vector3) rl.Color { return MeshColor(float64(p.Y)/h, lo, hi) }

	for ri, row := range verts {
		for ci, p := range row {
			if ci+1 < len(row) {
				rl.DrawLine3D(p, row[ci+1], shade(p))
			}
			if ri+1 < len(verts) {
				rl.DrawLine3D(p, verts[ri+1][ci], shade(p))
			}
		}
	}
}

func (a *App) drawFloor(slices int, spacing float32) {
	half := float32(slices) * spacing / 2
	for i := -slices / 2; i <= slices/2; i++ {
		pos := float32(i) * spacing
		rl.DrawLine3D(rl.NewVector3(pos, 0, -half), rl.NewVector3(pos, 0, half), ColGrid)
		rl.DrawLine3D(rl.NewVector3(-half, 0, pos), rl.NewVector3(half, 0, pos), ColGrid)
	}
}

func (a *App) drawTelemetry() {
	if len(a.Telemetry) < 2 {
		return
	}
	rectX, rectY := 30, 600
	width, height := 400, 60

	minVal, maxVal := a.Telemetry[0], a.Telemetry[0]
	for _, v := range a.Telemetry {
		minVal = min(minVal, v)
		maxVal = max(maxVal, v)
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	points := make([]rl.Vector2, len(a.Telemetry))
	for i, val := range a.Telemetry {
		px := float32(rectX) + (float32(i)/float32(len(a.Telemetry)))*float32(width)
		norm := (val - minVal) / (maxVal - minVal)
		py := float32(rectY+height) - float32(norm)*float32(height)
		points[i] = rl.NewVector2(px, py)
	}

	rl.DrawLineStrip(points, ColAccent)
	label := fmt.Sprintf("max|%s|: %.3f", a.Session.View().FieldName(), a.Telemetry[len(a.Telemetry)-1])
	a.drawText(label, rectX+width+10, rectY+height-10, 14, ColText)
}
