package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/meshmodel/internal/dynamo"
	"github.com/san-kum/meshmodel/internal/physics"
)

// BifurcationPoint holds the distinct turning-point values of psi seen at
// the traced sample for one parameter value.
type BifurcationPoint struct {
	Param  float64
	Values []float64
}

// BifurcationSweep configures Bifurcation. Base supplies the parameters
// that are not swept; nil means the defaults.
type BifurcationSweep struct {
	Grid      *dynamo.Grid
	Base      *physics.Wave
	ParamName string
	ParamMin  float64
	ParamMax  float64
	Steps     int
	Row, Col  int
	Transient int
	Record    int
}

// Bifurcation sweeps a wave parameter. For each value it starts from a unit
// impulse at the grid centre, discards Transient ticks and then records the
// local maxima of psi at (Row, Col) over Record ticks, deduplicated to three
// decimals.
func Bifurcation(sw BifurcationSweep) ([]BifurcationPoint, error) {
	steps := sw.Steps
	if steps < 2 {
		steps = 2
	}
	paramStep := (sw.ParamMax - sw.ParamMin) / float64(steps-1)
	g := sw.Grid

	results := make([]BifurcationPoint, 0, steps)
	for i := 0; i < steps; i++ {
		param := sw.ParamMin + float64(i)*paramStep

		w := physics.NewWave()
		if sw.Base != nil {
			w.Dt, w.C0, w.Feedback = sw.Base.Dt, sw.Base.C0, sw.Base.Feedback
			w.PhiMin, w.PhiMax = sw.Base.PhiMin, sw.Base.PhiMax
			w.Laplacian = sw.Base.Laplacian
		}
		if err := w.SetParam(sw.ParamName, param); err != nil {
			return results, fmt.Errorf("%s=%g: %w", sw.ParamName, param, err)
		}

		fs := dynamo.NewFieldState(g)
		fs.Psi.Set(g.Ny/2, g.Nx/2, 1)
		for n := 0; n < sw.Transient; n++ {
			w.Step(g, fs)
		}

		values := make([]float64, 0, 32)
		seen := make(map[int64]bool)
		prev2, prev1 := math.NaN(), math.NaN()
		for n := 0; n < sw.Record; n++ {
			w.Step(g, fs)
			cur := fs.Psi.At(sw.Row, sw.Col)
			if prev1 > prev2 && prev1 > cur {
				key := int64(math.Round(prev1 * 1000))
				if !seen[key] {
					seen[key] = true
					values = append(values, prev1)
				}
			}
			prev2, prev1 = prev1, cur
		}

		results = append(results, BifurcationPoint{Param: param, Values: values})
	}
	return results, nil
}

// BifurcationToASCII plots every recorded value, one column per parameter.
func BifurcationToASCII(data []BifurcationPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	var minVal, maxVal float64
	found := false
	for _, p := range data {
		for _, v := range p.Values {
			if !found {
				minVal, maxVal = v, v
				found = true
				continue
			}
			minVal, maxVal = math.Min(minVal, v), math.Max(maxVal, v)
		}
	}
	if !found {
		return ""
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	for i, p := range data {
		col := min(i*width/len(data), width-1)
		for _, v := range p.Values {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height {
				canvas[row][col] = '•'
			}
		}
	}

	var b strings.Builder
	for _, row := range canvas {
		b.WriteString(string(row))
		b.WriteByte('\n')
	}
	return b.String()
}
