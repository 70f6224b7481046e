package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/san-kum/meshmodel/internal/dynamo"
	"github.com/san-kum/meshmodel/internal/physics"
)

func TestSpectrum_PureTone(t *testing.T) {
	tests := []struct {
		n, cycles int
	}{
		{64, 8}, {100, 3}, {99, 10},
	}
	for _, tt := range tests {
		data := make([]float64, tt.n)
		for i := range data {
			data[i] = math.Cos(2 * math.Pi * float64(tt.cycles*i) / float64(tt.n))
		}
		ps := Spectrum(data)
		if len(ps) != tt.n/2 {
			t.Errorf("n=%d: %d bins, want %d", tt.n, len(ps), tt.n/2)
		}
		if got := DominantBin(ps); got != tt.cycles {
			t.Errorf("n=%d: dominant bin %d, want %d", tt.n, got, tt.cycles)
		}
		if math.Abs(ps[tt.cycles]-float64(tt.n)/2) > 1e-6 {
			t.Errorf("n=%d: peak magnitude %v, want %v", tt.n, ps[tt.cycles], float64(tt.n)/2)
		}
	}
}

func TestSpectrum_Short(t *testing.T) {
	if got := Spectrum([]float64{1}); len(got) != 0 {
		t.Errorf("expected empty spectrum, got %v", got)
	}
	if DominantBin(nil) != 0 {
		t.Error("DominantBin(nil) should be 0")
	}
}

func TestRowSpectrum_Wraps(t *testing.T) {
	f := dynamo.NewField(16, 4)
	for j := 0; j < 16; j++ {
		f.Set(3, j, math.Sin(2*math.Pi*2*float64(j)/16))
	}
	if got := DominantBin(RowSpectrum(f, -1)); got != 2 {
		t.Errorf("row -1 dominant bin %d, want 2", got)
	}
}

func TestLocalMaxima(t *testing.T) {
	f := dynamo.NewField(10, 10)
	f.Set(2, 3, 1.0)
	f.Set(7, 7, 2.0)
	f.Set(0, 0, 0.2)
	// A plateau is not a strict maximum.
	f.Set(5, 0, 0.9)
	f.Set(5, 1, 0.9)

	peaks := LocalMaxima(f, 0.5)
	if len(peaks) != 2 {
		t.Fatalf("got %d peaks, want 2: %+v", len(peaks), peaks)
	}
	if peaks[0] != (Peak{Row: 7, Col: 7, Value: 2}) || peaks[1] != (Peak{Row: 2, Col: 3, Value: 1}) {
		t.Errorf("peaks = %+v", peaks)
	}

	if got := LocalMaxima(f, 0); len(got) != 3 {
		t.Errorf("with no floor got %d peaks, want 3", len(got))
	}
}

func TestLocalMaxima_PeriodicEdge(t *testing.T) {
	f := dynamo.NewField(6, 6)
	f.Set(0, 5, 1)
	f.Set(0, 0, 0.5) // neighbour across the seam
	peaks := LocalMaxima(f, 0.1)
	if len(peaks) != 1 || peaks[0].Col != 5 {
		t.Errorf("peaks = %+v", peaks)
	}
}

func TestTrace(t *testing.T) {
	g := dynamo.NewGrid(8, 8, 1, 1)
	fs := dynamo.NewFieldState(g)
	p := NewTrace(2, 3)
	p.Max = 3

	for i := 0; i < 5; i++ {
		fs.Psi.Set(2, 3, float64(i))
		fs.V.Set(2, 3, -float64(i))
		p.OnStep(fs, dynamo.Wave, i)
	}
	if len(p.Points) != 3 {
		t.Fatalf("kept %d points, want 3", len(p.Points))
	}
	if p.Points[0] != (Point{2, -2}) || p.Points[2] != (Point{4, -4}) {
		t.Errorf("points = %v", p.Points)
	}

	art := PhasePortraitToASCII(p.Points, 20, 10)
	if lines := strings.Split(strings.TrimRight(art, "\n"), "\n"); len(lines) != 10 {
		t.Errorf("plot has %d lines, want 10", len(lines))
	}
	if strings.Count(art, "•") != 3 {
		t.Errorf("expected 3 plotted points:\n%s", art)
	}

	p.Reset()
	if PhasePortraitToASCII(p.Points, 20, 10) != "" {
		t.Error("empty trace should render nothing")
	}
}

func TestDivergenceRate(t *testing.T) {
	g := dynamo.NewGrid(24, 24, 2*math.Pi, 2*math.Pi)
	w := physics.NewWave()
	start := dynamo.NewFieldState(g)
	start.Psi.Set(12, 12, 1)
	before := start.Clone()

	if DivergenceRate(g, w, start, 12, 12, 1e-6, 0) != 0 {
		t.Error("no ticks should give 0")
	}
	if DivergenceRate(g, w, start, 12, 12, 0, 10) != 0 {
		t.Error("no perturbation should give 0")
	}

	r1 := DivergenceRate(g, w, start, 6, 6, 1e-6, 80)
	r2 := DivergenceRate(g, w, start, 6, 6, 1e-6, 80)
	if math.IsNaN(r1) || math.IsInf(r1, 0) {
		t.Fatalf("rate = %v", r1)
	}
	if r1 != r2 {
		t.Errorf("rate not deterministic: %v vs %v", r1, r2)
	}
	if !start.Equal(before) {
		t.Error("start was modified")
	}
}

func TestBifurcation(t *testing.T) {
	g := dynamo.NewGrid(24, 24, 2*math.Pi, 2*math.Pi)
	res, err := Bifurcation(BifurcationSweep{
		Grid: g, ParamName: "feedback", ParamMin: 0, ParamMax: 0.01, Steps: 3,
		Row: 12, Col: 12, Transient: 10, Record: 150,
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(res) != 3 || res[1].Param != 0.005 {
		t.Fatalf("res = %+v", res)
	}
	for _, p := range res {
		for _, v := range p.Values {
			if math.IsNaN(v) {
				t.Fatalf("param %v recorded NaN", p.Param)
			}
		}
	}

	if _, err := Bifurcation(BifurcationSweep{Grid: g, ParamName: "dt", ParamMin: -1, ParamMax: 1, Steps: 2}); err == nil {
		t.Error("negative dt should fail")
	}
}

func TestBifurcationToASCII(t *testing.T) {
	if BifurcationToASCII(nil, 10, 5) != "" {
		t.Error("empty data")
	}
	if BifurcationToASCII([]BifurcationPoint{{Param: 1}}, 10, 5) != "" {
		t.Error("no values")
	}
	data := []BifurcationPoint{
		{Param: 0, Values: []float64{0}},
		{Param: 1, Values: []float64{0, 1}},
	}
	out := BifurcationToASCII(data, 4, 3)
	rows := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(rows) != 3 {
		t.Fatalf("rows = %d", len(rows))
	}
	if []rune(rows[2])[0] != '•' || []rune(rows[0])[2] != '•' || []rune(rows[2])[2] != '•' {
		t.Errorf("plot:\n%s", out)
	}
	if strings.Count(out, "•") != 3 {
		t.Errorf("dots = %d", strings.Count(out, "•"))
	}
}
