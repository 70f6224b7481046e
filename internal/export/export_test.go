package export

import (
	"bytes"
	"errors"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/san-kum/meshmodel/internal/analysis"
	"github.com/san-kum/meshmodel/internal/dynamo"
	"github.com/san-kum/meshmodel/internal/metrics"
	"github.com/san-kum/meshmodel/internal/physics"
	"github.com/san-kum/meshmodel/internal/sim"
	"github.com/san-kum/meshmodel/internal/viz"
)

func TestCanvasToSVG(t *testing.T) {
	if CanvasToSVG(nil, 2, "#fff") != "" {
		t.Error("nil canvas should give empty output")
	}
	c := viz.NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	svg := CanvasToSVG(c, 2, "#00ff00")
	if n := strings.Count(svg, "<circle"); n != 2 {
		t.Errorf("circles = %d", n)
	}
	if !strings.Contains(svg, `width="8" height="8"`) || !strings.Contains(svg, `cx="7.0" cy="7.0"`) {
		t.Errorf("unexpected geometry:\n%s", svg)
	}
}

func TestPhaseToSVG(t *testing.T) {
	if PhaseToSVG([]analysis.Point{{X: 1, Y: 1}}, 10, 10, "red") != "" {
		t.Error("single point should give empty output")
	}
	pts := []analysis.Point{{X: 0, Y: 0}, {X: 1, Y: 1}, {X: 2, Y: 0}}
	svg := PhaseToSVG(pts, 120, 60, "#ff00ff")
	if strings.Count(svg, " L") != 2 || !strings.Contains(svg, `stroke="#ff00ff"`) {
		t.Errorf("bad path:\n%s", svg)
	}
	if !strings.Contains(svg, "M10.0,55.0") {
		t.Errorf("first point not padded:\n%s", svg)
	}
}

func TestFieldCSV_RoundTrip(t *testing.T) {
	f := dynamo.NewField(3, 2)
	f.Set(0, 1, 0.25)
	f.Set(1, 2, -1.5)

	var buf bytes.Buffer
	if err := FieldCSV(&buf, f); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "0,0.25,0\n0,0,-1.5\n" {
		t.Errorf("csv = %q", got)
	}

	back, err := ReadFieldCSV(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(f) {
		t.Errorf("round trip = %v", back.Data)
	}
}

func TestReadFieldCSV_Errors(t *testing.T) {
	if _, err := ReadFieldCSV(strings.NewReader("")); !errors.Is(err, dynamo.ErrShapeMismatch) {
		t.Errorf("empty: %v", err)
	}
	if _, err := ReadFieldCSV(strings.NewReader("1,2\n3\n")); err == nil {
		t.Error("ragged rows should fail")
	}
	if _, err := ReadFieldCSV(strings.NewReader("1,x\n")); err == nil {
		t.Error("non-numeric cell should fail")
	}
}

func TestSnapshotCSV(t *testing.T) {
	g := dynamo.NewGrid(3, 2, 1, 1)
	fs := dynamo.NewFieldState(g)
	fs.TimeStep = 7
	fs.Psi.Set(1, 2, 2)

	var buf bytes.Buffer
	if err := SnapshotCSV(&buf, g, fs); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1+6 {
		t.Fatalf("lines = %d", len(lines))
	}
	if lines[0] != "t,i,j,x,y,psi,v,Phi,K" {
		t.Errorf("header = %q", lines[0])
	}
	if lines[6] != "7,1,2,1,1,2,0,0.5,0" {
		t.Errorf("last record = %q", lines[6])
	}

	other := dynamo.NewGrid(4, 4, 1, 1)
	if err := SnapshotCSV(&buf, other, fs); !errors.Is(err, dynamo.ErrShapeMismatch) {
		t.Errorf("mismatch: %v", err)
	}
}

func TestSnapshotJSON(t *testing.T) {
	g := dynamo.NewGrid(16, 12, 2, 1)
	s := sim.New(g, physics.NewWave())
	for _, m := range metrics.Defaults(s.Wave()) {
		s.AddMetric(m)
	}
	if _, err := s.Reset(dynamo.Particle); err != nil {
		t.Fatal(err)
	}
	s.Run(3)

	var buf bytes.Buffer
	if err := SnapshotJSON(&buf, s); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"entity": "particle"`) {
		t.Errorf("entity not encoded by name:\n%.200s", buf.String())
	}

	d, err := ReadSnapshotJSON(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if d.Entity != dynamo.Particle || d.TimeStep != 3 || d.Nx != 16 || d.Ny != 12 {
		t.Errorf("header = %+v", d)
	}
	if len(d.Metrics) != len(s.Metrics()) || d.Params["dt"] != s.Wave().Dt {
		t.Errorf("metrics %v params %v", d.Metrics, d.Params)
	}
	fs := s.State()
	for i := 0; i < g.Ny; i++ {
		for j := 0; j < g.Nx; j++ {
			if d.Psi[i][j] != fs.Psi.At(i, j) || d.Phi[i][j] != fs.Phi.At(i, j) {
				t.Fatalf("sample (%d, %d) differs", i, j)
			}
		}
	}
}

func TestSnapshotJSON_NonFinite(t *testing.T) {
	g := dynamo.NewGrid(8, 8, 1, 1)
	s := sim.New(g, physics.NewWave())
	s.State().Psi.Set(2, 2, math.NaN())
	if err := SnapshotJSON(io.Discard, s); !errors.Is(err, ErrNonFinite) {
		t.Errorf("err = %v", err)
	}
	if _, err := ReadSnapshotJSON(strings.NewReader(`{"ny": 3, "psi": [[1]]}`)); !errors.Is(err, dynamo.ErrShapeMismatch) {
		t.Errorf("shape: %v", err)
	}
}
