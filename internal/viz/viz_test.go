package viz

import (
	"fmt"
	"image/color"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/meshmodel/internal/dynamo"
	"github.com/san-kum/meshmodel/internal/sim"
)

func TestCanvas_SetAndClear(t *testing.T) {
	c := NewCanvas(4, 2)
	if pw, ph := c.PixelSize(); pw != 8 || ph != 8 {
		t.Fatalf("pixel size %dx%d", pw, ph)
	}

	c.Set(0, 0)
	c.Set(1, 3)
	if c.Grid[0][0] != rune(0x2800|0x1|0x80) {
		t.Errorf("cell = %U", c.Grid[0][0])
	}
	if !c.IsSet(1, 3) || c.IsSet(1, 2) {
		t.Error("IsSet disagrees with Set")
	}

	c.Set(-1, 0)
	c.Set(100, 100)

	c.Unset(0, 0)
	if c.IsSet(0, 0) {
		t.Error("Unset left pixel lit")
	}
	c.Clear()
	for _, row := range c.Grid {
		for _, r := range row {
			if r != 0x2800 {
				t.Fatalf("Clear left %U", r)
			}
		}
	}
}

func TestCanvas_DrawLine(t *testing.T) {
	c := NewCanvas(10, 3)
	c.DrawLine(0, 5, 19, 5)
	for x := 0; x < 20; x++ {
		if !c.IsSet(x, 5) {
			t.Fatalf("pixel %d not drawn", x)
		}
	}
	if lines := strings.Count(c.String(), "\n"); lines != 3 {
		t.Errorf("String has %d lines", lines)
	}
}

func TestCanvas_Image(t *testing.T) {
	c := NewCanvas(3, 2)
	c.Set(0, 0)
	img := c.Image(8, 16, color.White)
	if b := img.Bounds(); b.Dx() != 24 || b.Dy() != 32 {
		t.Fatalf("bounds %v", b)
	}
	if img.ColorIndexAt(0, 0) != 1 || img.ColorIndexAt(3, 3) != 1 {
		t.Error("lit dot should fill its 4x4 block")
	}
	if img.ColorIndexAt(4, 0) != 0 || img.ColorIndexAt(20, 20) != 0 {
		t.Error("unlit dots should stay background")
	}
}

func TestSurfaceWireframe(t *testing.T) {
	f := dynamo.NewField(5, 4)
	f.Set(2, 2, 1)

	wf := SurfaceWireframe(f, 10, 0.5)
	// 4 rows of 4 horizontal edges plus 3 rows of 5 vertical edges.
	if len(wf.Edges) != 4*4+3*5 {
		t.Fatalf("edges = %d", len(wf.Edges))
	}
	top := 0.0
	for _, e := range wf.Edges {
		top = math.Max(top, math.Max(e.Start.Y, e.End.Y))
		if math.Abs(e.Start.X) > 0.5 || math.Abs(e.Start.Z) > 0.5 {
			t.Fatalf("vertex outside unit square: %+v", e.Start)
		}
	}
	if math.Abs(top-0.5) > 1e-12 {
		t.Errorf("peak height = %v, want 0.5", top)
	}

	flat := SurfaceWireframe(dynamo.Full(6, 6, 0.5), 3, 1)
	if len(flat.Edges) != 2*3*2 {
		t.Errorf("sampled edges = %d", len(flat.Edges))
	}
	for _, e := range flat.Edges {
		if e.Start.Y != 0 || e.End.Y != 0 {
			t.Fatal("flat field should lie in the plane")
		}
	}
}

func TestRender3D_DrawsSurface(t *testing.T) {
	c := NewCanvas(20, 10)
	f := dynamo.NewField(8, 8)
	Render3D(c, SurfaceWireframe(f, 8, 0.3), NewCamera())
	if !strings.ContainsFunc(c.String(), func(r rune) bool { return r > 0x2800 && r <= 0x28ff }) {
		t.Error("nothing rendered")
	}
	Render3D(nil, nil, nil)
}

func TestHeatmapLevels(t *testing.T) {
	f := dynamo.NewField(4, 4)
	f.Set(0, 0, -1)
	f.Set(3, 3, 1)
	lv := HeatmapLevels(f, 4, 4)
	if lv[0][0] != 0 || lv[3][3] != 1 || lv[1][1] != 0.5 {
		t.Errorf("levels = %v", lv)
	}
	if got := HeatmapLevels(dynamo.Full(3, 3, 2), 2, 2); got[1][1] != 0 {
		t.Errorf("flat field level = %v", got[1][1])
	}
	if HeatmapLevels(f, 0, 3) != nil {
		t.Error("expected nil for empty target")
	}
	if lines := strings.Count(Heatmap(f, 6, 3, ThemeMinimal), "\n"); lines != 3 {
		t.Errorf("heatmap has %d lines", lines)
	}
}

func TestThemes(t *testing.T) {
	defer SetTheme("cyberpunk")

	if GetTheme("nope").Name != "cyberpunk" {
		t.Error("unknown theme should fall back")
	}
	SetTheme("sunset")
	if NextTheme().Name != "cyberpunk" {
		t.Error("NextTheme should wrap")
	}
	th := ThemeMinimal
	if th.Ramp(0) != th.Background || th.Ramp(1) != th.Accent || th.Ramp(math.NaN()) != th.Background {
		t.Error("ramp endpoints")
	}
	if got := lerpColor("#000000", "#ffffff", 0.5); got != "#7f7f7f" {
		t.Errorf("lerp = %s", got)
	}
}

func TestSparkline(t *testing.T) {
	plain := lipgloss.NewStyle()
	if got := Sparkline(nil, 5, plain); got != "─────" {
		t.Errorf("empty sparkline %q", got)
	}
	vals := make([]float64, 50)
	for i := range vals {
		vals[i] = float64(i)
	}
	got := []rune(Sparkline(vals, 10, plain))
	if len(got) != 10 || got[0] != '▁' || got[9] != '█' {
		t.Errorf("ramp sparkline %q", string(got))
	}
	if got := Sparkline([]float64{3, 3, 3}, 10, plain); got != "▁▁▁" {
		t.Errorf("flat sparkline %q", got)
	}
}

func TestPhiGauge(t *testing.T) {
	for _, tc := range []struct {
		frac   float64
		filled int
	}{
		{-0.5, 0},
		{0, 0},
		{0.5, 5},
		{1, 10},
		{3, 10},
	} {
		bar := PhiGauge(tc.frac, 10)
		if n := strings.Count(bar, "█"); n != tc.filled {
			t.Errorf("frac %v: %d filled cells, want %d", tc.frac, n, tc.filled)
		}
		if n := strings.Count(bar, "█") + strings.Count(bar, "░"); n != 10 {
			t.Errorf("frac %v: bar width %d", tc.frac, n)
		}
	}
}

func TestViewStyle_DistinctPerView(t *testing.T) {
	seen := map[string]dynamo.ViewMode{}
	for _, v := range dynamo.ViewModes() {
		c := fmt.Sprint(ViewStyle(v).GetForeground())
		if prev, ok := seen[c]; ok {
			t.Errorf("%s and %s share colour %s", prev, v, c)
		}
		seen[c] = v
	}
	if got, want := fmt.Sprint(ViewStyle(dynamo.ViewMode(9)).GetForeground()), fmt.Sprint(CurrentTheme.Primary); got != want {
		t.Errorf("unknown view colour %s, want theme primary %s", got, want)
	}
	if panel := HelpPanel("KEYS", "Q quit", dynamo.Curvature); !strings.Contains(panel, "KEYS") || !strings.Contains(panel, "Q quit") {
		t.Errorf("help panel %q", panel)
	}
}

func newTestModel() Model {
	s := sim.New(dynamo.NewGrid(24, 24, 2*math.Pi, 2*math.Pi), nil)
	return NewModel(s, 30)
}

func press(m Model, key string) Model {
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)})
	return next.(Model)
}

func TestModel_KeysDriveSession(t *testing.T) {
	m := newTestModel()

	m = press(m, "2")
	if m.session.Entity() != dynamo.Particle {
		t.Fatalf("entity = %v", m.session.Entity())
	}
	m = press(m, "v")
	if m.session.View() != dynamo.Curvature {
		t.Errorf("view = %v", m.session.View())
	}

	next, cmd := m.Update(TickMsg{})
	m = next.(Model)
	if cmd == nil {
		t.Error("tick should schedule the next frame")
	}
	if m.session.TimeStep() != 1 || len(m.peakHistory) != 1 {
		t.Errorf("timestep=%d history=%d", m.session.TimeStep(), len(m.peakHistory))
	}

	m = press(m, " ")
	if !m.session.Paused() {
		t.Fatal("space should pause")
	}
	next, _ = m.Update(TickMsg{})
	m = next.(Model)
	if m.session.TimeStep() != 1 {
		t.Error("paused tick advanced the session")
	}

	m = press(m, "r")
	if m.session.TimeStep() != 0 || len(m.peakHistory) != 0 {
		t.Error("reset should clear counter and history")
	}
}

func TestModel_CameraAndStyle(t *testing.T) {
	m := newTestModel()
	rx := m.camera.RotX
	m = press(m, "x")
	if m.camera.RotX <= rx {
		t.Error("x should rotate camera")
	}
	z := m.camera.Zoom
	m = press(m, "+")
	if m.camera.Zoom <= z {
		t.Error("+ should zoom in")
	}
	m = press(m, "m")
	if m.style != styleHeatmap {
		t.Error("m should switch to heatmap")
	}
	m = press(m, "?")
	if !strings.Contains(m.View(), "KEYS") {
		t.Error("help overlay missing")
	}
}

func TestModel_ViewShowsModes(t *testing.T) {
	m := newTestModel()
	m = press(m, "3")
	out := m.View()
	for _, want := range []string{"Higgs Decay", "Tension", "Decay"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestModel_Quit(t *testing.T) {
	m := newTestModel()
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c should quit")
	}
}

func TestModel_Recording(t *testing.T) {
	old := GIFPath
	GIFPath = filepath.Join(t.TempDir(), "rec.gif")
	defer func() { GIFPath = old }()

	m := newTestModel()
	m = press(m, "g")
	for i := 0; i < 3; i++ {
		next, _ := m.Update(TickMsg{})
		m = next.(Model)
	}
	if len(m.frames) != 3 {
		t.Fatalf("captured %d frames", len(m.frames))
	}
	m = press(m, "g")
	if m.recording || !strings.Contains(m.status, "saved 3 frames") {
		t.Errorf("status %q", m.status)
	}
}

func TestModel_RecordingStopsAtLimit(t *testing.T) {
	oldPath, oldMax := GIFPath, MaxGIFFrames
	GIFPath = filepath.Join(t.TempDir(), "long.gif")
	MaxGIFFrames = 4
	defer func() { GIFPath, MaxGIFFrames = oldPath, oldMax }()

	m := newTestModel()
	m = press(m, "g")
	for i := 0; i < MaxGIFFrames-1; i++ {
		next, _ := m.Update(TickMsg{})
		m = next.(Model)
	}
	if !m.recording || len(m.frames) != MaxGIFFrames-1 {
		t.Fatalf("recording %v with %d frames", m.recording, len(m.frames))
	}

	next, _ := m.Update(TickMsg{})
	m = next.(Model)
	if m.recording || m.frames != nil {
		t.Fatalf("recording should stop at %d frames, holding %d", MaxGIFFrames, len(m.frames))
	}
	if !strings.Contains(m.status, fmt.Sprintf("saved %d frames", MaxGIFFrames)) {
		t.Errorf("status %q", m.status)
	}
	if _, err := os.Stat(GIFPath); err != nil {
		t.Error(err)
	}
}
