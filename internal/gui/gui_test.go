package gui

import (
	"math"
	"testing"

	"github.com/san-kum/meshmodel/internal/dynamo"
	"github.com/san-kum/meshmodel/internal/sim"
)

func newTestApp() *App {
	return NewApp(sim.New(dynamo.NewGrid(20, 20, 2*math.Pi, 2*math.Pi), nil))
}

func TestApp_HandleKey(t *testing.T) {
	a := newTestApp()
	if a.HandleKey("q") {
		t.Error("q is handled by the window loop, not the session")
	}
	if !a.HandleKey("4") || a.Session.Entity() != dynamo.PhotonTrail {
		t.Fatalf("entity = %v", a.Session.Entity())
	}
	a.Tick()
	a.Tick()
	if len(a.Telemetry) != 2 || a.Session.TimeStep() != 2 {
		t.Fatalf("telemetry=%d t=%d", len(a.Telemetry), a.Session.TimeStep())
	}
	a.HandleKey("r")
	if len(a.Telemetry) != 0 || a.Session.TimeStep() != 0 {
		t.Error("reset should clear telemetry and counter")
	}
	a.HandleKey("space")
	a.Tick()
	if a.Session.Ticks() != 0 {
		t.Error("paused tick should not step")
	}
	a.HandleKey("f3")
	if a.Session.View() != dynamo.Coherence {
		t.Errorf("view = %v", a.Session.View())
	}
}

func TestApp_SelectEntity(t *testing.T) {
	a := newTestApp()
	a.SelectEntity(dynamo.EntangledPair)
	if a.Session.Entity() != dynamo.EntangledPair {
		t.Fatal("click did not switch entity")
	}
	a.SelectEntity(dynamo.EntityMode(9))
	if a.Status == "" || a.Session.Entity() != dynamo.EntangledPair {
		t.Error("invalid selection should report and keep mode")
	}
}

func TestApp_AdjustParam(t *testing.T) {
	a := newTestApp()
	if len(a.ParamKeys) != 3 || a.ParamKeys[0] != "c0" {
		t.Fatalf("params = %v", a.ParamKeys)
	}
	a.AdjustParam(0.5)
	if a.Session.Wave().C0 != 1.5 {
		t.Errorf("c0 = %v", a.Session.Wave().C0)
	}
	a.ParamSel = 1 // dt
	a.AdjustParam(-1)
	if a.Status == "" || a.Session.Wave().Dt != 0.05 {
		t.Error("non-positive dt should be rejected")
	}
}

func TestMeshVertices(t *testing.T) {
	f := dynamo.NewField(5, 3)
	f.Set(1, 4, 2)
	st := MeshStyle{Size: 10, Height: 3, MaxLines: 64}
	v := MeshVertices(f, st)
	if len(v) != 3 || len(v[0]) != 5 {
		t.Fatalf("shape %dx%d", len(v), len(v[0]))
	}
	if v[0][0].X != -5 || v[2][4].Z != 5 {
		t.Errorf("corners %v %v", v[0][0], v[2][4])
	}
	if v[1][4].Y != 6 {
		t.Errorf("height = %v", v[1][4].Y)
	}

	big := MeshVertices(dynamo.NewField(100, 100), MeshStyle{Size: 1, Height: 1, MaxLines: 30})
	if len(big) > 40 || len(big) < 25 {
		t.Errorf("sampled rows = %d", len(big))
	}
}

func TestStride(t *testing.T) {
	got := stride(10, 4)
	want := []int{0, 3, 6, 9}
	if len(got) != len(want) {
		t.Fatalf("stride = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("stride = %v", got)
		}
	}
	if s := stride(7, 3); s[len(s)-1] != 6 {
		t.Errorf("last index missing: %v", s)
	}
}

func TestMeshColor(t *testing.T) {
	if MeshColor(0, 0, 1) != ColTextDim {
		t.Error("low end")
	}
	if MeshColor(1, 0, 1) != ColSelect || MeshColor(5, 0, 1) != ColSelect {
		t.Error("high end")
	}
	if MeshColor(math.NaN(), 0, 1) != ColTextDim || MeshColor(3, 3, 3) != ColTextDim {
		t.Error("degenerate input")
	}
}

func TestEntityButtonsDoNotOverlap(t *testing.T) {
	for i := 1; i < len(dynamo.EntityModes()); i++ {
		prev, cur := entityButton(i-1), entityButton(i)
		if prev.Y+prev.Height > cur.Y {
			t.Errorf("button %d overlaps %d", i, i-1)
		}
	}
}
