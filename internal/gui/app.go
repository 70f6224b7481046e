package gui

import (
	"fmt"
	"os"
	"sort"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/san-kum/meshmodel/internal/dynamo"
	"github.com/san-kum/meshmodel/internal/sim"
)

// Monochrome palette shared by the HUD and the mesh ramp.
var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColGrid    = rl.NewColor(30, 30, 30, 255)
)

const (
	screenW      = 1280
	screenH      = 720
	maxTelemetry = 200
	fontPath     = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"
)

// keyBindings lists the raylib keys forwarded to sim.KeyEvent.
var keyBindings = []struct {
	key  int32
	name string
}{
	{rl.KeyOne, "1"}, {rl.KeyTwo, "2"}, {rl.KeyThree, "3"}, {rl.KeyFour, "4"}, {rl.KeyFive, "5"},
	{rl.KeyV, "v"}, {rl.KeyTab, "tab"},
	{rl.KeySpace, "space"}, {rl.KeyR, "r"},
	{rl.KeyF1, "f1"}, {rl.KeyF2, "f2"}, {rl.KeyF3, "f3"},
}

// App is the raylib front end: a 3D line mesh of the selected field, an
// entity selector panel, a telemetry strip and a wave parameter screen.
type App struct {
	Session *sim.Session
	Mesh    MeshStyle

	Camera       rl.Camera3D
	CamPosTarget rl.Vector3
	CamTgtTarget rl.Vector3

	InConfig  bool
	ParamKeys []string
	ParamSel  int

	Telemetry []float64
	Status    string
	Font      rl.Font
	quit      bool
}

func initWindow(fps int) {
	rl.InitWindow(screenW, screenH, "meshmodel")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// loadFont prefers Liberation Mono and falls back to raylib's built-in font.
func loadFont() rl.Font {
	if _, err := os.Stat(fontPath); err != nil {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(fontPath, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

// NewApp wraps s without touching the window, so it can be driven headless.
func NewApp(s *sim.Session) *App {
	keys := make([]string, 0)
	for k := range s.Wave().GetParams() {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	a := &App{
		Session:   s,
		Mesh:      DefaultMeshStyle(),
		ParamKeys: keys,
		Telemetry: make([]float64, 0, maxTelemetry),
	}
	a.resetCamera()
	return a
}

// Run opens a window and drives s until it is closed or Q is pressed.
func Run(s *sim.Session, fps int) error {
	initWindow(fps)
	defer rl.CloseWindow()
	if !rl.IsWindowReady() {
		return fmt.Errorf("gui: window could not be created")
	}
	app := NewApp(s)
	app.Font = loadFont()
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		a.Update()
		a.Draw()
	}
}

func (a *App) resetCamera() {
	a.Camera = rl.NewCamera3D(
		rl.NewVector3(0, 18, 26),
		rl.NewVector3(0, 0, 0),
		rl.NewVector3(0, 1, 0),
		45.0,
		rl.CameraPerspective,
	)
	a.CamPosTarget = a.Camera.Position
	a.CamTgtTarget = a.Camera.Target
}

// HandleKey applies the session event bound to name and reports whether
// one was bound.
func (a *App) HandleKey(name string) bool {
	ev, ok := sim.KeyEvent(name)
	if !ok {
		return false
	}
	if err := a.Session.Apply(ev); err != nil {
		a.Status = err.Error()
		return true
	}
	switch ev.(type) {
	case sim.EntityEvent, sim.ResetEvent:
		a.Telemetry = a.Telemetry[:0]
	}
	a.Status = ""
	return true
}

// SelectEntity is the click handler of the entity panel.
func (a *App) SelectEntity(m dynamo.EntityMode) {
	if err := a.Session.Apply(sim.EntityEvent{Mode: m}); err != nil {
		a.Status = err.Error()
		return
	}
	a.Telemetry = a.Telemetry[:0]
}

// AdjustParam nudges the selected wave parameter by delta.
func (a *App) AdjustParam(delta float64) {
	if len(a.ParamKeys) == 0 {
		return
	}
	key := a.ParamKeys[a.ParamSel]
	v := a.Session.Wave().GetParams()[key] + delta
	if err := a.Session.Wave().SetParam(key, v); err != nil {
		a.Status = err.Error()
		return
	}
	a.Status = ""
}

// Tick advances the session one frame and records the peak of the shown
// field.
func (a *App) Tick() {
	if a.Session.Paused() {
		return
	}
	a.Session.Step()
	a.Telemetry = append(a.Telemetry, a.Session.SelectField().MaxAbs())
	if len(a.Telemetry) > maxTelemetry {
		a.Telemetry = a.Telemetry[1:]
	}
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.quit = true
		return
	}
	if rl.IsKeyPressed(rl.KeyC) {
		a.InConfig = !a.InConfig
	}

	if a.InConfig {
		a.updateConfig()
		return
	}

	for _, b := range keyBindings {
		if rl.IsKeyPressed(b.key) {
			a.HandleKey(b.name)
		}
	}
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		mouse := rl.GetMousePosition()
		for i, m := range dynamo.EntityModes() {
			if rl.CheckCollisionPointRec(mouse, entityButton(i)) {
				a.SelectEntity(m)
			}
		}
	}

	a.Tick()
	a.updateCamera()
}

func (a *App) updateConfig() {
	if rl.IsKeyPressed(rl.KeyEscape) || rl.IsKeyPressed(rl.KeyEnter) {
		a.InConfig = false
		return
	}
	if len(a.ParamKeys) == 0 {
		return
	}
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.ParamSel = (a.ParamSel + 1) % len(a.ParamKeys)
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.ParamSel--
		if a.ParamSel < 0 {
			a.ParamSel = len(a.ParamKeys) - 1
		}
	}
	step := 0.01
	if rl.IsKeyDown(rl.KeyLeftShift) {
		step = 0.1
	}
	if rl.IsKeyPressed(rl.KeyRight) || rl.IsKeyPressed(rl.KeyL) {
		a.AdjustParam(step)
	}
	if rl.IsKeyPressed(rl.KeyLeft) || rl.IsKeyPressed(rl.KeyH) {
		a.AdjustParam(-step)
	}
}

func (a *App) updateCamera() {
	// Input moves the target; the camera follows with inertia.
	if rl.IsKeyDown(rl.KeyW) {
		a.CamPosTarget.Y += 0.5
	}
	if rl.IsKeyDown(rl.KeyS) {
		a.CamPosTarget.Y -= 0.5
	}
	if rl.IsKeyDown(rl.KeyA) {
		a.CamPosTarget.X -= 0.5
	}
	if rl.IsKeyDown(rl.KeyD) {
		a.CamPosTarget.X += 0.5
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		a.resetCamera()
	}
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		a.CamPosTarget.X -= delta.X * 0.1
		a.CamPosTarget.Y += delta.Y * 0.1
	}

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		zoom := wheel * 2.0
		diff := rl.Vector3Subtract(a.CamTgtTarget, a.CamPosTarget)
		if rl.Vector3Length(diff) > 5.0 || zoom < 0 {
			dir := rl.Vector3Normalize(diff)
			a.CamPosTarget = rl.Vector3Add(a.CamPosTarget, rl.Vector3Scale(dir, zoom))
		}
	}

	lerp := float32(5.0 * rl.GetFrameTime())
	if lerp > 1.0 {
		lerp = 1.0
	}
	a.Camera.Position = rl.Vector3Lerp(a.Camera.Position, a.CamPosTarget, lerp)
	a.Camera.Target = rl.Vector3Lerp(a.Camera.Target, a.CamTgtTarget, lerp)
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.InConfig {
		a.drawConfig()
	} else {
		rl.BeginMode3D(a.Camera)
		a.drawFloor(20, 1.0)
		a.drawMesh()
		rl.EndMode3D()
		a.drawHUD()
	}

	rl.EndDrawing()
}

func (a *App) drawHUD() {
	s := a.Session
	a.drawText("meshmodel", 30, 30, 24, ColSelect)
	a.drawText(fmt.Sprintf(":: %s / %s", s.Entity().Label(), s.View().Label()), 190, 34, 16, ColText)
	a.drawText(fmt.Sprintf("t=%d  ticks=%d", s.TimeStep(), s.Ticks()), 30, 64, 14, ColTextDim)
	if s.Entity() == dynamo.HiggsDecay && s.HiggsTriggered() {
		a.drawText("DECAYED", 30, 84, 14, ColAccent)
	}

	a.drawEntityPanel()
	a.drawTelemetry()

	status, col := "RUNNING", ColSelect
	if s.Paused() {
		status, col = "PAUSED", ColTextDim
	}
	a.drawText(status, 1150, 30, 16, col)
	if a.Status != "" {
		a.drawText(a.Status, 30, 560, 14, rl.Red)
	}

	a.drawText("[1-5] ENTITY  [V] VIEW  [SPACE] PAUSE  [R] RESET  [C] PARAMS  [Q] QUIT", 560, 680, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", rl.GetFPS()), 30, 680, 14, ColTextDim)
}

// entityButton is the screen rectangle of the i-th entity selector.
func entityButton(i int) rl.Rectangle {
	return rl.NewRectangle(1080, float32(120+i*34), 170, 28)
}

func (a *App) drawEntityPanel() {
	for i, m := range dynamo.EntityModes() {
		r := entityButton(i)
		col, mark := ColText, "( )"
		if m == a.Session.Entity() {
			col, mark = ColSelect, "(*)"
		}
		rl.DrawRectangleLinesEx(r, 1, ColGrid)
		a.drawText(fmt.Sprintf("%s %s", mark, m.Label()), int(r.X)+8, int(r.Y)+6, 16, col)
	}
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func (a *App) drawConfig() {
	a.drawText("meshmodel", 50, 50, 40, ColTextDim)
	a.drawText("wave parameters", 300, 65, 20, ColSelect)

	params := a.Session.Wave().GetParams()
	y := 140
	for i, key := range a.ParamKeys {
		line := fmt.Sprintf("%-10s %.3f", key, params[key])
		if i == a.ParamSel {
			a.drawText("> "+line, 50, y, 20, ColSelect)
		} else {
			a.drawText("  "+line, 50, y, 20, ColText)
		}
		y += 28
	}
	if a.Status != "" {
		a.drawText(a.Status, 50, y+20, 16, rl.Red)
	}
	a.drawText("ARROWS: ADJUST  SHIFT: COARSE  ENTER/ESC: BACK", 800, 680, 14, ColTextDim)
}
