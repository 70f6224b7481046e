package viz

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"os"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/meshmodel/internal/dynamo"
	"github.com/san-kum/meshmodel/internal/sim"
)

const (
	width           = 64
	height          = 24
	historyCapacity = 600
	surfaceLines    = 32
	gifCellW        = 8
	gifCellH        = 16
)

// GIFPath is where a recording is written when G is pressed a second time.
var GIFPath = "meshmodel.gif"

// MaxGIFFrames ends a recording and saves it once this many frames are held.
var MaxGIFFrames = historyCapacity

type renderStyle int

const (
	styleSurface renderStyle = iota
	styleHeatmap
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(lipgloss.Color("240")).Padding(1, 2).Width(46)
	graphStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

type TickMsg time.Time

// Model is the bubbletea front end of a sim.Session. It forwards mode and
// pause keys to the session and keeps the camera, history and recording
// state for itself.
type Model struct {
	session *sim.Session
	fps     int

	canvas   *Canvas
	camera   *Camera
	style    renderStyle
	frame    int
	showHelp bool
	status   string

	peakHistory   []float64
	energyHistory []float64

	recording bool
	frames    []*image.Paletted
}

func NewModel(s *sim.Session, fps int) Model {
	if fps <= 0 {
		fps = 30
	}
	return Model{
		session:       s,
		fps:           fps,
		canvas:        NewCanvas(width, height),
		camera:        NewCamera(),
		peakHistory:   make([]float64, 0, historyCapacity),
		energyHistory: make([]float64, 0, historyCapacity),
	}
}

// Run drives s in the terminal until the user quits.
func Run(s *sim.Session, fps int) error {
	p := tea.NewProgram(NewModel(s, fps))
	_, err := p.Run()
	return err
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	case TickMsg:
		m.advance()
		m.draw()
		if m.recording {
			m.frames = append(m.frames, m.canvas.Image(gifCellW, gifCellH, color.White))
			if len(m.frames) >= MaxGIFFrames {
				m.toggleRecording()
			}
		}
		return m, m.tick()
	}
	return m, nil
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "?":
		m.showHelp = !m.showHelp
	case "t":
		NextTheme()
	case "m":
		m.style = 1 - m.style
	case "g":
		m.toggleRecording()
	case "x":
		m.camera.RotateX(0.1)
	case "X":
		m.camera.RotateX(-0.1)
	case "y":
		m.camera.RotateY(0.1)
	case "Y":
		m.camera.RotateY(-0.1)
	case "z":
		m.camera.RotateZ(0.1)
	case "Z":
		m.camera.RotateZ(-0.1)
	case "+", "=":
		m.camera.ZoomIn()
	case "-", "_":
		m.camera.ZoomOut()
	default:
		ev, ok := sim.KeyEvent(key)
		if !ok {
			return m, nil
		}
		if err := m.session.Apply(ev); err != nil {
			m.status = err.Error()
			return m, nil
		}
		switch ev.(type) {
		case sim.EntityEvent, sim.ResetEvent:
			m.peakHistory = m.peakHistory[:0]
			m.energyHistory = m.energyHistory[:0]
		}
		m.status = ""
	}
	return m, nil
}

// advance steps the session once and records the histories. Nothing is
// recorded while paused.
func (m *Model) advance() {
	m.frame++
	if m.session.Paused() {
		return
	}
	fs := m.session.Step()
	m.peakHistory = pushCapped(m.peakHistory, m.session.SelectField().MaxAbs())
	m.energyHistory = pushCapped(m.energyHistory, m.session.Wave().Energy(m.session.Grid(), fs))
}

func pushCapped(h []float64, v float64) []float64 {
	h = append(h, v)
	if len(h) > historyCapacity {
		h = h[1:]
	}
	return h
}

func (m *Model) draw() {
	m.canvas.Clear()
	if m.style != styleSurface {
		return
	}
	wf := SurfaceWireframe(m.session.SelectField(), surfaceLines, 0.35)
	Render3D(m.canvas, wf, m.camera)
}

func (m *Model) toggleRecording() {
	if !m.recording {
		m.recording = true
		m.frames = make([]*image.Paletted, 0)
		return
	}
	m.recording = false
	if err := saveGIF(GIFPath, m.frames, m.fps); err != nil {
		m.status = "gif: " + err.Error()
	} else if len(m.frames) > 0 {
		m.status = fmt.Sprintf("saved %d frames to %s", len(m.frames), GIFPath)
	}
	m.frames = nil
}

func saveGIF(path string, frames []*image.Paletted, fps int) error {
	if len(frames) == 0 {
		return nil
	}
	delay := 100 / fps
	if delay < 1 {
		delay = 1
	}
	anim := gif.GIF{LoopCount: 0}
	for _, frame := range frames {
		anim.Image = append(anim.Image, frame)
		anim.Delay = append(anim.Delay, delay)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return gif.EncodeAll(f, &anim)
}

func (m Model) View() string {
	theme := CurrentTheme
	s := m.session
	field := s.SelectField()

	var left string
	if m.style == styleHeatmap {
		left = canvasStyle.Render(Heatmap(field, width, height, theme))
	} else {
		left = canvasStyle.Foreground(theme.Primary).Render(m.canvas.String())
	}

	var b strings.Builder
	view := ViewStyle(s.View())
	b.WriteString(view.Render("MESH MODEL") + "\n\n")

	switch {
	case m.recording:
		b.WriteString(StatusRecording.Render(fmt.Sprintf("● REC %d", len(m.frames))))
	case s.Paused():
		b.WriteString(StatusPaused.Render("PAUSED"))
	default:
		b.WriteString(StatusRunning.Render(string(pulse[m.frame%len(pulse)]) + " RUNNING"))
	}
	b.WriteString("\n\n")

	row := func(label, value string) {
		b.WriteString(MetricLabel.Render(label) + MetricValue.Render(value) + "\n")
	}
	row("Entity", s.Entity().Label())
	b.WriteString(MetricLabel.Render("View") + view.Render(fmt.Sprintf("%s (%s)", s.View().Label(), s.View().FieldName())) + "\n")
	row("TimeStep", fmt.Sprintf("%d", s.TimeStep()))
	row("Ticks", fmt.Sprintf("%d", s.Ticks()))
	if s.Entity() == dynamo.HiggsDecay {
		phase := "pending"
		if s.HiggsTriggered() {
			phase = "decayed"
		}
		row("Decay", phase)
	}

	metrics := s.Metrics()
	names := make([]string, 0, len(metrics))
	for name := range metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		row(name, fmt.Sprintf("%.4f", metrics[name]))
	}

	w := s.Wave()
	coh := (s.State().Phi.Mean() - w.PhiMin) / (w.PhiMax - w.PhiMin)
	b.WriteString("\n" + MetricLabel.Render("Phi") + PhiGauge(coh, 24) + "\n")

	if len(m.peakHistory) > 1 {
		chart := asciigraph.Plot(m.peakHistory, asciigraph.Height(4), asciigraph.Width(30),
			asciigraph.Caption("max |"+s.View().FieldName()+"|"))
		b.WriteString(graphStyle.Render(chart) + "\n")
	}
	b.WriteString(MetricLabel.Render("Energy") + Sparkline(m.energyHistory, 30, view) + "\n")

	if m.status != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(theme.Warning).Render(m.status) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(KeyHint.Render("1-5:Entity V:View SP:Pause R:Reset\nM:Style T:Theme G:Record ?:Help Q:Quit"))

	main := lipgloss.JoinHorizontal(lipgloss.Top, left, statsStyle.Render(b.String()))
	if m.showHelp {
		return HelpPanel("KEYS", helpText, s.View()) + "\n\n" + main
	}
	return main
}

var pulse = []rune("◐◓◑◒")

const helpText = `1-5      Wave, Particle, Higgs, Photon, Pair
V / Tab  Cycle view
F1-F3    Tension, Curvature, Coherence
Space    Pause / resume
R        Reset current entity
X Y Z    Rotate camera (shift reverses)
+ / -    Zoom
M        Surface / heatmap
T        Cycle theme
G        Toggle GIF recording
Q        Quit`
