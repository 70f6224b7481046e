package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/meshmodel/internal/config"
)

var (
	cyan    = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white   = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer  = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
	red     = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	magenta = lipgloss.NewStyle().Foreground(lipgloss.Color("213"))
)

var paramNames = []string{"nx", "ny", "dt", "c0", "feedback", "fps"}

// step sizes for left/right adjustment
var paramSteps = map[string]float64{
	"nx": 10, "ny": 10, "dt": 0.005, "c0": 0.1, "feedback": 0.005, "fps": 5,
}

type screen int

const (
	screenMenu screen = iota
	screenConfig
)

type model struct {
	screen  screen
	cursor  int
	presets []string
	cfg     *config.Config

	params      map[string]float64
	paramCursor int
	editing     bool
	editBuf     string
	err         error

	chosen *config.Config
}

// NewLauncher returns the preset picker. Choosing a preset leads to a
// parameter screen; starting from there ends the program with the
// edited configuration.
func NewLauncher() model {
	return model{
		screen:  screenMenu,
		presets: config.ListPresets(),
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch m.screen {
		case screenMenu:
			return m.menuKey(msg)
		case screenConfig:
			return m.configKey(msg)
		}
	}
	return m, nil
}

func (m model) menuKey(msg tea.KeyMsg) (model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.presets)-1 {
			m.cursor++
		}
	case "enter", " ":
		m.cfg = config.GetPreset(m.presets[m.cursor])
		m.params = paramsOf(m.cfg)
		m.paramCursor = 0
		m.err = nil
		m.screen = screenConfig
	}
	return m, nil
}

func (m model) configKey(msg tea.KeyMsg) (model, tea.Cmd) {
	name := paramNames[m.paramCursor]
	if m.editing {
		switch msg.String() {
		case "enter":
			if v, err := strconv.ParseFloat(m.editBuf, 64); err == nil {
				m.params[name] = v
			}
			m.editing = false
			m.editBuf = ""
		case "esc":
			m.editing = false
			m.editBuf = ""
		case "backspace":
			if len(m.editBuf) > 0 {
				m.editBuf = m.editBuf[:len(m.editBuf)-1]
			}
		default:
			if len(msg.String()) == 1 {
				c := msg.String()[0]
				if (c >= '0' && c <= '9') || c == '.' || c == '-' || c == 'e' {
					m.editBuf += string(c)
				}
			}
		}
		return m, nil
	}

	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		m.screen = screenMenu
	case "up", "k":
		if m.paramCursor > 0 {
			m.paramCursor--
		}
	case "down", "j":
		if m.paramCursor < len(paramNames)-1 {
			m.paramCursor++
		}
	case "enter", " ":
		m.editing = true
		m.editBuf = strconv.FormatFloat(m.params[name], 'g', -1, 64)
	case "left", "h":
		m.params[name] -= paramSteps[name]
	case "right", "l":
		m.params[name] += paramSteps[name]
	case "s":
		cfg := *m.cfg
		apply(&cfg, m.params)
		if err := cfg.Validate(); err != nil {
			m.err = err
			return m, nil
		}
		m.chosen = &cfg
		return m, tea.Quit
	}
	return m, nil
}

func paramsOf(c *config.Config) map[string]float64 {
	return map[string]float64{
		"nx":       float64(c.Grid.Nx),
		"ny":       float64(c.Grid.Ny),
		"dt":       c.Wave.Dt,
		"c0":       c.Wave.C0,
		"feedback": c.Wave.Feedback,
		"fps":      float64(c.FPS),
	}
}

func apply(c *config.Config, p map[string]float64) {
	c.Grid.Nx = int(p["nx"])
	c.Grid.Ny = int(p["ny"])
	c.Wave.Dt = p["dt"]
	c.Wave.C0 = p["c0"]
	c.Wave.Feedback = p["feedback"]
	c.FPS = int(p["fps"])
}

func describe(c *config.Config) string {
	return fmt.Sprintf("%dx%d  %s  %s", c.Grid.Nx, c.Grid.Ny, c.Entity.Label(), c.View.Label())
}

func (m model) View() string {
	if m.screen == screenConfig {
		return m.viewConfig()
	}
	return m.viewMenu()
}

func (m model) viewMenu() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("         " + cyan.Render("m e s h m o d e l") + "\n")
	b.WriteString(dimmer.Render("    ╺━━━━━━━━━━━━━━━━━━━━━━━━╸") + "\n")
	b.WriteString("\n")

	for i, name := range m.presets {
		desc := describe(config.GetPreset(name))
		if i == m.cursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-12s", name)) + dim.Render(desc) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-12s", name)) + dimmer.Render(desc) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select   enter configure   q quit") + "\n")
	return b.String()
}

func (m model) viewConfig() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("      " + cyan.Render(m.presets[m.cursor]) + "  " + dim.Render(describe(m.cfg)) + "\n")
	b.WriteString(dimmer.Render("      "+strings.Repeat("─", 30)) + "\n\n")

	for i, name := range paramNames {
		val := fmt.Sprintf("%8.3f", m.params[name])
		if m.editing && i == m.paramCursor {
			val = fmt.Sprintf("%8s", m.editBuf+"▋")
		}
		if i == m.paramCursor {
			b.WriteString("      " + cyan.Render("▸ ") + white.Render(fmt.Sprintf("%-10s", name)) + magenta.Render(val) + "\n")
		} else {
			b.WriteString("        " + dim.Render(fmt.Sprintf("%-10s", name)) + dim.Render(val) + "\n")
		}
	}

	if m.err != nil {
		b.WriteString("\n      " + red.Render(m.err.Error()) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(dim.Render("      ↑↓ select  ←→ adjust  enter edit  s start  esc back") + "\n")
	return b.String()
}

// RunLauncher shows the picker and returns the chosen configuration, or
// nil when the user quit without starting.
func RunLauncher() (*config.Config, error) {
	p := tea.NewProgram(NewLauncher(), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	return final.(model).chosen, nil
}
