package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/meshmodel/internal/dynamo"
)

func send(t *testing.T, m model, msgs ...tea.KeyMsg) (model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(model)
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }

var (
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	right = tea.KeyMsg{Type: tea.KeyRight}
	bksp  = tea.KeyMsg{Type: tea.KeyBackspace}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func TestLauncher_Start(t *testing.T) {
	m := NewLauncher()
	if m.presets[0] != "coarse" {
		t.Fatalf("presets = %v", m.presets)
	}
	if !strings.Contains(m.View(), "coarse") {
		t.Error("menu should list presets")
	}

	m, _ = send(t, m, enter)
	if m.screen != screenConfig || m.params["nx"] != 50 {
		t.Fatalf("screen %v params %v", m.screen, m.params)
	}

	m, _ = send(t, m, right, down, down, enter)
	if !m.editing {
		t.Fatal("enter should start editing")
	}
	for range 10 {
		m, _ = send(t, m, bksp)
	}
	m, _ = send(t, m, runes("0"), runes("."), runes("0"), runes("2"), enter)
	if m.params["dt"] != 0.02 {
		t.Errorf("dt = %v", m.params["dt"])
	}

	m, cmd := send(t, m, runes("s"))
	if cmd == nil || m.chosen == nil {
		t.Fatal("start should quit with a config")
	}
	if m.chosen.Grid.Nx != 60 || m.chosen.Grid.Ny != 50 || m.chosen.Wave.Dt != 0.02 || m.chosen.FPS != 30 {
		t.Errorf("chosen = %+v", m.chosen)
	}
	if m.cfg.Grid.Nx != 50 {
		t.Error("preset copy was modified")
	}
}

func TestLauncher_RejectsInvalid(t *testing.T) {
	m, _ := send(t, NewLauncher(), down, down, down, down, enter)
	if m.cfg.Entity != dynamo.HiggsDecay {
		t.Fatalf("entity = %v", m.cfg.Entity)
	}
	m, _ = send(t, m, down, down, enter)
	for range 10 {
		m, _ = send(t, m, bksp)
	}
	m, _ = send(t, m, runes("-"), runes("1"), enter)

	m, cmd := send(t, m, runes("s"))
	if cmd != nil || m.chosen != nil {
		t.Fatal("invalid dt should not start")
	}
	if !errors.Is(m.err, dynamo.ErrParameterBounds) {
		t.Errorf("err = %v", m.err)
	}
	if !strings.Contains(m.View(), m.err.Error()) {
		t.Error("error should be shown")
	}

	m, _ = send(t, m, esc)
	if m.screen != screenMenu {
		t.Error("esc should return to the menu")
	}
	_, cmd = send(t, m, runes("q"))
	if cmd == nil {
		t.Error("q should quit from the menu")
	}
}
