package viz

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/linkfield/internal/counter"
	"github.com/san-kum/linkfield/internal/storage"
)

func newTestModel(t *testing.T) (Model, *storage.Memory) {
	t.Helper()
	st := storage.NewMemory()
	m, err := NewModel(Options{FPS: 30, Seed: 7, Store: st})
	if err != nil {
		t.Fatalf("NewModel failed: %v", err)
	}
	return m, st
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("unexpected model type %T", next)
	}
	return nm, cmd
}

func TestNewModelStartsAnimation(t *testing.T) {
	m, _ := newTestModel(t)
	if m.Field().Frames() != 1 {
		t.Errorf("expected first frame rendered on start, got %d", m.Field().Frames())
	}
	if m.Counter().Value() != counter.Default {
		t.Errorf("expected counter %d, got %d", counter.Default, m.Counter().Value())
	}
	if m.Init() == nil {
		t.Error("expected a tick command from Init")
	}
}

func TestTickPumpsFrames(t *testing.T) {
	m, _ := newTestModel(t)

	m, cmd := update(t, m, TickMsg(time.Now()))
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if m.Field().Frames() != 2 {
		t.Errorf("expected 2 frames, got %d", m.Field().Frames())
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m, _ = update(t, m, TickMsg(time.Now()))
	if m.Field().Frames() != 2 {
		t.Errorf("paused model advanced to %d frames", m.Field().Frames())
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	m, _ = update(t, m, TickMsg(time.Now()))
	if m.Field().Frames() != 3 {
		t.Errorf("resumed model should continue, got %d frames", m.Field().Frames())
	}
}

func TestWindowResize(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})

	if m.canvas.Width != 120-PanelWidth || m.canvas.Height != 39 {
		t.Errorf("unexpected canvas %dx%d", m.canvas.Width, m.canvas.Height)
	}
	w, h := m.Field().Size()
	cw, ch := m.canvas.Size()
	if w != cw || h != ch {
		t.Errorf("field %vx%v does not match canvas %vx%v", w, h, cw, ch)
	}

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 5, Height: 2})
	if m.canvas.Width != minCanvasCols || m.canvas.Height != minCanvasRows {
		t.Errorf("expected minimum canvas, got %dx%d", m.canvas.Width, m.canvas.Height)
	}
}

func TestSubmitKeyIncrementsAndPulses(t *testing.T) {
	m, st := newTestModel(t)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Counter().Value() != 606 {
		t.Fatalf("expected 606, got %d", m.Counter().Value())
	}
	if v, _, _ := st.Get(counter.Key); v != "606" {
		t.Errorf("expected persisted 606, got %q", v)
	}
	if cmd == nil {
		t.Fatal("expected a pulse timer command")
	}
	if m.badge.scale != counter.PulseScale {
		t.Errorf("expected pulse scale, got %v", m.badge.scale)
	}
	if !strings.Contains(m.View(), "6 0 6") {
		t.Error("pulsing count should render spaced out")
	}

	// The timer's message restores the scale.
	m, _ = update(t, m, pulseMsg{fn: func() { m.badge.SetScale(1) }})
	if m.badge.scale != 1 {
		t.Errorf("expected scale 1 after pulse, got %v", m.badge.scale)
	}
}

func TestMousePointer(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = update(t, m, tea.MouseMsg{X: 3, Y: 2, Action: tea.MouseActionMotion})
	p := m.Field().Pointer()
	wx, wy := CellCenter(3, 2)
	if !p.Present || p.X != wx || p.Y != wy {
		t.Errorf("expected pointer at %v,%v, got %+v", wx, wy, p)
	}

	m, _ = update(t, m, tea.MouseMsg{X: m.canvas.Width + 2, Y: 10, Action: tea.MouseActionMotion})
	if m.Field().Pointer().Present {
		t.Error("pointer over the panel should count as leaving the canvas")
	}

	m, _ = update(t, m, tea.MouseMsg{X: 1, Y: 1, Action: tea.MouseActionMotion})
	m, _ = update(t, m, tea.BlurMsg{})
	if m.Field().Pointer().Present {
		t.Error("blur should clear the pointer")
	}
}

func TestMouseClickOnButton(t *testing.T) {
	m, _ := newTestModel(t)
	press := tea.MouseMsg{X: m.canvas.Width + 4, Y: buttonTop + 1, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}

	m, _ = update(t, m, press)
	m, _ = update(t, m, press)
	if m.Counter().Value() != 607 {
		t.Errorf("expected 607 after two clicks, got %d", m.Counter().Value())
	}

	miss := press
	miss.Y = buttonTop + buttonHeight
	m, _ = update(t, m, miss)
	if m.Counter().Value() != 607 {
		t.Errorf("click below the button should not count, got %d", m.Counter().Value())
	}
}

func TestThemeCycleAndQuit(t *testing.T) {
	m, _ := newTestModel(t)
	first := m.theme.Name

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("t")})
	if m.theme.Name == first {
		t.Error("theme did not change")
	}

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}

func TestThemes(t *testing.T) {
	if GetTheme("nope").Name != ThemeMidnight.Name {
		t.Error("unknown theme should fall back to midnight")
	}
	if NextTheme(Themes[len(Themes)-1].Name).Name != Themes[0].Name {
		t.Error("theme cycle should wrap")
	}
	if len(ThemeNames()) != len(Themes) {
		t.Error("theme names mismatch")
	}
}
