package viz

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/linkfield/internal/counter"
	"github.com/san-kum/linkfield/internal/field"
	"github.com/san-kum/linkfield/internal/metrics"
)

const (
	width           = 80
	height          = 24
	historyCapacity = 120
	minCanvasCols   = 10
	minCanvasRows   = 4
	defaultFPS      = 30
)

type TickMsg time.Time

// pulseMsg brings a counter timer back onto the update loop.
type pulseMsg struct{ fn func() }

// badge displays the counter.
type badge struct {
	text  string
	scale float64
}

func (b *badge) SetText(text string)    { b.text = text }
func (b *badge) SetScale(scale float64) { b.scale = scale }

// button is the counter's submit control.
type button struct{ click func() }

func (b *button) OnClick(fn func()) { b.click = fn }

func (b *button) press() bool {
	if b.click == nil {
		return false
	}
	b.click()
	return true
}

// timers collects AfterFunc requests made while handling a message so Update
// can hand them to bubbletea as commands.
type timers struct{ cmds []tea.Cmd }

func (t *timers) after(d time.Duration, fn func()) {
	t.cmds = append(t.cmds, tea.Tick(d, func(time.Time) tea.Msg { return pulseMsg{fn: fn} }))
}

func (t *timers) drain() tea.Cmd {
	if len(t.cmds) == 0 {
		return nil
	}
	cmd := tea.Batch(t.cmds...)
	t.cmds = nil
	return cmd
}

// Options configures the terminal view.
type Options struct {
	FPS   int
	Seed  int64 // 0 seeds from the clock
	Theme string
	Store counter.Store
	Key   string
}

// Model is the terminal host: the canvas on the left, counter and frame
// metrics on the right. Every tick pumps the field's frame scheduler.
type Model struct {
	field   *field.Field
	anim    *field.Animator
	sched   *field.QueueScheduler
	canvas  *Canvas
	metrics *metrics.Set
	counter *counter.Widget
	badge   *badge
	button  *button
	timers  *timers

	keys   keyMap
	help   help.Model
	theme  Theme
	styles styles

	frameDelay    time.Duration
	width, height int
	running       bool
	showHelp      bool
}

// NewModel sizes the canvas for an 80x24 terminal until the first
// WindowSizeMsg arrives, then starts the animation.
func NewModel(opts Options) (Model, error) {
	fps := opts.FPS
	if fps <= 0 {
		fps = defaultFPS
	}

	canvas := NewCanvas(width-PanelWidth, height-1)
	var rng field.Rand
	if opts.Seed != 0 {
		rng = rand.New(rand.NewSource(opts.Seed))
	}
	w, h := canvas.Size()
	f, err := field.New(w, h, rng)
	if err != nil {
		return Model{}, err
	}

	sched := &field.QueueScheduler{}
	anim, err := field.NewAnimator(f, canvas, sched)
	if err != nil {
		return Model{}, err
	}
	set := metrics.Default(historyCapacity)
	anim.AddObserver(set)

	theme := GetTheme(opts.Theme)
	m := Model{
		field:      f,
		anim:       anim,
		sched:      sched,
		canvas:     canvas,
		metrics:    set,
		badge:      &badge{scale: 1},
		button:     &button{},
		timers:     &timers{},
		keys:       newKeyMap(),
		help:       help.New(),
		theme:      theme,
		styles:     newStyles(theme),
		frameDelay: time.Second / time.Duration(fps),
		width:      width,
		height:     height,
		running:    true,
	}

	var copts []counter.Option
	if opts.Key != "" {
		copts = append(copts, counter.WithKey(opts.Key))
	}
	// Both elements are always present here; Mount logs anything else.
	m.counter, _ = counter.Mount(m.badge, m.button, opts.Store, m.timers.after, copts...)

	anim.Start()
	return m, nil
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.frameDelay, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m Model) Init() tea.Cmd { return m.tick() }

// Update handles input events and advances the animation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Submit):
			m.button.press()
		case key.Matches(msg, m.keys.Pause):
			m.running = !m.running
		case key.Matches(msg, m.keys.Theme):
			m.theme = NextTheme(m.theme.Name)
			m.styles = newStyles(m.theme)
		case key.Matches(msg, m.keys.Clear):
			m.canvas.Clear()
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
		}
	case tea.MouseMsg:
		m.mouse(msg)
	case tea.BlurMsg:
		m.field.PointerLeave()
	case pulseMsg:
		msg.fn()
	case TickMsg:
		if m.running {
			m.sched.Pump()
		}
		return m, tea.Batch(m.timers.drain(), m.tick())
	}
	return m, m.timers.drain()
}

func (m *Model) resize(w, h int) {
	m.width, m.height = w, h
	m.canvas.Resize(max(w-PanelWidth, minCanvasCols), max(h-1, minCanvasRows))
	m.field.Resize(m.canvas.Size())
	m.help.Width = w
}

func (m *Model) mouse(msg tea.MouseMsg) {
	if m.onCanvas(msg.X, msg.Y) {
		m.field.PointerMove(CellCenter(msg.X, msg.Y))
	} else {
		m.field.PointerLeave()
	}
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft && m.onButton(msg.X, msg.Y) {
		m.button.press()
	}
}

func (m Model) onCanvas(x, y int) bool {
	return x >= 0 && y >= 0 && x < m.canvas.Width && y < m.canvas.Height
}

func (m Model) onButton(x, y int) bool {
	return x >= m.canvas.Width && x < m.canvas.Width+PanelWidth &&
		y >= buttonTop && y < buttonTop+buttonHeight
}

// Counter exposes the widget for hosts that want to reset it.
func (m Model) Counter() *counter.Widget { return m.counter }

func (m Model) Field() *field.Field { return m.field }

// View renders the TUI interface.
func (m Model) View() string {
	canvasView := strings.TrimSuffix(m.canvas.Render(m.theme.Background), "\n")
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, m.panel())
	return mainView + "\n" + m.help.ShortHelpView(m.keys.ShortHelp())
}

func (m Model) panel() string {
	s := m.styles
	var b strings.Builder

	status := "running"
	if !m.running {
		status = "paused"
	}
	b.WriteString(s.title.Render("LINKFIELD") + "  " + s.muted.Render(status) + "\n\n")
	b.WriteString(s.button.Render("submit") + "\n\n")

	count := m.badge.text
	if m.badge.scale > 1 {
		count = s.pulse.Render(strings.Join(strings.Split(count, ""), " "))
	}
	b.WriteString(s.row("resolved", count))
	b.WriteString(s.muted.Render(Separator(PanelWidth-4)) + "\n")

	last := m.anim.Last()
	vals := m.metrics.Values()
	b.WriteString(s.rowf("frame", "%d", last.Frame))
	b.WriteString(s.rowf("links", "%d (avg %.1f)", last.Links, vals["links_per_frame"]))
	b.WriteString(s.row("saturation", ProgressBar(vals["saturation"], 12)+fmt.Sprintf(" %3.0f%%", vals["saturation"]*100)))
	b.WriteString(s.rowf("opacity", "%.2f", vals["mean_opacity"]))
	if p := m.field.Pointer(); p.Present {
		b.WriteString(s.rowf("pointer", "%.0f,%.0f (%d pulled)", p.X, p.Y, last.Attracted))
	} else {
		b.WriteString(s.row("pointer", "-"))
	}

	if hist := m.metrics.History(); len(hist) > 1 {
		chart := asciigraph.Plot(hist,
			asciigraph.Height(5),
			asciigraph.Width(PanelWidth-14),
			asciigraph.Precision(0),
			asciigraph.Caption("links/frame"))
		b.WriteString("\n" + s.graph.Render(chart) + "\n")
	}
	if chart := SaturationChart(m.metrics.SaturationHistory(), PanelWidth-4, s.graph); chart != "" {
		b.WriteString("\n" + s.muted.Render("saturation") + "\n" + chart + "\n")
	}

	if m.showHelp {
		b.WriteString("\n" + m.help.FullHelpView(m.keys.FullHelp()))
	}

	return s.panel.MaxHeight(m.canvas.Height).Render(b.String())
}

// Run starts the terminal view with mouse motion and focus reporting.
func Run(opts Options) error {
	m, err := NewModel(opts)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion(), tea.WithReportFocus()).Run()
	return err
}
