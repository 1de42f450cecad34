// Package ebitenhost runs the link field in an ebiten window. It needs no C
// toolchain, unlike the raylib host.
package ebitenhost

import (
	"errors"
	"fmt"
	"image/color"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/san-kum/linkfield/internal/counter"
	"github.com/san-kum/linkfield/internal/field"
	"github.com/san-kum/linkfield/internal/hud"
	"github.com/san-kum/linkfield/internal/metrics"
)

var (
	colBg     = color.RGBA{R: 10, G: 10, B: 26, A: 255}
	colPanel  = color.RGBA{R: 18, G: 18, B: 40, A: 220}
	colButton = color.RGBA{R: 0, G: 120, B: 170, A: 255}
	colHover  = color.RGBA{R: 0, G: 160, B: 220, A: 255}
	colBorder = color.RGBA{R: 150, G: 170, B: 200, A: 255}
)

type Options struct {
	Width, Height int
	FPS           int
	Seed          int64
	Store         counter.Store
	Key           string
}

// imageSurface draws onto an offscreen image that survives between frames,
// so the overlay leaves trails.
type imageSurface struct {
	img *ebiten.Image
}

func newImageSurface(w, h int) *imageSurface {
	img := ebiten.NewImage(w, h)
	img.Fill(colBg)
	return &imageSurface{img: img}
}

func (s *imageSurface) resize(w, h int) {
	b := s.img.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return
	}
	s.img.Deallocate()
	s.img = ebiten.NewImage(w, h)
	s.img.Fill(colBg)
}

func (s *imageSurface) FillRect(x, y, w, h float64, c field.RGBA) {
	vector.DrawFilledRect(s.img, float32(x), float32(y), float32(w), float32(h), c.NRGBA(), false)
}

func (s *imageSurface) FillCircle(cx, cy, r float64, c field.HSLA) {
	vector.DrawFilledCircle(s.img, float32(cx), float32(cy), float32(r), c.NRGBA(), true)
}

func (s *imageSurface) StrokeLine(x0, y0, x1, y1, width float64, c field.HSLA) {
	vector.StrokeLine(s.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), c.NRGBA(), true)
}

type game struct {
	field   *field.Field
	anim    *field.Animator
	sched   *field.QueueScheduler
	surface *imageSurface
	metrics *metrics.Set

	counter *counter.Widget
	label   *hud.Label
	button  *hud.Button
	timers  *counter.Timers
	layout  hud.Layout

	start         time.Time
	width, height int
	started       bool
	paused        bool
	showHUD       bool
}

func newGame(opts Options) (*game, error) {
	var rng field.Rand
	if opts.Seed != 0 {
		rng = rand.New(rand.NewSource(opts.Seed))
	}
	f, err := field.New(float64(opts.Width), float64(opts.Height), rng)
	if err != nil {
		return nil, err
	}

	surface := newImageSurface(opts.Width, opts.Height)
	sched := &field.QueueScheduler{}
	anim, err := field.NewAnimator(f, surface, sched)
	if err != nil {
		return nil, err
	}
	set := metrics.Default(0)
	anim.AddObserver(set)

	g := &game{
		field:   f,
		anim:    anim,
		sched:   sched,
		surface: surface,
		metrics: set,
		label:   hud.NewLabel(),
		button:  hud.NewButton("SUBMIT"),
		timers:  &counter.Timers{},
		start:   time.Now(),
		width:   opts.Width,
		height:  opts.Height,
	}
	g.relayout()

	var copts []counter.Option
	if opts.Key != "" {
		copts = append(copts, counter.WithKey(opts.Key))
	}
	g.counter, _ = counter.Mount(g.label, g.button, opts.Store, g.timers.After, copts...)
	return g, nil
}

func (g *game) relayout() {
	g.layout = hud.Place(float64(g.width), float64(g.height))
	g.button.Rect = g.layout.Button
}

func (g *game) Update() error {
	g.timers.Advance(time.Since(g.start))

	mx, my := ebiten.CursorPosition()
	if ebiten.IsFocused() && mx >= 0 && my >= 0 && mx < g.width && my < g.height {
		g.field.PointerMove(float64(mx), float64(my))
	} else {
		g.field.PointerLeave()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.button.Click(float64(mx), float64(my))
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
		g.button.Press()
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.paused = !g.paused
	case inpututil.IsKeyJustPressed(ebiten.KeyH):
		g.showHUD = !g.showHUD
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape), inpututil.IsKeyJustPressed(ebiten.KeyQ):
		return ebiten.Termination
	}
	return nil
}

// Draw is the frame-presentation callback: one field frame per call.
func (g *game) Draw(screen *ebiten.Image) {
	switch {
	case !g.started:
		g.anim.Start()
		g.started = true
	case !g.paused:
		g.sched.Pump()
	}
	screen.DrawImage(g.surface.img, nil)
	g.drawPanel(screen)
	if g.showHUD {
		g.drawHUD(screen)
	}
}

func (g *game) drawPanel(screen *ebiten.Image) {
	l := g.layout
	vector.DrawFilledRect(screen, float32(l.Panel.X), float32(l.Panel.Y), float32(l.Panel.W), float32(l.Panel.H), colPanel, false)
	ebitenutil.DebugPrintAt(screen, "RESOLVED", int(l.CountX), int(l.CountY))

	// DebugPrint has one font size, so the pulse scales a small image instead.
	text := g.label.Text
	tw := len(text)*6 + 2
	countImg := ebiten.NewImage(tw, 16)
	ebitenutil.DebugPrint(countImg, text)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(2*g.label.Scale, 2*g.label.Scale)
	op.GeoM.Translate(l.CountX, l.CountY+18)
	screen.DrawImage(countImg, op)
	countImg.Deallocate()

	mx, my := ebiten.CursorPosition()
	bg := colButton
	if l.Button.Contains(float64(mx), float64(my)) {
		bg = colHover
	}
	b := l.Button
	vector.DrawFilledRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), bg, false)
	vector.StrokeRect(screen, float32(b.X), float32(b.Y), float32(b.W), float32(b.H), 2, colBorder, false)
	textWidth := len(g.button.Text) * 6
	ebitenutil.DebugPrintAt(screen, g.button.Text, int(b.X+(b.W-float64(textWidth))/2), int(b.Y+b.H/2)-8)
}

func (g *game) drawHUD(screen *ebiten.Image) {
	last := g.anim.Last()
	vals := g.metrics.Values()
	status := "running"
	if g.paused {
		status = "paused"
	}
	msg := fmt.Sprintf("linkfield  %s  %.0f FPS  frame %d\nlinks %d  avg %.1f  saturation %.0f%%  opacity %.2f\nEnter: submit  Space: pause  H: hud  Q: quit",
		status, ebiten.ActualFPS(), last.Frame, last.Links, vals["links_per_frame"], vals["saturation"]*100, vals["mean_opacity"])
	ebitenutil.DebugPrintAt(screen, msg, 12, 12)
}

// Layout follows the window size; a resize resets the surface and later
// bounce checks use the new bounds.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 && (outsideWidth != g.width || outsideHeight != g.height) {
		g.width, g.height = outsideWidth, outsideHeight
		g.surface.resize(outsideWidth, outsideHeight)
		g.field.Resize(float64(outsideWidth), float64(outsideHeight))
		g.relayout()
	}
	return g.width, g.height
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("ebitenhost: invalid window size %dx%d", opts.Width, opts.Height)
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}

	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle("linkfield")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(opts.FPS)

	g, err := newGame(opts)
	if err != nil {
		return err
	}
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
