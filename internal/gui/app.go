package gui

import (
	"fmt"
	"math/rand"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/linkfield/internal/counter"
	"github.com/san-kum/linkfield/internal/field"
	"github.com/san-kum/linkfield/internal/hud"
	"github.com/san-kum/linkfield/internal/metrics"
)

// Theme Colors
var (
	ColBg      = rl.NewColor(10, 10, 26, 255)
	ColPanel   = rl.NewColor(18, 18, 40, 220)
	ColButton  = rl.NewColor(0, 120, 170, 255)
	ColHover   = rl.NewColor(0, 160, 220, 255)
	ColAccent  = rl.NewColor(0, 204, 255, 255)
	ColText    = rl.NewColor(210, 220, 240, 255)
	ColTextDim = rl.NewColor(90, 90, 130, 255)
)

type Options struct {
	Width, Height int
	FPS           int
	Seed          int64
	Store         counter.Store
	Key           string
}

type App struct {
	Field   *field.Field
	Anim    *field.Animator
	Sched   *field.QueueScheduler
	Surface *textureSurface
	Metrics *metrics.Set

	Counter *counter.Widget
	Label   *hud.Label
	Button  *hud.Button
	Timers  *counter.Timers
	Layout  hud.Layout

	Running bool
	ShowHUD bool
	quit    bool
}

// initWindow opens a resizable window and disables the default exit key.
func initWindow(w, h, fps int) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(w), int32(h), "linkfield")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

// NewApp wires the field to a render texture the size of the window. The
// window must already be open.
func NewApp(opts Options) (*App, error) {
	w, h := rl.GetScreenWidth(), rl.GetScreenHeight()

	var rng field.Rand
	if opts.Seed != 0 {
		rng = rand.New(rand.NewSource(opts.Seed))
	}
	f, err := field.New(float64(w), float64(h), rng)
	if err != nil {
		return nil, err
	}

	surface := newTextureSurface(int32(w), int32(h), ColBg)
	sched := &field.QueueScheduler{}
	anim, err := field.NewAnimator(f, surface, sched)
	if err != nil {
		surface.unload()
		return nil, err
	}
	set := metrics.Default(240)
	anim.AddObserver(set)

	layout := hud.Place(float64(w), float64(h))
	app := &App{
		Field:   f,
		Anim:    anim,
		Sched:   sched,
		Surface: surface,
		Metrics: set,
		Label:   hud.NewLabel(),
		Button:  hud.NewButton("SUBMIT"),
		Timers:  &counter.Timers{},
		Layout:  layout,
		Running: true,
	}
	app.Button.Rect = layout.Button

	var copts []counter.Option
	if opts.Key != "" {
		copts = append(copts, counter.WithKey(opts.Key))
	}
	app.Counter, _ = counter.Mount(app.Label, app.Button, opts.Store, app.Timers.After, copts...)

	// The first frame has to land inside texture mode like every later one.
	rl.BeginTextureMode(surface.target)
	anim.Start()
	rl.EndTextureMode()
	return app, nil
}

// Run opens the window and blocks until it is closed.
func Run(opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("gui: invalid window size %dx%d", opts.Width, opts.Height)
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	initWindow(opts.Width, opts.Height, opts.FPS)
	defer rl.CloseWindow()

	app, err := NewApp(opts)
	if err != nil {
		return err
	}
	defer app.Surface.unload()
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() && !a.quit {
		a.Update()
		a.Draw()
	}
}

// Update feeds input and timers into the field and counter.
func (a *App) Update() {
	a.Timers.Advance(time.Duration(rl.GetTime() * float64(time.Second)))

	if rl.IsWindowResized() {
		w, h := rl.GetScreenWidth(), rl.GetScreenHeight()
		a.Surface.resize(int32(w), int32(h), ColBg)
		a.Field.Resize(float64(w), float64(h))
		a.Layout = hud.Place(float64(w), float64(h))
		a.Button.Rect = a.Layout.Button
	}

	mouse := rl.GetMousePosition()
	if rl.IsCursorOnScreen() {
		a.Field.PointerMove(float64(mouse.X), float64(mouse.Y))
	} else {
		a.Field.PointerLeave()
	}
	if rl.IsMouseButtonPressed(rl.MouseButtonLeft) {
		a.Button.Click(float64(mouse.X), float64(mouse.Y))
	}

	switch {
	case rl.IsKeyPressed(rl.KeyEnter):
		a.Button.Press()
	case rl.IsKeyPressed(rl.KeySpace):
		a.Running = !a.Running
	case rl.IsKeyPressed(rl.KeyH):
		a.ShowHUD = !a.ShowHUD
	case rl.IsKeyPressed(rl.KeyQ):
		a.quit = true
	}
}

func (a *App) Draw() {
	if a.Running {
		rl.BeginTextureMode(a.Surface.target)
		a.Sched.Pump()
		rl.EndTextureMode()
	}

	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	a.Surface.present()
	a.DrawPanel()
	if a.ShowHUD {
		a.DrawHUD()
	}
	rl.EndDrawing()
}

func rect(r hud.Rect) rl.Rectangle {
	return rl.NewRectangle(float32(r.X), float32(r.Y), float32(r.W), float32(r.H))
}

// DrawPanel draws the counter and its submit button.
func (a *App) DrawPanel() {
	l := a.Layout
	rl.DrawRectangleRounded(rect(l.Panel), 0.15, 8, ColPanel)
	rl.DrawText("RESOLVED", int32(l.CountX), int32(l.CountY), 14, ColTextDim)
	rl.DrawText(a.Label.Text, int32(l.CountX), int32(l.CountY)+18, int32(a.Label.FontSize(hud.FontSize)), ColAccent)

	mouse := rl.GetMousePosition()
	col := ColButton
	if l.Button.Contains(float64(mouse.X), float64(mouse.Y)) {
		col = ColHover
	}
	rl.DrawRectangleRounded(rect(l.Button), 0.3, 8, col)
	tw := rl.MeasureText(a.Button.Text, 16)
	rl.DrawText(a.Button.Text, int32(l.Button.X+l.Button.W/2)-tw/2, int32(l.Button.Y+l.Button.H/2)-8, 16, ColText)
}

func (a *App) DrawHUD() {
	rl.DrawText("linkfield", 24, 24, 20, ColText)

	last := a.Anim.Last()
	vals := a.Metrics.Values()
	status := "RUNNING"
	if !a.Running {
		status = "PAUSED"
	}
	rl.DrawText(fmt.Sprintf("%s  %d FPS  frame %d", status, rl.GetFPS(), last.Frame), 24, 52, 14, ColTextDim)
	rl.DrawText(fmt.Sprintf("links %d  avg %.1f  saturation %.0f%%  opacity %.2f",
		last.Links, vals["links_per_frame"], vals["saturation"]*100, vals["mean_opacity"]), 24, 72, 14, ColTextDim)

	a.DrawTelemetry()
	rl.DrawText("[ENTER] SUBMIT  [SPACE] PAUSE  [H] HUD  [Q] QUIT", 24, int32(rl.GetScreenHeight())-30, 14, ColTextDim)
}

// DrawTelemetry plots links per frame as a line strip.
func (a *App) DrawTelemetry() {
	hist := a.Metrics.History()
	if len(hist) < 2 {
		return
	}

	rectX, rectY := float32(24), float32(100)
	width, height := float32(300), float32(60)

	maxVal := 1.0
	for _, v := range hist {
		if v > maxVal {
			maxVal = v
		}
	}

	points := make([]rl.Vector2, len(hist))
	for i, val := range hist {
		px := rectX + float32(i)/float32(len(hist))*width
		py := rectY + height - float32(val/maxVal)*height
		points[i] = rl.NewVector2(px, py)
	}
	rl.DrawLineStrip(points, ColAccent)
	rl.DrawText(fmt.Sprintf("%.0f", hist[len(hist)-1]), int32(rectX+width)+10, int32(rectY+height)-10, 14, ColText)
}
