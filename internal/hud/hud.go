// Package hud holds the counter panel shared by the window hosts: where it
// sits, the label the counter writes to, and the button that feeds it clicks.
package hud

import "math"

const (
	PanelW   = 220.0
	PanelH   = 120.0
	Margin   = 24.0
	ButtonW  = 140.0
	ButtonH  = 36.0
	FontSize = 28
)

type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Label is the counter's display. Scale above 1 enlarges the text.
type Label struct {
	Text  string
	Scale float64
}

func NewLabel() *Label { return &Label{Scale: 1} }

func (l *Label) SetText(text string)    { l.Text = text }
func (l *Label) SetScale(scale float64) { l.Scale = scale }

// FontSize scales base by the current pulse.
func (l *Label) FontSize(base int) int {
	return int(math.Round(float64(base) * l.Scale))
}

// Button forwards clicks inside its rectangle to the counter.
type Button struct {
	Rect  Rect
	Text  string
	click func()
}

func NewButton(text string) *Button { return &Button{Text: text} }

func (b *Button) OnClick(fn func()) { b.click = fn }

// Click reports whether (x, y) hit the button and a handler ran.
func (b *Button) Click(x, y float64) bool {
	if b.click == nil || !b.Rect.Contains(x, y) {
		return false
	}
	b.click()
	return true
}

// Layout is the counter panel placed in the bottom-right corner.
type Layout struct {
	Panel  Rect
	Button Rect
	CountX float64
	CountY float64
}

// Place lays the panel out for a w x h window. Windows too small for the
// panel get it pinned to the top-left.
func Place(w, h float64) Layout {
	x := math.Max(0, w-PanelW-Margin)
	y := math.Max(0, h-PanelH-Margin)
	panel := Rect{X: x, Y: y, W: PanelW, H: PanelH}
	return Layout{
		Panel:  panel,
		Button: Rect{X: x + (PanelW-ButtonW)/2, Y: y + PanelH - ButtonH - 16, W: ButtonW, H: ButtonH},
		CountX: x + 20,
		CountY: y + 18,
	}
}

// Press clicks the button from the keyboard.
func (b *Button) Press() bool {
	return b.Click(b.Rect.X, b.Rect.Y)
}
