package hud

import (
	"testing"

	"github.com/san-kum/linkfield/internal/counter"
	"github.com/san-kum/linkfield/internal/storage"
)

func TestPlace(t *testing.T) {
	l := Place(1280, 720)
	if l.Panel.X != 1280-PanelW-Margin || l.Panel.Y != 720-PanelH-Margin {
		t.Errorf("unexpected panel %+v", l.Panel)
	}
	if l.Button.X < l.Panel.X || l.Button.X+l.Button.W > l.Panel.X+l.Panel.W {
		t.Errorf("button %+v outside panel %+v", l.Button, l.Panel)
	}

	small := Place(100, 50)
	if small.Panel.X != 0 || small.Panel.Y != 0 {
		t.Errorf("expected pinned panel, got %+v", small.Panel)
	}
}

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 5, H: 5}
	tests := []struct {
		x, y float64
		want bool
	}{
		{10, 10, true},
		{14.9, 14.9, true},
		{15, 12, false},
		{9, 12, false},
	}
	for _, tt := range tests {
		if got := r.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestButtonDrivesCounter(t *testing.T) {
	label := NewLabel()
	btn := NewButton("submit")
	btn.Rect = Place(800, 600).Button

	var timers counter.Timers
	w, err := counter.Mount(label, btn, storage.NewMemory(), timers.After)
	if err != nil {
		t.Fatal(err)
	}

	if btn.Click(0, 0) {
		t.Error("click outside the button should be ignored")
	}
	if !btn.Click(btn.Rect.X+1, btn.Rect.Y+1) {
		t.Fatal("click inside the button was ignored")
	}
	if w.Value() != 606 || label.Text != "606" {
		t.Errorf("expected 606, got %d/%s", w.Value(), label.Text)
	}
	if label.FontSize(FontSize) != 36 {
		t.Errorf("expected pulsed font 36, got %d", label.FontSize(FontSize))
	}

	timers.Advance(counter.PulseDuration)
	if label.FontSize(FontSize) != FontSize {
		t.Errorf("expected font back to %d, got %d", FontSize, label.FontSize(FontSize))
	}
}

func TestButtonWithoutHandler(t *testing.T) {
	b := NewButton("submit")
	b.Rect = Rect{W: 10, H: 10}
	if b.Click(1, 1) {
		t.Error("unwired button should not report a click")
	}
}
