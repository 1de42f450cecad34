package field

import (
	"errors"
	"math/rand"
	"testing"
)

type constRand float64

func (c constRand) Float64() float64 { return float64(c) }

type seqRand struct {
	vals []float64
	i    int
}

func (s *seqRand) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func TestNewPointRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 5000; i++ {
		p := newPoint(rng, 800, 600)
		if p.X < 0 || p.X >= 800 || p.Y < 0 || p.Y >= 600 {
			t.Fatalf("position out of bounds: %+v", p)
		}
		if p.VX < -1 || p.VX >= 1 || p.VY < -1 || p.VY >= 1 {
			t.Fatalf("velocity out of range: %+v", p)
		}
		if p.Size < 1 || p.Size >= 3 {
			t.Fatalf("size out of range: %v", p.Size)
		}
		if p.Hue < 180 || p.Hue >= 240 {
			t.Fatalf("hue out of range: %d", p.Hue)
		}
		if p.Connections != 0 {
			t.Fatalf("new point has %d connections", p.Connections)
		}
	}
}

func TestUpdateBounce(t *testing.T) {
	tests := []struct {
		name   string
		p      Point
		wantX  float64
		wantVX float64
		wantVY float64
	}{
		{"inside", Point{X: 10, Y: 10, VX: 0.5, VY: 0.5}, 10.5, 0.5, 0.5},
		{"past right edge", Point{X: 99.75, Y: 10, VX: 0.5, VY: 0.5}, 100.25, -0.5, 0.5},
		{"past left edge", Point{X: 0.25, Y: 10, VX: -0.5, VY: 0.5}, -0.25, 0.5, 0.5},
		{"on edge", Point{X: 99.5, Y: 10, VX: 0.5, VY: 0.5}, 100, 0.5, 0.5},
		{"past bottom", Point{X: 10, Y: 99.75, VX: 0.5, VY: 0.5}, 10.5, 0.5, -0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := tt.p
			p.Connections = 2
			p.update(constRand(0.5), 100, 100)
			if p.X != tt.wantX {
				t.Errorf("x = %v, want %v (no clamping)", p.X, tt.wantX)
			}
			if p.VX != tt.wantVX || p.VY != tt.wantVY {
				t.Errorf("velocity = (%v, %v), want (%v, %v)", p.VX, p.VY, tt.wantVX, tt.wantVY)
			}
			if p.Connections != 0 {
				t.Errorf("connections not reset: %d", p.Connections)
			}
		})
	}
}

func TestUpdateDrift(t *testing.T) {
	p := Point{X: 50, Y: 50, VX: 0.5, VY: 0.5}
	// x drift fires and redraws 0.25 -> -0.5; y drift does not fire.
	p.update(&seqRand{vals: []float64{0.01, 0.25, 0.9}}, 100, 100)
	if p.VX != -0.5 {
		t.Errorf("vx = %v, want -0.5", p.VX)
	}
	if p.VY != 0.5 {
		t.Errorf("vy = %v, want 0.5", p.VY)
	}
}

func TestAttract(t *testing.T) {
	p := Point{X: 100, Y: 100}
	if !p.attract(200, 50) {
		t.Fatal("expected attraction within radius")
	}
	factor := AttractFactor
	wantX := 100 + 100*factor
	wantY := 100 - 50*factor
	if p.X != wantX || p.Y != wantY {
		t.Errorf("got (%v, %v), want (%v, %v)", p.X, p.Y, wantX, wantY)
	}

	far := Point{X: 0, Y: 0}
	if far.attract(300, 0) {
		t.Error("expected no attraction beyond radius")
	}
	if far.X != 0 || far.Y != 0 {
		t.Errorf("far point moved to (%v, %v)", far.X, far.Y)
	}
}

func TestNewInvalidDimensions(t *testing.T) {
	for _, dims := range [][2]float64{{0, 100}, {100, -1}, {0, 0}} {
		if _, err := New(dims[0], dims[1], constRand(0.5)); !errors.Is(err, ErrBadDimensions) {
			t.Errorf("New(%v, %v): expected ErrBadDimensions, got %v", dims[0], dims[1], err)
		}
	}
}

func TestResizeIgnoresInvalid(t *testing.T) {
	f, err := New(640, 480, constRand(0.5))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	f.Resize(0, 0)
	if w, h := f.Size(); w != 640 || h != 480 {
		t.Errorf("size = %vx%v after invalid resize", w, h)
	}
	f.Resize(1024, 768)
	if w, h := f.Size(); w != 1024 || h != 768 {
		t.Errorf("size = %vx%v, want 1024x768", w, h)
	}
}

func TestRestoreCount(t *testing.T) {
	_, err := Restore(100, 100, make([]Point, 3), constRand(0.5))
	if !errors.Is(err, ErrPointCount) {
		t.Fatalf("expected ErrPointCount, got %v", err)
	}
}

func TestColorConversion(t *testing.T) {
	c := PointColor(200, 0.8).NRGBA()
	if c.A != 204 {
		t.Errorf("alpha = %d, want 204", c.A)
	}
	if c.B != 255 || c.R != 0 {
		t.Errorf("hue 200 should be a saturated blue, got %+v", c)
	}
	if got := TrailColor.Hex(); got != "#0a0a1a" {
		t.Errorf("trail hex = %s", got)
	}
}
