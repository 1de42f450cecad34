package field

import (
	"fmt"
	"math"
	"math/rand"
	"time"
)

// Surface is a 2D raster target. Coordinates are in surface units; alpha is
// applied by the surface when blending.
type Surface interface {
	FillRect(x, y, w, h float64, c RGBA)
	FillCircle(cx, cy, r float64, c HSLA)
	StrokeLine(x0, y0, x1, y1, width float64, c HSLA)
}

// Pointer is the last reported input position, if any.
type Pointer struct {
	X, Y    float64
	Present bool
}

// FrameStats summarizes one rendered frame.
type FrameStats struct {
	Frame      uint64
	Links      int
	Saturated  int
	Attracted  int
	OpacitySum float64
}

// MeanOpacity is the average opacity of the links drawn this frame.
func (s FrameStats) MeanOpacity() float64 {
	if s.Links == 0 {
		return 0
	}
	return s.OpacitySum / float64(s.Links)
}

// Field holds the point set, surface size and pointer state.
type Field struct {
	width, height float64
	pointer       Pointer
	points        []Point
	rng           Rand
	frame         uint64
}

// New creates a field of PointCount randomly placed points. A nil rng uses a
// time-seeded source.
func New(w, h float64, rng Rand) (*Field, error) {
	if err := checkDims(w, h); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	f := &Field{
		width:  w,
		height: h,
		rng:    rng,
		points: make([]Point, PointCount),
	}
	for i := range f.points {
		f.points[i] = newPoint(rng, w, h)
	}
	return f, nil
}

// Restore creates a field from an existing point set.
func Restore(w, h float64, pts []Point, rng Rand) (*Field, error) {
	if len(pts) != PointCount {
		return nil, fmt.Errorf("%w: got %d, want %d", ErrPointCount, len(pts), PointCount)
	}
	f, err := New(w, h, rng)
	if err != nil {
		return nil, err
	}
	copy(f.points, pts)
	return f, nil
}

func checkDims(w, h float64) error {
	if !(w > 0) || !(h > 0) || math.IsInf(w, 0) || math.IsInf(h, 0) {
		return fmt.Errorf("%w: %vx%v", ErrBadDimensions, w, h)
	}
	return nil
}

// Resize changes the bounds used by later bounce checks. Points are not moved.
// Non-positive sizes (a minimized window) are ignored.
func (f *Field) Resize(w, h float64) {
	if checkDims(w, h) != nil {
		return
	}
	f.width, f.height = w, h
}

func (f *Field) Size() (w, h float64) { return f.width, f.height }

func (f *Field) PointerMove(x, y float64) { f.pointer = Pointer{X: x, Y: y, Present: true} }
func (f *Field) PointerLeave()            { f.pointer = Pointer{} }
func (f *Field) Pointer() Pointer         { return f.pointer }

// Points returns a copy of the current point set.
func (f *Field) Points() []Point {
	out := make([]Point, len(f.points))
	copy(out, f.points)
	return out
}

// Frames returns the number of frames rendered so far.
func (f *Field) Frames() uint64 { return f.frame }

// Frame paints the trail overlay, then updates, draws, attracts and links
// every point in index order.
func (f *Field) Frame(s Surface) FrameStats {
	f.frame++
	stats := FrameStats{Frame: f.frame}

	s.FillRect(0, 0, f.width, f.height, TrailColor)

	for i := range f.points {
		p := &f.points[i]
		p.update(f.rng, f.width, f.height)

		s.FillCircle(p.X, p.Y, p.Size, PointColor(p.Hue, PointAlpha))

		if f.pointer.Present && p.attract(f.pointer.X, f.pointer.Y) {
			stats.Attracted++
		}

		for j := i + 1; j < len(f.points); j++ {
			q := &f.points[j]
			d := math.Hypot(p.X-q.X, p.Y-q.Y)
			if d >= MaxDistance || p.Connections >= MaxConnections || q.Connections >= MaxConnections {
				continue
			}
			alpha := 1 - d/MaxDistance
			s.StrokeLine(p.X, p.Y, q.X, q.Y, LineWidth, PointColor(p.Hue, alpha))
			p.Connections++
			q.Connections++
			stats.Links++
			stats.OpacitySum += alpha
		}
	}

	for i := range f.points {
		if f.points[i].Connections >= MaxConnections {
			stats.Saturated++
		}
	}
	return stats
}
