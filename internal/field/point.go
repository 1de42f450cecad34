package field

const (
	PointCount     = 60
	MaxConnections = 3
	MaxDistance    = 150.0

	AttractRadius = 200.0
	AttractFactor = 0.0005
	DriftChance   = 0.02

	PointAlpha = 0.8
	LineWidth  = 0.8

	hueBase  = 180
	hueRange = 60
)

// TrailColor is painted over the whole surface at the start of every frame.
var TrailColor = RGBA{R: 10, G: 10, B: 26, A: 0.1}

// Rand is the random source a field draws from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Point is one simulated particle. Size and Hue never change after creation.
type Point struct {
	X, Y        float64
	VX, VY      float64
	Size        float64
	Hue         int
	Connections int
}

func newPoint(rng Rand, w, h float64) Point {
	p := Point{
		X:  rng.Float64() * w,
		Y:  rng.Float64() * h,
		VX: rng.Float64()*2 - 1,
		VY: rng.Float64()*2 - 1,
	}
	p.Hue = int(rng.Float64()*hueRange) + hueBase
	p.Size = rng.Float64()*2 + 1
	return p
}

// update moves the point one step, bounces it off the surface edges without
// clamping, and occasionally redraws a velocity component.
func (p *Point) update(rng Rand, w, h float64) {
	p.X += p.VX
	p.Y += p.VY

	if p.X < 0 || p.X > w {
		p.VX = -p.VX
	}
	if p.Y < 0 || p.Y > h {
		p.VY = -p.VY
	}

	if rng.Float64() < DriftChance {
		p.VX = rng.Float64()*2 - 1
	}
	if rng.Float64() < DriftChance {
		p.VY = rng.Float64()*2 - 1
	}

	p.Connections = 0
}

// attract nudges the point toward (px, py) when it is within AttractRadius.
func (p *Point) attract(px, py float64) bool {
	dx := px - p.X
	dy := py - p.Y
	if dx*dx+dy*dy >= AttractRadius*AttractRadius {
		return false
	}
	p.X += dx * AttractFactor
	p.Y += dy * AttractFactor
	return true
}
