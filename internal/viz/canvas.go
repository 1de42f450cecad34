package viz

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/linkfield/internal/field"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

const (
	blank = 0x2800

	// DotThreshold is the intensity below which a dot is not drawn.
	DotThreshold = 0.12

	// UnitsPerDot maps field units onto braille dots. Dots are roughly square
	// on a typical terminal font, so one factor serves both axes.
	UnitsPerDot = 6.0
)

// Canvas is a braille surface that remembers how bright each dot is, so a
// translucent overlay fades old strokes instead of erasing them.
type Canvas struct {
	Width, Height int // in cells

	dots   []float64 // (Width*2) x (Height*4) intensities
	colors []colorful.Color
	levels []float64 // brightness of the stroke that last coloured a cell
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{}
	c.Resize(w, h)
	return c
}

// Resize reallocates the canvas; drawn content is lost.
func (c *Canvas) Resize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c.Width, c.Height = w, h
	c.dots = make([]float64, w*2*h*4)
	c.colors = make([]colorful.Color, w*h)
	c.levels = make([]float64, w*h)
}

// Size returns the field extent the canvas covers.
func (c *Canvas) Size() (float64, float64) {
	return float64(c.Width*2) * UnitsPerDot, float64(c.Height*4) * UnitsPerDot
}

// CellCenter maps a terminal cell to field coordinates.
func CellCenter(col, row int) (float64, float64) {
	return float64(col*2+1) * UnitsPerDot, float64(row*4+2) * UnitsPerDot
}

func (c *Canvas) dotIndex(x, y int) (int, bool) {
	if x < 0 || y < 0 || x >= c.Width*2 || y >= c.Height*4 {
		return 0, false
	}
	return y*c.Width*2 + x, true
}

// Set lights the dot at (x, y) in sub-pixel coordinates at full intensity.
func (c *Canvas) Set(x, y int) { c.plot(x, y, 1, nil) }

// Unset clears a dot.
func (c *Canvas) Unset(x, y int) {
	if i, ok := c.dotIndex(x, y); ok {
		c.dots[i] = 0
	}
}

// Intensity reports the brightness of a dot, 0 outside the canvas.
func (c *Canvas) Intensity(x, y int) float64 {
	if i, ok := c.dotIndex(x, y); ok {
		return c.dots[i]
	}
	return 0
}

func (c *Canvas) plot(x, y int, a float64, col *colorful.Color) {
	i, ok := c.dotIndex(x, y)
	if !ok {
		return
	}
	if a > c.dots[i] {
		c.dots[i] = a
	}
	if col == nil {
		return
	}
	cell := (y/4)*c.Width + x/2
	if a >= c.levels[cell] {
		c.colors[cell] = *col
		c.levels[cell] = a
	}
}

// Clear resets the canvas
func (c *Canvas) Clear() {
	for i := range c.dots {
		c.dots[i] = 0
	}
	for i := range c.levels {
		c.levels[i] = 0
	}
}

// DrawLine draws a line using Bresenham's algorithm
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) { c.line(x0, y0, x1, y1, 1, nil) }

func (c *Canvas) line(x0, y0, x1, y1 int, a float64, col *colorful.Color) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.plot(x0, y0, a, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func toDot(v float64) int {
	if v < 0 {
		return int(v/UnitsPerDot) - 1
	}
	return int(v / UnitsPerDot)
}

// FillRect fades every dot under the rectangle by the overlay alpha.
func (c *Canvas) FillRect(x, y, w, h float64, col field.RGBA) {
	keep := 1 - col.A
	x0, y0 := clampInt(toDot(x), 0, c.Width*2), clampInt(toDot(y), 0, c.Height*4)
	x1, y1 := clampInt(toDot(x+w)+1, 0, c.Width*2), clampInt(toDot(y+h)+1, 0, c.Height*4)
	for dy := y0; dy < y1; dy++ {
		row := dy * c.Width * 2
		for dx := x0; dx < x1; dx++ {
			c.dots[row+dx] *= keep
		}
	}
	for cy := y0 / 4; cy < (y1+3)/4 && cy < c.Height; cy++ {
		for cx := x0 / 2; cx < (x1+1)/2 && cx < c.Width; cx++ {
			c.levels[cy*c.Width+cx] *= keep
		}
	}
}

func (c *Canvas) FillCircle(cx, cy, r float64, col field.HSLA) {
	rgb := colorful.Hsl(col.H, col.S, col.L)
	px, py := toDot(cx), toDot(cy)
	rd := int(r / UnitsPerDot)
	for dy := -rd; dy <= rd; dy++ {
		for dx := -rd; dx <= rd; dx++ {
			if dx*dx+dy*dy <= rd*rd {
				c.plot(px+dx, py+dy, col.A, &rgb)
			}
		}
	}
}

func (c *Canvas) StrokeLine(x0, y0, x1, y1, _ float64, col field.HSLA) {
	rgb := colorful.Hsl(col.H, col.S, col.L)
	c.line(toDot(x0), toDot(y0), toDot(x1), toDot(y1), col.A, &rgb)
}

func (c *Canvas) cellRune(cx, cy int) rune {
	r := rune(blank)
	for sy := 0; sy < 4; sy++ {
		for sx := 0; sx < 2; sx++ {
			if c.dots[(cy*4+sy)*c.Width*2+cx*2+sx] >= DotThreshold {
				r |= rune(pixelMap[sy][sx])
			}
		}
	}
	return r
}

func (c *Canvas) String() string {
	var b strings.Builder
	for cy := 0; cy < c.Height; cy++ {
		for cx := 0; cx < c.Width; cx++ {
			b.WriteRune(c.cellRune(cx, cy))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// Render draws the canvas with per-cell colour, dimming each cell toward bg
// by its brightness. Runs of equal colour share one style.
func (c *Canvas) Render(bg lipgloss.Color) string {
	base, err := colorful.Hex(string(bg))
	if err != nil {
		base = colorful.Color{}
	}
	var b strings.Builder
	var run strings.Builder
	for cy := 0; cy < c.Height; cy++ {
		cur := ""
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur == "" {
				b.WriteString(run.String())
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(cur)).Render(run.String()))
			}
			run.Reset()
		}
		for cx := 0; cx < c.Width; cx++ {
			r := c.cellRune(cx, cy)
			hex := ""
			if r != blank {
				i := cy*c.Width + cx
				level := float64(int(c.levels[i]*10+0.5)) / 10
				hex = base.BlendRgb(c.colors[i], level).Clamped().Hex()
			}
			if hex != cur {
				flush()
				cur = hex
			}
			run.WriteRune(r)
		}
		flush()
		b.WriteString("\n")
	}
	return b.String()
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
