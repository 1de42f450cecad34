// Package export turns rendered frames into files.
package export

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/san-kum/linkfield/internal/field"
)

type shape struct {
	line           bool
	x0, y0, x1, y1 float64
	r, width       float64
	col            field.HSLA
}

// Recorder is a field.Surface that keeps the draw calls of the most recent
// frames. Each overlay fill starts a new frame, so older frames fade in the
// SVG the same way the overlay fades them on screen.
type Recorder struct {
	Width, Height float64

	frames  [][]shape
	keep    int
	overlay field.RGBA
}

func NewRecorder(w, h float64, keep int) *Recorder {
	if keep < 1 {
		keep = 1
	}
	return &Recorder{Width: w, Height: h, keep: keep, overlay: field.TrailColor}
}

func (r *Recorder) FillRect(x, y, w, h float64, c field.RGBA) {
	r.overlay = c
	r.frames = append(r.frames, nil)
	if len(r.frames) > r.keep {
		r.frames = r.frames[len(r.frames)-r.keep:]
	}
}

func (r *Recorder) current() *[]shape {
	if len(r.frames) == 0 {
		r.frames = append(r.frames, nil)
	}
	return &r.frames[len(r.frames)-1]
}

func (r *Recorder) FillCircle(cx, cy, radius float64, c field.HSLA) {
	cur := r.current()
	*cur = append(*cur, shape{x0: cx, y0: cy, r: radius, col: c})
}

func (r *Recorder) StrokeLine(x0, y0, x1, y1, width float64, c field.HSLA) {
	cur := r.current()
	*cur = append(*cur, shape{line: true, x0: x0, y0: y0, x1: x1, y1: y1, width: width, col: c})
}

// Frames returns how many frames are held.
func (r *Recorder) Frames() int { return len(r.frames) }

// Counts returns the circles and lines of the newest frame.
func (r *Recorder) Counts() (circles, lines int) {
	if len(r.frames) == 0 {
		return 0, 0
	}
	for _, s := range r.frames[len(r.frames)-1] {
		if s.line {
			lines++
		} else {
			circles++
		}
	}
	return circles, lines
}

// SVG renders the held frames oldest first.
func (r *Recorder) SVG() string {
	var sb strings.Builder

	// SVG header
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
`, r.Width, r.Height, r.Width, r.Height, r.overlay.Hex()))

	keep := 1 - r.overlay.A
	for i, frame := range r.frames {
		age := len(r.frames) - 1 - i
		sb.WriteString(fmt.Sprintf("<g opacity=\"%.3f\">\n", math.Pow(keep, float64(age))))
		for _, s := range frame {
			if s.line {
				sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="%.1f" stroke-opacity="%.2f"/>
`, s.x0, s.y0, s.x1, s.y1, s.col.Hex(), s.width, s.col.A))
			} else {
				sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s" fill-opacity="%.2f"/>
`, s.x0, s.y0, s.r, s.col.Hex(), s.col.A))
			}
		}
		sb.WriteString("</g>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func (r *Recorder) WriteFile(path string) error {
	if err := os.WriteFile(path, []byte(r.SVG()), 0644); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}
