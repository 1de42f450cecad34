package metrics

import "github.com/san-kum/linkfield/internal/field"

// Saturation is the fraction of points that ended a frame at the link cap.
type Saturation struct {
	name      string
	saturated int
	samples   int
}

func NewSaturation() *Saturation {
	return &Saturation{
		name: "saturation",
	}
}

func (s *Saturation) Name() string {
	return s.name
}

func (s *Saturation) Observe(st field.FrameStats) {
	s.saturated += st.Saturated
	s.samples++
}

func (s *Saturation) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.saturated) / float64(s.samples*field.PointCount)
}

func (s *Saturation) Reset() {
	s.saturated = 0
	s.samples = 0
}

// Attraction is the mean number of points pulled by the pointer per frame.
type Attraction struct {
	pulled  int
	samples int
}

func NewAttraction() *Attraction { return &Attraction{} }

func (a *Attraction) Name() string { return "attracted_per_frame" }

func (a *Attraction) Observe(st field.FrameStats) {
	a.pulled += st.Attracted
	a.samples++
}

func (a *Attraction) Value() float64 {
	if a.samples == 0 {
		return 0
	}
	return float64(a.pulled) / float64(a.samples)
}

func (a *Attraction) Reset() {
	a.pulled = 0
	a.samples = 0
}
