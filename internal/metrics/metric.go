package metrics

import "github.com/san-kum/linkfield/internal/field"

// Metric accumulates a scalar over observed frames.
type Metric interface {
	Name() string
	Observe(s field.FrameStats)
	Value() float64
	Reset()
}

// Set fans frame stats out to its metrics and keeps bounded histories of links
// per frame and saturated fraction per frame for plotting.
type Set struct {
	metrics    []Metric
	history    []float64
	saturation []float64
	capacity   int
}

func NewSet(capacity int, ms ...Metric) *Set {
	return &Set{
		metrics:  ms,
		history:    make([]float64, 0, capacity),
		saturation: make([]float64, 0, capacity),
		capacity:   capacity,
	}
}

// Default returns the metrics reported by the bench command and the terminal panel.
func Default(capacity int) *Set {
	return NewSet(capacity, NewLinkRate(), NewSaturation(), NewOpacity(), NewAttraction())
}

func (s *Set) OnFrame(st field.FrameStats) {
	for _, m := range s.metrics {
		m.Observe(st)
	}
	if s.capacity <= 0 {
		return
	}
	s.history = push(s.history, float64(st.Links), s.capacity)
	s.saturation = push(s.saturation, float64(st.Saturated)/field.PointCount, s.capacity)
}

func push(h []float64, v float64, capacity int) []float64 {
	h = append(h, v)
	if len(h) > capacity {
		h = h[1:]
	}
	return h
}

// History returns links per frame, oldest first.
func (s *Set) History() []float64 { return s.history }

// SaturationHistory returns the fraction of capped points per frame, oldest first.
func (s *Set) SaturationHistory() []float64 { return s.saturation }

func (s *Set) Metrics() []Metric { return s.metrics }

// Values returns each metric's current value keyed by name.
func (s *Set) Values() map[string]float64 {
	out := make(map[string]float64, len(s.metrics))
	for _, m := range s.metrics {
		out[m.Name()] = m.Value()
	}
	return out
}

func (s *Set) Reset() {
	for _, m := range s.metrics {
		m.Reset()
	}
	s.history = s.history[:0]
	s.saturation = s.saturation[:0]
}
