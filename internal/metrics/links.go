package metrics

import "github.com/san-kum/linkfield/internal/field"

// LinkRate is the mean number of links drawn per frame.
type LinkRate struct {
	name    string
	sum     float64
	samples int
}

func NewLinkRate() *LinkRate {
	return &LinkRate{
		name: "links_per_frame",
	}
}

func (l *LinkRate) Name() string {
	return l.name
}

func (l *LinkRate) Observe(s field.FrameStats) {
	l.sum += float64(s.Links)
	l.samples++
}

func (l *LinkRate) Value() float64 {
	if l.samples == 0 {
		return 0
	}
	return l.sum / float64(l.samples)
}

func (l *LinkRate) Reset() {
	l.sum = 0
	l.samples = 0
}

// Opacity is the mean opacity over every link observed.
type Opacity struct {
	sum   float64
	links int
}

func NewOpacity() *Opacity { return &Opacity{} }

func (o *Opacity) Name() string { return "mean_opacity" }

func (o *Opacity) Observe(s field.FrameStats) {
	o.sum += s.OpacitySum
	o.links += s.Links
}

func (o *Opacity) Value() float64 {
	if o.links == 0 {
		return 0
	}
	return o.sum / float64(o.links)
}

func (o *Opacity) Reset() {
	o.sum = 0
	o.links = 0
}
