package field_test

import (
	"context"
	"errors"
	"math"
	"math/rand"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/linkfield/internal/field"
)

type noDrift struct{}

func (noDrift) Float64() float64 { return 0.5 }

type line struct {
	x0, y0, x1, y1 float64
	c              field.HSLA
}

type recorder struct {
	rects   []field.RGBA
	circles int
	lines   []line
	order   []string
}

func (r *recorder) FillRect(x, y, w, h float64, c field.RGBA) {
	r.rects = append(r.rects, c)
	r.order = append(r.order, "rect")
}

func (r *recorder) FillCircle(cx, cy, rad float64, c field.HSLA) {
	r.circles++
	r.order = append(r.order, "circle")
}

func (r *recorder) StrokeLine(x0, y0, x1, y1, width float64, c field.HSLA) {
	r.lines = append(r.lines, line{x0, y0, x1, y1, c})
	r.order = append(r.order, "line")
}

const (
	surfaceW = 2200.0
	surfaceH = 1600.0
)

// gridPoints spreads the points 200 units apart so none are linked.
func gridPoints() []field.Point {
	pts := make([]field.Point, field.PointCount)
	for k := range pts {
		pts[k] = field.Point{
			X:    100 + 200*float64(k%10),
			Y:    100 + 200*float64(k/10),
			Size: 2,
			Hue:  180 + k%60,
		}
	}
	return pts
}

func restore(pts []field.Point) *field.Field {
	f, err := field.Restore(surfaceW, surfaceH, pts, noDrift{})
	Expect(err).NotTo(HaveOccurred())
	return f
}

var _ = Describe("Frame", func() {
	var rec *recorder

	BeforeEach(func() {
		rec = &recorder{}
	})

	It("paints the trail overlay before anything else", func() {
		f := restore(gridPoints())
		f.Frame(rec)
		Expect(rec.order[0]).To(Equal("rect"))
		Expect(rec.rects).To(HaveLen(1))
		Expect(rec.rects[0]).To(Equal(field.TrailColor))
		Expect(rec.circles).To(Equal(field.PointCount))
	})

	It("keeps exactly PointCount points across frames", func() {
		f, err := field.New(800, 600, rand.New(rand.NewSource(3)))
		Expect(err).NotTo(HaveOccurred())
		for i := 0; i < 50; i++ {
			f.Frame(rec)
		}
		Expect(f.Points()).To(HaveLen(field.PointCount))
		Expect(f.Frames()).To(BeEquivalentTo(50))
	})

	It("draws no links between distant points", func() {
		f := restore(gridPoints())
		stats := f.Frame(rec)
		Expect(rec.lines).To(BeEmpty())
		Expect(stats.Links).To(BeZero())
	})

	It("links a close pair with opacity 1 - d/150 in the first point's hue", func() {
		pts := gridPoints()
		pts[1].X, pts[1].Y = 190, 100
		f := restore(pts)

		stats := f.Frame(rec)

		Expect(rec.lines).To(HaveLen(1))
		l := rec.lines[0]
		Expect(l.c.A).To(BeNumerically("~", 1-90.0/150, 1e-12))
		Expect(l.c.H).To(BeEquivalentTo(pts[0].Hue))
		Expect(stats.Links).To(Equal(1))
		Expect(stats.MeanOpacity()).To(BeNumerically("~", 0.4, 1e-12))
	})

	It("does not link pairs at exactly MaxDistance", func() {
		pts := gridPoints()
		pts[1].X, pts[1].Y = 100+field.MaxDistance, 100
		f := restore(pts)
		f.Frame(rec)
		Expect(rec.lines).To(BeEmpty())
	})

	It("caps links in index order", func() {
		pts := gridPoints()
		for k := 0; k < 6; k++ {
			pts[k].X, pts[k].Y = 1000+10*float64(k), 1400
		}
		f := restore(pts)

		stats := f.Frame(rec)

		Expect(rec.lines).To(HaveLen(12))
		got := make([]int, 6)
		for k, p := range f.Points()[:6] {
			got[k] = p.Connections
		}
		Expect(got).To(Equal([]int{3, 3, 3, 2, 1, 0}))
		Expect(stats.Saturated).To(Equal(3))
	})

	It("never leaves a point above the connection cap", func() {
		f, err := field.New(300, 200, rand.New(rand.NewSource(11)))
		Expect(err).NotTo(HaveOccurred())
		for i := 0; i < 300; i++ {
			f.Frame(rec)
			for _, p := range f.Points() {
				Expect(p.Connections).To(BeNumerically("<=", field.MaxConnections))
			}
		}
	})

	It("only links pairs closer than MaxDistance", func() {
		f, err := field.New(400, 300, rand.New(rand.NewSource(5)))
		Expect(err).NotTo(HaveOccurred())
		for i := 0; i < 100; i++ {
			rec.lines = rec.lines[:0]
			f.Frame(rec)
			for _, l := range rec.lines {
				d := math.Hypot(l.x1-l.x0, l.y1-l.y0)
				Expect(d).To(BeNumerically("<", field.MaxDistance))
				Expect(l.c.A).To(BeNumerically("~", 1-d/field.MaxDistance, 1e-9))
			}
		}
	})

	It("keeps points near the surface", func() {
		f, err := field.New(640, 480, rand.New(rand.NewSource(1)))
		Expect(err).NotTo(HaveOccurred())
		for i := 0; i < 1000; i++ {
			f.Frame(rec)
			for _, p := range f.Points() {
				Expect(p.X).To(BeNumerically(">", -4))
				Expect(p.X).To(BeNumerically("<", 644))
				Expect(p.Y).To(BeNumerically(">", -4))
				Expect(p.Y).To(BeNumerically("<", 484))
			}
		}
	})

	Describe("pointer attraction", func() {
		It("moves a nearby point toward the pointer by 0.05% of the delta", func() {
			f := restore(gridPoints())
			f.PointerMove(150, 130)

			stats := f.Frame(rec)

			factor := field.AttractFactor
			p := f.Points()[0]
			Expect(p.X).To(Equal(100 + 50*factor))
			Expect(p.Y).To(Equal(100 + 30*factor))
			before := math.Hypot(50, 30)
			Expect(math.Hypot(150-p.X, 130-p.Y)).To(BeNumerically("<", before))
			Expect(stats.Attracted).To(BeNumerically(">=", 1))
		})

		It("leaves points alone once the pointer leaves", func() {
			f := restore(gridPoints())
			f.PointerMove(150, 130)
			f.PointerLeave()
			Expect(f.Pointer().Present).To(BeFalse())

			stats := f.Frame(rec)

			Expect(f.Points()[0].X).To(Equal(100.0))
			Expect(stats.Attracted).To(BeZero())
		})
	})

	Describe("resize", func() {
		It("changes later bounce checks without moving points", func() {
			pts := gridPoints()
			pts[4].VX = 0.5
			f := restore(pts)
			f.Resize(500, surfaceH)

			before := f.Points()[4].X
			f.Frame(rec)
			p := f.Points()[4]
			Expect(p.X).To(Equal(before + 0.5))
			Expect(p.VX).To(Equal(-0.5))
		})
	})
})

var _ = Describe("Animator", func() {
	It("refuses to start without a surface", func() {
		f := restore(gridPoints())
		_, err := field.NewAnimator(f, nil, &field.QueueScheduler{})
		Expect(errors.Is(err, field.ErrMissingSurface)).To(BeTrue())

		var setupErr *field.SetupError
		Expect(errors.As(err, &setupErr)).To(BeTrue())
		Expect(setupErr.Component).To(Equal("animator"))
	})

	It("renders a frame then requests the next one", func() {
		f := restore(gridPoints())
		rec := &recorder{}
		sched := &field.QueueScheduler{}
		a, err := field.NewAnimator(f, rec, sched)
		Expect(err).NotTo(HaveOccurred())

		var seen []uint64
		a.AddObserver(field.ObserverFunc(func(s field.FrameStats) { seen = append(seen, s.Frame) }))

		a.Start()
		Expect(sched.Pending()).To(BeTrue())
		Expect(sched.Pump()).To(BeTrue())
		Expect(sched.Pump()).To(BeTrue())
		Expect(seen).To(Equal([]uint64{1, 2, 3}))
		Expect(a.Last().Frame).To(BeEquivalentTo(3))
	})
})

var _ = Describe("Run", func() {
	It("stops after the requested number of frames", func() {
		f := restore(gridPoints())
		count := 0
		n, err := field.Run(context.Background(), f, &recorder{}, field.RunConfig{Frames: 5},
			field.ObserverFunc(func(field.FrameStats) { count++ }))
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(Equal(5))
		Expect(count).To(Equal(5))
	})

	It("returns the context error when cancelled", func() {
		f := restore(gridPoints())
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		n, err := field.Run(ctx, f, &recorder{}, field.RunConfig{FPS: 60})
		Expect(err).To(MatchError(context.Canceled))
		Expect(n).To(BeZero())
	})

	It("rejects an unbounded run with no frame rate", func() {
		f := restore(gridPoints())
		_, err := field.Run(context.Background(), f, &recorder{}, field.RunConfig{})
		Expect(err).To(HaveOccurred())
	})
})
