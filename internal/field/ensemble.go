package field

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
)

// Discard is a Surface that draws nothing, for measuring the simulation alone.
var Discard Surface = discard{}

type discard struct{}

func (discard) FillRect(x, y, w, h float64, c RGBA)          {}
func (discard) FillCircle(cx, cy, r float64, c HSLA)         {}
func (discard) StrokeLine(x0, y0, x1, y1, w float64, c HSLA) {}

// Summary aggregates the frame stats of one headless run.
type Summary struct {
	Seed       int64
	Frames     int
	Links      int
	Saturated  int
	Attracted  int
	OpacitySum float64
}

func (s *Summary) OnFrame(st FrameStats) {
	s.Links += st.Links
	s.Saturated += st.Saturated
	s.Attracted += st.Attracted
	s.OpacitySum += st.OpacitySum
}

func (s Summary) MeanLinks() float64 {
	if s.Frames == 0 {
		return 0
	}
	return float64(s.Links) / float64(s.Frames)
}

func (s Summary) MeanSaturated() float64 {
	if s.Frames == 0 {
		return 0
	}
	return float64(s.Saturated) / float64(s.Frames)
}

// Ensemble runs independent seeded fields in parallel. Each run owns its
// field, so nothing is shared between goroutines.
type Ensemble struct {
	Width, Height float64
	Runs          int
	SeedStart     int64
	Config        RunConfig
}

func (e Ensemble) Run(ctx context.Context) ([]Summary, error) {
	if err := checkDims(e.Width, e.Height); err != nil {
		return nil, err
	}
	if e.Runs < 1 {
		return nil, fmt.Errorf("ensemble needs at least one run, got %d", e.Runs)
	}
	results := make([]Summary, e.Runs)
	errs := make([]error, e.Runs)

	var wg sync.WaitGroup
	for i := 0; i < e.Runs; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()

			seed := e.SeedStart + int64(idx)
			f, err := New(e.Width, e.Height, rand.New(rand.NewSource(seed)))
			if err != nil {
				errs[idx] = err
				return
			}
			sum := &results[idx]
			sum.Seed = seed
			sum.Frames, errs[idx] = Run(ctx, f, Discard, e.Config, sum)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
