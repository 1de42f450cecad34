package field

import (
	"context"
	"testing"
)

func TestEnsembleDeterministic(t *testing.T) {
	e := Ensemble{Width: 800, Height: 600, Runs: 4, SeedStart: 10, Config: RunConfig{Frames: 50}}

	a, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	b, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}

	if len(a) != 4 {
		t.Fatalf("expected 4 results, got %d", len(a))
	}
	for i := range a {
		if a[i].Seed != 10+int64(i) {
			t.Errorf("run %d: expected seed %d, got %d", i, 10+i, a[i].Seed)
		}
		if a[i].Frames != 50 {
			t.Errorf("run %d: expected 50 frames, got %d", i, a[i].Frames)
		}
		if a[i] != b[i] {
			t.Errorf("run %d differs between identical ensembles: %+v vs %+v", i, a[i], b[i])
		}
		// Every point can hold at most MaxConnections links, each shared by two.
		if a[i].MeanLinks() > PointCount*MaxConnections/2 {
			t.Errorf("run %d: mean links %.1f exceeds the cap", i, a[i].MeanLinks())
		}
	}
}

func TestEnsembleInvalid(t *testing.T) {
	if _, err := (Ensemble{Width: 0, Height: 10, Runs: 1, Config: RunConfig{Frames: 1}}).Run(context.Background()); err == nil {
		t.Error("expected error for zero width")
	}
	if _, err := (Ensemble{Width: 10, Height: 10, Runs: 2}).Run(context.Background()); err == nil {
		t.Error("expected error for unbounded run config")
	}
}

func TestSummaryMeans(t *testing.T) {
	var s Summary
	if s.MeanLinks() != 0 || s.MeanSaturated() != 0 {
		t.Error("empty summary should report zero means")
	}
	s.Frames = 2
	s.OnFrame(FrameStats{Links: 10, Saturated: 2})
	s.OnFrame(FrameStats{Links: 20, Saturated: 4})
	if s.MeanLinks() != 15 || s.MeanSaturated() != 3 {
		t.Errorf("unexpected means %v %v", s.MeanLinks(), s.MeanSaturated())
	}
}
