package export

import (
	"testing"

	"github.com/piwi3910/blastplan/internal/engine"
	"github.com/piwi3910/blastplan/internal/model"
)

// buildTestResult designs a realistic 20 x 20 m round for testing.
func buildTestResult(t *testing.T) engine.Result {
	t.Helper()
	in := model.DefaultInputs()
	in.Name = "North Pit Bench 3"
	in.HoleDiameterMM = 200
	r, err := engine.Design(in)
	if err != nil {
		t.Fatalf("Design returned error: %v", err)
	}
	return r
}

// buildLargeResult designs a round with more holes than fit on one tag page.
func buildLargeResult(t *testing.T) engine.Result {
	t.Helper()
	in := model.DefaultInputs()
	in.Geometry = model.BenchGeometry{Length: 60, Width: 40, Height: 15, BenchHeight: 12}
	in.HoleDiameterMM = 150
	in.AutoPattern = false
	in.Pattern = model.PatternStaggered
	r, err := engine.Design(in)
	if err != nil {
		t.Fatalf("Design returned error: %v", err)
	}
	return r
}
