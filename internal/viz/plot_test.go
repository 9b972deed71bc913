package viz

import (
	"strings"
	"testing"

	"github.com/polychrom/rouse"
)

func TestContactMap(t *testing.T) {
	m, err := rouse.New(5, 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	hic, err := m.ContactFrequency()
	if err != nil {
		t.Fatal(err)
	}

	out := ContactMap(hic)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(lines))
	}
	// the diagonal is infinite contact, always the densest glyph
	if strings.Count(out, "@") != 5 {
		t.Errorf("expected 5 diagonal markers, got %d in:\n%s", strings.Count(out, "@"), out)
	}
}

func TestLogLogCurveHandlesZeros(t *testing.T) {
	lags := []float64{1e-3, 1e-2, 1e-1, 1}
	ys := []float64{0, 0.1, 1, 10}

	out := LogLogCurve("MSD", lags, ys)
	if out == "" {
		t.Error("expected a rendered plot")
	}
	if !strings.Contains(out, "log10") {
		t.Errorf("caption should mention the log scale:\n%s", out)
	}
}
