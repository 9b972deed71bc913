// Package viz renders curves, contact maps and the live evolution view in
// the terminal.
package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"
	"gonum.org/v1/gonum/mat"
)

// Curve plots ys against a log-spaced lag grid. The x axis is rendered in
// decades, so the caption carries the bounds.
func Curve(title string, lags, ys []float64) string {
	caption := title
	if len(lags) > 1 {
		caption = fmt.Sprintf("%s  (lag %.1e .. %.1e, log-spaced)", title, lags[0], lags[len(lags)-1])
	}
	return asciigraph.Plot(ys,
		asciigraph.Height(12),
		asciigraph.Width(72),
		asciigraph.Caption(caption),
	)
}

// LogLogCurve plots log10(ys); zero values are clipped to the smallest
// positive sample so subdiffusive power laws show as straight lines.
func LogLogCurve(title string, lags, ys []float64) string {
	floor := math.Inf(1)
	for _, v := range ys {
		if v > 0 && v < floor {
			floor = v
		}
	}
	logs := make([]float64, len(ys))
	for i, v := range ys {
		if v < floor {
			v = floor
		}
		logs[i] = math.Log10(v)
	}
	caption := fmt.Sprintf("%s  (log10, lag %.1e .. %.1e)", title, lags[0], lags[len(lags)-1])
	return asciigraph.Plot(logs,
		asciigraph.Height(12),
		asciigraph.Width(72),
		asciigraph.Caption(caption),
	)
}

var contactRamp = []rune(" .:-=+*#%@")

// ContactMap renders a contact-frequency matrix as an ascii heat map. The
// infinite diagonal always maps to the densest glyph; finite entries are
// scaled logarithmically between the off-diagonal extremes.
func ContactMap(hic *mat.SymDense) string {
	n := hic.SymmetricDim()

	lo, hi := math.Inf(1), math.Inf(-1)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			v := hic.At(i, j)
			if v > 0 && !math.IsInf(v, 0) {
				lo = math.Min(lo, math.Log(v))
				hi = math.Max(hi, math.Log(v))
			}
		}
	}

	var b strings.Builder
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			v := hic.At(i, j)
			var idx int
			switch {
			case math.IsInf(v, 1):
				idx = len(contactRamp) - 1
			case v <= 0 || hi <= lo:
				idx = 0
			default:
				frac := (math.Log(v) - lo) / (hi - lo)
				idx = int(frac * float64(len(contactRamp)-2))
				if idx < 0 {
					idx = 0
				}
				if idx > len(contactRamp)-2 {
					idx = len(contactRamp) - 2
				}
			}
			b.WriteRune(contactRamp[idx])
			b.WriteRune(' ')
		}
		b.WriteByte('\n')
	}
	return b.String()
}
