package chart

import (
	"math"

	"github.com/joseph-ayodele/lap-analysis/internal/laptime"
)

// yScale is the vertical layout shared by the image and workbook renderers.
type yScale struct {
	Min, Max   float64
	MajorStep  float64
	MinorStep  float64
	MajorTicks []float64
	MinorLines []float64
}

// majorSteps are tried in order until at most maxMajorTicks fit the span.
var majorSteps = []float64{0.2, 0.5, 1, 2, 5, 10, 30, 60}

const maxMajorTicks = 10

// scaleFor pads the data range by one minor step on each side and snaps it
// to the minor grid. ok is false when there is nothing to plot.
func scaleFor(series []Series, minor float64) (yScale, bool) {
	if minor <= 0 {
		minor = DefaultMinorStep
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, v := range s.YValues() {
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if math.IsInf(lo, 0) {
		return yScale{}, false
	}

	sc := yScale{MinorStep: minor}
	sc.Min = snap(math.Floor(lo/minor)*minor-minor, minor)
	sc.Max = snap(math.Ceil(hi/minor)*minor+minor, minor)

	span := sc.Max - sc.Min
	sc.MajorStep = majorSteps[len(majorSteps)-1]
	for _, step := range majorSteps {
		if span/step <= maxMajorTicks {
			sc.MajorStep = step
			break
		}
	}

	n := int(math.Round(span / minor))
	for i := 0; i <= n; i++ {
		sc.MinorLines = append(sc.MinorLines, snap(sc.Min+float64(i)*minor, minor))
	}
	for v := math.Ceil(sc.Min/sc.MajorStep-1e-9) * sc.MajorStep; v <= sc.Max+minor/2; v += sc.MajorStep {
		sc.MajorTicks = append(sc.MajorTicks, snap(v, minor))
	}
	return sc, true
}

// snap removes float noise by rounding to the millisecond, then to the step.
func snap(v, step float64) float64 {
	return laptime.FromSeconds(math.Round(v/step)*step).Seconds()
}

// lapRange returns the first and last lap number across series.
func lapRange(series []Series) (first, last int, ok bool) {
	for _, s := range series {
		for _, l := range s.Laps {
			if !ok || l < first {
				first = l
			}
			if !ok || l > last {
				last = l
			}
			ok = true
		}
	}
	return first, last, ok
}
