package uihelpers

import (
	"math"
	"strconv"
)

// ComputeChartDimensions applies width/height clamp rules used for charts.
// Input: desired raw width (e.g., canvas width). Returns clamped width & height.
func ComputeChartDimensions(rawW int) (int, int) {
	w := rawW
	if w < 800 {
		w = 800
	}
	h := int(float32(w) * 0.4)
	if h < 320 {
		h = 320
	}
	if h > 560 {
		h = 560
	}
	return w, h
}

// ComputePieDimensions sizes the pie panel: square-ish, never taller than the scatter chart.
func ComputePieDimensions(rawW int) (int, int) {
	w, h := ComputeChartDimensions(rawW)
	return w, h + 40
}

// PayloadMark is one labelled stop on the payload slider.
type PayloadMark struct {
	Value float64
	Label string
}

// PayloadSliderMarks returns evenly spaced labelled stops between min and max, e.g.
// 0, 2500, ... 10000 for n=5.
func PayloadSliderMarks(min, max float64, n int) []PayloadMark {
	if n < 2 || max <= min {
		return []PayloadMark{{Value: min, Label: FormatKg(min)}}
	}
	step := (max - min) / float64(n-1)
	out := make([]PayloadMark, 0, n)
	for i := 0; i < n; i++ {
		v := round6(min + step*float64(i))
		out = append(out, PayloadMark{Value: v, Label: FormatKg(v)})
	}
	return out
}

// FormatKg renders a payload mass label such as "2500 kg".
func FormatKg(v float64) string {
	if v == math.Trunc(v) {
		return strconv.FormatFloat(v, 'f', 0, 64) + " kg"
	}
	return strconv.FormatFloat(v, 'f', 1, 64) + " kg"
}

// SnapToStep rounds v to the nearest multiple of step and clamps it to [min, max].
// A non-positive step only clamps.
func SnapToStep(v, step, min, max float64) float64 {
	if step > 0 {
		v = math.Round(v/step) * step
	}
	if v < min {
		v = min
	}
	if v > max {
		v = max
	}
	return v
}

// round6 rounds to 6 decimal places to stabilize test comparisons / labels prep.
func round6(v float64) float64 { return math.Round(v*1e6) / 1e6 }

// BuildNumericTicks generates up to n tick marks spanning [min,max] using the 1,2,2.5,5 pattern.
// Returns slice of raw numeric positions (label formatting left to caller for domain specific units).
func BuildNumericTicks(min, max float64, n int) []float64 {
	if n < 2 || math.IsNaN(min) || math.IsNaN(max) {
		return nil
	}
	if max <= min {
		max = min + 1
	}
	span := max - min
	mag := math.Pow(10, math.Floor(math.Log10(span/float64(n-1))))
	candidates := []float64{1, 2, 2.5, 5, 10}
	bestStep := mag
	bestScore := math.MaxFloat64
	for _, c := range candidates {
		step := c * mag
		count := math.Ceil(span/step) + 1
		if count < 2 {
			count = 2
		}
		diff := math.Abs(count - float64(n))
		if diff < bestScore {
			bestScore = diff
			bestStep = step
		}
	}
	start := math.Floor(min/bestStep) * bestStep
	end := math.Ceil(max/bestStep) * bestStep
	var out []float64
	for v := start; v <= end+bestStep*0.5; v += bestStep {
		out = append(out, round6(v))
	}
	if len(out) < 2 {
		out = []float64{min, max}
	}
	return out
}

// FormatNumericTick provides a compact axis label.
func FormatNumericTick(v float64) string {
	if v == 0 {
		return "0"
	}
	av := math.Abs(v)
	switch {
	case av >= 100:
		return strconv.FormatInt(int64(math.Round(v)), 10)
	case av >= 10:
		return strconv.FormatFloat(v, 'f', 1, 64)
	case av >= 1:
		return strconv.FormatFloat(v, 'f', 2, 64)
	case av >= 0.01:
		return strconv.FormatFloat(v, 'f', 3, 64)
	default:
		return strconv.FormatFloat(v, 'f', 4, 64)
	}
}

// TruncateLabel shortens s to at most n runes, ending with "…" when cut.
func TruncateLabel(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
