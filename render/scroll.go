package render

import "math"

// ScrollFraction is the position of the top of the viewport as a fraction
// of the content height.
func ScrollFraction(offset, contentHeight float64) float64 {
	if contentHeight <= 0 {
		return 0
	}

	return clampUnit(offset / contentHeight)
}

// ScrollOffset converts a fraction back into a pixel offset for new
// content, clamped so the viewport never runs past the end.
func ScrollOffset(fraction, contentHeight, viewportHeight float64) float64 {
	limit := math.Max(0, contentHeight-viewportHeight)
	return math.Min(limit, clampUnit(fraction)*contentHeight)
}

func clampUnit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
