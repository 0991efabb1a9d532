// Package render turns a rasterized page plus its pending annotations into
// the bitmap shown on screen, and holds the zoom and scroll arithmetic the
// viewer needs around it.
package render

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const fitWidthLabel = "Page Width"

// Zoom is either fit-to-width or a fixed percentage.
type Zoom struct {
	FitWidth bool
	Percent  int
}

var FitWidth = Zoom{FitWidth: true}

var fixedPercents = []int{50, 75, 100, 125, 150, 200, 250, 300, 400}

// Options lists the zoom levels offered to the user, fit-width first.
func Options() []Zoom {
	opts := []Zoom{FitWidth}
	for _, p := range fixedPercents {
		opts = append(opts, Zoom{Percent: p})
	}
	return opts
}

func Labels() []string {
	opts := Options()
	labels := make([]string, len(opts))
	for i, z := range opts {
		labels[i] = z.String()
	}
	return labels
}

func ParseZoom(s string) (Zoom, error) {
	s = strings.TrimSpace(s)

	if strings.EqualFold(s, fitWidthLabel) || strings.EqualFold(s, "fit") {
		return FitWidth, nil
	}

	p, err := strconv.Atoi(strings.TrimSuffix(s, "%"))
	if err != nil || p <= 0 {
		return Zoom{}, errors.Errorf("invalid zoom %q", s)
	}

	return Zoom{Percent: p}, nil
}

func (z Zoom) String() string {
	if z.FitWidth {
		return fitWidthLabel
	}
	return strconv.Itoa(z.Percent) + "%"
}

// Factor is the scale from page points to screen pixels. Fit-width
// divides the canvas width by the displayed page width, which for pages
// rotated by 90 or 270 degrees is the MediaBox height.
func (z Zoom) Factor(canvasWidth, effectivePageWidth float64) float64 {
	if !z.FitWidth {
		return float64(z.Percent) / 100
	}

	if effectivePageWidth <= 0 || canvasWidth <= 0 {
		return 1
	}

	return canvasWidth / effectivePageWidth
}
