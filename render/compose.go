package render

import (
	"image"
	"image/draw"
	"strings"
	"sync"

	"github.com/golang/freetype/truetype"
	"github.com/golang/geo/r2"
	"github.com/mgmeyers/pdfannotator/annots"
	"github.com/pkg/errors"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

const (
	highlightAlpha = 128

	// Free text is drawn at 11pt, scaled with the page.
	textSize = 11.0
)

// Composer draws annotation overlays. Faces are memoized per pixel size.
type Composer struct {
	font *truetype.Font

	mu    sync.Mutex
	faces map[float64]font.Face
}

func NewComposer() (*Composer, error) {
	f, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, errors.Wrap(err, "parse overlay font")
	}

	return &Composer{
		font:  f,
		faces: map[float64]font.Face{},
	}, nil
}

// Compose returns a copy of base with the annotations drawn on top.
// Highlights go first as translucent quads, free text is drawn opaque
// above them. Both are scaled by zoom, the same factor the base bitmap
// was rasterized with.
func (c *Composer) Compose(base image.Image, list []annots.Annotation, zoom float64) *image.RGBA {
	bounds := base.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), base, bounds.Min, draw.Src)

	for _, a := range list {
		if a.Kind != annots.Highlight {
			continue
		}

		src := image.NewUniform(a.Color.RGBA(highlightAlpha))
		for _, q := range a.Quads {
			fillQuad(dst, q, zoom, src)
		}
	}

	for _, a := range list {
		if a.Kind != annots.FreeText {
			continue
		}

		c.drawText(dst, a, zoom)
	}

	return dst
}

func fillQuad(dst *image.RGBA, q annots.Quad, zoom float64, src image.Image) {
	size := dst.Bounds().Size()
	z := vector.NewRasterizer(size.X, size.Y)

	pts := q.Points()
	start := scale(pts[0], zoom)
	z.MoveTo(start[0], start[1])

	for _, p := range pts[1:] {
		s := scale(p, zoom)
		z.LineTo(s[0], s[1])
	}

	z.ClosePath()
	z.Draw(dst, dst.Bounds(), src, image.Point{})
}

func (c *Composer) drawText(dst *image.RGBA, a annots.Annotation, zoom float64) {
	face := c.face(textSize * zoom)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(a.Color.RGBA(255)),
		Face: face,
	}

	metrics := face.Metrics()
	x := fixed.Int26_6(a.Rect.X.Lo * zoom * 64)
	y := fixed.Int26_6(a.Rect.Y.Lo*zoom*64) + metrics.Ascent

	for _, line := range strings.Split(a.Text, "\n") {
		d.Dot = fixed.Point26_6{X: x, Y: y}
		d.DrawString(line)
		y += metrics.Height
	}
}

func (c *Composer) face(size float64) font.Face {
	c.mu.Lock()
	defer c.mu.Unlock()

	if f, ok := c.faces[size]; ok {
		return f
	}

	f := truetype.NewFace(c.font, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	c.faces[size] = f

	return f
}

func scale(p r2.Point, zoom float64) [2]float32 {
	return [2]float32{float32(p.X * zoom), float32(p.Y * zoom)}
}
