package annots

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorHexRoundTrip(t *testing.T) {
	c, err := ColorFromHex("#ffff00")
	require.NoError(t, err)
	assert.Equal(t, Yellow, c)
	assert.Equal(t, "#ffff00", Yellow.Hex())

	_, err = ColorFromHex("yellow")
	assert.Error(t, err)
}

func TestColorFromFloats(t *testing.T) {
	c, ok := ColorFromFloats([]float64{0, 0.5, 2})
	require.True(t, ok)
	assert.Equal(t, Color{R: 0, G: 0.5, B: 1}, c)

	_, ok = ColorFromFloats([]float64{1})
	assert.False(t, ok)
}

func TestColorRGBA(t *testing.T) {
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 0, A: 128}, Yellow.RGBA(128))
	assert.Equal(t, Color{R: 1, G: 0, B: 0}, ColorFromRGBA(color.RGBA{R: 255, A: 255}))
}

func TestColorCategory(t *testing.T) {
	assert.Equal(t, "Yellow", Yellow.Category())
	assert.Equal(t, "Black", Black.Category())
	assert.Equal(t, "Blue", Color{B: 1}.Category())
	assert.Equal(t, "Gray", Color{R: 0.5, G: 0.5, B: 0.5}.Category())
}
