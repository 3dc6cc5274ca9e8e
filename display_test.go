package uwcolor

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSideBySide(t *testing.T) {
	left := solidImage(3, 2, color.NRGBA{R: 255, A: 0xFF})
	right := solidImage(2, 4, color.NRGBA{B: 255, A: 0xFF})

	out := SideBySide(left, right, 1)
	assert.Equal(t, image.Rect(0, 0, 6, 4), out.Bounds())
	assert.Equal(t, color.NRGBA{R: 255, A: 0xFF}, out.NRGBAAt(2, 1))
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 0xFF}, out.NRGBAAt(3, 0), "gap")
	assert.Equal(t, color.NRGBA{R: 255, G: 255, B: 255, A: 0xFF}, out.NRGBAAt(0, 3), "padding below the shorter image")
	assert.Equal(t, color.NRGBA{B: 255, A: 0xFF}, out.NRGBAAt(5, 3))

	assert.Equal(t, 5, SideBySide(left, right, -3).Bounds().Dx())
}

func TestPreview(t *testing.T) {
	small := solidImage(10, 5, color.NRGBA{A: 0xFF})
	assert.Equal(t, small.Bounds(), Preview(small, 100, 100).Bounds(), "must not upscale")

	big := solidImage(400, 100, color.NRGBA{G: 200, A: 0xFF})
	assert.Equal(t, image.Rect(0, 0, 200, 50), Preview(big, 200, 200).Bounds())
}
