package uwcolor

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/nfnt/resize"
)

const comparisonGap = 8

// SideBySide places corrected on the left and original on the right, separated by gap pixels
// of white. Images of different heights are top-aligned on a white background.
func SideBySide(corrected, original image.Image, gap int) *image.NRGBA {
	if gap < 0 {
		gap = 0
	}
	lb, rb := corrected.Bounds(), original.Bounds()
	h := lb.Dy()
	if rb.Dy() > h {
		h = rb.Dy()
	}
	dst := imaging.New(lb.Dx()+gap+rb.Dx(), h, color.White)
	dst = imaging.Paste(dst, corrected, image.Pt(0, 0))
	return imaging.Paste(dst, original, image.Pt(lb.Dx()+gap, 0))
}

// Preview downsizes img to fit into maxWidth x maxHeight preserving the aspect ratio.
// Images that already fit are returned as is.
func Preview(img image.Image, maxWidth, maxHeight uint) image.Image {
	return resize.Thumbnail(maxWidth, maxHeight, img, resize.Lanczos3)
}
