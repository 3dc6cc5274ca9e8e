package uwcolor

import (
	"fmt"
	"image"
	"image/color"
	"math"
)

// RGB stores an 8-bit image with interleaved R, G, B samples and no alpha.
type RGB struct {
	Width  int
	Height int
	Stride int // pixels per row, in RGB triplets
	Pix    []uint8
}

// checkShape rejects non-positive dimensions and rows*stride*3 beyond int.
func checkShape(width, height, stride int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidImageShape, width, height)
	}
	if stride < width {
		return fmt.Errorf("%w: stride %d below width %d", ErrInvalidImageShape, stride, width)
	}
	if stride > math.MaxInt/3/height {
		return fmt.Errorf("%w: %dx%d with stride %d is too large", ErrInvalidImageShape, width, height, stride)
	}
	return nil
}

// NewRGB allocates a zeroed width x height image.
func NewRGB(width, height int) (*RGB, error) {
	if err := checkShape(width, height, width); err != nil {
		return nil, err
	}
	return &RGB{Width: width, Height: height, Stride: width, Pix: make([]uint8, width*height*3)}, nil
}

// NewRGBFromPix wraps a packed height x width x 3 buffer without copying it.
func NewRGBFromPix(width, height int, pix []uint8) (*RGB, error) {
	if err := checkShape(width, height, width); err != nil {
		return nil, err
	}
	if len(pix) != width*height*3 {
		return nil, fmt.Errorf("%w: %d samples for %dx%dx3", ErrInvalidImageShape, len(pix), width, height)
	}
	return &RGB{Width: width, Height: height, Stride: width, Pix: pix}, nil
}

// Validate checks that the buffer can hold the declared shape.
func (m *RGB) Validate() error {
	if m == nil {
		return fmt.Errorf("%w: nil image", ErrInvalidImageShape)
	}
	if err := checkShape(m.Width, m.Height, m.Stride); err != nil {
		return err
	}
	need := ((m.Height-1)*m.Stride + m.Width) * 3
	if len(m.Pix) < need {
		return fmt.Errorf("%w: %d samples, need %d", ErrInvalidImageShape, len(m.Pix), need)
	}
	return nil
}

// PixOffset returns the index of the red sample of (x, y).
func (m *RGB) PixOffset(x, y int) int {
	return (y*m.Stride + x) * 3
}

// ColorModel implements image.Image.
func (m *RGB) ColorModel() color.Model { return color.NRGBAModel }

// Bounds implements image.Image.
func (m *RGB) Bounds() image.Rectangle { return image.Rect(0, 0, m.Width, m.Height) }

// At implements image.Image.
func (m *RGB) At(x, y int) color.Color {
	if x < 0 || y < 0 || x >= m.Width || y >= m.Height {
		return color.NRGBA{}
	}
	i := m.PixOffset(x, y)
	return color.NRGBA{R: m.Pix[i], G: m.Pix[i+1], B: m.Pix[i+2], A: 0xFF}
}

// NRGBA returns an opaque copy suitable for the image encoders.
func (m *RGB) NRGBA() *image.NRGBA {
	out := image.NewNRGBA(m.Bounds())
	for y := 0; y < m.Height; y++ {
		src := m.Pix[m.PixOffset(0, y):]
		dst := out.Pix[y*out.Stride:]
		for x := 0; x < m.Width; x++ {
			dst[x*4] = src[x*3]
			dst[x*4+1] = src[x*3+1]
			dst[x*4+2] = src[x*3+2]
			dst[x*4+3] = 0xFF
		}
	}
	return out
}

// FromImage converts a decoded image to RGB.
// Alpha is dropped without compositing, gray is replicated to all channels
// and 16-bit samples keep their high byte.
func FromImage(img image.Image) (*RGB, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidImageShape)
	}
	b := img.Bounds()
	out, err := NewRGB(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	switch src := img.(type) {
	case *RGB:
		if err := src.Validate(); err != nil {
			return nil, err
		}
		for y := 0; y < out.Height; y++ {
			copy(out.Pix[y*out.Width*3:(y+1)*out.Width*3], src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):])
		}
	case *image.NRGBA:
		for y := 0; y < out.Height; y++ {
			row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			dst := out.Pix[y*out.Width*3:]
			for x := 0; x < out.Width; x++ {
				dst[x*3] = row[x*4]
				dst[x*3+1] = row[x*4+1]
				dst[x*3+2] = row[x*4+2]
			}
		}
	case *image.Gray:
		for y := 0; y < out.Height; y++ {
			row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
			dst := out.Pix[y*out.Width*3:]
			for x := 0; x < out.Width; x++ {
				dst[x*3] = row[x]
				dst[x*3+1] = row[x]
				dst[x*3+2] = row[x]
			}
		}
	case *image.YCbCr:
		for y := 0; y < out.Height; y++ {
			dst := out.Pix[y*out.Width*3:]
			for x := 0; x < out.Width; x++ {
				yi := src.YOffset(b.Min.X+x, b.Min.Y+y)
				ci := src.COffset(b.Min.X+x, b.Min.Y+y)
				dst[x*3], dst[x*3+1], dst[x*3+2] = color.YCbCrToRGB(src.Y[yi], src.Cb[ci], src.Cr[ci])
			}
		}
	default:
		for y := 0; y < out.Height; y++ {
			for x := 0; x < out.Width; x++ {
				r, g, bl := rgbAt(img, x, y)
				i := out.PixOffset(x, y)
				out.Pix[i], out.Pix[i+1], out.Pix[i+2] = r, g, bl
			}
		}
	}
	return out, nil
}

// rgbAt reads non-premultiplied 8-bit samples relative to the image origin.
func rgbAt(img image.Image, x, y int) (uint8, uint8, uint8) {
	c := color.NRGBA64Model.Convert(img.At(img.Bounds().Min.X+x, img.Bounds().Min.Y+y)).(color.NRGBA64)
	return uint8(c.R >> 8), uint8(c.G >> 8), uint8(c.B >> 8)
}
