package uwcolor

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // Register WebP decoder.
)

// DecodeOptions controls image decoding.
type DecodeOptions struct {
	// AutoOrient applies the EXIF orientation tag of JPEG input, enabled by default.
	AutoOrient bool
}

// Decode reads a JPEG, PNG, GIF, BMP, TIFF or WebP image and converts it to RGB.
func Decode(r io.Reader, opts ...func(o *DecodeOptions)) (*RGB, error) {
	opt := DecodeOptions{AutoOrient: true}
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}
	img, err := imaging.Decode(r, imaging.AutoOrientation(opt.AutoOrient))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return FromImage(img)
}

// DecodeFile reads and converts the image at path.
func DecodeFile(path string, opts ...func(o *DecodeOptions)) (*RGB, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Decode(f, opts...)
}

// FormatFromPath returns the encoder format matching the extension of path.
func FormatFromPath(path string) (imaging.Format, error) {
	return imaging.FormatFromFilename(path)
}

// Encode writes img in the given format, quality applies to JPEG only.
func Encode(w io.Writer, img image.Image, format imaging.Format, quality int) error {
	if m, ok := img.(*RGB); ok {
		img = m.NRGBA()
	}
	if quality <= 0 || quality > 100 {
		quality = defaultQuality
	}
	return imaging.Encode(w, img, format, imaging.JPEGQuality(quality))
}

// EnhanceJPEG decodes a JPEG, enhances it with p and encodes the result.
// When keepMeta is true, EXIF and ICC segments of the input are carried over and the pixels
// are kept in stored orientation so that the EXIF orientation tag stays valid.
func EnhanceJPEG(data []byte, p Profile, quality int, keepMeta bool) ([]byte, error) {
	_, _, encoded, err := enhanceEncoded(data, p, imaging.JPEG, quality, keepMeta)
	return encoded, err
}

// enhanceEncoded decodes data, enhances it and encodes the result in format.
// With keepMeta, data must be a JPEG: its EXIF and ICC segments are carried over and
// the pixels stay in stored orientation.
func enhanceEncoded(data []byte, p Profile, format imaging.Format, quality int, keepMeta bool) (src, out *RGB, encoded []byte, err error) {
	var segs []appSegment
	if keepMeta {
		if segs, err = colorMetadata(data); err != nil {
			return nil, nil, nil, fmt.Errorf("read metadata: %w", err)
		}
	}

	src, err = Decode(bytes.NewReader(data), func(o *DecodeOptions) {
		o.AutoOrient = !keepMeta
	})
	if err != nil {
		return nil, nil, nil, err
	}
	if out, err = Enhance(src, p); err != nil {
		return nil, nil, nil, err
	}

	var buf bytes.Buffer
	if err := Encode(&buf, out, format, quality); err != nil {
		return nil, nil, nil, fmt.Errorf("encode: %w", err)
	}
	if encoded, err = insertAppSegments(buf.Bytes(), segs); err != nil {
		return nil, nil, nil, err
	}
	return src, out, encoded, nil
}

// FileOptions controls EnhanceFile.
type FileOptions struct {
	Quality  int
	KeepMeta bool
	// ComparePath, when set, receives corrected and original images side by side.
	ComparePath string
	// PreviewMax limits the side-by-side image to PreviewMax x PreviewMax per half, 0 keeps full size.
	PreviewMax uint
	OnResult   func(res *Result)
}

// Result holds the images of an EnhanceFile run.
type Result struct {
	Original  *RGB
	Corrected *RGB
	Profile   Profile
}

// EnhanceFile reads an image from inPath, enhances it with p and writes it to outPath
// in the format implied by the extension of outPath.
func EnhanceFile(inPath, outPath string, p Profile, opts ...func(opt *FileOptions)) error {
	data, err := os.ReadFile(filepath.Clean(inPath))
	if err != nil {
		return err
	}
	return EnhanceData(data, outPath, p, opts...)
}

// EnhanceData enhances an encoded image held in memory and writes it to outPath.
func EnhanceData(data []byte, outPath string, p Profile, opts ...func(opt *FileOptions)) error {
	opt := FileOptions{Quality: defaultQuality}
	for _, applyOpt := range opts {
		applyOpt(&opt)
	}

	format, err := FormatFromPath(outPath)
	if err != nil {
		return err
	}

	keepMeta := opt.KeepMeta && format == imaging.JPEG && isJPEG(data)
	src, out, encoded, err := enhanceEncoded(data, p, format, opt.Quality, keepMeta)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Clean(outPath), encoded, 0o644); err != nil {
		return err
	}

	if opt.ComparePath != "" {
		if err := writeComparison(opt.ComparePath, out, src, opt); err != nil {
			return fmt.Errorf("write comparison: %w", err)
		}
	}

	if opt.OnResult != nil {
		opt.OnResult(&Result{Original: src, Corrected: out, Profile: p})
	}
	return nil
}

func writeComparison(path string, corrected, original *RGB, opt FileOptions) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var left, right image.Image = corrected, original
	if opt.PreviewMax > 0 {
		left = Preview(corrected, opt.PreviewMax, opt.PreviewMax)
		right = Preview(original, opt.PreviewMax, opt.PreviewMax)
	}
	f, err := os.Create(filepath.Clean(path))
	if err != nil {
		return err
	}
	if err := Encode(f, SideBySide(left, right, comparisonGap), format, opt.Quality); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
