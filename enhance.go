package uwcolor

// Enhance boosts dominant channels of src according to p and returns a new image.
//
// A sample of an eligible channel C is multiplied by p.Strength(C) when its normalized intensity
// is strictly above p.Threshold and strictly above both other channels of the pixel. Dominance is
// judged against all three channels, including ones that are not eligible. Boosted values are
// clipped to [0,1] and truncated back to 8 bits, all other samples are copied unchanged.
//
// src is only read. Enhance is not idempotent: a second pass sees the quantized output of the
// first, so Enhance(Enhance(img, s1), s2) generally differs from a single pass with s1*s2.
func Enhance(src *RGB, p Profile) (*RGB, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var (
		active   [3]bool
		strength [3]float32
	)
	for _, c := range p.Channels {
		active[c] = true
		strength[c] = float32(p.Strengths[c])
	}
	threshold := float32(p.Threshold)

	dst := &RGB{Width: src.Width, Height: src.Height, Stride: src.Width, Pix: make([]uint8, src.Width*src.Height*3)}
	for y := 0; y < src.Height; y++ {
		in := src.Pix[src.PixOffset(0, y) : src.PixOffset(0, y)+src.Width*3]
		out := dst.Pix[dst.PixOffset(0, y) : dst.PixOffset(0, y)+dst.Width*3]
		copy(out, in)
		for x := 0; x < len(in); x += 3 {
			n := [3]float32{
				float32(in[x]) / 255,
				float32(in[x+1]) / 255,
				float32(in[x+2]) / 255,
			}
			for c := 0; c < 3; c++ {
				if !active[c] || !dominates(n, c, threshold) {
					continue
				}
				out[x+c] = quantize(n[c] * strength[c])
			}
		}
	}
	return dst, nil
}

// dominates reports whether channel c is above threshold and every other channel.
func dominates(n [3]float32, c int, threshold float32) bool {
	v := n[c]
	if !(v > threshold) {
		return false
	}
	for o := 0; o < 3; o++ {
		if o != c && !(v > n[o]) {
			return false
		}
	}
	return true
}

func quantize(v float32) uint8 {
	return uint8(clamp01(v) * 255)
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
